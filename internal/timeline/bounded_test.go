package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounded_ClipsToRange(t *testing.T) {
	b, err := NewBounded[string](time.Second)
	require.NoError(t, err)

	require.NoError(t, b.Set(seg(-100*time.Millisecond, 200*time.Millisecond, "a")))
	require.NoError(t, b.Set(seg(900*time.Millisecond, 2*time.Second, "b")))

	want := []Segment[string]{
		seg(0, 200*time.Millisecond, "a"),
		seg(900*time.Millisecond, time.Second, "b"),
	}
	assert.Equal(t, want, b.Segments())
}

func TestBounded_SegmentOutsideRangeIsDropped(t *testing.T) {
	b, err := NewBounded[string](time.Second)
	require.NoError(t, err)

	require.NoError(t, b.Set(seg(2*time.Second, 3*time.Second, "a")))
	assert.True(t, b.Empty())
}

func TestBounded_GetOutOfRange(t *testing.T) {
	b, err := NewBounded[string](time.Second)
	require.NoError(t, err)
	require.NoError(t, b.Set(seg(0, time.Second, "a")))

	_, _, err = b.Get(-time.Millisecond)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, _, err = b.Get(time.Second + time.Millisecond)
	assert.ErrorIs(t, err, ErrOutOfRange)

	v, ok, err := b.Get(500 * time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestBounded_NegativeDuration(t *testing.T) {
	_, err := NewBounded[string](-time.Second)
	if !errors.Is(err, ErrNegativeRange) {
		t.Errorf("expected ErrNegativeRange, got %v", err)
	}
}

func TestBounded_ZeroDuration(t *testing.T) {
	b, err := NewBounded[string](0)
	require.NoError(t, err)
	assert.True(t, b.Empty())
	assert.Equal(t, time.Duration(0), b.Duration())
}
