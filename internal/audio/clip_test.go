package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClip(t *testing.T) {
	clip, err := NewClip([]float64{0, 0.5, -0.5}, 16000)
	require.NoError(t, err)
	assert.Equal(t, 3, clip.SampleCount())
	assert.Equal(t, 16000, clip.SampleRate())
}

func TestNewClip_Errors(t *testing.T) {
	_, err := NewClip(nil, 16000)
	assert.ErrorIs(t, err, ErrEmptyClip)

	_, err = NewClip([]float64{0}, 0)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewClip([]float64{0}, -8000)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestFromPCM16(t *testing.T) {
	clip, err := FromPCM16([]int16{0, 16384, -16384, 32767, -32768}, 16000)
	require.NoError(t, err)

	samples := clip.Samples()
	assert.InDelta(t, 0, samples[0], 1e-9)
	assert.InDelta(t, 0.5, samples[1], 1e-4)
	assert.InDelta(t, -0.5, samples[2], 1e-4)
	assert.InDelta(t, 1.0, samples[3], 1e-3)
	assert.InDelta(t, -1.0, samples[4], 1e-9)
}

func TestClip_Duration(t *testing.T) {
	clip, err := NewClip(make([]float64, 16000), 16000)
	require.NoError(t, err)
	assert.Equal(t, time.Second, clip.Duration())

	clip, err = NewClip(make([]float64, 8000), 16000)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, clip.Duration())
}

func TestClip_RMS(t *testing.T) {
	// Constant amplitude 0.5 has RMS 0.5; silence has RMS 0.
	samples := make([]float64, 200)
	for i := 100; i < 200; i++ {
		samples[i] = 0.5
	}
	clip, err := NewClip(samples, 16000)
	require.NoError(t, err)

	assert.InDelta(t, 0, clip.RMS(0, 100), 1e-12)
	assert.InDelta(t, 0.5, clip.RMS(100, 200), 1e-12)

	// Out-of-bounds windows are clamped; inverted windows are zero.
	assert.InDelta(t, 0.5, clip.RMS(150, 500), 1e-12)
	assert.Equal(t, 0.0, clip.RMS(50, 50))
	assert.Equal(t, 0.0, clip.RMS(500, 600))
}

func TestClip_RMSSine(t *testing.T) {
	samples := make([]float64, 16000)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 16000)
	}
	clip, err := NewClip(samples, 16000)
	require.NoError(t, err)

	// RMS of a full-scale sine is 1/sqrt(2).
	assert.InDelta(t, 1/math.Sqrt2, clip.RMS(0, len(samples)), 1e-3)
}
