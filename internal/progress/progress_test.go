package progress

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	fractions []float64
}

func (s *recordingSink) Report(fraction float64) {
	s.fractions = append(s.fractions, fraction)
}

func TestNullSink(t *testing.T) {
	// Must not panic.
	NullSink{}.Report(0.5)
}

func TestFunc(t *testing.T) {
	var got float64
	Func(func(f float64) { got = f }).Report(0.25)
	assert.Equal(t, 0.25, got)
}

func TestMerger_WeightedStages(t *testing.T) {
	parent := &recordingSink{}
	merger := NewMerger(parent)
	first := merger.Stage(3)
	second := merger.Stage(1)

	first.Report(1)
	require.NotEmpty(t, parent.fractions)
	assert.InDelta(t, 0.75, parent.fractions[len(parent.fractions)-1], 1e-9)

	second.Report(1)
	assert.InDelta(t, 1.0, parent.fractions[len(parent.fractions)-1], 1e-9)
}

func TestMerger_PartialStages(t *testing.T) {
	parent := &recordingSink{}
	merger := NewMerger(parent)
	first := merger.Stage(1)
	second := merger.Stage(1)

	first.Report(0.5)
	assert.InDelta(t, 0.25, parent.fractions[len(parent.fractions)-1], 1e-9)

	second.Report(0.5)
	assert.InDelta(t, 0.5, parent.fractions[len(parent.fractions)-1], 1e-9)
}

func TestMerger_ClampsFractions(t *testing.T) {
	parent := &recordingSink{}
	merger := NewMerger(parent)
	stage := merger.Stage(1)

	stage.Report(2)
	assert.InDelta(t, 1.0, parent.fractions[len(parent.fractions)-1], 1e-9)

	stage.Report(-1)
	assert.InDelta(t, 0.0, parent.fractions[len(parent.fractions)-1], 1e-9)
}

func TestMerger_NilParent(t *testing.T) {
	merger := NewMerger(nil)
	// Must not panic.
	merger.Stage(1).Report(0.5)
}

func TestLogSink_CoarseSteps(t *testing.T) {
	sink := NewLogSink(zerolog.Nop(), "test")
	// Must not panic on repeated fine-grained reports.
	for i := 0; i <= 100; i++ {
		sink.Report(float64(i) / 100)
	}
	sink.Report(1)
	sink.Report(5) // clamped
}
