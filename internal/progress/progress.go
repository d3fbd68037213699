// Package progress provides completion reporting for the analysis pipeline.
package progress

import (
	"sync"

	"github.com/rs/zerolog"
)

// Sink receives completion fractions in [0, 1]. Implementations must
// tolerate being called from whichever goroutine performs the work.
type Sink interface {
	Report(fraction float64)
}

// NullSink discards all reports.
type NullSink struct{}

func (NullSink) Report(float64) {}

// Func adapts a function to the Sink interface.
type Func func(fraction float64)

func (f Func) Report(fraction float64) { f(fraction) }

func clamp(fraction float64) float64 {
	switch {
	case fraction < 0:
		return 0
	case fraction > 1:
		return 1
	default:
		return fraction
	}
}

// LogSink logs progress at debug level in coarse steps to avoid flooding
// the log with per-frame updates.
type LogSink struct {
	logger zerolog.Logger
	label  string

	mu   sync.Mutex
	last float64
}

// NewLogSink creates a sink logging under the given label every 10%.
func NewLogSink(logger zerolog.Logger, label string) *LogSink {
	return &LogSink{logger: logger, label: label, last: -1}
}

func (s *LogSink) Report(fraction float64) {
	fraction = clamp(fraction)
	s.mu.Lock()
	defer s.mu.Unlock()
	if fraction < 1 && fraction-s.last < 0.1 {
		return
	}
	s.last = fraction
	s.logger.Debug().
		Str("stage", s.label).
		Float64("fraction", fraction).
		Msg("progress")
}

// Merger splits a parent sink into weighted stage sinks. Each stage reports
// its own 0..1 fraction; the parent receives the weighted sum. Stages must
// be registered before reporting begins.
type Merger struct {
	parent Sink

	mu        sync.Mutex
	weights   []float64
	fractions []float64
	total     float64
}

// NewMerger creates a merger forwarding to parent.
func NewMerger(parent Sink) *Merger {
	if parent == nil {
		parent = NullSink{}
	}
	return &Merger{parent: parent}
}

// Stage registers a sub-stage with the given relative weight and returns
// its sink.
func (m *Merger) Stage(weight float64) Sink {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := len(m.weights)
	m.weights = append(m.weights, weight)
	m.fractions = append(m.fractions, 0)
	m.total += weight
	return Func(func(fraction float64) {
		m.report(idx, fraction)
	})
}

func (m *Merger) report(idx int, fraction float64) {
	m.mu.Lock()
	m.fractions[idx] = clamp(fraction)
	sum := 0.0
	for i, w := range m.weights {
		sum += w * m.fractions[i]
	}
	total := m.total
	m.mu.Unlock()
	if total > 0 {
		m.parent.Report(sum / total)
	}
}
