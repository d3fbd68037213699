package timeline

import (
	"fmt"
	"time"
)

// Bounded is a Timeline with a fixed total duration. All insertions are
// clipped to [0, duration]. It holds the recognizer's phone output.
type Bounded[T comparable] struct {
	inner    Timeline[T]
	duration time.Duration
}

// NewBounded creates a bounded timeline spanning [0, duration] and applies
// Set semantics for each given segment in order.
func NewBounded[T comparable](duration time.Duration, segments ...Segment[T]) (*Bounded[T], error) {
	if duration < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeRange, duration)
	}
	b := &Bounded[T]{duration: duration}
	for _, s := range segments {
		if err := b.Set(s); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Duration returns the fixed total duration.
func (b *Bounded[T]) Duration() time.Duration {
	return b.duration
}

// Set inserts the segment clipped to [0, duration].
func (b *Bounded[T]) Set(seg Segment[T]) error {
	if err := seg.valid(); err != nil {
		return err
	}
	if seg.Start < 0 {
		seg.Start = 0
	}
	if seg.End > b.duration {
		seg.End = b.duration
	}
	if seg.Start >= seg.End {
		return nil
	}
	return b.inner.Set(seg)
}

// Clear removes coverage within the range, clipped to [0, duration].
func (b *Bounded[T]) Clear(start, end time.Duration) {
	if start < 0 {
		start = 0
	}
	if end > b.duration {
		end = b.duration
	}
	b.inner.Clear(start, end)
}

// Get returns the value at the given time. Querying outside [0, duration]
// is a contract violation and returns ErrOutOfRange.
func (b *Bounded[T]) Get(at time.Duration) (T, bool, error) {
	if at < 0 || at > b.duration {
		var zero T
		return zero, false, fmt.Errorf("%w: %v not in [0, %v]", ErrOutOfRange, at, b.duration)
	}
	v, ok := b.inner.Get(at)
	return v, ok, nil
}

// Segments returns a snapshot of the stored segments in ascending start order.
func (b *Bounded[T]) Segments() []Segment[T] {
	return b.inner.Segments()
}

// Len returns the number of stored segments.
func (b *Bounded[T]) Len() int {
	return b.inner.Len()
}

// Empty reports whether the timeline has no segments.
func (b *Bounded[T]) Empty() bool {
	return b.inner.Empty()
}
