// Package timeline provides ordered, non-overlapping time segment containers
// used to carry recognized phones and animation shapes.
package timeline

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Common errors
var (
	ErrInvalidSegment = errors.New("segment start after end")
	ErrOutOfRange     = errors.New("time outside timeline range")
	ErrNegativeRange  = errors.New("negative timeline duration")
)

// Segment is a half-open time interval [Start, End) carrying a value.
// Start == End is a zero-width segment and contributes no coverage.
type Segment[T comparable] struct {
	Start time.Duration
	End   time.Duration
	Value T
}

// Duration returns the segment length.
func (s Segment[T]) Duration() time.Duration {
	return s.End - s.Start
}

// ZeroWidth reports whether the segment covers no time.
func (s Segment[T]) ZeroWidth() bool {
	return s.Start == s.End
}

func (s Segment[T]) valid() error {
	if s.Start > s.End {
		return fmt.Errorf("%w: [%v, %v)", ErrInvalidSegment, s.Start, s.End)
	}
	return nil
}

// Timeline stores segments sorted by start time with no overlaps.
// Gaps between segments are allowed; Get reports them as uncovered.
type Timeline[T comparable] struct {
	segments []Segment[T]
}

// New builds a timeline from the given segments, applying Set semantics
// in order (later segments win on overlapping regions).
func New[T comparable](segments ...Segment[T]) (*Timeline[T], error) {
	t := &Timeline[T]{}
	for _, s := range segments {
		if err := t.Set(s); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Set inserts the segment, clipping away any existing coverage within
// [seg.Start, seg.End). Zero-width segments are dropped.
func (t *Timeline[T]) Set(seg Segment[T]) error {
	if err := seg.valid(); err != nil {
		return err
	}
	if seg.ZeroWidth() {
		return nil
	}
	t.clearRange(seg.Start, seg.End)
	i := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].Start >= seg.Start
	})
	t.segments = append(t.segments, Segment[T]{})
	copy(t.segments[i+1:], t.segments[i:])
	t.segments[i] = seg
	return nil
}

// Clear removes all coverage within [start, end). Segments partially
// overlapping the range are truncated at the boundary.
func (t *Timeline[T]) Clear(start, end time.Duration) {
	if start >= end {
		return
	}
	t.clearRange(start, end)
}

func (t *Timeline[T]) clearRange(start, end time.Duration) {
	kept := make([]Segment[T], 0, len(t.segments))
	for _, s := range t.segments {
		if s.End <= start || s.Start >= end {
			kept = append(kept, s)
			continue
		}
		if s.Start < start {
			kept = append(kept, Segment[T]{Start: s.Start, End: start, Value: s.Value})
		}
		if s.End > end {
			kept = append(kept, Segment[T]{Start: end, End: s.End, Value: s.Value})
		}
	}
	t.segments = kept
}

// Get returns the value covering the given time, or false if it falls
// in a gap.
func (t *Timeline[T]) Get(at time.Duration) (T, bool) {
	i := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].End > at
	})
	if i < len(t.segments) && t.segments[i].Start <= at {
		return t.segments[i].Value, true
	}
	var zero T
	return zero, false
}

// Segments returns a snapshot of the stored segments in ascending start
// order. Mutating the returned slice does not affect the timeline.
func (t *Timeline[T]) Segments() []Segment[T] {
	out := make([]Segment[T], len(t.segments))
	copy(out, t.segments)
	return out
}

// Len returns the number of stored segments.
func (t *Timeline[T]) Len() int {
	return len(t.segments)
}

// Empty reports whether the timeline has no segments.
func (t *Timeline[T]) Empty() bool {
	return len(t.segments) == 0
}
