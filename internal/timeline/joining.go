package timeline

import (
	"fmt"
	"time"
)

// JoiningContinuous is the animation output timeline. It always covers
// [0, duration] with no gaps: construction pre-fills the whole range with a
// default value, and Set only ever overwrites coverage. Adjacent segments
// carrying equal values merge into one, so consecutive visually identical
// shapes collapse into a single cue.
type JoiningContinuous[T comparable] struct {
	duration     time.Duration
	defaultValue T
	segments     []Segment[T]
}

// NewJoiningContinuous creates a timeline spanning [0, duration] fully
// covered by defaultValue.
func NewJoiningContinuous[T comparable](duration time.Duration, defaultValue T) (*JoiningContinuous[T], error) {
	if duration < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeRange, duration)
	}
	t := &JoiningContinuous[T]{duration: duration, defaultValue: defaultValue}
	if duration > 0 {
		t.segments = []Segment[T]{{Start: 0, End: duration, Value: defaultValue}}
	}
	return t, nil
}

// Duration returns the covered range length.
func (t *JoiningContinuous[T]) Duration() time.Duration {
	return t.duration
}

// DefaultValue returns the value used to pre-fill the range.
func (t *JoiningContinuous[T]) DefaultValue() T {
	return t.defaultValue
}

// Set overwrites coverage within the segment's range (clipped to
// [0, duration]) and merges with equal-valued neighbors on both sides.
// Zero-width segments have no effect.
func (t *JoiningContinuous[T]) Set(seg Segment[T]) error {
	if err := seg.valid(); err != nil {
		return err
	}
	if seg.Start < 0 {
		seg.Start = 0
	}
	if seg.End > t.duration {
		seg.End = t.duration
	}
	if seg.Start >= seg.End {
		return nil
	}

	rebuilt := make([]Segment[T], 0, len(t.segments)+2)
	inserted := false
	for _, s := range t.segments {
		if s.End <= seg.Start {
			rebuilt = append(rebuilt, s)
			continue
		}
		if !inserted {
			if s.Start < seg.Start {
				rebuilt = append(rebuilt, Segment[T]{Start: s.Start, End: seg.Start, Value: s.Value})
			}
			rebuilt = append(rebuilt, seg)
			inserted = true
		}
		if s.End > seg.End {
			rebuilt = append(rebuilt, Segment[T]{Start: seg.End, End: s.End, Value: s.Value})
		}
	}
	if !inserted {
		rebuilt = append(rebuilt, seg)
	}
	t.segments = coalesce(rebuilt)
	return nil
}

// coalesce merges runs of adjacent equal-valued segments.
func coalesce[T comparable](segments []Segment[T]) []Segment[T] {
	out := segments[:0]
	for _, s := range segments {
		if n := len(out); n > 0 && out[n-1].Value == s.Value && out[n-1].End == s.Start {
			out[n-1].End = s.End
			continue
		}
		out = append(out, s)
	}
	return out
}

// Get returns the value at the given time. Every instant of [0, duration]
// is covered; querying outside the range returns ErrOutOfRange. The right
// boundary belongs to the final segment.
func (t *JoiningContinuous[T]) Get(at time.Duration) (T, error) {
	if at < 0 || at > t.duration {
		var zero T
		return zero, fmt.Errorf("%w: %v not in [0, %v]", ErrOutOfRange, at, t.duration)
	}
	if at == t.duration {
		if len(t.segments) == 0 {
			return t.defaultValue, nil
		}
		return t.segments[len(t.segments)-1].Value, nil
	}
	for _, s := range t.segments {
		if s.Start <= at && at < s.End {
			return s.Value, nil
		}
	}
	// Unreachable while the coverage invariant holds.
	return t.defaultValue, nil
}

// Segments returns a snapshot of the joined segments in ascending start
// order. Their union is exactly [0, duration] with no gaps or overlaps,
// and no two adjacent segments carry equal values.
func (t *JoiningContinuous[T]) Segments() []Segment[T] {
	out := make([]Segment[T], len(t.segments))
	copy(out, t.segments)
	return out
}

// Len returns the number of joined segments.
func (t *JoiningContinuous[T]) Len() int {
	return len(t.segments)
}
