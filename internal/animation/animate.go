// Package animation converts a recognized phone timeline into a continuous
// mouth-shape timeline suitable for driving lip animation.
package animation

import (
	"errors"
	"fmt"

	"github.com/biolimbo/lip-sync-engine/internal/timeline"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

// Configuration errors, detected before any output is produced.
var (
	ErrRestShapeMissing = errors.New("target shape set does not contain the rest shape")
	ErrShapeNotAllowed  = errors.New("mapped shape not in target shape set")
)

// Animate maps each phone segment to its mouth shape over a continuous
// timeline spanning the phone timeline's full duration. Ranges without a
// recognized phone stay at the rest shape X, and consecutive phones mapping
// to the same shape collapse into a single cue via the timeline's join
// behavior. The phone timeline is not mutated; the result is deterministic
// for identical inputs.
func Animate(phones *timeline.Bounded[viseme.Phone], targetShapes viseme.ShapeSet) (*timeline.JoiningContinuous[viseme.Shape], error) {
	if !targetShapes.Contains(viseme.ShapeX) {
		return nil, fmt.Errorf("%w: set %q", ErrRestShapeMissing, targetShapes.Name())
	}

	out, err := timeline.NewJoiningContinuous(phones.Duration(), viseme.ShapeX)
	if err != nil {
		return nil, err
	}

	for _, seg := range phones.Segments() {
		shape := viseme.ShapeForPhone(seg.Value)
		if !targetShapes.Contains(shape) {
			return nil, fmt.Errorf("%w: phone %s maps to shape %s, set %q",
				ErrShapeNotAllowed, seg.Value, shape, targetShapes.Name())
		}
		if err := out.Set(timeline.Segment[viseme.Shape]{
			Start: seg.Start,
			End:   seg.End,
			Value: shape,
		}); err != nil {
			return nil, err
		}
	}
	return out, nil
}
