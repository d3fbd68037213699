// Package engine composes recognition, animation, and export into the
// lip-sync analysis pipeline.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/biolimbo/lip-sync-engine/internal/animation"
	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/export"
	"github.com/biolimbo/lip-sync-engine/internal/progress"
	"github.com/biolimbo/lip-sync-engine/internal/recognition"
	"github.com/biolimbo/lip-sync-engine/internal/timeline"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

// Recognition dominates the pipeline cost; animation is a cheap single pass.
const (
	recognitionWeight = 0.97
	animationWeight   = 0.03
)

// Engine runs the full clip-to-cues pipeline. Each AnimateClip call
// operates on independently owned timelines, so one Engine may serve
// concurrent callers without locking.
type Engine struct {
	recognizer recognition.Recognizer
	shapes     viseme.ShapeSet
	logger     zerolog.Logger
}

// New creates an engine emitting shapes from the given target set.
func New(recognizer recognition.Recognizer, shapes viseme.ShapeSet, logger zerolog.Logger) *Engine {
	return &Engine{
		recognizer: recognizer,
		shapes:     shapes,
		logger:     logger.With().Str("component", "engine").Logger(),
	}
}

// AnimateClip recognizes phones in the clip and animates them into a
// continuous shape timeline. dialog is the known transcript, empty when
// unavailable. Fails without partial output on recognition or
// configuration errors.
func (e *Engine) AnimateClip(ctx context.Context, clip *audio.Clip, dialog string, maxThreads int, sink progress.Sink) (*timeline.JoiningContinuous[viseme.Shape], error) {
	if sink == nil {
		sink = progress.NullSink{}
	}
	if maxThreads < 1 {
		maxThreads = 1
	}

	merger := progress.NewMerger(sink)
	recognitionSink := merger.Stage(recognitionWeight)
	animationSink := merger.Stage(animationWeight)

	e.logger.Info().
		Str("recognizer", e.recognizer.Name()).
		Dur("duration", clip.Duration()).
		Int("max_threads", maxThreads).
		Bool("has_dialog", dialog != "").
		Msg("starting analysis")

	phones, err := e.recognizer.RecognizePhones(ctx, clip, dialog, maxThreads, recognitionSink)
	if err != nil {
		return nil, fmt.Errorf("recognize phones: %w", err)
	}

	shapes, err := animation.Animate(phones, e.shapes)
	if err != nil {
		return nil, fmt.Errorf("animate phones: %w", err)
	}
	animationSink.Report(1)

	e.logger.Info().
		Int("phones", phones.Len()).
		Int("cues", shapes.Len()).
		Msg("analysis complete")
	return shapes, nil
}

// AnimateClipCues runs AnimateClip and flattens the result to mouth cues.
func (e *Engine) AnimateClipCues(ctx context.Context, clip *audio.Clip, dialog string, maxThreads int, sink progress.Sink) ([]export.MouthCue, error) {
	shapes, err := e.AnimateClip(ctx, clip, dialog, maxThreads, sink)
	if err != nil {
		return nil, err
	}
	return export.Cues(shapes), nil
}
