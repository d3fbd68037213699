// Package recognition turns audio clips into time-aligned phone timelines.
// The animation core treats recognizers as collaborators behind a narrow
// interface; two providers ship here, an energy-based local fallback and a
// websocket client for an external phoneme-alignment service.
package recognition

import (
	"context"
	"errors"

	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/progress"
	"github.com/biolimbo/lip-sync-engine/internal/timeline"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

// Common errors
var (
	ErrRecognition = errors.New("recognition failed")
	ErrEmptyAudio  = errors.New("audio clip is empty")
	ErrSampleRate  = errors.New("unsupported sample rate")
)

// Recognizer produces a time-aligned phone timeline from an audio clip.
// dialog is the known transcript, empty when unavailable; providers may use
// it to improve alignment. maxThreads is advisory; implementations without
// internal parallelism ignore it. The returned timeline is exclusively
// owned by the caller.
type Recognizer interface {
	// Name returns the provider identifier (e.g. "energy", "stream").
	Name() string

	// RecognizePhones analyzes the clip and returns phone segments clipped
	// to [0, clip duration]. sink receives 0..1 completion updates.
	RecognizePhones(ctx context.Context, clip *audio.Clip, dialog string, maxThreads int, sink progress.Sink) (*timeline.Bounded[viseme.Phone], error)
}

func validateClip(clip *audio.Clip) error {
	if clip == nil || clip.SampleCount() == 0 {
		return ErrEmptyAudio
	}
	if clip.SampleRate() <= 0 {
		return ErrSampleRate
	}
	return nil
}
