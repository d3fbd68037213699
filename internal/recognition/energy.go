package recognition

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/progress"
	"github.com/biolimbo/lip-sync-engine/internal/timeline"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

// EnergyRecognizer is the local fallback provider. It runs an RMS-energy
// VAD over the clip and emits a neutral open vowel for speech runs and SIL
// for silence. The result animates as a simple mouth flap; it carries no
// phonetic detail but needs no external service or models.
type EnergyRecognizer struct {
	cfg    *audio.VADConfig
	logger zerolog.Logger
}

// NewEnergyRecognizer creates the provider. A nil cfg uses defaults.
func NewEnergyRecognizer(cfg *audio.VADConfig, logger zerolog.Logger) *EnergyRecognizer {
	if cfg == nil {
		cfg = audio.DefaultVADConfig()
	}
	return &EnergyRecognizer{
		cfg:    cfg,
		logger: logger.With().Str("recognizer", "energy").Logger(),
	}
}

// Name returns "energy".
func (r *EnergyRecognizer) Name() string {
	return "energy"
}

// RecognizePhones implements Recognizer. The dialog text and thread count
// are ignored: the detector is single-pass and purely acoustic.
func (r *EnergyRecognizer) RecognizePhones(ctx context.Context, clip *audio.Clip, dialog string, maxThreads int, sink progress.Sink) (*timeline.Bounded[viseme.Phone], error) {
	if sink == nil {
		sink = progress.NullSink{}
	}
	if err := validateClip(clip); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spans := audio.DetectSpeech(clip, r.cfg)
	phones, err := timeline.NewBounded[viseme.Phone](clip.Duration())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
	}

	for i, span := range spans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		phone := viseme.PhoneSil
		if span.Speech {
			phone = viseme.PhoneAH
		}
		seg := timeline.Segment[viseme.Phone]{Start: span.Start, End: span.End, Value: phone}
		if err := phones.Set(seg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
		}
		sink.Report(float64(i+1) / float64(len(spans)))
	}

	r.logger.Debug().
		Int("spans", len(spans)).
		Dur("duration", clip.Duration()).
		Msg("energy recognition complete")
	sink.Report(1)
	return phones, nil
}
