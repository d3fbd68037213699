package recognition

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

func silentClip(t *testing.T, rate int, dur time.Duration) *audio.Clip {
	t.Helper()
	clip, err := audio.NewClip(make([]float64, int(float64(rate)*dur.Seconds())), rate)
	require.NoError(t, err)
	return clip
}

func speechClip(t *testing.T, rate int, leadMs, speechMs, tailMs int) *audio.Clip {
	t.Helper()
	toSamples := func(ms int) int { return rate * ms / 1000 }
	samples := make([]float64, 0, toSamples(leadMs+speechMs+tailMs))
	for i := 0; i < toSamples(leadMs); i++ {
		samples = append(samples, 0)
	}
	for i := 0; i < toSamples(speechMs); i++ {
		samples = append(samples, 0.4*math.Sin(2*math.Pi*180*float64(i)/float64(rate)))
	}
	for i := 0; i < toSamples(tailMs); i++ {
		samples = append(samples, 0)
	}
	clip, err := audio.NewClip(samples, rate)
	require.NoError(t, err)
	return clip
}

func TestEnergyRecognizer_SilentClip(t *testing.T) {
	r := NewEnergyRecognizer(nil, zerolog.Nop())
	clip := silentClip(t, 16000, time.Second)

	phones, err := r.RecognizePhones(context.Background(), clip, "", 1, nil)
	require.NoError(t, err)

	segments := phones.Segments()
	require.Len(t, segments, 1)
	assert.Equal(t, viseme.PhoneSil, segments[0].Value)
	assert.Equal(t, time.Duration(0), segments[0].Start)
	assert.Equal(t, clip.Duration(), segments[0].End)
}

func TestEnergyRecognizer_SpeechRun(t *testing.T) {
	r := NewEnergyRecognizer(nil, zerolog.Nop())
	clip := speechClip(t, 16000, 400, 600, 400)

	phones, err := r.RecognizePhones(context.Background(), clip, "", 1, nil)
	require.NoError(t, err)

	segments := phones.Segments()
	require.Len(t, segments, 3)
	assert.Equal(t, viseme.PhoneSil, segments[0].Value)
	assert.Equal(t, viseme.PhoneAH, segments[1].Value)
	assert.Equal(t, viseme.PhoneSil, segments[2].Value)

	// Segments cover the clip without gaps.
	assert.Equal(t, time.Duration(0), segments[0].Start)
	assert.Equal(t, clip.Duration(), segments[2].End)
	assert.Equal(t, segments[0].End, segments[1].Start)
	assert.Equal(t, segments[1].End, segments[2].Start)
}

func TestEnergyRecognizer_NilClip(t *testing.T) {
	r := NewEnergyRecognizer(nil, zerolog.Nop())
	_, err := r.RecognizePhones(context.Background(), nil, "", 1, nil)
	assert.ErrorIs(t, err, ErrRecognition)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestEnergyRecognizer_CanceledContext(t *testing.T) {
	r := NewEnergyRecognizer(nil, zerolog.Nop())
	clip := silentClip(t, 16000, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.RecognizePhones(ctx, clip, "", 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnergyRecognizer_ReportsProgress(t *testing.T) {
	r := NewEnergyRecognizer(nil, zerolog.Nop())
	clip := speechClip(t, 16000, 400, 600, 400)

	var fractions []float64
	sink := sinkFunc(func(f float64) { fractions = append(fractions, f) })

	_, err := r.RecognizePhones(context.Background(), clip, "", 1, sink)
	require.NoError(t, err)
	require.NotEmpty(t, fractions)
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
}

type sinkFunc func(float64)

func (f sinkFunc) Report(fraction float64) { f(fraction) }
