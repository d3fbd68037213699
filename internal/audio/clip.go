// Package audio provides in-memory audio clips, WAV ingestion, and energy
// based speech detection for the lip-sync pipeline.
package audio

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Common errors
var (
	ErrEmptyClip      = errors.New("audio clip has no samples")
	ErrInvalidRate    = errors.New("invalid sample rate")
	ErrUnsupportedWAV = errors.New("unsupported WAV format")
)

// Clip is a mono audio buffer with samples normalized to [-1, 1].
// Immutable after construction.
type Clip struct {
	samples    []float64
	sampleRate int
}

// NewClip creates a clip from normalized mono samples. The slice is not
// copied; callers must not mutate it afterwards.
func NewClip(samples []float64, sampleRate int) (*Clip, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}
	if len(samples) == 0 {
		return nil, ErrEmptyClip
	}
	return &Clip{samples: samples, sampleRate: sampleRate}, nil
}

// FromPCM16 creates a clip from signed 16-bit mono PCM, the format the
// embedding host hands over.
func FromPCM16(pcm []int16, sampleRate int) (*Clip, error) {
	samples := make([]float64, len(pcm))
	for i, v := range pcm {
		samples[i] = float64(v) / 32768.0
	}
	return NewClip(samples, sampleRate)
}

// Samples returns the underlying sample buffer. Read-only.
func (c *Clip) Samples() []float64 {
	return c.samples
}

// SampleRate returns the sample rate in Hz.
func (c *Clip) SampleRate() int {
	return c.sampleRate
}

// SampleCount returns the number of samples.
func (c *Clip) SampleCount() int {
	return len(c.samples)
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return time.Duration(float64(len(c.samples)) / float64(c.sampleRate) * float64(time.Second))
}

// RMS returns the root mean square energy of the sample window
// [start, end), clamped to the clip bounds.
func (c *Clip) RMS(start, end int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(c.samples) {
		end = len(c.samples)
	}
	if start >= end {
		return 0
	}
	sum := 0.0
	for _, v := range c.samples[start:end] {
		sum += v * v
	}
	return math.Sqrt(sum / float64(end-start))
}
