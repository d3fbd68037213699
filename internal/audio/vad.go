package audio

import "time"

// Span is a contiguous stretch of a clip classified as speech or silence.
// DetectSpeech returns spans covering the whole clip with no gaps.
type Span struct {
	Start  time.Duration
	End    time.Duration
	Speech bool
}

// VADConfig holds energy-based voice activity detection settings.
type VADConfig struct {
	Threshold    float64 `json:"threshold" mapstructure:"threshold"`           // RMS threshold, default 0.01
	FrameMs      int     `json:"frame_ms" mapstructure:"frame_ms"`             // analysis frame length, default 10
	MinSpeechMs  int     `json:"min_speech_ms" mapstructure:"min_speech_ms"`   // shorter speech runs are discarded, default 100
	MaxSilenceMs int     `json:"max_silence_ms" mapstructure:"max_silence_ms"` // silence shorter than this is bridged, default 300
}

// DefaultVADConfig returns sensible defaults for 16 kHz speech.
func DefaultVADConfig() *VADConfig {
	return &VADConfig{
		Threshold:    0.01,
		FrameMs:      10,
		MinSpeechMs:  100,
		MaxSilenceMs: 300,
	}
}

// DetectSpeech splits the clip into alternating silence/speech spans using
// frame RMS energy. Brief silences inside speech are bridged and very short
// speech bursts dropped, so the result is stable enough to drive animation
// directly.
func DetectSpeech(c *Clip, cfg *VADConfig) []Span {
	if cfg == nil {
		cfg = DefaultVADConfig()
	}

	frameSamples := c.sampleRate * cfg.FrameMs / 1000
	if frameSamples < 1 {
		frameSamples = 1
	}

	frames := (len(c.samples) + frameSamples - 1) / frameSamples
	active := make([]bool, frames)
	for i := 0; i < frames; i++ {
		start := i * frameSamples
		active[i] = c.RMS(start, start+frameSamples) >= cfg.Threshold
	}

	if cfg.FrameMs > 0 {
		fillShortRuns(active, false, cfg.MaxSilenceMs/cfg.FrameMs)
		fillShortRuns(active, true, cfg.MinSpeechMs/cfg.FrameMs)
	}

	frameDur := time.Duration(frameSamples) * time.Second / time.Duration(c.sampleRate)
	total := c.Duration()

	var spans []Span
	for i := 0; i < frames; {
		j := i
		for j < frames && active[j] == active[i] {
			j++
		}
		start := time.Duration(i) * frameDur
		end := time.Duration(j) * frameDur
		if j == frames || end > total {
			end = total
		}
		if end > start {
			spans = append(spans, Span{Start: start, End: end, Speech: active[i]})
		}
		i = j
	}
	if len(spans) == 0 && total > 0 {
		spans = append(spans, Span{Start: 0, End: total, Speech: false})
	}
	return spans
}

// fillShortRuns flips runs of the given value shorter than minLen frames,
// provided the run has neighbors on both sides (clip edges are kept as-is).
func fillShortRuns(active []bool, value bool, minLen int) {
	if minLen <= 0 {
		return
	}
	for i := 0; i < len(active); {
		j := i
		for j < len(active) && active[j] == active[i] {
			j++
		}
		if active[i] == value && j-i < minLen && i > 0 && j < len(active) {
			for k := i; k < j; k++ {
				active[k] = !value
			}
		}
		i = j
	}
}
