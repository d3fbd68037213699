package recognition

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/progress"
	"github.com/biolimbo/lip-sync-engine/internal/timeline"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

// StreamConfig configures the websocket alignment client.
type StreamConfig struct {
	URL              string        `json:"url" mapstructure:"url"`
	ChunkMs          int           `json:"chunk_ms" mapstructure:"chunk_ms"`
	HandshakeTimeout time.Duration `json:"handshake_timeout" mapstructure:"handshake_timeout"`
	ReadTimeout      time.Duration `json:"read_timeout" mapstructure:"read_timeout"`
}

// DefaultStreamConfig returns defaults for a local alignment service.
func DefaultStreamConfig() *StreamConfig {
	return &StreamConfig{
		URL:              "ws://localhost:8770/align",
		ChunkMs:          250,
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      60 * time.Second,
	}
}

// StreamRecognizer talks to an external phoneme-alignment service over a
// websocket. It sends a JSON start frame describing the audio plus the
// optional dialog text, streams the clip as binary PCM16 chunks, and reads
// progress and phone events until the service reports completion.
type StreamRecognizer struct {
	cfg    *StreamConfig
	logger zerolog.Logger
}

// NewStreamRecognizer creates the provider. A nil cfg uses defaults.
func NewStreamRecognizer(cfg *StreamConfig, logger zerolog.Logger) *StreamRecognizer {
	if cfg == nil {
		cfg = DefaultStreamConfig()
	}
	return &StreamRecognizer{
		cfg:    cfg,
		logger: logger.With().Str("recognizer", "stream").Logger(),
	}
}

// Name returns "stream".
func (r *StreamRecognizer) Name() string {
	return "stream"
}

type streamStart struct {
	Type        string `json:"type"`
	SampleRate  int    `json:"sample_rate"`
	SampleCount int    `json:"sample_count"`
	Dialog      string `json:"dialog,omitempty"`
	MaxThreads  int    `json:"max_threads,omitempty"`
}

type streamEvent struct {
	Type     string        `json:"type"`
	Fraction float64       `json:"fraction,omitempty"`
	Phones   []streamPhone `json:"phones,omitempty"`
	Message  string        `json:"message,omitempty"`
}

type streamPhone struct {
	Phone string  `json:"phone"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// RecognizePhones implements Recognizer.
func (r *StreamRecognizer) RecognizePhones(ctx context.Context, clip *audio.Clip, dialog string, maxThreads int, sink progress.Sink) (*timeline.Bounded[viseme.Phone], error) {
	if sink == nil {
		sink = progress.NullSink{}
	}
	if err := validateClip(clip); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
	}

	dialer := websocket.Dialer{HandshakeTimeout: r.cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, r.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrRecognition, r.cfg.URL, err)
	}
	defer conn.Close()

	start := streamStart{
		Type:        "start",
		SampleRate:  clip.SampleRate(),
		SampleCount: clip.SampleCount(),
		Dialog:      dialog,
		MaxThreads:  maxThreads,
	}
	if err := conn.WriteJSON(start); err != nil {
		return nil, fmt.Errorf("%w: send start frame: %w", ErrRecognition, err)
	}

	if err := r.sendAudio(ctx, conn, clip); err != nil {
		return nil, err
	}
	if err := conn.WriteJSON(streamEvent{Type: "done"}); err != nil {
		return nil, fmt.Errorf("%w: send done frame: %w", ErrRecognition, err)
	}

	return r.readEvents(ctx, conn, clip.Duration(), sink)
}

func (r *StreamRecognizer) sendAudio(ctx context.Context, conn *websocket.Conn, clip *audio.Clip) error {
	samples := clip.Samples()
	chunkSamples := clip.SampleRate() * r.cfg.ChunkMs / 1000
	if chunkSamples < 1 {
		chunkSamples = len(samples)
	}
	for off := 0; off < len(samples); off += chunkSamples {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := off + chunkSamples
		if end > len(samples) {
			end = len(samples)
		}
		buf := make([]byte, 2*(end-off))
		for i, v := range samples[off:end] {
			s := int16(clampSample(v) * 32767)
			buf[2*i] = byte(s)
			buf[2*i+1] = byte(s >> 8)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			return fmt.Errorf("%w: send audio chunk: %w", ErrRecognition, err)
		}
	}
	return nil
}

func (r *StreamRecognizer) readEvents(ctx context.Context, conn *websocket.Conn, duration time.Duration, sink progress.Sink) (*timeline.Bounded[viseme.Phone], error) {
	phones, err := timeline.NewBounded[viseme.Phone](duration)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.cfg.ReadTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(r.cfg.ReadTimeout)); err != nil {
				return nil, fmt.Errorf("%w: set read deadline: %w", ErrRecognition, err)
			}
		}
		var event streamEvent
		if err := conn.ReadJSON(&event); err != nil {
			return nil, fmt.Errorf("%w: read event: %w", ErrRecognition, err)
		}

		switch event.Type {
		case "progress":
			sink.Report(event.Fraction)
		case "phones":
			for _, p := range event.Phones {
				phone, err := viseme.ParsePhone(p.Phone)
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
				}
				seg := timeline.Segment[viseme.Phone]{
					Start: secondsToDuration(p.Start),
					End:   secondsToDuration(p.End),
					Value: phone,
				}
				if err := phones.Set(seg); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
				}
			}
		case "complete":
			sink.Report(1)
			r.logger.Debug().Int("segments", phones.Len()).Msg("stream recognition complete")
			return phones, nil
		case "error":
			return nil, fmt.Errorf("%w: service: %s", ErrRecognition, event.Message)
		default:
			r.logger.Warn().Str("type", event.Type).Msg("ignoring unknown event")
		}
	}
}

func clampSample(v float64) float64 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	default:
		return v
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
