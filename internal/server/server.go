// Package server exposes the analysis pipeline over a websocket endpoint
// for browser-embedded callers.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/engine"
	"github.com/biolimbo/lip-sync-engine/internal/export"
	"github.com/biolimbo/lip-sync-engine/internal/progress"
)

// Config holds server settings.
type Config struct {
	Addr         string
	WriteTimeout time.Duration
}

// Server accepts one analysis per websocket connection: a JSON start frame,
// binary PCM16 frames, a done frame, then replies with progress events and
// the final mouth-cue document.
type Server struct {
	cfg      Config
	engine   *engine.Engine
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// New creates a server around the given engine.
func New(cfg Config, eng *engine.Engine, logger zerolog.Logger) *Server {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	return &Server{
		cfg:    cfg,
		engine: eng,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			// The endpoint is consumed from file:// and app origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With().Str("component", "server").Logger(),
	}
}

// Handler returns the HTTP handler serving the /analyze endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ListenAndServe blocks serving the endpoint until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("listening")
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type analyzeStart struct {
	Type       string `json:"type"`
	SampleRate int    `json:"sample_rate"`
	Dialog     string `json:"dialog,omitempty"`
	MaxThreads int    `json:"max_threads,omitempty"`
}

type analyzeEvent struct {
	Type      string            `json:"type"`
	Fraction  float64           `json:"fraction,omitempty"`
	MouthCues []export.MouthCue `json:"mouthCues,omitempty"`
	Message   string            `json:"message,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	logger := s.logger.With().Str("session", session).Logger()
	logger.Debug().Str("remote", r.RemoteAddr).Msg("session opened")

	if err := s.runSession(r.Context(), conn, logger); err != nil {
		logger.Warn().Err(err).Msg("session failed")
		s.writeEvent(conn, analyzeEvent{Type: "error", Message: err.Error()})
	}
}

func (s *Server) runSession(ctx context.Context, conn *websocket.Conn, logger zerolog.Logger) error {
	var start analyzeStart
	if err := conn.ReadJSON(&start); err != nil {
		return errors.New("expected JSON start frame")
	}
	if start.Type != "start" || start.SampleRate <= 0 {
		return errors.New("invalid start frame")
	}

	pcm, err := readAudioFrames(conn)
	if err != nil {
		return err
	}

	clip, err := audio.FromPCM16(pcm, start.SampleRate)
	if err != nil {
		return err
	}

	sink := progress.Func(func(fraction float64) {
		s.writeEvent(conn, analyzeEvent{Type: "progress", Fraction: fraction})
	})

	cues, err := s.engine.AnimateClipCues(ctx, clip, start.Dialog, start.MaxThreads, sink)
	if err != nil {
		return err
	}
	logger.Info().Int("cues", len(cues)).Dur("audio", clip.Duration()).Msg("analysis served")
	return s.writeEvent(conn, analyzeEvent{Type: "result", MouthCues: cues})
}

// readAudioFrames consumes binary PCM16 frames until a "done" text frame.
func readAudioFrames(conn *websocket.Conn) ([]int16, error) {
	var pcm []int16
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return nil, errors.New("connection closed before done frame")
		}
		switch messageType {
		case websocket.BinaryMessage:
			if len(data)%2 != 0 {
				return nil, errors.New("odd-length PCM16 frame")
			}
			for i := 0; i < len(data); i += 2 {
				pcm = append(pcm, int16(uint16(data[i])|uint16(data[i+1])<<8))
			}
		case websocket.TextMessage:
			var event analyzeEvent
			if err := json.Unmarshal(data, &event); err != nil || event.Type != "done" {
				return nil, errors.New("unexpected text frame before done")
			}
			return pcm, nil
		}
	}
}

func (s *Server) writeEvent(conn *websocket.Conn, event analyzeEvent) error {
	_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	return conn.WriteJSON(event)
}
