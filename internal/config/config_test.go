package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "energy", cfg.Recognizer.Provider)
	assert.Equal(t, 1, cfg.Recognizer.MaxThreads)
	assert.NotEmpty(t, cfg.Recognizer.Stream.URL)
	assert.Equal(t, 0.01, cfg.VAD.Threshold)
	assert.Equal(t, 10, cfg.VAD.FrameMs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Console)
	assert.Equal(t, "127.0.0.1:8771", cfg.Serve.Addr)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lipsync.yaml")
	content := `
recognizer:
  provider: stream
  max_threads: 4
  stream:
    url: ws://alignment:9000/align
vad:
  threshold: 0.02
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "stream", cfg.Recognizer.Provider)
	assert.Equal(t, 4, cfg.Recognizer.MaxThreads)
	assert.Equal(t, "ws://alignment:9000/align", cfg.Recognizer.Stream.URL)
	assert.Equal(t, 0.02, cfg.VAD.Threshold)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/lipsync.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"unknown provider", func(c *Config) { c.Recognizer.Provider = "sphinx" }, true},
		{"zero threads", func(c *Config) { c.Recognizer.MaxThreads = 0 }, true},
		{"stream without url", func(c *Config) {
			c.Recognizer.Provider = "stream"
			c.Recognizer.Stream.URL = ""
		}, true},
		{"negative threshold", func(c *Config) { c.VAD.Threshold = -0.5 }, true},
		{"zero frame", func(c *Config) { c.VAD.FrameMs = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
