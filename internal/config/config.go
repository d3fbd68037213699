// Package config provides configuration management for the lip-sync engine.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/logging"
	"github.com/biolimbo/lip-sync-engine/internal/recognition"
)

// Config holds all engine configuration.
type Config struct {
	Recognizer RecognizerConfig `mapstructure:"recognizer"`
	VAD        audio.VADConfig  `mapstructure:"vad"`
	Log        logging.Config   `mapstructure:"log"`
	Serve      ServeConfig      `mapstructure:"serve"`
}

// RecognizerConfig selects and configures the phone recognizer.
type RecognizerConfig struct {
	Provider   string                   `mapstructure:"provider"` // energy or stream
	MaxThreads int                      `mapstructure:"max_threads"`
	Stream     recognition.StreamConfig `mapstructure:"stream"`
}

// ServeConfig configures the websocket analysis endpoint.
type ServeConfig struct {
	Addr         string        `mapstructure:"addr"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Load reads configuration from defaults, an optional config file, and
// LIPSYNC_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LIPSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("lipsync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.lipsync")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("recognizer.provider", "energy")
	v.SetDefault("recognizer.max_threads", 1)

	stream := recognition.DefaultStreamConfig()
	v.SetDefault("recognizer.stream.url", stream.URL)
	v.SetDefault("recognizer.stream.chunk_ms", stream.ChunkMs)
	v.SetDefault("recognizer.stream.handshake_timeout", stream.HandshakeTimeout)
	v.SetDefault("recognizer.stream.read_timeout", stream.ReadTimeout)

	vad := audio.DefaultVADConfig()
	v.SetDefault("vad.threshold", vad.Threshold)
	v.SetDefault("vad.frame_ms", vad.FrameMs)
	v.SetDefault("vad.min_speech_ms", vad.MinSpeechMs)
	v.SetDefault("vad.max_silence_ms", vad.MaxSilenceMs)

	log := logging.DefaultConfig()
	v.SetDefault("log.level", log.Level)
	v.SetDefault("log.console", log.Console)

	v.SetDefault("serve.addr", "127.0.0.1:8771")
	v.SetDefault("serve.write_timeout", 30*time.Second)
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Recognizer.Provider {
	case "energy", "stream":
	default:
		return fmt.Errorf("unknown recognizer provider %q", c.Recognizer.Provider)
	}
	if c.Recognizer.MaxThreads < 1 {
		return fmt.Errorf("recognizer.max_threads must be >= 1, got %d", c.Recognizer.MaxThreads)
	}
	if c.Recognizer.Provider == "stream" && c.Recognizer.Stream.URL == "" {
		return fmt.Errorf("recognizer.stream.url is required for the stream provider")
	}
	if c.VAD.Threshold < 0 || c.VAD.FrameMs <= 0 {
		return fmt.Errorf("invalid vad settings: threshold %v, frame_ms %d", c.VAD.Threshold, c.VAD.FrameMs)
	}
	return nil
}
