package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/biolimbo/lip-sync-engine/internal/config"
	"github.com/biolimbo/lip-sync-engine/internal/engine"
	"github.com/biolimbo/lip-sync-engine/internal/logging"
	"github.com/biolimbo/lip-sync-engine/internal/recognition"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := &commandContext{configPath: &configFlag, logLevel: &logLevelFlag}

	rootCmd := &cobra.Command{
		Use:           "lipsync",
		Short:         "Convert speech audio into timestamped mouth-shape cues",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newShapesCommand())

	return rootCmd
}

// commandContext lazily loads config, logger, and engine shared by commands.
type commandContext struct {
	configPath *string
	logLevel   *string

	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
}

func (c *commandContext) ensure() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(*c.configPath)
	if err != nil {
		return err
	}
	if *c.logLevel != "" {
		cfg.Log.Level = *c.logLevel
	}
	logger, closer, err := logging.New(&cfg.Log)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	c.logCloser = closer
	return nil
}

func (c *commandContext) close() {
	if c.logCloser != nil {
		c.logCloser.Close()
	}
}

func (c *commandContext) newRecognizer() (recognition.Recognizer, error) {
	switch c.cfg.Recognizer.Provider {
	case "energy":
		return recognition.NewEnergyRecognizer(&c.cfg.VAD, c.logger), nil
	case "stream":
		return recognition.NewStreamRecognizer(&c.cfg.Recognizer.Stream, c.logger), nil
	default:
		return nil, fmt.Errorf("unknown recognizer provider %q", c.cfg.Recognizer.Provider)
	}
}

func (c *commandContext) newEngine() (*engine.Engine, error) {
	recognizer, err := c.newRecognizer()
	if err != nil {
		return nil, err
	}
	return engine.New(recognizer, viseme.BasicShapes(), c.logger), nil
}
