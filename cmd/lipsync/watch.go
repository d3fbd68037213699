package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/engine"
	"github.com/biolimbo/lip-sync-engine/internal/export"
)

// Writers may still be flushing when the create event fires; give them a
// moment before decoding.
const watchSettleDelay = 200 * time.Millisecond

func newWatchCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Watch a directory and analyze WAV files as they appear",
		Long:  "Watches DIR for new .wav files and writes a sibling .json mouth-cue file for each.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensure(); err != nil {
				return err
			}
			defer ctx.close()

			eng, err := ctx.newEngine()
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), ctx, eng, args[0])
		},
	}
	return cmd
}

func runWatch(ctx context.Context, cmdCtx *commandContext, eng *engine.Engine, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cmdCtx.logger.With().Str("component", "watch").Logger()
	logger.Info().Str("dir", dir).Msg("watching for WAV files")

	for {
		select {
		case <-signalCtx.Done():
			logger.Info().Msg("stopping watch")
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".wav") {
				continue
			}
			time.Sleep(watchSettleDelay)
			if err := analyzeToSibling(signalCtx, cmdCtx, eng, event.Name); err != nil {
				logger.Error().Err(err).Str("file", event.Name).Msg("analysis failed")
				continue
			}
			logger.Info().Str("file", event.Name).Msg("analyzed")
		}
	}
}

func analyzeToSibling(ctx context.Context, cmdCtx *commandContext, eng *engine.Engine, wavPath string) error {
	clip, err := audio.ReadWAVFile(wavPath)
	if err != nil {
		return err
	}
	cues, err := eng.AnimateClipCues(ctx, clip, "", cmdCtx.cfg.Recognizer.MaxThreads, nil)
	if err != nil {
		return err
	}

	outPath := strings.TrimSuffix(wavPath, filepath.Ext(wavPath)) + ".json"
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	return export.WriteJSON(f, cues)
}
