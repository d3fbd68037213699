package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biolimbo/lip-sync-engine/internal/audio"
	"github.com/biolimbo/lip-sync-engine/internal/export"
	"github.com/biolimbo/lip-sync-engine/internal/progress"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		dialogFile string
		format     string
		output     string
		threads    int
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE.wav",
		Short: "Analyze a WAV file and emit mouth cues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensure(); err != nil {
				return err
			}
			defer ctx.close()

			clip, err := audio.ReadWAVFile(args[0])
			if err != nil {
				return err
			}

			dialog := ""
			if dialogFile != "" {
				text, err := os.ReadFile(dialogFile)
				if err != nil {
					return fmt.Errorf("read dialog file: %w", err)
				}
				dialog = strings.TrimSpace(string(text))
			}

			eng, err := ctx.newEngine()
			if err != nil {
				return err
			}

			if threads < 1 {
				threads = ctx.cfg.Recognizer.MaxThreads
			}
			sink := progress.NewLogSink(ctx.logger, "analyze")
			cues, err := eng.AnimateClipCues(cmd.Context(), clip, dialog, threads, sink)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return writeCues(out, cues, format)
		},
	}

	cmd.Flags().StringVar(&dialogFile, "dialog-file", "", "Text file with the known transcript")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, tsv, or table")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVar(&threads, "threads", 0, "Max recognizer threads (default: from config)")

	return cmd
}

func writeCues(w io.Writer, cues []export.MouthCue, format string) error {
	switch format {
	case "json":
		return export.WriteJSON(w, cues)
	case "tsv":
		return export.WriteTSV(w, cues)
	case "table":
		_, err := fmt.Fprintln(w, export.RenderTable(cues))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
