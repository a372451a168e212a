package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-parser/internal/bootstrap"
	"resume-parser/internal/extract"
	"resume-parser/internal/parser"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/uploads"
)

// newRootCmd builds the command tree. loadConfig is replaced in tests.
func newRootCmd() *cobra.Command {
	return newRootCmdWithConfig(config.Load)
}

func newRootCmdWithConfig(loadConfig func() config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Parse resumes and inspect the parse history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			// stdout carries the JSON result.
			telemetry.Configure(telemetry.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: true})
		},
	}
	root.AddCommand(newParseCmd(loadConfig), newHistoryCmd(loadConfig))
	return root
}

func newParseCmd(loadConfig func() config.Config) *cobra.Command {
	var refineFlag, saveFlag bool
	cmd := &cobra.Command{
		Use:   "parse <file.pdf>",
		Short: "Extract fields from a local PDF resume",
		Long: `Extract name, email, phone, skills and experience from a PDF.

Examples:
  resumectl parse cv.pdf                  # Heuristic extraction only
  resumectl parse cv.pdf --refine         # Also refine with the configured LLM
  resumectl parse cv.pdf --refine --save  # Refine and append to the history log
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			path := args[0]
			if !extract.IsPDFName(path) {
				return fmt.Errorf("%s: file must be a PDF", path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			text, err := extract.ExtractTextFromBytes(ctx, data, "application/pdf", path)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("%s: %w", path, uploads.ErrNoText)
			}

			app, err := bootstrap.BuildCore(ctx, loadConfig())
			if err != nil {
				return err
			}
			defer app.Close()

			var rec parser.Record
			if refineFlag {
				rec = app.Parser.Parse(ctx, text)
			} else {
				rec = app.Parser.Extract(ctx, text)
			}
			if saveFlag {
				if _, err := app.HistoryService.Record(ctx, rec); err != nil {
					return fmt.Errorf("save history: %w", err)
				}
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().BoolVar(&refineFlag, "refine", false, "refine the draft with the configured LLM provider")
	cmd.Flags().BoolVar(&saveFlag, "save", false, "append the result to the history log")
	return cmd
}

func newHistoryCmd(loadConfig func() config.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print stored parse results, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			app, err := bootstrap.BuildCore(ctx, loadConfig())
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := app.HistoryService.List(ctx, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries (0 for all)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
