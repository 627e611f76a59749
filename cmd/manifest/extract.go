package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/manifest"
	"github.com/tsawler/manifest/format"
	"github.com/tsawler/manifest/internal/config"
	"github.com/tsawler/manifest/internal/logging"
	"github.com/tsawler/manifest/internal/report"
)

type extractOptions struct {
	output      string
	inputFormat string
	threshold   float64
	preset      string
	fields      []string
	sheet       int
	encoding    string
	skipHeader  bool
	concurrency int
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Extract the line-item table and fields from one or more files",
		Long: `Extract the line-item table and fields from one or more files.

Files are processed concurrently and reported in argument order. Use "-" to
read a single document from stdin together with --input-format.

Examples:
  # Extract an invoice and print a terminal report
  manifest extract invoice.csv

  # Only the fields of the invoice preset, as JSON lines
  manifest extract --preset invoice --output json *.xlsx

  # A Windows-1252 export piped through stdin
  cat legacy.csv | manifest extract --encoding windows-1252 --input-format csv -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "text", "output format (text, json, markdown, csv)")
	f.StringVar(&opts.inputFormat, "input-format", "csv", "format of stdin input (csv, tsv, xlsx, html, pdf)")
	f.Float64Var(&opts.threshold, "threshold", 70, "fill percentage a row must exceed to be a table row")
	f.StringVar(&opts.preset, "preset", "", "field preset (full, consignment, invoice)")
	f.StringSliceVar(&opts.fields, "fields", nil, "field extractors to run (see 'manifest fields')")
	f.IntVar(&opts.sheet, "sheet", 0, "0-based worksheet index for XLSX input")
	f.StringVar(&opts.encoding, "encoding", "", "CSV/TSV encoding (utf-8, windows-1252, iso-8859-1)")
	f.BoolVar(&opts.skipHeader, "skip-header", false, "drop the first CSV/TSV line")
	f.IntVar(&opts.concurrency, "concurrency", 0, "files processed at once (0 uses the config value)")
	return cmd
}

// mergeFlags overrides cfg with every flag the user set explicitly.
func mergeFlags(cmd *cobra.Command, g *globalOptions, opts *extractOptions, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	if changed("threshold") {
		cfg.Classifier.Threshold = opts.threshold
	}
	if changed("preset") {
		cfg.Fields.Preset = opts.preset
		cfg.Fields.Enabled = nil
	}
	if changed("fields") {
		cfg.Fields.Enabled = opts.fields
	}
	if changed("sheet") {
		cfg.Input.Sheet = opts.sheet
	}
	if changed("encoding") {
		cfg.Input.Encoding = opts.encoding
	}
	if changed("skip-header") {
		cfg.Input.SkipHeader = opts.skipHeader
	}
	if changed("concurrency") && opts.concurrency > 0 {
		cfg.Batch.Concurrency = opts.concurrency
	}
}

func runExtract(cmd *cobra.Command, g *globalOptions, opts *extractOptions, args []string) error {
	out, err := report.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	mergeFlags(cmd, g, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("extraction started", zap.Int("files", len(args)), zap.Int("concurrency", cfg.Batch.Concurrency))

	var results []manifest.FileResult
	if len(args) == 1 && args[0] == "-" {
		results = []manifest.FileResult{extractStdin(cfg, opts, logger)}
	} else {
		base := cfg.Apply(manifest.Open("").Logger(logger))
		results = manifest.ExtractFiles(cmd.Context(), base, cfg.Batch.Concurrency, args...)
	}

	if err := report.Write(cmd.OutOrStdout(), out, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error("extraction failed", zap.String("source", r.Filename), zap.Error(r.Err))
		}
	}
	logger.Info("extraction finished", zap.Int("files", len(results)), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func extractStdin(cfg *config.Config, opts *extractOptions, logger *zap.Logger) manifest.FileResult {
	fr := manifest.FileResult{Filename: "-"}
	f, err := format.Parse(opts.inputFormat)
	if err != nil {
		fr.Err = fmt.Errorf("input format %q: %w", opts.inputFormat, err)
		return fr
	}
	fr.Result, fr.Warnings, fr.Err = cfg.Apply(manifest.FromReader(os.Stdin, f).Logger(logger)).Result()
	return fr
}
