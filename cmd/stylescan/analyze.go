package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/stylegest/internal/config"
	"github.com/dgallion1/stylegest/internal/pipeline"
	"github.com/dgallion1/stylegest/internal/report"
)

const (
	reportFile  = "journal_style_report.json"
	summaryFile = "style_summary.md"
)

// newAnalyzer is replaced in tests to avoid loading the tagging model.
var newAnalyzer = pipeline.NewAnalyzerFromConfig

func newAnalyzeCmd(cfg config.Config) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "analyze <dir>",
		Short: "Analyze every supported paper in a directory",
		Long: `Analyze every .pdf, .docx, .txt, .md and .html file directly inside <dir>
and write journal_style_report.json and style_summary.md to the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), cmd, cfg, args[0], outDir)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.DefaultJournalName, "journal", "j", cfg.DefaultJournalName, "Journal name recorded in the report")
	f.StringVarP(&outDir, "out", "o", ".", "Directory for the report files")
	f.IntVar(&cfg.DocumentWorkers, "workers", cfg.DocumentWorkers, "Documents analyzed concurrently")
	f.IntVar(&cfg.ChunkMaxChars, "chunk-max", cfg.ChunkMaxChars, "Maximum characters per extraction chunk")
	f.IntVar(&cfg.ChunkRetryChars, "chunk-retry", cfg.ChunkRetryChars, "Chunk bound for the degraded retry")
	f.StringVar(&cfg.LexiconFile, "lexicon", cfg.LexiconFile, "YAML file overriding the built-in word lists")
	f.IntVar(&cfg.TopKNouns, "top-nouns", cfg.TopKNouns, "Nouns kept per vocabulary list")
	f.IntVar(&cfg.TopKVerbs, "top-verbs", cfg.TopKVerbs, "Verbs kept per vocabulary list")
	f.BoolVar(&cfg.PDFFallbackPdftotext, "pdftotext", cfg.PDFFallbackPdftotext, "Fall back to pdftotext for unreadable PDFs")
	return cmd
}

func runAnalyze(ctx context.Context, cmd *cobra.Command, cfg config.Config, dir, outDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := newLogger()
	if cfg.TaggerMaxChars < cfg.ChunkMaxChars {
		cfg.TaggerMaxChars = cfg.ChunkMaxChars
	}

	docs, failed, err := pipeline.LoadDir(dir, pipeline.ParserOptions(cfg), log)
	if err != nil {
		return err
	}
	for _, f := range failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", f)
	}

	analyzer, err := newAnalyzer(cfg, nil, log)
	if err != nil {
		return err
	}
	res, err := analyzer.AnalyzeCorpus(ctx, docs, cfg.DefaultJournalName, func(id string, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", id, err)
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "analyzed %s\n", id)
	})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", dir, err)
	}

	if err := writeReport(outDir, res.Report); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Analyzed %d papers; wrote %s and %s\n",
		res.Report.Metadata.PapersAnalyzed,
		filepath.Join(outDir, reportFile), filepath.Join(outDir, summaryFile))
	return nil
}

func writeReport(outDir string, r report.StyleReport) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, reportFile), append(body, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, summaryFile), []byte(report.Summary(r)), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
