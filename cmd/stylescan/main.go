// Package main provides the stylescan CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dgallion1/stylegest/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

var verbose bool

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stylescan",
		Short: "Infer a journal's writing style from sample papers",
		Long: `stylescan segments sample papers into their conventional sections,
measures vocabulary, tense, sentence structure, transitions and citation
conventions, and writes a corpus-level style report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	cfg := config.Load()
	root.AddCommand(newAnalyzeCmd(cfg), newSectionsCmd(cfg))
	return root
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
