package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/dgallion1/stylegest/internal/chunker"
	"github.com/dgallion1/stylegest/internal/config"
	"github.com/dgallion1/stylegest/internal/extract"
	"github.com/dgallion1/stylegest/internal/lexicon"
	"github.com/dgallion1/stylegest/internal/nlp"
	"github.com/dgallion1/stylegest/internal/parser"
	"github.com/dgallion1/stylegest/internal/report"
	"github.com/dgallion1/stylegest/internal/sections"
)

// NewAnalyzerFromConfig builds the production analyzer: the configured
// lexicon, the prose tagger, and the configured chunk and top-K bounds.
func NewAnalyzerFromConfig(cfg config.Config, stats *extract.LatencyStats, log *slog.Logger) (*Analyzer, error) {
	lex := lexicon.Default()
	if cfg.LexiconFile != "" {
		loaded, err := lexicon.LoadFile(cfg.LexiconFile)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
	}

	chunks := chunker.Config{MaxChars: cfg.ChunkMaxChars, RetryChars: cfg.ChunkRetryChars}
	ex := extract.NewExtractor(lex, nlp.NewProseTagger(cfg.TaggerMaxChars), chunks, stats, log)
	return NewAnalyzer(sections.NewDetector(sections.DefaultConfig()), ex, LimitsFromConfig(cfg), cfg.DocumentWorkers, log), nil
}

// LimitsFromConfig maps the TOPK_* settings onto report limits.
func LimitsFromConfig(cfg config.Config) report.Limits {
	return report.Limits{
		Nouns:        cfg.TopKNouns,
		Verbs:        cfg.TopKVerbs,
		Adjectives:   cfg.TopKAdjectives,
		Adverbs:      cfg.TopKAdverbs,
		Prepositions: cfg.TopKPrepositions,
		Hedges:       cfg.TopKHedges,
	}
}

// ParserOptions maps parser settings from cfg.
func ParserOptions(cfg config.Config) parser.Options {
	return parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}
}
