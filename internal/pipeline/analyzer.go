package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/stylegest/internal/citation"
	"github.com/dgallion1/stylegest/internal/extract"
	"github.com/dgallion1/stylegest/internal/paper"
	"github.com/dgallion1/stylegest/internal/report"
	"github.com/dgallion1/stylegest/internal/sections"
)

// ErrNoAnalyzableDocuments is returned when every document of a corpus
// failed or was empty.
var ErrNoAnalyzableDocuments = errors.New("no analyzable documents found")

var errEmptyDocument = errors.New("document has no text")

// DocumentError records why one document contributed nothing.
type DocumentError struct {
	ID  string
	Err error
}

func (e *DocumentError) Error() string { return fmt.Sprintf("%s: %v", e.ID, e.Err) }

func (e *DocumentError) Unwrap() error { return e.Err }

// Result is the outcome of a corpus run.
type Result struct {
	Report report.StyleReport
	Failed []*DocumentError
}

// ProgressFunc is called once per document as it finishes. err is nil for
// documents that were folded into the report.
type ProgressFunc func(id string, err error)

// Analyzer turns documents into a StyleReport.
type Analyzer struct {
	detector  *sections.Detector
	extractor *extract.Extractor
	limits    report.Limits
	workers   int
	log       *slog.Logger
	now       func() time.Time
}

// NewAnalyzer wires an analyzer. workers bounds how many documents are
// analyzed at once.
func NewAnalyzer(detector *sections.Detector, extractor *extract.Extractor, limits report.Limits, workers int, log *slog.Logger) *Analyzer {
	if detector == nil {
		detector = sections.NewDetector(sections.DefaultConfig())
	}
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		detector:  detector,
		extractor: extractor,
		limits:    limits,
		workers:   workers,
		log:       log,
		now:       time.Now,
	}
}

// AnalyzeDocument segments one document, extracts features for every
// styled section and detects its citation style. It depends only on doc.
func (a *Analyzer) AnalyzeDocument(doc paper.Document) (report.DocumentFeatures, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return report.DocumentFeatures{}, errEmptyDocument
	}
	log := a.log.With("doc", doc.ID)

	found := a.detector.Extract(doc.Text)
	features := report.DocumentFeatures{
		ID:       doc.ID,
		Sections: make(map[paper.Kind]extract.FeatureSet, len(found)),
		Citation: citation.Detect(doc.Text),
	}
	for kind, sec := range found {
		if !kind.Styled() {
			continue
		}
		features.Sections[kind] = a.extractor.ExtractSection(sec.Text, log.With("section", kind))
	}
	log.Debug("document analyzed", "sections", len(found), "citation_type", features.Citation.CitationType)
	return features, nil
}

// AnalyzeCorpus analyzes docs on a bounded set of goroutines and folds the
// results into one report in input order. A failing document is logged and
// skipped; only a corpus with no usable document is an error.
func (a *Analyzer) AnalyzeCorpus(ctx context.Context, docs []paper.Document, journal string, progress ProgressFunc) (Result, error) {
	type docResult struct {
		features report.DocumentFeatures
		err      error
	}
	results := make([]docResult, len(docs))
	done := make(chan int, len(docs))
	sem := make(chan struct{}, a.workers)

	started := 0
	for i := range docs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
		started++
		go func(i int) {
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					results[i].err = fmt.Errorf("panic: %v", r)
				}
				done <- i
			}()
			results[i].features, results[i].err = a.AnalyzeDocument(docs[i])
		}(i)
	}

	for range started {
		i := <-done
		if progress != nil {
			progress(docs[i].ID, results[i].err)
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("analyze corpus: %w", err)
	}

	agg := report.NewAggregator(a.limits)
	var failed []*DocumentError
	for i, r := range results {
		if r.err != nil {
			a.log.Warn("document skipped", "doc", docs[i].ID, "error", r.err)
			failed = append(failed, &DocumentError{ID: docs[i].ID, Err: r.err})
			continue
		}
		agg.Add(r.features)
	}
	if agg.Documents() == 0 {
		return Result{Failed: failed}, ErrNoAnalyzableDocuments
	}

	a.log.Info("corpus analyzed", "journal", journal, "documents", agg.Documents(), "failed", len(failed))
	return Result{Report: agg.Build(journal, a.now()), Failed: failed}, nil
}
