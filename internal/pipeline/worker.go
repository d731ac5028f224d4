package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dgallion1/stylegest/internal/parser"
	"github.com/dgallion1/stylegest/internal/report"
)

// ReportSaver persists finished reports.
type ReportSaver interface {
	Save(ctx context.Context, id string, r report.StyleReport) error
}

// Worker processes a single analysis job.
type Worker struct {
	analyzer   *Analyzer
	reports    ReportSaver
	parserOpts parser.Options
	log        *slog.Logger
}

func NewWorker(analyzer *Analyzer, reports ReportSaver, parserOpts parser.Options, log *slog.Logger) *Worker {
	return &Worker{
		analyzer:   analyzer,
		reports:    reports,
		parserOpts: parserOpts,
		log:        log,
	}
}

// Process loads, analyzes and stores one job's corpus.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "journal", job.Journal)

	// Phase 1: Load
	job.SetStatus(StatusLoading, "extracting text")
	docs, failed := LoadUploads(job.Uploads(), w.parserOpts, log)
	job.releaseUploads()
	for _, f := range failed {
		job.AddError(f.Error())
		job.DocumentDone(true)
	}
	if len(docs) == 0 {
		log.Error("no documents loaded", "failed", len(failed))
		job.AddError(ErrNoAnalyzableDocuments.Error())
		job.SetStatus(StatusFailed, "loading")
		return
	}
	log.Info("documents loaded", "documents", len(docs), "failed", len(failed))

	// Phase 2: Analyze
	job.SetStatus(StatusAnalyzing, "analyzing documents")
	res, err := w.analyzer.AnalyzeCorpus(ctx, docs, job.Journal, func(id string, err error) {
		if err != nil {
			job.AddError(fmt.Sprintf("%s: %s", id, err))
		}
		job.DocumentDone(err != nil)
	})
	if err != nil {
		log.Error("analysis failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "analyzing")
		return
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing report")
	reportID := uuid.NewString()
	if err := w.reports.Save(ctx, reportID, res.Report); err != nil {
		log.Error("store report failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	job.SetReportID(reportID)
	log.Info("report stored", "report_id", reportID, "papers", res.Report.Metadata.PapersAnalyzed)

	if len(failed) > 0 || len(res.Failed) > 0 {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}
