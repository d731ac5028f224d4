package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/stylegest/internal/report"
	"github.com/dgallion1/stylegest/internal/store"
)

// handleListReports lists recently stored reports.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	metas, err := s.reports.List(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list reports: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"reports": metas})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(report.Summary(rep)))
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")
	err := s.reports.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to delete report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.log.Info("report deleted", "report_id", id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": id})
}

// loadReport fetches the report named in the URL, writing the error
// response itself when it cannot.
func (s *Server) loadReport(w http.ResponseWriter, r *http.Request) (report.StyleReport, bool) {
	id := chi.URLParam(r, "reportID")
	rep, err := s.reports.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "report not found", http.StatusNotFound)
		return report.StyleReport{}, false
	}
	if err != nil {
		jsonError(w, "failed to load report: "+err.Error(), http.StatusInternalServerError)
		return report.StyleReport{}, false
	}
	return rep, true
}
