package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/freshfold/app/services"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/metrics"
	"github.com/shashiranjanraj/freshfold/pkg/storage"
	"github.com/shashiranjanraj/freshfold/pkg/view"
	"github.com/shashiranjanraj/freshfold/pkg/workerpool"
)

// reportStatuses are the filter choices offered on the reports page. The
// report itself accepts any status string; this list only drives the
// dropdown.
var reportStatuses = []string{
	"pending", "processing", "shipped", "completed", "cancelled", "refunded",
}

// ReportController serves the admin sales-report page and its exports.
type ReportController struct {
	reports   *services.ReportService
	exporters map[string]services.Exporter

	// archive copies generated export files onto the configured storage
	// disk in the background. Nil disables archiving.
	archive *workerpool.Pool
}

func NewReportController(reports *services.ReportService, exporters map[string]services.Exporter, archive *workerpool.Pool) *ReportController {
	return &ReportController{reports: reports, exporters: exporters, archive: archive}
}

// Show renders the filtered report page.
func (c *ReportController) Show(w http.ResponseWriter, r *http.Request) {
	filter := services.FilterFromQuery(r.URL.Query())
	c.render(w, r, filter)
}

// Daily renders the report for a single day (?date=YYYY-MM-DD, default today).
func (c *ReportController) Daily(w http.ResponseWriter, r *http.Request) {
	filter := services.DailyFilter(r.URL.Query().Get("date"), time.Now())
	c.render(w, r, filter)
}

// Overall renders the all-time report with no filter at all.
func (c *ReportController) Overall(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, services.ReportFilter{})
}

func (c *ReportController) render(w http.ResponseWriter, r *http.Request, filter services.ReportFilter) {
	snap, orders, err := c.reports.Generate(r.Context(), filter)
	if err != nil {
		metrics.ReportsGenerated.WithLabelValues("failed").Inc()
		logger.WithCtx(r.Context()).Error("report: generate", "error", err)
		view.ServerError(w, r)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("success").Inc()

	qs := ""
	if r.URL.RawQuery != "" {
		qs = "?" + r.URL.RawQuery
	}

	view.Render(w, r, http.StatusOK, "admin-reports", view.Data{
		"Title":       "Sales Reports",
		"Report":      snap,
		"Orders":      orders,
		"Filter":      filter,
		"Statuses":    reportStatuses,
		"QueryString": qs,
	})
}

// Export streams the report in the requested format. The format key comes
// from the URL: csv, excel, pdf or sheets. The current query string is
// forwarded so the export always matches the page the admin is looking at.
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	exporter, ok := c.exporters[format]
	if !ok {
		http.Error(w, "Unknown export format", http.StatusNotFound)
		return
	}

	log := logger.WithCtx(r.Context())
	filter := services.FilterFromQuery(r.URL.Query())

	snap, orders, err := c.reports.Generate(r.Context(), filter)
	if err != nil {
		metrics.ReportsGenerated.WithLabelValues("failed").Inc()
		log.Error("report export: generate", "format", format, "error", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}
	metrics.ReportsGenerated.WithLabelValues("success").Inc()

	start := time.Now()
	result, err := exporter.Export(r.Context(), snap, orders)
	if err != nil {
		if errors.Is(err, services.ErrSheetsCredentials) {
			log.Warn("report export: sheets credentials missing")
			http.Error(w, "Google Sheets export is not configured", http.StatusServiceUnavailable)
			return
		}
		log.Error("report export: render", "format", format, "error", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, start)

	// The spreadsheet export produces a remote document, not a download.
	if result.URL != "" {
		log.Info("report exported", "format", format, "url", result.URL)
		http.Redirect(w, r, result.URL, http.StatusFound)
		return
	}

	c.archiveCopy(result.Filename, result.Data, log)

	log.Info("report exported", "format", format, "file", result.Filename, "bytes", len(result.Data))
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	_, _ = w.Write(result.Data)
}

// archiveCopy persists a copy of the export on the storage disk without
// delaying the download. Backpressure drops the copy, never the response.
func (c *ReportController) archiveCopy(filename string, data []byte, log *slog.Logger) {
	if c.archive == nil {
		return
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	path := "exports/" + filename

	err := c.archive.Submit(func() {
		if err := storage.Put(path, buf); err != nil {
			logger.Warn("report export: archive failed", "path", path, "error", err)
		}
	})
	if err != nil {
		log.Warn("report export: archive skipped", "path", path, "error", err)
	}
}
