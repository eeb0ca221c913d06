package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"talent-track/internal/analytics"
	"talent-track/internal/export"
)

const defaultWindowDays = 30

func windowDays(r *http.Request) int {
	if raw := r.URL.Query().Get("days"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			return days
		}
	}
	return defaultWindowDays
}

// AnalyticsHandler computes the hiring analytics report
// @Summary Analytics report
// @Description Pipeline counts, daily trend, top roles, score histogram and period metrics over a trailing window
// @Tags analytics
// @Produce json
// @Param days query int false "Window length in days (default 30)"
// @Success 200 {object} analytics.Report
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/analytics [get]
func (a *API) AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	list, err := a.candidates(r.Context())
	if err != nil {
		a.logger.Error("failed to list candidates", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	a.writeJSON(w, http.StatusOK, analytics.Aggregate(list, windowDays(r), a.now()))
}

// ReportCSVHandler downloads the hiring report as CSV
// @Summary Hiring report CSV
// @Description Compact per-candidate report rows as a CSV attachment
// @Tags analytics
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/analytics/report.csv [get]
func (a *API) ReportCSVHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	list, err := a.candidates(r.Context())
	if err != nil {
		a.logger.Error("failed to list candidates", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	content := export.EncodeReportCSV(list)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("hiring-report", a.now())+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		a.logger.Warn("failed to stream report", zap.Error(err))
	}
}

// ReportXLSXHandler downloads the hiring report as a styled workbook
// @Summary Hiring report XLSX
// @Description Two-sheet workbook: report summary plus the full candidate table
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param days query int false "Window length in days (default 30)"
// @Success 200 {string} string "XLSX content"
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/analytics/report.xlsx [get]
func (a *API) ReportXLSXHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	list, err := a.candidates(r.Context())
	if err != nil {
		a.logger.Error("failed to list candidates", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	now := a.now()
	report := analytics.Aggregate(list, windowDays(r), now)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="hiring-report-`+now.Format("2006-01-02")+`.xlsx"`)
	if err := export.WriteReportXLSX(w, list, report, now); err != nil {
		a.logger.Error("failed to write workbook", zap.Error(err))
	}
}
