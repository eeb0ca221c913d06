package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"talent-track/internal/auth"
)

func NewRouter(a *API, verifier auth.Verifier, uploadsDir string) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Stored resumes; the upload handler returns /uploads/<name> URLs.
	if uploadsDir != "" {
		mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Public application surface
	mux.HandleFunc("/api/apply", a.ApplyHandler)
	mux.HandleFunc("/api/apply/resume", a.ResumeUploadHandler)

	// HR dashboard, behind session auth
	dashboard := http.NewServeMux()
	dashboard.HandleFunc("/api/dashboard/candidates", a.CandidatesHandler)
	dashboard.HandleFunc("/api/dashboard/candidates/search", a.SearchHandler)
	dashboard.HandleFunc("/api/dashboard/candidate", a.CandidateHandler)
	dashboard.HandleFunc("/api/dashboard/candidates/review", a.ReviewHandler)
	dashboard.HandleFunc("/api/dashboard/candidates/status", a.StatusHandler)
	dashboard.HandleFunc("/api/dashboard/selection", a.SelectionHandler)
	dashboard.HandleFunc("/api/dashboard/selection/toggle", a.SelectionToggleHandler)
	dashboard.HandleFunc("/api/dashboard/selection/clear", a.SelectionClearHandler)
	dashboard.HandleFunc("/api/dashboard/bulk/status", a.BulkStatusHandler)
	dashboard.HandleFunc("/api/dashboard/bulk/delete", a.BulkDeleteHandler)
	dashboard.HandleFunc("/api/dashboard/bulk/export", a.BulkExportHandler)
	dashboard.HandleFunc("/api/dashboard/bulk/notify", a.BulkNotifyHandler)
	dashboard.HandleFunc("/api/dashboard/analytics", a.AnalyticsHandler)
	dashboard.HandleFunc("/api/dashboard/analytics/report.csv", a.ReportCSVHandler)
	dashboard.HandleFunc("/api/dashboard/analytics/report.xlsx", a.ReportXLSXHandler)
	dashboard.HandleFunc("/api/dashboard/activity", a.ActivityHandler)
	dashboard.HandleFunc("/api/dashboard/comments", a.CommentsHandler)
	dashboard.HandleFunc("/api/dashboard/invite", a.InviteHandler)
	mux.Handle("/api/dashboard/", auth.Middleware(verifier, dashboard))

	return mux
}
