package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/content-automation/internal/apperror"
	"github.com/sakif/content-automation/internal/auth"
	"github.com/sakif/content-automation/internal/service"
)

// AnalyticsHandler exposes the per-user usage report.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleReport returns the authenticated user's usage summary.
//
// HTTP: GET /analytics/
//
// Response: 200 + {"content_by_type": [...], "top_keywords": [...], "total_content": N}
//
// A user with no saved content gets empty lists and a zero total, not an
// error. The report is read-only and computed fresh on every call.
func (h *AnalyticsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	report, err := h.analytics.Report(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
