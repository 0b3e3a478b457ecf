package reporthandler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timecard/internal/domain/report"
	"timecard/internal/domain/schedule"
	"timecard/internal/transport/http/api"
	"timecard/internal/transport/http/middleware"
	"timecard/internal/transport/http/shared"
)

type Handler struct {
	Builder *report.Builder
}

func NewHandler(builder *report.Builder) *Handler {
	return &Handler{Builder: builder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/report", h.handleCSV)
	r.Get("/report/pdf", h.handlePDF)
}

func (h *Handler) window(w http.ResponseWriter, r *http.Request) (string, time.Time, time.Time, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return "", time.Time{}, time.Time{}, false
	}

	from, err := shared.ParseDay(r.URL.Query().Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "from must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return "", time.Time{}, time.Time{}, false
	}
	to, err := shared.ParseDay(r.URL.Query().Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "to must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return "", time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		api.Fail(w, http.StatusBadRequest, "invalid_window", "to must not precede from", middleware.GetRequestID(r.Context()))
		return "", time.Time{}, time.Time{}, false
	}
	return user.UserID, from, to, true
}

func (h *Handler) failBuild(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, report.ErrScheduleGap):
		api.Fail(w, http.StatusConflict, "schedule_gap", "a report day has no governing condition", middleware.GetRequestID(r.Context()))
	case errors.Is(err, schedule.ErrIntegrity):
		api.Fail(w, http.StatusInternalServerError, "integrity_violation", "overlapping conditions in report window", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	userID, from, to, ok := h.window(w, r)
	if !ok {
		return
	}

	csv, err := h.Builder.BuildCSV(r.Context(), userID, from, to)
	if err != nil {
		h.failBuild(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s_%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02")))
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Printf("report csv write failed: %v", err)
	}
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	userID, from, to, ok := h.window(w, r)
	if !ok {
		return
	}

	pdf, err := h.Builder.BuildPDF(r.Context(), userID, from, to)
	if err != nil {
		h.failBuild(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s_%s.pdf", from.Format("2006-01-02"), to.Format("2006-01-02")))
	if _, err := w.Write(pdf); err != nil {
		log.Printf("report pdf write failed: %v", err)
	}
}
