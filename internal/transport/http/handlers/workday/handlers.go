package workdayhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timecard/internal/domain/schedule"
	"timecard/internal/domain/worklog"
	"timecard/internal/transport/http/api"
	"timecard/internal/transport/http/middleware"
	"timecard/internal/transport/http/shared"
)

type Handler struct {
	Log *worklog.Store
}

func NewHandler(log *worklog.Store) *Handler {
	return &Handler{Log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/days/{day}", func(r chi.Router) {
		r.Route("/work", func(r chi.Router) {
			r.Get("/", h.handleDay)
			r.Post("/", h.handleLogWork)
			r.Route("/{segmentID}", func(r chi.Router) {
				r.Put("/", h.handleUpdateSegment)
				r.Delete("/", h.handleDeleteSegment)
			})
		})
		r.Route("/free", func(r chi.Router) {
			r.Get("/", h.handleGetAbsence)
			r.Post("/", h.handleLogAbsence)
			r.Route("/{entryID}", func(r chi.Router) {
				r.Put("/", h.handleUpdateAbsence)
				r.Delete("/", h.handleDeleteAbsence)
			})
		})
	})
}

type segmentPayload struct {
	Start schedule.ClockTime  `json:"start"`
	End   *schedule.ClockTime `json:"end"`
}

type absencePayload struct {
	Reason string `json:"reason"`
}

// dayResponse holds whichever kind of record the day carries. A day has
// either work segments or one absence entry, never both.
type dayResponse struct {
	Day      string                `json:"day"`
	Segments []worklog.WorkSegment `json:"segments"`
	Absence  *worklog.AbsenceEntry `json:"absence,omitempty"`
}

func requestDay(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return "", time.Time{}, false
	}
	day, err := shared.ParseDay(chi.URLParam(r, "day"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "day must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return "", time.Time{}, false
	}
	return user.UserID, day, true
}

func (h *Handler) handleDay(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := requestDay(w, r)
	if !ok {
		return
	}

	segments, err := h.Log.SegmentsByDay(r.Context(), userID, day)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "query_failed", "failed to load day", middleware.GetRequestID(r.Context()))
		return
	}

	response := dayResponse{Day: day.Format("2006-01-02"), Segments: segments}
	if response.Segments == nil {
		response.Segments = []worklog.WorkSegment{}
	}
	if len(segments) == 0 {
		entry, err := h.Log.AbsenceByDay(r.Context(), userID, day)
		if err != nil && !errors.Is(err, worklog.ErrNotFound) {
			api.Fail(w, http.StatusInternalServerError, "query_failed", "failed to load day", middleware.GetRequestID(r.Context()))
			return
		}
		if err == nil {
			response.Absence = &entry
		}
	}

	api.Success(w, response, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLogWork(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := requestDay(w, r)
	if !ok {
		return
	}

	var payload segmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Log.LogWork(r.Context(), worklog.WorkSegment{
		UserID: userID,
		Day:    day,
		Start:  payload.Start,
		End:    payload.End,
	})
	if err != nil {
		switch {
		case errors.Is(err, worklog.ErrEndBeforeStart):
			api.Fail(w, http.StatusBadRequest, "invalid_segment", "end must not precede start", middleware.GetRequestID(r.Context()))
		case errors.Is(err, worklog.ErrDayConflict):
			api.Fail(w, http.StatusConflict, "day_conflict", "day already holds an absence entry", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to log work", middleware.GetRequestID(r.Context()))
		}
		return
	}

	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateSegment(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := requestDay(w, r)
	if !ok {
		return
	}

	var payload segmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Log.UpdateSegment(r.Context(), worklog.WorkSegment{
		ID:     chi.URLParam(r, "segmentID"),
		UserID: userID,
		Day:    day,
		Start:  payload.Start,
		End:    payload.End,
	})
	if err != nil {
		switch {
		case errors.Is(err, worklog.ErrEndBeforeStart):
			api.Fail(w, http.StatusBadRequest, "invalid_segment", "end must not precede start", middleware.GetRequestID(r.Context()))
		case errors.Is(err, worklog.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "work segment not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update segment", middleware.GetRequestID(r.Context()))
		}
		return
	}

	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteSegment(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := requestDay(w, r)
	if !ok {
		return
	}

	if err := h.Log.DeleteSegment(r.Context(), userID, day, chi.URLParam(r, "segmentID")); err != nil {
		if errors.Is(err, worklog.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "work segment not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete segment", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetAbsence(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := requestDay(w, r)
	if !ok {
		return
	}

	entry, err := h.Log.AbsenceByDay(r.Context(), userID, day)
	if err != nil {
		if errors.Is(err, worklog.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "no absence entry for that day", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "query_failed", "failed to load absence", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLogAbsence(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := requestDay(w, r)
	if !ok {
		return
	}

	var payload absencePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	reason, err := worklog.ParseAbsenceReason(payload.Reason)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_reason", "unknown absence reason", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Log.LogAbsence(r.Context(), worklog.AbsenceEntry{
		UserID: userID,
		Day:    day,
		Reason: reason,
	})
	if err != nil {
		if errors.Is(err, worklog.ErrDayConflict) {
			api.Fail(w, http.StatusConflict, "day_conflict", "day already holds work segments", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to log absence", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateAbsence(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := requestDay(w, r)
	if !ok {
		return
	}

	var payload absencePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	reason, err := worklog.ParseAbsenceReason(payload.Reason)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_reason", "unknown absence reason", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Log.UpdateAbsence(r.Context(), worklog.AbsenceEntry{
		ID:     chi.URLParam(r, "entryID"),
		UserID: userID,
		Day:    day,
		Reason: reason,
	})
	if err != nil {
		if errors.Is(err, worklog.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "absence entry not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update absence", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteAbsence(w http.ResponseWriter, r *http.Request) {
	userID, day, ok := requestDay(w, r)
	if !ok {
		return
	}

	if err := h.Log.DeleteAbsence(r.Context(), userID, day, chi.URLParam(r, "entryID")); err != nil {
		if errors.Is(err, worklog.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "absence entry not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete absence", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
