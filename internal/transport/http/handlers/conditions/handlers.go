package conditionhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timecard/internal/domain/schedule"
	"timecard/internal/transport/http/api"
	"timecard/internal/transport/http/middleware"
	"timecard/internal/transport/http/shared"
)

type Handler struct {
	Store *schedule.Store
}

func NewHandler(store *schedule.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/conditions", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/active", h.handleActive)
		r.Route("/{conditionID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleReplace)
		})
	})
}

type conditionPayload struct {
	Monday           schedule.ClockTime `json:"monday"`
	Tuesday          schedule.ClockTime `json:"tuesday"`
	Wednesday        schedule.ClockTime `json:"wednesday"`
	Thursday         schedule.ClockTime `json:"thursday"`
	Friday           schedule.ClockTime `json:"friday"`
	Saturday         schedule.ClockTime `json:"saturday"`
	Sunday           schedule.ClockTime `json:"sunday"`
	From             string             `json:"from"`
	To               string             `json:"to"`
	InitialVacation  int                `json:"initialVacation"`
	ConsumedVacation int                `json:"consumedVacation"`
}

type conditionResponse struct {
	ID               string             `json:"id"`
	Monday           schedule.ClockTime `json:"monday"`
	Tuesday          schedule.ClockTime `json:"tuesday"`
	Wednesday        schedule.ClockTime `json:"wednesday"`
	Thursday         schedule.ClockTime `json:"thursday"`
	Friday           schedule.ClockTime `json:"friday"`
	Saturday         schedule.ClockTime `json:"saturday"`
	Sunday           schedule.ClockTime `json:"sunday"`
	From             string             `json:"from"`
	To               string             `json:"to"`
	InitialVacation  int                `json:"initialVacation"`
	ConsumedVacation int                `json:"consumedVacation"`
	VacationLeft     int                `json:"vacationLeft"`
}

func toResponse(c schedule.Condition) conditionResponse {
	return conditionResponse{
		ID:               c.ID,
		Monday:           c.Monday,
		Tuesday:          c.Tuesday,
		Wednesday:        c.Wednesday,
		Thursday:         c.Thursday,
		Friday:           c.Friday,
		Saturday:         c.Saturday,
		Sunday:           c.Sunday,
		From:             c.From.Format("2006-01-02"),
		To:               c.To.Format("2006-01-02"),
		InitialVacation:  c.InitialVacation,
		ConsumedVacation: c.ConsumedVacation,
		VacationLeft:     c.VacationLeft(),
	}
}

func (p conditionPayload) toCondition(userID string) (schedule.Condition, error) {
	from, err := shared.ParseDay(p.From)
	if err != nil {
		return schedule.Condition{}, err
	}
	to, err := shared.ParseDay(p.To)
	if err != nil {
		return schedule.Condition{}, err
	}
	return schedule.Condition{
		UserID:           userID,
		Monday:           p.Monday,
		Tuesday:          p.Tuesday,
		Wednesday:        p.Wednesday,
		Thursday:         p.Thursday,
		Friday:           p.Friday,
		Saturday:         p.Saturday,
		Sunday:           p.Sunday,
		From:             from,
		To:               to,
		InitialVacation:  p.InitialVacation,
		ConsumedVacation: p.ConsumedVacation,
	}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	conditions, err := h.Store.FindByUser(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "query_failed", "failed to list conditions", middleware.GetRequestID(r.Context()))
		return
	}

	responses := make([]conditionResponse, 0, len(conditions))
	for _, condition := range conditions {
		responses = append(responses, toResponse(condition))
	}
	api.Success(w, responses, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload conditionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	candidate, err := payload.toCondition(user.UserID)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "from and to must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Store.InsertIfValid(r.Context(), candidate)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidWindow):
			api.Fail(w, http.StatusBadRequest, "invalid_window", "to must not precede from", middleware.GetRequestID(r.Context()))
		case errors.Is(err, schedule.ErrOverlap):
			api.Fail(w, http.StatusConflict, "condition_overlap", "validity window overlaps an existing condition", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create condition", middleware.GetRequestID(r.Context()))
		}
		return
	}

	api.Created(w, toResponse(created), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	day, err := shared.ParseDay(r.URL.Query().Get("day"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "day must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}

	active, err := h.Store.FindActive(r.Context(), user.UserID, day)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "no_active_condition", "no condition governs that day", middleware.GetRequestID(r.Context()))
		case errors.Is(err, schedule.ErrIntegrity):
			api.Fail(w, http.StatusInternalServerError, "integrity_violation", "multiple conditions govern that day", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "query_failed", "failed to resolve condition", middleware.GetRequestID(r.Context()))
		}
		return
	}

	api.Success(w, toResponse(active), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	condition, err := h.Store.FindByID(r.Context(), user.UserID, chi.URLParam(r, "conditionID"))
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "condition not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "query_failed", "failed to load condition", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, toResponse(condition), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload conditionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	condition, err := payload.toCondition(user.UserID)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "from and to must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}
	condition.ID = chi.URLParam(r, "conditionID")

	updated, err := h.Store.Replace(r.Context(), condition)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidWindow):
			api.Fail(w, http.StatusBadRequest, "invalid_window", "to must not precede from", middleware.GetRequestID(r.Context()))
		case errors.Is(err, schedule.ErrOverlap):
			api.Fail(w, http.StatusConflict, "condition_overlap", "validity window overlaps an existing condition", middleware.GetRequestID(r.Context()))
		case errors.Is(err, schedule.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "condition not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update condition", middleware.GetRequestID(r.Context()))
		}
		return
	}

	api.Success(w, toResponse(updated), middleware.GetRequestID(r.Context()))
}
