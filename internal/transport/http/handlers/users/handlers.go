package userhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"timecard/internal/auth"
	"timecard/internal/domain/user"
	"timecard/internal/transport/http/api"
	"timecard/internal/transport/http/middleware"
)

type Handler struct {
	Users *user.Store
}

func NewHandler(users *user.Store) *Handler {
	return &Handler{Users: users}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.handleMe)
	r.With(middleware.RequireRole(user.RoleAdmin)).Post("/users", h.handleCreate)
}

type createRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	account, err := h.Users.FindByID(r.Context(), current.UserID)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, account, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", middleware.GetRequestID(r.Context()))
		return
	}
	role := strings.ToUpper(strings.TrimSpace(payload.Role))
	if role == "" {
		role = user.RoleUser
	}
	if role != user.RoleUser && role != user.RoleAdmin {
		api.Fail(w, http.StatusBadRequest, "invalid_role", "unknown role", middleware.GetRequestID(r.Context()))
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to create user", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Users.Create(r.Context(), payload.Email, role, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			api.Fail(w, http.StatusConflict, "email_taken", "email already registered", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create user", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, created, middleware.GetRequestID(r.Context()))
}
