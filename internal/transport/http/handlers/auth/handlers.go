package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"timecard/internal/auth"
	"timecard/internal/domain/user"
	"timecard/internal/transport/http/api"
	"timecard/internal/transport/http/middleware"
)

type Handler struct {
	Users    *user.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(users *user.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Users: users, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	account, err := h.Users.FindByEmail(r.Context(), payload.Email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			slog.Warn("login lookup failed", "err", err)
		}
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(account.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID: account.ID,
		Email:  account.Email,
		Role:   account.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": account.ID, "email": account.Email, "role": account.Role},
	}, middleware.GetRequestID(r.Context()))
}
