package api

import (
	"errors"
	"net/http"

	"github.com/jmorrell/makerboard/internal/auth"
	"github.com/jmorrell/makerboard/internal/metrics"
	"github.com/jmorrell/makerboard/internal/user"
)

// authHandler groups account and session HTTP handlers.
type authHandler struct {
	users   *user.Service
	tokens  *auth.Tokens
	metrics *metrics.Metrics
}

func newAuthHandler(users *user.Service, tokens *auth.Tokens, m *metrics.Metrics) *authHandler {
	return &authHandler{users: users, tokens: tokens, metrics: m}
}

// Register handles POST /api/auth/register.
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	u, err := h.users.Register(r.Context(), req)
	if err != nil {
		h.metrics.IncAuthFailure("register")
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "duplicate_email", "an account with this email already exists")
		case errors.Is(err, user.ErrValidation):
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to register account")
		}
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to issue session token")
		return
	}

	h.metrics.IncAuthSuccess("register")
	auditLog(r, "account.register", "user", u.ID, "email", u.Email)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}

// Login handles POST /api/auth/login.
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.IncAuthFailure("login")
		if errors.Is(err, user.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to log in")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to issue session token")
		return
	}

	h.metrics.IncAuthSuccess("login")
	auditLog(r, "account.login", "user", u.ID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}

// Me handles GET /api/auth/me.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserIDFromContext(r.Context())
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	u, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Valid token for an account that no longer exists.
			writeError(w, http.StatusUnauthorized, "unauthorized", "account not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return
	}

	writeJSON(w, http.StatusOK, u)
}
