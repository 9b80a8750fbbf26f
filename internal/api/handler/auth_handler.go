package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pcos-companion/internal/api/validation"
	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
	"pcos-companion/internal/session"
	"pcos-companion/pkg/problem"
)

type AuthHandler struct {
	sessions *session.Manager
}

func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login handles POST /v1/auth/login
// @Summary Sign in
// @Description Exchange credentials for a session. The email is trimmed and lowercased before it is sent to the backend. The token is persisted so the session survives restarts.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.SessionResponse "Authenticated session"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 401 {object} problem.Problem "Credentials rejected"
// @Failure 422 {object} problem.Problem "Validation errors"
// @Failure 503 {object} problem.Problem "Backend unreachable"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.sessions.Login(r.Context(), req.Email, req.Password); err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sessions.Snapshot())
}

// Register handles POST /v1/auth/register
// @Summary Create an account
// @Description Register a new account and sign in with the returned token in one step.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterRequest true "New account data"
// @Success 201 {object} domain.SessionResponse "Authenticated session"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Validation errors"
// @Failure 502 {object} problem.Problem "Backend rejected the registration"
// @Failure 503 {object} problem.Problem "Backend unreachable"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.sessions.Register(r.Context(), req.Email, req.Password, req.FullName, req.Age); err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.sessions.Snapshot())
}

// Session handles GET /v1/auth/session
// @Summary Current session
// @Description Snapshot of the active session and its user.
// @Tags auth
// @Produce json
// @Success 200 {object} domain.SessionResponse "Session snapshot"
// @Failure 401 {object} problem.Problem "Not signed in"
// @Router /auth/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.Snapshot())
}

// Logout handles POST /v1/auth/logout
// @Summary Sign out
// @Description Drop the session and delete the persisted token. Purely local, nothing is sent to the backend.
// @Tags auth
// @Success 204 "Signed out"
// @Failure 401 {object} problem.Problem "Not signed in"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// writeAuthError maps login/register failures. There is no session to
// invalidate yet, so a backend 401 here means bad credentials and the
// backend's own message is passed through.
func writeAuthError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			problem.Unauthorized(apiErr.Message).Write(w)
			return
		}
		problem.BadGateway(apiErr.Message).Write(w)
		return
	}
	if errors.Is(err, domain.ErrUnavailable) {
		problem.ServiceUnavailable("Cannot connect to server. Please make sure the backend is running.").Write(w)
		return
	}
	problem.InternalError("An unexpected error occurred").Write(w)
}
