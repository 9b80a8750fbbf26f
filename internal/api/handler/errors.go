package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
	"pcos-companion/internal/session"
	"pcos-companion/pkg/problem"
)

// writeBackendError maps a failure from the prediction backend to a
// problem response. A 401 from the backend also drops the local
// session so the route guard kicks in on the next request.
func writeBackendError(w http.ResponseWriter, sessions *session.Manager, err error) {
	if backend.IsUnauthorized(err) {
		sessions.Invalidate()
		problem.Unauthorized("Session rejected by backend, sign in again").Write(w)
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		problem.BadGateway(apiErr.Message).Write(w)
		return
	}

	if errors.Is(err, domain.ErrUnavailable) {
		problem.ServiceUnavailable("Cannot connect to server. Please make sure the backend is running.").Write(w)
		return
	}

	problem.InternalError("An unexpected error occurred").Write(w)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}
