package handler

import (
	"errors"
	"net/http"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
	"pcos-companion/internal/history"
	"pcos-companion/internal/session"
	"pcos-companion/pkg/problem"
)

type HistoryHandler struct {
	sessions *session.Manager
	api      history.Fetcher
}

func NewHistoryHandler(sessions *session.Manager, api history.Fetcher) *HistoryHandler {
	return &HistoryHandler{sessions: sessions, api: api}
}

// Get handles GET /v1/history
// @Summary Assessment history
// @Description Both history legs (lifestyle assessments and clinical predictions) in server order, plus the combined count. If either leg fails the whole request fails.
// @Tags history
// @Produce json
// @Success 200 {object} history.Overview "Both history lists"
// @Failure 401 {object} problem.Problem "Session rejected by backend"
// @Failure 502 {object} problem.Problem "Backend rejected the request"
// @Failure 503 {object} problem.Problem "Backend unreachable"
// @Router /history [get]
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	overview, err := history.Fetch(r.Context(), h.api, h.sessions.Token())
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.sessions.Invalidate()
			problem.Unauthorized("Session rejected by backend, sign in again").Write(w)
			return
		}
		if errors.Is(err, domain.ErrUnavailable) {
			problem.ServiceUnavailable(err.Error()).Write(w)
			return
		}
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			problem.BadGateway("Failed to load history: " + apiErr.Message).Write(w)
			return
		}
		problem.BadGateway(err.Error()).Write(w)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
