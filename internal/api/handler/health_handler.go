package handler

import (
	"net/http"

	"pcos-companion/internal/backend"
)

type HealthHandler struct {
	api backend.Client
}

func NewHealthHandler(api backend.Client) *HealthHandler {
	return &HealthHandler{api: api}
}

// HealthResponse reports this service and the prediction backend.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Backend string `json:"backend" example:"online"`
}

// Get handles GET /health
// @Summary Health check
// @Description Liveness of this service plus a probe of the prediction backend. Always 200; backend reachability is reported in the body.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Health report"
// @Router /health [get]
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Backend: "offline"}
	if status, err := h.api.Health(r.Context()); err == nil && status.Online() {
		resp.Backend = "online"
	}
	writeJSON(w, http.StatusOK, resp)
}
