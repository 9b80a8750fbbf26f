package handler

import (
	"math"
	"net/http"
	"strconv"

	"pcos-companion/internal/visualization"
	"pcos-companion/pkg/problem"
)

type ChartsHandler struct{}

func NewChartsHandler() *ChartsHandler {
	return &ChartsHandler{}
}

// Risk handles GET /v1/charts/risk
// @Summary Risk chart data
// @Description Two-slice chart data (healthy vs risk percentage) for a given probability, ready to feed a bar or doughnut renderer.
// @Tags charts
// @Produce json
// @Param probability query number true "Risk probability between 0 and 1" minimum(0) maximum(1) example(0.72)
// @Success 200 {object} visualization.ChartData "Chart labels and datasets"
// @Failure 422 {object} problem.Problem "Missing or out-of-range probability"
// @Router /charts/risk [get]
func (h *ChartsHandler) Risk(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("probability")
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(p) || p < 0 || p > 1 {
		problem.ValidationError("Invalid query parameters", []problem.FieldError{
			{Field: "probability", Message: "must be a number between 0 and 1"},
		}).Write(w)
		return
	}
	writeJSON(w, http.StatusOK, visualization.RiskChart(p))
}
