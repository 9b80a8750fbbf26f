package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pcos-companion/internal/domain"
	"pcos-companion/internal/llm"
	"pcos-companion/pkg/problem"
)

type GuidanceHandler struct {
	llm llm.GuidanceLLM
}

func NewGuidanceHandler(guidanceLLM llm.GuidanceLLM) *GuidanceHandler {
	return &GuidanceHandler{llm: guidanceLLM}
}

// Generate handles POST /v1/guidance
// @Summary Generate a result narrative
// @Description Turn an assessment result into a short non-medical narrative (summary, focus areas, weekly habits). Requires OPENAI_API_KEY; answers 503 when no key is configured.
// @Tags guidance
// @Accept json
// @Produce json
// @Param request body domain.PredictionResult true "Assessment result to narrate"
// @Success 200 {object} llm.Guidance "Generated narrative"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 401 {object} problem.Problem "Not signed in"
// @Failure 502 {object} problem.Problem "OpenAI request or response failed"
// @Failure 503 {object} problem.Problem "Guidance not configured"
// @Router /guidance [post]
func (h *GuidanceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var result domain.PredictionResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if !result.RiskLevel.Valid() {
		problem.ValidationError("Request body contains invalid fields", []problem.FieldError{
			{Field: "risk_level", Message: "must be one of: Low Moderate High"},
		}).Write(w)
		return
	}

	guidance, err := h.llm.GenerateGuidance(r.Context(), &result)
	if err != nil {
		if errors.Is(err, llm.ErrOpenAIUnavailable) {
			problem.ServiceUnavailable("Guidance is not configured on this server").Write(w)
			return
		}
		problem.BadGateway("Guidance generation failed").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, guidance)
}
