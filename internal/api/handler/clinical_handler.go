package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pcos-companion/internal/clinical"
	"pcos-companion/internal/session"
	"pcos-companion/pkg/problem"
)

type ClinicalHandler struct {
	sessions *session.Manager
	form     *clinical.Form
}

func NewClinicalHandler(sessions *session.Manager, form *clinical.Form) *ClinicalHandler {
	return &ClinicalHandler{sessions: sessions, form: form}
}

// Predict handles POST /v1/predictions
// @Summary Run a clinical prediction
// @Description Merge the given values into the clinical form and submit it. All eight markers must be present and inside their reference ranges; validation reports the first failing field only, in form order.
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body clinical.Values true "Clinical marker values"
// @Success 200 {object} clinical.State "Form snapshot with the prediction result"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 401 {object} problem.Problem "Session rejected by backend"
// @Failure 422 {object} problem.Problem "Missing or out-of-range values"
// @Failure 502 {object} problem.Problem "Backend rejected the prediction"
// @Failure 503 {object} problem.Problem "Backend unreachable"
// @Router /predictions [post]
func (h *ClinicalHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var values clinical.Values
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	h.form.Update(values)

	if _, err := h.form.Submit(r.Context(), h.sessions.Token()); err != nil {
		var vErr *clinical.ValidationError
		if errors.As(err, &vErr) {
			problem.ValidationError(vErr.Message, nil).Write(w)
			return
		}
		writeBackendError(w, h.sessions, err)
		return
	}
	writeJSON(w, http.StatusOK, h.form.State())
}

// Sample handles GET /v1/predictions/sample/{profile}
// @Summary Load a sample profile
// @Description Fill the clinical form with one of the canned profiles (low, moderate, high). Any previous result or error is cleared.
// @Tags predictions
// @Produce json
// @Param profile path string true "Profile name" Enums(low, moderate, high)
// @Success 200 {object} clinical.State "Form filled with the profile"
// @Failure 404 {object} problem.Problem "Unknown profile"
// @Router /predictions/sample/{profile} [get]
func (h *ClinicalHandler) Sample(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")
	if err := h.form.FillSample(profile); err != nil {
		problem.NotFound("Unknown sample profile: " + profile).Write(w)
		return
	}
	writeJSON(w, http.StatusOK, h.form.State())
}
