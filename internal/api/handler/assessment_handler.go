package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pcos-companion/internal/api/validation"
	"pcos-companion/internal/assessment"
	"pcos-companion/internal/domain"
	"pcos-companion/internal/session"
	"pcos-companion/pkg/problem"
)

// AssessmentHandler owns the in-flight lifestyle wizards. Wizards live
// in memory only; an abandoned one is simply forgotten when the
// process restarts.
type AssessmentHandler struct {
	sessions *session.Manager
	api      assessment.Assessor

	mu      sync.Mutex
	wizards map[uuid.UUID]*assessment.Wizard
}

func NewAssessmentHandler(sessions *session.Manager, api assessment.Assessor) *AssessmentHandler {
	return &AssessmentHandler{
		sessions: sessions,
		api:      api,
		wizards:  make(map[uuid.UUID]*assessment.Wizard),
	}
}

func (h *AssessmentHandler) lookup(r *http.Request) (*assessment.Wizard, *problem.Problem) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, problem.BadRequest("Invalid assessment ID format")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	wiz, ok := h.wizards[id]
	if !ok {
		return nil, problem.NotFound("Assessment not found")
	}
	return wiz, nil
}

// Start handles POST /v1/assessments
// @Summary Start a lifestyle assessment
// @Description Open a new three-step wizard. Sliders start at their defaults (stress 5, exercise 3, sleep 7); required basics are empty.
// @Tags assessments
// @Produce json
// @Success 201 {object} assessment.State "New wizard at step 1"
// @Failure 401 {object} problem.Problem "Not signed in"
// @Router /assessments [post]
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	wiz := assessment.New(h.api)
	h.mu.Lock()
	h.wizards[wiz.ID] = wiz
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, wiz.State())
}

// Get handles GET /v1/assessments/{id}
// @Summary Assessment state
// @Description Current step, form values, error message and result of one wizard.
// @Tags assessments
// @Produce json
// @Param id path string true "Assessment UUID" format(uuid)
// @Success 200 {object} assessment.State "Wizard snapshot"
// @Failure 404 {object} problem.Problem "Assessment not found"
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	wiz, p := h.lookup(r)
	if p != nil {
		p.Write(w)
		return
	}
	writeJSON(w, http.StatusOK, wiz.State())
}

// UpdateFields handles PATCH /v1/assessments/{id}/fields
// @Summary Edit form fields
// @Description Merge field edits into the form. Omitted fields are unchanged. BMI is recomputed whenever height or weight changes.
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path string true "Assessment UUID" format(uuid)
// @Param request body assessment.FormUpdate true "Field edits"
// @Success 200 {object} assessment.State "Updated snapshot"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "Assessment not found"
// @Failure 422 {object} problem.Problem "Field values out of range"
// @Router /assessments/{id}/fields [patch]
func (h *AssessmentHandler) UpdateFields(w http.ResponseWriter, r *http.Request) {
	wiz, p := h.lookup(r)
	if p != nil {
		p.Write(w)
		return
	}

	var update assessment.FormUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(update); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	wiz.Update(update)
	writeJSON(w, http.StatusOK, wiz.State())
}

// Advance handles POST /v1/assessments/{id}/advance
// @Summary Next step
// @Description Move forward one step. Leaving step 1 requires age, height, weight and cycle length to be filled.
// @Tags assessments
// @Produce json
// @Param id path string true "Assessment UUID" format(uuid)
// @Success 200 {object} assessment.State "Updated snapshot"
// @Failure 404 {object} problem.Problem "Assessment not found"
// @Failure 409 {object} problem.Problem "Already at the last step or showing a result"
// @Failure 422 {object} problem.Problem "Required basics missing"
// @Router /assessments/{id}/advance [post]
func (h *AssessmentHandler) Advance(w http.ResponseWriter, r *http.Request) {
	wiz, p := h.lookup(r)
	if p != nil {
		p.Write(w)
		return
	}

	if err := wiz.Advance(); err != nil {
		writeStepError(w, wiz, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.State())
}

// Back handles POST /v1/assessments/{id}/back
// @Summary Previous step
// @Description Move back one step and clear any error message.
// @Tags assessments
// @Produce json
// @Param id path string true "Assessment UUID" format(uuid)
// @Success 200 {object} assessment.State "Updated snapshot"
// @Failure 404 {object} problem.Problem "Assessment not found"
// @Failure 409 {object} problem.Problem "Already at the first step or showing a result"
// @Router /assessments/{id}/back [post]
func (h *AssessmentHandler) Back(w http.ResponseWriter, r *http.Request) {
	wiz, p := h.lookup(r)
	if p != nil {
		p.Write(w)
		return
	}

	if err := wiz.Retreat(); err != nil {
		writeStepError(w, wiz, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.State())
}

// Submit handles POST /v1/assessments/{id}/submit
// @Summary Submit the assessment
// @Description Send the completed form for scoring. Only allowed at step 3; a missing required field jumps the wizard back to step 1 instead.
// @Tags assessments
// @Produce json
// @Param id path string true "Assessment UUID" format(uuid)
// @Success 200 {object} assessment.State "Snapshot with the prediction result"
// @Failure 401 {object} problem.Problem "Session rejected by backend"
// @Failure 404 {object} problem.Problem "Assessment not found"
// @Failure 409 {object} problem.Problem "Not at step 3 or already showing a result"
// @Failure 422 {object} problem.Problem "Required basics missing"
// @Failure 502 {object} problem.Problem "Backend rejected the assessment"
// @Failure 503 {object} problem.Problem "Backend unreachable"
// @Router /assessments/{id}/submit [post]
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	wiz, p := h.lookup(r)
	if p != nil {
		p.Write(w)
		return
	}

	if _, err := wiz.Submit(r.Context(), h.sessions.Token()); err != nil {
		if errors.Is(err, domain.ErrWrongStep) || errors.Is(err, domain.ErrInvalidInput) {
			writeStepError(w, wiz, err)
			return
		}
		writeBackendError(w, h.sessions, err)
		return
	}
	writeJSON(w, http.StatusOK, wiz.State())
}

// Reset handles POST /v1/assessments/{id}/reset
// @Summary Start over
// @Description Return to step 1 and drop the result. Entered form values are kept.
// @Tags assessments
// @Produce json
// @Param id path string true "Assessment UUID" format(uuid)
// @Success 200 {object} assessment.State "Wizard back at step 1"
// @Failure 404 {object} problem.Problem "Assessment not found"
// @Router /assessments/{id}/reset [post]
func (h *AssessmentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	wiz, p := h.lookup(r)
	if p != nil {
		p.Write(w)
		return
	}
	wiz.Reset()
	writeJSON(w, http.StatusOK, wiz.State())
}

// writeStepError maps wizard navigation failures. The wizard's own
// message is the detail so clients show the same text as the form did.
func writeStepError(w http.ResponseWriter, wiz *assessment.Wizard, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		problem.ValidationError(wiz.Error(), nil).Write(w)
		return
	}
	problem.Conflict("Step change not allowed from the current state").Write(w)
}
