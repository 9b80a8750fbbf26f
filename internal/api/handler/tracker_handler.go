package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pcos-companion/internal/api/validation"
	"pcos-companion/internal/session"
	"pcos-companion/internal/tracker"
	"pcos-companion/pkg/problem"
)

type TrackerHandler struct {
	sessions *session.Manager
	tracker  *tracker.Tracker
}

func NewTrackerHandler(sessions *session.Manager, t *tracker.Tracker) *TrackerHandler {
	return &TrackerHandler{sessions: sessions, tracker: t}
}

// SaveEntryRequest is the payload for POST /v1/symptom-log.
// @Description One day's symptom entry. Toggled symptoms are sent with severity 2, untoggled with 0.
type SaveEntryRequest struct {
	Date          string          `json:"log_date" validate:"required,dateonly" example:"2026-08-30"`
	FlowIntensity int             `json:"flow_intensity" validate:"min=0,max=3" example:"2"`
	Toggles       tracker.Toggles `json:"symptoms"`
}

// SaveEntryResponse carries the banner shown after the attempt.
type SaveEntryResponse struct {
	Banner *tracker.Banner `json:"banner"`
}

// Save handles POST /v1/symptom-log
// @Summary Save a symptom entry
// @Description Submit one day's symptom log. On success the banner auto-expires after a few seconds; on failure it stays until the next attempt.
// @Tags tracker
// @Accept json
// @Produce json
// @Param request body SaveEntryRequest true "Symptom entry"
// @Success 201 {object} SaveEntryResponse "Entry saved"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 401 {object} problem.Problem "Session rejected by backend"
// @Failure 422 {object} problem.Problem "Validation errors"
// @Failure 502 {object} problem.Problem "Backend rejected the entry"
// @Failure 503 {object} problem.Problem "Backend unreachable"
// @Router /symptom-log [post]
func (h *TrackerHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		problem.BadRequest("log_date must be a date in YYYY-MM-DD format").Write(w)
		return
	}

	entry := tracker.Entry{
		Date:          date,
		FlowIntensity: req.FlowIntensity,
		Toggles:       req.Toggles,
	}

	if err := h.tracker.Save(r.Context(), h.sessions.Token(), entry); err != nil {
		writeBackendError(w, h.sessions, err)
		return
	}
	writeJSON(w, http.StatusCreated, SaveEntryResponse{Banner: h.tracker.Banner()})
}
