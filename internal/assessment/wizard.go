// Package assessment implements the lifestyle assessment wizard: three
// linear steps with a forward-validation gate, local BMI derivation,
// and a result pseudo-step once the backend has classified the inputs.
package assessment

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
)

// Wizard steps. Step 1 carries the only hard field requirements; the
// later steps are defaulted selects and sliders.
const (
	StepBasics    = 1
	StepSymptoms  = 2
	StepLifestyle = 3
)

// Error messages surfaced to the user.
const (
	msgStepOneIncomplete = "Please fill in all required fields in Basic Info"
	msgSubmitIncomplete  = "Please complete all required fields in Basic Info (Step 1)"
	msgAssessFailed      = "Assessment failed. Please try again."
	msgCannotConnect     = "Cannot connect to server. Please make sure the backend is running."
)

// Assessor is the slice of the backend client the wizard submits to.
type Assessor interface {
	Assess(ctx context.Context, token string, in domain.LifestyleAssessment) (*domain.PredictionResult, error)
}

// Form holds the collected inputs. Required numerics are pointers so
// an untouched field is distinguishable from zero; selects and
// sliders start from their defaults.
type Form struct {
	Age                  *float64 `json:"age,omitempty"`
	Height               *float64 `json:"height,omitempty"`
	Weight               *float64 `json:"weight,omitempty"`
	BMI                  float64  `json:"bmi,omitempty"`
	CycleRegularity      int      `json:"cycle_regularity"`
	CycleLength          *float64 `json:"cycle_length,omitempty"`
	Hirsutism            int      `json:"hirsutism"`
	Acne                 int      `json:"acne"`
	HairLoss             int      `json:"hair_loss"`
	WeightGainDifficulty int      `json:"weight_gain_difficulty"`
	StressLevel          float64  `json:"stress_level"`
	ExerciseFrequency    float64  `json:"exercise_frequency"`
	SleepQuality         float64  `json:"sleep_quality"`
	FamilyHistory        int      `json:"family_history"`
}

func defaultForm() Form {
	return Form{
		StressLevel:       5,
		ExerciseFrequency: 3,
		SleepQuality:      7,
	}
}

// complete reports whether the step-1 required fields are populated.
func (f *Form) complete() bool {
	return f.Age != nil && f.Height != nil && f.Weight != nil && f.CycleLength != nil
}

// FormUpdate carries field edits; nil means unchanged.
type FormUpdate struct {
	Age                  *float64 `json:"age,omitempty" validate:"omitempty,gt=0"`
	Height               *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	Weight               *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	CycleRegularity      *int     `json:"cycle_regularity,omitempty" validate:"omitempty,min=0,max=2"`
	CycleLength          *float64 `json:"cycle_length,omitempty" validate:"omitempty,gt=0"`
	Hirsutism            *int     `json:"hirsutism,omitempty" validate:"omitempty,min=0,max=3"`
	Acne                 *int     `json:"acne,omitempty" validate:"omitempty,min=0,max=3"`
	HairLoss             *int     `json:"hair_loss,omitempty" validate:"omitempty,min=0,max=2"`
	WeightGainDifficulty *int     `json:"weight_gain_difficulty,omitempty" validate:"omitempty,min=0,max=2"`
	StressLevel          *float64 `json:"stress_level,omitempty" validate:"omitempty,min=0,max=10"`
	ExerciseFrequency    *float64 `json:"exercise_frequency,omitempty" validate:"omitempty,min=0,max=7"`
	SleepQuality         *float64 `json:"sleep_quality,omitempty" validate:"omitempty,min=0,max=10"`
	FamilyHistory        *int     `json:"family_history,omitempty" validate:"omitempty,min=0,max=1"`
}

// State is the read-only wizard snapshot handed to the view.
type State struct {
	ID          string                   `json:"id"`
	Step        int                      `json:"step"`
	ResultShown bool                     `json:"result_shown"`
	Error       string                   `json:"error,omitempty"`
	Form        Form                     `json:"form"`
	Result      *domain.PredictionResult `json:"result,omitempty"`
}

// Wizard is one in-progress assessment. All exported methods are safe
// for concurrent use; the whole struct is owned by the view layer and
// discarded with it.
type Wizard struct {
	ID  uuid.UUID
	api Assessor

	mu     sync.Mutex
	step   int
	form   Form
	errMsg string
	result *domain.PredictionResult
}

// New starts a wizard at step 1 with the default form.
func New(api Assessor) *Wizard {
	return &Wizard{
		ID:   uuid.New(),
		api:  api,
		step: StepBasics,
		form: defaultForm(),
	}
}

// Update merges field edits into the form. Whenever height or weight
// changes, BMI is recomputed in the same update so a stale value is
// never observable.
func (w *Wizard) Update(u FormUpdate) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if u.Age != nil {
		w.form.Age = u.Age
	}
	if u.Height != nil {
		w.form.Height = u.Height
	}
	if u.Weight != nil {
		w.form.Weight = u.Weight
	}
	if u.CycleRegularity != nil {
		w.form.CycleRegularity = *u.CycleRegularity
	}
	if u.CycleLength != nil {
		w.form.CycleLength = u.CycleLength
	}
	if u.Hirsutism != nil {
		w.form.Hirsutism = *u.Hirsutism
	}
	if u.Acne != nil {
		w.form.Acne = *u.Acne
	}
	if u.HairLoss != nil {
		w.form.HairLoss = *u.HairLoss
	}
	if u.WeightGainDifficulty != nil {
		w.form.WeightGainDifficulty = *u.WeightGainDifficulty
	}
	if u.StressLevel != nil {
		w.form.StressLevel = *u.StressLevel
	}
	if u.ExerciseFrequency != nil {
		w.form.ExerciseFrequency = *u.ExerciseFrequency
	}
	if u.SleepQuality != nil {
		w.form.SleepQuality = *u.SleepQuality
	}
	if u.FamilyHistory != nil {
		w.form.FamilyHistory = *u.FamilyHistory
	}

	if (u.Height != nil || u.Weight != nil) && w.form.Height != nil && w.form.Weight != nil {
		w.form.BMI = domain.ComputeBMI(*w.form.Height, *w.form.Weight)
	}
}

// Advance moves forward one step. From step 1 it is gated on the
// required fields; a rejected advance leaves the step unchanged and
// sets the error message.
func (w *Wizard) Advance() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.result != nil || w.step >= StepLifestyle {
		return domain.ErrWrongStep
	}
	if w.step == StepBasics && !w.form.complete() {
		w.errMsg = msgStepOneIncomplete
		return domain.ErrInvalidInput
	}
	w.errMsg = ""
	w.step++
	return nil
}

// Retreat moves back one step and clears the error message. Always
// allowed above step 1.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.result != nil || w.step <= StepBasics {
		return domain.ErrWrongStep
	}
	w.errMsg = ""
	w.step--
	return nil
}

// Submit sends the assessment. It is a guarded no-op unless the
// wizard sits at step 3; a missing step-1 field forces a jump back to
// step 1 instead of submitting. On success the wizard transitions to
// the result view; on failure it stays at step 3 with a message.
func (w *Wizard) Submit(ctx context.Context, token string) (*domain.PredictionResult, error) {
	w.mu.Lock()
	if w.result != nil || w.step != StepLifestyle {
		w.mu.Unlock()
		return nil, domain.ErrWrongStep
	}
	if !w.form.complete() {
		w.step = StepBasics
		w.errMsg = msgSubmitIncomplete
		w.mu.Unlock()
		return nil, domain.ErrInvalidInput
	}
	payload := w.payloadLocked()
	w.errMsg = ""
	w.mu.Unlock()

	result, err := w.api.Assess(ctx, token, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.errMsg = submissionMessage(err)
		return nil, err
	}
	w.result = result
	return result, nil
}

// Reset returns to step 1 from any state, clearing result and error.
// The entered form values survive.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepBasics
	w.result = nil
	w.errMsg = ""
}

// State returns a snapshot for rendering.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		ID:          w.ID.String(),
		Step:        w.step,
		ResultShown: w.result != nil,
		Error:       w.errMsg,
		Form:        w.form,
		Result:      w.result,
	}
}

// Error returns the current user-visible error message, if any.
func (w *Wizard) Error() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// payloadLocked coerces the form into the 13-field wire payload, enums
// as small integers. Callers hold the lock and have checked complete().
func (w *Wizard) payloadLocked() domain.LifestyleAssessment {
	return domain.LifestyleAssessment{
		Age:                  *w.form.Age,
		BMI:                  w.form.BMI,
		CycleRegularity:      w.form.CycleRegularity,
		CycleLength:          *w.form.CycleLength,
		Hirsutism:            w.form.Hirsutism,
		Acne:                 w.form.Acne,
		HairLoss:             w.form.HairLoss,
		WeightGainDifficulty: w.form.WeightGainDifficulty,
		FamilyHistory:        w.form.FamilyHistory,
		StressLevel:          w.form.StressLevel,
		ExerciseFrequency:    w.form.ExerciseFrequency,
		SleepQuality:         w.form.SleepQuality,
		Height:               *w.form.Height,
		Weight:               *w.form.Weight,
	}
}

// submissionMessage maps a submit failure to the message shown at
// step 3: backend error body, connectivity, or the generic fallback.
func submissionMessage(err error) string {
	if errors.Is(err, domain.ErrUnavailable) {
		return msgCannotConnect
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return msgAssessFailed
}
