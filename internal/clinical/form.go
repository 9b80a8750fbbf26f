// Package clinical implements the single-step clinical prediction
// form: 8 lab values with declared inclusive ranges, canned demo
// profiles, and submission to the backend classifier.
package clinical

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
)

const msgCannotConnect = "Cannot connect to server. Please make sure the backend is running."

// Predictor is the slice of the backend client the form submits to.
type Predictor interface {
	Predict(ctx context.Context, token string, in domain.ClinicalInput) (*domain.PredictionResult, error)
}

// field declares one lab value and its inclusive valid range. Order
// matters: validation reports the first failing field.
type field struct {
	name     string
	min, max float64
}

var fields = []field{
	{"Age", 15, 50},
	{"BMI", 15, 50},
	{"Insulin", 1, 100},
	{"Testosterone", 10, 150},
	{"LH", 1, 50},
	{"FSH", 1, 30},
	{"Glucose", 50, 300},
	{"Cholesterol", 100, 400},
}

// Values is the form entry state; nil means the field is empty. JSON
// keys match the backend's feature names.
// @Description Clinical form values; omitted fields are empty.
type Values struct {
	Age          *float64 `json:"Age,omitempty" example:"28"`
	BMI          *float64 `json:"BMI,omitempty" example:"24.5"`
	Insulin      *float64 `json:"Insulin,omitempty" example:"12"`
	Testosterone *float64 `json:"Testosterone,omitempty" example:"40"`
	LH           *float64 `json:"LH,omitempty" example:"7"`
	FSH          *float64 `json:"FSH,omitempty" example:"6"`
	Glucose      *float64 `json:"Glucose,omitempty" example:"90"`
	Cholesterol  *float64 `json:"Cholesterol,omitempty" example:"180"`
}

func (v *Values) get(name string) *float64 {
	switch name {
	case "Age":
		return v.Age
	case "BMI":
		return v.BMI
	case "Insulin":
		return v.Insulin
	case "Testosterone":
		return v.Testosterone
	case "LH":
		return v.LH
	case "FSH":
		return v.FSH
	case "Glucose":
		return v.Glucose
	case "Cholesterol":
		return v.Cholesterol
	}
	return nil
}

// ValidationError is a client-side rejection with the field-specific
// message shown to the user. No network call follows one.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks that every field is populated and within its
// declared range. The first failing field short-circuits.
func Validate(v Values) error {
	var empty []string
	for _, f := range fields {
		if v.get(f.name) == nil {
			empty = append(empty, f.name)
		}
	}
	if len(empty) > 0 {
		return &ValidationError{Message: "Please fill in all fields: " + strings.Join(empty, ", ")}
	}

	for _, f := range fields {
		val := *v.get(f.name)
		if val < f.min || val > f.max {
			return &ValidationError{Message: fmt.Sprintf("%s should be between %g and %g", f.name, f.min, f.max)}
		}
	}
	return nil
}

func ptr(v float64) *float64 { return &v }

// SampleProfile returns one of the canned demo profiles. Filling one
// bypasses normal entry validation until submit.
func SampleProfile(level string) (Values, bool) {
	switch level {
	case "low":
		return Values{Age: ptr(25), BMI: ptr(21), Insulin: ptr(8), Testosterone: ptr(25),
			LH: ptr(4), FSH: ptr(8), Glucose: ptr(80), Cholesterol: ptr(160)}, true
	case "moderate":
		return Values{Age: ptr(28), BMI: ptr(26), Insulin: ptr(15), Testosterone: ptr(45),
			LH: ptr(8), FSH: ptr(6), Glucose: ptr(95), Cholesterol: ptr(190)}, true
	case "high":
		return Values{Age: ptr(30), BMI: ptr(32), Insulin: ptr(25), Testosterone: ptr(70),
			LH: ptr(18), FSH: ptr(5), Glucose: ptr(120), Cholesterol: ptr(240)}, true
	}
	return Values{}, false
}

// State is the read-only form snapshot handed to the view.
type State struct {
	Values Values                   `json:"values"`
	Error  string                   `json:"error,omitempty"`
	Result *domain.PredictionResult `json:"result,omitempty"`
}

// Form is the clinical prediction view model. The result it holds is
// cleared before every submission attempt and set only on success.
type Form struct {
	api Predictor

	mu     sync.Mutex
	values Values
	errMsg string
	result *domain.PredictionResult
}

// NewForm creates an empty form.
func NewForm(api Predictor) *Form {
	return &Form{api: api}
}

// Update merges non-nil field values and clears the error message,
// the same way typing into the form dismisses a stale error.
func (f *Form) Update(u Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fd := range fields {
		if v := u.get(fd.name); v != nil {
			f.setLocked(fd.name, v)
		}
	}
	f.errMsg = ""
}

func (f *Form) setLocked(name string, v *float64) {
	switch name {
	case "Age":
		f.values.Age = v
	case "BMI":
		f.values.BMI = v
	case "Insulin":
		f.values.Insulin = v
	case "Testosterone":
		f.values.Testosterone = v
	case "LH":
		f.values.LH = v
	case "FSH":
		f.values.FSH = v
	case "Glucose":
		f.values.Glucose = v
	case "Cholesterol":
		f.values.Cholesterol = v
	}
}

// FillSample loads a canned profile, replacing all values and
// clearing any existing result and error.
func (f *Form) FillSample(level string) error {
	values, ok := SampleProfile(level)
	if !ok {
		return fmt.Errorf("%w: unknown sample profile %q", domain.ErrInvalidInput, level)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
	f.result = nil
	f.errMsg = ""
	return nil
}

// Reset empties the form and clears result and error.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = Values{}
	f.result = nil
	f.errMsg = ""
}

// Submit validates, clears the prior result, and runs the classifier.
// The result is set only on success; on failure the form keeps the
// classified error message.
func (f *Form) Submit(ctx context.Context, token string) (*domain.PredictionResult, error) {
	f.mu.Lock()
	if err := Validate(f.values); err != nil {
		f.errMsg = err.Error()
		f.mu.Unlock()
		return nil, err
	}
	// Prior result is explicitly cleared before the attempt.
	f.result = nil
	f.errMsg = ""
	in := domain.ClinicalInput{
		Age:          *f.values.Age,
		BMI:          *f.values.BMI,
		Insulin:      *f.values.Insulin,
		Testosterone: *f.values.Testosterone,
		LH:           *f.values.LH,
		FSH:          *f.values.FSH,
		Glucose:      *f.values.Glucose,
		Cholesterol:  *f.values.Cholesterol,
	}
	f.mu.Unlock()

	result, err := f.api.Predict(ctx, token, in)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.errMsg = submissionMessage(err)
		return nil, err
	}
	f.result = result
	return result, nil
}

// State returns a snapshot for rendering.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Values: f.values,
		Error:  f.errMsg,
		Result: f.result,
	}
}

// submissionMessage classifies a submit failure: backend error body,
// connectivity, or anything else. The three are mutually exclusive.
func submissionMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return "Prediction failed: " + apiErr.Message
	}
	if errors.Is(err, domain.ErrUnavailable) {
		return msgCannotConnect
	}
	return fmt.Sprintf("Error: %v", err)
}
