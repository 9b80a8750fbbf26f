package clinical

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
)

type mockPredictor struct {
	calls  int
	lastIn domain.ClinicalInput
	result *domain.PredictionResult
	err    error
}

func (m *mockPredictor) Predict(ctx context.Context, token string, in domain.ClinicalInput) (*domain.PredictionResult, error) {
	m.calls++
	m.lastIn = in
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func completeValues() Values {
	v, _ := SampleProfile("moderate")
	return v
}

func TestValidateEmptyFields(t *testing.T) {
	err := Validate(Values{Age: ptr(28)})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if !strings.HasPrefix(vErr.Message, "Please fill in all fields: ") {
		t.Errorf("message = %q", vErr.Message)
	}
	if strings.Contains(vErr.Message, "Age") {
		t.Errorf("populated field listed as empty: %q", vErr.Message)
	}
	if !strings.Contains(vErr.Message, "BMI") || !strings.Contains(vErr.Message, "Cholesterol") {
		t.Errorf("empty fields missing from message: %q", vErr.Message)
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *Values)
		wantErr string
	}{
		{"age below range", func(v *Values) { v.Age = ptr(14) }, "Age should be between 15 and 50"},
		{"age lower bound accepted", func(v *Values) { v.Age = ptr(15) }, ""},
		{"age upper bound accepted", func(v *Values) { v.Age = ptr(50) }, ""},
		{"age above range", func(v *Values) { v.Age = ptr(51) }, "Age should be between 15 and 50"},
		{"insulin above range", func(v *Values) { v.Insulin = ptr(101) }, "Insulin should be between 1 and 100"},
		{"testosterone below range", func(v *Values) { v.Testosterone = ptr(9) }, "Testosterone should be between 10 and 150"},
		{"glucose above range", func(v *Values) { v.Glucose = ptr(301) }, "Glucose should be between 50 and 300"},
		{"cholesterol below range", func(v *Values) { v.Cholesterol = ptr(99) }, "Cholesterol should be between 100 and 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := completeValues()
			tt.mutate(&v)

			err := Validate(v)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if vErr.Message != tt.wantErr {
				t.Errorf("message = %q, want %q", vErr.Message, tt.wantErr)
			}
		})
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	v := completeValues()
	v.Age = ptr(99)
	v.Cholesterol = ptr(999)

	err := Validate(v)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Validate() error = %v", err)
	}
	if !strings.HasPrefix(vErr.Message, "Age ") {
		t.Errorf("expected the Age failure first, got %q", vErr.Message)
	}
}

func TestSampleProfiles(t *testing.T) {
	high, ok := SampleProfile("high")
	if !ok {
		t.Fatal("high profile missing")
	}
	want := map[string]float64{
		"Age": 30, "BMI": 32, "Insulin": 25, "Testosterone": 70,
		"LH": 18, "FSH": 5, "Glucose": 120, "Cholesterol": 240,
	}
	for name, wantVal := range want {
		got := high.get(name)
		if got == nil || *got != wantVal {
			t.Errorf("high profile %s = %v, want %v", name, got, wantVal)
		}
	}

	if _, ok := SampleProfile("extreme"); ok {
		t.Error("unknown profile should not resolve")
	}
}

func TestFormFillSampleClearsState(t *testing.T) {
	api := &mockPredictor{result: &domain.PredictionResult{RiskLevel: domain.RiskLow}}
	f := NewForm(api)
	f.Update(completeValues())
	if _, err := f.Submit(context.Background(), "tok"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if f.State().Result == nil {
		t.Fatal("expected a held result")
	}

	if err := f.FillSample("high"); err != nil {
		t.Fatalf("FillSample() error = %v", err)
	}
	st := f.State()
	if st.Result != nil || st.Error != "" {
		t.Error("filling a sample must clear result and error")
	}
	if st.Values.Age == nil || *st.Values.Age != 30 {
		t.Errorf("sample values not applied: %+v", st.Values)
	}
}

func TestFormSubmitValidationShortCircuits(t *testing.T) {
	api := &mockPredictor{}
	f := NewForm(api)
	v := completeValues()
	v.Age = ptr(14)
	f.Update(v)

	_, err := f.Submit(context.Background(), "tok")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Submit() error = %v, want *ValidationError", err)
	}
	if api.calls != 0 {
		t.Error("validation failure must not reach the backend")
	}
	if !strings.Contains(f.State().Error, "Age") {
		t.Errorf("form error = %q, want field-specific message", f.State().Error)
	}
}

func TestFormSubmitClearsPriorResult(t *testing.T) {
	api := &mockPredictor{result: &domain.PredictionResult{RiskLevel: domain.RiskLow}}
	f := NewForm(api)
	f.Update(completeValues())
	if _, err := f.Submit(context.Background(), "tok"); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}

	// Second attempt fails: the prior result must be gone, not stale.
	api.err = &backend.APIError{Status: 500, Message: "Model not loaded"}
	if _, err := f.Submit(context.Background(), "tok"); err == nil {
		t.Fatal("second Submit() expected error")
	}
	st := f.State()
	if st.Result != nil {
		t.Error("failed submission must not leave the prior result visible")
	}
	if st.Error != "Prediction failed: Model not loaded" {
		t.Errorf("error = %q", st.Error)
	}
}

func TestFormSubmitErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"backend error body", &backend.APIError{Status: 400, Message: "Missing feature: LH"}, "Prediction failed: Missing feature: LH"},
		{"connectivity", domain.ErrUnavailable, msgCannotConnect},
		{"other error", errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewForm(&mockPredictor{err: tt.err})
			f.Update(completeValues())

			if _, err := f.Submit(context.Background(), "tok"); err == nil {
				t.Fatal("Submit() expected error")
			}
			if got := f.State().Error; got != tt.wantMsg {
				t.Errorf("error = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestFormReset(t *testing.T) {
	api := &mockPredictor{result: &domain.PredictionResult{RiskLevel: domain.RiskLow}}
	f := NewForm(api)
	f.Update(completeValues())
	if _, err := f.Submit(context.Background(), "tok"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	f.Reset()
	st := f.State()
	if st.Values.Age != nil || st.Result != nil || st.Error != "" {
		t.Errorf("state after reset = %+v", st)
	}
}
