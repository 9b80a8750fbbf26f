package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pcos-companion/internal/domain"
	"pcos-companion/internal/llm"
)

// mockGuidanceLLM is a mock implementation of llm.GuidanceLLM
type mockGuidanceLLM struct {
	generateFunc func(ctx context.Context, result *domain.PredictionResult) (*llm.Guidance, error)
}

func (m *mockGuidanceLLM) GenerateGuidance(ctx context.Context, result *domain.PredictionResult) (*llm.Guidance, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, result)
	}
	return &llm.Guidance{Summary: "Keep a steady routine."}, nil
}

func TestGuidanceHandler_Generate(t *testing.T) {
	handler := NewGuidanceHandler(&mockGuidanceLLM{
		generateFunc: func(ctx context.Context, result *domain.PredictionResult) (*llm.Guidance, error) {
			if result.RiskLevel != domain.RiskModerate {
				t.Errorf("result = %+v", result)
			}
			return &llm.Guidance{
				Summary:      "A balanced week helps.",
				FocusAreas:   []string{"sleep"},
				WeeklyHabits: []string{"three walks"},
			}, nil
		},
	})

	body := `{"probability": 0.61, "risk_level": "Moderate"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/guidance", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Generate() status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var g llm.Guidance
	if err := json.NewDecoder(rec.Body).Decode(&g); err != nil {
		t.Fatalf("decode guidance: %v", err)
	}
	if g.Summary == "" || len(g.FocusAreas) != 1 {
		t.Errorf("guidance = %+v", g)
	}
}

func TestGuidanceHandler_GenerateFailures(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		llm            llm.GuidanceLLM
		wantStatusCode int
	}{
		{
			name:           "invalid JSON",
			body:           `{invalid}`,
			llm:            &mockGuidanceLLM{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown risk level",
			body:           `{"probability": 0.5, "risk_level": "extreme"}`,
			llm:            &mockGuidanceLLM{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "not configured",
			body:           `{"probability": 0.5, "risk_level": "Low"}`,
			llm:            (*llm.OpenAIClient)(nil),
			wantStatusCode: http.StatusServiceUnavailable,
		},
		{
			name: "openai failure",
			body: `{"probability": 0.5, "risk_level": "Low"}`,
			llm: &mockGuidanceLLM{
				generateFunc: func(ctx context.Context, result *domain.PredictionResult) (*llm.Guidance, error) {
					return nil, llm.ErrOpenAIResponse
				},
			},
			wantStatusCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewGuidanceHandler(tt.llm)

			req := httptest.NewRequest(http.MethodPost, "/v1/guidance", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.Generate(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Generate() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
