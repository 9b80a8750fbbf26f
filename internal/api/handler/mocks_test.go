package handler

import (
	"context"
	"testing"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
	"pcos-companion/internal/session"
)

// mockClient is a mock implementation of backend.Client
type mockClient struct {
	healthFunc            func(ctx context.Context) (*backend.HealthStatus, error)
	loginFunc             func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	registerFunc          func(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	currentUserFunc       func(ctx context.Context, token string) (*domain.User, error)
	predictFunc           func(ctx context.Context, token string, in domain.ClinicalInput) (*domain.PredictionResult, error)
	assessFunc            func(ctx context.Context, token string, in domain.LifestyleAssessment) (*domain.PredictionResult, error)
	saveSymptomLogFunc    func(ctx context.Context, token string, log domain.SymptomLog) error
	lifestyleHistoryFunc  func(ctx context.Context, token string) ([]domain.LifestyleHistoryItem, error)
	predictionHistoryFunc func(ctx context.Context, token string) ([]domain.ClinicalHistoryItem, error)
}

func (m *mockClient) Health(ctx context.Context) (*backend.HealthStatus, error) {
	if m.healthFunc != nil {
		return m.healthFunc(ctx)
	}
	return &backend.HealthStatus{Status: "healthy"}, nil
}

func (m *mockClient) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return &domain.AuthResponse{Token: "tok"}, nil
}

func (m *mockClient) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return &domain.AuthResponse{Token: "tok"}, nil
}

func (m *mockClient) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if m.currentUserFunc != nil {
		return m.currentUserFunc(ctx, token)
	}
	return &domain.User{ID: 1, Email: "ada@example.com"}, nil
}

func (m *mockClient) Predict(ctx context.Context, token string, in domain.ClinicalInput) (*domain.PredictionResult, error) {
	if m.predictFunc != nil {
		return m.predictFunc(ctx, token, in)
	}
	return &domain.PredictionResult{Probability: 0.2, RiskLevel: domain.RiskLow}, nil
}

func (m *mockClient) Assess(ctx context.Context, token string, in domain.LifestyleAssessment) (*domain.PredictionResult, error) {
	if m.assessFunc != nil {
		return m.assessFunc(ctx, token, in)
	}
	return &domain.PredictionResult{Probability: 0.2, RiskLevel: domain.RiskLow}, nil
}

func (m *mockClient) SaveSymptomLog(ctx context.Context, token string, log domain.SymptomLog) error {
	if m.saveSymptomLogFunc != nil {
		return m.saveSymptomLogFunc(ctx, token, log)
	}
	return nil
}

func (m *mockClient) LifestyleHistory(ctx context.Context, token string) ([]domain.LifestyleHistoryItem, error) {
	if m.lifestyleHistoryFunc != nil {
		return m.lifestyleHistoryFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockClient) PredictionHistory(ctx context.Context, token string) ([]domain.ClinicalHistoryItem, error) {
	if m.predictionHistoryFunc != nil {
		return m.predictionHistoryFunc(ctx, token)
	}
	return nil, nil
}

// memoryTokenStore keeps the token in memory for tests.
type memoryTokenStore struct {
	token string
}

func (s *memoryTokenStore) Load() (string, error)   { return s.token, nil }
func (s *memoryTokenStore) Save(token string) error { s.token = token; return nil }
func (s *memoryTokenStore) Clear() error            { s.token = ""; return nil }

// authedManager returns a session manager already signed in against api.
func authedManager(t *testing.T, api backend.Client) *session.Manager {
	t.Helper()
	mgr := session.NewManager(api, &memoryTokenStore{})
	if err := mgr.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return mgr
}
