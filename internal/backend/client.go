// Package backend provides a typed HTTP client for the remote PCOS
// prediction service. The prediction model itself lives behind this
// API; the companion only calls it. Failed calls surface directly to
// the user without retries.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pcos-companion/internal/domain"
)

// requestTimeout bounds every call to the prediction backend.
const requestTimeout = 30 * time.Second

// Client is the interface to the prediction backend.
type Client interface {
	// Health probes GET /health without authentication.
	Health(ctx context.Context) (*HealthStatus, error)
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	// Register creates an account and returns a bearer token.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	// CurrentUser validates a token by fetching the profile behind it.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	// Predict runs the clinical classifier on 8 lab values.
	Predict(ctx context.Context, token string, in domain.ClinicalInput) (*domain.PredictionResult, error)
	// Assess runs the lifestyle classifier and returns recommendations.
	Assess(ctx context.Context, token string, in domain.LifestyleAssessment) (*domain.PredictionResult, error)
	// SaveSymptomLog stores one day's symptom snapshot.
	SaveSymptomLog(ctx context.Context, token string, log domain.SymptomLog) error
	// LifestyleHistory lists stored lifestyle assessments, server order.
	LifestyleHistory(ctx context.Context, token string) ([]domain.LifestyleHistoryItem, error)
	// PredictionHistory lists stored clinical predictions, server order.
	PredictionHistory(ctx context.Context, token string) ([]domain.ClinicalHistoryItem, error)
}

// HealthStatus is the backend liveness report.
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Online reports whether the backend considers itself healthy.
func (h *HealthStatus) Online() bool {
	return h != nil && h.Status == "healthy"
}

// APIError is a non-success response from the backend with the
// message extracted from its error body when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a backend 401, meaning the
// token behind the call is expired or invalid.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}
	return false
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the prediction backend rooted at
// baseURL.
func NewClient(baseURL string) Client {
	return &client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, domain.ErrNoToken
	}
	return &out, nil
}

func (c *client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, domain.ErrNoToken
	}
	return &out, nil
}

func (c *client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Predict(ctx context.Context, token string, in domain.ClinicalInput) (*domain.PredictionResult, error) {
	var out domain.PredictionResult
	if err := c.do(ctx, http.MethodPost, "/predict", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Assess(ctx context.Context, token string, in domain.LifestyleAssessment) (*domain.PredictionResult, error) {
	var out domain.PredictionResult
	if err := c.do(ctx, http.MethodPost, "/lifestyle/assess", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) SaveSymptomLog(ctx context.Context, token string, log domain.SymptomLog) error {
	return c.do(ctx, http.MethodPost, "/lifestyle/save-symptom-log", token, log, nil)
}

func (c *client) LifestyleHistory(ctx context.Context, token string) ([]domain.LifestyleHistoryItem, error) {
	var out domain.LifestyleHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/lifestyle/prediction-history", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Predictions, nil
}

func (c *client) PredictionHistory(ctx context.Context, token string) ([]domain.ClinicalHistoryItem, error) {
	var out domain.ClinicalHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/predictions/history", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Predictions, nil
}

// errorBody is the backend's error envelope; either key may carry the
// message.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do issues one JSON request and decodes the response into out when
// non-nil. Transport failures wrap domain.ErrUnavailable; non-success
// statuses become *APIError. The two are mutually exclusive.
func (c *client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("request failed (%d)", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
