package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
)

func TestHealthHandler_Get(t *testing.T) {
	tests := []struct {
		name        string
		api         *mockClient
		wantBackend string
	}{
		{
			name:        "backend healthy",
			api:         &mockClient{},
			wantBackend: "online",
		},
		{
			name: "backend degraded",
			api: &mockClient{
				healthFunc: func(ctx context.Context) (*backend.HealthStatus, error) {
					return &backend.HealthStatus{Status: "unhealthy", Error: "model missing"}, nil
				},
			},
			wantBackend: "offline",
		},
		{
			name: "backend unreachable",
			api: &mockClient{
				healthFunc: func(ctx context.Context) (*backend.HealthStatus, error) {
					return nil, domain.ErrUnavailable
				},
			},
			wantBackend: "offline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.api)

			rec := httptest.NewRecorder()
			handler.Get(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("Get() status = %d", rec.Code)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != "ok" || resp.Backend != tt.wantBackend {
				t.Errorf("response = %+v, want backend %q", resp, tt.wantBackend)
			}
		})
	}
}
