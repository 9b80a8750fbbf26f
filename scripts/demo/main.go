// Script to exercise the prediction backend end to end: register or
// log in, submit a lifestyle assessment, then read back the history.
// Usage: go run scripts/demo/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
)

func main() {
	baseURL := getEnv("BACKEND_BASE_URL", "http://localhost:8000")
	email := getEnv("DEMO_EMAIL", "demo@example.com")
	password := getEnv("DEMO_PASSWORD", "demo-pass-123")

	fmt.Println("=== Backend Round-Trip Demo ===")
	fmt.Printf("Backend: %s\n", baseURL)
	fmt.Printf("Email:   %s\n\n", email)

	client := backend.NewClient(baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	status, err := client.Health(ctx)
	if err != nil {
		log.Fatalf("Backend unreachable: %v", err)
	}
	fmt.Printf("Health: %s (model loaded: %v)\n", status.Status, status.ModelLoaded)

	token := signIn(ctx, client, email, password)
	fmt.Println("Signed in.")

	result, err := client.Assess(ctx, token, domain.LifestyleAssessment{
		Age:               28,
		BMI:               23.9,
		CycleLength:       30,
		StressLevel:       5,
		ExerciseFrequency: 3,
		SleepQuality:      7,
		Height:            165,
		Weight:            65,
	})
	if err != nil {
		log.Fatalf("Assessment failed: %v", err)
	}
	fmt.Printf("Assessment: %s risk (probability %.2f)\n", result.RiskLevel, result.Probability)

	lifestyle, err := client.LifestyleHistory(ctx, token)
	if err != nil {
		log.Fatalf("History failed: %v", err)
	}
	clinical, err := client.PredictionHistory(ctx, token)
	if err != nil {
		log.Fatalf("History failed: %v", err)
	}
	fmt.Printf("History: %d lifestyle, %d clinical\n", len(lifestyle), len(clinical))
}

// signIn logs in, falling back to registration for a fresh backend.
func signIn(ctx context.Context, client backend.Client, email, password string) string {
	resp, err := client.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err == nil {
		return resp.Token
	}

	fmt.Printf("Login failed (%v), registering...\n", err)
	resp, err = client.Register(ctx, domain.RegisterRequest{Email: email, Password: password})
	if err != nil {
		log.Fatalf("Register failed: %v", err)
	}
	return resp.Token
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
