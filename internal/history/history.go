// Package history is the read-only view over past assessments. Both
// backend lists are fetched together; if either leg fails the whole
// view is in error rather than showing partial data.
package history

import (
	"context"
	"fmt"
	"sync"

	"pcos-companion/internal/domain"
)

// FailClosed is the both-or-error policy: never render one list when
// the other fetch failed. Named as a constant so revisiting the
// policy is a one-line change.
const FailClosed = true

// Fetcher is the slice of the backend client the view reads from.
type Fetcher interface {
	LifestyleHistory(ctx context.Context, token string) ([]domain.LifestyleHistoryItem, error)
	PredictionHistory(ctx context.Context, token string) ([]domain.ClinicalHistoryItem, error)
}

// Overview is both history lists plus the roll-up counts shown in the
// header, in server order.
type Overview struct {
	Lifestyle []domain.LifestyleHistoryItem `json:"lifestyle"`
	Clinical  []domain.ClinicalHistoryItem  `json:"clinical"`
	Total     int                           `json:"total"`
}

// Fetch loads both legs with the session token, one after the other.
func Fetch(ctx context.Context, api Fetcher, token string) (*Overview, error) {
	lifestyle, lErr := api.LifestyleHistory(ctx, token)
	clinical, cErr := api.PredictionHistory(ctx, token)

	if FailClosed && (lErr != nil || cErr != nil) {
		return nil, fetchError(lErr, cErr)
	}

	return &Overview{
		Lifestyle: lifestyle,
		Clinical:  clinical,
		Total:     len(lifestyle) + len(clinical),
	}, nil
}

func fetchError(lErr, cErr error) error {
	err := lErr
	if err == nil {
		err = cErr
	}
	return fmt.Errorf("Failed to load history: %w", err)
}

// View tracks which items are expanded. Expansion is per-id and
// non-exclusive; ids are namespaced by list so a lifestyle record and
// a clinical record never collide.
type View struct {
	mu       sync.Mutex
	expanded map[string]bool
}

// NewView creates a view with everything collapsed.
func NewView() *View {
	return &View{expanded: make(map[string]bool)}
}

// Toggle flips the expansion of one item and reports its new state.
func (v *View) Toggle(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expanded[id] = !v.expanded[id]
	return v.expanded[id]
}

// Expanded reports whether an item is expanded.
func (v *View) Expanded(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expanded[id]
}

// LifestyleID and ClinicalID build the namespaced toggle keys.
func LifestyleID(id string) string { return "lifestyle-" + id }
func ClinicalID(id string) string  { return "clinical-" + id }
