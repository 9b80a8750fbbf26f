// Package tracker implements the daily symptom and cycle tracker: a
// display-only calendar, boolean symptom toggles mapped to severity
// scores, and a flow intensity slider. Saves are atomic; nothing is
// read back after a save.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
)

// toggledSeverity is the score an active toggle maps to; an inactive
// one maps to 0.
const toggledSeverity = 2

// defaultSleepQuality is sent on every entry; the tracker UI has no
// sleep input.
const defaultSleepQuality = 7

// successBannerTTL is how long the success banner stays visible.
const successBannerTTL = 3 * time.Second

var flowLabels = [4]domain.PeriodFlow{domain.FlowNone, domain.FlowLight, domain.FlowMedium, domain.FlowHeavy}

// FlowLabel maps a slider position (0-3) to its label. Out-of-range
// positions clamp to the nearest end.
func FlowLabel(intensity int) domain.PeriodFlow {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 3 {
		intensity = 3
	}
	return flowLabels[intensity]
}

// LogSaver is the slice of the backend client the tracker saves to.
type LogSaver interface {
	SaveSymptomLog(ctx context.Context, token string, log domain.SymptomLog) error
}

// Toggles are the symptoms tracked per day. Headache is shown in the
// tracker but has no counterpart in the log payload; hirsutism is the
// reverse, always sent as 0.
type Toggles struct {
	Acne         bool `json:"acne"`
	Fatigue      bool `json:"fatigue"`
	MoodChanges  bool `json:"mood_changes"`
	Bloating     bool `json:"bloating"`
	FoodCravings bool `json:"food_cravings"`
	HairFall     bool `json:"hair_fall"`
	Anxiety      bool `json:"anxiety"`
	Headache     bool `json:"headache"`
}

// Entry is one day's pending log before submission.
type Entry struct {
	Date          time.Time `json:"-"`
	FlowIntensity int       `json:"flow_intensity" validate:"min=0,max=3"`
	Toggles       Toggles   `json:"symptoms"`
}

func severity(on bool) int {
	if on {
		return toggledSeverity
	}
	return 0
}

// Log builds the wire payload for the entry: toggles become {0,2}
// severities, the flow index becomes its label, and period_active
// reflects a non-zero flow.
func (e Entry) Log() domain.SymptomLog {
	return domain.SymptomLog{
		LogDate:        e.Date.Format("2006-01-02"),
		AcneSeverity:   severity(e.Toggles.Acne),
		HirsutismScore: 0,
		HairLossScore:  severity(e.Toggles.HairFall),
		FatigueLevel:   severity(e.Toggles.Fatigue),
		MoodSwings:     severity(e.Toggles.MoodChanges),
		AnxietyLevel:   severity(e.Toggles.Anxiety),
		SleepQuality:   defaultSleepQuality,
		FoodCravings:   severity(e.Toggles.FoodCravings),
		Bloating:       severity(e.Toggles.Bloating),
		PeriodFlow:     FlowLabel(e.FlowIntensity),
		PeriodActive:   e.FlowIntensity > 0,
	}
}

// BannerKind distinguishes the two banner styles.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the save status shown after an attempt. Success banners
// expire; error banners persist until the next attempt.
type Banner struct {
	Kind      BannerKind `json:"type"`
	Text      string     `json:"text"`
	expiresAt time.Time
}

// active reports whether the banner should still be shown at now.
func (b *Banner) active(now time.Time) bool {
	if b == nil {
		return false
	}
	return b.expiresAt.IsZero() || now.Before(b.expiresAt)
}

// Tracker holds the tracker view state: selected month and the last
// save banner.
type Tracker struct {
	api LogSaver
	now func() time.Time

	mu       sync.Mutex
	selected time.Time
	banner   *Banner
}

// New creates a tracker positioned on the current month.
func New(api LogSaver) *Tracker {
	return &Tracker{
		api:      api,
		now:      time.Now,
		selected: time.Now(),
	}
}

// Selected returns the date the calendar is positioned on.
func (t *Tracker) Selected() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// ChangeMonth steps the calendar by n months.
func (t *Tracker) ChangeMonth(n int) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = StepMonth(t.selected, n)
	return t.selected
}

// Save submits one entry. A success banner auto-expires; an error
// banner sticks until the next attempt replaces it.
func (t *Tracker) Save(ctx context.Context, token string, entry Entry) error {
	t.mu.Lock()
	t.banner = nil
	t.mu.Unlock()

	err := t.api.SaveSymptomLog(ctx, token, entry.Log())

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.banner = &Banner{Kind: BannerError, Text: "❌ Failed to save entry: " + saveErrorDetail(err)}
		return err
	}
	t.banner = &Banner{
		Kind:      BannerSuccess,
		Text:      "✅ Entry saved successfully!",
		expiresAt: t.now().Add(successBannerTTL),
	}
	return nil
}

// Banner returns the currently visible banner, or nil once a success
// banner has expired.
func (t *Tracker) Banner() *Banner {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.banner.active(t.now()) {
		return nil
	}
	return t.banner
}

func saveErrorDetail(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
