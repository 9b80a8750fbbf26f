package domain

// PeriodFlow is the label for a day's flow intensity.
type PeriodFlow string

const (
	FlowNone   PeriodFlow = "None"
	FlowLight  PeriodFlow = "Light"
	FlowMedium PeriodFlow = "Medium"
	FlowHeavy  PeriodFlow = "Heavy"
)

// SymptomLog is one day's symptom snapshot, sent to
// POST /lifestyle/save-symptom-log. Severities derived from boolean
// toggles are 0 or 2; past entries are never edited client-side.
// @Description Daily symptom log entry.
type SymptomLog struct {
	// Calendar date in YYYY-MM-DD
	LogDate        string     `json:"log_date" example:"2026-08-30"`
	AcneSeverity   int        `json:"acne_severity" example:"2"`
	HirsutismScore int        `json:"hirsutism_score" example:"0"`
	HairLossScore  int        `json:"hair_loss_score" example:"0"`
	FatigueLevel   int        `json:"fatigue_level" example:"2"`
	MoodSwings     int        `json:"mood_swings" example:"0"`
	AnxietyLevel   int        `json:"anxiety_level" example:"0"`
	SleepQuality   int        `json:"sleep_quality" example:"7"`
	FoodCravings   int        `json:"food_cravings" example:"0"`
	Bloating       int        `json:"bloating" example:"2"`
	PeriodFlow     PeriodFlow `json:"period_flow" example:"Medium"`
	PeriodActive   bool       `json:"period_active" example:"true"`
}
