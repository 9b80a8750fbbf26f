package domain

// RiskLevel is the categorical output of the backend prediction.
// @Description Risk classification: Low, Moderate or High.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Valid reports whether the level is one of the known categories.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}

// BadgeClass returns the lowercase CSS-style class a front end keys
// its visual treatment on ("low", "moderate", "high").
func (r RiskLevel) BadgeClass() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskHigh:
		return "high"
	}
	return ""
}

// Icon returns the indicator shown next to the risk badge.
func (r RiskLevel) Icon() string {
	switch r {
	case RiskLow:
		return "✅"
	case RiskModerate:
		return "⚠️"
	}
	return "🚨"
}

// RecommendationPriority orders recommendation cards.
type RecommendationPriority string

const (
	PriorityLow    RecommendationPriority = "low"
	PriorityMedium RecommendationPriority = "medium"
	PriorityHigh   RecommendationPriority = "high"
)

// Recommendation is a structured, prioritized suggestion returned
// alongside an assessment result.
// @Description Prioritized lifestyle recommendation with action items.
type Recommendation struct {
	Category    string                 `json:"category"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    RecommendationPriority `json:"priority"`
	Actions     []string               `json:"actions"`
}

// PredictionResult is the immutable outcome of a lifestyle assessment
// or clinical prediction. It replaces any prior result in view state.
// @Description Risk classification returned by the prediction backend.
type PredictionResult struct {
	// Probability of PCOS in [0,1]
	Probability float64 `json:"probability" example:"0.72"`
	// Model confidence in [0,1]
	Confidence float64 `json:"confidence" example:"0.88"`
	// Categorical risk level
	RiskLevel RiskLevel `json:"risk_level" example:"High"`
	// Human-readable prediction summary
	PredictionText string `json:"prediction_text" example:"PCOS indicators detected"`
	// Raw classifier output (clinical predictions only)
	PCOSRisk bool `json:"pcos_risk,omitempty"`
	// Ordered recommendation cards (lifestyle assessments only)
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}
