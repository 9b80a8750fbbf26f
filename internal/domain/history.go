package domain

// RiskFactor is one explained model input on a stored lifestyle
// assessment.
type RiskFactor struct {
	Value      float64 `json:"value"`
	Importance float64 `json:"importance"`
}

// LifestyleHistoryItem is a stored lifestyle assessment as returned
// by GET /lifestyle/prediction-history. Rendered in server order.
type LifestyleHistoryItem struct {
	ID              string                `json:"id"`
	RiskLevel       RiskLevel             `json:"risk_level"`
	RiskScore       float64               `json:"risk_score"`
	CreatedAt       string                `json:"created_at"`
	RiskFactors     map[string]RiskFactor `json:"risk_factors,omitempty"`
	Recommendations []Recommendation      `json:"recommendations,omitempty"`
}

// ClinicalHistoryItem is a stored clinical prediction as returned by
// GET /predictions/history.
type ClinicalHistoryItem struct {
	ID               string             `json:"id"`
	RiskLevel        RiskLevel          `json:"risk_level,omitempty"`
	PredictionResult int                `json:"prediction_result"`
	Probability      float64            `json:"probability"`
	CreatedAt        string             `json:"created_at"`
	InputData        map[string]float64 `json:"input_data,omitempty"`
}

// DisplayRiskLevel resolves the badge for older records that predate
// the risk_level column: prediction_result 1 maps to High, else Low.
func (c ClinicalHistoryItem) DisplayRiskLevel() RiskLevel {
	if c.RiskLevel != "" {
		return c.RiskLevel
	}
	if c.PredictionResult == 1 {
		return RiskHigh
	}
	return RiskLow
}

// LifestyleHistoryResponse wraps the lifestyle history list.
type LifestyleHistoryResponse struct {
	Predictions []LifestyleHistoryItem `json:"predictions"`
}

// ClinicalHistoryResponse wraps the clinical history list.
type ClinicalHistoryResponse struct {
	Predictions []ClinicalHistoryItem `json:"predictions"`
}
