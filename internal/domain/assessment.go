package domain

import "math"

// Cycle regularity buckets used by the lifestyle assessment.
const (
	CycleRegular       = 0
	CycleIrregular     = 1
	CycleVeryIrregular = 2
)

// LifestyleAssessment is the payload sent to POST /lifestyle/assess.
// JSON keys match the backend's model feature names exactly, so this
// struct is the wire contract, not a view model.
// @Description Lifestyle assessment inputs; enums are small integers.
type LifestyleAssessment struct {
	Age                  float64 `json:"Age" validate:"required,gt=0" example:"28"`
	BMI                  float64 `json:"BMI" validate:"required,gt=0" example:"23.9"`
	CycleRegularity      int     `json:"CycleRegularity" validate:"min=0,max=2" example:"1"`
	CycleLength          float64 `json:"CycleLength" validate:"required,gt=0" example:"32"`
	Hirsutism            int     `json:"Hirsutism" validate:"min=0,max=3" example:"1"`
	Acne                 int     `json:"Acne" validate:"min=0,max=3" example:"2"`
	HairLoss             int     `json:"HairLoss" validate:"min=0,max=2" example:"0"`
	WeightGainDifficulty int     `json:"WeightGainDifficulty" validate:"min=0,max=2" example:"1"`
	FamilyHistory        int     `json:"FamilyHistory" validate:"min=0,max=1" example:"0"`
	StressLevel          float64 `json:"StressLevel" validate:"min=0,max=10" example:"5"`
	ExerciseFrequency    float64 `json:"ExerciseFrequency" validate:"min=0,max=7" example:"3"`
	SleepQuality         float64 `json:"SleepQuality" validate:"min=0,max=10" example:"7"`
	Height               float64 `json:"height" validate:"required,gt=0" example:"165"`
	Weight               float64 `json:"weight" validate:"required,gt=0" example:"65"`
}

// ComputeBMI derives BMI from height in centimeters and weight in
// kilograms, rounded to one decimal place.
func ComputeBMI(heightCm, weightKg float64) float64 {
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}
