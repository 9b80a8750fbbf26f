package domain

// ClinicalInput is the 8-field lab payload sent to POST /predict.
// JSON keys match the backend's model feature names exactly.
// @Description Clinical lab values for the PCOS classifier.
type ClinicalInput struct {
	// Age in years
	Age float64 `json:"Age" example:"28"`
	// Body mass index (kg/m²)
	BMI float64 `json:"BMI" example:"24.5"`
	// Fasting insulin (μIU/mL)
	Insulin float64 `json:"Insulin" example:"12"`
	// Total testosterone (ng/dL)
	Testosterone float64 `json:"Testosterone" example:"40"`
	// Luteinizing hormone (mIU/mL)
	LH float64 `json:"LH" example:"7"`
	// Follicle stimulating hormone (mIU/mL)
	FSH float64 `json:"FSH" example:"6"`
	// Fasting glucose (mg/dL)
	Glucose float64 `json:"Glucose" example:"90"`
	// Total cholesterol (mg/dL)
	Cholesterol float64 `json:"Cholesterol" example:"180"`
}
