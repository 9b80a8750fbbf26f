// Package visualization prepares the chart series a front end renders
// for a prediction result. Drawing is out of scope; this is data only.
package visualization

import "pcos-companion/internal/domain"

// Chart colors: green for healthy, red for risk.
const (
	colorHealthy = "#198754"
	colorRisk    = "#dc3545"
)

// Dataset is one chart series.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
}

// ChartData is the labels-plus-datasets shape both the bar and pie
// charts consume.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// RiskChart builds the healthy-vs-risk series from a probability in
// [0,1].
func RiskChart(probability float64) ChartData {
	return ChartData{
		Labels: []string{"Healthy", "PCOS Risk"},
		Datasets: []Dataset{
			{
				Label:           "Probability (%)",
				Data:            []float64{(1 - probability) * 100, probability * 100},
				BackgroundColor: []string{colorHealthy, colorRisk},
			},
		},
	}
}

// ResultCharts is the full visualization payload for a result: the
// same series rendered as a bar and as a pie chart.
type ResultCharts struct {
	Bar ChartData `json:"bar"`
	Pie ChartData `json:"pie"`
}

// FromResult builds both chart variants for a prediction result.
func FromResult(result *domain.PredictionResult) ResultCharts {
	data := RiskChart(result.Probability)
	return ResultCharts{Bar: data, Pie: data}
}
