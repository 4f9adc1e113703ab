// FilePath: internal/models/api.models.filters.go
package models

// Filter structs are decoded from URL query parameters with gorilla/schema
// and range-checked with validator. Defaults are applied by the handlers
// before validation, so zero values never reach the validate step for the
// windowed queries.

// WeatherFilters narrows the weather/pollution listing endpoints. The date
// bounds stay strings here; handlers parse them as RFC3339 or unix seconds.
type WeatherFilters struct {
	City      string `schema:"city"`
	Country   string `schema:"country"`
	StartDate string `schema:"start_date"`
	EndDate   string `schema:"end_date"`
}

// StatisticsFilters selects the trailing window for per-city statistics.
type StatisticsFilters struct {
	City string `schema:"city"`
	Days int    `schema:"days" validate:"min=1,max=30"`
}

// CorrelationFilters selects the trailing window for the correlation view.
type CorrelationFilters struct {
	City string `schema:"city"`
	Days int    `schema:"days" validate:"min=7,max=90"`
}

// AlertFilters carries the high-pollution thresholds.
type AlertFilters struct {
	AQIThreshold  int     `schema:"aqi_threshold" validate:"min=50,max=300"`
	PM25Threshold float64 `schema:"pm25_threshold" validate:"min=10,max=100"`
	Days          int     `schema:"days" validate:"min=7,max=90"`
}

// PredictionFilters selects the trailing window, in hours, for the
// lag/lead feature views.
type PredictionFilters struct {
	City      string `schema:"city"`
	HoursBack int    `schema:"hours_back" validate:"min=24,max=720"`
}
