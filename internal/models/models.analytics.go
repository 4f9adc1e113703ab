// FilePath: internal/models/models.analytics.go
package models

import "time"

// CityStats aggregates weather and air quality for one city over a
// trailing window. Cities with no weather rows in the window do not
// appear at all.
type CityStats struct {
	City              string   `json:"city" db:"city"`
	AvgTemperature    *float64 `json:"avg_temperature" db:"avg_temperature"`
	MaxTemperature    *float64 `json:"max_temperature" db:"max_temperature"`
	MinTemperature    *float64 `json:"min_temperature" db:"min_temperature"`
	AvgAQI            *float64 `json:"avg_aqi" db:"avg_aqi"`
	MeasurementsCount int      `json:"measurements_count" db:"measurements_count"`
}

// CorrelationRow merges a weather sample with the pollution sample taken
// at the same second for the same city. The join is an exact match on the
// truncated measurement timestamp; samples that drifted apart by even one
// second do not pair up.
type CorrelationRow struct {
	City               string    `json:"city" db:"city"`
	Timestamp          time.Time `json:"timestamp" db:"timestamp"`
	Temperature        *float64  `json:"temperature" db:"temperature"`
	Humidity           *int      `json:"humidity" db:"humidity"`
	Pressure           *int      `json:"pressure" db:"pressure"`
	WindSpeed          *float64  `json:"wind_speed" db:"wind_speed"`
	WeatherDescription *string   `json:"weather_description" db:"weather_description"`
	AQI                *int      `json:"aqi" db:"aqi"`
	PM25               *float64  `json:"pm2_5" db:"pm2_5"`
	PM10               *float64  `json:"pm10" db:"pm10"`
	NO2                *float64  `json:"no2" db:"no2"`
	O3                 *float64  `json:"o3" db:"o3"`
	CO                 *float64  `json:"co" db:"co"`
}

// PollutionAlert is a correlation row that exceeded at least one of the
// caller-supplied AQI / PM2.5 thresholds.
type PollutionAlert struct {
	City                 string    `json:"city" db:"city"`
	Timestamp            time.Time `json:"timestamp" db:"timestamp"`
	Temperature          *float64  `json:"temperature" db:"temperature"`
	Humidity             *int      `json:"humidity" db:"humidity"`
	Pressure             *int      `json:"pressure" db:"pressure"`
	WindSpeed            *float64  `json:"wind_speed" db:"wind_speed"`
	WeatherDescription   *string   `json:"weather_description" db:"weather_description"`
	AQI                  *int      `json:"aqi" db:"aqi"`
	PM25                 *float64  `json:"pm2_5" db:"pm2_5"`
	PM10                 *float64  `json:"pm10" db:"pm10"`
	NO2                  *float64  `json:"no2" db:"no2"`
	IsHighPollutionEvent int       `json:"is_high_pollution_event" db:"is_high_pollution_event"`
}

// PredictionRow carries fixed-offset lag/lead AQI features per city
// partition. Rows without a 12-positions-ahead value are filtered out by
// the repository (strict variant).
type PredictionRow struct {
	City         string    `json:"city" db:"city"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	Temperature  *float64  `json:"temperature" db:"temperature"`
	Humidity     *int      `json:"humidity" db:"humidity"`
	Pressure     *int      `json:"pressure" db:"pressure"`
	WindSpeed    *float64  `json:"wind_speed" db:"wind_speed"`
	AQI          *int      `json:"aqi" db:"aqi"`
	PM25         *float64  `json:"pm2_5" db:"pm2_5"`
	NO2          *float64  `json:"no2" db:"no2"`
	PrevAQI1h    *int      `json:"prev_aqi_1h" db:"prev_aqi_1h"`
	PrevAQI3h    *int      `json:"prev_aqi_3h" db:"prev_aqi_3h"`
	PrevAQI6h    *int      `json:"prev_aqi_6h" db:"prev_aqi_6h"`
	FutureAQI12h *int      `json:"future_aqi_12h" db:"future_aqi_12h"`
	FutureAQI24h *int      `json:"future_aqi_24h" db:"future_aqi_24h"`
}

// FlexiblePredictionRow uses small fixed offsets plus a bounded forward
// scan (earliest joined sample within the next 24 hours). Missing values
// are kept as nulls instead of dropping the row.
type FlexiblePredictionRow struct {
	City               string    `json:"city" db:"city"`
	Timestamp          time.Time `json:"timestamp" db:"timestamp"`
	Temperature        *float64  `json:"temperature" db:"temperature"`
	Humidity           *int      `json:"humidity" db:"humidity"`
	Pressure           *int      `json:"pressure" db:"pressure"`
	WindSpeed          *float64  `json:"wind_speed" db:"wind_speed"`
	AQI                *int      `json:"aqi" db:"aqi"`
	PM25               *float64  `json:"pm2_5" db:"pm2_5"`
	NO2                *float64  `json:"no2" db:"no2"`
	PrevAQI1           *int      `json:"prev_aqi_1" db:"prev_aqi_1"`
	PrevAQI2           *int      `json:"prev_aqi_2" db:"prev_aqi_2"`
	FutureAQINext      *int      `json:"future_aqi_next" db:"future_aqi_next"`
	FutureAQI2nd       *int      `json:"future_aqi_2nd" db:"future_aqi_2nd"`
	FutureAQI24hApprox *int      `json:"future_aqi_24h_approx" db:"future_aqi_24h_approx"`
}
