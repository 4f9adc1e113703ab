// FilePath: internal/models/models.pollution.go
package models

import "time"

// AirPollutionMeasurement is one flattened air-quality sample as stored in
// air_pollution_measurements. AQI is the provider's categorical index, not
// computed locally. Concentration fields are in ug/m3.
type AirPollutionMeasurement struct {
	AirPollutionID       int64     `json:"air_pollution_id" db:"air_pollution_id"`
	CityID               int       `json:"city_id" db:"city_id"`
	MeasurementTimestamp time.Time `json:"measurement_timestamp" db:"measurement_timestamp"`
	CollectionTimestamp  time.Time `json:"collection_timestamp" db:"collection_timestamp"`
	AQI                  *int      `json:"aqi,omitempty" db:"aqi"`
	CO                   *float64  `json:"co,omitempty" db:"co"`
	NO                   *float64  `json:"no,omitempty" db:"no"`
	NO2                  *float64  `json:"no2,omitempty" db:"no2"`
	O3                   *float64  `json:"o3,omitempty" db:"o3"`
	SO2                  *float64  `json:"so2,omitempty" db:"so2"`
	PM25                 *float64  `json:"pm2_5,omitempty" db:"pm2_5"`
	PM10                 *float64  `json:"pm10,omitempty" db:"pm10"`
	NH3                  *float64  `json:"nh3,omitempty" db:"nh3"`
}

// PollutionRow is the listing view of a pollution sample joined with its city.
type PollutionRow struct {
	City                 string    `json:"city" db:"city"`
	Country              string    `json:"country" db:"country"`
	MeasurementTimestamp time.Time `json:"measurement_timestamp" db:"measurement_timestamp"`
	AQI                  *int      `json:"aqi" db:"aqi"`
	CO                   *float64  `json:"co" db:"co"`
	NO2                  *float64  `json:"no2" db:"no2"`
	O3                   *float64  `json:"o3" db:"o3"`
	PM25                 *float64  `json:"pm2_5" db:"pm2_5"`
	PM10                 *float64  `json:"pm10" db:"pm10"`
}
