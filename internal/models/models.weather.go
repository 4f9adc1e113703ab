// FilePath: internal/models/models.weather.go
package models

import "time"

// WeatherMeasurement is one flattened current-weather sample as stored in
// weather_measurements. MeasurementTimestamp is the upstream validity time
// (the provider's dt field); CollectionTimestamp is when this process
// observed the reading. Optional upstream fields stay nil when absent.
type WeatherMeasurement struct {
	WeatherID            int64     `json:"weather_id" db:"weather_id"`
	CityID               int       `json:"city_id" db:"city_id"`
	MeasurementTimestamp time.Time `json:"measurement_timestamp" db:"measurement_timestamp"`
	CollectionTimestamp  time.Time `json:"collection_timestamp" db:"collection_timestamp"`
	Temperature          *float64  `json:"temperature,omitempty" db:"temperature"`
	FeelsLike            *float64  `json:"feels_like,omitempty" db:"feels_like"`
	TempMin              *float64  `json:"temp_min,omitempty" db:"temp_min"`
	TempMax              *float64  `json:"temp_max,omitempty" db:"temp_max"`
	Pressure             *int      `json:"pressure,omitempty" db:"pressure"`
	Humidity             *int      `json:"humidity,omitempty" db:"humidity"`
	SeaLevel             *int      `json:"sea_level,omitempty" db:"sea_level"`
	GroundLevel          *int      `json:"ground_level,omitempty" db:"ground_level"`
	Visibility           *int      `json:"visibility,omitempty" db:"visibility"`
	WindSpeed            *float64  `json:"wind_speed,omitempty" db:"wind_speed"`
	WindDegree           *int      `json:"wind_degree,omitempty" db:"wind_degree"`
	WindGust             *float64  `json:"wind_gust,omitempty" db:"wind_gust"`
	CloudsAll            *int      `json:"clouds_all,omitempty" db:"clouds_all"`
	Rain1h               *float64  `json:"rain_1h,omitempty" db:"rain_1h"`
	Rain3h               *float64  `json:"rain_3h,omitempty" db:"rain_3h"`
	Snow1h               *float64  `json:"snow_1h,omitempty" db:"snow_1h"`
	Snow3h               *float64  `json:"snow_3h,omitempty" db:"snow_3h"`
	WeatherConditionID   *int      `json:"weather_condition_id,omitempty" db:"weather_condition_id"`
	WeatherMain          *string   `json:"weather_main,omitempty" db:"weather_main"`
	WeatherDescription   *string   `json:"weather_description,omitempty" db:"weather_description"`
	WeatherIcon          *string   `json:"weather_icon,omitempty" db:"weather_icon"`
	Sunrise              *string   `json:"sunrise,omitempty" db:"sunrise"`
	Sunset               *string   `json:"sunset,omitempty" db:"sunset"`
}

// WeatherRow is the listing view of a weather sample joined with its city.
type WeatherRow struct {
	City                 string    `json:"city" db:"city"`
	Country              string    `json:"country" db:"country"`
	MeasurementTimestamp time.Time `json:"measurement_timestamp" db:"measurement_timestamp"`
	Temperature          *float64  `json:"temperature" db:"temperature"`
	FeelsLike            *float64  `json:"feels_like" db:"feels_like"`
	Humidity             *int      `json:"humidity" db:"humidity"`
	Pressure             *int      `json:"pressure" db:"pressure"`
	WindSpeed            *float64  `json:"wind_speed" db:"wind_speed"`
	WeatherDescription   *string   `json:"weather_description" db:"weather_description"`
}
