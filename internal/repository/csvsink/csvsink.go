// FilePath: internal/repository/csvsink/csvsink.go
package csvsink

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/models"
)

// Sink appends collected samples to a flat CSV file instead of the
// relational store. It implements repository.MeasurementSink and is
// selected via the collector.sink configuration. One combined row per
// city per pass; the header is written when the file is created.
type Sink struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Sink {
	return &Sink{path: path}
}

var header = []string{
	"collection_timestamp", "city", "country", "latitude", "longitude",
	"measurement_timestamp", "temperature", "feels_like", "temp_min", "temp_max",
	"pressure", "humidity", "sea_level", "ground_level", "visibility",
	"wind_speed", "wind_degree", "wind_gust", "clouds_all",
	"rain_1h", "rain_3h", "snow_1h", "snow_3h",
	"weather_condition_id", "weather_main", "weather_description", "weather_icon",
	"sunrise", "sunset",
	"aqi", "co", "no", "no2", "o3", "so2", "pm2_5", "pm10", "nh3",
}

func (s *Sink) SaveSample(ctx context.Context, city models.City, weather *models.WeatherMeasurement, pollution *models.AirPollutionMeasurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, statErr := os.Stat(s.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.NewInternalError("failed to open csv sink", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return errors.NewInternalError("failed to write csv header", err)
		}
	}

	if err := w.Write(s.record(city, weather, pollution)); err != nil {
		return errors.NewInternalError("failed to append csv record", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewInternalError("failed to flush csv sink", err)
	}

	nuts.L.Infof("[CSVSink] Appended sample for %s to %s", city.Name, s.path)
	return nil
}

func (s *Sink) record(city models.City, weather *models.WeatherMeasurement, pollution *models.AirPollutionMeasurement) []string {
	row := []string{
		time.Now().UTC().Format(time.RFC3339),
		city.Name,
		city.Country,
		strconv.FormatFloat(city.Latitude, 'f', -1, 64),
		strconv.FormatFloat(city.Longitude, 'f', -1, 64),
	}

	if weather != nil {
		row = append(row,
			weather.MeasurementTimestamp.UTC().Format(time.RFC3339),
			fmtFloat(weather.Temperature), fmtFloat(weather.FeelsLike),
			fmtFloat(weather.TempMin), fmtFloat(weather.TempMax),
			fmtInt(weather.Pressure), fmtInt(weather.Humidity),
			fmtInt(weather.SeaLevel), fmtInt(weather.GroundLevel), fmtInt(weather.Visibility),
			fmtFloat(weather.WindSpeed), fmtInt(weather.WindDegree), fmtFloat(weather.WindGust),
			fmtInt(weather.CloudsAll),
			fmtFloat(weather.Rain1h), fmtFloat(weather.Rain3h),
			fmtFloat(weather.Snow1h), fmtFloat(weather.Snow3h),
			fmtInt(weather.WeatherConditionID), fmtString(weather.WeatherMain),
			fmtString(weather.WeatherDescription), fmtString(weather.WeatherIcon),
			fmtString(weather.Sunrise), fmtString(weather.Sunset),
		)
	} else {
		row = append(row, make([]string, 24)...)
	}

	if pollution != nil {
		row = append(row,
			fmtInt(pollution.AQI),
			fmtFloat(pollution.CO), fmtFloat(pollution.NO), fmtFloat(pollution.NO2),
			fmtFloat(pollution.O3), fmtFloat(pollution.SO2),
			fmtFloat(pollution.PM25), fmtFloat(pollution.PM10), fmtFloat(pollution.NH3),
		)
	} else {
		row = append(row, make([]string, 9)...)
	}

	return row
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fmtInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func fmtString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
