// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/urbanclimate/airwatch/internal/database"
	"github.com/urbanclimate/airwatch/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// SampleQuery narrows a measurement listing. All supplied filters must
// match; nil time bounds are open-ended.
type SampleQuery struct {
	City    string
	Country string
	Start   *time.Time
	End     *time.Time
}

// CityRepository defines the interface for the city registry
type CityRepository interface {
	database.Repository
	Seed(ctx context.Context, cities []models.City) error
	ResolveID(ctx context.Context, name, country string) (int, error)
	List(ctx context.Context) ([]models.City, error)
}

// WeatherRepository defines the interface for weather samples
type WeatherRepository interface {
	database.Repository
	Insert(ctx context.Context, m *models.WeatherMeasurement) error
	List(ctx context.Context, q SampleQuery) ([]models.WeatherRow, error)
}

// PollutionRepository defines the interface for air pollution samples
type PollutionRepository interface {
	database.Repository
	Insert(ctx context.Context, m *models.AirPollutionMeasurement) error
	List(ctx context.Context, q SampleQuery) ([]models.PollutionRow, error)
}

// AnalyticsRepository defines the read-only windowed and joined views
// over both measurement streams.
type AnalyticsRepository interface {
	CityStatistics(ctx context.Context, city string, days int) ([]models.CityStats, error)
	Correlation(ctx context.Context, city string, days int) ([]models.CorrelationRow, error)
	HighPollutionAlerts(ctx context.Context, aqiThreshold int, pm25Threshold float64, days int) ([]models.PollutionAlert, error)
	PredictionData(ctx context.Context, city string, hoursBack int) ([]models.PredictionRow, error)
	PredictionDataFlexible(ctx context.Context, city string, hoursBack int) ([]models.FlexiblePredictionRow, error)
}

// MeasurementSink is the collector's write path. The Postgres store and
// the CSV fallback both implement it; which one the collector uses is
// decided by configuration. A nil pollution sample means only weather
// was obtained this cycle.
type MeasurementSink interface {
	SaveSample(ctx context.Context, city models.City, weather *models.WeatherMeasurement, pollution *models.AirPollutionMeasurement) error
}
