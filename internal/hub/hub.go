// FilePath: internal/hub/hub.go
package hub

import (
	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/cache"
	"github.com/urbanclimate/airwatch/internal/collector"
	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/repository"
)

// Service contains all repositories and service-wide dependencies
type Service struct {
	Cities    repository.CityRepository
	Weather   repository.WeatherRepository
	Pollution repository.PollutionRepository
	Analytics repository.AnalyticsRepository
	Collector *collector.Service
	Cache     *cache.Cache
	Events    *nuts.EventEmitter
}

// New creates a new hub Service instance
func New(
	cities repository.CityRepository,
	weather repository.WeatherRepository,
	pollution repository.PollutionRepository,
	analytics repository.AnalyticsRepository,
	col *collector.Service,
	analyticsCache *cache.Cache,
	events *nuts.EventEmitter,
) *Service {
	return &Service{
		Cities:    cities,
		Weather:   weather,
		Pollution: pollution,
		Analytics: analytics,
		Collector: col,
		Cache:     analyticsCache,
		Events:    events,
	}
}

// Validate checks if all required dependencies are initialized
func (s *Service) Validate() error {
	if s.Cities == nil {
		return errMissingDependency("cities")
	}
	if s.Weather == nil {
		return errMissingDependency("weather")
	}
	if s.Pollution == nil {
		return errMissingDependency("pollution")
	}
	if s.Analytics == nil {
		return errMissingDependency("analytics")
	}
	if s.Collector == nil {
		return errMissingDependency("collector")
	}
	return nil
}

func errMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
