// FilePath: internal/repository/postgres/postgres.store.go
package postgres

import (
	"context"

	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/models"
	"github.com/urbanclimate/airwatch/internal/repository"
)

// MeasurementStore is the relational implementation of the collector's
// write path. It resolves the city id once per sample and performs each
// insert as its own autocommit statement.
type MeasurementStore struct {
	cities    repository.CityRepository
	weather   repository.WeatherRepository
	pollution repository.PollutionRepository
}

func NewMeasurementStore(
	cities repository.CityRepository,
	weather repository.WeatherRepository,
	pollution repository.PollutionRepository,
) *MeasurementStore {
	return &MeasurementStore{
		cities:    cities,
		weather:   weather,
		pollution: pollution,
	}
}

// SaveSample persists whatever the collection pass obtained for one city.
// The pollution row is stamped with the weather measurement timestamp so
// the two streams pair up under the exact-match correlation join. A
// failed weather insert does not block the pollution insert; the first
// error is reported to the caller.
func (s *MeasurementStore) SaveSample(ctx context.Context, city models.City, weather *models.WeatherMeasurement, pollution *models.AirPollutionMeasurement) error {
	cityID, err := s.cities.ResolveID(ctx, city.Name, city.Country)
	if err != nil {
		return err
	}

	var firstErr error

	if weather != nil {
		weather.CityID = cityID
		if err := s.weather.Insert(ctx, weather); err != nil {
			nuts.L.Errorf("[MeasurementStore] Failed to insert weather sample for %s: %v", city.Name, err)
			firstErr = err
		}
	}

	if pollution != nil {
		pollution.CityID = cityID
		if weather != nil {
			pollution.MeasurementTimestamp = weather.MeasurementTimestamp
		}
		if err := s.pollution.Insert(ctx, pollution); err != nil {
			nuts.L.Errorf("[MeasurementStore] Failed to insert pollution sample for %s: %v", city.Name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
