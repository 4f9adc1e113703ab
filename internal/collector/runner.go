// FilePath: internal/collector/runner.go
package collector

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/models"
	"github.com/urbanclimate/airwatch/internal/repository"
)

// Fetcher is the upstream provider surface the runner needs. A nil
// return means the sample could not be obtained this cycle.
type Fetcher interface {
	FetchCurrentWeather(ctx context.Context, lat, lon float64) *models.WeatherMeasurement
	FetchAirPollution(ctx context.Context, lat, lon float64) *models.AirPollutionMeasurement
}

// Runner executes one collection pass over the configured city list.
// Cities are visited sequentially with a pacing delay between them so a
// pass never bursts requests at the upstream. A failure for one city
// is logged and skipped; the remaining cities are still processed.
type Runner struct {
	fetcher Fetcher
	sink    repository.MeasurementSink
	cities  []models.City
	pacing  time.Duration
}

func NewRunner(fetcher Fetcher, sink repository.MeasurementSink, cities []models.City, pacing time.Duration) *Runner {
	return &Runner{
		fetcher: fetcher,
		sink:    sink,
		cities:  cities,
		pacing:  pacing,
	}
}

// RunPass collects and persists one sample per city. The air quality
// endpoint is only queried when the weather fetch succeeded, so a
// pollution row never exists without its paired weather row. Returns
// the number of cities for which at least the weather sample was saved.
func (r *Runner) RunPass(ctx context.Context) int {
	collected := 0

	for i, city := range r.cities {
		if ctx.Err() != nil {
			nuts.L.Infof("[Collector] Pass interrupted after %d of %d cities", i, len(r.cities))
			return collected
		}

		if r.collectCity(ctx, city) {
			collected++
		}

		if r.pacing > 0 && i < len(r.cities)-1 {
			select {
			case <-ctx.Done():
				return collected
			case <-time.After(r.pacing):
			}
		}
	}

	nuts.L.Infof("[Collector] Pass completed, %d of %d cities collected", collected, len(r.cities))
	return collected
}

func (r *Runner) collectCity(ctx context.Context, city models.City) bool {
	weather := r.fetcher.FetchCurrentWeather(ctx, city.Latitude, city.Longitude)
	if weather == nil {
		nuts.L.Warnf("[Collector] No weather data for %s, skipping city this cycle", city.Name)
		return false
	}

	pollution := r.fetcher.FetchAirPollution(ctx, city.Latitude, city.Longitude)
	if pollution == nil {
		nuts.L.Warnf("[Collector] No air quality data for %s, saving weather only", city.Name)
	}

	if err := r.sink.SaveSample(ctx, city, weather, pollution); err != nil {
		nuts.L.Errorf("[Collector] Failed to save sample for %s: %v", city.Name, err)
		return false
	}

	nuts.L.Infof("[Collector] Collected sample for %s, %s", city.Name, city.Country)
	return true
}
