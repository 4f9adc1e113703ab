// FilePath: internal/collector/runner_test.go
package collector

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanclimate/airwatch/internal/models"
)

type fakeFetcher struct {
	failWeather   map[string]bool
	failPollution map[string]bool
	weatherCalls  []string
	pollutionCalls []string
	cities        map[string]string
}

func newFakeFetcher(cities []models.City) *fakeFetcher {
	byCoord := make(map[string]string, len(cities))
	for _, c := range cities {
		byCoord[coordKey(c.Latitude, c.Longitude)] = c.Name
	}
	return &fakeFetcher{
		failWeather:   map[string]bool{},
		failPollution: map[string]bool{},
		cities:        byCoord,
	}
}

func coordKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

func (f *fakeFetcher) FetchCurrentWeather(_ context.Context, lat, lon float64) *models.WeatherMeasurement {
	name := f.cities[coordKey(lat, lon)]
	f.weatherCalls = append(f.weatherCalls, name)
	if f.failWeather[name] {
		return nil
	}
	return &models.WeatherMeasurement{MeasurementTimestamp: time.Now().UTC()}
}

func (f *fakeFetcher) FetchAirPollution(_ context.Context, lat, lon float64) *models.AirPollutionMeasurement {
	name := f.cities[coordKey(lat, lon)]
	f.pollutionCalls = append(f.pollutionCalls, name)
	if f.failPollution[name] {
		return nil
	}
	aqi := 2
	return &models.AirPollutionMeasurement{AQI: &aqi}
}

type savedSample struct {
	city      string
	weather   *models.WeatherMeasurement
	pollution *models.AirPollutionMeasurement
}

type fakeSink struct {
	saved   []savedSample
	failFor map[string]error
}

func (f *fakeSink) SaveSample(_ context.Context, city models.City, w *models.WeatherMeasurement, p *models.AirPollutionMeasurement) error {
	if err := f.failFor[city.Name]; err != nil {
		return err
	}
	f.saved = append(f.saved, savedSample{city: city.Name, weather: w, pollution: p})
	return nil
}

func testCities() []models.City {
	return []models.City{
		{Name: "London", Country: "GB", Latitude: 51.5074, Longitude: -0.1278},
		{Name: "Paris", Country: "FR", Latitude: 48.8566, Longitude: 2.3522},
		{Name: "Berlin", Country: "DE", Latitude: 52.52, Longitude: 13.405},
	}
}

func TestRunPassCollectsAllCities(t *testing.T) {
	cities := testCities()
	fetcher := newFakeFetcher(cities)
	sink := &fakeSink{}

	runner := NewRunner(fetcher, sink, cities, 0)
	collected := runner.RunPass(context.Background())

	assert.Equal(t, 3, collected)
	require.Len(t, sink.saved, 3)
	for _, s := range sink.saved {
		assert.NotNil(t, s.weather)
		assert.NotNil(t, s.pollution)
	}
}

func TestRunPassSkipsPollutionWhenWeatherFails(t *testing.T) {
	cities := testCities()
	fetcher := newFakeFetcher(cities)
	fetcher.failWeather["Paris"] = true
	sink := &fakeSink{}

	runner := NewRunner(fetcher, sink, cities, 0)
	collected := runner.RunPass(context.Background())

	assert.Equal(t, 2, collected)
	require.Len(t, sink.saved, 2)
	assert.Equal(t, "London", sink.saved[0].city)
	assert.Equal(t, "Berlin", sink.saved[1].city)

	// The air quality endpoint must not be queried for the failed city.
	assert.NotContains(t, fetcher.pollutionCalls, "Paris")
}

func TestRunPassSavesWeatherWithoutPollution(t *testing.T) {
	cities := testCities()
	fetcher := newFakeFetcher(cities)
	fetcher.failPollution["Berlin"] = true
	sink := &fakeSink{}

	runner := NewRunner(fetcher, sink, cities, 0)
	collected := runner.RunPass(context.Background())

	assert.Equal(t, 3, collected)
	require.Len(t, sink.saved, 3)
	assert.NotNil(t, sink.saved[2].weather)
	assert.Nil(t, sink.saved[2].pollution)
}

func TestRunPassIsolatesSinkFailures(t *testing.T) {
	cities := testCities()
	fetcher := newFakeFetcher(cities)
	sink := &fakeSink{failFor: map[string]error{"London": assert.AnError}}

	runner := NewRunner(fetcher, sink, cities, 0)
	collected := runner.RunPass(context.Background())

	assert.Equal(t, 2, collected)
	require.Len(t, sink.saved, 2)
}

func TestRunPassStopsOnCancelledContext(t *testing.T) {
	cities := testCities()
	fetcher := newFakeFetcher(cities)
	sink := &fakeSink{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(fetcher, sink, cities, 0)
	collected := runner.RunPass(ctx)

	assert.Equal(t, 0, collected)
	assert.Empty(t, sink.saved)
}
