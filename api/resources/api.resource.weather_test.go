// FilePath: api/resources/api.resource.weather_test.go
package resources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/collector"
	"github.com/urbanclimate/airwatch/internal/database"
	"github.com/urbanclimate/airwatch/internal/hub"
	"github.com/urbanclimate/airwatch/internal/models"
	"github.com/urbanclimate/airwatch/internal/repository"
)

type fakeCityRepo struct {
	cities []models.City
	err    error
}

func (f *fakeCityRepo) BeginTx(ctx context.Context) (database.Transaction, error) { return nil, nil }
func (f *fakeCityRepo) Seed(ctx context.Context, cities []models.City) error      { return nil }
func (f *fakeCityRepo) ResolveID(ctx context.Context, name, country string) (int, error) {
	return 1, nil
}
func (f *fakeCityRepo) List(ctx context.Context) ([]models.City, error) { return f.cities, f.err }

type fakeWeatherRepo struct {
	lastQuery repository.SampleQuery
	rows      []models.WeatherRow
	err       error
}

func (f *fakeWeatherRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}
func (f *fakeWeatherRepo) Insert(ctx context.Context, m *models.WeatherMeasurement) error {
	return nil
}
func (f *fakeWeatherRepo) List(ctx context.Context, q repository.SampleQuery) ([]models.WeatherRow, error) {
	f.lastQuery = q
	return f.rows, f.err
}

type fakePollutionRepo struct {
	lastQuery repository.SampleQuery
	rows      []models.PollutionRow
	err       error
}

func (f *fakePollutionRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}
func (f *fakePollutionRepo) Insert(ctx context.Context, m *models.AirPollutionMeasurement) error {
	return nil
}
func (f *fakePollutionRepo) List(ctx context.Context, q repository.SampleQuery) ([]models.PollutionRow, error) {
	f.lastQuery = q
	return f.rows, f.err
}

type analyticsCall struct {
	city      string
	days      int
	hoursBack int
	aqi       int
	pm25      float64
}

type fakeAnalyticsRepo struct {
	last   analyticsCall
	alerts []models.PollutionAlert
	err    error
}

func (f *fakeAnalyticsRepo) CityStatistics(ctx context.Context, city string, days int) ([]models.CityStats, error) {
	f.last = analyticsCall{city: city, days: days}
	return []models.CityStats{}, f.err
}
func (f *fakeAnalyticsRepo) Correlation(ctx context.Context, city string, days int) ([]models.CorrelationRow, error) {
	f.last = analyticsCall{city: city, days: days}
	return []models.CorrelationRow{}, f.err
}
func (f *fakeAnalyticsRepo) HighPollutionAlerts(ctx context.Context, aqiThreshold int, pm25Threshold float64, days int) ([]models.PollutionAlert, error) {
	f.last = analyticsCall{aqi: aqiThreshold, pm25: pm25Threshold, days: days}
	return f.alerts, f.err
}
func (f *fakeAnalyticsRepo) PredictionData(ctx context.Context, city string, hoursBack int) ([]models.PredictionRow, error) {
	f.last = analyticsCall{city: city, hoursBack: hoursBack}
	return []models.PredictionRow{}, f.err
}
func (f *fakeAnalyticsRepo) PredictionDataFlexible(ctx context.Context, city string, hoursBack int) ([]models.FlexiblePredictionRow, error) {
	f.last = analyticsCall{city: city, hoursBack: hoursBack}
	return []models.FlexiblePredictionRow{}, f.err
}

type stubFetcher struct{}

func (stubFetcher) FetchCurrentWeather(ctx context.Context, lat, lon float64) *models.WeatherMeasurement {
	return &models.WeatherMeasurement{MeasurementTimestamp: time.Now().UTC()}
}
func (stubFetcher) FetchAirPollution(ctx context.Context, lat, lon float64) *models.AirPollutionMeasurement {
	return &models.AirPollutionMeasurement{}
}

type stubSink struct{}

func (stubSink) SaveSample(ctx context.Context, city models.City, w *models.WeatherMeasurement, p *models.AirPollutionMeasurement) error {
	return nil
}

type testEnv struct {
	weather   *fakeWeatherRepo
	pollution *fakePollutionRepo
	analytics *fakeAnalyticsRepo
	resources *Resources
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cityList := []models.City{{Name: "London", Country: "GB", Latitude: 51.5074, Longitude: -0.1278}}
	weather := &fakeWeatherRepo{rows: []models.WeatherRow{}}
	pollution := &fakePollutionRepo{rows: []models.PollutionRow{}}
	analytics := &fakeAnalyticsRepo{}

	runner := collector.NewRunner(stubFetcher{}, stubSink{}, cityList, 0)
	col := collector.NewService(runner, nuts.NewEventEmitter(), 120*time.Second, time.Second, 10*time.Millisecond)

	svc := hub.New(&fakeCityRepo{cities: cityList}, weather, pollution, analytics, col, nil, nuts.NewEventEmitter())

	return &testEnv{
		weather:   weather,
		pollution: pollution,
		analytics: analytics,
		resources: NewResources(svc),
	}
}

func doGet(t *testing.T, handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestListWeatherForwardsFilters(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Weather.ListWeather,
		"/api/v1/weather?city=London&country=GB&start_date=2026-08-01T00:00:00Z")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "London", env.weather.lastQuery.City)
	assert.Equal(t, "GB", env.weather.lastQuery.Country)
	require.NotNil(t, env.weather.lastQuery.Start)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *env.weather.lastQuery.Start)
	assert.Nil(t, env.weather.lastQuery.End)
}

func TestListWeatherAcceptsUnixTimestamps(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Weather.ListWeather, "/api/v1/weather?start_date=1700000000")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.weather.lastQuery.Start)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), *env.weather.lastQuery.Start)
}

func TestListWeatherRejectsBadDate(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Weather.ListWeather, "/api/v1/weather?start_date=yesterday")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestListAirPollutionForwardsFilters(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Weather.ListAirPollution, "/api/v1/air-pollution?city=Berlin")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Berlin", env.pollution.lastQuery.City)
}

func TestListCities(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Weather.ListCities, "/api/v1/cities")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "London")
}
