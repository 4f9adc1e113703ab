// FilePath: api/resources/api.resource.analytics_test.go
package resources

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanclimate/airwatch/internal/models"
)

func TestGetStatisticsDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetStatistics, "/api/v1/statistics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, env.analytics.last.days)
	assert.Empty(t, env.analytics.last.city)
}

func TestGetStatisticsWindowBounds(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetStatistics, "/api/v1/statistics?days=30&city=London")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, env.analytics.last.days)
	assert.Equal(t, "London", env.analytics.last.city)

	rec = doGet(t, env.resources.Analytics.GetStatistics, "/api/v1/statistics?days=31")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, env.resources.Analytics.GetStatistics, "/api/v1/statistics?days=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCorrelationDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetCorrelation, "/api/v1/analytics/correlation")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, env.analytics.last.days)
}

func TestGetCorrelationRejectsShortWindow(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetCorrelation, "/api/v1/analytics/correlation?days=3")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAlertsDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetAlerts, "/api/v1/analytics/alerts")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, env.analytics.last.aqi)
	assert.InDelta(t, 35.0, env.analytics.last.pm25, 0.001)
	assert.Equal(t, 30, env.analytics.last.days)
}

func TestGetAlertsThresholdBounds(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetAlerts, "/api/v1/analytics/alerts?aqi_threshold=49")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, env.resources.Analytics.GetAlerts, "/api/v1/analytics/alerts?pm25_threshold=101")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, env.resources.Analytics.GetAlerts,
		"/api/v1/analytics/alerts?aqi_threshold=150&pm25_threshold=50&days=7")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 150, env.analytics.last.aqi)
	assert.InDelta(t, 50.0, env.analytics.last.pm25, 0.001)
	assert.Equal(t, 7, env.analytics.last.days)
}

func TestGetAlertsReturnsBreachingCity(t *testing.T) {
	env := newTestEnv(t)

	aqi := 150
	pm25 := 80.0
	temp := 21.0
	env.analytics.alerts = []models.PollutionAlert{{
		City:                 "Testville",
		Timestamp:            time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Temperature:          &temp,
		AQI:                  &aqi,
		PM25:                 &pm25,
		IsHighPollutionEvent: 1,
	}}

	rec := doGet(t, env.resources.Analytics.GetAlerts, "/api/v1/analytics/alerts")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Testville", body[0]["city"])
	assert.Equal(t, float64(150), body[0]["aqi"])
	assert.Equal(t, float64(1), body[0]["is_high_pollution_event"])
}

func TestGetPredictionDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetPrediction, "/api/v1/analytics/prediction")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 168, env.analytics.last.hoursBack)
}

func TestGetPredictionWindowBounds(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetPrediction, "/api/v1/analytics/prediction?hours_back=10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, env.resources.Analytics.GetPrediction, "/api/v1/analytics/prediction?hours_back=721")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPredictionFlexibleForwardsWindow(t *testing.T) {
	env := newTestEnv(t)

	rec := doGet(t, env.resources.Analytics.GetPredictionFlexible,
		"/api/v1/analytics/prediction-flexible?city=Madrid&hours_back=48")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Madrid", env.analytics.last.city)
	assert.Equal(t, 48, env.analytics.last.hoursBack)
}
