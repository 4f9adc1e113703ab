// FilePath: api/resources/api.resource.analytics.go
package resources

import (
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/hub"
	"github.com/urbanclimate/airwatch/internal/models"
)

// AnalyticsHandlers encapsulates the windowed and joined view handlers
type AnalyticsHandlers struct {
	hub *hub.Service
}

// @Summary Per-city statistics
// @Description Aggregate temperature and air quality statistics over a trailing window
// @Tags analytics
// @Produce json
// @Param city query string false "City name"
// @Param days query int false "Window size in days, 1 to 30" default(7)
// @Success 200 {array} models.CityStats
// @Failure 400 {object} errors.APIError
// @Router /statistics [get]
func (h *AnalyticsHandlers) GetStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filters := models.StatisticsFilters{Days: 7}
	if apiErr := decodeAndValidate(r, &filters); apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	stats, err := h.hub.CityStatistics(r.Context(), filters.City, filters.Days)
	if err != nil {
		respondWithError(w, errors.NewDatabaseError("failed to compute statistics", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// @Summary Weather and pollution correlation view
// @Description Paired weather and air quality samples over a trailing window
// @Tags analytics
// @Produce json
// @Param city query string false "City name"
// @Param days query int false "Window size in days, 7 to 90" default(30)
// @Success 200 {array} models.CorrelationRow
// @Failure 400 {object} errors.APIError
// @Router /correlation [get]
func (h *AnalyticsHandlers) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filters := models.CorrelationFilters{Days: 30}
	if apiErr := decodeAndValidate(r, &filters); apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	rows, err := h.hub.Correlation(r.Context(), filters.City, filters.Days)
	if err != nil {
		respondWithError(w, errors.NewDatabaseError("failed to query correlation view", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, rows)
}

// @Summary High pollution alerts
// @Description Paired samples breaching the AQI or PM2.5 threshold, worst first
// @Tags analytics
// @Produce json
// @Param aqi_threshold query int false "AQI threshold, 50 to 300" default(100)
// @Param pm25_threshold query number false "PM2.5 threshold, 10 to 100" default(35)
// @Param days query int false "Window size in days, 7 to 90" default(30)
// @Success 200 {array} models.PollutionAlert
// @Failure 400 {object} errors.APIError
// @Router /alerts [get]
func (h *AnalyticsHandlers) GetAlerts(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filters := models.AlertFilters{AQIThreshold: 100, PM25Threshold: 35.0, Days: 30}
	if apiErr := decodeAndValidate(r, &filters); apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	alerts, err := h.hub.HighPollutionAlerts(r.Context(), filters.AQIThreshold, filters.PM25Threshold, filters.Days)
	if err != nil {
		respondWithError(w, errors.NewDatabaseError("failed to query alerts", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, alerts)
}

// @Summary Prediction feature view
// @Description Lag and lead AQI features per city, rows without a 12-step-ahead target dropped
// @Tags analytics
// @Produce json
// @Param city query string false "City name"
// @Param hours_back query int false "Window size in hours, 24 to 720" default(168)
// @Success 200 {array} models.PredictionRow
// @Failure 400 {object} errors.APIError
// @Router /prediction [get]
func (h *AnalyticsHandlers) GetPrediction(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filters := models.PredictionFilters{HoursBack: 168}
	if apiErr := decodeAndValidate(r, &filters); apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	rows, err := h.hub.PredictionData(r.Context(), filters.City, filters.HoursBack)
	if err != nil {
		respondWithError(w, errors.NewDatabaseError("failed to query prediction data", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, rows)
}

// @Summary Flexible prediction feature view
// @Description Lag and lead AQI features per city with nulls kept and an approximate 24h-ahead target
// @Tags analytics
// @Produce json
// @Param city query string false "City name"
// @Param hours_back query int false "Window size in hours, 24 to 720" default(168)
// @Success 200 {array} models.FlexiblePredictionRow
// @Failure 400 {object} errors.APIError
// @Router /prediction-flexible [get]
func (h *AnalyticsHandlers) GetPredictionFlexible(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filters := models.PredictionFilters{HoursBack: 168}
	if apiErr := decodeAndValidate(r, &filters); apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	rows, err := h.hub.PredictionDataFlexible(r.Context(), filters.City, filters.HoursBack)
	if err != nil {
		respondWithError(w, errors.NewDatabaseError("failed to query flexible prediction data", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, rows)
}

// decodeAndValidate fills the filter struct from the query string and
// range-checks it. Defaults are set by the caller before decoding, so
// omitted parameters keep their documented values.
func decodeAndValidate(r *http.Request, filters interface{}) *errors.APIError {
	if err := queryDecoder.Decode(filters, r.URL.Query()); err != nil {
		return errors.NewValidationError("invalid query parameters", err)
	}
	if err := validate.Struct(filters); err != nil {
		return errors.NewValidationError("query parameters out of range", err)
	}
	return nil
}
