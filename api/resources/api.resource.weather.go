// FilePath: api/resources/api.resource.weather.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/hub"
	"github.com/urbanclimate/airwatch/internal/models"
	"github.com/urbanclimate/airwatch/internal/repository"
)

// WeatherHandlers encapsulates the measurement listing HTTP handlers
type WeatherHandlers struct {
	hub *hub.Service
}

// @Summary List tracked cities
// @Description Get the registry of cities the collector monitors
// @Tags cities
// @Produce json
// @Success 200 {array} models.City
// @Router /cities [get]
func (h *WeatherHandlers) ListCities(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	cities, err := h.hub.Cities.List(r.Context())
	if err != nil {
		respondWithError(w, errors.NewDatabaseError("failed to list cities", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, cities)
}

// @Summary List weather measurements
// @Description Get weather measurements filtered by city, country and date range
// @Tags weather
// @Produce json
// @Param city query string false "City name"
// @Param country query string false "Country code"
// @Param start_date query string false "Start of range, RFC3339 or unix seconds"
// @Param end_date query string false "End of range, RFC3339 or unix seconds"
// @Success 200 {array} models.WeatherRow
// @Failure 400 {object} errors.APIError
// @Router /weather [get]
func (h *WeatherHandlers) ListWeather(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	query, apiErr := sampleQueryFromRequest(r)
	if apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	rows, err := h.hub.Weather.List(r.Context(), query)
	if err != nil {
		respondWithError(w, errors.NewDatabaseError("failed to list weather measurements", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, rows)
}

// @Summary List air pollution measurements
// @Description Get air pollution measurements filtered by city, country and date range
// @Tags air-pollution
// @Produce json
// @Param city query string false "City name"
// @Param country query string false "Country code"
// @Param start_date query string false "Start of range, RFC3339 or unix seconds"
// @Param end_date query string false "End of range, RFC3339 or unix seconds"
// @Success 200 {array} models.PollutionRow
// @Failure 400 {object} errors.APIError
// @Router /air-pollution [get]
func (h *WeatherHandlers) ListAirPollution(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	query, apiErr := sampleQueryFromRequest(r)
	if apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}

	rows, err := h.hub.Pollution.List(r.Context(), query)
	if err != nil {
		respondWithError(w, errors.NewDatabaseError("failed to list air pollution measurements", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, rows)
}

func sampleQueryFromRequest(r *http.Request) (repository.SampleQuery, *errors.APIError) {
	var filters models.WeatherFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		return repository.SampleQuery{}, errors.NewValidationError("invalid query parameters", err)
	}

	query := repository.SampleQuery{
		City:    filters.City,
		Country: filters.Country,
	}

	start, err := parseTimeBound(filters.StartDate)
	if err != nil {
		return repository.SampleQuery{}, errors.NewValidationError("invalid start_date", err)
	}
	end, err := parseTimeBound(filters.EndDate)
	if err != nil {
		return repository.SampleQuery{}, errors.NewValidationError("invalid end_date", err)
	}

	query.Start = start
	query.End = end
	return query, nil
}

// parseTimeBound accepts RFC3339 or unix seconds; empty means unbounded.
func parseTimeBound(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		utc := ts.UTC()
		return &utc, nil
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	ts := time.Unix(seconds, 0).UTC()
	return &ts, nil
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
