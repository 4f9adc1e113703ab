// FilePath: api/resources/api.resource.collector.go
package resources

import (
	"net/http"
	"strconv"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/hub"
)

// CollectorHandlers exposes the collection worker lifecycle over HTTP
type CollectorHandlers struct {
	hub *hub.Service
}

// @Summary Start the collector
// @Description Launch the background collection worker
// @Tags collector
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Router /collector/start [post]
func (h *CollectorHandlers) Start(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hub.Collector.Start(); err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "collector started"})
}

// @Summary Stop the collector
// @Description Signal the background collection worker to stop
// @Tags collector
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Router /collector/stop [post]
func (h *CollectorHandlers) Stop(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hub.Collector.Stop(); err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "collector stopped"})
}

// @Summary Collector status
// @Description Current state of the background collection worker
// @Tags collector
// @Produce json
// @Success 200 {object} collector.Status
// @Router /collector/status [get]
func (h *CollectorHandlers) Status(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.hub.Collector.Status())
}

// @Summary Set collection interval
// @Description Update the seconds between collection passes, minimum 60
// @Tags collector
// @Produce json
// @Param interval query int true "Interval in seconds"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.APIError
// @Router /collector/interval [put]
func (h *CollectorHandlers) SetInterval(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	seconds, err := strconv.Atoi(r.URL.Query().Get("interval"))
	if err != nil || seconds <= 0 {
		respondWithError(w, errors.NewValidationError("interval must be a positive integer", err).WithRequestID(requestID))
		return
	}

	if err := h.hub.Collector.SetInterval(time.Duration(seconds) * time.Second); err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "collection interval updated",
		"interval": seconds,
	})
}

func asAPIError(err error) *errors.APIError {
	if apiErr, ok := err.(*errors.APIError); ok {
		return apiErr
	}
	return errors.NewInternalError("unexpected error", err)
}
