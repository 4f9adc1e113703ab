// FilePath: api/resources/api.resource.system.go
package resources

import (
	"net/http"
)

// @Summary Service index
// @Description Name, version and the available endpoints
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (r *Resources) Root(w http.ResponseWriter, req *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"service": "airwatch",
		"endpoints": map[string]string{
			"cities":              "/api/v1/cities",
			"weather":             "/api/v1/weather",
			"air_pollution":       "/api/v1/air-pollution",
			"statistics":          "/api/v1/statistics",
			"correlation":         "/api/v1/analytics/correlation",
			"alerts":              "/api/v1/analytics/alerts",
			"prediction":          "/api/v1/analytics/prediction",
			"prediction_flexible": "/api/v1/analytics/prediction-flexible",
			"collector_status":    "/api/v1/collector/status",
			"health":              "/health",
		},
	})
}
