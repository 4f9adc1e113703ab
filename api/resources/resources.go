// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/urbanclimate/airwatch/internal/hub"
)

var (
	queryDecoder = schema.NewDecoder()
	validate     = validator.New()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Weather     *WeatherHandlers
	Analytics   *AnalyticsHandlers
	Collector   *CollectorHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
	Metrics     func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hub.Service) *Resources {
	return &Resources{
		Weather:   &WeatherHandlers{hub: svc},
		Analytics: &AnalyticsHandlers{hub: svc},
		Collector: &CollectorHandlers{hub: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// SetMetrics sets the metrics handler
func (r *Resources) SetMetrics(h func(w http.ResponseWriter, r *http.Request)) {
	r.Metrics = h
}
