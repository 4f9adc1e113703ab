// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/urbanclimate/airwatch/api/resources"
	"github.com/urbanclimate/airwatch/internal/hub"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc *hub.Service) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.router.HandleFunc("/", r.resources.Root).Methods(http.MethodGet)
	r.router.HandleFunc("/health", r.handleHealth).Methods(http.MethodGet)

	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/metrics", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.Metrics != nil {
			r.resources.Metrics(w, req)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	// Measurement listings
	api.HandleFunc("/cities", r.resources.Weather.ListCities).Methods(http.MethodGet)
	api.HandleFunc("/weather", r.resources.Weather.ListWeather).Methods(http.MethodGet)
	api.HandleFunc("/air-pollution", r.resources.Weather.ListAirPollution).Methods(http.MethodGet)
	api.HandleFunc("/statistics", r.resources.Analytics.GetStatistics).Methods(http.MethodGet)

	// Analytics views
	analytics := api.PathPrefix("/analytics").Subrouter()
	analytics.HandleFunc("/correlation", r.resources.Analytics.GetCorrelation).Methods(http.MethodGet)
	analytics.HandleFunc("/alerts", r.resources.Analytics.GetAlerts).Methods(http.MethodGet)
	analytics.HandleFunc("/prediction", r.resources.Analytics.GetPrediction).Methods(http.MethodGet)
	analytics.HandleFunc("/prediction-flexible", r.resources.Analytics.GetPredictionFlexible).Methods(http.MethodGet)

	// Collector lifecycle
	col := api.PathPrefix("/collector").Subrouter()
	col.HandleFunc("/start", r.resources.Collector.Start).Methods(http.MethodPost)
	col.HandleFunc("/stop", r.resources.Collector.Stop).Methods(http.MethodPost)
	col.HandleFunc("/status", r.resources.Collector.Status).Methods(http.MethodGet)
	col.HandleFunc("/interval", r.resources.Collector.SetInterval).Methods(http.MethodPut)
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if r.resources.HealthCheck != nil {
		r.resources.HealthCheck(w, req)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Resources exposes the handler set so the server can attach the
// health check and metrics handlers.
func (r *Router) Resources() *resources.Resources {
	return r.resources
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
