// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/api"
	"github.com/urbanclimate/airwatch/internal/cache"
	"github.com/urbanclimate/airwatch/internal/cities"
	"github.com/urbanclimate/airwatch/internal/collector"
	"github.com/urbanclimate/airwatch/internal/config"
	"github.com/urbanclimate/airwatch/internal/database"
	"github.com/urbanclimate/airwatch/internal/hub"
	"github.com/urbanclimate/airwatch/internal/monitoring"
	"github.com/urbanclimate/airwatch/internal/repository"
	"github.com/urbanclimate/airwatch/internal/repository/csvsink"
	"github.com/urbanclimate/airwatch/internal/repository/postgres"
	"github.com/urbanclimate/airwatch/internal/upstream"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hub        *hub.Service
	monitoring *monitoring.Service
	db         database.DB
	cache      *cache.Cache
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start wires the service together and begins listening for requests
func (s *Server) Start() error {
	s.hub = s.initializeHub()
	s.monitoring = monitoring.NewService()
	s.setupCollectorEventHandlers()

	router := api.NewRouter(s.hub)
	router.Resources().SetHealthCheck(s.handleHealth())
	router.Resources().SetMetrics(s.handleMetrics())

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	s.srv.Handler = cors(router)

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down
// the server. The collector is stopped before the HTTP server so no
// pass is half-written when the process exits.
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	if s.hub.Collector.Status().Running {
		if err := s.hub.Collector.Stop(); err != nil {
			nuts.L.Warnf("[Server] Failed to stop collector: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.cache != nil {
		s.cache.Close()
	}
	if s.db != nil {
		s.db.Close()
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth reports DB reachability, stored row counts and version
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		dbStatus := "connected"
		var weatherCount, pollutionCount int64

		if err := s.db.Ping(ctx); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			s.db.GetDB().GetContext(ctx, &weatherCount, "SELECT COUNT(*) FROM weather_measurements")
			s.db.GetDB().GetContext(ctx, &pollutionCount, "SELECT COUNT(*) FROM air_pollution_measurements")
			w.WriteHeader(http.StatusOK)
		}

		fmt.Fprintf(w, `{"status":%q,"database":%q,"weather_records":%d,"pollution_records":%d,"version":%q}`,
			status, dbStatus, weatherCount, pollutionCount, nuts.GetVersion())
	}
}

// handleMetrics serves the in-memory event counters
func (s *Server) handleMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		snapshot := s.monitoring.Snapshot()
		fmt.Fprint(w, "{")
		first := true
		for name, stats := range snapshot {
			if !first {
				fmt.Fprint(w, ",")
			}
			first = false
			fmt.Fprintf(w, "%q:{\"count\":%d,\"last_seen\":%q}", name, stats.Count, stats.LastSeen.Format(time.RFC3339))
		}
		fmt.Fprint(w, "}")
	}
}

func (s *Server) setupCollectorEventHandlers() {
	s.hub.Events.On("collector.started", "monitoring_handler", func(args ...interface{}) {
		s.monitoring.RecordEvent("collector_started", nil)
	})
	s.hub.Events.On("collector.stopped", "monitoring_handler", func(args ...interface{}) {
		s.monitoring.RecordEvent("collector_stopped", nil)
	})
	s.hub.Events.On("collector.interval_changed", "monitoring_handler", func(args ...interface{}) {
		s.monitoring.RecordEvent("collector_interval_changed", nil)
	})
	s.hub.Events.On("collector.pass.completed", "monitoring_handler", func(args ...interface{}) {
		labels := map[string]string{}
		if len(args) > 0 {
			labels["cities_collected"] = fmt.Sprintf("%v", args[0])
		}
		s.monitoring.RecordEvent("collector_pass_completed", labels)
	})
}

// initializeHub creates and configures the hub service
func (s *Server) initializeHub() *hub.Service {
	s.db = initDB(s.config.Database)

	cityRepo, err := postgres.NewCityRepository(s.db)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize city repository: %v", err)
	}
	weatherRepo, err := postgres.NewWeatherRepository(s.db)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize weather repository: %v", err)
	}
	pollutionRepo, err := postgres.NewPollutionRepository(s.db)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize air pollution repository: %v", err)
	}
	analyticsRepo := postgres.NewAnalyticsRepository(s.db)

	tracked := cities.Default()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cityRepo.Seed(ctx, tracked); err != nil {
		nuts.L.Fatalf("[Server] Failed to seed city registry: %v", err)
	}

	var sink repository.MeasurementSink
	switch s.config.Collector.Sink {
	case "csv":
		sink = csvsink.New(s.config.Collector.CSVPath)
		nuts.L.Infof("[Server] Using CSV sink at %s", s.config.Collector.CSVPath)
	default:
		sink = postgres.NewMeasurementStore(cityRepo, weatherRepo, pollutionRepo)
	}

	analyticsCache, err := cache.New(ctx, s.config.Redis)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize cache: %v", err)
	}
	s.cache = analyticsCache

	events := nuts.NewEventEmitter()
	fetcher := upstream.NewClient(s.config.OpenWeather)
	runner := collector.NewRunner(fetcher, sink, tracked, s.config.Collector.Pacing)
	collectorSvc := collector.NewService(
		runner,
		events,
		s.config.Collector.Interval,
		s.config.Collector.StopTimeout,
		s.config.Collector.ErrorBackoff,
	)

	svc := hub.New(cityRepo, weatherRepo, pollutionRepo, analyticsRepo, collectorSvc, analyticsCache, events)
	if err := svc.Validate(); err != nil {
		nuts.L.Fatalf("[Server] Invalid service wiring: %v", err)
	}
	return svc
}

func initDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping database: %v", err)
	}
	return wrappedDB
}
