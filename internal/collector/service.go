// FilePath: internal/collector/service.go
package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/errors"
)

const minInterval = 60 * time.Second

// Status is the externally visible snapshot of the collection worker.
type Status struct {
	Running         bool       `json:"running"`
	IntervalSeconds int        `json:"collection_interval"`
	LastCollection  *time.Time `json:"last_collection,omitempty"`
	CitiesTracked   int        `json:"cities_tracked"`
}

// Service owns the background collection worker. All transitions go
// through the mutex; the worker goroutine itself only reads the interval
// under lock and writes the last-collection stamp under lock. Stop is
// best-effort: it signals the worker and waits up to stopTimeout for the
// current pass to wind down, then reports success either way since the
// running flag is already cleared and no further pass will start.
type Service struct {
	mu             sync.RWMutex
	runner         *Runner
	events         *nuts.EventEmitter
	interval       time.Duration
	stopTimeout    time.Duration
	errorBackoff   time.Duration
	running        bool
	lastCollection *time.Time
	stop           chan struct{}
	done           chan struct{}
}

func NewService(runner *Runner, events *nuts.EventEmitter, interval, stopTimeout, errorBackoff time.Duration) *Service {
	return &Service{
		runner:       runner,
		events:       events,
		interval:     interval,
		stopTimeout:  stopTimeout,
		errorBackoff: errorBackoff,
	}
}

// Start launches the worker goroutine. Starting an already running
// service is a state error, not an idempotent no-op, so callers learn
// they were mistaken about the current state.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.NewStateError("collector is already running")
	}

	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)

	nuts.L.Infof("[CollectorService] Started with interval %s", s.interval)
	s.events.Emit("collector.started", s.interval)
	return nil
}

// Stop signals the worker and waits up to the stop timeout for it to
// finish the pass in flight. A worker that overruns the timeout is left
// to drain on its own; it observes the closed stop channel before
// sleeping again and exits without starting another pass.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return errors.NewStateError("collector is not running")
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		nuts.L.Infof("[CollectorService] Stopped")
	case <-time.After(s.stopTimeout):
		nuts.L.Warnf("[CollectorService] Worker did not finish within %s, detaching", s.stopTimeout)
	}

	s.events.Emit("collector.stopped")
	return nil
}

// SetInterval updates the collection interval. Takes effect from the
// next sleep; a worker already sleeping finishes its current wait on
// the old schedule.
func (s *Service) SetInterval(interval time.Duration) error {
	if interval < minInterval {
		return errors.NewStateError(fmt.Sprintf("collection interval must be at least %d seconds", int(minInterval.Seconds())))
	}

	s.mu.Lock()
	s.interval = interval
	s.mu.Unlock()

	nuts.L.Infof("[CollectorService] Collection interval set to %s", interval)
	s.events.Emit("collector.interval_changed", interval)
	return nil
}

// Status reports the current worker state.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		Running:         s.running,
		IntervalSeconds: int(s.interval.Seconds()),
		LastCollection:  s.lastCollection,
		CitiesTracked:   len(s.runner.cities),
	}
}

func (s *Service) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-stop
		cancel()
	}()

	for {
		wait := s.currentInterval()

		collected, err := s.runPass(ctx)
		if err != nil {
			// Unexpected failure of the pass itself. Failed fetches are
			// not errors; each city just retries next cycle.
			nuts.L.Errorf("[CollectorService] Collection pass failed: %v, retrying in %s", err, s.errorBackoff)
			wait = s.errorBackoff
		} else {
			// The pass ran, even if every city came back empty.
			now := time.Now().UTC()
			s.mu.Lock()
			s.lastCollection = &now
			s.mu.Unlock()
			s.events.Emit("collector.pass.completed", collected)
		}

		select {
		case <-stop:
			return
		case <-time.After(wait):
		}
	}
}

func (s *Service) runPass(ctx context.Context) (collected int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pass panicked: %v", r)
		}
	}()
	return s.runner.RunPass(ctx), nil
}

func (s *Service) currentInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}
