package registryclient

import (
	"context"
	"sync"
	"time"

	"microreg/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultHeartbeatInterval keeps a record alive under the registry's default 15s TTL with one
// missed beat of tolerance.
const DefaultHeartbeatInterval = 10 * time.Second

// Heartbeat keeps one registration alive.
//
// Start registers immediately and then on every interval tick. Failed beats are logged and
// dropped; the next tick is the retry. Stop cancels the ticker, waits for the ticker goroutine
// to exit and then issues exactly one Unregister, so no beat can follow the final unregister
// from this process.
type Heartbeat struct {
	registrar    Registrar
	registration Registration
	interval     time.Duration
	logger       log.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}

	stopOnce sync.Once
	stopErr  error
}

// NewHeartbeat creates a Heartbeat. A non-positive interval means DefaultHeartbeatInterval.
// Panics on nil registrar or logger.
func NewHeartbeat(registrar Registrar, registration Registration, interval time.Duration, logger log.Logger) *Heartbeat {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	return &Heartbeat{
		registrar:    helpers.NilPanic(registrar, "registryclient.heartbeat.go: registrar is required"),
		registration: registration,
		interval:     interval,
		logger: log.With(helpers.NilPanic(logger, "registryclient.heartbeat.go: logger is required"),
			"component", "heartbeat",
			"service", registration.Name,
			"version", registration.Version,
			"port", registration.Port,
		),
	}
}

// Start starts the ticker goroutine and returns once the first registration has been attempted.
// The ticker stops when ctx is done or Stop is called. Calling Start again, or after Stop, does nothing.
func (h *Heartbeat) Start(ctx context.Context) {
	h.mu.Lock()
	if h.started || h.stopped {
		h.mu.Unlock()
		return
	}
	h.started = true
	ctx, h.cancel = context.WithCancel(ctx)
	h.done = make(chan struct{})
	h.mu.Unlock()

	registered := make(chan struct{})
	go h.run(ctx, registered)
	<-registered
}

// run owns every beat, so waiting for done waits for any in-flight registration.
func (h *Heartbeat) run(ctx context.Context, registered chan<- struct{}) {
	defer close(h.done)
	h.beat(ctx)
	close(registered)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.beat(ctx)
		}
	}
}

// beat sends one registration bounded by the interval.
func (h *Heartbeat) beat(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, h.interval)
	defer cancel()

	key, err := h.registrar.Register(ctx, h.registration)
	if err != nil {
		if parent.Err() != nil {
			// stopping
			return
		}
		level.Warn(h.logger).Log("msg", "heartbeat failed", "err", err)
		return
	}
	level.Debug(h.logger).Log("msg", "heartbeat sent", "key", key)
}

// Stop ends the heartbeat and unregisters once, bounded by ctx. It is best effort: the error is
// returned for logging and the registry TTL reclaims the record if the call fails.
// Later calls return the first result.
func (h *Heartbeat) Stop(ctx context.Context) error {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		h.stopped = true
		cancel, done := h.cancel, h.done
		h.mu.Unlock()

		if cancel != nil {
			cancel()
			<-done
		}

		key, err := h.registrar.Unregister(ctx, h.registration)
		if err != nil {
			level.Warn(h.logger).Log("msg", "unregister failed", "err", err)
			h.stopErr = err
			return
		}
		level.Info(h.logger).Log("msg", "unregistered", "key", key)
	})
	return h.stopErr
}
