package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

type BreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenProbes:   1,
	}
}

// CircuitBreaker stops calling a failing dependency for OpenTimeout after
// FailureThreshold consecutive failures, then lets HalfOpenProbes calls
// through to decide whether to close again.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg BreakerConfig

	state    State
	failures int
	openedAt time.Time
	inFlight int
	passed   int
	now      func() time.Time
}

func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	def := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	if cfg.HalfOpenProbes < 1 {
		cfg.HalfOpenProbes = def.HalfOpenProbes
	}

	return &CircuitBreaker{cfg: cfg, state: StateClosed, now: time.Now}
}

// Allow reports whether a call may proceed. Every allowed call must be
// followed by Record.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.reset(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}

	return nil
}

// Record registers the outcome of an allowed call.
func (b *CircuitBreaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen && b.inFlight > 0 {
		b.inFlight--
	}

	if err == nil {
		switch b.state {
		case StateClosed:
			b.failures = 0
		case StateHalfOpen:
			b.passed++
			if b.passed >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
				b.reset(StateClosed)
			}
		}
		return
	}

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case StateHalfOpen, StateOpen:
		b.trip()
	}
}

// Execute runs fn when the breaker allows it and records the result.
func (b *CircuitBreaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	b.Record(err)
	return err
}

func (b *CircuitBreaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) trip() {
	b.reset(StateOpen)
	b.openedAt = b.now()
}

func (b *CircuitBreaker) reset(state State) {
	b.state = state
	b.failures = 0
	b.inFlight = 0
	b.passed = 0
	if state == StateClosed {
		b.openedAt = time.Time{}
	}
}
