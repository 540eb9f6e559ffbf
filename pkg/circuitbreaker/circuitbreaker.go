// Package circuitbreaker guards event publication against a flapping
// broker. Publishes are best-effort: when the breaker opens, events stay
// queued in the outbox and the worker retries them after the cooldown, so
// opening loses nothing.
package circuitbreaker

import (
	"fmt"
	"sync"
	"time"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

type Config struct {
	// Name appears in the error returned while the breaker is open.
	Name string
	// FailureThreshold is the consecutive-failure count that opens the
	// breaker.
	FailureThreshold int
	// Cooldown is how long the breaker stays open before letting one probe
	// call through.
	Cooldown time.Duration
}

type CircuitBreaker struct {
	name      string
	threshold int
	cooldown  time.Duration

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
}

func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{
		name:      cfg.Name,
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
		state:     StateClosed,
	}
}

// Do runs fn unless the breaker is open. The first call after the cooldown
// runs as a half-open probe; its success closes the breaker, its failure
// re-opens it.
func (cb *CircuitBreaker) Do(fn func() error) error {
	if err := cb.allow(); err != nil {
		return err
	}
	err := fn()
	cb.observe(err)
	return err
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if time.Since(cb.lastFailure) < cb.cooldown {
			return fmt.Errorf("%s: circuit open, call suppressed", cb.name)
		}
		cb.state = StateHalfOpen
	}
	return nil
}

func (cb *CircuitBreaker) observe(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.failures >= cb.threshold {
			cb.state = StateOpen
		}
		return
	}

	cb.state = StateClosed
	cb.failures = 0
}
