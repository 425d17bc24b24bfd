package cache

import (
	"context"

	"github.com/riskibarqy/mlb-team-timeline/internal/platform/resilience"
)

// GuardedStore wraps a remote store with a circuit breaker. While the
// breaker is open every call behaves like a miss or a no-op.
type GuardedStore struct {
	next    Store
	breaker *resilience.CircuitBreaker
}

func NewGuardedStore(next Store, breaker *resilience.CircuitBreaker) *GuardedStore {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.DefaultBreakerConfig())
	}
	return &GuardedStore{next: next, breaker: breaker}
}

func (s *GuardedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		raw []byte
		ok  bool
	)
	err := s.breaker.Execute(func() error {
		var err error
		raw, ok, err = s.next.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return raw, ok, nil
}

func (s *GuardedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.breaker.Execute(func() error {
		return s.next.Set(ctx, key, value)
	})
}

func (s *GuardedStore) State() resilience.State {
	return s.breaker.State()
}
