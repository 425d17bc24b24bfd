package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/mlb-team-timeline/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyStore struct {
	calls atomic.Int32
}

func (s *flakyStore) Get(context.Context, string) ([]byte, bool, error) {
	s.calls.Add(1)
	return nil, false, errors.New("dial tcp: connection refused")
}

func (s *flakyStore) Set(context.Context, string, []byte) error {
	s.calls.Add(1)
	return errors.New("dial tcp: connection refused")
}

func TestGuardedStore_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	backend := &flakyStore{}
	store := NewGuardedStore(backend, resilience.NewCircuitBreaker(resilience.BreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	}))
	ctx := context.Background()

	_, _, err := store.Get(ctx, "k")
	require.Error(t, err)
	require.Error(t, store.Set(ctx, "k", []byte("v")))
	assert.Equal(t, resilience.StateOpen, store.State())

	_, _, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.ErrorIs(t, store.Set(ctx, "k", []byte("v")), resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), backend.calls.Load())
}

func TestGuardedStore_LoaderFallsThroughWhenOpen(t *testing.T) {
	t.Parallel()

	store := NewGuardedStore(&flakyStore{}, resilience.NewCircuitBreaker(resilience.BreakerConfig{FailureThreshold: 1}))
	loader := NewLoader(store, "test")

	for i := 0; i < 3; i++ {
		got, err := GetOrLoad(context.Background(), loader, loader.Key("q"), func(context.Context) (string, error) {
			return "fresh", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", got)
	}
	assert.Equal(t, resilience.StateOpen, store.State())
}

func TestGuardedStore_PassesThroughWhenHealthy(t *testing.T) {
	t.Parallel()

	store := NewGuardedStore(NewMemoryStore(time.Minute), nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	raw, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), raw)
	assert.Equal(t, resilience.StateClosed, store.State())
}
