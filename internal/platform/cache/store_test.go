package cache

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedMatch struct {
	Code  string  `json:"code"`
	Score float64 `json:"score"`
	Found bool    `json:"found"`
}

func TestLoader_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	loader := NewLoader(NewMemoryStore(time.Minute), "resolve")
	var calls atomic.Int32

	load := func(context.Context) (cachedMatch, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return cachedMatch{Code: "BOS", Score: 90, Found: true}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := GetOrLoad(context.Background(), loader, loader.Key("red sox"), load)
			if err != nil {
				errCh <- err
				return
			}
			if v.Code != "BOS" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestLoader_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	loader := NewLoader(NewMemoryStore(time.Minute), "resolve")
	var calls atomic.Int32

	load := func(context.Context) (cachedMatch, error) {
		calls.Add(1)
		return cachedMatch{Found: false}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrLoad(context.Background(), loader, "k", load)
		require.NoError(t, err)
		assert.False(t, v.Found)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestLoader_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	loader := NewLoader(NewMemoryStore(time.Minute), "resolve")
	var calls atomic.Int32

	load := func(context.Context) (cachedMatch, error) {
		if calls.Add(1) == 1 {
			return cachedMatch{}, errUnexpectedValue
		}
		return cachedMatch{Code: "NYY", Found: true}, nil
	}

	_, err := GetOrLoad(context.Background(), loader, "k", load)
	require.ErrorIs(t, err, errUnexpectedValue)

	v, err := GetOrLoad(context.Background(), loader, "k", load)
	require.NoError(t, err)
	assert.Equal(t, "NYY", v.Code)
	assert.EqualValues(t, 2, calls.Load())
}

func TestLoader_NilLoaderBypassesCache(t *testing.T) {
	t.Parallel()

	var loader *Loader
	v, err := GetOrLoad(context.Background(), loader, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestLoader_KeyJoinsPartsUnderPrefix(t *testing.T) {
	t.Parallel()

	loader := NewLoader(NewMemoryStore(0), "resolve")
	assert.Equal(t, "resolve:abc:70:red sox", loader.Key("abc", "70", "red sox"))
	assert.Equal(t, "resolve", loader.Key())
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	raw, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(raw))

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	store := NewRedisStore(client, time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	loader := NewLoader(store, "mlbtimeline-test")
	t.Cleanup(func() { _ = client.Del(context.Background(), loader.Key("red sox")).Err() })

	v, err := GetOrLoad(ctx, loader, loader.Key("red sox"), func(context.Context) (cachedMatch, error) {
		return cachedMatch{Code: "BOS", Score: 90, Found: true}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "BOS", v.Code)

	raw, ok, err := store.Get(ctx, loader.Key("red sox"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"BOS"`)
}

var errUnexpectedValue = errors.New("unexpected loaded value")
