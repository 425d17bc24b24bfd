package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/franchise"
	basecache "github.com/riskibarqy/mlb-team-timeline/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMatcher struct {
	next  *franchise.Resolver
	calls atomic.Int32
}

func (m *countingMatcher) Resolve(query string) (franchise.Match, bool) {
	m.calls.Add(1)
	return m.next.Resolve(query)
}

func (m *countingMatcher) Threshold() float64 {
	return m.next.Threshold()
}

func (m *countingMatcher) Version() string {
	return m.next.Version()
}

func TestFranchiseResolver_CachesByNormalizedQuery(t *testing.T) {
	t.Parallel()

	matcher := &countingMatcher{next: franchise.NewResolver(franchise.Default(), 0)}
	loader := basecache.NewLoader(basecache.NewMemoryStore(time.Minute), "resolve")
	resolver := NewFranchiseResolver(matcher, loader)
	ctx := context.Background()

	for _, q := range []string{"Red sox", "  RED SOX ", "red-sox"} {
		got, found, err := resolver.Resolve(ctx, q)
		require.NoError(t, err)
		require.True(t, found, q)
		assert.Equal(t, "BOS", got.Code)
		assert.Equal(t, "Boston Red Sox", got.Name)
	}
	assert.EqualValues(t, 1, matcher.calls.Load())
}

func TestFranchiseResolver_CachesMisses(t *testing.T) {
	t.Parallel()

	matcher := &countingMatcher{next: franchise.NewResolver(franchise.Default(), 0)}
	loader := basecache.NewLoader(basecache.NewMemoryStore(time.Minute), "resolve")
	resolver := NewFranchiseResolver(matcher, loader)

	for i := 0; i < 2; i++ {
		_, found, err := resolver.Resolve(context.Background(), "Zzxyqq Nonexistent Team")
		require.NoError(t, err)
		assert.False(t, found)
	}
	assert.EqualValues(t, 1, matcher.calls.Load())
}

func TestFranchiseResolver_WithoutLoader(t *testing.T) {
	t.Parallel()

	matcher := &countingMatcher{next: franchise.NewResolver(franchise.Default(), 0)}
	resolver := NewFranchiseResolver(matcher, nil)

	for i := 0; i < 2; i++ {
		got, found, err := resolver.Resolve(context.Background(), "Cubs")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "CHC", got.Code)
	}
	assert.EqualValues(t, 2, matcher.calls.Load())

	_, found, err := resolver.Resolve(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, found)
	assert.EqualValues(t, 2, matcher.calls.Load())
}

func TestFranchiseResolver_DirectoryChangeDoesNotServeStaleMatch(t *testing.T) {
	t.Parallel()

	// One store outlives both resolvers, as Redis does across restarts.
	store := basecache.NewMemoryStore(time.Hour)
	ctx := context.Background()

	before, err := franchise.Parse([]byte("franchises:\n  - {code: FLA, name: Florida Marlins, color: \"#00A3E0\"}\n"))
	require.NoError(t, err)
	after, err := franchise.Parse([]byte("franchises:\n  - {code: MIA, name: Florida Marlins, color: \"#00A3E0\"}\n"))
	require.NoError(t, err)

	first := NewFranchiseResolver(franchise.NewResolver(before, 0), basecache.NewLoader(store, "resolve"))
	got, found, err := first.Resolve(ctx, "florida marlins")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "FLA", got.Code)

	matcher := &countingMatcher{next: franchise.NewResolver(after, 0)}
	second := NewFranchiseResolver(matcher, basecache.NewLoader(store, "resolve"))
	got, found, err = second.Resolve(ctx, "florida marlins")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "MIA", got.Code)
	assert.EqualValues(t, 1, matcher.calls.Load())

	// The first directory still hits its own entry.
	got, _, err = first.Resolve(ctx, "Florida Marlins")
	require.NoError(t, err)
	assert.Equal(t, "FLA", got.Code)
}
