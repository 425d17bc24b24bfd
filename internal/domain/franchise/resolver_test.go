package franchise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(Default(), DefaultThreshold)

	tests := []struct {
		name     string
		query    string
		wantCode string
		wantName string
	}{
		{name: "partial name", query: "Red sox", wantCode: "BOS", wantName: "Boston Red Sox"},
		{name: "case and punctuation", query: "  new YORK yankees!! ", wantCode: "NYY", wantName: "New York Yankees"},
		{name: "nickname only", query: "Cubs", wantCode: "CHC", wantName: "Chicago Cubs"},
		{name: "ties go to directory order", query: "New York", wantCode: "NYM", wantName: "New York Mets"},
		{name: "accented input", query: "Blúe Jays", wantCode: "TOR", wantName: "Toronto Blue Jays"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := resolver.Resolve(tc.query)
			require.True(t, ok)
			assert.Equal(t, tc.wantCode, got.Code)
			assert.Equal(t, tc.wantName, got.Name)
			assert.GreaterOrEqual(t, got.Score, DefaultThreshold)
		})
	}
}

func TestResolver_NotFound(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(Default(), DefaultThreshold)
	for _, query := range []string{"", "   ", "Zzxyqq Nonexistent Team", "?!?"} {
		_, ok := resolver.Resolve(query)
		assert.False(t, ok, "query %q", query)
	}
}

func TestResolver_Deterministic(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(Default(), DefaultThreshold)
	first, ok := resolver.Resolve("Red sox")
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := resolver.Resolve("Red sox")
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestResolver_ScoreEqualToThresholdMatches(t *testing.T) {
	t.Parallel()

	dir, err := Parse([]byte("franchises:\n  - {code: ABC, name: Abcdefgxyz, color: \"#123456\"}\n"))
	require.NoError(t, err)

	got, ok := NewResolver(dir, DefaultThreshold).Resolve("abcdefghij")
	require.True(t, ok)
	assert.Equal(t, "ABC", got.Code)
	assert.Equal(t, DefaultThreshold, got.Score)

	_, ok = NewResolver(dir, DefaultThreshold+0.01).Resolve("abcdefghij")
	assert.False(t, ok)
}

func TestNewResolver_ThresholdBounds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultThreshold, NewResolver(Default(), 0).Threshold())
	assert.Equal(t, DefaultThreshold, NewResolver(Default(), 150).Threshold())
	assert.Equal(t, 85.0, NewResolver(Default(), 85).Threshold())

	strict := NewResolver(Default(), 95)
	_, ok := strict.Resolve("Red sox")
	assert.False(t, ok)
}
