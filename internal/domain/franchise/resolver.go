package franchise

import (
	"strings"

	"github.com/riskibarqy/mlb-team-timeline/internal/platform/fuzzy"
)

// DefaultThreshold is the minimum WRatio score a match must reach.
const DefaultThreshold = 70.0

// Match is a resolved franchise together with the name that matched.
type Match struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Resolver maps free text to a franchise by fuzzy matching against the
// directory's canonical names.
type Resolver struct {
	entries   []Entry
	names     []string
	version   string
	threshold float64
}

func NewResolver(lookup Lookup, threshold float64) *Resolver {
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	entries := lookup.Entries()

	return &Resolver{
		entries:   entries,
		names:     lookup.Names(),
		version:   Digest(entries),
		threshold: threshold,
	}
}

func (r *Resolver) Threshold() float64 {
	return r.threshold
}

// Version identifies the directory the resolver matches against.
func (r *Resolver) Version() string {
	return r.version
}

// Resolve returns the best-scoring franchise, or false when the query is
// blank or no name reaches the threshold.
func (r *Resolver) Resolve(query string) (Match, bool) {
	if strings.TrimSpace(query) == "" {
		return Match{}, false
	}

	best, ok := fuzzy.ExtractOne(query, r.names)
	if !ok || best.Score < r.threshold {
		return Match{}, false
	}

	item := r.entries[best.Index]
	return Match{Code: item.Code, Name: item.Name, Score: best.Score}, true
}
