package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/franchise"
	basecache "github.com/riskibarqy/mlb-team-timeline/internal/platform/cache"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/fuzzy"
)

// Matcher is the uncached resolver. Version identifies the directory it
// matches against.
type Matcher interface {
	Resolve(query string) (franchise.Match, bool)
	Threshold() float64
	Version() string
}

// FranchiseResolver memoises resolutions by normalised query. A result
// depends on the directory, the threshold and the normalised text, so all
// three form the key and entries written for another directory are never
// read back. A nil loader disables caching.
type FranchiseResolver struct {
	next   Matcher
	loader *basecache.Loader
}

func NewFranchiseResolver(next Matcher, loader *basecache.Loader) *FranchiseResolver {
	return &FranchiseResolver{next: next, loader: loader}
}

func (r *FranchiseResolver) Resolve(ctx context.Context, query string) (franchise.Match, bool, error) {
	normalized := fuzzy.Normalize(query)
	if normalized == "" {
		return franchise.Match{}, false, nil
	}

	key := ""
	if r.loader != nil {
		key = r.loader.Key(r.next.Version(), strconv.FormatFloat(r.next.Threshold(), 'f', -1, 64), normalized)
	}
	v, err := basecache.GetOrLoad(ctx, r.loader, key, func(context.Context) (cachedMatch, error) {
		item, found := r.next.Resolve(query)
		return cachedMatch{Match: item, Found: found}, nil
	})
	if err != nil {
		return franchise.Match{}, false, err
	}
	return v.Match, v.Found, nil
}

type cachedMatch struct {
	Match franchise.Match `json:"match"`
	Found bool            `json:"found"`
}
