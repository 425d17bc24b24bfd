package cache

import (
	"context"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"
)

// Loader namespaces keys under a prefix and collapses concurrent misses for
// the same key into one load.
type Loader struct {
	store  Store
	prefix string
	flight singleflight.Group
}

func NewLoader(store Store, prefix string) *Loader {
	return &Loader{store: store, prefix: prefix}
}

func (l *Loader) Key(parts ...string) string {
	key := l.prefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// GetOrLoad returns the cached value for key or runs load and caches its
// result. Backend failures fall through to load so a broken cache never
// fails a request.
func GetOrLoad[T any](ctx context.Context, l *Loader, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if load == nil {
		return zero, crerr.New("cache: loader is required")
	}
	if l == nil || l.store == nil || key == "" {
		return load(ctx)
	}

	if v, ok := lookup[T](ctx, l.store, key); ok {
		return v, nil
	}

	v, err, _ := l.flight.Do(key, func() (any, error) {
		if cached, ok := lookup[T](ctx, l.store, key); ok {
			return cached, nil
		}

		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := sonic.Marshal(loaded); err == nil {
			_ = l.store.Set(ctx, key, raw)
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	out, _ := v.(T)
	return out, nil
}

func lookup[T any](ctx context.Context, store Store, key string) (T, bool) {
	var out T
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return out, false
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}
