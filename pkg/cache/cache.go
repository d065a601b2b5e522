// Package cache stores rendered artifacts keyed by graph fingerprint.
//
// Rendering a large schematic through Graphviz is the slowest thing the CLI
// and the inspection server do, and the output depends only on the graph and
// the render options. Keys are therefore built from [wire.Fingerprint] plus
// the options by a [Keyer]; any [Cache] backend stores the bytes.
//
// [FileCache] persists entries on disk for the CLI, [NullCache] disables
// caching, and [Instrument] reports hits and misses to the observability
// hooks.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/wiregraph/pkg/observability"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Instrument wraps c so every lookup and write is reported to the registered
// cache hooks. The key type reported is the key's prefix up to the first
// colon.
func Instrument(c Cache) Cache {
	return &instrumented{inner: c}
}

type instrumented struct {
	inner Cache
}

func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func (c *instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *instrumented) Close() error { return c.inner.Close() }
