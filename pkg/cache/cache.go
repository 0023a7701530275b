// Package cache stores derived anchorflow data: solved layouts, dependency-graph
// renderings and rendered artifacts.
//
// Everything the pipeline caches can be recomputed from the scene, so every
// backend is allowed to lose entries. Three backends ship with the package:
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps JSON envelopes under a directory, for the CLI
//   - [RedisCache] shares entries between server replicas
//
// Keys are built by a [Keyer] so the CLI and the HTTP service agree on them.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live per entry kind.
const (
	// TTLSolve applies to solved layouts. Solving is deterministic, so the TTL
	// only bounds storage.
	TTLSolve = 7 * 24 * time.Hour

	// TTLGraph applies to DOT and SVG renderings of the dependency graph.
	TTLGraph = 24 * time.Hour

	// TTLArtifact applies to rendered layouts (svg, png, json).
	TTLArtifact = 7 * 24 * time.Hour
)

// GetJSON reads key and decodes it into v. A miss returns ErrCacheMiss; an entry
// that no longer decodes is deleted and also reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return ErrCacheMiss
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}

// cappedCache bounds the TTL of every write.
type cappedCache struct {
	Cache
	max time.Duration
}

// Capped returns a cache whose entries never live longer than max. A zero or
// negative max returns c unchanged.
func Capped(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return &cappedCache{Cache: c, max: max}
}

func (c *cappedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}

// NullCache never stores anything. The CLI uses it for --no-cache.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error      { return nil }
func (NullCache) Delete(context.Context, string) error                          { return nil }
func (NullCache) Close() error                                                  { return nil }

var _ Cache = NullCache{}
