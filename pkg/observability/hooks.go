// Package observability reports solves, renders, cache traffic and HTTP
// requests to whatever the host registers.
//
// The pipeline, the cache layer and the server call the hooks; the engine in
// pkg/direct does not. Until a host registers something every hook is a no-op.
// [Counters] implements all three interfaces in memory and is what `anchorflow
// serve` installs:
//
//	counters := observability.NewCounters()
//	counters.Register()
//	defer observability.Reset()
//
// Other implementations are installed with [Register], which picks up every
// hook interface the value implements, or with the Set functions:
//
//	observability.Register(tracer)
//	observability.SetCacheHooks(cacheLogger{logger})
//
// Call sites look up the current hooks on every event:
//
//	observability.Solve().OnSolveStart(ctx, scene, boxes)
//	// ... build and resolve the graph ...
//	observability.Solve().OnSolveComplete(ctx, scene, resolved, duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// SolveHooks receives events from the solve pipeline. resolved is false when
// the direct engine could not place every box; err is set only when the scene
// could not be built.
type SolveHooks interface {
	OnSolveStart(ctx context.Context, scene string, boxes int)
	OnSolveComplete(ctx context.Context, scene string, resolved bool, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache traffic. kind is "solve", "graph" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives one OnRequest and one OnResponse per HTTP request.
type HTTPHooks interface {
	OnRequest(ctx context.Context, requestID, method, path string)
	OnResponse(ctx context.Context, requestID, method, path string, statusCode int, duration time.Duration)
}

// NoopSolveHooks ignores every solve event.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnSolveStart(context.Context, string, int)                           {}
func (NoopSolveHooks) OnSolveComplete(context.Context, string, bool, time.Duration, error) {}
func (NoopSolveHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopSolveHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

// NoopCacheHooks ignores cache traffic.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores HTTP traffic.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

// registry is an immutable set of hooks. Registration swaps in a new one, so
// call sites read the current hooks without locking.
type registry struct {
	solve SolveHooks
	cache CacheHooks
	http  HTTPHooks
}

var (
	noop    = &registry{NoopSolveHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}}
	current atomic.Pointer[registry]
)

func init() { current.Store(noop) }

// update applies fn to a copy of the current registry and installs it.
func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Register installs h for every hook interface it implements and reports how
// many that was.
func Register(h any) int {
	var n int
	update(func(r *registry) {
		n = 0
		if s, ok := h.(SolveHooks); ok {
			r.solve, n = s, n+1
		}
		if c, ok := h.(CacheHooks); ok {
			r.cache, n = c, n+1
		}
		if x, ok := h.(HTTPHooks); ok {
			r.http, n = x, n+1
		}
	})
	return n
}

// SetSolveHooks replaces the solve hooks. A nil h is ignored.
func SetSolveHooks(h SolveHooks) {
	if h != nil {
		update(func(r *registry) { r.solve = h })
	}
}

// SetCacheHooks replaces the cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks replaces the HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Solve, Cache and HTTP return the hooks registered now.
func Solve() SolveHooks { return current.Load().solve }
func Cache() CacheHooks { return current.Load().cache }
func HTTP() HTTPHooks   { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() { current.Store(noop) }
