package observability

import (
	"context"
	"maps"
	"strconv"
	"sync"
	"time"
)

// Counters is an in-process implementation of all three hook interfaces. The
// HTTP service registers one at startup and serves its [Snapshot] at /v1/stats.
type Counters struct {
	mu sync.Mutex
	s  Snapshot
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Solves       int64            `json:"solves"`
	Unresolved   int64            `json:"unresolved"`
	SolveErrors  int64            `json:"solve_errors"`
	SolveTime    time.Duration    `json:"solve_time_ns"`
	Renders      int64            `json:"renders"`
	RenderErrors int64            `json:"render_errors"`
	CacheHits    map[string]int64 `json:"cache_hits"`
	CacheMisses  map[string]int64 `json:"cache_misses"`
	CacheBytes   int64            `json:"cache_bytes_written"`
	Requests     int64            `json:"requests"`
	Responses    map[string]int64 `json:"responses"`
	InFlight     int64            `json:"in_flight"`
	LongestSolve time.Duration    `json:"longest_solve_ns"`
	LongestScene string           `json:"longest_scene,omitempty"`
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{s: emptySnapshot()}
}

func emptySnapshot() Snapshot {
	return Snapshot{
		CacheHits:   map[string]int64{},
		CacheMisses: map[string]int64{},
		Responses:   map[string]int64{},
	}
}

// Register installs c as the solve, cache and HTTP hooks.
func (c *Counters) Register() { Register(c) }

// Snapshot copies the current values.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.s
	s.CacheHits = maps.Clone(c.s.CacheHits)
	s.CacheMisses = maps.Clone(c.s.CacheMisses)
	s.Responses = maps.Clone(c.s.Responses)
	return s
}

func (c *Counters) OnSolveStart(context.Context, string, int) {}

func (c *Counters) OnSolveComplete(_ context.Context, scene string, resolved bool, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Solves++
	c.s.SolveTime += d
	switch {
	case err != nil:
		c.s.SolveErrors++
	case !resolved:
		c.s.Unresolved++
	}
	if d > c.s.LongestSolve {
		c.s.LongestSolve, c.s.LongestScene = d, scene
	}
}

func (c *Counters) OnRenderStart(context.Context, []string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Renders++
	if err != nil {
		c.s.RenderErrors++
	}
}

func (c *Counters) OnCacheHit(_ context.Context, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CacheHits[kind]++
}

func (c *Counters) OnCacheMiss(_ context.Context, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CacheMisses[kind]++
}

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CacheBytes += int64(size)
}

func (c *Counters) OnRequest(context.Context, string, string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Requests++
	c.s.InFlight++
}

func (c *Counters) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.InFlight--
	c.s.Responses[statusClass(status)]++
}

// statusClass groups status codes as "2xx", "4xx" and so on.
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}

var (
	_ SolveHooks = (*Counters)(nil)
	_ CacheHooks = (*Counters)(nil)
	_ HTTPHooks  = (*Counters)(nil)
)
