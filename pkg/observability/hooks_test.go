package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type solveOnly struct{ NoopSolveHooks }
type cacheOnly struct{ NoopCacheHooks }
type httpOnly struct{ NoopHTTPHooks }

type everything struct {
	NoopSolveHooks
	NoopCacheHooks
	NoopHTTPHooks
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	if _, ok := Solve().(NoopSolveHooks); !ok {
		t.Errorf("Solve() = %T, want NoopSolveHooks", Solve())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	Solve().OnSolveComplete(ctx, "login", true, time.Millisecond, nil)
	Solve().OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnResponse(ctx, "req-1", "POST", "/v1/solve", 200, time.Second)
}

func TestSetters(t *testing.T) {
	t.Cleanup(Reset)
	s, c, h := &solveOnly{}, &cacheOnly{}, &httpOnly{}

	SetSolveHooks(s)
	SetCacheHooks(c)
	SetHTTPHooks(h)
	if Solve() != s || Cache() != c || HTTP() != h {
		t.Fatal("setters should install their hooks")
	}

	SetSolveHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)
	if Solve() != s || Cache() != c || HTTP() != h {
		t.Error("nil hooks should be ignored")
	}

	Reset()
	if _, ok := Solve().(NoopSolveHooks); !ok {
		t.Error("Reset() should restore the no-op hooks")
	}
}

func TestRegister(t *testing.T) {
	tests := map[string]struct {
		hooks any
		want  int
		solve bool
		cache bool
		http  bool
	}{
		"all":        {&everything{}, 3, true, true, true},
		"solve only": {&solveOnly{}, 1, true, false, false},
		"http only":  {&httpOnly{}, 1, false, false, true},
		"nothing":    {struct{}{}, 0, false, false, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)

			if got := Register(tc.hooks); got != tc.want {
				t.Errorf("Register() = %d, want %d", got, tc.want)
			}
			_, noopSolve := Solve().(NoopSolveHooks)
			_, noopCache := Cache().(NoopCacheHooks)
			_, noopHTTP := HTTP().(NoopHTTPHooks)
			if noopSolve == tc.solve || noopCache == tc.cache || noopHTTP == tc.http {
				t.Errorf("installed solve=%v cache=%v http=%v, want %v %v %v",
					!noopSolve, !noopCache, !noopHTTP, tc.solve, tc.cache, tc.http)
			}
		})
	}
}

func TestConcurrentRegistration(t *testing.T) {
	t.Cleanup(Reset)
	s, c := &solveOnly{}, &cacheOnly{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); SetSolveHooks(s) }()
		go func() { defer wg.Done(); SetCacheHooks(c); _ = Solve() }()
	}
	wg.Wait()

	if Solve() != s || Cache() != c {
		t.Error("concurrent setters should not drop each other's updates")
	}
}
