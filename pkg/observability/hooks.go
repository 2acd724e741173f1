// Package observability defines instrumentation hooks for sketchgrid.
//
// Libraries and the HTTP server report events through [Hooks] without
// knowing which backend receives them. [Noop] discards everything;
// [Metrics] records Prometheus series on a registry of the caller's choice.
//
//	reg := prometheus.NewRegistry()
//	hooks := observability.NewMetrics(reg)
//	srv := server.New(reg, server.WithHooks(hooks))
package observability

import (
	"context"
	"time"
)

// Hooks receives sketch events.
type Hooks interface {
	// OnToggle records a toggle attempt. err is nil on success.
	OnToggle(ctx context.Context, layer string, err error)
	// OnSketches records the number of live sketches.
	OnSketches(ctx context.Context, n int)
	// OnRender records one render of format.
	OnRender(ctx context.Context, format string, duration time.Duration, err error)
	// OnCacheHit records an artifact served from cache.
	OnCacheHit(ctx context.Context, format string)
	// OnCacheMiss records an artifact that had to be rendered.
	OnCacheMiss(ctx context.Context, format string)
	// OnSocket records a websocket connecting (delta 1) or leaving (delta -1).
	OnSocket(ctx context.Context, delta int)
}

// Noop is a Hooks that does nothing.
type Noop struct{}

func (Noop) OnToggle(context.Context, string, error)                 {}
func (Noop) OnSketches(context.Context, int)                         {}
func (Noop) OnRender(context.Context, string, time.Duration, error) {}
func (Noop) OnCacheHit(context.Context, string)                      {}
func (Noop) OnCacheMiss(context.Context, string)                     {}
func (Noop) OnSocket(context.Context, int)                           {}

var _ Hooks = Noop{}
