// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and adds no dependency on a specific backend.
// Consumers register hooks at startup to receive events about pipeline
// stages, dataset store lookups, and HTTP requests served by the API.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, len(codes))
//	root := bst.Build(codes)
//	observability.Pipeline().OnBuildComplete(ctx, bst.Height(root), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the tree pipeline.
type PipelineHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, codeCount int)
	OnBuildComplete(ctx context.Context, height int, duration time.Duration)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration)

	// OnSearch records a completed search and the number of nodes visited.
	OnSearch(ctx context.Context, target string, found bool, visited int)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from the dataset store.
type StoreHooks interface {
	// OnStoreHit records a dataset found in the store.
	OnStoreHit(ctx context.Context, id string)

	// OnStoreMiss records a lookup for an unknown dataset.
	OnStoreMiss(ctx context.Context, id string)

	// OnStorePut records a dataset upload.
	OnStorePut(ctx context.Context, id string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events for requests served by the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration)              {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration)                  {}
func (NoopPipelineHooks) OnSearch(context.Context, string, bool, int)                      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreHit(context.Context, string)      {}
func (NoopStoreHooks) OnStoreMiss(context.Context, string)     {}
func (NoopStoreHooks) OnStorePut(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetStoreHooks registers custom dataset store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Store returns the registered dataset store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}
