// Package observability provides hooks for metrics and tracing of layout
// loads and diagram rendering.
//
// Hooks let a consumer time each stage without the libraries depending on a
// particular metrics backend. Register hooks once at startup:
//
//	observability.SetLoadHooks(&myLoadHooks{})
//
// Libraries emit events through the registry:
//
//	observability.Load().OnPassComplete("connectivity", elapsed, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Load Hooks
// =============================================================================

// LoadHooks receives events from factory layout loading.
type LoadHooks interface {
	// OnDecodeComplete records the strict JSON decode of a document.
	OnDecodeComplete(duration time.Duration, err error)

	// OnBuildComplete records the construction of the network.
	OnBuildComplete(sites int, duration time.Duration, err error)

	// OnPassComplete records one validation pass.
	OnPassComplete(pass string, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from diagram rendering.
type RenderHooks interface {
	// OnRenderComplete records the rendering of one output format.
	OnRenderComplete(format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLoadHooks is a no-op implementation of LoadHooks.
type NoopLoadHooks struct{}

func (NoopLoadHooks) OnDecodeComplete(time.Duration, error)       {}
func (NoopLoadHooks) OnBuildComplete(int, time.Duration, error)   {}
func (NoopLoadHooks) OnPassComplete(string, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderComplete(string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	loadHooks   LoadHooks   = NoopLoadHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetLoadHooks registers custom load hooks. A nil h is ignored.
func SetLoadHooks(h LoadHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loadHooks = h
	}
}

// SetRenderHooks registers custom render hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Load returns the registered load hooks.
func Load() LoadHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loadHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	loadHooks = NoopLoadHooks{}
	renderHooks = NoopRenderHooks{}
}
