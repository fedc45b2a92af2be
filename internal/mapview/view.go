// Package mapview owns the single live map view, its render context and
// the animation loop bound to it, rebuilding all three whenever the map
// settings change.
package mapview

import (
	"github.com/iburimskiy/papermap-live/internal/anim"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

// View is a handle to one renderer instance.
type View interface {
	anim.Target

	// OnLoad and OnError register the handler for the view's ready and
	// error events. Events are delivered on the render goroutine, never
	// from inside the constructor.
	OnLoad(fn func())
	OnError(fn func(err error))

	Surface() Surface
	// Preload requests the tiles that would be visible around center.
	Preload(center settings.LngLat)
	DisableInteractions()
	Destroy()
}

// Surface is the drawable the view renders into.
type Surface interface {
	SetHints(h Hints)
}

// Hints are applied to the surface once the view is ready and hardware
// acceleration is enabled.
type Hints struct {
	// Compositing renders through a dedicated offscreen layer.
	Compositing bool
	// SmoothRaster uses linear filtering when the layer is scaled.
	SmoothRaster bool
}

// Context is an exclusive GPU rendering context.
type Context interface {
	Release()
}

type ContextAttributes struct {
	Antialias  bool
	PixelRatio float64
}

// ContextPool hands out at most one Context at a time.
type ContextPool interface {
	Acquire(attrs ContextAttributes) (Context, error)
}

type Factory interface {
	NewView(cfg Config, ctx Context) (View, error)
}
