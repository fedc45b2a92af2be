package config

import "time"

const (
	AppName     = "papermap-live"
	WindowTitle = "PaperMap Live"

	WindowWidth  = 1280
	WindowHeight = 800

	// Host ticks per second. The animation controller gates its own
	// updates, so this only bounds the finest frame interval.
	TPS = 120

	// Drift and rotation parameters
	DriftRadius            = 0.002  // degrees
	DriftSpeed             = 0.0003 // radians per second
	RotateDegreesPerSecond = 1.5
	EaseDurationFactor     = 1.2

	// Zoom bounds enforced by the renderer
	MinZoom = 8
	MaxZoom = 14

	// Tile cache capacity
	TileCacheLarge = 1000
	TileCacheSmall = 100

	// Nearby preload offset in degrees
	PreloadOffset = 0.01

	TileWorkers = 6

	PreviewDuration = 10 * time.Second

	// Frame rate bounds and the step used by the hotkey cycle
	MinFrameRate  = 1
	MaxFrameRate  = 240
	FrameRateStep = 15
	MaxUIFrame    = 60

	// Poster overlay
	MinPadding = 20
	MaxPadding = 200
	MaxBlur    = 15
)
