package tilemap

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/papermap-live/internal/settings"
)

const (
	wheelZoomStep = 0.25
	keyPanPixels  = 8
)

type dragState struct {
	active bool
	x, y   int
}

// handleInput pans on left drag or the arrow keys and zooms on the wheel.
// It is only called while the map is interactive.
func (m *Map) handleInput() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		m.drag = dragState{active: true, x: x, y: y}
	case m.drag.active && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		dx, dy := float64(x-m.drag.x), float64(y-m.drag.y)
		if dx != 0 || dy != 0 {
			p := m.cam.at(m.now)
			p.center = panBy(p.center, dx, dy, m.zoom, p.bearing)
			m.cam.jumpTo(p)
		}
		m.drag.x, m.drag.y = x, y
	default:
		m.drag.active = false
	}

	var kx, ky float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		kx += keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		kx -= keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		ky += keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		ky -= keyPanPixels
	}
	if kx != 0 || ky != 0 {
		p := m.cam.at(m.now)
		p.center = panBy(p.center, kx, ky, m.zoom, p.bearing)
		m.cam.jumpTo(p)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		m.zoom = clampZoom(m.zoom+math.Copysign(wheelZoomStep, wy), m.cfg.MinZoom, m.cfg.MaxZoom)
	}
}

// panBy moves center so that the content under the cursor follows a screen
// drag of (dx, dy) logical pixels on a map rotated by bearing degrees.
func panBy(center settings.LngLat, dx, dy, zoom, bearing float64) settings.LngLat {
	rad := bearing * math.Pi / 180
	sin, cos := math.Sincos(rad)
	wx := dx*cos - dy*sin
	wy := dx*sin + dy*cos
	x, y := Project(center, zoom)
	return Unproject(x-wx, y-wy, zoom)
}
