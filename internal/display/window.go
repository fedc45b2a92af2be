package display

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenWindow drives the ebiten window. ebiten works in device-independent
// pixels, so device pixel geometry is divided by the monitor scale.
type EbitenWindow struct{}

func (EbitenWindow) scale() float64 {
	s := ebiten.Monitor().DeviceScaleFactor()
	if s <= 0 || math.IsNaN(s) {
		return 1
	}
	return s
}

func (w EbitenWindow) SetPosition(x, y int) {
	s := w.scale()
	ebiten.SetWindowPosition(int(float64(x)/s), int(float64(y)/s))
}

func (w EbitenWindow) SetSize(width, height int) {
	s := w.scale()
	ebiten.SetWindowSize(int(float64(width)/s), int(float64(height)/s))
}

func (EbitenWindow) Maximize() {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.MaximizeWindow()
}
