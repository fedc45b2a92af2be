// Package display places the application window on a monitor according to
// the monitor and resolution settings.
package display

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/iburimskiy/papermap-live/internal/logging"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

var ErrNoMonitors = errors.New("no monitors detected")

type Monitor struct {
	Name    string
	Bounds  image.Rectangle // device pixels
	Primary bool
}

// Monitors lists the active displays. Display 0 is the primary one.
func Monitors() []Monitor {
	n := screenshot.NumActiveDisplays()
	out := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Monitor{
			Name:    fmt.Sprintf("display-%d", i),
			Bounds:  screenshot.GetDisplayBounds(i),
			Primary: i == 0,
		})
	}
	return out
}

// Geometry is a window placement in device pixels.
type Geometry struct {
	X, Y          int
	Width, Height int
	Maximize      bool
}

// PresetSize returns the pixel size of a fixed resolution preset.
func PresetSize(r settings.Resolution) (int, int, bool) {
	switch r {
	case settings.Resolution1080p:
		return 1920, 1080, true
	case settings.Resolution1440p:
		return 2560, 1440, true
	case settings.Resolution4K:
		return 3840, 2160, true
	}
	return 0, 0, false
}

// Plan computes where the window goes for the given monitor target and
// resolution.
func Plan(monitors []Monitor, target settings.MonitorTarget, res settings.Resolution) (Geometry, error) {
	if len(monitors) == 0 {
		return Geometry{}, ErrNoMonitors
	}
	primary := monitors[0]
	for _, m := range monitors {
		if m.Primary {
			primary = m
			break
		}
	}

	mon := primary
	if target == settings.MonitorSecondary {
		for _, m := range monitors {
			if m.Name != primary.Name {
				mon = m
				break
			}
		}
	}

	w, h := mon.Bounds.Dx(), mon.Bounds.Dy()
	if pw, ph, ok := PresetSize(res); ok {
		w, h = min(pw, w), min(ph, h)
	}
	return Geometry{
		X:        mon.Bounds.Min.X,
		Y:        mon.Bounds.Min.Y,
		Width:    w,
		Height:   h,
		Maximize: target == settings.MonitorAll,
	}, nil
}

// Window is the host window being placed.
type Window interface {
	SetPosition(x, y int)
	SetSize(w, h int)
	Maximize()
}

// Placer applies display settings to a window.
type Placer struct {
	monitors func() []Monitor
	window   Window
	logger   logging.Logger
}

// NewPlacer returns a Placer. A nil monitors func uses Monitors.
func NewPlacer(window Window, monitors func() []Monitor, logger logging.Logger) *Placer {
	if monitors == nil {
		monitors = Monitors
	}
	return &Placer{monitors: monitors, window: window, logger: logging.OrNoop(logger)}
}

// Apply places the window. Failures are logged and leave the window as it
// was.
func (p *Placer) Apply(d settings.Display) {
	g, err := Plan(p.monitors(), d.Monitor, d.Resolution)
	if err != nil {
		p.logger.Errorf("display", "skipping window placement: %v", err)
		return
	}
	p.window.SetPosition(g.X, g.Y)
	p.window.SetSize(g.Width, g.Height)
	if g.Maximize {
		p.window.Maximize()
	}
	p.logger.Infof("display", "window on %s monitor at %s: %dx%d+%d+%d", d.Monitor, d.Resolution, g.Width, g.Height, g.X, g.Y)
}
