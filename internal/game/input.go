package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

type action int

const (
	actNone action = iota
	actExit
	actPreview
	actLaunch
	actSave
	actPickCity
	actPickFont
	actTheme
	actPlacement
	actPaddingUp
	actPaddingDown
	actCoordinates
	actMonitor
	actResolution
	actBlur
	actQuality
	actFrameRate
	actCaching
	actHardwareAccel
	actReduceMotion
)

const paddingStep = 10

type binding struct {
	key    ebiten.Key
	act    action
	help   string
	config bool // only in config mode
}

var bindings = []binding{
	{ebiten.KeyEscape, actExit, "Esc exit", false},
	{ebiten.KeyV, actPreview, "V preview", true},
	{ebiten.KeyEnter, actLaunch, "Enter launch", true},
	{ebiten.KeyS, actSave, "S save", true},
	{ebiten.KeyC, actPickCity, "C city", true},
	{ebiten.KeyN, actPickFont, "N font", true},
	{ebiten.KeyT, actTheme, "T theme", true},
	{ebiten.KeyP, actPlacement, "P position", true},
	{ebiten.KeyEqual, actPaddingUp, "+ padding", true},
	{ebiten.KeyMinus, actPaddingDown, "- padding", true},
	{ebiten.KeyK, actCoordinates, "K coordinates", true},
	{ebiten.KeyM, actMonitor, "M monitor", true},
	{ebiten.KeyR, actResolution, "R resolution", true},
	{ebiten.KeyB, actBlur, "B blur", true},
	{ebiten.KeyQ, actQuality, "Q quality", true},
	{ebiten.KeyF, actFrameRate, "F fps", true},
	{ebiten.KeyX, actCaching, "X caching", true},
	{ebiten.KeyH, actHardwareAccel, "H hardware accel", true},
	{ebiten.KeyZ, actReduceMotion, "Z reduce motion", true},
}

func (g *game) pollInput() []action {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	var out []action
	for _, b := range bindings {
		if justPressed(b.key) && (!b.config || g.mode == ModeConfig) {
			out = append(out, b.act)
		}
	}

	if g.mode != ModeConfig {
		return out
	}
	mouseX, mouseY := ebiten.CursorPosition()
	for _, b := range g.buttons {
		b.hovered = b.contains(mouseX, mouseY)
		if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			b.pressed = true
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			if b.pressed && b.hovered {
				out = append(out, b.act)
			}
			b.pressed = false
		}
	}
	return out
}

// perform applies one user action. It returns ebiten.Termination when the
// application should quit.
func (g *game) perform(a action) error {
	s := &g.snap
	switch a {
	case actExit:
		return g.exitMode()
	case actPreview:
		g.startPreview(g.now)
	case actLaunch:
		g.enterWallpaper(g.now)
	case actSave:
		g.save()
	case actPickCity:
		g.openDialog(dialogCity)
	case actPickFont:
		g.openDialog(dialogFont)
	case actTheme:
		s.Theme = s.Theme.Next()
	case actPlacement:
		s.Placement = s.Placement.Next()
	case actPaddingUp:
		s.Padding = min(s.Padding+paddingStep, config.MaxPadding)
	case actPaddingDown:
		s.Padding = max(s.Padding-paddingStep, config.MinPadding)
	case actCoordinates:
		s.ShowCoordinates = !s.ShowCoordinates
	case actMonitor:
		s.Monitor = s.Monitor.Next()
	case actResolution:
		s.Resolution = s.Resolution.Next()
	case actBlur:
		s.Blur = settings.NextBlur(s.Blur)
	case actQuality:
		s.Quality = s.Quality.Next()
	case actFrameRate:
		s.FrameRate = settings.NextFrameRate(s.FrameRate)
	case actCaching:
		s.Caching = !s.Caching
	case actHardwareAccel:
		s.HardwareAccel = !s.HardwareAccel
	case actReduceMotion:
		s.ReduceMotion = !s.ReduceMotion
	}
	return nil
}

func (g *game) save() {
	if g.settingsPath == "" {
		return
	}
	if err := settings.Save(g.settingsPath, g.snap); err != nil {
		g.logger.Errorf("config", "save settings: %v", err)
		g.pushError(err)
		return
	}
	g.status = fmt.Sprintf("saved %s", g.settingsPath)
	g.logger.Infof("config", "settings saved to %s", g.settingsPath)
}
