package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/overlay"
)

const (
	// Button dimensions
	buttonWidth  = 120
	buttonHeight = 40
	buttonGap    = 12
	buttonX      = 20
	buttonY      = 50

	hudX          = 12
	hudLineHeight = 16
	helpPerLine   = 7
)

type button struct {
	x, y    int
	label   string
	act     action
	hovered bool
	pressed bool
}

func (b *button) contains(x, y int) bool {
	return x >= b.x && x <= b.x+buttonWidth && y >= b.y && y <= b.y+buttonHeight
}

func (g *game) Draw(screen *ebiten.Image) {
	g.drawMap(screen)

	switch g.mode {
	case ModePreview, ModeWallpaper:
		g.poster.Draw(screen, overlay.PosterFrom(g.snap), fadeIn(g.now-g.modeSince, posterFade))
		if g.mode == ModePreview {
			left := formatDuration(g.previewUntil - g.now + time.Second - 1)
			ebitenutil.DebugPrintAt(screen, "Preview "+left+" - Esc to return", hudX, hudX)
		}
	default:
		for _, b := range g.buttons {
			g.drawButton(screen, b)
		}
		g.drawHUD(screen)
	}
}

// drawMap renders the live view, blurred by downsampling when configured.
func (g *game) drawMap(screen *ebiten.Image) {
	rv, ok := g.mgr.View().(renderView)
	if !ok {
		screen.Fill(color.Black)
		return
	}
	scale := blurScale(g.snap.Blur)
	if scale >= 1 {
		rv.Render(screen)
		return
	}

	b := screen.Bounds()
	g.mapLayer = ensureImage(g.mapLayer, b.Dx(), b.Dy())
	rv.Render(g.mapLayer)

	sw, sh := max(1, int(float64(b.Dx())*scale)), max(1, int(float64(b.Dy())*scale))
	g.blurLayer = ensureImage(g.blurLayer, sw, sh)
	g.blurLayer.Clear()
	down := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	down.GeoM.Scale(float64(sw)/float64(b.Dx()), float64(sh)/float64(b.Dy()))
	g.blurLayer.DrawImage(g.mapLayer, down)

	up := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	up.GeoM.Scale(float64(b.Dx())/float64(sw), float64(b.Dy())/float64(sh))
	screen.DrawImage(g.blurLayer, up)
}

func ensureImage(img *ebiten.Image, w, h int) *ebiten.Image {
	if img != nil {
		if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
			return img
		}
		img.Deallocate()
	}
	return ebiten.NewImage(w, h)
}

func (g *game) drawButton(screen *ebiten.Image, b *button) {
	// Button background
	var bgColor color.Color
	if b.pressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if b.hovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}
	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(buttonWidth), float32(buttonHeight), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(buttonWidth), float32(buttonHeight), 2, borderColor, false)

	textWidth := len(b.label) * 6 // debug font glyph width
	ebitenutil.DebugPrintAt(screen, b.label, b.x+(buttonWidth-textWidth)/2, b.y+(buttonHeight-hudLineHeight)/2)
}

func (g *game) drawHUD(screen *ebiten.Image) {
	y := buttonY + buttonHeight + 16
	bg := color.RGBA{R: 0, G: 0, B: 0, A: 170}
	lines := g.hudLines()
	width := 0
	for _, line := range lines {
		width = max(width, len(line)*6)
	}
	vector.DrawFilledRect(screen, float32(hudX-6), float32(y-6), float32(width+12), float32(len(lines)*hudLineHeight+12), bg, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, hudX, y+i*hudLineHeight)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  TPS %.0f  FPS %.0f", config.WindowTitle, ebiten.ActualTPS(), ebiten.ActualFPS()), hudX, hudX)
}

// hudLines is the text of the settings panel.
func (g *game) hudLines() []string {
	s := g.snap
	lines := []string{
		fmt.Sprintf("City        %s  %s", s.City, s.Coords),
		fmt.Sprintf("Theme       %s", s.Theme),
		fmt.Sprintf("Font        %s", s.Font),
		fmt.Sprintf("Position    %s  padding %dpx  coordinates %t", s.Placement, s.Padding, s.ShowCoordinates),
		fmt.Sprintf("Display     %s monitor  %s  blur %.0fpx", s.Monitor, s.Resolution, s.Blur),
		fmt.Sprintf("Performance %s  %d fps  caching %t  hw accel %t  reduce motion %t",
			s.Quality, s.FrameRate, s.Caching, s.HardwareAccel, s.ReduceMotion),
		"",
		g.viewLine(),
	}
	if f, ok := g.tap.latest(); ok {
		lines = append(lines, fmt.Sprintf("Camera      %.4f, %.4f  bearing %.1f  %.1f updates/s",
			f.Center.Lat, f.Center.Lng, f.Bearing, g.tap.rate(g.now, rateWindow)))
	}
	lines = append(lines, "")
	lines = append(lines, helpLines(helpPerLine)...)
	if g.status != "" {
		lines = append(lines, g.status)
	}
	for _, err := range g.errs {
		lines = append(lines, "Error: "+err.Error())
	}
	return lines
}

func (g *game) viewLine() string {
	line := fmt.Sprintf("Map         %s  animating %t", g.mgr.State(), g.mgr.Animating())
	if ts, ok := g.mgr.View().(tileStats); ok {
		line += fmt.Sprintf("  tiles %d  loading %d", ts.CachedTiles(), ts.PendingTiles())
	}
	return line
}

// helpLines lists the key bindings, n per line.
func helpLines(n int) []string {
	var lines []string
	for i := 0; i < len(bindings); i += n {
		end := min(i+n, len(bindings))
		parts := make([]string, 0, end-i)
		for _, b := range bindings[i:end] {
			parts = append(parts, b.help)
		}
		lines = append(lines, strings.Join(parts, "  "))
	}
	return lines
}
