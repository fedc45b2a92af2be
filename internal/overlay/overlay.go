// Package overlay draws the poster typography over the map: the city name,
// a short rule and the coordinate line.
package overlay

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/iburimskiy/papermap-live/internal/logging"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

const (
	lineHeight   = 0.85 // of the title size
	coordsMargin = 20
	ruleWidth    = 80
	ruleGap      = 24
	coordsAlpha  = 0.8
)

// Poster is what the overlay shows.
type Poster struct {
	City       string
	Coords     string
	ShowCoords bool
	Font       string
	Placement  settings.Placement
	Padding    int
	Theme      settings.Theme
}

func PosterFrom(s settings.Snapshot) Poster {
	return Poster{
		City:       s.City,
		Coords:     s.Coords,
		ShowCoords: s.ShowCoordinates,
		Font:       s.Font,
		Placement:  s.Placement,
		Padding:    s.Padding,
		Theme:      s.Theme,
	}
}

type Rect struct {
	X, Y, W, H float64
}

// Metrics are the measured sizes of the poster's parts.
type Metrics struct {
	TitleW, TitleH   float64
	CoordsW, CoordsH float64
	ShowCoords       bool
}

type Layout struct {
	Block  Rect
	Title  Rect
	Rule   Rect
	Coords Rect
}

// Place positions the poster block inside a screenW×screenH screen. Text is
// left aligned in the block except for the center placement.
func Place(p settings.Placement, padding int, screenW, screenH float64, m Metrics) Layout {
	pad := float64(padding)
	rowW, rowH := 0.0, 0.0
	if m.ShowCoords {
		rowW = ruleWidth + ruleGap + m.CoordsW
		rowH = max(m.CoordsH, 1)
	}
	bw := max(m.TitleW, rowW)
	bh := m.TitleH
	if m.ShowCoords {
		bh += coordsMargin + rowH
	}

	var x, y float64
	switch p {
	case settings.PlacementTopLeft:
		x, y = pad, pad
	case settings.PlacementTopRight:
		x, y = screenW-pad-bw, pad
	case settings.PlacementBottomRight:
		x, y = screenW-pad-bw, screenH-pad-bh
	case settings.PlacementCenter:
		x, y = (screenW-bw)/2, (screenH-bh)/2
	default:
		x, y = pad, screenH-pad-bh
	}

	l := Layout{Block: Rect{X: x, Y: y, W: bw, H: bh}}
	l.Title = Rect{X: x, Y: y, W: m.TitleW, H: m.TitleH}
	if p == settings.PlacementCenter {
		l.Title.X = x + (bw-m.TitleW)/2
	}
	if !m.ShowCoords {
		return l
	}
	rowX := x
	if p == settings.PlacementCenter {
		rowX = x + (bw-rowW)/2
	}
	rowY := y + m.TitleH + coordsMargin
	l.Rule = Rect{X: rowX, Y: rowY + rowH/2, W: ruleWidth, H: 1}
	l.Coords = Rect{X: rowX + ruleWidth + ruleGap, Y: rowY, W: m.CoordsW, H: m.CoordsH}
	return l
}

// Colors returns the title, text and rule colors of a theme.
func Colors(t settings.Theme) (title, body, rule color.RGBA) {
	if t == settings.ThemeLight {
		return colornames.Black, color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}, color.RGBA{A: 0x80}
	}
	return colornames.White, colornames.White, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}
}

// Renderer draws posters, caching parsed fonts by family.
type Renderer struct {
	faces  map[string]*Faces
	logger logging.Logger
}

func NewRenderer(logger logging.Logger) *Renderer {
	return &Renderer{faces: make(map[string]*Faces), logger: logging.OrNoop(logger)}
}

func (r *Renderer) facesFor(name string) *Faces {
	if f, ok := r.faces[name]; ok {
		return f
	}
	f, err := LoadFaces(name)
	if err != nil {
		r.logger.Errorf("overlay", "%v, using default font", err)
		f, err = LoadFaces("")
		if err != nil {
			return nil
		}
	}
	r.faces[name] = f
	return f
}

// Draw paints p over dst at the given opacity.
func (r *Renderer) Draw(dst *ebiten.Image, p Poster, alpha float64) {
	if alpha <= 0 || p.City == "" {
		return
	}
	faces := r.facesFor(p.Font)
	if faces == nil {
		return
	}
	city := strings.ToUpper(p.City)
	coords := strings.ToUpper(p.Coords)

	m := faces.Title.Metrics()
	cm := faces.Coords.Metrics()
	metrics := Metrics{
		TitleW:     text.Advance(city, faces.Title),
		TitleH:     TitleSize * lineHeight,
		CoordsW:    text.Advance(coords, faces.Coords),
		CoordsH:    cm.HAscent + cm.HDescent,
		ShowCoords: p.ShowCoords && coords != "",
	}
	b := dst.Bounds()
	l := Place(p.Placement, p.Padding, float64(b.Dx()), float64(b.Dy()), metrics)

	titleColor, bodyColor, ruleColor := Colors(p.Theme)

	op := &text.DrawOptions{}
	// Center the glyph box inside the tightened line.
	op.GeoM.Translate(l.Title.X, l.Title.Y-(m.HAscent+m.HDescent-metrics.TitleH)/2)
	op.ColorScale.ScaleWithColor(titleColor)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, city, faces.Title, op)

	if !metrics.ShowCoords {
		return
	}
	ruleColor.A = uint8(float64(ruleColor.A) * alpha)
	ruleColor.R = uint8(float64(ruleColor.R) * alpha)
	ruleColor.G = uint8(float64(ruleColor.G) * alpha)
	ruleColor.B = uint8(float64(ruleColor.B) * alpha)
	vector.DrawFilledRect(dst, float32(l.Rule.X), float32(l.Rule.Y), float32(l.Rule.W), float32(l.Rule.H), ruleColor, false)

	op = &text.DrawOptions{}
	op.GeoM.Translate(l.Coords.X, l.Coords.Y)
	op.ColorScale.ScaleWithColor(bodyColor)
	op.ColorScale.ScaleAlpha(float32(alpha * coordsAlpha))
	text.Draw(dst, coords, faces.Coords, op)
}
