package overlay

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gosmallcaps"

	"github.com/iburimskiy/papermap-live/internal/settings"
)

var metrics = Metrics{TitleW: 400, TitleH: 108.8, CoordsW: 200, CoordsH: 16, ShowCoords: true}

func TestPlaceCorners(t *testing.T) {
	const w, h = 1920, 1080
	// Block: 400 wide (title wider than 80+24+200), 108.8+20+16 tall.
	bh := 108.8 + 20 + 16
	tests := []struct {
		p    settings.Placement
		x, y float64
	}{
		{settings.PlacementTopLeft, 80, 80},
		{settings.PlacementTopRight, w - 80 - 400, 80},
		{settings.PlacementBottomLeft, 80, h - 80 - bh},
		{settings.PlacementBottomRight, w - 80 - 400, h - 80 - bh},
		{settings.PlacementCenter, (w - 400) / 2, (h - bh) / 2},
	}
	for _, tt := range tests {
		l := Place(tt.p, 80, w, h, metrics)
		if !near(l.Block.X, tt.x) || !near(l.Block.Y, tt.y) {
			t.Errorf("%s: block at (%v, %v), want (%v, %v)", tt.p, l.Block.X, l.Block.Y, tt.x, tt.y)
		}
	}
}

func TestPlaceLeftAlignsText(t *testing.T) {
	l := Place(settings.PlacementBottomLeft, 40, 1280, 800, metrics)
	if l.Title.X != l.Block.X {
		t.Errorf("title x = %v, block x = %v", l.Title.X, l.Block.X)
	}
	if l.Rule.X != l.Block.X || l.Rule.W != ruleWidth {
		t.Errorf("rule = %+v", l.Rule)
	}
	if want := l.Rule.X + ruleWidth + ruleGap; l.Coords.X != want {
		t.Errorf("coords x = %v, want %v", l.Coords.X, want)
	}
	if l.Coords.Y != l.Title.Y+metrics.TitleH+coordsMargin {
		t.Errorf("coords y = %v", l.Coords.Y)
	}
}

func TestPlaceCenterCentersRows(t *testing.T) {
	l := Place(settings.PlacementCenter, 0, 1000, 1000, metrics)
	if !near(l.Title.X+l.Title.W/2, 500) {
		t.Errorf("title center = %v", l.Title.X+l.Title.W/2)
	}
	rowW := ruleWidth + ruleGap + metrics.CoordsW
	if !near(l.Rule.X+rowW/2, 500) {
		t.Errorf("row center = %v", l.Rule.X+rowW/2)
	}
}

func TestPlaceWithoutCoordinates(t *testing.T) {
	m := metrics
	m.ShowCoords = false
	l := Place(settings.PlacementBottomLeft, 80, 1920, 1080, m)
	if l.Block.H != m.TitleH {
		t.Errorf("block height = %v, want %v", l.Block.H, m.TitleH)
	}
	if l.Coords != (Rect{}) || l.Rule != (Rect{}) {
		t.Error("coordinate row laid out while hidden")
	}
}

func TestColors(t *testing.T) {
	title, body, _ := Colors(settings.ThemeDark)
	if title.R != 0xff || body.R != 0xff {
		t.Errorf("dark theme colors %v %v", title, body)
	}
	title, body, rule := Colors(settings.ThemeLight)
	if title.R != 0 || body.R != 0x1a || rule.A != 0x80 {
		t.Errorf("light theme colors %v %v %v", title, body, rule)
	}
}

func TestFontData(t *testing.T) {
	tests := []struct {
		name string
		want []byte
	}{
		{"Inter", gobold.TTF},
		{"roboto", gobold.TTF},
		{"Montserrat", gobold.TTF},
		{"Arial", gobold.TTF},
		{"Playfair Display", gosmallcaps.TTF},
		{"Georgia", gosmallcaps.TTF},
		{"Courier New", gomonobold.TTF},
		{"Comic Sans", gobold.TTF},
	}
	for _, tt := range tests {
		got, _, err := fontData(tt.name)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("%s: wrong font data", tt.name)
		}
	}
}

func TestFontDataFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.ttf")
	if err := os.WriteFile(path, gomonobold.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	got, _, err := fontData(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, gomonobold.TTF) {
		t.Error("file font not read")
	}
	if _, _, err := fontData(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("expected error for missing font file")
	}
}

func TestLoadFaces(t *testing.T) {
	for _, name := range FontNames {
		f, err := LoadFaces(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if f.Title == nil || f.Coords == nil {
			t.Fatalf("%s: missing face", name)
		}
	}
}

func TestLoadFacesRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFaces(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPosterFrom(t *testing.T) {
	s := settings.Defaults()
	p := PosterFrom(s)
	if p.City != "DUBAI" || p.Coords != s.Coords || !p.ShowCoords || p.Padding != 80 {
		t.Errorf("PosterFrom = %+v", p)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
