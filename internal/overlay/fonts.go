package overlay

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

const (
	TitleSize  = 128
	CoordsSize = 16
)

// FontNames are the families offered in the font picker. A path to a .ttf
// file is accepted too.
var FontNames = []string{
	"Inter",
	"Roboto",
	"Playfair Display",
	"Montserrat",
	"Courier New",
	"Georgia",
	"Arial",
}

// fontData returns the TTF data for the title and coordinate lines of a
// font family. Families without a bundled match fall back to Go Bold.
func fontData(name string) (title, coords []byte, err error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "playfair display", "georgia":
		return gosmallcaps.TTF, gomedium.TTF, nil
	case "courier new":
		return gomonobold.TTF, gomono.TTF, nil
	}
	if strings.HasSuffix(n, ".ttf") {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, nil, fmt.Errorf("read font: %w", err)
		}
		return data, data, nil
	}
	return gobold.TTF, gomedium.TTF, nil
}

type Faces struct {
	Title  *text.GoXFace
	Coords *text.GoXFace
}

// LoadFaces parses the font family name at the poster sizes.
func LoadFaces(name string) (*Faces, error) {
	titleData, coordsData, err := fontData(name)
	if err != nil {
		return nil, err
	}
	title, err := newFace(titleData, TitleSize)
	if err != nil {
		return nil, fmt.Errorf("title font %q: %w", name, err)
	}
	coords, err := newFace(coordsData, CoordsSize)
	if err != nil {
		return nil, fmt.Errorf("coordinates font %q: %w", name, err)
	}
	return &Faces{Title: title, Coords: coords}, nil
}

func newFace(data []byte, size float64) (*text.GoXFace, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return text.NewGoXFace(truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})), nil
}
