package tilemap

import (
	"embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed styles/*.yaml
var builtinStyles embed.FS

// Style describes a raster tile source and the colors painted around it.
type Style struct {
	Name        string   `yaml:"name"`
	Tiles       string   `yaml:"tiles"`
	Subdomains  []string `yaml:"subdomains"`
	Background  string   `yaml:"background"`
	Text        string   `yaml:"text"`
	Rule        string   `yaml:"rule"`
	Attribution string   `yaml:"attribution"`
	UserAgent   string   `yaml:"user_agent"`

	background color.RGBA
	text       color.RGBA
	rule       color.RGBA
}

// LoadStyle resolves a built-in style name or reads a style file.
func LoadStyle(id string) (*Style, error) {
	data, err := builtinStyles.ReadFile("styles/" + id + ".yaml")
	if err != nil {
		data, err = os.ReadFile(id)
		if err != nil {
			return nil, fmt.Errorf("load style %q: %w", id, err)
		}
	}
	return ParseStyle(data)
}

func ParseStyle(data []byte) (*Style, error) {
	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse style: %w", err)
	}
	if s.Tiles == "" {
		return nil, errors.New("parse style: missing tiles template")
	}
	if strings.Contains(s.Tiles, "{s}") && len(s.Subdomains) == 0 {
		return nil, errors.New("parse style: template uses {s} without subdomains")
	}
	var err error
	if s.background, err = parseHexColor(s.Background, color.RGBA{A: 0xff}); err != nil {
		return nil, fmt.Errorf("parse style background: %w", err)
	}
	if s.text, err = parseHexColor(s.Text, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}); err != nil {
		return nil, fmt.Errorf("parse style text: %w", err)
	}
	if s.rule, err = parseHexColor(s.Rule, s.text); err != nil {
		return nil, fmt.Errorf("parse style rule: %w", err)
	}
	return &s, nil
}

// TileURL expands the template for k. retina selects the @2x variant.
func (s *Style) TileURL(k TileKey, retina bool) string {
	r := ""
	if retina {
		r = "@2x"
	}
	sub := ""
	if len(s.Subdomains) > 0 {
		sub = s.Subdomains[(k.X+k.Y)%len(s.Subdomains)]
	}
	return strings.NewReplacer(
		"{s}", sub,
		"{z}", strconv.Itoa(k.Z),
		"{x}", strconv.Itoa(k.X),
		"{y}", strconv.Itoa(k.Y),
		"{r}", r,
	).Replace(s.Tiles)
}

func (s *Style) BackgroundColor() color.RGBA { return s.background }
func (s *Style) TextColor() color.RGBA       { return s.text }
func (s *Style) RuleColor() color.RGBA       { return s.rule }

// parseHexColor accepts #rgb, #rrggbb and #rrggbbaa. An empty string yields
// def.
func parseHexColor(s string, def color.RGBA) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return def, nil
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return def, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
