// Package settings holds the user-editable snapshot that drives the map
// view, the poster overlay and window placement.
package settings

import (
	"math"
	"strings"
	"time"

	"github.com/iburimskiy/papermap-live/internal/config"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
	QualityUltra  Quality = "ultra"
)

type Resolution string

const (
	ResolutionAuto  Resolution = "auto"
	Resolution1080p Resolution = "1080p"
	Resolution1440p Resolution = "1440p"
	Resolution4K    Resolution = "4k"
)

type Placement string

const (
	PlacementTopLeft     Placement = "top-left"
	PlacementTopRight    Placement = "top-right"
	PlacementBottomLeft  Placement = "bottom-left"
	PlacementBottomRight Placement = "bottom-right"
	PlacementCenter      Placement = "center"
)

type MonitorTarget string

const (
	MonitorPrimary   MonitorTarget = "primary"
	MonitorSecondary MonitorTarget = "secondary"
	MonitorAll       MonitorTarget = "all"
)

var (
	themes      = []Theme{ThemeDark, ThemeLight}
	qualities   = []Quality{QualityLow, QualityMedium, QualityHigh, QualityUltra}
	resolutions = []Resolution{ResolutionAuto, Resolution1080p, Resolution1440p, Resolution4K}
	placements  = []Placement{PlacementTopLeft, PlacementTopRight, PlacementBottomLeft, PlacementBottomRight, PlacementCenter}
	monitors    = []MonitorTarget{MonitorPrimary, MonitorSecondary, MonitorAll}
)

// LngLat is a geographic coordinate in degrees.
type LngLat struct {
	Lng float64 `yaml:"lng"`
	Lat float64 `yaml:"lat"`
}

func (p LngLat) Add(dLng, dLat float64) LngLat {
	return LngLat{Lng: p.Lng + dLng, Lat: p.Lat + dLat}
}

// Snapshot is replaced wholesale on every edit; never mutate one that has
// already been handed to the view manager.
type Snapshot struct {
	// Location & theme
	City   string  `yaml:"city"`
	Center LngLat  `yaml:"center"`
	Zoom   float64 `yaml:"zoom"`
	Coords string  `yaml:"coords"`
	Theme  Theme   `yaml:"theme"`

	// Typography
	Font            string    `yaml:"font"`
	Placement       Placement `yaml:"placement"`
	Padding         int       `yaml:"padding"`
	ShowCoordinates bool      `yaml:"show_coordinates"`

	// Display
	Monitor    MonitorTarget `yaml:"monitor"`
	Resolution Resolution    `yaml:"resolution"`
	Blur       float64       `yaml:"blur"`

	// Performance
	Quality       Quality `yaml:"quality"`
	FrameRate     int     `yaml:"frame_rate"`
	Caching       bool    `yaml:"caching"`
	HardwareAccel bool    `yaml:"hardware_accel"`
	ReduceMotion  bool    `yaml:"reduce_motion"`
}

// Map is the part of a snapshot that requires the map view to be rebuilt.
// It is comparable, so callers detect changes with ==.
type Map struct {
	Theme         Theme
	Center        LngLat
	Zoom          float64
	Quality       Quality
	FrameRate     int
	Caching       bool
	HardwareAccel bool
	ReduceMotion  bool
	Resolution    Resolution
}

// Display is the part of a snapshot that requires window placement.
type Display struct {
	Monitor    MonitorTarget
	Resolution Resolution
}

func Defaults() Snapshot {
	s := Snapshot{
		Theme:           ThemeDark,
		Font:            "Inter",
		Placement:       PlacementBottomLeft,
		Padding:         80,
		ShowCoordinates: true,
		Monitor:         MonitorPrimary,
		Resolution:      ResolutionAuto,
		Quality:         QualityHigh,
		FrameRate:       30,
		Caching:         true,
		HardwareAccel:   true,
	}
	s, _ = s.WithLocation("DUBAI")
	return s
}

func (s Snapshot) Map() Map {
	return Map{
		Theme:         s.Theme,
		Center:        s.Center,
		Zoom:          s.Zoom,
		Quality:       s.Quality,
		FrameRate:     s.FrameRate,
		Caching:       s.Caching,
		HardwareAccel: s.HardwareAccel,
		ReduceMotion:  s.ReduceMotion,
		Resolution:    s.Resolution,
	}
}

func (s Snapshot) Display() Display {
	return Display{Monitor: s.Monitor, Resolution: s.Resolution}
}

// FrameInterval is the minimum wall-clock spacing between applied motion
// updates.
func (m Map) FrameInterval() time.Duration {
	fps := m.FrameRate
	if fps < config.MinFrameRate {
		fps = config.MinFrameRate
	}
	return time.Second / time.Duration(fps)
}

// Normalize replaces out-of-range or unknown fields with their defaults.
func (s Snapshot) Normalize() Snapshot {
	d := Defaults()
	if !contains(themes, s.Theme) {
		s.Theme = d.Theme
	}
	if !contains(qualities, s.Quality) {
		s.Quality = d.Quality
	}
	if !contains(resolutions, s.Resolution) {
		s.Resolution = d.Resolution
	}
	if !contains(placements, s.Placement) {
		s.Placement = d.Placement
	}
	if !contains(monitors, s.Monitor) {
		s.Monitor = d.Monitor
	}
	if s.FrameRate < config.MinFrameRate || s.FrameRate > config.MaxFrameRate {
		s.FrameRate = d.FrameRate
	}
	if s.Padding < config.MinPadding || s.Padding > config.MaxPadding {
		s.Padding = d.Padding
	}
	if math.IsNaN(s.Blur) || s.Blur < 0 || s.Blur > config.MaxBlur {
		s.Blur = d.Blur
	}
	if strings.TrimSpace(s.Font) == "" {
		s.Font = d.Font
	}
	if !validCoordinate(s.Center) || math.IsNaN(s.Zoom) || s.Zoom <= 0 {
		s.City, s.Center, s.Zoom, s.Coords = d.City, d.Center, d.Zoom, d.Coords
	}
	if s.Coords == "" {
		s.Coords = FormatCoords(s.Center)
	}
	return s
}

func validCoordinate(p LngLat) bool {
	if math.IsNaN(p.Lng) || math.IsNaN(p.Lat) {
		return false
	}
	return p.Lng >= -180 && p.Lng <= 180 && p.Lat >= -85.0511 && p.Lat <= 85.0511
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func next[T comparable](list []T, v T) T {
	for i, item := range list {
		if item == v {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

func (t Theme) Next() Theme                 { return next(themes, t) }
func (q Quality) Next() Quality             { return next(qualities, q) }
func (r Resolution) Next() Resolution       { return next(resolutions, r) }
func (p Placement) Next() Placement         { return next(placements, p) }
func (m MonitorTarget) Next() MonitorTarget { return next(monitors, m) }

// NextFrameRate steps through 15, 30, 45, 60 and wraps.
func NextFrameRate(fps int) int {
	n := (fps/config.FrameRateStep + 1) * config.FrameRateStep
	if n > config.MaxUIFrame {
		return config.FrameRateStep
	}
	return n
}

// NextBlur steps the blur amount by 3px and wraps after the maximum.
func NextBlur(blur float64) float64 {
	n := math.Floor(blur/3)*3 + 3
	if n > config.MaxBlur {
		return 0
	}
	return n
}
