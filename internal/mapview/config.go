package mapview

import (
	"math"
	"time"

	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

const (
	StyleDark  = "dark-poster"
	StyleLight = "light-poster"
)

// Config is what the renderer is constructed with.
type Config struct {
	Style             string
	Center            settings.LngLat
	Zoom              float64
	PixelRatio        float64
	Antialias         bool
	TileCacheSize     int
	MinZoom           float64
	MaxZoom           float64
	RenderWorldCopies bool
	FadeDuration      time.Duration
}

func (c Config) ContextAttributes() ContextAttributes {
	return ContextAttributes{Antialias: c.Antialias, PixelRatio: c.PixelRatio}
}

// DeriveConfig builds the renderer configuration for s. deviceScale is the
// host's device pixel ratio, used for the auto resolution.
func DeriveConfig(s settings.Map, deviceScale float64) Config {
	style := StyleDark
	if s.Theme == settings.ThemeLight {
		style = StyleLight
	}
	cache := config.TileCacheSmall
	if s.Caching {
		cache = config.TileCacheLarge
	}
	ratio, aa := QualityRaster(s.Quality, s.Resolution, s.HardwareAccel, deviceScale)
	return Config{
		Style:             style,
		Center:            s.Center,
		Zoom:              s.Zoom,
		PixelRatio:        ratio,
		Antialias:         aa,
		TileCacheSize:     cache,
		MinZoom:           config.MinZoom,
		MaxZoom:           config.MaxZoom,
		RenderWorldCopies: false,
		FadeDuration:      0,
	}
}

// ResolutionRatio maps a resolution preset to a device pixel ratio.
// Without hardware acceleration the ratio is always 1.
func ResolutionRatio(r settings.Resolution, hardwareAccel bool, deviceScale float64) float64 {
	if !hardwareAccel {
		return 1
	}
	switch r {
	case settings.Resolution1080p:
		return 1
	case settings.Resolution1440p:
		return 1.5
	case settings.Resolution4K:
		return 2
	}
	if deviceScale <= 0 || math.IsNaN(deviceScale) {
		return 1
	}
	return deviceScale
}

// QualityRaster returns the pixel ratio and antialias flag of a quality
// preset.
func QualityRaster(q settings.Quality, r settings.Resolution, hardwareAccel bool, deviceScale float64) (float64, bool) {
	ratio := ResolutionRatio(r, hardwareAccel, deviceScale)
	switch q {
	case settings.QualityLow:
		return math.Min(1, ratio), false
	case settings.QualityMedium:
		return math.Min(1.5, ratio), hardwareAccel
	case settings.QualityUltra:
		return ratio, hardwareAccel
	default:
		return math.Min(2, ratio), hardwareAccel
	}
}
