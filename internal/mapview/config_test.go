package mapview

import (
	"testing"

	"github.com/iburimskiy/papermap-live/internal/settings"
)

func TestQualityRaster(t *testing.T) {
	tests := []struct {
		q     settings.Quality
		r     settings.Resolution
		hw    bool
		scale float64
		ratio float64
		aa    bool
	}{
		{settings.QualityLow, settings.Resolution4K, true, 1, 1, false},
		{settings.QualityMedium, settings.Resolution4K, true, 1, 1.5, true},
		{settings.QualityHigh, settings.Resolution4K, true, 1, 2, true},
		{settings.QualityUltra, settings.Resolution4K, true, 1, 2, true},
		{settings.QualityHigh, settings.Resolution1440p, true, 1, 1.5, true},
		{settings.QualityHigh, settings.Resolution1080p, true, 3, 1, true},
		{settings.QualityHigh, settings.ResolutionAuto, true, 3, 2, true},
		{settings.QualityUltra, settings.ResolutionAuto, true, 3, 3, true},
		{settings.QualityUltra, settings.ResolutionAuto, true, 0, 1, true},
		{settings.QualityUltra, settings.Resolution4K, false, 2, 1, false},
		{settings.QualityMedium, settings.ResolutionAuto, false, 2, 1, false},
	}
	for _, tt := range tests {
		ratio, aa := QualityRaster(tt.q, tt.r, tt.hw, tt.scale)
		if ratio != tt.ratio || aa != tt.aa {
			t.Errorf("%s/%s hw=%t scale=%v: got (%v,%t) want (%v,%t)",
				tt.q, tt.r, tt.hw, tt.scale, ratio, aa, tt.ratio, tt.aa)
		}
	}
}

func TestDeriveConfig(t *testing.T) {
	s := settings.Defaults()
	s.Theme = settings.ThemeLight
	s.Caching = true
	cfg := DeriveConfig(s.Map(), 1)
	if cfg.Style != StyleLight || cfg.TileCacheSize != 1000 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Center != s.Center || cfg.Zoom != s.Zoom {
		t.Errorf("center/zoom not carried: %+v", cfg)
	}
	attrs := cfg.ContextAttributes()
	if attrs.PixelRatio != cfg.PixelRatio || attrs.Antialias != cfg.Antialias {
		t.Errorf("context attributes %+v", attrs)
	}
}
