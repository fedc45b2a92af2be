package display

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/iburimskiy/papermap-live/internal/logging"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

type fakeWindow struct {
	x, y, w, h int
	maximized  bool
	calls      int
}

func (f *fakeWindow) SetPosition(x, y int) {
	f.x, f.y = x, y
	f.calls++
}

func (f *fakeWindow) SetSize(w, h int) {
	f.w, f.h = w, h
	f.calls++
}

func (f *fakeWindow) Maximize() {
	f.maximized = true
	f.calls++
}

var (
	primary   = Monitor{Name: "display-0", Bounds: image.Rect(0, 0, 2560, 1440), Primary: true}
	secondary = Monitor{Name: "display-1", Bounds: image.Rect(2560, 0, 2560+1920, 1080)}
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		monitors []Monitor
		target   settings.MonitorTarget
		res      settings.Resolution
		want     Geometry
	}{
		{
			name:     "auto on primary",
			monitors: []Monitor{primary, secondary},
			target:   settings.MonitorPrimary,
			res:      settings.ResolutionAuto,
			want:     Geometry{X: 0, Y: 0, Width: 2560, Height: 1440},
		},
		{
			name:     "4k clamped to primary",
			monitors: []Monitor{primary},
			target:   settings.MonitorPrimary,
			res:      settings.Resolution4K,
			want:     Geometry{Width: 2560, Height: 1440},
		},
		{
			name:     "1080p fits",
			monitors: []Monitor{primary},
			target:   settings.MonitorPrimary,
			res:      settings.Resolution1080p,
			want:     Geometry{Width: 1920, Height: 1080},
		},
		{
			name:     "secondary",
			monitors: []Monitor{primary, secondary},
			target:   settings.MonitorSecondary,
			res:      settings.Resolution1440p,
			want:     Geometry{X: 2560, Y: 0, Width: 1920, Height: 1080},
		},
		{
			name:     "secondary falls back to primary",
			monitors: []Monitor{primary},
			target:   settings.MonitorSecondary,
			res:      settings.ResolutionAuto,
			want:     Geometry{Width: 2560, Height: 1440},
		},
		{
			name:     "all maximizes on primary",
			monitors: []Monitor{secondary, primary},
			target:   settings.MonitorAll,
			res:      settings.ResolutionAuto,
			want:     Geometry{Width: 2560, Height: 1440, Maximize: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.monitors, tt.target, tt.res)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Plan() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanNoMonitors(t *testing.T) {
	if _, err := Plan(nil, settings.MonitorPrimary, settings.ResolutionAuto); !errors.Is(err, ErrNoMonitors) {
		t.Fatalf("err = %v, want ErrNoMonitors", err)
	}
}

func TestPlacerApply4KOnPrimary(t *testing.T) {
	big := Monitor{Name: "display-0", Bounds: image.Rect(0, 0, 5120, 2880), Primary: true}
	win := &fakeWindow{}
	p := NewPlacer(win, func() []Monitor { return []Monitor{big} }, nil)
	p.Apply(settings.Display{Monitor: settings.MonitorPrimary, Resolution: settings.Resolution4K})

	if win.x != 0 || win.y != 0 || win.w != 3840 || win.h != 2160 {
		t.Errorf("window = %dx%d+%d+%d, want 3840x2160+0+0", win.w, win.h, win.x, win.y)
	}
	if win.maximized {
		t.Error("primary placement maximized the window")
	}
}

func TestPlacerSkipsWithoutMonitors(t *testing.T) {
	var buf bytes.Buffer
	win := &fakeWindow{}
	p := NewPlacer(win, func() []Monitor { return nil }, logging.NewWriterLogger(&buf))
	p.Apply(settings.Display{Monitor: settings.MonitorAll, Resolution: settings.ResolutionAuto})

	if win.calls != 0 {
		t.Errorf("window touched %d times", win.calls)
	}
	if !strings.Contains(buf.String(), ErrNoMonitors.Error()) {
		t.Errorf("log = %q", buf.String())
	}
}

func TestPresetSize(t *testing.T) {
	if _, _, ok := PresetSize(settings.ResolutionAuto); ok {
		t.Error("auto has a preset size")
	}
	if w, h, _ := PresetSize(settings.Resolution1440p); w != 2560 || h != 1440 {
		t.Errorf("1440p = %dx%d", w, h)
	}
}
