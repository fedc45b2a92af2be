// Package game is the ebiten shell around the map: it drives the frame
// scheduler, applies settings to the view manager and the window, and
// draws the poster or the settings HUD.
package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/papermap-live/internal/anim"
	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/logging"
	"github.com/iburimskiy/papermap-live/internal/mapview"
	"github.com/iburimskiy/papermap-live/internal/overlay"
	"github.com/iburimskiy/papermap-live/internal/settings"
	"github.com/iburimskiy/papermap-live/internal/wallpaper"
)

const (
	frameRingSize   = 512
	posterFade      = 1500 * time.Millisecond
	rateWindow      = time.Second
	maxErrorHistory = 4
)

type Mode int

const (
	ModeConfig Mode = iota
	ModePreview
	ModeWallpaper
)

func (m Mode) String() string {
	switch m {
	case ModePreview:
		return "preview"
	case ModeWallpaper:
		return "wallpaper"
	}
	return "config"
}

// MapManager is the part of mapview.Manager the shell uses.
type MapManager interface {
	Apply(s settings.Map) error
	Teardown()
	View() mapview.View
	Errors() <-chan error
	State() mapview.State
	Animating() bool
}

// Placer applies display settings to the window.
type Placer interface {
	Apply(d settings.Display)
}

// renderView is implemented by views that draw through ebiten.
type renderView interface {
	Update(now time.Duration)
	Render(dst *ebiten.Image)
	Resize(w, h int)
}

// tileStats is implemented by views that report their tile cache.
type tileStats interface {
	PendingTiles() int
	CachedTiles() int
}

type Deps struct {
	Settings     settings.Snapshot
	SettingsPath string
	Scheduler    *anim.FrameScheduler
	Controller   *anim.Controller
	Manager      MapManager
	Placer       Placer
	Activator    wallpaper.Activator
	Overlay      *overlay.Renderer
	Dialogs      Dialogs
	Logger       logging.Logger
	// Clock returns the monotonic time since start. Defaults to wall time.
	Clock func() time.Duration
	// StartInWallpaper launches straight into wallpaper mode.
	StartInWallpaper bool
}

type game struct {
	snap         settings.Snapshot
	settingsPath string
	sched        *anim.FrameScheduler
	mgr          MapManager
	placer       Placer
	activator    wallpaper.Activator
	poster       *overlay.Renderer
	dialogs      Dialogs
	logger       logging.Logger
	clock        func() time.Duration
	tap          *frameTap

	// apply policy
	appliedMap     settings.Map
	mapApplied     bool
	appliedDisplay settings.Display
	displayApplied bool

	// mode
	mode         Mode
	modeSince    time.Duration
	previewUntil time.Duration
	activating   bool
	activated    chan error

	// dialogs
	dialogOpen    bool
	dialogResults chan dialogResult

	// offscreen map layers, reused between frames
	mapLayer  *ebiten.Image
	blurLayer *ebiten.Image

	// input edge detection
	prevKey map[ebiten.Key]bool
	buttons []*button

	// view size
	width, height int
	now           time.Duration

	status string
	errs   []error
}

func New(d Deps) *game {
	clock := d.Clock
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}
	dialogs := d.Dialogs
	if dialogs == nil {
		dialogs = zenityDialogs{}
	}
	poster := d.Overlay
	if poster == nil {
		poster = overlay.NewRenderer(d.Logger)
	}
	g := &game{
		snap:          d.Settings.Normalize(),
		settingsPath:  d.SettingsPath,
		sched:         d.Scheduler,
		mgr:           d.Manager,
		placer:        d.Placer,
		activator:     d.Activator,
		poster:        poster,
		dialogs:       dialogs,
		logger:        logging.OrNoop(d.Logger),
		clock:         clock,
		tap:           newFrameTap(frameRingSize),
		activated:     make(chan error, 1),
		dialogResults: make(chan dialogResult, 1),
		prevKey:       map[ebiten.Key]bool{},
		width:         config.WindowWidth,
		height:        config.WindowHeight,
	}
	if d.Controller != nil {
		d.Controller.SetObserver(g.tap.record)
	}
	g.buttons = []*button{
		{x: buttonX, y: buttonY, label: "Preview", act: actPreview},
		{x: buttonX + buttonWidth + buttonGap, y: buttonY, label: "Launch", act: actLaunch},
	}
	if d.StartInWallpaper {
		g.enterWallpaper(0)
	}
	return g
}

func (g *game) Update() error {
	return g.step(g.clock(), g.pollInput())
}

// step advances the shell to now after applying the given user actions.
func (g *game) step(now time.Duration, actions []action) error {
	g.now = now
	for _, a := range actions {
		if err := g.perform(a); err != nil {
			return err
		}
	}
	g.collectDialogs()
	g.sync()

	if rv, ok := g.mgr.View().(renderView); ok {
		rv.Resize(g.width, g.height)
		rv.Update(now)
	}
	if g.sched != nil {
		g.sched.Fire(now)
	}

	g.drainErrors()
	g.collectActivation()
	if g.mode == ModePreview && now >= g.previewUntil {
		g.setMode(ModeConfig)
	}
	return nil
}

// sync hands changed settings to the view manager and the window.
func (g *game) sync() {
	if m := g.snap.Map(); !g.mapApplied || m != g.appliedMap {
		g.appliedMap, g.mapApplied = m, true
		g.tap.reset()
		if err := g.mgr.Apply(m); err != nil {
			g.logger.Errorf("game", "apply map settings: %v", err)
		}
	}
	if d := g.snap.Display(); g.placer != nil && (!g.displayApplied || d != g.appliedDisplay) {
		g.appliedDisplay, g.displayApplied = d, true
		g.placer.Apply(d)
	}
}

func (g *game) drainErrors() {
	for {
		select {
		case err := <-g.mgr.Errors():
			g.pushError(err)
		default:
			return
		}
	}
}

func (g *game) pushError(err error) {
	g.errs = append(g.errs, err)
	if len(g.errs) > maxErrorHistory {
		g.errs = g.errs[len(g.errs)-maxErrorHistory:]
	}
}

func (g *game) setMode(m Mode) {
	if g.mode == m {
		return
	}
	g.logger.Infof("game", "mode %s -> %s", g.mode, m)
	g.mode = m
	g.modeSince = g.now
}

func (g *game) startPreview(now time.Duration) {
	g.previewUntil = now + config.PreviewDuration
	g.setMode(ModePreview)
}

// enterWallpaper switches to wallpaper mode and asks the desktop to adopt
// the window, once per launch.
func (g *game) enterWallpaper(now time.Duration) {
	if g.mode == ModeWallpaper {
		return
	}
	g.now = now
	g.setMode(ModeWallpaper)
	if g.activator == nil || g.activating {
		return
	}
	g.activating = true
	go func(a wallpaper.Activator) {
		g.activated <- a.Activate(config.WindowTitle)
	}(g.activator)
}

func (g *game) collectActivation() {
	select {
	case err := <-g.activated:
		g.activating = false
		if err != nil {
			g.logger.Errorf("wallpaper", "activation failed: %v", err)
			g.pushError(fmt.Errorf("wallpaper: %w", err))
			g.notify("Could not pin the window to the desktop: " + err.Error())
			return
		}
		g.logger.Infof("wallpaper", "window pinned to desktop")
	default:
	}
}

func (g *game) exitMode() error {
	switch g.mode {
	case ModeConfig:
		return ebiten.Termination
	default:
		g.setMode(ModeConfig)
		return nil
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// Mode reports the current presentation mode.
func (g *game) Mode() Mode { return g.mode }

// Settings returns the live settings snapshot.
func (g *game) Settings() settings.Snapshot { return g.snap }
