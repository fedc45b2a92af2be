package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/papermap-live/internal/anim"
	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/display"
	"github.com/iburimskiy/papermap-live/internal/game"
	"github.com/iburimskiy/papermap-live/internal/logging"
	"github.com/iburimskiy/papermap-live/internal/mapview"
	"github.com/iburimskiy/papermap-live/internal/overlay"
	"github.com/iburimskiy/papermap-live/internal/settings"
	"github.com/iburimskiy/papermap-live/internal/tilemap"
	"github.com/iburimskiy/papermap-live/internal/wallpaper"
)

const tileTimeout = 15 * time.Second

func main() {
	// Flags
	configPath := flag.String("config", "", "settings file (default: user config dir)")
	city := flag.String("city", "", "start at a named location, e.g. TOKYO")
	theme := flag.String("theme", "", "dark or light")
	fps := flag.Int("fps", 0, "animation frame rate")
	startWallpaper := flag.Bool("wallpaper", false, "start in wallpaper mode")
	debug := flag.Bool("debug", false, "enable debug logging to ./papermap-debug.log")
	flag.Parse()

	var logger logging.Logger = logging.NewWriterLogger(os.Stderr)
	if *debug {
		f, err := os.OpenFile("./papermap-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = logging.NewWriterLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	path := *configPath
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			logger.Errorf("config", "no user config dir, settings will not be saved: %v", err)
		}
		path = p
	}
	snap := settings.Defaults()
	if path != "" {
		s, err := settings.LoadOptional(path)
		if err != nil {
			logger.Errorf("config", "load %s: %v, using defaults", path, err)
		} else {
			snap = s
		}
	}
	if *city != "" {
		if s, ok := snap.WithLocation(*city); ok {
			snap = s
		} else {
			logger.Infof("config", "unknown location %q ignored", *city)
		}
	}
	if *theme != "" {
		snap.Theme = settings.Theme(*theme)
	}
	if *fps > 0 {
		snap.FrameRate = *fps
	}
	snap = snap.Normalize()

	sched := anim.NewFrameScheduler()
	ctrl := anim.NewController(sched, logger)
	factory := &tilemap.Factory{
		Client:   &http.Client{Timeout: tileTimeout},
		Workers:  config.TileWorkers,
		Logger:   logger,
		Viewport: ebiten.WindowSize,
	}
	mgr := mapview.NewManager(factory, tilemap.NewPool(), ctrl,
		mapview.WithLogger(logger),
		mapview.WithDeviceScale(func() float64 { return ebiten.Monitor().DeviceScaleFactor() }),
	)
	defer mgr.Teardown()

	g := game.New(game.Deps{
		Settings:         snap,
		SettingsPath:     path,
		Scheduler:        sched,
		Controller:       ctrl,
		Manager:          mgr,
		Placer:           display.NewPlacer(display.EbitenWindow{}, nil, logger),
		Activator:        wallpaper.Desktop{},
		Overlay:          overlay.NewRenderer(logger),
		Logger:           logger,
		StartInWallpaper: *startWallpaper,
	})

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TPS)

	logger.Infof("main", "%s starting at %s", config.AppName, snap.City)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Errorf("main", "run: %v", err)
		mgr.Teardown()
		os.Exit(1)
	}
}
