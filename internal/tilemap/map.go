// Package tilemap is the raster map renderer behind the wallpaper: XYZ
// tiles fetched over HTTP, cached on the GPU and drawn rotated around the
// camera center.
package tilemap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"net/http"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/papermap-live/internal/anim"
	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/logging"
	"github.com/iburimskiy/papermap-live/internal/mapview"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

// retryAfter is how long a tile that failed to download is left alone.
const retryAfter = 5 * time.Second

var (
	ErrNoTiles     = errors.New("no tiles could be loaded")
	ErrContextLost = errors.New("render context lost")
)

// Factory builds Maps for the view manager.
type Factory struct {
	Client  *http.Client
	Workers int
	Logger  logging.Logger
	// Viewport returns the logical window size used before the first
	// Resize.
	Viewport func() (int, int)
}

func (f *Factory) NewView(cfg mapview.Config, ctx mapview.Context) (mapview.View, error) {
	c, ok := ctx.(*Context)
	if !ok {
		return nil, fmt.Errorf("unsupported render context %T", ctx)
	}
	w, h := config.WindowWidth, config.WindowHeight
	if f.Viewport != nil {
		w, h = f.Viewport()
	}
	return New(cfg, c, Options{
		Client:  f.Client,
		Workers: f.Workers,
		Logger:  f.Logger,
		Width:   w,
		Height:  h,
	}), nil
}

type Options struct {
	Client        *http.Client
	Workers       int
	Logger        logging.Logger
	Width, Height int
	// Interactive enables drag, wheel and arrow-key input until
	// DisableInteractions. Views built by Factory are passive.
	Interactive bool
}

// Map implements mapview.View. All methods run on the ebiten update
// goroutine; Render runs on the draw side of the same loop.
type Map struct {
	cfg    mapview.Config
	ctx    *Context
	logger logging.Logger

	style    *Style
	styleErr error
	fetch    *fetcher
	cache    *tileCache[*ebiten.Image]

	cam         camera
	zoom        float64
	now         time.Duration
	width       int
	height      int
	interactive bool
	drag        dragState

	onLoad    func()
	onError   func(error)
	gate      map[TileKey]bool // initially visible tiles still unsettled
	retry     map[TileKey]time.Duration
	gateOK    int
	loaded    bool
	failed    bool
	destroyed bool
}

// New creates a map. Style and context failures are reported through the
// error handler on the first Update, never from New.
func New(cfg mapview.Config, ctx *Context, opts Options) *Map {
	logger := logging.OrNoop(opts.Logger)
	m := &Map{
		cfg:         cfg,
		ctx:         ctx,
		logger:      logger,
		zoom:        clampZoom(cfg.Zoom, cfg.MinZoom, cfg.MaxZoom),
		width:       opts.Width,
		height:      opts.Height,
		interactive: opts.Interactive,
		cam:         newCamera(pose{center: cfg.Center}),
		retry:       make(map[TileKey]time.Duration),
	}

	m.style, m.styleErr = LoadStyle(cfg.Style)
	if m.styleErr != nil {
		return m
	}
	m.cache, m.styleErr = newTileCache[*ebiten.Image](cfg.TileCacheSize, func(_ TileKey, img *ebiten.Image) {
		img.Deallocate()
	})
	if m.styleErr != nil {
		return m
	}
	retina := cfg.PixelRatio > 1
	m.fetch = newFetcher(opts.Client, func(k TileKey) string {
		return m.style.TileURL(k, retina)
	}, m.style.UserAgent, workersOr(opts.Workers), logger)
	return m
}

func workersOr(n int) int {
	if n <= 0 {
		return config.TileWorkers
	}
	return n
}

func (m *Map) OnLoad(fn func())           { m.onLoad = fn }
func (m *Map) OnError(fn func(err error)) { m.onError = fn }

func (m *Map) Ready() bool { return m.loaded && !m.destroyed }
func (m *Map) Alive() bool { return !m.destroyed }

// Bearing reports the committed bearing: the target of the latest
// transition.
func (m *Map) Bearing() float64 { return m.cam.to.bearing }

// Center reports the committed center.
func (m *Map) Center() settings.LngLat { return m.cam.to.center }

func (m *Map) Zoom() float64 { return m.zoom }

func (m *Map) Style() *Style { return m.style }

// PendingTiles is the number of downloads still in flight.
func (m *Map) PendingTiles() int {
	if m.fetch == nil {
		return 0
	}
	return m.fetch.pending()
}

// CachedTiles is the number of tiles held on the GPU.
func (m *Map) CachedTiles() int {
	if m.cache == nil {
		return 0
	}
	return m.cache.Len()
}

func (m *Map) EaseTo(center settings.LngLat, bearing float64, opts anim.EaseOptions) {
	if m.destroyed {
		return
	}
	m.cam.easeTo(m.now, pose{center: center, bearing: bearing}, opts)
}

func (m *Map) Surface() mapview.Surface { return m.ctx }

func (m *Map) DisableInteractions() {
	m.interactive = false
	m.drag = dragState{}
}

func (m *Map) Preload(center settings.LngLat) {
	if m.destroyed || m.fetch == nil {
		return
	}
	for _, k := range m.visible(center) {
		m.request(k)
	}
}

func (m *Map) request(k TileKey) {
	if m.cache.Contains(k) {
		return
	}
	if at, ok := m.retry[k]; ok {
		if m.now < at {
			return
		}
		delete(m.retry, k)
	}
	m.fetch.request(k)
}

// Resize sets the logical viewport size.
func (m *Map) Resize(w, h int) {
	m.width, m.height = w, h
}

func (m *Map) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.onLoad, m.onError = nil, nil
	if m.fetch != nil {
		m.fetch.close()
	}
	if m.cache != nil {
		m.cache.Purge()
	}
}

// Update advances the map to now: it settles finished downloads, requests
// missing tiles and emits the load or error event.
func (m *Map) Update(now time.Duration) {
	if m.destroyed {
		return
	}
	m.now = now
	if m.styleErr != nil {
		m.fail(m.styleErr)
		return
	}
	if m.ctx.Lost() {
		m.fail(ErrContextLost)
		return
	}
	if m.interactive {
		m.handleInput()
	}

	m.fetch.drain(m.settle)

	center := m.cam.at(now).center
	visible := m.visible(center)
	if m.gate == nil && !m.loaded {
		m.gate = make(map[TileKey]bool, len(visible))
		for _, k := range visible {
			if m.cache.Contains(k) {
				m.gateOK++
				continue
			}
			m.gate[k] = true
		}
	}
	for _, k := range visible {
		m.request(k)
	}
	m.checkLoaded()
}

func (m *Map) settle(r tileResult) {
	_, gated := m.gate[r.key]
	delete(m.gate, r.key)
	if r.err != nil {
		m.retry[r.key] = m.now + retryAfter
		return
	}
	m.cache.Add(r.key, ebiten.NewImageFromImage(r.img))
	if gated {
		m.gateOK++
	}
}

func (m *Map) checkLoaded() {
	if m.loaded || m.failed || m.gate == nil || len(m.gate) > 0 {
		return
	}
	if m.gateOK == 0 {
		m.fail(ErrNoTiles)
		return
	}
	m.loaded = true
	m.logger.Infof("tilemap", "style %s loaded with %d tiles", m.cfg.Style, m.gateOK)
	if m.onLoad != nil {
		m.onLoad()
	}
}

// fail reports err once.
func (m *Map) fail(err error) {
	if m.failed {
		return
	}
	m.failed = true
	m.loaded = false
	if m.onError != nil {
		m.onError(err)
	}
}

func (m *Map) background() color.RGBA {
	if m.style == nil {
		return color.RGBA{A: 0xff}
	}
	return m.style.BackgroundColor()
}

func (m *Map) visible(center settings.LngLat) []TileKey {
	return VisibleTiles(center, m.zoom, float64(m.width)*m.cfg.PixelRatio, float64(m.height)*m.cfg.PixelRatio, m.cfg.PixelRatio)
}

// Render paints the current camera pose onto dst.
func (m *Map) Render(dst *ebiten.Image) {
	if m.destroyed {
		return
	}
	bg := m.background()
	dst.Fill(bg)
	if m.cache == nil {
		return
	}

	hints := m.ctx.Hints()
	if !hints.Compositing {
		m.drawTiles(dst, 1)
		return
	}
	b := dst.Bounds()
	layer := m.ctx.Layer(b.Dx(), b.Dy())
	if layer == nil {
		return
	}
	layer.Fill(bg)
	ratio := m.ctx.Attributes().PixelRatio
	m.drawTiles(layer, ratio)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/ratio, 1/ratio)
	if hints.SmoothRaster {
		op.Filter = ebiten.FilterLinear
	}
	dst.DrawImage(layer, op)
}

func (m *Map) drawTiles(dst *ebiten.Image, ratio float64) {
	p := m.cam.at(m.now)
	iz := math.Floor(m.zoom)
	scale := math.Exp2(m.zoom-iz) * ratio
	cx, cy := Project(p.center, iz)
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rot := -p.bearing * math.Pi / 180

	filter := ebiten.FilterNearest
	if m.cfg.Antialias {
		filter = ebiten.FilterLinear
	}
	for _, k := range VisibleTiles(p.center, m.zoom, w, h, ratio) {
		img, ok := m.cache.Get(k)
		if !ok {
			continue
		}
		tileScale := float64(TileSize) / float64(img.Bounds().Dx())
		op := &ebiten.DrawImageOptions{Filter: filter}
		op.GeoM.Scale(tileScale, tileScale)
		op.GeoM.Translate(float64(k.X)*TileSize-cx, float64(k.Y)*TileSize-cy)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Rotate(rot)
		op.GeoM.Translate(w/2, h/2)
		dst.DrawImage(img, op)
	}
}
