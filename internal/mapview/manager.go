package mapview

import (
	"fmt"

	"github.com/iburimskiy/papermap-live/internal/anim"
	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/logging"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

// preloadOffsets are the nearby centers requested on ready so the drift
// never uncovers unrendered edges.
var preloadOffsets = [][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, -1}, {1, -1}, {-1, 1},
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = logging.OrNoop(l) }
}

// WithDeviceScale sets the source of the host device pixel ratio.
func WithDeviceScale(fn func() float64) Option {
	return func(m *Manager) { m.deviceScale = fn }
}

// WithErrorBuffer sets the capacity of the error channel.
func WithErrorBuffer(n int) Option {
	return func(m *Manager) { m.errs = make(chan error, n) }
}

// Manager keeps the view, its context and the animation controller in step
// with the latest settings. All methods must be called from the render
// goroutine.
type Manager struct {
	factory     Factory
	pool        ContextPool
	ctrl        *anim.Controller
	logger      logging.Logger
	deviceScale func() float64
	errs        chan error

	state      State
	view       View
	ctx        Context
	cfg        Config
	snap       settings.Map
	generation uint64
	readyFired bool
	// failed latches an error of the current view until the next Apply.
	failed bool
}

func NewManager(factory Factory, pool ContextPool, ctrl *anim.Controller, opts ...Option) *Manager {
	m := &Manager{
		factory:     factory,
		pool:        pool,
		ctrl:        ctrl,
		logger:      logging.NoopLogger{},
		deviceScale: func() float64 { return 1 },
		errs:        make(chan error, 8),
		state:       Uninitialized,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply tears down any existing view and builds a new one for s. Creation
// failures are returned and also reported on Errors.
func (m *Manager) Apply(s settings.Map) error {
	m.release()
	m.fire(eventApply)

	m.snap = s
	m.cfg = DeriveConfig(s, m.deviceScale())
	m.generation++
	m.readyFired = false
	m.failed = false
	gen := m.generation

	ctx, err := m.pool.Acquire(m.cfg.ContextAttributes())
	if err != nil {
		err = fmt.Errorf("acquire render context: %w", err)
		m.report(err)
		return err
	}
	view, err := m.factory.NewView(m.cfg, ctx)
	if err != nil {
		ctx.Release()
		err = fmt.Errorf("create map view: %w", err)
		m.report(err)
		return err
	}
	m.view, m.ctx = view, ctx

	view.OnLoad(func() { m.handleReady(gen) })
	view.OnError(func(err error) { m.handleError(gen, err) })
	m.logger.Infof("mapview", "created view #%d style=%s ratio=%.2f aa=%t cache=%d",
		gen, m.cfg.Style, m.cfg.PixelRatio, m.cfg.Antialias, m.cfg.TileCacheSize)
	return nil
}

// Teardown stops the animation and destroys the view. Safe without a view.
func (m *Manager) Teardown() {
	m.release()
	m.fire(eventTeardown)
}

func (m *Manager) State() State { return m.state }

// Animating reports whether the controller loop runs for the current view.
func (m *Manager) Animating() bool {
	return m.state == Ready && m.ctrl.Running()
}

// View returns the live view, or nil.
func (m *Manager) View() View { return m.view }

// Config returns the configuration of the most recent Apply.
func (m *Manager) Config() Config { return m.cfg }

// Errors delivers renderer failures. Errors are dropped when the channel
// is full.
func (m *Manager) Errors() <-chan error { return m.errs }

func (m *Manager) handleReady(gen uint64) {
	if gen != m.generation || m.view == nil || m.readyFired || m.failed {
		return
	}
	if _, ok := nextState(m.state, eventReady); !ok {
		return
	}
	m.readyFired = true
	m.fire(eventReady)

	view := m.view
	if m.snap.HardwareAccel {
		view.Surface().SetHints(Hints{Compositing: true, SmoothRaster: true})
	}
	if m.snap.Caching {
		for _, off := range preloadOffsets {
			view.Preload(m.cfg.Center.Add(off[0]*config.PreloadOffset, off[1]*config.PreloadOffset))
		}
	}
	view.DisableInteractions()

	if !m.snap.ReduceMotion {
		m.ctrl.Start(view, m.snap)
	}
	m.logger.Infof("mapview", "view #%d ready animating=%t", gen, m.ctrl.Running())
}

func (m *Manager) handleError(gen uint64, err error) {
	if gen != m.generation || m.view == nil {
		return
	}
	m.failed = true
	m.ctrl.Stop()
	m.fire(eventError)
	m.report(fmt.Errorf("map view #%d: %w", gen, err))
}

func (m *Manager) release() {
	m.ctrl.Stop()
	if m.view != nil {
		m.view.Destroy()
		m.view = nil
	}
	if m.ctx != nil {
		m.ctx.Release()
		m.ctx = nil
	}
}

func (m *Manager) fire(ev event) {
	to, ok := nextState(m.state, ev)
	if !ok {
		m.logger.Infof("mapview", "ignored %s in state %s", ev, m.state)
		return
	}
	m.state = to
}

func (m *Manager) report(err error) {
	m.logger.Errorf("mapview", "%v", err)
	select {
	case m.errs <- err:
	default:
	}
}
