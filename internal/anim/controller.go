// Package anim drives the wallpaper camera: a slow circular drift of the
// map center plus a constant-rate rotation, gated by the target frame rate
// against wall-clock time rather than host tick count.
package anim

import (
	"math"
	"time"

	"github.com/iburimskiy/papermap-live/internal/config"
	"github.com/iburimskiy/papermap-live/internal/logging"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

// Target is the part of a map view the controller moves.
type Target interface {
	Ready() bool
	// Alive reports false once the view has been destroyed.
	Alive() bool
	Bearing() float64
	EaseTo(center settings.LngLat, bearing float64, opts EaseOptions)
}

// Frame describes one applied motion update.
type Frame struct {
	At      time.Duration
	Center  settings.LngLat
	Bearing float64
}

// Controller owns the animation state of a single loop. Start and Stop must
// be called from the scheduler's goroutine.
type Controller struct {
	sched    Scheduler
	logger   logging.Logger
	observer func(Frame)

	target   Target
	base     settings.LngLat
	interval time.Duration

	loopHandle FrameID
	running    bool
	started    bool
	startTS    time.Duration
	lastTS     time.Duration
	bearing    float64
}

func NewController(sched Scheduler, logger logging.Logger) *Controller {
	return &Controller{sched: sched, logger: logging.OrNoop(logger)}
}

// SetObserver registers fn to be called after every applied update.
func (c *Controller) SetObserver(fn func(Frame)) {
	c.observer = fn
}

// Start begins the loop for target. It does nothing when motion is reduced
// or the target is not ready. A loop already running is stopped first.
func (c *Controller) Start(target Target, snap settings.Map) {
	if snap.ReduceMotion || target == nil || !target.Alive() || !target.Ready() {
		return
	}
	c.Stop()

	c.target = target
	c.base = snap.Center
	c.interval = snap.FrameInterval()
	c.started = false
	c.startTS, c.lastTS = 0, 0
	c.running = true
	c.schedule()
	c.logger.Infof("anim", "loop started at %v interval", c.interval)
}

// Stop cancels the pending tick. Safe to call repeatedly.
func (c *Controller) Stop() {
	if c.loopHandle != 0 {
		c.sched.CancelFrame(c.loopHandle)
		c.loopHandle = 0
	}
	if c.running {
		c.logger.Infof("anim", "loop stopped")
	}
	c.running = false
	c.target = nil
}

// Running reports whether a tick is scheduled.
func (c *Controller) Running() bool {
	return c.running
}

func (c *Controller) schedule() {
	c.loopHandle = c.sched.RequestFrame(c.tick)
}

func (c *Controller) tick(now time.Duration) {
	c.loopHandle = 0
	if !c.running {
		return
	}
	if !c.target.Alive() {
		c.logger.Infof("anim", "view destroyed under running loop")
		c.Stop()
		return
	}

	if !c.started {
		c.started = true
		c.startTS = now
		c.lastTS = now
		c.bearing = c.target.Bearing()
		c.schedule()
		return
	}

	elapsed := now - c.lastTS
	if elapsed < c.interval {
		c.schedule()
		return
	}
	c.lastTS = now

	center := c.base.Add(DriftOffset(now - c.startTS))
	c.bearing = normalizeBearing(c.bearing + config.RotateDegreesPerSecond*elapsed.Seconds())

	c.target.EaseTo(center, c.bearing, EaseOptions{
		Duration: time.Duration(float64(c.interval) * config.EaseDurationFactor),
		Easing:   Linear,
	})
	if c.observer != nil {
		c.observer(Frame{At: now, Center: center, Bearing: c.bearing})
	}
	c.schedule()
}

// DriftOffset returns the (lng, lat) offset of the circular drift after
// sinceStart of animation.
func DriftOffset(sinceStart time.Duration) (float64, float64) {
	a := sinceStart.Seconds() * config.DriftSpeed
	return math.Sin(a) * config.DriftRadius, math.Cos(a) * config.DriftRadius
}

// DriftPeriod is the time one full drift circle takes.
func DriftPeriod() time.Duration {
	secs := 2 * math.Pi / config.DriftSpeed
	return time.Duration(secs * float64(time.Second))
}

func normalizeBearing(b float64) float64 {
	b = math.Mod(b, 360)
	if b < 0 {
		b += 360
	}
	return b
}
