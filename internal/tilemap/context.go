package tilemap

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/papermap-live/internal/mapview"
)

var ErrContextBusy = errors.New("render context already in use")

// Pool allows a single live Context at a time.
type Pool struct {
	mu     sync.Mutex
	active *Context
}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) Acquire(attrs mapview.ContextAttributes) (mapview.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active != nil {
		return nil, ErrContextBusy
	}
	if attrs.PixelRatio <= 0 {
		attrs.PixelRatio = 1
	}
	c := &Context{pool: p, attrs: attrs}
	p.active = c
	return c, nil
}

// Context owns the offscreen layer a map view composites through. It is
// also the view's Surface.
type Context struct {
	pool     *Pool
	attrs    mapview.ContextAttributes
	hints    mapview.Hints
	layer    *ebiten.Image
	released bool
}

func (c *Context) Attributes() mapview.ContextAttributes { return c.attrs }

func (c *Context) SetHints(h mapview.Hints) { c.hints = h }

func (c *Context) Hints() mapview.Hints { return c.hints }

// Lost reports whether the context was released under a live view.
func (c *Context) Lost() bool { return c.released }

func (c *Context) Release() {
	if c.released {
		return
	}
	c.released = true
	if c.layer != nil {
		c.layer.Deallocate()
		c.layer = nil
	}
	c.pool.mu.Lock()
	if c.pool.active == c {
		c.pool.active = nil
	}
	c.pool.mu.Unlock()
}

// Layer returns the offscreen image for a w×h logical viewport, sized by the
// pixel ratio and reallocated when the viewport changes.
func (c *Context) Layer(w, h int) *ebiten.Image {
	if c.released {
		return nil
	}
	lw := int(float64(w) * c.attrs.PixelRatio)
	lh := int(float64(h) * c.attrs.PixelRatio)
	if lw < 1 || lh < 1 {
		return nil
	}
	if c.layer != nil {
		if b := c.layer.Bounds(); b.Dx() == lw && b.Dy() == lh {
			return c.layer
		}
		c.layer.Deallocate()
	}
	c.layer = ebiten.NewImage(lw, lh)
	return c.layer
}
