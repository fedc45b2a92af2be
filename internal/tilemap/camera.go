package tilemap

import (
	"math"
	"time"

	"github.com/iburimskiy/papermap-live/internal/anim"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

type pose struct {
	center  settings.LngLat
	bearing float64
}

// camera interpolates between the pose on screen and the last requested
// target.
type camera struct {
	from  pose
	to    pose
	start time.Duration
	opts  anim.EaseOptions
}

func newCamera(p pose) camera {
	return camera{from: p, to: p}
}

// easeTo starts a transition from wherever the camera is at now.
func (c *camera) easeTo(now time.Duration, target pose, opts anim.EaseOptions) {
	c.from = c.at(now)
	c.to = pose{center: target.center, bearing: wrapBearing(target.bearing)}
	c.start = now
	c.opts = opts
}

func (c *camera) jumpTo(p pose) {
	p.bearing = wrapBearing(p.bearing)
	c.from, c.to = p, p
	c.opts = anim.EaseOptions{}
}

func (c *camera) at(now time.Duration) pose {
	t := c.opts.Progress(c.start, now)
	if t >= 1 {
		return c.to
	}
	return pose{
		center: settings.LngLat{
			Lng: c.from.center.Lng + (c.to.center.Lng-c.from.center.Lng)*t,
			Lat: c.from.center.Lat + (c.to.center.Lat-c.from.center.Lat)*t,
		},
		bearing: wrapBearing(c.from.bearing + bearingDelta(c.from.bearing, c.to.bearing)*t),
	}
}

// bearingDelta is the signed shortest rotation from a to b, in (-180, 180].
func bearingDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

func wrapBearing(b float64) float64 {
	b = math.Mod(b, 360)
	if b < 0 {
		b += 360
	}
	return b
}
