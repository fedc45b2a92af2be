package anim

import "time"

// Easing maps transition progress [0,1] to eased progress [0,1].
type Easing func(progress float64) float64

// Linear is constant velocity with no acceleration curve.
var Linear Easing = func(t float64) float64 { return t }

// EaseOptions configures a camera transition.
type EaseOptions struct {
	Duration time.Duration
	Easing   Easing // nil means Linear
}

// Progress returns the eased progress of a transition that began at start,
// clamped to [0,1].
func (o EaseOptions) Progress(start, now time.Duration) float64 {
	if o.Duration <= 0 || now >= start+o.Duration {
		return 1
	}
	if now <= start {
		return 0
	}
	p := float64(now-start) / float64(o.Duration)
	if o.Easing != nil {
		p = o.Easing(p)
	}
	return p
}
