package tilemap

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/papermap-live/internal/anim"
	"github.com/iburimskiy/papermap-live/internal/settings"
)

func TestBearingDelta(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 10, 10},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{90, 90, 0},
	}
	for _, tt := range tests {
		if got := bearingDelta(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("bearingDelta(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCameraEasesLinearly(t *testing.T) {
	c := newCamera(pose{center: settings.LngLat{Lng: 0, Lat: 0}, bearing: 0})
	opts := anim.EaseOptions{Duration: time.Second, Easing: anim.Linear}
	c.easeTo(0, pose{center: settings.LngLat{Lng: 1, Lat: 2}, bearing: 40}, opts)

	mid := c.at(500 * time.Millisecond)
	if math.Abs(mid.center.Lng-0.5) > 1e-9 || math.Abs(mid.center.Lat-1) > 1e-9 {
		t.Errorf("midpoint center = %+v", mid.center)
	}
	if math.Abs(mid.bearing-20) > 1e-9 {
		t.Errorf("midpoint bearing = %v", mid.bearing)
	}
	if end := c.at(2 * time.Second); end != c.to {
		t.Errorf("end pose = %+v, want %+v", end, c.to)
	}
}

func TestCameraShortArcAcrossNorth(t *testing.T) {
	c := newCamera(pose{bearing: 359})
	c.easeTo(0, pose{bearing: 361}, anim.EaseOptions{Duration: time.Second, Easing: anim.Linear})

	if c.to.bearing != 1 {
		t.Errorf("target bearing = %v, want 1", c.to.bearing)
	}
	if got := c.at(500 * time.Millisecond).bearing; got != 0 {
		t.Errorf("bearing halfway = %v, want 0", got)
	}
}

func TestCameraRetargetStartsFromCurrentPose(t *testing.T) {
	c := newCamera(pose{})
	opts := anim.EaseOptions{Duration: time.Second, Easing: anim.Linear}
	c.easeTo(0, pose{bearing: 100}, opts)
	c.easeTo(500*time.Millisecond, pose{bearing: 100}, opts)

	if math.Abs(c.from.bearing-50) > 1e-9 {
		t.Errorf("retarget started at %v, want 50", c.from.bearing)
	}
}

func TestCameraJumpTo(t *testing.T) {
	c := newCamera(pose{})
	c.easeTo(0, pose{bearing: 90}, anim.EaseOptions{Duration: time.Second})
	c.jumpTo(pose{bearing: -30})
	if got := c.at(0); got.bearing != 330 {
		t.Errorf("bearing after jump = %v, want 330", got.bearing)
	}
}
