package game

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/papermap-live/internal/anim"
)

func TestFrameTapSnapshotOrder(t *testing.T) {
	tap := newFrameTap(4)
	for i := 1; i <= 6; i++ {
		tap.record(anim.Frame{At: time.Duration(i)})
	}
	got := tap.snapshot(10)
	if len(got) != 4 {
		t.Fatalf("snapshot has %d frames, want 4", len(got))
	}
	for i, f := range got {
		if want := time.Duration(i + 3); f.At != want {
			t.Errorf("frame %d at %v, want %v", i, f.At, want)
		}
	}
}

func TestFrameTapPartialBuffer(t *testing.T) {
	tap := newFrameTap(8)
	if _, ok := tap.latest(); ok {
		t.Fatal("empty tap has a latest frame")
	}
	tap.record(anim.Frame{At: 1, Bearing: 10})
	tap.record(anim.Frame{At: 2, Bearing: 20})
	if got := tap.snapshot(8); len(got) != 2 {
		t.Errorf("snapshot has %d frames, want 2", len(got))
	}
	if f, _ := tap.latest(); f.Bearing != 20 {
		t.Errorf("latest bearing = %v", f.Bearing)
	}
	tap.reset()
	if got := tap.snapshot(8); len(got) != 0 {
		t.Errorf("reset kept %d frames", len(got))
	}
}

func TestFrameTapRate(t *testing.T) {
	tap := newFrameTap(512)
	// 30 fps for three seconds
	interval := time.Second / 30
	var now time.Duration
	for i := 0; i < 90; i++ {
		now = time.Duration(i) * interval
		tap.record(anim.Frame{At: now})
	}
	if got := tap.rate(now, time.Second); math.Abs(got-30) > 1 {
		t.Errorf("rate = %v, want ~30", got)
	}
	if got := tap.rate(now+10*time.Second, time.Second); got != 0 {
		t.Errorf("rate after idle = %v, want 0", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{10 * time.Second, "00:10"},
		{75 * time.Second, "01:15"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBlurScale(t *testing.T) {
	if blurScale(0) != 1 {
		t.Error("zero blur downsamples")
	}
	prev := 1.0
	for r := 3.0; r <= 15; r += 3 {
		s := blurScale(r)
		if s >= prev || s <= 0 {
			t.Errorf("blurScale(%v) = %v, previous %v", r, s, prev)
		}
		prev = s
	}
}

func TestFadeIn(t *testing.T) {
	if fadeIn(0, time.Second) != 0 || fadeIn(500*time.Millisecond, time.Second) != 0.5 || fadeIn(2*time.Second, time.Second) != 1 {
		t.Error("fadeIn does not ramp linearly")
	}
	if fadeIn(0, 0) != 1 {
		t.Error("zero fade is not opaque")
	}
}
