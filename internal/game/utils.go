package game

import (
	"fmt"
	"time"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// blurScale is the downsampling factor that approximates a gaussian blur of
// the given radius in pixels. A radius of 0 means no blur.
func blurScale(radius float64) float64 {
	if radius <= 0 {
		return 1
	}
	return 1 / (1 + radius/2)
}

// fadeIn is the overlay opacity elapsed into its entrance.
func fadeIn(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(duration))
}
