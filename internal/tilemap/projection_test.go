package tilemap

import (
	"math"
	"testing"

	"github.com/iburimskiy/papermap-live/internal/settings"
)

func TestProjectRoundTrip(t *testing.T) {
	points := []settings.LngLat{
		{Lng: 55.2708, Lat: 25.2048},
		{Lng: -74.006, Lat: 40.7128},
		{Lng: 0, Lat: 0},
		{Lng: 139.6503, Lat: 35.6762},
	}
	for _, p := range points {
		x, y := Project(p, 12)
		got := Unproject(x, y, 12)
		if math.Abs(got.Lng-p.Lng) > 1e-9 || math.Abs(got.Lat-p.Lat) > 1e-9 {
			t.Errorf("round trip of %+v = %+v", p, got)
		}
	}
}

func TestProjectOrigin(t *testing.T) {
	x, y := Project(settings.LngLat{}, 0)
	if x != TileSize/2 || math.Abs(y-TileSize/2) > 1e-9 {
		t.Errorf("origin projects to (%v, %v), want (128, 128)", x, y)
	}
}

func TestProjectClampsPoles(t *testing.T) {
	_, y := Project(settings.LngLat{Lat: 90}, 0)
	if math.IsInf(y, 0) || math.IsNaN(y) || y > 0.001 || y < -0.001 {
		t.Errorf("north pole projects to y=%v", y)
	}
}

func TestVisibleTilesNearestFirst(t *testing.T) {
	center := settings.LngLat{Lng: 55.2708, Lat: 25.2048}
	keys := VisibleTiles(center, 12, 1280, 800, 1)
	if len(keys) == 0 {
		t.Fatal("no visible tiles")
	}
	cx, cy := Project(center, 12)
	want := TileKey{Z: 12, X: int(cx / TileSize), Y: int(cy / TileSize)}
	if keys[0] != want {
		t.Errorf("first tile = %+v, want %+v", keys[0], want)
	}
	seen := map[TileKey]bool{}
	for _, k := range keys {
		if k.Z != 12 {
			t.Fatalf("tile %+v has wrong zoom", k)
		}
		if seen[k] {
			t.Fatalf("tile %+v listed twice", k)
		}
		seen[k] = true
	}
}

func TestVisibleTilesCoversRotation(t *testing.T) {
	// A 1280x800 viewport rotated arbitrarily fits in a circle of radius
	// ~755px. At an integer zoom that spans at least 6 tiles on each axis.
	keys := VisibleTiles(settings.LngLat{Lng: 10, Lat: 10}, 10, 1280, 800, 1)
	xs, ys := map[int]bool{}, map[int]bool{}
	for _, k := range keys {
		xs[k.X] = true
		ys[k.Y] = true
	}
	if len(xs) < 6 || len(ys) < 6 {
		t.Errorf("covered %d columns and %d rows, want at least 6 each", len(xs), len(ys))
	}
}

func TestVisibleTilesNoWorldCopies(t *testing.T) {
	keys := VisibleTiles(settings.LngLat{Lng: 179.99, Lat: 0}, 2, 1280, 800, 1)
	for _, k := range keys {
		if k.X < 0 || k.X >= 4 || k.Y < 0 || k.Y >= 4 {
			t.Errorf("tile %+v is outside the world", k)
		}
	}
}

func TestVisibleTilesEmptyViewport(t *testing.T) {
	if keys := VisibleTiles(settings.LngLat{}, 10, 0, 800, 1); keys != nil {
		t.Errorf("got %d tiles for an empty viewport", len(keys))
	}
}

func TestVisibleTilesPixelRatio(t *testing.T) {
	c := settings.LngLat{Lng: 55.27, Lat: 25.2}
	lo := VisibleTiles(c, 12, 1280, 800, 1)
	hi := VisibleTiles(c, 12, 2560, 1600, 2)
	if len(lo) != len(hi) {
		t.Errorf("device pixels at ratio 2 cover %d tiles, logical cover %d", len(hi), len(lo))
	}
}

func TestTileKeyParent(t *testing.T) {
	got := TileKey{Z: 12, X: 2677, Y: 1755}.Parent()
	want := TileKey{Z: 11, X: 1338, Y: 877}
	if got != want {
		t.Errorf("Parent() = %+v, want %+v", got, want)
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{4, 8},
		{12, 12},
		{20, 14},
		{math.NaN(), 8},
	}
	for _, tt := range tests {
		if got := clampZoom(tt.in, 8, 14); got != tt.want {
			t.Errorf("clampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPanByFollowsDrag(t *testing.T) {
	c := settings.LngLat{Lng: 55.27, Lat: 25.2}
	got := panBy(c, 100, 0, 12, 0)
	if got.Lng >= c.Lng {
		t.Errorf("dragging right should move the center west, got %v from %v", got.Lng, c.Lng)
	}
	if math.Abs(got.Lat-c.Lat) > 1e-9 {
		t.Errorf("horizontal drag changed latitude to %v", got.Lat)
	}

	// Rotated by 90 degrees, a rightward screen drag is a downward world
	// drag, so the center moves north.
	rot := panBy(c, 100, 0, 12, 90)
	if rot.Lat <= c.Lat || math.Abs(rot.Lng-c.Lng) > 1e-9 {
		t.Errorf("rotated drag moved center to %+v", rot)
	}
}
