package tilemap

import (
	"math"
	"sort"

	"github.com/iburimskiy/papermap-live/internal/settings"
)

const (
	TileSize = 256
	maxLat   = 85.05112878
)

type TileKey struct {
	Z, X, Y int
}

// Parent returns the tile one zoom level up that contains k.
func (k TileKey) Parent() TileKey {
	return TileKey{Z: k.Z - 1, X: k.X >> 1, Y: k.Y >> 1}
}

// Project converts a coordinate to Web-Mercator world pixels at zoom z.
func Project(p settings.LngLat, z float64) (float64, float64) {
	world := TileSize * math.Exp2(z)
	lat := math.Max(-maxLat, math.Min(maxLat, p.Lat))
	x := (p.Lng + 180) / 360 * world
	sin := math.Sin(lat * math.Pi / 180)
	y := (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * world
	return x, y
}

// Unproject is the inverse of Project.
func Unproject(x, y, z float64) settings.LngLat {
	world := TileSize * math.Exp2(z)
	lng := x/world*360 - 180
	n := math.Pi - 2*math.Pi*y/world
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return settings.LngLat{Lng: lng, Lat: lat}
}

func clampZoom(z, min, max float64) float64 {
	if math.IsNaN(z) {
		return min
	}
	return math.Max(min, math.Min(max, z))
}

// VisibleTiles lists the tiles covering a w×h device-pixel viewport at any
// bearing, nearest to the center first. Tiles never wrap around the
// antimeridian.
func VisibleTiles(center settings.LngLat, zoom, w, h, pixelRatio float64) []TileKey {
	if w <= 0 || h <= 0 {
		return nil
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	iz := int(math.Floor(zoom))
	if iz < 0 {
		iz = 0
	}
	scale := math.Exp2(zoom-float64(iz)) * pixelRatio
	cx, cy := Project(center, float64(iz))
	r := math.Hypot(w, h) / 2 / scale

	n := 1 << iz
	x0 := clampInt(int(math.Floor((cx-r)/TileSize)), 0, n-1)
	x1 := clampInt(int(math.Floor((cx+r)/TileSize)), 0, n-1)
	y0 := clampInt(int(math.Floor((cy-r)/TileSize)), 0, n-1)
	y1 := clampInt(int(math.Floor((cy+r)/TileSize)), 0, n-1)

	keys := make([]TileKey, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			keys = append(keys, TileKey{Z: iz, X: x, Y: y})
		}
	}
	dist := func(k TileKey) float64 {
		return math.Hypot(float64(k.X)*TileSize+TileSize/2-cx, float64(k.Y)*TileSize+TileSize/2-cy)
	}
	sort.SliceStable(keys, func(i, j int) bool { return dist(keys[i]) < dist(keys[j]) })
	return keys
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
