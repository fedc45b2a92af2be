package settings

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type Location struct {
	Center LngLat
	Zoom   float64
	Coords string
}

var locations = map[string]Location{
	"DUBAI":       named(55.2708, 25.2048),
	"NEW YORK":    named(-74.0060, 40.7128),
	"TOKYO":       named(139.6917, 35.6762),
	"LONDON":      named(-0.1278, 51.5074),
	"PARIS":       named(2.3522, 48.8566),
	"SINGAPORE":   named(103.8198, 1.3521),
	"HONG KONG":   named(114.1694, 22.3193),
	"LOS ANGELES": named(-118.2437, 34.0522),
	"INDIA":       named(77.2090, 28.6139),
}

func named(lng, lat float64) Location {
	c := LngLat{Lng: lng, Lat: lat}
	return Location{Center: c, Zoom: 7, Coords: FormatCoords(c)}
}

// LookupLocation is case-insensitive.
func LookupLocation(name string) (Location, bool) {
	loc, ok := locations[strings.ToUpper(strings.TrimSpace(name))]
	return loc, ok
}

// LocationNames returns the table keys in alphabetical order.
func LocationNames() []string {
	names := make([]string, 0, len(locations))
	for name := range locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithLocation moves the snapshot to a named location. Unknown names leave
// the snapshot untouched and report false.
func (s Snapshot) WithLocation(name string) (Snapshot, bool) {
	loc, ok := LookupLocation(name)
	if !ok {
		return s, false
	}
	s.City = strings.ToUpper(strings.TrimSpace(name))
	s.Center = loc.Center
	s.Zoom = loc.Zoom
	s.Coords = loc.Coords
	return s, true
}

// FormatCoords renders a coordinate the way the poster prints it, for
// example "25.2048° N, 55.2708° E".
func FormatCoords(p LngLat) string {
	ns, ew := "N", "E"
	if p.Lat < 0 {
		ns = "S"
	}
	if p.Lng < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f° %s, %.4f° %s", math.Abs(p.Lat), ns, math.Abs(p.Lng), ew)
}
