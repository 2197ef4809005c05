// Package geo provides the bounding-box arithmetic behind viewport focus.
// Bounds are orb.Bound values in degrees: X is longitude, Y is latitude.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// World limits.
const (
	MinLon = -180.0
	MaxLon = 180.0
	MinLat = -90.0
	MaxLat = 90.0
)

// Feature size thresholds in degrees.
const (
	LargeLonSpan        = 60.0
	LargeLatSpan        = 30.0
	AntimeridianLonSpan = 300.0
)

// Width returns the longitude span of b.
func Width(b orb.Bound) float64 {
	return b.Max[0] - b.Min[0]
}

// Height returns the latitude span of b.
func Height(b orb.Bound) float64 {
	return b.Max[1] - b.Min[1]
}

// BoxAround returns a w x h box centered on c.
func BoxAround(c orb.Point, w, h float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{c[0] - w/2, c[1] - h/2},
		Max: orb.Point{c[0] + w/2, c[1] + h/2},
	}
}

// Pad scales b around its center by factor. Neither side of the result is
// smaller than minSpan.
func Pad(b orb.Bound, factor, minSpan float64) orb.Bound {
	w := math.Max(Width(b)*factor, minSpan)
	h := math.Max(Height(b)*factor, minSpan)
	return BoxAround(b.Center(), w, h)
}

// Shift translates b by dx degrees of longitude and dy degrees of latitude.
func Shift(b orb.Bound, dx, dy float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] + dx, b.Min[1] + dy},
		Max: orb.Point{b.Max[0] + dx, b.Max[1] + dy},
	}
}

// ClampWorld restricts every corner of b to valid longitude/latitude.
func ClampWorld(b orb.Bound) orb.Bound {
	return orb.Bound{
		Min: orb.Point{ClampF(b.Min[0], MinLon, MaxLon), ClampF(b.Min[1], MinLat, MaxLat)},
		Max: orb.Point{ClampF(b.Max[0], MinLon, MaxLon), ClampF(b.Max[1], MinLat, MaxLat)},
	}
}

// IsLarge reports whether b spans more than 60 degrees of longitude or
// 30 degrees of latitude.
func IsLarge(b orb.Bound) bool {
	return Width(b) > LargeLonSpan || Height(b) > LargeLatSpan
}

// CrossesAntimeridian reports whether b is an artifact of a feature that
// wraps around 180 degrees, i.e. spans more than 300 degrees of longitude.
func CrossesAntimeridian(b orb.Bound) bool {
	return Width(b) > AntimeridianLonSpan
}

// Centroid returns the area-weighted centroid of g, falling back to the
// center of its bound for degenerate geometry.
func Centroid(g orb.Geometry) orb.Point {
	if g == nil {
		return orb.Point{}
	}
	c, _ := planar.CentroidArea(g)
	if math.IsNaN(c[0]) || math.IsNaN(c[1]) {
		return g.Bound().Center()
	}
	return c
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
