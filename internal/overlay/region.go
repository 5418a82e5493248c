package overlay

import (
	"math"
	"sort"
)

const (
	// SpanPaddingFactor enlarges computed spans so points do not sit on the edge.
	SpanPaddingFactor = 1.20
	// MinRegionSpan is the smallest lat/lon span, in degrees, of a bounding region.
	MinRegionSpan = 0.01
	// MinRectSize is the smallest width/height of a bounding rect, in projection units.
	MinRectSize = 1000.0
)

// Span is a region's extent in degrees.
type Span struct {
	LatDelta float64
	LonDelta float64
}

// Region is a geographic rectangle given by its centre and span.
type Region struct {
	Center Coordinate
	Span   Span
}

// InvalidRegion is returned when there is nothing to bound.
var InvalidRegion = Region{
	Center: Coordinate{Lat: math.NaN(), Lon: math.NaN()},
	Span:   Span{LatDelta: math.NaN(), LonDelta: math.NaN()},
}

func (r Region) IsValid() bool {
	return !math.IsNaN(r.Center.Lat) && !math.IsNaN(r.Center.Lon) &&
		!math.IsNaN(r.Span.LatDelta) && !math.IsNaN(r.Span.LonDelta)
}

// Contains reports whether c lies inside r, honouring longitude wraparound.
func (r Region) Contains(c Coordinate) bool {
	if !r.IsValid() {
		return false
	}
	if math.Abs(c.Lat-r.Center.Lat) > r.Span.LatDelta/2+1e-9 {
		return false
	}
	if r.Span.LonDelta >= 360 {
		return true
	}
	return math.Abs(WrapLongitude(c.Lon-r.Center.Lon)) <= r.Span.LonDelta/2+1e-9
}

// Corners returns the north-west, north-east, south-west and south-east corners.
func (r Region) Corners() [4]Coordinate {
	n := math.Min(r.Center.Lat+r.Span.LatDelta/2, 90)
	s := math.Max(r.Center.Lat-r.Span.LatDelta/2, -90)
	w := WrapLongitude(r.Center.Lon - r.Span.LonDelta/2)
	e := WrapLongitude(r.Center.Lon + r.Span.LonDelta/2)
	return [4]Coordinate{{n, w}, {n, e}, {s, w}, {s, e}}
}

// WrapLongitude maps lon into [-180, 180).
func WrapLongitude(lon float64) float64 {
	return wrap(lon+180, 360) - 180
}

// wrap maps v into [0, width).
func wrap(v, width float64) float64 {
	v = math.Mod(v, width)
	if v < 0 {
		v += width
	}
	if v >= width {
		v = 0
	}
	return v
}

// minimalArc returns the start and length of the shortest arc of a circle
// of circumference width that covers all values. values are normalised into
// [0, width) and sorted in place.
func minimalArc(values []float64, width float64) (start, length float64) {
	n := len(values)
	for i, v := range values {
		values[i] = wrap(v, width)
	}
	sort.Float64s(values)
	doubled := make([]float64, 2*n)
	copy(doubled, values)
	for i, v := range values {
		doubled[n+i] = v + width
	}
	start, length = doubled[0], doubled[n-1]-doubled[0]
	for i := 1; i < n; i++ {
		if l := doubled[i+n-1] - doubled[i]; l < length {
			start, length = doubled[i], l
		}
	}
	return start, length
}

// BoundingRegion returns the smallest padded region containing all valid
// points. Longitude is treated as circular, so points either side of the
// antimeridian give a narrow region centred near ±180°. Empty input (after
// dropping invalid coordinates) yields InvalidRegion.
func BoundingRegion(points []Coordinate) Region {
	lons := make([]float64, 0, len(points))
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if !p.IsValid() {
			continue
		}
		lons = append(lons, p.Lon+180)
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
	}
	if len(lons) == 0 {
		return InvalidRegion
	}

	start, arc := minimalArc(lons, 360)
	centerLon := WrapLongitude(start + arc/2 - 180)
	lonSpan := math.Min(math.Max(arc*SpanPaddingFactor, MinRegionSpan), 360)

	centerLat := (minLat + maxLat) / 2
	latSpan := math.Max((maxLat-minLat)*SpanPaddingFactor, MinRegionSpan)
	south, north := centerLat-latSpan/2, centerLat+latSpan/2
	if south < -90 || north > 90 {
		// keep the padded extent on the globe
		south = math.Max(south, -90)
		north = math.Min(north, 90)
		if north-south < MinRegionSpan {
			if north >= 90 {
				south = 90 - MinRegionSpan
			} else {
				north = -90 + MinRegionSpan
			}
		}
		centerLat, latSpan = (north+south)/2, north-south
	}

	return Region{
		Center: Coordinate{Lat: centerLat, Lon: centerLon},
		Span:   Span{LatDelta: latSpan, LonDelta: lonSpan},
	}
}

// MapPoint is a position in a flat projection whose X axis wraps at the world width.
type MapPoint struct {
	X float64
	Y float64
}

// MapRect is a rectangle in projection units.
type MapRect struct {
	X float64
	Y float64
	W float64
	H float64
}

// InvalidMapRect is returned when there is nothing to bound.
var InvalidMapRect = MapRect{X: math.NaN(), Y: math.NaN(), W: math.NaN(), H: math.NaN()}

func (r MapRect) IsValid() bool {
	return !math.IsNaN(r.X) && !math.IsNaN(r.Y) && !math.IsNaN(r.W) && !math.IsNaN(r.H)
}

// Contains reports whether p lies inside r, with X taken modulo worldWidth.
func (r MapRect) Contains(p MapPoint, worldWidth float64) bool {
	if !r.IsValid() || p.Y < r.Y-1e-9 || p.Y > r.Y+r.H+1e-9 {
		return false
	}
	if r.W >= worldWidth {
		return true
	}
	return wrap(p.X-r.X, worldWidth) <= r.W+1e-9
}

// BoundingRect is BoundingRegion for projected points. X wraps at worldWidth;
// the returned origin X is in [0, worldWidth).
//
// Each dimension smaller than MinRectSize is grown to MinRectSize around the
// centre on its own. The result is not forced square: a thin spread keeps its
// long side, so every input point stays inside. Only when both sides are short
// is the result the MinRectSize square.
func BoundingRect(points []MapPoint, worldWidth float64) MapRect {
	if !(worldWidth > 0) {
		return InvalidMapRect
	}
	xs := make([]float64, 0, len(points))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		xs = append(xs, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	if len(xs) == 0 {
		return InvalidMapRect
	}

	start, arc := minimalArc(xs, worldWidth)
	cx := start + arc/2
	cy := (minY + maxY) / 2
	w := math.Min(math.Max(arc*SpanPaddingFactor, MinRectSize), worldWidth)
	h := math.Max((maxY-minY)*SpanPaddingFactor, MinRectSize)
	return MapRect{X: wrap(cx-w/2, worldWidth), Y: cy - h/2, W: w, H: h}
}
