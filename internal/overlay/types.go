package overlay

import "math"

// Coordinate is a geographic position in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// IsValid reports whether c is a finite coordinate inside the lat/lon domain.
func (c Coordinate) IsValid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Point is a position in viewport (screen) units, y growing downwards.
type Point struct {
	X float64
	Y float64
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) dist2(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Size is a width/height pair in viewport units.
type Size struct {
	W float64
	H float64
}

// Insets are the viewport margins reserved for chrome.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Rect is an axis-aligned frame in viewport units.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }
func (r Rect) MidX() float64 { return r.X + r.W/2 }

// Contains reports whether p lies inside r (max edges exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersects reports whether r and o overlap with a non-empty area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Anchor is the marker tip: bottom-centre of the frame.
func (r Rect) Anchor() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H}
}

func (r Rect) finite() bool {
	for _, v := range [...]float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Projector converts between geographic coordinates and viewport points.
// It is supplied by the host and reflects the current viewport.
type Projector interface {
	Project(c Coordinate) Point
	Unproject(p Point) Coordinate
	ViewportSize() Size
	VisibleRegion() Region
}
