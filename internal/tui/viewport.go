package tui

import (
	"math"

	"mapoverlay/internal/config"
	"mapoverlay/internal/overlay"
)

const (
	minDegPerDot = 1e-6
	maxDegPerDot = 360.0 / 32
	zoomStep     = 1.2

	// worldSize is the Web Mercator world width used for projected bounds.
	worldSize  = 1 << 28
	maxMercLat = 85.05112878
)

// viewport is an equirectangular projection of the map area, in braille dots.
// Longitudes are measured relative to the centre and wrapped, so the map
// scrolls across the antimeridian without a seam.
type viewport struct {
	center    overlay.Coordinate
	degPerDot float64
	w, h      float64
}

func newViewport() viewport {
	return viewport{degPerDot: 360.0 / 160, w: 160, h: 80}
}

func (v viewport) Project(c overlay.Coordinate) overlay.Point {
	dx := overlay.WrapLongitude(c.Lon - v.center.Lon)
	return overlay.Point{
		X: v.w/2 + dx/v.degPerDot,
		Y: v.h/2 + (v.center.Lat-c.Lat)/v.degPerDot,
	}
}

func (v viewport) Unproject(p overlay.Point) overlay.Coordinate {
	lat := v.center.Lat - (p.Y-v.h/2)*v.degPerDot
	return overlay.Coordinate{
		Lat: math.Max(-90, math.Min(90, lat)),
		Lon: overlay.WrapLongitude(v.center.Lon + (p.X-v.w/2)*v.degPerDot),
	}
}

func (v viewport) ViewportSize() overlay.Size { return overlay.Size{W: v.w, H: v.h} }

func (v viewport) VisibleRegion() overlay.Region {
	return overlay.Region{
		Center: v.center,
		Span: overlay.Span{
			LatDelta: math.Min(v.h*v.degPerDot, 180),
			LonDelta: math.Min(v.w*v.degPerDot, 360),
		},
	}
}

// resize sets the map area in terminal cells.
func (v *viewport) resize(cols, rows int) {
	v.w = float64(cols * config.DotsPerCellX)
	v.h = float64(rows * config.DotsPerCellY)
}

// fit centres r and picks the scale that shows all of it.
func (v *viewport) fit(r overlay.Region) {
	if !r.IsValid() || v.w <= 0 || v.h <= 0 {
		return
	}
	v.center = r.Center
	v.setScale(math.Max(r.Span.LatDelta/v.h, r.Span.LonDelta/v.w))
}

// zoom scales by f; f > 1 zooms in.
func (v *viewport) zoom(f float64) {
	v.setScale(v.degPerDot / f)
}

func (v *viewport) setScale(d float64) {
	v.degPerDot = math.Max(minDegPerDot, math.Min(maxDegPerDot, d))
}

// pan moves the centre by whole cells; positive dy moves south.
func (v *viewport) pan(dx, dy int) {
	v.center.Lon = overlay.WrapLongitude(v.center.Lon + float64(dx*config.DotsPerCellX)*v.degPerDot)
	lat := v.center.Lat - float64(dy*config.DotsPerCellY)*v.degPerDot
	v.center.Lat = math.Max(-90, math.Min(90, lat))
}

// cellPoint is the dot at the middle of a map cell.
func cellPoint(cx, cy int) overlay.Point {
	return overlay.Point{
		X: float64(cx*config.DotsPerCellX) + config.DotsPerCellX/2,
		Y: float64(cy*config.DotsPerCellY) + config.DotsPerCellY/2,
	}
}

// worldPoint is c in Web Mercator world units.
func worldPoint(c overlay.Coordinate) overlay.MapPoint {
	lat := math.Max(-maxMercLat, math.Min(maxMercLat, c.Lat)) * math.Pi / 180
	y := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2
	return overlay.MapPoint{
		X: (c.Lon + 180) / 360 * worldSize,
		Y: y * worldSize,
	}
}
