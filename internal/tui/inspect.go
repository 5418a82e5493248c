package tui

import (
	"fmt"
	"strings"

	"mapoverlay/internal/overlay"
)

// inspectSummary describes the dataset and the current view.
func (m Model) inspectSummary() string {
	if len(m.items) == 0 {
		return "no dataset loaded"
	}
	fitR := m.ov.FitRegion()
	visR := m.view.VisibleRegion()

	pts := make([]overlay.MapPoint, 0, len(m.items))
	visible := 0
	for _, it := range m.items {
		c := it.Coordinate()
		pts = append(pts, worldPoint(c))
		if visR.Contains(c) {
			visible++
		}
	}
	rect := overlay.BoundingRect(pts, worldSize)

	aggregates := 0
	for _, v := range m.markers.views {
		if v.ann.IsAggregate() {
			aggregates++
		}
	}
	name := m.source
	if name == "" {
		name = "<unsaved>"
	}
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("items: %d  visible: %d", len(m.items), visible),
		fmt.Sprintf("markers: %d  aggregates: %d", len(m.markers.views), aggregates),
		"fit: " + formatRegion(fitR),
		"view: " + formatRegion(visR),
		fmt.Sprintf("world rect: x=%.0f y=%.0f w=%.0f h=%.0f", rect.X, rect.Y, rect.W, rect.H),
		fmt.Sprintf("signature: %016x", m.ov.Signature()),
	}
	return strings.Join(meta, "\n")
}

func formatRegion(r overlay.Region) string {
	if !r.IsValid() {
		return "invalid"
	}
	return fmt.Sprintf("center %.5f,%.5f span %.5f x %.5f",
		r.Center.Lat, r.Center.Lon, r.Span.LatDelta, r.Span.LonDelta)
}
