package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"mapoverlay/internal/config"
	"mapoverlay/internal/overlay"
)

// renderMap draws items, markers and the open popover into a w x h cell area.
func (m Model) renderMap(w, h int) string {
	c := newCanvas(w, h)
	m.drawGraticule(c)
	for _, it := range m.items {
		p := m.view.Project(it.Coordinate())
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		c.setDot(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	}
	sel := m.ov.Selected()
	for _, v := range m.markers.views {
		if v.Hidden {
			continue
		}
		m.drawMarker(c, v, v.ann == sel)
	}
	lines := c.lines()
	if m.pop.open {
		splice(lines, m.renderPopover(), m.pop.rect.x, m.pop.rect.y)
	}
	return strings.Join(lines, "\n")
}

// drawGraticule dashes the equator, the prime meridian and the antimeridian.
func (m Model) drawGraticule(c *canvas) {
	wd, hd := c.w*config.DotsPerCellX, c.h*config.DotsPerCellY
	eq := m.view.Project(overlay.Coordinate{Lat: 0, Lon: m.view.center.Lon})
	if y := int(math.Floor(eq.Y)); y >= 0 && y < hd {
		for x := 0; x < wd; x += 6 {
			c.drawLine(x, y, x+2, y)
		}
	}
	top := m.view.Project(overlay.Coordinate{Lat: 90, Lon: m.view.center.Lon}).Y
	bottom := m.view.Project(overlay.Coordinate{Lat: -90, Lon: m.view.center.Lon}).Y
	y0 := max(0, int(math.Ceil(top)))
	y1 := min(hd-1, int(math.Floor(bottom)))
	for _, lon := range []float64{0, -180} {
		p := m.view.Project(overlay.Coordinate{Lat: 0, Lon: lon})
		x := int(math.Floor(p.X))
		if x < 0 || x >= wd {
			continue
		}
		for y := y0; y <= y1; y += 6 {
			c.drawLine(x, y, x, min(y+2, y1))
		}
	}
}

// drawMarker draws a label box over a pointer whose tip is the annotation's
// position.
func (m Model) drawMarker(c *canvas, v markerView, selected bool) {
	f := v.Frame()
	x0 := int(math.Floor(f.X / config.DotsPerCellX))
	y0 := int(math.Floor(f.Y / config.DotsPerCellY))
	wc, hc := m.cfg.Marker.WidthCells, m.cfg.Marker.HeightCells
	st := markerStyle(v.ann, selected)

	label := "•"
	if v.ann.IsAggregate() {
		if m.showCounts {
			label = strconv.Itoa(v.ann.Count())
		} else {
			label = "◆"
		}
	}
	inner := lipgloss.PlaceHorizontal(wc-2, lipgloss.Center, ansi.Truncate(label, wc-2, "…"))
	c.put(x0, y0, st.Render("["+inner+"]"))
	for r := 1; r < hc-1; r++ {
		c.put(x0, y0+r, st.Render(strings.Repeat(" ", wc)))
	}
	if hc > 1 {
		c.put(x0+wc/2, y0+hc-1, st.UnsetBackground().Render("▼"))
	}
}

func (m Model) renderPopover() string {
	r := m.pop.rect
	return popoverStyle.
		Width(r.w - 2).Height(r.h - 2).
		MaxWidth(r.w).MaxHeight(r.h).
		Render(m.pop.list.View())
}
