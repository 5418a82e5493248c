package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}

	header := titleStyle.Render(" mapoverlay ─ terminal map overlay ")
	header = lipgloss.NewStyle().Width(lo.contentW).Padding(0).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		// Render attributes table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lo.contentW-6)
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(lo.mapW)
		m.ta.SetHeight(min(lo.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Inspect popup floats over the top-left of the map
	if m.inspectPopup != "" && !m.showAttrs {
		w := min(lipgloss.Width(m.inspectPopup)+4, max(20, min(64, lo.mapW-2)))
		box := boxStyle.Width(w - 2).Render(m.inspectPopup)
		lines := strings.Split(body, "\n")
		splice(lines, box, lo.originX, 0)
		body = strings.Join(lines, "\n")
	}

	// Footer: status with mouse coords at the right, then help
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lat=%.5f lon=%.5f  ", m.hoverGeo.Lat, m.hoverGeo.Lon))
	}
	spacerW := max(0, lo.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	statusLine := ansi.Truncate(status+strings.Repeat(" ", spacerW)+coords, lo.contentW, "…")
	footer := lipgloss.JoinVertical(lipgloss.Left, statusLine, ansi.Truncate(m.renderHelp(), lo.contentW, "…"))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).MaxHeight(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"f fit",
		"click marker",
		"Enter select",
		"Esc close",
		"c counts",
		"Tab files",
		"p paste",
		"a attrs",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
