package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"mapoverlay/internal/overlay"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		if m.fitPending {
			m.fit()
		}
		m.syncView()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			m.view.zoom(zoomStep)
			m.syncView()
			m.status = m.zoomStatus()
		case "-", "_":
			m.view.zoom(1 / zoomStep)
			m.syncView()
			m.status = m.zoomStatus()
		case "f":
			if len(m.items) == 0 {
				m.status = "nothing to fit"
				break
			}
			m.fit()
			m.syncView()
			m.status = "fit: " + formatRegion(m.ov.FitRegion())
		case "c":
			m.showCounts = !m.showCounts
			m.status = fmt.Sprintf("counts: %v", m.showCounts)
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
			m.syncView()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				break
			}
			m.inspectPopup = m.inspectSummary()
			m.status = "inspect popup"
		case "esc":
			switch {
			case m.inspectPopup != "":
				m.inspectPopup = ""
			case m.showAttrs:
				m.showAttrs = false
			case m.pop.open:
				m.closePopover()
				m.status = "popover closed"
			}
		case "enter":
			switch {
			case m.showSidebar:
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			case m.pop.open:
				m.activate()
			}
		case "up", "k":
			m.vertical(msg, -1)
		case "down", "j":
			m.vertical(msg, 1)
		case "left":
			m.view.pan(-2, 0)
			m.syncView()
		case "right":
			m.view.pan(2, 0)
			m.syncView()
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if err := m.loadWKT(w); err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// vertical routes up/down to whatever has focus: the sidebar, the
// attribute table, the popover rows, or else the map.
func (m *Model) vertical(msg tea.KeyMsg, dir int) {
	switch {
	case m.showSidebar:
	case m.showAttrs:
		m.tbl, _ = m.tbl.Update(msg)
	case m.pop.open:
		if dir < 0 {
			m.pop.list.CursorUp()
		} else {
			m.pop.list.CursorDown()
		}
	default:
		m.view.pan(0, dir)
		m.syncView()
	}
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	lo := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}
	cx, cy := msg.X-lo.originX, msg.Y-lo.originY
	if cx < 0 || cx >= lo.mapW || cy < 0 || cy >= lo.mapH {
		m.hoverHasGeo = false
		return
	}
	m.hoverHasGeo = true
	m.hoverGeo = m.view.Unproject(cellPoint(cx, cy))
	if m.showAttrs || m.pasteMode {
		return
	}
	inPop := m.pop.open && m.pop.rect.contains(cx, cy)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if inPop {
			m.pop.list.CursorUp()
			return
		}
		m.view.zoom(zoomStep)
		m.syncView()
		m.status = m.zoomStatus()
	case msg.Button == tea.MouseButtonWheelDown:
		if inPop {
			m.pop.list.CursorDown()
			return
		}
		m.view.zoom(1 / zoomStep)
		m.syncView()
		m.status = m.zoomStatus()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.tap(cx, cy, inPop)
	}
}

// tap handles a click on map cell (cx, cy). Clicks inside the popover are
// interactive hits and never reach the markers below it.
func (m *Model) tap(cx, cy int, inPop bool) {
	v, ok := m.markers.hit(cellPoint(cx, cy), overlay.HostHit[markerView]{Interactive: inPop})
	switch {
	case inPop:
		m.clickPopover(cx, cy)
	case ok:
		m.openPopover(v.ann)
	case m.pop.open:
		m.closePopover()
		m.status = "popover closed"
	}
}

func (m Model) zoomStatus() string {
	s := m.view.VisibleRegion().Span
	return fmt.Sprintf("zoom: %.4f° x %.4f°", s.LatDelta, s.LonDelta)
}
