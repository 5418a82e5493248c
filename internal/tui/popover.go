package tui

import (
	"fmt"
	"log/slog"
	"math"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"mapoverlay/internal/config"
	"mapoverlay/internal/overlay"
)

// popoverHPad is the horizontal space around a row label: the border plus
// the list delegate's gutter.
const popoverHPad = 4

// popoverHeaderRows is the border and title line above the first row.
const popoverHeaderRows = 2

type cellRect struct{ x, y, w, h int }

func (r cellRect) contains(cx, cy int) bool {
	return cx >= r.x && cx < r.x+r.w && cy >= r.y && cy < r.y+r.h
}

// popover lists the members of the selected annotation.
type popover struct {
	open bool
	rect cellRect
	list list.Model
}

type memberItem struct{ it *overlay.Item }

func (i memberItem) Title() string { return i.it.DisplayName() }
func (i memberItem) Description() string {
	c := i.it.Coordinate()
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lon)
}
func (i memberItem) FilterValue() string { return i.it.DisplayName() }

func newPopoverList() list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	l := list.New(nil, d, 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.Styles.Title = titleStyle
	return l
}

// openPopover selects a and shows its members next to its marker.
func (m *Model) openPopover(a *annotation) {
	m.ov.Select(a)
	if m.ov.Selected() == nil {
		m.closePopover()
		return
	}
	rows := make([]list.Item, 0, a.Count())
	for _, it := range a.Members() {
		rows = append(rows, memberItem{it: it})
	}
	m.pop.list.Title = a.Title()
	m.pop.list.SetItems(rows)
	m.pop.list.Select(0)
	m.placePopover()
	if m.pop.open {
		m.status = "popover: " + a.Title()
	}
}

// placePopover lays the popover out against the current marker frame. It
// runs after every viewport change.
func (m *Model) placePopover() {
	a := m.ov.Selected()
	if a == nil {
		m.pop.open = false
		return
	}
	marker := overlay.Rect{X: math.NaN()}
	if v, ok := m.markers.find(a); ok {
		f := v.Frame()
		marker = overlay.Rect{
			X: f.X / config.DotsPerCellX,
			Y: f.Y / config.DotsPerCellY,
			W: f.W / config.DotsPerCellX,
			H: f.H / config.DotsPerCellY,
		}
	}
	labels := make([]string, 0, a.Count())
	for _, it := range a.Members() {
		labels = append(labels, it.DisplayName())
	}
	content := overlay.ListContent{
		Labels:     labels,
		LabelWidth: func(s string) float64 { return float64(lipgloss.Width(s)) },
		Config:     m.ov.PopoverConfig(),
		HPad:       popoverHPad,
	}
	lo := m.layout()
	r, ok := m.ov.PlacePopover(marker, overlay.Size{W: float64(lo.mapW), H: float64(lo.mapH)}, m.cfg.SafeInsets(), content)
	if !ok {
		m.pop.open = false
		m.status = "popover dismissed"
		return
	}
	m.pop.rect = cellRect{
		x: int(math.Round(r.X)),
		y: int(math.Round(r.Y)),
		w: int(math.Floor(r.W)),
		h: int(math.Floor(r.H)),
	}
	m.pop.list.SetSize(max(1, m.pop.rect.w-2), max(1, m.pop.rect.h-2))
	m.pop.open = true
}

func (m *Model) closePopover() {
	m.ov.Deselect()
	m.pop.open = false
}

// clickPopover highlights the clicked row; clicking the highlighted row
// activates it.
func (m *Model) clickPopover(cx, cy int) {
	row := cy - m.pop.rect.y - popoverHeaderRows
	if row < 0 {
		return
	}
	pg := m.pop.list.Paginator
	idx := pg.Page*pg.PerPage + row
	if row >= pg.PerPage || idx >= len(m.pop.list.Items()) {
		return
	}
	if idx == m.pop.list.Index() {
		m.activate()
		return
	}
	m.pop.list.Select(idx)
}

// activate invokes the selection callback of the highlighted row.
func (m *Model) activate() {
	mi, ok := m.pop.list.SelectedItem().(memberItem)
	if !ok {
		return
	}
	mi.it.Select()
	m.status = "selected: " + mi.it.DisplayName()
}

func logSelection(it *overlay.Item) {
	slog.Info("item selected", "key", it.Key(), "name", it.DisplayName(),
		"lat", it.Position.Lat, "lon", it.Position.Lon)
}
