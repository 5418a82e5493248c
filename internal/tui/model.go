package tui

import (
	"log/slog"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"mapoverlay/internal/config"
	"mapoverlay/internal/overlay"
)

type Model struct {
	cfg *config.Config

	width  int
	height int

	showSidebar bool
	helpVisible bool
	showCounts  bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	files   []list.Item
	selPath string

	// Data
	source string
	items  []*overlay.Item
	ov     *overlay.Overlay[*overlay.Item]

	// map state
	view       viewport
	size       markerSize
	markers    markerLayer
	fitPending bool
	pop        popover

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hoverHasGeo bool
	hoverGeo    overlay.Coordinate

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(cfg *config.Config) Model {
	m := Model{
		cfg:         cfg,
		helpVisible: true,
		showCounts:  cfg.Marker.ShowCounts,
		status:      "mapoverlay ready",
		ov:          overlay.New[*overlay.Item](cfg.CellSize(), cfg.Layout(), slog.Default()),
		view:        newViewport(),
		size:        markerSizeFrom(cfg.Marker),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.pop.list = newPopoverList()
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here, one geometry per line. Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	m.syncView()
	return m
}

// NewWithPath preloads a dataset at launch.
func NewWithPath(cfg *config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// mapLayout is the screen placement of the map area, in cells.
type mapLayout struct {
	originX, originY int
	mapW, mapH       int
	contentW         int
	contentH         int
}

func (m Model) layout() mapLayout {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	contentH := max(4, m.height-headerHeight-footerHeight)
	contentW := max(10, m.width)
	lo := mapLayout{
		originY:  headerHeight,
		mapW:     max(10, contentW-sw-1),
		mapH:     contentH,
		contentW: contentW,
		contentH: contentH,
	}
	if m.showSidebar {
		lo.originX = sw + 1
	}
	return lo
}

// syncView reclusters if needed and re-places the popover. Call it after
// anything that changes the viewport.
func (m *Model) syncView() {
	lo := m.layout()
	m.view.resize(lo.mapW, lo.mapH)
	anns := m.ov.Annotations(m.clusterView())
	m.markers = buildMarkers(anns, m.view, m.size)
	if m.pop.open && m.ov.Selected() == nil {
		m.pop.open = false
		m.status = "popover closed: markers regrouped"
		return
	}
	m.placePopover()
}

// clusterView is the view clustering runs in: the current scale with the
// wrap seam held opposite the dataset's centre. The seam then sits in the
// widest gap between items and a pan never moves items across it.
func (m Model) clusterView() viewport {
	v := m.view
	if r := m.ov.FitRegion(); r.IsValid() {
		v.center.Lon = r.Center.Lon
	}
	return v
}

// setItems replaces the dataset. A changed dataset is fitted into view.
func (m *Model) setItems(items []*overlay.Item, source string) {
	for _, it := range items {
		it.OnSelect = logSelection
	}
	m.items = items
	m.source = source
	if m.ov.SetItems(items) {
		m.pop.open = false
		m.fit()
	}
	m.syncView()
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// fit frames the whole dataset. Before the first window size is known the
// fit is deferred.
func (m *Model) fit() {
	if m.width == 0 || m.height == 0 {
		m.fitPending = true
		return
	}
	lo := m.layout()
	m.view.resize(lo.mapW, lo.mapH)
	m.view.fit(m.ov.FitRegion())
	m.fitPending = false
}
