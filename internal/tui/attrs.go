package tui

import (
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"mapoverlay/internal/overlay"
)

// attrItems are the rows of the attribute table: the open popover's members,
// or the whole dataset.
func (m *Model) attrItems() []*overlay.Item {
	if a := m.ov.Selected(); a != nil && m.pop.open {
		return a.Members()
	}
	return m.items
}

// refreshAttrs rebuilds the table columns/rows from the current items.
func (m *Model) refreshAttrs() {
	cols, rows := buildAttributes(m.attrItems())
	// An empty table cannot be rendered; hide it instead.
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for i, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			w = max(w, len(r[i])+2)
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make(table.Row, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, row)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.tbl.GotoTop()
}

// buildAttributes returns name, lat, lon and the union of item properties
// as columns, one row per item.
func buildAttributes(items []*overlay.Item) ([]string, [][]string) {
	seen := map[string]bool{"name": true, "lat": true, "lon": true}
	var extra []string
	for _, it := range items {
		for k := range it.Props {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	cols := append([]string{"name", "lat", "lon"}, extra...)

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		c := it.Coordinate()
		row := make([]string, 0, len(cols))
		row = append(row, it.DisplayName(), fmt.Sprintf("%.6f", c.Lat), fmt.Sprintf("%.6f", c.Lon))
		for _, k := range extra {
			row = append(row, it.Props[k])
		}
		rows = append(rows, row)
	}
	return cols, rows
}
