package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"geoverlay/internal/engine"
	"geoverlay/internal/marker"
)

func markerColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "key", Width: 18},
		{Title: "kind", Width: 14},
		{Title: "pane", Width: 12},
		{Title: "lines", Width: 6},
		{Title: "points", Width: 7},
		{Title: "color", Width: 10},
	}
}

// refreshMarkersTable rebuilds the table rows from the store.
func (m *Model) refreshMarkersTable() {
	markers := m.store.Markers()
	if len(markers) == 0 {
		m.showAttrs = false
		m.status = "no markers"
		return
	}
	rows := make([]table.Row, 0, len(markers))
	for i, mk := range markers {
		rows = append(rows, markerRow(i, mk))
	}
	m.tbl.SetRows(rows)
}

func markerRow(i int, mk marker.Marker) table.Row {
	o := mk.Overlay()
	opts := o.Options()
	lines, points := 0, 0
	for _, ls := range o.LatLngs() {
		lines++
		points += len(ls)
	}
	key := mk.Key()
	if key == "" {
		key = "-"
	}
	return table.Row{
		fmt.Sprintf("%d", i+1),
		key,
		string(mk.Kind()),
		paneLabel(opts),
		fmt.Sprintf("%d", lines),
		fmt.Sprintf("%d", points),
		colorLabel(opts),
	}
}

func paneLabel(opts engine.Options) string {
	if opts.Pane == "" {
		return "default"
	}
	return opts.Pane
}

func colorLabel(opts engine.Options) string {
	if c, ok := opts.Properties["color"]; ok {
		return fmt.Sprint(c)
	}
	return ""
}

// markerFor maps a drawn overlay back to the marker that owns it.
func (m Model) markerFor(o engine.Overlay) (marker.Marker, bool) {
	for _, mk := range m.store.Markers() {
		if mk.Overlay() == o {
			return mk, true
		}
	}
	return nil, false
}
