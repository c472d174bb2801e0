package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"geofence/internal/fence"
	"geofence/internal/geom"
)

var fenceColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "name", Width: 16},
	{Title: "kind", Width: 10},
	{Title: "size", Width: 22},
	{Title: "center", Width: 22},
}

// refreshFenceTable rebuilds the rows from the session's fences.
func (m *Model) refreshFenceTable() {
	fences := m.session.Fences()
	rows := make([]table.Row, 0, len(fences))
	m.tblIDs = m.tblIDs[:0]
	for i, f := range fences {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			f.Name(),
			string(f.Kind()),
			fenceSize(f),
			fenceCenter(f),
		})
		m.tblIDs = append(m.tblIDs, f.ID())
	}
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

// selectedFenceID is the id under the table cursor.
func (m Model) selectedFenceID() (string, bool) {
	c := m.tbl.Cursor()
	if c < 0 || c >= len(m.tblIDs) {
		return "", false
	}
	return m.tblIDs[c], true
}

func fenceSize(f fence.Fence) string {
	switch f := f.(type) {
	case *fence.Circle:
		return fmt.Sprintf("r %.2f km", f.Radius/1000)
	case *fence.Rectangle:
		w, l := f.Region.Size()
		return fmt.Sprintf("%.2f km X %.2f km", w/1000, l/1000)
	case *fence.Polygon:
		n := len(f.Vertices)
		if n > 1 && f.Vertices[0] == f.Vertices[n-1] {
			n--
		}
		return fmt.Sprintf("%d vertices", n)
	}
	return ""
}

func fenceCenter(f fence.Fence) string {
	var lon, lat float64
	switch f := f.(type) {
	case *fence.Circle:
		c := geom.ToCartographic(f.Center)
		lon, lat = c.Lon.Degrees(), c.Lat.Degrees()
	default:
		c := f.Bound().Center()
		lon, lat = c[0], c[1]
	}
	return fmt.Sprintf("%.4f, %.4f", lon, lat)
}
