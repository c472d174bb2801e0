package tui

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by Update (mouse hit-testing) and
// View.
type layout struct {
	contentWidth  int
	contentHeight int
	mapOriginX    int
	mapOriginY    int
	mapWidth      int
	mapHeight     int
}

func (m Model) layout() layout {
	var lo layout
	lo.contentHeight = max(4, m.height-headerHeight-footerHeight)
	lo.contentWidth = max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	lo.mapWidth = max(10, lo.contentWidth-sw)
	lo.mapHeight = lo.contentHeight
	lo.mapOriginX = sw
	lo.mapOriginY = headerHeight
	return lo
}

// mapCell converts a terminal position into a map cell.
func (lo layout) mapCell(x, y int) (cx, cy int, ok bool) {
	cx, cy = x-lo.mapOriginX, y-lo.mapOriginY
	return cx, cy, cx >= 0 && cy >= 0 && cx < lo.mapWidth && cy < lo.mapHeight
}

// resize keeps the viewport and file list in step with the layout.
func (m *Model) resize() {
	lo := m.layout()
	m.vp.Resize(lo.mapWidth, lo.mapHeight)
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentHeight-2)
	}
}
