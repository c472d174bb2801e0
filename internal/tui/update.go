package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geofence/internal/draw"
	"geofence/internal/fence"
	"geofence/internal/geom"
	"geofence/internal/scene"
)

const zoomStep = 1.2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.renderFrame()
		return m, tick(m.cfg.FrameInterval)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
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
		if m.showFences {
			switch msg.String() {
			case "x", "delete":
				if id, ok := m.selectedFenceID(); ok {
					m.session.Remove(id)
					m.refreshFenceTable()
					m.status = "geofence removed"
				}
				return m, nil
			case "f", "esc":
				m.showFences = false
				m.tbl.Blur()
				return m, nil
			case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.session.Destroy()
			m.backdrop.Destroy()
			return m, tea.Quit
		case "1", "2", "3", "4":
			t := draw.Tools[int(msg.String()[0]-'1')]
			m.session.SetTool(t)
			m.status = "tool: " + t.String()
		case "esc":
			if m.session.Drawing() {
				m.session.Cancel()
				m.status = "drawing cancelled"
			}
		case "t":
			m.session.SetClampToSurface(!m.session.ClampToSurface())
			m.status = fmt.Sprintf("clamp to surface: %v", m.session.ClampToSurface())
		case "+", "=":
			m.vp.Zoom(zoomStep)
			m.status = fmt.Sprintf("span: %.4f°", m.vp.Span())
		case "-", "_":
			m.vp.Zoom(1 / zoomStep)
			m.status = fmt.Sprintf("span: %.4f°", m.vp.Span())
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.resize()
		case "w":
			m.pasteMode = true
			m.ta.SetValue("")
			m.ta.Focus()
			m.status = "paste mode"
		case "f":
			m.showFences = true
			m.refreshFenceTable()
			m.tbl.Focus()
		case "e":
			if err := fence.WriteFile(m.cfg.ExportPath, m.session.Fences()); err != nil {
				m.status = "export error: " + err.Error()
				m.log.Warn("export failed", "path", m.cfg.ExportPath, "err", err)
			} else {
				m.status = fmt.Sprintf("exported %d geofences to %s", len(m.session.Fences()), m.cfg.ExportPath)
			}
		case "c":
			m.session.ClearProbes()
			m.backdrop.set(geom.Data{})
			m.status = "backdrop cleared"
		case "h":
			m.helpVisible = !m.helpVisible
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.vp.Pan(0, -1)
		case "down":
			m.vp.Pan(0, 1)
		case "left":
			m.vp.Pan(-2, 0)
		case "right":
			m.vp.Pan(2, 0)
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
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKTData(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		fences := fence.FromData(d, "WKT")
		m.session.Import(fences)
		in, out := 0, 0
		if len(d.Points) > 0 {
			pts := make([]geom.Position, len(d.Points))
			for i, p := range d.Points {
				pts[i] = geom.FromDegrees(p[0], p[1], 0)
			}
			in, out = m.session.CheckAll(pts)
		}
		if len(d.Lines) > 0 {
			m.backdrop.set(geom.Data{Lines: d.Lines, BBox: d.BBox})
		}
		m.fitBBox(d.BBox)
		m.refreshFenceTable()
		m.status = fmt.Sprintf("WKT: geofences=%d  points inside=%d outside=%d  ls=%d", len(fences), in, out, len(d.Lines))
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateMouse forwards map gestures to the input handler and tracks the
// cursor for the footer.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	if m.pasteMode || m.showFences {
		return
	}
	lo := m.layout()
	cx, cy, ok := lo.mapCell(msg.X, msg.Y)
	if !ok {
		m.hoverHasGeo = false
		return
	}
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.vp.CellToLonLat(cx, cy)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.vp.Zoom(zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.vp.Zoom(1 / zoomStep)
	case msg.Action == tea.MouseActionMotion:
		m.input.Dispatch(scene.MouseMove, cx, cy)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		before := len(m.session.Fences())
		m.input.Dispatch(scene.LeftClick, cx, cy)
		m.afterGesture(before)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		before := len(m.session.Fences())
		m.input.Dispatch(scene.RightClick, cx, cy)
		m.afterGesture(before)
	}
}

// afterGesture reports commits and checks on the status line.
func (m *Model) afterGesture(before int) {
	fences := m.session.Fences()
	if len(fences) > before {
		f := fences[len(fences)-1]
		m.status = fmt.Sprintf("committed %s (%s)", f.Name(), fenceSize(f))
		m.refreshFenceTable()
		return
	}
	if m.session.Tool() == draw.ToolCheckingPoint {
		if res, ok := m.session.LastCheck(); ok {
			if res.Inside {
				names := make([]string, len(res.Matches))
				for i, f := range res.Matches {
					names[i] = f.Name()
				}
				m.status = "inside geofence: " + strings.Join(names, ", ")
			} else {
				m.status = "outside geofence"
			}
		}
		return
	}
	m.status = m.session.State().String()
}
