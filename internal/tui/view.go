package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geofence/internal/draw"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header: title and tool selector
	tools := make([]string, 0, len(draw.Tools))
	for i, t := range draw.Tools {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.session.Tool() {
			tools = append(tools, activeTool.Render(label))
		} else {
			tools = append(tools, toolStyle.Render(label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(" geofence "), " ", strings.Join(tools, ""))
	header = lipgloss.NewStyle().Width(lo.contentWidth).MaxHeight(headerHeight).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showFences:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapHeight-2, 20))
		body := m.tbl.View()
		if len(m.tblIDs) == 0 {
			body = dimStyle.Render("no geofences yet")
		}
		box := boxStyle.Width(maxW).Render(body)
		mapView = lipgloss.Place(lo.mapWidth, lo.mapHeight, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lo.mapWidth)
		m.ta.SetHeight(min(lo.mapHeight, 12))
		mapView = lipgloss.NewStyle().Width(lo.mapWidth).Height(lo.mapHeight).Render(m.ta.View())
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lo.mapWidth).Height(lo.mapHeight).MaxHeight(lo.mapHeight).Render(m.canvas)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status, help, cursor position
	status := dimStyle.Render(" " + m.status + " ")
	if m.session.ClampToSurface() {
		status += warnStyle.Render("[clamp] ")
	}
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	spacerW := max(0, lo.contentWidth-lipgloss.Width(status)-lipgloss.Width(coords))
	line1 := lipgloss.JoinHorizontal(lipgloss.Bottom, status, strings.Repeat(" ", spacerW), coords)
	footer := lipgloss.JoinVertical(lipgloss.Left, line1, m.renderHelp())
	footer = lipgloss.NewStyle().Width(lo.contentWidth).MaxHeight(footerHeight).Render(footer)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"1-4 tool",
		"esc cancel",
		"↑↓←→ pan",
		"+/- zoom",
		"Tab files",
		"w wkt",
		"f fences",
		"e export",
		"c clear",
		"t clamp",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
