package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoverlay/internal/canvas"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	f := m.frame()

	// Header
	header := titleStyle.Render(" geoverlay ─ live map overlays ") + m.renderPanes()
	header = lipgloss.NewStyle().Width(f.contentW).MaxHeight(headerHeight).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, f.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(f.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(f.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(f.mapW, f.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(f.mapW)
		m.ta.SetHeight(min(f.mapH, 12))
		mapView = lipgloss.NewStyle().Width(f.mapW).Height(f.mapH).Render(m.ta.View())
	default:
		var marks []canvas.Mark
		if m.hovering {
			marks = append(marks, canvas.Mark{X: m.hoverMicX / 2, Y: m.hoverMicY / 4, Glyph: hoverStyle.Render("◉")})
		}
		art := m.canvas.Render(f.mapW, f.mapH, m.viewport(), marks...)
		if m.store.Len() == 0 {
			art = lipgloss.Place(f.mapW, f.mapH, lipgloss.Center, lipgloss.Center, dimStyle.Render("waiting for descriptors"))
		}
		mapView = lipgloss.NewStyle().Width(f.mapW).Height(f.mapH).Render(art)
	}

	// inspect popup sits between header and body
	popup := ""
	if m.inspectPopup != "" && !m.showAttrs {
		maxPopupW := max(20, min(48, f.contentW/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(f.contentW, lipgloss.Height(box), lipgloss.Left, lipgloss.Top, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		label := fmt.Sprintf("lat=%.5f lng=%.5f", m.hoverAt.Lat, m.hoverAt.Lng)
		if m.hoverKey != "" {
			label = m.hoverKey + "  " + label
		}
		coords = dimStyle.Render("  " + label + "  ")
	}
	spacerW := max(0, f.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, status, right),
		m.renderHelp(),
	)
	footer = lipgloss.NewStyle().Width(f.contentW).Render(footer)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(f.contentW).Height(m.height).Render(ui)
}

// renderPanes lists toggle slots; hidden panes are flagged.
func (m Model) renderPanes() string {
	var parts []string
	for i, id := range m.paneIDs() {
		if i > 9 {
			break
		}
		label := id
		if label == "" {
			label = "default"
		}
		s := fmt.Sprintf("%d:%s", i, label)
		if m.canvas.Hidden(id) {
			s = hiddenTag.Render(s + "(off)")
		} else {
			s = dimStyle.Render(s)
		}
		parts = append(parts, s)
	}
	return " " + strings.Join(parts, " ")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"f fit",
		"Tab files",
		"Enter open",
		"p paste",
		"a markers",
		"i inspect",
		"x remove",
		"c clear",
		"0-9 pane",
		"l panes",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
