package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoverlay/internal/feed"
	"geoverlay/internal/marker"
	"geoverlay/internal/pane"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.frame().contentH-2)
		}
	case descriptorMsg:
		m.received++
		m.apply(fmt.Sprintf("feed #%d", m.received), []marker.Type{msg.t})
		return m, waitForDescriptor(m.feed)
	case feedErrMsg:
		m.log.Warn().Err(msg.err).Msg("feed error")
		m.status = "feed: " + msg.err.Error()
		// a bad line is skipped; a broken reader ends the feed
		if errors.Is(msg.err, marker.ErrMalformed) {
			return m, waitForDescriptor(m.feed)
		}
		m.feed = nil
		return m, nil
	case feedDoneMsg:
		m.log.Info().Int("received", m.received).Msg("feed closed")
		m.status = fmt.Sprintf("feed closed after %d descriptors", m.received)
		m.feed = nil
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				types, err := feed.ParseText(m.ta.Value())
				if err != nil {
					m.status = "paste error: " + err.Error()
					return m, nil
				}
				m.apply("paste", types)
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showAttrs {
			switch msg.String() {
			case "a", "esc":
				m.showAttrs = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch k := msg.String(); k {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.togglePane(int(k[0] - '0'))
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "f":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.refit()
			m.status = "fit to visible markers"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.frame().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = true
			m.refreshMarkersTable()
		case "i":
			m.inspect()
		case "esc":
			m.inspectPopup = ""
		case "x":
			if m.hoverKey == "" {
				m.status = "hover a keyed marker to remove it"
				break
			}
			if m.store.Remove(m.hoverKey) {
				m.log.Info().Str("key", m.hoverKey).Msg("marker removed")
				m.status = "removed " + m.hoverKey
				m.hoverKey = ""
				m.hovering = false
				m.refit()
			}
		case "c":
			n := m.store.Len()
			m.store.Clear()
			m.inspectPopup = ""
			m.hovering = false
			m.hoverKey = ""
			m.refit()
			m.log.Info().Int("markers", n).Msg("markers cleared")
			m.status = fmt.Sprintf("cleared %d markers", n)
		case "l":
			m.toggleAllPanes()
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// apply pushes descriptors through the store and reports the outcome.
func (m *Model) apply(source string, types []marker.Type) {
	var counts [3]int
	rejected := 0
	for _, t := range types {
		_, act, err := m.store.Apply(t)
		if err != nil {
			rejected++
			m.log.Warn().Err(err).Str("source", source).Str("type", t.Type).Str("key", t.Key).Msg("descriptor rejected")
			continue
		}
		counts[act]++
	}
	m.refit()
	m.status = fmt.Sprintf("%s  created=%d updated=%d replaced=%d rejected=%d  markers=%d",
		source, counts[marker.Created], counts[marker.Updated], counts[marker.Replaced], rejected, m.store.Len())
	if m.showAttrs {
		m.refreshMarkersTable()
	}
}

// paneIDs lists toggle targets: the default pane, then resolved panes in
// creation order.
func (m Model) paneIDs() []string {
	reg := m.store.Context().Panes
	ids := []string{""}
	seen := map[string]bool{"": true}
	for _, name := range reg.Names() {
		p, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		// names sharing a first segment place onto the same id
		if id := pane.ID(p); !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *Model) togglePane(n int) {
	ids := m.paneIDs()
	if n >= len(ids) {
		m.status = fmt.Sprintf("no pane %d", n)
		return
	}
	id := ids[n]
	hidden := !m.canvas.Hidden(id)
	m.canvas.SetHidden(id, hidden)
	label := id
	if label == "" {
		label = "default"
	}
	m.status = fmt.Sprintf("pane %s: visible=%v", label, !hidden)
}

func (m *Model) toggleAllPanes() {
	ids := m.paneIDs()
	anyVisible := false
	for _, id := range ids {
		if !m.canvas.Hidden(id) {
			anyVisible = true
			break
		}
	}
	for _, id := range ids {
		m.canvas.SetHidden(id, anyVisible)
	}
	m.status = fmt.Sprintf("panes visible: %v", !anyVisible)
}

// hover tracks the pointer over the map and snaps to the nearest vertex.
func (m *Model) hover(x, y int) {
	f := m.frame()
	cx, cy := x-f.mapX, y-f.mapY
	if cx < 0 || cx >= f.mapW || cy < 0 || cy >= f.mapH {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	m.hovering = true
	vp := m.viewport()
	m.hoverAt, m.hoverHasGeo = vp.CellToLatLng(cx, cy, f.mapW, f.mapH)
	m.hoverKey = ""
	o, ll, ok := m.canvas.Nearest(cx, cy, f.mapW, f.mapH, vp)
	if !ok {
		m.hoverMicX, m.hoverMicY = cx*2, cy*4
		return
	}
	m.hoverMicX, m.hoverMicY, _ = vp.Project(ll, f.mapW, f.mapH)
	if mk, ok := m.markerFor(o); ok {
		m.hoverKey = mk.Key()
	}
}

// inspect describes the marker closest to the map center.
func (m *Model) inspect() {
	f := m.frame()
	vp := m.viewport()
	o, ll, ok := m.canvas.Nearest(f.mapW/2, f.mapH/2, f.mapW, f.mapH, vp)
	if !ok {
		m.inspectPopup = "no marker nearby"
		m.status = m.inspectPopup
		return
	}
	opts := o.Options()
	meta := []string{}
	if mk, ok := m.markerFor(o); ok {
		key := mk.Key()
		if key == "" {
			key = "<keyless>"
		}
		meta = append(meta, "key: "+key, "kind: "+string(mk.Kind()))
	}
	lines, points := 0, 0
	for _, ls := range o.LatLngs() {
		lines++
		points += len(ls)
	}
	source := "<feed>"
	if m.selPath != "" {
		source = filepath.Base(m.selPath)
	}
	meta = append(meta,
		"pane: "+paneLabel(opts),
		fmt.Sprintf("lines: %d  points: %d", lines, points),
		fmt.Sprintf("smooth: %.1f  noClip: %v", opts.SmoothFactor, opts.NoClip),
		fmt.Sprintf("interactive: %v  bubbling: %v", opts.Interactive, opts.BubblingMouseEvents),
		fmt.Sprintf("nearest: lat=%.6f lng=%.6f", ll.Lat, ll.Lng),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", m.bbox.MinX, m.bbox.MinY, m.bbox.MaxX, m.bbox.MaxY),
		"source: "+source,
	)
	if c := colorLabel(opts); c != "" {
		meta = append(meta, "color: "+c)
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}
