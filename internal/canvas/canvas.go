// Package canvas is a terminal rendering engine: overlays are drawn as
// braille micro-pixels, one pane on top of the next.
package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoverlay/internal/engine"
	"geoverlay/internal/geom"
	"geoverlay/internal/pane"
)

// Canvas implements engine.Engine. It is driven from the UI event loop and
// does no locking of its own.
type Canvas struct {
	prefix   string
	panes    []*Pane
	overlays []*Overlay
	hidden   map[string]bool
}

func New(prefix string) *Canvas {
	if prefix == "" {
		prefix = "tui"
	}
	return &Canvas{prefix: prefix, hidden: make(map[string]bool)}
}

type Pane struct {
	name, class string
}

func (p *Pane) Name() string      { return p.name }
func (p *Pane) ClassName() string { return p.class }

type Overlay struct {
	lines [][]geom.LatLng
	opts  engine.Options
}

func (o *Overlay) SetLatLngs(lines [][]geom.LatLng) { o.lines = engine.CloneLines(lines) }
func (o *Overlay) LatLngs() [][]geom.LatLng         { return engine.CloneLines(o.lines) }
func (o *Overlay) Options() engine.Options          { return o.opts }

func (c *Canvas) Polyline(lines [][]geom.LatLng, opts engine.Options) engine.Overlay {
	o := &Overlay{lines: engine.CloneLines(lines), opts: opts}
	c.overlays = append(c.overlays, o)
	return o
}

func (c *Canvas) CreatePane(name string) engine.Pane {
	p := &Pane{name: name, class: engine.PaneClass(c.prefix, name)}
	c.panes = append(c.panes, p)
	return p
}

func (c *Canvas) Remove(o engine.Overlay) {
	for i, cur := range c.overlays {
		if cur == o {
			c.overlays = append(c.overlays[:i], c.overlays[i+1:]...)
			return
		}
	}
}

// SetHidden toggles drawing of every overlay placed on pane id. The empty id
// is the default pane.
func (c *Canvas) SetHidden(id string, hidden bool) {
	if hidden {
		c.hidden[id] = true
		return
	}
	delete(c.hidden, id)
}

func (c *Canvas) Hidden(id string) bool { return c.hidden[id] }

func (c *Canvas) Len() int { return len(c.overlays) }

// drawOrder returns visible overlays bottom first: the default pane, then
// panes in creation order. Overlays keep arrival order within a pane.
func (c *Canvas) drawOrder() []*Overlay {
	rank := map[string]int{"": 0}
	for i, p := range c.panes {
		id := pane.ID(p)
		if _, ok := rank[id]; !ok {
			rank[id] = i + 1
		}
	}
	buckets := make([][]*Overlay, len(c.panes)+2)
	for _, o := range c.overlays {
		if c.hidden[o.opts.Pane] {
			continue
		}
		r, ok := rank[o.opts.Pane]
		if !ok {
			// placed on a pane this canvas never created: draw on top
			r = len(buckets) - 1
		}
		buckets[r] = append(buckets[r], o)
	}
	var out []*Overlay
	for _, b := range buckets {
		out = append(out, b...)
	}
	return out
}

// Bounds covers every visible overlay.
func (c *Canvas) Bounds() (geom.BBox, bool) {
	var lines [][]geom.LatLng
	for _, o := range c.drawOrder() {
		lines = append(lines, o.lines...)
	}
	bb, ok := geom.Bounds(lines...)
	if !ok {
		return geom.BBox{}, false
	}
	return pad(bb), true
}

// pad widens degenerate boxes so a single point or a straight line still
// projects.
func pad(bb geom.BBox) geom.BBox {
	if bb.MaxX <= bb.MinX {
		bb.MinX -= 0.5
		bb.MaxX += 0.5
	}
	if bb.MaxY <= bb.MinY {
		bb.MinY -= 0.5
		bb.MaxY += 0.5
	}
	return bb
}

// Mark replaces one cell of the rendered map with a pre-styled glyph.
type Mark struct {
	X, Y  int
	Glyph string
}

// Render draws the visible overlays into a w x h block of text.
func (c *Canvas) Render(w, h int, vp Viewport, marks ...Mark) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	br := newBrailleBuf(w, h)
	pens := []lipgloss.Style{lipgloss.NewStyle()}
	for _, o := range c.drawOrder() {
		br.cur = 0
		if col, ok := o.opts.Properties["color"].(string); ok && col != "" {
			pens = append(pens, lipgloss.NewStyle().Foreground(lipgloss.Color(col)))
			br.cur = len(pens) - 1
		}
		for _, ls := range o.lines {
			var prev *[2]int
			for _, p := range ls {
				mx, my, ok := vp.Project(p, w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				} else {
					br.setPixel(mx, my)
				}
				prev = &[2]int{mx, my}
			}
		}
	}
	return strings.Join(br.toLines(pens, marks), "\n")
}

// Nearest finds the vertex of a visible overlay closest to the cell (cx, cy).
func (c *Canvas) Nearest(cx, cy, w, h int, vp Viewport) (*Overlay, geom.LatLng, bool) {
	hx, hy := cx*2, cy*4
	best := 1<<31 - 1
	var bestO *Overlay
	var bestP geom.LatLng
	for _, o := range c.drawOrder() {
		for _, ls := range o.lines {
			for _, p := range ls {
				mx, my, ok := vp.Project(p, w, h)
				if !ok {
					continue
				}
				dx, dy := mx-hx, my-hy
				if d := dx*dx + dy*dy; d < best {
					best, bestO, bestP = d, o, p
				}
			}
		}
	}
	return bestO, bestP, bestO != nil
}
