package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a 2x4 micro-pixel grid per terminal cell. Each cell also
// remembers the pen of the last overlay that touched it.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	pen  [][]int
	cur  int
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	pen := make([][]int, h)
	for i := range m {
		m[i] = make([]uint8, w)
		pen[i] = make([]int, w)
	}
	return &brailleBuf{w: w, h: h, m: m, pen: pen}
}

// brailleBits maps (column, row) inside a cell to its dot.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
	b.pen[cy][cx] = b.cur
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toLines renders the grid, styling runs of cells that share a pen.
// Pen 0 is unstyled. Marked cells are emitted verbatim.
func (b *brailleBuf) toLines(pens []lipgloss.Style, marks []Mark) []string {
	marked := make(map[[2]int]string, len(marks))
	for _, mk := range marks {
		marked[[2]int{mk.X, mk.Y}] = mk.Glyph
	}
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		run := make([]rune, 0, b.w)
		runPen := 0
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runPen > 0 && runPen < len(pens) {
				sb.WriteString(pens[runPen].Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			if g, ok := marked[[2]int{x, y}]; ok {
				flush()
				sb.WriteString(g)
				continue
			}
			mask := b.m[y][x]
			r, p := ' ', 0
			if mask != 0 {
				r, p = rune(0x2800+int(mask)), b.pen[y][x]
			}
			if p != runPen {
				flush()
				runPen = p
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
