package tui

import "geoverlay/internal/canvas"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// frame is the screen geometry shared by View and mouse handling.
type frame struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) frame() frame {
	f := frame{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	side := 0
	if m.showSidebar {
		side = sidebarWidth
		f.mapX = sidebarWidth + 1
	}
	f.mapW = max(10, f.contentW-side-1)
	f.mapH = f.contentH
	return f
}

func (m Model) viewport() canvas.Viewport {
	if !m.hasBox {
		return canvas.Viewport{}
	}
	return canvas.Viewport{BBox: m.bbox, Zoom: m.zoom, OffsetX: m.offsetX, OffsetY: m.offsetY}
}

// refit frames whatever is currently visible without touching zoom or pan.
func (m *Model) refit() {
	m.bbox, m.hasBox = m.canvas.Bounds()
}
