package canvas

import "geoverlay/internal/geom"

// Viewport frames a bbox on screen with zoom around the center and a pan
// offset in cells.
type Viewport struct {
	BBox    geom.BBox
	Zoom    float64
	OffsetX int
	OffsetY int
}

func (v Viewport) valid() bool {
	return v.BBox.MaxX > v.BBox.MinX && v.BBox.MaxY > v.BBox.MinY && v.Zoom > 0
}

// Project maps a coordinate into the 2x4 microgrid per cell. Lat runs left
// to right, Lng bottom to top.
func (v Viewport) Project(p geom.LatLng, w, h int) (int, int, bool) {
	if !v.valid() {
		return 0, 0, false
	}
	nx := (p.Lat - v.BBox.MinX) / (v.BBox.MaxX - v.BBox.MinX)
	ny := (p.Lng - v.BBox.MinY) / (v.BBox.MaxY - v.BBox.MinY)
	zx := 0.5 + (nx-0.5)*v.Zoom
	zy := 0.5 + (ny-0.5)*v.Zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + v.OffsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + v.OffsetY*4
	return sx, sy, true
}

// CellToLatLng converts a map cell back to a coordinate.
func (v Viewport) CellToLatLng(cx, cy, w, h int) (geom.LatLng, bool) {
	if !v.valid() || w <= 1 || h <= 1 {
		return geom.LatLng{}, false
	}
	zx := float64(cx-v.OffsetX) / float64(w-1)
	zy := 1.0 - float64(cy-v.OffsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/v.Zoom
	ny := 0.5 + (zy-0.5)/v.Zoom
	return geom.LatLng{
		Lat: v.BBox.MinX + nx*(v.BBox.MaxX-v.BBox.MinX),
		Lng: v.BBox.MinY + ny*(v.BBox.MaxY-v.BBox.MinY),
	}, true
}
