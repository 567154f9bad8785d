package geom

import (
	"encoding/json"
	"fmt"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to cover ll.
func (b BBox) Extend(ll LatLng) BBox {
	if ll.Lat < b.MinX {
		b.MinX = ll.Lat
	}
	if ll.Lng < b.MinY {
		b.MinY = ll.Lng
	}
	if ll.Lat > b.MaxX {
		b.MaxX = ll.Lat
	}
	if ll.Lng > b.MaxY {
		b.MaxY = ll.Lng
	}
	return b
}

// Bounds returns the bbox covering every coordinate in lines.
func Bounds(lines ...[]LatLng) (bbox BBox, ok bool) {
	for _, ls := range lines {
		for _, ll := range ls {
			if !ok {
				bbox = BBox{MinX: ll.Lat, MinY: ll.Lng, MaxX: ll.Lat, MaxY: ll.Lng}
				ok = true
				continue
			}
			bbox = bbox.Extend(ll)
		}
	}
	return bbox, ok
}

// Point is a raw 2-D pair as emitted by descriptor producers. Whether it is a
// continuous coordinate or a cell index depends on the Mode it is read with.
type Point [2]float64

func (p *Point) UnmarshalJSON(b []byte) error {
	var raw []float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("point: want 2 components, got %d", len(raw))
	}
	p[0], p[1] = raw[0], raw[1]
	return nil
}

// LatLng is the engine coordinate. Lat carries the first raw component.
type LatLng struct {
	Lat float64
	Lng float64
}

// Data is a minimal line container produced by the file loaders.
type Data struct {
	Lines  [][][2]float64
	Groups []LineGroup // one per source geometry, indexing into Lines
	BBox   BBox
}

// LineGroup references a run of Data.Lines produced by a single geometry.
type LineGroup struct {
	Start, End int
	Multi      bool
	Key        string
	Props      map[string]any
}
