package marker

import "geoverlay/internal/geom"

// MultiPolyline draws several disjoint line strings as one overlay. Producers
// emit continuous coordinates here, so points are read in Plain mode. It has
// no Update: a changed multi-line arrives as a fresh descriptor.
type MultiPolyline struct {
	base
}

func NewMultiPolyline(ctx Context, t Type) (*MultiPolyline, error) {
	lines, err := decodeMultiPolylineData(t.Data)
	if err != nil {
		return nil, err
	}
	opts := styleOptions(t.properties())
	return &MultiPolyline{
		base: base{key: t.Key, overlay: ctx.Engine.Polyline(ctx.Normalizer.Lines(lines, geom.Plain), opts)},
	}, nil
}

func (m *MultiPolyline) Kind() Kind { return KindMultiPolyline }
