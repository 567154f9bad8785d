package marker

import (
	"geoverlay/internal/geom"
	"geoverlay/internal/pane"
)

// Polyline is a single keyed line. Its points are cell indices, so they are
// read in Centered mode.
type Polyline struct {
	base
	norm geom.Normalizer
}

// NewPolyline builds a polyline from t. A pane named in the data is resolved
// and always wins over a pane set in the options bag.
func NewPolyline(ctx Context, t Type) (*Polyline, error) {
	data, err := decodePolylineData(t.Data)
	if err != nil {
		return nil, err
	}
	key := t.Key
	if key == "" {
		key = data.Key
	}

	opts := styleOptions(t.properties())
	if data.Pane != "" {
		opts.Pane = pane.ID(ctx.Panes.Resolve(data.Pane))
	}

	line := ctx.Normalizer.Line(data.Points, geom.Centered)
	return &Polyline{
		base: base{key: key, overlay: ctx.Engine.Polyline([][]geom.LatLng{line}, opts)},
		norm: ctx.Normalizer,
	}, nil
}

func (p *Polyline) Kind() Kind { return KindPolyline }

// Update swaps the whole line for points in a single engine call.
func (p *Polyline) Update(points []geom.Point) {
	p.overlay.SetLatLngs([][]geom.LatLng{p.norm.Line(points, geom.Centered)})
}
