// Package marker turns type descriptors into engine overlays and keeps them
// current as new descriptors arrive.
package marker

import (
	"geoverlay/internal/engine"
	"geoverlay/internal/geom"
	"geoverlay/internal/pane"
)

// Context is what a variant needs at construction time.
type Context struct {
	Engine     engine.Engine
	Panes      *pane.Registry
	Normalizer geom.Normalizer
}

func NewContext(eng engine.Engine, cellSize float64) Context {
	return Context{
		Engine:     eng,
		Panes:      pane.NewRegistry(eng),
		Normalizer: geom.NewNormalizer(cellSize),
	}
}

// Marker owns exactly one overlay for its whole life.
type Marker interface {
	Key() string
	Kind() Kind
	Overlay() engine.Overlay
}

// Updatable markers accept new geometry in place. The overlay, key, pane and
// style never change across updates.
type Updatable interface {
	Marker
	Update(points []geom.Point)
}

type base struct {
	key     string
	overlay engine.Overlay
}

func (b base) Key() string             { return b.key }
func (b base) Overlay() engine.Overlay { return b.overlay }

// New builds the variant named by t.Type.
func New(ctx Context, t Type) (Marker, error) {
	kind, err := ParseKind(t.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindPolyline:
		p, err := NewPolyline(ctx, t)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		m, err := NewMultiPolyline(ctx, t)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// styleOptions layers the defaults over the caller's bag. The bag survives
// verbatim in Properties; a string "pane" in it seeds the placement.
func styleOptions(props map[string]any) engine.Options {
	opts := engine.DefaultOptions()
	if len(props) > 0 {
		opts.Properties = make(map[string]any, len(props))
		for k, v := range props {
			opts.Properties[k] = v
		}
		if p, ok := props["pane"].(string); ok {
			opts.Pane = p
		}
	}
	return opts
}
