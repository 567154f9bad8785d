// Package engine defines the rendering capability overlays are drawn with.
package engine

import "geoverlay/internal/geom"

// Options mirrors the style knobs a polyline overlay understands. Properties
// is the caller's bag, carried through untouched.
type Options struct {
	SmoothFactor        float64
	NoClip              bool
	BubblingMouseEvents bool
	Interactive         bool
	Attribution         string
	Pane                string
	Properties          map[string]any
}

// DefaultOptions returns the style every polyline variant starts from.
func DefaultOptions() Options {
	return Options{
		SmoothFactor:        1.0,
		NoClip:              false,
		BubblingMouseEvents: true,
		Interactive:         true,
	}
}

// Overlay is one rendered line object. SetLatLngs replaces the whole
// geometry in one step.
type Overlay interface {
	SetLatLngs(lines [][]geom.LatLng)
	LatLngs() [][]geom.LatLng
	Options() Options
}

// Pane is a named display layer.
type Pane interface {
	Name() string
	ClassName() string
}

type Engine interface {
	Polyline(lines [][]geom.LatLng, opts Options) Overlay
	CreatePane(name string) Pane
	Remove(o Overlay)
}

// PaneClass builds the hyphen-delimited class name engines give their panes.
func PaneClass(prefix, name string) string {
	return prefix + "-" + name + "-pane"
}

// CloneLines copies lines so overlays never share backing arrays with callers.
func CloneLines(lines [][]geom.LatLng) [][]geom.LatLng {
	out := make([][]geom.LatLng, len(lines))
	for i, ls := range lines {
		out[i] = append([]geom.LatLng(nil), ls...)
	}
	return out
}
