package engine

import "geoverlay/internal/geom"

// Recorder is an in-memory Engine. It keeps every overlay and pane it hands
// out so callers can inspect what would have been drawn.
type Recorder struct {
	Prefix string

	overlays []*RecordedOverlay
	panes    []*RecordedPane
}

func NewRecorder() *Recorder {
	return &Recorder{Prefix: "rec"}
}

type RecordedOverlay struct {
	lines   [][]geom.LatLng
	opts    Options
	sets    int
	removed bool
}

func (o *RecordedOverlay) SetLatLngs(lines [][]geom.LatLng) {
	o.lines = CloneLines(lines)
	o.sets++
}

func (o *RecordedOverlay) LatLngs() [][]geom.LatLng { return CloneLines(o.lines) }
func (o *RecordedOverlay) Options() Options         { return o.opts }

// Sets counts SetLatLngs calls after creation.
func (o *RecordedOverlay) Sets() int { return o.sets }

func (o *RecordedOverlay) Removed() bool { return o.removed }

type RecordedPane struct {
	name, class string
}

func (p *RecordedPane) Name() string      { return p.name }
func (p *RecordedPane) ClassName() string { return p.class }

func (r *Recorder) Polyline(lines [][]geom.LatLng, opts Options) Overlay {
	o := &RecordedOverlay{lines: CloneLines(lines), opts: opts}
	r.overlays = append(r.overlays, o)
	return o
}

func (r *Recorder) CreatePane(name string) Pane {
	prefix := r.Prefix
	if prefix == "" {
		prefix = "rec"
	}
	p := &RecordedPane{name: name, class: PaneClass(prefix, name)}
	r.panes = append(r.panes, p)
	return p
}

func (r *Recorder) Remove(o Overlay) {
	if ro, ok := o.(*RecordedOverlay); ok {
		ro.removed = true
	}
}

// Overlays returns every overlay created so far, removed ones included.
func (r *Recorder) Overlays() []*RecordedOverlay {
	return append([]*RecordedOverlay(nil), r.overlays...)
}

// Live returns overlays not yet removed.
func (r *Recorder) Live() []*RecordedOverlay {
	var out []*RecordedOverlay
	for _, o := range r.overlays {
		if !o.removed {
			out = append(out, o)
		}
	}
	return out
}

// PanesCreated reports how many times CreatePane ran.
func (r *Recorder) PanesCreated() int { return len(r.panes) }
