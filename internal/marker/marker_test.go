package marker

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"geoverlay/internal/engine"
	"geoverlay/internal/geom"
)

func mustType(t *testing.T, raw string) Type {
	t.Helper()
	typ, err := DecodeType([]byte(raw))
	if err != nil {
		t.Fatalf("decode type: %v", err)
	}
	return typ
}

func newTestContext(cellSize float64) (Context, *engine.Recorder) {
	rec := engine.NewRecorder()
	return NewContext(rec, cellSize), rec
}

func TestPolylineCenteredGeometry(t *testing.T) {
	for _, c := range []float64{1, 4} {
		ctx, rec := newTestContext(c)
		p, err := NewPolyline(ctx, mustType(t, `{"type":"polyline","key":"k","data":{"points":[[0,0],[1,1]]}}`))
		if err != nil {
			t.Fatalf("new polyline: %v", err)
		}
		want := [][]geom.LatLng{{{Lat: c / 2, Lng: c / 2}, {Lat: 1 + c/2, Lng: 1 + c/2}}}
		if diff := cmp.Diff(want, p.Overlay().LatLngs()); diff != "" {
			t.Fatalf("cell %v geometry mismatch (-want +got):\n%s", c, diff)
		}
		if p.Key() != "k" {
			t.Fatalf("unexpected key: %q", p.Key())
		}
		if p.Overlay().Options().Pane != "" {
			t.Fatalf("unexpected pane: %q", p.Overlay().Options().Pane)
		}
		if rec.PanesCreated() != 0 {
			t.Fatalf("pane created without a pane name")
		}
	}
}

func TestPolylineDefaultsAndProperties(t *testing.T) {
	ctx, _ := newTestContext(1)
	p, err := NewPolyline(ctx, mustType(t, `{
		"type":"polyline","key":"k",
		"data":{"points":[[0,0]]},
		"options":{"properties":{"color":"#3388ff","weight":3,"smoothFactor":9}}
	}`))
	if err != nil {
		t.Fatalf("new polyline: %v", err)
	}
	want := engine.Options{
		SmoothFactor:        1.0,
		NoClip:              false,
		BubblingMouseEvents: true,
		Interactive:         true,
		Properties:          map[string]any{"color": "#3388ff", "weight": float64(3), "smoothFactor": float64(9)},
	}
	if diff := cmp.Diff(want, p.Overlay().Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestPolylinePaneWinsOverOptions(t *testing.T) {
	ctx, rec := newTestContext(1)
	p, err := NewPolyline(ctx, mustType(t, `{
		"type":"polyline","key":"k",
		"data":{"points":[[0,0],[1,1]],"pane":"roads"},
		"options":{"properties":{"pane":"overlayPane"}}
	}`))
	if err != nil {
		t.Fatalf("new polyline: %v", err)
	}
	if got := p.Overlay().Options().Pane; got != "roads" {
		t.Fatalf("unexpected pane: %q", got)
	}
	// the bag itself is not rewritten
	if got := p.Overlay().Options().Properties["pane"]; got != "overlayPane" {
		t.Fatalf("properties pane rewritten: %v", got)
	}
	if rec.PanesCreated() != 1 {
		t.Fatalf("unexpected panes created: %d", rec.PanesCreated())
	}

	// bag pane alone still places the overlay
	q, err := NewPolyline(ctx, mustType(t, `{"type":"polyline","key":"q","data":{"points":[]},"options":{"properties":{"pane":"overlayPane"}}}`))
	if err != nil {
		t.Fatalf("new polyline: %v", err)
	}
	if got := q.Overlay().Options().Pane; got != "overlayPane" {
		t.Fatalf("unexpected pane: %q", got)
	}
}

func TestPolylineSharesResolvedPane(t *testing.T) {
	ctx, rec := newTestContext(1)
	for _, key := range []string{"a", "b"} {
		if _, err := NewPolyline(ctx, mustType(t, `{"type":"polyline","key":"`+key+`","data":{"points":[[0,0]],"pane":"roads"}}`)); err != nil {
			t.Fatalf("new polyline %s: %v", key, err)
		}
	}
	if rec.PanesCreated() != 1 {
		t.Fatalf("expected one shared pane, got %d", rec.PanesCreated())
	}
}

func TestPolylineKeyFromData(t *testing.T) {
	ctx, _ := newTestContext(1)
	p, err := NewPolyline(ctx, mustType(t, `{"type":"line","data":{"key":"inner","points":[[0,0]]}}`))
	if err != nil {
		t.Fatalf("new polyline: %v", err)
	}
	if p.Key() != "inner" {
		t.Fatalf("unexpected key: %q", p.Key())
	}
}

func TestPolylineUpdateReplacesGeometry(t *testing.T) {
	ctx, rec := newTestContext(1)
	p, err := NewPolyline(ctx, mustType(t, `{
		"type":"polyline","key":"k",
		"data":{"points":[[0,0],[1,1],[2,2]],"pane":"roads"},
		"options":{"properties":{"color":"red"}}
	}`))
	if err != nil {
		t.Fatalf("new polyline: %v", err)
	}
	overlay := p.Overlay()
	before := overlay.Options()

	p.Update([]geom.Point{{5, 5}, {6, 7}})
	p.Update([]geom.Point{{5, 5}, {6, 7}})

	want := [][]geom.LatLng{{{Lat: 5.5, Lng: 5.5}, {Lat: 6.5, Lng: 7.5}}}
	if diff := cmp.Diff(want, overlay.LatLngs()); diff != "" {
		t.Fatalf("geometry mismatch (-want +got):\n%s", diff)
	}
	if p.Overlay() != overlay {
		t.Fatalf("update swapped the overlay")
	}
	if p.Key() != "k" {
		t.Fatalf("key changed: %q", p.Key())
	}
	if diff := cmp.Diff(before, overlay.Options()); diff != "" {
		t.Fatalf("options changed (-want +got):\n%s", diff)
	}
	if len(rec.Overlays()) != 1 {
		t.Fatalf("update created overlays: %d", len(rec.Overlays()))
	}
	if got := overlay.(*engine.RecordedOverlay).Sets(); got != 2 {
		t.Fatalf("expected one engine call per update, got %d", got)
	}

	p.Update(nil)
	if got := overlay.LatLngs(); len(got) != 1 || len(got[0]) != 0 {
		t.Fatalf("empty update left geometry: %+v", got)
	}
}

func TestMultiPolylinePlainGeometry(t *testing.T) {
	ctx, rec := newTestContext(8)
	m, err := NewMultiPolyline(ctx, mustType(t, `{"type":"multipolyline","data":[[[0,0],[1,0]],[[2,2],[3,3]]]}`))
	if err != nil {
		t.Fatalf("new multipolyline: %v", err)
	}
	want := [][]geom.LatLng{
		{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}},
		{{Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}},
	}
	if diff := cmp.Diff(want, m.Overlay().LatLngs()); diff != "" {
		t.Fatalf("geometry mismatch (-want +got):\n%s", diff)
	}
	if len(rec.Overlays()) != 1 {
		t.Fatalf("expected one overlay, got %d", len(rec.Overlays()))
	}
	if diff := cmp.Diff(engine.DefaultOptions(), m.Overlay().Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if m.Key() != "" {
		t.Fatalf("unexpected key: %q", m.Key())
	}
}

// MultiPolyline deliberately has no in-place update; a changed multi-line is
// rebuilt from a fresh descriptor.
func TestMultiPolylineIsNotUpdatable(t *testing.T) {
	ctx, _ := newTestContext(1)
	m, err := New(ctx, mustType(t, `{"type":"multiline","data":[[[0,0],[1,1]]]}`))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := m.(Updatable); ok {
		t.Fatalf("multipolyline must not implement Updatable")
	}
	if m.Kind() != KindMultiPolyline {
		t.Fatalf("unexpected kind: %v", m.Kind())
	}
}

func TestNewErrors(t *testing.T) {
	ctx, rec := newTestContext(1)
	if _, err := New(ctx, Type{Type: "circle", Data: []byte(`{}`)}); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	m, err := New(ctx, Type{Type: "polyline", Data: []byte(`{"points":[[1]]}`)})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil marker on error, got %#v", m)
	}
	if _, err := New(ctx, Type{Type: "multipolyline", Data: []byte(`{"points":[]}`)}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if len(rec.Overlays()) != 0 {
		t.Fatalf("failed construction created overlays")
	}
}

func TestDecodeType(t *testing.T) {
	if _, err := DecodeType([]byte(`{"type":"polyline"}`)); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected missing data error, got %v", err)
	}
	if _, err := DecodeType([]byte(`{`)); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestDecodeUpdateShapes(t *testing.T) {
	want := []geom.Point{{1, 2}, {3, 4}}
	for _, raw := range []string{`[[1,2],[3,4]]`, `{"points":[[1,2],[3,4]]}`, ` [[1,2],[3,4]]`} {
		got, err := DecodeUpdate([]byte(raw))
		if err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("decode %s mismatch (-want +got):\n%s", raw, diff)
		}
	}
	if _, err := DecodeUpdate([]byte(`[[1,2,3]]`)); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"polyline":      KindPolyline,
		"Line":          KindPolyline,
		"multipolyline": KindMultiPolyline,
		" multiline ":   KindMultiPolyline,
	}
	for tag, want := range cases {
		got, err := ParseKind(tag)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", tag, got, err)
		}
	}
}
