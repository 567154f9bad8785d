package marker

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"geoverlay/internal/engine"
	"geoverlay/internal/geom"
)

func newTestStore() (*Store, *engine.Recorder) {
	ctx, rec := newTestContext(1)
	return NewStore(ctx, zerolog.Nop()), rec
}

func TestStoreRoutesUpdatesByKey(t *testing.T) {
	s, rec := newTestStore()

	m1, act, err := s.Apply(mustType(t, `{"type":"polyline","key":"bus","data":{"points":[[0,0],[1,1]],"pane":"transit"}}`))
	if err != nil || act != Created {
		t.Fatalf("apply create: %v %v", act, err)
	}
	m2, act, err := s.Apply(mustType(t, `{"type":"polyline","key":"bus","data":{"points":[[4,4]]}}`))
	if err != nil || act != Updated {
		t.Fatalf("apply update: %v %v", act, err)
	}
	if m1 != m2 {
		t.Fatalf("update returned a different marker")
	}
	if len(rec.Overlays()) != 1 {
		t.Fatalf("update created overlays: %d", len(rec.Overlays()))
	}
	want := [][]geom.LatLng{{{Lat: 4.5, Lng: 4.5}}}
	if diff := cmp.Diff(want, m1.Overlay().LatLngs()); diff != "" {
		t.Fatalf("geometry mismatch (-want +got):\n%s", diff)
	}
	if got := m1.Overlay().Options().Pane; got != "transit" {
		t.Fatalf("update moved pane: %q", got)
	}
	if s.Len() != 1 {
		t.Fatalf("unexpected len: %d", s.Len())
	}
}

func TestStoreKeyInsideData(t *testing.T) {
	s, _ := newTestStore()
	if _, _, err := s.Apply(mustType(t, `{"type":"polyline","data":{"key":"k","points":[[0,0]]}}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	_, act, err := s.Apply(mustType(t, `{"type":"polyline","data":{"key":"k","points":[[1,1]]}}`))
	if err != nil || act != Updated {
		t.Fatalf("apply update: %v %v", act, err)
	}
	if _, ok := s.Get("k"); !ok {
		t.Fatalf("marker not retained under data key")
	}
}

func TestStoreReplacesKeyedMultiPolyline(t *testing.T) {
	s, rec := newTestStore()
	first, _, err := s.Apply(mustType(t, `{"type":"multipolyline","key":"grid","data":[[[0,0],[1,1]]]}`))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	second, act, err := s.Apply(mustType(t, `{"type":"multipolyline","key":"grid","data":[[[2,2],[3,3]],[[4,4],[5,5]]]}`))
	if err != nil || act != Replaced {
		t.Fatalf("apply replace: %v %v", act, err)
	}
	if first == second {
		t.Fatalf("expected a fresh marker")
	}
	if !first.Overlay().(*engine.RecordedOverlay).Removed() {
		t.Fatalf("old overlay not removed")
	}
	if len(rec.Live()) != 1 || s.Len() != 1 {
		t.Fatalf("unexpected live overlays %d / markers %d", len(rec.Live()), s.Len())
	}
}

func TestStoreReplacesOnKindChange(t *testing.T) {
	s, _ := newTestStore()
	if _, _, err := s.Apply(mustType(t, `{"type":"multipolyline","key":"k","data":[[[0,0]]]}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	m, act, err := s.Apply(mustType(t, `{"type":"polyline","key":"k","data":{"points":[[0,0]]}}`))
	if err != nil || act != Replaced {
		t.Fatalf("apply: %v %v", act, err)
	}
	if m.Kind() != KindPolyline {
		t.Fatalf("unexpected kind: %v", m.Kind())
	}
}

func TestStoreKeylessMarkersAccumulate(t *testing.T) {
	s, rec := newTestStore()
	for i := 0; i < 3; i++ {
		if _, act, err := s.Apply(mustType(t, `{"type":"multipolyline","data":[[[0,0],[1,1]]]}`)); err != nil || act != Created {
			t.Fatalf("apply %d: %v %v", i, act, err)
		}
	}
	if s.Len() != 3 || len(rec.Live()) != 3 {
		t.Fatalf("unexpected markers %d / overlays %d", s.Len(), len(rec.Live()))
	}
}

func TestStoreRemoveAndClear(t *testing.T) {
	s, rec := newTestStore()
	for _, raw := range []string{
		`{"type":"polyline","key":"a","data":{"points":[[0,0]]}}`,
		`{"type":"polyline","key":"b","data":{"points":[[0,0]]}}`,
		`{"type":"multipolyline","data":[[[0,0]]]}`,
	} {
		if _, _, err := s.Apply(mustType(t, raw)); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	if !s.Remove("a") {
		t.Fatalf("remove a failed")
	}
	if s.Remove("a") {
		t.Fatalf("second remove should report false")
	}
	keys := []string{}
	for _, m := range s.Markers() {
		keys = append(keys, m.Key())
	}
	if diff := cmp.Diff([]string{"b", ""}, keys); diff != "" {
		t.Fatalf("markers mismatch (-want +got):\n%s", diff)
	}
	s.Clear()
	if s.Len() != 0 || len(rec.Live()) != 0 {
		t.Fatalf("clear left markers %d / overlays %d", s.Len(), len(rec.Live()))
	}
}

func TestStoreApplyErrors(t *testing.T) {
	s, _ := newTestStore()
	if _, _, err := s.Apply(Type{Type: "circle", Data: []byte(`{}`)}); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if _, _, err := s.Apply(mustType(t, `{"type":"polyline","key":"k","data":{"points":[[0,0]]}}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, _, err := s.Apply(mustType(t, `{"type":"polyline","key":"k","data":{"points":[[0]]}}`)); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	m, _ := s.Get("k")
	want := [][]geom.LatLng{{{Lat: 0.5, Lng: 0.5}}}
	if diff := cmp.Diff(want, m.Overlay().LatLngs()); diff != "" {
		t.Fatalf("failed update touched geometry (-want +got):\n%s", diff)
	}
}
