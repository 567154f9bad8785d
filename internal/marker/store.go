package marker

import (
	"github.com/rs/zerolog"
)

// Action reports what Store.Apply did with a descriptor.
type Action int

const (
	Created Action = iota
	Updated
	Replaced
)

func (a Action) String() string {
	switch a {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Replaced:
		return "replaced"
	}
	return "unknown"
}

// Store retains markers by key and routes repeat descriptors to the live
// instance. It is not safe for concurrent use; keep it on one event loop.
type Store struct {
	ctx     Context
	log     zerolog.Logger
	markers []Marker
	byKey   map[string]Marker
}

func NewStore(ctx Context, log zerolog.Logger) *Store {
	return &Store{ctx: ctx, log: log, byKey: make(map[string]Marker)}
}

func (s *Store) Context() Context { return s.ctx }

// Apply creates a marker for t, or updates the one already held under its
// key. A keyed marker without an update path is torn down and rebuilt.
func (s *Store) Apply(t Type) (Marker, Action, error) {
	kind, err := ParseKind(t.Type)
	if err != nil {
		return nil, Created, err
	}
	key := t.Key
	if key == "" && kind == KindPolyline {
		d, err := decodePolylineData(t.Data)
		if err != nil {
			return nil, Created, err
		}
		key = d.Key
	}

	if existing, ok := s.byKey[key]; ok && key != "" {
		if upd, ok := existing.(Updatable); ok && existing.Kind() == kind {
			pts, err := DecodeUpdate(t.Data)
			if err != nil {
				return nil, Updated, err
			}
			upd.Update(pts)
			s.log.Debug().Str("key", key).Str("kind", string(kind)).Int("points", len(pts)).Msg("marker updated")
			return existing, Updated, nil
		}
		m, err := New(s.ctx, t)
		if err != nil {
			return nil, Replaced, err
		}
		s.ctx.Engine.Remove(existing.Overlay())
		for i, old := range s.markers {
			if old == existing {
				s.markers[i] = m
				break
			}
		}
		s.byKey[key] = m
		s.log.Debug().Str("key", key).Str("kind", string(kind)).Msg("marker replaced")
		return m, Replaced, nil
	}

	m, err := New(s.ctx, t)
	if err != nil {
		return nil, Created, err
	}
	s.markers = append(s.markers, m)
	if key != "" {
		s.byKey[key] = m
	}
	s.log.Debug().Str("key", key).Str("kind", string(kind)).Msg("marker created")
	return m, Created, nil
}

// Get returns the marker held under key.
func (s *Store) Get(key string) (Marker, bool) {
	m, ok := s.byKey[key]
	return m, ok
}

// Remove discards the keyed marker and its overlay.
func (s *Store) Remove(key string) bool {
	m, ok := s.byKey[key]
	if !ok {
		return false
	}
	delete(s.byKey, key)
	s.drop(m)
	return true
}

// Clear discards every marker, keyless ones included.
func (s *Store) Clear() {
	for _, m := range s.markers {
		s.ctx.Engine.Remove(m.Overlay())
	}
	s.markers = nil
	s.byKey = make(map[string]Marker)
}

func (s *Store) drop(m Marker) {
	s.ctx.Engine.Remove(m.Overlay())
	for i, cur := range s.markers {
		if cur == m {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			return
		}
	}
}

// Markers lists held markers in arrival order.
func (s *Store) Markers() []Marker {
	return append([]Marker(nil), s.markers...)
}

func (s *Store) Len() int { return len(s.markers) }
