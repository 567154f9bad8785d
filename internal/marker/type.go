package marker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"geoverlay/internal/geom"
)

var (
	ErrUnknownType = errors.New("unknown marker type")
	ErrMalformed   = errors.New("malformed descriptor")
)

type Kind string

const (
	KindPolyline      Kind = "polyline"
	KindMultiPolyline Kind = "multipolyline"
)

// ParseKind maps a descriptor type tag onto a Kind.
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "polyline", "line":
		return KindPolyline, nil
	case "multipolyline", "multiline", "multi_polyline":
		return KindMultiPolyline, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, tag)
}

// Type is the wire descriptor a marker is built from. Data stays raw until
// the variant decodes it.
type Type struct {
	Type    string          `json:"type"`
	Key     string          `json:"key,omitempty"`
	Data    json.RawMessage `json:"data"`
	Options *TypeOptions    `json:"options,omitempty"`
}

type TypeOptions struct {
	Properties map[string]any `json:"properties,omitempty"`
}

func (t Type) properties() map[string]any {
	if t.Options == nil {
		return nil
	}
	return t.Options.Properties
}

// DecodeType parses one JSON descriptor.
func DecodeType(b []byte) (Type, error) {
	var t Type
	if err := json.Unmarshal(b, &t); err != nil {
		return Type{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(t.Data) == 0 {
		return Type{}, fmt.Errorf("%w: missing data", ErrMalformed)
	}
	return t, nil
}

// polylineData is the data payload of a polyline descriptor.
type polylineData struct {
	Key    string       `json:"key,omitempty"`
	Points []geom.Point `json:"points"`
	Pane   string       `json:"pane,omitempty"`
}

func decodePolylineData(raw json.RawMessage) (polylineData, error) {
	var d polylineData
	if err := json.Unmarshal(raw, &d); err != nil {
		return polylineData{}, fmt.Errorf("%w: polyline data: %v", ErrMalformed, err)
	}
	return d, nil
}

func decodeMultiPolylineData(raw json.RawMessage) ([][]geom.Point, error) {
	var lines [][]geom.Point
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: multipolyline data: %v", ErrMalformed, err)
	}
	return lines, nil
}

// DecodeUpdate reads an update payload. Both the bare point list and the
// construction shape {"points": [...]} are accepted.
func DecodeUpdate(raw json.RawMessage) ([]geom.Point, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var pts []geom.Point
		if err := json.Unmarshal(raw, &pts); err != nil {
			return nil, fmt.Errorf("%w: update: %v", ErrMalformed, err)
		}
		return pts, nil
	}
	d, err := decodePolylineData(raw)
	if err != nil {
		return nil, err
	}
	return d.Points, nil
}
