// Package feed turns byte streams and files into marker descriptors.
package feed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"geoverlay/internal/geom"
	"geoverlay/internal/marker"
)

const maxLine = 4 << 20

// Decoder reads newline-delimited JSON descriptors.
type Decoder struct {
	sc   *bufio.Scanner
	line int
}

func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Decoder{sc: sc}
}

// Next returns the next descriptor, skipping blank lines. It returns io.EOF
// once the stream is drained.
func (d *Decoder) Next() (marker.Type, error) {
	for d.sc.Scan() {
		d.line++
		b := bytes.TrimSpace(d.sc.Bytes())
		if len(b) == 0 {
			continue
		}
		t, err := marker.DecodeType(b)
		if err != nil {
			return marker.Type{}, fmt.Errorf("line %d: %w", d.line, err)
		}
		return t, nil
	}
	if err := d.sc.Err(); err != nil {
		return marker.Type{}, err
	}
	return marker.Type{}, io.EOF
}

// LoadFile reads every descriptor from path. The extension picks the format.
func LoadFile(path string) ([]marker.Type, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var out []marker.Type
	switch ext {
	case ".json":
		out, err = decodeJSON(b)
	case ".ndjson", ".jsonl":
		out, err = decodeAll(NewDecoder(bytes.NewReader(b)))
	case ".yaml", ".yml":
		out, err = decodeYAML(b)
	case ".geojson":
		var d geom.Data
		if d, err = geom.ParseGeo(b); err == nil {
			out, err = FromData(d)
		}
	case ".wkt":
		var d geom.Data
		if d, err = geom.ParseWKTData(string(b)); err == nil {
			out, err = FromData(d)
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor file: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}

func decodeAll(d *Decoder) ([]marker.Type, error) {
	var out []marker.Type
	for {
		t, err := d.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
}

// decodeJSON accepts either one descriptor or an array of them.
func decodeJSON(b []byte) ([]marker.Type, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(b, &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", marker.ErrMalformed, err)
		}
		out := make([]marker.Type, 0, len(raws))
		for i, raw := range raws {
			t, err := marker.DecodeType(raw)
			if err != nil {
				return nil, fmt.Errorf("descriptor %d: %w", i, err)
			}
			out = append(out, t)
		}
		return out, nil
	}
	t, err := marker.DecodeType(b)
	if err != nil {
		return nil, err
	}
	return []marker.Type{t}, nil
}

// decodeYAML goes through JSON so both formats share one decoding path.
func decodeYAML(b []byte) ([]marker.Type, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", marker.ErrMalformed, err)
	}
	if _, ok := doc.([]any); !ok {
		doc = []any{doc}
	}
	j, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", marker.ErrMalformed, err)
	}
	return decodeJSON(j)
}

// FromData converts loaded line geometries into descriptors. File
// coordinates are continuous, so every group becomes a multipolyline (drawn
// as given, never centered). Anonymous groups get positional keys so a
// reload replaces them; feature properties ride along as the options bag.
func FromData(d geom.Data) ([]marker.Type, error) {
	out := make([]marker.Type, 0, len(d.Groups))
	for i, g := range d.Groups {
		t := marker.Type{Type: string(marker.KindMultiPolyline), Key: g.Key}
		if t.Key == "" {
			if g.Multi {
				t.Key = fmt.Sprintf("multiline-%d", i)
			} else {
				t.Key = fmt.Sprintf("line-%d", i)
			}
		}
		raw, err := json.Marshal(d.Lines[g.Start:g.End])
		if err != nil {
			return nil, err
		}
		t.Data = raw
		if len(g.Props) > 0 {
			t.Options = &marker.TypeOptions{Properties: g.Props}
		}
		out = append(out, t)
	}
	return out, nil
}

// ParseText reads pasted input: JSON descriptors when it looks like JSON,
// WKT otherwise.
func ParseText(s string) ([]marker.Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", marker.ErrMalformed)
	}
	if s[0] == '{' || s[0] == '[' {
		return decodeJSON([]byte(s))
	}
	d, err := geom.ParseWKTData(s)
	if err != nil {
		return nil, err
	}
	return FromData(d)
}
