package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadGeo reads a GeoJSON file and returns its line geometries.
func LoadGeo(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeo(b)
}

// ParseGeo extracts LineString, MultiLineString and Polygon rings from a
// GeoJSON document. Points are ignored: they have no polyline rendition.
// Each geometry becomes one LineGroup; feature id or properties.key names it.
func ParseGeo(b []byte) (Data, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}
	var d Data
	var seen bool
	addPt := func(pt [2]float64) {
		if !seen {
			d.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
			seen = true
			return
		}
		d.BBox = d.BBox.Extend(LatLng{Lat: pt[0], Lng: pt[1]})
	}
	addGroup := func(lines [][][2]float64, multi bool, key string, props map[string]any) {
		if len(lines) == 0 {
			return
		}
		start := len(d.Lines)
		for _, ls := range lines {
			d.Lines = append(d.Lines, ls)
			for _, p := range ls {
				addPt(p)
			}
		}
		d.Groups = append(d.Groups, LineGroup{Start: start, End: len(d.Lines), Multi: multi, Key: key, Props: props})
	}
	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return [2]float64{x, y}, true
			}
		}
		return [2]float64{}, false
	}
	parseLineString := func(v any) (ls [][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ls = append(ls, pt)
			}
		}
		return ls, len(ls) > 0
	}
	parseLineStrings := func(v any) (m [][][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if ls, ok := parseLineString(el); ok {
				m = append(m, ls)
			}
		}
		return m, len(m) > 0
	}
	walkGeom := func(g map[string]any, key string, props map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "LineString":
			if ls, ok := parseLineString(g["coordinates"]); ok {
				addGroup([][][2]float64{ls}, false, key, props)
			}
		case "MultiLineString", "Polygon":
			// polygon rings render as an outline, one sub-line per ring
			if mls, ok := parseLineStrings(g["coordinates"]); ok {
				addGroup(mls, true, key, props)
			}
		}
	}
	walkFeature := func(fm map[string]any) {
		g, ok := fm["geometry"].(map[string]any)
		if !ok {
			return
		}
		props, _ := fm["properties"].(map[string]any)
		walkGeom(g, featureKey(fm, props), props)
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					walkFeature(fm)
				}
			}
		}
	default:
		if len(raw) > 0 {
			walkGeom(raw, "", nil)
		}
	}
	if len(d.Lines) == 0 {
		return Data{}, errors.New("geojson: no line geometries found")
	}
	return d, nil
}

func featureKey(fm, props map[string]any) string {
	switch id := fm["id"].(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%g", id)
	}
	if k, ok := props["key"].(string); ok {
		return k
	}
	return ""
}
