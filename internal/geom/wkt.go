package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKTData parses the line subset of WKT into Data.
// Supported: LINESTRING(x y, ...), MULTILINESTRING((x y, ...), ...), POLYGON((x y, ...), ...)
func ParseWKTData(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var d Data
	var seen bool
	mkbb := func(x, y float64) {
		if !seen {
			d.BBox = BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
			seen = true
			return
		}
		d.BBox = d.BBox.Extend(LatLng{Lat: x, Lng: y})
	}
	parseTuples := func(block string) [][2]float64 {
		var out [][2]float64
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, [2]float64{x, y})
		}
		return out
	}
	parseRings := func(block string) [][][2]float64 {
		// normalize spaces around ring separators
		norm := strings.ReplaceAll(block, "), (", "),(")
		norm = strings.ReplaceAll(norm, ") , (", "),(")
		var rings [][][2]float64
		for _, rp := range strings.Split(norm, "),(") {
			if pts := parseTuples(rp); len(pts) > 0 {
				rings = append(rings, pts)
			}
		}
		return rings
	}
	add := func(lines [][][2]float64, multi bool) {
		start := len(d.Lines)
		for _, ls := range lines {
			d.Lines = append(d.Lines, ls)
			for _, p := range ls {
				mkbb(p[0], p[1])
			}
		}
		d.Groups = append(d.Groups, LineGroup{Start: start, End: len(d.Lines), Multi: multi})
	}
	switch {
	case strings.HasPrefix(up, "LINESTRING"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return Data{}, errors.New("wkt linestring: invalid")
		}
		ls := parseTuples(s[i+1 : j])
		if len(ls) == 0 {
			return Data{}, errors.New("wkt linestring: no coordinates parsed")
		}
		add([][][2]float64{ls}, false)
		return d, nil
	case strings.HasPrefix(up, "MULTILINESTRING"), strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return Data{}, errors.New("wkt multilinestring: invalid")
		}
		rings := parseRings(s[i+2 : j])
		if len(rings) == 0 {
			return Data{}, errors.New("wkt multilinestring: no coordinates parsed")
		}
		add(rings, true)
		return d, nil
	}
	return Data{}, errors.New("unsupported wkt type")
}
