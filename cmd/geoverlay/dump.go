package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"geoverlay/internal/config"
	"geoverlay/internal/engine"
	"geoverlay/internal/feed"
	"geoverlay/internal/logging"
	"geoverlay/internal/marker"
)

type dumpEntry struct {
	Key        string         `yaml:"key,omitempty"`
	Kind       string         `yaml:"kind"`
	Pane       string         `yaml:"pane,omitempty"`
	Sets       int            `yaml:"sets"`
	Properties map[string]any `yaml:"properties,omitempty"`
	Lines      [][][2]float64 `yaml:"lines,flow"`
}

// dumpOverlays applies descriptors against a recording engine and prints
// what a renderer would hold afterwards.
func dumpOverlays(cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	if cfg.Descriptors == "" && !cfg.FollowStdin {
		return errors.New("nothing to dump: pass a descriptor file or set follow_stdin")
	}
	log := logging.NewWriter("geoverlay", cfg.LogLevel, stderr)
	rec := engine.NewRecorder()
	rec.Prefix = cfg.PanePrefix
	store := marker.NewStore(marker.NewContext(rec, cfg.CellSize), log)

	if cfg.Descriptors != "" {
		types, err := feed.LoadFile(cfg.Descriptors)
		if err != nil {
			return fmt.Errorf("load %s: %w", cfg.Descriptors, err)
		}
		for _, t := range types {
			applyLogged(store, log, t)
		}
	}
	if cfg.FollowStdin {
		d := feed.NewDecoder(stdin)
		for {
			t, err := d.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				if errors.Is(err, marker.ErrMalformed) {
					log.Warn().Err(err).Msg("skipping descriptor")
					continue
				}
				return fmt.Errorf("read stdin: %w", err)
			}
			applyLogged(store, log, t)
		}
	}

	entries := make([]dumpEntry, 0, store.Len())
	for _, mk := range store.Markers() {
		entries = append(entries, toDumpEntry(mk))
	}
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}

func applyLogged(store *marker.Store, log zerolog.Logger, t marker.Type) {
	if _, _, err := store.Apply(t); err != nil {
		log.Warn().Err(err).Str("type", t.Type).Str("key", t.Key).Msg("descriptor rejected")
	}
}

func toDumpEntry(mk marker.Marker) dumpEntry {
	o := mk.Overlay()
	opts := o.Options()
	e := dumpEntry{
		Key:        mk.Key(),
		Kind:       string(mk.Kind()),
		Pane:       opts.Pane,
		Properties: opts.Properties,
	}
	if ro, ok := o.(*engine.RecordedOverlay); ok {
		e.Sets = ro.Sets()
	}
	for _, ls := range o.LatLngs() {
		line := make([][2]float64, 0, len(ls))
		for _, ll := range ls {
			line = append(line, [2]float64{ll.Lat, ll.Lng})
		}
		e.Lines = append(e.Lines, line)
	}
	return e
}
