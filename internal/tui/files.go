package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geoverlay/internal/feed"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

var descriptorExts = map[string]bool{
	".json":    true,
	".ndjson":  true,
	".jsonl":   true,
	".yaml":    true,
	".yml":     true,
	".geojson": true,
	".wkt":     true,
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if descriptorExts[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no descriptor files in current directory"
	}
}

// loadPath applies every descriptor in a file and reframes the view.
func (m *Model) loadPath(p string) {
	types, err := feed.LoadFile(p)
	if err != nil {
		m.log.Error().Err(err).Str("path", p).Msg("load failed")
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.apply(filepath.Base(p), types)
}
