package tui

import (
	"errors"
	"io"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"geoverlay/internal/canvas"
	"geoverlay/internal/feed"
	"geoverlay/internal/geom"
	"geoverlay/internal/marker"
)

// Deps wires the model to its engine, store and optional live feed.
type Deps struct {
	Store  *marker.Store
	Canvas *canvas.Canvas
	Log    zerolog.Logger
	Feed   *feed.Decoder
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Overlays
	store  *marker.Store
	canvas *canvas.Canvas
	log    zerolog.Logger
	bbox   geom.BBox
	hasBox bool

	// live descriptor feed
	feed     *feed.Decoder
	received int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverAt     geom.LatLng
	hoverKey    string

	// markers table
	showAttrs bool
	tbl       table.Model
}

func New(d Deps) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geoverlay ready",
		store:       d.Store,
		canvas:      d.Canvas,
		log:         d.Log,
		feed:        d.Feed,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	dl := list.NewDefaultDelegate()
	dl.ShowDescription = false
	m.l = list.New(nil, dl, 0, 0)
	m.l.Title = "Descriptors"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a JSON descriptor or WKT (LINESTRING, MULTILINESTRING). Press Enter to apply; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// markers table setup
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(markerColumns()))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a descriptor file at launch.
func NewWithPath(d Deps, path string) Model {
	m := New(d)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return waitForDescriptor(m.feed)
}

type descriptorMsg struct{ t marker.Type }

type feedErrMsg struct{ err error }

type feedDoneMsg struct{}

// waitForDescriptor blocks on the feed in a command goroutine and hands the
// result back to Update, which owns the store.
func waitForDescriptor(d *feed.Decoder) tea.Cmd {
	return func() tea.Msg {
		t, err := d.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return feedDoneMsg{}
			}
			return feedErrMsg{err: err}
		}
		return descriptorMsg{t: t}
	}
}
