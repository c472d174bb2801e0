package tui

import (
	"log/slog"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geofence/internal/config"
	"geofence/internal/draw"
	"geofence/internal/fence"
	"geofence/internal/logger"
	"geofence/internal/scene"
)

type Model struct {
	cfg config.Config
	log *slog.Logger

	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Map engine. Pointers so that copies of the Model share one scene.
	vp       *scene.Viewport
	raster   *scene.Raster
	input    *scene.InputHandler
	session  *draw.Session
	backdrop *backdrop

	// last rendered frame
	frameNo uint64
	canvas  string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// hover state
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// geofence table
	showFences bool
	tbl        table.Model
	tblIDs     []string
}

type frameMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func New(cfg config.Config, log *slog.Logger) Model {
	if log == nil {
		log = logger.L()
	}
	m := Model{
		cfg:         cfg,
		log:         log,
		showSidebar: false,
		helpVisible: true,
		status:      "geofence ready",
	}
	m.cwd, _ = os.Getwd()

	vp := scene.NewViewport(cfg.CenterLon, cfg.CenterLat, cfg.SpanDeg, 80, 20)
	m.vp = &vp
	m.raster = scene.NewRaster()
	m.input = scene.NewInputHandler()
	color, err := scene.ParseHex(cfg.DrawColor)
	if err != nil {
		log.Warn("invalid draw colour, using red", "color", cfg.DrawColor, "err", err)
		color = scene.Red
	}
	m.session = draw.NewSession(draw.Options{
		Builder:        m.raster,
		Picker:         m.vp,
		Store:          fence.NewStore(log),
		Color:          color.WithAlpha(cfg.DrawAlpha),
		ClampToSurface: cfg.ClampToSurface,
		Logger:         log,
	})
	m.session.Bind(m.input)
	m.backdrop = newBackdrop(m.raster)

	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here. Polygons become geofences, points are checked. Enter to apply; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// geofence table setup
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(fenceColumns))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath imports a file at launch.
func NewWithPath(cfg config.Config, log *slog.Logger, path string) Model {
	m := New(cfg, log)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return tick(m.cfg.FrameInterval) }

// Session exposes the drawing session.
func (m Model) Session() *draw.Session { return m.session }
