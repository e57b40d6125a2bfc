package main

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/daviddao/vtplay/internal/catalog"
	"github.com/daviddao/vtplay/internal/event"
	"github.com/daviddao/vtplay/internal/fps"
	"github.com/daviddao/vtplay/internal/pacer"
	"github.com/daviddao/vtplay/internal/player"
	"github.com/daviddao/vtplay/internal/vterm"
)

// --- Messages ---

// busEventMsg carries one event from the event bus.
type busEventMsg struct {
	ev event.Event
}

// busClosedMsg reports that the event bus stopped. It is fatal.
type busClosedMsg struct {
	err error
}

type catalogChangedMsg struct{}

type catalogReadyMsg struct {
	cat *catalog.Catalog
	err error
}

// --- Key bindings ---

type keyMap struct {
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Play   key.Binding
	Help   key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Play:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Play, k.Help, k.Quit},
	}
}

// --- Playback state ---

type playState int

const (
	stateIdle     playState = iota // no session, browsing the catalog
	statePlaying                   // session feeding frames
	stateFinished                  // session exhausted, last frame on screen
)

func (s playState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case statePlaying:
		return "playing"
	case stateFinished:
		return "finished"
	}
	return "?"
}

// --- Model ---

type uiModel struct {
	catalog  *catalog.Catalog
	selected int

	// session is replaced wholesale on every selection; nil while idle.
	session *player.Player
	pacer   *pacer.Pacer
	meter   *fps.Meter

	width    int
	height   int
	help     help.Model
	showHelp bool

	// err is the fatal error that ended the program, if any.
	err error

	now        func() time.Time
	newDecoder func(rows, cols int) player.Decoder
}

func newModel(cat *catalog.Catalog, pc *pacer.Pacer, width, height int) uiModel {
	m := uiModel{
		catalog: cat,
		pacer:   pc,
		width:   width,
		height:  height,
		help:    help.New(),
		now:     time.Now,
		newDecoder: func(rows, cols int) player.Decoder {
			return vterm.New(rows, cols)
		},
	}
	m.meter = fps.New(m.now())
	m.help.Width = width
	return m
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case busEventMsg:
		return m.handleEvent(msg.ev)

	case busClosedMsg:
		slog.Error("event bus closed", "err", msg.err)
		m.err = msg.err
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case catalogChangedMsg:
		return m, m.reloadCatalog()

	case catalogReadyMsg:
		if msg.err != nil {
			slog.Warn("catalog reload failed", "err", msg.err)
			break
		}
		m.swapCatalog(msg.cat)
	}

	return m, nil
}

func (m uiModel) handleEvent(ev event.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case event.Tick:
		m.tick()
	case event.Input:
		return m.handleKey(ev.Key)
	case event.Resize:
		m.resize(ev.Width, ev.Height)
	}
	return m, nil
}

// tick feeds the pacer and applies the advances it releases. Ticks always
// drain into the pacer; advances only reach a session that is still playing.
func (m *uiModel) tick() {
	now := m.now()
	due := m.pacer.Tick(now)
	if m.session == nil {
		return
	}
	for i := 0; i < due && !m.session.Completed(); i++ {
		if m.session.Advance() {
			m.meter.Tick(now)
		} else {
			slog.Debug("playback finished", "name", m.session.Name(), "frames", m.session.Frames())
		}
	}
}

func (m uiModel) handleKey(k event.Key) (tea.Model, tea.Cmd) {
	names := m.catalog.Names()

	switch {
	case key.Matches(k, keys.Quit):
		return m, tea.Quit

	case key.Matches(k, keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(k, keys.Down):
		if m.selected < len(names)-1 {
			m.selected++
		}

	case key.Matches(k, keys.Top):
		m.selected = 0

	case key.Matches(k, keys.Bottom):
		m.selected = max(0, len(names)-1)

	case key.Matches(k, keys.Play):
		if m.selected >= 0 && m.selected < len(names) {
			m.play(names[m.selected])
		}

	case key.Matches(k, keys.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// play discards the current session and starts name from its first frame,
// sized to the animation pane.
func (m *uiModel) play(name string) {
	asset, err := m.catalog.Get(name)
	if err != nil {
		slog.Warn("play", "err", err)
		return
	}
	for i, n := range m.catalog.Names() {
		if n == name {
			m.selected = i
			break
		}
	}
	rows, cols := m.animationSize()
	m.session = player.New(asset.Name, asset.Content, m.newDecoder(rows, cols))
	slog.Info("playback started", "name", name, "bytes", len(asset.Content), "rows", rows, "cols", cols)
}

// resize records the window size and resizes the session's terminal to the
// new animation pane, whether it is still playing or finished.
func (m *uiModel) resize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.help.Width = width
	if m.session != nil {
		rows, cols := m.animationSize()
		m.session.Resize(rows, cols)
		slog.Debug("session resized", "rows", rows, "cols", cols)
	}
}

func (m uiModel) state() playState {
	switch {
	case m.session == nil:
		return stateIdle
	case m.session.Completed():
		return stateFinished
	}
	return statePlaying
}

func (m uiModel) reloadCatalog() tea.Cmd {
	dir := m.catalog.Dir
	return func() tea.Msg {
		cat, err := catalog.Build(dir)
		return catalogReadyMsg{cat: cat, err: err}
	}
}

// swapCatalog installs a rebuilt catalog, keeping the highlighted name when
// it still exists. The running session keeps its own content.
func (m *uiModel) swapCatalog(cat *catalog.Catalog) {
	var current string
	if names := m.catalog.Names(); m.selected < len(names) {
		current = names[m.selected]
	}
	m.catalog = cat
	names := cat.Names()
	m.selected = min(m.selected, max(0, len(names)-1))
	for i, n := range names {
		if n == current {
			m.selected = i
			break
		}
	}
	slog.Info("catalog reloaded", "dir", cat.Dir, "animations", len(names))
}
