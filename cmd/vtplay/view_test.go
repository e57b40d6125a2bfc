package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daviddao/vtplay/internal/catalog"
	"github.com/daviddao/vtplay/internal/event"
	"github.com/daviddao/vtplay/internal/fps"
	"github.com/daviddao/vtplay/internal/pacer"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// testCatalog creates a small catalog for rendering tests.
func testCatalog() *catalog.Catalog {
	return catalog.New(
		catalog.Asset{Name: "alpha.vt", Content: []byte("A\r\nB\r\n"), Description: "first letters"},
		catalog.Asset{Name: "beta.vt", Content: []byte("1\r\n2\r\n3\r\n")},
		catalog.Asset{Name: "empty.vt"},
	)
}

// testModel creates a 100x30 uiModel at 10 fps driven by a fake clock.
func testModel(t *testing.T) (uiModel, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: t0}
	pc, err := pacer.New(10, clock.now())
	if err != nil {
		t.Fatalf("pacer.New: %v", err)
	}
	m := newModel(testCatalog(), pc, 100, 30)
	m.now = clock.now
	m.meter = fps.New(clock.now())
	return m, clock
}

func keyFor(s string) event.Key {
	switch s {
	case "enter":
		return event.Key{Code: event.KeyEnter}
	case "esc":
		return event.Key{Code: event.KeyEsc}
	case "up":
		return event.Key{Code: event.KeyUp}
	case "down":
		return event.Key{Code: event.KeyDown}
	case "home":
		return event.Key{Code: event.KeyHome}
	case "end":
		return event.Key{Code: event.KeyEnd}
	}
	if strings.HasPrefix(s, "ctrl+") {
		return event.CtrlKey(rune(s[len(s)-1]))
	}
	return event.RuneKey([]rune(s)[0])
}

func update(m uiModel, msg tea.Msg) (uiModel, tea.Cmd) {
	nm, cmd := m.Update(msg)
	return nm.(uiModel), cmd
}

func keyEventFor(s string) event.Event {
	return event.KeyEvent(keyFor(s))
}

func press(m uiModel, keys ...string) (uiModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(m, busEventMsg{ev: keyEventFor(k)})
	}
	return m, cmd
}

func tick(m uiModel) uiModel {
	m, _ = update(m, busEventMsg{ev: event.TickEvent()})
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestViewLoading(t *testing.T) {
	m, _ := testModel(t)
	m.width = 0 // triggers "Loading..." state

	out := m.View()
	if out != "Loading..." {
		t.Errorf("expected 'Loading...' when width=0, got %q", out)
	}
}

func TestViewIdle(t *testing.T) {
	m, _ := testModel(t)
	out := m.View()

	for _, want := range []string{"Animations", "alpha.vt", "beta.vt", "empty.vt", "idle", "0.00", "press enter"} {
		if !strings.Contains(out, want) {
			t.Errorf("idle view should contain %q", want)
		}
	}
	// Highlight symbol on the first entry.
	if !strings.Contains(out, ">alpha.vt") {
		t.Error("idle view should highlight the selected entry with '>'")
	}
	// Description of the highlighted entry is shown as a hint.
	if !strings.Contains(out, "first letters") {
		t.Error("idle view should show the highlighted animation's description")
	}
}

func TestViewFitsWindow(t *testing.T) {
	m, _ := testModel(t)
	m, _ = press(m, "enter")
	m = tick(m)

	for _, size := range [][2]int{{100, 30}, {60, 12}, {200, 50}} {
		m, _ = update(m, tea.WindowSizeMsg{Width: size[0], Height: size[1]})
		out := m.View()
		lines := strings.Split(out, "\n")
		if len(lines) != size[1] {
			t.Errorf("%dx%d: view has %d lines, want %d", size[0], size[1], len(lines), size[1])
		}
		for i, l := range lines {
			if w := lipglossWidth(l); w > size[0] {
				t.Errorf("%dx%d: line %d is %d wide", size[0], size[1], i, w)
			}
		}
	}
}

func TestViewPlayingShowsFrame(t *testing.T) {
	m, clock := testModel(t)
	m, _ = press(m, "enter")
	clock.advance(100 * time.Millisecond)
	m = tick(m)

	out := m.View()
	if got := m.session.Snapshot().Line(0); got != "A" {
		t.Errorf("first row = %q, want %q", got, "A")
	}
	if !strings.Contains(out, "▶") || !strings.Contains(out, "alpha.vt") {
		t.Error("status bar should show the playing animation")
	}
	if !strings.Contains(out, "frame 1") {
		t.Error("status bar should show the frame count")
	}
}

func TestViewFinishedStatus(t *testing.T) {
	m, clock := testModel(t)
	m, _ = press(m, "enter")
	clock.advance(time.Second)
	m = tick(m)

	if m.state() != stateFinished {
		t.Fatalf("state = %v, want finished", m.state())
	}
	out := m.View()
	if !strings.Contains(out, "finished after 2 frames") {
		t.Errorf("status bar should report completion, got %q", m.renderStatusBar())
	}
	// The last frame stays on screen.
	if got := m.session.Snapshot().Line(1); got != "B" {
		t.Errorf("second row = %q, want %q", got, "B")
	}
}

func TestViewHelpToggle(t *testing.T) {
	m, _ := testModel(t)
	m, _ = press(m, "?")
	if !m.showHelp {
		t.Fatal("? should enable help")
	}
	if !strings.Contains(m.View(), "play") {
		t.Error("help view should list the play binding")
	}
	m, _ = press(m, "?")
	if m.showHelp {
		t.Error("? should toggle help off")
	}
}

func TestRenderListScrollsToSelection(t *testing.T) {
	var assets []catalog.Asset
	for _, c := range "abcdefghijklmnopqrstuvwxyz" {
		assets = append(assets, catalog.Asset{Name: string(c) + ".vt"})
	}
	m, _ := testModel(t)
	m.catalog = catalog.New(assets...)
	m.height = 10
	m, _ = press(m, "end")

	out := m.renderList(18, 7)
	if !strings.Contains(out, ">z.vt") {
		t.Error("list should scroll so the last entry is visible and selected")
	}
	if strings.Contains(out, " a.vt") {
		t.Error("list should have scrolled past the first entry")
	}
	if !strings.Contains(out, "↑") || !strings.Contains(out, "↓") {
		t.Error("list should show scrollbar markers when entries overflow")
	}
}

func TestScrollbar(t *testing.T) {
	if bar := scrollbar(3, 0, 5); bar != nil {
		t.Errorf("scrollbar for fitting list = %v, want nil", bar)
	}
	bar := scrollbar(20, 0, 6)
	if len(bar) != 6 || bar[0] != "↑" || bar[5] != "↓" || bar[1] != "█" {
		t.Errorf("scrollbar top = %v", bar)
	}
	bar = scrollbar(20, 19, 6)
	if bar[4] != "█" {
		t.Errorf("scrollbar bottom = %v, thumb should be at index 4", bar)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"toolongname", 5, "tool…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestTruncateLines(t *testing.T) {
	got := truncateLines("abcdef\nxy", 3)
	if got != "abc\nxy" {
		t.Errorf("truncateLines = %q, want %q", got, "abc\nxy")
	}
}

func TestPercent(t *testing.T) {
	if got := percent(0, 0); got != 100 {
		t.Errorf("percent(0, 0) = %d, want 100", got)
	}
	if got := percent(1, 4); got != 25 {
		t.Errorf("percent(1, 4) = %d, want 25", got)
	}
}

func TestBusClosedIsFatal(t *testing.T) {
	m, _ := testModel(t)
	boom := errors.New("producer gone")
	m, cmd := update(m, busClosedMsg{err: boom})
	if !errors.Is(m.err, boom) {
		t.Errorf("err = %v, want %v", m.err, boom)
	}
	if !isQuit(cmd) {
		t.Error("bus closed should quit the program")
	}
}

func lipglossWidth(s string) int {
	return lipgloss.Width(s)
}
