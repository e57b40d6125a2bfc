package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	minListWidth = 16
	listPercent  = 20
)

// --- Styles ---

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6C7086"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1")).
			Bold(true)

	finishedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAB387")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#1E1E2E"))
)

// --- Layout ---

// layout splits the window into the catalog pane and the animation pane.
// Widths and height include borders; one line is kept for the status bar.
func (m uiModel) layout() (listWidth, animWidth, height int) {
	height = max(m.height-1, 3)
	listWidth = max(m.width*listPercent/100, minListWidth)
	if listWidth > m.width/2 {
		listWidth = m.width / 2
	}
	listWidth = max(listWidth, 3)
	animWidth = max(m.width-listWidth, 3)
	return listWidth, animWidth, height
}

// animationSize returns the rows and columns inside the animation pane.
func (m uiModel) animationSize() (rows, cols int) {
	_, animWidth, height := m.layout()
	return max(height-2, 1), max(animWidth-2, 1)
}

// --- View rendering ---

func (m uiModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	listWidth, _, height := m.layout()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(listWidth-2, height-2),
		m.renderAnimation(),
	)

	var b strings.Builder
	// Truncate each line to terminal width so content doesn't wrap
	// on resize.
	b.WriteString(truncateLines(body, m.width))
	b.WriteRune('\n')

	if m.showHelp {
		b.WriteString(m.help.View(keys))
	} else {
		b.WriteString(m.renderStatusBar())
	}
	return b.String()
}

// renderList renders the catalog pane with the highlighted entry and a
// scrollbar. width and height are the inner size of the pane.
func (m uiModel) renderList(width, height int) string {
	names := m.catalog.Names()
	visible := max(height-1, 1) // first line is the header

	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := min(start+visible, len(names))

	lines := []string{headerStyle.Render(truncate("Animations", width))}
	textWidth := max(width-3, 1) // cursor column and scrollbar
	for i := start; i < end; i++ {
		name := truncate(names[i], textWidth)
		if i == m.selected {
			lines = append(lines, highlightStyle.Render(">"+name))
		} else {
			lines = append(lines, " "+name)
		}
	}
	if len(names) == 0 {
		lines = append(lines, dimStyle.Render(" (empty)"))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	bar := scrollbar(len(names), m.selected, visible)
	for i := range lines {
		l := padOrTruncate(lines[i], width-1)
		if i > 0 && i-1 < len(bar) {
			l += dimStyle.Render(bar[i-1])
		} else {
			l += " "
		}
		lines[i] = l
	}

	return paneStyle.Render(strings.Join(lines, "\n"))
}

// scrollbar returns one cell per visible list row: end markers, a thumb at
// the selected position and a track in between. It is empty when every
// entry fits.
func scrollbar(total, position, visible int) []string {
	if total <= visible || visible < 3 {
		return nil
	}
	bar := make([]string, visible)
	bar[0] = "↑"
	bar[visible-1] = "↓"
	track := visible - 2
	thumb := 1 + position*(track-1)/max(total-1, 1)
	for i := 1; i < visible-1; i++ {
		bar[i] = "│"
	}
	bar[thumb] = "█"
	return bar
}

// renderAnimation renders the decoder snapshot, or a hint while idle.
func (m uiModel) renderAnimation() string {
	rows, cols := m.animationSize()

	var content string
	if m.session == nil {
		hint := dimStyle.Render("select an animation and press enter")
		if names := m.catalog.Names(); m.selected < len(names) {
			if d := m.catalog.Describe(names[m.selected]); d != "" {
				hint = d + "\n\n" + hint
			}
		}
		content = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, hint)
	} else {
		content = m.session.Snapshot().Render()
	}

	content = truncateLines(content, cols)
	return paneStyle.
		Width(cols).
		Height(rows).
		MaxHeight(rows + 2).
		Render(content)
}

func (m uiModel) renderStatusBar() string {
	var left string
	switch m.state() {
	case stateIdle:
		left = dimStyle.Render(" idle")
	case statePlaying:
		consumed, total := m.session.Progress()
		left = fmt.Sprintf(" %s %s %s",
			playingStyle.Render("▶"),
			m.session.Name(),
			dimStyle.Render(fmt.Sprintf("frame %d  %d%%", m.session.Frames(), percent(consumed, total))))
	case stateFinished:
		left = fmt.Sprintf(" %s %s %s",
			finishedStyle.Render("■"),
			m.session.Name(),
			dimStyle.Render(fmt.Sprintf("finished after %d frames", m.session.Frames())))
	}
	if m.session != nil {
		if d := m.catalog.Describe(m.session.Name()); d != "" {
			left += dimStyle.Render("  " + d)
		}
	}

	right := fmt.Sprintf("fps %s / %.0f  ?: help  q: quit ", m.meter, m.targetFPS())
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right)))
	return statusBarStyle.Render(truncateLines(left+gap+right, m.width))
}

func (m uiModel) targetFPS() float64 {
	if m.pacer == nil || m.pacer.Interval() <= 0 {
		return 0
	}
	return 1 / m.pacer.Interval().Seconds()
}

// --- Helpers ---

// truncateLines truncates each line in content to at most width visible
// characters, preserving ANSI escape codes. This prevents terminal line
// wrapping when the window is resized narrower.
func truncateLines(content string, width int) string {
	if width <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

// padOrTruncate pads or truncates a styled line to the target visible width.
func padOrTruncate(styled string, width int) string {
	visWidth := lipgloss.Width(styled)
	if visWidth > width {
		return ansi.Truncate(styled, width, "")
	}
	return styled + strings.Repeat(" ", width-visWidth)
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	if n <= 1 {
		return ansi.Truncate(s, max(n, 0), "")
	}
	return ansi.Truncate(s, n, "…")
}

func percent(part, total int) int {
	if total <= 0 {
		return 100
	}
	return part * 100 / total
}
