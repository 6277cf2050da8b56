// Package ui is the interactive terminal chart: a bubbletea program that
// reads samples, recomputes the histogram on every tick and keeps a hover
// and active status for each bar.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dtkav/binview/histogram"
	"github.com/dtkav/binview/internal/config"
	"github.com/dtkav/binview/internal/logger"
	"github.com/dtkav/binview/status"
)

// -------------------------
// Model
// -------------------------

// Model holds the application state.
type Model struct {
	cfg config.Config

	input io.Reader
	// lines receives raw lines from input; nil once input is exhausted.
	lines chan string

	samples       []float64
	skipped       int
	totalLogCount int
	startTime     time.Time

	hist    histogram.Histogram
	histErr error

	// statuses holds one token per bin of hist.
	statuses []status.Token
	// hovered is the bin under the pointer or cursor, -1 for none.
	hovered int

	// Window dimensions.
	winWidth, winHeight int
}

// tickMsg is used for periodic updates.
type tickMsg struct{}

// New returns a model that reads samples from input once Init runs.
func New(cfg config.Config, input io.Reader) *Model {
	return &Model{
		cfg:       cfg,
		input:     input,
		lines:     make(chan string, 100),
		startTime: time.Now(),
		hovered:   -1,
		// Defaults for window dimensions; they will be updated on WindowSizeMsg.
		winWidth:  80,
		winHeight: 24,
	}
}

// -------------------------
// Commands and Init
// -------------------------

// tickCmd returns a command that sends a tickMsg every 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Init starts the background goroutine that reads input.
func (m *Model) Init() tea.Cmd {
	lines := m.lines
	go func() {
		scanner := bufio.NewScanner(m.input)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logger.Error("reading input: %v", err)
		}
		close(lines)
	}()
	return tickCmd()
}

// -------------------------
// Update
// -------------------------

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tickMsg:
		if m.drain() {
			m.recompute()
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.winWidth = msg.Width
		m.winHeight = msg.Height
		return m, nil

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseMotion:
			m.hover(m.binAt(msg.X, msg.Y))
		case tea.MouseLeft:
			if i := m.binAt(msg.X, msg.Y); i >= 0 {
				m.hover(i)
				m.toggle(i)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "left", "h":
			if m.hovered < 0 {
				m.hover(0)
			} else {
				m.hover(max(0, m.hovered-1))
			}
			return m, nil

		case "right", "l":
			if m.hovered < 0 {
				m.hover(0)
			} else {
				m.hover(min(len(m.statuses)-1, m.hovered+1))
			}
			return m, nil

		case "esc":
			m.hover(-1)
			return m, nil

		case "enter", " ":
			if m.hovered >= 0 {
				m.toggle(m.hovered)
			}
			return m, nil

		case "c":
			for i := range m.statuses {
				m.statuses[i] = status.None
			}
			m.hovered = -1
			return m, nil
		}
	}
	return m, nil
}

// drain reads every line already queued without blocking. It reports
// whether anything was read.
func (m *Model) drain() bool {
	read := false
	for {
		select {
		case line, ok := <-m.lines:
			if !ok {
				m.lines = nil
				return read
			}
			m.processLine(line)
			read = true
		default:
			return read
		}
	}
}

// processLine records one line of input.
func (m *Model) processLine(line string) {
	v, ok, blank := parseLine(line)
	if blank {
		return
	}
	m.totalLogCount++
	if !ok {
		m.skipped++
		return
	}
	m.samples = append(m.samples, v)
}

// recompute rebuilds the histogram from all samples seen so far.
func (m *Model) recompute() {
	prev := m.hist
	left, right, width, err := m.cfg.Bounds(m.samples)
	var h histogram.Histogram
	if err == nil {
		h, err = histogram.Compute(left, right, width, m.samples, m.cfg.HistogramOptions()...)
	}
	if err != nil {
		if !errors.Is(err, config.ErrNoData) && (m.histErr == nil || m.histErr.Error() != err.Error()) {
			logger.Warn("histogram: %v", err)
		}
		m.hist = histogram.Histogram{}
		m.histErr = err
	} else {
		m.hist = h
		m.histErr = nil
	}
	m.syncStatuses(prev)
}

// syncStatuses keeps one token per bin. A token stays with its index only
// while the left edge and bin width are unchanged; once they move, index i
// covers a different interval and every bin starts over with none. The hover
// stays on the same index if it still exists.
func (m *Model) syncStatuses(prev histogram.Histogram) {
	n := len(m.hist.Bins)
	if len(prev.Bins) == 0 || n == 0 || (prev.Left == m.hist.Left && prev.BinWidth == m.hist.BinWidth) {
		m.resizeStatuses(n)
		return
	}
	logger.Debug("bin edges moved from [%g, +%g) to [%g, +%g), clearing statuses",
		prev.Left, prev.BinWidth, m.hist.Left, m.hist.BinWidth)
	hovered := m.hovered
	m.statuses = make([]status.Token, n)
	m.hovered = -1
	m.hover(hovered)
}

// resizeStatuses keeps tokens of surviving bins; new bins start with none.
func (m *Model) resizeStatuses(n int) {
	if n == len(m.statuses) {
		return
	}
	logger.Debug("bin count changed from %d to %d", len(m.statuses), n)
	next := make([]status.Token, n)
	copy(next, m.statuses)
	m.statuses = next
	if m.hovered >= n {
		m.hovered = -1
	}
}

// hover moves the hover marker to bin i; -1 removes it.
func (m *Model) hover(i int) {
	if i >= len(m.statuses) {
		i = -1
	}
	if i == m.hovered {
		return
	}
	if m.hovered >= 0 {
		m.statuses[m.hovered] = status.RemoveHover(m.statuses[m.hovered])
	}
	if i >= 0 {
		m.statuses[i] = status.AddHover(m.statuses[i])
	}
	m.hovered = i
}

func (m *Model) toggle(i int) {
	m.statuses[i] = status.ToggleActive(m.statuses[i])
	logger.Debug("bin %d is now %q", i, m.statuses[i])
}

// binAt maps a screen position to the bin drawn there, or -1.
func (m *Model) binAt(x, y int) int {
	top := m.chartTop()
	if m.histErr != nil || y < top || y >= top+chartRows(m.cfg.BarHeight) || x < 0 {
		return -1
	}
	i := x / cellWidth
	if i >= len(m.statuses) {
		return -1
	}
	return i
}

// -------------------------
// Rendering Functions
// -------------------------

// instructions lists the key and mouse bindings.
const instructions = "←→/mouse: Hover | Enter/click: Toggle | Esc: Unhover | c: Clear | q/Ctrl+C: Quit"

// fit cuts s to the window width so the terminal never wraps it.
func (m Model) fit(s string) string {
	if m.winWidth < 1 {
		return s
	}
	return runewidth.Truncate(s, m.winWidth, "…")
}

// renderHeader shows the input rate and counts on one line and the hovered
// bin on the next, which is blank when nothing is hovered.
func (m Model) renderHeader() string {
	elapsed := time.Since(m.startTime).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(m.totalLogCount) / elapsed
	}

	header := fmt.Sprintf("Rate: %.2f lines/sec | Samples: %d | Skipped: %d | Dropped: %d | Bins: %d | Max: %d",
		rate, len(m.samples), m.skipped, m.hist.Dropped, len(m.hist.Bins), m.hist.MaxCount)

	var hovered string
	if m.hovered >= 0 && m.hovered < len(m.hist.Bins) {
		lo, hi := m.hist.Bounds(m.hovered)
		hovered = fmt.Sprintf("Bin %d [%.4g, %.4g): %d", m.hovered, lo, hi, m.hist.Bins[m.hovered])
	}

	return headerStyle.Render(m.fit(header)) + "\n" + m.fit(hovered)
}

// staticPart is everything above the chart, ending in a newline.
func (m Model) staticPart() string {
	return m.renderHeader() + "\n\n" + instructionsStyle.Render(m.fit(instructions)) + "\n\n"
}

// chartTop is the screen row where the chart starts. staticPart ends in a
// newline, so its last line is the first chart line.
func (m Model) chartTop() int {
	return lipgloss.Height(m.staticPart()) - 1
}

// View renders the complete UI, cut to the window size.
func (m Model) View() string {
	var content string
	switch {
	case errors.Is(m.histErr, config.ErrNoData):
		content = "No data yet."
	case m.histErr != nil:
		content = errorStyle.Render(m.histErr.Error())
	case len(m.hist.Bins) == 0:
		content = "No data yet."
	default:
		content = renderChart(m.hist, m.statuses, m.cfg.BarHeight)
	}

	staticPart := m.staticPart()

	contentLines := strings.Split(content, "\n")
	availableHeight := m.winHeight - (lipgloss.Height(staticPart) - 1)
	if availableHeight < 1 {
		availableHeight = 1
	}
	visibleContent := strings.Join(contentLines[:min(availableHeight, len(contentLines))], "\n")
	if m.winWidth > 0 {
		visibleContent = lipgloss.NewStyle().MaxWidth(m.winWidth).Render(visibleContent)
	}

	return staticPart + visibleContent
}
