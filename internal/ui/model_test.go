package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtkav/binview/histogram"
	"github.com/dtkav/binview/internal/config"
	"github.com/dtkav/binview/status"
)

// newTestModel returns a model over [0, 10) with bins of width 2 that has
// already consumed lines.
func newTestModel(t *testing.T, lines ...string) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.SetRange(0, 10)
	cfg.BinWidth = 2
	cfg.BarHeight = 3
	m := New(cfg, strings.NewReader(""))
	for _, l := range lines {
		m.lines <- l
	}
	close(m.lines)
	m.Update(tickMsg{})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_TickDrainsInput(t *testing.T) {
	m := newTestModel(t, "0", "1\tfacet", "3", "", "oops", "5", "5", "9", "9", "9", "42")

	assert.Nil(t, m.lines)
	assert.Equal(t, []int{2, 1, 0, 1, 3}, m.hist.Bins)
	assert.Equal(t, 3, m.hist.MaxCount)
	assert.Equal(t, 1, m.hist.Dropped)
	assert.Equal(t, 1, m.skipped)
	assert.Equal(t, 10, m.totalLogCount)
	assert.Len(t, m.statuses, 5)

	// A closed, drained channel must not block or spin.
	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd)
}

func TestInit_ReadsInput(t *testing.T) {
	cfg := config.Default()
	m := New(cfg, strings.NewReader("1\n2\n3\n"))
	require.NotNil(t, m.Init())

	require.Eventually(t, func() bool {
		m.Update(tickMsg{})
		return m.lines == nil
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []float64{1, 2, 3}, m.samples)
	assert.Equal(t, 3, m.hist.Total())
}

func TestUpdate_KeyboardHoverAndToggle(t *testing.T) {
	m := newTestModel(t, "1", "3")

	m.Update(key("right"))
	assert.Equal(t, 0, m.hovered)
	assert.Equal(t, status.HoverInactive, m.statuses[0])

	m.Update(key("right"))
	assert.Equal(t, 1, m.hovered)
	assert.Equal(t, status.Inactive, m.statuses[0])
	assert.Equal(t, status.HoverInactive, m.statuses[1])

	m.Update(key("enter"))
	assert.Equal(t, status.HoverActive, m.statuses[1])

	m.Update(key("left"))
	assert.Equal(t, status.Active, m.statuses[1])
	assert.Equal(t, status.HoverInactive, m.statuses[0])

	m.Update(key("esc"))
	assert.Equal(t, -1, m.hovered)
	assert.Equal(t, status.Inactive, m.statuses[0])

	m.Update(key("c"))
	assert.Equal(t, []status.Token{"", "", "", "", ""}, m.statuses)
}

func TestUpdate_CursorStopsAtEdges(t *testing.T) {
	m := newTestModel(t, "1")

	m.Update(key("left"))
	m.Update(key("left"))
	assert.Equal(t, 0, m.hovered)

	for i := 0; i < 10; i++ {
		m.Update(key("l"))
	}
	assert.Equal(t, 4, m.hovered)
}

func TestUpdate_Mouse(t *testing.T) {
	m := newTestModel(t, "1", "3")
	chartTop := m.chartTop()

	m.Update(tea.MouseMsg{X: 2*cellWidth + 1, Y: chartTop, Type: tea.MouseMotion})
	assert.Equal(t, 2, m.hovered)
	assert.Equal(t, status.HoverInactive, m.statuses[2])

	m.Update(tea.MouseMsg{X: 3 * cellWidth, Y: chartTop + 1, Type: tea.MouseLeft})
	assert.Equal(t, 3, m.hovered)
	assert.Equal(t, status.Inactive, m.statuses[2])
	assert.Equal(t, status.HoverActive, m.statuses[3])

	// Leaving the chart removes hover.
	m.Update(tea.MouseMsg{X: 1, Y: 0, Type: tea.MouseMotion})
	assert.Equal(t, -1, m.hovered)
	assert.Equal(t, status.Active, m.statuses[3])

	m.Update(tea.MouseMsg{X: 100 * cellWidth, Y: chartTop, Type: tea.MouseMotion})
	assert.Equal(t, -1, m.hovered)
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.winWidth)
	assert.Equal(t, 40, m.winHeight)
}

func TestRecompute_KeepsTokensWhenBinsGrow(t *testing.T) {
	m := New(config.Default(), strings.NewReader(""))
	m.cfg.Bins = 0
	m.cfg.BinWidth = 1
	m.processLine("0")
	m.processLine("1.5")
	m.recompute()
	require.Len(t, m.statuses, 2)

	m.hover(1)
	m.toggle(1)
	m.processLine("4")
	m.recompute()
	require.Len(t, m.statuses, 5)
	assert.Equal(t, status.HoverActive, m.statuses[1])
	assert.Equal(t, status.None, m.statuses[4])
}

func TestRecompute_Errors(t *testing.T) {
	m := New(config.Default(), strings.NewReader(""))
	m.recompute()
	assert.ErrorIs(t, m.histErr, config.ErrNoData)
	assert.Contains(t, m.View(), "No data yet.")

	m.cfg.SetRange(0, 1)
	m.cfg.Strict = true
	m.processLine("0.5")
	m.hover(-1)
	m.recompute()
	require.NoError(t, m.histErr)
	require.Len(t, m.statuses, 10)
	m.hover(9)

	m.processLine("7")
	m.recompute()
	assert.True(t, histogram.Is(m.histErr, histogram.KindOutOfRange))
	assert.Empty(t, m.statuses)
	assert.Equal(t, -1, m.hovered)
	assert.Contains(t, m.View(), "sample 7 outside [0, 1)")
	assert.Equal(t, -1, m.binAt(0, m.chartTop()))
}

func TestView(t *testing.T) {
	m := newTestModel(t, "0", "1", "3", "5", "5", "9", "9", "9")
	m.Update(key("right"))

	view := m.View()
	assert.Contains(t, view, "Samples: 8")
	assert.Contains(t, view, "Bins: 5")
	assert.Contains(t, view, "Bin 0 [0, 2): 2")
	assert.Contains(t, view, "Enter/click: Toggle")

	lines := strings.Split(view, "\n")
	require.Greater(t, len(lines), m.chartTop())
	// The tallest bar (bin 4) is the only one reaching the top row.
	assert.Equal(t, strings.Repeat(" ", 4*cellWidth)+"█████ ", lines[m.chartTop()])
}

func TestView_ClipsToWindow(t *testing.T) {
	m := newTestModel(t, "1")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 7})
	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 7)
}

func TestView_FitsWindowWidth(t *testing.T) {
	for _, width := range []int{80, 40, 12} {
		t.Run(fmt.Sprint(width), func(t *testing.T) {
			m := newTestModel(t, "0", "1", "3", "5", "5", "9", "9", "9")
			m.Update(tea.WindowSizeMsg{Width: width, Height: 40})
			m.Update(key("right"))
			m.Update(key("right"))

			lines := strings.Split(m.View(), "\n")
			for i, l := range lines {
				assert.LessOrEqual(t, lipgloss.Width(l), width, "line %d: %q", i, l)
			}

			// The first chart row is where the pointer finds it.
			top := m.chartTop()
			require.Greater(t, len(lines), top)
			assert.Empty(t, lines[top-1])
			m.Update(tea.MouseMsg{X: 0, Y: top, Type: tea.MouseMotion})
			assert.Equal(t, 0, m.hovered)
			m.Update(tea.MouseMsg{X: 0, Y: top - 1, Type: tea.MouseMotion})
			assert.Equal(t, -1, m.hovered)
		})
	}
}

func TestRecompute_ClearsTokensWhenEdgesMove(t *testing.T) {
	m := New(config.Default(), strings.NewReader(""))
	m.processLine("0")
	m.processLine("10")
	m.recompute()
	require.Len(t, m.statuses, 10)

	m.hover(2)
	m.toggle(2)
	m.toggle(5)
	m.hover(5)

	// Same extremes, same edges: tokens stay.
	m.processLine("4")
	m.recompute()
	assert.Equal(t, status.Active, m.statuses[2])
	assert.Equal(t, status.HoverActive, m.statuses[5])

	// A new maximum widens every bin, so index 2 no longer covers [2, 3).
	m.processLine("20")
	m.recompute()
	require.Len(t, m.statuses, 10)
	assert.Equal(t, 5, m.hovered)
	for i, tok := range m.statuses {
		if i == 5 {
			assert.Equal(t, status.HoverInactive, tok)
		} else {
			assert.Equal(t, status.None, tok, "bin %d", i)
		}
	}

	// A new minimum moves the left edge.
	m.hover(-1)
	m.toggle(0)
	m.processLine("-5")
	m.recompute()
	assert.Equal(t, status.None, m.statuses[0])
}
