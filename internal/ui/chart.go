package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dtkav/binview/histogram"
	"github.com/dtkav/binview/internal/config"
	"github.com/dtkav/binview/status"
)

// cellWidth is the number of columns each bin takes, including the gap.
const cellWidth = 6

// scaleHeights maps counts onto [0, barHeight]. Any non-zero count is at
// least one row tall.
func scaleHeights(bins []int, maxCount, barHeight int) []int {
	heights := make([]int, len(bins))
	if maxCount == 0 {
		return heights
	}
	for i, count := range bins {
		if count > 0 {
			heights[i] = max(1, int(float64(count)/float64(maxCount)*float64(barHeight)))
		}
	}
	return heights
}

// fitLabel truncates or pads s to exactly w columns.
func fitLabel(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func tokenAt(statuses []status.Token, i int) status.Token {
	if i < len(statuses) {
		return statuses[i]
	}
	return status.None
}

// renderChart draws h as vertical bars, a row of counts and a row of bin
// midpoints. Each column is styled from its status token.
func renderChart(h histogram.Histogram, statuses []status.Token, barHeight int) string {
	if len(h.Bins) == 0 {
		return "No data"
	}
	barWidth := cellWidth - 1
	heights := scaleHeights(h.Bins, h.MaxCount, barHeight)

	rows := make([]string, 0, barHeight+2)
	for row := barHeight; row > 0; row-- {
		var b strings.Builder
		for i, ht := range heights {
			cell := strings.Repeat(" ", barWidth)
			if ht >= row {
				cell = strings.Repeat("█", barWidth)
			}
			b.WriteString(styleFor(tokenAt(statuses, i)).Render(cell))
			b.WriteString(" ")
		}
		rows = append(rows, b.String())
	}

	var counts, labels strings.Builder
	for i, count := range h.Bins {
		style := styleFor(tokenAt(statuses, i))
		counts.WriteString(style.Render(fitLabel(fmt.Sprintf("%d", count), barWidth)) + " ")
		labels.WriteString(style.Render(fitLabel(fmt.Sprintf("%.4g", h.Midpoint(i)), barWidth)) + " ")
	}
	rows = append(rows, counts.String(), labels.String())
	return strings.Join(rows, "\n")
}

// chartRows is the height of renderChart's output for a bar height.
func chartRows(barHeight int) int {
	return barHeight + 2
}

// Render computes the histogram of samples under cfg and draws it without
// any interactive state.
func Render(cfg config.Config, samples []float64) (string, error) {
	left, right, width, err := cfg.Bounds(samples)
	if err != nil {
		if errors.Is(err, config.ErrNoData) {
			return "No data yet.", nil
		}
		return "", err
	}
	h, err := histogram.Compute(left, right, width, samples, cfg.HistogramOptions()...)
	if err != nil {
		return "", err
	}
	summary := fmt.Sprintf("[%g, %g) width %g | Bins: %d | Max: %d | Dropped: %d",
		h.Left, h.Right, h.BinWidth, len(h.Bins), h.MaxCount, h.Dropped)
	return summary + "\n\n" + renderChart(h, nil, cfg.BarHeight), nil
}
