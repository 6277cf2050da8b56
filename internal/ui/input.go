package ui

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// parseLine reads the sample in the first tab-separated column of line.
// blank is true for lines with nothing on them.
func parseLine(line string) (v float64, ok, blank bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false, true
	}
	first, _, _ := strings.Cut(line, "\t")
	v, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return 0, false, false
	}
	return v, true, false
}

// ReadSamples reads every line of r. Lines whose first column is not a
// number are counted in skipped.
func ReadSamples(r io.Reader) (samples []float64, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		v, ok, blank := parseLine(scanner.Text())
		switch {
		case blank:
		case ok:
			samples = append(samples, v)
		default:
			skipped++
		}
	}
	return samples, skipped, scanner.Err()
}
