// Package histogram buckets numeric samples into fixed-width bins over a
// half-open interval [left, right).
//
// Compute returns raw counts and the largest count; scaling bins to drawing
// coordinates is left to the caller.
package histogram

import (
	"fmt"
	"math"
)

// DefaultMaxBins bounds the number of bins Compute will allocate.
const DefaultMaxBins = 1 << 16

const rangePad = 1e-9

// Policy says what Compute does with a sample outside [left, right).
type Policy int

const (
	// Drop excludes the sample from every bin and counts it in Dropped.
	Drop Policy = iota
	// FailFast returns a KindOutOfRange error for the first such sample.
	FailFast
)

// Histogram is the result of a Compute call.
type Histogram struct {
	Left, Right float64
	BinWidth    float64
	// Bins holds ceil((Right-Left)/BinWidth) counts.
	Bins     []int
	MaxCount int
	// Dropped is the number of samples outside [Left, Right).
	Dropped int
}

type options struct {
	policy  Policy
	maxBins int
}

// Option configures Compute.
type Option func(*options)

// WithPolicy sets the out-of-range policy. The default is Drop.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithMaxBins caps the bin count. Values below 1 restore DefaultMaxBins.
func WithMaxBins(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxBins
		}
		o.maxBins = n
	}
}

// Compute counts values into bins of width binWidth covering [left, right).
func Compute(left, right, binWidth float64, values []float64, opts ...Option) (Histogram, error) {
	const op Op = "histogram.Compute"

	o := options{policy: Drop, maxBins: DefaultMaxBins}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkRange(left, right, binWidth); err != nil {
		return Histogram{}, E(op, KindInvalidRange, err)
	}

	n := math.Ceil((right - left) / binWidth)
	if math.IsInf(n, 0) || n > float64(o.maxBins) {
		return Histogram{}, E(op, KindTooManyBins,
			fmt.Sprintf("%g bins of width %g over [%g, %g) exceed limit %d", n, binWidth, left, right, o.maxBins))
	}
	// A span far below the width can round the quotient to zero.
	binCount := max(1, int(n))

	h := Histogram{
		Left:     left,
		Right:    right,
		BinWidth: binWidth,
		Bins:     make([]int, binCount),
	}
	for _, v := range values {
		idx, ok := index(v, left, right, binWidth, binCount)
		if !ok {
			if o.policy == FailFast {
				return Histogram{}, E(op, KindOutOfRange,
					fmt.Sprintf("sample %g outside [%g, %g)", v, left, right))
			}
			h.Dropped++
			continue
		}
		h.Bins[idx]++
		if h.Bins[idx] > h.MaxCount {
			h.MaxCount = h.Bins[idx]
		}
	}
	return h, nil
}

func checkRange(left, right, binWidth float64) error {
	switch {
	case math.IsNaN(left) || math.IsInf(left, 0) || math.IsNaN(right) || math.IsInf(right, 0):
		return fmt.Errorf("bounds [%g, %g) are not finite", left, right)
	case !(right > left):
		return fmt.Errorf("right %g is not greater than left %g", right, left)
	case math.IsNaN(binWidth) || math.IsInf(binWidth, 0) || !(binWidth > 0):
		return fmt.Errorf("bin width %g is not a positive finite number", binWidth)
	}
	return nil
}

// index returns the bin of v, or false when v is outside the histogram.
func index(v, left, right, binWidth float64, binCount int) (int, bool) {
	// NaN fails both comparisons.
	if !(v >= left && v < right) {
		return 0, false
	}
	f := math.Floor((v - left) / binWidth)
	if f < 0 || f >= float64(binCount) {
		return 0, false
	}
	return int(f), true
}

// Total returns the number of samples placed in bins.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Bins {
		total += c
	}
	return total
}

// Bounds returns the edges of bin i. The last bin is clipped to Right.
func (h Histogram) Bounds(i int) (lo, hi float64) {
	lo = h.Left + float64(i)*h.BinWidth
	hi = math.Min(lo+h.BinWidth, h.Right)
	return lo, hi
}

// Midpoint returns the centre of bin i.
func (h Histogram) Midpoint(i int) float64 {
	lo, hi := h.Bounds(i)
	return (lo + hi) / 2
}

// AutoRange returns a range covering every finite value. The upper edge is
// padded past the maximum by a small fraction of the span, so the maximum
// stays in the last bin when the range is split evenly. A single distinct
// value gets a range one unit wide. ok is false when no value is finite.
func AutoRange(values []float64) (left, right float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !ok {
			left, right, ok = v, v, true
			continue
		}
		if v < left {
			left = v
		}
		if v > right {
			right = v
		}
	}
	if !ok {
		return 0, 0, false
	}
	if left == right {
		right = left + 1
		if right == left {
			right = math.Nextafter(left, math.Inf(1))
		}
		return left, right, true
	}
	hi := right + (right-left)*rangePad
	if hi <= right {
		hi = math.Nextafter(right, math.Inf(1))
	}
	return left, hi, true
}
