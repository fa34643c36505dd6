// Package grid computes near-square row/column layouts for a letter count and
// arranges a prepared text into the matching 2-D matrix. Grid dimensions and
// the displayed matrix come from the same factorization so column-based
// reading stays consistent with what a caller renders.
package grid

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Factors is a chosen rows*cols layout for a letter count.
// Ideal is false when only the trivial 1*n pair exists (prime counts).
type Factors struct {
	Rows  int  `json:"rows"`
	Cols  int  `json:"cols"`
	Ideal bool `json:"ideal"`
}

// Factorize picks the divisor pair of n minimizing |rows-cols|, rows <= cols.
// Prime n degrades to (1, n) flagged non-ideal. n must be positive.
func Factorize(n int) (Factors, error) {
	if n <= 0 {
		return Factors{}, fmt.Errorf("grid: letter count must be positive, got %d", n)
	}
	if n == 1 {
		return Factors{Rows: 1, Cols: 1, Ideal: true}, nil
	}

	best := Factors{Rows: 1, Cols: n}
	for rows := 2; rows*rows <= n; rows++ {
		if n%rows != 0 {
			continue
		}
		cols := n / rows
		if cols-rows < best.Cols-best.Rows {
			best = Factors{Rows: rows, Cols: cols}
		}
	}
	// Only the trivial pair found: prime count.
	best.Ideal = best.Rows > 1
	if !best.Ideal {
		log.Debugf("grid: %d is prime, falling back to 1x%d", n, n)
	}
	return best, nil
}

// spread reports the best achievable |rows-cols| for n.
func spread(n int) int {
	f, err := Factorize(n)
	if err != nil {
		return n
	}
	return f.Cols - f.Rows
}

// SuggestCounts scans n-tolerance .. n+tolerance (excluding n itself) for
// counts whose best factor pair is squarer than n's own, ordered by distance
// from n. Callers trim or pad their text toward one of these when n itself
// lays out badly.
func SuggestCounts(n, tolerance int) []int {
	if n <= 0 || tolerance <= 0 {
		return nil
	}
	base := spread(n)
	var candidates []int
	for d := 1; d <= tolerance; d++ {
		for _, m := range []int{n - d, n + d} {
			if m <= 0 {
				continue
			}
			if spread(m) < base {
				candidates = append(candidates, m)
			}
		}
	}
	return candidates
}
