// Package chain implements greedy nearest-occurrence search: instead of a
// fixed skip, each successive term letter is matched at its nearest position
// after the previous hit, bounded by a caller-supplied window. A chain that
// cannot place a letter inside the window is an expected outcome and is
// reported as data, never as an error.
package chain

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/rdayan/elscan/pkg/cipher"
	"github.com/rdayan/elscan/pkg/textprep"
)

// Step is one placed letter of a chain.
type Step struct {
	Letter   string `json:"letter"`
	Position int    `json:"position"`
	Interval int    `json:"interval"`
	Letters  string `json:"intervening_letters"`
	Value    int    `json:"intervening_value"`
}

// Result is one complete chain through the text.
type Result struct {
	Term        string `json:"term"`
	Steps       []Step `json:"steps"`
	TotalLength int    `json:"total_length"`
	IntervalSum int    `json:"total_interval_sum"`
	TotalValue  int    `json:"total_value"`
}

// Break records where a chain from an explicit start position failed: the
// term index and letter that could not be placed inside the window.
type Break struct {
	StartPos int    `json:"start_pos"`
	Index    int    `json:"index"`
	Letter   string `json:"letter"`
}

// Summary collects the chains of one search call, tightest first, together
// with break diagnostics for explicitly supplied starts.
type Summary struct {
	Term         string   `json:"term"`
	Results      []Result `json:"results"`
	Broken       []Break  `json:"broken,omitempty"`
	SourceLength int      `json:"source_length"`
}

// Options mirrors els.Options for the chain searcher.
type Options struct {
	Valuer   cipher.Valuer
	Progress func(done, total int)
}

// Search walks a greedy chain from every candidate start. starts nil means
// every position of the stream; in that sweep, consecutive raw starts that
// resolve to the same first hit collapse into one chain, and breaks are
// expressed as absence. With explicit starts every failure is recorded as a
// Break so callers get per-start diagnostics.
//
// Results are ordered by ascending total length, tighter chains first.
// Cancellation is checked once per start position.
func Search(ctx context.Context, prep *textprep.PreparedText, term string, maxWindow int, starts []int, opts Options) (*Summary, error) {
	letters := []rune(term)
	if len(letters) == 0 {
		return nil, fmt.Errorf("chain: search term is empty")
	}
	if maxWindow <= 0 {
		return nil, fmt.Errorf("chain: max window must be positive, got %d", maxWindow)
	}

	valuer := opts.Valuer
	if valuer == nil {
		valuer = cipher.Nop{}
	}

	explicit := starts != nil
	if !explicit {
		starts = make([]int, prep.Len())
		for i := range starts {
			starts[i] = i
		}
	}

	summary := &Summary{Term: term, SourceLength: prep.Len()}
	seenFirst := make(map[int]bool)

	for done, start := range starts {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if start < 0 || start >= prep.Len() {
			if explicit {
				summary.Broken = append(summary.Broken, Break{StartPos: start, Index: 0, Letter: string(letters[0])})
			}
			continue
		}
		steps, brokenAt := walk(prep, letters, start, maxWindow, valuer)
		if steps == nil {
			if explicit {
				summary.Broken = append(summary.Broken, Break{StartPos: start, Index: brokenAt, Letter: string(letters[brokenAt])})
			}
		} else if explicit || !seenFirst[steps[0].Position] {
			seenFirst[steps[0].Position] = true
			summary.Results = append(summary.Results, assemble(term, steps, valuer))
		}
		if opts.Progress != nil {
			opts.Progress(done+1, len(starts))
		}
	}

	sort.SliceStable(summary.Results, func(i, j int) bool {
		return summary.Results[i].TotalLength < summary.Results[j].TotalLength
	})
	log.Debugf("chain: %q window %d -> %d chains, %d broken", term, maxWindow, len(summary.Results), len(summary.Broken))
	return summary, nil
}

// walk places every term letter greedily from start. On failure it returns a
// nil step slice and the index of the letter that broke the chain.
func walk(prep *textprep.PreparedText, letters []rune, start, maxWindow int, valuer cipher.Valuer) ([]Step, int) {
	steps := make([]Step, 0, len(letters))
	current := start
	for i, c := range letters {
		pos, ok := nearest(prep, c, current, maxWindow)
		if !ok {
			return nil, i
		}
		between := prep.Slice(current, pos)
		steps = append(steps, Step{
			Letter:   string(c),
			Position: pos,
			Interval: pos - current,
			Letters:  between,
			Value:    valuer.Calculate(between),
		})
		current = pos + 1
	}
	return steps, 0
}

// nearest scans [from, from+maxWindow] for the first occurrence of c.
func nearest(prep *textprep.PreparedText, c rune, from, maxWindow int) (int, bool) {
	limit := min(from+maxWindow, prep.Len()-1)
	for pos := from; pos <= limit; pos++ {
		if prep.At(pos) == c {
			return pos, true
		}
	}
	return 0, false
}

func assemble(term string, steps []Step, valuer cipher.Valuer) Result {
	intervalSum := 0
	total := valuer.Calculate(term)
	for _, s := range steps {
		intervalSum += s.Interval
		total += s.Value
	}
	return Result{
		Term:        term,
		Steps:       steps,
		TotalLength: steps[len(steps)-1].Position - steps[0].Position,
		IntervalSum: intervalSum,
		TotalValue:  total,
	}
}
