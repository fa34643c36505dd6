package els

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rdayan/elscan/pkg/cipher"
	"github.com/rdayan/elscan/pkg/skipseq"
	"github.com/rdayan/elscan/pkg/textprep"
)

// Options carries the per-call collaborators of a search. The zero value is
// usable: valuation falls back to cipher.Nop and no progress is reported.
type Options struct {
	// Valuer computes term and segment values. nil means all-zero values.
	Valuer cipher.Valuer

	// Progress, when set, is invoked once per scanned skip value (or start
	// block for sequence searches) with done and total counts.
	Progress func(done, total int)
}

func (o Options) valuer() cipher.Valuer {
	if o.Valuer == nil {
		return cipher.Nop{}
	}
	return o.Valuer
}

// Search scans every skip magnitude in [skipMin, skipMax] (zero excluded) and
// every valid start position for the term. Backward direction scans with
// negative skips; returned results carry ascending letter positions with the
// direction recorded. Terms must already be normalized through the letter
// class the text was prepared with.
//
// Cancellation is checked once per skip value; on cancellation the summary
// accumulated so far is returned together with ctx.Err().
func Search(ctx context.Context, prep *textprep.PreparedText, term string, skipMin, skipMax int, dir Direction, opts Options) (*Summary, error) {
	letters := []rune(term)
	if len(letters) == 0 {
		return nil, ErrEmptyTerm
	}
	if skipMin > skipMax || skipMin < 0 {
		return nil, fmt.Errorf("els: invalid skip range [%d, %d]", skipMin, skipMax)
	}
	if skipMin == 0 && skipMax == 0 {
		return nil, ErrSkipZero
	}

	minSkip := max(skipMin, 1)
	if !fits(len(letters), minSkip, prep.Len()) {
		return nil, &TermTooLongError{Term: term, TermLen: len(letters), MinSkip: minSkip, SourceLen: prep.Len()}
	}

	summary := &Summary{Term: term, SourceLength: prep.Len()}
	valuer := opts.valuer()
	total := skipMax - minSkip + 1

	for skip := minSkip; skip <= skipMax; skip++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		signed := skip
		if dir == Backward {
			signed = -skip
		}
		scanSkip(prep, letters, signed, func(start int) {
			summary.Results = append(summary.Results, newResult(prep, term, letters, start, signed, valuer))
		})
		if opts.Progress != nil {
			opts.Progress(skip-minSkip+1, total)
		}
	}
	log.Debugf("els: %q skips [%d,%d] %s -> %d hits", term, skipMin, skipMax, dir, len(summary.Results))
	return summary, nil
}

// SearchSequence matches the term along a derived offset progression
// (triangular, square or Fibonacci) relative to each candidate start.
// Constant mode belongs to Search and is rejected here.
func SearchSequence(ctx context.Context, prep *textprep.PreparedText, term string, mode skipseq.Mode, opts Options) (*Summary, error) {
	letters := []rune(term)
	if len(letters) == 0 {
		return nil, ErrEmptyTerm
	}
	if mode == skipseq.Constant {
		return nil, fmt.Errorf("els: constant mode requires a skip range, use Search")
	}

	offsets := skipseq.Offsets(mode, 0, len(letters))
	maxOffset := offsets[len(offsets)-1]
	if maxOffset >= prep.Len() {
		return nil, &TermTooLongError{Term: term, TermLen: len(letters), MinSkip: 1, SourceLen: prep.Len()}
	}

	summary := &Summary{Term: term, SourceLength: prep.Len()}
	valuer := opts.valuer()
	lastStart := prep.Len() - 1 - maxOffset

	for start := 0; start <= lastStart; start++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if matchOffsets(prep, letters, start, offsets) {
			positions := make([]int, len(offsets))
			for i, off := range offsets {
				positions[i] = start + off
			}
			summary.Results = append(summary.Results, assemble(prep, term, positions, 0, Forward, valuer))
		}
		if opts.Progress != nil {
			opts.Progress(start+1, lastStart+1)
		}
	}
	log.Debugf("els: %q %s sequence -> %d hits", term, mode, len(summary.Results))
	return summary, nil
}

// fits reports whether any start position can hold termLen letters at skip.
func fits(termLen, skip, sourceLen int) bool {
	return (termLen-1)*skip <= sourceLen-1
}

// scanSkip walks every valid start for one signed skip, invoking hit for each
// full match. Starts iterate ascending, so result order is deterministic.
func scanSkip(prep *textprep.PreparedText, letters []rune, skip int, hit func(start int)) {
	span := (len(letters) - 1) * skip
	first, last := 0, prep.Len()-1-span
	if skip < 0 {
		first, last = -span, prep.Len()-1
	}
	for start := first; start <= last; start++ {
		if matchAt(prep, letters, start, skip) {
			hit(start)
		}
	}
}

// matchAt compares the term against the stream at start with a fixed skip,
// short-circuiting on the first mismatch.
func matchAt(prep *textprep.PreparedText, letters []rune, start, skip int) bool {
	for k, c := range letters {
		if prep.At(start+k*skip) != c {
			return false
		}
	}
	return true
}

func matchOffsets(prep *textprep.PreparedText, letters []rune, start int, offsets []int) bool {
	for k, c := range letters {
		if prep.At(start+offsets[k]) != c {
			return false
		}
	}
	return true
}

// newResult canonicalizes hit positions to ascending order and assembles the
// result record. skip is signed; the recorded skip is its magnitude.
func newResult(prep *textprep.PreparedText, term string, letters []rune, start, skip int, valuer cipher.Valuer) Result {
	positions := make([]int, len(letters))
	for i := range letters {
		positions[i] = start + i*skip
	}
	dir := Forward
	mag := skip
	if skip < 0 {
		dir = Backward
		mag = -skip
		for i, j := 0, len(positions)-1; i < j; i, j = i+1, j-1 {
			positions[i], positions[j] = positions[j], positions[i]
		}
	}
	return assemble(prep, term, positions, mag, dir, valuer)
}

// assemble builds a Result from ascending positions. StartPos is the position
// of the term's first letter in scan order, i.e. the last ascending position
// for backward hits.
func assemble(prep *textprep.PreparedText, term string, positions []int, skip int, dir Direction, valuer cipher.Valuer) Result {
	segments, err := ExtractIntervening(prep, positions, valuer)
	if err != nil {
		// Positions come from the scanner itself, so this is a bug, not input.
		log.Errorf("els: intervening extraction failed: %v", err)
	}
	start := positions[0]
	if dir == Backward {
		start = positions[len(positions)-1]
	}
	sum := 0
	for _, seg := range segments {
		sum += seg.Interval
	}
	return Result{
		Term:            term,
		Skip:            skip,
		StartPos:        start,
		Direction:       dir,
		LetterPositions: positions,
		Segments:        segments,
		TermValue:       valuer.Calculate(term),
		SkipValueSum:    sum,
	}
}
