package els

import (
	"fmt"

	"github.com/rdayan/elscan/pkg/cipher"
	"github.com/rdayan/elscan/pkg/textprep"
)

// ExtractIntervening builds the segment records for a strictly ascending list
// of hit positions: one segment per consecutive pair, holding exactly
// p2-p1-1 letters. Valuation of the slice is delegated to the cipher
// collaborator; the searcher never computes letter values itself.
func ExtractIntervening(prep *textprep.PreparedText, positions []int, valuer cipher.Valuer) ([]InterveningSegment, error) {
	if valuer == nil {
		valuer = cipher.Nop{}
	}
	for i, p := range positions {
		if p < 0 || p >= prep.Len() {
			return nil, fmt.Errorf("els: position %d out of range [0,%d)", p, prep.Len())
		}
		if i > 0 && p <= positions[i-1] {
			return nil, fmt.Errorf("els: positions must be strictly increasing, got %d after %d", p, positions[i-1])
		}
	}

	segments := make([]InterveningSegment, 0, max(len(positions)-1, 0))
	for i := 1; i < len(positions); i++ {
		prev, cur := positions[i-1], positions[i]
		between := prep.Slice(prev+1, cur)
		segments = append(segments, InterveningSegment{
			Letter:   string(prep.At(cur)),
			Position: cur,
			Interval: cur - prev,
			Letters:  between,
			Value:    valuer.Calculate(between),
		})
	}
	return segments, nil
}
