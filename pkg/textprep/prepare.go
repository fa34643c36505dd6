// Package textprep reduces raw input to the letter-only stream every search
// mode scans, keeping a map back to original byte offsets so callers can
// highlight hits in the source text.
package textprep

import (
	"errors"

	"github.com/charmbracelet/log"
)

// ErrEmptyText is returned when stripping leaves no letters at all.
var ErrEmptyText = errors.New("textprep: no letters remain after stripping")

// PreparedText is the letter-only stream with its position map.
// Immutable once built; safe to share between concurrent searches.
type PreparedText struct {
	stripped  []rune
	positions []int
	class     string
}

// Prepare strips raw down to class letters. positions[i] is the byte offset
// in raw of the i-th retained letter.
func Prepare(raw string, class LetterClass) (*PreparedText, error) {
	stripped := make([]rune, 0, len(raw))
	positions := make([]int, 0, len(raw))

	for off, r := range raw {
		if n, ok := class.Normalize(r); ok {
			stripped = append(stripped, n)
			positions = append(positions, off)
		}
	}
	if len(stripped) == 0 {
		return nil, ErrEmptyText
	}
	log.Debugf("prepared %d letters from %d bytes (class=%s)", len(stripped), len(raw), class.Name)

	return &PreparedText{
		stripped:  stripped,
		positions: positions,
		class:     class.Name,
	}, nil
}

// Len reports the number of retained letters.
func (p *PreparedText) Len() int { return len(p.stripped) }

// At returns the i-th stripped letter.
func (p *PreparedText) At(i int) rune { return p.stripped[i] }

// Runes returns the stripped stream. Callers must not mutate it.
func (p *PreparedText) Runes() []rune { return p.stripped }

// SourceOffset returns the byte offset in the raw input of the i-th letter.
func (p *PreparedText) SourceOffset(i int) int { return p.positions[i] }

// Class reports the name of the letter class the text was prepared with.
func (p *PreparedText) Class() string { return p.class }

// Slice returns the letters in [from, to) as a string.
func (p *PreparedText) Slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(p.stripped) {
		to = len(p.stripped)
	}
	if from >= to {
		return ""
	}
	return string(p.stripped[from:to])
}
