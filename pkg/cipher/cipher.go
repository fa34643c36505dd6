// Package cipher declares the letter-valuation capability the search engine
// consumes. The engine never computes letter values itself; a host application
// plugs in whatever valuation scheme it uses by implementing Valuer.
package cipher

import "unicode"

// Valuer computes numeric values for letters and whole strings.
type Valuer interface {
	// Calculate returns the aggregate value of text.
	Calculate(text string) int

	// LetterValue returns the value of a single letter.
	// Unmapped characters yield 0, never an error, so a running scan
	// is never aborted by a valuation gap.
	LetterValue(r rune) int
}

// Nop is a Valuer that maps everything to zero. It is the default collaborator
// when a caller only cares about positions and intervals.
type Nop struct{}

func (Nop) Calculate(string) int { return 0 }
func (Nop) LetterValue(rune) int { return 0 }

// Ordinal values Latin letters by alphabet position (a=1 .. z=26),
// case-insensitive. Intended for testing and CLI demos; real ciphers
// are supplied by the host.
type Ordinal struct{}

func (Ordinal) LetterValue(r rune) int {
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return 0
	}
	return int(r-'a') + 1
}

func (o Ordinal) Calculate(text string) int {
	total := 0
	for _, r := range text {
		total += o.LetterValue(r)
	}
	return total
}
