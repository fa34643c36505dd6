package textprep

import "unicode"

// LetterClass decides which runes of the raw input survive stripping and how
// they are normalized before storage. Diacritics and valuation quirks are the
// cipher collaborator's problem; a class only decides retention and folding.
type LetterClass struct {
	// Name identifies the class in cache keys and config files.
	Name string

	// Normalize maps a raw rune to its stored form. The bool reports
	// whether the rune belongs to the class at all.
	Normalize func(r rune) (rune, bool)
}

// Latin retains ASCII letters, folded to lower case.
var Latin = LetterClass{
	Name: "latin",
	Normalize: func(r rune) (rune, bool) {
		switch {
		case r >= 'a' && r <= 'z':
			return r, true
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A'), true
		}
		return 0, false
	},
}

// Hebrew retains the Hebrew letter block, final forms included as-is.
var Hebrew = LetterClass{
	Name: "hebrew",
	Normalize: func(r rune) (rune, bool) {
		if r >= 'א' && r <= 'ת' {
			return r, true
		}
		return 0, false
	},
}

// Letters retains any unicode letter unchanged.
var Letters = LetterClass{
	Name: "letters",
	Normalize: func(r rune) (rune, bool) {
		return r, unicode.IsLetter(r)
	},
}

// ClassByName resolves a class from its config/CLI name.
// Unknown names fall back to Letters.
func ClassByName(name string) LetterClass {
	switch name {
	case "latin":
		return Latin
	case "hebrew":
		return Hebrew
	default:
		return Letters
	}
}

// NormalizeTerm folds a search term through the class the text was prepared
// with, dropping anything outside the class. Search terms must pass through
// the same normalization as the text or exact rune comparison breaks.
func (c LetterClass) NormalizeTerm(term string) []rune {
	out := make([]rune, 0, len(term))
	for _, r := range term {
		if n, ok := c.Normalize(r); ok {
			out = append(out, n)
		}
	}
	return out
}
