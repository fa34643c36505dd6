package els

import (
	"errors"
	"fmt"
)

// ErrSkipZero is returned when a constant skip of zero is requested.
var ErrSkipZero = errors.New("els: constant skip must be non-zero")

// ErrEmptyTerm is returned when the term has no letters after normalization.
var ErrEmptyTerm = errors.New("els: search term is empty")

// TermTooLongError reports a term that cannot fit in the stream at any
// requested skip. Raised before scanning starts.
type TermTooLongError struct {
	Term      string
	TermLen   int
	MinSkip   int
	SourceLen int
}

func (e *TermTooLongError) Error() string {
	return fmt.Sprintf("els: term %q (%d letters) cannot fit in %d letters at skip >= %d",
		e.Term, e.TermLen, e.SourceLen, e.MinSkip)
}
