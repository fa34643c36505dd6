// Package els is the core equidistant letter sequence searcher. It scans a
// prepared letter stream for a term whose letters sit at a constant skip or
// along a derived offset progression, and records every hit with its
// intervening letter segments.
package els

import (
	"encoding/json"
	"fmt"
)

// Direction selects the scan orientation. Backward searches run with negated
// skips; reported letter positions are always canonicalized to ascending
// order with the direction flagged separately.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "Backward"
	}
	return "Forward"
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Forward":
		*d = Forward
	case "Backward":
		*d = Backward
	default:
		return fmt.Errorf("els: unknown direction %q", s)
	}
	return nil
}

// InterveningSegment describes one hit letter together with the letters lying
// strictly between it and the previous hit.
type InterveningSegment struct {
	Letter   string `json:"letter"`
	Position int    `json:"position"`
	Interval int    `json:"interval_from_previous"`
	Letters  string `json:"intervening_letters"`
	Value    int    `json:"intervening_value"`
}

// Result is a single occurrence of the term.
type Result struct {
	Term            string               `json:"term"`
	Skip            int                  `json:"skip"`
	StartPos        int                  `json:"start_pos"`
	Direction       Direction            `json:"direction"`
	LetterPositions []int                `json:"letter_positions"`
	Segments        []InterveningSegment `json:"intervening_segments"`
	TermValue       int                  `json:"term_value"`
	SkipValueSum    int                  `json:"skip_value_sum"`
}

// Summary collects every result of one search call.
type Summary struct {
	Term         string   `json:"term"`
	Results      []Result `json:"results"`
	SourceLength int      `json:"source_length"`
}
