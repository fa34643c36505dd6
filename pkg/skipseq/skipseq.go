// Package skipseq provides the pure offset generators behind every search
// mode: constant skips and the derived progressions (triangular, square,
// Fibonacci-cumulative). Generators are stateless and text-independent.
package skipseq

import "fmt"

// Mode selects how successive letter offsets are derived.
type Mode int

const (
	Constant Mode = iota
	Triangular
	Square
	Fibonacci
)

var modeNames = map[Mode]string{
	Constant:   "constant",
	Triangular: "triangular",
	Square:     "square",
	Fibonacci:  "fibonacci",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ModeByName resolves a mode from its wire/CLI name.
func ModeByName(name string) (Mode, bool) {
	for m, n := range modeNames {
		if n == name {
			return m, true
		}
	}
	return Constant, false
}

// ConstantOffsets returns count offsets i*skip. skip must be positive;
// backward searches negate positions at the call site, not here.
func ConstantOffsets(skip, count int) []int {
	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = i * skip
	}
	return offsets
}

// TriangularOffsets returns count triangular numbers: 0, 1, 3, 6, 10, ...
func TriangularOffsets(count int) []int {
	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = i * (i + 1) / 2
	}
	return offsets
}

// SquareOffsets returns count squares: 0, 1, 4, 9, 16, ...
func SquareOffsets(count int) []int {
	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = i * i
	}
	return offsets
}

// FibonacciOffsets returns count cumulative sums over the Fibonacci deltas
// 1, 1, 2, 3, 5, ... yielding 0, 1, 2, 4, 7, 12, 20, ...
func FibonacciOffsets(count int) []int {
	offsets := make([]int, count)
	a, b := 1, 1
	sum := 0
	for i := range offsets {
		offsets[i] = sum
		sum += a
		a, b = b, a+b
	}
	return offsets
}

// Offsets dispatches on mode. skip is only consulted for Constant.
func Offsets(mode Mode, skip, count int) []int {
	switch mode {
	case Triangular:
		return TriangularOffsets(count)
	case Square:
		return SquareOffsets(count)
	case Fibonacci:
		return FibonacciOffsets(count)
	default:
		return ConstantOffsets(skip, count)
	}
}
