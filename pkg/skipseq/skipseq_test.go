package skipseq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorValues(t *testing.T) {
	testCases := []struct {
		name     string
		offsets  []int
		expected []int
	}{
		{"constant skip 3", ConstantOffsets(3, 5), []int{0, 3, 6, 9, 12}},
		{"constant skip 1", ConstantOffsets(1, 4), []int{0, 1, 2, 3}},
		{"triangular", TriangularOffsets(6), []int{0, 1, 3, 6, 10, 15}},
		{"square", SquareOffsets(6), []int{0, 1, 4, 9, 16, 25}},
		{"fibonacci", FibonacciOffsets(7), []int{0, 1, 2, 4, 7, 12, 20}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.offsets)
		})
	}
}

func TestFibonacciSix(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 4, 7, 12}, FibonacciOffsets(6))
}

// Derived progressions must be strictly increasing from 0.
func TestGeneratorMonotonicity(t *testing.T) {
	generators := map[string][]int{
		"triangular": TriangularOffsets(64),
		"square":     SquareOffsets(64),
		"fibonacci":  FibonacciOffsets(40),
	}
	for name, offsets := range generators {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, 0, offsets[0])
			for i := 1; i < len(offsets); i++ {
				require.Greater(t, offsets[i], offsets[i-1], "offset %d", i)
			}
		})
	}
}

func TestOffsetsDispatch(t *testing.T) {
	assert.Equal(t, ConstantOffsets(5, 4), Offsets(Constant, 5, 4))
	assert.Equal(t, TriangularOffsets(4), Offsets(Triangular, 0, 4))
	assert.Equal(t, SquareOffsets(4), Offsets(Square, 0, 4))
	assert.Equal(t, FibonacciOffsets(4), Offsets(Fibonacci, 0, 4))
}

func TestModeByName(t *testing.T) {
	for _, name := range []string{"constant", "triangular", "square", "fibonacci"} {
		mode, ok := ModeByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, mode.String())
	}
	_, ok := ModeByName("cubic")
	assert.False(t, ok)
}

func TestZeroCount(t *testing.T) {
	assert.Empty(t, TriangularOffsets(0))
	assert.Empty(t, FibonacciOffsets(0))
	assert.Empty(t, ConstantOffsets(7, 0))
}
