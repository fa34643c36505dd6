package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorize(t *testing.T) {
	testCases := []struct {
		n     int
		rows  int
		cols  int
		ideal bool
	}{
		{1, 1, 1, true},
		{4, 2, 2, true},
		{12, 3, 4, true},
		{16, 4, 4, true},
		{18, 3, 6, true},
		{100, 10, 10, true},
		{2, 1, 2, false},
		{17, 1, 17, false},
		{97, 1, 97, false},
	}
	for _, tc := range testCases {
		f, err := Factorize(tc.n)
		require.NoError(t, err, "n=%d", tc.n)
		assert.Equal(t, tc.rows, f.Rows, "n=%d", tc.n)
		assert.Equal(t, tc.cols, f.Cols, "n=%d", tc.n)
		assert.Equal(t, tc.ideal, f.Ideal, "n=%d", tc.n)
	}
}

func TestFactorizeInvalid(t *testing.T) {
	_, err := Factorize(0)
	assert.Error(t, err)
	_, err = Factorize(-5)
	assert.Error(t, err)
}

// The chosen grid always covers the letter count, and for composite counts no
// other divisor pair is squarer.
func TestFactorizeLowerBound(t *testing.T) {
	for n := 1; n <= 600; n++ {
		f, err := Factorize(n)
		require.NoError(t, err)
		require.GreaterOrEqual(t, f.Rows*f.Cols, n, "n=%d", n)
		require.LessOrEqual(t, f.Rows, f.Cols, "n=%d", n)
		for rows := 1; rows*rows <= n; rows++ {
			if n%rows == 0 {
				require.LessOrEqual(t, f.Cols-f.Rows, n/rows-rows, "n=%d rows=%d", n, rows)
			}
		}
	}
}

func TestSuggestCounts(t *testing.T) {
	// 17 is prime; 16 (4x4) and 18 (3x6) both lay out squarer.
	suggestions := SuggestCounts(17, 2)
	assert.Contains(t, suggestions, 16)
	assert.Contains(t, suggestions, 18)
	assert.NotContains(t, suggestions, 17)

	// Ordered by distance from n.
	require.NotEmpty(t, suggestions)
	assert.Equal(t, 16, suggestions[0])
}

func TestSuggestCountsPerfectSquare(t *testing.T) {
	// Nothing near 16 beats a 4x4 layout.
	assert.Empty(t, SuggestCounts(16, 2))
}

func TestSuggestCountsInvalid(t *testing.T) {
	assert.Nil(t, SuggestCounts(0, 3))
	assert.Nil(t, SuggestCounts(10, 0))
}
