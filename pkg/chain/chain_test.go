package chain

import (
	"context"
	"testing"

	"github.com/rdayan/elscan/pkg/cipher"
	"github.com/rdayan/elscan/pkg/textprep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepare(t *testing.T, raw string) *textprep.PreparedText {
	t.Helper()
	prep, err := textprep.Prepare(raw, textprep.Latin)
	require.NoError(t, err)
	return prep
}

func TestSearchGreedyChain(t *testing.T) {
	prep := prepare(t, "XXXCXXAXXXT")

	summary, err := Search(context.Background(), prep, "cat", 10, nil, Options{})
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)

	r := summary.Results[0]
	require.Len(t, r.Steps, 3)
	assert.Equal(t, 3, r.Steps[0].Position)
	assert.Equal(t, 6, r.Steps[1].Position)
	assert.Equal(t, 10, r.Steps[2].Position)
	assert.Equal(t, 7, r.TotalLength)
	assert.Equal(t, 8, r.IntervalSum)
}

func TestSearchStepDetails(t *testing.T) {
	prep := prepare(t, "XXXCXXAXXXT")

	summary, err := Search(context.Background(), prep, "cat", 10, nil, Options{Valuer: cipher.Ordinal{}})
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)

	steps := summary.Results[0].Steps
	assert.Equal(t, "c", steps[0].Letter)
	assert.Equal(t, 3, steps[0].Interval)
	assert.Equal(t, "xxx", steps[0].Letters)
	assert.Equal(t, 72, steps[0].Value) // x=24, three of them

	assert.Equal(t, "a", steps[1].Letter)
	assert.Equal(t, 2, steps[1].Interval)
	assert.Equal(t, "xx", steps[1].Letters)

	// term value (c+a+t = 24) plus all intervening values.
	assert.Equal(t, 24+72+48+72, summary.Results[0].TotalValue)
}

// Every chain found with a smaller window must also be found with a larger one.
func TestSearchWindowMonotone(t *testing.T) {
	prep := prepare(t, "acbxatxxcaxtxxxcxaxxxt")

	small, err := Search(context.Background(), prep, "cat", 4, nil, Options{})
	require.NoError(t, err)
	large, err := Search(context.Background(), prep, "cat", 12, nil, Options{})
	require.NoError(t, err)

	firstPositions := func(s *Summary) map[int]bool {
		seen := make(map[int]bool)
		for _, r := range s.Results {
			seen[r.Steps[0].Position] = true
		}
		return seen
	}
	largeSeen := firstPositions(large)
	for pos := range firstPositions(small) {
		assert.True(t, largeSeen[pos], "chain at %d lost with larger window", pos)
	}
	assert.GreaterOrEqual(t, len(large.Results), len(small.Results))
}

func TestSearchOrderedByLength(t *testing.T) {
	prep := prepare(t, "cxxaxxxtxxcat")

	summary, err := Search(context.Background(), prep, "cat", 12, nil, Options{})
	require.NoError(t, err)
	require.True(t, len(summary.Results) >= 2)

	for i := 1; i < len(summary.Results); i++ {
		assert.LessOrEqual(t, summary.Results[i-1].TotalLength, summary.Results[i].TotalLength)
	}
	// The tight "cat" run at the end ranks first.
	assert.Equal(t, 2, summary.Results[0].TotalLength)
}

func TestSearchExplicitStartsRecordBreaks(t *testing.T) {
	prep := prepare(t, "XXXCXXAXXXT")

	summary, err := Search(context.Background(), prep, "cat", 10, []int{0, 8}, Options{})
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	require.Len(t, summary.Broken, 1)
	b := summary.Broken[0]
	assert.Equal(t, 8, b.StartPos)
	assert.Equal(t, 0, b.Index)
	assert.Equal(t, "c", b.Letter)
}

func TestSearchBreakMidChain(t *testing.T) {
	// 'c' and 'a' place, 't' is out of reach.
	prep := prepare(t, "caxxxxxxxxxxt")

	summary, err := Search(context.Background(), prep, "cat", 5, []int{0}, Options{})
	require.NoError(t, err)
	assert.Empty(t, summary.Results)
	require.Len(t, summary.Broken, 1)
	assert.Equal(t, 2, summary.Broken[0].Index)
	assert.Equal(t, "t", summary.Broken[0].Letter)
}

func TestSearchImplicitSweepOmitsBreaks(t *testing.T) {
	prep := prepare(t, "XXXCXXAXXXT")

	summary, err := Search(context.Background(), prep, "cat", 10, nil, Options{})
	require.NoError(t, err)
	// Failures in the all-positions sweep are absence, not diagnostics.
	assert.Empty(t, summary.Broken)
}

func TestSearchDuplicateStartsCollapse(t *testing.T) {
	prep := prepare(t, "XXXCXXAXXXT")

	// Starts 0..3 all resolve to the chain whose first hit is position 3.
	summary, err := Search(context.Background(), prep, "cat", 10, nil, Options{})
	require.NoError(t, err)
	assert.Len(t, summary.Results, 1)
}

func TestSearchValidation(t *testing.T) {
	prep := prepare(t, "abc")

	_, err := Search(context.Background(), prep, "", 5, nil, Options{})
	assert.Error(t, err)
	_, err = Search(context.Background(), prep, "ab", 0, nil, Options{})
	assert.Error(t, err)
}

func TestSearchOutOfRangeExplicitStart(t *testing.T) {
	prep := prepare(t, "abc")

	summary, err := Search(context.Background(), prep, "ab", 5, []int{99}, Options{})
	require.NoError(t, err)
	assert.Empty(t, summary.Results)
	require.Len(t, summary.Broken, 1)
	assert.Equal(t, 99, summary.Broken[0].StartPos)
}

func TestSearchCancellation(t *testing.T) {
	prep := prepare(t, "abcabcabc")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Search(ctx, prep, "abc", 5, nil, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Empty(t, summary.Results)
}

func TestSearchProgress(t *testing.T) {
	prep := prepare(t, "abcabc")
	var last, total int

	_, err := Search(context.Background(), prep, "abc", 5, nil, Options{
		Progress: func(done, tot int) { last, total = done, tot },
	})
	require.NoError(t, err)
	assert.Equal(t, prep.Len(), total)
	assert.Equal(t, prep.Len(), last)
}
