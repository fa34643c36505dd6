//go:build test

package mem

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/rdayan/elscan/pkg/els"
	"github.com/rdayan/elscan/pkg/textprep"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var testTerms = []string{
	"cat", "dog", "the", "and",
	"aba", "cab", "bad", "ace",
	"dead", "face", "bead",
}

// syntheticText builds a deterministic pseudo-random letter stream so search
// passes touch realistic amounts of memory without fixture files.
func syntheticText(letters int) string {
	var b strings.Builder
	b.Grow(letters)
	state := uint32(2463534242)
	for i := 0; i < letters; i++ {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		b.WriteByte(byte('a' + state%26))
	}
	return b.String()
}

func heapInUse() uint64 {
	runtime.GC()
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapInuse
}

// Repeated searches against a shared PreparedText must not accumulate state:
// result records are owned by the caller and dropped between iterations.
func TestSearchMemoryStable(t *testing.T) {
	prep, err := textprep.Prepare(syntheticText(50000), textprep.Latin)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	iterations := []int{100, 500, 1000}
	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runSearchMemoryTest(t, prep, iterCount)
		})
	}
}

func runSearchMemoryTest(t *testing.T, prep *textprep.PreparedText, iterations int) {
	// Warm up allocator paths before measuring.
	for i := 0; i < 10; i++ {
		term := testTerms[i%len(testTerms)]
		if _, err := els.Search(context.Background(), prep, term, 1, 20, els.Forward, els.Options{}); err != nil {
			t.Fatalf("warmup search: %v", err)
		}
	}

	before := heapInUse()
	for i := 0; i < iterations; i++ {
		term := testTerms[i%len(testTerms)]
		if _, err := els.Search(context.Background(), prep, term, 1, 20, els.Forward, els.Options{}); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	after := heapInUse()

	growth := int64(after) - int64(before)
	t.Logf("heap in use: before=%d after=%d growth=%d", before, after, growth)

	// Allow slack for runtime noise; a real leak scales with iterations.
	const maxGrowth = 8 << 20
	if growth > maxGrowth {
		t.Errorf("heap grew by %d bytes over %d searches (max %d)", growth, iterations, maxGrowth)
	}
}

func TestCacheMemoryBounded(t *testing.T) {
	cache := textprep.NewCache(4)

	before := heapInUse()
	for i := 0; i < 64; i++ {
		raw := syntheticText(10000) + fmt.Sprintf("%d", i)
		if _, err := cache.Prepare(raw, textprep.Latin); err != nil {
			t.Fatalf("prepare %d: %v", i, err)
		}
	}
	after := heapInUse()

	if cache.Len() != 4 {
		t.Errorf("cache holds %d entries, want 4", cache.Len())
	}
	// 64 texts of 10k letters passed through; only ~4 should remain live.
	growth := int64(after) - int64(before)
	t.Logf("heap growth after eviction churn: %d", growth)
	const maxGrowth = 4 << 20
	if growth > maxGrowth {
		t.Errorf("heap grew by %d bytes with a 4-entry cache (max %d)", growth, maxGrowth)
	}
}
