package textprep

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of distinct prepared texts kept alive.
// Interactive sessions rarely touch more than a handful of documents.
const DefaultCacheSize = 16

// Cache is a bounded, content-addressed cache of prepared texts.
// Keys are xxhash digests of the class name plus the raw input, so the same
// document prepared twice is only stripped once.
type Cache struct {
	entries *lru.Cache[string, *PreparedText]
}

// NewCache creates a cache holding at most size prepared texts.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, _ := lru.New[string, *PreparedText](size)
	return &Cache{entries: entries}
}

func cacheKey(raw string, class LetterClass) string {
	d := xxhash.New()
	d.WriteString(class.Name)
	d.WriteString("\x00")
	d.WriteString(raw)
	return strconv.FormatUint(d.Sum64(), 16)
}

// Prepare returns the cached prepared text for raw, stripping it on a miss.
func (c *Cache) Prepare(raw string, class LetterClass) (*PreparedText, error) {
	key := cacheKey(raw, class)
	if prep, ok := c.entries.Get(key); ok {
		log.Debugf("textprep cache hit (%s)", key)
		return prep, nil
	}
	prep, err := Prepare(raw, class)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, prep)
	return prep, nil
}

// Len reports how many prepared texts are currently cached.
func (c *Cache) Len() int { return c.entries.Len() }

// Purge drops every cached entry.
func (c *Cache) Purge() { c.entries.Purge() }
