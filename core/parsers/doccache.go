// ABOUTME: In-process cache of decoded documents keyed by payload hash
// ABOUTME: Lets several recipes run over the same feed without re-decoding it

package parsers

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DocumentCache holds decoded documents. Entries are shared between callers
// and must be treated as read-only.
type DocumentCache struct {
	items *gocache.Cache
}

// NewDocumentCache creates a cache whose entries live for ttl.
func NewDocumentCache(ttl time.Duration) *DocumentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DocumentCache{items: gocache.New(ttl, 2*ttl)}
}

// Load returns the cached document for format and data, decoding and storing
// it on a miss. Decode errors are not cached.
func (c *DocumentCache) Load(format, data string, decode func() (interface{}, error)) (interface{}, error) {
	if c == nil {
		return decode()
	}
	key := documentKey(format, data)
	if doc, ok := c.items.Get(key); ok {
		return doc, nil
	}
	doc, err := decode()
	if err != nil {
		return nil, err
	}
	c.items.SetDefault(key, doc)
	return doc, nil
}

// Len returns the number of cached documents, expired ones included until
// the janitor runs.
func (c *DocumentCache) Len() int {
	return c.items.ItemCount()
}

// Flush drops every cached document.
func (c *DocumentCache) Flush() {
	c.items.Flush()
}

func documentKey(format, data string) string {
	sum := sha256.Sum256([]byte(data))
	return format + ":" + hex.EncodeToString(sum[:])
}
