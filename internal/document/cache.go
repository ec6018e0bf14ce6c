package document

import (
	"strconv"

	gocache "github.com/patrickmn/go-cache"
)

// pageCache memoizes assembled pages for the lifetime of a Reader. Entries
// never expire; the cache is flushed on Close.
type pageCache struct {
	cache *gocache.Cache
}

func newPageCache() *pageCache {
	return &pageCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (c *pageCache) get(n int) (*Page, bool) {
	if val, found := c.cache.Get(strconv.Itoa(n)); found {
		return val.(*Page), true
	}
	return nil, false
}

func (c *pageCache) put(n int, p *Page) {
	c.cache.Set(strconv.Itoa(n), p, gocache.NoExpiration)
}

func (c *pageCache) flush() {
	c.cache.Flush()
}
