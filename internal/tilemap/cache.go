package tilemap

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// tileCache is an LRU of decoded tiles. onEvict runs for every entry that
// leaves the cache, including on purge.
type tileCache[V any] struct {
	entries *lru.Cache[TileKey, V]
}

func newTileCache[V any](size int, onEvict func(TileKey, V)) (*tileCache[V], error) {
	if size <= 0 {
		size = 1
	}
	c, err := lru.NewWithEvict[TileKey, V](size, onEvict)
	if err != nil {
		return nil, err
	}
	return &tileCache[V]{entries: c}, nil
}

func (c *tileCache[V]) Get(k TileKey) (V, bool) { return c.entries.Get(k) }
func (c *tileCache[V]) Contains(k TileKey) bool  { return c.entries.Contains(k) }
func (c *tileCache[V]) Add(k TileKey, v V)       { c.entries.Add(k, v) }
func (c *tileCache[V]) Len() int                 { return c.entries.Len() }
func (c *tileCache[V]) Purge()                   { c.entries.Purge() }
