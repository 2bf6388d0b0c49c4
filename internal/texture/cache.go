package texture

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

// ErrNotFound is returned by Cache.Load for names missing from the index.
var ErrNotFound = errors.New("texture: not found")

type cached struct {
	img *image.NRGBA
	err error
}

// Cache is a concurrency-safe texture cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]cached
	index *Index
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]cached),
		index: index,
	}
}

// Load returns the decoded texture for a name, or ErrNotFound when the index
// has no file for it, or the decode error. Failed loads are cached too.
func (c *Cache) Load(texName string) (*image.NRGBA, error) {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, texName)
	}

	c.mu.RLock()
	item, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return item.img, item.err
	}

	img, err := LoadTexture(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if item, exists := c.items[path]; exists {
		return item.img, item.err
	}
	c.items[path] = cached{img, err}
	return img, err
}
