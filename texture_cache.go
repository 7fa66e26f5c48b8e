package skygen

import (
	"image"

	"github.com/gogpu/skygen/cache"
)

// DefaultKey is the texture key skies are published under by default.
const DefaultKey = "rt_SkyGenerator"

// TextureCache is a named store of finished skies. Publishing under an
// existing key replaces the entry.
//
// TextureCache is safe for concurrent use. Generators that share both a cache
// and a key race on that entry; giving each concurrent generator its own key
// is the caller's responsibility.
type TextureCache struct {
	c *cache.Cache[string, *Pixmap]
}

// NewTextureCache creates a texture cache holding at most softLimit entries.
// A softLimit of 0 means unlimited.
func NewTextureCache(softLimit int) *TextureCache {
	return &TextureCache{c: cache.New[string, *Pixmap](softLimit)}
}

var defaultTextures = NewTextureCache(0)

// DefaultTextureCache returns the process-wide cache used by generators
// created without WithTextureCache.
func DefaultTextureCache() *TextureCache {
	return defaultTextures
}

// Publish stores img under key, replacing any previous entry. The cache takes
// ownership of img.
func (t *TextureCache) Publish(key string, img *image.RGBA) {
	replaced := t.c.Set(key, wrapPixmap(img))
	Logger().Info("sky texture published",
		"key", key,
		"width", img.Rect.Dx(),
		"height", img.Rect.Dy(),
		"replaced", replaced,
	)
}

// Lookup returns the texture stored under key.
func (t *TextureCache) Lookup(key string) (*Pixmap, bool) {
	return t.c.Get(key)
}

// Delete removes the texture stored under key.
func (t *TextureCache) Delete(key string) bool {
	return t.c.Delete(key)
}

// Keys returns the stored keys in no particular order.
func (t *TextureCache) Keys() []string {
	return t.c.Keys()
}

// Len returns the number of stored textures.
func (t *TextureCache) Len() int {
	return t.c.Len()
}

// Stats returns lookup and replacement statistics.
func (t *TextureCache) Stats() cache.Stats {
	return t.c.Stats()
}
