// Package cache provides a generic, thread-safe keyed store with a soft
// limit.
//
// It backs the texture registry that finished skies are published into: a
// render result is stored under a string key, and publishing again under the
// same key replaces the previous entry.
//
//	c := cache.New[string, *image.RGBA](16)
//	replaced := c.Set("rt_SkyGenerator", img)
//	img, ok := c.Get("rt_SkyGenerator")
//
// # Eviction
//
// A soft limit of 0 means unlimited. When a positive limit is exceeded, the
// least recently used 25% of entries are evicted in one batch.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex).
package cache
