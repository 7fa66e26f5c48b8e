// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"sync"
)

// Pool is a thread-safe pool for reusing scratch *image.RGBA buffers.
//
// Pool groups buffers by their dimensions, allowing efficient reuse of
// identically-sized buffers. Sprite draws repeat the same few brush sizes
// hundreds of times per pass, so this removes most per-draw allocation.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*image.RGBA
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identical buffer sizes.
type poolKey struct {
	width  int
	height int
}

// NewPool creates a new buffer pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*image.RGBA),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a buffer from the pool or creates a new one.
// The returned buffer has origin (0, 0), the requested size, and all pixels
// zeroed.
func (p *Pool) Get(width, height int) *image.RGBA {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(buf.Pix)
		return buf
	}
	p.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Put returns a buffer to the pool for reuse.
// If buf is nil or the bucket is at max capacity, the buffer is discarded.
func (p *Pool) Put(buf *image.RGBA) {
	if buf == nil {
		return
	}

	b := buf.Bounds()
	key := poolKey{width: b.Dx(), height: b.Dy()}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers of the given size.
func (p *Pool) Len(width, height int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.buckets[poolKey{width: width, height: height}])
}

// defaultPool is shared by all ImageSurfaces.
var defaultPool = NewPool(8)
