// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import "sync"

const (
	// MaxCachedFBOs bounds the FboCache's size; the least-recently-used
	// entry is evicted once the cache is full and a new key arrives.
	MaxCachedFBOs = 64
	// MaxUnusedFrames is how long an FBO may sit unreferenced before
	// Cleanup reclaims it even if the cache isn't full.
	MaxUnusedFrames = 120
	// maxColorAttachmentSlots bounds FboKey's color attachment array;
	// spec §4.4 caps it at 8 to match GL_MAX_COLOR_ATTACHMENTS on any
	// desktop 4.5 driver actually shipped.
	maxColorAttachmentSlots = 8
)

// FboKey identifies a unique combination of render-pass attachments. Two
// render passes that bind the same textures at the same mip/layer/internal
// format produce the same key and therefore reuse the same framebuffer
// object (spec §4.3's key fields: up to 8 color attachments, one
// depth-stencil attachment, dimensions width/height/layers).
type FboKey struct {
	Color   [maxColorAttachmentSlots]attachmentKey
	Depth   attachmentKey
	Width   uint32
	Height  uint32
	Layers  uint32
}

type attachmentKey struct {
	Texture uint32
	Level   int32
	Layer   int32 // -1 for a non-layered attachment
	Format  uint32 // GL internal format
	Valid   bool
}

type fboEntry struct {
	fbo        uint32
	lastUsed   uint64
	insertedAt uint64
	hits       uint64
}

// FboCache memoizes framebuffer objects by their attachment set (spec
// §4.4). No teacher analogue: hal/gles/command.go creates a fresh
// framebuffer (really, relies on the default one) per render pass.
type FboCache struct {
	mu      sync.Mutex
	entries map[FboKey]*fboEntry
	order   []FboKey // insertion order, used to break LRU ties deterministically
	frame   uint64
	seq     uint64

	createFBO  func() uint32
	deleteFBOs func(...uint32)
	onEvict    func(fbo uint32)
}

// NewFboCache creates an empty cache. createFBO/deleteFBOs are injected so
// tests can exercise eviction without a live GL context.
func NewFboCache(createFBO func() uint32, deleteFBOs func(...uint32)) *FboCache {
	return &FboCache{
		entries:    make(map[FboKey]*fboEntry),
		createFBO:  createFBO,
		deleteFBOs: deleteFBOs,
	}
}

// AdvanceFrame marks a new frame boundary for age tracking.
func (c *FboCache) AdvanceFrame() {
	c.mu.Lock()
	c.frame++
	c.mu.Unlock()
}

// GetOrCreate returns the FBO for key, creating one (and evicting the
// oldest entry if the cache is full) if it doesn't already exist. The
// second return value reports whether the FBO was freshly created, so the
// caller knows it must still attach textures to it.
func (c *FboCache) GetOrCreate(key FboKey) (fbo uint32, created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.lastUsed = c.frame
		e.hits++
		return e.fbo, false
	}

	if len(c.entries) >= MaxCachedFBOs {
		c.evictOldestLocked()
	}

	fbo = c.createFBO()
	c.seq++
	c.entries[key] = &fboEntry{fbo: fbo, lastUsed: c.frame, insertedAt: c.seq}
	c.order = append(c.order, key)
	return fbo, true
}

func (c *FboCache) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	oldestIdx := 0
	oldest := c.entries[c.order[0]]
	for i, k := range c.order {
		e := c.entries[k]
		if e == nil {
			continue
		}
		if e.lastUsed < oldest.lastUsed || (e.lastUsed == oldest.lastUsed && e.insertedAt < oldest.insertedAt) {
			oldest, oldestIdx = e, i
		}
	}
	key := c.order[oldestIdx]
	c.order = append(c.order[:oldestIdx], c.order[oldestIdx+1:]...)
	c.destroyLocked(key)
}

func (c *FboCache) destroyLocked(key FboKey) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	if c.onEvict != nil {
		c.onEvict(e.fbo)
	}
	if c.deleteFBOs != nil {
		c.deleteFBOs(e.fbo)
	}
}

// InvalidateTexture removes every cached FBO that references texture, e.g.
// because the texture was resized or destroyed (spec §4.4's by-resource
// invalidation).
func (c *FboCache) InvalidateTexture(texture uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var remaining []FboKey
	for _, key := range c.order {
		if keyReferencesTexture(key, texture) {
			c.destroyLocked(key)
			continue
		}
		remaining = append(remaining, key)
	}
	c.order = remaining
}

func keyReferencesTexture(key FboKey, texture uint32) bool {
	if key.Depth.Valid && key.Depth.Texture == texture {
		return true
	}
	for _, a := range key.Color {
		if a.Valid && a.Texture == texture {
			return true
		}
	}
	return false
}

// Cleanup evicts entries unused for more than MaxUnusedFrames frames.
func (c *FboCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var remaining []FboKey
	for _, key := range c.order {
		e := c.entries[key]
		if e != nil && c.frame-e.lastUsed > MaxUnusedFrames {
			c.destroyLocked(key)
			continue
		}
		remaining = append(remaining, key)
	}
	c.order = remaining
}

// Clear destroys every cached FBO. Used at device shutdown.
func (c *FboCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.order {
		c.destroyLocked(key)
	}
	c.order = nil
}

// Len reports the number of cached entries.
func (c *FboCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Hits reports how many times key has been returned on a cache hit (spec
// §4.3 get_or_create step 1's hit counter). Zero for a key that has never
// been requested, or that was only ever a miss.
func (c *FboCache) Hits(key FboKey) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return 0
	}
	return e.hits
}
