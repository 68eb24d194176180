// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import "sync"

const (
	// MaxCachedVAOs bounds the VaoCache's size, mirroring FboCache's
	// eviction policy (spec §4.4 extends the same cache discipline to
	// vertex array objects).
	MaxCachedVAOs = 128
	// maxVaoVertexBuffers and maxVaoAttributes bound VaoKey's arrays;
	// 16 matches GL_MAX_VERTEX_ATTRIB_BINDINGS on any desktop 4.5 driver.
	maxVaoVertexBuffers = 16
	maxVaoAttributes    = 16
)

// vaoBufferBinding captures one vertex buffer binding's identity within a
// VAO: which buffer, at what stride, offset and instance divisor.
type vaoBufferBinding struct {
	Buffer  uint32
	Stride  uint32
	Offset  uint32
	Divisor uint32
	Valid   bool
}

// vaoAttribute captures one vertex attribute's format and source binding.
type vaoAttribute struct {
	BindingSlot uint32
	Format      uint32 // rhi.VertexFormat, stored as uint32 to keep this file import-free of rhi
	Offset      uint32
	Valid       bool
}

// VaoKey identifies a unique combination of vertex buffer bindings, vertex
// attribute formats, and index buffer that together determine a VAO's
// contents (spec §4.4).
type VaoKey struct {
	Buffers        [maxVaoVertexBuffers]vaoBufferBinding
	Attributes     [maxVaoAttributes]vaoAttribute
	IndexBuffer    uint32
	PipelineLayout uint64 // hash of the owning pipeline's input layout
}

type vaoEntry struct {
	vao        uint32
	lastUsed   uint64
	insertedAt uint64
}

// VaoCache memoizes vertex array objects the same way FboCache memoizes
// framebuffers: one VAO per distinct (buffers, attributes, index buffer)
// tuple, reused across draw calls that share a pipeline's input layout. No
// teacher analogue; hal/gles/resource.go builds ad hoc vertex state per
// draw rather than caching it.
type VaoCache struct {
	mu      sync.Mutex
	entries map[VaoKey]*vaoEntry
	order   []VaoKey
	frame   uint64
	seq     uint64

	createVAO  func() uint32
	deleteVAOs func(...uint32)
}

// NewVaoCache creates an empty cache.
func NewVaoCache(createVAO func() uint32, deleteVAOs func(...uint32)) *VaoCache {
	return &VaoCache{
		entries:    make(map[VaoKey]*vaoEntry),
		createVAO:  createVAO,
		deleteVAOs: deleteVAOs,
	}
}

// AdvanceFrame marks a new frame boundary for age tracking.
func (c *VaoCache) AdvanceFrame() {
	c.mu.Lock()
	c.frame++
	c.mu.Unlock()
}

// GetOrCreate returns the VAO for key, creating one (evicting the oldest
// entry if full) if it doesn't already exist. created tells the caller
// whether it must still configure vertex attribute pointers and bindings.
func (c *VaoCache) GetOrCreate(key VaoKey) (vao uint32, created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.lastUsed = c.frame
		return e.vao, false
	}

	if len(c.entries) >= MaxCachedVAOs {
		c.evictOldestLocked()
	}

	vao = c.createVAO()
	c.seq++
	c.entries[key] = &vaoEntry{vao: vao, lastUsed: c.frame, insertedAt: c.seq}
	c.order = append(c.order, key)
	return vao, true
}

func (c *VaoCache) evictOldestLocked() {
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

func (c *VaoCache) destroyLocked(key VaoKey) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	if c.deleteVAOs != nil {
		c.deleteVAOs(e.vao)
	}
}

// InvalidateBuffer removes every cached VAO that references buffer, e.g.
// because the vertex or index buffer was destroyed or reallocated.
func (c *VaoCache) InvalidateBuffer(buffer uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var remaining []VaoKey
	for _, key := range c.order {
		if key.IndexBuffer == buffer || vaoKeyReferencesBuffer(key, buffer) {
			c.destroyLocked(key)
			continue
		}
		remaining = append(remaining, key)
	}
	c.order = remaining
}

func vaoKeyReferencesBuffer(key VaoKey, buffer uint32) bool {
	for _, b := range key.Buffers {
		if b.Valid && b.Buffer == buffer {
			return true
		}
	}
	return false
}

// Cleanup evicts entries unused for more than MaxUnusedFrames frames,
// reusing FboCache's threshold since both caches follow the same
// frames-in-flight-adjacent aging policy.
func (c *VaoCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var remaining []VaoKey
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

// Clear destroys every cached VAO. Used at device shutdown.
func (c *VaoCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.order {
		c.destroyLocked(key)
	}
	c.order = nil
}

// Len reports the number of cached entries.
func (c *VaoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
