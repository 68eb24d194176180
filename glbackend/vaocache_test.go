// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import "testing"

func TestVaoCache_ReusesIdenticalKey(t *testing.T) {
	created := 0
	c := NewVaoCache(func() uint32 { created++; return uint32(created) }, nil)

	key := VaoKey{IndexBuffer: 3, PipelineLayout: 0xABCD}
	key.Buffers[0] = vaoBufferBinding{Buffer: 1, Stride: 32, Valid: true}
	key.Attributes[0] = vaoAttribute{BindingSlot: 0, Format: 1, Valid: true}

	vao1, created1 := c.GetOrCreate(key)
	vao2, created2 := c.GetOrCreate(key)

	if !created1 || created2 {
		t.Fatalf("expected first call to create and second to reuse, got %v/%v", created1, created2)
	}
	if vao1 != vao2 {
		t.Fatalf("expected same VAO for identical key, got %d and %d", vao1, vao2)
	}
	if created != 1 {
		t.Fatalf("expected exactly one VAO created, got %d", created)
	}
}

func TestVaoCache_EvictsOldestWhenFull(t *testing.T) {
	var deletedOrder []uint32
	next := uint32(0)
	c := NewVaoCache(
		func() uint32 { next++; return next },
		func(names ...uint32) { deletedOrder = append(deletedOrder, names...) },
	)

	for i := 0; i < MaxCachedVAOs; i++ {
		key := VaoKey{IndexBuffer: uint32(i)}
		c.GetOrCreate(key)
		c.AdvanceFrame()
	}
	if c.Len() != MaxCachedVAOs {
		t.Fatalf("expected cache full at %d, got %d", MaxCachedVAOs, c.Len())
	}

	c.GetOrCreate(VaoKey{IndexBuffer: 9999})

	if len(deletedOrder) != 1 || deletedOrder[0] != 1 {
		t.Fatalf("expected the first-created VAO (name 1) evicted, got %v", deletedOrder)
	}
}

func TestVaoCache_InvalidateBufferRemovesReferencingEntries(t *testing.T) {
	var deleted []uint32
	next := uint32(0)
	c := NewVaoCache(
		func() uint32 { next++; return next },
		func(names ...uint32) { deleted = append(deleted, names...) },
	)

	keyA := VaoKey{}
	keyA.Buffers[0] = vaoBufferBinding{Buffer: 5, Valid: true}
	keyB := VaoKey{IndexBuffer: 6}
	keyC := VaoKey{}
	keyC.Buffers[0] = vaoBufferBinding{Buffer: 8, Valid: true}

	c.GetOrCreate(keyA)
	c.GetOrCreate(keyB)
	c.GetOrCreate(keyC)

	c.InvalidateBuffer(5)
	c.InvalidateBuffer(6)

	if c.Len() != 1 {
		t.Fatalf("expected only keyC to survive, got %d entries", c.Len())
	}
	if len(deleted) != 2 {
		t.Fatalf("expected 2 VAOs deleted, got %v", deleted)
	}
}

func TestVaoCache_ClearDestroysEverything(t *testing.T) {
	next := uint32(0)
	var deleted []uint32
	c := NewVaoCache(
		func() uint32 { next++; return next },
		func(names ...uint32) { deleted = append(deleted, names...) },
	)

	c.GetOrCreate(VaoKey{IndexBuffer: 1})
	c.GetOrCreate(VaoKey{IndexBuffer: 2})
	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, got %d", c.Len())
	}
	if len(deleted) != 2 {
		t.Fatalf("expected both VAOs deleted, got %v", deleted)
	}
}
