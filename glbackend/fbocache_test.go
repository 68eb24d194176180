// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import "testing"

func TestFboCache_ReusesIdenticalKey(t *testing.T) {
	created := 0
	c := NewFboCache(func() uint32 { created++; return uint32(created) }, nil)

	key := FboKey{Width: 256, Height: 256}
	key.Color[0] = attachmentKey{Texture: 1, Valid: true}

	fbo1, created1 := c.GetOrCreate(key)
	fbo2, created2 := c.GetOrCreate(key)

	if !created1 || created2 {
		t.Fatalf("expected first call to create and second to reuse, got %v/%v", created1, created2)
	}
	if fbo1 != fbo2 {
		t.Fatalf("expected same FBO for identical key, got %d and %d", fbo1, fbo2)
	}
	if created != 1 {
		t.Fatalf("expected exactly one FBO created, got %d", created)
	}
	if hits := c.Hits(key); hits != 1 {
		t.Fatalf("expected hit counter incremented by one on the second call, got %d", hits)
	}
}

func TestFboCache_EvictsOldestWhenFull(t *testing.T) {
	var deletedOrder []uint32
	next := uint32(0)
	c := NewFboCache(
		func() uint32 { next++; return next },
		func(names ...uint32) { deletedOrder = append(deletedOrder, names...) },
	)

	for i := 0; i < MaxCachedFBOs; i++ {
		key := FboKey{Width: uint32(i)}
		c.GetOrCreate(key)
		c.AdvanceFrame()
	}
	if c.Len() != MaxCachedFBOs {
		t.Fatalf("expected cache full at %d, got %d", MaxCachedFBOs, c.Len())
	}

	// One more distinct key should evict the oldest-inserted entry (key{Width:0}).
	overflow := FboKey{Width: 9999}
	c.GetOrCreate(overflow)

	if len(deletedOrder) != 1 || deletedOrder[0] != 1 {
		t.Fatalf("expected the first-created FBO (name 1) evicted, got %v", deletedOrder)
	}
	if c.Len() != MaxCachedFBOs {
		t.Fatalf("expected cache to stay at capacity %d, got %d", MaxCachedFBOs, c.Len())
	}
}

func TestFboCache_InvalidateTextureRemovesReferencingEntries(t *testing.T) {
	var deleted []uint32
	next := uint32(0)
	c := NewFboCache(
		func() uint32 { next++; return next },
		func(names ...uint32) { deleted = append(deleted, names...) },
	)

	keyA := FboKey{Width: 1}
	keyA.Color[0] = attachmentKey{Texture: 7, Valid: true}
	keyB := FboKey{Width: 2}
	keyB.Depth = attachmentKey{Texture: 9, Valid: true}
	keyC := FboKey{Width: 3}
	keyC.Color[0] = attachmentKey{Texture: 11, Valid: true}

	c.GetOrCreate(keyA)
	c.GetOrCreate(keyB)
	c.GetOrCreate(keyC)

	c.InvalidateTexture(7)
	c.InvalidateTexture(9)

	if c.Len() != 1 {
		t.Fatalf("expected only keyC to survive, got %d entries", c.Len())
	}
	if len(deleted) != 2 {
		t.Fatalf("expected 2 FBOs deleted, got %v", deleted)
	}
}

func TestFboCache_CleanupEvictsStaleEntries(t *testing.T) {
	next := uint32(0)
	var deleted []uint32
	c := NewFboCache(
		func() uint32 { next++; return next },
		func(names ...uint32) { deleted = append(deleted, names...) },
	)

	key := FboKey{Width: 42}
	c.GetOrCreate(key)

	for i := 0; i <= MaxUnusedFrames; i++ {
		c.AdvanceFrame()
	}
	c.Cleanup()

	if c.Len() != 0 {
		t.Fatalf("expected stale entry evicted, got %d remaining", c.Len())
	}
	if len(deleted) != 1 {
		t.Fatalf("expected 1 FBO deleted by cleanup, got %v", deleted)
	}
}

func TestFboCache_ClearDestroysEverything(t *testing.T) {
	next := uint32(0)
	var deleted []uint32
	c := NewFboCache(
		func() uint32 { next++; return next },
		func(names ...uint32) { deleted = append(deleted, names...) },
	)

	c.GetOrCreate(FboKey{Width: 1})
	c.GetOrCreate(FboKey{Width: 2})
	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, got %d", c.Len())
	}
	if len(deleted) != 2 {
		t.Fatalf("expected both FBOs deleted, got %v", deleted)
	}
}
