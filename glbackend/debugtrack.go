// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"fmt"
	"sync"

	"github.com/gogpu/glrhi/rhi"
)

// ObjectKind names the class of GL object a trackedEntry records.
type ObjectKind int

const (
	ObjectBuffer ObjectKind = iota
	ObjectTexture
	ObjectTextureView
	ObjectSampler
	ObjectShader
	ObjectProgram
	ObjectFramebuffer
	ObjectVertexArray
	ObjectDescriptorSetLayout
	ObjectDescriptorSet
	ObjectGraphicsPipeline
	ObjectComputePipeline
	ObjectFence
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectBuffer:
		return "Buffer"
	case ObjectTexture:
		return "Texture"
	case ObjectTextureView:
		return "TextureView"
	case ObjectSampler:
		return "Sampler"
	case ObjectShader:
		return "Shader"
	case ObjectProgram:
		return "Program"
	case ObjectFramebuffer:
		return "Framebuffer"
	case ObjectVertexArray:
		return "VertexArray"
	case ObjectDescriptorSetLayout:
		return "DescriptorSetLayout"
	case ObjectDescriptorSet:
		return "DescriptorSet"
	case ObjectGraphicsPipeline:
		return "GraphicsPipeline"
	case ObjectComputePipeline:
		return "ComputePipeline"
	case ObjectFence:
		return "Fence"
	default:
		return "Unknown"
	}
}

type trackedEntry struct {
	kind      ObjectKind
	label     string
	destroyed bool
}

// DebugTracker records every live handle's kind and debug label so that a
// double-destroy or use-after-destroy logs a diagnostic instead of
// corrupting backend state. Only active when DeviceDescriptor.Debug is set;
// adapted from the teacher's generic core.Registry[T,M] epoch allocator,
// collapsed to a single map since this backend needs existence-and-kind
// tracking, not generic recycling across object pools.
type DebugTracker struct {
	mu      sync.Mutex
	enabled bool
	entries map[rhi.Handle]*trackedEntry
}

// NewDebugTracker creates a tracker. When enabled is false every method is a
// no-op, so call sites don't need to branch on DeviceDescriptor.Debug
// themselves.
func NewDebugTracker(enabled bool) *DebugTracker {
	return &DebugTracker{
		enabled: enabled,
		entries: make(map[rhi.Handle]*trackedEntry),
	}
}

// Register records a newly created handle.
func (t *DebugTracker) Register(h rhi.Handle, kind ObjectKind, label string) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.entries[h]; ok && !existing.destroyed {
		Logger().Warn("debugtrack: handle reused while still live",
			"handle", h, "kind", kind.String(), "previous_kind", existing.kind.String())
	}
	t.entries[h] = &trackedEntry{kind: kind, label: label}
}

// Destroy marks h as destroyed. It logs instead of panicking when h is
// unknown or already destroyed, matching spec §7's "misuse" handling:
// double-destroy is a logged warning, not a crash.
func (t *DebugTracker) Destroy(h rhi.Handle) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[h]
	if !ok {
		Logger().Warn("debugtrack: destroy of untracked handle", "handle", h)
		return
	}
	if entry.destroyed {
		Logger().Warn("debugtrack: double destroy", "handle", h, "kind", entry.kind.String(), "label", entry.label)
		return
	}
	entry.destroyed = true
}

// CheckLive reports whether h is registered and not yet destroyed. Callers
// use it to turn a use-after-destroy into ErrUseAfterDestroy instead of
// handing a stale name to the driver.
func (t *DebugTracker) CheckLive(h rhi.Handle) error {
	if !t.enabled {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[h]
	if !ok {
		return fmt.Errorf("%w: handle %d", ErrInvalidHandle, h)
	}
	if entry.destroyed {
		return fmt.Errorf("%w: %s %q (handle %d)", ErrUseAfterDestroy, entry.kind, entry.label, h)
	}
	return nil
}

// Live returns the number of tracked handles not yet destroyed, for tests
// and leak detection at device shutdown.
func (t *DebugTracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.entries {
		if !e.destroyed {
			n++
		}
	}
	return n
}
