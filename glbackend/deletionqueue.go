// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import "sync"

// DefaultFramesInFlight is how many frames a deletion is held back before
// its GL object is actually destroyed, so that a command buffer submitted
// one or two frames ago (and not yet retired by the driver) never
// references a name the backend has already recycled.
const DefaultFramesInFlight = 3

type deletionEntry struct {
	frame uint64
	kind  ObjectKind
	name  uint32
	fn    func()
}

// DeletionQueue defers GL object destruction until FramesInFlight frames
// have elapsed since it was queued. Grounded on spec §4.3; the teacher has
// no equivalent (hal/gles destroys synchronously in each resource's
// Destroy), so this is new code in the teacher's bookkeeping idiom —
// a mutex-guarded slice, the same shape hal/gles/device.go uses for its
// resource maps.
type DeletionQueue struct {
	mu            sync.Mutex
	framesInFlight uint64
	currentFrame  uint64
	pending       []deletionEntry
	deleteBuffers      func(...uint32)
	deleteTextures     func(...uint32)
	deleteFramebuffers func(...uint32)
	deleteVertexArrays func(...uint32)
	deletePrograms     func(uint32)
	deleteShaders      func(uint32)
	deleteSamplers     func(...uint32)
}

// NewDeletionQueue creates a queue with the given frames-in-flight depth.
// framesInFlight <= 0 defaults to DefaultFramesInFlight.
func NewDeletionQueue(framesInFlight int) *DeletionQueue {
	if framesInFlight <= 0 {
		framesInFlight = DefaultFramesInFlight
	}
	return &DeletionQueue{framesInFlight: uint64(framesInFlight)}
}

// Queue schedules a GL object for deletion once the deletion queue has
// advanced framesInFlight frames past the current one.
func (q *DeletionQueue) Queue(kind ObjectKind, name uint32) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, deletionEntry{frame: q.currentFrame, kind: kind, name: name})
}

// QueueFunc schedules an arbitrary cleanup closure to run at the same
// cadence as object deletion, for resources (descriptor sets, pipelines)
// that own no single GL name but reference other tracked objects.
func (q *DeletionQueue) QueueFunc(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, deletionEntry{frame: q.currentFrame, fn: fn})
}

// AdvanceFrame moves the queue to the next frame and destroys every entry
// whose frames-in-flight window has elapsed.
func (q *DeletionQueue) AdvanceFrame() {
	q.mu.Lock()
	q.currentFrame++
	cutoff := q.currentFrame
	var ready []deletionEntry
	kept := q.pending[:0]
	for _, e := range q.pending {
		if cutoff-e.frame >= q.framesInFlight {
			ready = append(ready, e)
		} else {
			kept = append(kept, e)
		}
	}
	q.pending = kept
	q.mu.Unlock()

	q.destroy(ready)
}

// FlushAll destroys every pending entry immediately, regardless of its
// frame stamp. Used at device shutdown (spec §4.3 "on device destruction,
// all pending deletions run immediately").
func (q *DeletionQueue) FlushAll() {
	q.mu.Lock()
	ready := q.pending
	q.pending = nil
	q.mu.Unlock()

	q.destroy(ready)
}

// Pending reports how many deletions are still waiting out their
// frames-in-flight window. Exposed for tests and diagnostics.
func (q *DeletionQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *DeletionQueue) destroy(entries []deletionEntry) {
	for _, e := range entries {
		if e.fn != nil {
			e.fn()
			continue
		}
		switch e.kind {
		case ObjectBuffer:
			if q.deleteBuffers != nil {
				q.deleteBuffers(e.name)
			}
		case ObjectTexture, ObjectTextureView:
			if q.deleteTextures != nil {
				q.deleteTextures(e.name)
			}
		case ObjectFramebuffer:
			if q.deleteFramebuffers != nil {
				q.deleteFramebuffers(e.name)
			}
		case ObjectVertexArray:
			if q.deleteVertexArrays != nil {
				q.deleteVertexArrays(e.name)
			}
		case ObjectProgram:
			if q.deletePrograms != nil {
				q.deletePrograms(e.name)
			}
		case ObjectShader:
			if q.deleteShaders != nil {
				q.deleteShaders(e.name)
			}
		case ObjectSampler:
			if q.deleteSamplers != nil {
				q.deleteSamplers(e.name)
			}
		}
	}
}

// BindDeleters wires the queue to the real GL deletion entry points. Split
// from NewDeletionQueue so tests can construct a queue without a live
// *gl.Context.
func (q *DeletionQueue) BindDeleters(
	buffers func(...uint32),
	textures func(...uint32),
	framebuffers func(...uint32),
	vertexArrays func(...uint32),
	programs func(uint32),
	shaders func(uint32),
	samplers func(...uint32),
) {
	q.deleteBuffers = buffers
	q.deleteTextures = textures
	q.deleteFramebuffers = framebuffers
	q.deleteVertexArrays = vertexArrays
	q.deletePrograms = programs
	q.deleteShaders = shaders
	q.deleteSamplers = samplers
}
