// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/glrhi/glbackend/gl"
)

// fenceEntry pairs a GLsync object (returned by glFenceSync, inserted into
// the GL command stream at the point Signal was called) with the
// monotonically increasing value that sync represents having reached.
type fenceEntry struct {
	sync  uintptr
	value uint64
}

// Fence is a multi-value GPU timeline: Signal(N) inserts a sync object into
// the command stream tagged with value N; GetCompletedValue reports the
// highest value the driver has actually finished; Wait blocks the calling
// goroutine until a target value is reached or a deadline passes. Grounded
// on spec §4.10, which names this design explicitly to move past the
// single-bit GL fence idiom. hal/gles/resource.go's Fence is a stub — an
// atomic uint64 bumped by the encoder with no real glFenceSync/
// glClientWaitSync calls behind it — so there is nothing in the teacher to
// adapt here beyond the general "small mutex-guarded struct" shape; the
// sync-object bookkeeping is new, following the same FIFO-of-pending-work
// idiom DeletionQueue uses.
type Fence struct {
	ctx *gl.Context

	mu             sync.Mutex
	signaledValue  uint64 // highest value Signal has been called with
	completedValue atomic.Uint64
	pending        []fenceEntry // ascending by value; oldest first
}

// NewFence creates a Fence starting at completed value 0.
func NewFence(ctx *gl.Context) *Fence {
	return &Fence{ctx: ctx}
}

// Signal inserts a GL sync object into the command stream and records it as
// representing value. value must be strictly greater than every value
// previously passed to Signal on this fence.
func (f *Fence) Signal(value uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if value <= f.signaledValue {
		return NewValidationErrorf("Fence", "value", "signal value %d must be greater than the last signaled value %d", value, f.signaledValue)
	}
	sync := f.ctx.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	if sync == 0 {
		return &GLError{Call: "glFenceSync", Code: gl.INVALID_OPERATION}
	}
	f.signaledValue = value
	f.pending = append(f.pending, fenceEntry{sync: sync, value: value})
	return nil
}

// GetCompletedValue polls every pending sync object in order and advances
// completedValue past each one the driver reports as GL_SIGNALED, deleting
// the sync objects as it goes. It never blocks.
func (f *Fence) GetCompletedValue() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drainLocked()
	return f.completedValue.Load()
}

// drainLocked advances completedValue over the leading run of pending
// entries whose sync status is GL_SIGNALED. Callers must hold f.mu.
func (f *Fence) drainLocked() {
	i := 0
	for ; i < len(f.pending); i++ {
		entry := f.pending[i]
		status := f.ctx.GetSynciv(entry.sync, gl.SYNC_STATUS, 1)
		if len(status) == 0 || uint32(status[0]) != gl.SIGNALED {
			break
		}
		f.ctx.DeleteSync(entry.sync)
		f.completedValue.Store(entry.value)
	}
	f.pending = f.pending[i:]
}

// Wait blocks until completedValue reaches value or timeout elapses.
// timeout of 0 polls once and returns immediately. A negative timeout
// blocks indefinitely. Returns ErrFenceTimeout if the deadline passes first
// and ErrFenceLost if the driver reports GL_WAIT_FAILED (context lost).
func (f *Fence) Wait(value uint64, timeout time.Duration) error {
	if f.completedValue.Load() >= value {
		return nil
	}

	f.mu.Lock()
	f.drainLocked()
	if f.completedValue.Load() >= value {
		f.mu.Unlock()
		return nil
	}
	var target *fenceEntry
	for i := range f.pending {
		if f.pending[i].value >= value {
			target = &f.pending[i]
			break
		}
	}
	f.mu.Unlock()

	if target == nil {
		// Signal(value) (or anything >= it) was never called.
		return NewValidationErrorf("Fence", "value", "no signal >= %d has been submitted", value)
	}

	glTimeout := uint64(gl.TIMEOUT_IGNORED)
	if timeout >= 0 {
		glTimeout = uint64(timeout.Nanoseconds())
	}
	res := f.ctx.ClientWaitSync(target.sync, gl.SYNC_FLUSH_COMMANDS_BIT, glTimeout)
	switch res {
	case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
		f.mu.Lock()
		f.drainLocked()
		f.mu.Unlock()
		return nil
	case gl.TIMEOUT_EXPIRED:
		return ErrFenceTimeout
	default: // gl.WAIT_FAILED
		return ErrFenceLost
	}
}

// Destroy deletes every pending GL sync object. Call once the fence is no
// longer referenced by any in-flight submission.
func (f *Fence) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range f.pending {
		f.ctx.DeleteSync(entry.sync)
	}
	f.pending = nil
}
