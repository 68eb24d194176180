// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import "testing"

func TestDebugTracker_DisabledIsNoOp(t *testing.T) {
	dt := NewDebugTracker(false)
	dt.Register(1, ObjectBuffer, "vbo")
	if err := dt.CheckLive(1); err != nil {
		t.Fatalf("disabled tracker should never error, got %v", err)
	}
	if dt.Live() != 0 {
		t.Fatalf("disabled tracker should not count live handles")
	}
}

func TestDebugTracker_UseAfterDestroy(t *testing.T) {
	dt := NewDebugTracker(true)
	dt.Register(7, ObjectTexture, "albedo")
	if err := dt.CheckLive(7); err != nil {
		t.Fatalf("freshly registered handle should be live: %v", err)
	}
	dt.Destroy(7)
	if err := dt.CheckLive(7); err == nil {
		t.Fatal("expected CheckLive to report use-after-destroy")
	}
}

func TestDebugTracker_DoubleDestroyDoesNotPanic(t *testing.T) {
	dt := NewDebugTracker(true)
	dt.Register(3, ObjectSampler, "linear")
	dt.Destroy(3)
	dt.Destroy(3) // must log, not panic
}

func TestDebugTracker_UnknownHandle(t *testing.T) {
	dt := NewDebugTracker(true)
	if err := dt.CheckLive(42); err == nil {
		t.Fatal("expected error for untracked handle")
	}
	dt.Destroy(42) // must log, not panic
}

func TestDebugTracker_LiveCount(t *testing.T) {
	dt := NewDebugTracker(true)
	dt.Register(1, ObjectBuffer, "a")
	dt.Register(2, ObjectBuffer, "b")
	dt.Destroy(1)
	if got := dt.Live(); got != 1 {
		t.Fatalf("Live() = %d, want 1", got)
	}
}
