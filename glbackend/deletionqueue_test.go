// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import "testing"

func TestDeletionQueue_DelaysByFramesInFlight(t *testing.T) {
	q := NewDeletionQueue(3)
	var deleted []uint32
	q.BindDeleters(func(names ...uint32) { deleted = append(deleted, names...) },
		nil, nil, nil, nil, nil, nil)

	q.Queue(ObjectBuffer, 42)
	if q.Pending() != 1 {
		t.Fatalf("expected 1 pending entry, got %d", q.Pending())
	}

	q.AdvanceFrame() // frame 1, age 1
	q.AdvanceFrame() // frame 2, age 2
	if len(deleted) != 0 {
		t.Fatalf("buffer deleted too early: %v", deleted)
	}

	q.AdvanceFrame() // frame 3, age 3 >= framesInFlight
	if len(deleted) != 1 || deleted[0] != 42 {
		t.Fatalf("expected buffer 42 deleted after 3 frames, got %v", deleted)
	}
	if q.Pending() != 0 {
		t.Fatalf("expected queue drained, got %d pending", q.Pending())
	}
}

func TestDeletionQueue_FlushAllIgnoresFrameStamp(t *testing.T) {
	q := NewDeletionQueue(3)
	var deleted []uint32
	q.BindDeleters(nil, func(names ...uint32) { deleted = append(deleted, names...) },
		nil, nil, nil, nil, nil)

	q.Queue(ObjectTexture, 1)
	q.Queue(ObjectTexture, 2)
	q.FlushAll()

	if len(deleted) != 2 {
		t.Fatalf("expected both textures flushed immediately, got %v", deleted)
	}
	if q.Pending() != 0 {
		t.Fatalf("expected queue empty after FlushAll, got %d", q.Pending())
	}
}

func TestDeletionQueue_QueueFuncRunsOnSchedule(t *testing.T) {
	q := NewDeletionQueue(1)
	ran := false
	q.QueueFunc(func() { ran = true })
	q.AdvanceFrame()
	if !ran {
		t.Fatal("expected QueueFunc closure to run after one frame with framesInFlight=1")
	}
}

func TestDeletionQueue_DefaultsWhenFramesInFlightNonPositive(t *testing.T) {
	q := NewDeletionQueue(0)
	if q.framesInFlight != DefaultFramesInFlight {
		t.Fatalf("expected default %d, got %d", DefaultFramesInFlight, q.framesInFlight)
	}
}
