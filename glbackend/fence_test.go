// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import "testing"

func TestFence_SignalRejectsNonIncreasingValue(t *testing.T) {
	f := &Fence{}
	f.signaledValue = 5
	if err := f.Signal(5); !IsValidationError(err) {
		t.Fatalf("expected a ValidationError for a non-increasing signal value, got %v", err)
	}
	if err := f.Signal(3); !IsValidationError(err) {
		t.Fatalf("expected a ValidationError for a lesser signal value, got %v", err)
	}
}

func TestFence_GetCompletedValueWithNoSignalsIsZero(t *testing.T) {
	f := &Fence{}
	if got := f.GetCompletedValue(); got != 0 {
		t.Fatalf("expected 0 on a fresh fence, got %d", got)
	}
}

func TestFence_WaitOnAlreadyCompletedValueReturnsImmediately(t *testing.T) {
	f := &Fence{}
	f.completedValue.Store(10)
	if err := f.Wait(7, 0); err != nil {
		t.Fatalf("unexpected error waiting on an already-completed value: %v", err)
	}
}

func TestFence_WaitOnUnsignaledValueIsRejected(t *testing.T) {
	f := &Fence{}
	if err := f.Wait(1, 0); !IsValidationError(err) {
		t.Fatalf("expected a ValidationError when no signal >= the target has been submitted, got %v", err)
	}
}
