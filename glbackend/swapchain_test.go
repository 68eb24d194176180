// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"errors"
	"testing"

	"github.com/gogpu/glrhi/rhi"
)

func TestNewSwapChain_RejectsNilPresentFunc(t *testing.T) {
	_, err := newSwapChain(&Device{}, rhi.SwapChainDescriptor{Width: 640, Height: 480})
	if !IsValidationError(err) {
		t.Fatalf("expected a ValidationError for a nil PresentFunc, got %v", err)
	}
}

func TestSwapChain_BackBufferIsTheZeroHandle(t *testing.T) {
	sc, err := newSwapChain(&Device{}, rhi.SwapChainDescriptor{
		PresentFunc: func() error { return nil },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.BackBuffer() != 0 {
		t.Fatalf("expected the default framebuffer handle 0, got %d", sc.BackBuffer())
	}
}

func TestSwapChain_ExtentReflectsConstructionSize(t *testing.T) {
	sc, _ := newSwapChain(&Device{}, rhi.SwapChainDescriptor{
		Width: 1920, Height: 1080,
		PresentFunc: func() error { return nil },
	})
	w, h := sc.Extent()
	if w != 1920 || h != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", w, h)
	}
}

func TestSwapChain_ResizeWithoutSurfaceSizeFuncUsesGivenDimensions(t *testing.T) {
	sc, _ := newSwapChain(&Device{}, rhi.SwapChainDescriptor{
		Width: 800, Height: 600,
		PresentFunc: func() error { return nil },
	})
	sc.Resize(1024, 768)
	w, h := sc.Extent()
	if w != 1024 || h != 768 {
		t.Fatalf("expected resized extent 1024x768, got %dx%d", w, h)
	}
}

func TestSwapChain_ResizePrefersSurfaceSizeFuncOverGivenArgs(t *testing.T) {
	sc, _ := newSwapChain(&Device{}, rhi.SwapChainDescriptor{
		Width: 800, Height: 600,
		PresentFunc:     func() error { return nil },
		SurfaceSizeFunc: func() (uint32, uint32) { return 333, 222 },
	})
	sc.Resize(1024, 768)
	w, h := sc.Extent()
	if w != 333 || h != 222 {
		t.Fatalf("expected SurfaceSizeFunc's dimensions 333x222 to win, got %dx%d", w, h)
	}
}

func TestSwapChain_PresentInvokesPresentFunc(t *testing.T) {
	called := false
	sc, _ := newSwapChain(&Device{}, rhi.SwapChainDescriptor{
		PresentFunc: func() error { called = true; return nil },
	})
	if err := sc.Present(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected Present to invoke the configured PresentFunc")
	}
}

func TestSwapChain_PresentPropagatesError(t *testing.T) {
	want := errors.New("swap failed")
	sc, _ := newSwapChain(&Device{}, rhi.SwapChainDescriptor{
		PresentFunc: func() error { return want },
	})
	if err := sc.Present(); !errors.Is(err, want) {
		t.Fatalf("expected Present to propagate the underlying error, got %v", err)
	}
}
