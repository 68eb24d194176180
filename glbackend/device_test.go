// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"errors"
	"testing"

	"github.com/gogpu/glrhi/rhi"
)

func newTestDevice() *Device {
	d := &Device{
		dbg:       NewDebugTracker(false),
		buffers:   make(map[rhi.Handle]*Buffer),
		textures:  make(map[rhi.Handle]*Texture),
		views:     make(map[rhi.Handle]*TextureView),
		samplers:  make(map[rhi.Handle]*Sampler),
		shaders:   make(map[rhi.Handle]*Shader),
		dsLayouts: make(map[rhi.Handle]*DescriptorSetLayout),
		dsSets:    make(map[rhi.Handle]*DescriptorSet),
		gfxPipes:  make(map[rhi.Handle]*GraphicsPipeline),
		compPipes: make(map[rhi.Handle]*ComputePipeline),
		fences:    make(map[rhi.Handle]*Fence),
	}
	d.nextHandle.Store(1)
	return d
}

func TestDevice_AllocHandleStartsAtOneAndNeverReusesZero(t *testing.T) {
	d := newTestDevice()
	h1 := d.allocHandle()
	h2 := d.allocHandle()
	if h1 != 1 || h2 != 2 {
		t.Fatalf("expected handles 1, 2, got %d, %d", h1, h2)
	}
}

func TestDevice_LookupBufferUnknownHandleReturnsInvalidHandle(t *testing.T) {
	d := newTestDevice()
	if _, err := d.lookupBuffer(99); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestDevice_DestroyBufferUnknownHandleReturnsInvalidHandle(t *testing.T) {
	d := newTestDevice()
	if err := d.DestroyBuffer(42); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestDevice_DestroyTextureViewUnknownHandleReturnsInvalidHandle(t *testing.T) {
	d := newTestDevice()
	if err := d.DestroyTextureView(7); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestDevice_CreateDescriptorSetRejectsUnknownLayout(t *testing.T) {
	d := newTestDevice()
	_, err := d.CreateDescriptorSet(rhi.DescriptorSetDescriptor{Layout: 123})
	if !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle for unknown layout, got %v", err)
	}
}

func TestDevice_CreateGraphicsPipelineRejectsUnknownShader(t *testing.T) {
	d := newTestDevice()
	_, err := d.CreateGraphicsPipeline(rhi.GraphicsPipelineDescriptor{VertexShader: 1, FragmentShader: 2})
	if !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle for unknown vertex shader, got %v", err)
	}
}

func TestDevice_CurrentFrameReportsFrameCounter(t *testing.T) {
	d := &Device{}
	if d.CurrentFrame() != 0 {
		t.Fatalf("expected frame 0 before any EndFrame call")
	}
	d.frame.Add(1)
	d.frame.Add(1)
	if d.CurrentFrame() != 2 {
		t.Fatalf("expected frame counter 2, got %d", d.CurrentFrame())
	}
}

func TestDevice_IsOnGLThreadWithNoThreadIsAlwaysTrue(t *testing.T) {
	d := &Device{}
	if !d.IsOnGLThread() {
		t.Fatal("expected IsOnGLThread to report true when no thread is configured")
	}
}
