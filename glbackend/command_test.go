// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"errors"
	"testing"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

func TestCommandContext_BeginRejectsDoubleBegin(t *testing.T) {
	c := &CommandContext{}
	if err := c.Begin(); err != nil {
		t.Fatalf("unexpected error on first Begin: %v", err)
	}
	if err := c.Begin(); !errors.Is(err, ErrCommandContextNotReset) {
		t.Fatalf("expected ErrCommandContextNotReset on double Begin, got %v", err)
	}
}

func TestCommandContext_EndWithoutBeginIsRejected(t *testing.T) {
	c := &CommandContext{}
	if err := c.End(); !errors.Is(err, ErrCommandContextNotReset) {
		t.Fatalf("expected ErrCommandContextNotReset, got %v", err)
	}
}

func TestCommandContext_ResetAllowsBeginAgain(t *testing.T) {
	c := &CommandContext{}
	_ = c.Begin()
	c.Reset()
	if err := c.Begin(); err != nil {
		t.Fatalf("expected Begin to succeed after Reset, got %v", err)
	}
}

func TestCommandContext_RequireQueueRejectsWrongType(t *testing.T) {
	c := &CommandContext{queue: rhi.QueueCopy}
	if err := c.requireQueue(rhi.QueueGraphics, rhi.QueueCompute); !errors.Is(err, ErrWrongQueueType) {
		t.Fatalf("expected ErrWrongQueueType, got %v", err)
	}
	if err := c.requireQueue(rhi.QueueCopy); err != nil {
		t.Fatalf("expected queue type to match, got %v", err)
	}
}

func TestCommandContext_DrawOutsideRenderPassIsRejected(t *testing.T) {
	c := &CommandContext{}
	if err := c.Draw(3, 1, 0, 0); !errors.Is(err, ErrNotInRenderPass) {
		t.Fatalf("expected ErrNotInRenderPass, got %v", err)
	}
}

func TestCommandContext_DrawWithoutPipelineIsRejected(t *testing.T) {
	c := &CommandContext{inPass: true}
	if err := c.Draw(3, 1, 0, 0); !errors.Is(err, ErrNoPipelineBound) {
		t.Fatalf("expected ErrNoPipelineBound, got %v", err)
	}
}

func TestCommandContext_DispatchRejectsCopyQueue(t *testing.T) {
	c := &CommandContext{queue: rhi.QueueCopy}
	if err := c.Dispatch(1, 1, 1); !errors.Is(err, ErrWrongQueueType) {
		t.Fatalf("expected ErrWrongQueueType on a copy-only context, got %v", err)
	}
}

func TestCommandContext_SetStencilReferenceNoopsWithoutDepthStencilState(t *testing.T) {
	c := &CommandContext{boundGfx: &GraphicsPipeline{}}
	if err := c.SetStencilReference(4); err != nil {
		t.Fatalf("expected no error when pipeline has no depth-stencil state, got %v", err)
	}
}

func TestCommandContext_SetStencilReferenceRejectsNoPipeline(t *testing.T) {
	c := &CommandContext{}
	if err := c.SetStencilReference(4); !errors.Is(err, ErrNoPipelineBound) {
		t.Fatalf("expected ErrNoPipelineBound, got %v", err)
	}
}

func TestBarrierBits_MapsEachResourceStateToExpectedBits(t *testing.T) {
	cases := map[rhi.ResourceState]uint32{
		rhi.StateVertexBuffer:     gl.VERTEX_ATTRIB_ARRAY_BARRIER_BIT,
		rhi.StateIndexBuffer:      gl.ELEMENT_ARRAY_BARRIER_BIT,
		rhi.StateConstantBuffer:   gl.UNIFORM_BARRIER_BIT,
		rhi.StateIndirectArgument: gl.COMMAND_BARRIER_BIT,
	}
	for state, want := range cases {
		if got := barrierBits(state); got != want {
			t.Fatalf("barrierBits(%v) = 0x%x, want 0x%x", state, got, want)
		}
	}
}

func TestBarrierBits_ShaderResourceCombinesTextureAndImageBits(t *testing.T) {
	got := barrierBits(rhi.StateShaderResource)
	want := uint32(gl.TEXTURE_FETCH_BARRIER_BIT | gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)
	if got != want {
		t.Fatalf("barrierBits(StateShaderResource) = 0x%x, want 0x%x", got, want)
	}
}

func TestIndexGLTypeAndSize_MatchIndexFormat(t *testing.T) {
	if indexGLType(rhi.IndexFormatUint16) != gl.UNSIGNED_SHORT {
		t.Fatal("expected GL_UNSIGNED_SHORT for a 16-bit index format")
	}
	if indexSize(rhi.IndexFormatUint16) != 2 {
		t.Fatal("expected 2-byte stride for a 16-bit index format")
	}
	if indexGLType(rhi.IndexFormatUint32) != gl.UNSIGNED_INT {
		t.Fatal("expected GL_UNSIGNED_INT for a 32-bit index format")
	}
	if indexSize(rhi.IndexFormatUint32) != 4 {
		t.Fatal("expected 4-byte stride for a 32-bit index format")
	}
}

func TestLayerOrNonLayered_NonArrayTextureReturnsMinusOne(t *testing.T) {
	v := &TextureView{Source: &Texture{Depth: 1}, BaseLayer: 3}
	if got := layerOrNonLayered(v); got != -1 {
		t.Fatalf("expected -1 for a non-array texture, got %d", got)
	}
}

func TestLayerOrNonLayered_ArrayTextureReturnsBaseLayer(t *testing.T) {
	v := &TextureView{Source: &Texture{Depth: 4}, BaseLayer: 2}
	if got := layerOrNonLayered(v); got != 2 {
		t.Fatalf("expected base layer 2, got %d", got)
	}
}
