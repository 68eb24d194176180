// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"testing"

	"github.com/gogpu/glrhi/rhi"
)

func TestHashVertexBufferLayouts_IsStable(t *testing.T) {
	layout := []rhi.VertexBufferLayout{
		{
			Stride:   32,
			StepMode: rhi.StepModeVertex,
			Attributes: []rhi.VertexAttribute{
				{ShaderLocation: 0, Format: rhi.VertexFormatFloat32x3, Offset: 0},
				{ShaderLocation: 1, Format: rhi.VertexFormatFloat32x2, Offset: 12},
			},
		},
	}

	if hashVertexBufferLayouts(layout) != hashVertexBufferLayouts(layout) {
		t.Fatal("expected hashing the same layout twice to produce the same value")
	}
}

func TestHashVertexBufferLayouts_DiffersOnAttributeChange(t *testing.T) {
	base := []rhi.VertexBufferLayout{
		{Stride: 32, Attributes: []rhi.VertexAttribute{{ShaderLocation: 0, Format: rhi.VertexFormatFloat32x3, Offset: 0}}},
	}
	changedOffset := []rhi.VertexBufferLayout{
		{Stride: 32, Attributes: []rhi.VertexAttribute{{ShaderLocation: 0, Format: rhi.VertexFormatFloat32x3, Offset: 4}}},
	}
	changedStride := []rhi.VertexBufferLayout{
		{Stride: 16, Attributes: []rhi.VertexAttribute{{ShaderLocation: 0, Format: rhi.VertexFormatFloat32x3, Offset: 0}}},
	}

	h1, h2, h3 := hashVertexBufferLayouts(base), hashVertexBufferLayouts(changedOffset), hashVertexBufferLayouts(changedStride)
	if h1 == h2 {
		t.Fatal("expected a changed attribute offset to change the hash")
	}
	if h1 == h3 {
		t.Fatal("expected a changed stride to change the hash")
	}
}
