// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"errors"
	"testing"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

func TestLookupFormat(t *testing.T) {
	tests := []struct {
		name         string
		format       rhi.TextureFormat
		wantInternal uint32
		wantFormat   uint32
		wantType     uint32
	}{
		{"R8Unorm", rhi.FormatR8Unorm, gl.R8, gl.RED, gl.UNSIGNED_BYTE},
		{"RG8Unorm", rhi.FormatRG8Unorm, gl.RG8, gl.RG, gl.UNSIGNED_BYTE},
		{"RGBA8Unorm", rhi.FormatRGBA8Unorm, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE},
		{"RGBA8UnormSRGB", rhi.FormatRGBA8UnormSRGB, gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE},
		{"BGRA8Unorm", rhi.FormatBGRA8Unorm, gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE},
		{"RGBA16Float", rhi.FormatRGBA16Float, gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT},
		{"RGBA32Float", rhi.FormatRGBA32Float, gl.RGBA32F, gl.RGBA, gl.FLOAT},
		{"Depth24PlusStencil8", rhi.FormatDepth24PlusStencil8, gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
		{"Depth32Float", rhi.FormatDepth32Float, gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gf, err := lookupFormat(tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gf.Internal != tt.wantInternal || gf.Format != tt.wantFormat || gf.Type != tt.wantType {
				t.Errorf("lookupFormat(%v) = %+v, want {%#x %#x %#x}", tt.format, gf, tt.wantInternal, tt.wantFormat, tt.wantType)
			}
		})
	}
}

func TestLookupFormat_UnknownIsNotSupported(t *testing.T) {
	_, err := lookupFormat(rhi.FormatUnknown)
	if !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported for FormatUnknown, got %v", err)
	}
}

func TestTextureTarget(t *testing.T) {
	tests := []struct {
		name        string
		dim         rhi.TextureDimension
		layers      uint32
		samples     uint32
		want        uint32
	}{
		{"2D", rhi.Texture2D, 1, 1, gl.TEXTURE_2D},
		{"2DArray", rhi.Texture2D, 4, 1, gl.TEXTURE_2D_ARRAY},
		{"2DMultisample", rhi.Texture2D, 1, 4, gl.TEXTURE_2D_MULTISAMPLE},
		{"3D", rhi.Texture3D, 1, 1, gl.TEXTURE_3D},
		{"Cube", rhi.TextureCube, 6, 1, gl.TEXTURE_CUBE_MAP},
		{"CubeArray", rhi.TextureCube, 12, 1, gl.TEXTURE_CUBE_MAP_ARRAY},
		{"1D", rhi.Texture1D, 1, 1, gl.TEXTURE_1D},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textureTarget(tt.dim, tt.layers, tt.samples); got != tt.want {
				t.Errorf("textureTarget(%v, %d, %d) = %#x, want %#x", tt.dim, tt.layers, tt.samples, got, tt.want)
			}
		})
	}
}

func TestBufferTarget(t *testing.T) {
	tests := []struct {
		name  string
		usage rhi.BufferUsage
		want  uint32
	}{
		{"Index", rhi.BufferUsageIndex, gl.ELEMENT_ARRAY_BUFFER},
		{"Constant", rhi.BufferUsageConstant, gl.UNIFORM_BUFFER},
		{"Storage", rhi.BufferUsageUnorderedAccess, gl.SHADER_STORAGE_BUFFER},
		{"Indirect", rhi.BufferUsageIndirectArgs, gl.DRAW_INDIRECT_BUFFER},
		{"Vertex", rhi.BufferUsageVertex, gl.ARRAY_BUFFER},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bufferTarget(tt.usage); got != tt.want {
				t.Errorf("bufferTarget(%v) = %#x, want %#x", tt.usage, got, tt.want)
			}
		})
	}
}

func TestBufferStorageFlags_MatchesMapAccess(t *testing.T) {
	for _, mem := range []rhi.MemoryType{rhi.MemoryDefault, rhi.MemoryUpload, rhi.MemoryReadback} {
		storage := bufferStorageFlags(mem)
		access := bufferMapAccess(mem)
		if mem == rhi.MemoryDefault {
			if access != 0 {
				t.Errorf("expected no map access bits for MemoryDefault, got %#x", access)
			}
			continue
		}
		if storage&access != access {
			t.Errorf("mem %v: storage flags %#x do not contain map access bits %#x", mem, storage, access)
		}
	}
}
