// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"fmt"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

// glFormat is the (internalformat, format, type) GL triple a texture
// allocation and upload/download path needs. format/type are only used by
// TextureSubImage/GetTextureSubImage, not by TextureStorage*, which only
// consumes Internal.
type glFormat struct {
	Internal uint32
	Format   uint32
	Type     uint32
}

// textureFormatTable is grounded on hal/gles/resource.go's format switch,
// widened to the SPEC's format set and restricted to formats GL 4.5 core
// guarantees texture-storage support for.
var textureFormatTable = map[rhi.TextureFormat]glFormat{
	rhi.FormatR8Unorm:             {gl.R8, gl.RED, gl.UNSIGNED_BYTE},
	rhi.FormatRG8Unorm:            {gl.RG8, gl.RG, gl.UNSIGNED_BYTE},
	rhi.FormatRGBA8Unorm:          {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE},
	rhi.FormatRGBA8UnormSRGB:      {gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE},
	rhi.FormatBGRA8Unorm:          {gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE},
	rhi.FormatR16Float:            {gl.R16F, gl.RED, gl.HALF_FLOAT},
	rhi.FormatRG16Float:           {gl.RG16F, gl.RG, gl.HALF_FLOAT},
	rhi.FormatRGBA16Float:         {gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT},
	rhi.FormatR32Float:            {gl.R32F, gl.RED, gl.FLOAT},
	rhi.FormatRG32Float:           {gl.RG32F, gl.RG, gl.FLOAT},
	rhi.FormatRGBA32Float:         {gl.RGBA32F, gl.RGBA, gl.FLOAT},
	rhi.FormatR32Uint:             {gl.R32UI, gl.RED, gl.UNSIGNED_INT},
	rhi.FormatRGBA8Uint:           {gl.RGBA8UI, gl.RGBA, gl.UNSIGNED_BYTE},
	rhi.FormatDepth16Unorm:        {gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_BYTE},
	rhi.FormatDepth24Plus:         {gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.FLOAT},
	rhi.FormatDepth24PlusStencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
	rhi.FormatDepth32Float:        {gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT},
	rhi.FormatDepth32FloatStencil8: {gl.DEPTH32F_STENCIL8, gl.DEPTH_STENCIL, gl.FLOAT_32_UNSIGNED_INT_24_8_REV},
}

func lookupFormat(f rhi.TextureFormat) (glFormat, error) {
	gf, ok := textureFormatTable[f]
	if !ok {
		return glFormat{}, fmt.Errorf("%w: texture format %v", ErrNotSupported, f)
	}
	return gf, nil
}

// textureTarget derives the GL texture target from dimension, array
// layering, and multisampling, matching hal/gles/resource.go's dimension
// switch.
func textureTarget(dim rhi.TextureDimension, arrayLayers, sampleCount uint32) uint32 {
	switch dim {
	case rhi.Texture1D:
		return gl.TEXTURE_1D
	case rhi.Texture3D:
		return gl.TEXTURE_3D
	case rhi.TextureCube:
		if arrayLayers > 6 {
			return gl.TEXTURE_CUBE_MAP_ARRAY
		}
		return gl.TEXTURE_CUBE_MAP
	default: // Texture2D
		if sampleCount > 1 {
			return gl.TEXTURE_2D_MULTISAMPLE
		}
		if arrayLayers > 1 {
			return gl.TEXTURE_2D_ARRAY
		}
		return gl.TEXTURE_2D
	}
}

// bufferTarget picks a representative binding target for a buffer from its
// usage. CreateBuffer stores it in Buffer.Target; the ranged UBO/SSBO binds
// name their own targets and do not read it.
func bufferTarget(usage rhi.BufferUsage) uint32 {
	switch {
	case usage&rhi.BufferUsageIndex != 0:
		return gl.ELEMENT_ARRAY_BUFFER
	case usage&rhi.BufferUsageConstant != 0:
		return gl.UNIFORM_BUFFER
	case usage&rhi.BufferUsageUnorderedAccess != 0 || usage&rhi.BufferUsageStructured != 0:
		return gl.SHADER_STORAGE_BUFFER
	case usage&rhi.BufferUsageIndirectArgs != 0:
		return gl.DRAW_INDIRECT_BUFFER
	default:
		return gl.ARRAY_BUFFER
	}
}

// bufferStorageFlags derives glNamedBufferStorage's flags from the memory
// type and whether persistent mapping will be requested (spec §4.1:
// Upload/Readback buffers are mapped once at creation and kept mapped for
// their whole lifetime).
func bufferStorageFlags(mem rhi.MemoryType) uint32 {
	switch mem {
	case rhi.MemoryUpload:
		return gl.MAP_WRITE_BIT | gl.MAP_PERSISTENT_BIT | gl.MAP_COHERENT_BIT | gl.DYNAMIC_STORAGE_BIT
	case rhi.MemoryReadback:
		return gl.MAP_READ_BIT | gl.MAP_PERSISTENT_BIT | gl.MAP_COHERENT_BIT
	default:
		return gl.DYNAMIC_STORAGE_BIT
	}
}

// bufferMapAccess derives glMapNamedBufferRange's access bits for a
// persistent mapping matching bufferStorageFlags.
func bufferMapAccess(mem rhi.MemoryType) uint32 {
	switch mem {
	case rhi.MemoryUpload:
		return gl.MAP_WRITE_BIT | gl.MAP_PERSISTENT_BIT | gl.MAP_COHERENT_BIT
	case rhi.MemoryReadback:
		return gl.MAP_READ_BIT | gl.MAP_PERSISTENT_BIT | gl.MAP_COHERENT_BIT
	default:
		return 0
	}
}
