// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"strings"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

// queryCapabilities runs the one-time GL queries spec §6's "capability
// reporting" calls for and returns a populated rhi.Capabilities. Run once
// at device construction, on the GL thread.
func queryCapabilities(ctx *gl.Context) rhi.Capabilities {
	caps := rhi.Capabilities{
		MaxTextureSize:              uint32(ctx.GetInteger(gl.MAX_TEXTURE_SIZE)),
		MaxColorAttachments:         uint32(ctx.GetInteger(gl.MAX_COLOR_ATTACHMENTS)),
		MaxUniformBufferBindings:    uint32(ctx.GetInteger(gl.MAX_UNIFORM_BUFFER_BINDINGS)),
		MaxShaderStorageBufferBindings: uint32(ctx.GetInteger(gl.MAX_SHADER_STORAGE_BUFFER_BINDINGS)),
		MaxVertexAttributes:         uint32(ctx.GetInteger(gl.MAX_VERTEX_ATTRIBS)),
		MaxSamples:                  uint32(ctx.GetInteger(gl.MAX_SAMPLES)),
		MaxComputeWorkGroupInvocations: uint32(ctx.GetInteger(gl.MAX_COMPUTE_WORK_GROUP_INVOCATIONS)),
		GLVersion:                   ctx.GetString(gl.VERSION),
		GLSLVersion:                 ctx.GetString(gl.SHADING_LANGUAGE_VERSION),
		Vendor:                      ctx.GetString(gl.VENDOR),
		Renderer:                    ctx.GetString(gl.RENDERER),
		DebugOutputSupported:        ctx.SupportsDebugOutput(),
	}

	for axis := uint32(0); axis < 3; axis++ {
		caps.MaxComputeWorkGroupSize[axis] = uint32(ctx.GetIntegeri(gl.MAX_COMPUTE_WORK_GROUP_SIZE, axis))
		caps.MaxComputeWorkGroupCount[axis] = uint32(ctx.GetIntegeri(gl.MAX_COMPUTE_WORK_GROUP_COUNT, axis))
	}

	numExt := ctx.GetInteger(gl.NUM_EXTENSIONS)
	for i := int32(0); i < numExt; i++ {
		switch ctx.GetStringi(gl.EXTENSIONS, uint32(i)) {
		case "GL_ARB_multi_bind":
			caps.MultiBindSupported = true
		case "GL_ARB_bindless_texture":
			caps.BindlessTextureSupported = true
		case "GL_ARB_sparse_texture":
			caps.SparseTextureSupported = true
		case "GL_ARB_texture_filter_anisotropic", "GL_EXT_texture_filter_anisotropic":
			caps.AnisotropicFilteringSupported = true
		}
	}
	// Some drivers report an empty EXTENSIONS enum array under core
	// profiles; fall back to the legacy space-separated string if so.
	if numExt == 0 {
		ext := ctx.GetString(gl.EXTENSIONS)
		caps.MultiBindSupported = caps.MultiBindSupported || strings.Contains(ext, "GL_ARB_multi_bind")
		caps.BindlessTextureSupported = caps.BindlessTextureSupported || strings.Contains(ext, "GL_ARB_bindless_texture")
		caps.SparseTextureSupported = caps.SparseTextureSupported || strings.Contains(ext, "GL_ARB_sparse_texture")
		caps.AnisotropicFilteringSupported = caps.AnisotropicFilteringSupported ||
			strings.Contains(ext, "GL_ARB_texture_filter_anisotropic") || strings.Contains(ext, "GL_EXT_texture_filter_anisotropic")
	}

	return caps
}
