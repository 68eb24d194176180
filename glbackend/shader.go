// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"fmt"
	"sync"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

var shaderStageGL = map[rhi.ShaderStage]uint32{
	rhi.StageVertex:   gl.VERTEX_SHADER,
	rhi.StageFragment: gl.FRAGMENT_SHADER,
	rhi.StageGeometry: gl.GEOMETRY_SHADER,
	rhi.StageHull:     gl.TESS_CONTROL_SHADER,
	rhi.StageDomain:   gl.TESS_EVALUATION_SHADER,
	rhi.StageCompute:  gl.COMPUTE_SHADER,
}

// Shader is a single compiled (or specialized) GL shader object. Grounded
// on hal/gles/resource.go's ShaderModule, split to handle both of spec
// §4.6's source kinds: GLSL text compiled with glCompileShader, and SPIR-V
// bytecode loaded with glShaderBinary + glSpecializeShader.
type Shader struct {
	Name  uint32
	Stage rhi.ShaderStage
}

// CreateShaderModule compiles or specializes desc into a GL shader object.
func CreateShaderModule(ctx *gl.Context, desc rhi.ShaderDescriptor) (*Shader, error) {
	glStage, ok := shaderStageGL[desc.Stage]
	if !ok {
		return nil, NewValidationErrorf("Shader", "Stage", "unknown shader stage %v", desc.Stage)
	}
	name := ctx.CreateShader(glStage)

	switch desc.SourceKind {
	case rhi.ShaderSourceGLSL:
		ctx.ShaderSource(name, string(desc.Source))
		ctx.CompileShader(name)
	case rhi.ShaderSourceSPIRV:
		if desc.EntryPoint == "" {
			ctx.DeleteShader(name)
			return nil, NewValidationError("Shader", "EntryPoint", "required for SPIR-V shaders")
		}
		ctx.ShaderBinary(name, gl.SHADER_BINARY_FORMAT_SPIR_V, desc.Source)
		ctx.SpecializeShader(name, desc.EntryPoint, nil, nil)
	default:
		ctx.DeleteShader(name)
		return nil, NewValidationErrorf("Shader", "SourceKind", "unknown shader source kind %v", desc.SourceKind)
	}

	if ctx.GetShaderiv(name, gl.COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(name)
		ctx.DeleteShader(name)
		Logger().Error("shader compilation failed", "stage", desc.Stage, "label", desc.Label, "log", log)
		return nil, fmt.Errorf("%w: %s", ErrShaderCompileFailed, log)
	}

	return &Shader{Name: name, Stage: desc.Stage}, nil
}

// Destroy enqueues the shader object for deferred deletion.
func (s *Shader) Destroy(dq *DeletionQueue) {
	dq.Queue(ObjectShader, s.Name)
}

// Program is a linked GL program object. It memoizes uniform-location,
// uniform-block-index, and shader-storage-block-index lookups, since those
// string-keyed GL queries are comparatively expensive; DescriptorSet binds
// by explicit binding index and does not call them. Grounded on
// hal/gles/resource.go's RenderPipeline/ComputePipeline program handling.
type Program struct {
	Name uint32

	mu             sync.Mutex
	uniformLoc     map[string]int32
	uniformBlock   map[string]uint32
	storageBlock   map[string]uint32
}

// LinkProgram attaches shaders and links them into a new program.
func LinkProgram(ctx *gl.Context, shaders ...*Shader) (*Program, error) {
	name := ctx.CreateProgram()
	for _, sh := range shaders {
		ctx.AttachShader(name, sh.Name)
	}
	ctx.LinkProgram(name)

	if ctx.GetProgramiv(name, gl.LINK_STATUS) == 0 {
		log := ctx.GetProgramInfoLog(name)
		ctx.DeleteProgram(name)
		Logger().Error("program link failed", "log", log)
		return nil, fmt.Errorf("%w: %s", ErrProgramLinkFailed, log)
	}

	p := &Program{
		Name:         name,
		uniformLoc:   make(map[string]int32),
		uniformBlock: make(map[string]uint32),
		storageBlock: make(map[string]uint32),
	}

	Logger().Debug("program linked",
		"program", name,
		"active_uniforms", ctx.GetProgramiv(name, gl.ACTIVE_UNIFORMS),
		"active_attributes", ctx.GetProgramiv(name, gl.ACTIVE_ATTRIBUTES),
		"active_uniform_blocks", ctx.GetProgramiv(name, gl.ACTIVE_UNIFORM_BLOCKS),
	)

	return p, nil
}

// UniformLocation returns (and memoizes) the location of a uniform by name.
func (p *Program) UniformLocation(ctx *gl.Context, name string) int32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if loc, ok := p.uniformLoc[name]; ok {
		return loc
	}
	loc := ctx.GetUniformLocation(p.Name, name)
	p.uniformLoc[name] = loc
	return loc
}

// UniformBlockIndex returns (and memoizes) the index of a uniform block.
func (p *Program) UniformBlockIndex(ctx *gl.Context, name string) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if idx, ok := p.uniformBlock[name]; ok {
		return idx
	}
	idx := ctx.GetUniformBlockIndex(p.Name, name)
	p.uniformBlock[name] = idx
	return idx
}

// StorageBlockIndex returns (and memoizes) the index of a shader storage
// block, resolved through glGetProgramResourceIndex since GL 4.5 has no
// glGetShaderStorageBlockIndex entry point.
func (p *Program) StorageBlockIndex(ctx *gl.Context, name string) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if idx, ok := p.storageBlock[name]; ok {
		return idx
	}
	idx := ctx.GetProgramResourceIndex(p.Name, gl.SHADER_STORAGE_BLOCK, name)
	p.storageBlock[name] = idx
	return idx
}

// BindUniformBlock assigns a uniform block's binding point.
func (p *Program) BindUniformBlock(ctx *gl.Context, blockIndex, binding uint32) {
	ctx.UniformBlockBinding(p.Name, blockIndex, binding)
}

// BindStorageBlock assigns a shader storage block's binding point.
func (p *Program) BindStorageBlock(ctx *gl.Context, blockIndex, binding uint32) {
	ctx.ShaderStorageBlockBinding(p.Name, blockIndex, binding)
}

// Destroy enqueues the program object for deferred deletion.
func (p *Program) Destroy(dq *DeletionQueue) {
	dq.Queue(ObjectProgram, p.Name)
}
