// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build linux

package gl

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// ProcAddressFunc resolves a GL function name to its process address. The
// host supplies one (backed by eglGetProcAddress, glXGetProcAddress, or an
// equivalent) for a context it has already made current; loading a window
// system or making a context current is out of scope here.
type ProcAddressFunc func(name string) unsafe.Pointer

// Context holds the OpenGL 4.5 DSA function pointers loaded at runtime
// through a ProcAddressFunc, and the cached goffi call signatures used to
// invoke them without cgo.
type Context struct {
	// Buffers
	glCreateBuffers               unsafe.Pointer
	glNamedBufferStorage          unsafe.Pointer
	glNamedBufferSubData          unsafe.Pointer
	glMapNamedBufferRange         unsafe.Pointer
	glFlushMappedNamedBufferRange unsafe.Pointer
	glUnmapNamedBuffer            unsafe.Pointer
	glCopyNamedBufferSubData      unsafe.Pointer
	glDeleteBuffers               unsafe.Pointer
	glBindBuffer                  unsafe.Pointer
	glBindBufferBase              unsafe.Pointer
	glBindBufferRange             unsafe.Pointer
	glBindBuffersRange            unsafe.Pointer

	// Textures
	glCreateTextures             unsafe.Pointer
	glTextureStorage2D           unsafe.Pointer
	glTextureStorage3D           unsafe.Pointer
	glTextureStorage2DMultisample unsafe.Pointer
	glTextureSubImage2D          unsafe.Pointer
	glTextureSubImage3D          unsafe.Pointer
	glGetTextureSubImage         unsafe.Pointer
	glGenerateTextureMipmap      unsafe.Pointer
	glDeleteTextures             unsafe.Pointer
	glBindTextureUnit            unsafe.Pointer
	glBindTextures               unsafe.Pointer
	glBindImageTexture           unsafe.Pointer
	glTextureParameteri          unsafe.Pointer
	glTextureParameterfv         unsafe.Pointer
	glCopyImageSubData           unsafe.Pointer
	glTextureView                unsafe.Pointer

	// Samplers
	glCreateSamplers     unsafe.Pointer
	glSamplerParameteri  unsafe.Pointer
	glSamplerParameterfv unsafe.Pointer
	glSamplerParameterf  unsafe.Pointer
	glBindSampler        unsafe.Pointer
	glBindSamplers       unsafe.Pointer
	glDeleteSamplers     unsafe.Pointer

	// Framebuffers
	glBindFramebuffer             unsafe.Pointer
	glCreateFramebuffers          unsafe.Pointer
	glNamedFramebufferTexture     unsafe.Pointer
	glNamedFramebufferTextureLayer unsafe.Pointer
	glNamedFramebufferDrawBuffers unsafe.Pointer
	glCheckNamedFramebufferStatus unsafe.Pointer
	glClearNamedFramebufferfv     unsafe.Pointer
	glClearNamedFramebufferiv     unsafe.Pointer
	glClearNamedFramebufferfi     unsafe.Pointer
	glDeleteFramebuffers          unsafe.Pointer
	glBlitNamedFramebuffer        unsafe.Pointer

	// Vertex arrays
	glCreateVertexArrays        unsafe.Pointer
	glVertexArrayVertexBuffer   unsafe.Pointer
	glVertexArrayElementBuffer  unsafe.Pointer
	glVertexArrayAttribFormat   unsafe.Pointer
	glVertexArrayAttribIFormat  unsafe.Pointer
	glVertexArrayAttribBinding  unsafe.Pointer
	glVertexArrayBindingDivisor unsafe.Pointer
	glEnableVertexArrayAttrib   unsafe.Pointer
	glDeleteVertexArrays        unsafe.Pointer
	glBindVertexArray           unsafe.Pointer

	// Shaders / programs
	glCreateShader            unsafe.Pointer
	glShaderSource            unsafe.Pointer
	glCompileShader           unsafe.Pointer
	glGetShaderiv             unsafe.Pointer
	glGetShaderInfoLog        unsafe.Pointer
	glDeleteShader            unsafe.Pointer
	glShaderBinary            unsafe.Pointer
	glSpecializeShader        unsafe.Pointer
	glCreateProgram           unsafe.Pointer
	glAttachShader            unsafe.Pointer
	glLinkProgram             unsafe.Pointer
	glGetProgramiv            unsafe.Pointer
	glGetProgramInfoLog       unsafe.Pointer
	glUseProgram              unsafe.Pointer
	glGetUniformLocation      unsafe.Pointer
	glGetUniformBlockIndex    unsafe.Pointer
	glGetProgramResourceIndex unsafe.Pointer
	glUniformBlockBinding     unsafe.Pointer
	glShaderStorageBlockBinding unsafe.Pointer
	glProgramUniform1i        unsafe.Pointer
	glDeleteProgram           unsafe.Pointer

	// Draw / dispatch
	glDrawArrays                                unsafe.Pointer
	glDrawArraysInstancedBaseInstance           unsafe.Pointer
	glDrawElementsBaseVertex                    unsafe.Pointer
	glDrawElementsInstancedBaseVertexBaseInstance unsafe.Pointer
	glMultiDrawArraysIndirect                   unsafe.Pointer
	glMultiDrawElementsIndirect                 unsafe.Pointer
	glDispatchCompute                           unsafe.Pointer
	glDispatchComputeIndirect                   unsafe.Pointer

	// Fixed-function state
	glEnable                unsafe.Pointer
	glDisable                unsafe.Pointer
	glBlendFuncSeparatei     unsafe.Pointer
	glBlendEquationSeparatei unsafe.Pointer
	glColorMaski             unsafe.Pointer
	glDepthFunc              unsafe.Pointer
	glDepthMask              unsafe.Pointer
	glStencilFuncSeparate    unsafe.Pointer
	glStencilOpSeparate      unsafe.Pointer
	glStencilMaskSeparate    unsafe.Pointer
	glCullFace               unsafe.Pointer
	glFrontFace              unsafe.Pointer
	glPolygonOffset          unsafe.Pointer
	glLineWidth              unsafe.Pointer
	glViewportIndexedf       unsafe.Pointer
	glDepthRangeIndexed      unsafe.Pointer
	glScissorIndexed         unsafe.Pointer
	glMemoryBarrier          unsafe.Pointer
	glDebugMessageCallback   unsafe.Pointer

	// Sync
	glFenceSync      unsafe.Pointer
	glDeleteSync     unsafe.Pointer
	glClientWaitSync unsafe.Pointer
	glGetSynciv      unsafe.Pointer

	// Misc
	glGetString    unsafe.Pointer
	glGetStringi   unsafe.Pointer
	glGetIntegerv  unsafe.Pointer
	glGetIntegeri_v unsafe.Pointer
	glGetError     unsafe.Pointer
	glFlush        unsafe.Pointer
	glFinish       unsafe.Pointer

	sigMu sync.Mutex
	sigs  map[string]*types.CallInterface
}

// Load resolves every DSA entry point this backend issues through
// getProcAddr. A nil returned for an optional entry point (DebugMessageCallback,
// the SPIR-V path) is tolerated; callers probe Capabilities before relying
// on them.
func (c *Context) Load(getProcAddr ProcAddressFunc) error {
	c.sigs = make(map[string]*types.CallInterface, 64)

	c.glCreateBuffers = getProcAddr("glCreateBuffers")
	c.glNamedBufferStorage = getProcAddr("glNamedBufferStorage")
	c.glNamedBufferSubData = getProcAddr("glNamedBufferSubData")
	c.glMapNamedBufferRange = getProcAddr("glMapNamedBufferRange")
	c.glFlushMappedNamedBufferRange = getProcAddr("glFlushMappedNamedBufferRange")
	c.glUnmapNamedBuffer = getProcAddr("glUnmapNamedBuffer")
	c.glCopyNamedBufferSubData = getProcAddr("glCopyNamedBufferSubData")
	c.glDeleteBuffers = getProcAddr("glDeleteBuffers")
	c.glBindBuffer = getProcAddr("glBindBuffer")
	c.glBindBufferBase = getProcAddr("glBindBufferBase")
	c.glBindBufferRange = getProcAddr("glBindBufferRange")
	c.glBindBuffersRange = getProcAddr("glBindBuffersRange")

	c.glCreateTextures = getProcAddr("glCreateTextures")
	c.glTextureStorage2D = getProcAddr("glTextureStorage2D")
	c.glTextureStorage3D = getProcAddr("glTextureStorage3D")
	c.glTextureStorage2DMultisample = getProcAddr("glTextureStorage2DMultisample")
	c.glTextureSubImage2D = getProcAddr("glTextureSubImage2D")
	c.glTextureSubImage3D = getProcAddr("glTextureSubImage3D")
	c.glGetTextureSubImage = getProcAddr("glGetTextureSubImage")
	c.glGenerateTextureMipmap = getProcAddr("glGenerateTextureMipmap")
	c.glDeleteTextures = getProcAddr("glDeleteTextures")
	c.glBindTextureUnit = getProcAddr("glBindTextureUnit")
	c.glBindTextures = getProcAddr("glBindTextures")
	c.glBindImageTexture = getProcAddr("glBindImageTexture")
	c.glTextureParameteri = getProcAddr("glTextureParameteri")
	c.glTextureParameterfv = getProcAddr("glTextureParameterfv")
	c.glCopyImageSubData = getProcAddr("glCopyImageSubData")
	c.glTextureView = getProcAddr("glTextureView")

	c.glCreateSamplers = getProcAddr("glCreateSamplers")
	c.glSamplerParameteri = getProcAddr("glSamplerParameteri")
	c.glSamplerParameterfv = getProcAddr("glSamplerParameterfv")
	c.glSamplerParameterf = getProcAddr("glSamplerParameterf")
	c.glBindSampler = getProcAddr("glBindSampler")
	c.glBindSamplers = getProcAddr("glBindSamplers")
	c.glDeleteSamplers = getProcAddr("glDeleteSamplers")

	c.glBindFramebuffer = getProcAddr("glBindFramebuffer")
	c.glCreateFramebuffers = getProcAddr("glCreateFramebuffers")
	c.glNamedFramebufferTexture = getProcAddr("glNamedFramebufferTexture")
	c.glNamedFramebufferTextureLayer = getProcAddr("glNamedFramebufferTextureLayer")
	c.glNamedFramebufferDrawBuffers = getProcAddr("glNamedFramebufferDrawBuffers")
	c.glCheckNamedFramebufferStatus = getProcAddr("glCheckNamedFramebufferStatus")
	c.glClearNamedFramebufferfv = getProcAddr("glClearNamedFramebufferfv")
	c.glClearNamedFramebufferiv = getProcAddr("glClearNamedFramebufferiv")
	c.glClearNamedFramebufferfi = getProcAddr("glClearNamedFramebufferfi")
	c.glDeleteFramebuffers = getProcAddr("glDeleteFramebuffers")
	c.glBlitNamedFramebuffer = getProcAddr("glBlitNamedFramebuffer")

	c.glCreateVertexArrays = getProcAddr("glCreateVertexArrays")
	c.glVertexArrayVertexBuffer = getProcAddr("glVertexArrayVertexBuffer")
	c.glVertexArrayElementBuffer = getProcAddr("glVertexArrayElementBuffer")
	c.glVertexArrayAttribFormat = getProcAddr("glVertexArrayAttribFormat")
	c.glVertexArrayAttribIFormat = getProcAddr("glVertexArrayAttribIFormat")
	c.glVertexArrayAttribBinding = getProcAddr("glVertexArrayAttribBinding")
	c.glVertexArrayBindingDivisor = getProcAddr("glVertexArrayBindingDivisor")
	c.glEnableVertexArrayAttrib = getProcAddr("glEnableVertexArrayAttrib")
	c.glDeleteVertexArrays = getProcAddr("glDeleteVertexArrays")
	c.glBindVertexArray = getProcAddr("glBindVertexArray")

	c.glCreateShader = getProcAddr("glCreateShader")
	c.glShaderSource = getProcAddr("glShaderSource")
	c.glCompileShader = getProcAddr("glCompileShader")
	c.glGetShaderiv = getProcAddr("glGetShaderiv")
	c.glGetShaderInfoLog = getProcAddr("glGetShaderInfoLog")
	c.glDeleteShader = getProcAddr("glDeleteShader")
	c.glShaderBinary = getProcAddr("glShaderBinary")
	c.glSpecializeShader = getProcAddr("glSpecializeShader")
	c.glCreateProgram = getProcAddr("glCreateProgram")
	c.glAttachShader = getProcAddr("glAttachShader")
	c.glLinkProgram = getProcAddr("glLinkProgram")
	c.glGetProgramiv = getProcAddr("glGetProgramiv")
	c.glGetProgramInfoLog = getProcAddr("glGetProgramInfoLog")
	c.glUseProgram = getProcAddr("glUseProgram")
	c.glGetUniformLocation = getProcAddr("glGetUniformLocation")
	c.glGetUniformBlockIndex = getProcAddr("glGetUniformBlockIndex")
	c.glGetProgramResourceIndex = getProcAddr("glGetProgramResourceIndex")
	c.glUniformBlockBinding = getProcAddr("glUniformBlockBinding")
	c.glShaderStorageBlockBinding = getProcAddr("glShaderStorageBlockBinding")
	c.glProgramUniform1i = getProcAddr("glProgramUniform1i")
	c.glDeleteProgram = getProcAddr("glDeleteProgram")

	c.glDrawArrays = getProcAddr("glDrawArrays")
	c.glDrawArraysInstancedBaseInstance = getProcAddr("glDrawArraysInstancedBaseInstance")
	c.glDrawElementsBaseVertex = getProcAddr("glDrawElementsBaseVertex")
	c.glDrawElementsInstancedBaseVertexBaseInstance = getProcAddr("glDrawElementsInstancedBaseVertexBaseInstance")
	c.glMultiDrawArraysIndirect = getProcAddr("glMultiDrawArraysIndirect")
	c.glMultiDrawElementsIndirect = getProcAddr("glMultiDrawElementsIndirect")
	c.glDispatchCompute = getProcAddr("glDispatchCompute")
	c.glDispatchComputeIndirect = getProcAddr("glDispatchComputeIndirect")

	c.glEnable = getProcAddr("glEnable")
	c.glDisable = getProcAddr("glDisable")
	c.glBlendFuncSeparatei = getProcAddr("glBlendFuncSeparatei")
	c.glBlendEquationSeparatei = getProcAddr("glBlendEquationSeparatei")
	c.glColorMaski = getProcAddr("glColorMaski")
	c.glDepthFunc = getProcAddr("glDepthFunc")
	c.glDepthMask = getProcAddr("glDepthMask")
	c.glStencilFuncSeparate = getProcAddr("glStencilFuncSeparate")
	c.glStencilOpSeparate = getProcAddr("glStencilOpSeparate")
	c.glStencilMaskSeparate = getProcAddr("glStencilMaskSeparate")
	c.glCullFace = getProcAddr("glCullFace")
	c.glFrontFace = getProcAddr("glFrontFace")
	c.glPolygonOffset = getProcAddr("glPolygonOffset")
	c.glLineWidth = getProcAddr("glLineWidth")
	c.glViewportIndexedf = getProcAddr("glViewportIndexedf")
	c.glDepthRangeIndexed = getProcAddr("glDepthRangeIndexed")
	c.glScissorIndexed = getProcAddr("glScissorIndexed")
	c.glMemoryBarrier = getProcAddr("glMemoryBarrier")
	c.glDebugMessageCallback = getProcAddr("glDebugMessageCallback")

	c.glFenceSync = getProcAddr("glFenceSync")
	c.glDeleteSync = getProcAddr("glDeleteSync")
	c.glClientWaitSync = getProcAddr("glClientWaitSync")
	c.glGetSynciv = getProcAddr("glGetSynciv")

	c.glGetString = getProcAddr("glGetString")
	c.glGetStringi = getProcAddr("glGetStringi")
	c.glGetIntegerv = getProcAddr("glGetIntegerv")
	c.glGetIntegeri_v = getProcAddr("glGetIntegeri_v")
	c.glGetError = getProcAddr("glGetError")
	c.glFlush = getProcAddr("glFlush")
	c.glFinish = getProcAddr("glFinish")

	if c.glCreateBuffers == nil || c.glCreateTextures == nil || c.glCreateFramebuffers == nil {
		return fmt.Errorf("gl: host loader did not resolve required OpenGL 4.5 DSA entry points")
	}
	return nil
}

// sig returns a cached CallInterface for the given key, building it with
// build on first use. Keys are short descriptive strings ("v(u)", "u4(u,p)")
// rather than a type-level cache so every wrapper method below reads as a
// one-line call, matching the shape of the DSA entry point it wraps.
func (c *Context) sig(key string, build func() (*types.CallInterface, error)) *types.CallInterface {
	c.sigMu.Lock()
	defer c.sigMu.Unlock()
	if cif, ok := c.sigs[key]; ok {
		return cif
	}
	cif, err := build()
	if err != nil {
		panic(fmt.Sprintf("gl: preparing call interface %q: %v", key, err))
	}
	c.sigs[key] = cif
	return cif
}

func ret(d *types.TypeDescriptor) *types.TypeDescriptor { return d }

func args(ds ...*types.TypeDescriptor) []*types.TypeDescriptor { return ds }

func (c *Context) cifFor(key string, retDesc *types.TypeDescriptor, argDescs ...*types.TypeDescriptor) *types.CallInterface {
	return c.sig(key, func() (*types.CallInterface, error) {
		var cif types.CallInterface
		err := ffi.PrepareCallInterface(&cif, types.DefaultCall, retDesc, argDescs)
		return &cif, err
	})
}

var (
	u32 = types.UInt32TypeDescriptor
	s32 = types.SInt32TypeDescriptor
	u64 = types.UInt64TypeDescriptor
	f32 = types.FloatTypeDescriptor
	f64 = types.DoubleTypeDescriptor
	ptr = types.PointerTypeDescriptor
	vd  = types.VoidTypeDescriptor
)

func p(v unsafe.Pointer) unsafe.Pointer { return v }

// goString converts a null-terminated C string pointer to a Go string.
func goString(cstr uintptr) string {
	if cstr == 0 {
		return ""
	}
	length := 0
	base := (*byte)(unsafe.Pointer(cstr)) //nolint:govet // FFI requires uintptr-to-pointer conversion
	for i := 0; i < 65536; i++ {
		b := unsafe.Slice(base, i+1)
		if b[i] == 0 {
			length = i
			break
		}
	}
	if length == 0 {
		return ""
	}
	return string(unsafe.Slice(base, length))
}

// cString converts a Go string to a null-terminated buffer. Go owns the
// memory, so the returned func is a no-op; it exists to mirror call sites
// that expect an explicit free step.
func cString(s string) (*byte, func()) {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0], func() {}
}
