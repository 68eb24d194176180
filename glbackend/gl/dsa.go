// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build linux

package gl

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// --- Buffers ---

// CreateBuffers allocates n buffer names without binding any of them,
// mirroring glCreateBuffers's DSA contract (no bind-to-create step).
func (c *Context) CreateBuffers(n int32) uint32 {
	var id uint32
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&id)}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glCreateBuffers, nil, a[:])
	return id
}

// NamedBufferStorage allocates immutable storage for buffer with the given
// flags (DYNAMIC_STORAGE_BIT, MAP_READ_BIT, MAP_PERSISTENT_BIT, ...).
func (c *Context) NamedBufferStorage(buffer uint32, size int, data unsafe.Pointer, flags uint32) {
	sz := uint64(size)
	a := [4]unsafe.Pointer{unsafe.Pointer(&buffer), unsafe.Pointer(&sz), data, unsafe.Pointer(&flags)}
	_ = ffi.CallFunction(c.cifFor("v(u,u64,p,u)", vd, u32, u64, ptr, u32), c.glNamedBufferStorage, nil, a[:])
}

func (c *Context) NamedBufferSubData(buffer uint32, offset, size int, data unsafe.Pointer) {
	off, sz := uint64(offset), uint64(size)
	a := [4]unsafe.Pointer{unsafe.Pointer(&buffer), unsafe.Pointer(&off), unsafe.Pointer(&sz), data}
	_ = ffi.CallFunction(c.cifFor("v(u,u64,u64,p)", vd, u32, u64, u64, ptr), c.glNamedBufferSubData, nil, a[:])
}

// MapNamedBufferRange maps [offset, offset+length) of buffer for CPU access.
// Returns the mapped base pointer, or nil on failure.
func (c *Context) MapNamedBufferRange(buffer uint32, offset, length int, access uint32) unsafe.Pointer {
	off, ln := uint64(offset), uint64(length)
	var result uintptr
	a := [4]unsafe.Pointer{unsafe.Pointer(&buffer), unsafe.Pointer(&off), unsafe.Pointer(&ln), unsafe.Pointer(&access)}
	_ = ffi.CallFunction(c.cifFor("p(u,u64,u64,u)", ptr, u32, u64, u64, u32), c.glMapNamedBufferRange, unsafe.Pointer(&result), a[:])
	return unsafe.Pointer(result)
}

func (c *Context) FlushMappedNamedBufferRange(buffer uint32, offset, length int) {
	off, ln := uint64(offset), uint64(length)
	a := [3]unsafe.Pointer{unsafe.Pointer(&buffer), unsafe.Pointer(&off), unsafe.Pointer(&ln)}
	_ = ffi.CallFunction(c.cifFor("v(u,u64,u64)", vd, u32, u64, u64), c.glFlushMappedNamedBufferRange, nil, a[:])
}

func (c *Context) UnmapNamedBuffer(buffer uint32) bool {
	var result uint32
	a := [1]unsafe.Pointer{unsafe.Pointer(&buffer)}
	_ = ffi.CallFunction(c.cifFor("u(u)", u32, u32), c.glUnmapNamedBuffer, unsafe.Pointer(&result), a[:])
	return result != 0
}

func (c *Context) CopyNamedBufferSubData(readBuf, writeBuf uint32, readOffset, writeOffset, size int) {
	ro, wo, sz := uint64(readOffset), uint64(writeOffset), uint64(size)
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&readBuf), unsafe.Pointer(&writeBuf),
		unsafe.Pointer(&ro), unsafe.Pointer(&wo), unsafe.Pointer(&sz),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u64,u64,u64)", vd, u32, u32, u64, u64, u64), c.glCopyNamedBufferSubData, nil, a[:])
}

func (c *Context) DeleteBuffers(buffers ...uint32) {
	if len(buffers) == 0 {
		return
	}
	n := int32(len(buffers))
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&buffers[0])}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glDeleteBuffers, nil, a[:])
}

// BindBuffer binds buffer to target. Only needed for the handful of
// non-indexed binding points DSA never replaced (DRAW_INDIRECT_BUFFER,
// DISPATCH_INDIRECT_BUFFER, PIXEL_PACK_BUFFER, PIXEL_UNPACK_BUFFER); every
// other buffer bind in this backend goes through a named-object entry point
// instead.
func (c *Context) BindBuffer(target, buffer uint32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&target), unsafe.Pointer(&buffer)}
	_ = ffi.CallFunction(c.cifFor("v(u,u)", vd, u32, u32), c.glBindBuffer, nil, a[:])
}

func (c *Context) BindBufferBase(target, index, buffer uint32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&target), unsafe.Pointer(&index), unsafe.Pointer(&buffer)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u)", vd, u32, u32, u32), c.glBindBufferBase, nil, a[:])
}

func (c *Context) BindBufferRange(target, index, buffer uint32, offset, size int) {
	off, sz := uint64(offset), uint64(size)
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&target), unsafe.Pointer(&index), unsafe.Pointer(&buffer),
		unsafe.Pointer(&off), unsafe.Pointer(&sz),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u,u64,u64)", vd, u32, u32, u32, u64, u64), c.glBindBufferRange, nil, a[:])
}

// BindBuffersRange multi-binds a contiguous run of buffer ranges to
// consecutive indexed binding points starting at first, coalescing what
// would otherwise be one BindBufferRange call per slot. Requires
// GL_ARB_multi_bind.
func (c *Context) BindBuffersRange(target, first uint32, buffers []uint32, offsets, sizes []int) {
	if len(buffers) == 0 {
		return
	}
	n := int32(len(buffers))
	off64 := make([]uint64, len(offsets))
	sz64 := make([]uint64, len(sizes))
	for i := range offsets {
		off64[i] = uint64(offsets[i])
		sz64[i] = uint64(sizes[i])
	}
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&target), unsafe.Pointer(&first), unsafe.Pointer(&n),
		unsafe.Pointer(&buffers[0]), unsafe.Pointer(&off64[0]), unsafe.Pointer(&sz64[0]),
	}
	cif := c.cifFor("v(u,u,s32,p,p,p)", vd, u32, u32, s32, ptr, ptr, ptr)
	_ = ffi.CallFunction(cif, c.glBindBuffersRange, nil, args[:])
}

// --- Textures ---

func (c *Context) CreateTextures(target uint32, n int32) uint32 {
	var id uint32
	a := [3]unsafe.Pointer{unsafe.Pointer(&target), unsafe.Pointer(&n), unsafe.Pointer(&id)}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,p)", vd, u32, s32, ptr), c.glCreateTextures, nil, a[:])
	return id
}

func (c *Context) TextureStorage2D(texture uint32, levels int32, internalFormat uint32, width, height int32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&texture), unsafe.Pointer(&levels), unsafe.Pointer(&internalFormat),
		unsafe.Pointer(&width), unsafe.Pointer(&height),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,u,s32,s32)", vd, u32, s32, u32, s32, s32), c.glTextureStorage2D, nil, a[:])
}

func (c *Context) TextureStorage3D(texture uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	a := [6]unsafe.Pointer{
		unsafe.Pointer(&texture), unsafe.Pointer(&levels), unsafe.Pointer(&internalFormat),
		unsafe.Pointer(&width), unsafe.Pointer(&height), unsafe.Pointer(&depth),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,u,s32,s32,s32)", vd, u32, s32, u32, s32, s32, s32), c.glTextureStorage3D, nil, a[:])
}

func (c *Context) TextureStorage2DMultisample(texture uint32, samples int32, internalFormat uint32, width, height int32, fixedSampleLocations bool) {
	fixed := boolToUint32(fixedSampleLocations)
	a := [6]unsafe.Pointer{
		unsafe.Pointer(&texture), unsafe.Pointer(&samples), unsafe.Pointer(&internalFormat),
		unsafe.Pointer(&width), unsafe.Pointer(&height), unsafe.Pointer(&fixed),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,u,s32,s32,u)", vd, u32, s32, u32, s32, s32, u32), c.glTextureStorage2DMultisample, nil, a[:])
}

func (c *Context) TextureSubImage2D(texture uint32, level, xoffset, yoffset, width, height int32, format, typ uint32, pixels unsafe.Pointer) {
	a := [9]unsafe.Pointer{
		unsafe.Pointer(&texture), unsafe.Pointer(&level), unsafe.Pointer(&xoffset), unsafe.Pointer(&yoffset),
		unsafe.Pointer(&width), unsafe.Pointer(&height), unsafe.Pointer(&format), unsafe.Pointer(&typ), pixels,
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,s32,s32,s32,s32,u,u,p)", vd, u32, s32, s32, s32, s32, s32, u32, u32, ptr), c.glTextureSubImage2D, nil, a[:])
}

func (c *Context) TextureSubImage3D(texture uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, typ uint32, pixels unsafe.Pointer) {
	a := [11]unsafe.Pointer{
		unsafe.Pointer(&texture), unsafe.Pointer(&level),
		unsafe.Pointer(&xoffset), unsafe.Pointer(&yoffset), unsafe.Pointer(&zoffset),
		unsafe.Pointer(&width), unsafe.Pointer(&height), unsafe.Pointer(&depth),
		unsafe.Pointer(&format), unsafe.Pointer(&typ), pixels,
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,s32,s32,s32,s32,s32,s32,u,u,p)", vd, u32, s32, s32, s32, s32, s32, s32, s32, u32, u32, ptr), c.glTextureSubImage3D, nil, a[:])
}

func (c *Context) GetTextureSubImage(texture uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, typ uint32, bufSize int32, pixels unsafe.Pointer) {
	a := [12]unsafe.Pointer{
		unsafe.Pointer(&texture), unsafe.Pointer(&level),
		unsafe.Pointer(&xoffset), unsafe.Pointer(&yoffset), unsafe.Pointer(&zoffset),
		unsafe.Pointer(&width), unsafe.Pointer(&height), unsafe.Pointer(&depth),
		unsafe.Pointer(&format), unsafe.Pointer(&typ), unsafe.Pointer(&bufSize), pixels,
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,s32,s32,s32,s32,s32,s32,u,u,s32,p)", vd, u32, s32, s32, s32, s32, s32, s32, s32, u32, u32, s32, ptr), c.glGetTextureSubImage, nil, a[:])
}

func (c *Context) GenerateTextureMipmap(texture uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&texture)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glGenerateTextureMipmap, nil, a[:])
}

func (c *Context) DeleteTextures(textures ...uint32) {
	if len(textures) == 0 {
		return
	}
	n := int32(len(textures))
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&textures[0])}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glDeleteTextures, nil, a[:])
}

func (c *Context) BindTextureUnit(unit, texture uint32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&unit), unsafe.Pointer(&texture)}
	_ = ffi.CallFunction(c.cifFor("v(u,u)", vd, u32, u32), c.glBindTextureUnit, nil, a[:])
}

// BindTextures multi-binds a contiguous run of textures to consecutive
// texture units starting at first, coalescing what would otherwise be one
// BindTextureUnit call per slot. Requires GL_ARB_multi_bind.
func (c *Context) BindTextures(first uint32, textures []uint32) {
	if len(textures) == 0 {
		return
	}
	n := int32(len(textures))
	a := [3]unsafe.Pointer{unsafe.Pointer(&first), unsafe.Pointer(&n), unsafe.Pointer(&textures[0])}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,p)", vd, u32, s32, ptr), c.glBindTextures, nil, a[:])
}

// BindImageTexture binds one level/layer of texture to an image unit for
// shader load/store access, per the access mode (READ_ONLY/WRITE_ONLY/
// READ_WRITE) inferred from the resource's declared usage.
func (c *Context) BindImageTexture(unit uint32, texture uint32, level int32, layered bool, layer int32, access uint32, format uint32) {
	l := boolToUint32(layered)
	a := [7]unsafe.Pointer{
		unsafe.Pointer(&unit), unsafe.Pointer(&texture), unsafe.Pointer(&level),
		unsafe.Pointer(&l), unsafe.Pointer(&layer), unsafe.Pointer(&access), unsafe.Pointer(&format),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,s32,u,s32,u,u)", vd, u32, u32, s32, u32, s32, u32, u32), c.glBindImageTexture, nil, a[:])
}

func (c *Context) TextureParameteri(texture, pname uint32, param int32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&texture), unsafe.Pointer(&pname), unsafe.Pointer(&param)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,s32)", vd, u32, u32, s32), c.glTextureParameteri, nil, a[:])
}

func (c *Context) TextureParameterfv(texture, pname uint32, params *float32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&texture), unsafe.Pointer(&pname), unsafe.Pointer(params)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,p)", vd, u32, u32, ptr), c.glTextureParameterfv, nil, a[:])
}

func (c *Context) CopyImageSubData(srcTex uint32, srcTarget uint32, srcLevel, srcX, srcY, srcZ int32,
	dstTex uint32, dstTarget uint32, dstLevel, dstX, dstY, dstZ int32, width, height, depth int32) {
	a := [15]unsafe.Pointer{
		unsafe.Pointer(&srcTex), unsafe.Pointer(&srcTarget), unsafe.Pointer(&srcLevel),
		unsafe.Pointer(&srcX), unsafe.Pointer(&srcY), unsafe.Pointer(&srcZ),
		unsafe.Pointer(&dstTex), unsafe.Pointer(&dstTarget), unsafe.Pointer(&dstLevel),
		unsafe.Pointer(&dstX), unsafe.Pointer(&dstY), unsafe.Pointer(&dstZ),
		unsafe.Pointer(&width), unsafe.Pointer(&height), unsafe.Pointer(&depth),
	}
	cif := c.cifFor("v(u,u,s32,s32,s32,s32,u,u,s32,s32,s32,s32,s32,s32,s32)",
		vd, u32, u32, s32, s32, s32, s32, u32, u32, s32, s32, s32, s32, s32, s32, s32)
	_ = ffi.CallFunction(cif, c.glCopyImageSubData, nil, a[:])
}

func (c *Context) TextureView(texture, target, origTexture, internalFormat uint32, minLevel, numLevels, minLayer, numLayers uint32) {
	a := [8]unsafe.Pointer{
		unsafe.Pointer(&texture), unsafe.Pointer(&target), unsafe.Pointer(&origTexture), unsafe.Pointer(&internalFormat),
		unsafe.Pointer(&minLevel), unsafe.Pointer(&numLevels), unsafe.Pointer(&minLayer), unsafe.Pointer(&numLayers),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u,u,u,u,u,u)", vd, u32, u32, u32, u32, u32, u32, u32, u32), c.glTextureView, nil, a[:])
}

// --- Samplers ---

func (c *Context) CreateSamplers(n int32) uint32 {
	var id uint32
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&id)}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glCreateSamplers, nil, a[:])
	return id
}

func (c *Context) SamplerParameteri(sampler, pname uint32, param int32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&sampler), unsafe.Pointer(&pname), unsafe.Pointer(&param)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,s32)", vd, u32, u32, s32), c.glSamplerParameteri, nil, a[:])
}

func (c *Context) SamplerParameterfv(sampler, pname uint32, params *float32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&sampler), unsafe.Pointer(&pname), unsafe.Pointer(params)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,p)", vd, u32, u32, ptr), c.glSamplerParameterfv, nil, a[:])
}

func (c *Context) SamplerParameterf(sampler, pname uint32, param float32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&sampler), unsafe.Pointer(&pname), unsafe.Pointer(&param)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,f32)", vd, u32, u32, f32), c.glSamplerParameterf, nil, a[:])
}

func (c *Context) BindSampler(unit, sampler uint32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&unit), unsafe.Pointer(&sampler)}
	_ = ffi.CallFunction(c.cifFor("v(u,u)", vd, u32, u32), c.glBindSampler, nil, a[:])
}

// BindSamplers multi-binds a contiguous run of samplers to consecutive
// texture units starting at first. Requires GL_ARB_multi_bind.
func (c *Context) BindSamplers(first uint32, samplers []uint32) {
	if len(samplers) == 0 {
		return
	}
	n := int32(len(samplers))
	a := [3]unsafe.Pointer{unsafe.Pointer(&first), unsafe.Pointer(&n), unsafe.Pointer(&samplers[0])}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,p)", vd, u32, s32, ptr), c.glBindSamplers, nil, a[:])
}

func (c *Context) DeleteSamplers(samplers ...uint32) {
	if len(samplers) == 0 {
		return
	}
	n := int32(len(samplers))
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&samplers[0])}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glDeleteSamplers, nil, a[:])
}

// --- Framebuffers ---

// BindFramebuffer binds framebuffer to target (GL_DRAW_FRAMEBUFFER or
// GL_READ_FRAMEBUFFER). Unlike the rest of this package, this is not a DSA
// entry point: OpenGL has no named-object way to select the current draw/
// read framebuffer, since that selection is target state rather than
// object state.
func (c *Context) BindFramebuffer(target, framebuffer uint32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&target), unsafe.Pointer(&framebuffer)}
	_ = ffi.CallFunction(c.cifFor("v(u,u)", vd, u32, u32), c.glBindFramebuffer, nil, a[:])
}

func (c *Context) CreateFramebuffers(n int32) uint32 {
	var id uint32
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&id)}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glCreateFramebuffers, nil, a[:])
	return id
}

func (c *Context) NamedFramebufferTexture(framebuffer, attachment, texture uint32, level int32) {
	a := [4]unsafe.Pointer{unsafe.Pointer(&framebuffer), unsafe.Pointer(&attachment), unsafe.Pointer(&texture), unsafe.Pointer(&level)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u,s32)", vd, u32, u32, u32, s32), c.glNamedFramebufferTexture, nil, a[:])
}

func (c *Context) NamedFramebufferTextureLayer(framebuffer, attachment, texture uint32, level, layer int32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&framebuffer), unsafe.Pointer(&attachment), unsafe.Pointer(&texture),
		unsafe.Pointer(&level), unsafe.Pointer(&layer),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u,s32,s32)", vd, u32, u32, u32, s32, s32), c.glNamedFramebufferTextureLayer, nil, a[:])
}

func (c *Context) NamedFramebufferDrawBuffers(framebuffer uint32, bufs []uint32) {
	if len(bufs) == 0 {
		return
	}
	n := int32(len(bufs))
	a := [3]unsafe.Pointer{unsafe.Pointer(&framebuffer), unsafe.Pointer(&n), unsafe.Pointer(&bufs[0])}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,p)", vd, u32, s32, ptr), c.glNamedFramebufferDrawBuffers, nil, a[:])
}

func (c *Context) CheckNamedFramebufferStatus(framebuffer, target uint32) uint32 {
	var result uint32
	a := [2]unsafe.Pointer{unsafe.Pointer(&framebuffer), unsafe.Pointer(&target)}
	_ = ffi.CallFunction(c.cifFor("u(u,u)", u32, u32, u32), c.glCheckNamedFramebufferStatus, unsafe.Pointer(&result), a[:])
	return result
}

func (c *Context) ClearNamedFramebufferfv(framebuffer, buffer uint32, drawBuffer int32, value *float32) {
	a := [4]unsafe.Pointer{unsafe.Pointer(&framebuffer), unsafe.Pointer(&buffer), unsafe.Pointer(&drawBuffer), unsafe.Pointer(value)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,s32,p)", vd, u32, u32, s32, ptr), c.glClearNamedFramebufferfv, nil, a[:])
}

func (c *Context) ClearNamedFramebufferiv(framebuffer, buffer uint32, drawBuffer int32, value *int32) {
	a := [4]unsafe.Pointer{unsafe.Pointer(&framebuffer), unsafe.Pointer(&buffer), unsafe.Pointer(&drawBuffer), unsafe.Pointer(value)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,s32,p)", vd, u32, u32, s32, ptr), c.glClearNamedFramebufferiv, nil, a[:])
}

func (c *Context) ClearNamedFramebufferfi(framebuffer, buffer uint32, depth float32, stencil int32) {
	a := [4]unsafe.Pointer{unsafe.Pointer(&framebuffer), unsafe.Pointer(&buffer), unsafe.Pointer(&depth), unsafe.Pointer(&stencil)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,f32,s32)", vd, u32, u32, f32, s32), c.glClearNamedFramebufferfi, nil, a[:])
}

func (c *Context) DeleteFramebuffers(framebuffers ...uint32) {
	if len(framebuffers) == 0 {
		return
	}
	n := int32(len(framebuffers))
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&framebuffers[0])}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glDeleteFramebuffers, nil, a[:])
}

func (c *Context) BlitNamedFramebuffer(readFb, drawFb uint32, sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int32, mask, filter uint32) {
	a := [14]unsafe.Pointer{
		unsafe.Pointer(&readFb), unsafe.Pointer(&drawFb),
		unsafe.Pointer(&sx0), unsafe.Pointer(&sy0), unsafe.Pointer(&sx1), unsafe.Pointer(&sy1),
		unsafe.Pointer(&dx0), unsafe.Pointer(&dy0), unsafe.Pointer(&dx1), unsafe.Pointer(&dy1),
		unsafe.Pointer(&mask), unsafe.Pointer(&filter),
	}
	cif := c.cifFor("v(u,u,s32,s32,s32,s32,s32,s32,s32,s32,u,u)", vd, u32, u32, s32, s32, s32, s32, s32, s32, s32, s32, u32, u32)
	_ = ffi.CallFunction(cif, c.glBlitNamedFramebuffer, nil, a[:])
}

// --- Vertex arrays ---

func (c *Context) CreateVertexArrays(n int32) uint32 {
	var id uint32
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&id)}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glCreateVertexArrays, nil, a[:])
	return id
}

func (c *Context) VertexArrayVertexBuffer(vaobj, bindingIndex, buffer uint32, offset int, stride int32) {
	off := uint64(offset)
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&vaobj), unsafe.Pointer(&bindingIndex), unsafe.Pointer(&buffer),
		unsafe.Pointer(&off), unsafe.Pointer(&stride),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u,u64,s32)", vd, u32, u32, u32, u64, s32), c.glVertexArrayVertexBuffer, nil, a[:])
}

func (c *Context) VertexArrayElementBuffer(vaobj, buffer uint32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&vaobj), unsafe.Pointer(&buffer)}
	_ = ffi.CallFunction(c.cifFor("v(u,u)", vd, u32, u32), c.glVertexArrayElementBuffer, nil, a[:])
}

func (c *Context) VertexArrayAttribFormat(vaobj, attribIndex uint32, size int32, typ uint32, normalized bool, relativeOffset uint32) {
	norm := boolToUint32(normalized)
	a := [6]unsafe.Pointer{
		unsafe.Pointer(&vaobj), unsafe.Pointer(&attribIndex), unsafe.Pointer(&size),
		unsafe.Pointer(&typ), unsafe.Pointer(&norm), unsafe.Pointer(&relativeOffset),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,s32,u,u,u)", vd, u32, u32, s32, u32, u32, u32), c.glVertexArrayAttribFormat, nil, a[:])
}

func (c *Context) VertexArrayAttribIFormat(vaobj, attribIndex uint32, size int32, typ uint32, relativeOffset uint32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&vaobj), unsafe.Pointer(&attribIndex), unsafe.Pointer(&size),
		unsafe.Pointer(&typ), unsafe.Pointer(&relativeOffset),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,s32,u,u)", vd, u32, u32, s32, u32, u32), c.glVertexArrayAttribIFormat, nil, a[:])
}

func (c *Context) VertexArrayAttribBinding(vaobj, attribIndex, bindingIndex uint32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&vaobj), unsafe.Pointer(&attribIndex), unsafe.Pointer(&bindingIndex)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u)", vd, u32, u32, u32), c.glVertexArrayAttribBinding, nil, a[:])
}

func (c *Context) VertexArrayBindingDivisor(vaobj, bindingIndex, divisor uint32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&vaobj), unsafe.Pointer(&bindingIndex), unsafe.Pointer(&divisor)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u)", vd, u32, u32, u32), c.glVertexArrayBindingDivisor, nil, a[:])
}

func (c *Context) EnableVertexArrayAttrib(vaobj, index uint32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&vaobj), unsafe.Pointer(&index)}
	_ = ffi.CallFunction(c.cifFor("v(u,u)", vd, u32, u32), c.glEnableVertexArrayAttrib, nil, a[:])
}

func (c *Context) DeleteVertexArrays(arrays ...uint32) {
	if len(arrays) == 0 {
		return
	}
	n := int32(len(arrays))
	a := [2]unsafe.Pointer{unsafe.Pointer(&n), unsafe.Pointer(&arrays[0])}
	_ = ffi.CallFunction(c.cifFor("v(s32,p)", vd, s32, ptr), c.glDeleteVertexArrays, nil, a[:])
}

func (c *Context) BindVertexArray(array uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&array)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glBindVertexArray, nil, a[:])
}

// --- Shaders / programs ---

func (c *Context) CreateShader(shaderType uint32) uint32 {
	var result uint32
	a := [1]unsafe.Pointer{unsafe.Pointer(&shaderType)}
	_ = ffi.CallFunction(c.cifFor("u(u)", u32, u32), c.glCreateShader, unsafe.Pointer(&result), a[:])
	return result
}

func (c *Context) ShaderSource(shader uint32, source string) {
	csource, free := cString(source)
	defer free()
	count := int32(1)
	length := int32(len(source))
	a := [4]unsafe.Pointer{
		unsafe.Pointer(&shader), unsafe.Pointer(&count), unsafe.Pointer(&csource), unsafe.Pointer(&length),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,p,p)", vd, u32, s32, ptr, ptr), c.glShaderSource, nil, a[:])
}

func (c *Context) CompileShader(shader uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&shader)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glCompileShader, nil, a[:])
}

func (c *Context) GetShaderiv(shader, pname uint32) int32 {
	var result int32
	a := [3]unsafe.Pointer{unsafe.Pointer(&shader), unsafe.Pointer(&pname), unsafe.Pointer(&result)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,p)", vd, u32, u32, ptr), c.glGetShaderiv, nil, a[:])
	return result
}

func (c *Context) GetShaderInfoLog(shader uint32) string {
	length := c.GetShaderiv(shader, INFO_LOG_LENGTH)
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	var written int32
	a := [4]unsafe.Pointer{
		unsafe.Pointer(&shader), unsafe.Pointer(&length), unsafe.Pointer(&written), unsafe.Pointer(&buf[0]),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,p,p)", vd, u32, s32, ptr, ptr), c.glGetShaderInfoLog, nil, a[:])
	if written <= 0 {
		return ""
	}
	return string(buf[:written])
}

func (c *Context) DeleteShader(shader uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&shader)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glDeleteShader, nil, a[:])
}

// ShaderBinary loads SPIR-V bytecode into shader via the
// SHADER_BINARY_FORMAT_SPIR_V path; call SpecializeShader afterward.
func (c *Context) ShaderBinary(shader uint32, binaryFormat uint32, binary []byte) {
	if len(binary) == 0 {
		return
	}
	one := int32(1)
	length := int32(len(binary))
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&one), unsafe.Pointer(&shader), unsafe.Pointer(&binaryFormat),
		unsafe.Pointer(&binary[0]), unsafe.Pointer(&length),
	}
	_ = ffi.CallFunction(c.cifFor("v(s32,p,u,p,s32)", vd, s32, ptr, u32, ptr, s32), c.glShaderBinary, nil, a[:])
}

func (c *Context) SpecializeShader(shader uint32, entryPoint string, constantIndices, constantValues []uint32) {
	cep, free := cString(entryPoint)
	defer free()
	numEntries := uint32(len(constantIndices))
	var idxPtr, valPtr unsafe.Pointer
	if numEntries > 0 {
		idxPtr = unsafe.Pointer(&constantIndices[0])
		valPtr = unsafe.Pointer(&constantValues[0])
	}
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&shader), unsafe.Pointer(&cep), unsafe.Pointer(&numEntries), idxPtr, valPtr,
	}
	_ = ffi.CallFunction(c.cifFor("v(u,p,u,p,p)", vd, u32, ptr, u32, ptr, ptr), c.glSpecializeShader, nil, a[:])
}

func (c *Context) CreateProgram() uint32 {
	var result uint32
	_ = ffi.CallFunction(c.cifFor("u()", u32), c.glCreateProgram, unsafe.Pointer(&result), nil)
	return result
}

func (c *Context) AttachShader(program, shader uint32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&program), unsafe.Pointer(&shader)}
	_ = ffi.CallFunction(c.cifFor("v(u,u)", vd, u32, u32), c.glAttachShader, nil, a[:])
}

func (c *Context) LinkProgram(program uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&program)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glLinkProgram, nil, a[:])
}

func (c *Context) GetProgramiv(program, pname uint32) int32 {
	var result int32
	a := [3]unsafe.Pointer{unsafe.Pointer(&program), unsafe.Pointer(&pname), unsafe.Pointer(&result)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,p)", vd, u32, u32, ptr), c.glGetProgramiv, nil, a[:])
	return result
}

func (c *Context) GetProgramInfoLog(program uint32) string {
	length := c.GetProgramiv(program, INFO_LOG_LENGTH)
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	var written int32
	a := [4]unsafe.Pointer{
		unsafe.Pointer(&program), unsafe.Pointer(&length), unsafe.Pointer(&written), unsafe.Pointer(&buf[0]),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,p,p)", vd, u32, s32, ptr, ptr), c.glGetProgramInfoLog, nil, a[:])
	if written <= 0 {
		return ""
	}
	return string(buf[:written])
}

func (c *Context) UseProgram(program uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&program)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glUseProgram, nil, a[:])
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	cname, free := cString(name)
	defer free()
	var result int32
	a := [2]unsafe.Pointer{unsafe.Pointer(&program), unsafe.Pointer(&cname)}
	_ = ffi.CallFunction(c.cifFor("s32(u,p)", s32, u32, ptr), c.glGetUniformLocation, unsafe.Pointer(&result), a[:])
	return result
}

func (c *Context) GetUniformBlockIndex(program uint32, name string) uint32 {
	cname, free := cString(name)
	defer free()
	var result uint32
	a := [2]unsafe.Pointer{unsafe.Pointer(&program), unsafe.Pointer(&cname)}
	_ = ffi.CallFunction(c.cifFor("u(u,p)", u32, u32, ptr), c.glGetUniformBlockIndex, unsafe.Pointer(&result), a[:])
	return result
}

func (c *Context) GetProgramResourceIndex(program, programInterface uint32, name string) uint32 {
	cname, free := cString(name)
	defer free()
	var result uint32
	a := [3]unsafe.Pointer{unsafe.Pointer(&program), unsafe.Pointer(&programInterface), unsafe.Pointer(&cname)}
	_ = ffi.CallFunction(c.cifFor("u(u,u,p)", u32, u32, u32, ptr), c.glGetProgramResourceIndex, unsafe.Pointer(&result), a[:])
	return result
}

func (c *Context) UniformBlockBinding(program, blockIndex, blockBinding uint32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&program), unsafe.Pointer(&blockIndex), unsafe.Pointer(&blockBinding)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u)", vd, u32, u32, u32), c.glUniformBlockBinding, nil, a[:])
}

func (c *Context) ShaderStorageBlockBinding(program, storageBlockIndex, storageBlockBinding uint32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&program), unsafe.Pointer(&storageBlockIndex), unsafe.Pointer(&storageBlockBinding)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u)", vd, u32, u32, u32), c.glShaderStorageBlockBinding, nil, a[:])
}

func (c *Context) ProgramUniform1i(program uint32, location, v0 int32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&program), unsafe.Pointer(&location), unsafe.Pointer(&v0)}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,s32)", vd, u32, s32, s32), c.glProgramUniform1i, nil, a[:])
}

func (c *Context) DeleteProgram(program uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&program)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glDeleteProgram, nil, a[:])
}

// --- Draw / dispatch ---

func (c *Context) DrawArrays(mode uint32, first, count int32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&mode), unsafe.Pointer(&first), unsafe.Pointer(&count)}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,s32)", vd, u32, s32, s32), c.glDrawArrays, nil, a[:])
}

func (c *Context) DrawArraysInstancedBaseInstance(mode uint32, first, count, instanceCount, baseInstance int32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&mode), unsafe.Pointer(&first), unsafe.Pointer(&count),
		unsafe.Pointer(&instanceCount), unsafe.Pointer(&baseInstance),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,s32,s32,s32)", vd, u32, s32, s32, s32, s32), c.glDrawArraysInstancedBaseInstance, nil, a[:])
}

func (c *Context) DrawElementsBaseVertex(mode uint32, count int32, typ uint32, indices uintptr, baseVertex int32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&mode), unsafe.Pointer(&count), unsafe.Pointer(&typ),
		unsafe.Pointer(&indices), unsafe.Pointer(&baseVertex),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,u,u64,s32)", vd, u32, s32, u32, u64, s32), c.glDrawElementsBaseVertex, nil, a[:])
}

func (c *Context) DrawElementsInstancedBaseVertexBaseInstance(mode uint32, count int32, typ uint32, indices uintptr, instanceCount, baseVertex int32, baseInstance uint32) {
	a := [7]unsafe.Pointer{
		unsafe.Pointer(&mode), unsafe.Pointer(&count), unsafe.Pointer(&typ), unsafe.Pointer(&indices),
		unsafe.Pointer(&instanceCount), unsafe.Pointer(&baseVertex), unsafe.Pointer(&baseInstance),
	}
	cif := c.cifFor("v(u,s32,u,u64,s32,s32,u)", vd, u32, s32, u32, u64, s32, s32, u32)
	_ = ffi.CallFunction(cif, c.glDrawElementsInstancedBaseVertexBaseInstance, nil, a[:])
}

func (c *Context) MultiDrawArraysIndirect(mode uint32, indirect uintptr, drawCount, stride int32) {
	a := [4]unsafe.Pointer{unsafe.Pointer(&mode), unsafe.Pointer(&indirect), unsafe.Pointer(&drawCount), unsafe.Pointer(&stride)}
	_ = ffi.CallFunction(c.cifFor("v(u,u64,s32,s32)", vd, u32, u64, s32, s32), c.glMultiDrawArraysIndirect, nil, a[:])
}

func (c *Context) MultiDrawElementsIndirect(mode, typ uint32, indirect uintptr, drawCount, stride int32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&mode), unsafe.Pointer(&typ), unsafe.Pointer(&indirect),
		unsafe.Pointer(&drawCount), unsafe.Pointer(&stride),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u64,s32,s32)", vd, u32, u32, u64, s32, s32), c.glMultiDrawElementsIndirect, nil, a[:])
}

func (c *Context) DispatchCompute(numGroupsX, numGroupsY, numGroupsZ uint32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&numGroupsX), unsafe.Pointer(&numGroupsY), unsafe.Pointer(&numGroupsZ)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u)", vd, u32, u32, u32), c.glDispatchCompute, nil, a[:])
}

func (c *Context) DispatchComputeIndirect(indirect uintptr) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&indirect)}
	_ = ffi.CallFunction(c.cifFor("v(u64)", vd, u64), c.glDispatchComputeIndirect, nil, a[:])
}

// --- Fixed-function state ---

func (c *Context) Enable(capability uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&capability)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glEnable, nil, a[:])
}

func (c *Context) Disable(capability uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&capability)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glDisable, nil, a[:])
}

func (c *Context) BlendFuncSeparatei(buf uint32, srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&buf), unsafe.Pointer(&srcRGB), unsafe.Pointer(&dstRGB),
		unsafe.Pointer(&srcAlpha), unsafe.Pointer(&dstAlpha),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u,u,u)", vd, u32, u32, u32, u32, u32), c.glBlendFuncSeparatei, nil, a[:])
}

func (c *Context) BlendEquationSeparatei(buf, modeRGB, modeAlpha uint32) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&buf), unsafe.Pointer(&modeRGB), unsafe.Pointer(&modeAlpha)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u)", vd, u32, u32, u32), c.glBlendEquationSeparatei, nil, a[:])
}

func (c *Context) ColorMaski(buf uint32, r, g, b, a bool) {
	ur, ug, ub, ua := boolToUint32(r), boolToUint32(g), boolToUint32(b), boolToUint32(a)
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&buf), unsafe.Pointer(&ur), unsafe.Pointer(&ug), unsafe.Pointer(&ub), unsafe.Pointer(&ua),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u,u,u)", vd, u32, u32, u32, u32, u32), c.glColorMaski, nil, args[:])
}

func (c *Context) DepthFunc(fn uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&fn)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glDepthFunc, nil, a[:])
}

func (c *Context) DepthMask(flag bool) {
	f := boolToUint32(flag)
	a := [1]unsafe.Pointer{unsafe.Pointer(&f)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glDepthMask, nil, a[:])
}

func (c *Context) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	a := [4]unsafe.Pointer{unsafe.Pointer(&face), unsafe.Pointer(&fn), unsafe.Pointer(&ref), unsafe.Pointer(&mask)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,s32,u)", vd, u32, u32, s32, u32), c.glStencilFuncSeparate, nil, a[:])
}

func (c *Context) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	a := [4]unsafe.Pointer{unsafe.Pointer(&face), unsafe.Pointer(&sfail), unsafe.Pointer(&dpfail), unsafe.Pointer(&dppass)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,u,u)", vd, u32, u32, u32, u32), c.glStencilOpSeparate, nil, a[:])
}

func (c *Context) StencilMaskSeparate(face, mask uint32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&face), unsafe.Pointer(&mask)}
	_ = ffi.CallFunction(c.cifFor("v(u,u)", vd, u32, u32), c.glStencilMaskSeparate, nil, a[:])
}

func (c *Context) CullFace(mode uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&mode)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glCullFace, nil, a[:])
}

func (c *Context) FrontFace(mode uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&mode)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glFrontFace, nil, a[:])
}

func (c *Context) PolygonOffset(factor, units float32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&factor), unsafe.Pointer(&units)}
	_ = ffi.CallFunction(c.cifFor("v(f32,f32)", vd, f32, f32), c.glPolygonOffset, nil, a[:])
}

func (c *Context) LineWidth(width float32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&width)}
	_ = ffi.CallFunction(c.cifFor("v(f32)", vd, f32), c.glLineWidth, nil, a[:])
}

func (c *Context) ViewportIndexedf(index uint32, x, y, w, h float32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&index), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&w), unsafe.Pointer(&h),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,f32,f32,f32,f32)", vd, u32, f32, f32, f32, f32), c.glViewportIndexedf, nil, a[:])
}

func (c *Context) DepthRangeIndexed(index uint32, near, far float64) {
	a := [3]unsafe.Pointer{unsafe.Pointer(&index), unsafe.Pointer(&near), unsafe.Pointer(&far)}
	_ = ffi.CallFunction(c.cifFor("v(u,f64,f64)", vd, u32, f64, f64), c.glDepthRangeIndexed, nil, a[:])
}

func (c *Context) ScissorIndexed(index uint32, left, bottom, width, height int32) {
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&index), unsafe.Pointer(&left), unsafe.Pointer(&bottom), unsafe.Pointer(&width), unsafe.Pointer(&height),
	}
	_ = ffi.CallFunction(c.cifFor("v(u,s32,s32,s32,s32)", vd, u32, s32, s32, s32, s32), c.glScissorIndexed, nil, a[:])
}

func (c *Context) MemoryBarrier(barriers uint32) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&barriers)}
	_ = ffi.CallFunction(c.cifFor("v(u)", vd, u32), c.glMemoryBarrier, nil, a[:])
}

// SupportsDebugOutput reports whether glDebugMessageCallback resolved. A
// debug Device enables GL_DEBUG_OUTPUT only when it did; no callback is
// installed through DebugMessageCallback.
func (c *Context) SupportsDebugOutput() bool {
	return c.glDebugMessageCallback != nil
}

func (c *Context) DebugMessageCallback(callback unsafe.Pointer, userParam unsafe.Pointer) {
	a := [2]unsafe.Pointer{callback, userParam}
	_ = ffi.CallFunction(c.cifFor("v(p,p)", vd, ptr, ptr), c.glDebugMessageCallback, nil, a[:])
}

// --- Sync ---

func (c *Context) FenceSync(condition, flags uint32) uintptr {
	var result uintptr
	a := [2]unsafe.Pointer{unsafe.Pointer(&condition), unsafe.Pointer(&flags)}
	_ = ffi.CallFunction(c.cifFor("p(u,u)", ptr, u32, u32), c.glFenceSync, unsafe.Pointer(&result), a[:])
	return result
}

func (c *Context) DeleteSync(sync uintptr) {
	a := [1]unsafe.Pointer{unsafe.Pointer(&sync)}
	_ = ffi.CallFunction(c.cifFor("v(p)", vd, ptr), c.glDeleteSync, nil, a[:])
}

func (c *Context) ClientWaitSync(sync uintptr, flags uint32, timeout uint64) uint32 {
	var result uint32
	a := [3]unsafe.Pointer{unsafe.Pointer(&sync), unsafe.Pointer(&flags), unsafe.Pointer(&timeout)}
	_ = ffi.CallFunction(c.cifFor("u(p,u,u64)", u32, ptr, u32, u64), c.glClientWaitSync, unsafe.Pointer(&result), a[:])
	return result
}

func (c *Context) GetSynciv(sync uintptr, pname uint32, bufSize int32) (values []int32) {
	values = make([]int32, bufSize)
	var length int32
	a := [5]unsafe.Pointer{
		unsafe.Pointer(&sync), unsafe.Pointer(&pname), unsafe.Pointer(&bufSize),
		unsafe.Pointer(&length), unsafe.Pointer(&values[0]),
	}
	_ = ffi.CallFunction(c.cifFor("v(p,u,s32,p,p)", vd, ptr, u32, s32, ptr, ptr), c.glGetSynciv, nil, a[:])
	return values[:length]
}

// --- Misc ---

func (c *Context) GetString(name uint32) string {
	var str uintptr
	a := [1]unsafe.Pointer{unsafe.Pointer(&name)}
	_ = ffi.CallFunction(c.cifFor("p(u)", ptr, u32), c.glGetString, unsafe.Pointer(&str), a[:])
	return goString(str)
}

func (c *Context) GetStringi(name uint32, index uint32) string {
	var str uintptr
	a := [2]unsafe.Pointer{unsafe.Pointer(&name), unsafe.Pointer(&index)}
	_ = ffi.CallFunction(c.cifFor("p(u,u)", ptr, u32, u32), c.glGetStringi, unsafe.Pointer(&str), a[:])
	return goString(str)
}

func (c *Context) GetIntegerv(pname uint32, data *int32) {
	a := [2]unsafe.Pointer{unsafe.Pointer(&pname), unsafe.Pointer(data)}
	_ = ffi.CallFunction(c.cifFor("v(u,p)", vd, u32, ptr), c.glGetIntegerv, nil, a[:])
}

// GetInteger is a convenience wrapper over GetIntegerv for the common case
// of a single integer query.
func (c *Context) GetInteger(pname uint32) int32 {
	var v int32
	c.GetIntegerv(pname, &v)
	return v
}

// GetIntegeri queries the indexed form of an integer state variable, used
// for the per-axis GL_MAX_COMPUTE_WORK_GROUP_SIZE/COUNT limits that
// glGetIntegerv cannot express (there is no scalar "the" work-group size).
func (c *Context) GetIntegeri(pname, index uint32) int32 {
	var v int32
	a := [3]unsafe.Pointer{unsafe.Pointer(&pname), unsafe.Pointer(&index), unsafe.Pointer(&v)}
	_ = ffi.CallFunction(c.cifFor("v(u,u,p)", vd, u32, u32, ptr), c.glGetIntegeri_v, nil, a[:])
	return v
}

func (c *Context) GetError() uint32 {
	var result uint32
	_ = ffi.CallFunction(c.cifFor("u()", u32), c.glGetError, unsafe.Pointer(&result), nil)
	return result
}

func (c *Context) Flush() {
	_ = ffi.CallFunction(c.cifFor("v()", vd), c.glFlush, nil, nil)
}

func (c *Context) Finish() {
	_ = ffi.CallFunction(c.cifFor("v()", vd), c.glFinish, nil, nil)
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
