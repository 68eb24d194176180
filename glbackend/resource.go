// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

// Buffer is a GL named buffer object plus the bookkeeping the spec's
// resource model needs on top of it: its usage/memory class, and (for
// Upload/Readback buffers) the persistent pointer obtained at creation.
// Grounded on hal/gles/resource.go's Buffer, restructured around
// glCreateBuffers/glNamedBufferStorage DSA instead of the teacher's
// bind-then-glBufferData path.
type Buffer struct {
	Name    uint32
	Size    uint64
	Usage   rhi.BufferUsage
	Mem     rhi.MemoryType
	Target  uint32
	mapped  unsafe.Pointer // non-nil for the whole lifetime of Upload/Readback buffers
}

// CreateBuffer allocates a buffer per desc. Upload and Readback buffers are
// persistently mapped immediately, matching spec §4.1's "CPU-visible
// buffers are mapped once and never unmapped" rule.
func CreateBuffer(ctx *gl.Context, desc rhi.BufferDescriptor) (*Buffer, error) {
	if desc.Size == 0 {
		return nil, NewValidationError("Buffer", "Size", "must be non-zero")
	}
	name := ctx.CreateBuffers(1)
	flags := bufferStorageFlags(desc.Mem)
	ctx.NamedBufferStorage(name, int(desc.Size), nil, flags)

	b := &Buffer{
		Name:   name,
		Size:   desc.Size,
		Usage:  desc.Usage,
		Mem:    desc.Mem,
		Target: bufferTarget(desc.Usage),
	}

	if desc.Mem == rhi.MemoryUpload || desc.Mem == rhi.MemoryReadback {
		access := bufferMapAccess(desc.Mem)
		b.mapped = ctx.MapNamedBufferRange(name, 0, int(desc.Size), access)
		if b.mapped == nil {
			ctx.DeleteBuffers(name)
			return nil, fmt.Errorf("glbackend: failed to persistently map buffer of size %d", desc.Size)
		}
	}
	return b, nil
}

// MappedPointer returns the buffer's persistent CPU pointer, or an error if
// the buffer was not created with a mappable memory type.
func (b *Buffer) MappedPointer() (unsafe.Pointer, error) {
	if b.mapped == nil {
		return nil, ErrBufferNotMappable
	}
	return b.mapped, nil
}

// Write copies data into the buffer at offset. Upload buffers write through
// the persistent mapping; Default buffers go through NamedBufferSubData.
func (b *Buffer) Write(ctx *gl.Context, offset uint64, data []byte) error {
	if offset+uint64(len(data)) > b.Size {
		return NewValidationErrorf("Buffer", "offset", "write of %d bytes at offset %d exceeds buffer size %d", len(data), offset, b.Size)
	}
	if len(data) == 0 {
		return nil
	}
	if b.mapped != nil {
		dst := unsafe.Add(b.mapped, offset)
		copyBytes(dst, data)
		return nil
	}
	ctx.NamedBufferSubData(b.Name, int(offset), len(data), unsafe.Pointer(&data[0]))
	return nil
}

func copyBytes(dst unsafe.Pointer, src []byte) {
	dstSlice := unsafe.Slice((*byte)(dst), len(src))
	copy(dstSlice, src)
}

// Destroy unmaps (if mapped) and enqueues the buffer name for deferred
// deletion.
func (b *Buffer) Destroy(ctx *gl.Context, dq *DeletionQueue) {
	if b.mapped != nil {
		ctx.UnmapNamedBuffer(b.Name)
		b.mapped = nil
	}
	dq.Queue(ObjectBuffer, b.Name)
}

// Texture is a GL named texture object. Grounded on hal/gles/resource.go's
// Texture, reworked to use glCreateTextures/glTextureStorage* (DSA) in
// place of the teacher's bind-and-glTexStorage* sequence, and to carry the
// fields CommandContext's render-pass and copy paths need (dimensions,
// sample count, format triple).
type Texture struct {
	Name        uint32
	Target      uint32
	Format      rhi.TextureFormat
	glFormat    glFormat
	Width       uint32
	Height      uint32
	Depth       uint32 // depth or array-layer count
	MipLevels   uint32
	SampleCount uint32
	Usage       rhi.TextureUsage
}

// CreateTexture allocates a texture per desc and its immutable storage.
func CreateTexture(ctx *gl.Context, desc rhi.TextureDescriptor) (*Texture, error) {
	gf, err := lookupFormat(desc.Format)
	if err != nil {
		return nil, err
	}
	layers := desc.DepthOrArrayLayers
	if layers == 0 {
		layers = 1
	}
	levels := desc.MipLevelCount
	if levels == 0 {
		levels = 1
	}
	samples := desc.SampleCount
	if samples == 0 {
		samples = 1
	}
	target := textureTarget(desc.Dimension, layers, samples)
	name := ctx.CreateTextures(target, 1)

	switch {
	case samples > 1:
		ctx.TextureStorage2DMultisample(name, int32(samples), gf.Internal, int32(desc.Width), int32(desc.Height), true)
	case desc.Dimension == rhi.Texture3D || (desc.Dimension == rhi.Texture2D && layers > 1) || (desc.Dimension == rhi.TextureCube && layers > 6):
		ctx.TextureStorage3D(name, int32(levels), gf.Internal, int32(desc.Width), int32(desc.Height), int32(layers))
	default:
		ctx.TextureStorage2D(name, int32(levels), gf.Internal, int32(desc.Width), int32(desc.Height))
	}

	return &Texture{
		Name:        name,
		Target:      target,
		Format:      desc.Format,
		glFormat:    gf,
		Width:       desc.Width,
		Height:      desc.Height,
		Depth:       layers,
		MipLevels:   levels,
		SampleCount: samples,
		Usage:       desc.Usage,
	}, nil
}

// Upload writes pixel data into a mip level of the texture.
func (t *Texture) Upload(ctx *gl.Context, level int32, x, y, z, w, h, d int32, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	if t.Depth > 1 || t.Target == gl.TEXTURE_3D {
		ctx.TextureSubImage3D(t.Name, level, x, y, z, w, h, d, t.glFormat.Format, t.glFormat.Type, unsafe.Pointer(&pixels[0]))
		return
	}
	ctx.TextureSubImage2D(t.Name, level, x, y, w, h, t.glFormat.Format, t.glFormat.Type, unsafe.Pointer(&pixels[0]))
}

// GenerateMipmaps regenerates every mip level after level 0 from the base
// level; a texture with a single mip level is left unchanged.
func (t *Texture) GenerateMipmaps(ctx *gl.Context) {
	if t.MipLevels > 1 {
		ctx.GenerateTextureMipmap(t.Name)
	}
}

// Destroy invalidates any cached framebuffers referencing this texture and
// enqueues it for deferred deletion.
func (t *Texture) Destroy(ctx *gl.Context, dq *DeletionQueue, fbo *FboCache, vao *VaoCache) {
	if fbo != nil {
		fbo.InvalidateTexture(t.Name)
	}
	if vao != nil {
		vao.InvalidateBuffer(t.Name) // textures never appear in a VaoKey today, kept symmetric with Buffer.Destroy
	}
	dq.Queue(ObjectTexture, t.Name)
}

// TextureView is either an alias of its source texture (the common case,
// whole-resource 2D/cube views that GL can sample/attach from directly) or
// an owned glTextureView object (for format reinterpretation or a layer
// subrange), matching spec §4.1's view model.
type TextureView struct {
	Name    uint32 // same as Source.Name when Owned is false
	Owned   bool
	Target  uint32
	Source  *Texture
	BaseMip uint32
	MipCount uint32
	BaseLayer uint32
	LayerCount uint32
}

// CreateTextureView builds a view. Whole-resource views with no format
// override are returned as an alias; anything else allocates a real
// glTextureView.
func CreateTextureView(ctx *gl.Context, source *Texture, desc rhi.TextureViewDescriptor) (*TextureView, error) {
	mipCount := desc.MipLevelCount
	if mipCount == 0 {
		mipCount = source.MipLevels - desc.BaseMipLevel
	}
	layerCount := desc.ArrayLayerCount
	if layerCount == 0 {
		layerCount = source.Depth - desc.BaseArrayLayer
	}

	isWhole := desc.BaseMipLevel == 0 && mipCount == source.MipLevels &&
		desc.BaseArrayLayer == 0 && layerCount == source.Depth &&
		(desc.Format == rhi.FormatUnknown || desc.Format == source.Format)

	if isWhole {
		return &TextureView{
			Name: source.Name, Owned: false, Target: source.Target, Source: source,
			BaseMip: 0, MipCount: mipCount, BaseLayer: 0, LayerCount: layerCount,
		}, nil
	}

	format := desc.Format
	if format == rhi.FormatUnknown {
		format = source.Format
	}
	gf, err := lookupFormat(format)
	if err != nil {
		return nil, err
	}
	viewTarget := textureTarget(desc.Dimension, layerCount, source.SampleCount)
	name := ctx.CreateTextures(viewTarget, 1)
	ctx.TextureView(name, viewTarget, source.Name, gf.Internal, desc.BaseMipLevel, mipCount, desc.BaseArrayLayer, layerCount)

	return &TextureView{
		Name: name, Owned: true, Target: viewTarget, Source: source,
		BaseMip: desc.BaseMipLevel, MipCount: mipCount, BaseLayer: desc.BaseArrayLayer, LayerCount: layerCount,
	}, nil
}

// Destroy enqueues the view's own GL name for deletion if it owns one. An
// aliased view destroys nothing: the source texture still owns the name.
func (v *TextureView) Destroy(dq *DeletionQueue) {
	if v.Owned {
		dq.Queue(ObjectTextureView, v.Name)
	}
}

// Sampler is a GL named sampler object, created independent of any texture
// per spec §4.1's sampler/texture decoupling.
type Sampler struct {
	Name uint32
}

var addressModeGL = map[rhi.AddressMode]int32{
	rhi.AddressRepeat:       gl.REPEAT,
	rhi.AddressMirrorRepeat: gl.MIRRORED_REPEAT,
	rhi.AddressClampToEdge:  gl.CLAMP_TO_EDGE,
	rhi.AddressClampToBorder: gl.CLAMP_TO_BORDER,
}

func minFilterGL(min, mip rhi.FilterMode) int32 {
	switch {
	case min == rhi.FilterNearest && mip == rhi.FilterNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case min == rhi.FilterNearest && mip == rhi.FilterLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case min == rhi.FilterLinear && mip == rhi.FilterNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	default:
		return gl.LINEAR_MIPMAP_LINEAR
	}
}

func magFilterGL(mag rhi.FilterMode) int32 {
	if mag == rhi.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

var compareFuncGL = map[rhi.CompareFunction]int32{
	rhi.CompareNever:        gl.NEVER,
	rhi.CompareLess:         gl.LESS,
	rhi.CompareEqual:        gl.EQUAL,
	rhi.CompareLessEqual:    gl.LEQUAL,
	rhi.CompareGreater:      gl.GREATER,
	rhi.CompareNotEqual:     gl.NOTEQUAL,
	rhi.CompareGreaterEqual: gl.GEQUAL,
	rhi.CompareAlways:       gl.ALWAYS,
}

// CreateSampler allocates a sampler and applies desc's filtering, wrap, LOD
// range, anisotropy, and (optionally) shadow-comparison state. anisoSupported
// gates the TEXTURE_MAX_ANISOTROPY parameter on the driver actually
// exposing GL_ARB_texture_filter_anisotropic / GL_EXT_texture_filter_anisotropic.
func CreateSampler(ctx *gl.Context, desc rhi.SamplerDescriptor, anisoSupported bool) *Sampler {
	name := ctx.CreateSamplers(1)
	ctx.SamplerParameteri(name, gl.TEXTURE_MIN_FILTER, minFilterGL(desc.MinFilter, desc.MipmapFilter))
	ctx.SamplerParameteri(name, gl.TEXTURE_MAG_FILTER, magFilterGL(desc.MagFilter))
	ctx.SamplerParameteri(name, gl.TEXTURE_WRAP_S, addressModeGL[desc.AddressModeU])
	ctx.SamplerParameteri(name, gl.TEXTURE_WRAP_T, addressModeGL[desc.AddressModeV])
	ctx.SamplerParameteri(name, gl.TEXTURE_WRAP_R, addressModeGL[desc.AddressModeW])
	ctx.SamplerParameterf(name, gl.TEXTURE_MIN_LOD, desc.LODMinClamp)
	ctx.SamplerParameterf(name, gl.TEXTURE_MAX_LOD, desc.LODMaxClamp)

	if desc.MaxAnisotropy > 1 && anisoSupported {
		ctx.SamplerParameterf(name, gl.TEXTURE_MAX_ANISOTROPY, float32(desc.MaxAnisotropy))
	}

	if desc.AddressModeU == rhi.AddressClampToBorder || desc.AddressModeV == rhi.AddressClampToBorder || desc.AddressModeW == rhi.AddressClampToBorder {
		border := desc.BorderColor
		ctx.SamplerParameterfv(name, gl.TEXTURE_BORDER_COLOR, &border[0])
	}

	if desc.CompareEnable {
		ctx.SamplerParameteri(name, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
		ctx.SamplerParameteri(name, gl.TEXTURE_COMPARE_FUNC, compareFuncGL[desc.Compare])
	}

	return &Sampler{Name: name}
}

// Destroy enqueues the sampler for deferred deletion.
func (s *Sampler) Destroy(dq *DeletionQueue) {
	dq.Queue(ObjectSampler, s.Name)
}
