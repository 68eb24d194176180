// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rhi

// Handle is an opaque GPU object identifier. Zero is reserved: for
// framebuffers it denotes the default (presentable) framebuffer, elsewhere
// it denotes "none / invalid".
type Handle uint32

// BufferUsage is a bitmask of how a buffer will be used. A buffer's GL
// target and storage flags are derived from this.
type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageConstant // uniform buffer
	BufferUsageStructured
	BufferUsageUnorderedAccess // shader storage buffer
	BufferUsageIndirectArgs
	BufferUsageCopySrc
	BufferUsageCopyDst
)

// MemoryType selects the buffer's residency and CPU-visibility.
type MemoryType int

const (
	MemoryDefault MemoryType = iota // device-local, not CPU mappable
	MemoryUpload                    // CPU-write, persistently mapped
	MemoryReadback                  // CPU-read, persistently mapped
)

// TextureDimension is the logical shape of a texture.
type TextureDimension int

const (
	Texture1D TextureDimension = iota
	Texture2D
	Texture3D
	TextureCube
)

// TextureUsage is a bitmask describing how a texture will be bound.
type TextureUsage uint32

const (
	TextureUsageSampled TextureUsage = 1 << iota
	TextureUsageStorage
	TextureUsageRenderTarget
	TextureUsageDepthStencil
	TextureUsageCopySrc
	TextureUsageCopyDst
)

// TextureFormat enumerates the subset of GL internal formats the backend
// understands. Values are intentionally small and dense; the backend maps
// each to a (internalformat, format, type) GL triple.
type TextureFormat int

const (
	FormatUnknown TextureFormat = iota
	FormatR8Unorm
	FormatRG8Unorm
	FormatRGBA8Unorm
	FormatRGBA8UnormSRGB
	FormatBGRA8Unorm
	FormatR16Float
	FormatRG16Float
	FormatRGBA16Float
	FormatR32Float
	FormatRG32Float
	FormatRGBA32Float
	FormatR32Uint
	FormatRGBA8Uint
	FormatDepth16Unorm
	FormatDepth24Plus
	FormatDepth24PlusStencil8
	FormatDepth32Float
	FormatDepth32FloatStencil8
)

// IsDepthStencil reports whether format names a depth or depth-stencil
// format (as opposed to a color format).
func (f TextureFormat) IsDepthStencil() bool {
	switch f {
	case FormatDepth16Unorm, FormatDepth24Plus, FormatDepth24PlusStencil8,
		FormatDepth32Float, FormatDepth32FloatStencil8:
		return true
	}
	return false
}

// HasStencil reports whether format carries a stencil plane.
func (f TextureFormat) HasStencil() bool {
	return f == FormatDepth24PlusStencil8 || f == FormatDepth32FloatStencil8
}

// PrimitiveTopology selects the primitive assembly mode for a draw.
type PrimitiveTopology int

const (
	TopologyPointList PrimitiveTopology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
)

// IndexFormat is the element type of an index buffer.
type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// CompareFunction is a depth/stencil comparison function.
type CompareFunction int

const (
	CompareNever CompareFunction = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// StencilOp is a stencil update operation.
type StencilOp int

const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrementClamp
	StencilOpDecrementClamp
	StencilOpInvert
	StencilOpIncrementWrap
	StencilOpDecrementWrap
)

// BlendFactor is a source/destination blend multiplier.
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorConstantColor
	BlendFactorOneMinusConstantColor
)

// BlendOp is a blend equation.
type BlendOp int

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// CullMode selects which primitive winding is culled.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FrontFace selects the winding order considered front-facing.
type FrontFace int

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// LoadOp is a render-pass attachment load operation.
type LoadOp int

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp is a render-pass attachment store operation.
type StoreOp int

const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// DescriptorKind identifies the class of a descriptor-set binding. Each
// kind is assigned GL binding indices from its own independent counter.
type DescriptorKind int

const (
	DescriptorUniformBuffer DescriptorKind = iota
	DescriptorDynamicUniformBuffer
	DescriptorStorageBuffer
	DescriptorDynamicStorageBuffer
	DescriptorSampledTexture
	DescriptorCombinedTextureSampler
	DescriptorSampler
	DescriptorStorageTexture
)

// WholeSize, passed as a descriptor range, means "from offset to the end of
// the buffer".
const WholeSize uint64 = ^uint64(0)

// ResourceState names a point in the GPU pipeline a resource is used at, for
// barrier translation (spec §4.9 "Barriers"). OpenGL has no per-resource
// barrier primitive; CommandContext.Barriers translates these into
// glMemoryBarrier bits.
type ResourceState int

const (
	StateUndefined ResourceState = iota
	StateUnorderedAccess
	StateVertexBuffer
	StateIndexBuffer
	StateConstantBuffer
	StateShaderResource
	StateIndirectArgument
	StateCopySource
	StateCopyDest
	StateRenderTarget
	StateDepthWrite
	StateDepthRead
	StatePresent
)

// ShaderStage identifies a single programmable stage.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageGeometry
	StageHull
	StageDomain
	StageCompute
)

// ShaderSourceKind selects how a Shader's bytes are interpreted.
type ShaderSourceKind int

const (
	ShaderSourceGLSL ShaderSourceKind = iota
	ShaderSourceSPIRV
)
