// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rhi

// BufferDescriptor describes a buffer to be created.
type BufferDescriptor struct {
	Label string
	Size  uint64
	Usage BufferUsage
	Mem   MemoryType
}

// TextureDescriptor describes a texture to be created.
type TextureDescriptor struct {
	Label       string
	Dimension   TextureDimension
	Format      TextureFormat
	Width       uint32
	Height      uint32
	DepthOrArrayLayers uint32
	MipLevelCount      uint32
	SampleCount        uint32 // 1 for non-multisampled
	Usage              TextureUsage
}

// TextureViewDescriptor describes a view over an existing texture. A view
// with zero MipLevelCount/ArrayLayerCount spans the whole of the source
// texture starting at BaseMipLevel/BaseArrayLayer.
type TextureViewDescriptor struct {
	Label           string
	Format          TextureFormat
	Dimension       TextureDimension
	BaseMipLevel    uint32
	MipLevelCount   uint32
	BaseArrayLayer  uint32
	ArrayLayerCount uint32
}

// SamplerDescriptor describes a texture sampler.
type SamplerDescriptor struct {
	Label         string
	AddressModeU  AddressMode
	AddressModeV  AddressMode
	AddressModeW  AddressMode
	MagFilter     FilterMode
	MinFilter     FilterMode
	MipmapFilter  FilterMode
	LODMinClamp   float32
	LODMaxClamp   float32
	Compare       CompareFunction
	CompareEnable bool
	MaxAnisotropy uint16
	BorderColor   [4]float32
}

// AddressMode is a texture coordinate wrap mode.
type AddressMode int

const (
	AddressRepeat AddressMode = iota
	AddressMirrorRepeat
	AddressClampToEdge
	AddressClampToBorder
)

// FilterMode is a texture sampling filter.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// ShaderDescriptor describes a single shader stage module.
type ShaderDescriptor struct {
	Label      string
	Stage      ShaderStage
	SourceKind ShaderSourceKind
	Source     []byte // GLSL source text, or SPIR-V bytecode
	EntryPoint string  // required for ShaderSourceSPIRV
}

// DescriptorBindingLayout describes one binding slot within a descriptor
// set layout.
type DescriptorBindingLayout struct {
	Binding uint32
	Kind    DescriptorKind
	Stages  ShaderStageMask
	Count   uint32 // array size, 1 for a scalar binding
}

// ShaderStageMask is a bitmask of ShaderStage values a binding is visible to.
type ShaderStageMask uint32

// StageBit returns the ShaderStageMask bit for a single stage.
func StageBit(s ShaderStage) ShaderStageMask {
	return 1 << ShaderStageMask(s)
}

// DescriptorSetLayoutDescriptor describes the bindings of a descriptor set.
type DescriptorSetLayoutDescriptor struct {
	Label    string
	Bindings []DescriptorBindingLayout
}

// BufferBinding binds a buffer range to a descriptor slot.
type BufferBinding struct {
	Buffer Handle
	Offset uint64
	Size   uint64 // WholeSize means "to the end of the buffer"
}

// TextureBinding binds a texture view to a descriptor slot.
type TextureBinding struct {
	View    Handle
	Sampler Handle // used only for DescriptorCombinedTextureSampler
}

// DescriptorSetEntry resolves one binding in a DescriptorSetDescriptor.
type DescriptorSetEntry struct {
	Binding uint32
	Buffer  *BufferBinding
	Texture *TextureBinding
	Sampler *Handle
}

// DescriptorSetDescriptor describes a descriptor set to be allocated against
// a layout.
type DescriptorSetDescriptor struct {
	Label   string
	Layout  Handle
	Entries []DescriptorSetEntry
}

// VertexAttribute describes one vertex input attribute.
type VertexAttribute struct {
	ShaderLocation uint32
	Format         VertexFormat
	Offset         uint32
}

// VertexFormat is the scalar/vector layout of a vertex attribute.
type VertexFormat int

const (
	VertexFormatFloat32 VertexFormat = iota
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
	VertexFormatUint32
	VertexFormatUint32x2
	VertexFormatUint32x4
	VertexFormatSint32
	VertexFormatUnorm8x4
	VertexFormatSnorm8x4
)

// VertexStepMode selects whether a vertex buffer advances per-vertex or
// per-instance.
type VertexStepMode int

const (
	StepModeVertex VertexStepMode = iota
	StepModeInstance
)

// VertexBufferLayout describes one vertex buffer binding slot.
type VertexBufferLayout struct {
	Stride     uint64
	StepMode   VertexStepMode
	Attributes []VertexAttribute
}

// ColorTargetState describes blending and write-mask for one color
// attachment.
type ColorTargetState struct {
	Format        TextureFormat
	BlendEnable   bool
	SrcColorBlend BlendFactor
	DstColorBlend BlendFactor
	ColorOp       BlendOp
	SrcAlphaBlend BlendFactor
	DstAlphaBlend BlendFactor
	AlphaOp       BlendOp
	WriteMask     ColorWriteMask
}

// ColorWriteMask is a bitmask of color channels a draw is allowed to write.
type ColorWriteMask uint8

const (
	ColorWriteRed ColorWriteMask = 1 << iota
	ColorWriteGreen
	ColorWriteBlue
	ColorWriteAlpha
	ColorWriteAll = ColorWriteRed | ColorWriteGreen | ColorWriteBlue | ColorWriteAlpha
)

// DepthStencilState describes depth and stencil test configuration.
type DepthStencilState struct {
	Format            TextureFormat
	DepthWriteEnabled bool
	DepthCompare      CompareFunction
	StencilEnabled    bool
	StencilReadMask   uint32
	StencilWriteMask  uint32
	StencilFront      StencilFaceState
	StencilBack       StencilFaceState
	DepthBias         int32
	DepthBiasSlope    float32
	DepthBiasClamp    float32
}

// StencilFaceState describes the stencil test for one triangle winding.
type StencilFaceState struct {
	Compare     CompareFunction
	FailOp      StencilOp
	DepthFailOp StencilOp
	PassOp      StencilOp
}

// RasterizerState describes fixed-function rasterization.
type RasterizerState struct {
	CullMode  CullMode
	FrontFace FrontFace
	Wireframe bool
}

// GraphicsPipelineDescriptor describes a graphics pipeline: a linked program
// plus the fixed-function state a draw call needs.
type GraphicsPipelineDescriptor struct {
	Label        string
	Layout       Handle // PipelineLayout / DescriptorSetLayout set
	VertexShader Handle
	FragmentShader Handle
	Topology     PrimitiveTopology
	VertexBuffers []VertexBufferLayout
	ColorTargets  []ColorTargetState
	DepthStencil  *DepthStencilState
	Rasterizer    RasterizerState
	SampleCount   uint32
}

// ComputePipelineDescriptor describes a compute pipeline: a single compute
// shader and its descriptor set layout.
type ComputePipelineDescriptor struct {
	Label         string
	Layout        Handle
	ComputeShader Handle
}

// ColorAttachment describes one render-pass color attachment.
type ColorAttachment struct {
	View       Handle
	ResolveView Handle
	Load       LoadOp
	Store      StoreOp
	ClearColor [4]float32
}

// DepthStencilAttachment describes a render-pass depth-stencil attachment.
type DepthStencilAttachment struct {
	View           Handle
	DepthLoad      LoadOp
	DepthStore     StoreOp
	ClearDepth     float32
	StencilLoad    LoadOp
	StencilStore   StoreOp
	ClearStencil   uint32
}

// RenderPassDescriptor describes a render pass: the attachment set a
// CommandContext renders into between BeginRenderPass/EndRenderPass.
type RenderPassDescriptor struct {
	Label         string
	ColorAttachments []ColorAttachment
	DepthStencil     *DepthStencilAttachment
}

// Barrier describes a single resource-state transition a CommandContext
// must account for before the next GPU operation observes the resource.
type Barrier struct {
	Resource Handle
	Before   ResourceState
	After    ResourceState
}

// DeviceDescriptor configures a Device at construction.
type DeviceDescriptor struct {
	Label string
	// Debug enables the debug tracker and, when the driver exposes
	// glDebugMessageCallback, GL_DEBUG_OUTPUT and GL_DEBUG_OUTPUT_SYNCHRONOUS.
	// No debug message callback is installed and no post-call glGetError
	// check is made. The tracker's bookkeeping adds per-call overhead.
	Debug bool
	// FramesInFlight overrides DeletionQueue's default depth. Zero selects
	// the backend's default.
	FramesInFlight int
}

// QueueType identifies which GL command stream a CommandContext targets.
// OpenGL has a single implicit command stream, so this only affects
// validation (a Copy context rejects Draw/Dispatch calls, and so on) rather
// than selecting a distinct hardware queue.
type QueueType int

const (
	QueueGraphics QueueType = iota
	QueueCompute
	QueueCopy
)

// CommandContextDescriptor describes a command context to be created.
type CommandContextDescriptor struct {
	Label string
	Queue QueueType
}

// Viewport describes a single viewport rectangle and depth range.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float64
}

// Rect2D describes an integer-pixel rectangle, used for scissor boxes and
// render-pass/swap-chain extents.
type Rect2D struct {
	X, Y          int32
	Width, Height uint32
}

// SwapChainDescriptor describes a presentable surface a SwapChain wraps.
type SwapChainDescriptor struct {
	Label  string
	Width  uint32
	Height uint32
	Format TextureFormat
	// PresentFunc swaps the host window's front and back buffers (e.g.
	// eglSwapBuffers/wglSwapBuffers/SDL_GL_SwapWindow). Required.
	PresentFunc func() error
	// SurfaceSizeFunc reports the host window's current framebuffer size in
	// pixels, so Resize can be driven by the host's own resize event instead
	// of duplicating its tracking. Optional; when nil, Resize must be called
	// explicitly.
	SurfaceSizeFunc func() (width, height uint32)
}

// Capabilities reports device limits and optional extension support,
// queried once at device construction.
type Capabilities struct {
	MaxTextureSize              uint32
	MaxColorAttachments         uint32
	MaxUniformBufferBindings    uint32
	MaxShaderStorageBufferBindings uint32
	MaxComputeWorkGroupSize     [3]uint32
	MaxComputeWorkGroupCount    [3]uint32
	MaxComputeWorkGroupInvocations uint32
	MaxVertexAttributes         uint32
	MaxSamples                  uint32
	MultiBindSupported          bool
	BindlessTextureSupported    bool
	SparseTextureSupported      bool
	AnisotropicFilteringSupported bool
	DebugOutputSupported        bool
	GLVersion                   string
	GLSLVersion                 string
	Vendor                      string
	Renderer                    string
}
