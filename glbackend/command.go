// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"unsafe"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

// CommandContext records state changes and issues draws/dispatches/copies
// against a Device. Grounded on hal/gles/command.go's CommandEncoder, but
// executes every call immediately against *gl.Context instead of recording
// a replayable Command list: OpenGL's driver already queues and reorders
// within a single implicit command stream, so a second layer of deferred
// commands would only add bookkeeping without buying anything a real
// multi-queue backend needs it for.
type CommandContext struct {
	device *Device
	ctx    *gl.Context
	sc     *StateCache

	label string
	queue rhi.QueueType

	recording  bool
	inPass     bool
	renderPass renderPassState

	boundGfx  *GraphicsPipeline
	boundComp *ComputePipeline

	vertexBuffers [maxVaoVertexBuffers]vaoBufferBinding
	indexBuffer   uint32
	indexFormat   rhi.IndexFormat
}

type renderPassState struct {
	fbo           uint32
	isDefault     bool
	width, height uint32
}

func newCommandContext(d *Device, desc rhi.CommandContextDescriptor) (*CommandContext, error) {
	return &CommandContext{
		device: d,
		ctx:    d.ctx,
		sc:     d.sc,
		label:  desc.Label,
		queue:  desc.Queue,
	}, nil
}

// Begin starts recording. It fails with ErrCommandContextNotReset only while
// the context is already recording; Begin after End needs no Reset and keeps
// the bound state.
func (c *CommandContext) Begin() error {
	if c.recording {
		return ErrCommandContextNotReset
	}
	c.recording = true
	return nil
}

// End stops recording and exits a render pass still open, logging a warning.
// Draw and Dispatch do not check the recording state themselves: a Draw
// after End fails only because no pass is open, and Dispatch is not rejected.
func (c *CommandContext) End() error {
	if !c.recording {
		return ErrCommandContextNotReset
	}
	if c.inPass {
		Logger().Warn("command context ended inside an open render pass", "label", c.label)
		c.inPass = false
	}
	c.recording = false
	return nil
}

// Reset clears all bound state, ready for a new Begin.
func (c *CommandContext) Reset() {
	c.recording = false
	c.inPass = false
	c.renderPass = renderPassState{}
	c.boundGfx = nil
	c.boundComp = nil
	c.vertexBuffers = [maxVaoVertexBuffers]vaoBufferBinding{}
	c.indexBuffer = 0
}

func (c *CommandContext) requireQueue(allowed ...rhi.QueueType) error {
	for _, q := range allowed {
		if c.queue == q {
			return nil
		}
	}
	return ErrWrongQueueType
}

// --- Render passes ---

// BeginRenderPass resolves desc's attachments to a framebuffer (the cached
// FBO for the attachment set, or the default framebuffer when desc has no
// depth-stencil attachment and either no color attachments or a single one
// whose View is 0), applies its load ops, and opens the pass for draws.
func (c *CommandContext) BeginRenderPass(desc rhi.RenderPassDescriptor) error {
	if err := c.requireQueue(rhi.QueueGraphics); err != nil {
		return err
	}
	if c.inPass {
		return ErrInRenderPass
	}

	targetsDefaultFramebuffer := desc.DepthStencil == nil &&
		(len(desc.ColorAttachments) == 0 || (len(desc.ColorAttachments) == 1 && desc.ColorAttachments[0].View == 0))
	if targetsDefaultFramebuffer {
		c.sc.BindDrawFramebuffer(0)
		if len(desc.ColorAttachments) == 1 && desc.ColorAttachments[0].Load == rhi.LoadOpClear {
			v := desc.ColorAttachments[0].ClearColor
			c.ctx.ClearNamedFramebufferfv(0, gl.COLOR, 0, &v[0])
		}
		c.renderPass = renderPassState{isDefault: true}
		c.inPass = true
		return nil
	}

	key := FboKey{}
	var width, height uint32
	for i, a := range desc.ColorAttachments {
		if i >= maxColorAttachmentSlots {
			return NewValidationErrorf("RenderPass", "ColorAttachments", "more than %d color attachments", maxColorAttachmentSlots)
		}
		view := c.device.lookupTextureView(a.View)
		if view == nil {
			return ErrInvalidHandle
		}
		key.Color[i] = attachmentKey{Texture: view.Name, Level: int32(view.BaseMip), Layer: layerOrNonLayered(view), Format: view.Source.glFormat.Internal, Valid: true}
		width, height = view.Source.Width, view.Source.Height
	}
	if desc.DepthStencil != nil {
		view := c.device.lookupTextureView(desc.DepthStencil.View)
		if view == nil {
			return ErrInvalidHandle
		}
		key.Depth = attachmentKey{Texture: view.Name, Level: int32(view.BaseMip), Layer: layerOrNonLayered(view), Format: view.Source.glFormat.Internal, Valid: true}
		width, height = view.Source.Width, view.Source.Height
	}
	key.Width, key.Height = width, height
	key.Layers = 1 // every attachment binds one specific layer (or a non-array texture); this backend has no layered (geometry-shader) rendering path

	fbo, created := c.device.fbo.GetOrCreate(key)
	if created {
		c.attachFramebuffer(fbo, desc, key)
	}

	c.sc.BindDrawFramebuffer(fbo)
	c.applyLoadOps(fbo, desc)
	c.renderPass = renderPassState{fbo: fbo, width: width, height: height}
	c.inPass = true
	return nil
}

func layerOrNonLayered(v *TextureView) int32 {
	if v.Source.Depth > 1 {
		return int32(v.BaseLayer)
	}
	return -1
}

func (c *CommandContext) attachFramebuffer(fbo uint32, desc rhi.RenderPassDescriptor, key FboKey) {
	drawBuffers := make([]uint32, 0, len(desc.ColorAttachments))
	for i, a := range desc.ColorAttachments {
		view := c.device.lookupTextureView(a.View)
		if key.Color[i].Layer >= 0 {
			c.ctx.NamedFramebufferTextureLayer(fbo, gl.COLOR_ATTACHMENT0+uint32(i), view.Name, int32(view.BaseMip), key.Color[i].Layer)
		} else {
			c.ctx.NamedFramebufferTexture(fbo, gl.COLOR_ATTACHMENT0+uint32(i), view.Name, int32(view.BaseMip))
		}
		drawBuffers = append(drawBuffers, gl.COLOR_ATTACHMENT0+uint32(i))
	}
	if len(drawBuffers) > 0 {
		c.ctx.NamedFramebufferDrawBuffers(fbo, drawBuffers)
	}
	if desc.DepthStencil != nil {
		view := c.device.lookupTextureView(desc.DepthStencil.View)
		attachment := uint32(gl.DEPTH_ATTACHMENT)
		if view.Source.Format.IsDepthStencil() && view.Source.Format.HasStencil() {
			attachment = gl.DEPTH_STENCIL_ATTACHMENT
		}
		if key.Depth.Layer >= 0 {
			c.ctx.NamedFramebufferTextureLayer(fbo, attachment, view.Name, int32(view.BaseMip), key.Depth.Layer)
		} else {
			c.ctx.NamedFramebufferTexture(fbo, attachment, view.Name, int32(view.BaseMip))
		}
	}
	if status := c.ctx.CheckNamedFramebufferStatus(fbo, gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		Logger().Error("framebuffer incomplete", "status", status)
	}
}

func (c *CommandContext) applyLoadOps(fbo uint32, desc rhi.RenderPassDescriptor) {
	for i, a := range desc.ColorAttachments {
		if a.Load == rhi.LoadOpClear {
			v := a.ClearColor
			c.ctx.ClearNamedFramebufferfv(fbo, gl.COLOR, int32(i), &v[0])
		}
	}
	if ds := desc.DepthStencil; ds != nil {
		switch {
		case ds.DepthLoad == rhi.LoadOpClear && ds.StencilLoad == rhi.LoadOpClear:
			c.ctx.ClearNamedFramebufferfi(fbo, ds.ClearDepth, int32(ds.ClearStencil))
		case ds.DepthLoad == rhi.LoadOpClear:
			depth := ds.ClearDepth
			c.ctx.ClearNamedFramebufferfv(fbo, gl.DEPTH, 0, &depth)
		case ds.StencilLoad == rhi.LoadOpClear:
			stencil := int32(ds.ClearStencil)
			c.ctx.ClearNamedFramebufferiv(fbo, gl.STENCIL, 0, &stencil)
		}
	}
}

// EndRenderPass resolves any multisampled color attachments that declared a
// ResolveView and closes the pass.
func (c *CommandContext) EndRenderPass(desc rhi.RenderPassDescriptor) error {
	if !c.inPass {
		return ErrNotInRenderPass
	}
	for i, a := range desc.ColorAttachments {
		if a.ResolveView == 0 {
			continue
		}
		resolve := c.device.lookupTextureView(a.ResolveView)
		if resolve == nil {
			continue
		}
		resolveFbo, created := c.device.fbo.GetOrCreate(FboKey{
			Color:  [maxColorAttachmentSlots]attachmentKey{{Texture: resolve.Name, Level: int32(resolve.BaseMip), Layer: -1, Format: resolve.Source.glFormat.Internal, Valid: true}},
			Width:  resolve.Source.Width,
			Height: resolve.Source.Height,
			Layers: 1,
		})
		if created {
			c.ctx.NamedFramebufferTexture(resolveFbo, gl.COLOR_ATTACHMENT0, resolve.Name, int32(resolve.BaseMip))
			c.ctx.NamedFramebufferDrawBuffers(resolveFbo, []uint32{gl.COLOR_ATTACHMENT0})
		}
		_ = i
		c.ctx.BlitNamedFramebuffer(c.renderPass.fbo, resolveFbo,
			0, 0, int32(c.renderPass.width), int32(c.renderPass.height),
			0, 0, int32(resolve.Source.Width), int32(resolve.Source.Height),
			gl.COLOR_BUFFER_BIT, gl.LINEAR)
	}
	c.inPass = false
	return nil
}

// --- Pipeline / resource binding ---

// BindGraphicsPipeline binds a graphics pipeline and applies its
// fixed-function state to the state cache.
func (c *CommandContext) BindGraphicsPipeline(h rhi.Handle) error {
	p, err := c.device.lookupGraphicsPipeline(h)
	if err != nil {
		return err
	}
	c.boundGfx = p
	c.sc.UseProgram(p.Program.Name)
	c.applyRasterizerAndBlend(p)
	return nil
}

func (c *CommandContext) applyRasterizerAndBlend(p *GraphicsPipeline) {
	c.sc.SetCullMode(cullModeGL[p.Rasterizer.CullMode], p.Rasterizer.CullMode != rhi.CullNone)
	c.sc.SetFrontFace(frontFaceGL[p.Rasterizer.FrontFace])

	for i, ct := range p.ColorTargets {
		c.sc.SetBlend(uint32(i), ct.BlendEnable,
			blendFactorGL[ct.SrcColorBlend], blendFactorGL[ct.DstColorBlend], blendOpGL[ct.ColorOp],
			blendFactorGL[ct.SrcAlphaBlend], blendFactorGL[ct.DstAlphaBlend], blendOpGL[ct.AlphaOp],
			uint8(ct.WriteMask))
	}

	if ds := p.DepthStencil; ds != nil {
		c.sc.SetDepthTest(true)
		c.sc.SetDepthFunc(uint32(compareFuncGL[ds.DepthCompare]))
		c.sc.SetDepthMask(ds.DepthWriteEnabled)
		c.sc.SetStencilTest(ds.StencilEnabled)
		if ds.StencilEnabled {
			c.sc.SetStencilFuncSeparate(gl.FRONT, uint32(compareFuncGL[ds.StencilFront.Compare]), 0, ds.StencilReadMask)
			c.sc.SetStencilFuncSeparate(gl.BACK, uint32(compareFuncGL[ds.StencilBack.Compare]), 0, ds.StencilReadMask)
			c.sc.SetStencilOpSeparate(gl.FRONT, stencilOpGL[ds.StencilFront.FailOp], stencilOpGL[ds.StencilFront.DepthFailOp], stencilOpGL[ds.StencilFront.PassOp])
			c.sc.SetStencilOpSeparate(gl.BACK, stencilOpGL[ds.StencilBack.FailOp], stencilOpGL[ds.StencilBack.DepthFailOp], stencilOpGL[ds.StencilBack.PassOp])
			c.sc.SetStencilWriteMaskSeparate(gl.FRONT_AND_BACK, ds.StencilWriteMask)
		}
		if ds.DepthBias != 0 || ds.DepthBiasSlope != 0 {
			c.sc.SetPolygonOffset(true, ds.DepthBiasSlope, float32(ds.DepthBias))
		} else {
			c.sc.SetPolygonOffset(false, 0, 0)
		}
	} else {
		c.sc.SetDepthTest(false)
		c.sc.SetStencilTest(false)
	}
}

// SetStencilReference overrides the stencil comparison reference value set
// by the currently bound pipeline, without re-applying the rest of its
// depth-stencil state.
func (c *CommandContext) SetStencilReference(ref uint32) error {
	if c.boundGfx == nil {
		return ErrNoPipelineBound
	}
	ds := c.boundGfx.DepthStencil
	if ds == nil {
		return nil
	}
	c.sc.SetStencilFuncSeparate(gl.FRONT, uint32(compareFuncGL[ds.StencilFront.Compare]), int32(ref), ds.StencilReadMask)
	c.sc.SetStencilFuncSeparate(gl.BACK, uint32(compareFuncGL[ds.StencilBack.Compare]), int32(ref), ds.StencilReadMask)
	return nil
}

// BindComputePipeline binds a compute pipeline.
func (c *CommandContext) BindComputePipeline(h rhi.Handle) error {
	p, err := c.device.lookupComputePipeline(h)
	if err != nil {
		return err
	}
	c.boundComp = p
	c.sc.UseProgram(p.Program.Name)
	return nil
}

// BindVertexBuffer binds a vertex buffer to the given input slot.
func (c *CommandContext) BindVertexBuffer(slot uint32, h rhi.Handle, offset uint64) error {
	if int(slot) >= maxVaoVertexBuffers {
		return ErrSlotOutOfRange
	}
	b, err := c.device.lookupBuffer(h)
	if err != nil {
		return err
	}
	stride := uint32(0)
	divisor := uint32(0)
	if c.boundGfx != nil && int(slot) < len(c.boundGfx.VertexBuffers) {
		l := c.boundGfx.VertexBuffers[slot]
		stride = uint32(l.Stride)
		if l.StepMode == rhi.StepModeInstance {
			divisor = 1
		}
	}
	c.vertexBuffers[slot] = vaoBufferBinding{Buffer: b.Name, Stride: stride, Offset: uint32(offset), Divisor: divisor, Valid: true}
	return nil
}

// BindIndexBuffer binds the index buffer used by subsequent DrawIndexed
// calls.
func (c *CommandContext) BindIndexBuffer(h rhi.Handle, format rhi.IndexFormat) error {
	b, err := c.device.lookupBuffer(h)
	if err != nil {
		return err
	}
	c.indexBuffer = b.Name
	c.indexFormat = format
	return nil
}

// BindDescriptorSet binds a descriptor set's resources to their resolved GL
// binding points.
func (c *CommandContext) BindDescriptorSet(h rhi.Handle, dynamicOffsets []uint64) error {
	set, err := c.device.lookupDescriptorSet(h)
	if err != nil {
		return err
	}
	return set.Bind(c.ctx, c.sc, c.device.caps.MultiBindSupported, dynamicOffsets)
}

// SetPushConstants writes data directly into the reserved push-constant
// uniform buffer binding (binding 0, below uboBindingStart).
func (c *CommandContext) SetPushConstants(h rhi.Handle, offset uint64, data []byte) error {
	b, err := c.device.lookupBuffer(h)
	if err != nil {
		return err
	}
	if err := b.Write(c.ctx, offset, data); err != nil {
		return err
	}
	return c.sc.BindUniformBuffer(0, b.Name, 0, b.Size)
}

// SetViewport sets the single active viewport (GL 4.5 only exposes
// multiple viewports for geometry-shader viewport arrays, which this
// backend does not use).
func (c *CommandContext) SetViewport(vp rhi.Viewport) {
	c.sc.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, vp.MinDepth, vp.MaxDepth)
}

// SetScissorRect sets the scissor rectangle and enables the scissor test.
func (c *CommandContext) SetScissorRect(r rhi.Rect2D) {
	c.sc.SetScissorTest(true)
	c.sc.SetScissorRect(r.X, r.Y, int32(r.Width), int32(r.Height))
}

// --- Barriers ---

// Barrier translates a resource-state transition into the glMemoryBarrier
// bits that make prior writes visible to the operations After implies.
func (c *CommandContext) Barrier(b rhi.Barrier) {
	c.ctx.MemoryBarrier(barrierBits(b.After))
}

func barrierBits(after rhi.ResourceState) uint32 {
	switch after {
	case rhi.StateVertexBuffer:
		return gl.VERTEX_ATTRIB_ARRAY_BARRIER_BIT
	case rhi.StateIndexBuffer:
		return gl.ELEMENT_ARRAY_BARRIER_BIT
	case rhi.StateConstantBuffer:
		return gl.UNIFORM_BARRIER_BIT
	case rhi.StateShaderResource:
		return gl.TEXTURE_FETCH_BARRIER_BIT | gl.SHADER_IMAGE_ACCESS_BARRIER_BIT
	case rhi.StateUnorderedAccess:
		return gl.SHADER_STORAGE_BARRIER_BIT | gl.SHADER_IMAGE_ACCESS_BARRIER_BIT
	case rhi.StateIndirectArgument:
		return gl.COMMAND_BARRIER_BIT
	case rhi.StateCopySource, rhi.StateCopyDest:
		return gl.BUFFER_UPDATE_BARRIER_BIT | gl.TEXTURE_UPDATE_BARRIER_BIT | gl.PIXEL_BUFFER_BARRIER_BIT
	case rhi.StateRenderTarget, rhi.StateDepthWrite, rhi.StateDepthRead:
		return gl.FRAMEBUFFER_BARRIER_BIT
	default:
		return gl.ALL_BARRIER_BITS
	}
}

// --- Draws ---

func (c *CommandContext) flushVAO() {
	if c.boundGfx == nil {
		return
	}
	key := VaoKey{IndexBuffer: c.indexBuffer, PipelineLayout: c.boundGfx.InputLayoutHash}
	for i, b := range c.vertexBuffers {
		key.Buffers[i] = b
	}
	for slot, vb := range c.boundGfx.VertexBuffers {
		for _, attr := range vb.Attributes {
			if int(attr.ShaderLocation) < maxVaoAttributes {
				key.Attributes[attr.ShaderLocation] = vaoAttribute{
					BindingSlot: uint32(slot),
					Format:      uint32(attr.Format),
					Offset:      attr.Offset,
					Valid:       true,
				}
			}
		}
	}

	vao, created := c.device.vao.GetOrCreate(key)
	if created {
		c.buildVAO(vao)
	}
	c.sc.BindVertexArray(vao)
}

func (c *CommandContext) buildVAO(vao uint32) {
	if c.indexBuffer != 0 {
		c.ctx.VertexArrayElementBuffer(vao, c.indexBuffer)
	}
	for slot, b := range c.vertexBuffers {
		if !b.Valid {
			continue
		}
		c.ctx.VertexArrayVertexBuffer(vao, uint32(slot), b.Buffer, int(b.Offset), int32(b.Stride))
		c.ctx.VertexArrayBindingDivisor(vao, uint32(slot), b.Divisor)
	}
	if c.boundGfx == nil {
		return
	}
	for slot, vb := range c.boundGfx.VertexBuffers {
		for _, attr := range vb.Attributes {
			info := vertexFormatTable[attr.Format]
			c.ctx.EnableVertexArrayAttrib(vao, attr.ShaderLocation)
			if info.Integer {
				c.ctx.VertexArrayAttribIFormat(vao, attr.ShaderLocation, info.Components, info.GLType, attr.Offset)
			} else {
				c.ctx.VertexArrayAttribFormat(vao, attr.ShaderLocation, info.Components, info.GLType, info.Normalized, attr.Offset)
			}
			c.ctx.VertexArrayAttribBinding(vao, attr.ShaderLocation, uint32(slot))
		}
	}
}

func indexGLType(format rhi.IndexFormat) uint32 {
	if format == rhi.IndexFormatUint16 {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

func indexSize(format rhi.IndexFormat) uintptr {
	if format == rhi.IndexFormatUint16 {
		return 2
	}
	return 4
}

// Draw issues a non-indexed draw call, picking the most specific entry
// point: plain DrawArrays when there is no instancing to express, the
// BaseInstance variant otherwise.
func (c *CommandContext) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	if !c.inPass {
		return ErrNotInRenderPass
	}
	if c.boundGfx == nil {
		return ErrNoPipelineBound
	}
	c.flushVAO()
	if instanceCount <= 1 && firstInstance == 0 {
		c.ctx.DrawArrays(c.boundGfx.Topology, int32(firstVertex), int32(vertexCount))
		return nil
	}
	c.ctx.DrawArraysInstancedBaseInstance(c.boundGfx.Topology, int32(firstVertex), int32(vertexCount), int32(instanceCount), int32(firstInstance))
	return nil
}

// DrawIndexed issues an indexed draw call, picking the most specific entry
// point: DrawElementsBaseVertex (baseVertex 0, behaviorally plain
// DrawElements) when instanceCount <= 1, firstInstance == 0, and baseVertex
// == 0, the InstancedBaseVertexBaseInstance variant otherwise.
func (c *CommandContext) DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance uint32) error {
	if !c.inPass {
		return ErrNotInRenderPass
	}
	if c.boundGfx == nil {
		return ErrNoPipelineBound
	}
	c.flushVAO()
	offset := uintptr(firstIndex) * indexSize(c.indexFormat)
	if instanceCount <= 1 && firstInstance == 0 && baseVertex == 0 {
		c.ctx.DrawElementsBaseVertex(c.boundGfx.Topology, int32(indexCount), indexGLType(c.indexFormat), offset, 0)
		return nil
	}
	c.ctx.DrawElementsInstancedBaseVertexBaseInstance(c.boundGfx.Topology, int32(indexCount), indexGLType(c.indexFormat), offset, int32(instanceCount), int32(baseVertex), firstInstance)
	return nil
}

// DrawIndirect issues a non-indexed draw whose parameters are read from
// buffer at offset.
func (c *CommandContext) DrawIndirect(h rhi.Handle, offset uint64) error {
	if !c.inPass {
		return ErrNotInRenderPass
	}
	if c.boundGfx == nil {
		return ErrNoPipelineBound
	}
	b, err := c.device.lookupBuffer(h)
	if err != nil {
		return err
	}
	c.flushVAO()
	c.ctx.BindBuffer(gl.DRAW_INDIRECT_BUFFER, b.Name)
	c.ctx.MultiDrawArraysIndirect(c.boundGfx.Topology, uintptr(offset), 1, 0)
	return nil
}

// DrawIndexedIndirect issues an indexed draw whose parameters are read from
// buffer at offset.
func (c *CommandContext) DrawIndexedIndirect(h rhi.Handle, offset uint64) error {
	if !c.inPass {
		return ErrNotInRenderPass
	}
	if c.boundGfx == nil {
		return ErrNoPipelineBound
	}
	b, err := c.device.lookupBuffer(h)
	if err != nil {
		return err
	}
	c.flushVAO()
	c.ctx.BindBuffer(gl.DRAW_INDIRECT_BUFFER, b.Name)
	c.ctx.MultiDrawElementsIndirect(c.boundGfx.Topology, indexGLType(c.indexFormat), uintptr(offset), 1, 0)
	return nil
}

// Dispatch issues a compute dispatch.
func (c *CommandContext) Dispatch(groupsX, groupsY, groupsZ uint32) error {
	if err := c.requireQueue(rhi.QueueCompute, rhi.QueueGraphics); err != nil {
		return err
	}
	if c.boundComp == nil {
		return ErrNoPipelineBound
	}
	c.ctx.DispatchCompute(groupsX, groupsY, groupsZ)
	return nil
}

// DispatchIndirect issues a compute dispatch whose group counts are read
// from buffer at offset.
func (c *CommandContext) DispatchIndirect(h rhi.Handle, offset uint64) error {
	if err := c.requireQueue(rhi.QueueCompute, rhi.QueueGraphics); err != nil {
		return err
	}
	if c.boundComp == nil {
		return ErrNoPipelineBound
	}
	b, err := c.device.lookupBuffer(h)
	if err != nil {
		return err
	}
	c.ctx.BindBuffer(gl.DISPATCH_INDIRECT_BUFFER, b.Name)
	c.ctx.DispatchComputeIndirect(uintptr(offset))
	return nil
}

// --- Copies ---

// CopyBufferToBuffer copies size bytes from src to dst.
func (c *CommandContext) CopyBufferToBuffer(src rhi.Handle, srcOffset uint64, dst rhi.Handle, dstOffset uint64, size uint64) error {
	s, err := c.device.lookupBuffer(src)
	if err != nil {
		return err
	}
	d, err := c.device.lookupBuffer(dst)
	if err != nil {
		return err
	}
	c.ctx.CopyNamedBufferSubData(s.Name, d.Name, int(srcOffset), int(dstOffset), int(size))
	return nil
}

// CopyTextureToTexture copies a region between two textures of matching
// format via glCopyImageSubData, without going through a shader or the
// framebuffer.
func (c *CommandContext) CopyTextureToTexture(src rhi.Handle, srcLevel int32, srcX, srcY, srcZ int32,
	dst rhi.Handle, dstLevel int32, dstX, dstY, dstZ int32, width, height, depth int32) error {
	s, err := c.device.lookupTexture(src)
	if err != nil {
		return err
	}
	d, err := c.device.lookupTexture(dst)
	if err != nil {
		return err
	}
	c.ctx.CopyImageSubData(s.Name, s.Target, srcLevel, srcX, srcY, srcZ, d.Name, d.Target, dstLevel, dstX, dstY, dstZ, width, height, depth)
	return nil
}

// CopyBufferToTexture uploads pixel data from an Upload buffer's persistent
// mapping directly into a texture region, bypassing an explicit
// PIXEL_UNPACK_BUFFER bind.
func (c *CommandContext) CopyBufferToTexture(src rhi.Handle, srcOffset uint64, dst rhi.Handle, level int32, x, y, z, w, h, d int32) error {
	s, err := c.device.lookupBuffer(src)
	if err != nil {
		return err
	}
	t, err := c.device.lookupTexture(dst)
	if err != nil {
		return err
	}
	ptr, err := s.MappedPointer()
	if err != nil {
		return err
	}
	src2 := unsafe.Add(ptr, srcOffset)
	if t.Depth > 1 || t.Target == gl.TEXTURE_3D {
		c.ctx.TextureSubImage3D(t.Name, level, x, y, z, w, h, d, t.glFormat.Format, t.glFormat.Type, src2)
		return nil
	}
	c.ctx.TextureSubImage2D(t.Name, level, x, y, w, h, t.glFormat.Format, t.glFormat.Type, src2)
	return nil
}

// CopyTextureToBuffer reads back pixel data from a texture region directly
// into a Readback buffer's persistent mapping.
func (c *CommandContext) CopyTextureToBuffer(src rhi.Handle, level int32, x, y, z, w, h, d int32, dst rhi.Handle, dstOffset uint64, bufSize int32) error {
	t, err := c.device.lookupTexture(src)
	if err != nil {
		return err
	}
	b, err := c.device.lookupBuffer(dst)
	if err != nil {
		return err
	}
	ptr, err := b.MappedPointer()
	if err != nil {
		return err
	}
	dst2 := unsafe.Add(ptr, dstOffset)
	c.ctx.GetTextureSubImage(t.Name, level, x, y, z, w, h, d, t.glFormat.Format, t.glFormat.Type, bufSize, dst2)
	return nil
}
