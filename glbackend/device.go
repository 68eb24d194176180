// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/internal/glthread"
	"github.com/gogpu/glrhi/rhi"
)

// Device owns a loaded *gl.Context and every tracked GL object behind an
// rhi.Handle, plus the caches and queues those objects need (StateCache,
// DeletionQueue, FboCache, VaoCache, DebugTracker). It is the single
// factory every Create*/Destroy* call in spec §4.1's data model goes
// through. Grounded on hal/gles/device.go's Device: same one-file
// Create*/Destroy* method set in the same declaration order, substituting
// DSA-based resource construction for the teacher's bind-then-mutate one
// and a ten-map handle registry for the teacher's single generic
// core.Registry.
//
// A Device does not create or make current the GL context it drives; the
// host does that on thread's backing OS thread (see internal/glthread)
// before NewDevice's first call, and every Device/CommandContext/SwapChain
// method thereafter must also run on that thread.
type Device struct {
	ctx    *gl.Context
	thread *glthread.Thread

	sc  *StateCache
	dq  *DeletionQueue
	fbo *FboCache
	vao *VaoCache
	dbg *DebugTracker

	caps rhi.Capabilities

	nextHandle atomic.Uint32
	frame      atomic.Uint64

	mu        sync.RWMutex
	buffers   map[rhi.Handle]*Buffer
	textures  map[rhi.Handle]*Texture
	views     map[rhi.Handle]*TextureView
	samplers  map[rhi.Handle]*Sampler
	shaders   map[rhi.Handle]*Shader
	dsLayouts map[rhi.Handle]*DescriptorSetLayout
	dsSets    map[rhi.Handle]*DescriptorSet
	gfxPipes  map[rhi.Handle]*GraphicsPipeline
	compPipes map[rhi.Handle]*ComputePipeline
	fences    map[rhi.Handle]*Fence

	label string
	debug bool
}

// NewDevice loads the GL 4.5 DSA entry points through getProcAddr and
// builds a Device ready to create resources. thread identifies the OS
// thread the caller's GL context is current on; NewDevice itself must be
// called from that thread.
func NewDevice(thread *glthread.Thread, getProcAddr gl.ProcAddressFunc, desc rhi.DeviceDescriptor) (*Device, error) {
	ctx := &gl.Context{}
	if err := ctx.Load(getProcAddr); err != nil {
		return nil, fmt.Errorf("glbackend: %w", err)
	}

	caps := queryCapabilities(ctx)
	if align := ctx.GetInteger(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT); align > 0 {
		dynamicOffsetAlignment = uint32(align)
	}

	dq := NewDeletionQueue(desc.FramesInFlight)
	dq.BindDeleters(
		ctx.DeleteBuffers,
		ctx.DeleteTextures,
		ctx.DeleteFramebuffers,
		ctx.DeleteVertexArrays,
		ctx.DeleteProgram,
		ctx.DeleteShader,
		ctx.DeleteSamplers,
	)

	fboCache := NewFboCache(
		func() uint32 { return ctx.CreateFramebuffers(1) },
		ctx.DeleteFramebuffers,
	)
	vaoCache := NewVaoCache(
		func() uint32 { return ctx.CreateVertexArrays(1) },
		ctx.DeleteVertexArrays,
	)

	d := &Device{
		ctx:       ctx,
		thread:    thread,
		sc:        NewStateCache(ctx),
		dq:        dq,
		fbo:       fboCache,
		vao:       vaoCache,
		dbg:       NewDebugTracker(desc.Debug),
		caps:      caps,
		buffers:   make(map[rhi.Handle]*Buffer),
		textures:  make(map[rhi.Handle]*Texture),
		views:     make(map[rhi.Handle]*TextureView),
		samplers:  make(map[rhi.Handle]*Sampler),
		shaders:   make(map[rhi.Handle]*Shader),
		dsLayouts: make(map[rhi.Handle]*DescriptorSetLayout),
		dsSets:    make(map[rhi.Handle]*DescriptorSet),
		gfxPipes:  make(map[rhi.Handle]*GraphicsPipeline),
		compPipes: make(map[rhi.Handle]*ComputePipeline),
		fences:    make(map[rhi.Handle]*Fence),
		label:     desc.Label,
		debug:     desc.Debug,
	}
	d.nextHandle.Store(1) // handle 0 is reserved

	if desc.Debug && caps.DebugOutputSupported {
		ctx.Enable(gl.DEBUG_OUTPUT)
		ctx.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
		Logger().Info("debug output enabled", "vendor", caps.Vendor, "renderer", caps.Renderer)
	}

	Logger().Info("device created", "label", desc.Label, "gl_version", caps.GLVersion, "glsl_version", caps.GLSLVersion)
	return d, nil
}

// Capabilities returns the limits and extension support queried at
// construction.
func (d *Device) Capabilities() rhi.Capabilities {
	return d.caps
}

// IsOnGLThread reports true when the Device has no thread, and otherwise
// whether thread.Owns reports a dispatched call in progress; that flag is
// shared by all goroutines, so it does not identify the caller.
func (d *Device) IsOnGLThread() bool {
	return d.thread == nil || d.thread.Owns()
}

func (d *Device) allocHandle() rhi.Handle {
	return rhi.Handle(d.nextHandle.Add(1) - 1)
}

// --- Buffer ---

// CreateBuffer allocates a buffer per desc and registers it under a new
// handle.
func (d *Device) CreateBuffer(desc rhi.BufferDescriptor) (rhi.Handle, error) {
	b, err := CreateBuffer(d.ctx, desc)
	if err != nil {
		return 0, err
	}
	h := d.allocHandle()
	d.mu.Lock()
	d.buffers[h] = b
	d.mu.Unlock()
	d.dbg.Register(h, ObjectBuffer, desc.Label)
	return h, nil
}

// DestroyBuffer unmaps (if mapped), invalidates any cached VAO referencing
// it, and enqueues the buffer name for deferred deletion.
func (d *Device) DestroyBuffer(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	b, ok := d.buffers[h]
	if ok {
		delete(d.buffers, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: buffer handle %d", ErrInvalidHandle, h)
	}
	d.vao.InvalidateBuffer(b.Name)
	b.Destroy(d.ctx, d.dq)
	d.dbg.Destroy(h)
	return nil
}

// WriteBuffer writes data into the buffer at offset.
func (d *Device) WriteBuffer(h rhi.Handle, offset uint64, data []byte) error {
	b, err := d.lookupBuffer(h)
	if err != nil {
		return err
	}
	return b.Write(d.ctx, offset, data)
}

// MapBuffer returns the persistent CPU pointer of an Upload/Readback buffer.
func (d *Device) MapBuffer(h rhi.Handle) (uintptr, error) {
	b, err := d.lookupBuffer(h)
	if err != nil {
		return 0, err
	}
	ptr, err := b.MappedPointer()
	if err != nil {
		return 0, err
	}
	return uintptr(ptr), nil
}

func (d *Device) lookupBuffer(h rhi.Handle) (*Buffer, error) {
	if err := d.dbg.CheckLive(h); err != nil {
		return nil, err
	}
	d.mu.RLock()
	b, ok := d.buffers[h]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: buffer handle %d", ErrInvalidHandle, h)
	}
	return b, nil
}

// --- Texture ---

// CreateTexture allocates a texture per desc and registers it.
func (d *Device) CreateTexture(desc rhi.TextureDescriptor) (rhi.Handle, error) {
	t, err := CreateTexture(d.ctx, desc)
	if err != nil {
		return 0, err
	}
	h := d.allocHandle()
	d.mu.Lock()
	d.textures[h] = t
	d.mu.Unlock()
	d.dbg.Register(h, ObjectTexture, desc.Label)
	return h, nil
}

// UploadTexture writes pixel data into one mip level/region of a texture.
func (d *Device) UploadTexture(h rhi.Handle, level int32, x, y, z, w, hgt, depth int32, pixels []byte) error {
	t, err := d.lookupTexture(h)
	if err != nil {
		return err
	}
	t.Upload(d.ctx, level, x, y, z, w, hgt, depth, pixels)
	return nil
}

// GenerateMipmaps regenerates every mip level after level 0 from the base
// level; a texture with a single mip level is left unchanged.
func (d *Device) GenerateMipmaps(h rhi.Handle) error {
	t, err := d.lookupTexture(h)
	if err != nil {
		return err
	}
	t.GenerateMipmaps(d.ctx)
	return nil
}

// DestroyTexture invalidates any cached FBO referencing it and enqueues the
// texture for deferred deletion.
func (d *Device) DestroyTexture(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	t, ok := d.textures[h]
	if ok {
		delete(d.textures, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: texture handle %d", ErrInvalidHandle, h)
	}
	t.Destroy(d.ctx, d.dq, d.fbo, d.vao)
	d.dbg.Destroy(h)
	return nil
}

func (d *Device) lookupTexture(h rhi.Handle) (*Texture, error) {
	if err := d.dbg.CheckLive(h); err != nil {
		return nil, err
	}
	d.mu.RLock()
	t, ok := d.textures[h]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: texture handle %d", ErrInvalidHandle, h)
	}
	return t, nil
}

// --- Texture view ---

// CreateTextureView builds a view over an existing texture.
func (d *Device) CreateTextureView(source rhi.Handle, desc rhi.TextureViewDescriptor) (rhi.Handle, error) {
	src, err := d.lookupTexture(source)
	if err != nil {
		return 0, err
	}
	v, err := CreateTextureView(d.ctx, src, desc)
	if err != nil {
		return 0, err
	}
	h := d.allocHandle()
	d.mu.Lock()
	d.views[h] = v
	d.mu.Unlock()
	d.dbg.Register(h, ObjectTextureView, desc.Label)
	return h, nil
}

// DestroyTextureView enqueues the view's own GL name for deletion, if any.
func (d *Device) DestroyTextureView(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	v, ok := d.views[h]
	if ok {
		delete(d.views, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: texture view handle %d", ErrInvalidHandle, h)
	}
	v.Destroy(d.dq)
	d.dbg.Destroy(h)
	return nil
}

func (d *Device) lookupTextureView(h rhi.Handle) *TextureView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.views[h]
}

// --- Sampler ---

// CreateSampler allocates a sampler and registers it.
func (d *Device) CreateSampler(desc rhi.SamplerDescriptor) rhi.Handle {
	s := CreateSampler(d.ctx, desc, d.caps.AnisotropicFilteringSupported)
	h := d.allocHandle()
	d.mu.Lock()
	d.samplers[h] = s
	d.mu.Unlock()
	d.dbg.Register(h, ObjectSampler, desc.Label)
	return h
}

// DestroySampler enqueues the sampler for deferred deletion.
func (d *Device) DestroySampler(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	s, ok := d.samplers[h]
	if ok {
		delete(d.samplers, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: sampler handle %d", ErrInvalidHandle, h)
	}
	s.Destroy(d.dq)
	d.dbg.Destroy(h)
	return nil
}

func (d *Device) lookupSampler(h rhi.Handle) *Sampler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.samplers[h]
}

// --- Shader ---

// CreateShaderModule compiles desc into a GL shader object.
func (d *Device) CreateShaderModule(desc rhi.ShaderDescriptor) (rhi.Handle, error) {
	s, err := CreateShaderModule(d.ctx, desc)
	if err != nil {
		return 0, err
	}
	h := d.allocHandle()
	d.mu.Lock()
	d.shaders[h] = s
	d.mu.Unlock()
	d.dbg.Register(h, ObjectShader, desc.Label)
	return h, nil
}

// DestroyShaderModule enqueues the shader object for deferred deletion.
func (d *Device) DestroyShaderModule(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	s, ok := d.shaders[h]
	if ok {
		delete(d.shaders, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: shader handle %d", ErrInvalidHandle, h)
	}
	s.Destroy(d.dq)
	d.dbg.Destroy(h)
	return nil
}

func (d *Device) lookupShader(h rhi.Handle) (*Shader, error) {
	if err := d.dbg.CheckLive(h); err != nil {
		return nil, err
	}
	d.mu.RLock()
	s, ok := d.shaders[h]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: shader handle %d", ErrInvalidHandle, h)
	}
	return s, nil
}

// --- Descriptor set layout / set ---

// CreateDescriptorSetLayout resolves desc's bindings and registers the
// layout.
func (d *Device) CreateDescriptorSetLayout(desc rhi.DescriptorSetLayoutDescriptor) rhi.Handle {
	l := CreateDescriptorSetLayout(desc)
	h := d.allocHandle()
	d.mu.Lock()
	d.dsLayouts[h] = l
	d.mu.Unlock()
	d.dbg.Register(h, ObjectDescriptorSetLayout, desc.Label)
	return h
}

// DestroyDescriptorSetLayout removes the layout. It carries no GL object of
// its own, so nothing is enqueued on the deletion queue.
func (d *Device) DestroyDescriptorSetLayout(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	_, ok := d.dsLayouts[h]
	delete(d.dsLayouts, h)
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: descriptor set layout handle %d", ErrInvalidHandle, h)
	}
	d.dbg.Destroy(h)
	return nil
}

// CreateDescriptorSet resolves desc's entries against its layout.
func (d *Device) CreateDescriptorSet(desc rhi.DescriptorSetDescriptor) (rhi.Handle, error) {
	d.mu.RLock()
	layout, ok := d.dsLayouts[desc.Layout]
	d.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: descriptor set layout handle %d", ErrInvalidHandle, desc.Layout)
	}

	set, err := CreateDescriptorSet(layout, desc,
		func(bh rhi.Handle) *Buffer { b, _ := d.lookupBuffer(bh); return b },
		d.lookupTextureView,
		d.lookupSampler,
	)
	if err != nil {
		return 0, err
	}
	h := d.allocHandle()
	d.mu.Lock()
	d.dsSets[h] = set
	d.mu.Unlock()
	d.dbg.Register(h, ObjectDescriptorSet, desc.Label)
	return h, nil
}

// DestroyDescriptorSet removes the set. Like its layout it owns no GL
// object directly.
func (d *Device) DestroyDescriptorSet(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	_, ok := d.dsSets[h]
	delete(d.dsSets, h)
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: descriptor set handle %d", ErrInvalidHandle, h)
	}
	d.dbg.Destroy(h)
	return nil
}

func (d *Device) lookupDescriptorSet(h rhi.Handle) (*DescriptorSet, error) {
	if err := d.dbg.CheckLive(h); err != nil {
		return nil, err
	}
	d.mu.RLock()
	s, ok := d.dsSets[h]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: descriptor set handle %d", ErrInvalidHandle, h)
	}
	return s, nil
}

// --- Pipelines ---

// CreateGraphicsPipeline links desc's shaders and captures its
// fixed-function state.
func (d *Device) CreateGraphicsPipeline(desc rhi.GraphicsPipelineDescriptor) (rhi.Handle, error) {
	vs, err := d.lookupShader(desc.VertexShader)
	if err != nil {
		return 0, err
	}
	fs, err := d.lookupShader(desc.FragmentShader)
	if err != nil {
		return 0, err
	}
	p, err := CreateGraphicsPipeline(d.ctx, desc, vs, fs)
	if err != nil {
		return 0, err
	}
	h := d.allocHandle()
	d.mu.Lock()
	d.gfxPipes[h] = p
	d.mu.Unlock()
	d.dbg.Register(h, ObjectGraphicsPipeline, desc.Label)
	return h, nil
}

// DestroyGraphicsPipeline enqueues the pipeline's program for deferred
// deletion.
func (d *Device) DestroyGraphicsPipeline(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	p, ok := d.gfxPipes[h]
	if ok {
		delete(d.gfxPipes, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: graphics pipeline handle %d", ErrInvalidHandle, h)
	}
	p.Destroy(d.dq)
	d.dbg.Destroy(h)
	return nil
}

func (d *Device) lookupGraphicsPipeline(h rhi.Handle) (*GraphicsPipeline, error) {
	if err := d.dbg.CheckLive(h); err != nil {
		return nil, err
	}
	d.mu.RLock()
	p, ok := d.gfxPipes[h]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: graphics pipeline handle %d", ErrInvalidHandle, h)
	}
	return p, nil
}

// CreateComputePipeline links desc's compute shader into its own program.
func (d *Device) CreateComputePipeline(desc rhi.ComputePipelineDescriptor) (rhi.Handle, error) {
	cs, err := d.lookupShader(desc.ComputeShader)
	if err != nil {
		return 0, err
	}
	p, err := CreateComputePipeline(d.ctx, cs)
	if err != nil {
		return 0, err
	}
	h := d.allocHandle()
	d.mu.Lock()
	d.compPipes[h] = p
	d.mu.Unlock()
	d.dbg.Register(h, ObjectComputePipeline, desc.Label)
	return h, nil
}

// DestroyComputePipeline enqueues the pipeline's program for deferred
// deletion.
func (d *Device) DestroyComputePipeline(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	p, ok := d.compPipes[h]
	if ok {
		delete(d.compPipes, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: compute pipeline handle %d", ErrInvalidHandle, h)
	}
	p.Destroy(d.dq)
	d.dbg.Destroy(h)
	return nil
}

func (d *Device) lookupComputePipeline(h rhi.Handle) (*ComputePipeline, error) {
	if err := d.dbg.CheckLive(h); err != nil {
		return nil, err
	}
	d.mu.RLock()
	p, ok := d.compPipes[h]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: compute pipeline handle %d", ErrInvalidHandle, h)
	}
	return p, nil
}

// --- Fence ---

// CreateFence creates a timeline fence starting at completed value 0.
func (d *Device) CreateFence() rhi.Handle {
	f := NewFence(d.ctx)
	h := d.allocHandle()
	d.mu.Lock()
	d.fences[h] = f
	d.mu.Unlock()
	d.dbg.Register(h, ObjectFence, "")
	return h
}

// SignalFence inserts a GL sync object tagged with value.
func (d *Device) SignalFence(h rhi.Handle, value uint64) error {
	f, err := d.lookupFence(h)
	if err != nil {
		return err
	}
	return f.Signal(value)
}

// FenceCompletedValue reports the highest value the driver has finished.
func (d *Device) FenceCompletedValue(h rhi.Handle) (uint64, error) {
	f, err := d.lookupFence(h)
	if err != nil {
		return 0, err
	}
	return f.GetCompletedValue(), nil
}

// WaitFence blocks until value is reached or timeout elapses. A negative
// timeout blocks indefinitely.
func (d *Device) WaitFence(h rhi.Handle, value uint64, timeout time.Duration) error {
	f, err := d.lookupFence(h)
	if err != nil {
		return err
	}
	return f.Wait(value, timeout)
}

// DestroyFence deletes every pending GL sync object owned by the fence.
func (d *Device) DestroyFence(h rhi.Handle) error {
	if err := d.dbg.CheckLive(h); err != nil {
		return err
	}
	d.mu.Lock()
	f, ok := d.fences[h]
	if ok {
		delete(d.fences, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: fence handle %d", ErrInvalidHandle, h)
	}
	f.Destroy()
	d.dbg.Destroy(h)
	return nil
}

func (d *Device) lookupFence(h rhi.Handle) (*Fence, error) {
	if err := d.dbg.CheckLive(h); err != nil {
		return nil, err
	}
	d.mu.RLock()
	f, ok := d.fences[h]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: fence handle %d", ErrInvalidHandle, h)
	}
	return f, nil
}

// --- Command contexts / swap chain ---

// CreateCommandContext builds a CommandContext bound to this device.
func (d *Device) CreateCommandContext(desc rhi.CommandContextDescriptor) (*CommandContext, error) {
	return newCommandContext(d, desc)
}

// CreateSwapChain wraps a host-provided presentable surface.
func (d *Device) CreateSwapChain(desc rhi.SwapChainDescriptor) (*SwapChain, error) {
	return newSwapChain(d, desc)
}

// --- Frame lifecycle ---

// BeginFrame marks the start of a new frame of GPU work. It currently has
// no bookkeeping of its own; EndFrame owns deletion-queue draining and
// cache aging, so that a test calling EndFrame a fixed number of times sees
// deterministic deletion timing regardless of whether BeginFrame was called
// in between (spec §8's "create buffer, drop it, call end_frame three
// times" scenario).
func (d *Device) BeginFrame() {}

// EndFrame advances the frame counter, drains the deletion queue past
// objects whose frames-in-flight window has elapsed, and ages the FBO/VAO
// caches.
func (d *Device) EndFrame() {
	d.frame.Add(1)
	d.dq.AdvanceFrame()
	d.fbo.AdvanceFrame()
	d.vao.AdvanceFrame()
	d.fbo.Cleanup()
	d.vao.Cleanup()
	d.ctx.Flush()
}

// CurrentFrame returns the number of EndFrame calls made so far.
func (d *Device) CurrentFrame() uint64 {
	return d.frame.Load()
}

// WaitIdle blocks until every GL command issued so far has completed.
func (d *Device) WaitIdle() {
	d.ctx.Finish()
}

// Destroy flushes every pending deletion immediately and releases the
// caches. Call once no further Device/CommandContext/SwapChain method will
// be invoked.
func (d *Device) Destroy() {
	d.dq.FlushAll()
	d.fbo.Clear()
	d.vao.Clear()
	if live := d.dbg.Live(); live > 0 {
		Logger().Warn("device destroyed with live handles", "count", live)
	}
}

