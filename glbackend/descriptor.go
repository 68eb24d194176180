// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"sort"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

// uboBindingStart is the first GL uniform-buffer binding index this backend
// hands out. Binding 0 is left unused so that a shader accidentally
// declaring a uniform block without an explicit `binding` layout qualifier
// (which resolves to block 0) never collides with a descriptor-assigned
// slot; spec §4.7 fixes this as the uniform buffer counter's starting
// point, while every other kind's counter starts at 0.
const uboBindingStart = 1

// DescriptorSetLayout assigns each binding in desc a GL binding index drawn
// from one of five independent per-kind counters (uniform buffer, storage
// buffer, texture unit, sampler unit, image unit), matching spec §4.7.
// Grounded on hal/gles/resource.go's BindGroupLayout, which instead
// resolves binding indices against a single shared counter; the per-kind
// split is the spec's departure from that.
type DescriptorSetLayout struct {
	Label    string
	Bindings []rhi.DescriptorBindingLayout

	glBinding map[uint32]uint32 // rhi binding number -> GL binding index
	kind      map[uint32]rhi.DescriptorKind
}

// CreateDescriptorSetLayout resolves desc's bindings against the five
// independent counters.
func CreateDescriptorSetLayout(desc rhi.DescriptorSetLayoutDescriptor) *DescriptorSetLayout {
	bindings := make([]rhi.DescriptorBindingLayout, len(desc.Bindings))
	copy(bindings, desc.Bindings)
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Binding < bindings[j].Binding })

	l := &DescriptorSetLayout{
		Label:     desc.Label,
		Bindings:  bindings,
		glBinding: make(map[uint32]uint32, len(bindings)),
		kind:      make(map[uint32]rhi.DescriptorKind, len(bindings)),
	}

	uboNext, ssboNext, texNext, sampNext, imgNext := uint32(uboBindingStart), uint32(0), uint32(0), uint32(0), uint32(0)
	for _, b := range bindings {
		l.kind[b.Binding] = b.Kind
		switch b.Kind {
		case rhi.DescriptorUniformBuffer, rhi.DescriptorDynamicUniformBuffer:
			l.glBinding[b.Binding] = uboNext
			uboNext += b.Count
		case rhi.DescriptorStorageBuffer, rhi.DescriptorDynamicStorageBuffer:
			l.glBinding[b.Binding] = ssboNext
			ssboNext += b.Count
		case rhi.DescriptorSampledTexture, rhi.DescriptorCombinedTextureSampler:
			l.glBinding[b.Binding] = texNext
			texNext += b.Count
			if b.Kind == rhi.DescriptorCombinedTextureSampler {
				l.glBinding[b.Binding+combinedSamplerOffset] = sampNext
				sampNext += b.Count
			}
		case rhi.DescriptorSampler:
			l.glBinding[b.Binding] = sampNext
			sampNext += b.Count
		case rhi.DescriptorStorageTexture:
			l.glBinding[b.Binding] = imgNext
			imgNext += b.Count
		}
	}
	return l
}

// combinedSamplerOffset disambiguates a CombinedTextureSampler binding's
// sampler-unit assignment from its texture-unit assignment within the same
// glBinding map, since both are keyed by the same rhi binding number.
const combinedSamplerOffset = uint32(1) << 16

// resolvedBinding is one descriptor set entry resolved to concrete GL
// state: a binding index for the appropriate kind's binding-point space,
// plus the buffer/texture/sampler name(s) it refers to.
type resolvedBinding struct {
	binding  uint32
	glIndex  uint32
	kind     rhi.DescriptorKind
	buffer   *Buffer
	offset   uint64
	size     uint64
	textureView *TextureView
	sampler  *Sampler
}

// DescriptorSet is a resolved set of resource bindings against a
// DescriptorSetLayout, ready to be applied to the GL context by Bind.
// Grounded on hal/gles/resource.go's BindGroup.
type DescriptorSet struct {
	Layout   *DescriptorSetLayout
	bindings []resolvedBinding
}

// CreateDescriptorSet resolves desc's entries against layout and a resource
// lookup function (supplied by the device, mapping rhi.Handle to concrete
// Buffer/TextureView/Sampler pointers).
func CreateDescriptorSet(layout *DescriptorSetLayout, desc rhi.DescriptorSetDescriptor,
	resolveBuffer func(rhi.Handle) *Buffer, resolveView func(rhi.Handle) *TextureView, resolveSampler func(rhi.Handle) *Sampler) (*DescriptorSet, error) {

	set := &DescriptorSet{Layout: layout}
	for _, e := range desc.Entries {
		kind, ok := layout.kind[e.Binding]
		if !ok {
			return nil, NewValidationErrorf("DescriptorSet", "Binding", "binding %d is not declared in layout %q", e.Binding, layout.Label)
		}
		rb := resolvedBinding{binding: e.Binding, kind: kind, glIndex: layout.glBinding[e.Binding]}

		switch kind {
		case rhi.DescriptorUniformBuffer, rhi.DescriptorDynamicUniformBuffer,
			rhi.DescriptorStorageBuffer, rhi.DescriptorDynamicStorageBuffer:
			if e.Buffer == nil {
				return nil, NewValidationErrorf("DescriptorSet", "Binding", "binding %d requires a buffer binding", e.Binding)
			}
			buf := resolveBuffer(e.Buffer.Buffer)
			if buf == nil {
				return nil, NewValidationErrorf("DescriptorSet", "Buffer", "binding %d references an unknown buffer handle", e.Binding)
			}
			size := e.Buffer.Size
			if size == rhi.WholeSize {
				size = buf.Size - e.Buffer.Offset
			}
			rb.buffer, rb.offset, rb.size = buf, e.Buffer.Offset, size

		case rhi.DescriptorSampledTexture, rhi.DescriptorStorageTexture:
			if e.Texture == nil {
				return nil, NewValidationErrorf("DescriptorSet", "Binding", "binding %d requires a texture binding", e.Binding)
			}
			view := resolveView(e.Texture.View)
			if view == nil {
				return nil, NewValidationErrorf("DescriptorSet", "Texture", "binding %d references an unknown texture view handle", e.Binding)
			}
			rb.textureView = view

		case rhi.DescriptorCombinedTextureSampler:
			if e.Texture == nil {
				return nil, NewValidationErrorf("DescriptorSet", "Binding", "binding %d requires a texture binding", e.Binding)
			}
			view := resolveView(e.Texture.View)
			samp := resolveSampler(e.Texture.Sampler)
			if view == nil || samp == nil {
				return nil, NewValidationErrorf("DescriptorSet", "Texture", "binding %d references an unknown texture or sampler handle", e.Binding)
			}
			rb.textureView, rb.sampler = view, samp

		case rhi.DescriptorSampler:
			if e.Sampler == nil {
				return nil, NewValidationErrorf("DescriptorSet", "Binding", "binding %d requires a sampler", e.Binding)
			}
			samp := resolveSampler(*e.Sampler)
			if samp == nil {
				return nil, NewValidationErrorf("DescriptorSet", "Sampler", "binding %d references an unknown sampler handle", e.Binding)
			}
			rb.sampler = samp
		}

		set.bindings = append(set.bindings, rb)
	}

	sort.Slice(set.bindings, func(i, j int) bool {
		if set.bindings[i].kind != set.bindings[j].kind {
			return set.bindings[i].kind < set.bindings[j].kind
		}
		return set.bindings[i].glIndex < set.bindings[j].glIndex
	})
	return set, nil
}

// Bind applies the set's resolved bindings to sc, consuming dynamicOffsets
// in binding order for every Dynamic* descriptor. Contiguous runs of
// non-dynamic bindings of the same kind are coalesced into a single
// multi-bind call when multiBindSupported (spec §4.7's resolved Open
// Question on multi-bind coalescing); a dynamic binding never joins a
// coalesced run, since its offset comes from the per-draw dynamicOffsets
// slice rather than from the set itself and so can't be folded into one
// bulk call with its static neighbors.
func (s *DescriptorSet) Bind(ctx *gl.Context, sc *StateCache, multiBindSupported bool, dynamicOffsets []uint64) error {
	// s.bindings is sorted by kind, so a dynamic binding's offset index is
	// its position among the set's dynamic bindings in binding order.
	dynOrdinal := func(binding uint32) int {
		n := 0
		for _, rb := range s.bindings {
			if (rb.kind == rhi.DescriptorDynamicUniformBuffer || rb.kind == rhi.DescriptorDynamicStorageBuffer) && rb.binding < binding {
				n++
			}
		}
		return n
	}
	i := 0
	for i < len(s.bindings) {
		b := s.bindings[i]

		switch b.kind {
		case rhi.DescriptorUniformBuffer:
			run := s.collectBufferRun(i, b.kind)
			if multiBindSupported && len(run) > 1 {
				s.bindBufferRunMulti(ctx, sc, gl.UNIFORM_BUFFER, run)
			} else {
				for _, rb := range run {
					if err := sc.BindUniformBuffer(rb.glIndex, rb.buffer.Name, rb.offset, rb.size); err != nil {
						return err
					}
				}
			}
			i += len(run)

		case rhi.DescriptorDynamicUniformBuffer:
			dynIdx := dynOrdinal(b.binding)
			offset, err := nextDynamicOffset(dynamicOffsets, &dynIdx)
			if err != nil {
				return err
			}
			if err := sc.BindUniformBuffer(b.glIndex, b.buffer.Name, offset, b.size); err != nil {
				return err
			}
			i++

		case rhi.DescriptorStorageBuffer:
			run := s.collectBufferRun(i, b.kind)
			if multiBindSupported && len(run) > 1 {
				s.bindBufferRunMulti(ctx, sc, gl.SHADER_STORAGE_BUFFER, run)
			} else {
				for _, rb := range run {
					if err := sc.BindStorageBuffer(rb.glIndex, rb.buffer.Name, rb.offset, rb.size); err != nil {
						return err
					}
				}
			}
			i += len(run)

		case rhi.DescriptorDynamicStorageBuffer:
			dynIdx := dynOrdinal(b.binding)
			offset, err := nextDynamicOffset(dynamicOffsets, &dynIdx)
			if err != nil {
				return err
			}
			if err := sc.BindStorageBuffer(b.glIndex, b.buffer.Name, offset, b.size); err != nil {
				return err
			}
			i++

		case rhi.DescriptorSampledTexture:
			run := s.collectTextureRun(i, b.kind)
			if multiBindSupported && len(run) > 1 {
				names := make([]uint32, len(run))
				for j, rb := range run {
					names[j] = rb.textureView.Name
				}
				ctx.BindTextures(run[0].glIndex, names)
				for j, name := range names {
					sc.MarkTextureUnitBound(run[0].glIndex+uint32(j), name)
				}
			} else {
				for _, rb := range run {
					if err := sc.BindTextureUnit(rb.glIndex, rb.textureView.Name); err != nil {
						return err
					}
				}
			}
			i += len(run)

		case rhi.DescriptorStorageTexture:
			// Image units have no multi-bind entry point in this backend and
			// no state-cache mirror (spec §4.1's tracked bind points list
			// texture/sampler units, not image units), so each slot is bound
			// directly every time.
			view := b.textureView
			access := storageTextureAccessMode(view.Source.Usage)
			layered := view.LayerCount > 1
			ctx.BindImageTexture(b.glIndex, view.Name, int32(view.BaseMip), layered, int32(view.BaseLayer), access, view.Source.glFormat.Internal)
			i++

		case rhi.DescriptorCombinedTextureSampler:
			if err := sc.BindTextureUnit(b.glIndex, b.textureView.Name); err != nil {
				return err
			}
			if err := sc.BindSampler(s.Layout.glBinding[b.binding+combinedSamplerOffset], b.sampler.Name); err != nil {
				return err
			}
			i++

		case rhi.DescriptorSampler:
			if err := sc.BindSampler(b.glIndex, b.sampler.Name); err != nil {
				return err
			}
			i++

		default:
			i++
		}
	}
	return nil
}

// storageTextureAccessMode infers a glBindImageTexture access mode from a
// storage texture's declared usage flags, per spec §4.7: "access is
// inferred from the texture's usage flags (read-write if both read and
// write usage bits are set; write-only if only UAV; read-only if only
// shader-resource; read-write as safe fallback)". rhi.TextureUsage only
// carries Sampled and Storage bits (no separate read/write granularity), so
// Sampled+Storage together is treated as the "both" case and Storage alone
// as write-only; anything else falls back to read-write.
func storageTextureAccessMode(usage rhi.TextureUsage) uint32 {
	sampled := usage&rhi.TextureUsageSampled != 0
	storage := usage&rhi.TextureUsageStorage != 0
	switch {
	case sampled && storage:
		return gl.READ_WRITE
	case storage:
		return gl.WRITE_ONLY
	default:
		return gl.READ_WRITE
	}
}

func nextDynamicOffset(dynamicOffsets []uint64, dynIdx *int) (uint64, error) {
	if *dynIdx >= len(dynamicOffsets) {
		return 0, NewValidationError("DescriptorSet", "dynamicOffsets", "not enough dynamic offsets supplied for this bind")
	}
	offset := dynamicOffsets[*dynIdx]
	*dynIdx++
	if offset%uint64(dynamicOffsetAlignment) != 0 {
		return 0, ErrMisalignedOffset
	}
	return offset, nil
}

// dynamicOffsetAlignment is the minimum alignment this backend enforces for
// dynamic uniform/storage buffer offsets (spec §9's resolved Open
// Question: validated strictly, GL_UNIFORM_BUFFER_OFFSET_ALIGNMENT's
// typical driver-reported value). Device queries the real value at
// startup and can override this; kept as a conservative floor here so a
// DescriptorSet built before a Device exists still validates sanely.
var dynamicOffsetAlignment uint32 = 256

func (s *DescriptorSet) collectBufferRun(start int, kind rhi.DescriptorKind) []resolvedBinding {
	run := []resolvedBinding{s.bindings[start]}
	for j := start + 1; j < len(s.bindings); j++ {
		next := s.bindings[j]
		if next.kind != kind || next.glIndex != run[len(run)-1].glIndex+1 {
			break
		}
		run = append(run, next)
	}
	return run
}

func (s *DescriptorSet) collectTextureRun(start int, kind rhi.DescriptorKind) []resolvedBinding {
	run := []resolvedBinding{s.bindings[start]}
	for j := start + 1; j < len(s.bindings); j++ {
		next := s.bindings[j]
		if next.kind != kind || next.glIndex != run[len(run)-1].glIndex+1 {
			break
		}
		run = append(run, next)
	}
	return run
}

func (s *DescriptorSet) bindBufferRunMulti(ctx *gl.Context, sc *StateCache, target uint32, run []resolvedBinding) {
	buffers := make([]uint32, len(run))
	offsets := make([]int, len(run))
	sizes := make([]int, len(run))
	for i, rb := range run {
		buffers[i] = rb.buffer.Name
		offsets[i] = int(rb.offset)
		sizes[i] = int(rb.size)
	}
	ctx.BindBuffersRange(target, run[0].glIndex, buffers, offsets, sizes)
	for i, rb := range run {
		idx := run[0].glIndex + uint32(i)
		if target == gl.UNIFORM_BUFFER {
			sc.MarkUniformBufferBound(idx, rb.buffer.Name, rb.offset, rb.size)
		} else {
			sc.MarkStorageBufferBound(idx, rb.buffer.Name, rb.offset, rb.size)
		}
	}
}
