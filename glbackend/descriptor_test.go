// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"testing"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

func TestCreateDescriptorSetLayout_PerKindCounters(t *testing.T) {
	layout := CreateDescriptorSetLayout(rhi.DescriptorSetLayoutDescriptor{
		Bindings: []rhi.DescriptorBindingLayout{
			{Binding: 0, Kind: rhi.DescriptorUniformBuffer, Count: 1},
			{Binding: 1, Kind: rhi.DescriptorUniformBuffer, Count: 1},
			{Binding: 2, Kind: rhi.DescriptorStorageBuffer, Count: 1},
			{Binding: 3, Kind: rhi.DescriptorSampledTexture, Count: 1},
			{Binding: 4, Kind: rhi.DescriptorSampler, Count: 1},
		},
	})

	if layout.glBinding[0] != uboBindingStart {
		t.Fatalf("expected first uniform buffer binding to start at %d, got %d", uboBindingStart, layout.glBinding[0])
	}
	if layout.glBinding[1] != uboBindingStart+1 {
		t.Fatalf("expected second uniform buffer binding at %d, got %d", uboBindingStart+1, layout.glBinding[1])
	}
	if layout.glBinding[2] != 0 {
		t.Fatalf("expected storage buffer counter to start at 0, got %d", layout.glBinding[2])
	}
	if layout.glBinding[3] != 0 {
		t.Fatalf("expected texture unit counter to start at 0, got %d", layout.glBinding[3])
	}
	if layout.glBinding[4] != 0 {
		t.Fatalf("expected sampler unit counter to start at 0, got %d", layout.glBinding[4])
	}
}

func TestCreateDescriptorSetLayout_CombinedSamplerGetsOwnSlot(t *testing.T) {
	layout := CreateDescriptorSetLayout(rhi.DescriptorSetLayoutDescriptor{
		Bindings: []rhi.DescriptorBindingLayout{
			{Binding: 0, Kind: rhi.DescriptorSampler, Count: 1},
			{Binding: 1, Kind: rhi.DescriptorCombinedTextureSampler, Count: 1},
		},
	})

	if layout.glBinding[1] != 0 {
		t.Fatalf("expected combined binding's texture unit to be 0, got %d", layout.glBinding[1])
	}
	if layout.glBinding[1+combinedSamplerOffset] != 1 {
		t.Fatalf("expected combined binding's sampler unit to be 1 (after the dedicated sampler at binding 0), got %d", layout.glBinding[1+combinedSamplerOffset])
	}
}

func TestCreateDescriptorSet_RejectsUndeclaredBinding(t *testing.T) {
	layout := CreateDescriptorSetLayout(rhi.DescriptorSetLayoutDescriptor{
		Bindings: []rhi.DescriptorBindingLayout{{Binding: 0, Kind: rhi.DescriptorUniformBuffer, Count: 1}},
	})

	_, err := CreateDescriptorSet(layout, rhi.DescriptorSetDescriptor{
		Entries: []rhi.DescriptorSetEntry{{Binding: 5, Buffer: &rhi.BufferBinding{}}},
	}, func(rhi.Handle) *Buffer { return nil }, func(rhi.Handle) *TextureView { return nil }, func(rhi.Handle) *Sampler { return nil })

	if !IsValidationError(err) {
		t.Fatalf("expected a ValidationError for an undeclared binding, got %v", err)
	}
}

func TestCreateDescriptorSet_ResolvesWholeSizeAgainstBufferSize(t *testing.T) {
	layout := CreateDescriptorSetLayout(rhi.DescriptorSetLayoutDescriptor{
		Bindings: []rhi.DescriptorBindingLayout{{Binding: 0, Kind: rhi.DescriptorUniformBuffer, Count: 1}},
	})
	buf := &Buffer{Name: 7, Size: 1024}

	set, err := CreateDescriptorSet(layout, rhi.DescriptorSetDescriptor{
		Entries: []rhi.DescriptorSetEntry{
			{Binding: 0, Buffer: &rhi.BufferBinding{Buffer: 1, Offset: 64, Size: rhi.WholeSize}},
		},
	}, func(rhi.Handle) *Buffer { return buf }, func(rhi.Handle) *TextureView { return nil }, func(rhi.Handle) *Sampler { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.bindings) != 1 {
		t.Fatalf("expected 1 resolved binding, got %d", len(set.bindings))
	}
	if got, want := set.bindings[0].size, uint64(1024-64); got != want {
		t.Fatalf("expected resolved size %d, got %d", want, got)
	}
}

func TestCreateDescriptorSet_RejectsUnknownBufferHandle(t *testing.T) {
	layout := CreateDescriptorSetLayout(rhi.DescriptorSetLayoutDescriptor{
		Bindings: []rhi.DescriptorBindingLayout{{Binding: 0, Kind: rhi.DescriptorUniformBuffer, Count: 1}},
	})

	_, err := CreateDescriptorSet(layout, rhi.DescriptorSetDescriptor{
		Entries: []rhi.DescriptorSetEntry{{Binding: 0, Buffer: &rhi.BufferBinding{Buffer: 99}}},
	}, func(rhi.Handle) *Buffer { return nil }, func(rhi.Handle) *TextureView { return nil }, func(rhi.Handle) *Sampler { return nil })

	if !IsValidationError(err) {
		t.Fatalf("expected a ValidationError for an unknown buffer handle, got %v", err)
	}
}

func TestNextDynamicOffset_RejectsMisalignedOffset(t *testing.T) {
	dynIdx := 0
	_, err := nextDynamicOffset([]uint64{17}, &dynIdx)
	if err != ErrMisalignedOffset {
		t.Fatalf("expected ErrMisalignedOffset, got %v", err)
	}
}

func TestNextDynamicOffset_RejectsExhaustedSlice(t *testing.T) {
	dynIdx := 1
	_, err := nextDynamicOffset([]uint64{0}, &dynIdx)
	if !IsValidationError(err) {
		t.Fatalf("expected a ValidationError when dynamicOffsets is exhausted, got %v", err)
	}
}

func TestStorageTextureAccessMode(t *testing.T) {
	cases := []struct {
		name  string
		usage rhi.TextureUsage
		want  uint32
	}{
		{"sampled and storage", rhi.TextureUsageSampled | rhi.TextureUsageStorage, gl.READ_WRITE},
		{"storage only", rhi.TextureUsageStorage, gl.WRITE_ONLY},
		{"sampled only falls back", rhi.TextureUsageSampled, gl.READ_WRITE},
		{"no usage bits falls back", rhi.TextureUsage(0), gl.READ_WRITE},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := storageTextureAccessMode(tc.usage); got != tc.want {
				t.Fatalf("storageTextureAccessMode(%v) = %#x, want %#x", tc.usage, got, tc.want)
			}
		})
	}
}
