// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"hash/fnv"

	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

// GraphicsPipeline bundles a linked Program with the fixed-function state
// a draw call needs (topology, rasterizer, depth-stencil, blend, vertex
// input layout) so CommandContext can apply it as a single unit on bind.
// Grounded on hal/gles/resource.go's RenderPipeline, restructured around
// the spec's descriptor-set-layout-driven binding model instead of the
// teacher's WGSL-reflection-driven one.
type GraphicsPipeline struct {
	Program        *Program
	Topology       uint32
	VertexBuffers  []rhi.VertexBufferLayout
	ColorTargets   []rhi.ColorTargetState
	DepthStencil   *rhi.DepthStencilState
	Rasterizer     rhi.RasterizerState
	SampleCount    uint32
	InputLayoutHash uint64
}

// CreateGraphicsPipeline links the vertex and fragment shaders and captures
// the descriptor's fixed-function state.
func CreateGraphicsPipeline(ctx *gl.Context, desc rhi.GraphicsPipelineDescriptor, vs, fs *Shader) (*GraphicsPipeline, error) {
	program, err := LinkProgram(ctx, vs, fs)
	if err != nil {
		return nil, err
	}

	topology, ok := topologyGL[desc.Topology]
	if !ok {
		ctx.DeleteProgram(program.Name)
		return nil, NewValidationErrorf("GraphicsPipeline", "Topology", "unknown topology %v", desc.Topology)
	}

	samples := desc.SampleCount
	if samples == 0 {
		samples = 1
	}

	return &GraphicsPipeline{
		Program:         program,
		Topology:        topology,
		VertexBuffers:   desc.VertexBuffers,
		ColorTargets:    desc.ColorTargets,
		DepthStencil:    desc.DepthStencil,
		Rasterizer:      desc.Rasterizer,
		SampleCount:     samples,
		InputLayoutHash: hashVertexBufferLayouts(desc.VertexBuffers),
	}, nil
}

// hashVertexBufferLayouts produces a stable fingerprint of a pipeline's
// vertex input layout for use as the PipelineLayout field of a VaoKey, so
// two pipelines with identical attribute layouts share cached VAOs.
func hashVertexBufferLayouts(layouts []rhi.VertexBufferLayout) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeUint64 := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	for _, l := range layouts {
		writeUint64(l.Stride)
		writeUint64(uint64(l.StepMode))
		for _, a := range l.Attributes {
			writeUint64(uint64(a.ShaderLocation))
			writeUint64(uint64(a.Format))
			writeUint64(uint64(a.Offset))
		}
	}
	return h.Sum64()
}

// Destroy enqueues the pipeline's program for deferred deletion.
func (p *GraphicsPipeline) Destroy(dq *DeletionQueue) {
	p.Program.Destroy(dq)
}

// ComputePipeline wraps a single compute-shader program. Grounded on
// hal/gles/compute.go's ComputePipeline.
type ComputePipeline struct {
	Program *Program
}

// CreateComputePipeline links a single compute shader into its own program.
func CreateComputePipeline(ctx *gl.Context, cs *Shader) (*ComputePipeline, error) {
	program, err := LinkProgram(ctx, cs)
	if err != nil {
		return nil, err
	}
	return &ComputePipeline{Program: program}, nil
}

// Destroy enqueues the pipeline's program for deferred deletion.
func (p *ComputePipeline) Destroy(dq *DeletionQueue) {
	p.Program.Destroy(dq)
}
