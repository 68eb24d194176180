// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"github.com/gogpu/glrhi/glbackend/gl"
	"github.com/gogpu/glrhi/rhi"
)

// topologyGL maps rhi draw topologies to their GL primitive mode, grounded
// on hal/gles/convert.go's primitive-topology switch.
var topologyGL = map[rhi.PrimitiveTopology]uint32{
	rhi.TopologyPointList:     gl.POINTS,
	rhi.TopologyLineList:      gl.LINES,
	rhi.TopologyLineStrip:     gl.LINE_STRIP,
	rhi.TopologyTriangleList:  gl.TRIANGLES,
	rhi.TopologyTriangleStrip: gl.TRIANGLE_STRIP,
}

var blendFactorGL = map[rhi.BlendFactor]uint32{
	rhi.BlendFactorZero:                  gl.ZERO,
	rhi.BlendFactorOne:                   gl.ONE,
	rhi.BlendFactorSrcColor:              gl.SRC_COLOR,
	rhi.BlendFactorOneMinusSrcColor:      gl.ONE_MINUS_SRC_COLOR,
	rhi.BlendFactorSrcAlpha:              gl.SRC_ALPHA,
	rhi.BlendFactorOneMinusSrcAlpha:      gl.ONE_MINUS_SRC_ALPHA,
	rhi.BlendFactorDstColor:              gl.DST_COLOR,
	rhi.BlendFactorOneMinusDstColor:      gl.ONE_MINUS_DST_COLOR,
	rhi.BlendFactorDstAlpha:              gl.DST_ALPHA,
	rhi.BlendFactorOneMinusDstAlpha:      gl.ONE_MINUS_DST_ALPHA,
	rhi.BlendFactorConstantColor:         gl.CONSTANT_COLOR,
	rhi.BlendFactorOneMinusConstantColor: gl.ONE_MINUS_CONSTANT_COLOR,
}

var blendOpGL = map[rhi.BlendOp]uint32{
	rhi.BlendOpAdd:             gl.FUNC_ADD,
	rhi.BlendOpSubtract:        gl.FUNC_SUBTRACT,
	rhi.BlendOpReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
	rhi.BlendOpMin:             gl.MIN,
	rhi.BlendOpMax:             gl.MAX,
}

var stencilOpGL = map[rhi.StencilOp]uint32{
	rhi.StencilOpKeep:            gl.KEEP,
	rhi.StencilOpZero:            gl.ZERO,
	rhi.StencilOpReplace:         gl.REPLACE,
	rhi.StencilOpIncrementClamp:  gl.INCR,
	rhi.StencilOpDecrementClamp:  gl.DECR,
	rhi.StencilOpInvert:          gl.INVERT,
	rhi.StencilOpIncrementWrap:   gl.INCR_WRAP,
	rhi.StencilOpDecrementWrap:   gl.DECR_WRAP,
}

var cullModeGL = map[rhi.CullMode]uint32{
	rhi.CullFront: gl.FRONT,
	rhi.CullBack:  gl.BACK,
}

var frontFaceGL = map[rhi.FrontFace]uint32{
	rhi.FrontFaceCCW: gl.CCW,
	rhi.FrontFaceCW:  gl.CW,
}

// vertexFormatInfo is how many scalar components a VertexFormat has and
// which GL scalar type/attrib-pointer flavor it needs.
type vertexFormatInfo struct {
	Components int32
	GLType     uint32
	Normalized bool
	Integer    bool // use VertexArrayAttribIFormat instead of ...Format
}

var vertexFormatTable = map[rhi.VertexFormat]vertexFormatInfo{
	rhi.VertexFormatFloat32:   {1, gl.FLOAT, false, false},
	rhi.VertexFormatFloat32x2: {2, gl.FLOAT, false, false},
	rhi.VertexFormatFloat32x3: {3, gl.FLOAT, false, false},
	rhi.VertexFormatFloat32x4: {4, gl.FLOAT, false, false},
	rhi.VertexFormatUint32:    {1, gl.UNSIGNED_INT, false, true},
	rhi.VertexFormatUint32x2:  {2, gl.UNSIGNED_INT, false, true},
	rhi.VertexFormatUint32x4:  {4, gl.UNSIGNED_INT, false, true},
	rhi.VertexFormatSint32:    {1, gl.INT, false, true},
	rhi.VertexFormatUnorm8x4:  {4, gl.UNSIGNED_BYTE, true, false},
	rhi.VertexFormatSnorm8x4:  {4, gl.BYTE, true, false},
}
