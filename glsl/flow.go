package glsl

import "github.com/soypat/tgsi2glsl/ir"

// emitStageExit handles END/RET by dispatching to the matching stage
// epilogue (spec §4.4): a fragment or vertex shader's exit point is where
// the fixed-function emulation copies happen, so the translator cannot
// simply emit "return;" for the final instruction.
func (ds *dumpState) emitStageExit(inst ir.Instruction) bool {
	switch ds.stage {
	case ir.StageVertex:
		ds.emitVertexEpilogue()
	case ir.StageFragment:
		ds.emitFragmentEpilogue()
	}
	if inst.Opcode == ir.OpRET {
		ds.body.stmt("return;")
	}
	return true
}

// emitGeometryEmit implements EMIT (spec §4.3 geometry stage): stream-output
// copies, clip-distance packing and the Y-prescale all run before each
// vertex is emitted, since EmitVertex latches every per-vertex output. A
// non-zero stream selects the streamed variant and requires multi-stream
// support.
func (ds *dumpState) emitGeometryEmit(inst ir.Instruction) bool {
	if len(ds.so) > 0 {
		ds.emitSOCopies()
	}
	ds.emitClipDistPacking()
	for i := range ds.outputs {
		if ds.outputs[i].Semantic == ir.SemPosition {
			ds.emitYPrescale()
			break
		}
	}
	if inst.Stream != 0 {
		ds.usesGPUShader5 = true
		ds.body.stmt("EmitStreamVertex(" + itoa(inst.Stream) + ");")
	} else {
		ds.body.stmt("EmitVertex();")
	}
	return true
}

func (ds *dumpState) emitGeometryEndPrim(inst ir.Instruction) bool {
	if inst.Stream != 0 {
		ds.body.stmt("EndStreamPrimitive(" + itoa(inst.Stream) + ");")
	} else {
		ds.body.stmt("EndPrimitive();")
	}
	return true
}

// emitInterp implements the INTERP_CENTROID/SAMPLE/OFFSET intrinsics (spec
// §4.3): each reads a fragment-stage input at a non-default sample
// location via the corresponding interpolateAt* builtin, stashing the
// result in a helper temporary so a following instruction can consume it
// like any other source register.
func (ds *dumpState) emitInterp(inst ir.Instruction) bool {
	if len(inst.Dst) == 0 || len(inst.Src) == 0 {
		return ds.fail(errUnsupported("interp", "missing operands"))
	}
	dstExpr, err := ds.dstExpr(inst.Dst[0])
	if err != nil {
		return ds.fail(errUnsupported("interp", err.Error()))
	}
	src, err := ds.srcExpr(inst.Src[0])
	if err != nil {
		return ds.fail(errUnsupported("interp", err.Error()))
	}

	ds.usesGPUShader5 = true
	ds.usesInterpTemp = true

	var rhs string
	switch inst.Opcode {
	case ir.OpINTERP_CENTROID:
		rhs = "interpolateAtCentroid(" + src + ")"
	case ir.OpINTERP_SAMPLE:
		ds.usesSampleShading = true
		idx, err := ds.srcExpr(inst.Src[1])
		if err != nil {
			return ds.fail(errUnsupported("interp", err.Error()))
		}
		rhs = "interpolateAtSample(" + src + ", int(" + idx + ".x))"
	case ir.OpINTERP_OFFSET:
		off, err := ds.srcExpr(inst.Src[1])
		if err != nil {
			return ds.fail(errUnsupported("interp", err.Error()))
		}
		rhs = "interpolateAtOffset(" + src + ", " + off + ".xy)"
	}

	// spec §4.3/§4.5 point 6: stash the interpolated value in interp_temp,
	// then move the requested swizzle into the destination.
	ds.body.stmt("interp_temp = " + rhs + ";")
	wm := ds.dstWM(inst.Dst[0])
	ds.body.stmt(dstExpr + wm + " = interp_temp" + wm + ";")
	return true
}
