package glsl

import "github.com/soypat/tgsi2glsl/ir"

var swizChar = [4]byte{'x', 'y', 'z', 'w'}

func writemaskSuffix(mask uint8) string {
	if mask == 0 || mask == 0xf {
		return ""
	}
	s := "."
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			s += string(swizChar[i])
		}
	}
	return s
}

func writemaskComponentCount(mask uint8) int {
	if mask == 0 {
		return 4
	}
	n := 0
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			n++
		}
	}
	return n
}

func swizzleSuffix(sw [4]uint8) string {
	if sw == [4]uint8{0, 1, 2, 3} {
		return ""
	}
	s := "."
	for i := 0; i < 4; i++ {
		s += string(swizChar[sw[i]&3])
	}
	return s
}

func (ds *dumpState) stageConstPrefix() string {
	switch ds.stage {
	case ir.StageVertex:
		return "vs"
	case ir.StageFragment:
		return "fs"
	case ir.StageGeometry:
		return "gs"
	case ir.StageCompute:
		return "cs"
	default:
		return "vs"
	}
}

func (ds *dumpState) findInput(reg int) *IOSlot {
	for i := range ds.inputs {
		if ds.inputs[i].Reg == reg {
			return &ds.inputs[i]
		}
	}
	return nil
}

func (ds *dumpState) findOutput(reg int) *IOSlot {
	for i := range ds.outputs {
		if ds.outputs[i].Reg == reg {
			return &ds.outputs[i]
		}
	}
	return nil
}

// hasColorOutput reports whether the program declared any SemColor output,
// the condition write_all_cbufs broadcasting (spec §4.4) depends on.
func (ds *dumpState) hasColorOutput() bool {
	for i := range ds.outputs {
		if ds.outputs[i].Semantic == ir.SemColor {
			return true
		}
	}
	return false
}

func (ds *dumpState) findSysVal(reg int) *IOSlot {
	for i := range ds.sysVals {
		if ds.sysVals[i].Reg == reg {
			return &ds.sysVals[i]
		}
	}
	return nil
}

func (ds *dumpState) findTempRange(idx int) *TempRange {
	for i := range ds.tempRanges {
		r := &ds.tempRanges[i]
		if idx >= r.First && idx <= r.Last {
			return r
		}
	}
	return nil
}

func (ds *dumpState) tempExpr(idx int) string {
	r := ds.findTempRange(idx)
	if r == nil {
		return "temp" + itoa(idx)
	}
	if r.First == r.Last {
		return "temp" + itoa(r.First)
	}
	return "temp" + itoa(r.First) + "[" + itoa(idx-r.First) + "]"
}

func (ds *dumpState) addrExpr(reg int) string { return "addr" + itoa(reg) }

// indirectSuffix renders an indirect/dimension address expression, e.g.
// "[addr0 + 1]" (spec §4.3 point 3).
func indirectSuffix(addrReg, off int) string {
	if off == 0 {
		return "[addr" + itoa(addrReg) + "]"
	}
	if off > 0 {
		return "[addr" + itoa(addrReg) + " + " + itoa(off) + "]"
	}
	return "[addr" + itoa(addrReg) + " - " + itoa(-off) + "]"
}

// baseRegExpr resolves the textual form of a register reference, ignoring
// swizzle/negate/writemask (spec §4.3 point 3), for the file kinds that can
// appear as plain arithmetic operands.
func (ds *dumpState) baseRegExpr(file ir.File, index int, indirectFile ir.File, indirectIdx, indirectOff int) (string, error) {
	switch file {
	case ir.FileTemporary:
		if indirectFile != ir.FileNull {
			base := ds.findTempRange(index)
			first := index
			if base != nil {
				first = base.First
			}
			return "temp" + itoa(first) + indirectSuffix(indirectIdx, indirectOff), nil
		}
		return ds.tempExpr(index), nil
	case ir.FileInput:
		if s := ds.findInput(index); s != nil {
			if s.Semantic == ir.SemColor && ds.twoSideColorMask&(1<<uint(s.Index)) != 0 {
				return "realcolor" + itoa(s.Index), nil
			}
			if s.GLIn {
				// Resolved with vertex index 0 when the caller has no
				// dimension in hand; srcExpr overrides with the real one.
				return ds.glInExpr(s, "0"), nil
			}
			return s.Name, nil
		}
		return "", errUnsupported("operand", "undeclared input register")
	case ir.FileOutput:
		if s := ds.findOutput(index); s != nil {
			return s.Name, nil
		}
		return "", errUnsupported("operand", "undeclared output register")
	case ir.FileSystemValue:
		if s := ds.findSysVal(index); s != nil {
			return s.Name, nil
		}
		return "", errUnsupported("operand", "undeclared system value register")
	case ir.FileConstant:
		idx := itoa(index)
		if indirectFile != ir.FileNull {
			idx = "addr" + itoa(indirectIdx)
			if indirectOff != 0 {
				idx += " + " + itoa(indirectOff)
			}
		}
		return "uintBitsToFloat(" + ds.stageConstPrefix() + "const0[" + idx + "])", nil
	case ir.FileAddress:
		return ds.addrExpr(index), nil
	default:
		return "", errUnsupported("operand", "unhandled operand file "+file.String())
	}
}

// glInExpr renders a geometry-stage per-vertex input access: built-ins go
// through gl_in[v], user inputs are arrays indexed by vertex (spec §4.1
// INPUT, geometry stage).
func (ds *dumpState) glInExpr(s *IOSlot, vertex string) string {
	if s.Predefined {
		return "gl_in[" + vertex + "]." + s.Name
	}
	return s.Name + "[" + vertex + "]"
}

// dimVertexExpr renders the vertex index a geometry-stage source operand
// carries in its dimension field.
func dimVertexExpr(s ir.SrcOperand) string {
	if !s.HasDimension {
		return "0"
	}
	if s.DimIndirect {
		return "addr" + itoa(s.DimAddrNum)
	}
	return itoa(s.DimIndex)
}

// uboExpr renders a dimensioned CONSTANT reference: either the per-binding
// block member or the instanced block array when the program addresses the
// dimension indirectly (spec §4.5 point 5).
func (ds *dumpState) uboExpr(s ir.SrcOperand) string {
	idx := itoa(s.Index)
	if s.IndirectFile != ir.FileNull {
		idx = "addr" + itoa(s.IndirectIndex)
		if s.IndirectOff != 0 {
			idx += " + " + itoa(s.IndirectOff)
		}
	}
	if ds.indirectUBO {
		dim := itoa(s.DimIndex)
		if s.DimIndirect {
			dim = "addr" + itoa(s.DimAddrNum)
			ds.usesGPUShader5 = true
		}
		return "uboarr[" + dim + "].ubo_data[" + idx + "]"
	}
	return "ubo" + itoa(s.DimIndex) + "_data[" + idx + "]"
}

// srcBaseExpr resolves a source operand's base expression, handling the
// source-only addressing forms (dimensioned constants, geometry per-vertex
// inputs) before falling back to the shared register resolver.
func (ds *dumpState) srcBaseExpr(s ir.SrcOperand) (string, error) {
	if s.File == ir.FileConstant && s.HasDimension {
		return ds.uboExpr(s), nil
	}
	if s.File == ir.FileInput {
		if slot := ds.findInput(s.Index); slot != nil && slot.GLIn {
			return ds.glInExpr(slot, dimVertexExpr(s)), nil
		}
	}
	return ds.baseRegExpr(s.File, s.Index, s.IndirectFile, s.IndirectIndex, s.IndirectOff)
}

// srcExpr resolves a full source operand expression: base register,
// dimension/indirect addressing, swizzle, and abs/negate modifiers (spec
// §4.3 point 3).
func (ds *dumpState) srcExpr(s ir.SrcOperand) (string, error) {
	if s.File == ir.FileImmediate {
		if s.Index < 0 || s.Index >= len(ds.immediates) {
			return "", errUnsupported("operand", "immediate index out of range")
		}
		im := ds.immediates[s.Index]
		expr := immediateVec4GLSL(im) + swizzleSuffix(s.Swizzle)
		return applySignModifiers(expr, s.Abs, s.Negate), nil
	}

	base, err := ds.srcBaseExpr(s)
	if err != nil {
		return "", err
	}
	expr := base + swizzleSuffix(s.Swizzle)
	return applySignModifiers(expr, s.Abs, s.Negate), nil
}

// srcExprTyped is srcExpr, but reinterprets the whole 4-wide register as
// regType st (ivec4/uvec4) before the swizzle is applied, for opcodes whose
// source type differs from GLSL's float-typed pipeline registers (spec
// §4.3 point 1). Immediates already carry their own type tag and are
// rendered directly rather than reinterpreted.
func (ds *dumpState) srcExprTyped(s ir.SrcOperand, st regType) (string, error) {
	if st == typeFloat {
		return ds.srcExpr(s)
	}
	if s.File == ir.FileImmediate {
		return ds.srcExpr(s)
	}
	base, err := ds.srcBaseExpr(s)
	if err != nil {
		return "", err
	}
	if ds.srcIsInt(s) {
		// Already integer-typed (gl_PrimitiveID, gl_InstanceID, ...): the
		// reinterpret prefix is suppressed (spec §4.3 tie-breaks).
		expr := base + swizzleSuffix(s.Swizzle)
		return applySignModifiers(expr, s.Abs, s.Negate), nil
	}
	wrapped := reinterpretFromFloat(st, base, 4)
	expr := wrapped + swizzleSuffix(s.Swizzle)
	return applySignModifiers(expr, s.Abs, s.Negate), nil
}

// srcIsInt reports whether the source register is bound to an
// integer-typed built-in.
func (ds *dumpState) srcIsInt(s ir.SrcOperand) bool {
	var slot *IOSlot
	switch s.File {
	case ir.FileInput:
		slot = ds.findInput(s.Index)
	case ir.FileSystemValue:
		slot = ds.findSysVal(s.Index)
	}
	return slot != nil && slot.IsInt
}

// dstWM is the destination writemask suffix, honoring the slot's
// override-writemask flag (spec §3 IOSlot): built-ins like gl_SampleMask
// and gl_PointCoord take no component suffix.
func (ds *dumpState) dstWM(d ir.DstOperand) string {
	if d.File == ir.FileOutput {
		if s := ds.findOutput(d.Index); s != nil && s.OverrideWM {
			return ""
		}
	}
	return writemaskSuffix(d.WriteMask)
}

// dstIsInt reports whether the destination resolves to an integer-typed
// built-in (gl_Layer, gl_ViewportIndex, gl_SampleMask, ...), which takes a
// plain int conversion instead of a bit reinterpret.
func (ds *dumpState) dstIsInt(d ir.DstOperand) bool {
	if d.File != ir.FileOutput {
		return false
	}
	s := ds.findOutput(d.Index)
	return s != nil && s.IsInt
}

func applySignModifiers(expr string, abs, neg bool) string {
	if abs {
		expr = "abs(" + expr + ")"
	}
	if neg {
		expr = "-" + expr
	}
	return expr
}

// dstExpr resolves the destination operand's textual form, honoring the
// redirected-write resolution step (spec §9): the IOSlot.Name already
// carries the redirected temporary (clip_dist_temp, clipv_tmp, ...) set up
// by the Declaration Analyser, so this stays a simple lookup.
func (ds *dumpState) dstExpr(d ir.DstOperand) (string, error) {
	switch d.File {
	case ir.FileTemporary:
		if d.IndirectFile != ir.FileNull {
			r := ds.findTempRange(d.Index)
			first := d.Index
			if r != nil {
				first = r.First
			}
			return "temp" + itoa(first) + indirectSuffix(d.IndirectIndex, d.IndirectOff), nil
		}
		return ds.tempExpr(d.Index), nil
	case ir.FileOutput:
		if s := ds.findOutput(d.Index); s != nil {
			if s.Semantic == ir.SemClipDist {
				// Two vec4 slots selected by which half the register covers.
				half := (d.Index - s.Reg) % 2
				return s.Name + "[" + itoa(half) + "]", nil
			}
			if s.Semantic == ir.SemSampleMask {
				// Element-wise: the writemask selects the mask word.
				word := 0
				for b := 0; b < 4; b++ {
					if d.WriteMask&(1<<uint(b)) != 0 {
						word = b
						break
					}
				}
				return s.Name + "[" + itoa(word) + "]", nil
			}
			return s.Name, nil
		}
		return "", errUnsupported("operand", "undeclared output register")
	case ir.FileAddress:
		return ds.addrExpr(d.Index), nil
	default:
		return "", errUnsupported("operand", "unhandled destination file "+d.File.String())
	}
}
