package glsl

import "github.com/soypat/tgsi2glsl/ir"

// emitTexture implements the TEX/TXB/TXL/TXD/TXF/TXP/TG4/TXQ/LODQ family
// (spec §4.3 "Texture family"). The bound sampler's declared GLSL type
// (sampler2D, sampler2DShadow, ...) was fixed at declaration time; this
// only has to pick the right builtin and argument shape for the opcode,
// and apply the shadow post-multiply and GLES 1D-as-2D emulation where
// those apply.
func (ds *dumpState) emitTexture(inst ir.Instruction) bool {
	if len(inst.Src) == 0 {
		return ds.fail(errUnsupported("texture", "missing coordinate operand"))
	}
	samplerSrc := inst.Src[len(inst.Src)-1]
	unit := samplerSrc.Index
	if unit < 0 || unit >= len(ds.samplers) {
		return ds.fail(errUnsupported("texture", "sampler unit out of range"))
	}
	samp := ds.samplers[unit]
	samplerName := ds.samplerExpr(unit, samplerSrc)

	target := inst.Texture
	emulated1D := ds.cfg.IsES() && target == ir.Tex1D
	if emulated1D {
		target = ir.Tex2D
	}
	info := samplerTable(target, samp.Shadow)

	coord, err := ds.srcExpr(inst.Src[0])
	if err != nil {
		return ds.fail(errUnsupported("texture", err.Error()))
	}
	if emulated1D {
		coord = "vec2(" + coord + ".x, 0.5)"
	}
	// GLSL's texture()/textureLod()/textureGather() overloads require a P
	// argument of the exact dimension the sampler type expects (unlike a
	// constructor, a function call performs no vector truncation): wrap
	// the resolved operand, which always carries a full four-lane
	// swizzle, down to the sampler's coordinate width (spec §4.3 "a
	// coordinate type ... derived from the sampler kind").
	sampCoord := vecN(info.coordDim) + "(" + coord + ")"
	if emulated1D {
		sampCoord = coord
	}

	if inst.Opcode == ir.OpTXQ {
		return ds.emitTXQ(inst, samplerName, info)
	}
	if inst.Opcode == ir.OpLODQ {
		ds.usesLodq = true
		if len(inst.Dst) == 0 {
			return ds.fail(errUnsupported("texture", "LODQ missing destination"))
		}
		dstExpr, err := ds.dstExpr(inst.Dst[0])
		if err != nil {
			return ds.fail(errUnsupported("texture", err.Error()))
		}
		ds.body.stmt(dstExpr + " = textureQueryLod(" + samplerName + ", " + sampCoord + ").xyxy;")
		return true
	}

	if len(inst.Dst) == 0 {
		return ds.fail(errUnsupported("texture", "missing destination"))
	}
	dstExpr, err := ds.dstExpr(inst.Dst[0])
	if err != nil {
		return ds.fail(errUnsupported("texture", err.Error()))
	}

	var call string
	switch inst.Opcode {
	case ir.OpTEX:
		if target == ir.TexRect && !ds.cfg.IsES() && ds.glslVerRequired < 140 {
			// Pre-140 rectangle lookups use the legacy builtin names.
			fn := "texture2DRect"
			if samp.Shadow {
				fn = "shadow2DRect"
			}
			call = fn + "(" + samplerName + ", " + sampCoord + ")"
			break
		}
		call = "texture(" + samplerName + ", " + sampCoord + ")"
	case ir.OpTXP:
		call = "textureProj(" + samplerName + ", " + coord + ")"
	case ir.OpTXB:
		bias, err := ds.srcExpr(inst.Src[1])
		if err != nil {
			return ds.fail(errUnsupported("texture", err.Error()))
		}
		call = "texture(" + samplerName + ", " + sampCoord + ", " + bias + ".x)"
	case ir.OpTXL:
		lod, err := ds.srcExpr(inst.Src[1])
		if err != nil {
			return ds.fail(errUnsupported("texture", err.Error()))
		}
		call = "textureLod(" + samplerName + ", " + sampCoord + ", " + lod + ".x)"
	case ir.OpTXF:
		call = "texelFetch(" + samplerName + ", " + intCoord(coord, info.coordDim) + ", 0)"
	case ir.OpTXD:
		ddx, err := ds.srcExpr(inst.Src[1])
		if err != nil {
			return ds.fail(errUnsupported("texture", err.Error()))
		}
		ddy, err := ds.srcExpr(inst.Src[2])
		if err != nil {
			return ds.fail(errUnsupported("texture", err.Error()))
		}
		call = "textureGrad(" + samplerName + ", " + sampCoord + ", " + ddx + ", " + ddy + ")"
	case ir.OpTG4:
		ds.usesTG4 = true
		ds.usesGPUShader5 = true
		if samp.Shadow {
			call = "textureGather(" + samplerName + ", " + sampCoord + ")"
		} else {
			call = "textureGather(" + samplerName + ", " + sampCoord + ", int(" + itoa(inst.Component) + "))"
		}
	default:
		return ds.fail(errUnsupported("texture", "unhandled texture opcode"))
	}

	if samp.Shadow {
		mask := "shadmask" + itoa(unit)
		add := "shadadd" + itoa(unit)
		call = "((" + call + ") * " + mask + " + " + add + ")"
		ds.shadowSamplerMask |= 1 << uint(unit)
	}

	wm := ds.dstWM(inst.Dst[0])
	ds.body.stmt(dstExpr + wm + " = " + call + wm + ";")
	return true
}

func (ds *dumpState) emitTXQ(inst ir.Instruction, samplerName string, info samplerInfo) bool {
	if len(inst.Dst) == 0 {
		return ds.fail(errUnsupported("texture", "TXQ missing destination"))
	}
	dstExpr, err := ds.dstExpr(inst.Dst[0])
	if err != nil {
		return ds.fail(errUnsupported("texture", err.Error()))
	}
	lod, err := ds.srcExpr(inst.Src[0])
	if err != nil {
		return ds.fail(errUnsupported("texture", err.Error()))
	}
	mask := inst.Dst[0].WriteMask
	if mask == 0 {
		mask = 0xf
	}
	// Dual-statement emission (spec §4.3): size first, level count second,
	// since GLSL has no single call returning both; each is only emitted
	// for the writemask components actually requested. TXQ's destination
	// type is integer, so both results round-trip through intBitsToFloat.
	if xyz := mask & 0x7; xyz != 0 {
		letters := ""
		for i := 0; i < 3; i++ {
			if xyz&(1<<uint(i)) != 0 {
				letters += string(swizChar[i])
			}
		}
		size := "textureSize(" + samplerName + txqLodArg(inst.Texture, lod) + ")"
		pad := 4 - txSizeDim(inst.Texture)
		padded := "ivec4(" + size
		for i := 0; i < pad; i++ {
			padded += ", 0"
		}
		padded += ")"
		ds.body.stmt(dstExpr + "." + letters + " = intBitsToFloat(" + padded + "." + letters + ");")
	}
	if mask&0x8 != 0 {
		ds.usesTXQLevels = true
		ds.body.stmt(dstExpr + ".w = intBitsToFloat(textureQueryLevels(" + samplerName + "));")
	}
	return true
}

// txqLodArg renders TXQ's level-of-detail argument; the target kinds with
// exactly one level take none.
func txqLodArg(t ir.TextureTarget, lod string) string {
	switch t {
	case ir.TexRect, ir.TexBuffer, ir.Tex2DMS, ir.Tex2DMSArray:
		return ""
	default:
		return ", int(" + lod + ".x)"
	}
}

// txSizeDim is the component count textureSize returns for a target.
func txSizeDim(t ir.TextureTarget) int {
	switch t {
	case ir.Tex1D, ir.TexBuffer:
		return 1
	case ir.Tex2D, ir.TexRect, ir.Tex1DArray, ir.TexCube, ir.Tex2DMS:
		return 2
	case ir.Tex3D, ir.Tex2DArray, ir.TexCubeArray, ir.Tex2DMSArray:
		return 3
	default:
		return 2
	}
}

func intCoord(coord string, dim int) string {
	return ivecN(dim) + "(" + coord + ")"
}

// findSamplerArray returns the SamplerArray containing unit, if any, per
// the [First,Last) half-open convention noted in spec §9.
func (ds *dumpState) findSamplerArray(unit int) *SamplerArray {
	for i := range ds.samplerArrays {
		a := &ds.samplerArrays[i]
		if unit >= a.First && unit < a.Last {
			return a
		}
	}
	return nil
}

// samplerExpr resolves the textual form of a sampler operand (spec §4.3
// texture family, §8 scenario 5 "indirect sampler indexing"): when the
// program uses indirect sampler indexing, SAMPLER_VIEW declarations are
// grouped into arrays (declare.go extendOrStartSamplerArray) and every
// reference into that group, direct or indirect, must index the array
// the same way the header declared it.
func (ds *dumpState) samplerExpr(unit int, src ir.SrcOperand) string {
	arr := ds.findSamplerArray(unit)
	if arr == nil {
		return "samp" + itoa(unit)
	}
	base := "samp" + itoa(arr.First)
	if src.IndirectFile != ir.FileNull {
		return base + indirectSuffix(src.IndirectIndex, src.IndirectOff)
	}
	return base + "[" + itoa(unit-arr.First) + "]"
}
