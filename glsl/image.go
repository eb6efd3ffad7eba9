package glsl

import "github.com/soypat/tgsi2glsl/ir"

// emitImageOrBuffer implements LOAD/STORE/atomics against IMAGE and BUFFER
// declarations (spec §4.3 "Image / buffer"): a BUFFER resource is an SSBO
// and is indexed as a strided array; an IMAGE resource goes through
// imageLoad/imageStore/imageAtomic*.
func (ds *dumpState) emitImageOrBuffer(inst ir.Instruction) bool {
	if len(inst.Src) == 0 {
		return ds.fail(errUnsupported("image", "missing resource operand"))
	}
	res := inst.Src[len(inst.Src)-1]

	if res.File == ir.FileBuffer {
		return ds.emitBufferOp(inst, res)
	}
	return ds.emitImageOp(inst, res)
}

func (ds *dumpState) emitBufferOp(inst ir.Instruction, res ir.SrcOperand) bool {
	idx := res.Index
	if idx < 0 || idx >= 32 {
		return ds.fail(errUnsupported("buffer", "SSBO index out of range"))
	}
	ds.ssboUsed |= 1 << uint(idx)
	name := "ssbo" + itoa(idx)

	offset, err := ds.srcExpr(inst.Src[0])
	if err != nil {
		return ds.fail(errUnsupported("buffer", err.Error()))
	}
	// Strided indirect indexing: byte offset divided by 16 (one vec4 per
	// element) selects the SSBO's backing array slot (spec §9).
	slot := "(int(" + offset + ".x) >> 4)"

	switch inst.Opcode {
	case ir.OpLOAD:
		if len(inst.Dst) == 0 {
			return ds.fail(errUnsupported("buffer", "LOAD missing destination"))
		}
		dstExpr, err := ds.dstExpr(inst.Dst[0])
		if err != nil {
			return ds.fail(errUnsupported("buffer", err.Error()))
		}
		wm := ds.dstWM(inst.Dst[0])
		ds.body.stmt(dstExpr + wm + " = uintBitsToFloat(" + name + ".data[" + slot + "])" + wm + ";")
		return true
	case ir.OpSTORE:
		val, err := ds.srcExpr(inst.Src[1])
		if err != nil {
			return ds.fail(errUnsupported("buffer", err.Error()))
		}
		ds.body.stmt(name + ".data[" + slot + "] = floatBitsToUint(vec4(" + val + "));")
		return true
	default:
		// SSBO atomics operate on one uint member, not an image unit.
		fn, ok := bufferAtomicBuiltin[inst.Opcode]
		if !ok {
			return ds.fail(errUnsupported("atomic", "unhandled atomic opcode"))
		}
		return ds.emitAtomicCall(inst, fn, name+".data["+slot+"].x")
	}
}

func (ds *dumpState) emitImageOp(inst ir.Instruction, res ir.SrcOperand) bool {
	idx := res.Index
	if idx < 0 || idx >= len(ds.images) {
		return ds.fail(errUnsupported("image", "image unit out of range"))
	}
	img := ds.images[idx]
	name := "img" + itoa(idx)
	info := samplerTable(img.Target, false)

	coord, err := ds.srcExpr(inst.Src[0])
	if err != nil {
		return ds.fail(errUnsupported("image", err.Error()))
	}
	coordExpr := intCoord(coord, info.coordDim)

	// Multisample image kinds take an extra sample-index argument, read
	// from the coordinate's .w lane (spec §4.3 "Image / buffer").
	sampleArg := ""
	if img.Target == ir.Tex2DMS || img.Target == ir.Tex2DMSArray {
		sampleArg = ", int(" + coord + ".w)"
	}

	switch inst.Opcode {
	case ir.OpLOAD:
		if len(inst.Dst) == 0 {
			return ds.fail(errUnsupported("image", "LOAD missing destination"))
		}
		dstExpr, err := ds.dstExpr(inst.Dst[0])
		if err != nil {
			return ds.fail(errUnsupported("image", err.Error()))
		}
		wm := ds.dstWM(inst.Dst[0])
		ds.body.stmt(dstExpr + wm + " = imageLoad(" + name + ", " + coordExpr + sampleArg + ")" + wm + ";")
		return true
	case ir.OpSTORE:
		val, err := ds.srcExpr(inst.Src[1])
		if err != nil {
			return ds.fail(errUnsupported("image", err.Error()))
		}
		ds.body.stmt("imageStore(" + name + ", " + coordExpr + sampleArg + ", " + val + ");")
		return true
	default:
		fn, ok := atomicBuiltin[inst.Opcode]
		if !ok {
			return ds.fail(errUnsupported("atomic", "unhandled atomic opcode"))
		}
		return ds.emitAtomicCall(inst, fn, name+", "+coordExpr+sampleArg)
	}
}

// atomicBuiltin names the GLSL image atomic function for an IR atomic
// opcode (spec §4.3 image atomics).
var atomicBuiltin = map[ir.Opcode]string{
	ir.OpATOMUADD:  "imageAtomicAdd",
	ir.OpATOMXCHG:  "imageAtomicExchange",
	ir.OpATOMCAS:   "imageAtomicCompSwap",
	ir.OpATOMAND:   "imageAtomicAnd",
	ir.OpATOMOR:    "imageAtomicOr",
	ir.OpATOMXOR:   "imageAtomicXor",
	ir.OpATOMUMIN:  "imageAtomicMin",
	ir.OpATOMUMAX:  "imageAtomicMax",
	ir.OpATOMIMIN:  "imageAtomicMin",
	ir.OpATOMIMAX:  "imageAtomicMax",
}

// bufferAtomicBuiltin names the GLSL memory atomic function for SSBO
// targets, where the image forms do not apply.
var bufferAtomicBuiltin = map[ir.Opcode]string{
	ir.OpATOMUADD: "atomicAdd",
	ir.OpATOMXCHG: "atomicExchange",
	ir.OpATOMCAS:  "atomicCompSwap",
	ir.OpATOMAND:  "atomicAnd",
	ir.OpATOMOR:   "atomicOr",
	ir.OpATOMXOR:  "atomicXor",
	ir.OpATOMUMIN: "atomicMin",
	ir.OpATOMUMAX: "atomicMax",
	ir.OpATOMIMIN: "atomicMin",
	ir.OpATOMIMAX: "atomicMax",
}

// emitAtomicCall is shared between image and SSBO atomics: target is either
// "img0, ivec2(...)" (image form) or "ssbo0.data[slot].x" (buffer form).
func (ds *dumpState) emitAtomicCall(inst ir.Instruction, fn, target string) bool {
	if len(inst.Dst) == 0 {
		return ds.fail(errUnsupported("atomic", "missing destination"))
	}
	dstExpr, err := ds.dstExpr(inst.Dst[0])
	if err != nil {
		return ds.fail(errUnsupported("atomic", err.Error()))
	}

	var argv []string
	for i := 1; i < len(inst.Src)-1; i++ {
		a, err := ds.srcExprTyped(inst.Src[i], typeUint)
		if err != nil {
			return ds.fail(errUnsupported("atomic", err.Error()))
		}
		argv = append(argv, a+".x")
	}

	call := fn + "(" + target
	for _, a := range argv {
		call += ", " + a
	}
	call += ")"

	ds.body.stmt(dstExpr + ".x = uintBitsToFloat(" + call + ");")
	return true
}
