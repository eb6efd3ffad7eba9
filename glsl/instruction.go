package glsl

import "github.com/soypat/tgsi2glsl/ir"

// instruction translates one IR instruction into zero or more GLSL
// statements appended to ds.body (spec §4.3 Instruction Translator). It
// returns false (with ds.err set) on any unsupported construct.
func (ds *dumpState) instruction(inst ir.Instruction) bool {
	switch inst.Opcode {
	case ir.OpIF, ir.OpUIF:
		return ds.emitIf(inst)
	case ir.OpELSE:
		ds.body.pop()
		ds.body.stmt("} else {")
		ds.body.push()
		return true
	case ir.OpENDIF:
		ds.body.pop()
		ds.body.stmt("}")
		return true
	case ir.OpBGNLOOP:
		ds.body.stmt("do {")
		ds.body.push()
		return true
	case ir.OpENDLOOP:
		ds.body.pop()
		ds.body.stmt("} while (true);")
		return true
	case ir.OpBRK:
		ds.body.stmt("break;")
		return true
	case ir.OpCONT:
		ds.body.stmt("continue;")
		return true
	case ir.OpEND, ir.OpRET:
		return ds.emitStageExit(inst)
	case ir.OpEMIT:
		return ds.emitGeometryEmit(inst)
	case ir.OpENDPRIM:
		return ds.emitGeometryEndPrim(inst)
	case ir.OpARL:
		return ds.emitARL(inst, false)
	case ir.OpUARL:
		return ds.emitARL(inst, true)
	case ir.OpMOV:
		return ds.emitSimple(inst, func(srcs []string) string { return srcs[0] })
	case ir.OpINTERP_CENTROID, ir.OpINTERP_SAMPLE, ir.OpINTERP_OFFSET:
		return ds.emitInterp(inst)
	}

	if ir.IsTexture(inst.Opcode) {
		return ds.emitTexture(inst)
	}
	if inst.Opcode == ir.OpLOAD || inst.Opcode == ir.OpSTORE || ir.IsAtomic(inst.Opcode) {
		return ds.emitImageOrBuffer(inst)
	}
	if ir.IsComparison(inst.Opcode) {
		return ds.emitComparison(inst)
	}

	if fn, ok := arithmeticTemplates[inst.Opcode]; ok {
		return ds.emitSimple(inst, fn)
	}

	return ds.fail(errUnsupported("instruction", "unhandled opcode"))
}

// arithmeticTemplates maps an opcode to the function combining its already
// reinterpreted/swizzled source expressions into the RHS expression (spec
// §4.3 "uniform two- or one-operand template").
var arithmeticTemplates = map[ir.Opcode]func(srcs []string) string{
	ir.OpADD:  func(s []string) string { return s[0] + " + " + s[1] },
	ir.OpSUB:  func(s []string) string { return s[0] + " - " + s[1] },
	ir.OpMUL:  func(s []string) string { return s[0] + " * " + s[1] },
	ir.OpMAD:  func(s []string) string { return s[0] + " * " + s[1] + " + " + s[2] },
	ir.OpMIN:  func(s []string) string { return "min(" + s[0] + ", " + s[1] + ")" },
	ir.OpMAX:  func(s []string) string { return "max(" + s[0] + ", " + s[1] + ")" },
	ir.OpABS:  func(s []string) string { return "abs(" + s[0] + ")" },
	ir.OpFRC:  func(s []string) string { return "fract(" + s[0] + ")" },
	ir.OpFLR:  func(s []string) string { return "floor(" + s[0] + ")" },
	ir.OpCEIL: func(s []string) string { return "ceil(" + s[0] + ")" },
	ir.OpNEG:  func(s []string) string { return "-(" + s[0] + ")" },
	ir.OpSSG:  func(s []string) string { return "sign(" + s[0] + ")" },
	ir.OpRCP:  func(s []string) string { return "1.0 / " + s[0] },
	ir.OpRSQ:  func(s []string) string { return "inversesqrt(" + s[0] + ")" },
	ir.OpSQRT: func(s []string) string { return "sqrt(" + s[0] + ")" },
	ir.OpPOW:  func(s []string) string { return "pow(" + s[0] + ", " + s[1] + ")" },
	ir.OpEX2:  func(s []string) string { return "exp2(" + s[0] + ")" },
	ir.OpLG2:  func(s []string) string { return "log2(" + s[0] + ")" },
	ir.OpEXP:  func(s []string) string { return "exp(" + s[0] + ")" },
	ir.OpLOG:  func(s []string) string { return "log(" + s[0] + ")" },
	ir.OpDP2:  func(s []string) string { return "dot(vec2(" + s[0] + "), vec2(" + s[1] + "))" },
	ir.OpDP3:  func(s []string) string { return "dot(vec3(" + s[0] + "), vec3(" + s[1] + "))" },
	ir.OpDP4:  func(s []string) string { return "dot(vec4(" + s[0] + "), vec4(" + s[1] + "))" },
	ir.OpDP2A: func(s []string) string { return "dot(vec2(" + s[0] + "), vec2(" + s[1] + ")) + " + s[2] },
	ir.OpAND:  func(s []string) string { return "(" + s[0] + " & " + s[1] + ")" },
	ir.OpOR:   func(s []string) string { return "(" + s[0] + " | " + s[1] + ")" },
	ir.OpXOR:  func(s []string) string { return "(" + s[0] + " ^ " + s[1] + ")" },
	ir.OpNOT:  func(s []string) string { return "(~" + s[0] + ")" },
	ir.OpSHL:  func(s []string) string { return "(" + s[0] + " << " + s[1] + ")" },
	ir.OpISHR: func(s []string) string { return "(" + s[0] + " >> " + s[1] + ")" },
	ir.OpUSHR: func(s []string) string { return "(" + s[0] + " >> " + s[1] + ")" },
	ir.OpSCS:  func(s []string) string { return "vec4(cos(" + s[0] + "), sin(" + s[0] + "), 0.0, 1.0)" },
	ir.OpLIT: func(s []string) string {
		return "vec4(1.0, max(" + s[0] + ".x, 0.0), step(0.0, " + s[0] + ".x) * pow(max(" + s[0] + ".y, 0.0), clamp(" + s[0] + ".w, -128.0, 128.0)), 1.0)"
	},
	ir.OpDST:  func(s []string) string { return "vec4(1.0, " + s[0] + ".y * " + s[1] + ".y, " + s[0] + ".z, " + s[1] + ".w)" },
}

// emitSimple implements the common destination shape: resolve every source
// at the opcode's required type, build the RHS via fn, wrap in the
// dst-type reinterpret prefix and append the writemask (spec §4.3 points
// 1-3), then emit the saturate follow-up if requested.
func (ds *dumpState) emitSimple(inst ir.Instruction, fn func(srcs []string) string) bool {
	if len(inst.Dst) == 0 {
		return ds.fail(errUnsupported("instruction", "missing destination"))
	}
	dst := inst.Dst[0]
	dstExpr, err := ds.dstExpr(dst)
	if err != nil {
		return ds.fail(errUnsupported("instruction", err.Error()))
	}

	st := srcType(inst.Opcode)
	srcs := make([]string, len(inst.Src))
	for i, s := range inst.Src {
		expr, err := ds.srcExprTyped(s, st)
		if err != nil {
			return ds.fail(errUnsupported("instruction", err.Error()))
		}
		srcs[i] = expr
	}

	// Destination-conversion shape (spec §4.3 point 2): the RHS is shaped
	// to the writemask's component count before the reinterpret wrapper.
	// Integer-typed built-in destinations take a plain int conversion.
	rhs := fn(srcs)
	dt := dstType(inst.Opcode)
	n := writemaskComponentCount(dst.WriteMask)
	if ds.dstIsInt(dst) {
		rhs = ivecN(n) + "(" + rhs + ")"
	} else {
		switch dt {
		case typeInt:
			rhs = ivecN(n) + "(" + rhs + ")"
		case typeUint:
			rhs = uvecN(n) + "(" + rhs + ")"
		default:
			rhs = vecN(n) + "(" + rhs + ")"
		}
		rhs = reinterpretToFloat(dt, rhs)
	}

	wm := ds.dstWM(dst)
	ds.body.stmt(dstExpr + wm + " = " + rhs + ";")

	if inst.Saturate {
		ds.body.stmt(dstExpr + wm + " = clamp(" + dstExpr + wm + ", 0.0, 1.0);")
	}
	return true
}

// emitARL implements the ARL (float floor -> address) / UARL (direct
// uint cast) asymmetry (spec §4.3 "tie-breaks").
func (ds *dumpState) emitARL(inst ir.Instruction, direct bool) bool {
	if len(inst.Dst) == 0 || len(inst.Src) == 0 {
		return ds.fail(errUnsupported("ARL", "missing operands"))
	}
	dstExpr, err := ds.dstExpr(inst.Dst[0])
	if err != nil {
		return ds.fail(errUnsupported("ARL", err.Error()))
	}
	src, err := ds.srcExpr(inst.Src[0])
	if err != nil {
		return ds.fail(errUnsupported("ARL", err.Error()))
	}
	if direct {
		ds.body.stmt(dstExpr + " = int(" + src + ");")
	} else {
		ds.body.stmt(dstExpr + " = int(floor(" + src + "));")
	}
	return true
}

// emitComparison implements the signed/unsigned comparison encoding (spec
// §4.3 "Comparisons"): signed variants produce a -1.0/0.0 float boolean via
// float(equal(...))*-1.0; unsigned variants produce the same convention
// through a bit-pattern round trip so the result is exact for integer
// register consumers downstream.
func (ds *dumpState) emitComparison(inst ir.Instruction) bool {
	if len(inst.Dst) == 0 || len(inst.Src) < 2 {
		return ds.fail(errUnsupported("comparison", "missing operands"))
	}
	dst := inst.Dst[0]
	dstExpr, err := ds.dstExpr(dst)
	if err != nil {
		return ds.fail(errUnsupported("comparison", err.Error()))
	}

	st := typeFloat
	if ir.IsUnsignedComparison(inst.Opcode) {
		st = typeUint
	}
	a, err := ds.srcExprTyped(inst.Src[0], st)
	if err != nil {
		return ds.fail(errUnsupported("comparison", err.Error()))
	}
	b, err := ds.srcExprTyped(inst.Src[1], st)
	if err != nil {
		return ds.fail(errUnsupported("comparison", err.Error()))
	}

	// Operands are always resolved four wide, so the vector relational
	// builtin applies and the writemask swizzles the packed result.
	cmp := comparisonFn[inst.Opcode](a, b)

	var rhs string
	if ir.IsUnsignedComparison(inst.Opcode) {
		rhs = "uintBitsToFloat(uvec4(" + cmp + ") * 0xffffffffu)"
	} else {
		rhs = "(vec4(" + cmp + ") * -1.0)"
	}

	wm := ds.dstWM(dst)
	ds.body.stmt(dstExpr + wm + " = " + rhs + wm + ";")
	return true
}

// comparisonFn maps a comparison opcode to the GLSL relational builtin
// applied component-wise (equal/notEqual/lessThan/...), spec §4.3.
var comparisonFn = map[ir.Opcode]func(a, b string) string{
	ir.OpSEQ:  func(a, b string) string { return "equal(" + a + ", " + b + ")" },
	ir.OpSNE:  func(a, b string) string { return "notEqual(" + a + ", " + b + ")" },
	ir.OpSLT:  func(a, b string) string { return "lessThan(" + a + ", " + b + ")" },
	ir.OpSGE:  func(a, b string) string { return "greaterThanEqual(" + a + ", " + b + ")" },
	ir.OpSGT:  func(a, b string) string { return "greaterThan(" + a + ", " + b + ")" },
	ir.OpSLE:  func(a, b string) string { return "lessThanEqual(" + a + ", " + b + ")" },
	ir.OpUSEQ: func(a, b string) string { return "equal(" + a + ", " + b + ")" },
	ir.OpUSNE: func(a, b string) string { return "notEqual(" + a + ", " + b + ")" },
	ir.OpUSLT: func(a, b string) string { return "lessThan(" + a + ", " + b + ")" },
	ir.OpUSGE: func(a, b string) string { return "greaterThanEqual(" + a + ", " + b + ")" },
}

// emitIf opens an IF/UIF braced block with an indent-level increment (spec
// §4.3 control flow).
func (ds *dumpState) emitIf(inst ir.Instruction) bool {
	if len(inst.Src) == 0 {
		return ds.fail(errUnsupported("IF", "missing condition operand"))
	}
	cond, err := ds.srcExpr(inst.Src[0])
	if err != nil {
		return ds.fail(errUnsupported("IF", err.Error()))
	}
	if inst.Opcode == ir.OpUIF {
		ds.body.stmt("if (bool(" + cond + ".x)) {")
	} else {
		ds.body.stmt("if ((" + cond + ".x) != 0.0) {")
	}
	ds.body.push()
	return true
}
