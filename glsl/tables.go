package glsl

import (
	"golang.org/x/exp/constraints"

	"github.com/soypat/tgsi2glsl/ir"
)

// regType is the GLSL type a register reference is reinterpreted as before
// an operation is applied (spec §4.1 Context & Tables, "opcode→dst/src
// type").
type regType int

const (
	typeFloat regType = iota
	typeInt
	typeUint
)

// dstType reports the destination type an opcode writes, used to pick the
// intBitsToFloat/uintBitsToFloat wrapper (spec §4.3 point 1).
func dstType(op ir.Opcode) regType {
	switch op {
	case ir.OpAND, ir.OpOR, ir.OpXOR, ir.OpNOT, ir.OpSHL, ir.OpISHR, ir.OpARL:
		return typeInt
	case ir.OpUSHR, ir.OpUSEQ, ir.OpUSNE, ir.OpUSLT, ir.OpUSGE, ir.OpUARL:
		return typeUint
	default:
		return typeFloat
	}
}

// srcType reports the type sources of op are reinterpreted as before the
// operation executes (spec §4.3 point 1, and the "suppress reinterpret
// when an integer-typed input already feeds an unsigned-typed op" edge
// case).
func srcType(op ir.Opcode) regType {
	switch op {
	case ir.OpAND, ir.OpOR, ir.OpXOR, ir.OpNOT, ir.OpSHL, ir.OpISHR:
		return typeInt
	case ir.OpUSHR:
		return typeUint
	default:
		return typeFloat
	}
}

// reinterpretToFloat wraps expr so that a value computed in regType t is
// converted back to GLSL's float-typed pipeline representation.
func reinterpretToFloat(t regType, expr string) string {
	switch t {
	case typeInt:
		return "intBitsToFloat(" + expr + ")"
	case typeUint:
		return "uintBitsToFloat(" + expr + ")"
	default:
		return expr
	}
}

// reinterpretFromFloat wraps expr (a float-typed register reference) so
// that it is reinterpreted as regType t before an opcode that needs that
// type operates on it.
func reinterpretFromFloat(t regType, expr string, componentCount int) string {
	switch t {
	case typeInt:
		return "floatBitsToInt(" + vecN(componentCount) + "(" + expr + "))"
	case typeUint:
		return "floatBitsToUint(" + vecN(componentCount) + "(" + expr + "))"
	default:
		return expr
	}
}

func vecN(n int) string {
	switch n {
	case 1:
		return "float"
	default:
		return "vec" + itoa(n)
	}
}

func ivecN(n int) string {
	if n == 1 {
		return "int"
	}
	return "ivec" + itoa(n)
}

func uvecN(n int) string {
	if n == 1 {
		return "uint"
	}
	return "uvec" + itoa(n)
}

// samplerInfo is the sampler-type table entry (spec §6 sampler-type table):
// GLSL type-suffix plus whether the kind is a shadow (depth-compare)
// sampler.
type samplerInfo struct {
	suffix   string
	isShadow bool
	coordDim int // number of coordinate lanes a non-shadow lookup consumes
}

func samplerTable(t ir.TextureTarget, shadow bool) samplerInfo {
	switch t {
	case ir.Tex1D:
		return samplerInfo{"1D", shadow, 1}
	case ir.Tex2D:
		return samplerInfo{"2D", shadow, 2}
	case ir.Tex3D:
		return samplerInfo{"3D", false, 3}
	case ir.TexCube:
		return samplerInfo{"Cube", shadow, 3}
	case ir.TexRect:
		return samplerInfo{"2DRect", shadow, 2}
	case ir.TexBuffer:
		return samplerInfo{"Buffer", false, 1}
	case ir.Tex1DArray:
		return samplerInfo{"1DArray", shadow, 2}
	case ir.Tex2DArray:
		return samplerInfo{"2DArray", shadow, 3}
	case ir.TexCubeArray:
		return samplerInfo{"CubeArray", shadow, 4}
	case ir.Tex2DMS:
		return samplerInfo{"2DMS", false, 2}
	case ir.Tex2DMSArray:
		return samplerInfo{"2DMSArray", false, 3}
	default:
		return samplerInfo{"2D", false, 2}
	}
}

// returnTypePrefix is the sampler-type table's return-type prefix: one of
// ' ', 'i', 'u' (spec §6).
func returnTypePrefix(rt ir.ReturnType) byte {
	switch rt {
	case ir.ReturnInt:
		return 'i'
	case ir.ReturnUint:
		return 'u'
	default:
		return ' '
	}
}

func samplerGLSLType(rt ir.ReturnType, t ir.TextureTarget, shadow bool) string {
	info := samplerTable(t, shadow)
	prefix := returnTypePrefix(rt)
	name := "sampler" + info.suffix
	if shadow {
		name += "Shadow"
	}
	if prefix != ' ' {
		name = string(prefix) + name
	}
	return name
}

// imageGLSLType mirrors samplerGLSLType for image2D/iimage2D/uimage2D etc.
func imageGLSLType(rt ir.ReturnType, t ir.TextureTarget) string {
	info := samplerTable(t, false)
	prefix := returnTypePrefix(rt)
	name := "image" + info.suffix
	if prefix != ' ' {
		name = string(prefix) + name
	}
	return name
}

// clampInt clamps v into [lo,hi], used to bound the clip/cull distance
// counts when packing and redeclaring gl_ClipDistance/gl_CullDistance. The
// per-stage declaration caps below are checked with plain comparisons in
// declare.go. Kept generic per the teacher's golang.org/x/exp/constraints
// usage in glverify.zdefault.
func clampInt[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Per-stage declaration caps (spec §4.1 failure modes).
const (
	maxInputs        = 35
	maxOutputs       = 35
	maxSystemValues  = 32
	maxSamplers      = 32
	maxImages        = 32
	maxSSBOs         = 32
	maxImmediates    = 1024
)
