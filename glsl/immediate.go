package glsl

import (
	math32 "github.com/chewxy/math32"

	"github.com/soypat/tgsi2glsl/ir"
)

// immediateGLSL renders one lane of an immediate as GLSL source text.
// Non-finite floats are emitted via their bit pattern reinterpreted back
// to float, per spec §3: "Non-finite floats are encoded via
// bit-reinterpretation of their unsigned form."
func immediateGLSL(im ir.Immediate, lane int) string {
	bits := im.Bits[lane]
	switch im.Type {
	case ir.ImmInt32:
		return itoa(int(int32(bits)))
	case ir.ImmUint32:
		return itoa(int(bits)) + "u"
	default:
		f := math32.Float32frombits(bits)
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return "uintBitsToFloat(" + itoa(int(bits)) + "u)"
		}
		return ftoa(f)
	}
}

// immediateVec4GLSL renders all four lanes as a constructor matching the
// immediate's type tag, used when an immediate is referenced wholesale
// (e.g. MOV dst, IMM{...}).
func immediateVec4GLSL(im ir.Immediate) string {
	var s string
	switch im.Type {
	case ir.ImmInt32:
		s = "ivec4("
	case ir.ImmUint32:
		s = "uvec4("
	default:
		s = "vec4("
	}
	for i := 0; i < 4; i++ {
		if i > 0 {
			s += ", "
		}
		s += immediateGLSL(im, i)
	}
	return s + ")"
}
