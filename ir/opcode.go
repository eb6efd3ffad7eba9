package ir

// Opcode is the closed set of instruction opcodes the translator handles
// (spec §4.3). It is intentionally a small, representative subset of a
// real TGSI opcode table rather than the full ~200-entry set: the
// dispatch structure generalizes to any closed opcode enumeration (spec §9
// "dynamic dispatch on opcode").
type Opcode int

const (
	OpNop Opcode = iota

	// Move / arithmetic.
	OpMOV
	OpADD
	OpSUB
	OpMUL
	OpMAD
	OpDP2
	OpDP3
	OpDP4
	OpDP2A
	OpMIN
	OpMAX
	OpABS
	OpFRC
	OpFLR
	OpCEIL
	OpNEG
	OpSSG
	OpRCP
	OpRSQ
	OpSQRT
	OpPOW
	OpEX2
	OpLG2
	OpEXP
	OpLOG
	OpSCS
	OpLIT
	OpDST

	// Bitwise / integer.
	OpAND
	OpOR
	OpXOR
	OpNOT
	OpSHL
	OpISHR
	OpUSHR

	// Address register.
	OpARL
	OpUARL

	// Comparisons (produce -1.0/0.0 float boolean convention).
	OpSEQ
	OpSNE
	OpSLT
	OpSGE
	OpSGT
	OpSLE
	OpUSEQ
	OpUSNE
	OpUSLT
	OpUSGE

	// Texture family.
	OpTEX
	OpTXB
	OpTXL
	OpTXD
	OpTXF
	OpTXP
	OpTG4
	OpTXQ
	OpLODQ

	// Image / buffer.
	OpLOAD
	OpSTORE
	OpATOMUADD
	OpATOMXCHG
	OpATOMCAS
	OpATOMAND
	OpATOMOR
	OpATOMXOR
	OpATOMUMIN
	OpATOMUMAX
	OpATOMIMIN
	OpATOMIMAX

	// Geometry.
	OpEMIT
	OpENDPRIM

	// Interpolation intrinsics.
	OpINTERP_CENTROID
	OpINTERP_SAMPLE
	OpINTERP_OFFSET

	// Control flow.
	OpIF
	OpUIF
	OpELSE
	OpENDIF
	OpBGNLOOP
	OpENDLOOP
	OpBRK
	OpCONT
	OpEND
	OpRET
)

// NumDstRegs and NumSrcRegs report the fixed operand arity for an opcode
// (spec §8 testable property: dst/src operand counts must match
// NumDstRegs/NumSrcRegs). Real TGSI derives this from tgsi_info tables
// (external, spec §1); this is the translator's own closed-form mirror for
// the opcodes it actually implements.
func NumDstRegs(op Opcode) int {
	switch op {
	case OpEMIT, OpENDPRIM, OpIF, OpUIF, OpELSE, OpENDIF, OpBGNLOOP, OpENDLOOP,
		OpBRK, OpCONT, OpEND, OpRET, OpSTORE:
		return 0
	case OpSCS, OpATOMUADD, OpATOMXCHG, OpATOMCAS, OpATOMAND, OpATOMOR, OpATOMXOR,
		OpATOMUMIN, OpATOMUMAX, OpATOMIMIN, OpATOMIMAX, OpLOAD:
		return 1
	default:
		return 1
	}
}

// Resource-consuming opcodes carry the resource operand (sampler view,
// image or buffer) as the LAST source: TEX-family sources are
// [coord, extra args..., sampler]; LOAD is [address, resource]; STORE is
// [address, value, resource]; atomics are [address, operands..., resource].
func NumSrcRegs(op Opcode) int {
	switch op {
	case OpMOV, OpABS, OpFRC, OpFLR, OpCEIL, OpNEG, OpSSG, OpRCP, OpRSQ, OpSQRT,
		OpEX2, OpLG2, OpEXP, OpLOG, OpNOT, OpARL, OpUARL,
		OpINTERP_CENTROID:
		return 1
	case OpADD, OpSUB, OpMUL, OpMIN, OpMAX, OpDP2, OpDP3, OpDP4, OpAND, OpOR,
		OpXOR, OpSHL, OpISHR, OpUSHR, OpSEQ, OpSNE, OpSLT, OpSGE, OpSGT, OpSLE,
		OpUSEQ, OpUSNE, OpUSLT, OpUSGE, OpPOW, OpDST, OpINTERP_SAMPLE,
		OpINTERP_OFFSET:
		return 2
	case OpMAD, OpDP2A:
		return 3
	case OpTEX, OpTXP, OpTXF, OpTG4, OpTXQ, OpLODQ, OpLOAD:
		return 2
	case OpTXB, OpTXL, OpSTORE, OpATOMUADD, OpATOMXCHG, OpATOMAND, OpATOMOR,
		OpATOMXOR, OpATOMUMIN, OpATOMUMAX, OpATOMIMIN, OpATOMIMAX:
		return 3
	case OpTXD, OpATOMCAS:
		return 4
	case OpEMIT, OpENDPRIM:
		return 1 // stream immediate
	case OpIF, OpUIF:
		return 1
	default:
		return 1
	}
}

// IsComparison reports whether op is one of the S*/US* comparison opcodes.
func IsComparison(op Opcode) bool {
	switch op {
	case OpSEQ, OpSNE, OpSLT, OpSGE, OpSGT, OpSLE, OpUSEQ, OpUSNE, OpUSLT, OpUSGE:
		return true
	}
	return false
}

// IsUnsignedComparison reports whether op is a US* comparison (bit-pattern
// boolean result rather than the signed float(equal(...)) form, spec §4.3).
func IsUnsignedComparison(op Opcode) bool {
	switch op {
	case OpUSEQ, OpUSNE, OpUSLT, OpUSGE:
		return true
	}
	return false
}

// IsTexture reports whether op is in the TEX/TXB/.../LODQ family.
func IsTexture(op Opcode) bool {
	switch op {
	case OpTEX, OpTXB, OpTXL, OpTXD, OpTXF, OpTXP, OpTG4, OpTXQ, OpLODQ:
		return true
	}
	return false
}

// IsAtomic reports whether op is an image/buffer atomic.
func IsAtomic(op Opcode) bool {
	switch op {
	case OpATOMUADD, OpATOMXCHG, OpATOMCAS, OpATOMAND, OpATOMOR, OpATOMXOR,
		OpATOMUMIN, OpATOMUMAX, OpATOMIMIN, OpATOMIMAX:
		return true
	}
	return false
}
