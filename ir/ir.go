// Package ir models the shader intermediate representation consumed by
// package glsl. The real tokenizer/iterator, opcode-type inference tables
// and format-descriptor tables are external collaborators (see spec §1,§6);
// this package only fixes the wire shape of that IR so glsl has something
// concrete to translate and so tests can build fixtures without a real
// upstream compiler attached.
package ir

// File identifies a TGSI-style register file.
type File int

const (
	FileNull File = iota
	FileInput
	FileOutput
	FileTemporary
	FileConstant
	FileAddress
	FileImmediate
	FileSampler
	FileSamplerView
	FileImage
	FileBuffer
	FileSystemValue
)

func (f File) String() string {
	switch f {
	case FileInput:
		return "INPUT"
	case FileOutput:
		return "OUTPUT"
	case FileTemporary:
		return "TEMPORARY"
	case FileConstant:
		return "CONSTANT"
	case FileAddress:
		return "ADDRESS"
	case FileImmediate:
		return "IMMEDIATE"
	case FileSampler:
		return "SAMPLER"
	case FileSamplerView:
		return "SAMPLER_VIEW"
	case FileImage:
		return "IMAGE"
	case FileBuffer:
		return "BUFFER"
	case FileSystemValue:
		return "SYSTEM_VALUE"
	default:
		return "NULL"
	}
}

// Semantic is the closed enumeration of IO semantic kinds (spec §3, IOSlot).
type Semantic int

const (
	SemNone Semantic = iota
	SemPosition
	SemColor
	SemBColor
	SemGeneric
	SemFog
	SemPSize
	SemClipDist
	SemClipVertex
	SemLayer
	SemViewportIndex
	SemPrimID
	SemFace
	SemStencil
	SemSampleMask
	SemTessCoord
	SemThreadID
	SemBlockID
	SemGridSize
	SemVertexID
	SemInstanceID
	SemInvocationID
	SemSampleID
	SemSamplePos
	SemPatchVerticesIn
	SemFragCoord
)

// Stage identifies the shader pipeline stage being translated.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
	StageCompute
	StageTessControl
	StageTessEval
)

// Range is a half-open-by-convention [First,Last] register interval.
// Temp ranges (spec §3 TempRange) use it inclusively; sampler/image array
// extension (spec §9) uses Last+1 as the open bound, mirrored verbatim.
type Range struct {
	First, Last int
}

// Decl is one declaration record (spec §4.1/§4.2).
type Decl struct {
	File     File
	Range    Range
	Semantic Semantic
	Index    int // semantic index
	ArrayID  int

	Interpolate  int
	Centroid     bool
	Invariant    bool
	CoordReplace bool

	// SAMPLER_VIEW / IMAGE / BUFFER
	TextureTarget TextureTarget
	ReturnType    ReturnType
	Format        Format
	Writable      bool
	Volatile      bool
	// Shadow marks a SAMPLER_VIEW as a depth-comparison sampler (spec
	// GLOSSARY "Shadow sampler"), resolved externally from the texture
	// opcode's comparison mode before the declaration is emitted.
	Shadow bool

	// CONSTANT
	UBOIndex int
	UBOSize  int // size in vec4, 0 means flat constant (no dimension)
	HasUBO   bool

	// INPUT/OUTPUT stream-output annotation
	Stream int
}

// TextureTarget is the sampler/image dimensionality (spec §6 sampler-kind).
type TextureTarget int

const (
	Tex1D TextureTarget = iota
	Tex2D
	Tex3D
	TexCube
	TexRect
	TexBuffer
	Tex1DArray
	Tex2DArray
	TexCubeArray
	Tex2DMS
	Tex2DMSArray
)

// ReturnType is the sampler/image component type (spec §6).
type ReturnType int

const (
	ReturnFloat ReturnType = iota
	ReturnInt
	ReturnUint
)

// Format is an opaque image/texture format id resolved via the external
// format table (spec §6); FormatNone is the sentinel "no format set".
type Format int

const FormatNone Format = 0

// ImmType tags an Immediate's 4-lane literal type (spec §3).
type ImmType int

const (
	ImmFloat32 ImmType = iota
	ImmInt32
	ImmUint32
)

// Immediate is a 4-lane literal (spec §3).
type Immediate struct {
	Type ImmType
	// Bits holds each lane's raw bit pattern. Float32 lanes are stored via
	// their IEEE-754 bit pattern so non-finite values round-trip exactly
	// (spec §3).
	Bits [4]uint32
}

// Property sets a single scalar shader-wide field (spec §4.2).
type Property struct {
	Name  PropertyName
	Value int
}

type PropertyName int

const (
	PropWriteAllCBufs PropertyName = iota
	PropFSCoordOrigin
	PropFSCoordPixelCenter
	PropGSInputPrim
	PropGSOutputPrim
	PropGSMaxOutputVertices
	PropGSInvocations
	PropNumClipDist
	PropNumCullDist
	PropEarlyDepthStencil
	PropCSBlockWidth
	PropCSBlockHeight
	PropCSBlockDepth
)

// SrcOperand references a source register with optional indirect/dimension
// addressing, swizzle and sign modifiers (spec §4.3).
type SrcOperand struct {
	File    File
	Index   int
	Negate  bool
	Abs     bool
	Swizzle [4]uint8 // each 0..3 selecting x,y,z,w

	IndirectFile  File // FileNull if not indirectly addressed
	IndirectIndex int  // address register number
	IndirectOff   int  // constant offset added to the address register

	HasDimension bool
	DimIndirect  bool
	DimIndex     int // array/slot index when not indirect
	DimAddrNum   int // address register number when DimIndirect
}

// DstOperand references a destination register (spec §4.3).
type DstOperand struct {
	File      File
	Index     int
	WriteMask uint8 // bitmask of 1=x,2=y,4=z,8=w

	IndirectFile  File
	IndirectIndex int
	IndirectOff   int
}

// Instruction is one IR opcode invocation (spec §4.3).
type Instruction struct {
	Opcode   Opcode
	Saturate bool
	Dst      []DstOperand
	Src      []SrcOperand
	// Texture holds texture-target metadata for TEX-family opcodes.
	Texture TextureTarget
	// TextureReturn is the bound sampler's return type, resolved by the
	// translator from its declaration table, not carried on the wire in
	// real TGSI, but convenient to stash here for a synthetic IR.
	TextureReturn ReturnType
	// Stream and Component carry instruction-specific immediates
	// (EMIT/ENDPRIM stream index, TG4 component); texel offsets are not
	// carried.
	Stream    int
	Component int
}

// Visitor receives callbacks from Iterate in IR order (spec §6).
type Visitor interface {
	Prolog()
	Declaration(Decl) bool
	Immediate(Immediate) bool
	Property(Property) bool
	Instruction(Instruction) bool
	Epilog()
}

// Program is a fully-formed IR token stream: declarations and immediates in
// any order, followed by instructions in execution order. A real iterator
// would stream these from a parser; this in-memory form is enough to drive
// and test package glsl.
type Program struct {
	Stage        Stage
	Decls        []Decl
	Immediates   []Immediate
	Properties   []Property
	Instructions []Instruction
}

// IndirectUsage is the result of the one-shot pre-scan the translator runs
// before the main declaration/instruction pass (spec §6): it tells the
// Declaration Analyser, while it is still building SAMPLER_VIEW entries,
// whether any instruction in the program addresses a sampler indirectly,
// which decides whether sampler declarations are emitted as arrays.
type IndirectUsage struct {
	Sampler bool
	// UBO reports dimension-indirect CONSTANT addressing (CONST[ADDR][i]),
	// which forces uniform blocks to be declared as one instanced array
	// rather than one block per binding (spec §4.5 point 5).
	UBO bool
}

// ScanIndirectUsage walks p's instructions once, ahead of the main
// Iterate pass, looking for indirect addressing on SAMPLER_VIEW operands and
// dimension-indirect addressing on CONSTANT operands (spec §6 "one-shot scan
// routine"). It does not invoke any Visitor
// callback and has no side effect on p.
func ScanIndirectUsage(p Program) IndirectUsage {
	var u IndirectUsage
	for _, inst := range p.Instructions {
		for _, s := range inst.Src {
			if s.File == FileSamplerView && s.IndirectFile != FileNull {
				u.Sampler = true
			}
			if s.File == FileConstant && s.DimIndirect {
				u.UBO = true
			}
		}
	}
	return u
}

// Iterate walks p in declaration/immediate/property order, then
// instructions, invoking v's callbacks. It stops at the first callback that
// returns false, mirroring the external iterator's stop-on-error contract
// (spec §7): the core's callbacks return false to signal a translation
// error and Iterate does not continue.
func Iterate(p Program, v Visitor) bool {
	v.Prolog()
	for _, d := range p.Decls {
		if !v.Declaration(d) {
			return false
		}
	}
	for _, im := range p.Immediates {
		if !v.Immediate(im) {
			return false
		}
	}
	for _, pr := range p.Properties {
		if !v.Property(pr) {
			return false
		}
	}
	for _, inst := range p.Instructions {
		if !v.Instruction(inst) {
			return false
		}
	}
	v.Epilog()
	return true
}
