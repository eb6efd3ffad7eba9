package glsl

import "github.com/soypat/tgsi2glsl/ir"

// IOSlot describes one input or output (spec §3). Predefined slots (GLSL
// built-ins) are never declared in the header; no-index slots never carry
// a numeric suffix in their emitted name.
type IOSlot struct {
	Semantic     ir.Semantic
	Index        int // semantic index
	Interpolate  InterpMode
	Centroid     bool
	Reg          int // first register as declared, for operand lookup
	First        int // packed register index; generics carry a -1 offset
	Name         string

	Predefined    bool // name is a built-in; skip declaration
	NoIndex       bool // emit plain name, no numeric suffix
	GLIn          bool // access through gl_in[] per-vertex array
	OverrideWM    bool // do not suffix operand with writemask
	IsInt         bool // emit with integer typing

	Stream     int
	HasStream  bool
}

// TempRange is one TEMPORARY declaration (spec §3): [First,Last] inclusive,
// as declared. Only SamplerArray uses a Last+1 open upper bound
// (declare.go); temporaries never do.
type TempRange struct {
	First, Last int
	ArrayID     int
}

// Sampler is the per-slot (kind,rtype) pair (spec §3).
type Sampler struct {
	Declared bool
	Target   ir.TextureTarget
	Return   ir.ReturnType
	Shadow   bool
}

// SamplerArray is a maximally-extended contiguous run of matching sampler
// views (spec §3, §9): First is set once: Last is always the most recent
// matching declaration's Range.Last+1 (half-open), so downstream lookups
// must treat the array as [First,Last).
type SamplerArray struct {
	First, Last int
	Target      ir.TextureTarget
	Return      ir.ReturnType
}

// Image is one IMAGE declaration plus its usage latch (spec §3).
type Image struct {
	Declared bool
	Target   ir.TextureTarget
	Return   ir.ReturnType
	Format   ir.Format
	Writable bool
	Volatile bool
	UsedVolatile bool
}

// UniformBlock is a UBO binding (spec §3).
type UniformBlock struct {
	Index   int
	SizeVec4 int
}

// streamOutBinding mirrors the external stream-output table (spec §3):
// for each output register+component range, whether to copy from a
// temporary or the named output, and which transform-feedback stream it
// belongs to. FromTemp is resolved at copy-emission time once the output
// register's binding (a redirected temporary or a named output) is known.
type streamOutBinding struct {
	Register       int
	StartComponent int
	NumComponents  int
	Stream         int
	FromTemp       bool
	BufferName     string
}

// ShaderInfo is the metadata record returned alongside the GLSL string
// (spec §3, §6), owned by the caller after Convert returns.
type ShaderInfo struct {
	SamplersUsed      uint32
	ImagesUsed        uint32
	SSBOsUsed         uint32
	NumClipDist       int
	NumCullDist       int
	StreamOutputNames []string
	GLSLVersion       int
	GSOutputPrimitive int
	Interpolants      []InterpolantInfo
}

// InterpolantInfo records, per fragment-stage interpolant, the data the
// Interpolation Patcher (spec §4.6) needs to fill in a vertex-stage
// reserved slot: semantic, index and chosen qualifier.
type InterpolantInfo struct {
	Semantic    ir.Semantic
	Index       int
	Interpolate InterpMode
	Centroid    bool
}

// dumpState owns all per-translation working state (spec §3 DumpState):
// created per Convert call, discarded once the output string and
// ShaderInfo are produced. It is never shared across goroutines or
// Convert calls (spec §5).
type dumpState struct {
	cfg   Cfg
	key   ShaderKey
	stage ir.Stage

	body bodyBuffer

	inputs  []IOSlot
	outputs []IOSlot
	sysVals []IOSlot

	attribInputMask uint32

	tempRanges []TempRange

	samplers      [32]Sampler
	samplersUsed  uint32
	sviewsUsed    bool

	images     [32]Image
	imagesUsed uint32
	ssboUsed   uint32

	samplerArrays []SamplerArray
	usesIndirectSamplerIdx bool

	numConsts int
	ubo       []UniformBlock
	indirectUBO bool

	immediates []ir.Immediate

	numAddress int

	so []streamOutBinding

	// Feature flags (spec §3 DumpState).
	usesCubeArray     bool
	usesSamplerMS     bool
	usesSamplerBuf    bool
	usesSamplerRect   bool
	usesLodq          bool
	usesTXQLevels     bool
	usesTG4           bool
	usesLayer         bool
	usesSampleShading bool
	usesGPUShader5    bool
	usesStencilExport bool
	hasInts           bool
	hasInstanceID     bool
	hasClipVertex     bool
	hasClipVertexSO   bool
	hasViewportIdx    bool
	hasFragViewportIdx bool
	vsHasPerVertex    bool
	writeAllCBufs     bool
	earlyDepthStencil bool
	ssbo              bool

	numClipDist     int
	numInClipDist   int
	numCullDistProp int
	numClipDistProp int

	colorTwoSideEmitted bool
	frontFaceEmitted    bool
	// twoSideColorMask marks, per COLOR semantic index, that the input is
	// bound to a two-sided pair and every read must resolve to
	// realcolor<k> instead of the raw ex_c<k> input (spec §4.1, §4.4
	// "Color selection prologue").
	twoSideColorMask uint32
	// usesInterpTemp latches whether any INTERP_* intrinsic ran, so the
	// header emitter knows to declare the interp_temp helper (spec §4.3,
	// §4.5 point 6).
	usesInterpTemp bool

	glslVerRequired int

	csBlockSize [3]int

	fsCoordOrigin      int
	fsPixelCenter      int
	fsCoordConvSet     bool
	gsInPrim           int
	gsOutPrim          int
	gsMaxOutVerts      int
	gsInvocations      int

	// Redirected-write temporaries (spec §9 "Redirected writes").
	clipDistTempUsed  bool
	clipVertexTempUsed bool

	shadowSamplerMask uint32

	err *Error
}

func newDumpState(cfg Cfg, key ShaderKey, stage ir.Stage) *dumpState {
	ds := &dumpState{cfg: cfg, key: key, stage: stage}
	ds.glslVerRequired = minGLSLVersion(cfg)
	switch stage {
	case ir.StageGeometry:
		ds.requireVersion(150)
	case ir.StageCompute:
		ds.requireVersion(330)
	}
	for i, so := range key.StreamOutputs {
		n := so.NumComponents
		if n <= 0 || n > 4 {
			n = 4
		}
		ds.so = append(ds.so, streamOutBinding{
			Register:       so.Register,
			StartComponent: so.StartComponent,
			NumComponents:  n,
			Stream:         so.Stream,
			BufferName:     "tfout" + itoa(i),
		})
	}
	return ds
}

func minGLSLVersion(cfg Cfg) int {
	if cfg.IsES() {
		return 300
	}
	if cfg.ForceMinGLSLVersion > 130 {
		return cfg.ForceMinGLSLVersion
	}
	return 130
}

func (ds *dumpState) requireVersion(v int) {
	if v > ds.glslVerRequired {
		ds.glslVerRequired = v
	}
}

func (ds *dumpState) fail(e *Error) bool {
	ds.err = e
	return false
}
