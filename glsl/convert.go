package glsl

import "github.com/soypat/tgsi2glsl/ir"

// Result is Convert's return value: the generated GLSL source plus the
// metadata record the caller needs to finish binding the shader (spec §6).
type Result struct {
	Source string
	Info   ShaderInfo
}

// Convert translates one IR program into a Result, running the
// Declaration Analyser and Instruction Translator as a single pass over
// prog (spec §1, §5): cfg and key are read-only across the call, ds is
// fresh per call and never reused. A non-nil error is always a *Error, so
// callers can switch on its Kind to decide whether the condition is
// recoverable by shrinking the input.
func Convert(cfg Cfg, key ShaderKey, prog ir.Program) (Result, error) {
	ds := newDumpState(cfg, key, prog.Stage)
	usage := ir.ScanIndirectUsage(prog)
	ds.usesIndirectSamplerIdx = usage.Sampler
	ds.indirectUBO = usage.UBO
	if !ir.Iterate(prog, ds) {
		if ds.err != nil {
			return Result{}, ds.err
		}
		return Result{}, errUnsupported("convert", "translation aborted with no recorded error")
	}

	header := ds.emitHeader()
	src := header + "void main(void)\n{\n" + ds.body.String() + "}\n"

	return Result{Source: src, Info: ds.buildShaderInfo()}, nil
}

// dumpState implements ir.Visitor; the exported-cased methods below are
// thin adapters onto the lowercase per-file-kind handlers in declare.go,
// property.go and instruction.go.

func (ds *dumpState) Prolog() {}

func (ds *dumpState) Declaration(d ir.Decl) bool {
	return ds.declare(d)
}

func (ds *dumpState) Immediate(im ir.Immediate) bool {
	return ds.immediate(im)
}

func (ds *dumpState) Property(p ir.Property) bool {
	return ds.property(p)
}

func (ds *dumpState) Instruction(inst ir.Instruction) bool {
	if ds.stage == ir.StageFragment && ds.key.ColorTwoSide && !ds.colorTwoSideEmitted {
		ds.emitColorTwoSidePrologue()
	}
	return ds.instruction(inst)
}

func (ds *dumpState) Epilog() {}

// buildShaderInfo assembles the caller-facing metadata record from the
// working state accumulated during translation (spec §3 ShaderInfo).
func (ds *dumpState) buildShaderInfo() ShaderInfo {
	info := ShaderInfo{
		SamplersUsed:      ds.samplersUsed,
		ImagesUsed:        ds.imagesUsed,
		SSBOsUsed:         ds.ssboUsed,
		NumClipDist:       ds.numClipDist,
		NumCullDist:       ds.numCullDistProp,
		GLSLVersion:       ds.glslVerRequired,
		GSOutputPrimitive: ds.gsOutPrim,
	}
	for _, b := range ds.so {
		info.StreamOutputNames = append(info.StreamOutputNames, b.BufferName)
	}
	for _, s := range ds.outputs {
		if ds.stage != ir.StageVertex && ds.stage != ir.StageGeometry {
			continue
		}
		switch s.Semantic {
		case ir.SemColor, ir.SemBColor, ir.SemGeneric:
			info.Interpolants = append(info.Interpolants, InterpolantInfo{
				Semantic: s.Semantic, Index: s.Index, Interpolate: s.Interpolate, Centroid: s.Centroid,
			})
		}
	}
	return info
}
