package glsl

import "github.com/soypat/tgsi2glsl/ir"

// declare dispatches one declaration record to the per-file handler (spec
// §4.1 Declaration Analyser). It returns false (and sets ds.err) on any
// capacity overrun or unsupported construct, matching the iterator
// stop-on-error contract (spec §7).
func (ds *dumpState) declare(d ir.Decl) bool {
	switch d.File {
	case ir.FileInput:
		return ds.declareInput(d)
	case ir.FileOutput:
		return ds.declareOutput(d)
	case ir.FileTemporary:
		return ds.declareTemporary(d)
	case ir.FileSampler:
		return ds.declareSampler(d)
	case ir.FileSamplerView:
		return ds.declareSamplerView(d)
	case ir.FileImage:
		return ds.declareImage(d)
	case ir.FileBuffer:
		return ds.declareBuffer(d)
	case ir.FileConstant:
		return ds.declareConstant(d)
	case ir.FileAddress:
		return ds.declareAddress(d)
	case ir.FileSystemValue:
		return ds.declareSystemValue(d)
	default:
		return ds.fail(errUnsupported("declare", "unknown register file "+d.File.String()))
	}
}

// stagePrefix picks the "in"/"vso"/"gso" name prefix (spec §4.1) for a
// user-named input based on the producing stage.
func (ds *dumpState) stagePrefix() string {
	switch ds.stage {
	case ir.StageGeometry:
		return "vso" // geometry inputs are the vertex stage's outputs
	case ir.StageFragment:
		if ds.key.HasGeometryStage {
			return "gso"
		}
		return "vso"
	default:
		return "in"
	}
}

func semanticTag(sem ir.Semantic) string {
	switch sem {
	case ir.SemColor:
		return "_c"
	case ir.SemBColor:
		return "_bc"
	case ir.SemGeneric:
		return "_g"
	case ir.SemFog:
		return "_f"
	default:
		return "_g"
	}
}

func (ds *dumpState) declareInput(d ir.Decl) bool {
	if len(ds.inputs) >= maxInputs {
		return ds.fail(errCapacity("declare:INPUT", "too many inputs"))
	}
	slot := IOSlot{Semantic: d.Semantic, Index: d.Index, Interpolate: InterpMode(d.Interpolate), Centroid: d.Centroid, Reg: d.Range.First, First: d.Range.First}

	if ds.stage == ir.StageVertex {
		ds.attribInputMask |= 1 << uint(d.Range.First)
	}

	switch d.Semantic {
	case ir.SemPosition:
		switch ds.stage {
		case ir.StageGeometry:
			slot.Predefined, slot.NoIndex, slot.GLIn = true, true, true
			slot.Name = "gl_Position"
		case ir.StageFragment:
			slot.Predefined, slot.NoIndex = true, true
			slot.Name = "gl_FragCoord"
			ds.addFragCoordFlags(&slot)
		default:
			// Vertex-stage POSITION input is an ordinary vertex attribute
			// (the semantic only marks its intended use); it is declared
			// like any other user input, named by register below.
			slot.Name = ds.stagePrefix() + "_" + itoa(d.Range.First)
		}
	case ir.SemFace:
		slot.Predefined, slot.NoIndex = true, true
		slot.Name = "gl_FrontFacing"
		slot.IsInt = true
	case ir.SemPrimID:
		slot.Predefined, slot.NoIndex = true, true
		slot.Name = "gl_PrimitiveID"
		slot.IsInt = true
		if ds.stage == ir.StageFragment {
			ds.requireVersion(150)
		}
	case ir.SemLayer:
		slot.Predefined, slot.NoIndex = true, true
		slot.Name = "gl_Layer"
		slot.IsInt = true
		ds.usesLayer = true
	case ir.SemViewportIndex:
		slot.Predefined, slot.NoIndex = true, true
		slot.Name = "gl_ViewportIndex"
		slot.IsInt = true
		ds.hasFragViewportIdx = true
	case ir.SemPSize:
		slot.Predefined, slot.NoIndex = true, true
		slot.Name = "gl_PointSize"
		if ds.stage == ir.StageGeometry {
			slot.GLIn = true
		}
	case ir.SemClipDist:
		slot.Predefined, slot.NoIndex = true, true
		slot.Name = "gl_ClipDistance"
		if ds.stage == ir.StageGeometry {
			slot.GLIn = true
		}
		ds.numInClipDist++
	case ir.SemSampleID, ir.SemSamplePos:
		slot.Predefined, slot.NoIndex = true, true
		if d.Semantic == ir.SemSampleID {
			slot.Name, slot.IsInt = "gl_SampleID", true
		} else {
			slot.Name = "gl_SamplePosition"
		}
		ds.usesSampleShading = true
	case ir.SemColor, ir.SemBColor:
		if ds.stage == ir.StageFragment {
			return ds.declareFragmentColorInput(d, slot)
		}
		slot.Name = ds.stagePrefix() + semanticTag(d.Semantic) + itoa(d.Index)
	case ir.SemGeneric:
		if ds.stage == ir.StageFragment && ds.key.CoordReplace&(1<<uint(d.Index)) != 0 {
			slot.Predefined, slot.NoIndex, slot.OverrideWM = true, true, true
			slot.Name = "gl_PointCoord"
			break
		}
		if ds.stage == ir.StageGeometry {
			slot.GLIn = true
		}
		slot.Name = ds.stagePrefix() + "_g" + itoa(d.Index)
	default:
		slot.Name = ds.stagePrefix() + "_" + itoa(d.Range.First)
	}

	// Every user-named geometry input is a per-vertex array.
	if ds.stage == ir.StageGeometry && !slot.Predefined {
		slot.GLIn = true
	}

	ds.inputs = append(ds.inputs, slot)
	return true
}

// declareFragmentColorInput implements the FRONT/BACK color two-sided
// binding rules (spec §4.1 INPUT, fragment stage).
func (ds *dumpState) declareFragmentColorInput(d ir.Decl, slot IOSlot) bool {
	if ds.glslVerRequired < 140 {
		slot.Predefined, slot.NoIndex = true, true
		if d.Semantic == ir.SemColor {
			slot.Name = "gl_Color"
		} else {
			slot.Name = "gl_SecondaryColor"
		}
		ds.inputs = append(ds.inputs, slot)
		return true
	}

	slot.Name = "ex" + semanticTag(d.Semantic) + itoa(d.Index)
	if ds.key.FlatShade {
		slot.Interpolate = InterpFlat
	}
	ds.inputs = append(ds.inputs, slot)

	if ds.key.ColorTwoSide && d.Semantic == ir.SemColor {
		ds.twoSideColorMask |= 1 << uint(d.Index)
		bslot := IOSlot{Semantic: ir.SemBColor, Index: d.Index, Reg: d.Range.First, First: d.Range.First, Name: "ex_bc" + itoa(d.Index)}
		ds.inputs = append(ds.inputs, bslot)

		if !ds.frontFaceEmitted {
			ds.frontFaceEmitted = true
			ds.inputs = append(ds.inputs, IOSlot{
				Semantic: ir.SemFace, Predefined: true, NoIndex: true, IsInt: true, Name: "gl_FrontFacing",
			})
		}
	}
	return true
}

func (ds *dumpState) addFragCoordFlags(slot *IOSlot) {
	if ds.key.FSCoordOriginInverted {
		ds.fsCoordOrigin = FSCoordOriginLowerLeft
	}
}

func (ds *dumpState) declareOutput(d ir.Decl) bool {
	if len(ds.outputs) >= maxOutputs {
		return ds.fail(errCapacity("declare:OUTPUT", "too many outputs"))
	}
	slot := IOSlot{Semantic: d.Semantic, Index: d.Index, Interpolate: InterpMode(d.Interpolate), Centroid: d.Centroid, Reg: d.Range.First, First: d.Range.First, Stream: d.Stream, HasStream: true}

	switch d.Semantic {
	case ir.SemPosition:
		slot.Predefined, slot.NoIndex = true, true
		slot.Name = "gl_Position"
	case ir.SemPSize:
		slot.Predefined, slot.NoIndex = true, true
		slot.Name = "gl_PointSize"
	case ir.SemClipDist:
		slot.Name = "clip_dist_temp"
		ds.clipDistTempUsed = true
		ds.numClipDist++
	case ir.SemClipVertex:
		if ds.glslVerRequired >= 140 {
			slot.Name = "clipv_tmp"
			ds.clipVertexTempUsed = true
			ds.hasClipVertex = true
		} else {
			slot.Predefined, slot.NoIndex = true, true
			slot.Name = "gl_ClipVertex"
		}
	case ir.SemSampleMask:
		slot.Predefined, slot.NoIndex, slot.OverrideWM, slot.IsInt = true, true, true, true
		slot.Name = "gl_SampleMask"
	case ir.SemStencil:
		slot.Predefined, slot.NoIndex, slot.IsInt = true, true, true
		slot.Name = "gl_FragStencilRefARB"
		ds.usesStencilExport = true
	case ir.SemLayer:
		slot.Predefined, slot.NoIndex, slot.IsInt = true, true, true
		slot.Name = "gl_Layer"
		ds.usesLayer = true
	case ir.SemViewportIndex:
		slot.Predefined, slot.NoIndex, slot.IsInt = true, true, true
		slot.Name = "gl_ViewportIndex"
		ds.hasViewportIdx = true
	case ir.SemColor, ir.SemBColor:
		if ds.stage == ir.StageFragment {
			slot.Name = "fsout" + semanticTag(d.Semantic) + itoa(d.Index)
			break
		}
		slot.First--
		if ds.glslVerRequired < 140 {
			// Legacy fixed-function color outputs link by built-in name.
			slot.Predefined, slot.NoIndex = true, true
			slot.Name = legacyColorOutName(d.Semantic, d.Index)
			break
		}
		// ex_c/ex_bc match the fragment stage's user-named color inputs.
		slot.Name = "ex" + semanticTag(d.Semantic) + itoa(d.Index)
	case ir.SemGeneric:
		if ds.stage != ir.StageFragment {
			slot.First--
		}
		slot.Name = ds.outStagePrefix() + "_g" + itoa(d.Index)
	default:
		slot.Name = ds.outStagePrefix() + "_" + itoa(d.Range.First)
	}

	ds.outputs = append(ds.outputs, slot)
	if slot.HasStream && slot.Stream != 0 {
		ds.usesGPUShader5 = true
	}
	return true
}

func legacyColorOutName(sem ir.Semantic, index int) string {
	front := sem == ir.SemColor
	switch {
	case front && index == 0:
		return "gl_FrontColor"
	case front:
		return "gl_FrontSecondaryColor"
	case index == 0:
		return "gl_BackColor"
	default:
		return "gl_BackSecondaryColor"
	}
}

func (ds *dumpState) outStagePrefix() string {
	switch ds.stage {
	case ir.StageGeometry:
		return "gso"
	case ir.StageVertex:
		return "vso"
	default:
		return "fsout"
	}
}

func (ds *dumpState) declareTemporary(d ir.Decl) bool {
	ds.tempRanges = append(ds.tempRanges, TempRange{First: d.Range.First, Last: d.Range.Last, ArrayID: d.ArrayID})
	return true
}

func (ds *dumpState) declareSampler(d ir.Decl) bool {
	idx := d.Range.First
	if idx >= maxSamplers {
		return ds.fail(errCapacity("declare:SAMPLER", "too many samplers"))
	}
	ds.samplersUsed |= 1 << uint(idx)
	return true
}

func (ds *dumpState) declareSamplerView(d ir.Decl) bool {
	idx := d.Range.First
	if idx >= maxSamplers {
		return ds.fail(errCapacity("declare:SAMPLER_VIEW", "too many sampler views"))
	}
	ds.samplers[idx] = Sampler{Declared: true, Target: d.TextureTarget, Return: d.ReturnType, Shadow: d.Shadow}
	ds.sviewsUsed = true
	ds.addTextureTargetFlags(d.TextureTarget)

	if ds.usesIndirectSamplerIdx {
		ds.extendOrStartSamplerArray(d)
	}
	return true
}

func (ds *dumpState) addTextureTargetFlags(t ir.TextureTarget) {
	switch t {
	case ir.TexCubeArray:
		ds.usesCubeArray = true
		ds.requireVersion(400)
	case ir.Tex2DMS, ir.Tex2DMSArray:
		ds.usesSamplerMS = true
	case ir.TexBuffer:
		ds.usesSamplerBuf = true
	case ir.TexRect:
		ds.usesSamplerRect = true
	}
}

// extendOrStartSamplerArray implements the sampler-array extension
// heuristic (spec §3 SamplerArray invariant, §9 design note): a new view
// extends the last array when kind+rtype match, else a new array starts.
// Last is always set to Range.Last+1 (half-open), mirroring the source.
func (ds *dumpState) extendOrStartSamplerArray(d ir.Decl) {
	if n := len(ds.samplerArrays); n > 0 {
		last := &ds.samplerArrays[n-1]
		if last.Target == d.TextureTarget && last.Return == d.ReturnType && last.Last == d.Range.First {
			last.Last = d.Range.Last + 1
			return
		}
	}
	ds.samplerArrays = append(ds.samplerArrays, SamplerArray{
		First: d.Range.First, Last: d.Range.Last + 1, Target: d.TextureTarget, Return: d.ReturnType,
	})
}

func (ds *dumpState) declareImage(d ir.Decl) bool {
	idx := d.Range.First
	if idx >= maxImages {
		return ds.fail(errCapacity("declare:IMAGE", "too many images"))
	}
	ds.images[idx] = Image{Declared: true, Target: d.TextureTarget, Return: d.ReturnType, Format: d.Format, Writable: d.Writable, Volatile: d.Volatile}
	ds.imagesUsed |= 1 << uint(idx)
	ds.addTextureTargetFlags(d.TextureTarget)
	return true
}

func (ds *dumpState) declareBuffer(d ir.Decl) bool {
	idx := d.Range.First
	if idx >= maxSSBOs {
		return ds.fail(errCapacity("declare:BUFFER", "too many SSBOs"))
	}
	ds.ssboUsed |= 1 << uint(idx)
	ds.ssbo = true
	return true
}

func (ds *dumpState) declareConstant(d ir.Decl) bool {
	if d.HasUBO {
		ds.ubo = append(ds.ubo, UniformBlock{Index: d.UBOIndex, SizeVec4: d.UBOSize})
		return true
	}
	if d.Range.Last+1 > ds.numConsts {
		ds.numConsts = d.Range.Last + 1
	}
	return true
}

func (ds *dumpState) declareAddress(d ir.Decl) bool {
	ds.numAddress++
	return true
}

func (ds *dumpState) declareSystemValue(d ir.Decl) bool {
	if len(ds.sysVals) >= maxSystemValues {
		return ds.fail(errCapacity("declare:SYSTEM_VALUE", "too many system values"))
	}
	slot := IOSlot{Semantic: d.Semantic, Predefined: true, NoIndex: true, Reg: d.Range.First, First: d.Range.First}
	switch d.Semantic {
	case ir.SemInstanceID:
		slot.Name, slot.IsInt = "gl_InstanceID", true
		ds.hasInstanceID = true
	case ir.SemVertexID:
		slot.Name, slot.IsInt = "gl_VertexID", true
	case ir.SemSampleID:
		slot.Name, slot.IsInt = "gl_SampleID", true
		ds.usesSampleShading = true
	case ir.SemSamplePos:
		slot.Name = "gl_SamplePosition"
		ds.usesSampleShading = true
	case ir.SemInvocationID:
		slot.Name, slot.IsInt = "gl_InvocationID", true
		ds.usesGPUShader5 = true
		ds.hasInts = true
	case ir.SemSampleMask:
		slot.Name, slot.IsInt = "gl_SampleMaskIn[0]", true
		ds.usesGPUShader5 = true
		ds.hasInts = true
	case ir.SemPrimID:
		slot.Name, slot.IsInt = "gl_PrimitiveIDIn", true
		ds.usesGPUShader5 = true
		ds.hasInts = true
	case ir.SemThreadID:
		slot.Name, slot.IsInt = "gl_LocalInvocationID", true
		ds.hasInts = true
	case ir.SemBlockID:
		slot.Name, slot.IsInt = "gl_WorkGroupID", true
		ds.hasInts = true
	case ir.SemGridSize:
		slot.Name, slot.IsInt = "gl_NumWorkGroups", true
		ds.hasInts = true
	case ir.SemFace:
		slot.Name, slot.IsInt = "gl_FrontFacing", true
	case ir.SemTessCoord:
		slot.Name = "gl_TessCoord"
	default:
		return ds.fail(errUnsupported("declare:SYSTEM_VALUE", "unhandled system value semantic"))
	}
	ds.sysVals = append(ds.sysVals, slot)
	return true
}
