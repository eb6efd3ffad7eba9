package glsl

import (
	"strings"

	"github.com/soypat/tgsi2glsl/ir"
)

// emitHeader composes the version directive, extension requirements and
// every declaration's GLSL text (spec §4.5 Header/IO Emitter), to be
// prepended to the translated body.
func (ds *dumpState) emitHeader() string {
	var b strings.Builder

	b.WriteString(versionDirective(ds.cfg, ds.glslVerRequired))
	b.WriteByte('\n')

	for _, ext := range ds.requiredExtensions() {
		b.WriteString("#extension " + ext + " : require\n")
	}

	if ds.cfg.IsES() {
		b.WriteString("precision highp float;\n")
	}

	ds.emitStageLayouts(&b)
	ds.emitInputs(&b)
	ds.emitOutputs(&b)
	ds.emitUniforms(&b)
	ds.emitSamplers(&b)
	ds.emitImages(&b)
	ds.emitBuffers(&b)
	ds.emitTemporaries(&b)

	return b.String()
}

func versionDirective(cfg Cfg, required int) string {
	if cfg.IsES() {
		v := cfg.GLESVersion
		if required > v {
			v = required
		}
		return "#version " + itoa(v) + " es"
	}
	v := required
	if cfg.UseCore && v < 150 {
		v = 150
	}
	suffix := ""
	if cfg.UseCore {
		suffix = " core"
	}
	return "#version " + itoa(v) + suffix
}

// requiredExtensions lists, in a stable order, the extension strings raised
// by feature flags accumulated during declaration/instruction translation
// (spec §4.5 point 2).
func (ds *dumpState) requiredExtensions() []string {
	var exts []string
	add := func(cond bool, name string) {
		if cond {
			exts = append(exts, name)
		}
	}
	add(ds.usesCubeArray, "GL_ARB_texture_cube_map_array")
	add(ds.usesSamplerMS, "GL_ARB_texture_multisample")
	add(ds.usesSamplerBuf, "GL_EXT_texture_buffer")
	add(ds.usesSamplerRect && !ds.cfg.IsES(), "GL_ARB_texture_rectangle")
	add(ds.usesLodq, "GL_ARB_texture_query_lod")
	add(ds.usesTXQLevels, "GL_ARB_texture_query_levels")
	add(ds.usesTG4, "GL_ARB_texture_gather")
	add(ds.usesLayer && ds.stage == ir.StageVertex, "GL_ARB_shader_viewport_layer_array")
	add(ds.usesSampleShading && ds.cfg.IsES(), "GL_OES_sample_variables")
	add(ds.usesSampleShading && !ds.cfg.IsES(), "GL_ARB_sample_shading")
	add(ds.usesGPUShader5, "GL_ARB_gpu_shader5")
	add(ds.usesStencilExport, "GL_ARB_shader_stencil_export")
	add(ds.hasInts && !ds.cfg.IsES(), "GL_ARB_shader_bit_encoding")
	add(ds.hasInstanceID && !ds.cfg.IsES(), "GL_ARB_draw_instanced")
	add(ds.imagesUsed != 0 && !ds.cfg.IsES(), "GL_ARB_shader_image_load_store")
	add(ds.ssbo && !ds.cfg.IsES(), "GL_ARB_shader_storage_buffer_object")
	return exts
}

func (ds *dumpState) emitStageLayouts(b *strings.Builder) {
	if ds.stage == ir.StageGeometry {
		invocations := ""
		if ds.gsInvocations > 1 {
			invocations = ", invocations = " + itoa(ds.gsInvocations)
		}
		b.WriteString("layout(" + gsInPrimLayout(ds.gsInPrim) + invocations + ") in;\n")
		b.WriteString("layout(" + gsOutPrimLayout(ds.gsOutPrim) + ", max_vertices = " + itoa(ds.gsMaxOutVerts) + ") out;\n")
	}
	if ds.stage == ir.StageCompute {
		b.WriteString("layout(local_size_x = " + itoa(maxInt(ds.csBlockSize[0], 1)) +
			", local_size_y = " + itoa(maxInt(ds.csBlockSize[1], 1)) +
			", local_size_z = " + itoa(maxInt(ds.csBlockSize[2], 1)) + ") in;\n")
	}
	if ds.stage == ir.StageFragment {
		if ds.earlyDepthStencil {
			b.WriteString("layout(early_fragment_tests) in;\n")
		}
		if ds.fsCoordConvSet {
			var quals []string
			if ds.fsCoordOrigin == FSCoordOriginUpperLeft {
				quals = append(quals, "origin_upper_left")
			}
			if ds.fsPixelCenter == FSCoordPixelCenterInteger {
				quals = append(quals, "pixel_center_integer")
			}
			if len(quals) > 0 {
				b.WriteString("layout(" + strings.Join(quals, ", ") + ") in vec4 gl_FragCoord;\n")
			}
		}
	}
	if ds.stage == ir.StageVertex && (ds.key.HasGeometryStage || ds.key.PerVertexOutExplicit ||
		ds.numClipDistProp > 0 || ds.numCullDistProp > 0) {
		b.WriteString("out gl_PerVertex {\n\tvec4 gl_Position;\n\tfloat gl_PointSize;\n")
		if n := ds.numClipDistProp; n > 0 {
			b.WriteString("\tfloat gl_ClipDistance[" + itoa(n) + "];\n")
		} else {
			b.WriteString("\tfloat gl_ClipDistance[];\n")
		}
		if m := ds.numCullDistProp; m > 0 {
			b.WriteString("\tfloat gl_CullDistance[" + itoa(m) + "];\n")
		}
		b.WriteString("};\n")
	}
}

// gsInPrimVertexCount sizes geometry-stage input arrays by the declared
// input primitive (spec §4.5 point 4).
func gsInPrimVertexCount(p int) int {
	switch p {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 4
	case 5:
		return 6
	default:
		return 3
	}
}

func gsInPrimLayout(p int) string {
	switch p {
	case 1:
		return "points"
	case 2:
		return "lines"
	case 3:
		return "lines_adjacency"
	case 4:
		return "triangles"
	case 5:
		return "triangles_adjacency"
	default:
		return "triangles"
	}
}

func gsOutPrimLayout(p int) string {
	switch p {
	case 1:
		return "points"
	case 2:
		return "line_strip"
	case 4:
		return "triangle_strip"
	default:
		return "triangle_strip"
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (ds *dumpState) emitInputs(b *strings.Builder) {
	for _, s := range ds.inputs {
		if s.Predefined {
			continue
		}
		qualifier := interpQualifier(s.Interpolate, s.Centroid)
		loc := ""
		if ds.cfg.ExplicitAttribLocation && ds.stage == ir.StageVertex {
			loc = "layout(location = " + itoa(s.First) + ") "
		}
		typ := "vec4"
		if s.IsInt {
			typ = "int"
		}
		arraySuffix := ""
		if s.GLIn {
			arraySuffix = "[" + itoa(gsInPrimVertexCount(ds.gsInPrim)) + "]"
		}
		b.WriteString(loc + qualifier + "in " + typ + " " + s.Name + arraySuffix + ";\n")
	}
	// A fragment stage reading clip distances redeclares the built-in
	// array at the size the upstream stage actually writes (spec §6
	// "upstream clip/cull counts").
	if ds.stage == ir.StageFragment && ds.numInClipDist > 0 {
		n := ds.key.GSOutputClipDistances
		if n == 0 {
			n = clampInt(ds.numInClipDist*4, 1, 8)
		}
		b.WriteString("in float gl_ClipDistance[" + itoa(n) + "];\n")
		if m := ds.key.GSOutputCullDistances; m > 0 {
			b.WriteString("in float gl_CullDistance[" + itoa(m) + "];\n")
		}
	}
}

func (ds *dumpState) emitOutputs(b *strings.Builder) {
	for _, s := range ds.outputs {
		if s.Predefined {
			continue
		}
		// Vertex-stage color/generic outputs don't yet know the adjoining
		// fragment stage's interpolation choice (separate compilation,
		// spec §4.6): reserve the patchable field instead of emitting a
		// qualifier now. Every other output (fragment, geometry, or
		// built-ins already excluded above) knows its own qualifier.
		var qualifier string
		switch {
		case ds.stage == ir.StageVertex && (s.Semantic == ir.SemColor || s.Semantic == ir.SemBColor || s.Semantic == ir.SemGeneric):
			qualifier = reserveInterpPrefix()
		case ds.stage == ir.StageFragment:
			// Fragment outputs feed the blender, not an interpolator.
		default:
			qualifier = interpQualifier(s.Interpolate, s.Centroid)
		}
		typ := "vec4"
		if s.IsInt {
			typ = "int"
		}
		loc := ""
		if ds.stage == ir.StageFragment && s.Semantic == ir.SemColor {
			loc = "layout(location = " + itoa(s.Index) + ") "
		}
		if ds.stage == ir.StageGeometry && s.HasStream && s.Stream != 0 {
			loc = "layout(stream = " + itoa(s.Stream) + ") "
		}
		b.WriteString(loc + qualifier + "out " + typ + " " + s.Name + ";\n")
	}
	// Transform-feedback capture slots, one per stream-output binding
	// (spec §3 "StreamOutput binding"); in a geometry shader each slot
	// carries its stream so the capture lands in the right buffer set.
	for _, so := range ds.so {
		stream := ""
		if ds.stage == ir.StageGeometry && so.Stream != 0 {
			stream = "layout(stream = " + itoa(so.Stream) + ") "
		}
		b.WriteString(stream + "out " + vecN(so.NumComponents) + " " + so.BufferName + ";\n")
	}
	// write_all_cbufs broadcasts color output 0 to every bound color
	// attachment (spec §4.4 fragment epilogue): the IR only ever declares
	// fsout_c0, so the remaining seven slots the epilogue writes to are
	// synthesized here rather than carried on an IR OUTPUT declaration.
	if ds.stage == ir.StageFragment && ds.writeAllCBufs && ds.hasColorOutput() {
		for i := 1; i < 8; i++ {
			b.WriteString("layout(location = " + itoa(i) + ") out vec4 fsout_c" + itoa(i) + ";\n")
		}
	}
	if ds.clipDistTempUsed {
		b.WriteString("vec4 clip_dist_temp[2];\n")
	}
	if ds.clipVertexTempUsed {
		b.WriteString("vec4 clipv_tmp;\n")
	}
	if ds.stage == ir.StageVertex || ds.stage == ir.StageGeometry {
		b.WriteString("uniform float winsys_adjust_y;\n")
	}
	if ds.key.ClipPlaneMask != 0 {
		b.WriteString("uniform vec4 clipp[8];\n")
	}
}

func interpQualifier(mode InterpMode, centroid bool) string {
	q := ""
	switch mode {
	case InterpFlat:
		q = "flat "
	case InterpNoPerspective:
		q = "noperspective "
	}
	if centroid {
		q += "centroid "
	}
	return q
}

func (ds *dumpState) emitUniforms(b *strings.Builder) {
	if ds.numConsts > 0 {
		b.WriteString("uniform uvec4 " + ds.stageConstPrefix() + "const0[" + itoa(ds.numConsts) + "];\n")
	}
	// UBOs: one instanced block array when the IR addresses the dimension
	// indirectly, else one block per binding (spec §4.5 point 5).
	if ds.indirectUBO {
		maxIdx, maxSize := 0, 1
		for _, u := range ds.ubo {
			if u.Index+1 > maxIdx {
				maxIdx = u.Index + 1
			}
			if u.SizeVec4 > maxSize {
				maxSize = u.SizeVec4
			}
		}
		if maxIdx > 0 {
			b.WriteString("layout(std140) uniform ubodata { vec4 ubo_data[" + itoa(maxSize) + "]; } uboarr[" + itoa(maxIdx) + "];\n")
		}
	} else {
		for _, u := range ds.ubo {
			b.WriteString("layout(std140) uniform ubo" + itoa(u.Index) + " { vec4 ubo" + itoa(u.Index) + "_data[" + itoa(u.SizeVec4) + "]; };\n")
		}
	}
	if ds.stage == ir.StageFragment && ds.key.PolygonStipple {
		b.WriteString("uniform sampler2D pstipple_sampler;\n")
	}
}

// emitSamplers declares one uniform per sampler slot, or one uniform array
// per SamplerArray run when the program uses indirect sampler indexing
// (spec §4.5 point 5, §8 scenario 5): "Header declares a single
// `uniform sampler2D <pfx>samp0[2];`".
func (ds *dumpState) emitSamplers(b *strings.Builder) {
	for i := range ds.samplerArrays {
		a := &ds.samplerArrays[i]
		typ := samplerGLSLType(a.Return, a.Target, false)
		n := a.Last - a.First
		b.WriteString("uniform " + typ + " samp" + itoa(a.First) + "[" + itoa(n) + "];\n")
	}
	for i, s := range ds.samplers {
		if !s.Declared {
			continue
		}
		if ds.findSamplerArray(i) != nil {
			if s.Shadow {
				b.WriteString("uniform float shadmask" + itoa(i) + ";\n")
				b.WriteString("uniform float shadadd" + itoa(i) + ";\n")
			}
			continue
		}
		typ := samplerGLSLType(s.Return, s.Target, s.Shadow)
		b.WriteString("uniform " + typ + " samp" + itoa(i) + ";\n")
		if s.Shadow {
			b.WriteString("uniform float shadmask" + itoa(i) + ";\n")
			b.WriteString("uniform float shadadd" + itoa(i) + ";\n")
		}
	}
}

func (ds *dumpState) emitImages(b *strings.Builder) {
	for i, img := range ds.images {
		if !img.Declared {
			continue
		}
		typ := imageGLSLType(img.Return, img.Target)
		qualifiers := ""
		if img.Format == ir.FormatNone {
			// No format means the image can only be stored to.
			qualifiers += "writeonly "
		}
		if img.Volatile {
			qualifiers += "volatile "
		}
		if entry, err := lookupFormat(img.Format); err == nil && entry.layout != "" {
			qualifiers = "layout(" + entry.layout + ") " + qualifiers
		}
		b.WriteString("uniform " + qualifiers + typ + " img" + itoa(i) + ";\n")
	}
}

func (ds *dumpState) emitBuffers(b *strings.Builder) {
	for i := 0; i < 32; i++ {
		if ds.ssboUsed&(1<<uint(i)) == 0 {
			continue
		}
		b.WriteString("layout(std430) buffer ssbobind" + itoa(i) + " { uvec4 data[]; } ssbo" + itoa(i) + ";\n")
	}
}

func (ds *dumpState) emitTemporaries(b *strings.Builder) {
	for _, r := range ds.tempRanges {
		if r.First == r.Last {
			b.WriteString("vec4 temp" + itoa(r.First) + ";\n")
		} else {
			b.WriteString("vec4 temp" + itoa(r.First) + "[" + itoa(r.Last-r.First+1) + "];\n")
		}
	}
	for i := 0; i < ds.numAddress; i++ {
		b.WriteString("int addr" + itoa(i) + ";\n")
	}
	// Helper temporaries (spec §4.5 point 6): realcolor<k> holds the
	// front/back-selected two-sided color, interp_temp holds an
	// INTERP_* result before its swizzled move into the destination.
	for i := 0; i < 8; i++ {
		if ds.twoSideColorMask&(1<<uint(i)) != 0 {
			b.WriteString("vec4 realcolor" + itoa(i) + ";\n")
		}
	}
	if ds.usesInterpTemp {
		b.WriteString("vec4 interp_temp;\n")
	}
}
