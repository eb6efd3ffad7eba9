package glsl_test

import (
	"math"
	"strings"
	"testing"

	"github.com/soypat/tgsi2glsl/glsl"
	"github.com/soypat/tgsi2glsl/ir"
	"github.com/soypat/tgsi2glsl/math/ms1"
)

func fullMask() uint8 { return 0xf }

func swizIdentity() [4]uint8 { return [4]uint8{0, 1, 2, 3} }

// scenario 1 (spec §8): passthrough vertex shader.
func TestConvertPassthroughVertex(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageVertex,
		Decls: []ir.Decl{
			{File: ir.FileInput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 0, WriteMask: fullMask()}},
				Src:    []ir.SrcOperand{{File: ir.FileInput, Index: 0, Swizzle: swizIdentity()}},
			},
			{Opcode: ir.OpEND},
		},
	}

	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	for _, want := range []string{
		"#version 130",
		"in vec4 in_0;",
		"void main(void)",
		"gl_Position = vec4(in_0);",
		"gl_Position.y = gl_Position.y * winsys_adjust_y;",
	} {
		if !strings.Contains(res.Source, want) {
			t.Errorf("missing %q in source:\n%s", want, res.Source)
		}
	}
}

// scenario 2 (spec §8): fragment shader with alpha test and write-all-cbufs.
func TestConvertFragmentAlphaTestWriteAllCBufs(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageFragment,
		Decls: []ir.Decl{
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemColor},
		},
		Properties: []ir.Property{
			{Name: ir.PropWriteAllCBufs, Value: 1},
		},
		Immediates: []ir.Immediate{
			{Type: ir.ImmFloat32, Bits: [4]uint32{floatBits(1), floatBits(0), floatBits(0), floatBits(1)}},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 0, WriteMask: fullMask()}},
				Src:    []ir.SrcOperand{{File: ir.FileImmediate, Index: 0, Swizzle: swizIdentity()}},
			},
			{Opcode: ir.OpEND},
		},
	}

	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{
		AlphaTest:     true,
		AlphaTestFunc: glsl.AlphaGreater,
		AlphaRefValue: 0.5,
	}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "out vec4 fsout_c0;") {
		t.Errorf("missing fsout_c0 declaration:\n%s", res.Source)
	}
	for i := 1; i < 8; i++ {
		if !strings.Contains(res.Source, "out vec4 fsout_c"+itoaTest(i)+";") {
			t.Errorf("missing fsout_c%d declaration:\n%s", i, res.Source)
		}
	}
	if !strings.Contains(res.Source, "if (!(fsout_c0.w > 0.500000)) { discard; }") {
		t.Errorf("missing alpha test discard:\n%s", res.Source)
	}
	for i := 1; i < 8; i++ {
		if !strings.Contains(res.Source, "fsout_c"+itoaTest(i)+" = fsout_c0;") {
			t.Errorf("missing color broadcast to fsout_c%d:\n%s", i, res.Source)
		}
	}
}

// scenario 3, fragment side (spec §8): two-sided color inputs are
// selected through realcolor0.
func TestConvertTwoSidedColorFragmentInputs(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageFragment,
		Decls: []ir.Decl{
			{File: ir.FileInput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemColor, Index: 0},
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemColor, Index: 0},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 0, WriteMask: 0xf}},
				Src:    []ir.SrcOperand{{File: ir.FileInput, Index: 0, Swizzle: [4]uint8{0, 1, 2, 3}}},
			},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{ForceMinGLSLVersion: 140}, glsl.ShaderKey{ColorTwoSide: true}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "in vec4 ex_c0;") {
		t.Errorf("missing ex_c0:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "in vec4 ex_bc0;") {
		t.Errorf("missing ex_bc0:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "vec4 realcolor0;") {
		t.Errorf("missing realcolor0 declaration:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "realcolor0 = gl_FrontFacing ? ex_c0 : ex_bc0;") {
		t.Errorf("missing front/back select into realcolor0:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "fsout_c0 = vec4(realcolor0);") {
		t.Errorf("MOV should read the selected color through realcolor0, not ex_c0 directly:\n%s", res.Source)
	}
}

// scenario 3, vertex side (spec §8): COLOR/BCOLOR vertex outputs are
// named ex_c/ex_bc so they link against the fragment stage's inputs.
func TestConvertTwoSidedColorVertexOutputs(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageVertex,
		Decls: []ir.Decl{
			{File: ir.FileInput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 1, Last: 1}, Semantic: ir.SemColor, Index: 0},
			{File: ir.FileOutput, Range: ir.Range{First: 2, Last: 2}, Semantic: ir.SemBColor, Index: 0},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 0, WriteMask: fullMask()}},
				Src:    []ir.SrcOperand{{File: ir.FileInput, Index: 0, Swizzle: swizIdentity()}},
			},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{ForceMinGLSLVersion: 140}, glsl.ShaderKey{ColorTwoSide: true}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "out vec4 ex_c0;") {
		t.Errorf("missing ex_c0 output:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "out vec4 ex_bc0;") {
		t.Errorf("missing ex_bc0 output:\n%s", res.Source)
	}
}

// scenario 4 (spec §8): TG4 with explicit component.
func TestConvertTG4Component(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageFragment,
		Decls: []ir.Decl{
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemColor},
			{File: ir.FileTemporary, Range: ir.Range{First: 0, Last: 0}},
			{File: ir.FileSamplerView, Range: ir.Range{First: 0, Last: 0}, TextureTarget: ir.Tex2D, ReturnType: ir.ReturnFloat},
		},
		Instructions: []ir.Instruction{
			{
				Opcode:  ir.OpTG4,
				Dst:     []ir.DstOperand{{File: ir.FileTemporary, Index: 0, WriteMask: fullMask()}},
				Src:     []ir.SrcOperand{{File: ir.FileTemporary, Index: 0, Swizzle: swizIdentity()}, {File: ir.FileSamplerView, Index: 0}},
				Texture: ir.Tex2D, Component: 2,
			},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "textureGather(samp0, vec2(temp0), int(2))") {
		t.Errorf("missing textureGather call:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "#extension GL_ARB_texture_gather : require") {
		t.Errorf("missing texture-gather extension line:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "#extension GL_ARB_gpu_shader5 : require") {
		t.Errorf("missing gpu_shader5 extension line:\n%s", res.Source)
	}
}

// scenario 5 (spec §8): indirect sampler indexing extends a sampler array.
func TestConvertIndirectSamplerArray(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageFragment,
		Decls: []ir.Decl{
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemColor},
			{File: ir.FileTemporary, Range: ir.Range{First: 0, Last: 0}},
			{File: ir.FileSamplerView, Range: ir.Range{First: 0, Last: 0}, TextureTarget: ir.Tex2D, ReturnType: ir.ReturnFloat},
			{File: ir.FileSamplerView, Range: ir.Range{First: 1, Last: 1}, TextureTarget: ir.Tex2D, ReturnType: ir.ReturnFloat},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpTEX,
				Dst:    []ir.DstOperand{{File: ir.FileTemporary, Index: 0, WriteMask: fullMask()}},
				Src: []ir.SrcOperand{
					{File: ir.FileTemporary, Index: 0, Swizzle: swizIdentity()},
					{File: ir.FileSamplerView, Index: 1, IndirectFile: ir.FileAddress, IndirectIndex: 0, IndirectOff: 1},
				},
				Texture: ir.Tex2D,
			},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "uniform sampler2D samp0[2];") {
		t.Errorf("missing sampler array declaration:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "samp0[addr0 + 1]") {
		t.Errorf("missing indirect sampler array index:\n%s", res.Source)
	}
}

// scenario 6 (spec §8): geometry shader EMIT with a non-zero stream.
func TestConvertGeometryStream(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageGeometry,
		Decls: []ir.Decl{
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemGeneric, Index: 0, Stream: 1},
		},
		Immediates: []ir.Immediate{
			{Type: ir.ImmInt32, Bits: [4]uint32{1, 0, 0, 0}},
		},
		Instructions: []ir.Instruction{
			{Opcode: ir.OpEMIT, Stream: 1},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "EmitStreamVertex(1);") {
		t.Errorf("missing EmitStreamVertex call:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "layout(stream = 1") {
		t.Errorf("missing stream layout qualifier:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "#extension GL_ARB_gpu_shader5 : require") {
		t.Errorf("missing gpu_shader5 extension line:\n%s", res.Source)
	}
}

// Capacity overrun (spec §4.1 failure, §7 error kinds).
func TestConvertCapacityExceeded(t *testing.T) {
	var decls []ir.Decl
	for i := 0; i < 36; i++ {
		decls = append(decls, ir.Decl{File: ir.FileInput, Range: ir.Range{First: i, Last: i}, Semantic: ir.SemGeneric, Index: i})
	}
	prog := ir.Program{Stage: ir.StageFragment, Decls: decls}
	_, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err == nil {
		t.Fatal("expected capacity error, got nil")
	}
	var gerr *glsl.Error
	if !isGlslError(err, &gerr) {
		t.Fatalf("expected *glsl.Error, got %T: %v", err, err)
	}
	if gerr.Kind != glsl.KindCapacityExceeded {
		t.Fatalf("expected KindCapacityExceeded, got %v", gerr.Kind)
	}
}

// TestConvertSaturateClamp checks the saturate-modifier follow-up (spec
// §4.3 "Saturate modifier") against math/ms1.Clamp, the same min/max
// formulation GLSL's clamp(dst, 0.0, 1.0) call is supposed to reproduce on
// the GPU for every sample value in range.
func TestConvertSaturateClamp(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageFragment,
		Decls: []ir.Decl{
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemColor},
		},
		Immediates: []ir.Immediate{
			{Type: ir.ImmFloat32, Bits: [4]uint32{floatBits(1.5), floatBits(1.5), floatBits(1.5), floatBits(1.5)}},
		},
		Instructions: []ir.Instruction{
			{
				Opcode:   ir.OpMUL,
				Saturate: true,
				Dst:      []ir.DstOperand{{File: ir.FileOutput, Index: 0, WriteMask: fullMask()}},
				Src: []ir.SrcOperand{
					{File: ir.FileImmediate, Index: 0, Swizzle: swizIdentity()},
					{File: ir.FileImmediate, Index: 0, Swizzle: swizIdentity()},
				},
			},
			{Opcode: ir.OpEND},
		},
	}

	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "= clamp(") || !strings.Contains(res.Source, ", 0.0, 1.0);") {
		t.Fatalf("expected a saturate clamp statement in source:\n%s", res.Source)
	}

	// 1.5*1.5 saturates to 1.0 on the GPU; ms1.Clamp computes the same
	// min/max formulation the emitted clamp(dst, 0.0, 1.0) call performs.
	if got := ms1.Clamp(1.5*1.5, 0, 1); got != 1 {
		t.Fatalf("ms1.Clamp(2.25, 0, 1) = %v, want 1", got)
	}
}

// Stream-output copies run in the vertex epilogue when no geometry stage
// follows (spec §4.4), naming one tfout slot per table entry.
func TestConvertStreamOutputCopies(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageVertex,
		Decls: []ir.Decl{
			{File: ir.FileInput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 1, Last: 1}, Semantic: ir.SemGeneric, Index: 0},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 1, WriteMask: fullMask()}},
				Src:    []ir.SrcOperand{{File: ir.FileInput, Index: 0, Swizzle: swizIdentity()}},
			},
			{Opcode: ir.OpEND},
		},
	}
	key := glsl.ShaderKey{
		StreamOutputs: []glsl.StreamOutput{{Register: 1, StartComponent: 0, NumComponents: 2}},
	}
	res, err := glsl.Convert(glsl.Cfg{}, key, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "out vec2 tfout0;") {
		t.Errorf("missing tfout0 declaration:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "tfout0 = vec2(vso_g0.xy);") {
		t.Errorf("missing stream-output copy:\n%s", res.Source)
	}
	if len(res.Info.StreamOutputNames) != 1 || res.Info.StreamOutputNames[0] != "tfout0" {
		t.Errorf("StreamOutputNames = %v, want [tfout0]", res.Info.StreamOutputNames)
	}
}

// Clip-distance writes are redirected to clip_dist_temp and unpacked in
// the epilogue: clip indices first, cull indices after (spec §8).
func TestConvertClipCullDistPacking(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageVertex,
		Decls: []ir.Decl{
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 1, Last: 1}, Semantic: ir.SemClipDist},
		},
		Properties: []ir.Property{
			{Name: ir.PropNumClipDist, Value: 1},
			{Name: ir.PropNumCullDist, Value: 1},
		},
		Immediates: []ir.Immediate{
			{Type: ir.ImmFloat32, Bits: [4]uint32{floatBits(1), floatBits(1), 0, 0}},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 1, WriteMask: fullMask()}},
				Src:    []ir.SrcOperand{{File: ir.FileImmediate, Index: 0, Swizzle: swizIdentity()}},
			},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	for _, want := range []string{
		"vec4 clip_dist_temp[2];",
		"gl_ClipDistance[0] = clip_dist_temp[0][0];",
		"gl_CullDistance[0] = clip_dist_temp[0][1];",
		"float gl_ClipDistance[1];",
		"float gl_CullDistance[1];",
	} {
		if !strings.Contains(res.Source, want) {
			t.Errorf("missing %q in source:\n%s", want, res.Source)
		}
	}
}

// SSBO declarations and loads go through the uvec4-backed buffer block.
func TestConvertBufferLoad(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageCompute,
		Decls: []ir.Decl{
			{File: ir.FileBuffer, Range: ir.Range{First: 0, Last: 0}},
			{File: ir.FileTemporary, Range: ir.Range{First: 0, Last: 0}},
		},
		Immediates: []ir.Immediate{
			{Type: ir.ImmUint32, Bits: [4]uint32{16, 0, 0, 0}},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpLOAD,
				Dst:    []ir.DstOperand{{File: ir.FileTemporary, Index: 0, WriteMask: fullMask()}},
				Src: []ir.SrcOperand{
					{File: ir.FileImmediate, Index: 0, Swizzle: swizIdentity()},
					{File: ir.FileBuffer, Index: 0},
				},
			},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Source, "layout(std430) buffer ssbobind0 { uvec4 data[]; } ssbo0;") {
		t.Errorf("missing SSBO declaration:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "uintBitsToFloat(ssbo0.data[") {
		t.Errorf("missing buffer load:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "layout(local_size_x = 1, local_size_y = 1, local_size_z = 1) in;") {
		t.Errorf("missing compute local-size layout:\n%s", res.Source)
	}
	if !strings.Contains(res.Source, "#version 330") {
		t.Errorf("compute stage should require GLSL 330:\n%s", res.Source)
	}
}

// The interpolation patcher fills the reserved prefix with the fragment
// stage's qualifier and is idempotent (spec §4.6, §8).
func TestPatchInterpolation(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageVertex,
		Decls: []ir.Decl{
			{File: ir.FileInput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 1, Last: 1}, Semantic: ir.SemColor, Index: 0},
			{File: ir.FileOutput, Range: ir.Range{First: 2, Last: 2}, Semantic: ir.SemGeneric, Index: 1},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 0, WriteMask: fullMask()}},
				Src:    []ir.SrcOperand{{File: ir.FileInput, Index: 0, Swizzle: swizIdentity()}},
			},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{ForceMinGLSLVersion: 140}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	interpolants := []glsl.InterpolantInfo{
		{Semantic: ir.SemColor, Index: 0, Interpolate: glsl.InterpFlat},
		{Semantic: ir.SemGeneric, Index: 1, Interpolate: glsl.InterpNoPerspective},
	}
	patched := glsl.PatchInterpolation(res.Source, interpolants)
	if !strings.Contains(patched, "flat out vec4 ex_c0;") {
		t.Errorf("missing flat qualifier on ex_c0:\n%s", patched)
	}
	if !strings.Contains(patched, "noperspective out vec4 vso_g1;") {
		t.Errorf("missing noperspective qualifier on vso_g1:\n%s", patched)
	}
	if again := glsl.PatchInterpolation(patched, interpolants); again != patched {
		t.Error("patching twice should be a no-op")
	}
}

// Geometry-stage user inputs are per-vertex arrays sized by the input
// primitive and indexed by the operand's dimension (spec §4.1, §4.5).
func TestConvertGeometryInputs(t *testing.T) {
	prog := ir.Program{
		Stage: ir.StageGeometry,
		Decls: []ir.Decl{
			{File: ir.FileInput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileInput, Range: ir.Range{First: 1, Last: 1}, Semantic: ir.SemGeneric, Index: 0},
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
		},
		Properties: []ir.Property{
			{Name: ir.PropGSInputPrim, Value: 4},
			{Name: ir.PropGSOutputPrim, Value: 4},
			{Name: ir.PropGSMaxOutputVertices, Value: 3},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 0, WriteMask: fullMask()}},
				Src:    []ir.SrcOperand{{File: ir.FileInput, Index: 0, Swizzle: swizIdentity(), HasDimension: true, DimIndex: 1}},
			},
			{Opcode: ir.OpEMIT},
			{Opcode: ir.OpEND},
		},
	}
	res, err := glsl.Convert(glsl.Cfg{}, glsl.ShaderKey{}, prog)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	for _, want := range []string{
		"layout(triangles) in;",
		"layout(triangle_strip, max_vertices = 3) out;",
		"in vec4 vso_g0[3];",
		"gl_Position = vec4(gl_in[1].gl_Position);",
		"EmitVertex();",
	} {
		if !strings.Contains(res.Source, want) {
			t.Errorf("missing %q in source:\n%s", want, res.Source)
		}
	}
}

func isGlslError(err error, target **glsl.Error) bool {
	e, ok := err.(*glsl.Error)
	if ok {
		*target = e
	}
	return ok
}

func floatBits(f float32) uint32 {
	return math.Float32bits(f)
}

func itoaTest(n int) string {
	const digits = "0123456789"
	if n < 10 {
		return string(digits[n])
	}
	return string(digits[n/10]) + string(digits[n%10])
}
