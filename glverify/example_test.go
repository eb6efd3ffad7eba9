//go:build !tinygo && cgo

package glverify_test

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/tgsi2glsl/glsl"
	"github.com/soypat/tgsi2glsl/glverify"
	"github.com/soypat/tgsi2glsl/ir"
	"github.com/soypat/tgsi2glsl/math/ms3"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// passthroughPrograms builds the minimal IR for a vertex shader that copies
// its POSITION input straight to gl_Position, and a fragment shader that
// outputs a flat color, then runs both through glsl.Convert.
func passthroughPrograms() (vertex, fragment string, err error) {
	vprog := ir.Program{
		Stage: ir.StageVertex,
		Decls: []ir.Decl{
			{File: ir.FileInput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemPosition},
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
	vres, err := glsl.Convert(glsl.Cfg{UseCore: true, ForceMinGLSLVersion: 330}, glsl.ShaderKey{}, vprog)
	if err != nil {
		return "", "", fmt.Errorf("vertex convert: %w", err)
	}

	fprog := ir.Program{
		Stage: ir.StageFragment,
		Decls: []ir.Decl{
			{File: ir.FileOutput, Range: ir.Range{First: 0, Last: 0}, Semantic: ir.SemColor},
		},
		Immediates: []ir.Immediate{
			{Type: ir.ImmFloat32, Bits: [4]uint32{floatBitsExample(0.2), floatBitsExample(0.3), floatBitsExample(0.8), floatBitsExample(1)}},
		},
		Instructions: []ir.Instruction{
			{
				Opcode: ir.OpMOV,
				Dst:    []ir.DstOperand{{File: ir.FileOutput, Index: 0, WriteMask: 0xf}},
				Src:    []ir.SrcOperand{{File: ir.FileImmediate, Index: 0, Swizzle: [4]uint8{0, 1, 2, 3}}},
			},
			{Opcode: ir.OpEND},
		},
	}
	fres, err := glsl.Convert(glsl.Cfg{UseCore: true, ForceMinGLSLVersion: 330}, glsl.ShaderKey{}, fprog)
	if err != nil {
		return "", "", fmt.Errorf("fragment convert: %w", err)
	}
	return vres.Source, fres.Source, nil
}

func floatBitsExample(f float32) uint32 {
	return math.Float32bits(f)
}

// Example_translatedSquare translates a passthrough vertex/fragment pair
// with package glsl, links the result against a real GL context with
// glverify, and draws one frame. Unlike the teacher's original demo this
// never enters a render loop: it renders a single frame to prove the
// translator's output is accepted by a driver, then tears the window down.
func Example_translatedSquare() {
	// Square with indices:
	// 3----2
	// |    |
	// 0----1
	// ms3.Vec's trailing padding float keeps each vertex std430-friendly,
	// matching the stride the attribute layout below declares.
	var positions = []ms3.Vec{
		{X: -0.5, Y: -0.5}, // 0
		{X: 0.5, Y: -0.5},  // 1
		{X: 0.5, Y: 0.5},   // 2
		{X: -0.5, Y: 0.5},  // 3
	}
	var indices = []uint32{
		0, 1, 2, // Lower right triangle.
		0, 2, 3, // Upper left triangle.
	}

	window, terminate, err := glverify.InitWithCurrentWindow33(glverify.WindowConfig{
		Title:         "Translated passthrough",
		Width:         800,
		Height:        800,
		NotResizable:  true,
		Version:       [2]int{4, 6},
		OpenGLProfile: glfw.OpenGLCoreProfile,
		ForwardCompat: true,
	})
	if err != nil {
		slog.Error("window init fail", "err", err.Error())
		return
	}
	defer terminate()
	fmt.Println("OpenGL version", glverify.Version())

	vertexSrc, fragmentSrc, err := passthroughPrograms()
	if err != nil {
		slog.Error("translate fail", "err", err.Error())
		return
	}

	program, err := glverify.CompileTranslated(vertexSrc, fragmentSrc, glverify.CompileFlagsStrict)
	if err != nil {
		slog.Error("compile translated fail", "err", err.Error())
		return
	}
	defer program.Delete()
	program.Bind()

	// The translated vertex epilogue scales gl_Position.y by this uniform
	// (the host's window-system Y convention); 1.0 means no flip.
	if loc, err := program.UniformLocation("winsys_adjust_y\x00"); err == nil {
		if err := program.SetUniformf(loc, 1.0); err != nil {
			slog.Error("setting winsys_adjust_y", "err", err.Error())
			return
		}
	}

	vao := glverify.NewVAO()
	vbo, err := glverify.NewVertexBuffer(glverify.StaticDraw, positions)
	if err != nil {
		slog.Error("creating positions vertex buffer", "err", err.Error())
		return
	}
	err = vao.AddAttribute(vbo, glverify.AttribLayout{
		Program: program,
		Type:    gl.FLOAT,
		Name:    "in_0\x00",
		Packing: 3,
		Stride:  4 * 4, // ms3.Vec is 4 float32 lanes wide (X,Y,Z + padding).
	})
	if err != nil {
		slog.Error("adding attribute in_0", "err", err.Error())
		return
	}

	_, err = glverify.NewIndexBuffer(indices)
	if err != nil {
		slog.Error("creating index buffer", "err", err.Error())
		return
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.DrawElements(gl.TRIANGLES, int32(len(indices)), gl.UNSIGNED_INT, unsafe.Pointer(nil))
	window.SwapBuffers()
	glfw.PollEvents()
}
