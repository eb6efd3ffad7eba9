package glverify

// CompileTranslated compiles vertex and fragment GLSL source produced by
// package glsl's Convert into a linked Program, for tests and tools that
// want to confirm a translated shader is accepted by a real driver rather
// than only inspecting the generated text. On a build without cgo this
// always returns errNoCgo, matching every other entry point in this
// package.
func CompileTranslated(vertexSrc, fragmentSrc string, flags CompileFlags) (Program, error) {
	return compileSources(ShaderSource{
		Vertex:       vertexSrc + "\x00",
		Fragment:     fragmentSrc + "\x00",
		CompileFlags: flags,
	})
}
