package glsl

import (
	"strconv"
	"strings"

	"github.com/soypat/tgsi2glsl/ir"
)

// interpPrefix reserves a fixed field of 15 spaces at the start of each
// vertex-stage output declaration line the fragment stage might need to
// patch (spec §4.6). Once the adjoining fragment stage's interpolation
// choices are known, the Interpolation Patcher replaces the whole field
// with the chosen qualifier ("flat ", "noperspective ", "smooth ", each
// optionally preceded by "centroid "), without padding and without
// touching anything else on the line. Patching is purely textual; no
// deferred template rendered from both stages' descriptors is used.
const interpPrefix = "               " // 15 spaces

// reserveInterpPrefix is called by the Header/IO Emitter in place of a
// plain qualifier, whenever the output being declared may later need
// patching by PatchInterpolation (spec §4.6).
func reserveInterpPrefix() string { return interpPrefix }

// PatchInterpolation returns a copy of a previously generated vertex-stage
// GLSL source string, replacing each reserved interpolation-prefix
// field with the qualifier the adjoining fragment stage actually requires
// (spec §4.6). It operates purely on text: vertexSrc is not reparsed, only
// scanned line by line for reserved "out vec4 ex_c*" / "out vec4 <pfx>_g*"
// declarations whose semantic and index match an entry in interpolants.
//
// The matching is ambiguous by construction when two vertex outputs share
// the same semantic and index across different generic slots; this mirrors
// the source design rather than resolving it (spec §9 design note).
func PatchInterpolation(vertexSrc string, interpolants []InterpolantInfo) string {
	lines := strings.Split(vertexSrc, "\n")
	for i, line := range lines {
		trimmed := strings.TrimPrefix(line, interpPrefix)
		if trimmed == line {
			continue // line wasn't reserved
		}
		sem, idx, ok := parseReservedOutName(trimmed)
		if !ok {
			continue
		}
		for _, in := range interpolants {
			if in.Semantic == sem && in.Index == idx {
				lines[i] = patchQualifier(in.Interpolate, in.Centroid) + trimmed
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// patchQualifier is the qualifier written over a reserved field: unlike
// the header emitter's default-elided form, the patched declaration names
// the smooth qualifier explicitly so a patched line is visibly resolved.
func patchQualifier(mode InterpMode, centroid bool) string {
	q := "smooth "
	switch mode {
	case InterpFlat:
		q = "flat "
	case InterpNoPerspective:
		q = "noperspective "
	}
	if centroid {
		q = "centroid " + q
	}
	return q
}

// parseReservedOutName extracts the semantic and index out of a reserved
// output declaration line: "out vec4 ex_c0;" / "out vec4 ex_bc1;" for
// colors (spec §4.6), "out vec4 vso_g2;" (or gso_g2) for generics.
func parseReservedOutName(line string) (ir.Semantic, int, bool) {
	for _, m := range []struct {
		marker string
		sem    ir.Semantic
	}{
		{"ex_bc", ir.SemBColor},
		{"ex_c", ir.SemColor},
		{"vso_g", ir.SemGeneric},
		{"gso_g", ir.SemGeneric},
	} {
		pos := strings.Index(line, m.marker)
		if pos < 0 {
			continue
		}
		rest := line[pos+len(m.marker):]
		end := strings.IndexAny(rest, ";\t ")
		if end >= 0 {
			rest = rest[:end]
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		return m.sem, n, true
	}
	return 0, 0, false
}
