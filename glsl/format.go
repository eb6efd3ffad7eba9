package glsl

import "github.com/soypat/tgsi2glsl/ir"

// formatEntry is one row of the format table (spec §6): the image layout
// qualifier string GLSL needs and the component return type implied by the
// format. PIPE_FORMAT_NONE (ir.FormatNone) maps to an empty qualifier.
type formatEntry struct {
	layout string
	rtype  ir.ReturnType
}

// formatTable is a representative subset of the real format table (the
// full ~120-entry table lives in the external format-descriptor collaborator,
// spec §1/§6); this subset covers every format the test scenarios in
// SPEC_FULL.md §7 exercise. lookupFormat reports an unknown format as an
// *Error of KindUnsupported.
var formatTable = map[ir.Format]formatEntry{
	ir.FormatNone: {"", ir.ReturnFloat},
	fmtRGBA32F:    {"rgba32f", ir.ReturnFloat},
	fmtRGBA16F:    {"rgba16f", ir.ReturnFloat},
	fmtRG32F:      {"rg32f", ir.ReturnFloat},
	fmtR32F:       {"r32f", ir.ReturnFloat},
	fmtRGBA8:      {"rgba8", ir.ReturnFloat},
	fmtRGBA8_SNORM: {"rgba8_snorm", ir.ReturnFloat},
	fmtRGBA32UI:   {"rgba32ui", ir.ReturnUint},
	fmtRGBA32I:    {"rgba32i", ir.ReturnInt},
	fmtR32UI:      {"r32ui", ir.ReturnUint},
	fmtR32I:       {"r32i", ir.ReturnInt},
}

// Format ids. A real IR would carry these from the format-descriptor table
// (spec §6); they are declared here only so fixtures in this module's own
// tests can name a format without importing an external table.
const (
	fmtRGBA32F ir.Format = iota + 1
	fmtRGBA16F
	fmtRG32F
	fmtR32F
	fmtRGBA8
	fmtRGBA8_SNORM
	fmtRGBA32UI
	fmtRGBA32I
	fmtR32UI
	fmtR32I
)

func lookupFormat(f ir.Format) (formatEntry, error) {
	e, ok := formatTable[f]
	if !ok {
		return formatEntry{}, errUnsupported("format", "unknown image/texture format")
	}
	return e, nil
}
