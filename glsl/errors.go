package glsl

import "fmt"

// Kind classifies a translation failure (spec §7).
type Kind int

const (
	KindCapacityExceeded Kind = iota
	KindUnsupported
	KindOutOfMemory
)

func (k Kind) String() string {
	switch k {
	case KindCapacityExceeded:
		return "capacity exceeded"
	case KindUnsupported:
		return "unsupported"
	case KindOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// Error is the typed error every translator entry point surfaces (spec §7):
// the top-level Convert call logs nothing itself (that is left to the
// caller, per the ambient-logging convention in SPEC_FULL.md §2) and
// instead returns one of these, wrapping enough context to act on the
// failure kind programmatically.
type Error struct {
	Kind   Kind
	Where  string // component/callback that raised it, e.g. "declare:INPUT"
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("glsl: %s: %s", e.Kind, e.Where)
	}
	return fmt.Sprintf("glsl: %s: %s: %s", e.Kind, e.Where, e.Detail)
}

func errCapacity(where, detail string) *Error {
	return &Error{Kind: KindCapacityExceeded, Where: where, Detail: detail}
}

func errUnsupported(where, detail string) *Error {
	return &Error{Kind: KindUnsupported, Where: where, Detail: detail}
}

func errOOM(where string) *Error {
	return &Error{Kind: KindOutOfMemory, Where: where}
}
