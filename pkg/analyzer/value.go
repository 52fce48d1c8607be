package analyzer

import "github.com/jvmkit/jvmkit/pkg/classfile"

// ValueKind is the symbolic type category the analyzer tracks for a Value.
// It mirrors the verification types JVMS uses for stack map frames, not the
// full descriptor detail: two reference-typed values are indistinguishable
// here even if their static types differ.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindLong
	KindFloat
	KindDouble
	KindReference
	KindReturnAddress
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindReference:
		return "reference"
	case KindReturnAddress:
		return "returnAddress"
	default:
		return "unknown"
	}
}

// category reports the stack/local slot width of k: 2 for long/double, 1
// otherwise.
func (k ValueKind) category() int {
	if k == KindLong || k == KindDouble {
		return 2
	}
	return 1
}

// Value is a symbolic operand: an abstract handle standing in for whatever
// concrete runtime value would occupy a stack slot or local variable at a
// given program point. IR instructions reference Values rather than raw
// numbers, so def-use relationships survive independent of control flow.
type Value struct {
	ID   int
	Kind ValueKind

	// Phi is true when this Value was synthesized at a control-flow merge
	// because incoming edges disagreed on the value occupying this slot.
	Phi bool
	// JoinedPCs records the predecessor program points a Phi value merges,
	// for diagnostics; empty for non-Phi values.
	JoinedPCs []uint16

	// ReturnTarget is meaningful only when Kind == KindReturnAddress: the pc
	// immediately following the jsr/jsr_w that produced this value, i.e.
	// where a matching ret resumes execution.
	ReturnTarget uint16
}

// idGen hands out monotonically increasing Value identifiers for one
// Analyze call.
type idGen struct{ next int }

func (g *idGen) fresh(kind ValueKind) Value {
	g.next++
	return Value{ID: g.next, Kind: kind}
}

func (g *idGen) freshReturnAddress(target uint16) Value {
	g.next++
	return Value{ID: g.next, Kind: KindReturnAddress, ReturnTarget: target}
}

func (g *idGen) freshPhi(kind ValueKind, joined []uint16) Value {
	g.next++
	return Value{ID: g.next, Kind: kind, Phi: true, JoinedPCs: append([]uint16(nil), joined...)}
}

// kindOfFieldType maps a descriptor's FieldType to the coarser ValueKind the
// analyzer tracks.
func kindOfFieldType(ft classfile.FieldType) ValueKind {
	if ft.Primitive == nil {
		return KindReference
	}
	switch *ft.Primitive {
	case classfile.PrimLong:
		return KindLong
	case classfile.PrimFloat:
		return KindFloat
	case classfile.PrimDouble:
		return KindDouble
	default:
		return KindInt
	}
}
