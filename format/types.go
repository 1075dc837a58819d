// Package format defines the primitive value types shared by the opcode,
// scene and label packages: the width-prefixed Val integer and the two-state
// Pos control-flow target.
package format

import "fmt"

// ValKind distinguishes a literal constant from a variable-slot reference.
type ValKind uint8

const (
	Constant ValKind = iota
	Variable
)

func (k ValKind) String() string {
	if k == Variable {
		return "Variable"
	}

	return "Constant"
}

// Val is a 28-bit unsigned integer tagged as either a literal constant or a
// reference into the variable table. Its wire width (1-4 bytes) is derived
// from Value alone; see Width.
type Val struct {
	Value uint32
	Kind  ValKind
}

// NewConst creates a constant Val.
func NewConst(value uint32) Val {
	return Val{Value: value, Kind: Constant}
}

// NewVar creates a variable-reference Val.
func NewVar(value uint32) Val {
	return Val{Value: value, Kind: Variable}
}

// Width returns the number of bytes Value occupies on the wire: 1 through 4
// for any 28-bit value, and 5 for a Value above 0xFFFFFFF.
func (v Val) Width() int {
	switch {
	case v.Value <= 0x0F:
		return 1
	case v.Value <= 0xFFF:
		return 2
	case v.Value <= 0xFFFFF:
		return 3
	case v.Value <= 0xFFFFFFF:
		return 4
	default:
		return 5
	}
}

func (v Val) String() string {
	return fmt.Sprintf("%s(0x%x)", v.Kind, v.Value)
}

// PosKind distinguishes the two mutually exclusive states of a Pos.
type PosKind uint8

const (
	ByteOffset PosKind = iota
	SymbolicLabel
)

// Pos is a control-flow target: either a raw byte offset (the "compiled"
// state, ready for binary emission) or a symbolic label name (the "resolved"
// state, produced by the label pass for textual output). A Scene's Pos
// values are always uniformly one or the other; see package label.
type Pos struct {
	Kind   PosKind
	Offset uint32
	Label  string
}

// Off constructs a compiled Pos from a raw byte offset.
func Off(offset uint32) Pos {
	return Pos{Kind: ByteOffset, Offset: offset}
}

// Named constructs a resolved Pos from a label name.
func Named(label string) Pos {
	return Pos{Kind: SymbolicLabel, Label: label}
}

// IsResolved reports whether p carries a symbolic label rather than a raw offset.
func (p Pos) IsResolved() bool {
	return p.Kind == SymbolicLabel
}

func (p Pos) String() string {
	if p.IsResolved() {
		return p.Label
	}

	return fmt.Sprintf("0x%x", p.Offset)
}
