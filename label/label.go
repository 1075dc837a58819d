// Package label implements the two-pass conversion between a Scene's
// raw byte-offset control-flow targets and symbolic label names (spec
// §4.6). The reference disassembler (disasm.rs) never implemented this
// pass in full — it only names the LabelKind variants — so the traversal
// here is built directly from the specification text.
package label

import (
	"fmt"
	"sort"

	"github.com/ruin0x11/adieu-go/errs"
	"github.com/ruin0x11/adieu-go/format"
	"github.com/ruin0x11/adieu-go/opcode"
	"github.com/ruin0x11/adieu-go/scene"
)

// Kind identifies which family of control-flow operand produced a
// target offset, used only to name the label deterministically when two
// operand kinds collide on the same offset.
type Kind int

const (
	KindCondition Kind = iota
	KindCall
	KindJump
	KindTableCall
	KindTableJump
)

func (k Kind) String() string {
	switch k {
	case KindCondition:
		return "Condition"
	case KindCall:
		return "Call"
	case KindJump:
		return "Jump"
	case KindTableCall:
		return "TableCall"
	case KindTableJump:
		return "TableJump"
	default:
		return "Unknown"
	}
}

// lowerName is the Kind's lowercase spelling used in generated label
// names, e.g. "call_0x1a0".
func (k Kind) lowerName() string {
	switch k {
	case KindCondition:
		return "condition"
	case KindCall:
		return "call"
	case KindJump:
		return "jump"
	case KindTableCall:
		return "tablecall"
	case KindTableJump:
		return "tablejump"
	default:
		return "unknown"
	}
}

// Label is one named block of consecutive opcodes in a resolved scene.
type Label struct {
	Name    string
	Opcodes []opcode.Opcode
}

// Resolved is a scene whose control-flow Pos operands have been rewritten
// from byte offsets to symbolic label names, and whose opcode stream has
// been partitioned into labeled blocks.
type Resolved struct {
	Header scene.Header
	Labels []Label
}

type target struct {
	kind Kind
	off  uint32
}

func posTargets(o opcode.Opcode) []target {
	var ts []target
	switch {
	case o.Tag == 0x15: // Condition
		ts = append(ts, target{KindCondition, o.ConditionPos.Offset})
	case o.Tag == 0x1B: // Call
		ts = append(ts, target{KindCall, o.Pos.Offset})
	case o.Tag == 0x1C: // Jump
		ts = append(ts, target{KindJump, o.Pos.Offset})
	case o.Tag == 0x1D: // TableCall
		for _, p := range o.Table.Targets {
			ts = append(ts, target{KindTableCall, p.Offset})
		}
	case o.Tag == 0x1E: // TableJump
		for _, p := range o.Table.Targets {
			ts = append(ts, target{KindTableJump, p.Offset})
		}
	}

	return ts
}

// rewritePos returns o with every ByteOffset Pos operand it carries
// replaced by looking up its offset in names.
func rewritePos(o opcode.Opcode, names map[uint32]string) opcode.Opcode {
	switch {
	case o.Tag == 0x15:
		o.ConditionPos = format.Named(names[o.ConditionPos.Offset])
	case o.Tag == 0x1B, o.Tag == 0x1C:
		o.Pos = format.Named(names[o.Pos.Offset])
	case o.Tag == 0x1D, o.Tag == 0x1E:
		targets := make([]format.Pos, len(o.Table.Targets))
		for i, p := range o.Table.Targets {
			targets[i] = format.Named(names[p.Offset])
		}
		o.Table.Targets = targets
	}

	return o
}

// rewriteOffset is rewritePos's inverse: every SymbolicLabel Pos operand
// is replaced by the byte offset recorded for its label name.
func rewriteOffset(o opcode.Opcode, offsets map[string]uint32) (opcode.Opcode, error) {
	resolve := func(p format.Pos) (format.Pos, error) {
		if !p.IsResolved() {
			return format.Pos{}, fmt.Errorf("%w: offset 0x%x", errs.ErrLabelsNotResolved, p.Offset)
		}
		off, ok := offsets[p.Label]
		if !ok {
			return format.Pos{}, fmt.Errorf("%w: %s", errs.ErrUnknownLabel, p.Label)
		}

		return format.Off(off), nil
	}

	var err error
	switch {
	case o.Tag == 0x15:
		if o.ConditionPos, err = resolve(o.ConditionPos); err != nil {
			return opcode.Opcode{}, err
		}
	case o.Tag == 0x1B, o.Tag == 0x1C:
		if o.Pos, err = resolve(o.Pos); err != nil {
			return opcode.Opcode{}, err
		}
	case o.Tag == 0x1D, o.Tag == 0x1E:
		targets := make([]format.Pos, len(o.Table.Targets))
		for i, p := range o.Table.Targets {
			if targets[i], err = resolve(p); err != nil {
				return opcode.Opcode{}, err
			}
		}
		o.Table.Targets = targets
	}

	return o, nil
}

// Disassemble converts a compiled scene (ByteOffset Pos operands) into
// its Resolved, symbolic-label form (spec §4.6's "offsets → labels"
// direction).
func Disassemble(s scene.Scene) (Resolved, error) {
	addrs := make([]uint32, len(s.Opcodes)+1)
	pos := uint32(0)
	for i, o := range s.Opcodes {
		addrs[i] = pos
		sz, err := o.ByteSize()
		if err != nil {
			return Resolved{}, err
		}
		pos += uint32(sz)
	}
	addrs[len(s.Opcodes)] = pos

	if err := checkUnresolved(s.Opcodes); err != nil {
		return Resolved{}, err
	}

	type namedTarget struct {
		kind Kind
		off  uint32
	}
	var all []namedTarget
	for _, o := range s.Opcodes {
		for _, t := range posTargets(o) {
			all = append(all, namedTarget{t.kind, t.off})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].kind != all[j].kind {
			return all[i].kind < all[j].kind
		}

		return all[i].off < all[j].off
	})

	validAddr := make(map[uint32]bool, len(addrs))
	for _, a := range addrs {
		validAddr[a] = true
	}

	names := map[uint32]string{0: "start"}
	var offsets []uint32
	offsets = append(offsets, 0)
	for _, t := range all {
		if !validAddr[t.off] {
			return Resolved{}, fmt.Errorf("%w: 0x%x", errs.ErrMisalignedOpcode, t.off)
		}
		if _, ok := names[t.off]; ok {
			continue
		}
		names[t.off] = fmt.Sprintf("%s_0x%x", t.kind.lowerName(), t.off)
		offsets = append(offsets, t.off)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	blocks, err := partition(s.Opcodes, addrs, offsets, names)
	if err != nil {
		return Resolved{}, err
	}

	for bi := range blocks {
		for oi := range blocks[bi].Opcodes {
			blocks[bi].Opcodes[oi] = rewritePos(blocks[bi].Opcodes[oi], names)
		}
	}

	return Resolved{Header: s.Header, Labels: blocks}, nil
}

func checkUnresolved(ops []opcode.Opcode) error {
	for _, o := range ops {
		for _, t := range posTargetsResolved(o) {
			if t {
				return errs.ErrLabelsAlreadyResolved
			}
		}
	}

	return nil
}

func posTargetsResolved(o opcode.Opcode) []bool {
	var rs []bool
	switch {
	case o.Tag == 0x15:
		rs = append(rs, o.ConditionPos.IsResolved())
	case o.Tag == 0x1B, o.Tag == 0x1C:
		rs = append(rs, o.Pos.IsResolved())
	case o.Tag == 0x1D, o.Tag == 0x1E:
		for _, p := range o.Table.Targets {
			rs = append(rs, p.IsResolved())
		}
	}

	return rs
}

// partition walks opcodes once, assigning each to the block of the
// greatest label offset at or below its address (spec §4.6 step 6).
func partition(ops []opcode.Opcode, addrs []uint32, offsets []uint32, names map[uint32]string) ([]Label, error) {
	blocks := make([]Label, len(offsets))
	for i, off := range offsets {
		blocks[i] = Label{Name: names[off]}
	}

	bi := 0
	for i, o := range ops {
		pos := addrs[i]
		for bi+1 < len(offsets) && offsets[bi+1] <= pos {
			bi++
		}
		if pos < offsets[bi] {
			return nil, fmt.Errorf("%w: 0x%x", errs.ErrMisalignedOpcode, pos)
		}
		blocks[bi].Opcodes = append(blocks[bi].Opcodes, o)
	}

	return blocks, nil
}

// Assemble converts a Resolved scene back into its compiled, ByteOffset
// form (spec §4.6's "labels → offsets" direction).
func Assemble(r Resolved) (scene.Scene, error) {
	offsets := make(map[string]uint32)
	pos := uint32(0)
	for _, b := range r.Labels {
		offsets[b.Name] = pos
		for _, o := range b.Opcodes {
			sz, err := o.ByteSize()
			if err != nil {
				return scene.Scene{}, err
			}
			pos += uint32(sz)
		}
	}

	var ops []opcode.Opcode
	for _, b := range r.Labels {
		for _, o := range b.Opcodes {
			rewritten, err := rewriteOffset(o, offsets)
			if err != nil {
				return scene.Scene{}, err
			}
			ops = append(ops, rewritten)
		}
	}

	return scene.Scene{Header: r.Header, Opcodes: ops}, nil
}
