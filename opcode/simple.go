package opcode

import "github.com/ruin0x11/adieu-go/format"

// BinValCmd is the shared (Val, Val) shape used by SetFlag, CopyFlag,
// SetValLiteral, the 0x3C..0x43 arithmetic opcodes, the 0x49..0x51
// self-arithmetic opcodes, and SetValRandom (spec §6).
type BinValCmd struct {
	A, B format.Val
}

func (c *cursor) binValCmd() (BinValCmd, error) {
	vs, err := c.vals(2)
	if err != nil {
		return BinValCmd{}, err
	}

	return BinValCmd{A: vs[0], B: vs[1]}, nil
}

func (w *writer) binValCmd(b BinValCmd) *writer { return w.vals(b.A, b.B) }

func binValCmdSize(b BinValCmd) int { return valsSize(b.A, b.B) }

// UnaryValCmd is the shared single-Val shape used by SetFlagRandom and
// the 0xEA Unknown(V) opcode.
type UnaryValCmd struct {
	A format.Val
}

func (c *cursor) unaryValCmd() (UnaryValCmd, error) {
	v, err := c.val()
	if err != nil {
		return UnaryValCmd{}, err
	}

	return UnaryValCmd{A: v}, nil
}

func (w *writer) unaryValCmd(u UnaryValCmd) *writer { return w.val(u.A) }

func unaryValCmdSize(u UnaryValCmd) int { return u.A.Width() }

// TableCmd is TableCall/TableJump's payload: a count byte, a Val, then
// exactly that many Pos entries (spec §4.5.1).
type TableCmd struct {
	Val     format.Val
	Targets []format.Pos
}

func (c *cursor) tableCmd() (TableCmd, error) {
	count, err := c.u8()
	if err != nil {
		return TableCmd{}, err
	}
	v, err := c.val()
	if err != nil {
		return TableCmd{}, err
	}
	targets := make([]format.Pos, count)
	for i := range targets {
		if targets[i], err = c.pos_(); err != nil {
			return TableCmd{}, err
		}
	}

	return TableCmd{Val: v, Targets: targets}, nil
}

func (w *writer) tableCmd(t TableCmd) *writer {
	w.u8(byte(len(t.Targets))).val(t.Val)
	for _, p := range t.Targets {
		w.pos_(p)
	}

	return w
}

func tableCmdSize(t TableCmd) int { return 1 + t.Val.Width() + 4*len(t.Targets) }

// TextIndexCmd is the shared shape of TextHankaku/TextZenkaku at the top
// opcode level: a version-gated leading 4-byte index (spec §4.5.2's
// third gated field) followed by a SceneText.
type TextIndexCmd struct {
	HasIndex bool
	Index    uint32
	Text     SceneText
}

func (c *cursor) textIndexCmd(ver Version) (TextIndexCmd, error) {
	var t TextIndexCmd
	if ver.atLeast(textIndexThreshold) {
		v, err := c.u32()
		if err != nil {
			return TextIndexCmd{}, err
		}
		t.HasIndex = true
		t.Index = v
	}

	text, err := c.sceneText()
	if err != nil {
		return TextIndexCmd{}, err
	}
	t.Text = text

	return t, nil
}

func (w *writer) textIndexCmd(t TextIndexCmd) *writer {
	if t.HasIndex {
		w.u32(t.Index)
	}

	return w.sceneText(t.Text)
}

func textIndexCmdSize(t TextIndexCmd) (int, error) {
	sz, err := sceneTextSize(t.Text)
	if err != nil {
		return 0, err
	}
	n := sz
	if t.HasIndex {
		n += 4
	}

	return n, nil
}
