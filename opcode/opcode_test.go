package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruin0x11/adieu-go/format"
)

// TestValRoundTrip verifies every width class from spec's Val table
// survives an encode/decode cycle, both constant and variable kinds.
func TestValRoundTrip(t *testing.T) {
	values := []uint32{0x00, 0x0F, 0x10, 0xFFF, 0x1000, 0xFFFFF, 0x100000, 0xFFFFFFF, 0x10000000, 0xFFFFFFFF}

	for _, val := range values {
		for _, kind := range []format.ValKind{format.Constant, format.Variable} {
			v := format.Val{Value: val, Kind: kind}

			w := &writer{}
			w.val(v)
			data, err := w.bytes()
			require.NoError(t, err)
			require.Len(t, data, v.Width())

			c := newCursor(data)
			got, err := c.val()
			require.NoError(t, err)
			require.Equal(t, v, got)
			require.Equal(t, len(data), c.pos)
		}
	}
}

// TestOpcodeRoundTripNoPayload covers the no-payload tag family
// (WaitMouse, Newline, the 0x22..0x29 Unknown range, and the reference's
// literal duplicate-key 0x65 branch).
func TestOpcodeRoundTripNoPayload(t *testing.T) {
	for _, tag := range []byte{opWaitMouse, opNewline, opWaitMouseText, opUnknown0x65, opUnknownNLo, opUnknownNHi} {
		o := Opcode{Tag: tag}
		assertOpcodeRoundTrip(t, o, DefaultVersion)
	}
}

// TestOpcodeRoundTripBinVal covers the shared (Val, Val) family: SetFlag,
// CopyFlag, SetValLiteral, an arithmetic tag, a self-arithmetic tag, and
// SetValRandom.
func TestOpcodeRoundTripBinVal(t *testing.T) {
	for _, tag := range []byte{opSetFlag, opCopyFlag, opSetValLiteral, opSetValRandom, opArithLo, opArithHi, opArithSelfLo, opArithSelfHi} {
		o := Opcode{
			Tag: tag,
			BinVal: BinValCmd{
				A: format.NewConst(3),
				B: format.NewVar(0x200),
			},
		}
		assertOpcodeRoundTrip(t, o, DefaultVersion)
	}
}

// TestOpcodeRoundTripUnaryVal covers SetFlagRandom and the 0xEA Unknown(V) opcode.
func TestOpcodeRoundTripUnaryVal(t *testing.T) {
	for _, tag := range []byte{opSetFlagRandom, opUnknownEA} {
		o := Opcode{Tag: tag, UnaryVal: UnaryValCmd{A: format.NewConst(7)}}
		assertOpcodeRoundTrip(t, o, DefaultVersion)
	}
}

// TestOpcodeRoundTripCallJump covers Call and Jump, each a bare 4-byte offset.
func TestOpcodeRoundTripCallJump(t *testing.T) {
	for _, tag := range []byte{opCall, opJump} {
		o := Opcode{Tag: tag, Pos: format.Off(0x4321)}
		assertOpcodeRoundTrip(t, o, DefaultVersion)
	}
}

// TestOpcodeRoundTripCondition covers Condition's nested token list plus
// its trailing branch target.
func TestOpcodeRoundTripCondition(t *testing.T) {
	o := Opcode{
		Tag: opCondition,
		Condition: []Condition{
			{Tag: condIncDepth},
			{Tag: 0x36, A: format.NewConst(1), B: format.NewConst(2)},
			{Tag: condDecDepth},
		},
		ConditionPos: format.Off(0x10),
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripTableCallJump covers TableCall/TableJump's
// count-prefixed Pos list.
func TestOpcodeRoundTripTableCallJump(t *testing.T) {
	for _, tag := range []byte{opTableCall, opTableJump} {
		o := Opcode{
			Tag: tag,
			Table: TableCmd{
				Val:     format.NewConst(2),
				Targets: []format.Pos{format.Off(0x100), format.Off(0x200)},
			},
		}
		assertOpcodeRoundTrip(t, o, DefaultVersion)
	}
}

// TestOpcodeRoundTripJumpToScene covers both JumpToScene sub-variants.
func TestOpcodeRoundTripJumpToScene(t *testing.T) {
	for _, tag := range []byte{jsJump, jsCall} {
		o := Opcode{
			Tag:         opJumpToScene,
			JumpToScene: JumpToSceneCmd{Tag: tag, Val: format.NewConst(5)},
		}
		assertOpcodeRoundTrip(t, o, DefaultVersion)
	}
}

// TestOpcodeRoundTripChoiceLabeled covers Choice's labeled-flag branch,
// whose ChoiceText block carries a pad byte and two formatted-text entries.
func TestOpcodeRoundTripChoiceLabeled(t *testing.T) {
	o := Opcode{
		Tag: opChoice,
		Choice: ChoiceCmd{
			Tag:   choiceChoice,
			Index: format.NewConst(1),
			Flag:  choiceFlagLabeled,
			Labels: ChoiceText{
				HasPad: true,
				Pad:    0x00,
				Texts: []SceneFormattedText{
					{Entries: []SceneFormattedTextEntry{{Tag: ftTextHankaku, Text: "a"}}},
					{Entries: []SceneFormattedTextEntry{{Tag: ftTextZenkaku, Text: "b"}}},
				},
			},
		},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripChoiceUnlabeled covers Choice's non-labeled branch,
// where no ChoiceText block follows the flag byte.
func TestOpcodeRoundTripChoiceUnlabeled(t *testing.T) {
	o := Opcode{
		Tag: opChoice,
		Choice: ChoiceCmd{
			Tag:   choiceChoice2,
			Index: format.NewConst(9),
			Flag:  0x00,
		},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripDrawValText covers the 0x10 formatted-text stream,
// including a nested condition entry and a zero-padded integer command.
func TestOpcodeRoundTripDrawValText(t *testing.T) {
	o := Opcode{
		Tag: opDrawValText,
		Text: SceneFormattedText{
			Entries: []SceneFormattedTextEntry{
				{Tag: ftCommand, Command: FormattedTextCmd{Tag: ftcIntegerZeroPadded, Integer: format.NewConst(3), ZeroPadWidth: format.NewConst(4), hasZeroPadding: true}},
				{Tag: ftCondition, Condition: []Condition{{Tag: condIncDepth}, {Tag: condDecDepth}}},
				{Tag: ftTextHankaku, Text: "hello"},
			},
		},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripTextIndexVersionGate verifies the leading 4-byte
// index on TextHankaku/TextZenkaku is present at/after textIndexThreshold
// and absent below it.
func TestOpcodeRoundTripTextIndexVersionGate(t *testing.T) {
	gated := Opcode{
		Tag:    opTextHankaku,
		TextIdx: TextIndexCmd{HasIndex: true, Index: 2, Text: SceneText{Literal: "x"}},
	}
	assertOpcodeRoundTrip(t, gated, textIndexThreshold)

	ungated := Opcode{
		Tag:    opTextZenkaku,
		TextIdx: TextIndexCmd{Text: SceneText{Literal: "y"}},
	}
	assertOpcodeRoundTrip(t, ungated, textIndexThreshold-1)
}

// TestOpcodeUnknownTag verifies an unrecognized tag fails rather than
// silently decoding as some other instruction.
func TestOpcodeUnknownTag(t *testing.T) {
	c := newCursor([]byte{0x99})
	_, err := c.opcode(DefaultVersion)
	require.Error(t, err)
}

// assertOpcodeRoundTrip writes o, re-parses the bytes at ver, and checks
// both the decoded value and ByteSize agree with the encoded length.
func assertOpcodeRoundTrip(t *testing.T, o Opcode, ver Version) {
	t.Helper()

	data, err := Write(o)
	require.NoError(t, err)

	sz, err := o.ByteSize()
	require.NoError(t, err)
	require.Len(t, data, sz)

	got, n, err := Parse(data, ver)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, o, got)
}
