package opcode

import "github.com/ruin0x11/adieu-go/format"

// SceneText is either a literal Shift_JIS string or, when the sentinel
// byte 0x40 introduces it, a Pointer into the variable table (spec §4.3).
type SceneText struct {
	IsPointer bool
	Pointer   format.Val
	Literal   string
}

func NewSceneTextLiteral(s string) SceneText { return SceneText{Literal: s} }
func NewSceneTextPointer(v format.Val) SceneText {
	return SceneText{IsPointer: true, Pointer: v}
}

func (t SceneText) ByteSize() (int, error) { return sceneTextSize(t) }

// FormattedTextCmd is the sub-command enum nested under the 0x10 entry
// of a SceneFormattedText stream.
type FormattedTextCmd struct {
	Tag            byte
	Integer        format.Val // 0x01, 0x03 (TextPointer), 0x11 (Unknown1)
	ZeroPadWidth   format.Val // 0x02 second operand
	hasZeroPadding bool
}

const (
	ftcInteger           byte = 0x01
	ftcIntegerZeroPadded byte = 0x02
	ftcTextPointer       byte = 0x03
	ftcUnknown1          byte = 0x11
	ftcUnknown2          byte = 0x13
)

func (c *cursor) formattedTextCmd() (FormattedTextCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return FormattedTextCmd{}, err
	}

	switch tag {
	case ftcInteger, ftcTextPointer, ftcUnknown1:
		v, err := c.val()
		if err != nil {
			return FormattedTextCmd{}, err
		}

		return FormattedTextCmd{Tag: tag, Integer: v}, nil
	case ftcIntegerZeroPadded:
		vs, err := c.vals(2)
		if err != nil {
			return FormattedTextCmd{}, err
		}

		return FormattedTextCmd{Tag: tag, Integer: vs[0], ZeroPadWidth: vs[1], hasZeroPadding: true}, nil
	case ftcUnknown2:
		return FormattedTextCmd{Tag: tag}, nil
	default:
		return FormattedTextCmd{}, unknownTag("formatted_text_cmd", tag)
	}
}

func (w *writer) formattedTextCmd(c FormattedTextCmd) *writer {
	w.u8(c.Tag)
	switch c.Tag {
	case ftcInteger, ftcTextPointer, ftcUnknown1:
		w.val(c.Integer)
	case ftcIntegerZeroPadded:
		w.vals(c.Integer, c.ZeroPadWidth)
	case ftcUnknown2:
	}

	return w
}

func formattedTextCmdSize(c FormattedTextCmd) int {
	switch c.Tag {
	case ftcInteger, ftcTextPointer, ftcUnknown1:
		return 1 + c.Integer.Width()
	case ftcIntegerZeroPadded:
		return 1 + valsSize(c.Integer, c.ZeroPadWidth)
	default:
		return 1
	}
}

// SceneFormattedTextEntry is one tag-dispatched item of a formatted text
// stream (spec §4.3).
type SceneFormattedTextEntry struct {
	Tag       byte
	Command   FormattedTextCmd
	Condition []Condition
	Pointer   format.Val
	Text      string
}

const (
	ftCommand      byte = 0x10
	ftUnknown      byte = 0x12
	ftCondition    byte = 0x28
	ftTextPointer  byte = 0xFD
	ftTextHankaku  byte = 0xFE
	ftTextZenkaku  byte = 0xFF
	formatTermByte byte = 0x00
)

// SceneFormattedText is a sequence of entries terminated by a literal
// 0x00 byte, which is part of the wire format and must be written back.
type SceneFormattedText struct {
	Entries []SceneFormattedTextEntry
}

func (c *cursor) sceneFormattedText() (SceneFormattedText, error) {
	var entries []SceneFormattedTextEntry

	for {
		tag, err := c.u8()
		if err != nil {
			return SceneFormattedText{}, err
		}
		if tag == formatTermByte {
			return SceneFormattedText{Entries: entries}, nil
		}

		entry := SceneFormattedTextEntry{Tag: tag}
		switch tag {
		case ftCommand:
			cmd, err := c.formattedTextCmd()
			if err != nil {
				return SceneFormattedText{}, err
			}
			entry.Command = cmd
		case ftUnknown:
		case ftCondition:
			conds, err := c.conditions()
			if err != nil {
				return SceneFormattedText{}, err
			}
			entry.Condition = conds
		case ftTextPointer:
			v, err := c.val()
			if err != nil {
				return SceneFormattedText{}, err
			}
			entry.Pointer = v
		case ftTextHankaku, ftTextZenkaku:
			s, err := c.cstring()
			if err != nil {
				return SceneFormattedText{}, err
			}
			entry.Text = s
		default:
			return SceneFormattedText{}, unknownTag("scene_formatted_text_entry", tag)
		}

		entries = append(entries, entry)
	}
}

func (w *writer) sceneFormattedText(t SceneFormattedText) *writer {
	for _, e := range t.Entries {
		w.u8(e.Tag)
		switch e.Tag {
		case ftCommand:
			w.formattedTextCmd(e.Command)
		case ftUnknown:
		case ftCondition:
			w.conditions(e.Condition)
		case ftTextPointer:
			w.val(e.Pointer)
		case ftTextHankaku, ftTextZenkaku:
			w.cstring(e.Text)
		}
	}

	return w.u8(formatTermByte)
}

func sceneFormattedTextSize(t SceneFormattedText) (int, error) {
	n := 1 // terminator
	for _, e := range t.Entries {
		n++
		switch e.Tag {
		case ftCommand:
			n += formattedTextCmdSize(e.Command)
		case ftUnknown:
		case ftCondition:
			n += conditionsSize(e.Condition)
		case ftTextPointer:
			n += e.Pointer.Width()
		case ftTextHankaku, ftTextZenkaku:
			sz, err := cstringSize(e.Text)
			if err != nil {
				return 0, err
			}
			n += sz
		}
	}

	return n, nil
}
