package opcode

import "github.com/ruin0x11/adieu-go/format"

// ChoiceText is the conditional label block attached to a choice entry
// whose flag byte equals choiceFlagLabeled: a pad byte (always present
// on parse, written back only when HasPad is set) followed by a
// sequence of SceneFormattedText values, terminated by the literal
// byte 0x23 (spec §4.5.3).
type ChoiceText struct {
	HasPad bool
	Pad    byte
	Texts  []SceneFormattedText
}

const choiceTextTerm byte = 0x23

func (c *cursor) choiceTextBlock() (ChoiceText, error) {
	pad, err := c.u8()
	if err != nil {
		return ChoiceText{}, err
	}
	ct := ChoiceText{HasPad: true, Pad: pad}

	for {
		b, ok := c.peek()
		if !ok {
			return ChoiceText{}, unknownTag("choice_text", 0)
		}
		if b == choiceTextTerm {
			c.pos++
			return ct, nil
		}

		t, err := c.sceneFormattedText()
		if err != nil {
			return ChoiceText{}, err
		}
		ct.Texts = append(ct.Texts, t)
	}
}

func (w *writer) choiceTextBlock(ct ChoiceText) *writer {
	if ct.HasPad {
		w.u8(ct.Pad)
	}
	for _, t := range ct.Texts {
		w.sceneFormattedText(t)
	}

	return w.u8(choiceTextTerm)
}

func choiceTextBlockSize(ct ChoiceText) (int, error) {
	n := 1
	if ct.HasPad {
		n++
	}
	for _, t := range ct.Texts {
		sz, err := sceneFormattedTextSize(t)
		if err != nil {
			return 0, err
		}
		n += sz
	}

	return n, nil
}

// ChoiceCmd is Opcode tag 0x58's sub-command enum: Choice and Choice2
// both carry an index Val and a flag byte, gaining a trailing ChoiceText
// block only when the flag equals choiceFlagLabeled (spec §4.5.3).
type ChoiceCmd struct {
	Tag    byte
	Index  format.Val
	Flag   byte
	Labels ChoiceText
}

const (
	choiceChoice       byte = 0x01
	choiceChoice2      byte = 0x02
	choiceFlagLabeled  byte = 0x22
)

func (c *cursor) choiceCmd() (ChoiceCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return ChoiceCmd{}, err
	}

	switch tag {
	case choiceChoice, choiceChoice2:
	default:
		return ChoiceCmd{}, unknownTag("choice_cmd", tag)
	}

	idx, err := c.val()
	if err != nil {
		return ChoiceCmd{}, err
	}
	flag, err := c.u8()
	if err != nil {
		return ChoiceCmd{}, err
	}
	ch := ChoiceCmd{Tag: tag, Index: idx, Flag: flag}

	if flag == choiceFlagLabeled {
		labels, err := c.choiceTextBlock()
		if err != nil {
			return ChoiceCmd{}, err
		}
		ch.Labels = labels
	}

	return ch, nil
}

func (w *writer) choiceCmd(ch ChoiceCmd) *writer {
	w.u8(ch.Tag).val(ch.Index).u8(ch.Flag)
	if ch.Flag == choiceFlagLabeled {
		w.choiceTextBlock(ch.Labels)
	}

	return w
}

func choiceCmdSize(ch ChoiceCmd) (int, error) {
	n := 2 + ch.Index.Width()
	if ch.Flag == choiceFlagLabeled {
		sz, err := choiceTextBlockSize(ch.Labels)
		if err != nil {
			return 0, err
		}
		n += sz
	}

	return n, nil
}
