package opcode

import "github.com/ruin0x11/adieu-go/format"

// StringCmd is Opcode tag 0x59's sub-command enum: variable-table
// string operations (copy, concat, compare).
type StringCmd struct {
	Tag    byte
	Dest   format.Val
	Src    SceneText
	Fields ValRecord
}

const (
	strSet     byte = 0x01
	strConcat  byte = 0x02
	strClear   byte = 0x03
	strCompare byte = 0x10
)

func (c *cursor) stringCmd() (StringCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return StringCmd{}, err
	}
	s := StringCmd{Tag: tag}

	switch tag {
	case strSet, strConcat:
		if s.Dest, err = c.val(); err != nil {
			return StringCmd{}, err
		}
		if s.Src, err = c.sceneText(); err != nil {
			return StringCmd{}, err
		}
	case strClear:
		if s.Dest, err = c.val(); err != nil {
			return StringCmd{}, err
		}
	case strCompare:
		if s.Dest, err = c.val(); err != nil {
			return StringCmd{}, err
		}
		if s.Src, err = c.sceneText(); err != nil {
			return StringCmd{}, err
		}
		if s.Fields, err = c.valRecord(1); err != nil { // result flag target
			return StringCmd{}, err
		}
	default:
		return StringCmd{}, unknownTag("string_cmd", tag)
	}

	return s, nil
}

func (w *writer) stringCmd(s StringCmd) *writer {
	w.u8(s.Tag).val(s.Dest)
	switch s.Tag {
	case strSet, strConcat:
		w.sceneText(s.Src)
	case strClear:
	case strCompare:
		w.sceneText(s.Src).valRecord(s.Fields)
	}

	return w
}

func stringCmdSize(s StringCmd) (int, error) {
	n := 1 + s.Dest.Width()
	switch s.Tag {
	case strSet, strConcat:
		sz, err := sceneTextSize(s.Src)
		if err != nil {
			return 0, err
		}
		n += sz
	case strClear:
	case strCompare:
		sz, err := sceneTextSize(s.Src)
		if err != nil {
			return 0, err
		}
		n += sz + valRecordSize(s.Fields)
	}

	return n, nil
}

// SetMultiCmd is Opcode tag 0x5C's payload: assigns a run of
// consecutive variable-table slots from a literal Val list.
type SetMultiCmd struct {
	Start  format.Val
	Values []format.Val
}

func (c *cursor) setMultiCmd() (SetMultiCmd, error) {
	start, err := c.val()
	if err != nil {
		return SetMultiCmd{}, err
	}
	count, err := c.u8()
	if err != nil {
		return SetMultiCmd{}, err
	}
	values, err := c.vals(int(count))
	if err != nil {
		return SetMultiCmd{}, err
	}

	return SetMultiCmd{Start: start, Values: values}, nil
}

func (w *writer) setMultiCmd(s SetMultiCmd) *writer {
	return w.val(s.Start).u8(byte(len(s.Values))).vals(s.Values...)
}

func setMultiCmdSize(s SetMultiCmd) int { return s.Start.Width() + 1 + valsSize(s.Values...) }
