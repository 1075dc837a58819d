package opcode

import "github.com/ruin0x11/adieu-go/format"

// SystemCmd is Opcode tag 0x60's sub-command enum: miscellaneous
// engine-level controls (save/load, title return, quit confirmation).
type SystemCmd struct {
	Tag    byte
	Fields ValRecord
}

const (
	sysSave      byte = 0x01
	sysLoad      byte = 0x02
	sysTitle     byte = 0x03
	sysQuit      byte = 0x04
	sysMenuLock  byte = 0x10
	sysMenuUnlock byte = 0x11
)

func (c *cursor) systemCmd() (SystemCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return SystemCmd{}, err
	}

	var n int
	switch tag {
	case sysSave, sysLoad:
		n = 1
	case sysTitle, sysQuit, sysMenuLock, sysMenuUnlock:
		n = 0
	default:
		return SystemCmd{}, unknownTag("system_cmd", tag)
	}

	fields, err := c.valRecord(n)
	if err != nil {
		return SystemCmd{}, err
	}

	return SystemCmd{Tag: tag, Fields: fields}, nil
}

func (w *writer) systemCmd(s SystemCmd) *writer { return w.u8(s.Tag).valRecord(s.Fields) }

func systemCmdSize(s SystemCmd) int { return 1 + valRecordSize(s.Fields) }

// NameInputItem is one candidate in a name-entry list.
type NameInputItem struct {
	Text SceneText
}

// NameCmd is Opcode tag 0x61's payload: prompts for or sets a
// player/character name.
type NameCmd struct {
	Tag   byte
	Slot  format.Val
	Items []NameInputItem
}

const (
	nameSet   byte = 0x01
	namePrompt byte = 0x02
)

const nameInputTerm byte = 0x00

func (c *cursor) nameCmd() (NameCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return NameCmd{}, err
	}
	slot, err := c.val()
	if err != nil {
		return NameCmd{}, err
	}
	n := NameCmd{Tag: tag, Slot: slot}

	if tag == namePrompt {
		for {
			b, ok := c.peek()
			if !ok {
				return NameCmd{}, unknownTag("name_cmd", 0)
			}
			if b == nameInputTerm {
				c.pos++
				break
			}
			text, err := c.sceneText()
			if err != nil {
				return NameCmd{}, err
			}
			n.Items = append(n.Items, NameInputItem{Text: text})
		}
	}

	return n, nil
}

func (w *writer) nameCmd(n NameCmd) *writer {
	w.u8(n.Tag).val(n.Slot)
	if n.Tag == namePrompt {
		for _, it := range n.Items {
			w.sceneText(it.Text)
		}
		w.u8(nameInputTerm)
	}

	return w
}

func nameCmdSize(n NameCmd) (int, error) {
	sz := 1 + n.Slot.Width()
	if n.Tag == namePrompt {
		sz++
		for _, it := range n.Items {
			s, err := sceneTextSize(it.Text)
			if err != nil {
				return 0, err
			}
			sz += s
		}
	}

	return sz, nil
}

// AreaBufferCmd is Opcode tag 0x6C's payload: defines a clickable
// screen region bound to a jump target.
type AreaBufferCmd struct {
	Fields ValRecord // x1, y1, x2, y2, index
}

func (c *cursor) areaBufferCmd() (AreaBufferCmd, error) {
	fields, err := c.valRecord(5)
	if err != nil {
		return AreaBufferCmd{}, err
	}

	return AreaBufferCmd{Fields: fields}, nil
}

func (w *writer) areaBufferCmd(a AreaBufferCmd) *writer { return w.valRecord(a.Fields) }

func areaBufferCmdSize(a AreaBufferCmd) int { return valRecordSize(a.Fields) }

// MouseCtrlCmd is Opcode tag 0x6D's sub-command enum: cursor visibility
// and position controls.
type MouseCtrlCmd struct {
	Tag    byte
	Fields ValRecord
}

const (
	mouseShow     byte = 0x01
	mouseHide     byte = 0x02
	mouseSetPos   byte = 0x10
)

func (c *cursor) mouseCtrlCmd() (MouseCtrlCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return MouseCtrlCmd{}, err
	}

	var n int
	switch tag {
	case mouseShow, mouseHide:
		n = 0
	case mouseSetPos:
		n = 2
	default:
		return MouseCtrlCmd{}, unknownTag("mouse_ctrl_cmd", tag)
	}

	fields, err := c.valRecord(n)
	if err != nil {
		return MouseCtrlCmd{}, err
	}

	return MouseCtrlCmd{Tag: tag, Fields: fields}, nil
}

func (w *writer) mouseCtrlCmd(m MouseCtrlCmd) *writer { return w.u8(m.Tag).valRecord(m.Fields) }

func mouseCtrlCmdSize(m MouseCtrlCmd) int { return 1 + valRecordSize(m.Fields) }

// VolumeCmd is Opcode tag 0x75's payload: sets a named audio channel's
// master volume.
type VolumeCmd struct {
	Fields ValRecord // channel, volume
}

func (c *cursor) volumeCmd() (VolumeCmd, error) {
	fields, err := c.valRecord(2)
	if err != nil {
		return VolumeCmd{}, err
	}

	return VolumeCmd{Fields: fields}, nil
}

func (w *writer) volumeCmd(v VolumeCmd) *writer { return w.valRecord(v.Fields) }

func volumeCmdSize(v VolumeCmd) int { return valRecordSize(v.Fields) }

// NovelModeCmd is Opcode tag 0x76's payload: toggles novel/adv display
// mode.
type NovelModeCmd struct {
	Val format.Val
}

func (c *cursor) novelModeCmd() (NovelModeCmd, error) {
	v, err := c.val()
	if err != nil {
		return NovelModeCmd{}, err
	}

	return NovelModeCmd{Val: v}, nil
}

func (w *writer) novelModeCmd(n NovelModeCmd) *writer { return w.val(n.Val) }

func novelModeCmdSize(n NovelModeCmd) int { return n.Val.Width() }

// WindowVarCmd is Opcode tag 0x70's payload: sets a text window layout
// variable.
type WindowVarCmd struct {
	Fields ValRecord // var index, value
}

func (c *cursor) windowVarCmd() (WindowVarCmd, error) {
	fields, err := c.valRecord(2)
	if err != nil {
		return WindowVarCmd{}, err
	}

	return WindowVarCmd{Fields: fields}, nil
}

func (w *writer) windowVarCmd(wv WindowVarCmd) *writer { return w.valRecord(wv.Fields) }

func windowVarCmdSize(wv WindowVarCmd) int { return valRecordSize(wv.Fields) }

// MessageWinCmd is Opcode tag 0x72's sub-command enum: message window
// visibility and style.
type MessageWinCmd struct {
	Tag    byte
	Fields ValRecord
}

const (
	msgShow  byte = 0x01
	msgHide  byte = 0x02
	msgStyle byte = 0x10
)

func (c *cursor) messageWinCmd() (MessageWinCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return MessageWinCmd{}, err
	}

	var n int
	switch tag {
	case msgShow, msgHide:
		n = 0
	case msgStyle:
		n = 1
	default:
		return MessageWinCmd{}, unknownTag("message_win_cmd", tag)
	}

	fields, err := c.valRecord(n)
	if err != nil {
		return MessageWinCmd{}, err
	}

	return MessageWinCmd{Tag: tag, Fields: fields}, nil
}

func (w *writer) messageWinCmd(m MessageWinCmd) *writer { return w.u8(m.Tag).valRecord(m.Fields) }

func messageWinCmdSize(m MessageWinCmd) int { return 1 + valRecordSize(m.Fields) }

// SystemVarCmd is Opcode tag 0x73's payload: reads or writes an engine
// system variable slot.
type SystemVarCmd struct {
	Fields ValRecord // var index, value
}

func (c *cursor) systemVarCmd() (SystemVarCmd, error) {
	fields, err := c.valRecord(2)
	if err != nil {
		return SystemVarCmd{}, err
	}

	return SystemVarCmd{Fields: fields}, nil
}

func (w *writer) systemVarCmd(s SystemVarCmd) *writer { return w.valRecord(s.Fields) }

func systemVarCmdSize(s SystemVarCmd) int { return valRecordSize(s.Fields) }

// PopupMenuCmd is Opcode tag 0x74's payload: shows the right-click
// popup menu with a given set of enabled entries.
type PopupMenuCmd struct {
	Val format.Val
}

func (c *cursor) popupMenuCmd() (PopupMenuCmd, error) {
	v, err := c.val()
	if err != nil {
		return PopupMenuCmd{}, err
	}

	return PopupMenuCmd{Val: v}, nil
}

func (w *writer) popupMenuCmd(p PopupMenuCmd) *writer { return w.val(p.Val) }

func popupMenuCmdSize(p PopupMenuCmd) int { return p.Val.Width() }
