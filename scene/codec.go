package scene

import (
	"bytes"

	"github.com/ruin0x11/adieu-go/errs"
	"github.com/ruin0x11/adieu-go/internal/sjis"
	"github.com/ruin0x11/adieu-go/opcode"
)

type writer struct {
	buf bytes.Buffer
	err error
}

func (w *writer) fail(err error) *writer {
	if w.err == nil {
		w.err = err
	}

	return w
}

func (w *writer) u8(b byte) *writer {
	w.buf.WriteByte(b)

	return w
}

func (w *writer) u32(v uint32) *writer {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v >> 16))
	w.buf.WriteByte(byte(v >> 24))

	return w
}

func (w *writer) raw(b []byte) *writer {
	w.buf.Write(b)

	return w
}

func (w *writer) cstring(s string) *writer {
	b, err := sjis.WriteCString(s)
	if err != nil {
		return w.fail(err)
	}

	return w.raw(b)
}

func (w *writer) flag(f Flag) *writer {
	w.u8(byte(len(f.Flags))).u8(f.Unk1)
	for _, v := range f.Flags {
		w.u32(v)
	}

	return w
}

func (w *writer) submenu(s Submenu) *writer {
	w.u8(s.ID).u8(byte(len(s.Flags))).u8(s.Unk1).u8(s.Unk2)
	for _, f := range s.Flags {
		w.flag(f)
	}

	return w
}

func (w *writer) menu(m Menu) *writer {
	w.u8(m.ID).u8(byte(len(m.Submenus))).u8(m.Unk1).u8(m.Unk2)
	for _, s := range m.Submenus {
		w.submenu(s)
	}

	return w
}

func (w *writer) header(h Header) *writer {
	w.raw([]byte(magic)).raw(h.Unk1[:])
	w.u32(uint32(len(h.Labels))).u32(h.CounterStart)
	for _, l := range h.Labels {
		w.u32(l)
	}
	w.raw(h.Unk2[:])
	w.u32(uint32(len(h.Menus)))
	for _, m := range h.Menus {
		w.menu(m)
	}
	for _, s := range h.MenuStrings {
		w.cstring(s)
	}

	return w.raw(h.Unk3[:])
}

// opcodeStreamTerm is the single zero byte that ends a scene's opcode
// sequence (spec §3, §6). It is not itself a dispatchable opcode tag.
const opcodeStreamTerm = 0x00

// Parse decodes a full Scene: header, opcode stream, and the trailing
// terminator byte. Trailing bytes after the terminator fail with
// ErrTrailingBytes.
func Parse(data []byte, ver opcode.Version) (Scene, error) {
	c := &cursor{data: data}
	h, err := c.header()
	if err != nil {
		return Scene{}, err
	}

	var ops []opcode.Opcode
	for {
		b, err := c.u8()
		if err != nil {
			return Scene{}, err
		}
		if b == opcodeStreamTerm {
			break
		}

		o, n, err := opcode.Parse(c.data[c.pos-1:], ver)
		if err != nil {
			return Scene{}, err
		}
		ops = append(ops, o)
		c.pos += n - 1
	}

	if c.pos != len(c.data) {
		return Scene{}, errs.ErrTrailingBytes
	}

	return Scene{Header: h, Opcodes: ops}, nil
}

// Write encodes s back to its binary form.
func Write(s Scene) ([]byte, error) {
	w := &writer{}
	w.header(s.Header)
	if w.err != nil {
		return nil, w.err
	}

	for _, o := range s.Opcodes {
		b, err := opcode.Write(o)
		if err != nil {
			return nil, err
		}
		w.raw(b)
	}
	w.u8(opcodeStreamTerm)

	if w.err != nil {
		return nil, w.err
	}

	return w.buf.Bytes(), nil
}

// ByteSize returns the encoded length of s.
func (s Scene) ByteSize() (int, error) {
	n := len(magic) + unk1Size + 4 + 4 + 4*len(s.Header.Labels) + unk2Size + 4
	for _, m := range s.Header.Menus {
		n += 4 // id, submenu_count, unk1, unk2
		for _, sm := range m.Submenus {
			n += 4
			for _, f := range sm.Flags {
				n += 2 + 4*len(f.Flags)
			}
		}
	}
	for _, str := range s.Header.MenuStrings {
		sz, err := sjis.CStringSize(str)
		if err != nil {
			return 0, err
		}
		n += sz
	}
	n += unk3Size

	for _, o := range s.Opcodes {
		sz, err := o.ByteSize()
		if err != nil {
			return 0, err
		}
		n += sz
	}
	n++ // opcode stream terminator

	return n, nil
}
