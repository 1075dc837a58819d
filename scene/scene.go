// Package scene implements the AVG32 scene container: the fixed TPC32
// header (label table, menu/submenu/flag tree) and the opcode stream
// that follows it.
package scene

import (
	"fmt"

	"github.com/ruin0x11/adieu-go/errs"
	"github.com/ruin0x11/adieu-go/internal/sjis"
	"github.com/ruin0x11/adieu-go/opcode"
)

const magic = "TPC32"

const (
	unk1Size = 0x13
	unk2Size = 0x30
	unk3Size = 0x05
)

// Flag is one leaf of a Submenu's flag-value list.
type Flag struct {
	Unk1  byte
	Flags []uint32
}

// Submenu is one entry of a Menu's submenu list.
type Submenu struct {
	ID    byte
	Unk1  byte
	Unk2  byte
	Flags []Flag
}

// Menu is one top-level scenario menu entry.
type Menu struct {
	ID       byte
	Unk1     byte
	Unk2     byte
	Submenus []Submenu
}

// Header is the fixed-layout "TPC32" prologue preceding a scene's
// opcode stream.
type Header struct {
	Unk1         [unk1Size]byte
	Labels       []uint32
	Unk2         [unk2Size]byte
	CounterStart uint32
	Menus        []Menu
	MenuStrings  []string
	Unk3         [unk3Size]byte
}

// Scene is a fully decoded AVG32 scene file: its header plus the
// decoded opcode stream. Opcodes is produced with ByteOffset Pos values;
// see package label for converting to/from symbolic form.
type Scene struct {
	Header  Header
	Opcodes []opcode.Opcode
}

type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) u8() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, errs.ErrUnexpectedEOF
	}
	b := c.data[c.pos]
	c.pos++

	return b, nil
}

func (c *cursor) u32() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, errs.ErrUnexpectedEOF
	}
	v := uint32(c.data[c.pos]) | uint32(c.data[c.pos+1])<<8 |
		uint32(c.data[c.pos+2])<<16 | uint32(c.data[c.pos+3])<<24
	c.pos += 4

	return v, nil
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, errs.ErrUnexpectedEOF
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

func (c *cursor) cstring() (string, error) {
	s, rest, err := sjis.ParseCString(c.data[c.pos:])
	if err != nil {
		return "", err
	}
	c.pos = len(c.data) - len(rest)

	return s, nil
}

func (c *cursor) flag() (Flag, error) {
	flagCount, err := c.u8()
	if err != nil {
		return Flag{}, err
	}
	unk1, err := c.u8()
	if err != nil {
		return Flag{}, err
	}
	flags := make([]uint32, flagCount)
	for i := range flags {
		if flags[i], err = c.u32(); err != nil {
			return Flag{}, err
		}
	}

	return Flag{Unk1: unk1, Flags: flags}, nil
}

func (c *cursor) submenu() (Submenu, error) {
	id, err := c.u8()
	if err != nil {
		return Submenu{}, err
	}
	flagCount, err := c.u8()
	if err != nil {
		return Submenu{}, err
	}
	unk1, err := c.u8()
	if err != nil {
		return Submenu{}, err
	}
	unk2, err := c.u8()
	if err != nil {
		return Submenu{}, err
	}
	flags := make([]Flag, flagCount)
	for i := range flags {
		if flags[i], err = c.flag(); err != nil {
			return Submenu{}, err
		}
	}

	return Submenu{ID: id, Unk1: unk1, Unk2: unk2, Flags: flags}, nil
}

func (c *cursor) menu() (Menu, error) {
	id, err := c.u8()
	if err != nil {
		return Menu{}, err
	}
	submenuCount, err := c.u8()
	if err != nil {
		return Menu{}, err
	}
	unk1, err := c.u8()
	if err != nil {
		return Menu{}, err
	}
	unk2, err := c.u8()
	if err != nil {
		return Menu{}, err
	}
	submenus := make([]Submenu, submenuCount)
	for i := range submenus {
		if submenus[i], err = c.submenu(); err != nil {
			return Menu{}, err
		}
	}

	return Menu{ID: id, Unk1: unk1, Unk2: unk2, Submenus: submenus}, nil
}

// menuStringCount mirrors parser.rs's menu_strings: one name per menu
// plus one per submenu across all menus.
func menuStringCount(menus []Menu) int {
	n := 0
	for _, m := range menus {
		n += 1 + len(m.Submenus)
	}

	return n
}

func (c *cursor) header() (Header, error) {
	tag, err := c.take(len(magic))
	if err != nil {
		return Header{}, err
	}
	if string(tag) != magic {
		return Header{}, fmt.Errorf("%w: expected %q", errs.ErrInvalidMagic, magic)
	}

	var h Header
	u1, err := c.take(unk1Size)
	if err != nil {
		return Header{}, err
	}
	copy(h.Unk1[:], u1)

	labelCount, err := c.u32()
	if err != nil {
		return Header{}, err
	}
	if h.CounterStart, err = c.u32(); err != nil {
		return Header{}, err
	}
	h.Labels = make([]uint32, labelCount)
	for i := range h.Labels {
		if h.Labels[i], err = c.u32(); err != nil {
			return Header{}, err
		}
	}

	u2, err := c.take(unk2Size)
	if err != nil {
		return Header{}, err
	}
	copy(h.Unk2[:], u2)

	menuCount, err := c.u32()
	if err != nil {
		return Header{}, err
	}
	h.Menus = make([]Menu, menuCount)
	for i := range h.Menus {
		if h.Menus[i], err = c.menu(); err != nil {
			return Header{}, err
		}
	}

	h.MenuStrings = make([]string, menuStringCount(h.Menus))
	for i := range h.MenuStrings {
		if h.MenuStrings[i], err = c.cstring(); err != nil {
			return Header{}, err
		}
	}

	u3, err := c.take(unk3Size)
	if err != nil {
		return Header{}, err
	}
	copy(h.Unk3[:], u3)

	return h, nil
}
