package opcode

import "github.com/ruin0x11/adieu-go/format"

// Condition is one token of a flattened boolean expression (spec §4.4).
// IncDepth/DecDepth bracket a single top-level grouping; comparison
// atoms and Ret carry their operands inline.
type Condition struct {
	Tag  byte
	A, B format.Val
	Ret  Ret
}

const (
	condAnd      byte = 0x26
	condOr       byte = 0x27
	condIncDepth byte = 0x28
	condDecDepth byte = 0x29
	condRet      byte = 0x58
)

func isComparisonTag(tag byte) bool { return tag >= 0x36 && tag <= 0x55 }

// Ret describes the result attribute carried by a Condition::Ret token.
type Ret struct {
	Tag byte
	Val format.Val
}

const (
	retColor           byte = 0x20
	retChoice          byte = 0x21
	retDisabledChoice  byte = 0x22
)

func (c *cursor) ret() (Ret, error) {
	tag, err := c.u8()
	if err != nil {
		return Ret{}, err
	}

	switch tag {
	case retColor, retDisabledChoice:
		v, err := c.val()
		if err != nil {
			return Ret{}, err
		}

		return Ret{Tag: tag, Val: v}, nil
	case retChoice:
		return Ret{Tag: tag}, nil
	default:
		return Ret{}, unknownTag("ret", tag)
	}
}

func (w *writer) ret(r Ret) *writer {
	w.u8(r.Tag)
	switch r.Tag {
	case retColor, retDisabledChoice:
		w.val(r.Val)
	case retChoice:
	}

	return w
}

func retSize(r Ret) int {
	switch r.Tag {
	case retColor, retDisabledChoice:
		return 1 + r.Val.Width()
	default:
		return 1
	}
}

// conditions parses a flat token list, tracking depth so that it
// terminates exactly when a DecDepth brings the counter back to zero
// or below (spec §4.4).
func (c *cursor) conditions() ([]Condition, error) {
	var out []Condition
	depth := 0

	for {
		tag, err := c.u8()
		if err != nil {
			return nil, err
		}

		var cond Condition
		cond.Tag = tag

		switch {
		case tag == condAnd || tag == condOr:
		case tag == condIncDepth:
			depth++
		case tag == condDecDepth:
			depth--
		case isComparisonTag(tag):
			vs, err := c.vals(2)
			if err != nil {
				return nil, err
			}
			cond.A, cond.B = vs[0], vs[1]
		case tag == condRet:
			r, err := c.ret()
			if err != nil {
				return nil, err
			}
			cond.Ret = r
		default:
			return nil, unknownConditionTag(tag)
		}

		out = append(out, cond)

		if tag == condDecDepth && depth <= 0 {
			return out, nil
		}
	}
}

func (w *writer) conditions(cs []Condition) *writer {
	for _, c := range cs {
		w.u8(c.Tag)
		switch {
		case isComparisonTag(c.Tag):
			w.vals(c.A, c.B)
		case c.Tag == condRet:
			w.ret(c.Ret)
		}
	}

	return w
}

func conditionsSize(cs []Condition) int {
	n := 0
	for _, c := range cs {
		n++
		switch {
		case isComparisonTag(c.Tag):
			n += valsSize(c.A, c.B)
		case c.Tag == condRet:
			n += retSize(c.Ret)
		}
	}

	return n
}
