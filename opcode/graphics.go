package opcode

import "github.com/ruin0x11/adieu-go/format"

// GrpEffect is the payload shared by GrpCmd's LoadEffect family: a file
// followed by 15 Vals: sx1, sy1, sx2, sy2, dx, dy, steptime, cmd, mask, arg1, arg2, arg3, step, arg5, arg6.
type GrpEffect struct {
	File   SceneText
	Fields ValRecord
}

func (c *cursor) grpEffect() (GrpEffect, error) {
	file, err := c.sceneText()
	if err != nil {
		return GrpEffect{}, err
	}
	fields, err := c.valRecord(15)
	if err != nil {
		return GrpEffect{}, err
	}

	return GrpEffect{File: file, Fields: fields}, nil
}

func (w *writer) grpEffect(g GrpEffect) *writer {
	return w.sceneText(g.File).valRecord(g.Fields)
}

func grpEffectSize(g GrpEffect) (int, error) {
	sz, err := sceneTextSize(g.File)
	if err != nil {
		return 0, err
	}

	return sz + valRecordSize(g.Fields), nil
}

// GrpCompositeMethod is GrpComposite's per-child placement method.
type GrpCompositeMethod struct {
	Tag    byte
	Fields ValRecord
}

const (
	gcmCorner byte = 0x01
	gcmCopy   byte = 0x02
	gcmMove1  byte = 0x03
	gcmMove2  byte = 0x04
)

// GrpCompositeChild is one entry of a composite-load child list.
type GrpCompositeChild struct {
	File   SceneText
	Method GrpCompositeMethod
}

func (c *cursor) grpCompositeChild() (GrpCompositeChild, error) {
	tag, err := c.u8()
	if err != nil {
		return GrpCompositeChild{}, err
	}
	file, err := c.sceneText()
	if err != nil {
		return GrpCompositeChild{}, err
	}

	var n int
	switch tag {
	case gcmCorner:
		n = 0
	case gcmCopy:
		n = 1
	case gcmMove1:
		n = 6
	case gcmMove2:
		n = 7
	default:
		return GrpCompositeChild{}, unknownTag("grp_composite_child", tag)
	}

	fields, err := c.valRecord(n)
	if err != nil {
		return GrpCompositeChild{}, err
	}

	return GrpCompositeChild{File: file, Method: GrpCompositeMethod{Tag: tag, Fields: fields}}, nil
}

func (w *writer) grpCompositeChild(ch GrpCompositeChild) *writer {
	return w.u8(ch.Method.Tag).sceneText(ch.File).valRecord(ch.Method.Fields)
}

func grpCompositeChildSize(ch GrpCompositeChild) (int, error) {
	sz, err := sceneTextSize(ch.File)
	if err != nil {
		return 0, err
	}

	return 1 + sz + valRecordSize(ch.Method.Fields), nil
}

// GrpComposite is GrpCmd tag 0x22's payload: a base image file, plus a
// shared index Val, plus a child list. Parsing is done by
// cursor.grpCompositeWithCount since the child count byte precedes
// base_file/idx in the wire format.
type GrpComposite struct {
	BaseFile SceneText
	Idx      format.Val
	Children []GrpCompositeChild
}

func (w *writer) grpComposite(g GrpComposite) *writer {
	w.u8(byte(len(g.Children))).sceneText(g.BaseFile).val(g.Idx)
	for _, ch := range g.Children {
		w.grpCompositeChild(ch)
	}

	return w
}

func grpCompositeSize(g GrpComposite) (int, error) {
	sz, err := sceneTextSize(g.BaseFile)
	if err != nil {
		return 0, err
	}
	n := 1 + sz + g.Idx.Width()
	for _, ch := range g.Children {
		csz, err := grpCompositeChildSize(ch)
		if err != nil {
			return 0, err
		}
		n += csz
	}

	return n, nil
}

// GrpCompositeIndexed is GrpCmd tag 0x24's payload: same shape as
// GrpComposite but the base image is a Val index rather than a file name.
type GrpCompositeIndexed struct {
	BaseFile format.Val
	Idx      format.Val
	Children []GrpCompositeChild
}

func (w *writer) grpCompositeIndexed(g GrpCompositeIndexed) *writer {
	w.u8(byte(len(g.Children))).val(g.BaseFile).val(g.Idx)
	for _, ch := range g.Children {
		w.grpCompositeChild(ch)
	}

	return w
}

func grpCompositeIndexedSize(g GrpCompositeIndexed) (int, error) {
	n := 1 + valsSize(g.BaseFile, g.Idx)
	for _, ch := range g.Children {
		csz, err := grpCompositeChildSize(ch)
		if err != nil {
			return 0, err
		}
		n += csz
	}

	return n, nil
}

// GrpCmd is Opcode tag 0x0B's sub-command enum.
type GrpCmd struct {
	Tag          byte
	File         SceneText
	Val          format.Val
	Effect       GrpEffect
	Composite    GrpComposite
	CompositeIdx GrpCompositeIndexed
}

const (
	grpLoad               byte = 0x01
	grpLoadEffect         byte = 0x02
	grpLoad2              byte = 0x03
	grpLoadEffect2        byte = 0x04
	grpLoad3              byte = 0x05
	grpLoadEffect3        byte = 0x06
	grpUnknown1           byte = 0x08
	grpLoadToBuf          byte = 0x09
	grpLoadToBuf2         byte = 0x10
	grpLoadCaching        byte = 0x11
	grpCmd0x13            byte = 0x13
	grpLoadComposite      byte = 0x22
	grpLoadCompositeIndex byte = 0x24
	grpMacroBufferClear   byte = 0x30
	grpMacroBufferDelete  byte = 0x31
	grpMacroBufferRead    byte = 0x32
	grpMacroBufferSet     byte = 0x33
	grpBackupScreenCopy   byte = 0x50
	grpBackupScreenDisp   byte = 0x52
	grpLoadToBuf3         byte = 0x54
)

func (c *cursor) grpCmd() (GrpCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return GrpCmd{}, err
	}
	g := GrpCmd{Tag: tag}

	switch tag {
	case grpLoad, grpLoad2, grpLoad3, grpLoadToBuf, grpLoadToBuf2, grpLoadToBuf3:
		if g.File, err = c.sceneText(); err != nil {
			return GrpCmd{}, err
		}
		if g.Val, err = c.val(); err != nil {
			return GrpCmd{}, err
		}
	case grpLoadEffect, grpLoadEffect2, grpLoadEffect3:
		if g.Effect, err = c.grpEffect(); err != nil {
			return GrpCmd{}, err
		}
	case grpUnknown1, grpCmd0x13, grpMacroBufferClear, grpBackupScreenCopy:
	case grpLoadCaching:
		if g.File, err = c.sceneText(); err != nil {
			return GrpCmd{}, err
		}
	case grpLoadComposite:
		if g.Composite, err = c.grpCompositeWithCount(); err != nil {
			return GrpCmd{}, err
		}
	case grpLoadCompositeIndex:
		if g.CompositeIdx, err = c.grpCompositeIndexedWithCount(); err != nil {
			return GrpCmd{}, err
		}
	case grpMacroBufferDelete, grpMacroBufferRead, grpMacroBufferSet, grpBackupScreenDisp:
		if g.Val, err = c.val(); err != nil {
			return GrpCmd{}, err
		}
	default:
		return GrpCmd{}, unknownTag("grp_cmd", tag)
	}

	return g, nil
}

func (c *cursor) grpCompositeWithCount() (GrpComposite, error) {
	count, err := c.u8()
	if err != nil {
		return GrpComposite{}, err
	}
	baseFile, err := c.sceneText()
	if err != nil {
		return GrpComposite{}, err
	}
	idx, err := c.val()
	if err != nil {
		return GrpComposite{}, err
	}
	children := make([]GrpCompositeChild, count)
	for i := range children {
		if children[i], err = c.grpCompositeChild(); err != nil {
			return GrpComposite{}, err
		}
	}

	return GrpComposite{BaseFile: baseFile, Idx: idx, Children: children}, nil
}

func (c *cursor) grpCompositeIndexedWithCount() (GrpCompositeIndexed, error) {
	count, err := c.u8()
	if err != nil {
		return GrpCompositeIndexed{}, err
	}
	baseFile, err := c.val()
	if err != nil {
		return GrpCompositeIndexed{}, err
	}
	idx, err := c.val()
	if err != nil {
		return GrpCompositeIndexed{}, err
	}
	children := make([]GrpCompositeChild, count)
	for i := range children {
		if children[i], err = c.grpCompositeChild(); err != nil {
			return GrpCompositeIndexed{}, err
		}
	}

	return GrpCompositeIndexed{BaseFile: baseFile, Idx: idx, Children: children}, nil
}

func (w *writer) grpCmd(g GrpCmd) *writer {
	w.u8(g.Tag)
	switch g.Tag {
	case grpLoad, grpLoad2, grpLoad3, grpLoadToBuf, grpLoadToBuf2, grpLoadToBuf3:
		w.sceneText(g.File).val(g.Val)
	case grpLoadEffect, grpLoadEffect2, grpLoadEffect3:
		w.grpEffect(g.Effect)
	case grpLoadCaching:
		w.sceneText(g.File)
	case grpLoadComposite:
		w.grpComposite(g.Composite)
	case grpLoadCompositeIndex:
		w.grpCompositeIndexed(g.CompositeIdx)
	case grpMacroBufferDelete, grpMacroBufferRead, grpMacroBufferSet, grpBackupScreenDisp:
		w.val(g.Val)
	}

	return w
}

func grpCmdSize(g GrpCmd) (int, error) {
	n := 1
	switch g.Tag {
	case grpLoad, grpLoad2, grpLoad3, grpLoadToBuf, grpLoadToBuf2, grpLoadToBuf3:
		sz, err := sceneTextSize(g.File)
		if err != nil {
			return 0, err
		}
		n += sz + g.Val.Width()
	case grpLoadEffect, grpLoadEffect2, grpLoadEffect3:
		sz, err := grpEffectSize(g.Effect)
		if err != nil {
			return 0, err
		}
		n += sz
	case grpLoadCaching:
		sz, err := sceneTextSize(g.File)
		if err != nil {
			return 0, err
		}
		n += sz
	case grpLoadComposite:
		sz, err := grpCompositeSize(g.Composite)
		if err != nil {
			return 0, err
		}
		n += sz
	case grpLoadCompositeIndex:
		sz, err := grpCompositeIndexedSize(g.CompositeIdx)
		if err != nil {
			return 0, err
		}
		n += sz
	case grpMacroBufferDelete, grpMacroBufferRead, grpMacroBufferSet, grpBackupScreenDisp:
		n += g.Val.Width()
	}

	return n, nil
}

// BufferRegionGrpCmd is Opcode tag 0x64's sub-command enum: rectangle
// and blit operations on an off-screen buffer region.
type BufferRegionGrpCmd struct {
	Tag    byte
	Fields ValRecord
}

const (
	brgClearRect     byte = 0x02
	brgDrawRectLine  byte = 0x04
	brgInvertColor   byte = 0x07
	brgColorMask     byte = 0x10
	brgFadeOutColor  byte = 0x11
	brgFadeOutColor2 byte = 0x12
	brgFadeOutColor3 byte = 0x15
	brgMakeMonoImage byte = 0x20
	brgStretchBlit   byte = 0x30
	brgStretchBlitFX byte = 0x32
)

func (c *cursor) bufferRegionGrpCmd() (BufferRegionGrpCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return BufferRegionGrpCmd{}, err
	}

	var n int
	switch tag {
	case brgClearRect, brgDrawRectLine, brgColorMask: // BRGRectColor: 8 fields
		n = 8
	case brgInvertColor, brgFadeOutColor, brgFadeOutColor2, brgMakeMonoImage: // BRGRect: 5 fields
		n = 5
	case brgFadeOutColor3: // BRGFadeOutColor: 9 fields
		n = 9
	case brgStretchBlit: // BRGStretchBlit: 10 fields
		n = 10
	case brgStretchBlitFX: // BRGStretchBlitEffect: 16 fields
		n = 16
	default:
		return BufferRegionGrpCmd{}, unknownTag("buffer_region_grp_cmd", tag)
	}

	fields, err := c.valRecord(n)
	if err != nil {
		return BufferRegionGrpCmd{}, err
	}

	return BufferRegionGrpCmd{Tag: tag, Fields: fields}, nil
}

func (w *writer) bufferRegionGrpCmd(b BufferRegionGrpCmd) *writer {
	return w.u8(b.Tag).valRecord(b.Fields)
}

func bufferRegionGrpCmdSize(b BufferRegionGrpCmd) int { return 1 + valRecordSize(b.Fields) }

// BufferGrpCmd is Opcode tag 0x67's sub-command enum: buffer-to-buffer
// copy/swap/display operations, several of which carry a version-gated
// trailing flag Val (spec §4.5.2).
type BufferGrpCmd struct {
	Tag      byte
	Fields   ValRecord
	HasFlag  bool
	Flag     format.Val
}

const (
	bgCopySamePos          byte = 0x00
	bgCopyNewPos           byte = 0x01
	bgCopyNewPosMask       byte = 0x02
	bgCopyColor            byte = 0x03
	bgSwap                 byte = 0x05
	bgCopyWithMask         byte = 0x08
	bgCopyWholeScreen      byte = 0x11
	bgCopyWholeScreenMask  byte = 0x12
	bgDisplayStrings       byte = 0x20
	bgDisplayStringsMask   byte = 0x21
	bgDisplayStringsColor  byte = 0x22
)

func (c *cursor) bufferGrpCmd(ver Version) (BufferGrpCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return BufferGrpCmd{}, err
	}
	b := BufferGrpCmd{Tag: tag}

	switch tag {
	case bgCopySamePos: // 6 fields
		b.Fields, err = c.valRecord(6)
	case bgCopyNewPos: // 8 fields + gated flag @1704
		b.Fields, err = c.valRecord(8)
		if err == nil && ver.atLeast(bgCopyFlagThreshold) {
			b.HasFlag = true
			b.Flag, err = c.val()
		}
	case bgCopyNewPosMask: // 8 fields + gated flag @1613
		b.Fields, err = c.valRecord(8)
		if err == nil && ver.atLeast(bgCopyMaskFlagThreshold) {
			b.HasFlag = true
			b.Flag, err = c.val()
		}
	case bgCopyColor: // 11 fields
		b.Fields, err = c.valRecord(11)
	case bgSwap: // 8 fields
		b.Fields, err = c.valRecord(8)
	case bgCopyWithMask: // 9 fields
		b.Fields, err = c.valRecord(9)
	case bgCopyWholeScreen: // 2 fields + gated flag @1704
		b.Fields, err = c.valRecord(2)
		if err == nil && ver.atLeast(bgCopyFlagThreshold) {
			b.HasFlag = true
			b.Flag, err = c.val()
		}
	case bgCopyWholeScreenMask: // 2 fields + gated flag @1613
		b.Fields, err = c.valRecord(2)
		if err == nil && ver.atLeast(bgCopyMaskFlagThreshold) {
			b.HasFlag = true
			b.Flag, err = c.val()
		}
	case bgDisplayStrings: // 15 fields
		b.Fields, err = c.valRecord(15)
	case bgDisplayStringsMask: // 16 fields
		b.Fields, err = c.valRecord(16)
	case bgDisplayStringsColor: // 18 fields
		b.Fields, err = c.valRecord(18)
	default:
		return BufferGrpCmd{}, unknownTag("buffer_grp_cmd", tag)
	}
	if err != nil {
		return BufferGrpCmd{}, err
	}

	return b, nil
}

func (w *writer) bufferGrpCmd(b BufferGrpCmd) *writer {
	w.u8(b.Tag).valRecord(b.Fields)
	if b.HasFlag {
		w.val(b.Flag)
	}

	return w
}

func bufferGrpCmdSize(b BufferGrpCmd) int {
	n := 1 + valRecordSize(b.Fields)
	if b.HasFlag {
		n += b.Flag.Width()
	}

	return n
}

// FlashGrpCmd is Opcode tag 0x68's sub-command enum.
type FlashGrpCmd struct {
	Tag    byte
	Fields ValRecord
}

const (
	flashFillColor    byte = 0x01
	flashFlashScreen  byte = 0x10
)

func (c *cursor) flashGrpCmd() (FlashGrpCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return FlashGrpCmd{}, err
	}

	var n int
	switch tag {
	case flashFillColor:
		n = 4
	case flashFlashScreen:
		n = 5
	default:
		return FlashGrpCmd{}, unknownTag("flash_grp_cmd", tag)
	}

	fields, err := c.valRecord(n)
	if err != nil {
		return FlashGrpCmd{}, err
	}

	return FlashGrpCmd{Tag: tag, Fields: fields}, nil
}

func (w *writer) flashGrpCmd(f FlashGrpCmd) *writer { return w.u8(f.Tag).valRecord(f.Fields) }

func flashGrpCmdSize(f FlashGrpCmd) int { return 1 + valRecordSize(f.Fields) }

// MultiPdtEntry is one (text, data) pair in a slideshow/scroll list.
type MultiPdtEntry struct {
	Text SceneText
	Data format.Val
}

func (c *cursor) multiPdtEntries(n int) ([]MultiPdtEntry, error) {
	out := make([]MultiPdtEntry, n)
	for i := range out {
		text, err := c.sceneText()
		if err != nil {
			return nil, err
		}
		data, err := c.val()
		if err != nil {
			return nil, err
		}
		out[i] = MultiPdtEntry{Text: text, Data: data}
	}

	return out, nil
}

func (w *writer) multiPdtEntries(es []MultiPdtEntry) *writer {
	for _, e := range es {
		w.sceneText(e.Text).val(e.Data)
	}

	return w
}

func multiPdtEntriesSize(es []MultiPdtEntry) (int, error) {
	n := 0
	for _, e := range es {
		sz, err := sceneTextSize(e.Text)
		if err != nil {
			return 0, err
		}
		n += sz + e.Data.Width()
	}

	return n, nil
}

// MultiPdtCmd is Opcode tag 0x6A's sub-command enum: slideshow/scroll
// sequences over a list of MultiPdtEntry.
type MultiPdtCmd struct {
	Tag         byte
	PosCmd      byte
	HasPosCmd   bool
	Pos, Wait   format.Val
	Pixel       format.Val
	CancelIndex format.Val
	Entries     []MultiPdtEntry
}

const (
	mpSlideshow         byte = 0x03
	mpSlideshowLoop     byte = 0x04
	mpStopSlideshowLoop byte = 0x05
	mpScroll            byte = 0x10
	mpScroll2           byte = 0x20
	mpScrollWithCancel  byte = 0x30
)

func (c *cursor) multiPdtCmd() (MultiPdtCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return MultiPdtCmd{}, err
	}
	m := MultiPdtCmd{Tag: tag}

	switch tag {
	case mpSlideshow, mpSlideshowLoop:
		count, err := c.u8()
		if err != nil {
			return MultiPdtCmd{}, err
		}
		if m.Pos, err = c.val(); err != nil {
			return MultiPdtCmd{}, err
		}
		if m.Wait, err = c.val(); err != nil {
			return MultiPdtCmd{}, err
		}
		if m.Entries, err = c.multiPdtEntries(int(count)); err != nil {
			return MultiPdtCmd{}, err
		}
	case mpStopSlideshowLoop:
	case mpScroll, mpScroll2, mpScrollWithCancel:
		m.HasPosCmd = true
		if m.PosCmd, err = c.u8(); err != nil {
			return MultiPdtCmd{}, err
		}
		count, err := c.u8()
		if err != nil {
			return MultiPdtCmd{}, err
		}
		if m.Pos, err = c.val(); err != nil {
			return MultiPdtCmd{}, err
		}
		if m.Wait, err = c.val(); err != nil {
			return MultiPdtCmd{}, err
		}
		if m.Pixel, err = c.val(); err != nil {
			return MultiPdtCmd{}, err
		}
		if tag == mpScrollWithCancel {
			if m.CancelIndex, err = c.val(); err != nil {
				return MultiPdtCmd{}, err
			}
		}
		if m.Entries, err = c.multiPdtEntries(int(count)); err != nil {
			return MultiPdtCmd{}, err
		}
	default:
		return MultiPdtCmd{}, unknownTag("multi_pdt_cmd", tag)
	}

	return m, nil
}

func (w *writer) multiPdtCmd(m MultiPdtCmd) *writer {
	w.u8(m.Tag)
	switch m.Tag {
	case mpSlideshow, mpSlideshowLoop:
		w.u8(byte(len(m.Entries))).vals(m.Pos, m.Wait).multiPdtEntries(m.Entries)
	case mpStopSlideshowLoop:
	case mpScroll, mpScroll2, mpScrollWithCancel:
		w.u8(m.PosCmd).u8(byte(len(m.Entries))).vals(m.Pos, m.Wait, m.Pixel)
		if m.Tag == mpScrollWithCancel {
			w.val(m.CancelIndex)
		}
		w.multiPdtEntries(m.Entries)
	}

	return w
}

func multiPdtCmdSize(m MultiPdtCmd) (int, error) {
	n := 1
	entriesSz, err := multiPdtEntriesSize(m.Entries)
	if err != nil {
		return 0, err
	}

	switch m.Tag {
	case mpSlideshow, mpSlideshowLoop:
		n += 1 + valsSize(m.Pos, m.Wait) + entriesSz
	case mpStopSlideshowLoop:
	case mpScroll, mpScroll2:
		n += 2 + valsSize(m.Pos, m.Wait, m.Pixel) + entriesSz
	case mpScrollWithCancel:
		n += 2 + valsSize(m.Pos, m.Wait, m.Pixel, m.CancelIndex) + entriesSz
	}

	return n, nil
}
