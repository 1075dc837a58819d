package opcode

import "github.com/ruin0x11/adieu-go/format"

// Opcode is the top-level tagged union of every scene instruction (spec
// §4.5, complete tag table in spec §6). Only the fields relevant to Tag
// are populated. Tag 0x00 never reaches Parse/Write: it is the sentinel
// terminator byte that ends a scene's opcode stream and is consumed by
// package scene before the opcode layer ever sees it.
type Opcode struct {
	Tag byte

	TextWin      TextWinCmd
	Grp          GrpCmd
	Snd          SndCmd
	Text         SceneFormattedText
	Fade         FadeCmd
	Condition    []Condition
	ConditionPos format.Pos
	JumpToScene  JumpToSceneCmd
	ScreenShake  ScreenShakeCmd
	Wait         WaitCmd
	Pos          format.Pos
	Table        TableCmd
	Ret          RetCmd
	ScenarioMenu ScenarioMenuCmd
	TextRank     TextRankCmd
	BinVal       BinValCmd
	UnaryVal     UnaryValCmd
	Choice       ChoiceCmd
	Str          StringCmd
	SetMulti     SetMultiCmd
	System       SystemCmd
	Name         NameCmd
	BufferRegion BufferRegionGrpCmd
	BufferGrp    BufferGrpCmd
	FlashGrp     FlashGrpCmd
	MultiPdt     MultiPdtCmd
	AreaBuffer   AreaBufferCmd
	MouseCtrl    MouseCtrlCmd
	WindowVar    WindowVarCmd
	MessageWin   MessageWinCmd
	SystemVar    SystemVarCmd
	PopupMenu    PopupMenuCmd
	Volume       VolumeCmd
	NovelMode    NovelModeCmd
	TextIdx      TextIndexCmd
}

const (
	opWaitMouse     byte = 0x01
	opNewline       byte = 0x02
	opWaitMouseText byte = 0x03
	opTextWin       byte = 0x04
	opGrp           byte = 0x0B
	opSnd           byte = 0x0E
	opDrawValText   byte = 0x10
	opFade          byte = 0x13
	opCondition     byte = 0x15
	opJumpToScene   byte = 0x16
	opScreenShake   byte = 0x17
	opWait          byte = 0x19
	opCall          byte = 0x1B
	opJump          byte = 0x1C
	opTableCall     byte = 0x1D
	opTableJump     byte = 0x1E
	opReturn        byte = 0x20
	// opUnknownNLo/Hi bracket the no-payload 0x22..0x29 range.
	opUnknownNLo    byte = 0x22
	opUnknownNHi    byte = 0x29
	opScenarioMenu1 byte = 0x2E
	opScenarioMenu2 byte = 0x2F
	opTextRank      byte = 0x31
	opSetFlag       byte = 0x37
	opCopyFlag      byte = 0x39
	opSetValLiteral byte = 0x3B
	// opArithLo/Hi bracket the 0x3C..0x43 arithmetic range.
	opArithLo byte = 0x3C
	opArithHi byte = 0x43
	// opArithSelfLo/Hi bracket the 0x49..0x51 self-arithmetic range.
	opArithSelfLo    byte = 0x49
	opArithSelfHi    byte = 0x51
	opSetFlagRandom  byte = 0x56
	opSetValRandom   byte = 0x57
	opChoice         byte = 0x58
	opString         byte = 0x59
	opSetMulti       byte = 0x5C
	opSystem         byte = 0x60
	opName           byte = 0x61
	opBufferRegion   byte = 0x64 // also the reference's literal duplicate-key branch for 0x65; see note below.
	opUnknown0x65    byte = 0x65
	opBufferGrp      byte = 0x67
	opFlashGrp       byte = 0x68
	opMultiPdt       byte = 0x6A
	opAreaBuffer     byte = 0x6C
	opMouseCtrl      byte = 0x6D
	opWindowVar      byte = 0x70
	opMessageWin     byte = 0x72
	opSystemVar      byte = 0x73
	opPopupMenu      byte = 0x74
	opVolume         byte = 0x75
	opNovelMode      byte = 0x76
	opUnknownEA      byte = 0xEA
	opTextHankaku    byte = 0xFE
	opTextZenkaku    byte = 0xFF
)

// opcode decodes one Opcode from the cursor. Tag 0x65 is implemented as
// its own independently reachable case: the reference grammar's match
// arms for 0x64 and 0x65 both keyed 0x64 literally, leaving 0x65 with no
// dispatch arm at all, which we treat as a bug in the source rather than
// behavior to reproduce (DESIGN.md's Open Question #2).
func (c *cursor) opcode(ver Version) (Opcode, error) {
	tag, err := c.u8()
	if err != nil {
		return Opcode{}, err
	}
	o := Opcode{Tag: tag}

	switch {
	case tag == opWaitMouse, tag == opNewline, tag == opWaitMouseText, tag == opUnknown0x65,
		tag >= opUnknownNLo && tag <= opUnknownNHi:
		// No payload.
	case tag == opTextWin:
		o.TextWin, err = c.textWinCmd()
	case tag == opGrp:
		o.Grp, err = c.grpCmd()
	case tag == opSnd:
		o.Snd, err = c.sndCmd()
	case tag == opDrawValText:
		o.Text, err = c.sceneFormattedText()
	case tag == opFade:
		o.Fade, err = c.fadeCmd()
	case tag == opCondition:
		o.Condition, err = c.conditions()
		if err == nil {
			o.ConditionPos, err = c.pos_()
		}
	case tag == opJumpToScene:
		o.JumpToScene, err = c.jumpToSceneCmd()
	case tag == opScreenShake:
		o.ScreenShake, err = c.screenShakeCmd()
	case tag == opWait:
		o.Wait, err = c.waitCmd()
	case tag == opCall, tag == opJump:
		o.Pos, err = c.pos_()
	case tag == opTableCall, tag == opTableJump:
		o.Table, err = c.tableCmd()
	case tag == opReturn:
		o.Ret, err = c.retCmd()
	case tag == opScenarioMenu1, tag == opScenarioMenu2:
		o.ScenarioMenu, err = c.scenarioMenuCmd(tag)
	case tag == opTextRank:
		o.TextRank, err = c.textRankCmd()
	case tag == opSetFlag, tag == opCopyFlag, tag == opSetValLiteral, tag == opSetValRandom,
		tag >= opArithLo && tag <= opArithHi, tag >= opArithSelfLo && tag <= opArithSelfHi:
		o.BinVal, err = c.binValCmd()
	case tag == opSetFlagRandom, tag == opUnknownEA:
		o.UnaryVal, err = c.unaryValCmd()
	case tag == opChoice:
		o.Choice, err = c.choiceCmd()
	case tag == opString:
		o.Str, err = c.stringCmd()
	case tag == opSetMulti:
		o.SetMulti, err = c.setMultiCmd()
	case tag == opSystem:
		o.System, err = c.systemCmd()
	case tag == opName:
		o.Name, err = c.nameCmd()
	case tag == opBufferRegion:
		o.BufferRegion, err = c.bufferRegionGrpCmd()
	case tag == opBufferGrp:
		o.BufferGrp, err = c.bufferGrpCmd(ver)
	case tag == opFlashGrp:
		o.FlashGrp, err = c.flashGrpCmd()
	case tag == opMultiPdt:
		o.MultiPdt, err = c.multiPdtCmd()
	case tag == opAreaBuffer:
		o.AreaBuffer, err = c.areaBufferCmd()
	case tag == opMouseCtrl:
		o.MouseCtrl, err = c.mouseCtrlCmd()
	case tag == opWindowVar:
		o.WindowVar, err = c.windowVarCmd()
	case tag == opMessageWin:
		o.MessageWin, err = c.messageWinCmd()
	case tag == opSystemVar:
		o.SystemVar, err = c.systemVarCmd()
	case tag == opPopupMenu:
		o.PopupMenu, err = c.popupMenuCmd()
	case tag == opVolume:
		o.Volume, err = c.volumeCmd()
	case tag == opNovelMode:
		o.NovelMode, err = c.novelModeCmd()
	case tag == opTextHankaku, tag == opTextZenkaku:
		o.TextIdx, err = c.textIndexCmd(ver)
	default:
		return Opcode{}, unknownTag("opcode", tag)
	}
	if err != nil {
		return Opcode{}, err
	}

	return o, nil
}

func (w *writer) opcode(o Opcode) *writer {
	w.u8(o.Tag)
	tag := o.Tag

	switch {
	case tag == opWaitMouse, tag == opNewline, tag == opWaitMouseText, tag == opUnknown0x65,
		tag >= opUnknownNLo && tag <= opUnknownNHi:
	case tag == opTextWin:
		w.textWinCmd(o.TextWin)
	case tag == opGrp:
		w.grpCmd(o.Grp)
	case tag == opSnd:
		w.sndCmd(o.Snd)
	case tag == opDrawValText:
		w.sceneFormattedText(o.Text)
	case tag == opFade:
		w.fadeCmd(o.Fade)
	case tag == opCondition:
		w.conditions(o.Condition).pos_(o.ConditionPos)
	case tag == opJumpToScene:
		w.jumpToSceneCmd(o.JumpToScene)
	case tag == opScreenShake:
		w.screenShakeCmd(o.ScreenShake)
	case tag == opWait:
		w.waitCmd(o.Wait)
	case tag == opCall, tag == opJump:
		w.pos_(o.Pos)
	case tag == opTableCall, tag == opTableJump:
		w.tableCmd(o.Table)
	case tag == opReturn:
		w.retCmd(o.Ret)
	case tag == opScenarioMenu1, tag == opScenarioMenu2:
		w.scenarioMenuCmd(o.ScenarioMenu)
	case tag == opTextRank:
		w.textRankCmd(o.TextRank)
	case tag == opSetFlag, tag == opCopyFlag, tag == opSetValLiteral, tag == opSetValRandom,
		tag >= opArithLo && tag <= opArithHi, tag >= opArithSelfLo && tag <= opArithSelfHi:
		w.binValCmd(o.BinVal)
	case tag == opSetFlagRandom, tag == opUnknownEA:
		w.unaryValCmd(o.UnaryVal)
	case tag == opChoice:
		w.choiceCmd(o.Choice)
	case tag == opString:
		w.stringCmd(o.Str)
	case tag == opSetMulti:
		w.setMultiCmd(o.SetMulti)
	case tag == opSystem:
		w.systemCmd(o.System)
	case tag == opName:
		w.nameCmd(o.Name)
	case tag == opBufferRegion:
		w.bufferRegionGrpCmd(o.BufferRegion)
	case tag == opBufferGrp:
		w.bufferGrpCmd(o.BufferGrp)
	case tag == opFlashGrp:
		w.flashGrpCmd(o.FlashGrp)
	case tag == opMultiPdt:
		w.multiPdtCmd(o.MultiPdt)
	case tag == opAreaBuffer:
		w.areaBufferCmd(o.AreaBuffer)
	case tag == opMouseCtrl:
		w.mouseCtrlCmd(o.MouseCtrl)
	case tag == opWindowVar:
		w.windowVarCmd(o.WindowVar)
	case tag == opMessageWin:
		w.messageWinCmd(o.MessageWin)
	case tag == opSystemVar:
		w.systemVarCmd(o.SystemVar)
	case tag == opPopupMenu:
		w.popupMenuCmd(o.PopupMenu)
	case tag == opVolume:
		w.volumeCmd(o.Volume)
	case tag == opNovelMode:
		w.novelModeCmd(o.NovelMode)
	case tag == opTextHankaku, tag == opTextZenkaku:
		w.textIndexCmd(o.TextIdx)
	}

	return w
}

// ByteSize returns the encoded length of o, including its tag byte.
func (o Opcode) ByteSize() (int, error) {
	n := 1
	tag := o.Tag

	switch {
	case tag == opWaitMouse, tag == opNewline, tag == opWaitMouseText, tag == opUnknown0x65,
		tag >= opUnknownNLo && tag <= opUnknownNHi:
	case tag == opTextWin:
		n += textWinCmdSize(o.TextWin)
	case tag == opGrp:
		sz, err := grpCmdSize(o.Grp)
		if err != nil {
			return 0, err
		}
		n += sz
	case tag == opSnd:
		sz, err := sndCmdSize(o.Snd)
		if err != nil {
			return 0, err
		}
		n += sz
	case tag == opDrawValText:
		sz, err := sceneFormattedTextSize(o.Text)
		if err != nil {
			return 0, err
		}
		n += sz
	case tag == opFade:
		n += fadeCmdSize(o.Fade)
	case tag == opCondition:
		n += conditionsSize(o.Condition) + 4
	case tag == opJumpToScene:
		n += jumpToSceneCmdSize(o.JumpToScene)
	case tag == opScreenShake:
		n += screenShakeCmdSize(o.ScreenShake)
	case tag == opWait:
		n += waitCmdSize(o.Wait)
	case tag == opCall, tag == opJump:
		n += 4
	case tag == opTableCall, tag == opTableJump:
		n += tableCmdSize(o.Table)
	case tag == opReturn:
		n += retCmdSize(o.Ret)
	case tag == opScenarioMenu1, tag == opScenarioMenu2:
		sz, err := scenarioMenuCmdSize(o.ScenarioMenu)
		if err != nil {
			return 0, err
		}
		n += sz
	case tag == opTextRank:
		n += textRankCmdSize(o.TextRank)
	case tag == opSetFlag, tag == opCopyFlag, tag == opSetValLiteral, tag == opSetValRandom,
		tag >= opArithLo && tag <= opArithHi, tag >= opArithSelfLo && tag <= opArithSelfHi:
		n += binValCmdSize(o.BinVal)
	case tag == opSetFlagRandom, tag == opUnknownEA:
		n += unaryValCmdSize(o.UnaryVal)
	case tag == opChoice:
		sz, err := choiceCmdSize(o.Choice)
		if err != nil {
			return 0, err
		}
		n += sz
	case tag == opString:
		sz, err := stringCmdSize(o.Str)
		if err != nil {
			return 0, err
		}
		n += sz
	case tag == opSetMulti:
		n += setMultiCmdSize(o.SetMulti)
	case tag == opSystem:
		n += systemCmdSize(o.System)
	case tag == opName:
		sz, err := nameCmdSize(o.Name)
		if err != nil {
			return 0, err
		}
		n += sz
	case tag == opBufferRegion:
		n += bufferRegionGrpCmdSize(o.BufferRegion)
	case tag == opBufferGrp:
		n += bufferGrpCmdSize(o.BufferGrp)
	case tag == opFlashGrp:
		n += flashGrpCmdSize(o.FlashGrp)
	case tag == opMultiPdt:
		sz, err := multiPdtCmdSize(o.MultiPdt)
		if err != nil {
			return 0, err
		}
		n += sz
	case tag == opAreaBuffer:
		n += areaBufferCmdSize(o.AreaBuffer)
	case tag == opMouseCtrl:
		n += mouseCtrlCmdSize(o.MouseCtrl)
	case tag == opWindowVar:
		n += windowVarCmdSize(o.WindowVar)
	case tag == opMessageWin:
		n += messageWinCmdSize(o.MessageWin)
	case tag == opSystemVar:
		n += systemVarCmdSize(o.SystemVar)
	case tag == opPopupMenu:
		n += popupMenuCmdSize(o.PopupMenu)
	case tag == opVolume:
		n += volumeCmdSize(o.Volume)
	case tag == opNovelMode:
		n += novelModeCmdSize(o.NovelMode)
	case tag == opTextHankaku, tag == opTextZenkaku:
		sz, err := textIndexCmdSize(o.TextIdx)
		if err != nil {
			return 0, err
		}
		n += sz
	}

	return n, nil
}

// Parse decodes one Opcode from data at the given version, returning the
// opcode and the number of bytes consumed.
func Parse(data []byte, ver Version) (Opcode, int, error) {
	c := newCursor(data)
	o, err := c.opcode(ver)
	if err != nil {
		return Opcode{}, 0, err
	}

	return o, c.pos, nil
}

// Write encodes o to its binary form.
func Write(o Opcode) ([]byte, error) {
	w := &writer{}
	w.opcode(o)

	return w.bytes()
}
