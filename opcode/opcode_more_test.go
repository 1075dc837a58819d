package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruin0x11/adieu-go/format"
)

// TestOpcodeRoundTripTextWin covers TextWinCmd's no-payload and
// 3-field (style) branches.
func TestOpcodeRoundTripTextWin(t *testing.T) {
	o := Opcode{Tag: opTextWin, TextWin: TextWinCmd{Tag: twShow}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{
		Tag:     opTextWin,
		TextWin: TextWinCmd{Tag: twSetStyle, Fields: ValRecord{format.NewConst(1), format.NewConst(2), format.NewConst(3)}},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripGrp covers GrpCmd's file+val, effect, and indexed
// composite branches.
func TestOpcodeRoundTripGrp(t *testing.T) {
	o := Opcode{
		Tag: opGrp,
		Grp: GrpCmd{Tag: grpLoad, File: NewSceneTextLiteral("BG01.GRP"), Val: format.NewConst(1)},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	fields := make(ValRecord, 15)
	for i := range fields {
		fields[i] = format.NewConst(uint32(i))
	}
	o = Opcode{
		Tag: opGrp,
		Grp: GrpCmd{Tag: grpLoadEffect, Effect: GrpEffect{File: NewSceneTextLiteral("EFFECT.GRP"), Fields: fields}},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{
		Tag: opGrp,
		Grp: GrpCmd{
			Tag: grpLoadCompositeIndex,
			CompositeIdx: GrpCompositeIndexed{
				BaseFile: format.NewConst(2),
				Idx:      format.NewConst(0),
				Children: []GrpCompositeChild{
					{File: NewSceneTextLiteral("CHILD.GRP"), Method: GrpCompositeMethod{Tag: gcmCorner}},
				},
			},
		},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripSnd covers SndCmd's file+fields, no-payload, and
// fields-only branches.
func TestOpcodeRoundTripSnd(t *testing.T) {
	o := Opcode{
		Tag: opSnd,
		Snd: SndCmd{Tag: sndBgmPlay, File: NewSceneTextLiteral("BGM01.WAV"), Fields: ValRecord{format.NewConst(100)}},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{Tag: opSnd, Snd: SndCmd{Tag: sndBgmStop}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{Tag: opSnd, Snd: SndCmd{Tag: sndCdPlay, Fields: ValRecord{format.NewConst(3)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripFade covers FadeCmd's fixed 3-field payload.
func TestOpcodeRoundTripFade(t *testing.T) {
	o := Opcode{Tag: opFade, Fade: FadeCmd{Fields: ValRecord{format.NewConst(1), format.NewConst(2), format.NewConst(3)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripScreenShake covers ScreenShakeCmd's fixed 3-field payload.
func TestOpcodeRoundTripScreenShake(t *testing.T) {
	o := Opcode{Tag: opScreenShake, ScreenShake: ScreenShakeCmd{Fields: ValRecord{format.NewConst(4), format.NewConst(5), format.NewConst(6)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripWait covers WaitCmd's fixed and cancelable branches.
func TestOpcodeRoundTripWait(t *testing.T) {
	for _, tag := range []byte{waitFixed, waitCancelable} {
		o := Opcode{Tag: opWait, Wait: WaitCmd{Tag: tag, Val: format.NewConst(30)}}
		assertOpcodeRoundTrip(t, o, DefaultVersion)
	}
}

// TestOpcodeRoundTripRet covers the Return opcode's shared Ret payload,
// across its no-operand and operand-carrying branches.
func TestOpcodeRoundTripRet(t *testing.T) {
	o := Opcode{Tag: opReturn, Ret: RetCmd{Ret: Ret{Tag: retChoice}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{Tag: opReturn, Ret: RetCmd{Ret: Ret{Tag: retColor, Val: format.NewConst(5)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripScenarioMenu covers both scenario-menu tags with a
// labeled entry list terminated by the sentinel byte.
func TestOpcodeRoundTripScenarioMenu(t *testing.T) {
	for _, tag := range []byte{opScenarioMenu1, opScenarioMenu2} {
		o := Opcode{
			Tag: tag,
			ScenarioMenu: ScenarioMenuCmd{
				Tag: tag,
				Entries: []ScenarioMenuEntry{
					{Text: NewSceneTextLiteral("Chapter 1"), Target: format.Off(0x10)},
					{Text: NewSceneTextLiteral("Chapter 2"), Target: format.Off(0x20)},
				},
			},
		}
		assertOpcodeRoundTrip(t, o, DefaultVersion)
	}
}

// TestOpcodeRoundTripTextRank covers TextRankCmd's single Val payload.
func TestOpcodeRoundTripTextRank(t *testing.T) {
	o := Opcode{Tag: opTextRank, TextRank: TextRankCmd{Val: format.NewConst(2)}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripSetMulti covers SetMultiCmd's count-prefixed Val list.
func TestOpcodeRoundTripSetMulti(t *testing.T) {
	o := Opcode{
		Tag: opSetMulti,
		SetMulti: SetMultiCmd{
			Start:  format.NewVar(0x10),
			Values: []format.Val{format.NewConst(1), format.NewConst(2), format.NewConst(3)},
		},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripString covers StringCmd's set and compare branches.
func TestOpcodeRoundTripString(t *testing.T) {
	o := Opcode{
		Tag: opString,
		Str: StringCmd{Tag: strSet, Dest: format.NewVar(1), Src: NewSceneTextLiteral("hello")},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{
		Tag: opString,
		Str: StringCmd{Tag: strCompare, Dest: format.NewVar(1), Src: NewSceneTextLiteral("world"), Fields: ValRecord{format.NewVar(2)}},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripSystem covers SystemCmd's zero- and one-field branches.
func TestOpcodeRoundTripSystem(t *testing.T) {
	o := Opcode{Tag: opSystem, System: SystemCmd{Tag: sysTitle}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{Tag: opSystem, System: SystemCmd{Tag: sysSave, Fields: ValRecord{format.NewConst(1)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripName covers NameCmd's set and prompt branches, the
// latter terminated by the sentinel byte.
func TestOpcodeRoundTripName(t *testing.T) {
	o := Opcode{Tag: opName, Name: NameCmd{Tag: nameSet, Slot: format.NewConst(0)}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{
		Tag: opName,
		Name: NameCmd{
			Tag:  namePrompt,
			Slot: format.NewConst(0),
			Items: []NameInputItem{
				{Text: NewSceneTextLiteral("Alice")},
				{Text: NewSceneTextLiteral("Bob")},
			},
		},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripBufferRegion covers one tag from each field-count
// family of BufferRegionGrpCmd.
func TestOpcodeRoundTripBufferRegion(t *testing.T) {
	fields8 := make(ValRecord, 8)
	for i := range fields8 {
		fields8[i] = format.NewConst(uint32(i))
	}
	o := Opcode{Tag: opBufferRegion, BufferRegion: BufferRegionGrpCmd{Tag: brgClearRect, Fields: fields8}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	fields16 := make(ValRecord, 16)
	for i := range fields16 {
		fields16[i] = format.NewConst(uint32(i))
	}
	o = Opcode{Tag: opBufferRegion, BufferRegion: BufferRegionGrpCmd{Tag: brgStretchBlitFX, Fields: fields16}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripBufferGrp covers a branch with no version-gated
// flag, and both threshold sides of a branch that does carry one.
func TestOpcodeRoundTripBufferGrp(t *testing.T) {
	fields6 := ValRecord{format.NewConst(1), format.NewConst(2), format.NewConst(3), format.NewConst(4), format.NewConst(5), format.NewConst(6)}
	o := Opcode{Tag: opBufferGrp, BufferGrp: BufferGrpCmd{Tag: bgCopySamePos, Fields: fields6}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	fields8 := make(ValRecord, 8)
	for i := range fields8 {
		fields8[i] = format.NewConst(uint32(i))
	}
	gated := Opcode{
		Tag:       opBufferGrp,
		BufferGrp: BufferGrpCmd{Tag: bgCopyNewPos, Fields: fields8, HasFlag: true, Flag: format.NewConst(1)},
	}
	assertOpcodeRoundTrip(t, gated, bgCopyFlagThreshold)

	ungated := Opcode{
		Tag:       opBufferGrp,
		BufferGrp: BufferGrpCmd{Tag: bgCopyNewPos, Fields: fields8},
	}
	assertOpcodeRoundTrip(t, ungated, bgCopyFlagThreshold-1)
}

// TestOpcodeRoundTripFlashGrp covers both FlashGrpCmd field-count branches.
func TestOpcodeRoundTripFlashGrp(t *testing.T) {
	o := Opcode{Tag: opFlashGrp, FlashGrp: FlashGrpCmd{Tag: flashFillColor, Fields: ValRecord{format.NewConst(1), format.NewConst(2), format.NewConst(3), format.NewConst(4)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{Tag: opFlashGrp, FlashGrp: FlashGrpCmd{Tag: flashFlashScreen, Fields: ValRecord{format.NewConst(1), format.NewConst(2), format.NewConst(3), format.NewConst(4), format.NewConst(5)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripMultiPdt covers the slideshow and scroll-with-cancel branches.
func TestOpcodeRoundTripMultiPdt(t *testing.T) {
	o := Opcode{
		Tag: opMultiPdt,
		MultiPdt: MultiPdtCmd{
			Tag:  mpSlideshow,
			Pos:  format.NewConst(1),
			Wait: format.NewConst(2),
			Entries: []MultiPdtEntry{
				{Text: NewSceneTextLiteral("SLIDE1.PDT"), Data: format.NewConst(0)},
			},
		},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{
		Tag: opMultiPdt,
		MultiPdt: MultiPdtCmd{
			Tag:         mpScrollWithCancel,
			HasPosCmd:   true,
			PosCmd:      0x01,
			Pos:         format.NewConst(1),
			Wait:        format.NewConst(2),
			Pixel:       format.NewConst(3),
			CancelIndex: format.NewConst(4),
			Entries: []MultiPdtEntry{
				{Text: NewSceneTextLiteral("SCROLL1.PDT"), Data: format.NewConst(0)},
			},
		},
	}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripAreaBuffer covers AreaBufferCmd's fixed 5-field payload.
func TestOpcodeRoundTripAreaBuffer(t *testing.T) {
	fields := ValRecord{format.NewConst(1), format.NewConst(2), format.NewConst(3), format.NewConst(4), format.NewConst(5)}
	o := Opcode{Tag: opAreaBuffer, AreaBuffer: AreaBufferCmd{Fields: fields}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripMouseCtrl covers MouseCtrlCmd's no-payload and
// fields branches.
func TestOpcodeRoundTripMouseCtrl(t *testing.T) {
	o := Opcode{Tag: opMouseCtrl, MouseCtrl: MouseCtrlCmd{Tag: mouseShow}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{Tag: opMouseCtrl, MouseCtrl: MouseCtrlCmd{Tag: mouseSetPos, Fields: ValRecord{format.NewConst(10), format.NewConst(20)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripWindowVar covers WindowVarCmd's fixed 2-field payload.
func TestOpcodeRoundTripWindowVar(t *testing.T) {
	o := Opcode{Tag: opWindowVar, WindowVar: WindowVarCmd{Fields: ValRecord{format.NewConst(1), format.NewConst(2)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripMessageWin covers MessageWinCmd's no-payload and style branches.
func TestOpcodeRoundTripMessageWin(t *testing.T) {
	o := Opcode{Tag: opMessageWin, MessageWin: MessageWinCmd{Tag: msgHide}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)

	o = Opcode{Tag: opMessageWin, MessageWin: MessageWinCmd{Tag: msgStyle, Fields: ValRecord{format.NewConst(2)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripSystemVar covers SystemVarCmd's fixed 2-field payload.
func TestOpcodeRoundTripSystemVar(t *testing.T) {
	o := Opcode{Tag: opSystemVar, SystemVar: SystemVarCmd{Fields: ValRecord{format.NewConst(3), format.NewConst(7)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripPopupMenu covers PopupMenuCmd's single Val payload.
func TestOpcodeRoundTripPopupMenu(t *testing.T) {
	o := Opcode{Tag: opPopupMenu, PopupMenu: PopupMenuCmd{Val: format.NewConst(0x3F)}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripVolume covers VolumeCmd's fixed 2-field payload.
func TestOpcodeRoundTripVolume(t *testing.T) {
	o := Opcode{Tag: opVolume, Volume: VolumeCmd{Fields: ValRecord{format.NewConst(1), format.NewConst(100)}}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestOpcodeRoundTripNovelMode covers NovelModeCmd's single Val payload.
func TestOpcodeRoundTripNovelMode(t *testing.T) {
	o := Opcode{Tag: opNovelMode, NovelMode: NovelModeCmd{Val: format.NewConst(1)}}
	assertOpcodeRoundTrip(t, o, DefaultVersion)
}

// TestGrpCmdUnknownTag verifies an unrecognized GrpCmd sub-tag fails.
func TestGrpCmdUnknownTag(t *testing.T) {
	c := newCursor([]byte{0xFF})
	_, err := c.grpCmd()
	require.Error(t, err)
}
