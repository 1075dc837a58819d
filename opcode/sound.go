package opcode

// SndCmd is Opcode tag 0x0E's sub-command enum. Tag 0x38 reproduces the
// reference implementation's mislabeling: it parses to WavStop rather
// than a hypothetical WavStop3, and WavStop3 itself is not a reachable
// parse target (spec's Open Question on SndCmd, resolved to match
// reference behavior exactly).
type SndCmd struct {
	Tag    byte
	File   SceneText
	Fields ValRecord
}

const (
	sndBgmPlay               byte = 0x01
	sndBgmPlayLoop           byte = 0x02
	sndBgmStop               byte = 0x03
	sndBgmFadeOut            byte = 0x04
	sndBgmFadeIn             byte = 0x05
	sndBgmWait               byte = 0x06
	sndSePlay                byte = 0x10
	sndSePlayLoop            byte = 0x11
	sndSeStop                byte = 0x12
	sndSeWait                byte = 0x13
	sndSeStopAll             byte = 0x14
	sndVoicePlay             byte = 0x20
	sndVoiceStop             byte = 0x21
	sndVoiceWait             byte = 0x22
	sndWavPlay               byte = 0x30
	sndWavPlayLoop           byte = 0x31
	sndWavStop1              byte = 0x32
	sndWavWait               byte = 0x33
	sndWavStop2              byte = 0x34
	sndWavVolume             byte = 0x35
	sndWavPlayChannel        byte = 0x36
	sndWavStopChannel        byte = 0x37
	sndWavStop               byte = 0x38 // also declared WavStop3 in the reference enum; unreachable by parse.
	sndMoviePlay             byte = 0x50 // also the key under which MovieWait2/MovieWaitCancelable2 were declared; unreachable.
	sndMovieStop             byte = 0x51
	sndMovieWait             byte = 0x52
	sndCdPlay                byte = 0x60
	sndCdStop                byte = 0x61
	sndCdWait                byte = 0x62
	sndMovieWait2            byte = 0xF0 // write-only: never produced by parse per reference dispatch order.
	sndMovieWaitCancelable2  byte = 0xF1 // write-only: never produced by parse per reference dispatch order.
)

func (c *cursor) sndCmd() (SndCmd, error) {
	tag, err := c.u8()
	if err != nil {
		return SndCmd{}, err
	}
	s := SndCmd{Tag: tag}

	switch tag {
	case sndBgmPlay, sndBgmPlayLoop:
		if s.File, err = c.sceneText(); err != nil {
			return SndCmd{}, err
		}
		if s.Fields, err = c.valRecord(1); err != nil { // volume
			return SndCmd{}, err
		}
	case sndBgmStop, sndBgmWait:
	case sndBgmFadeOut, sndBgmFadeIn:
		if s.Fields, err = c.valRecord(2); err != nil { // target volume, steptime
			return SndCmd{}, err
		}
	case sndSePlay, sndSePlayLoop:
		if s.File, err = c.sceneText(); err != nil {
			return SndCmd{}, err
		}
		if s.Fields, err = c.valRecord(2); err != nil { // channel, volume
			return SndCmd{}, err
		}
	case sndSeStop, sndSeWait:
		if s.Fields, err = c.valRecord(1); err != nil { // channel
			return SndCmd{}, err
		}
	case sndSeStopAll:
	case sndVoicePlay:
		if s.File, err = c.sceneText(); err != nil {
			return SndCmd{}, err
		}
	case sndVoiceStop, sndVoiceWait:
	case sndWavPlay, sndWavPlayLoop:
		if s.File, err = c.sceneText(); err != nil {
			return SndCmd{}, err
		}
		if s.Fields, err = c.valRecord(2); err != nil { // channel, volume
			return SndCmd{}, err
		}
	case sndWavStop1, sndWavStop2, sndWavStop:
		if s.Fields, err = c.valRecord(1); err != nil { // channel
			return SndCmd{}, err
		}
	case sndWavWait:
		if s.Fields, err = c.valRecord(1); err != nil { // channel
			return SndCmd{}, err
		}
	case sndWavVolume:
		if s.Fields, err = c.valRecord(2); err != nil { // channel, volume
			return SndCmd{}, err
		}
	case sndWavPlayChannel:
		if s.File, err = c.sceneText(); err != nil {
			return SndCmd{}, err
		}
		if s.Fields, err = c.valRecord(3); err != nil { // channel, volume, loop flag
			return SndCmd{}, err
		}
	case sndWavStopChannel:
		if s.Fields, err = c.valRecord(1); err != nil { // channel
			return SndCmd{}, err
		}
	case sndMoviePlay:
		if s.File, err = c.sceneText(); err != nil {
			return SndCmd{}, err
		}
		if s.Fields, err = c.valRecord(2); err != nil { // x, y
			return SndCmd{}, err
		}
	case sndMovieStop, sndMovieWait:
	case sndCdPlay:
		if s.Fields, err = c.valRecord(1); err != nil { // track
			return SndCmd{}, err
		}
	case sndCdStop, sndCdWait:
	default:
		return SndCmd{}, unknownTag("snd_cmd", tag)
	}

	return s, nil
}

func (w *writer) sndCmd(s SndCmd) *writer {
	w.u8(s.Tag)
	switch s.Tag {
	case sndBgmPlay, sndBgmPlayLoop, sndSePlay, sndSePlayLoop, sndWavPlay, sndWavPlayLoop,
		sndWavPlayChannel, sndMoviePlay:
		w.sceneText(s.File).valRecord(s.Fields)
	case sndVoicePlay:
		w.sceneText(s.File)
	case sndBgmStop, sndBgmWait, sndSeStopAll, sndVoiceStop, sndVoiceWait,
		sndMovieStop, sndMovieWait, sndCdStop, sndCdWait:
	default:
		w.valRecord(s.Fields)
	}

	return w
}

func sndCmdSize(s SndCmd) (int, error) {
	n := 1

	switch s.Tag {
	case sndBgmPlay, sndBgmPlayLoop, sndSePlay, sndSePlayLoop, sndWavPlay, sndWavPlayLoop,
		sndWavPlayChannel, sndMoviePlay:
		sz, err := sceneTextSize(s.File)
		if err != nil {
			return 0, err
		}
		n += sz + valRecordSize(s.Fields)
	case sndVoicePlay:
		sz, err := sceneTextSize(s.File)
		if err != nil {
			return 0, err
		}
		n += sz
	case sndBgmStop, sndBgmWait, sndSeStopAll, sndVoiceStop, sndVoiceWait,
		sndMovieStop, sndMovieWait, sndCdStop, sndCdWait:
	default:
		n += valRecordSize(s.Fields)
	}

	return n, nil
}
