package archive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruin0x11/adieu-go/errs"
)

// TestArchiveRoundTrip builds an archive from two entries, finalizes
// offsets, writes it, and verifies Parse recovers the same entries and
// decompressed payloads.
func TestArchiveRoundTrip(t *testing.T) {
	a := New()
	require.NoError(t, a.AddEntry("SCENE1.TPC", []byte("the quick brown fox jumps over the lazy dog")))
	require.NoError(t, a.AddEntry("SCENE2.TPC", []byte("abcabcabcabcabcabc")))
	require.NoError(t, a.Finalize())

	data, err := Write(a)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	require.Equal(t, "SCENE1.TPC", got.Entries[0].Filename)
	require.Equal(t, "SCENE2.TPC", got.Entries[1].Filename)
	require.Equal(t, a.Entries[0].Offset, got.Entries[0].Offset)
	require.Equal(t, a.Entries[1].Offset, got.Entries[1].Offset)

	plain0, err := Decompress(got.Data[0].Payload, int(got.Data[0].OriginalSize))
	require.NoError(t, err)
	require.Equal(t, "the quick brown fox jumps over the lazy dog", string(plain0))

	plain1, err := Decompress(got.Data[1].Payload, int(got.Data[1].OriginalSize))
	require.NoError(t, err)
	require.Equal(t, "abcabcabcabcabcabc", string(plain1))
}

// TestArchiveInconsistentCounts verifies Write refuses an archive whose
// entry and blob lists disagree in length.
func TestArchiveInconsistentCounts(t *testing.T) {
	a := New()
	require.NoError(t, a.AddEntry("ONE.TPC", []byte("x")))
	a.Data = a.Data[:0]

	_, err := Write(a)
	require.ErrorIs(t, err, errs.ErrInconsistentArchive)
}

// TestArchiveTrailingBytes verifies bytes left over after the last blob
// are rejected.
func TestArchiveTrailingBytes(t *testing.T) {
	a := New()
	require.NoError(t, a.AddEntry("ONE.TPC", []byte("hello")))
	require.NoError(t, a.Finalize())

	data, err := Write(a)
	require.NoError(t, err)

	data = append(data, 0x00)
	_, err = Parse(data)
	require.ErrorIs(t, err, errs.ErrTrailingBytes)
}

// TestCompressDecompressRoundTrip exercises the real match-finding
// encoder against data with repeated runs.
func TestCompressDecompressRoundTrip(t *testing.T) {
	input := []byte("hello world, hello world, this is a test string for lz77 compression testing")

	compressed := Compress(input)
	got, err := Decompress(compressed, len(input))
	require.NoError(t, err)
	require.Equal(t, input, got)
}

// TestDecompressAllLiteralStream verifies the decompressor accepts the
// reference implementation's trivial stub encoding: a flag byte of 0xFF
// (every bit set) followed by that many literal bytes, repeated.
func TestDecompressAllLiteralStream(t *testing.T) {
	literal := []byte("AVG32TEST") // 9 bytes: one full flag group plus one extra
	stream := []byte{0xFF}
	stream = append(stream, literal[:8]...)
	stream = append(stream, 0xFF)
	stream = append(stream, literal[8])

	got, err := Decompress(stream, len(literal))
	require.NoError(t, err)
	require.Equal(t, literal, got)
}

// TestDecompressUnexpectedEOF verifies a truncated stream is rejected
// rather than silently returning a short result.
func TestDecompressUnexpectedEOF(t *testing.T) {
	_, err := Decompress([]byte{0xFF, 'a'}, 9)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}
