package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruin0x11/adieu-go/archive"
	"github.com/ruin0x11/adieu-go/format"
	"github.com/ruin0x11/adieu-go/label"
	"github.com/ruin0x11/adieu-go/opcode"
	"github.com/ruin0x11/adieu-go/scene"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// TestRepackUnpackRoundTrip builds a source directory, repacks it into an
// archive, unpacks the result, and checks the extracted files match.
func TestRepackUnpackRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "SCENE1.TXT"), []byte("hello hello hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "SCENE2.TXT"), []byte("world"), 0o644))

	archivePath := filepath.Join(t.TempDir(), "out.dat")
	log := discardLogger()
	require.NoError(t, runRepack(log, []string{"-o", archivePath, srcDir}))

	extractDir := t.TempDir()
	require.NoError(t, runUnpack(log, []string{"-o", extractDir, archivePath}))

	got1, err := os.ReadFile(filepath.Join(extractDir, "SCENE1.TXT"))
	require.NoError(t, err)
	require.Equal(t, "hello hello hello", string(got1))

	got2, err := os.ReadFile(filepath.Join(extractDir, "SCENE2.TXT"))
	require.NoError(t, err)
	require.Equal(t, "world", string(got2))
}

// TestUnpackRaw verifies -r extracts the compressed payload untouched.
func TestUnpackRaw(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "A.TXT"), []byte("aaaaaaaaaaaaaaaa"), 0o644))

	archivePath := filepath.Join(t.TempDir(), "out.dat")
	log := discardLogger()
	require.NoError(t, runRepack(log, []string{"-o", archivePath, srcDir}))

	extractDir := t.TempDir()
	require.NoError(t, runUnpack(log, []string{"-o", extractDir, "-r", archivePath}))

	raw, err := os.ReadFile(filepath.Join(extractDir, "A.TXT"))
	require.NoError(t, err)

	decompressed, err := archive.Decompress(raw, 16)
	require.NoError(t, err)
	require.Equal(t, "aaaaaaaaaaaaaaaa", string(decompressed))
}

// TestDisasmAsmRoundTrip builds a tiny scene with a forward jump, writes
// it to disk, disassembles it to JSON, reassembles from that JSON, and
// checks the reassembled bytes match the original.
func TestDisasmAsmRoundTrip(t *testing.T) {
	s := scene.Scene{
		Header: scene.Header{CounterStart: 1},
		Opcodes: []opcode.Opcode{
			{Tag: 0x01},                    // WaitMouse, size 1
			{Tag: 0x1C, Pos: format.Off(6)}, // Jump -> offset 6
			{Tag: 0x02},                    // Newline, size 1, lands at offset 6
		},
	}

	data, err := scene.Write(s)
	require.NoError(t, err)

	scenePath := filepath.Join(t.TempDir(), "scene.bin")
	require.NoError(t, os.WriteFile(scenePath, data, 0o644))

	jsonPath := filepath.Join(t.TempDir(), "scene.json")
	log := discardLogger()
	require.NoError(t, runDisasm(log, []string{"-o", jsonPath, scenePath}))

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var resolved label.Resolved
	require.NoError(t, json.Unmarshal(raw, &resolved))
	require.Len(t, resolved.Labels, 2)

	outPath := filepath.Join(t.TempDir(), "reassembled.bin")
	require.NoError(t, runAsm(log, []string{"-o", outPath, jsonPath}))

	reassembled, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, data, reassembled)
}

// TestRunUnpackMissingArg verifies the subcommand rejects a missing
// archive argument rather than panicking.
func TestRunUnpackMissingArg(t *testing.T) {
	err := runUnpack(discardLogger(), nil)
	require.Error(t, err)
}

// TestLogLevel verifies ADIEU_LOG_LEVEL selects the expected slog level.
func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for val, want := range cases {
		t.Setenv("ADIEU_LOG_LEVEL", val)
		require.Equal(t, want, logLevel())
	}
}
