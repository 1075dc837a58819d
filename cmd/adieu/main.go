// Command adieu unpacks and repacks PACL archives, and disassembles and
// reassembles the scene bytecode they contain.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruin0x11/adieu-go/archive"
	"github.com/ruin0x11/adieu-go/label"
	"github.com/ruin0x11/adieu-go/opcode"
	"github.com/ruin0x11/adieu-go/scene"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "unpack":
		err = runUnpack(log, os.Args[2:])
	case "repack":
		err = runRepack(log, os.Args[2:])
	case "disasm":
		err = runDisasm(log, os.Args[2:])
	case "asm":
		err = runAsm(log, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: adieu <unpack|repack|disasm|asm> [flags] <file>")
}

// logLevel reads ADIEU_LOG_LEVEL (debug/info/warn/error, default info).
func logLevel() slog.Level {
	switch os.Getenv("ADIEU_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runUnpack(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ExitOnError)
	outDir := fs.String("o", ".", "directory to extract entries into")
	raw := fs.Bool("r", false, "extract compressed payloads as-is, skipping decompression")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("unpack: expected exactly one archive path")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	a, err := archive.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing archive: %w", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	for i, entry := range a.Entries {
		payload := a.Data[i].Payload
		if !*raw {
			payload, err = archive.Decompress(payload, int(a.Data[i].OriginalSize))
			if err != nil {
				return fmt.Errorf("decompressing %s: %w", entry.Filename, err)
			}
		}

		dest := filepath.Join(*outDir, entry.Filename)
		if err := os.WriteFile(dest, payload, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		log.Info("extracted entry", "filename", entry.Filename, "size", len(payload))
	}

	return nil
}

func runRepack(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("repack", flag.ExitOnError)
	out := fs.String("o", "archive.dat", "output archive path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("repack: expected exactly one source directory")
	}

	entries, err := os.ReadDir(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading source dir: %w", err)
	}

	a := archive.New()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(fs.Arg(0), entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := a.AddEntry(entry.Name(), data); err != nil {
			return fmt.Errorf("adding %s: %w", entry.Name(), err)
		}
		log.Info("added entry", "filename", entry.Name(), "size", len(data))
	}

	if err := a.Finalize(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}

	encoded, err := archive.Write(a)
	if err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	return os.WriteFile(*out, encoded, 0o644)
}

func runDisasm(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("disasm", flag.ExitOnError)
	out := fs.String("o", "", "output JSON path (default: stdout)")
	ver := fs.Uint("version", uint(opcode.DefaultVersion), "SYS_VERSION to parse against")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("disasm: expected exactly one scene path")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading scene: %w", err)
	}

	s, err := scene.Parse(data, opcode.Version(*ver))
	if err != nil {
		return fmt.Errorf("parsing scene: %w", err)
	}

	resolved, err := label.Disassemble(s)
	if err != nil {
		return fmt.Errorf("resolving labels: %w", err)
	}
	log.Info("disassembled scene", "labels", len(resolved.Labels))

	encoded, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	if *out == "" {
		_, err = os.Stdout.Write(append(encoded, '\n'))
		return err
	}

	return os.WriteFile(*out, encoded, 0o644)
}

func runAsm(log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	out := fs.String("o", "scene.bin", "output scene path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("asm: expected exactly one JSON path")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading json: %w", err)
	}

	var resolved label.Resolved
	if err := json.Unmarshal(data, &resolved); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}

	s, err := label.Assemble(resolved)
	if err != nil {
		return fmt.Errorf("assembling labels: %w", err)
	}

	encoded, err := scene.Write(s)
	if err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	log.Info("assembled scene", "bytes", len(encoded))

	return os.WriteFile(*out, encoded, 0o644)
}
