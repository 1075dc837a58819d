// Package archive implements the PACL/PACK container format: a
// directory of fixed-width entries followed by a list of PACK-tagged,
// LZ77-compressed blobs (spec §4.7).
package archive

import (
	"bytes"
	"fmt"

	"github.com/ruin0x11/adieu-go/errs"
	"github.com/ruin0x11/adieu-go/internal/sjis"
)

const (
	archiveTag   = "PACL"
	blobTag      = "PACK"
	dirBlockSize = 0x0C
	entryHeaderSize = 0x10 // PACK tag + reserved + orgsize + archive_size
	entryRecordSize = 0x10 + sjis.FilenameSize
)

// ArchiveEntry is one directory record: a 16-byte zero-padded Shift_JIS
// filename, the blob's byte offset into the container, its compressed
// size (including the blob's own 16-byte header), its original
// uncompressed size, and an opaque 4-byte flag (spec §3).
type ArchiveEntry struct {
	Filename     string
	Offset       uint32
	ArchiveSize  uint32
	OriginalSize uint32
	Flag         uint32
}

// ArchiveData is one compressed blob: its own PACK header plus the
// compressed payload (spec §3).
type ArchiveData struct {
	Reserved     uint32
	OriginalSize uint32
	ArchiveSize  uint32
	Payload      []byte // length == ArchiveSize - entryHeaderSize
}

// Archive is the full container: two opaque 0x0C preamble blocks, a
// parallel list of entries and blobs, entry i describing blob i.
type Archive struct {
	Preamble1 [dirBlockSize]byte
	Preamble2 [dirBlockSize]byte
	Entries   []ArchiveEntry
	Data      []ArchiveData
}

// New returns an empty Archive ready for AddEntry calls.
func New() Archive {
	return Archive{}
}

// AddEntry compresses data, appends a directory entry for it and the
// corresponding blob. ArchiveSize/Offset are placeholders until
// Finalize recomputes them.
func (a *Archive) AddEntry(filename string, data []byte) error {
	if _, err := sjis.WriteFilename(filename); err != nil {
		return err
	}

	compressed := Compress(data)
	blob := ArchiveData{
		OriginalSize: uint32(len(data)),
		ArchiveSize:  uint32(entryHeaderSize + len(compressed)),
		Payload:      compressed,
	}

	a.Entries = append(a.Entries, ArchiveEntry{
		Filename:     filename,
		ArchiveSize:  blob.ArchiveSize,
		OriginalSize: blob.OriginalSize,
		Flag:         1,
	})
	a.Data = append(a.Data, blob)

	return nil
}

// Finalize recomputes every entry's Offset field as the running byte sum
// starting immediately after the directory (spec §4.7, §3's invariant on
// entry[i].offset). It must be called before Write.
func (a *Archive) Finalize() error {
	if len(a.Entries) != len(a.Data) {
		return errs.ErrInconsistentArchive
	}

	dirSize := uint32(len(archiveTag) + dirBlockSize + 4 + dirBlockSize + len(a.Entries)*entryRecordSize)
	pos := dirSize
	for i := range a.Entries {
		a.Entries[i].Offset = pos
		pos += a.Entries[i].ArchiveSize
	}

	return nil
}

// Parse decodes a full Archive from data.
func Parse(data []byte) (Archive, error) {
	c := &cursor{data: data}

	tag, err := c.take(len(archiveTag))
	if err != nil {
		return Archive{}, err
	}
	if string(tag) != archiveTag {
		return Archive{}, fmt.Errorf("%w: expected %q", errs.ErrInvalidMagic, archiveTag)
	}

	var a Archive
	pre1, err := c.take(dirBlockSize)
	if err != nil {
		return Archive{}, err
	}
	copy(a.Preamble1[:], pre1)

	count, err := c.u32()
	if err != nil {
		return Archive{}, err
	}

	pre2, err := c.take(dirBlockSize)
	if err != nil {
		return Archive{}, err
	}
	copy(a.Preamble2[:], pre2)

	a.Entries = make([]ArchiveEntry, count)
	for i := range a.Entries {
		if a.Entries[i], err = c.archiveEntry(); err != nil {
			return Archive{}, err
		}
	}

	a.Data = make([]ArchiveData, count)
	for i := range a.Data {
		if a.Data[i], err = c.archiveData(); err != nil {
			return Archive{}, err
		}
	}

	if c.pos != len(c.data) {
		return Archive{}, errs.ErrTrailingBytes
	}

	return a, nil
}

// Write encodes a to its binary form. Callers must call Finalize first
// if entries were added via AddEntry.
func Write(a Archive) ([]byte, error) {
	if len(a.Entries) != len(a.Data) {
		return nil, errs.ErrInconsistentArchive
	}

	w := &writer{}
	w.raw([]byte(archiveTag)).raw(a.Preamble1[:]).u32(uint32(len(a.Entries))).raw(a.Preamble2[:])
	for _, e := range a.Entries {
		w.archiveEntry(e)
	}
	for _, d := range a.Data {
		w.archiveData(d)
	}

	return w.bytes()
}

type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, errs.ErrUnexpectedEOF
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

func (c *cursor) archiveEntry() (ArchiveEntry, error) {
	nameBytes, err := c.take(sjis.FilenameSize)
	if err != nil {
		return ArchiveEntry{}, err
	}
	name, err := sjis.ParseFilename(nameBytes)
	if err != nil {
		return ArchiveEntry{}, err
	}

	offset, err := c.u32()
	if err != nil {
		return ArchiveEntry{}, err
	}
	archiveSize, err := c.u32()
	if err != nil {
		return ArchiveEntry{}, err
	}
	originalSize, err := c.u32()
	if err != nil {
		return ArchiveEntry{}, err
	}
	flag, err := c.u32()
	if err != nil {
		return ArchiveEntry{}, err
	}

	return ArchiveEntry{
		Filename:     name,
		Offset:       offset,
		ArchiveSize:  archiveSize,
		OriginalSize: originalSize,
		Flag:         flag,
	}, nil
}

func (c *cursor) archiveData() (ArchiveData, error) {
	tag, err := c.take(len(blobTag))
	if err != nil {
		return ArchiveData{}, err
	}
	if string(tag) != blobTag {
		return ArchiveData{}, fmt.Errorf("%w: expected %q", errs.ErrInvalidMagic, blobTag)
	}

	reserved, err := c.u32()
	if err != nil {
		return ArchiveData{}, err
	}
	orgSize, err := c.u32()
	if err != nil {
		return ArchiveData{}, err
	}
	archiveSize, err := c.u32()
	if err != nil {
		return ArchiveData{}, err
	}
	if archiveSize < entryHeaderSize {
		return ArchiveData{}, fmt.Errorf("%w: archive_size %d below header size", errs.ErrSizeMismatch, archiveSize)
	}

	payload, err := c.take(int(archiveSize) - entryHeaderSize)
	if err != nil {
		return ArchiveData{}, err
	}

	return ArchiveData{
		Reserved:     reserved,
		OriginalSize: orgSize,
		ArchiveSize:  archiveSize,
		Payload:      bytes.Clone(payload),
	}, nil
}

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

func (w *writer) raw(b []byte) *writer {
	w.buf.Write(b)

	return w
}

func (w *writer) u32(v uint32) *writer {
	var tmp [4]byte
	tmp[0], tmp[1], tmp[2], tmp[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)

	return w.raw(tmp[:])
}

func (w *writer) archiveEntry(e ArchiveEntry) *writer {
	name, err := sjis.WriteFilename(e.Filename)
	if err != nil {
		return w.fail(err)
	}

	return w.raw(name).u32(e.Offset).u32(e.ArchiveSize).u32(e.OriginalSize).u32(e.Flag)
}

func (w *writer) archiveData(d ArchiveData) *writer {
	return w.raw([]byte(blobTag)).u32(d.Reserved).u32(d.OriginalSize).u32(d.ArchiveSize).raw(d.Payload)
}

func (w *writer) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	return w.buf.Bytes(), nil
}
