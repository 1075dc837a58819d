// Package sjis implements the Shift_JIS string primitives shared by the
// scene and archive codecs: null-terminated C strings and the fixed
// 16-byte zero-padded filename field.
package sjis

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/ruin0x11/adieu-go/errs"
)

// FilenameSize is the fixed width, in bytes, of an archive entry's filename field.
const FilenameSize = 16

// Decode converts Shift_JIS bytes to a UTF-8 Go string.
func Decode(b []byte) (string, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidEncoding, err)
	}

	return string(out), nil
}

// Encode converts a UTF-8 Go string to Shift_JIS bytes.
func Encode(s string) ([]byte, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEncoding, err)
	}

	return out, nil
}

// ParseCString reads a null-terminated Shift_JIS string from the front of
// data, returning the decoded string and the bytes following the terminator.
func ParseCString(data []byte) (string, []byte, error) {
	idx := bytes.IndexByte(data, 0x00)
	if idx < 0 {
		return "", nil, errs.ErrUnexpectedEOF
	}

	s, err := Decode(data[:idx])
	if err != nil {
		return "", nil, err
	}

	return s, data[idx+1:], nil
}

// WriteCString encodes s as Shift_JIS and appends a null terminator.
func WriteCString(s string) ([]byte, error) {
	enc, err := Encode(s)
	if err != nil {
		return nil, err
	}

	return append(enc, 0x00), nil
}

// CStringSize returns the number of bytes WriteCString(s) would produce.
func CStringSize(s string) (int, error) {
	enc, err := Encode(s)
	if err != nil {
		return 0, err
	}

	return len(enc) + 1, nil
}

// ParseFilename reads the fixed FilenameSize-byte archive filename field,
// decoding everything up to the first null byte and discarding the padding.
func ParseFilename(data []byte) (string, error) {
	if len(data) < FilenameSize {
		return "", errs.ErrUnexpectedEOF
	}

	idx := bytes.IndexByte(data[:FilenameSize], 0x00)
	if idx < 0 {
		idx = FilenameSize
	}

	return Decode(data[:idx])
}

// WriteFilename encodes name as Shift_JIS, null-terminates it and right-pads
// the result with zero bytes to exactly FilenameSize bytes.
func WriteFilename(name string) ([]byte, error) {
	enc, err := Encode(name)
	if err != nil {
		return nil, err
	}

	if len(enc)+1 > FilenameSize {
		return nil, fmt.Errorf("%w: %q encodes to %d bytes", errs.ErrFilenameTooLong, name, len(enc))
	}

	out := make([]byte, FilenameSize)
	copy(out, enc)
	out[len(enc)] = 0x00

	return out, nil
}
