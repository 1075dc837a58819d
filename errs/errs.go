// Package errs collects the sentinel errors returned by the codec packages.
//
// Callers use errors.Is to check for a specific failure kind; wrapping with
// fmt.Errorf("%w", ...) is used throughout the codec to attach the offset or
// tag byte that triggered the error without losing the sentinel identity.
package errs

import "errors"

var (
	// ErrInvalidMagic means a fixed tag ("TPC32", "PACL", "PACK") did not match.
	ErrInvalidMagic = errors.New("invalid magic tag")

	// ErrInvalidEncoding means a Shift_JIS decode or encode operation failed.
	ErrInvalidEncoding = errors.New("invalid shift_jis encoding")

	// ErrUnknownOpcode means an opcode tag byte had no dispatch entry.
	ErrUnknownOpcode = errors.New("unknown opcode tag")

	// ErrUnknownConditionTag means a condition list token was not a recognized tag.
	ErrUnknownConditionTag = errors.New("unknown condition tag")

	// ErrUnknownSubcommand means a nested sub-command enum saw an unrecognized tag.
	ErrUnknownSubcommand = errors.New("unknown subcommand tag")

	// ErrUnexpectedEOF means a stream ended in the middle of a fixed-shape record.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrTrailingBytes means bytes remained after the expected terminator.
	ErrTrailingBytes = errors.New("trailing bytes after terminator")

	// ErrMisalignedOpcode means the label pass found a label offset that does
	// not fall on an instruction boundary.
	ErrMisalignedOpcode = errors.New("label offset is not on an instruction boundary")

	// ErrUnknownLabel means the assemble pass referenced a label with no
	// recorded offset.
	ErrUnknownLabel = errors.New("reference to unknown label")

	// ErrLabelsAlreadyResolved means the disassemble pass was called on a
	// scene whose Pos values are already symbolic.
	ErrLabelsAlreadyResolved = errors.New("scene labels are already resolved")

	// ErrLabelsNotResolved means the assemble pass was called on a scene
	// whose Pos values are still byte offsets.
	ErrLabelsNotResolved = errors.New("scene labels are not resolved")

	// ErrFilenameTooLong means an archive entry filename does not fit in its
	// fixed 16-byte field.
	ErrFilenameTooLong = errors.New("filename does not fit in 16 bytes")

	// ErrInconsistentArchive means an archive's entry and blob counts disagree.
	ErrInconsistentArchive = errors.New("archive entry and blob counts do not match")

	// ErrSizeMismatch means a decompressed stream's length disagrees with its
	// declared original size.
	ErrSizeMismatch = errors.New("decompressed size does not match declared original size")

	// ErrUncompiledPos means a write was attempted on a Pos still carrying a
	// symbolic label instead of a byte offset.
	ErrUncompiledPos = errors.New("cannot write a symbolic-label Pos to bytes")
)
