package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/ruin0x11/adieu-go/errs"
	"github.com/ruin0x11/adieu-go/internal/pool"
)

const (
	minMatch = 2
	maxMatch = 17 // minMatch + 0x0F
	maxDist  = 1 << 12
)

// Decompress implements the byte-oriented LZ77 scheme of spec §4.8: an
// 8-bit flag byte read every 8 tokens selects, per bit, a literal byte
// or a 16-bit (length, distance) back-reference.
func Decompress(input []byte, orgsize int) ([]byte, error) {
	bb := pool.GetCompressBuffer()
	defer pool.PutCompressBuffer(bb)
	bb.Grow(orgsize)

	pos := 0
	var flags byte

	for i := 0; bb.Len() < orgsize; i++ {
		if i%8 == 0 {
			b, err := readByte(input, &pos)
			if err != nil {
				return nil, err
			}
			flags = b
		}

		if flags&(0x80>>uint(i%8)) != 0 {
			b, err := readByte(input, &pos)
			if err != nil {
				return nil, err
			}
			bb.MustWrite([]byte{b})
			continue
		}

		if pos+2 > len(input) {
			return nil, errs.ErrUnexpectedEOF
		}
		w := binary.LittleEndian.Uint16(input[pos : pos+2])
		pos += 2

		length := int(w&0x0F) + 2
		dist := int(w >> 4)

		for k := 0; k < length && bb.Len() < orgsize; k++ {
			srcIdx := bb.Len() - dist - 1
			if srcIdx < 0 {
				return nil, fmt.Errorf("%w: back-reference before start of output", errs.ErrSizeMismatch)
			}
			bb.MustWrite(bb.Bytes()[srcIdx : srcIdx+1])
		}
	}

	if bb.Len() != orgsize {
		return nil, errs.ErrSizeMismatch
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

func readByte(input []byte, pos *int) (byte, error) {
	if *pos >= len(input) {
		return 0, errs.ErrUnexpectedEOF
	}
	b := input[*pos]
	*pos++

	return b, nil
}

// Compress implements a real LZ77 encoder over the same bitstream
// Decompress reads, using an xxhash-keyed hash chain over 3-byte
// prefixes to find back-references (this is not how the reference
// encoder works — it emits all-literal output — but Decompress accepts
// any conforming stream, and a real encoder gets useful compression
// ratios for the archive roundtrip tests).
func Compress(input []byte) []byte {
	type token struct {
		literal bool
		bytes   []byte
	}

	var tokens []token
	chains := newMatchFinder(input)

	for i := 0; i < len(input); {
		length, dist := chains.find(i)
		if length >= minMatch {
			w := uint16(dist)<<4 | uint16(length-minMatch)
			var buf [2]byte
			binary.LittleEndian.PutUint16(buf[:], w)
			tokens = append(tokens, token{bytes: buf[:]})
			chains.advance(i, length)
			i += length
			continue
		}

		tokens = append(tokens, token{literal: true, bytes: []byte{input[i]}})
		chains.advance(i, 1)
		i++
	}

	bb := pool.GetCompressBuffer()
	defer pool.PutCompressBuffer(bb)

	for i := 0; i < len(tokens); i += 8 {
		group := tokens[i:min(i+8, len(tokens))]
		var flags byte
		for j, tok := range group {
			if tok.literal {
				flags |= 0x80 >> uint(j)
			}
		}
		bb.MustWrite([]byte{flags})
		for _, tok := range group {
			bb.MustWrite(tok.bytes)
		}
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out
}

// matchFinder is a simple hash-chain match finder keyed by xxhash of
// each 3-byte prefix, used only by Compress's optional real encoder.
type matchFinder struct {
	input []byte
	head  map[uint64]int
	prev  []int
}

func newMatchFinder(input []byte) *matchFinder {
	return &matchFinder{
		input: input,
		head:  make(map[uint64]int),
		prev:  make([]int, len(input)),
	}
}

func prefixHash(input []byte, i int) (uint64, bool) {
	if i+3 > len(input) {
		return 0, false
	}

	return xxhash.Sum64(input[i : i+3]), true
}

func (m *matchFinder) find(i int) (length, dist int) {
	h, ok := prefixHash(m.input, i)
	if !ok {
		return 0, 0
	}

	candidate, ok := m.head[h]
	tries := 0
	bestLen := 0
	bestDist := 0
	for ok && tries < 32 {
		d := i - candidate - 1
		if d < 0 || d >= maxDist {
			break
		}
		l := matchLen(m.input, candidate, i)
		if l > bestLen {
			bestLen = l
			bestDist = d
		}
		if bestLen >= maxMatch {
			break
		}
		next := m.prev[candidate]
		if next == candidate {
			break
		}
		candidate = next
		tries++
	}

	return bestLen, bestDist
}

func matchLen(input []byte, a, b int) int {
	n := 0
	for b+n < len(input) && n < maxMatch && input[a+n] == input[b+n] {
		n++
	}

	return n
}

func (m *matchFinder) advance(i, n int) {
	for k := 0; k < n; k++ {
		h, ok := prefixHash(m.input, i+k)
		if !ok {
			continue
		}
		if prev, exists := m.head[h]; exists {
			m.prev[i+k] = prev
		} else {
			m.prev[i+k] = i + k
		}
		m.head[h] = i + k
	}
}
