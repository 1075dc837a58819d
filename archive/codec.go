package archive

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionKind names a general-purpose compressor registered with
// CreateCodec/GetCodec. These never produce the PACL/PACK bitstream
// itself (that is always the bespoke codec in compress.go) — they
// exist so codec_bench_test.go can compare the bespoke LZ77 codec's
// round trip and compression ratio against established compressors over
// the same sample corpus.
type CompressionKind int

const (
	CompressionNone CompressionKind = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

// Codec compresses and decompresses a byte payload.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CreateCodec returns a fresh Codec for kind.
func CreateCodec(kind CompressionKind) (Codec, error) {
	switch kind {
	case CompressionNone:
		return noopCodec{}, nil
	case CompressionZstd:
		return zstdCodec{}, nil
	case CompressionS2:
		return s2Codec{}, nil
	case CompressionLZ4:
		return lz4Codec{}, nil
	default:
		return nil, fmt.Errorf("unsupported compression kind: %d", kind)
	}
}

var builtinCodecs = map[CompressionKind]Codec{
	CompressionNone: noopCodec{},
	CompressionZstd: zstdCodec{},
	CompressionS2:   s2Codec{},
	CompressionLZ4:  lz4Codec{},
}

// GetCodec retrieves a shared Codec instance for kind.
func GetCodec(kind CompressionKind) (Codec, error) {
	if c, ok := builtinCodecs[kind]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unsupported compression kind: %d", kind)
}

type noopCodec struct{}

func (noopCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (noopCodec) Decompress(data []byte) ([]byte, error) { return data, nil }

type s2Codec struct{}

func (s2Codec) Compress(data []byte) ([]byte, error) { return s2.Encode(nil, data), nil }
func (s2Codec) Decompress(data []byte) ([]byte, error) { return s2.Decode(nil, data) }

var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
		}

		return enc
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
		}

		return dec
	},
}

type zstdCodec struct{}

func (zstdCodec) Compress(data []byte) ([]byte, error) {
	enc := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func (zstdCodec) Decompress(data []byte) ([]byte, error) {
	dec := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}

	return out, nil
}

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

type lz4Codec struct{}

func (lz4Codec) Compress(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

func (lz4Codec) Decompress(data []byte) ([]byte, error) {
	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
