package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(CompressBufferDefaultSize)
	bb.MustWrite([]byte("hello"))
	bb.MustWrite([]byte(" world"))
	assert.Equal(t, "hello world", string(bb.Bytes()))
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(CompressBufferDefaultSize)
	bb.MustWrite([]byte("hello"))
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), CompressBufferDefaultSize, "Reset should retain capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite(bytes.Repeat([]byte{1}, 16))
	before := bb.Cap()
	bb.Grow(1024)
	assert.Greater(t, bb.Cap(), before)
	assert.Equal(t, 16, bb.Len(), "Grow should not change length")
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.ExtendOrGrow(8)
	assert.Equal(t, 8, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 8)
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(CompressBufferDefaultSize)
	bb.MustWrite([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", out.String())
}

func TestGetPutCompressBuffer(t *testing.T) {
	bb := GetCompressBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), CompressBufferDefaultSize)

	bb.MustWrite([]byte("round trip"))
	PutCompressBuffer(bb)

	bb2 := GetCompressBuffer()
	assert.Equal(t, 0, bb2.Len(), "pooled buffer must come back reset")
	PutCompressBuffer(bb2)
}

func TestPutCompressBuffer_NilIsNoop(t *testing.T) {
	require.NotPanics(t, func() { PutCompressBuffer(nil) })
}

func TestPutCompressBuffer_DiscardsOverCapacity(t *testing.T) {
	bb := NewByteBuffer(CompressBufferMaxThreshold + 1024)
	PutCompressBuffer(bb) // must not be retained by the pool

	bb2 := GetCompressBuffer()
	assert.Less(t, bb2.Cap(), CompressBufferMaxThreshold+1024)
}
