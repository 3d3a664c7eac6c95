package pod

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState struct {
	Discriminant [8]byte
	Authority    [32]byte
	Count        U64
	Bump         uint8
}

func TestView_RoundTrip(t *testing.T) {
	buf := make([]byte, SizeOf[testState]())

	w, err := View[testState](buf)
	require.NoError(t, err)

	copy(w.Discriminant[:], "counter\x00")
	w.Authority[0] = 0xab
	w.Count.Set(42)
	w.Bump = 254

	// A second view over the same buffer observes the mutation in place.
	r, err := View[testState](buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("counter\x00"), r.Discriminant[:])
	assert.EqualValues(t, 0xab, r.Authority[0])
	assert.EqualValues(t, 42, r.Count.Get())
	assert.EqualValues(t, 254, r.Bump)

	// The mutation landed in the buffer itself.
	assert.Equal(t, byte('c'), buf[0])
	assert.Equal(t, Bytes(w), buf)
}

func TestView_BufferTooSmall(t *testing.T) {
	for size := 0; size < SizeOf[testState](); size++ {
		_, err := View[testState](make([]byte, size))
		assert.True(t, errors.Is(err, ErrBufferTooSmall), "size %d", size)
	}
}

func TestView_TrailingBytesAllowed(t *testing.T) {
	buf := make([]byte, SizeOf[testState]()+100)
	_, err := View[testState](buf)
	assert.NoError(t, err)
}

func TestView_Misaligned(t *testing.T) {
	type aligned struct {
		Value uint64
	}

	backing := make([]byte, 32)
	_, err := View[aligned](backing[1:])
	assert.True(t, errors.Is(err, ErrMisaligned))

	// Byte-array layouts have alignment 1 and never trip the check.
	backing = make([]byte, SizeOf[testState]()+1)
	_, err = View[testState](backing[1:])
	assert.NoError(t, err)
}

func TestView_NotPod(t *testing.T) {
	type withPointer struct {
		Data *uint64
	}
	type withSlice struct {
		Data []byte
	}
	type withString struct {
		Name string
	}
	type withInt struct {
		Value int
	}

	_, err := View[withPointer](make([]byte, 64))
	assert.True(t, errors.Is(err, ErrNotPod))
	_, err = View[withSlice](make([]byte, 64))
	assert.True(t, errors.Is(err, ErrNotPod))
	_, err = View[withString](make([]byte, 64))
	assert.True(t, errors.Is(err, ErrNotPod))
	_, err = View[withInt](make([]byte, 64))
	assert.True(t, errors.Is(err, ErrNotPod))
}

func TestViewSlice(t *testing.T) {
	buf := make([]byte, 4*8)

	items, err := ViewSlice[U64](buf, 4)
	require.NoError(t, err)
	require.Len(t, items, 4)

	items[2].Set(99)
	assert.EqualValues(t, 99, items[2].Get())
	assert.EqualValues(t, 99, buf[2*8])

	_, err = ViewSlice[U64](buf, 5)
	assert.True(t, errors.Is(err, ErrBufferTooSmall))

	empty, err := ViewSlice[U64](nil, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestScalars(t *testing.T) {
	var v16 U16
	v16.Set(0x1234)
	assert.Equal(t, U16{0x34, 0x12}, v16)
	assert.EqualValues(t, 0x1234, v16.Get())

	var v32 U32
	v32.Set(0xdeadbeef)
	assert.Equal(t, U32{0xef, 0xbe, 0xad, 0xde}, v32)

	var v64 U64
	v64.Set(1 << 40)
	assert.EqualValues(t, 1<<40, v64.Get())

	var i64 I64
	i64.Set(-5)
	assert.EqualValues(t, -5, i64.Get())
}
