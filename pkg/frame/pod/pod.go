// Package pod provides zero-copy typed views over borrowed byte buffers.
//
// A view reinterprets a byte range in place as a fixed-layout value. There is
// no serialization step and no intermediate copy; writes through a view are
// immediately visible in the underlying buffer, which is the same memory the
// host persists. Views must not outlive the buffer they were constructed
// from.
package pod

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

var (
	// ErrBufferTooSmall indicates the buffer cannot hold the requested type.
	ErrBufferTooSmall = errors.New("buffer too small for typed view")

	// ErrMisaligned indicates the buffer start address does not satisfy the
	// type's alignment requirement.
	ErrMisaligned = errors.New("buffer misaligned for typed view")

	// ErrNotPod indicates the type contains fields that cannot be safely
	// reinterpreted over raw bytes (pointers, slices, maps, strings, or
	// platform-sized integers).
	ErrNotPod = errors.New("type is not plain old data")
)

var podCache sync.Map // reflect.Type -> error

// View reinterprets the leading bytes of data as a *T, in place.
//
// T must be a pod type: a fixed-layout value free of pointers, slices, maps,
// strings, interfaces, and platform-sized integers. The returned pointer
// aliases data directly, so it is only valid while data is.
func View[T any](data []byte) (*T, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if err := checkPod(typ); err != nil {
		return nil, err
	}

	size := typ.Size()
	if size == 0 {
		return new(T), nil
	}

	if uintptr(len(data)) < size {
		return nil, errors.Wrapf(ErrBufferTooSmall, "need %d bytes, have %d", size, len(data))
	}
	if uintptr(unsafe.Pointer(&data[0]))%uintptr(typ.Align()) != 0 {
		return nil, errors.Wrapf(ErrMisaligned, "address not %d-byte aligned", typ.Align())
	}

	return (*T)(unsafe.Pointer(&data[0])), nil
}

// ViewSlice reinterprets data as a slice of n values of T, in place.
func ViewSlice[T any](data []byte, n int) ([]T, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if err := checkPod(typ); err != nil {
		return nil, err
	}

	size := typ.Size()
	if n < 0 {
		return nil, errors.Wrap(ErrBufferTooSmall, "negative length")
	}
	if size == 0 || n == 0 {
		return make([]T, n), nil
	}

	total := size * uintptr(n)
	if uintptr(len(data)) < total {
		return nil, errors.Wrapf(ErrBufferTooSmall, "need %d bytes, have %d", total, len(data))
	}
	if uintptr(unsafe.Pointer(&data[0]))%uintptr(typ.Align()) != 0 {
		return nil, errors.Wrapf(ErrMisaligned, "address not %d-byte aligned", typ.Align())
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n), nil
}

// SizeOf reports the in-memory (and on-wire) size of T.
func SizeOf[T any]() int {
	return int(reflect.TypeOf((*T)(nil)).Elem().Size())
}

// Bytes exposes the raw backing bytes of a previously constructed view.
func Bytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), SizeOf[T]())
}

func checkPod(typ reflect.Type) error {
	if cached, ok := podCache.Load(typ); ok {
		if cached == nil {
			return nil
		}
		return cached.(error)
	}

	err := checkPodKind(typ)
	podCache.Store(typ, err)
	return err
}

func checkPodKind(typ reflect.Type) error {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return errors.Wrapf(ErrNotPod, "%s has platform-dependent size", typ)
	case reflect.Array:
		return checkPodKind(typ.Elem())
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if err := checkPodKind(typ.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Wrapf(ErrNotPod, "unsupported kind %s", typ.Kind())
	}
}
