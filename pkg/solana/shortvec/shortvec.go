// Package shortvec implements the compact-u16 length encoding used for
// variable-length sequences in the wire format.
package shortvec

import (
	"fmt"
	"io"
	"math"
)

// EncodeLen writes len to w in compact-u16 form.
//
// If len > math.MaxUint16, an error is returned.
func EncodeLen(w io.Writer, len int) (n int, err error) {
	if len > math.MaxUint16 {
		return 0, fmt.Errorf("len exceeds %d", math.MaxUint16)
	}

	written := 0
	buf := make([]byte, 1)

	for {
		buf[0] = byte(len & 0x7f)
		len >>= 7
		if len == 0 {
			n, err := w.Write(buf)
			written += n

			return written, err
		}

		buf[0] |= 0x80
		n, err := w.Write(buf)
		written += n
		if err != nil {
			return written, err
		}
	}
}

// DecodeLen reads a compact-u16 encoded len from r.
func DecodeLen(r io.Reader) (val int, err error) {
	var shift int
	buf := make([]byte, 1)

	for {
		if _, err := r.Read(buf); err != nil {
			return 0, err
		}

		val |= int(buf[0]&0x7f) << (shift * 7)
		shift++

		if buf[0]&0x80 == 0 {
			break
		}
	}

	if shift > 3 {
		return 0, fmt.Errorf("invalid size: %d (max 3)", shift)
	}

	return val, nil
}
