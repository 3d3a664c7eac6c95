// Package binary provides little-endian cursor helpers for the fixed-layout
// wire format used in instruction payloads and account state. Callers are
// expected to validate total buffer length before reading.
package binary

import (
	"encoding/binary"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

func PutKey32(dst []byte, src solana.PublicKey, offset *int) {
	copy(dst[*offset:], src[:])
	*offset += solana.PublicKeySize
}

func GetKey32(src []byte, dst *solana.PublicKey, offset *int) {
	copy(dst[:], src[*offset:])
	*offset += solana.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func PutUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst[*offset:], v)
	*offset += 2
}

func GetUint16(src []byte, dst *uint16, offset *int) {
	*dst = binary.LittleEndian.Uint16(src[*offset:])
	*offset += 2
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}

func PutBytes(dst, src []byte, offset *int) {
	copy(dst[*offset:], src)
	*offset += len(src)
}

func GetBytes(src, dst []byte, offset *int) {
	copy(dst, src[*offset:])
	*offset += len(dst)
}
