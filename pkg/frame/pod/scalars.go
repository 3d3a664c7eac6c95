package pod

import "encoding/binary"

// Little-endian scalar wrappers for wire-format fields.
//
// The on-chain layout is little-endian regardless of host byte order, and
// byte-array backing keeps struct alignment at 1 so layouts carry no implicit
// padding. State and payload structs should prefer these over native
// multi-byte integers.

type U16 [2]byte

func (v *U16) Get() uint16  { return binary.LittleEndian.Uint16(v[:]) }
func (v *U16) Set(x uint16) { binary.LittleEndian.PutUint16(v[:], x) }

type U32 [4]byte

func (v *U32) Get() uint32  { return binary.LittleEndian.Uint32(v[:]) }
func (v *U32) Set(x uint32) { binary.LittleEndian.PutUint32(v[:], x) }

type U64 [8]byte

func (v *U64) Get() uint64  { return binary.LittleEndian.Uint64(v[:]) }
func (v *U64) Set(x uint64) { binary.LittleEndian.PutUint64(v[:], x) }

type I64 [8]byte

func (v *I64) Get() int64  { return int64(binary.LittleEndian.Uint64(v[:])) }
func (v *I64) Set(x int64) { binary.LittleEndian.PutUint64(v[:], uint64(x)) }
