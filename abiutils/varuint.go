// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

// varuint tier tags
const (
	VarUintTag16 = 0xFD
	VarUintTag32 = 0xFE
	VarUintTag64 = 0xFF
)

// VarUintSize returns the number of bytes of the canonical encoding of v.
func VarUintSize(v uint64) int {
	switch {
	case v < VarUintTag16:
		return 1
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}

// AppendVarUint appends the canonical varuint encoding of v to dst.
func AppendVarUint(dst []byte, v uint64) []byte {
	switch VarUintSize(v) {
	case 1:
		return append(dst, byte(v))
	case 3:
		return append(dst, VarUintTag16, byte(v), byte(v>>8))
	case 5:
		return append(dst, VarUintTag32, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	default:
		return append(dst, VarUintTag64,
			byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
			byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
	}
}

// ParseVarUint decodes a varuint from the start of src and returns the value
// and the number of bytes consumed. Non-minimal encodings are rejected with
// ErrIrregularData.
func ParseVarUint(src []byte) (uint64, int, error) {
	if len(src) < 1 {
		return 0, 0, ErrUnexpectedEOF
	}

	var value uint64
	var size int

	switch tag := src[0]; tag {
	case VarUintTag16:
		if len(src) < 3 {
			return 0, 0, ErrUnexpectedEOF
		}
		value = uint64(UnmarshalUint16(src[1:]))
		size = 3
	case VarUintTag32:
		if len(src) < 5 {
			return 0, 0, ErrUnexpectedEOF
		}
		value = uint64(UnmarshalUint32(src[1:]))
		size = 5
	case VarUintTag64:
		if len(src) < 9 {
			return 0, 0, ErrUnexpectedEOF
		}
		value = UnmarshalUint64(src[1:])
		size = 9
	default:
		value = uint64(tag)
		size = 1
	}

	if VarUintSize(value) != size {
		return 0, 0, ErrIrregularData
	}

	return value, size, nil
}
