// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import "encoding/binary"

// ---- Marshal functions ----

// MarshalUint64 marshals a little endian uint64 to dst
func MarshalUint64(dst []byte, i uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, i)
}

// MarshalUint32 marshals a little endian uint32 to dst
func MarshalUint32(dst []byte, i uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, i)
}

// MarshalUint16 marshals a little endian uint16 to dst
func MarshalUint16(dst []byte, i uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, i)
}

// MarshalBool marshals a boolean to dst
func MarshalBool(dst []byte, b bool) []byte {
	if b {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// ---- Unmarshal functions ----
// callers check the length of src beforehand.

// UnmarshalUint64 unmarshals a little endian uint64 from src
func UnmarshalUint64(src []byte) uint64 {
	return binary.LittleEndian.Uint64(src[:8])
}

// UnmarshalUint32 unmarshals a little endian uint32 from src
func UnmarshalUint32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src[:4])
}

// UnmarshalUint16 unmarshals a little endian uint16 from src
func UnmarshalUint16(src []byte) uint16 {
	return binary.LittleEndian.Uint16(src[:2])
}
