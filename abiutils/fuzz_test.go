// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"bytes"
	"testing"
)

func FuzzVarUint(f *testing.F) {
	for _, tt := range varUintBoundaries {
		f.Add(tt.encoded)
	}
	f.Add(fromHex("fd0a00"))

	f.Fuzz(func(t *testing.T, data []byte) {
		src := NewSource(data)
		v, err := src.ReadVarUint()
		if err != nil {
			if src.Position() != 0 {
				t.Fatalf("cursor moved on error")
			}
			return
		}

		// any accepted encoding must be the canonical one
		sink := NewSink(0)
		sink.WriteVarUint(v)
		if !bytes.Equal(sink.Bytes(), data[:src.Position()]) {
			t.Fatalf("accepted non-canonical encoding %x for %d", data[:src.Position()], v)
		}
	})
}

func FuzzSourceReads(f *testing.F) {
	f.Add([]byte{}, uint8(0))
	f.Add(fromHex("03313233"), uint8(5))
	f.Add(fromHex("fd0001"), uint8(4))

	f.Fuzz(func(t *testing.T, data []byte, op uint8) {
		src := NewSource(data)
		for src.Remaining() > 0 {
			before := src.Position()
			var err error
			switch op % 7 {
			case 0:
				_, err = src.ReadBool()
			case 1:
				_, err = src.ReadUint16()
			case 2:
				_, err = src.ReadUint32()
			case 3:
				_, err = src.ReadUint128()
			case 4:
				_, err = src.ReadVarUint()
			case 5:
				_, err = src.ReadString()
			case 6:
				_, err = src.ReadBytes()
			}
			if err != nil {
				if src.Position() != before {
					t.Fatalf("cursor moved from %d to %d on error %v", before, src.Position(), err)
				}
				return
			}
			if src.Position() <= before {
				t.Fatalf("successful read did not advance")
			}
			op++
		}
	})
}
