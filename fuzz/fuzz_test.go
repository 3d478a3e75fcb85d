// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package fuzz

import (
	"bytes"
	"testing"
	"time"

	dynabi "github.com/pk910/dynamic-abi"
	"github.com/pk910/dynamic-abi/abiutils"
)

// Test structures for fuzzing
type SimpleStruct struct {
	A uint64
	B uint32
	C uint16
	D uint8
	E bool
}

type ComplexStruct struct {
	Numbers   []uint64 `abi-max:"1024"`
	Bytes     []byte   `abi-max:"2048"`
	Amount    abiutils.Uint128
	Owner     abiutils.Address
	Nested    SimpleStruct
	NestedPtr *SimpleStruct
	Arrays    [4]uint32
	Count     uint64 `abi-type:"varuint"`
	Skipped   string `abi:"-"`
}

type VariableStruct struct {
	List1 []uint64        `abi-max:"100"`
	List2 []abiutils.H256 `abi-max:"50"`
	Data  []byte          `abi-max:"1000"`
	Names []string        `abi-max:"20"`
	Maybe *abiutils.Uint128
}

type NestedComplex struct {
	Arrays [4][]uint16
	Lists  [][]string `abi-max:"8"`
}

type RecursiveStruct struct {
	Value uint32
	Next  *RecursiveStruct
}

func fuzzTargets() []interface{} {
	return []interface{}{
		&SimpleStruct{},
		&ComplexStruct{},
		&VariableStruct{},
		&NestedComplex{},
		&RecursiveStruct{},
	}
}

// FuzzMarshalUnmarshal tests marshal/unmarshal operations
func FuzzMarshalUnmarshal(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(time.Now().UnixNano())

	f.Fuzz(func(t *testing.T, seed int64) {
		fuzzer := NewFuzzer(seed)

		for _, testCase := range fuzzTargets() {
			fuzzer.FuzzValue(testCase)

			if err := fuzzer.FuzzMarshalUnmarshal(testCase); err != nil {
				t.Errorf("FuzzMarshalUnmarshal failed for %T: %v", testCase, err)
			}
		}
	})
}

// FuzzDecode feeds arbitrary bytes to the decoder
func FuzzDecode(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00, 0x00, 0x01})
	f.Add([]byte{0xfd, 0x10, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00})
	f.Add([]byte{0x02, 0x01, 0x02, 0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		fuzzer := NewFuzzer(1)

		for _, testCase := range fuzzTargets() {
			if err := fuzzer.FuzzDecode(testCase, data); err != nil {
				t.Errorf("FuzzDecode failed for %T: %v", testCase, err)
			}
		}
	})
}

func TestFuzzerBasic(t *testing.T) {
	fuzzer := NewFuzzer(42)
	ds := dynabi.NewDynAbi(nil)

	simple := &SimpleStruct{}
	fuzzer.FuzzValue(simple)

	marshaled, err := ds.Marshal(simple)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if len(marshaled) != 16 {
		t.Errorf("unexpected size %d", len(marshaled))
	}

	unmarshaled := &SimpleStruct{}
	if err := ds.Unmarshal(unmarshaled, marshaled); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if *unmarshaled != *simple {
		t.Errorf("roundtrip mismatch: %+v != %+v", unmarshaled, simple)
	}
}

func TestFuzzerRoundTrips(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		fuzzer := NewFuzzer(seed)
		fuzzer.SetEdgeCaseProbability(0.5)

		for _, testCase := range fuzzTargets() {
			fuzzer.FuzzValue(testCase)
			if err := fuzzer.FuzzMarshalUnmarshal(testCase); err != nil {
				t.Fatalf("seed %d, %T: %v", seed, testCase, err)
			}
		}
	}
}

func TestFuzzDecodeRejectsNonCanonical(t *testing.T) {
	fuzzer := NewFuzzer(1)

	// count 1 as a three byte varuint is rejected, so nothing is re-encoded
	data := []byte{0xfd, 0x01, 0x00, 0x05, 0x00}
	target := &struct {
		Values []uint16
	}{}
	if err := fuzzer.FuzzDecode(target, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Values != nil {
		t.Errorf("non canonical count was decoded: %v", target.Values)
	}

	if err := fuzzer.FuzzDecode(target, []byte{0x01, 0x05, 0x00}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(target.Values) != 1 || target.Values[0] != 5 {
		t.Errorf("unexpected values %v", target.Values)
	}

	remarshaled, err := dynabi.NewDynAbi(nil).Marshal(target)
	if err != nil || !bytes.Equal(remarshaled, []byte{0x01, 0x05, 0x00}) {
		t.Errorf("unexpected encoding %x (%v)", remarshaled, err)
	}
}

func BenchmarkFuzzMarshalUnmarshal(b *testing.B) {
	fuzzer := NewFuzzer(42)
	testStruct := &ComplexStruct{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fuzzer.FuzzValue(testStruct)
		if err := fuzzer.FuzzMarshalUnmarshal(testStruct); err != nil {
			b.Fatalf("FuzzMarshalUnmarshal failed: %v", err)
		}
	}
}
