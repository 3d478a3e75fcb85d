// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abivalue

import (
	"bytes"
	"encoding/hex"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pk910/dynamic-abi/abiutils"
)

func fromHex(s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic(err)
	}
	return b
}

var valueTestMatrix = []struct {
	value    Value
	expected []byte
}{
	{Value{Type: "bool", Value: "true"}, fromHex("01")},
	{Value{Type: "u8", Value: "255"}, fromHex("ff")},
	{Value{Type: "u16", Value: "0x0102"}, fromHex("0201")},
	{Value{Type: "u32", Value: "7"}, fromHex("07000000")},
	{Value{Type: "u64", Value: "1"}, fromHex("0100000000000000")},
	{Value{Type: "varuint", Value: "300"}, fromHex("fd2c01")},
	{Value{Type: "u128", Value: "18446744073709551616"}, fromHex("0000000000000000 0100000000000000")},
	{Value{Type: "bytes", Value: "0xaabb"}, fromHex("02 aabb")},
	{Value{Type: "string", Value: "123"}, fromHex("03 313233")},
	{Value{Type: "address", Value: "0x00000000000000000000000000000000000000ff"}, fromHex("00000000000000000000000000000000000000ff")},
	{Value{Type: "h256", Value: "0x" + strings.Repeat("11", 32)}, fromHex(strings.Repeat("11", 32))},
	{Value{Type: "list<u16>", Items: []Value{{Value: "1"}, {Value: "2"}}}, fromHex("02 0100 0200")},
	{Value{Type: "list<list<string>>", Items: []Value{{Items: []Value{{Value: "a"}}}}}, fromHex("01 01 0161")},
}

func TestEncodeValue(t *testing.T) {
	for _, test := range valueTestMatrix {
		t.Run(test.value.Type, func(t *testing.T) {
			sink := abiutils.NewSink(0)
			if err := EncodeValue(sink, test.value); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(sink.Bytes(), test.expected) {
				t.Fatalf("got %x, wanted %x", sink.Bytes(), test.expected)
			}
		})
	}
}

func TestDecodeValue(t *testing.T) {
	for _, test := range valueTestMatrix {
		t.Run(test.value.Type, func(t *testing.T) {
			spec, err := ParseTypeSpec(test.value.Type)
			if err != nil {
				t.Fatal(err)
			}

			src := abiutils.NewSource(test.expected)
			value, err := DecodeValue(src, spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if src.Remaining() != 0 {
				t.Fatalf("%v bytes left", src.Remaining())
			}

			// re-encoding the decoded value gives the same bytes
			sink := abiutils.NewSink(0)
			if err := EncodeValue(sink, value); err != nil {
				t.Fatalf("re-encode failed: %v", err)
			}
			if !bytes.Equal(sink.Bytes(), test.expected) {
				t.Fatalf("got %x, wanted %x", sink.Bytes(), test.expected)
			}
		})
	}
}

func TestDecodeNormalizesText(t *testing.T) {
	specs, err := ParseTypeList("u16, bytes, list<u8>")
	if err != nil {
		t.Fatal(err)
	}

	values, err := Decode(abiutils.NewSource(fromHex("0201 00 02 0102")), specs)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Value{
		{Type: "u16", Value: "258"},
		{Type: "bytes", Value: "0x"},
		{Type: "list<u8>", Items: []Value{{Value: "1"}, {Value: "2"}}},
	}
	if !reflect.DeepEqual(values, expected) {
		t.Fatalf("got %#v", values)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		value Value
		err   error
	}{
		{Value{Type: "int32", Value: "1"}, ErrInvalidType},
		{Value{Type: "list<>"}, ErrInvalidType},
		{Value{Type: "list u8"}, ErrInvalidType},
		{Value{Type: "bool", Value: "yes please"}, ErrInvalidValue},
		{Value{Type: "u8", Value: "256"}, ErrInvalidValue},
		{Value{Type: "u32", Value: "-1"}, ErrInvalidValue},
		{Value{Type: "u128", Value: "0x1" + strings.Repeat("0", 32)}, ErrInvalidValue},
		{Value{Type: "bytes", Value: "0xabc"}, ErrInvalidValue},
		{Value{Type: "address", Value: "0x01"}, ErrInvalidValue},
		{Value{Type: "list<u8>", Items: []Value{{Type: "u16", Value: "1"}}}, ErrInvalidValue},
	}

	for _, test := range tests {
		t.Run(test.value.Type+"/"+test.value.Value, func(t *testing.T) {
			err := EncodeValue(abiutils.NewSink(0), test.value)
			if !errors.Is(err, test.err) {
				t.Fatalf("expected %v, got %v", test.err, err)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		spec string
		data []byte
		err  error
	}{
		{"bool", fromHex("02"), abiutils.ErrIrregularData},
		{"u32", fromHex("0100"), abiutils.ErrUnexpectedEOF},
		{"varuint", fromHex("fd0100"), abiutils.ErrIrregularData},
		{"string", fromHex("01 ff"), abiutils.ErrInvalidUtf8},
		{"h256", fromHex("00"), abiutils.ErrUnexpectedEOF},
		{"list<u8>", fromHex("03 0102"), abiutils.ErrUnexpectedEOF},
	}

	for _, test := range tests {
		t.Run(test.spec, func(t *testing.T) {
			spec, err := ParseTypeSpec(test.spec)
			if err != nil {
				t.Fatal(err)
			}
			_, err = DecodeValue(abiutils.NewSource(test.data), spec)
			if !errors.Is(err, test.err) {
				t.Fatalf("expected %v, got %v", test.err, err)
			}
		})
	}
}

func TestDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(`
values:
  - type: u32
    value: "7"
  - type: list<string>
    items:
      - value: a
      - value: bc
  - type: bool
    value: "false"
`))
	if err != nil {
		t.Fatal(err)
	}

	sink := abiutils.NewSink(0)
	if err := Encode(sink, doc.Values); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sink.Bytes(), fromHex("07000000 02 0161 026263 00")) {
		t.Fatalf("got %x", sink.Bytes())
	}

	out, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseDocument(out)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(doc, again) {
		t.Fatalf("document changed after marshal: %s", out)
	}

	if _, err := ParseDocument([]byte("values: 5")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTypeSpecString(t *testing.T) {
	spec, err := ParseTypeSpec(" list< list<h256> > ")
	if err != nil {
		t.Fatal(err)
	}
	if spec.String() != "list<list<h256>>" {
		t.Fatalf("got %v", spec)
	}
}
