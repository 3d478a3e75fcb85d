// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package fuzz

import (
	"bytes"
	"fmt"
	"math/rand"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	dynabi "github.com/pk910/dynamic-abi"
)

// Fuzzer provides fuzzing capabilities for dynabi marshal/unmarshal operations
type Fuzzer struct {
	r        *rand.Rand
	edgeProb float64 // probability of generating edge case values
	nilProb  float64 // probability of leaving an option empty
	ds       *dynabi.DynAbi
}

// NewFuzzer creates a new fuzzer with optional seed
func NewFuzzer(seed int64) *Fuzzer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Fuzzer{
		r:        rand.New(rand.NewSource(seed)),
		edgeProb: 0.1,
		nilProb:  0.3,
		ds:       dynabi.NewDynAbi(nil),
	}
}

// SetEdgeCaseProbability sets the probability of generating edge case values
func (f *Fuzzer) SetEdgeCaseProbability(prob float64) {
	f.edgeProb = prob
}

// FuzzValue fills the given value with random data according to its type
func (f *Fuzzer) FuzzValue(v interface{}) {
	f.doFuzz(reflect.ValueOf(v), 0, 0)
}

// FuzzMarshalUnmarshal tests the marshal/unmarshal roundtrip for a value
func (f *Fuzzer) FuzzMarshalUnmarshal(original interface{}) error {
	marshaled, err := f.ds.Marshal(original)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	size, err := f.ds.Size(original)
	if err != nil {
		return fmt.Errorf("size failed: %w", err)
	}
	if size != len(marshaled) {
		return fmt.Errorf("size mismatch: calculated %d, actual %d", size, len(marshaled))
	}

	originalType := reflect.TypeOf(original)
	if originalType.Kind() == reflect.Ptr {
		originalType = originalType.Elem()
	}
	unmarshaled := reflect.New(originalType).Interface()

	if err := f.ds.Unmarshal(unmarshaled, marshaled); err != nil {
		return fmt.Errorf("unmarshal failed: %w", err)
	}

	remarshaled, err := f.ds.Marshal(unmarshaled)
	if err != nil {
		return err
	}
	if !bytes.Equal(marshaled, remarshaled) {
		return fmt.Errorf("marshal mismatch: %x != %x", marshaled, remarshaled)
	}

	return nil
}

// FuzzDecode decodes arbitrary data into target. Data that decodes must
// re-encode to exactly the same bytes, since every value has a single
// valid encoding.
func (f *Fuzzer) FuzzDecode(target interface{}, data []byte) error {
	if err := f.ds.Unmarshal(target, data); err != nil {
		return nil
	}

	remarshaled, err := f.ds.Marshal(target)
	if err != nil {
		return fmt.Errorf("marshal of decoded value failed: %w", err)
	}
	if !bytes.Equal(data, remarshaled) {
		return fmt.Errorf("non canonical input accepted: %x != %x", data, remarshaled)
	}
	return nil
}

// doFuzz recursively fills a value with random data. maxLen limits the length
// of the next sequence, zero means the default limit.
func (f *Fuzzer) doFuzz(v reflect.Value, depth int, maxLen uint64) {
	if depth > 10 {
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(f.r.Intn(2) == 1)

	case reflect.Uint8:
		v.SetUint(uint64(f.randomUint8()))

	case reflect.Uint16:
		v.SetUint(uint64(f.randomUint16()))

	case reflect.Uint32:
		v.SetUint(uint64(f.randomUint32()))

	case reflect.Uint64:
		v.SetUint(f.randomUint64())

	case reflect.String:
		v.SetString(f.randomString())

	case reflect.Slice:
		f.fuzzSlice(v, depth, maxLen)

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			f.doFuzz(v.Index(i), depth+1, 0)
		}

	case reflect.Struct:
		f.fuzzStruct(v, depth)

	case reflect.Ptr:
		if depth > 0 && (depth > 5 || f.r.Float64() < f.nilProb) {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		f.doFuzz(v.Elem(), depth+1, maxLen)
	}
}

func (f *Fuzzer) fuzzSlice(v reflect.Value, depth int, maxLen uint64) {
	limit := f.sliceLimit(v.Type(), maxLen)
	length := f.r.Intn(limit + 1)
	newSlice := reflect.MakeSlice(v.Type(), length, length)

	for i := 0; i < length; i++ {
		f.doFuzz(newSlice.Index(i), depth+1, 0)
	}

	v.Set(newSlice)
}

func (f *Fuzzer) fuzzStruct(v reflect.Value, depth int) {
	structType := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		structField := structType.Field(i)
		if strings.TrimSpace(structField.Tag.Get("abi")) == "-" {
			continue
		}

		f.doFuzz(field, depth+1, parseMaxTag(&structField))
	}
}

// parseMaxTag returns a numeric abi-max limit of a field, zero if none.
func parseMaxTag(field *reflect.StructField) uint64 {
	maxStr, ok := field.Tag.Lookup("abi-max")
	if !ok {
		return 0
	}
	maxLen, err := strconv.ParseUint(strings.TrimSpace(maxStr), 10, 64)
	if err != nil {
		return 0
	}
	return maxLen
}

func (f *Fuzzer) sliceLimit(sliceType reflect.Type, maxLen uint64) int {
	if maxLen > 0 {
		if maxLen > 10000 {
			return 10000
		}
		return int(maxLen)
	}

	if sliceType.Elem().Kind() == reflect.Uint8 {
		return 1024
	}
	return 100
}

// Random value generators with edge cases
func (f *Fuzzer) randomUint8() uint8 {
	if f.edgeCase() {
		switch f.r.Intn(3) {
		case 0:
			return 0
		case 1:
			return 255
		}
	}
	return uint8(f.r.Intn(256))
}

func (f *Fuzzer) randomUint16() uint16 {
	if f.edgeCase() {
		switch f.r.Intn(3) {
		case 0:
			return 0
		case 1:
			return 65535
		}
	}
	return uint16(f.r.Intn(65536))
}

func (f *Fuzzer) randomUint32() uint32 {
	if f.edgeCase() {
		switch f.r.Intn(3) {
		case 0:
			return 0
		case 1:
			return 4294967295
		}
	}
	return f.r.Uint32()
}

// randomUint64 favors the varuint tier boundaries.
func (f *Fuzzer) randomUint64() uint64 {
	if f.edgeCase() {
		boundaries := []uint64{0, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 18446744073709551615}
		return boundaries[f.r.Intn(len(boundaries))]
	}
	return f.r.Uint64() >> uint(f.r.Intn(64))
}

func (f *Fuzzer) randomString() string {
	if f.edgeCase() {
		switch f.r.Intn(3) {
		case 0:
			return ""
		case 1:
			return "\x00"
		default:
			return "🚀ä€"
		}
	}

	length := f.r.Intn(50)
	var builder strings.Builder
	for i := 0; i < length; i++ {
		r := rune(f.r.Intn(0x10000))
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

func (f *Fuzzer) edgeCase() bool {
	return f.r.Float64() < f.edgeProb
}
