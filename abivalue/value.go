// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

// Package abivalue encodes and decodes untyped value documents, so payloads
// can be built and inspected without Go types for them.
//
// A document is a YAML list of typed values:
//
//	values:
//	  - type: u32
//	    value: "7"
//	  - type: list<string>
//	    items:
//	      - value: a
//	      - value: b
package abivalue

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pk910/dynamic-abi/abiutils"
)

var (
	ErrInvalidType  = fmt.Errorf("invalid value type")
	ErrInvalidValue = fmt.Errorf("invalid value")
)

// Value is a typed value. Scalars carry their text form in Value, lists
// carry their elements in Items. Items may omit their type, it defaults to
// the element type of the list.
type Value struct {
	Type  string  `yaml:"type,omitempty"`
	Value string  `yaml:"value,omitempty"`
	Items []Value `yaml:"items,omitempty"`
}

// Document is a sequence of values encoded back to back.
type Document struct {
	Values []Value `yaml:"values"`
}

// ParseDocument parses a YAML value document.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed parsing value document: %w", err)
	}
	return doc, nil
}

// Marshal renders the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Encode appends all values to sink.
func Encode(sink *abiutils.Sink, values []Value) error {
	for i, value := range values {
		if err := EncodeValue(sink, value); err != nil {
			return fmt.Errorf("value %v: %w", i, err)
		}
	}
	return nil
}

// EncodeValue appends a single value to sink.
func EncodeValue(sink *abiutils.Sink, value Value) error {
	spec, err := ParseTypeSpec(value.Type)
	if err != nil {
		return err
	}
	return encodeTyped(sink, spec, value)
}

func encodeTyped(sink *abiutils.Sink, spec *TypeSpec, value Value) error {
	text := strings.TrimSpace(value.Value)

	switch spec.Name {
	case TypeBool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("%w: bool %q", ErrInvalidValue, value.Value)
		}
		sink.WriteBool(v)
	case TypeU8, TypeU16, TypeU32, TypeU64, TypeVarUint:
		v, err := strconv.ParseUint(text, 0, uintBits(spec.Name))
		if err != nil {
			return fmt.Errorf("%w: %v %q", ErrInvalidValue, spec.Name, value.Value)
		}
		switch spec.Name {
		case TypeU8:
			sink.WriteUint8(uint8(v))
		case TypeU16:
			sink.WriteUint16(uint16(v))
		case TypeU32:
			sink.WriteUint32(uint32(v))
		case TypeU64:
			sink.WriteUint64(v)
		default:
			sink.WriteVarUint(v)
		}
	case TypeU128:
		v, err := abiutils.ParseUint128(text)
		if err != nil {
			return fmt.Errorf("%w: u128 %q", ErrInvalidValue, value.Value)
		}
		sink.WriteUint128(v)
	case TypeBytes:
		v, err := parseHex(text, -1)
		if err != nil {
			return err
		}
		sink.WriteVarBytes(v)
	case TypeString:
		sink.WriteString(value.Value)
	case TypeAddress:
		v, err := parseHex(text, len(abiutils.Address{}))
		if err != nil {
			return err
		}
		sink.WriteBytes(v)
	case TypeH256:
		v, err := parseHex(text, len(abiutils.H256{}))
		if err != nil {
			return err
		}
		sink.WriteBytes(v)
	case TypeList:
		sink.WriteVarUint(uint64(len(value.Items)))
		for i, item := range value.Items {
			if item.Type != "" {
				itemSpec, err := ParseTypeSpec(item.Type)
				if err != nil {
					return err
				}
				if itemSpec.String() != spec.Elem.String() {
					return fmt.Errorf("%w: item %v has type %v in %v", ErrInvalidValue, i, itemSpec, spec)
				}
			}
			if err := encodeTyped(sink, spec.Elem, item); err != nil {
				return fmt.Errorf("item %v: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidType, spec.Name)
	}

	return nil
}

func uintBits(name string) int {
	switch name {
	case TypeU8:
		return 8
	case TypeU16:
		return 16
	case TypeU32:
		return 32
	default:
		return 64
	}
}

func parseHex(text string, size int) ([]byte, error) {
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	v, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: hex %q", ErrInvalidValue, text)
	}
	if size >= 0 && len(v) != size {
		return nil, fmt.Errorf("%w: expected %v bytes, got %v", ErrInvalidValue, size, len(v))
	}
	return v, nil
}

// Decode reads one value per type spec from src.
func Decode(src *abiutils.Source, specs []*TypeSpec) ([]Value, error) {
	values := make([]Value, 0, len(specs))
	for i, spec := range specs {
		value, err := DecodeValue(src, spec)
		if err != nil {
			return nil, fmt.Errorf("value %v: %w", i, err)
		}
		values = append(values, value)
	}
	return values, nil
}

// DecodeValue reads a single value of type spec from src.
func DecodeValue(src *abiutils.Source, spec *TypeSpec) (Value, error) {
	value := Value{Type: spec.String()}

	switch spec.Name {
	case TypeBool:
		v, err := src.ReadBool()
		if err != nil {
			return value, err
		}
		value.Value = strconv.FormatBool(v)
	case TypeU8:
		v, err := src.ReadByte()
		if err != nil {
			return value, err
		}
		value.Value = strconv.FormatUint(uint64(v), 10)
	case TypeU16:
		v, err := src.ReadUint16()
		if err != nil {
			return value, err
		}
		value.Value = strconv.FormatUint(uint64(v), 10)
	case TypeU32:
		v, err := src.ReadUint32()
		if err != nil {
			return value, err
		}
		value.Value = strconv.FormatUint(uint64(v), 10)
	case TypeU64:
		v, err := src.ReadUint64()
		if err != nil {
			return value, err
		}
		value.Value = strconv.FormatUint(v, 10)
	case TypeVarUint:
		v, err := src.ReadVarUint()
		if err != nil {
			return value, err
		}
		value.Value = strconv.FormatUint(v, 10)
	case TypeU128:
		v, err := src.ReadUint128()
		if err != nil {
			return value, err
		}
		value.Value = v.String()
	case TypeBytes:
		v, err := src.ReadBytes()
		if err != nil {
			return value, err
		}
		value.Value = "0x" + hex.EncodeToString(v)
	case TypeString:
		v, err := src.ReadString()
		if err != nil {
			return value, err
		}
		value.Value = v
	case TypeAddress, TypeH256:
		size := len(abiutils.Address{})
		if spec.Name == TypeH256 {
			size = len(abiutils.H256{})
		}
		v, err := src.NextBytes(size)
		if err != nil {
			return value, err
		}
		value.Value = "0x" + hex.EncodeToString(v)
	case TypeList:
		items, err := abiutils.ReadSeq(src, func(src *abiutils.Source) (Value, error) {
			item, err := DecodeValue(src, spec.Elem)
			item.Type = ""
			return item, err
		})
		if err != nil {
			return value, err
		}
		value.Items = items
	default:
		return value, fmt.Errorf("%w: %q", ErrInvalidType, spec.Name)
	}

	return value, nil
}
