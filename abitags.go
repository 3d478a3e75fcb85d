// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"fmt"
	"reflect"
	"strings"
)

// field tags
const (
	tagAbi     = "abi"
	tagAbiType = "abi-type"
	tagAbiMax  = "abi-max"
)

type fieldTags struct {
	skip    bool
	varUint bool
	maxExpr string
}

func parseFieldTags(field *reflect.StructField) (*fieldTags, error) {
	tags := &fieldTags{}

	if abiTag, ok := field.Tag.Lookup(tagAbi); ok && strings.TrimSpace(abiTag) == "-" {
		tags.skip = true
		return tags, nil
	}

	if typeTag, ok := field.Tag.Lookup(tagAbiType); ok {
		switch strings.TrimSpace(typeTag) {
		case "", "auto":
		case "varuint":
			switch field.Type.Kind() {
			case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				tags.varUint = true
			default:
				return nil, fmt.Errorf("abi-type varuint on non unsigned field %v (%v)", field.Name, field.Type)
			}
		default:
			return nil, fmt.Errorf("invalid abi-type tag %q on field %v", typeTag, field.Name)
		}
	}

	if maxTag, ok := field.Tag.Lookup(tagAbiMax); ok {
		tags.maxExpr = strings.TrimSpace(maxTag)
		if tags.maxExpr == "" {
			return nil, fmt.Errorf("empty abi-max tag on field %v", field.Name)
		}
		switch field.Type.Kind() {
		case reflect.Slice, reflect.String:
		default:
			return nil, fmt.Errorf("abi-max on field %v with fixed size type %v", field.Name, field.Type)
		}
	}

	return tags, nil
}
