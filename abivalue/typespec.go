// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abivalue

import (
	"fmt"
	"strings"
)

// type names
const (
	TypeBool    = "bool"
	TypeU8      = "u8"
	TypeU16     = "u16"
	TypeU32     = "u32"
	TypeU64     = "u64"
	TypeU128    = "u128"
	TypeVarUint = "varuint"
	TypeBytes   = "bytes"
	TypeString  = "string"
	TypeAddress = "address"
	TypeH256    = "h256"
	TypeList    = "list"
)

var scalarTypes = map[string]bool{
	TypeBool:    true,
	TypeU8:      true,
	TypeU16:     true,
	TypeU32:     true,
	TypeU64:     true,
	TypeU128:    true,
	TypeVarUint: true,
	TypeBytes:   true,
	TypeString:  true,
	TypeAddress: true,
	TypeH256:    true,
}

// TypeSpec is a parsed value type. Elem is only set for lists.
type TypeSpec struct {
	Name string
	Elem *TypeSpec
}

// ParseTypeSpec parses a type like "u32" or "list<list<string>>".
func ParseTypeSpec(s string) (*TypeSpec, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, TypeList) {
		inner := strings.TrimSpace(strings.TrimPrefix(s, TypeList))
		if !strings.HasPrefix(inner, "<") || !strings.HasSuffix(inner, ">") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidType, s)
		}
		elem, err := ParseTypeSpec(inner[1 : len(inner)-1])
		if err != nil {
			return nil, err
		}
		return &TypeSpec{Name: TypeList, Elem: elem}, nil
	}

	if !scalarTypes[s] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return &TypeSpec{Name: s}, nil
}

// ParseTypeList parses a comma separated list of type specs.
func ParseTypeList(s string) ([]*TypeSpec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	specs := make([]*TypeSpec, 0, len(parts))
	for _, part := range parts {
		spec, err := ParseTypeSpec(part)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (t *TypeSpec) String() string {
	if t.Name == TypeList {
		return fmt.Sprintf("list<%v>", t.Elem)
	}
	return t.Name
}
