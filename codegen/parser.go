// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package codegen

import (
	"fmt"
	"go/types"
	"reflect"
	"strings"
)

type abiKind uint8

const (
	kindBool abiKind = iota
	kindUint8
	kindUint16
	kindUint32
	kindUint64
	kindString
	kindBytes
	kindFixedBytes
	kindArray
	kindSlice
	kindOption
	kindCodec // type with EncodeABI/DecodeABI methods, existing or generated
)

// typeInfo is the encoding layout of a go/types type.
type typeInfo struct {
	Kind   abiKind
	Type   types.Type
	Len    int64
	Elem   *typeInfo
	Fields []*fieldInfo
}

type fieldInfo struct {
	Name    string
	Type    *typeInfo
	VarUint bool
}

// Parser builds typeInfo trees for struct types. Named types listed in
// generated are treated as codecs, their methods are generated alongside.
type Parser struct {
	generated map[*types.TypeName]bool
}

func NewParser(generated []*types.Named) *Parser {
	p := &Parser{
		generated: map[*types.TypeName]bool{},
	}
	for _, named := range generated {
		p.generated[named.Obj()] = true
	}
	return p
}

// ParseStruct returns the field layout of a named struct type.
func (p *Parser) ParseStruct(named *types.Named) (*typeInfo, error) {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("type %v is not a struct", named.Obj().Name())
	}

	info := &typeInfo{Kind: kindCodec, Type: named}
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		tag := reflect.StructTag(st.Tag(i))
		if strings.TrimSpace(tag.Get("abi")) == "-" {
			continue
		}

		fieldType, err := p.parseType(field.Type())
		if err != nil {
			return nil, fmt.Errorf("field %v.%v: %w", named.Obj().Name(), field.Name(), err)
		}

		fi := &fieldInfo{Name: field.Name(), Type: fieldType}
		switch strings.TrimSpace(tag.Get("abi-type")) {
		case "", "auto":
		case "varuint":
			switch fieldType.Kind {
			case kindUint8, kindUint16, kindUint32, kindUint64:
				fi.VarUint = true
			default:
				return nil, fmt.Errorf("field %v.%v: abi-type varuint on non unsigned type %v", named.Obj().Name(), field.Name(), field.Type())
			}
		default:
			return nil, fmt.Errorf("field %v.%v: invalid abi-type tag %q", named.Obj().Name(), field.Name(), tag.Get("abi-type"))
		}

		info.Fields = append(info.Fields, fi)
	}

	return info, nil
}

func (p *Parser) parseType(t types.Type) (*typeInfo, error) {
	t = unalias(t)
	info := &typeInfo{Type: t}

	if named, ok := t.(*types.Named); ok {
		if p.generated[named.Obj()] || hasCodecMethods(named) {
			info.Kind = kindCodec
			return info, nil
		}
	}

	switch ut := t.Underlying().(type) {
	case *types.Basic:
		switch ut.Kind() {
		case types.Bool:
			info.Kind = kindBool
		case types.Uint8:
			info.Kind = kindUint8
		case types.Uint16:
			info.Kind = kindUint16
		case types.Uint32:
			info.Kind = kindUint32
		case types.Uint64:
			info.Kind = kindUint64
		case types.String:
			info.Kind = kindString
		default:
			return nil, fmt.Errorf("unsupported basic type %v", t)
		}
	case *types.Array:
		info.Len = ut.Len()
		if isByte(ut.Elem()) {
			info.Kind = kindFixedBytes
			break
		}
		elem, err := p.parseType(ut.Elem())
		if err != nil {
			return nil, err
		}
		info.Kind = kindArray
		info.Elem = elem
	case *types.Slice:
		if isByte(ut.Elem()) {
			info.Kind = kindBytes
			break
		}
		elem, err := p.parseType(ut.Elem())
		if err != nil {
			return nil, err
		}
		info.Kind = kindSlice
		info.Elem = elem
	case *types.Pointer:
		elem, err := p.parseType(ut.Elem())
		if err != nil {
			return nil, err
		}
		info.Kind = kindOption
		info.Elem = elem
	case *types.Struct:
		return nil, fmt.Errorf("struct type %v needs ABI methods, add it to the generated types", t)
	default:
		return nil, fmt.Errorf("unsupported type %v", t)
	}

	return info, nil
}

// isByte reports whether t is byte itself. Named byte types are encoded
// element by element, the same bytes on the wire.
func isByte(t types.Type) bool {
	return types.Identical(unalias(t), types.Typ[types.Uint8])
}

// hasCodecMethods reports whether *named has both EncodeABI and DecodeABI.
func hasCodecMethods(named *types.Named) bool {
	methods := types.NewMethodSet(types.NewPointer(named))
	hasEncoder := false
	hasDecoder := false
	for i := 0; i < methods.Len(); i++ {
		switch methods.At(i).Obj().Name() {
		case "EncodeABI":
			hasEncoder = true
		case "DecodeABI":
			hasDecoder = true
		}
	}
	return hasEncoder && hasDecoder
}
