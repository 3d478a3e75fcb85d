// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/pk910/dynamic-abi/abiutils"
)

type AbiType uint8

const (
	AbiUnspecifiedType AbiType = iota
	AbiCustomType
	AbiBoolType
	AbiUint8Type
	AbiUint16Type
	AbiUint32Type
	AbiUint64Type
	AbiStringType
	AbiBytesType
	AbiFixedBytesType
	AbiArrayType
	AbiSliceType
	AbiStructType
	AbiOptionType
	AbiUnionType
)

var abiTypeNames = map[AbiType]string{
	AbiUnspecifiedType: "unspecified",
	AbiCustomType:      "custom",
	AbiBoolType:        "bool",
	AbiUint8Type:       "uint8",
	AbiUint16Type:      "uint16",
	AbiUint32Type:      "uint32",
	AbiUint64Type:      "uint64",
	AbiStringType:      "string",
	AbiBytesType:       "bytes",
	AbiFixedBytesType:  "fixed-bytes",
	AbiArrayType:       "array",
	AbiSliceType:       "slice",
	AbiStructType:      "struct",
	AbiOptionType:      "option",
	AbiUnionType:       "union",
}

func (t AbiType) String() string {
	if name, ok := abiTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AbiType(%d)", uint8(t))
}

var (
	encodableType = reflect.TypeOf((*abiutils.Encodable)(nil)).Elem()
	decodableType = reflect.TypeOf((*abiutils.Decodable)(nil)).Elem()
	unionType     = reflect.TypeOf((*unionDescriptor)(nil)).Elem()
	byteType      = reflect.TypeOf(byte(0))
)

// TypeCache manages cached type descriptors
type TypeCache struct {
	dynabi      *DynAbi
	mutex       sync.RWMutex
	descriptors map[reflect.Type]*TypeDescriptor
}

// TypeDescriptor holds the precomputed encoding layout of a Go type.
type TypeDescriptor struct {
	Type           reflect.Type
	Kind           reflect.Kind
	AbiType        AbiType
	Len            uint32            // length of fixed arrays
	ElemDesc       *TypeDescriptor   // element type of arrays, slices and options
	Fields         []FieldDescriptor // struct fields in encoding order
	UnionVariants  []*TypeDescriptor // union variants by index
	HasEncoder     bool              // type or pointer implements abiutils.Encodable
	HasDecoder     bool              // pointer implements abiutils.Decodable
	EncoderByValue bool              // Encodable is implemented on the value receiver
}

// FieldDescriptor describes a struct field that takes part in encoding.
type FieldDescriptor struct {
	Name    string
	Index   int
	Type    *TypeDescriptor
	VarUint bool   // abi-type:"varuint"
	MaxExpr string // abi-max expression
}

// NewTypeCache creates a new type cache
func NewTypeCache(dynabi *DynAbi) *TypeCache {
	return &TypeCache{
		dynabi:      dynabi,
		descriptors: make(map[reflect.Type]*TypeDescriptor),
	}
}

// GetTypeDescriptor returns the cached descriptor for t, building it on first
// use. Descriptors of recursive types reference themselves.
func (tc *TypeCache) GetTypeDescriptor(t reflect.Type) (*TypeDescriptor, error) {
	tc.mutex.RLock()
	if desc, exists := tc.descriptors[t]; exists {
		tc.mutex.RUnlock()
		return desc, nil
	}
	tc.mutex.RUnlock()

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	pending := map[reflect.Type]*TypeDescriptor{}
	desc, err := tc.getTypeDescriptor(t, pending, 0)
	if err != nil {
		return nil, err
	}

	for pt, pdesc := range pending {
		tc.descriptors[pt] = pdesc
	}
	return desc, nil
}

// GetAllTypes returns all cached types.
func (tc *TypeCache) GetAllTypes() []reflect.Type {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()

	types := make([]reflect.Type, 0, len(tc.descriptors))
	for t := range tc.descriptors {
		types = append(types, t)
	}
	return types
}

// RemoveType drops the descriptor of t from the cache.
func (tc *TypeCache) RemoveType(t reflect.Type) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	delete(tc.descriptors, t)
}

// getTypeDescriptor builds descriptors into pending, which only gets merged
// into the cache when the whole tree built without errors.
func (tc *TypeCache) getTypeDescriptor(t reflect.Type, pending map[reflect.Type]*TypeDescriptor, idt int) (*TypeDescriptor, error) {
	if desc, exists := tc.descriptors[t]; exists {
		return desc, nil
	}
	if desc, exists := pending[t]; exists {
		return desc, nil
	}

	desc := &TypeDescriptor{
		Type: t,
		Kind: t.Kind(),
	}
	pending[t] = desc

	if err := tc.buildTypeDescriptor(desc, pending, idt); err != nil {
		delete(pending, t)
		return nil, err
	}

	tc.dynabi.logf(idt, "type: %v\t abi: %v\t encoder: %v\t decoder: %v", t, desc.AbiType, desc.HasEncoder, desc.HasDecoder)
	return desc, nil
}

func (tc *TypeCache) buildTypeDescriptor(desc *TypeDescriptor, pending map[reflect.Type]*TypeDescriptor, idt int) error {
	t := desc.Type

	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		desc.EncoderByValue = t.Implements(encodableType)
		desc.HasEncoder = desc.EncoderByValue || reflect.PointerTo(t).Implements(encodableType)
		desc.HasDecoder = reflect.PointerTo(t).Implements(decodableType)
	}

	if reflect.PointerTo(t).Implements(unionType) {
		return tc.buildUnionDescriptor(desc, pending, idt)
	}

	switch t.Kind() {
	case reflect.Bool:
		desc.AbiType = AbiBoolType
	case reflect.Uint8:
		desc.AbiType = AbiUint8Type
	case reflect.Uint16:
		desc.AbiType = AbiUint16Type
	case reflect.Uint32:
		desc.AbiType = AbiUint32Type
	case reflect.Uint64:
		desc.AbiType = AbiUint64Type
	case reflect.String:
		desc.AbiType = AbiStringType
	case reflect.Array:
		desc.Len = uint32(t.Len())
		// named byte types go through the element path
		if t.Elem() == byteType {
			desc.AbiType = AbiFixedBytesType
			break
		}
		elemDesc, err := tc.getTypeDescriptor(t.Elem(), pending, idt+2)
		if err != nil {
			return err
		}
		desc.AbiType = AbiArrayType
		desc.ElemDesc = elemDesc
	case reflect.Slice:
		if t.Elem() == byteType {
			desc.AbiType = AbiBytesType
			break
		}
		elemDesc, err := tc.getTypeDescriptor(t.Elem(), pending, idt+2)
		if err != nil {
			return err
		}
		desc.AbiType = AbiSliceType
		desc.ElemDesc = elemDesc
	case reflect.Pointer:
		elemDesc, err := tc.getTypeDescriptor(t.Elem(), pending, idt+2)
		if err != nil {
			return err
		}
		desc.AbiType = AbiOptionType
		desc.ElemDesc = elemDesc
	case reflect.Struct:
		if desc.HasEncoder || desc.HasDecoder {
			// custom types don't need their fields to be encodable
			desc.AbiType = AbiCustomType
			break
		}
		if err := tc.buildStructDescriptor(desc, pending, idt); err != nil {
			return err
		}
	default:
		if desc.HasEncoder || desc.HasDecoder {
			desc.AbiType = AbiCustomType
			break
		}
		return fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}

	return nil
}

func (tc *TypeCache) buildStructDescriptor(desc *TypeDescriptor, pending map[reflect.Type]*TypeDescriptor, idt int) error {
	t := desc.Type
	desc.AbiType = AbiStructType
	desc.Fields = make([]FieldDescriptor, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tags, err := parseFieldTags(&field)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		if tags.skip {
			continue
		}

		fieldDesc, err := tc.getTypeDescriptor(field.Type, pending, idt+2)
		if err != nil {
			return fmt.Errorf("field %v.%v: %w", t.Name(), field.Name, err)
		}

		desc.Fields = append(desc.Fields, FieldDescriptor{
			Name:    field.Name,
			Index:   i,
			Type:    fieldDesc,
			VarUint: tags.varUint,
			MaxExpr: tags.maxExpr,
		})
	}

	return nil
}

func (tc *TypeCache) buildUnionDescriptor(desc *TypeDescriptor, pending map[reflect.Type]*TypeDescriptor, idt int) error {
	union := reflect.New(desc.Type).Interface().(unionDescriptor)
	variantsType := union.GetDescriptorType()
	if variantsType.Kind() != reflect.Struct {
		return fmt.Errorf("%w: union descriptor %v is not a struct", ErrUnsupportedType, variantsType)
	}
	if variantsType.NumField() > 256 {
		return fmt.Errorf("%w: union descriptor %v has more than 256 variants", ErrUnsupportedType, variantsType)
	}

	desc.AbiType = AbiUnionType
	desc.UnionVariants = make([]*TypeDescriptor, variantsType.NumField())
	for i := 0; i < variantsType.NumField(); i++ {
		variantDesc, err := tc.getTypeDescriptor(variantsType.Field(i).Type, pending, idt+2)
		if err != nil {
			return fmt.Errorf("union variant %v: %w", i, err)
		}
		desc.UnionVariants[i] = variantDesc
	}
	return nil
}
