// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"fmt"
	"reflect"

	"github.com/pk910/dynamic-abi/abiutils"
)

// unmarshalType is the recursive dispatcher for decoding a value described by
// targetType from src into targetValue, which must be settable. Decoded
// bytes are always copied out of the source buffer.
func (d *DynAbi) unmarshalType(targetType *TypeDescriptor, targetValue reflect.Value, src *abiutils.Source, idt int) error {
	d.logf(idt, "decode: %v\t abi: %v\t custom: %v\t pos: %v", targetType.Type, targetType.AbiType, targetType.HasDecoder, src.Position())

	if targetType.HasDecoder {
		return targetValue.Addr().Interface().(abiutils.Decodable).DecodeABI(src)
	}

	switch targetType.AbiType {
	case AbiBoolType:
		v, err := src.ReadBool()
		if err != nil {
			return err
		}
		targetValue.SetBool(v)
	case AbiUint8Type:
		v, err := src.ReadByte()
		if err != nil {
			return err
		}
		targetValue.SetUint(uint64(v))
	case AbiUint16Type:
		v, err := src.ReadUint16()
		if err != nil {
			return err
		}
		targetValue.SetUint(uint64(v))
	case AbiUint32Type:
		v, err := src.ReadUint32()
		if err != nil {
			return err
		}
		targetValue.SetUint(uint64(v))
	case AbiUint64Type:
		v, err := src.ReadUint64()
		if err != nil {
			return err
		}
		targetValue.SetUint(v)
	case AbiStringType:
		v, err := src.ReadString()
		if err != nil {
			return err
		}
		targetValue.SetString(v)
	case AbiBytesType:
		v, err := src.ReadBytesCopy()
		if err != nil {
			return err
		}
		targetValue.SetBytes(v)
	case AbiFixedBytesType:
		v, err := src.NextBytes(int(targetType.Len))
		if err != nil {
			return err
		}
		reflect.Copy(targetValue, reflect.ValueOf(v))
	case AbiArrayType:
		for i := 0; i < int(targetType.Len); i++ {
			if err := d.unmarshalType(targetType.ElemDesc, targetValue.Index(i), src, idt+2); err != nil {
				return fmt.Errorf("index %v: %w", i, err)
			}
		}
	case AbiSliceType:
		count, err := src.ReadVarUint()
		if err != nil {
			return err
		}
		return d.unmarshalSlice(targetType, targetValue, count, src, idt)
	case AbiStructType:
		return d.unmarshalStruct(targetType, targetValue, src, idt)
	case AbiOptionType:
		present, err := src.ReadBool()
		if err != nil {
			return err
		}
		if !present {
			targetValue.Set(reflect.Zero(targetType.Type))
			return nil
		}
		elemValue := reflect.New(targetType.ElemDesc.Type)
		if err := d.unmarshalType(targetType.ElemDesc, elemValue.Elem(), src, idt+2); err != nil {
			return err
		}
		targetValue.Set(elemValue)
	case AbiUnionType:
		return d.unmarshalUnion(targetType, targetValue, src, idt)
	case AbiCustomType:
		return fmt.Errorf("%w: %v", ErrNoDecoder, targetType.Type)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedType, targetType.Type)
	}

	return nil
}

// unmarshalSlice decodes count elements. The slice is only assigned after
// all elements decoded.
func (d *DynAbi) unmarshalSlice(targetType *TypeDescriptor, targetValue reflect.Value, count uint64, src *abiutils.Source, idt int) error {
	capHint := count
	if remaining := uint64(src.Remaining()); capHint > remaining {
		capHint = remaining
	}

	slice := reflect.MakeSlice(targetType.Type, 0, int(capHint))
	for i := uint64(0); i < count; i++ {
		elemValue := reflect.New(targetType.ElemDesc.Type).Elem()
		if err := d.unmarshalType(targetType.ElemDesc, elemValue, src, idt+2); err != nil {
			return fmt.Errorf("index %v: %w", i, err)
		}
		slice = reflect.Append(slice, elemValue)
	}

	targetValue.Set(slice)
	return nil
}

func (d *DynAbi) unmarshalStruct(targetType *TypeDescriptor, targetValue reflect.Value, src *abiutils.Source, idt int) error {
	for i := range targetType.Fields {
		field := &targetType.Fields[i]
		fieldValue := targetValue.Field(field.Index)

		if field.VarUint {
			v, err := src.ReadVarUint()
			if err != nil {
				return fmt.Errorf("failed decoding field %v: %w", field.Name, err)
			}
			if fieldValue.OverflowUint(v) {
				return fmt.Errorf("failed decoding field %v: %w: varuint %v overflows %v", field.Name, abiutils.ErrIrregularData, v, fieldValue.Type())
			}
			fieldValue.SetUint(v)
			continue
		}

		hasMax := false
		maxLen := uint64(0)
		if field.MaxExpr != "" {
			var err error
			hasMax, maxLen, err = d.getSpecValue(field.MaxExpr)
			if err != nil {
				return err
			}
		}

		// reject oversized counts before decoding any element
		if hasMax && hasLengthPrefix(field.Type) {
			count, err := peekVarUint(src)
			if err != nil {
				return fmt.Errorf("failed decoding field %v: %w", field.Name, err)
			}
			if count > maxLen {
				return fmt.Errorf("field %v: %w: %v items, max %v", field.Name, abiutils.ErrLengthInconsistency, count, maxLen)
			}
		}

		if err := d.unmarshalType(field.Type, fieldValue, src, idt+2); err != nil {
			return fmt.Errorf("failed decoding field %v: %w", field.Name, err)
		}

		if hasMax && uint64(fieldValue.Len()) > maxLen {
			return fmt.Errorf("field %v: %w: %v items, max %v", field.Name, abiutils.ErrLengthInconsistency, fieldValue.Len(), maxLen)
		}
	}

	return nil
}

func hasLengthPrefix(desc *TypeDescriptor) bool {
	if desc.HasDecoder {
		return false
	}
	switch desc.AbiType {
	case AbiSliceType, AbiBytesType, AbiStringType:
		return true
	}
	return false
}

// peekVarUint returns the next varuint without consuming it.
func peekVarUint(src *abiutils.Source) (uint64, error) {
	v, err := src.ReadVarUint()
	if err != nil {
		return 0, err
	}
	src.Backup(abiutils.VarUintSize(v))
	return v, nil
}

func (d *DynAbi) unmarshalUnion(targetType *TypeDescriptor, targetValue reflect.Value, src *abiutils.Source, idt int) error {
	variant, err := src.ReadByte()
	if err != nil {
		return err
	}
	if int(variant) >= len(targetType.UnionVariants) {
		src.Backup(1)
		return fmt.Errorf("%w: unknown union variant %v", abiutils.ErrTypeInconsistency, variant)
	}

	variantType := targetType.UnionVariants[variant]
	dataValue := reflect.New(variantType.Type).Elem()
	if err := d.unmarshalType(variantType, dataValue, src, idt+2); err != nil {
		return err
	}

	targetValue.FieldByName("Variant").SetUint(uint64(variant))
	targetValue.FieldByName("Data").Set(dataValue)
	return nil
}
