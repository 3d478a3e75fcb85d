// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/pk910/dynamic-abi/abiutils"
)

// marshalType is the recursive dispatcher for encoding a value described by
// sourceType into sink. Custom encoders take precedence over the kind based
// encoding.
func (d *DynAbi) marshalType(sourceType *TypeDescriptor, sourceValue reflect.Value, sink *abiutils.Sink, idt int) error {
	d.logf(idt, "encode: %v\t abi: %v\t custom: %v", sourceType.Type, sourceType.AbiType, sourceType.HasEncoder)

	if sourceType.HasEncoder {
		return marshalCustom(sourceType, sourceValue, sink)
	}

	switch sourceType.AbiType {
	case AbiBoolType:
		sink.WriteBool(sourceValue.Bool())
	case AbiUint8Type:
		sink.WriteUint8(uint8(sourceValue.Uint()))
	case AbiUint16Type:
		sink.WriteUint16(uint16(sourceValue.Uint()))
	case AbiUint32Type:
		sink.WriteUint32(uint32(sourceValue.Uint()))
	case AbiUint64Type:
		sink.WriteUint64(sourceValue.Uint())
	case AbiStringType:
		str := sourceValue.String()
		if !utf8.ValidString(str) {
			return abiutils.ErrInvalidUtf8
		}
		sink.WriteString(str)
	case AbiBytesType:
		sink.WriteVarBytes(sourceValue.Bytes())
	case AbiFixedBytesType:
		buf := make([]byte, sourceType.Len)
		reflect.Copy(reflect.ValueOf(buf), sourceValue)
		sink.WriteBytes(buf)
	case AbiArrayType:
		for i := 0; i < int(sourceType.Len); i++ {
			if err := d.marshalType(sourceType.ElemDesc, sourceValue.Index(i), sink, idt+2); err != nil {
				return fmt.Errorf("index %v: %w", i, err)
			}
		}
	case AbiSliceType:
		count := sourceValue.Len()
		sink.WriteVarUint(uint64(count))
		for i := 0; i < count; i++ {
			if err := d.marshalType(sourceType.ElemDesc, sourceValue.Index(i), sink, idt+2); err != nil {
				return fmt.Errorf("index %v: %w", i, err)
			}
		}
	case AbiStructType:
		return d.marshalStruct(sourceType, sourceValue, sink, idt)
	case AbiOptionType:
		if sourceValue.IsNil() {
			sink.WriteBool(false)
			return nil
		}
		sink.WriteBool(true)
		return d.marshalType(sourceType.ElemDesc, sourceValue.Elem(), sink, idt+2)
	case AbiUnionType:
		return d.marshalUnion(sourceType, sourceValue, sink, idt)
	case AbiCustomType:
		return fmt.Errorf("%w: %v", ErrNoEncoder, sourceType.Type)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedType, sourceType.Type)
	}

	return nil
}

func marshalCustom(sourceType *TypeDescriptor, sourceValue reflect.Value, sink *abiutils.Sink) error {
	if sourceType.EncoderByValue {
		sourceValue.Interface().(abiutils.Encodable).EncodeABI(sink)
		return nil
	}

	if !sourceValue.CanAddr() {
		addressable := reflect.New(sourceType.Type).Elem()
		addressable.Set(sourceValue)
		sourceValue = addressable
	}
	sourceValue.Addr().Interface().(abiutils.Encodable).EncodeABI(sink)
	return nil
}

// marshalStruct encodes all exported fields in declaration order.
func (d *DynAbi) marshalStruct(sourceType *TypeDescriptor, sourceValue reflect.Value, sink *abiutils.Sink, idt int) error {
	for i := range sourceType.Fields {
		field := &sourceType.Fields[i]
		fieldValue := sourceValue.Field(field.Index)

		if err := d.checkFieldMax(field, fieldValue); err != nil {
			return err
		}

		if field.VarUint {
			sink.WriteVarUint(fieldValue.Uint())
			continue
		}

		if err := d.marshalType(field.Type, fieldValue, sink, idt+2); err != nil {
			return fmt.Errorf("failed encoding field %v: %w", field.Name, err)
		}
	}

	return nil
}

func (d *DynAbi) checkFieldMax(field *FieldDescriptor, fieldValue reflect.Value) error {
	if field.MaxExpr == "" {
		return nil
	}

	hasMax, maxLen, err := d.getSpecValue(field.MaxExpr)
	if err != nil {
		return err
	}
	if hasMax && uint64(fieldValue.Len()) > maxLen {
		return fmt.Errorf("%w: field %v has %v items, max %v", ErrMaxExceeded, field.Name, fieldValue.Len(), maxLen)
	}
	return nil
}

func (d *DynAbi) marshalUnion(sourceType *TypeDescriptor, sourceValue reflect.Value, sink *abiutils.Sink, idt int) error {
	variant := sourceValue.FieldByName("Variant").Uint()
	data := sourceValue.FieldByName("Data")

	if variant >= uint64(len(sourceType.UnionVariants)) {
		return fmt.Errorf("%w: union variant %v out of range", abiutils.ErrTypeInconsistency, variant)
	}

	variantType := sourceType.UnionVariants[variant]
	if data.IsNil() {
		return fmt.Errorf("%w: union variant %v has no data", abiutils.ErrTypeInconsistency, variant)
	}
	dataValue := data.Elem()
	if dataValue.Type() != variantType.Type {
		return fmt.Errorf("%w: union variant %v expects %v, got %v", abiutils.ErrTypeInconsistency, variant, variantType.Type, dataValue.Type())
	}

	sink.WriteUint8(uint8(variant))
	return d.marshalType(variantType, dataValue, sink, idt+2)
}
