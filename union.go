// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"reflect"
)

// CompatibleUnion holds one of several possible types. T is a descriptor
// struct whose fields list the variant types in index order. The descriptor
// is never instantiated.
//
// A union is encoded as the variant index (one byte) followed by the
// encoding of the variant value. Decoding an unknown variant index fails with
// abiutils.ErrTypeInconsistency.
//
// Usage:
//
//	type Payment = dynabi.CompatibleUnion[struct {
//	    Transfer TransferParams
//	    Approve  ApproveParams
//	}]
//
//	call := Payment{
//	    Variant: 0,
//	    Data:    TransferParams{...},
//	}
type CompatibleUnion[T any] struct {
	Variant uint8
	Data    interface{}
}

type unionDescriptor interface {
	GetDescriptorType() reflect.Type
}

// NewCompatibleUnion creates a new CompatibleUnion with the specified variant
// and data. The variant index is the field index in the descriptor struct T.
func NewCompatibleUnion[T any](variantIndex uint8, data interface{}) *CompatibleUnion[T] {
	return &CompatibleUnion[T]{
		Variant: variantIndex,
		Data:    data,
	}
}

// GetDescriptorType returns the reflect.Type of the descriptor struct T.
func (u *CompatibleUnion[T]) GetDescriptorType() reflect.Type {
	var zero *T
	return reflect.TypeOf(zero).Elem()
}
