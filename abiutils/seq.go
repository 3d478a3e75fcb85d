// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

// WriteSeq writes the varuint element count followed by each element.
func WriteSeq[T any](sink *Sink, items []T, itemFn func(sink *Sink, item T)) {
	sink.WriteVarUint(uint64(len(items)))
	for _, item := range items {
		itemFn(sink, item)
	}
}

// WriteEncodableSeq is WriteSeq for element types implementing Encodable.
func WriteEncodableSeq[T Encodable](sink *Sink, items []T) {
	sink.WriteVarUint(uint64(len(items)))
	for _, item := range items {
		item.EncodeABI(sink)
	}
}

// ReadSeq reads a varuint element count and then exactly that many elements.
// The first element failure is returned unchanged and no partial result is
// returned.
func ReadSeq[T any](src *Source, itemFn func(src *Source) (T, error)) ([]T, error) {
	count, err := src.ReadVarUint()
	if err != nil {
		return nil, err
	}

	// count is untrusted input, only preallocate what the buffer could hold.
	capHint := count
	if remaining := uint64(src.Remaining()); capHint > remaining {
		capHint = remaining
	}

	items := make([]T, 0, capHint)
	for i := uint64(0); i < count; i++ {
		item, err := itemFn(src)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ReadDecodableSeq is ReadSeq for element types whose pointer implements
// Decodable.
func ReadDecodableSeq[T any, PT DecodablePtr[T]](src *Source) ([]T, error) {
	return ReadSeq(src, Decode[T, PT])
}

// WriteOption writes a presence flag and, if v is non-nil, the value.
func WriteOption[T any](sink *Sink, v *T, itemFn func(sink *Sink, item T)) {
	if v == nil {
		sink.WriteBool(false)
		return
	}
	sink.WriteBool(true)
	itemFn(sink, *v)
}

// ReadOption reads a presence flag and, if set, the value.
func ReadOption[T any](src *Source, itemFn func(src *Source) (T, error)) (*T, error) {
	present, err := src.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := itemFn(src)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
