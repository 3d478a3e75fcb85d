// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

// Encodable is implemented by types that can append themselves to a Sink.
type Encodable interface {
	EncodeABI(sink *Sink)
}

// Decodable is implemented by types that can rebuild themselves from a Source.
// Implementations must return the first read failure unchanged and must not
// leave a partially decoded value visible to the caller.
type Decodable interface {
	DecodeABI(src *Source) error
}

// Codec is implemented by types that are both encodable and decodable.
type Codec interface {
	Encodable
	Decodable
}

// DecodablePtr constrains a pointer to T that implements Decodable.
type DecodablePtr[T any] interface {
	*T
	Decodable
}

// Decode reads a T from src. On failure the zero value is returned.
func Decode[T any, PT DecodablePtr[T]](src *Source) (T, error) {
	var v T
	if err := PT(&v).DecodeABI(src); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Encode encodes v into a fresh byte slice.
func Encode(v Encodable) []byte {
	sink := NewSink(0)
	v.EncodeABI(sink)
	return sink.Bytes()
}
