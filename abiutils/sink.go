// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

// Sink is an append-only byte buffer used for encoding. Writes never fail.
type Sink struct {
	buf []byte
}

// NewSink creates a new Sink with capHint bytes pre-reserved. The hint only
// sizes the initial allocation, the buffer grows as needed.
func NewSink(capHint int) *Sink {
	if capHint < 0 {
		capHint = 0
	}
	return &Sink{
		buf: make([]byte, 0, capHint),
	}
}

// NewSinkFrom creates a Sink that appends to buf.
func NewSinkFrom(buf []byte) *Sink {
	return &Sink{
		buf: buf,
	}
}

// Write appends an encodable value.
func (s *Sink) Write(v Encodable) {
	v.EncodeABI(s)
}

func (s *Sink) WriteUint8(v uint8) {
	s.buf = append(s.buf, v)
}

// WriteBool writes 1 for true and 0 for false.
func (s *Sink) WriteBool(v bool) {
	s.buf = MarshalBool(s.buf, v)
}

// WriteBytes appends v unchanged, without a length prefix.
func (s *Sink) WriteBytes(v []byte) {
	s.buf = append(s.buf, v...)
}

func (s *Sink) WriteUint16(v uint16) {
	s.buf = MarshalUint16(s.buf, v)
}

func (s *Sink) WriteUint32(v uint32) {
	s.buf = MarshalUint32(s.buf, v)
}

func (s *Sink) WriteUint64(v uint64) {
	s.buf = MarshalUint64(s.buf, v)
}

// WriteUint128 writes v as 16 little endian bytes.
func (s *Sink) WriteUint128(v Uint128) {
	s.buf = MarshalUint64(s.buf, v.Lo)
	s.buf = MarshalUint64(s.buf, v.Hi)
}

// WriteVarUint writes v in its canonical (minimal) varuint form.
func (s *Sink) WriteVarUint(v uint64) {
	s.buf = AppendVarUint(s.buf, v)
}

// WriteVarBytes writes the varuint length of v followed by v.
func (s *Sink) WriteVarBytes(v []byte) {
	s.buf = AppendVarUint(s.buf, uint64(len(v)))
	s.buf = append(s.buf, v...)
}

// WriteString writes v in the length-delimited byte string format.
func (s *Sink) WriteString(v string) {
	s.buf = AppendVarUint(s.buf, uint64(len(v)))
	s.buf = append(s.buf, v...)
}

// Bytes returns the encoded bytes. The slice aliases the sink buffer until the
// next write.
func (s *Sink) Bytes() []byte {
	return s.buf
}

func (s *Sink) Len() int {
	return len(s.buf)
}

// Reset empties the sink but keeps the allocated capacity.
func (s *Sink) Reset() {
	s.buf = s.buf[:0]
}
