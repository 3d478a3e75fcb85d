// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import "unicode/utf8"

// Source is a read cursor over a byte slice it does not own.
//
// Every successful read advances the cursor by exactly the number of bytes
// consumed, a failed read leaves it where it was. Slices returned by
// ReadBytes and NextBytes alias the underlying buffer: the caller must not
// modify the buffer while such a slice is in use. Use ReadBytesCopy when the
// result has to outlive the buffer contents.
type Source struct {
	buf []byte
	pos int
}

// NewSource creates a Source positioned at the start of buf. buf is not copied.
func NewSource(buf []byte) *Source {
	return &Source{
		buf: buf,
	}
}

// Read decodes a decodable value at the current position.
func (s *Source) Read(v Decodable) error {
	return v.DecodeABI(s)
}

func (s *Source) Position() int {
	return s.pos
}

// Len returns the total length of the underlying buffer.
func (s *Source) Len() int {
	return len(s.buf)
}

// Remaining returns the number of unread bytes.
func (s *Source) Remaining() int {
	return len(s.buf) - s.pos
}

// NextBytes returns the next n bytes without copying.
func (s *Source) NextBytes(n int) ([]byte, error) {
	if n < 0 || s.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	b := s.buf[s.pos : s.pos+n : s.pos+n]
	s.pos += n
	return b, nil
}

// ReadInto fills buf with the next len(buf) bytes.
func (s *Source) ReadInto(buf []byte) error {
	b, err := s.NextBytes(len(buf))
	if err != nil {
		return err
	}
	copy(buf, b)
	return nil
}

// ReadByte reads a single byte.
func (s *Source) ReadByte() (byte, error) {
	if s.pos >= len(s.buf) {
		return 0, ErrUnexpectedEOF
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// ReadBool reads a boolean byte. Only 0 and 1 are accepted.
func (s *Source) ReadBool() (bool, error) {
	if s.pos >= len(s.buf) {
		return false, ErrUnexpectedEOF
	}
	switch s.buf[s.pos] {
	case 0:
		s.pos++
		return false, nil
	case 1:
		s.pos++
		return true, nil
	default:
		return false, ErrIrregularData
	}
}

func (s *Source) ReadUint16() (uint16, error) {
	if s.Remaining() < 2 {
		return 0, ErrUnexpectedEOF
	}
	v := UnmarshalUint16(s.buf[s.pos:])
	s.pos += 2
	return v, nil
}

func (s *Source) ReadUint32() (uint32, error) {
	if s.Remaining() < 4 {
		return 0, ErrUnexpectedEOF
	}
	v := UnmarshalUint32(s.buf[s.pos:])
	s.pos += 4
	return v, nil
}

func (s *Source) ReadUint64() (uint64, error) {
	if s.Remaining() < 8 {
		return 0, ErrUnexpectedEOF
	}
	v := UnmarshalUint64(s.buf[s.pos:])
	s.pos += 8
	return v, nil
}

// ReadUint128 reads 16 little endian bytes.
func (s *Source) ReadUint128() (Uint128, error) {
	if s.Remaining() < 16 {
		return Uint128{}, ErrUnexpectedEOF
	}
	v := Uint128{
		Lo: UnmarshalUint64(s.buf[s.pos:]),
		Hi: UnmarshalUint64(s.buf[s.pos+8:]),
	}
	s.pos += 16
	return v, nil
}

// ReadVarUint reads a varuint and rejects any non-minimal encoding with
// ErrIrregularData.
func (s *Source) ReadVarUint() (uint64, error) {
	v, n, err := ParseVarUint(s.buf[s.pos:])
	if err != nil {
		return 0, err
	}
	s.pos += n
	return v, nil
}

// ReadBytes reads a varuint length followed by that many bytes. The returned
// slice aliases the source buffer.
func (s *Source) ReadBytes() ([]byte, error) {
	start := s.pos
	n, err := s.ReadVarUint()
	if err != nil {
		return nil, err
	}
	if n > uint64(s.Remaining()) {
		s.pos = start
		return nil, ErrUnexpectedEOF
	}
	return s.NextBytes(int(n))
}

// ReadBytesCopy is like ReadBytes but returns a copy of the data.
func (s *Source) ReadBytesCopy() ([]byte, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return nil, err
	}
	return append(make([]byte, 0, len(b)), b...), nil
}

// ReadString reads a length-delimited byte string and validates it as UTF-8.
func (s *Source) ReadString() (string, error) {
	start := s.pos
	b, err := s.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		s.pos = start
		return "", ErrInvalidUtf8
	}
	return string(b), nil
}

// Skip advances the cursor by n bytes.
func (s *Source) Skip(n int) error {
	if n < 0 || s.Remaining() < n {
		return ErrUnexpectedEOF
	}
	s.pos += n
	return nil
}

// Backup moves the cursor back by n bytes. Rewinding past the start of the
// buffer is a programming error and panics.
func (s *Source) Backup(n int) {
	if n < 0 || n > s.pos {
		panic("abiutils: backup beyond start of source")
	}
	s.pos -= n
}
