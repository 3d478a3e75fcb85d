// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import "encoding/hex"

// Primitive capability types. Each one encodes with the matching Sink
// primitive and decodes with the matching Source primitive.

type (
	Bool    bool
	U8      uint8
	U16     uint16
	U32     uint32
	U64     uint64
	VarUint uint64
	Bytes   []byte
	String  string
)

// Address is a 20 byte account address, written as raw bytes.
type Address [20]byte

// H256 is a 32 byte digest, written as raw bytes.
type H256 [32]byte

var (
	_ Codec = (*Bool)(nil)
	_ Codec = (*U8)(nil)
	_ Codec = (*U16)(nil)
	_ Codec = (*U32)(nil)
	_ Codec = (*U64)(nil)
	_ Codec = (*VarUint)(nil)
	_ Codec = (*Uint128)(nil)
	_ Codec = (*Bytes)(nil)
	_ Codec = (*String)(nil)
	_ Codec = (*Address)(nil)
	_ Codec = (*H256)(nil)
)

func (v Bool) EncodeABI(sink *Sink) { sink.WriteBool(bool(v)) }

func (v *Bool) DecodeABI(src *Source) error {
	b, err := src.ReadBool()
	if err != nil {
		return err
	}
	*v = Bool(b)
	return nil
}

func (v U8) EncodeABI(sink *Sink) { sink.WriteUint8(uint8(v)) }

func (v *U8) DecodeABI(src *Source) error {
	b, err := src.ReadByte()
	if err != nil {
		return err
	}
	*v = U8(b)
	return nil
}

func (v U16) EncodeABI(sink *Sink) { sink.WriteUint16(uint16(v)) }

func (v *U16) DecodeABI(src *Source) error {
	n, err := src.ReadUint16()
	if err != nil {
		return err
	}
	*v = U16(n)
	return nil
}

func (v U32) EncodeABI(sink *Sink) { sink.WriteUint32(uint32(v)) }

func (v *U32) DecodeABI(src *Source) error {
	n, err := src.ReadUint32()
	if err != nil {
		return err
	}
	*v = U32(n)
	return nil
}

func (v U64) EncodeABI(sink *Sink) { sink.WriteUint64(uint64(v)) }

func (v *U64) DecodeABI(src *Source) error {
	n, err := src.ReadUint64()
	if err != nil {
		return err
	}
	*v = U64(n)
	return nil
}

func (v VarUint) EncodeABI(sink *Sink) { sink.WriteVarUint(uint64(v)) }

func (v *VarUint) DecodeABI(src *Source) error {
	n, err := src.ReadVarUint()
	if err != nil {
		return err
	}
	*v = VarUint(n)
	return nil
}

func (v Bytes) EncodeABI(sink *Sink) { sink.WriteVarBytes(v) }

// DecodeABI copies the data, so the value stays valid after the source
// buffer is reused.
func (v *Bytes) DecodeABI(src *Source) error {
	b, err := src.ReadBytesCopy()
	if err != nil {
		return err
	}
	*v = b
	return nil
}

func (v String) EncodeABI(sink *Sink) { sink.WriteString(string(v)) }

func (v *String) DecodeABI(src *Source) error {
	s, err := src.ReadString()
	if err != nil {
		return err
	}
	*v = String(s)
	return nil
}

func (a Address) EncodeABI(sink *Sink) { sink.WriteBytes(a[:]) }

func (a *Address) DecodeABI(src *Source) error {
	return src.ReadInto(a[:])
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (h H256) EncodeABI(sink *Sink) { sink.WriteBytes(h[:]) }

func (h *H256) DecodeABI(src *Source) error {
	return src.ReadInto(h[:])
}

func (h H256) String() string {
	return hex.EncodeToString(h[:])
}
