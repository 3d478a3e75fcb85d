// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"fmt"
	"math/big"
)

// Uint128 is an unsigned 128 bit integer, split into two 64 bit halves.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// NewUint128 returns v as Uint128.
func NewUint128(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Uint128FromBig converts b, which must be in [0, 2^128).
func Uint128FromBig(b *big.Int) (Uint128, error) {
	if b.Sign() < 0 || b.Cmp(maxUint128) > 0 {
		return Uint128{}, fmt.Errorf("value %v out of uint128 range", b)
	}
	lo := new(big.Int).And(b, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(b, 64)
	return Uint128{Lo: lo.Uint64(), Hi: hi.Uint64()}, nil
}

// ParseUint128 parses a decimal or 0x-prefixed hex string.
func ParseUint128(s string) (Uint128, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Uint128{}, fmt.Errorf("invalid uint128 %q", s)
	}
	return Uint128FromBig(b)
}

func (u Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) IsZero() bool {
	return u.Lo == 0 && u.Hi == 0
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%d", u.Lo)
	}
	return u.Big().String()
}

func (u Uint128) EncodeABI(sink *Sink) {
	sink.WriteUint128(u)
}

func (u *Uint128) DecodeABI(src *Source) error {
	v, err := src.ReadUint128()
	if err != nil {
		return err
	}
	*u = v
	return nil
}
