// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

import (
	"encoding/hex"
	"strings"
)

func fromHex(str string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(strings.TrimPrefix(str, "0x"), " ", ""))
	if err != nil {
		panic(err)
	}
	return b
}
