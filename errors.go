// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import "fmt"

var (
	ErrUnsupportedType = fmt.Errorf("unsupported type")
	ErrNilValue        = fmt.Errorf("cannot marshal nil value")
	ErrNotPointer      = fmt.Errorf("unmarshal target must be a non-nil pointer")
	ErrMaxExceeded     = fmt.Errorf("length exceeds abi-max limit")
	ErrNoEncoder       = fmt.Errorf("type has a custom decoder but no encoder")
	ErrNoDecoder       = fmt.Errorf("type has a custom encoder but no decoder")
)
