// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

// Package runtime connects contract entry points to the host that runs them.
//
// A contract sees its host through four primitives: it reads its input, it
// returns an output (which ends the invocation), it aborts with a message
// (which also ends the invocation) and it emits debug lines. Hosts also
// provide a 32 byte digest function.
package runtime

import (
	"fmt"
)

// Host is the set of primitives a contract invocation can call.
//
// Return and Abort record the final state of an invocation. Halting the
// contract is the job of the caller, see Execute and the wasmhost package.
type Host interface {
	Input() []byte
	Return(output []byte)
	Abort(message string)
	Debug(message string)
	Digest(data []byte) [32]byte
}

// ErrContractAborted is wrapped by Outcome.Err for aborted invocations.
var ErrContractAborted = fmt.Errorf("contract aborted")

// Outcome is the final state of a contract invocation.
type Outcome struct {
	Output  []byte
	Aborted bool
	Message string
}

// Err returns nil for successful invocations and an error wrapping
// ErrContractAborted otherwise.
func (o *Outcome) Err() error {
	if !o.Aborted {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrContractAborted, o.Message)
}
