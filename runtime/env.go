// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package runtime

import (
	"fmt"

	"github.com/pk910/dynamic-abi/abiutils"
)

// Env is the view of the host a contract entry point works with.
//
// Ret and Abort end the invocation, they never return to the caller.
type Env struct {
	host    Host
	input   []byte
	fetched bool
	outcome *Outcome
}

// halt is the panic value used to unwind an entry after Ret or Abort.
type halt struct{}

// NewEnv wraps host for use by a contract entry.
func NewEnv(host Host) *Env {
	return &Env{
		host: host,
	}
}

// Input returns the invocation input. The host is only asked once.
func (e *Env) Input() []byte {
	if !e.fetched {
		e.input = e.host.Input()
		e.fetched = true
	}
	return e.input
}

// Source returns a new Source over the invocation input.
func (e *Env) Source() *abiutils.Source {
	return abiutils.NewSource(e.Input())
}

// Ret returns output to the caller and ends the invocation.
func (e *Env) Ret(output []byte) {
	e.host.Return(output)
	e.finish(Outcome{Output: append([]byte{}, output...)})
}

// RetValue encodes v and returns it to the caller.
func (e *Env) RetValue(v abiutils.Encodable) {
	e.Ret(abiutils.Encode(v))
}

// Abort cancels the invocation with message.
func (e *Env) Abort(message string) {
	e.host.Abort(message)
	e.finish(Outcome{Output: []byte{}, Aborted: true, Message: message})
}

// Debug emits a debug line to the host.
func (e *Env) Debug(message string) {
	e.host.Debug(message)
}

// Debugf formats and emits a debug line.
func (e *Env) Debugf(format string, args ...any) {
	e.host.Debug(fmt.Sprintf(format, args...))
}

// Sha256 hashes data with the digest function of the host.
func (e *Env) Sha256(data []byte) abiutils.H256 {
	return abiutils.H256(e.host.Digest(data))
}

func (e *Env) finish(outcome Outcome) {
	if e.outcome == nil {
		e.outcome = &outcome
	}
	panic(halt{})
}

// DecodeInput decodes the invocation input into v. Malformed input aborts the
// invocation with the decode error as message.
func DecodeInput(env *Env, v abiutils.Decodable) {
	if err := env.Source().Read(v); err != nil {
		env.Abort(fmt.Sprintf("invalid input: %v", err))
	}
}

// DecodeInputAs decodes the invocation input as T, aborting on malformed input.
func DecodeInputAs[T any, PT abiutils.DecodablePtr[T]](env *Env) T {
	var v T
	DecodeInput(env, PT(&v))
	return v
}
