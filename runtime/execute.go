// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package runtime

import (
	"fmt"
)

// Entry is an in-process contract entry point.
type Entry func(env *Env)

// Execute runs entry against host and returns the outcome.
//
// An entry that returns without calling Ret produces an empty output. A Go
// panic inside the entry aborts the invocation with the panic message.
func Execute(host Host, entry Entry) (outcome Outcome) {
	env := NewEnv(host)

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if _, ok := r.(halt); ok && env.outcome != nil {
			outcome = *env.outcome
			return
		}

		message := panicMessage(r)
		host.Abort(message)
		outcome = Outcome{Output: []byte{}, Aborted: true, Message: message}
	}()

	entry(env)

	// the entry swallowed the halt of Ret or Abort
	if env.outcome != nil {
		return *env.outcome
	}

	host.Return(nil)
	return Outcome{Output: []byte{}}
}

func panicMessage(r any) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
