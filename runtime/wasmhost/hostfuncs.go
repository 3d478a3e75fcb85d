// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package wasmhost

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"

	"github.com/pk910/dynamic-abi/runtime"
)

// HostModuleName is the import module the host functions are exported in.
const HostModuleName = "env"

// exit codes used to terminate a guest after a halting host call
const (
	exitCodeReturn uint32 = 0
	exitCodeAbort  uint32 = 1
)

type hostContextKey struct{}

// WithHost attaches the invocation host to ctx. Host functions called with
// this context operate on host.
func WithHost(ctx context.Context, host runtime.Host) context.Context {
	return context.WithValue(ctx, hostContextKey{}, host)
}

func hostFromContext(ctx context.Context) runtime.Host {
	host, ok := ctx.Value(hostContextKey{}).(runtime.Host)
	if !ok {
		panic("wasmhost: host function called without invocation host")
	}
	return host
}

// BuildHostFunctions returns the host functions keyed by export name.
func BuildHostFunctions() map[string]interface{} {
	return map[string]interface{}{
		"oscore_input_length": oscoreInputLength,
		"oscore_get_input":    oscoreGetInput,
		"oscore_return":       oscoreReturn,
		"oscore_panic":        oscorePanic,
		"oscore_sha256":       oscoreSha256,
		"oscore_debug":        oscoreDebug,
	}
}

func oscoreInputLength(ctx context.Context, m api.Module) uint32 {
	return uint32(len(hostFromContext(ctx).Input()))
}

func oscoreGetInput(ctx context.Context, m api.Module, dst uint32) {
	host := hostFromContext(ctx)
	writeGuest(ctx, m, host, dst, host.Input())
}

func oscoreReturn(ctx context.Context, m api.Module, ptr, length uint32) {
	host := hostFromContext(ctx)
	output := readGuest(ctx, m, host, ptr, length)
	host.Return(output)
	terminate(ctx, m, exitCodeReturn)
}

func oscorePanic(ctx context.Context, m api.Module, ptr, length uint32) {
	host := hostFromContext(ctx)
	message := readGuest(ctx, m, host, ptr, length)
	host.Abort(string(message))
	terminate(ctx, m, exitCodeAbort)
}

func oscoreSha256(ctx context.Context, m api.Module, ptr, length, dst uint32) {
	host := hostFromContext(ctx)
	digest := host.Digest(readGuest(ctx, m, host, ptr, length))
	writeGuest(ctx, m, host, dst, digest[:])
}

func oscoreDebug(ctx context.Context, m api.Module, ptr, length uint32) {
	host := hostFromContext(ctx)
	host.Debug(string(readGuest(ctx, m, host, ptr, length)))
}

// readGuest copies length bytes at ptr out of guest memory. Out of bounds
// access aborts the invocation.
func readGuest(ctx context.Context, m api.Module, host runtime.Host, ptr, length uint32) []byte {
	mem := m.Memory()
	if mem == nil {
		abortGuest(ctx, m, host, "contract has no memory")
	}
	data, ok := mem.Read(ptr, length)
	if !ok {
		abortGuest(ctx, m, host, fmt.Sprintf("memory read out of bounds: %d+%d", ptr, length))
	}
	return append([]byte{}, data...)
}

func writeGuest(ctx context.Context, m api.Module, host runtime.Host, dst uint32, data []byte) {
	mem := m.Memory()
	if mem == nil {
		abortGuest(ctx, m, host, "contract has no memory")
	}
	if !mem.Write(dst, data) {
		abortGuest(ctx, m, host, fmt.Sprintf("memory write out of bounds: %d+%d", dst, len(data)))
	}
}

func abortGuest(ctx context.Context, m api.Module, host runtime.Host, message string) {
	host.Abort(message)
	terminate(ctx, m, exitCodeAbort)
}

// terminate closes the guest and unwinds the host call, the same way wasi
// proc_exit stops a module.
func terminate(ctx context.Context, m api.Module, code uint32) {
	_ = m.CloseWithExitCode(ctx, code)
	panic(sys.NewExitError(code))
}
