// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

// Package wasmhost runs WebAssembly contracts on wazero and serves the
// contract host primitives to them as imports of the "env" module.
package wasmhost

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/pk910/dynamic-abi/hasher"
	"github.com/pk910/dynamic-abi/runtime"
)

var (
	// ErrEngineClosed is returned when using an engine after Close.
	ErrEngineClosed = fmt.Errorf("wasm engine closed")

	// ErrEntryPointNotFound is returned when a contract does not export the entry point.
	ErrEntryPointNotFound = fmt.Errorf("contract entry point not found")

	// ErrCompileFailed wraps wazero compilation errors.
	ErrCompileFailed = fmt.Errorf("contract compilation failed")
)

// Engine compiles and invokes contracts. Compiled modules are cached by the
// sha256 of their code. Every invocation runs in a fresh module instance.
type Engine struct {
	config   *Config
	logger   *zap.Logger
	runtime  wazero.Runtime
	digestFn hasher.DigestFn

	cacheMutex sync.Mutex
	compiled   map[hasher.Digest]wazero.CompiledModule
	closed     bool

	invocations atomic.Uint64
}

// NewEngine creates a wazero runtime and instantiates the host module in it.
func NewEngine(ctx context.Context, cfg *Config, logger *zap.Logger) (*Engine, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	digestFn, err := hasher.GetDigestFn(cfg.DigestAlgorithm)
	if err != nil {
		return nil, err
	}

	runtimeConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(cfg.CloseOnContextDone)
	if cfg.MemoryLimitPages > 0 {
		runtimeConfig = runtimeConfig.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	wasmRuntime := wazero.NewRuntimeWithConfig(ctx, runtimeConfig)

	functions := BuildHostFunctions()
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)

	builder := wasmRuntime.NewHostModuleBuilder(HostModuleName)
	for _, name := range names {
		builder.NewFunctionBuilder().WithFunc(functions[name]).Export(name)
	}
	if _, err := builder.Instantiate(ctx); err != nil {
		_ = wasmRuntime.Close(ctx)
		return nil, fmt.Errorf("failed instantiating host module: %w", err)
	}

	logger.Debug("wasm engine ready",
		zap.Uint32("memory_limit_pages", cfg.MemoryLimitPages),
		zap.String("entry_point", cfg.EntryPoint),
		zap.String("digest", cfg.DigestAlgorithm))

	return &Engine{
		config:   cfg,
		logger:   logger,
		runtime:  wasmRuntime,
		digestFn: digestFn,
		compiled: map[hasher.Digest]wazero.CompiledModule{},
	}, nil
}

// DigestFn returns the digest function served to contracts.
func (e *Engine) DigestFn() hasher.DigestFn {
	return e.digestFn
}

// Compile compiles code, or returns the cached module for identical code.
func (e *Engine) Compile(ctx context.Context, code []byte) (wazero.CompiledModule, error) {
	codeHash := hasher.Sha256Digest(code)

	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}
	if compiled, ok := e.compiled[codeHash]; ok {
		return compiled, nil
	}

	compiled, err := e.runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileFailed, err)
	}

	e.compiled[codeHash] = compiled
	e.logger.Debug("compiled contract", zap.String("code_hash", fmt.Sprintf("%x", codeHash[:])), zap.Int("size", len(code)))
	return compiled, nil
}

// Invoke runs code with input in a new module instance.
//
// Contract failures (aborts, traps, out of bounds memory access) are reported
// in the outcome. The error is only set when the contract could not be run.
func (e *Engine) Invoke(ctx context.Context, code []byte, input []byte) (*runtime.Outcome, error) {
	id := e.invocations.Add(1)
	host := runtime.NewMemoryHost(input,
		runtime.WithDigestFn(e.digestFn),
		runtime.WithLogger(e.logger),
		runtime.WithInvocationID(fmt.Sprintf("%d", id)),
	)
	return e.InvokeWithHost(ctx, code, host)
}

// InvokeWithHost runs code against a caller provided host, so the caller can
// inspect debug lines afterwards.
func (e *Engine) InvokeWithHost(ctx context.Context, code []byte, host *runtime.MemoryHost) (*runtime.Outcome, error) {
	compiled, err := e.Compile(ctx, code)
	if err != nil {
		return nil, err
	}

	if _, ok := compiled.ExportedFunctions()[e.config.EntryPoint]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrEntryPointNotFound, e.config.EntryPoint)
	}

	ctx = WithHost(ctx, host)
	moduleConfig := wazero.NewModuleConfig().WithName("").WithStartFunctions()
	module, err := e.runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("failed instantiating contract: %w", err)
	}
	defer module.Close(ctx)

	_, callErr := module.ExportedFunction(e.config.EntryPoint).Call(ctx)

	if outcome, halted := host.Outcome(); halted {
		return &outcome, nil
	}

	if callErr != nil {
		// trap or context cancellation without a host side halt
		message := callErr.Error()
		var exitErr *sys.ExitError
		if errors.As(callErr, &exitErr) {
			message = fmt.Sprintf("contract exited with code %d", exitErr.ExitCode())
		}
		host.Abort(message)
	} else {
		host.Return(nil)
	}

	outcome, _ := host.Outcome()
	return &outcome, nil
}

// Close releases all compiled modules and the wazero runtime.
func (e *Engine) Close(ctx context.Context) error {
	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.compiled = nil
	return e.runtime.Close(ctx)
}
