// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package wasmhost

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap/zaptest"

	"github.com/pk910/dynamic-abi/hasher"
	"github.com/pk910/dynamic-abi/runtime"
)

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()

	ctx := context.Background()
	engine, err := NewEngine(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = engine.Close(ctx)
	})
	return engine
}

func TestInvokeReturn(t *testing.T) {
	engine := newTestEngine(t, nil)
	code := buildContract(ops(i32Const(0), i32Const(4), call(fnReturn)), []byte("ping"))

	outcome, err := engine.Invoke(context.Background(), code, nil)
	require.NoError(t, err)
	require.NoError(t, outcome.Err())
	assert.Equal(t, []byte("ping"), outcome.Output)
}

func TestInvokeEcho(t *testing.T) {
	engine := newTestEngine(t, nil)
	code := buildContract(ops(
		i32Const(0), call(fnGetInput),
		i32Const(0), call(fnInputLength), call(fnReturn),
	), nil)

	for _, input := range [][]byte{{}, {0x01}, {0x03, 0x31, 0x32, 0x33}} {
		outcome, err := engine.Invoke(context.Background(), code, input)
		require.NoError(t, err)
		assert.False(t, outcome.Aborted)
		assert.Equal(t, input, outcome.Output)
	}
}

func TestInvokeAbort(t *testing.T) {
	engine := newTestEngine(t, nil)
	code := buildContract(ops(i32Const(0), i32Const(4), call(fnPanic)), []byte("boom"))

	outcome, err := engine.Invoke(context.Background(), code, nil)
	require.NoError(t, err)
	assert.True(t, outcome.Aborted)
	assert.Equal(t, "boom", outcome.Message)
	assert.ErrorIs(t, outcome.Err(), runtime.ErrContractAborted)
}

func TestInvokeReturnHalts(t *testing.T) {
	engine := newTestEngine(t, nil)
	code := buildContract(ops(
		i32Const(0), i32Const(2), call(fnReturn),
		i32Const(0), i32Const(4), call(fnPanic),
	), []byte("okay"))

	outcome, err := engine.Invoke(context.Background(), code, nil)
	require.NoError(t, err)
	assert.False(t, outcome.Aborted)
	assert.Equal(t, []byte("ok"), outcome.Output)
}

func TestInvokeDebugAndImplicitReturn(t *testing.T) {
	engine := newTestEngine(t, nil)
	code := buildContract(ops(
		i32Const(0), i32Const(5), call(fnDebug),
		i32Const(6), i32Const(5), call(fnDebug),
	), []byte("hello world"))

	host := runtime.NewMemoryHost(nil)
	outcome, err := engine.InvokeWithHost(context.Background(), code, host)
	require.NoError(t, err)
	assert.False(t, outcome.Aborted)
	assert.Empty(t, outcome.Output)
	assert.Equal(t, []string{"hello", "world"}, host.DebugLines())
}

func TestInvokeDigest(t *testing.T) {
	code := buildContract(ops(
		i32Const(0), i32Const(3), i32Const(16), call(fnSha256),
		i32Const(16), i32Const(32), call(fnReturn),
	), []byte("abc"))

	engine := newTestEngine(t, nil)
	outcome, err := engine.Invoke(context.Background(), code, nil)
	require.NoError(t, err)
	expected := sha256.Sum256([]byte("abc"))
	assert.Equal(t, expected[:], outcome.Output)

	blakeEngine := newTestEngine(t, &Config{DigestAlgorithm: hasher.Blake3})
	outcome, err = blakeEngine.Invoke(context.Background(), code, nil)
	require.NoError(t, err)
	expectedBlake := hasher.Blake3Digest([]byte("abc"))
	assert.Equal(t, expectedBlake[:], outcome.Output)
}

func TestInvokeTrap(t *testing.T) {
	engine := newTestEngine(t, nil)
	code := buildContract([]byte{0x00}, nil)

	outcome, err := engine.Invoke(context.Background(), code, nil)
	require.NoError(t, err)
	assert.True(t, outcome.Aborted)
	assert.Contains(t, outcome.Message, "unreachable")
}

func TestInvokeOutOfBounds(t *testing.T) {
	engine := newTestEngine(t, nil)
	code := buildContract(ops(i32Const(65535), i32Const(4), call(fnReturn)), nil)

	outcome, err := engine.Invoke(context.Background(), code, nil)
	require.NoError(t, err)
	assert.True(t, outcome.Aborted)
	assert.Equal(t, "memory read out of bounds: 65535+4", outcome.Message)
}

func TestInvokeErrors(t *testing.T) {
	ctx := context.Background()

	engine := newTestEngine(t, &Config{EntryPoint: "main"})
	_, err := engine.Invoke(ctx, buildContract(nil, nil), nil)
	assert.ErrorIs(t, err, ErrEntryPointNotFound)

	_, err = engine.Invoke(ctx, []byte{0x00, 0x61, 0x73}, nil)
	assert.ErrorIs(t, err, ErrCompileFailed)

	_, err = NewEngine(ctx, &Config{DigestAlgorithm: "md5"}, nil)
	assert.ErrorIs(t, err, hasher.ErrUnknownAlgorithm)
}

func TestCompileCache(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, nil)
	code := buildContract(nil, nil)

	first, err := engine.Compile(ctx, code)
	require.NoError(t, err)
	second, err := engine.Compile(ctx, append([]byte{}, code...))
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, engine.Close(ctx))
	_, err = engine.Compile(ctx, code)
	assert.ErrorIs(t, err, ErrEngineClosed)
	assert.NoError(t, engine.Close(ctx))
}

func TestConfigDefaults(t *testing.T) {
	cfg := (&Config{MemoryLimitPages: 2}).withDefaults()
	assert.Equal(t, uint32(2), cfg.MemoryLimitPages)
	assert.Equal(t, "invoke", cfg.EntryPoint)
	assert.Equal(t, "sha256", cfg.DigestAlgorithm)

	var nilCfg *Config
	assert.Equal(t, DefaultConfig(), nilCfg.withDefaults())
}

// createTestModule instantiates a memory only module the host functions can
// be called against directly.
func createTestModule(t *testing.T) api.Module {
	t.Helper()

	ctx := context.Background()
	wasmRuntime := wazero.NewRuntime(ctx)
	t.Cleanup(func() {
		_ = wasmRuntime.Close(ctx)
	})

	compiled, err := wasmRuntime.CompileModule(ctx, []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x05, 0x03, 0x01, 0x00, 0x01,
	})
	require.NoError(t, err)

	module, err := wasmRuntime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("test_module"))
	require.NoError(t, err)
	return module
}

func TestHostFunctionsDirect(t *testing.T) {
	module := createTestModule(t)
	host := runtime.NewMemoryHost([]byte{0xaa, 0xbb})
	ctx := WithHost(context.Background(), host)

	functions := BuildHostFunctions()
	require.Len(t, functions, 6)

	inputLength, ok := functions["oscore_input_length"].(func(context.Context, api.Module) uint32)
	require.True(t, ok)
	assert.Equal(t, uint32(2), inputLength(ctx, module))

	getInput, ok := functions["oscore_get_input"].(func(context.Context, api.Module, uint32))
	require.True(t, ok)
	getInput(ctx, module, 100)
	data, ok := module.Memory().Read(100, 2)
	require.True(t, ok)
	assert.Equal(t, []byte{0xaa, 0xbb}, data)

	debug, ok := functions["oscore_debug"].(func(context.Context, api.Module, uint32, uint32))
	require.True(t, ok)
	debug(ctx, module, 100, 1)
	assert.Equal(t, []string{"\xaa"}, host.DebugLines())
}

func TestHostFunctionWriteOutOfBounds(t *testing.T) {
	module := createTestModule(t)
	host := runtime.NewMemoryHost([]byte{1, 2, 3, 4})
	ctx := WithHost(context.Background(), host)

	assert.Panics(t, func() {
		oscoreGetInput(ctx, module, 65534)
	})

	outcome, halted := host.Outcome()
	require.True(t, halted)
	assert.True(t, outcome.Aborted)
	assert.Equal(t, "memory write out of bounds: 65534+4", outcome.Message)
}

func TestHostFunctionWithoutHost(t *testing.T) {
	module := createTestModule(t)
	assert.Panics(t, func() {
		oscoreInputLength(context.Background(), module)
	})
}
