// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package wasmhost

// Minimal wasm binary builder for hand assembled test contracts. Every
// contract imports all host functions in the order below and exports a single
// "invoke" function with the given body.

const (
	fnInputLength = iota
	fnGetInput
	fnReturn
	fnPanic
	fnDebug
	fnSha256
	fnInvoke
)

var testImports = []struct {
	name string
	typ  byte
}{
	{"oscore_input_length", 1},
	{"oscore_get_input", 2},
	{"oscore_return", 3},
	{"oscore_panic", 3},
	{"oscore_debug", 3},
	{"oscore_sha256", 4},
}

func uleb(v uint32) []byte {
	out := []byte{}
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func sleb(v int32) []byte {
	out := []byte{}
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func wasmSection(id byte, content []byte) []byte {
	out := append([]byte{id}, uleb(uint32(len(content)))...)
	return append(out, content...)
}

func i32Const(v int32) []byte {
	return append([]byte{0x41}, sleb(v)...)
}

func call(idx uint32) []byte {
	return append([]byte{0x10}, uleb(idx)...)
}

func ops(parts ...[]byte) []byte {
	out := []byte{}
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

func buildContract(body []byte, data []byte) []byte {
	module := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	module = append(module, wasmSection(0x01, []byte{
		0x05,
		0x60, 0x00, 0x00, // () -> ()
		0x60, 0x00, 0x01, 0x7f, // () -> i32
		0x60, 0x01, 0x7f, 0x00, // (i32) -> ()
		0x60, 0x02, 0x7f, 0x7f, 0x00, // (i32, i32) -> ()
		0x60, 0x03, 0x7f, 0x7f, 0x7f, 0x00, // (i32, i32, i32) -> ()
	})...)

	imports := uleb(uint32(len(testImports)))
	for _, imp := range testImports {
		imports = append(imports, wasmName(HostModuleName)...)
		imports = append(imports, wasmName(imp.name)...)
		imports = append(imports, 0x00, imp.typ)
	}
	module = append(module, wasmSection(0x02, imports)...)

	module = append(module, wasmSection(0x03, []byte{0x01, 0x00})...)
	module = append(module, wasmSection(0x05, []byte{0x01, 0x00, 0x01})...)

	exports := append([]byte{0x01}, wasmName("invoke")...)
	exports = append(exports, 0x00)
	exports = append(exports, uleb(fnInvoke)...)
	module = append(module, wasmSection(0x07, exports)...)

	code := append([]byte{0x00}, body...)
	code = append(code, 0x0b)
	module = append(module, wasmSection(0x0a, append(append([]byte{0x01}, uleb(uint32(len(code)))...), code...))...)

	if len(data) > 0 {
		segment := []byte{0x01, 0x00}
		segment = append(segment, i32Const(0)...)
		segment = append(segment, 0x0b)
		segment = append(segment, uleb(uint32(len(data)))...)
		segment = append(segment, data...)
		module = append(module, wasmSection(0x0b, segment)...)
	}

	return module
}
