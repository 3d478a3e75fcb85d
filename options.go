// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

// Package dynabi provides reflection based ABI encoding and decoding for Go
// values on top of the abiutils wire primitives.
package dynabi

type DynAbiOption func(*DynAbiOptions)

type DynAbiOptions struct {
	Verbose bool
	LogCb   func(format string, args ...any)
}

func WithVerbose() DynAbiOption {
	return func(opts *DynAbiOptions) {
		opts.Verbose = true
	}
}

func WithLogCb(logCb func(format string, args ...any)) DynAbiOption {
	return func(opts *DynAbiOptions) {
		opts.LogCb = logCb
	}
}
