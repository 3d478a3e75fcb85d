// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package wasmhost

// Config controls the sandbox an Engine runs contracts in.
type Config struct {
	// MemoryLimitPages caps guest memory, one page is 64KiB. 0 uses the wazero default.
	MemoryLimitPages uint32 `yaml:"memoryLimitPages"`

	// EntryPoint is the exported function called for each invocation.
	EntryPoint string `yaml:"entryPoint"`

	// DigestAlgorithm selects the function behind oscore_sha256.
	DigestAlgorithm string `yaml:"digestAlgorithm"`

	// CloseOnContextDone stops running contracts when the invocation context ends.
	CloseOnContextDone bool `yaml:"closeOnContextDone"`
}

// DefaultConfig returns the default sandbox configuration.
func DefaultConfig() *Config {
	return &Config{
		MemoryLimitPages:   256,
		EntryPoint:         "invoke",
		DigestAlgorithm:    "sha256",
		CloseOnContextDone: true,
	}
}

func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}

	cfg := *c
	if cfg.EntryPoint == "" {
		cfg.EntryPoint = defaults.EntryPoint
	}
	if cfg.DigestAlgorithm == "" {
		cfg.DigestAlgorithm = defaults.DigestAlgorithm
	}
	return &cfg
}
