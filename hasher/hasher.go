// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

// Package hasher provides the fixed output digest functions a contract host
// exposes to contracts.
package hasher

import (
	"fmt"
	"sort"
	"sync"

	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
)

// DigestSize is the output size of every registered digest function.
const DigestSize = 32

// Digest is a 32 byte hash output.
type Digest [DigestSize]byte

// DigestFn hashes input into a fixed size digest.
type DigestFn func(input []byte) Digest

// Algorithm names
const (
	Sha256 = "sha256"
	Blake3 = "blake3"
)

// ErrUnknownAlgorithm is returned when a digest algorithm is not registered.
var ErrUnknownAlgorithm = fmt.Errorf("unknown digest algorithm")

var (
	registryMutex sync.RWMutex
	registry      = map[string]DigestFn{
		Sha256: Sha256Digest,
		Blake3: Blake3Digest,
	}
)

// Sha256Digest hashes input with SHA-256.
func Sha256Digest(input []byte) Digest {
	return sha256.Sum256(input)
}

// Blake3Digest hashes input with BLAKE3 in its default 32 byte mode.
func Blake3Digest(input []byte) Digest {
	return blake3.Sum256(input)
}

// GetDigestFn looks up a digest function by name. An empty name selects sha256.
func GetDigestFn(name string) (DigestFn, error) {
	if name == "" {
		name = Sha256
	}

	registryMutex.RLock()
	defer registryMutex.RUnlock()

	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, name)
	}
	return fn, nil
}

// RegisterDigestFn adds or replaces a named digest function.
func RegisterDigestFn(name string, fn DigestFn) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	registry[name] = fn
}

// Algorithms returns the sorted names of all registered digest functions.
func Algorithms() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
