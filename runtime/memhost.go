// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package runtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pk910/dynamic-abi/hasher"
)

// MemoryHost is a Host that keeps the invocation state in memory.
//
// The first Return or Abort decides the outcome, later calls are ignored.
type MemoryHost struct {
	input        []byte
	digestFn     hasher.DigestFn
	logger       *zap.Logger
	invocationID string

	mutex      sync.Mutex
	debugLines []string
	halted     bool
	outcome    Outcome
}

var _ Host = (*MemoryHost)(nil)

// MemoryHostOption configures a MemoryHost.
type MemoryHostOption func(*MemoryHost)

// WithDigestFn sets the digest function, sha256 by default.
func WithDigestFn(fn hasher.DigestFn) MemoryHostOption {
	return func(h *MemoryHost) {
		h.digestFn = fn
	}
}

// WithLogger sets the logger for debug lines and aborts.
func WithLogger(logger *zap.Logger) MemoryHostOption {
	return func(h *MemoryHost) {
		h.logger = logger
	}
}

// WithInvocationID tags all log entries with the given invocation id.
func WithInvocationID(id string) MemoryHostOption {
	return func(h *MemoryHost) {
		h.invocationID = id
	}
}

// NewMemoryHost creates a host serving input to a single invocation.
func NewMemoryHost(input []byte, opts ...MemoryHostOption) *MemoryHost {
	h := &MemoryHost{
		input:    append([]byte{}, input...),
		digestFn: hasher.Sha256Digest,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.invocationID != "" {
		h.logger = h.logger.With(zap.String("invocation", h.invocationID))
	}
	return h
}

// Input returns a copy of the invocation input.
func (h *MemoryHost) Input() []byte {
	return append([]byte{}, h.input...)
}

// InputLength returns the size of the invocation input.
func (h *MemoryHost) InputLength() int {
	return len(h.input)
}

func (h *MemoryHost) Return(output []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.halted {
		return
	}
	h.halted = true
	h.outcome = Outcome{
		Output: append([]byte{}, output...),
	}
}

func (h *MemoryHost) Abort(message string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.halted {
		return
	}
	h.halted = true
	h.outcome = Outcome{
		Output:  []byte{},
		Aborted: true,
		Message: message,
	}
	h.logger.Warn("contract aborted", zap.String("message", message))
}

func (h *MemoryHost) Debug(message string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.debugLines = append(h.debugLines, message)
	h.logger.Debug("contract debug", zap.String("message", message))
}

func (h *MemoryHost) Digest(data []byte) [32]byte {
	return h.digestFn(data)
}

// DebugLines returns the debug lines emitted so far.
func (h *MemoryHost) DebugLines() []string {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return append([]string{}, h.debugLines...)
}

// Outcome returns the recorded outcome and whether the invocation halted
// through Return or Abort.
func (h *MemoryHost) Outcome() (Outcome, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if !h.halted {
		return Outcome{Output: []byte{}}, false
	}
	return h.outcome, true
}
