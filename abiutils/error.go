// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package abiutils

// Error is the closed set of decode failure kinds. It carries no payload so
// that values can be compared directly or matched with errors.Is after
// wrapping.
type Error uint8

const (
	// ErrUnexpectedEOF is returned when the buffer ends before a read completes.
	ErrUnexpectedEOF Error = iota + 1
	// ErrIrregularData is returned for bytes that violate a format rule, like a
	// boolean byte other than 0/1 or a varuint that is not minimally encoded.
	ErrIrregularData
	// ErrInvalidUtf8 is returned when a text value is not valid UTF-8.
	ErrInvalidUtf8
	// ErrTypeInconsistency is reserved for composite decoders that detect a
	// discriminant or shape they do not know.
	ErrTypeInconsistency
	// ErrLengthInconsistency is reserved for composite decoders that detect a
	// count or length that does not match the expected structure.
	ErrLengthInconsistency
)

var errorMessages = [...]string{
	ErrUnexpectedEOF:       "unexpected end of ABI data",
	ErrIrregularData:       "irregular ABI data",
	ErrInvalidUtf8:         "invalid utf8 in ABI string",
	ErrTypeInconsistency:   "ABI type inconsistency",
	ErrLengthInconsistency: "ABI length inconsistency",
}

func (e Error) Error() string {
	if e == 0 || int(e) >= len(errorMessages) {
		return "unknown ABI error"
	}
	return errorMessages[e]
}
