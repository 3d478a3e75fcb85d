// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

// Package abiutils implements the ABI wire format shared by contracts and their
// host: an append-only Sink for encoding, a cursor based Source for decoding,
// and the canonical varuint scheme both sides agree on.
//
// Wire format:
//   - fixed width integers are little endian
//   - booleans are one byte, 0 or 1
//   - varuints use one of four tiers (1, 3, 5 or 9 bytes) and must use the
//     smallest tier that fits the value
//   - byte strings and text are a varuint length followed by the raw bytes,
//     text must be valid UTF-8
//   - sequences are a varuint element count followed by the elements
package abiutils
