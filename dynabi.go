// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/pk910/dynamic-abi/abiutils"
)

// DynAbi is a reflection based ABI encoder/decoder for Go values.
//
// Values are encoded field by field with the abiutils primitives: fixed width
// little endian integers, one byte booleans, varuint length prefixed strings,
// byte strings and sequences. Types that implement abiutils.Encodable or
// abiutils.Decodable are delegated to their own implementation.
//
// The instance caches type descriptors and resolved abi-max expressions. It is
// safe for concurrent use.
//
// Example usage:
//
//	specs := map[string]any{
//	    "MAX_TASKS": uint64(64),
//	}
//	da := dynabi.NewDynAbi(specs)
//
//	data, err := da.Marshal(request)
//	err = da.Unmarshal(&request, data)
type DynAbi struct {
	typeCache      *TypeCache
	specValues     map[string]any
	specValueCache map[string]*cachedSpecValue
	specMutex      sync.Mutex

	// Verbose enables tracing of descriptor building and encoding dispatch.
	Verbose bool
	LogCb   func(format string, args ...any)
}

// NewDynAbi creates a new DynAbi instance.
//
// The specs map provides the values abi-max expressions are evaluated against.
// It can be nil when no struct uses spec based limits.
func NewDynAbi(specs map[string]any, options ...DynAbiOption) *DynAbi {
	if specs == nil {
		specs = map[string]any{}
	}

	opts := &DynAbiOptions{}
	for _, option := range options {
		option(opts)
	}

	dynabi := &DynAbi{
		specValues:     specs,
		specValueCache: map[string]*cachedSpecValue{},
		Verbose:        opts.Verbose,
		LogCb:          opts.LogCb,
	}
	dynabi.typeCache = NewTypeCache(dynabi)

	return dynabi
}

// GetTypeCache returns the type descriptor cache of this instance.
func (d *DynAbi) GetTypeCache() *TypeCache {
	return d.typeCache
}

func (d *DynAbi) logf(idt int, format string, args ...any) {
	if !d.Verbose {
		return
	}
	format = strings.Repeat(" ", idt) + format
	if d.LogCb != nil {
		d.LogCb(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}

// Marshal encodes source into a new byte slice.
//
// Top level pointers are dereferenced, a nil source is an error. Nested
// pointers are encoded as optional values.
func (d *DynAbi) Marshal(source any) ([]byte, error) {
	sink := abiutils.NewSink(64)
	if err := d.MarshalTo(sink, source); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// MarshalTo encodes source and appends it to sink. On error the sink may
// contain a partial encoding.
func (d *DynAbi) MarshalTo(sink *abiutils.Sink, source any) error {
	sourceValue := reflect.ValueOf(source)
	for sourceValue.Kind() == reflect.Pointer {
		if sourceValue.IsNil() {
			return ErrNilValue
		}
		sourceValue = sourceValue.Elem()
	}
	if !sourceValue.IsValid() {
		return ErrNilValue
	}

	sourceDesc, err := d.typeCache.GetTypeDescriptor(sourceValue.Type())
	if err != nil {
		return err
	}

	return d.marshalType(sourceDesc, sourceValue, sink, 0)
}

// Size returns the encoded size of source.
func (d *DynAbi) Size(source any) (int, error) {
	data, err := d.Marshal(source)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// Unmarshal decodes data into target, which must be a non-nil pointer.
//
// The whole buffer has to be consumed, trailing bytes fail with
// abiutils.ErrLengthInconsistency. target is only modified when decoding
// succeeds.
func (d *DynAbi) Unmarshal(target any, data []byte) error {
	src := abiutils.NewSource(data)
	if err := d.UnmarshalFrom(src, target); err != nil {
		return err
	}
	if src.Remaining() > 0 {
		return fmt.Errorf("%w: %d trailing bytes", abiutils.ErrLengthInconsistency, src.Remaining())
	}
	return nil
}

// UnmarshalFrom decodes one value from src into target. target is only
// modified when decoding succeeds, the source cursor is left wherever the
// failure occurred.
func (d *DynAbi) UnmarshalFrom(src *abiutils.Source, target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Pointer || targetValue.IsNil() {
		return ErrNotPointer
	}

	targetType := targetValue.Type().Elem()
	targetDesc, err := d.typeCache.GetTypeDescriptor(targetType)
	if err != nil {
		return err
	}

	decoded := reflect.New(targetType).Elem()
	if err := d.unmarshalType(targetDesc, decoded, src, 0); err != nil {
		return err
	}

	targetValue.Elem().Set(decoded)
	return nil
}
