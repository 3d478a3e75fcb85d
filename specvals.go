// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/casbin/govaluate"
	"gopkg.in/yaml.v3"
)

type cachedSpecValue struct {
	resolved bool
	value    uint64
}

// getSpecValue resolves an abi-max expression. Plain numbers are parsed
// directly, everything else is evaluated with govaluate against the spec
// values. An expression that references unknown spec values is unresolved.
func (d *DynAbi) getSpecValue(expr string) (bool, uint64, error) {
	d.specMutex.Lock()
	defer d.specMutex.Unlock()

	if cachedValue := d.specValueCache[expr]; cachedValue != nil {
		return cachedValue.resolved, cachedValue.value, nil
	}

	cachedValue := &cachedSpecValue{}
	if value, err := strconv.ParseUint(expr, 10, 64); err == nil {
		cachedValue.resolved = true
		cachedValue.value = value
	} else {
		expression, err := govaluate.NewEvaluableExpression(expr)
		if err != nil {
			return false, 0, fmt.Errorf("error parsing abi-max expression %q: %v", expr, err)
		}

		result, err := expression.Evaluate(d.specValues)
		if err == nil {
			if value, ok := result.(float64); ok && value >= 0 {
				cachedValue.resolved = true
				// lengths are whole numbers, round partial results up
				cachedValue.value = uint64(math.Ceil(value))
			}
		}
	}

	d.specValueCache[expr] = cachedValue
	return cachedValue.resolved, cachedValue.value, nil
}

// LoadSpecValues reads a flat YAML mapping of spec names to values.
func LoadSpecValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSpecValues(data)
}

// ParseSpecValues parses a flat YAML mapping of spec names to values.
func ParseSpecValues(data []byte) (map[string]any, error) {
	specs := map[string]any{}
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed parsing spec values: %w", err)
	}
	return specs, nil
}
