// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi

import "sync"

var (
	globalDynAbi *DynAbi
	globalMutex  sync.Mutex
)

func GetGlobalDynAbi() *DynAbi {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	if globalDynAbi == nil {
		globalDynAbi = NewDynAbi(nil)
	}
	return globalDynAbi
}

func SetGlobalSpecs(specs map[string]any) {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	globalDynAbi = NewDynAbi(specs)
}
