// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package codegen

import (
	"runtime/debug"
)

// Version is the dynamic-abi module version written into generated file
// headers, "unknown" when the build info does not contain it.
var Version = "unknown"

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path == "github.com/pk910/dynamic-abi" && info.Main.Version != "" {
			Version = info.Main.Version
			return
		}
		for _, dep := range info.Deps {
			if dep.Path == "github.com/pk910/dynamic-abi" {
				Version = dep.Version
				break
			}
		}
	}
}
