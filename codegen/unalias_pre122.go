//go:build !go1.22

package codegen

import "go/types"

// unalias is the identity before go1.22: go/types has no Alias type there.
func unalias(t types.Type) types.Type { return t }
