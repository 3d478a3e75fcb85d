// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package codegen

import (
	"fmt"
	"go/types"
	"sort"
	"strings"
)

// TypePrinter renders go/types types as source code relative to the package
// of the generated file and records the imports they need.
type TypePrinter struct {
	CurrentPkg string
	imports    map[string]string
	aliases    map[string]string
	names      map[string]string
}

func NewTypePrinter(currentPkg string) *TypePrinter {
	return &TypePrinter{
		CurrentPkg: currentPkg,
		imports:    make(map[string]string),
		aliases:    make(map[string]string),
		names:      make(map[string]string),
	}
}

// AddAlias presets the alias used for an import path.
func (p *TypePrinter) AddAlias(path, alias string) {
	p.aliases[path] = alias
}

// AddImport records an import and returns the alias to reference it by. The
// package name is assumed to be the last path element.
func (p *TypePrinter) AddImport(path string) string {
	parts := strings.Split(path, "/")
	return p.addImport(path, parts[len(parts)-1])
}

func (p *TypePrinter) addImport(path, name string) string {
	if path == p.CurrentPkg {
		return ""
	}
	if alias, ok := p.imports[path]; ok {
		return alias
	}

	p.names[path] = name
	alias := p.defaultAlias(path, name)
	base := alias
	for i := 1; containsValue(p.imports, alias); i++ {
		alias = fmt.Sprintf("%s%d", base, i)
	}
	p.imports[path] = alias
	return alias
}

func containsValue(m map[string]string, v string) bool {
	for _, vv := range m {
		if vv == v {
			return true
		}
	}
	return false
}

func (p *TypePrinter) defaultAlias(importPath, name string) string {
	if alias, ok := p.aliases[importPath]; ok {
		return alias
	}
	return strings.ReplaceAll(name, "-", "_")
}

// TypeString returns the source form of t.
func (p *TypePrinter) TypeString(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return p.addImport(pkg.Path(), pkg.Name())
	})
}

// Imports returns the recorded imports sorted by path. Aliases matching the
// package name are dropped.
func (p *TypePrinter) Imports() []typeImport {
	imports := make([]typeImport, 0, len(p.imports))
	for path, alias := range p.imports {
		if alias == p.names[path] {
			alias = ""
		}
		imports = append(imports, typeImport{Alias: alias, Path: path})
	}
	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})
	return imports
}
