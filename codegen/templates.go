// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package codegen

import (
	"embed"
	"text/template"
)

var (
	//go:embed tmpl/*.tmpl
	files embed.FS

	mainTemplate = template.Must(template.ParseFS(files, "tmpl/main.tmpl"))
)

// mainFile is the data passed to tmpl/main.tmpl.
type mainFile struct {
	PackageName string
	Version     string
	TypesHash   string
	Imports     []typeImport
	Code        string
}

type typeImport struct {
	Alias string
	Path  string
}
