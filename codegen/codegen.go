// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

// Package codegen generates EncodeABI/DecodeABI methods for Go struct types,
// so they can be encoded without reflection.
//
// The generated methods follow the same field rules as the reflection codec:
// exported fields in declaration order, `abi:"-"` fields skipped,
// `abi-type:"varuint"` on unsigned integers, pointers as optional values.
// Nested struct types must either be generated in the same run or already
// implement both methods.
package codegen

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"go/format"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pk910/dynamic-abi/hasher"
)

const abiutilsPath = "github.com/pk910/dynamic-abi/abiutils"

// CodeGeneratorOption configures a generation request.
type CodeGeneratorOption func(*CodeGeneratorOptions)

// CodeGeneratorOptions holds the per file generation settings.
type CodeGeneratorOptions struct {
	NoEncoder bool
	NoDecoder bool
}

// WithNoEncoder skips the EncodeABI methods.
func WithNoEncoder() CodeGeneratorOption {
	return func(opts *CodeGeneratorOptions) {
		opts.NoEncoder = true
	}
}

// WithNoDecoder skips the DecodeABI methods.
func WithNoDecoder() CodeGeneratorOption {
	return func(opts *CodeGeneratorOptions) {
		opts.NoDecoder = true
	}
}

type fileRequest struct {
	FileName string
	Package  *types.Package
	Types    []*types.Named
	Options  CodeGeneratorOptions
}

// CodeGenerator collects generation requests and renders them into files.
type CodeGenerator struct {
	files []*fileRequest
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// BuildFile requests a file with methods for the given types. All types of a
// file have to be declared in the same package.
func (cg *CodeGenerator) BuildFile(fileName string, namedTypes []*types.Named, opts ...CodeGeneratorOption) error {
	if len(namedTypes) == 0 {
		return fmt.Errorf("no types requested for %v", fileName)
	}

	var pkg *types.Package
	for _, named := range namedTypes {
		typePkg := named.Obj().Pkg()
		if typePkg == nil {
			return fmt.Errorf("type %v has no package", named.Obj().Name())
		}
		if pkg == nil {
			pkg = typePkg
		} else if pkg.Path() != typePkg.Path() {
			return fmt.Errorf("type %v has different package path than %v. cannot combine types from different packages in a single file", named.Obj().Name(), namedTypes[0].Obj().Name())
		}
	}

	request := &fileRequest{
		FileName: fileName,
		Package:  pkg,
		Types:    namedTypes,
	}
	for _, opt := range opts {
		opt(&request.Options)
	}
	if request.Options.NoEncoder && request.Options.NoDecoder {
		return fmt.Errorf("nothing to generate for %v", fileName)
	}

	cg.files = append(cg.files, request)
	return nil
}

// GenerateToMap renders all requested files and returns them keyed by file name.
func (cg *CodeGenerator) GenerateToMap() (map[string]string, error) {
	if len(cg.files) == 0 {
		return nil, fmt.Errorf("no types requested for generation")
	}

	allTypes := []*types.Named{}
	for _, file := range cg.files {
		allTypes = append(allTypes, file.Types...)
	}
	parser := NewParser(allTypes)

	results := make(map[string]string, len(cg.files))
	for _, file := range cg.files {
		code, err := cg.generateFile(parser, file)
		if err != nil {
			return nil, fmt.Errorf("failed to generate code for %v: %w", file.FileName, err)
		}
		results[file.FileName] = code
	}

	return results, nil
}

// Generate renders all requested files and writes them to disk.
func (cg *CodeGenerator) Generate() error {
	results, err := cg.GenerateToMap()
	if err != nil {
		return err
	}

	fileNames := make([]string, 0, len(results))
	for fileName := range results {
		fileNames = append(fileNames, fileName)
	}
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		dir := filepath.Dir(fileName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		if err := os.WriteFile(fileName, []byte(results[fileName]), 0o644); err != nil {
			return fmt.Errorf("failed to write code to file %s: %w", fileName, err)
		}
	}

	return nil
}

func (cg *CodeGenerator) generateFile(parser *Parser, file *fileRequest) (string, error) {
	typePrinter := NewTypePrinter(file.Package.Path())
	typePrinter.AddImport(abiutilsPath)

	codeBuilder := strings.Builder{}
	typeNames := make([]string, 0, len(file.Types))

	for _, named := range file.Types {
		info, err := parser.ParseStruct(named)
		if err != nil {
			return "", err
		}
		typeNames = append(typeNames, types.TypeString(named, nil))

		if !file.Options.NoEncoder {
			generateEncoder(info, typePrinter, &codeBuilder)
		}
		if !file.Options.NoDecoder {
			generateDecoder(info, typePrinter, &codeBuilder)
		}
	}

	typesHash := hasher.Sha256Digest([]byte(strings.Join(typeNames, "\n")))

	mainCode := bytes.Buffer{}
	err := mainTemplate.ExecuteTemplate(&mainCode, "main.tmpl", &mainFile{
		PackageName: file.Package.Name(),
		Version:     Version,
		TypesHash:   hex.EncodeToString(typesHash[:8]),
		Imports:     typePrinter.Imports(),
		Code:        codeBuilder.String(),
	})
	if err != nil {
		return "", err
	}

	formatted, err := format.Source(mainCode.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to format generated code: %w", err)
	}
	return string(formatted), nil
}
