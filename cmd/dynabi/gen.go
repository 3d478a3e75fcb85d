// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package main

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/pk910/dynamic-abi/codegen"
)

func newGenCmd(cli *cliContext) *cobra.Command {
	var packagePath, typeNames, outputFile string
	var noEncoder, noDecoder bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate EncodeABI/DecodeABI methods for Go types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			namedTypes, err := loadNamedTypes(cli.logger, packagePath, typeNames)
			if err != nil {
				return err
			}

			opts := []codegen.CodeGeneratorOption{}
			if noEncoder {
				opts = append(opts, codegen.WithNoEncoder())
			}
			if noDecoder {
				opts = append(opts, codegen.WithNoDecoder())
			}

			codeGen := codegen.NewCodeGenerator()
			if err := codeGen.BuildFile(outputFile, namedTypes, opts...); err != nil {
				return err
			}
			if err := codeGen.Generate(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated ABI code for %d types in %s\n", len(namedTypes), outputFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&packagePath, "package", "", "Go package path to analyze")
	cmd.Flags().StringVar(&typeNames, "types", "", "comma separated list of type names")
	cmd.Flags().StringVar(&outputFile, "output", "", "output file for the generated code")
	cmd.Flags().BoolVar(&noEncoder, "no-encoder", false, "skip EncodeABI methods")
	cmd.Flags().BoolVar(&noDecoder, "no-decoder", false, "skip DecodeABI methods")
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("types")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func loadNamedTypes(logger *zap.Logger, packagePath string, typeNames string) ([]*types.Named, error) {
	logger.Debug("loading package", zap.String("package", packagePath))

	cfg := &packages.Config{
		Mode: packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", packagePath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", packagePath)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		for _, err := range pkg.Errors {
			logger.Error("package error", zap.Error(err))
		}
		return nil, fmt.Errorf("package %s has errors", packagePath)
	}

	namedTypes := []*types.Named{}
	scope := pkg.Types.Scope()
	for _, typeName := range strings.Split(typeNames, ",") {
		typeName = strings.TrimSpace(typeName)
		if typeName == "" {
			continue
		}

		obj := scope.Lookup(typeName)
		if obj == nil {
			return nil, fmt.Errorf("type %s not found in package %s", typeName, packagePath)
		}
		typeObj, ok := obj.(*types.TypeName)
		if !ok {
			return nil, fmt.Errorf("object %s is not a type in package %s", typeName, packagePath)
		}
		named, ok := unalias(typeObj.Type()).(*types.Named)
		if !ok {
			return nil, fmt.Errorf("type %s is not a named type", typeName)
		}

		logger.Debug("found type", zap.String("type", typeName))
		namedTypes = append(namedTypes, named)
	}

	return namedTypes, nil
}
