// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pk910/dynamic-abi/abiutils"
	"github.com/pk910/dynamic-abi/abivalue"
)

func newDecodeCmd(cli *cliContext) *cobra.Command {
	var typeList string
	var allowTrailing bool

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a payload into a YAML value document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHexInput(args[0])
			if err != nil {
				return err
			}

			cli.logger.Debug("decoding payload", zap.Int("size", len(data)), zap.String("types", typeList))
			out, err := decodeDocument(data, typeList, allowTrailing)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&typeList, "types", "", "comma separated value types, e.g. u32,list<string>")
	cmd.Flags().BoolVar(&allowTrailing, "allow-trailing", false, "ignore bytes after the last value")
	_ = cmd.MarkFlagRequired("types")
	return cmd
}

func decodeDocument(data []byte, typeList string, allowTrailing bool) ([]byte, error) {
	specs, err := abivalue.ParseTypeList(typeList)
	if err != nil {
		return nil, err
	}

	src := abiutils.NewSource(data)
	values, err := abivalue.Decode(src, specs)
	if err != nil {
		return nil, fmt.Errorf("decode failed at offset %d: %w", src.Position(), err)
	}
	if !allowTrailing && src.Remaining() > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", abiutils.ErrLengthInconsistency, src.Remaining())
	}

	doc := &abivalue.Document{Values: values}
	return doc.Marshal()
}
