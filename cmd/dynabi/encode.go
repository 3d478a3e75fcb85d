// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pk910/dynamic-abi/abiutils"
	"github.com/pk910/dynamic-abi/abivalue"
)

func newEncodeCmd(cli *cliContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a YAML value document",
		Long:  "Encode a YAML value document and print the payload as hex. Reads stdin when no file is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(cmd, file)
			if err != nil {
				return err
			}

			payload, err := encodeDocument(data)
			if err != nil {
				return err
			}

			cli.logger.Debug("encoded document", zap.String("file", file), zap.Int("size", len(payload)))
			fmt.Fprintf(cmd.OutOrStdout(), "0x%s\n", hex.EncodeToString(payload))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "value document (YAML)")
	return cmd
}

func readDocument(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}

func encodeDocument(data []byte) ([]byte, error) {
	doc, err := abivalue.ParseDocument(data)
	if err != nil {
		return nil, err
	}

	sink := abiutils.NewSink(64)
	if err := abivalue.Encode(sink, doc.Values); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}
