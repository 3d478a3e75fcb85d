// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pk910/dynamic-abi/runtime"
	"github.com/pk910/dynamic-abi/runtime/wasmhost"
)

func newRunCmd(cli *cliContext) *cobra.Command {
	var wasmFile, input, inputFile, outputTypes, entryPoint string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Invoke a WebAssembly contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(wasmFile)
			if err != nil {
				return fmt.Errorf("failed to read contract: %w", err)
			}

			var payload []byte
			switch {
			case inputFile != "":
				data, err := readDocument(cmd, inputFile)
				if err != nil {
					return err
				}
				if payload, err = encodeDocument(data); err != nil {
					return err
				}
			case input != "":
				if payload, err = parseHexInput(input); err != nil {
					return err
				}
			}

			config := cli.config.Wasm
			if entryPoint != "" {
				config.EntryPoint = entryPoint
			}

			ctx := cmd.Context()
			engine, err := wasmhost.NewEngine(ctx, &config, cli.logger)
			if err != nil {
				return err
			}
			defer engine.Close(ctx)

			host := runtime.NewMemoryHost(payload,
				runtime.WithLogger(cli.logger),
				runtime.WithDigestFn(engine.DigestFn()),
			)
			outcome, err := engine.InvokeWithHost(ctx, code, host)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range host.DebugLines() {
				fmt.Fprintf(out, "debug: %s\n", line)
			}
			if outcome.Aborted {
				cli.logger.Debug("contract aborted", zap.String("message", outcome.Message))
				fmt.Fprintf(out, "aborted: %s\n", outcome.Message)
				return outcome.Err()
			}

			fmt.Fprintf(out, "output: 0x%s\n", hex.EncodeToString(outcome.Output))
			if outputTypes != "" {
				doc, err := decodeDocument(outcome.Output, outputTypes, false)
				if err != nil {
					return err
				}
				_, err = out.Write(doc)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&wasmFile, "wasm", "", "contract WebAssembly file")
	cmd.Flags().StringVar(&input, "input", "", "invocation input as hex")
	cmd.Flags().StringVar(&inputFile, "input-file", "", "invocation input as YAML value document")
	cmd.Flags().StringVar(&outputTypes, "output-types", "", "decode the output with these value types")
	cmd.Flags().StringVar(&entryPoint, "entry", "", "exported entry point, overrides the config")
	_ = cmd.MarkFlagRequired("wasm")
	cmd.MarkFlagsMutuallyExclusive("input", "input-file")
	return cmd
}
