// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pk910/dynamic-abi/runtime/wasmhost"
)

// GlobalFlags are shared by all commands.
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
}

// Config is the optional YAML configuration file.
type Config struct {
	Wasm wasmhost.Config `yaml:"wasm"`
}

// cliContext carries the state initialized by the root command.
type cliContext struct {
	flags  GlobalFlags
	config *Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	cli := &cliContext{}

	rootCmd := &cobra.Command{
		Use:           "dynabi",
		Short:         "ABI payload and contract tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cli.flags.ConfigFile)
			if err != nil {
				return err
			}
			cli.config = config

			logger, err := newLogger(cli.flags.Verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			cli.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cli.logger != nil {
				_ = cli.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cli.flags.ConfigFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&cli.flags.Verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newEncodeCmd(cli))
	rootCmd.AddCommand(newDecodeCmd(cli))
	rootCmd.AddCommand(newGenCmd(cli))
	rootCmd.AddCommand(newRunCmd(cli))

	return rootCmd
}

func loadConfig(path string) (*Config, error) {
	config := &Config{
		Wasm: *wasmhost.DefaultConfig(),
	}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", path, err)
	}
	return config, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func parseHexInput(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}
