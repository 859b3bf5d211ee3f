// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// commandContext is the state shared by the commands:
// the configuration with the global flags applied.
type commandContext struct {
	configPath string
	color      string
	logLevel   string
	cfg        Config
}

// load reads the configuration, applies the global flags,
// and installs the logger.
func (ctx *commandContext) load(cmd *cobra.Command) error {
	cfg, err := LoadConfig(ctx.configPath)
	if err != nil {
		return err
	}
	if ctx.color != "" {
		cfg.Color = ctx.color
	}
	if ctx.logLevel != "" {
		cfg.LogLevel = ctx.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	ctx.cfg = cfg
	return nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "psbtree",
		Short:         "Inspect, search, convert and compare tree documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path (default "+DefaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&ctx.color, "color", "", "When to color the output: auto, always or never")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevel, "log-level", "", "Minimum log level: debug, info, warn or error")

	rootCmd.AddCommand(newDumpCommand(ctx))
	rootCmd.AddCommand(newFindCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newDiffCommand(ctx))

	return rootCmd
}
