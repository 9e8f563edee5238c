// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/config"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/transport"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/revocation"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/logger"
)

var (
	// OperationPerformed is set once a subcommand has run.
	OperationPerformed bool
	// OperationPerformedSuccessfully is set once a subcommand has completed without error.
	OperationPerformedSuccessfully bool
)

var (
	// ErrNoInput indicates that neither inline data nor an input file was given.
	ErrNoInput = errors.New("cli: either --data or --file is required")

	// ErrNoAuthority indicates --send without a timestamp authority URL.
	ErrNoAuthority = errors.New("cli: --send requires --tsa or a configured tsa.url")
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	version    string
	log        logger.Logger
	configPath string
	cfg        *config.Config
}

// httpConfig builds the HTTP settings from the loaded configuration.
func (a *app) httpConfig() *transport.HTTPConfig {
	cfg := transport.NewHTTPConfig(a.version)
	cfg.Timeout = a.cfg.Timeout()
	cfg.UserAgent = a.cfg.HTTP.UserAgent
	return cfg
}

// crlCache builds a CRL cache sized from the loaded configuration.
func (a *app) crlCache() *revocation.Cache {
	return revocation.NewCache(&revocation.CacheConfig{
		MaxSize:         a.cfg.CRLCache.MaxSize,
		CleanupInterval: a.cfg.CleanupInterval(),
	})
}

// NewRootCommand creates the command tree. The context is attached when the
// command is executed through [Execute].
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	a := &app{version: version, log: log}

	rootCmd := &cobra.Command{
		Use:           posix.ExecutableName("ades-signer"),
		Short:         "AdES remote signing toolkit",
		Long:          "Build RFC 3161 timestamp requests and collect CRL evidence for AdES B-T, B-LT and B-LTA signatures.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.ForFormat(a.log, cfg.Log.Format)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (.json, .yaml, .yml); defaults to $"+config.EnvConfigFile)

	rootCmd.AddCommand(
		newTimestampCommand(a),
		newEvidenceCommand(a),
		newLevelsCommand(a),
	)

	return rootCmd
}

// Execute runs the command tree with os.Args and marks the operation
// flags for the caller.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := NewRootCommand(version, log)
	rootCmd.SetArgs(os.Args[1:])
	return rootCmd.ExecuteContext(ctx)
}

// track wraps a RunE so the operation flags reflect its outcome.
func track(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		OperationPerformed = true
		if err := run(cmd, args); err != nil {
			return err
		}
		OperationPerformedSuccessfully = true
		return nil
	}
}
