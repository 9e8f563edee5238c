// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/cli"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/config"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/logger"
	verpkg "github.com/H0llyW00dzZ/ades-remote-signer/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, log logger.Logger) int {
	// A broken config file is reported by the command itself.
	if cfg, err := config.Load(""); err == nil {
		log = logger.ForFormat(log, cfg.Log.Format)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Errorf("%v", err)
			return 1
		}
		if cli.OperationPerformed {
			log.Println("Operation completed successfully.")
		}
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		return 130
	}

	if cli.OperationPerformedSuccessfully {
		log.Println("AdES signer stopped.")
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), logger.NewCLILogger()))
}
