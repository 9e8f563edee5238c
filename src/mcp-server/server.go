// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/config"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/version"
)

var appVersion = version.Version // default version

// GetVersion returns the version passed to [Run], or the build version.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server on stdio and blocks until the client
// disconnects or SIGINT/SIGTERM is received.
//
// The configuration file is taken from the ADES_CONFIG_FILE
// environment variable when set.
func Run(version string) error {
	appVersion = version

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	s, cache, err := NewServerBuilder().
		WithConfig(cfg).
		WithVersion(version).
		WithDefaultTools().
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	// Cleanup stops together with the server.
	cache.StartCleanup(ctx)

	stdioServer := server.NewStdioServer(s)

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
