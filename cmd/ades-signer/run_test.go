// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/config"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/logger"
	verpkg "github.com/H0llyW00dzZ/ades-remote-signer/src/version"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	saved := os.Args
	os.Args = append([]string{"ades-signer"}, args...)
	t.Cleanup(func() { os.Args = saved })
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvTSAURL, "")
}

func TestVersionInit(t *testing.T) {
	assert.NotEmpty(t, version, "version should not be empty after init")
	if version != verpkg.Version {
		t.Logf("version set by ldflags: %s (package version: %s)", version, verpkg.Version)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Successful command",
			testFunc: func(t *testing.T) {
				withArgs(t, "timestamp-request", "--data", "AAAA")
				var logs bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&logs)

				assert.Equal(t, 0, run(context.Background(), log))
				assert.Contains(t, logs.String(), "Operation completed successfully.")
			},
		},
		{
			name: "JSON log format from configuration",
			testFunc: func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "signer.json")
				require.NoError(t, os.WriteFile(path, []byte(`{"log": {"format": "json"}}`), 0o600))
				withArgs(t, "levels")
				t.Setenv(config.EnvConfigFile, path)

				var logs bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&logs)

				assert.Equal(t, 0, run(context.Background(), log))
				assert.Contains(t, logs.String(), `"message":"Operation completed successfully."`)
			},
		},
		{
			name: "Failing command",
			testFunc: func(t *testing.T) {
				withArgs(t, "timestamp-request", "--data", "@@@")
				var logs bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&logs)

				assert.Equal(t, 1, run(context.Background(), log))
				assert.Contains(t, logs.String(), "error:")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
