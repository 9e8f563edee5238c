// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package version provides centralized version information for the AdES remote signer.
package version

// Version holds the current version of the AdES remote signer.
// This value can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/H0llyW00dzZ/ades-remote-signer/src/version.Version=1.0.0" ./cmd/ades-signer
var Version = "0.1.0"
