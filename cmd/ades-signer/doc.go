// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// ades-signer is a command line companion of the AdES remote signer. It
// exercises the pieces of the signing flow that do not need a document
// engine: RFC 3161 timestamp requests and CRL evidence collection.
//
// # Installation
//
//	go install github.com/H0llyW00dzZ/ades-remote-signer/cmd/ades-signer@latest
//
// # Usage
//
//	ades-signer [command] [flags]
//
// # Commands
//
//	timestamp-request  Build an RFC 3161 request and optionally send it
//	crl-evidence       Collect CRL evidence for a signer certificate and chain
//	levels             List supported conformance levels
//
// # Environment Variables
//
//	ADES_CONFIG_FILE  Path to configuration file (alternative to --config)
//	ADES_TSA_URL      Timestamp authority URL
package main
