// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the Cobra command tree of the ades-signer binary.
//
// The commands expose the network facing building blocks of the signing
// workflow: building and sending RFC 3161 timestamp requests, collecting CRL
// evidence for a signer certificate and listing the supported conformance
// levels. Results go to the command output (stdout by default) and
// progress messages go to the injected logger.
package cli
