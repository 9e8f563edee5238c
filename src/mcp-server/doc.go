// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the timestamp and revocation building blocks of
// the AdES remote signer as [MCP] tools over stdio.
//
// Tools:
//   - build_timestamp_request: DER TimeStampReq (base64) for base64 data
//   - request_timestamp: sends that request to a timestamp authority
//   - collect_crl_evidence: CRL evidence for a certificate and its chain
//
// Resources:
//   - info://levels: supported conformance levels
//   - config://template: example configuration
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
