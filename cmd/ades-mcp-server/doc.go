// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// ades-mcp-server is a Model Context Protocol (MCP) server that exposes the
// timestamp and CRL evidence operations of the AdES remote signer over stdio.
//
// # MCP Tools
//
//   - build_timestamp_request: Build a DER TimeStampReq for base64 data
//   - request_timestamp: Send a timestamp request to an RFC 3161 authority
//   - collect_crl_evidence: Fetch CRLs for a certificate and its chain
//
// # MCP Resources
//
//   - config://template: Configuration with defaults
//   - info://levels: Supported conformance levels
//   - info://version: Version and registered tools
//
// # Environment Variables
//
//	ADES_CONFIG_FILE  Path to configuration file (JSON or YAML)
//	ADES_TSA_URL      Timestamp authority URL
package main
