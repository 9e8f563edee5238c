// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides the logging abstraction shared by the signing
// service, the CLI and the MCP server. CLILogger writes plain lines for
// humans; StructuredLogger writes one JSON object per line and can be
// silenced when stdout carries the MCP stdio protocol.
package logger
