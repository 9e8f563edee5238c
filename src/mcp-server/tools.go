// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

const (
	toolBuildTimestampRequest = "build_timestamp_request"
	toolRequestTimestamp      = "request_timestamp"
	toolCollectCRLEvidence    = "collect_crl_evidence"
)

// createTools returns the tool definitions bound to ts.
func createTools(ts *toolset) []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool(toolBuildTimestampRequest,
				mcp.WithDescription("Build a DER-encoded RFC 3161 TimeStampReq (SHA-256 imprint, certReq=true) for base64 data"),
				mcp.WithString("data",
					mcp.Required(),
					mcp.Description("Base64 data to timestamp, typically a signature value or a document hash"),
				),
			),
			Handler: ts.handleBuildTimestampRequest,
		},
		{
			Tool: mcp.NewTool(toolRequestTimestamp,
				mcp.WithDescription("Send a timestamp request for base64 data to an RFC 3161 timestamp authority"),
				mcp.WithString("data",
					mcp.Required(),
					mcp.Description("Base64 data to timestamp"),
				),
				mcp.WithString("tsa_url",
					mcp.Description("Timestamp authority URL (default: tsa.url from config)"),
				),
			),
			Handler: ts.handleRequestTimestamp,
		},
		{
			Tool: mcp.NewTool(toolCollectCRLEvidence,
				mcp.WithDescription("Fetch the CRL of every distinct distribution point of a certificate and its chain"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate file path or base64-encoded certificate data (PEM, DER or PKCS#7)"),
				),
				mcp.WithString("chain",
					mcp.Description("Optional chain as a file path or base64-encoded data"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'json' or 'table' (default: json)"),
					mcp.DefaultString("json"),
					mcp.Enum("json", "table"),
				),
			),
			Handler: ts.handleCollectCRLEvidence,
		},
	}
}
