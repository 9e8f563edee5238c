// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/tsp"
	x509certs "github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/revocation"
)

// readCertificates accepts either a file path or base64 data.
func readCertificates(input string) ([]*x509.Certificate, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(input))
		if err != nil {
			return nil, fmt.Errorf("failed to read certificate: not a file and not valid base64")
		}
	}
	return x509certs.Decode(data)
}

func (ts *toolset) handleBuildTimestampRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := request.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("data parameter required: %v", err)), nil
	}

	tsq, err := tsp.BuildRequest(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build timestamp request: %v", err)), nil
	}

	return mcp.NewToolResultText(base64.StdEncoding.EncodeToString(tsq)), nil
}

func (ts *toolset) handleRequestTimestamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := request.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("data parameter required: %v", err)), nil
	}

	tsaURL := request.GetString("tsa_url", ts.cfg.TSA.URL)
	if tsaURL == "" {
		return mcp.NewToolResultError("failed to request timestamp: no timestamp authority URL configured"), nil
	}

	tsq, err := tsp.BuildRequest(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build timestamp request: %v", err)), nil
	}

	resp, err := tsp.NewHTTPTimestamper(ts.http).Request(ctx, tsq, tsaURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to request timestamp: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Timestamp authority: %s\n", tsaURL)
	fmt.Fprintf(&b, "Status: %d\n", resp.Status)
	fmt.Fprintf(&b, "Response (%d bytes, base64):\n%s\n", len(resp.Raw), tsp.EncodeResponseToBase64(resp.Raw))

	return mcp.NewToolResultText(b.String()), nil
}

func (ts *toolset) handleCollectCRLEvidence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	certs, err := readCertificates(certInput)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if chainInput := request.GetString("chain", ""); chainInput != "" {
		chain, err := readCertificates(chainInput)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("chain: %v", err)), nil
		}
		certs = append(certs, chain...)
	}

	agg := revocation.NewAggregator(revocation.NewCRLFetcher(ts.http, ts.cache))
	evidence, err := agg.CollectCRLEvidence(ctx, revocation.DistributionURLs(certs))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect CRL evidence: %v", err)), nil
	}

	switch format := request.GetString("format", "json"); format {
	case "table":
		return mcp.NewToolResultText(revocation.RenderTable(evidence)), nil
	case "json":
		out, err := revocation.ToJSON(evidence)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", format)), nil
	}
}
