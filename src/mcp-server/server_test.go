// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/config"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/der"
	x509certs "github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/certs"
)

const testVersion = "1.3.3.7-testing"

// startServer runs the default tools and resources behind an in-process client.
func startServer(t *testing.T, cfg *config.Config) *client.Client {
	t.Helper()

	ts := newToolset(cfg, testVersion)

	var tools []server.ServerTool
	for _, def := range createTools(ts) {
		tools = append(tools, server.ServerTool{Tool: def.Tool, Handler: def.Handler})
	}

	srv := mcptest.NewUnstartedServer(t)
	srv.AddTools(tools...)
	srv.AddResources(createResources(ts)...)
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(srv.Close)

	return srv.Client()
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := c.CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)

	var content strings.Builder
	for _, item := range result.Content {
		if tc, ok := item.(mcp.TextContent); ok {
			content.WriteString(tc.Text)
		}
	}
	return content.String(), result.IsError
}

// signerWithCDP returns a self-signed certificate pointing at crlURL.
func signerWithCDP(t *testing.T, crlURL string) *x509.Certificate {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(42),
		Subject:               pkix.Name{CommonName: "Remote Signer"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		CRLDistributionPoints: []string{crlURL},
	}
	raw, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(raw)
	require.NoError(t, err)
	return cert
}

func TestTimestampTools(t *testing.T) {
	var hits atomic.Int32
	tsa := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Content-Type") != "application/timestamp-query" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/timestamp-reply")
		w.Write(der.Sequence(der.Sequence(der.Integer(0)), der.Sequence()))
	}))
	defer tsa.Close()

	data := base64.StdEncoding.EncodeToString([]byte("signature value"))

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Build request",
			testFunc: func(t *testing.T) {
				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolBuildTimestampRequest, map[string]any{"data": data})
				require.False(t, isErr, out)

				raw, err := base64.StdEncoding.DecodeString(out)
				require.NoError(t, err)
				assert.Equal(t, byte(0x30), raw[0])
			},
		},
		{
			name: "Build request rejects invalid base64",
			testFunc: func(t *testing.T) {
				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolBuildTimestampRequest, map[string]any{"data": "@@@"})
				assert.True(t, isErr)
				assert.Contains(t, out, "failed to build timestamp request")
			},
		},
		{
			name: "Request timestamp with explicit authority",
			testFunc: func(t *testing.T) {
				hits.Store(0)
				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolRequestTimestamp, map[string]any{
					"data":    data,
					"tsa_url": tsa.URL,
				})
				require.False(t, isErr, out)
				assert.Contains(t, out, "Status: 0")
				assert.Equal(t, int32(1), hits.Load())
			},
		},
		{
			name: "Request timestamp falls back to configured authority",
			testFunc: func(t *testing.T) {
				cfg := config.Default()
				cfg.TSA.URL = tsa.URL
				c := startServer(t, cfg)
				out, isErr := callTool(t, c, toolRequestTimestamp, map[string]any{"data": data})
				require.False(t, isErr, out)
				assert.Contains(t, out, tsa.URL)
			},
		},
		{
			name: "Request timestamp without authority",
			testFunc: func(t *testing.T) {
				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolRequestTimestamp, map[string]any{"data": data})
				assert.True(t, isErr)
				assert.Contains(t, out, "no timestamp authority")
			},
		},
		{
			name: "Missing data parameter",
			testFunc: func(t *testing.T) {
				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolRequestTimestamp, map[string]any{})
				assert.True(t, isErr)
				assert.Contains(t, out, "required")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestCollectCRLEvidenceTool(t *testing.T) {
	var fetches atomic.Int32
	crlServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte("opaque-crl"))
	}))
	defer crlServer.Close()

	cert := signerWithCDP(t, crlServer.URL+"/signer.crl")
	certB64 := x509certs.EncodeBase64(cert)

	certPath := filepath.Join(t.TempDir(), "signer.pem")
	require.NoError(t, os.WriteFile(certPath, x509certs.EncodePEM(cert), 0o600))

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Base64 certificate with duplicate chain",
			testFunc: func(t *testing.T) {
				fetches.Store(0)
				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolCollectCRLEvidence, map[string]any{
					"certificate": certB64,
					"chain":       certB64,
				})
				require.False(t, isErr, out)

				var report struct {
					Count int `json:"count"`
				}
				require.NoError(t, json.Unmarshal([]byte(out), &report))
				assert.Equal(t, 1, report.Count)
				assert.Equal(t, int32(1), fetches.Load())
			},
		},
		{
			name: "File path with table output",
			testFunc: func(t *testing.T) {
				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolCollectCRLEvidence, map[string]any{
					"certificate": certPath,
					"format":      "table",
				})
				require.False(t, isErr, out)
				assert.Contains(t, out, crlServer.URL+"/signer.crl")
			},
		},
		{
			name: "Unreadable certificate",
			testFunc: func(t *testing.T) {
				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolCollectCRLEvidence, map[string]any{
					"certificate": "/nonexistent/@@@",
				})
				assert.True(t, isErr)
				assert.Contains(t, out, "failed to read certificate")
			},
		},
		{
			name: "Unreachable distribution point",
			testFunc: func(t *testing.T) {
				dead := httptest.NewServer(http.NotFoundHandler())
				defer dead.Close()

				c := startServer(t, config.Default())
				out, isErr := callTool(t, c, toolCollectCRLEvidence, map[string]any{
					"certificate": x509certs.EncodeBase64(signerWithCDP(t, dead.URL+"/gone.crl")),
				})
				assert.True(t, isErr)
				assert.Contains(t, out, "failed to collect CRL evidence")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestResources(t *testing.T) {
	c := startServer(t, config.Default())

	tests := []struct {
		uri      string
		contains []string
	}{
		{uri: uriConfigTemplate, contains: []string{`"level": "B"`, `"maxSize": 100`}},
		{uri: uriLevels, contains: []string{`"B"`, `"B_LTA"`, `"archivalTimestamp"`}},
		{uri: uriVersion, contains: []string{testVersion, toolCollectCRLEvidence}},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			result, err := c.ReadResource(context.Background(), mcp.ReadResourceRequest{
				Params: mcp.ReadResourceParams{URI: tt.uri},
			})
			require.NoError(t, err)
			require.Len(t, result.Contents, 1)

			text, ok := result.Contents[0].(mcp.TextResourceContents)
			require.True(t, ok)
			assert.Equal(t, "application/json", text.MIMEType)
			for _, want := range tt.contains {
				assert.Contains(t, text.Text, want)
			}
		})
	}
}

func TestServerBuilder(t *testing.T) {
	s, cache, err := NewServerBuilder().
		WithConfig(nil).
		WithVersion(testVersion).
		WithDefaultTools().
		Build()
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, cache)
	assert.Equal(t, config.DefaultCRLCacheSize, cache.Config().MaxSize)
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}
