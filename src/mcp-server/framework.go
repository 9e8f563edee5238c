// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/config"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/transport"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/revocation"
)

// ServerName is announced to MCP clients.
const ServerName = "AdES Remote Signer"

// ToolHandler is the signature of every tool implementation.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolDefinition pairs an MCP tool with its handler.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
}

// toolset holds what the handlers share: configuration, HTTP settings and
// the CRL cache that lives as long as the server.
type toolset struct {
	cfg   *config.Config
	http  *transport.HTTPConfig
	cache *revocation.Cache
}

func newToolset(cfg *config.Config, version string) *toolset {
	if cfg == nil {
		cfg = config.Default()
	}

	httpCfg := transport.NewHTTPConfig(version)
	httpCfg.Timeout = cfg.Timeout()
	httpCfg.UserAgent = cfg.HTTP.UserAgent

	return &toolset{
		cfg:  cfg,
		http: httpCfg,
		cache: revocation.NewCache(&revocation.CacheConfig{
			MaxSize:         cfg.CRLCache.MaxSize,
			CleanupInterval: cfg.CleanupInterval(),
		}),
	}
}

// ServerBuilder constructs the [MCP] server using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(cfg).
//	    WithVersion("1.0.0").
//	    WithDefaultTools().
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct {
	cfg       *config.Config
	version   string
	tools     []ToolDefinition
	resources []server.ServerResource
	defaults  bool
}

// NewServerBuilder creates a builder with no tools.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the configuration. A nil config selects [config.Default].
func (b *ServerBuilder) WithConfig(cfg *config.Config) *ServerBuilder {
	b.cfg = cfg
	return b
}

// WithVersion sets the version announced to clients and used in User-Agent headers.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.version = version
	return b
}

// WithTools registers additional tools.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.tools = append(b.tools, tools...)
	return b
}

// WithResources registers additional resources.
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.resources = append(b.resources, resources...)
	return b
}

// WithDefaultTools registers the signer tools and resources at build time.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	b.defaults = true
	return b
}

// Build creates the server. The CRL cache shared by the tools is returned so
// the caller can bind its cleanup to the server lifetime.
func (b *ServerBuilder) Build() (*server.MCPServer, *revocation.Cache, error) {
	ts := newToolset(b.cfg, b.version)

	s := server.NewMCPServer(
		ServerName,
		b.version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
	)

	tools := b.tools
	resources := b.resources
	if b.defaults {
		tools = append(createTools(ts), tools...)
		resources = append(createResources(ts), resources...)
	}

	for _, tool := range tools {
		s.AddTool(tool.Tool, tool.Handler)
	}
	for _, resource := range resources {
		s.AddResource(resource.Resource, resource.Handler)
	}

	return s, ts.cache, nil
}
