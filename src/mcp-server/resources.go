// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/ades"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/config"
)

const (
	uriConfigTemplate = "config://template"
	uriLevels         = "info://levels"
	uriVersion        = "info://version"
)

func createResources(ts *toolset) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(uriConfigTemplate, "Configuration Template",
				mcp.WithResourceDescription("Configuration with every default filled in"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleConfigResource,
		},
		{
			Resource: mcp.NewResource(uriLevels, "Conformance Levels",
				mcp.WithResourceDescription("Supported signature levels and the evidence each one embeds"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleLevelsResource,
		},
		{
			Resource: mcp.NewResource(uriVersion, "Server Version",
				mcp.WithResourceDescription("Server name, version and registered tools"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: ts.handleVersionResource,
		},
	}
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func handleConfigResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(uriConfigTemplate, config.Default())
}

type levelInfo struct {
	Name               string `json:"name"`
	Timestamp          bool   `json:"timestamp"`
	ValidationMaterial bool   `json:"validationMaterial"`
	ArchivalTimestamp  bool   `json:"archivalTimestamp"`
}

func handleLevelsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var levels []levelInfo
	for _, l := range ades.Levels() {
		levels = append(levels, levelInfo{
			Name:               l.String(),
			Timestamp:          l.RequiresTimestamp(),
			ValidationMaterial: l >= ades.LevelBLT,
			ArchivalTimestamp:  l == ades.LevelBLTA,
		})
	}
	return jsonContents(uriLevels, map[string]any{"levels": levels})
}

func (ts *toolset) handleVersionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tools := []string{toolBuildTimestampRequest, toolRequestTimestamp, toolCollectCRLEvidence}
	return jsonContents(uriVersion, map[string]any{
		"name":      ServerName,
		"version":   ts.http.Version,
		"tools":     tools,
		"resources": []string{uriConfigTemplate, uriLevels, uriVersion},
		"crlCache":  ts.cache.Metrics(),
	})
}
