// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the signer configuration from JSON or YAML files,
// validates it against an embedded JSON schema and applies environment
// overrides.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/ades"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/logger"
)

// Environment variables consulted by [Load].
const (
	EnvConfigFile = "ADES_CONFIG_FILE"
	EnvTSAURL     = "ADES_TSA_URL"
)

// Defaults applied before a file is read and whenever a numeric value is not positive.
const (
	DefaultLevel                  = "B"
	DefaultTimeoutSeconds         = 10
	DefaultCRLCacheSize           = 100
	DefaultCleanupIntervalMinutes = 60
	DefaultLogFormat              = LogFormatText
)

// Values accepted by log.format.
const (
	LogFormatText = "text"
	LogFormatJSON = logger.FormatJSON
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalidConfig is wrapped by schema violations.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// format represents supported configuration file formats.
type format int

const (
	formatJSON format = iota
	formatYAML
)

// Config is the signer configuration.
type Config struct {
	TSA struct {
		// URL of the RFC 3161 timestamp authority
		URL string `json:"url" yaml:"url"`
	} `json:"tsa" yaml:"tsa"`

	Signing struct {
		// Level is the default conformance level, e.g. "B_LT"
		Level string `json:"level" yaml:"level"`
	} `json:"signing" yaml:"signing"`

	HTTP struct {
		TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		UserAgent      string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	} `json:"http" yaml:"http"`

	CRLCache struct {
		MaxSize                int `json:"maxSize" yaml:"maxSize"`
		CleanupIntervalMinutes int `json:"cleanupIntervalMinutes" yaml:"cleanupIntervalMinutes"`
	} `json:"crlCache" yaml:"crlCache"`

	Log struct {
		// Format is "text" for humans or "json" for structured lines
		Format string `json:"format" yaml:"format"`
	} `json:"log" yaml:"log"`
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	c := &Config{}
	c.Signing.Level = DefaultLevel
	c.HTTP.TimeoutSeconds = DefaultTimeoutSeconds
	c.CRLCache.MaxSize = DefaultCRLCacheSize
	c.CRLCache.CleanupIntervalMinutes = DefaultCleanupIntervalMinutes
	c.Log.Format = DefaultLogFormat
	return c
}

// SigningLevel parses Signing.Level.
func (c *Config) SigningLevel() (ades.Level, error) { return ades.ParseLevel(c.Signing.Level) }

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration { return time.Duration(c.HTTP.TimeoutSeconds) * time.Second }

// CleanupInterval returns the CRL cache cleanup interval as a duration.
func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.CRLCache.CleanupIntervalMinutes) * time.Minute
}

func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// validate checks the raw document against the embedded schema.
func validate(data []byte, f format) error {
	var doc any
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	if doc == nil {
		return nil
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	return nil
}

func unmarshal(data []byte, c *Config, f format) error {
	switch f {
	case formatYAML:
		return yaml.Unmarshal(data, c)
	default:
		return json.Unmarshal(data, c)
	}
}

// Load builds the configuration.
//
// Configuration Priority:
//  1. Default values are set
//  2. ADES_CONFIG_FILE is used when path is empty
//  3. File values override defaults (.json, .yaml or .yml, schema checked)
//  4. ADES_TSA_URL overrides the file value
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		f := detectFormat(path)
		if err := validate(data, f); err != nil {
			return nil, err
		}
		if err := unmarshal(data, c, f); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}

		if c.HTTP.TimeoutSeconds <= 0 {
			c.HTTP.TimeoutSeconds = DefaultTimeoutSeconds
		}
		if c.CRLCache.MaxSize < 0 {
			c.CRLCache.MaxSize = DefaultCRLCacheSize
		}
		if c.CRLCache.CleanupIntervalMinutes <= 0 {
			c.CRLCache.CleanupIntervalMinutes = DefaultCleanupIntervalMinutes
		}
		if c.Signing.Level == "" {
			c.Signing.Level = DefaultLevel
		}
		if c.Log.Format == "" {
			c.Log.Format = DefaultLogFormat
		}
	}

	if v := os.Getenv(EnvTSAURL); v != "" {
		c.TSA.URL = v
	}

	if _, err := c.SigningLevel(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return c, nil
}
