// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ades

import (
	"sync"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/transport"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/tsp"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/revocation"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/logger"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/version"
)

// Service drives the signing sessions of one batch at a time.
//
// Service is safe for concurrent use; calls are serialized so that a
// finalize never observes a half-built batch.
type Service struct {
	mu         sync.Mutex
	engine     Engine
	timestamps TimestampService
	revocation RevocationService
	log        logger.Logger
	registry   *Registry
}

// Option configures a [Service].
type Option func(*Service)

// WithTimestampService replaces the default HTTP timestamp client.
func WithTimestampService(ts TimestampService) Option {
	return func(s *Service) { s.timestamps = ts }
}

// WithRevocationService replaces the default HTTP CRL fetcher.
func WithRevocationService(rs RevocationService) Option {
	return func(s *Service) { s.revocation = rs }
}

// WithLogger sets the logger used for skipped documents and finalize
// progress.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithHTTPConfig makes the default collaborators share cfg.
// It has no effect on services supplied through other options.
func WithHTTPConfig(cfg *transport.HTTPConfig) Option {
	return func(s *Service) {
		if s.timestamps == nil {
			s.timestamps = tsp.NewHTTPTimestamper(cfg)
		}
		if s.revocation == nil {
			s.revocation = revocation.NewCRLFetcher(cfg, revocation.NewCache(nil))
		}
	}
}

// NewService creates a service around engine. Without options it uses HTTP
// collaborators with default settings and a silent logger.
func NewService(engine Engine, opts ...Option) *Service {
	s := &Service{
		engine:   engine,
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.timestamps == nil || s.revocation == nil {
		WithHTTPConfig(transport.NewHTTPConfig(version.Version))(s)
	}
	if s.log == nil {
		s.log = logger.NewStructuredLogger(nil, true)
	}

	return s
}

// PendingSessions returns the number of sessions awaiting finalize.
func (s *Service) PendingSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Len()
}

// Reset discards the pending batch and releases its handles.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Clear()
}
