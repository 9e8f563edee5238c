// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ades

import (
	"errors"
	"fmt"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/container/orderedset"
)

// Session tracks one document between digest calculation and finalize.
type Session struct {
	ID          int // 1-based, unique within a batch
	Handle      Handle
	Level       Level
	Certificate string
	Chain       []string
	Timestamps  []string // tokens obtained during finalize, base64
	CRLURLs     *orderedset.Set[string]
	OCSPURLs    *orderedset.Set[string]
}

// Registry is the ordered set of sessions of the current batch.
//
// Registry is not safe for concurrent use; [Service] serializes access.
type Registry struct {
	sessions []*Session
	nextID   int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{nextID: 1} }

// Add appends a session for h with the next ordinal.
func (r *Registry) Add(h Handle, level Level, certificate string, chain []string) *Session {
	s := &Session{
		ID:          r.nextID,
		Handle:      h,
		Level:       level,
		Certificate: certificate,
		Chain:       append([]string(nil), chain...),
		CRLURLs:     orderedset.New[string](),
		OCSPURLs:    orderedset.New[string](),
	}
	r.nextID++
	r.sessions = append(r.sessions, s)
	return s
}

// Sessions returns the sessions in creation order.
func (r *Registry) Sessions() []*Session {
	return append([]*Session(nil), r.sessions...)
}

// Len returns the number of pending sessions.
func (r *Registry) Len() int { return len(r.sessions) }

// Clear closes every handle and empties the registry. Ordinals restart at 1.
// The registry is empty afterwards even when closing fails.
func (r *Registry) Clear() error {
	var errs []error
	for _, s := range r.sessions {
		if s.Handle == nil {
			continue
		}
		if err := s.Handle.Close(); err != nil {
			errs = append(errs, fmt.Errorf("session %d: %w", s.ID, err))
		}
	}

	r.sessions = nil
	r.nextID = 1
	return errors.Join(errs...)
}
