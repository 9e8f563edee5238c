// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ades

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// errEmptyDigest is wrapped in a [DigestComputationError] when the engine
// returns no digest.
var errEmptyDigest = errors.New("engine returned an empty digest")

// Document is one input to [Service.CalculateDigests].
type Document struct {
	Ref     string // caller reference used in logs and errors
	Content []byte
	Level   Level
	Output  io.Writer // receives the signed document
}

// DigestRequest is the input of [Service.CalculateDigests].
type DigestRequest struct {
	Documents     []Document
	HashAlgorithm string
	Certificate   string   // base64 DER end-entity certificate
	Chain         []string // base64 DER issuing chain
	TSAURL        string
}

// DocumentDigests are base64 digests, index-aligned with the sessions of the
// batch that produced them.
type DocumentDigests []string

// validate checks the request shape before any engine call.
func (r *DigestRequest) validate() error {
	if len(r.Documents) == 0 {
		return &ValidationError{Field: "documents", Reason: "at least one document is required"}
	}
	for i, doc := range r.Documents {
		if len(doc.Content) == 0 {
			return &ValidationError{Field: fmt.Sprintf("documents[%d].content", i), Reason: "empty"}
		}
		if doc.Output == nil {
			return &ValidationError{Field: fmt.Sprintf("documents[%d].output", i), Reason: "nil writer"}
		}
		if !doc.Level.Valid() {
			return &ValidationError{Field: fmt.Sprintf("documents[%d].level", i), Reason: doc.Level.String()}
		}
	}
	if r.Certificate == "" {
		return &ValidationError{Field: "certificate", Reason: "empty"}
	}
	if len(r.Chain) == 0 {
		return &ValidationError{Field: "chain", Reason: "empty"}
	}
	if r.HashAlgorithm == "" {
		return &ValidationError{Field: "hashAlgorithm", Reason: "empty"}
	}

	if r.TSAURL == "" {
		for _, doc := range r.Documents {
			if doc.Level.RequiresTimestamp() {
				return &MissingTimestampAuthorityError{Level: doc.Level}
			}
		}
	}

	return nil
}

// CalculateDigests starts a new batch and returns one digest per document
// the engine could process.
//
// Any pending batch is discarded first. Documents whose handle cannot be
// opened or whose digest cannot be computed are logged as a
// [DigestComputationError] and skipped, so the result may be shorter than
// req.Documents. Each returned digest has a session at the same index, and
// [Service.Finalize] expects one signature per digest in that order.
//
// Validation failures return a [*ValidationError] and a missing timestamp
// authority returns a [*MissingTimestampAuthorityError], both before the
// engine is called.
func (s *Service) CalculateDigests(ctx context.Context, req DigestRequest) (DocumentDigests, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.Clear(); err != nil {
		s.log.Errorf("releasing previous batch: %v", err)
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	digests := make(DocumentDigests, 0, len(req.Documents))
	for i, doc := range req.Documents {
		if err := ctx.Err(); err != nil {
			if cerr := s.registry.Clear(); cerr != nil {
				s.log.Errorf("releasing cancelled batch: %v", cerr)
			}
			return nil, err
		}

		digest, h, err := s.digestDocument(ctx, &req, doc)
		if err != nil {
			derr := &DigestComputationError{DocumentRef: doc.Ref, Index: i, Err: err}
			s.log.Errorf("skipping document: %v", derr)
			continue
		}

		session := s.registry.Add(h, doc.Level, req.Certificate, req.Chain)
		digests = append(digests, digest)
		s.log.Printf("session %d opened for document %q at level %s", session.ID, doc.Ref, doc.Level)
	}

	return digests, nil
}

// digestDocument opens a handle and computes its digest. On failure the
// handle is released and nil is returned.
func (s *Service) digestDocument(ctx context.Context, req *DigestRequest, doc Document) (string, Handle, error) {
	h, err := s.engine.Open(ctx, OpenParams{
		Level:         doc.Level,
		HashAlgorithm: req.HashAlgorithm,
		Input:         doc.Content,
		Output:        doc.Output,
		Certificate:   req.Certificate,
		Chain:         req.Chain,
	})
	if err != nil {
		return "", nil, fmt.Errorf("open: %w", err)
	}

	digest, err := s.engine.CalculateHash(ctx, h)
	if err == nil && digest == "" {
		err = errEmptyDigest
	}
	if err != nil {
		if cerr := h.Close(); cerr != nil {
			s.log.Errorf("closing handle for %q: %v", doc.Ref, cerr)
		}
		return "", nil, err
	}

	return digest, h, nil
}
