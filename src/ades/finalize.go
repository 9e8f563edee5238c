// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ades

import (
	"context"
	"fmt"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/tsp"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/revocation"
)

// FinalizeResult lists the sessions that were finalized. It is returned
// together with a [*FinalizationError] when processing stops early.
type FinalizeResult struct {
	Finalized []int
}

// Finalize embeds signatures into the pending sessions and applies the
// augmentation each session's level requires.
//
// signatures[i] belongs to the i-th digest returned by
// [Service.CalculateDigests]. A count mismatch returns a
// [*SignatureCountMismatchError] before any session is touched. Sessions
// are processed strictly in order; the first failure stops processing and
// is returned as a [*FinalizationError]. Sessions finalized before the
// failure stay finalized and are listed in the result.
//
// The batch is released when Finalize returns, whatever the outcome.
func (s *Service) Finalize(ctx context.Context, signatures []string, tsaURL string) (*FinalizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if err := s.registry.Clear(); err != nil {
			s.log.Errorf("releasing batch: %v", err)
		}
	}()

	sessions := s.registry.Sessions()
	if len(signatures) != len(sessions) {
		return nil, &SignatureCountMismatchError{Expected: len(sessions), Actual: len(signatures)}
	}
	for i, sig := range signatures {
		if sig == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("signatures[%d]", i), Reason: "empty"}
		}
	}
	if tsaURL == "" {
		for _, session := range sessions {
			if session.Level.RequiresTimestamp() {
				return nil, &MissingTimestampAuthorityError{Level: session.Level}
			}
		}
	}

	result := &FinalizeResult{Finalized: make([]int, 0, len(sessions))}
	for i, session := range sessions {
		if err := s.finalizeSession(ctx, session, signatures[i], tsaURL); err != nil {
			ferr := &FinalizationError{
				SessionID: session.ID,
				Completed: len(result.Finalized),
				Total:     len(sessions),
				Err:       err,
			}
			s.log.Errorf("%v", ferr)
			return result, ferr
		}

		result.Finalized = append(result.Finalized, session.ID)
		s.log.Printf("session %d finalized at level %s", session.ID, session.Level)
	}

	return result, nil
}

// finalizeSession dispatches on the session level.
func (s *Service) finalizeSession(ctx context.Context, session *Session, signature, tsaURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch session.Level {
	case LevelB:
		return s.engine.Finalize(ctx, session.Handle, signature, Evidence{})

	case LevelBT:
		token, err := s.timestamp(ctx, session, signature, tsaURL)
		if err != nil {
			return err
		}
		return s.engine.Finalize(ctx, session.Handle, signature, Evidence{Timestamp: token})

	case LevelBLT:
		return s.finalizeLongTerm(ctx, session, signature, tsaURL)

	case LevelBLTA:
		if err := s.finalizeLongTerm(ctx, session, signature, tsaURL); err != nil {
			return err
		}
		return s.archive(ctx, session, tsaURL)

	default:
		return fmt.Errorf("ades: unsupported level %s", session.Level)
	}
}

// finalizeLongTerm timestamps the signature and embeds the signer
// certificates plus the CRLs covering them. OCSP evidence is not collected.
func (s *Service) finalizeLongTerm(ctx context.Context, session *Session, signature, tsaURL string) error {
	token, err := s.timestamp(ctx, session, signature, tsaURL)
	if err != nil {
		return err
	}

	signerCerts := append([]string{session.Certificate}, session.Chain...)
	for _, cert := range signerCerts {
		url, err := s.engine.CRLDistributionURL(ctx, session.Handle, cert)
		if err != nil {
			return fmt.Errorf("ades: reading CRL distribution point: %w", err)
		}
		if url != "" {
			session.CRLURLs.Add(url)
		}
	}

	evidence, err := revocation.NewAggregator(s.revocation).CollectCRLEvidence(ctx, session.CRLURLs)
	if err != nil {
		return err
	}

	return s.engine.Finalize(ctx, session.Handle, signature, Evidence{
		Timestamp:    token,
		Certificates: append(signerCerts, token),
		CRLs:         revocation.Blobs(evidence),
		OCSPs:        append([]string{}, session.OCSPURLs.Values()...),
	})
}

// archive adds the archival timestamp over the finalized document.
func (s *Service) archive(ctx context.Context, session *Session, tsaURL string) error {
	hash, err := s.engine.BeginArchivalTimestamp(ctx, session.Handle)
	if err != nil {
		return fmt.Errorf("ades: beginning archival timestamp: %w", err)
	}

	token, err := s.timestamp(ctx, session, hash, tsaURL)
	if err != nil {
		return err
	}

	return s.engine.FinishArchivalTimestamp(ctx, session.Handle, token)
}

// timestamp requests a token over the base64 data and records it on the
// session.
func (s *Service) timestamp(ctx context.Context, session *Session, data, tsaURL string) (string, error) {
	request, err := tsp.BuildRequest(data)
	if err != nil {
		return "", &TimestampRequestError{URL: tsaURL, Err: err}
	}

	response, err := s.timestamps.RequestTimestamp(ctx, request, tsaURL)
	if err != nil {
		return "", &TimestampRequestError{URL: tsaURL, Err: err}
	}

	token := tsp.EncodeResponseToBase64(response)
	session.Timestamps = append(session.Timestamps, token)
	return token, nil
}
