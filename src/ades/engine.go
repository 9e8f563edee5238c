// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ades

import (
	"context"
	"io"
)

// Handle is an engine-owned working copy of one document. Closing it
// releases the engine resources; a session owns its handle exclusively.
type Handle interface {
	io.Closer
}

// OpenParams describes the document a handle is opened for.
type OpenParams struct {
	Level         Level
	HashAlgorithm string
	Input         []byte
	Output        io.Writer
	Certificate   string   // base64 DER end-entity certificate
	Chain         []string // base64 DER issuing chain
}

// Evidence is the validation material embedded by [Engine.Finalize].
// All values are base64.
type Evidence struct {
	Timestamp    string
	Certificates []string
	CRLs         []string
	OCSPs        []string
}

// Engine performs the byte-level document work: digest computation,
// signature embedding and archival timestamping.
type Engine interface {
	Open(ctx context.Context, params OpenParams) (Handle, error)
	// CalculateHash returns the base64 digest to be signed. An empty digest
	// is treated as a failure.
	CalculateHash(ctx context.Context, h Handle) (string, error)
	Finalize(ctx context.Context, h Handle, signedHash string, evidence Evidence) error
	// CRLDistributionURL returns the CRL location of a base64 certificate,
	// or an empty string when it has none.
	CRLDistributionURL(ctx context.Context, h Handle, certificate string) (string, error)
	// BeginArchivalTimestamp returns the base64 hash over the finalized
	// document that the archival timestamp must cover.
	BeginArchivalTimestamp(ctx context.Context, h Handle) (string, error)
	FinishArchivalTimestamp(ctx context.Context, h Handle, timestamp string) error
}

// TimestampService obtains RFC 3161 timestamp responses.
type TimestampService interface {
	RequestTimestamp(ctx context.Context, request []byte, tsaURL string) ([]byte, error)
}

// RevocationService downloads CRLs.
type RevocationService interface {
	FetchCRL(ctx context.Context, url string) ([]byte, error)
}
