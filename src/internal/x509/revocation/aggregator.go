// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package revocation

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/container/orderedset"
)

// Fetcher retrieves the raw CRL published at a URL.
type Fetcher interface {
	FetchCRL(ctx context.Context, url string) ([]byte, error)
}

// FetchError reports a distribution point whose CRL could not be retrieved.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("revocation: failed to fetch CRL from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Evidence is one CRL collected for embedding, keyed by its source URL.
type Evidence struct {
	URL  string `json:"url"`
	Data string `json:"data"` // base64 of the raw CRL
	Size int    `json:"size"` // raw length in bytes
}

// Aggregator turns a set of distribution point URLs into CRL evidence.
type Aggregator struct {
	fetcher Fetcher
}

// NewAggregator creates an aggregator backed by fetcher.
func NewAggregator(fetcher Fetcher) *Aggregator {
	return &Aggregator{fetcher: fetcher}
}

// CollectCRLEvidence fetches each URL once, in the set's insertion order, and
// base64-encodes the result. The first failure stops collection and is
// returned as a [*FetchError].
func (a *Aggregator) CollectCRLEvidence(ctx context.Context, urls *orderedset.Set[string]) ([]Evidence, error) {
	values := urls.Values()
	evidence := make([]Evidence, 0, len(values))

	for _, url := range values {
		if err := ctx.Err(); err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}

		data, err := a.fetcher.FetchCRL(ctx, url)
		if err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}

		evidence = append(evidence, Evidence{
			URL:  url,
			Data: base64.StdEncoding.EncodeToString(data),
			Size: len(data),
		})
	}

	return evidence, nil
}

// Blobs returns the base64 payloads of evidence in order.
func Blobs(evidence []Evidence) []string {
	blobs := make([]string, len(evidence))
	for i, e := range evidence {
		blobs[i] = e.Data
	}
	return blobs
}
