// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package revocation gathers certificate revocation evidence for long-term
// signatures.
//
// CRLs are fetched once per distinct distribution point URL and carried as
// opaque base64 blobs; their content is never interpreted beyond reading
// NextUpdate for cache freshness.
//
// Example usage:
//
//	fetcher := revocation.NewCRLFetcher(transport.NewHTTPConfig(version.Version), nil)
//	agg := revocation.NewAggregator(fetcher)
//	evidence, err := agg.CollectCRLEvidence(ctx, orderedset.New(urls...))
//	if err != nil {
//		var fe *revocation.FetchError
//		if errors.As(err, &fe) {
//			log.Printf("CRL %s unavailable", fe.URL)
//		}
//		return err
//	}
//	crls := revocation.Blobs(evidence)
package revocation
