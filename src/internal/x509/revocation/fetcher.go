// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package revocation

import (
	"context"
	"crypto/x509"
	"net/http"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/transport"
)

// Media types accepted from CRL distribution points.
const (
	ContentTypeCRL     = "application/pkix-crl"
	ContentTypeCRLAlt  = "application/x-pkcs7-crl"
	acceptCRLResponses = ContentTypeCRL + ", " + ContentTypeCRLAlt + ", */*"
)

// CRLFetcher downloads CRLs over HTTP and keeps fresh ones in a [Cache].
type CRLFetcher struct {
	HTTP  *transport.HTTPConfig
	Cache *Cache
}

// NewCRLFetcher creates a fetcher. A nil cache disables caching.
func NewCRLFetcher(cfg *transport.HTTPConfig, cache *Cache) *CRLFetcher {
	return &CRLFetcher{HTTP: cfg, Cache: cache}
}

// FetchCRL returns the raw bytes served at url.
//
// A cached copy is returned while its NextUpdate lies in the future. A freshly
// downloaded CRL is cached only when it parses as a DER CRL carrying a
// NextUpdate; anything else is passed through uncached.
//
// Thread Safety: Safe for concurrent use.
func (f *CRLFetcher) FetchCRL(ctx context.Context, url string) ([]byte, error) {
	if f.Cache != nil {
		if data, ok := f.Cache.Get(url); ok {
			return data, nil
		}
	}

	data, err := f.HTTP.Do(ctx, http.MethodGet, url, "", acceptCRLResponses, nil)
	if err != nil {
		return nil, err
	}

	if f.Cache != nil {
		if crl, perr := x509.ParseRevocationList(data); perr == nil && !crl.NextUpdate.IsZero() {
			f.Cache.Set(url, data, crl.NextUpdate)
		}
	}

	return data, nil
}
