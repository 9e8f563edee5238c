// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package revocation

import (
	"crypto/x509"
	"strings"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/container/orderedset"
)

// DistributionURL returns the first HTTP(S) CRL distribution point of cert,
// or an empty string when it has none.
func DistributionURL(cert *x509.Certificate) string {
	for _, dp := range cert.CRLDistributionPoints {
		lower := strings.ToLower(dp)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return dp
		}
	}
	return ""
}

// DistributionURLs collects the distribution point of every certificate in
// order, skipping certificates without one.
func DistributionURLs(certs []*x509.Certificate) *orderedset.Set[string] {
	urls := orderedset.New[string]()
	for _, cert := range certs {
		if url := DistributionURL(cert); url != "" {
			urls.Add(url)
		}
	}
	return urls
}
