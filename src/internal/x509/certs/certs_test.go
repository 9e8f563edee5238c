// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509certs "github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/certs"
)

const invalidPEM = `
-----BEGIN INVALID-----
MIIEmTCCBD+gAwIBAgIRANFjRCmF+Y2bUYHbhxwkEpowCgYIKoZIzj0EAwIwgY8x
-----END INVALID-----
`

// issue creates a certificate for cn signed by parent, or self-signed when
// parent is nil.
func issue(t *testing.T, cn string, parent *x509.Certificate, parentKey *ecdsa.PrivateKey) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		BasicConstraintsValid: true,
		IsCA:                  parent == nil,
		CRLDistributionPoints: []string{"http://crl.example/" + cn + ".crl"},
	}

	signer, signerKey := tmpl, key
	if parent != nil {
		signer, signerKey = parent, parentKey
	}

	raw, err := x509.CreateCertificate(rand.Reader, tmpl, signer, &key.PublicKey, signerKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(raw)
	require.NoError(t, err)
	return cert, key
}

func TestDecode(t *testing.T) {
	ca, caKey := issue(t, "Test CA", nil, nil)
	leaf, _ := issue(t, "Signer", ca, caKey)

	tests := []struct {
		name        string
		input       []byte
		expectCount int
		expectError error
	}{
		{
			name:        "Single PEM",
			input:       x509certs.EncodePEM(leaf),
			expectCount: 1,
		},
		{
			name:        "PEM bundle",
			input:       x509certs.EncodePEM(leaf, ca),
			expectCount: 2,
		},
		{
			name:        "Concatenated DER",
			input:       append(append([]byte{}, leaf.Raw...), ca.Raw...),
			expectCount: 2,
		},
		{
			name:        "Invalid PEM type",
			input:       []byte(invalidPEM),
			expectError: x509certs.ErrInvalidBlockType,
		},
		{
			name:        "Garbage",
			input:       []byte("not a certificate"),
			expectError: x509certs.ErrParseCertificate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certs, err := x509certs.Decode(tt.input)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			require.Len(t, certs, tt.expectCount)
			assert.True(t, certs[0].Equal(leaf))
		})
	}
}

func TestBase64(t *testing.T) {
	ca, _ := issue(t, "Round Trip", nil, nil)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Round trip",
			testFunc: func(t *testing.T) {
				decoded, err := x509certs.DecodeBase64(x509certs.EncodeBase64(ca))
				require.NoError(t, err)
				assert.True(t, ca.Equal(decoded))
			},
		},
		{
			name: "Surrounding whitespace ignored",
			testFunc: func(t *testing.T) {
				_, err := x509certs.DecodeBase64("\n" + x509certs.EncodeBase64(ca) + "\n")
				assert.NoError(t, err)
			},
		},
		{
			name: "Invalid base64",
			testFunc: func(t *testing.T) {
				_, err := x509certs.DecodeBase64("%%%")
				assert.ErrorIs(t, err, x509certs.ErrInvalidBase64)
			},
		},
		{
			name: "Valid base64 but not DER",
			testFunc: func(t *testing.T) {
				_, err := x509certs.DecodeBase64("AAAA")
				assert.ErrorIs(t, err, x509certs.ErrParseCertificate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestLoadSigner(t *testing.T) {
	root, rootKey := issue(t, "Root", nil, nil)
	leaf, _ := issue(t, "Leaf", root, rootKey)
	dir := t.TempDir()

	bundle := filepath.Join(dir, "bundle.pem")
	require.NoError(t, os.WriteFile(bundle, x509certs.EncodePEM(leaf, root), 0o600))

	leafOnly := filepath.Join(dir, "leaf.der")
	require.NoError(t, os.WriteFile(leafOnly, leaf.Raw, 0o600))

	chain := filepath.Join(dir, "chain.pem")
	require.NoError(t, os.WriteFile(chain, x509certs.EncodePEM(root), 0o600))

	t.Run("Bundle", func(t *testing.T) {
		signer, err := x509certs.LoadSigner(bundle, "")
		require.NoError(t, err)
		assert.True(t, signer.Certificate.Equal(leaf))
		require.Len(t, signer.Chain, 1)
		assert.Len(t, signer.All(), 2)
		assert.Equal(t, []string{x509certs.EncodeBase64(root)}, signer.ChainBase64())
		assert.Equal(t, x509certs.EncodeBase64(leaf), signer.CertificateBase64())
	})

	t.Run("Separate chain file", func(t *testing.T) {
		signer, err := x509certs.LoadSigner(leafOnly, chain)
		require.NoError(t, err)
		require.Len(t, signer.Chain, 1)
		assert.True(t, signer.Chain[0].Equal(root))
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := x509certs.LoadSigner(filepath.Join(dir, "nope.pem"), "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
