// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

const blockTypeCertificate = "CERTIFICATE"

var (
	// ErrInvalidBlockType indicates a PEM block that is not a certificate.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates data that is neither a certificate nor a PKCS7 bundle.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificates indicates input that decoded to zero certificates.
	ErrNoCertificates = errors.New("x509certs: no certificates found")

	// ErrInvalidBase64 indicates a certificate string that is not standard base64.
	ErrInvalidBase64 = errors.New("x509certs: invalid base64 certificate")
)

// Signer holds an end-entity certificate followed by its issuing chain.
type Signer struct {
	Certificate *x509.Certificate
	Chain       []*x509.Certificate
}

// All returns the end-entity certificate followed by the chain.
func (s *Signer) All() []*x509.Certificate {
	return append([]*x509.Certificate{s.Certificate}, s.Chain...)
}

// CertificateBase64 returns the end-entity certificate as base64 DER.
func (s *Signer) CertificateBase64() string { return EncodeBase64(s.Certificate) }

// ChainBase64 returns the chain as base64 DER strings in order.
func (s *Signer) ChainBase64() []string {
	out := make([]string, len(s.Chain))
	for i, c := range s.Chain {
		out[i] = EncodeBase64(c)
	}
	return out
}

// IsPEM checks if the data is in PEM format.
func IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// Decode returns every certificate contained in data.
//
// PEM input may hold several CERTIFICATE blocks; binary input is tried as a
// sequence of DER certificates and then as a PKCS7 bundle.
func Decode(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate

	if IsPEM(data) {
		for {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != blockTypeCertificate {
				return nil, ErrInvalidBlockType
			}
			parsed, err := decodeDER(block.Bytes)
			if err != nil {
				return nil, err
			}
			certs = append(certs, parsed...)
			data = rest
		}
	} else {
		parsed, err := decodeDER(data)
		if err != nil {
			return nil, err
		}
		certs = parsed
	}

	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}
	return certs, nil
}

func decodeDER(data []byte) ([]*x509.Certificate, error) {
	if certs, err := x509.ParseCertificates(data); err == nil {
		return certs, nil
	}

	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParseCertificate
	}
	return p.Content.SignedData.Certificates, nil
}

// DecodeBase64 parses a single base64 DER certificate.
func DecodeBase64(s string) (*x509.Certificate, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	cert, err := x509.ParseCertificate(raw)
	if err != nil {
		return nil, ErrParseCertificate
	}
	return cert, nil
}

// EncodeBase64 returns the base64 DER form of cert.
func EncodeBase64(cert *x509.Certificate) string {
	return base64.StdEncoding.EncodeToString(cert.Raw)
}

// EncodePEM encodes certificates as consecutive PEM blocks.
func EncodePEM(certs ...*x509.Certificate) []byte {
	var data []byte
	for _, cert := range certs {
		data = append(data, pem.EncodeToMemory(&pem.Block{Type: blockTypeCertificate, Bytes: cert.Raw})...)
	}
	return data
}

// LoadSigner reads the end-entity certificate from certPath and the chain
// from chainPath. When chainPath is empty the chain is taken from any
// certificates following the first one in certPath.
func LoadSigner(certPath, chainPath string) (*Signer, error) {
	certs, err := loadFile(certPath)
	if err != nil {
		return nil, err
	}

	signer := &Signer{Certificate: certs[0], Chain: certs[1:]}
	if chainPath != "" {
		chain, err := loadFile(chainPath)
		if err != nil {
			return nil, err
		}
		signer.Chain = append(signer.Chain, chain...)
	}

	return signer, nil
}

func loadFile(path string) ([]*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("x509certs: failed to read %s: %w", path, err)
	}
	certs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("x509certs: %s: %w", path, err)
	}
	return certs, nil
}
