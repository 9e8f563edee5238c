// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tsp

import (
	"crypto/sha256"
	"encoding/asn1"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/der"
)

// OIDSHA256 identifies SHA-256 in the message imprint.
var OIDSHA256 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}

// requestVersion is the TimeStampReq version defined by RFC 3161.
const requestVersion = 1

var (
	// ErrEmptyHash indicates that no data was supplied to be timestamped.
	ErrEmptyHash = errors.New("tsp: empty hash")
)

// EncodingError indicates that the data given to the codec is not valid base64.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("tsp: invalid base64 encoding: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// sha256AlgorithmIdentifier is the encoded AlgorithmIdentifier{sha256, NULL}.
var sha256AlgorithmIdentifier = func() []byte {
	oid, err := der.ObjectIdentifier(OIDSHA256)
	if err != nil {
		panic(err)
	}
	return der.Sequence(oid, der.Null())
}()

// BuildRequest builds a DER encoded TimeStampReq over the SHA-256 digest of
// the base64 decoded data:
//
//	TimeStampReq ::= SEQUENCE {
//	   version         INTEGER { v1(1) },
//	   messageImprint  MessageImprint,
//	   certReq         BOOLEAN }
//
//	MessageImprint ::= SEQUENCE {
//	   hashAlgorithm   AlgorithmIdentifier,
//	   hashedMessage   OCTET STRING }
//
// No nonce or policy is requested.
func BuildRequest(base64Data string) ([]byte, error) {
	if base64Data == "" {
		return nil, ErrEmptyHash
	}

	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	digest := sha256.Sum256(data)

	imprint := der.Sequence(sha256AlgorithmIdentifier, der.OctetString(digest[:]))
	return der.Sequence(
		der.Integer(requestVersion),
		imprint,
		der.Boolean(true),
	), nil
}

// EncodeResponseToBase64 encodes a raw TimeStampResp for transport.
func EncodeResponseToBase64(tsr []byte) string {
	return base64.StdEncoding.EncodeToString(tsr)
}

// DecodeResponseFromBase64 is the inverse of [EncodeResponseToBase64].
func DecodeResponseFromBase64(s string) ([]byte, error) {
	tsr, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return tsr, nil
}
