// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tsp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/transport"
)

// Media types registered by RFC 3161 section 4.
const (
	ContentTypeQuery = "application/timestamp-query"
	ContentTypeReply = "application/timestamp-reply"
)

// PKIStatus values a response may carry.
const (
	StatusGranted         = 0
	StatusGrantedWithMods = 1
	StatusRejection       = 2
	StatusWaiting         = 3
)

var (
	// ErrNoAuthority indicates an empty timestamp authority URL.
	ErrNoAuthority = errors.New("tsp: no timestamp authority URL")

	// ErrMalformedResponse indicates a reply that is not a TimeStampResp.
	ErrMalformedResponse = errors.New("tsp: malformed timestamp response")

	// ErrTimestampRejected indicates a reply whose PKIStatus is not granted.
	ErrTimestampRejected = errors.New("tsp: timestamp request rejected")
)

// HTTPTimestamper requests timestamps from an RFC 3161 authority over HTTP.
type HTTPTimestamper struct {
	HTTP *transport.HTTPConfig
}

// NewHTTPTimestamper creates a timestamper that uses the given HTTP configuration.
func NewHTTPTimestamper(cfg *transport.HTTPConfig) *HTTPTimestamper {
	return &HTTPTimestamper{HTTP: cfg}
}

// Response is a granted TimeStampResp together with its PKIStatus.
type Response struct {
	Raw    []byte // DER TimeStampResp, unmodified
	Status int64  // StatusGranted or StatusGrantedWithMods
}

// Request posts a DER TimeStampReq to tsaURL and returns the reply once its
// PKIStatus is granted or grantedWithMods.
//
// Thread Safety: Safe for concurrent use.
func (t *HTTPTimestamper) Request(ctx context.Context, request []byte, tsaURL string) (*Response, error) {
	if tsaURL == "" {
		return nil, ErrNoAuthority
	}

	resp, err := t.HTTP.Do(ctx, http.MethodPost, tsaURL, ContentTypeQuery, ContentTypeReply, bytes.NewReader(request))
	if err != nil {
		return nil, err
	}

	status, err := ResponseStatus(resp)
	if err != nil {
		return nil, err
	}
	if status != StatusGranted && status != StatusGrantedWithMods {
		return nil, fmt.Errorf("%w: status %d", ErrTimestampRejected, status)
	}

	return &Response{Raw: resp, Status: status}, nil
}

// RequestTimestamp is [HTTPTimestamper.Request] returning only the raw
// TimeStampResp.
func (t *HTTPTimestamper) RequestTimestamp(ctx context.Context, request []byte, tsaURL string) ([]byte, error) {
	resp, err := t.Request(ctx, request, tsaURL)
	if err != nil {
		return nil, err
	}
	return resp.Raw, nil
}

// ResponseStatus reads the PKIStatus of a DER TimeStampResp.
//
//	TimeStampResp ::= SEQUENCE {
//	   status          PKIStatusInfo,
//	   timeStampToken  TimeStampToken OPTIONAL }
func ResponseStatus(tsr []byte) (int64, error) {
	input := cryptobyte.String(tsr)

	var resp, statusInfo cryptobyte.String
	if !input.ReadASN1(&resp, cbasn1.SEQUENCE) || !input.Empty() {
		return 0, ErrMalformedResponse
	}
	if !resp.ReadASN1(&statusInfo, cbasn1.SEQUENCE) {
		return 0, ErrMalformedResponse
	}

	var status int64
	if !statusInfo.ReadASN1Integer(&status) {
		return 0, ErrMalformedResponse
	}

	return status, nil
}
