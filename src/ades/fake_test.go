// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ades_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/ades"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/der"
)

type fakeHandle struct {
	ref    string
	closed bool
}

func (h *fakeHandle) Close() error {
	h.closed = true
	return nil
}

// fakeEngine records every call as "<op>:<document ref>[:detail]".
type fakeEngine struct {
	mu        sync.Mutex
	calls     []string
	handles   []*fakeHandle
	finalized map[string]ades.Evidence

	failOpen     map[string]bool
	emptyHash    map[string]bool
	failFinalize map[string]bool
	crlURLs      map[string]string // certificate -> distribution point
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		finalized:    map[string]ades.Evidence{},
		failOpen:     map[string]bool{},
		emptyHash:    map[string]bool{},
		failFinalize: map[string]bool{},
		crlURLs:      map[string]string{},
	}
}

func (e *fakeEngine) record(format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, fmt.Sprintf(format, args...))
}

func (e *fakeEngine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// CallsWithPrefix filters the recorded calls by operation.
func (e *fakeEngine) CallsWithPrefix(op string) []string {
	var out []string
	for _, c := range e.Calls() {
		if strings.HasPrefix(c, op+":") {
			out = append(out, c)
		}
	}
	return out
}

func (e *fakeEngine) Open(_ context.Context, p ades.OpenParams) (ades.Handle, error) {
	ref := string(p.Input)
	e.record("open:%s", ref)
	if e.failOpen[ref] {
		return nil, errors.New("corrupt document")
	}
	h := &fakeHandle{ref: ref}
	e.handles = append(e.handles, h)
	return h, nil
}

func (e *fakeEngine) CalculateHash(_ context.Context, h ades.Handle) (string, error) {
	ref := h.(*fakeHandle).ref
	e.record("hash:%s", ref)
	if e.emptyHash[ref] {
		return "", nil
	}
	return base64.StdEncoding.EncodeToString([]byte("digest-" + ref)), nil
}

func (e *fakeEngine) Finalize(_ context.Context, h ades.Handle, signedHash string, ev ades.Evidence) error {
	ref := h.(*fakeHandle).ref
	e.record("finalize:%s", ref)
	if e.failFinalize[ref] {
		return errors.New("embedding failed")
	}
	e.mu.Lock()
	e.finalized[ref] = ev
	e.mu.Unlock()
	return nil
}

func (e *fakeEngine) CRLDistributionURL(_ context.Context, h ades.Handle, certificate string) (string, error) {
	e.record("crl:%s:%s", h.(*fakeHandle).ref, certificate)
	return e.crlURLs[certificate], nil
}

func (e *fakeEngine) BeginArchivalTimestamp(_ context.Context, h ades.Handle) (string, error) {
	e.record("begin:%s", h.(*fakeHandle).ref)
	return base64.StdEncoding.EncodeToString([]byte("archive-" + h.(*fakeHandle).ref)), nil
}

func (e *fakeEngine) FinishArchivalTimestamp(_ context.Context, h ades.Handle, timestamp string) error {
	e.record("finish:%s", h.(*fakeHandle).ref)
	return nil
}

// fakeTSA answers every request with a granted response and counts calls.
type fakeTSA struct {
	mu       sync.Mutex
	requests [][]byte
	urls     []string
	failAt   int // 1-based request number that fails, 0 for never
}

var grantedResponse = der.Sequence(der.Sequence(der.Integer(0)))

func (t *fakeTSA) RequestTimestamp(_ context.Context, request []byte, tsaURL string) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests = append(t.requests, request)
	t.urls = append(t.urls, tsaURL)
	if t.failAt == len(t.requests) {
		return nil, errors.New("tsa unavailable")
	}
	return grantedResponse, nil
}

// fakeCRLs serves a fixed body per URL and counts fetches. With journal set
// every fetch is also recorded as "fetch:<url>" among the engine calls.
type fakeCRLs struct {
	mu      sync.Mutex
	fetches []string
	fail    map[string]bool
	journal *fakeEngine
}

func (f *fakeCRLs) FetchCRL(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, url)
	if f.journal != nil {
		f.journal.record("fetch:%s", url)
	}
	if f.fail[url] {
		return nil, errors.New("404")
	}
	return []byte("crl@" + url), nil
}
