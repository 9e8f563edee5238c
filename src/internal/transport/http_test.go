// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package transport_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/transport"
)

var version = "1.3.3.7-testing"

func TestHTTPConfig(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Default user agent contains version",
			testFunc: func(t *testing.T) {
				cfg := transport.NewHTTPConfig(version)
				assert.Contains(t, cfg.GetUserAgent(), version)
				assert.Equal(t, transport.DefaultTimeout, cfg.Timeout)
			},
		},
		{
			name: "Custom user agent wins",
			testFunc: func(t *testing.T) {
				cfg := transport.NewHTTPConfig(version)
				cfg.UserAgent = "custom/1.0"
				assert.Equal(t, "custom/1.0", cfg.GetUserAgent())
			},
		},
		{
			name: "Client follows timeout changes",
			testFunc: func(t *testing.T) {
				cfg := transport.NewHTTPConfig(version)
				first := cfg.Client()
				cfg.Timeout = 3 * time.Second
				second := cfg.Client()
				assert.Same(t, first, second)
				assert.Equal(t, 3*time.Second, second.Timeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestDo(t *testing.T) {
	var gotUA, gotCT, gotAccept string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCT = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotBody, _ = io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("payload"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := transport.NewHTTPConfig(version)
	cfg.SetClient(srv.Client())

	t.Run("success sends headers", func(t *testing.T) {
		data, err := cfg.Do(context.Background(), http.MethodPost, srv.URL+"/ok",
			"application/timestamp-query", "application/timestamp-reply", bytes.NewReader([]byte{0x30, 0x00}))
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
		assert.Equal(t, cfg.GetUserAgent(), gotUA)
		assert.Equal(t, "application/timestamp-query", gotCT)
		assert.Equal(t, "application/timestamp-reply", gotAccept)
		assert.Equal(t, []byte{0x30, 0x00}, gotBody)
	})

	t.Run("non 200 is a StatusError", func(t *testing.T) {
		_, err := cfg.Do(context.Background(), http.MethodGet, srv.URL+"/missing", "", "", nil)
		var statusErr *transport.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := cfg.Do(ctx, http.MethodGet, srv.URL+"/ok", "", "", nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
