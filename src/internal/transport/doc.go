// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package transport holds the HTTP client configuration shared by the
// network collaborators of the signing core: the [RFC 3161] timestamp
// authority client and the [CRL] distribution point fetcher.
//
// Response bodies are read through pooled buffers from the gc package.
// No retry policy is applied here.
//
// [RFC 3161]: https://www.rfc-editor.org/rfc/rfc3161
// [CRL]: https://grokipedia.com/page/Certificate_revocation_list
package transport
