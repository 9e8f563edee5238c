// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package tsp implements the client side of the [RFC 3161] Time-Stamp Protocol
// as needed by the AdES augmentation steps.
//
// The request encoder always uses SHA-256 for the message imprint, whatever
// hash algorithm the signed document itself was configured with. Responses
// are treated as opaque DER and only transported as base64.
//
// [RFC 3161]: https://www.rfc-editor.org/rfc/rfc3161
package tsp
