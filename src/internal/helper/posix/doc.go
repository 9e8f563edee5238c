// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides helpers for presenting the running binary the way
// a [POSIX] shell user invoked it.
//
//   - Linux/macOS: "/usr/bin/ades-signer" → "ades-signer"
//   - Windows: "C:\bin\ades-signer.exe" → "ades-signer"
//   - Empty os.Args → the fallback given by the caller
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
