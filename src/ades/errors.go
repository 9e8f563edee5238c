// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ades

import "fmt"

// ValidationError reports a rejected input before any I/O took place.
// Field is a path such as "documents[2].content".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("ades: invalid %s", e.Field)
	}
	return fmt.Sprintf("ades: invalid %s: %s", e.Field, e.Reason)
}

// MissingTimestampAuthorityError reports a level that needs a timestamp
// while no timestamp authority URL was given.
type MissingTimestampAuthorityError struct {
	Level Level
}

func (e *MissingTimestampAuthorityError) Error() string {
	return fmt.Sprintf("ades: level %s requires a timestamp authority URL", e.Level)
}

// DigestComputationError reports a document that was skipped because the
// engine could not open it or produce its digest.
type DigestComputationError struct {
	DocumentRef string
	Index       int // position in the request
	Err         error
}

func (e *DigestComputationError) Error() string {
	return fmt.Sprintf("ades: digest of document %q (index %d) failed: %v", e.DocumentRef, e.Index, e.Err)
}

func (e *DigestComputationError) Unwrap() error { return e.Err }

// SignatureCountMismatchError reports a finalize call whose signatures do
// not line up with the pending sessions.
type SignatureCountMismatchError struct {
	Expected int
	Actual   int
}

func (e *SignatureCountMismatchError) Error() string {
	return fmt.Sprintf("ades: expected %d signatures, got %d", e.Expected, e.Actual)
}

// TimestampRequestError reports a failure to obtain a timestamp token.
type TimestampRequestError struct {
	URL string
	Err error
}

func (e *TimestampRequestError) Error() string {
	return fmt.Sprintf("ades: timestamp request to %s failed: %v", e.URL, e.Err)
}

func (e *TimestampRequestError) Unwrap() error { return e.Err }

// FinalizationError reports the session at which finalize stopped.
// Sessions finalized before it are not rolled back.
type FinalizationError struct {
	SessionID int
	Completed int // sessions finalized before the failure
	Total     int
	Err       error
}

func (e *FinalizationError) Error() string {
	return fmt.Sprintf("ades: session %d failed after %d of %d sessions finalized: %v",
		e.SessionID, e.Completed, e.Total, e.Err)
}

func (e *FinalizationError) Unwrap() error { return e.Err }
