// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package ades orchestrates remote creation of advanced electronic
// signatures in two phases.
//
// [Service.CalculateDigests] opens one signing session per document on the
// external document signing engine and returns the digests the remote
// signing authority must sign. [Service.Finalize] pairs the returned
// signature values with those sessions by index and augments each one as its
// conformance [Level] requires:
//
//	B      signature only
//	B_T    + RFC 3161 timestamp over the signature value
//	B_LT   + certificates and CRLs of the signer
//	B_LTA  + archival timestamp over the finalized document
//
// A Service holds at most one batch. Starting a new digest calculation
// discards the previous batch and Finalize always clears it, whether it
// succeeds or not.
//
// Example usage:
//
//	svc := ades.NewService(engine, ades.WithLogger(log))
//	digests, err := svc.CalculateDigests(ctx, ades.DigestRequest{
//		Documents:     docs,
//		HashAlgorithm: "SHA256",
//		Certificate:   cert,
//		Chain:         chain,
//		TSAURL:        "http://timestamp.example",
//	})
//	if err != nil {
//		return err
//	}
//
//	signatures, err := remoteAuthority.Sign(ctx, digests)
//	if err != nil {
//		return err
//	}
//
//	result, err := svc.Finalize(ctx, signatures, "http://timestamp.example")
//	if err != nil {
//		var fe *ades.FinalizationError
//		if errors.As(err, &fe) {
//			log.Printf("finalized %v before session %d failed", result.Finalized, fe.SessionID)
//		}
//		return err
//	}
package ades
