// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/tsp"
)

type timestampOptions struct {
	data   string
	file   string
	tsaURL string
	send   bool
	output string
}

func newTimestampCommand(a *app) *cobra.Command {
	opts := &timestampOptions{}

	cmd := &cobra.Command{
		Use:   "timestamp-request",
		Short: "Build an RFC 3161 timestamp request and optionally send it",
		Long: `Build a DER TimeStampReq whose message imprint is the SHA-256 of the input.

Without --send the base64 request is printed. With --send it is posted to the
timestamp authority and the base64 TimeStampResp is printed instead.`,
		Example: `  ades-signer timestamp-request --data "$(base64 -w0 signature.bin)"
  ades-signer timestamp-request -f signature.bin --send --tsa http://timestamp.digicert.com -o token.tsr`,
		Args: cobra.NoArgs,
		RunE: track(func(cmd *cobra.Command, _ []string) error {
			return runTimestamp(cmd, a, opts)
		}),
	}

	cmd.Flags().StringVar(&opts.data, "data", "", "base64 data to timestamp (e.g. a signature value)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "file whose raw bytes are timestamped")
	cmd.Flags().StringVar(&opts.tsaURL, "tsa", "", "timestamp authority URL (default: tsa.url from config)")
	cmd.Flags().BoolVar(&opts.send, "send", false, "send the request and print the response")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write raw DER to OUTPUT_FILE instead of printing base64")
	cmd.MarkFlagsMutuallyExclusive("data", "file")

	return cmd
}

func runTimestamp(cmd *cobra.Command, a *app, opts *timestampOptions) error {
	data := opts.data
	if opts.file != "" {
		raw, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("error reading input file: %w", err)
		}
		data = base64.StdEncoding.EncodeToString(raw)
	}
	if data == "" {
		return ErrNoInput
	}

	request, err := tsp.BuildRequest(data)
	if err != nil {
		return err
	}

	out := request
	if opts.send {
		tsaURL := opts.tsaURL
		if tsaURL == "" {
			tsaURL = a.cfg.TSA.URL
		}
		if tsaURL == "" {
			return ErrNoAuthority
		}

		resp, err := tsp.NewHTTPTimestamper(a.httpConfig()).Request(cmd.Context(), request, tsaURL)
		if err != nil {
			return err
		}
		a.log.Printf("Timestamp granted by %s (status %d, %d bytes)", tsaURL, resp.Status, len(resp.Raw))
		out = resp.Raw
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return fmt.Errorf("error writing to output file: %w", err)
		}
		a.log.Printf("Wrote %d bytes to %s", len(out), opts.output)
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), tsp.EncodeResponseToBase64(out))
	return err
}
