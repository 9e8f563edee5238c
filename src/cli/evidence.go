// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	x509certs "github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/x509/revocation"
)

type evidenceOptions struct {
	file   string
	chain  string
	json   bool
	stats  bool
	output string
}

func newEvidenceCommand(a *app) *cobra.Command {
	opts := &evidenceOptions{}

	cmd := &cobra.Command{
		Use:   "crl-evidence",
		Short: "Collect CRL evidence for a signer certificate and its chain",
		Long: `Read the signer certificate (PEM, DER or PKCS#7) and its chain, fetch the CRL of
every distinct distribution point once and report the evidence that a B-LT
signature would embed.`,
		Example: `  ades-signer crl-evidence -f signer.pem --chain chain.pem
  ades-signer crl-evidence -f bundle.p7b --json -o evidence.json`,
		Args: cobra.NoArgs,
		RunE: track(func(cmd *cobra.Command, _ []string) error {
			return runEvidence(cmd, a, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "signer certificate, optionally followed by its chain")
	cmd.Flags().StringVar(&opts.chain, "chain", "", "additional chain certificates")
	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "emit JSON instead of a markdown table")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "log CRL cache statistics when done")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to OUTPUT_FILE")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runEvidence(cmd *cobra.Command, a *app, opts *evidenceOptions) error {
	signer, err := x509certs.LoadSigner(opts.file, opts.chain)
	if err != nil {
		return err
	}

	urls := revocation.DistributionURLs(signer.All())
	a.log.Printf("Found %d distinct CRL distribution points across %d certificates", urls.Len(), len(signer.All()))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cache := a.crlCache()
	cache.StartCleanup(ctx)

	agg := revocation.NewAggregator(revocation.NewCRLFetcher(a.httpConfig(), cache))
	evidence, err := agg.CollectCRLEvidence(ctx, urls)
	if err != nil {
		return err
	}

	var report []byte
	if opts.json {
		report, err = revocation.ToJSON(evidence)
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		report = append(report, '\n')
	} else {
		report = []byte(revocation.RenderTable(evidence))
	}

	if opts.stats {
		a.log.Println(cache.Stats())
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, report, 0o644); err != nil {
			return fmt.Errorf("error writing to output file: %w", err)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(report)
	return err
}
