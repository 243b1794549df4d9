package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/meigma/includes"
)

func newDigestCmd() *cobra.Command {
	var maxBytes int64
	cmd := &cobra.Command{
		Use:   "digest [file|url|-]",
		Short: "Print the digest of a query document",
		Long: `Print the canonical digest of the raw document bytes, suitable for
"includes eval --digest".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := newInput(inputArg(args), cmd.InOrStdin(), maxBytes)
			rc, err := in.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()

			r := &io.LimitedReader{R: rc, N: math.MaxInt64}
			if maxBytes > 0 && maxBytes < math.MaxInt64 {
				r.N = maxBytes + 1
			}
			d, err := includes.Digest(r)
			if err != nil {
				return err
			}
			if r.N == 0 {
				return fmt.Errorf("%w: exceeds %d bytes", includes.ErrDocumentTooLarge, maxBytes)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), d.String())
			return err
		},
	}
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", includes.DefaultMaxDocumentBytes, "maximum document size in bytes (0 for no limit)")
	return cmd
}
