package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dd0wney/cluso-hpo/pkg/ontology"
	"github.com/spf13/cobra"
)

func newPackCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <hp.json> <hp.json.sz>",
		Short: "Write a snappy snapshot of an ontology file",
		Long: `pack compresses an OBO graph JSON file into a framed snappy stream.
Any data location ending in .sz is decompressed on load.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			if !ontology.IsSnapshot(dst) {
				return fmt.Errorf("destination %q must end in %s", dst, ontology.SnapshotSuffix)
			}

			// Refuse to pack something that would not load.
			if _, err := ontology.Load(cmd.Context(), ontology.FileSource{Path: src}); err != nil {
				return err
			}

			in, err := os.Open(src)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := os.Create(dst)
			if err != nil {
				return err
			}
			n, err := ontology.WriteSnapshot(out, in)
			if cerr := out.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			}
			if err != nil {
				_ = os.Remove(dst)
				return fmt.Errorf("write snapshot: %w", err)
			}

			info, err := os.Stat(dst)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "packed %s (%d bytes) into %s (%d bytes)\n", src, n, dst, info.Size())
			return nil
		},
	}
}
