package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/services"
)

func newVocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab [field [value...]]",
		Short: "Print the canonical vocabularies or canonicalize values",
		Long: "Without arguments, prints every vocabulary as JSON. With a field, prints that\n" +
			"vocabulary. With a field and values, prints each value next to its label.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := services.NewVocabularyService()
			out := cmd.OutOrStdout()

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")

			switch len(args) {
			case 0:
				return enc.Encode(svc.Describe())
			case 1:
				for _, d := range svc.Describe() {
					if d.Field == args[0] {
						return enc.Encode(d)
					}
				}
				return fmt.Errorf("%q: %w (known: %v)", args[0], services.ErrUnknownField, svc.Fields())
			}

			labels, err := svc.Canonicalize(args[0], args[1:])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, value := range args[1:] {
				fmt.Fprintf(tw, "%s\t%s\n", value, labels[i])
			}
			return tw.Flush()
		},
	}
}
