// Package querycmd implements the free-text search subcommand.
package querycmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"undl/src/internal/config"
	"undl/src/internal/logx"
	"undl/src/internal/undl"
)

// New returns the query command for free-text catalog searches.
func New() *cobra.Command {
	var verbose bool
	var output, format, lang, searchID string
	var count int
	cmd := &cobra.Command{
		Use:   "query <prompt>",
		Short: "Search the catalog and project matching records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c := undl.New(cfg, logx.New(verbose))
			res, err := c.Query(cmd.Context(), strings.Join(args, " "), undl.QueryOptions{
				Format:     format,
				Lang:       lang,
				SearchID:   searchID,
				Count:      count,
				OutputFile: output,
			})
			if err != nil {
				return err
			}
			if res.Total != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d result(s), %d record(s) returned\n", *res.Total, len(res.Records))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%d record(s) returned\n", len(res.Records))
			}
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result JSON to this file")
	cmd.Flags().IntVarP(&count, "count", "n", undl.DefaultCount, "number of results (capped at 200)")
	cmd.Flags().StringVarP(&format, "format", "f", undl.DefaultFormat, "output format name")
	cmd.Flags().StringVar(&lang, "lang", "en", "interface language code")
	cmd.Flags().StringVar(&searchID, "search-id", "", "continuation token from a prior search")
	return cmd
}
