// Package idscmd implements the record-identifier listing subcommand.
package idscmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"undl/src/internal/config"
	"undl/src/internal/logx"
	"undl/src/internal/undl"
)

// New returns the ids command, which lists only the identifiers matching a
// prompt instead of whole records.
func New() *cobra.Command {
	var verbose bool
	var output string
	cmd := &cobra.Command{
		Use:   "ids <prompt>",
		Short: "List the record identifiers matching a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c := undl.New(cfg, logx.New(verbose))
			ids, err := c.AllRecordIDs(cmd.Context(), strings.Join(args, " "), output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d id(s) returned\n", len(ids.Hits), ids.Total)
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result JSON to this file")
	return cmd
}
