// Package recordcmd implements the by-identifier lookup subcommand.
package recordcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"undl/src/internal/config"
	"undl/src/internal/logx"
	"undl/src/internal/undl"
)

// New returns the record command for single-record lookups by catalog id.
func New() *cobra.Command {
	var verbose bool
	var output string
	cmd := &cobra.Command{
		Use:   "record <id>",
		Short: "Fetch one record by its catalog identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c := undl.New(cfg, logx.New(verbose))
			res, err := c.QueryByID(cmd.Context(), args[0], output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d record(s) returned\n", len(res.Records))
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
