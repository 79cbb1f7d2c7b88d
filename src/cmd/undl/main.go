package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"undl/src/cmd/undl/idscmd"
	"undl/src/cmd/undl/querycmd"
	"undl/src/cmd/undl/recordcmd"
)

var rootCmd = &cobra.Command{
	Use:   "undl",
	Short: "Query the UN Digital Library catalog",
}

func execute() error {
	// Attach subcommands
	rootCmd.AddCommand(querycmd.New())
	rootCmd.AddCommand(recordcmd.New())
	rootCmd.AddCommand(idscmd.New())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
