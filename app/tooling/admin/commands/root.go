// Package commands contains the operator commands for talking to a node.
package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// url of the node API the commands talk to. Most commands use the public
// API; the ones that need the private API say so in their help text.
var url string

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Operator client for a ledger node",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

// Execute runs the command specified on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
