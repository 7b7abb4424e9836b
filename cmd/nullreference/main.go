// nullreference binds a string to the absence value and converts it to upper
// case. The conversion panics with an absent value dereference and the
// process dies with the runtime's panic report on stderr. There is no
// success path and command-line arguments are ignored.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/FredrikPedersen/nullref/internal/nullref"
)

var rootCmd = &cobra.Command{
	Use:           "nullreference",
	Short:         "Dereference an absent string",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		nullref.Run()
	},
}

func main() {
	// An empty, non-nil argument list keeps cobra from reading os.Args.
	rootCmd.SetArgs([]string{})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	// Run does not return.
	os.Exit(1)
}
