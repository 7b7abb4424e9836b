// safecall is the null-safe counterpart of nullreference: it applies the
// uppercase conversion through a safe call, so an absent string prints
// "null" instead of failing.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/FredrikPedersen/nullref/internal/nullref"
	"github.com/FredrikPedersen/nullref/optional"
)

const defaultText = "This is not null"

// absentFlag holds the --absent flag value.
var absentFlag bool

var rootCmd = &cobra.Command{
	Use:   "safecall [text]",
	Short: "Uppercase a possibly absent string with a safe call",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSafeCall(cmd.OutOrStdout(), args, absentFlag)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&absentFlag, "absent", false, "bind the string to the absence value")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runSafeCall prints the safe-call uppercase of the bound string.
func runSafeCall(w io.Writer, args []string, absent bool) error {
	str := optional.Some(defaultText)
	if len(args) == 1 {
		str = optional.Some(args[0])
	}
	if absent {
		str = optional.None[string]()
	}

	_, err := fmt.Fprintln(w, nullref.SafeUppercase(str))
	return err
}
