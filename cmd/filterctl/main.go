package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "filterctl",
		Short:         "Drive and inspect listing filter widgets",
		Long:          "filterctl replays scripted filter interactions, encodes criteria as listing query strings and reads the latest criteria a session published.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "filterctl %s\n", version)
		},
	})
	root.AddCommand(newReplayCmd())
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newLatestCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
