// blsh is a natural-language shell for a simulated blocks world. Type an
// utterance, watch the gripper plan and execute it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blsh",
		Short:         "natural-language blocks-world shell",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd)
		},
	}
	root.AddCommand(newReplCmd(), newPlanCmd(), newWorldsCmd(), newHistoryCmd())
	return root
}
