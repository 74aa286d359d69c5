package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"prflow.dev/prflow/internal/strategy"
	"prflow.dev/prflow/internal/tui"
)

// newStrategiesCmd creates the strategies command
func newStrategiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "strategies",
		Short:        "List the branching strategies and the stages of each",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printStrategies(cmd.OutOrStdout())
			return nil
		},
	}

	return cmd
}

func printStrategies(w io.Writer) {
	for i, s := range strategy.All {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, tui.ColorCyan(s.String()))

		stages := strategy.StagesFor(s)
		if len(stages) == 0 {
			fmt.Fprintln(w, "  targets are chosen by hand")
			continue
		}
		width := 0
		for _, st := range stages {
			width = max(width, len(st.Name))
		}
		for _, st := range stages {
			next := tui.ColorDim("last stage, versioned branches target their next sibling")
			if st.HasNext() {
				next = "-> " + st.Next
			}
			fmt.Fprintf(w, "  %-*s  %s  %s\n", width, st.Name, strings.Join(st.Pattern.Globs(), ", "), next)
		}
	}
}
