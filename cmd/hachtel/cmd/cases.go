package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hachtel/cases"
)

func newCasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List the built-in cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := cases.DefaultParams()
			for _, name := range cases.Names() {
				c, err := cases.ByName(name, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s buses=%d branches=%d measurements=%d\n",
					name, c.Network.BusCount(), c.Network.BranchCount(), len(c.Measurements))
			}

			return nil
		},
	}
}
