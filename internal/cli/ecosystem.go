package cli

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/resgen/ecosystem"
)

func ecosystemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ecosystem",
		Short: "List the known ecosystems and the one compiled in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			active := ecosystem.Active()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, bold.Sprint("NAME\tWRAPPER\tSCOPE\tCONTAINER"))
			for _, e := range ecosystem.All() {
				name := e.Name
				if slices.Contains(active, e.Name) {
					name = green.Sprint(name + " *")
				}
				scope := "-"
				if e.Wrapper.Scoped() {
					scope = e.Wrapper.Scope.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, e.Wrapper.Ident, scope, e.Container)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if _, err := ecosystem.Selected(); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), grey.Sprint(err.Error()))
			}
			return nil
		},
	}
}
