package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

type dialectRow struct {
	Bank   string `json:"bank"`
	Name   string `json:"name"`
	Layout int    `json:"layout"`
	Source string `json:"source"`
}

func newDialectsCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List the registered bank dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := cmdCtx.dialects()
			if err != nil {
				return err
			}

			var out []dialectRow
			for _, d := range registry.All() {
				out = append(out, dialectRow{
					Bank:   d.BankCode,
					Name:   d.BankName,
					Layout: d.Layout,
					Source: d.Source,
				})
			}
			if jsonOutput {
				return writeJSON(cmd, out)
			}

			rows := make([][]string, 0, len(out))
			for _, d := range out {
				rows = append(rows, []string{d.Bank, d.Name, strconv.Itoa(d.Layout), d.Source})
			}
			renderTable(cmd.OutOrStdout(),
				[]string{"Bank", "Name", "Layout", "Source"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the list as JSON")
	return cmd
}
