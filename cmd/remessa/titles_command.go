package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"remessa/internal/titles"
)

func newTitlesCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		assignmentID int64
		status       string
	)

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List an assignment's titles by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !titles.Status(status).Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			s, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			listed, err := s.TitlesByStatus(cmd.Context(), assignmentID, titles.Status(status))
			if err != nil {
				return err
			}
			if len(listed) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s titles for assignment %d.\n", status, assignmentID)
				return nil
			}

			rows := make([][]string, 0, len(listed))
			for _, t := range listed {
				due := ""
				if !t.DueDate.IsZero() {
					due = t.DueDate.Format("2006-01-02")
				}
				rows = append(rows, []string{
					strconv.FormatInt(t.OurNumber, 10),
					t.DocumentNumber,
					t.Payer.Name,
					due,
					fmt.Sprintf("%.2f", t.Value),
				})
			}
			renderTable(cmd.OutOrStdout(),
				[]string{"Our Number", "Document", "Payer", "Due", "Value"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight})
			return nil
		},
	}
	cmd.Flags().Int64Var(&assignmentID, "assignment", 0, "assignment to list")
	cmd.Flags().StringVar(&status, "status", string(titles.StatusOpen), "title status to list (open, sent, settled, error)")
	_ = cmd.MarkFlagRequired("assignment")
	return cmd
}
