package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type applyOutput struct {
	Session string     `json:"session"`
	Applied int        `json:"applied"`
	Skipped int        `json:"skipped"`
	Issues  []issueRow `json:"issues,omitempty"`
}

func newApplyCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply a return file's occurrences to the title store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, cmdCtx, args[0], jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	return cmd
}

func runApply(cmd *cobra.Command, cmdCtx *commandContext, path string, jsonOutput bool) error {
	s, err := cmdCtx.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	result, report, err := parseReturnFile(cmdCtx, path, s)
	if err != nil {
		return err
	}
	applied, err := s.ApplyChanges(cmd.Context(), result.Bank, result.Layout, report.Changes())
	if err != nil {
		return err
	}

	out := applyOutput{Session: applied.ID, Applied: applied.Applied, Skipped: applied.Skipped}
	for _, issue := range append(result.Issues, report.Issues...) {
		out.Issues = append(out.Issues, issueRow{
			Severity: issue.Severity.String(),
			Line:     issue.Line,
			Message:  issue.Message,
		})
	}
	if jsonOutput {
		return writeJSON(cmd, out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Applied %d title changes (%d skipped).\n", out.Applied, out.Skipped)
	printIssues(w, out.Issues)
	return nil
}
