package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"remessa/internal/extract"
	"remessa/internal/retorno"
)

type parseOutput struct {
	Bank       string     `json:"bank"`
	BankName   string     `json:"bank_name"`
	Layout     string     `json:"layout"`
	Registries int        `json:"registries"`
	Titles     []titleRow `json:"titles"`
	Totals     []totalRow `json:"totals,omitempty"`
	Issues     []issueRow `json:"issues,omitempty"`
}

type titleRow struct {
	Line        int     `json:"line"`
	OurNumber   int64   `json:"our_number"`
	Movement    string  `json:"movement"`
	Description string  `json:"description"`
	Occurrences string  `json:"occurrences,omitempty"`
	ValuePaid   float64 `json:"value_paid"`
}

type totalRow struct {
	Name  string  `json:"name"`
	Count int64   `json:"count"`
	Value float64 `json:"value"`
}

type issueRow struct {
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

func newParseCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a return file and summarize its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, cmdCtx, args[0], jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the summary as JSON")
	return cmd
}

func runParse(cmd *cobra.Command, cmdCtx *commandContext, path string, jsonOutput bool) error {
	result, report, err := parseReturnFile(cmdCtx, path, nil)
	if err != nil {
		return err
	}

	out := buildParseOutput(result, report)
	if jsonOutput {
		return writeJSON(cmd, out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Bank %s (%s), layout %s, %d registries\n",
		out.Bank, out.BankName, out.Layout, out.Registries)

	if len(out.Titles) > 0 {
		rows := make([][]string, 0, len(out.Titles))
		for _, t := range out.Titles {
			rows = append(rows, []string{
				strconv.Itoa(t.Line),
				strconv.FormatInt(t.OurNumber, 10),
				t.Movement,
				t.Description,
				t.Occurrences,
				fmt.Sprintf("%.2f", t.ValuePaid),
			})
		}
		renderTable(w,
			[]string{"Line", "Our Number", "Mov", "Description", "Occurrences", "Paid"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignRight})
	}

	if len(out.Totals) > 0 {
		rows := make([][]string, 0, len(out.Totals))
		for _, t := range out.Totals {
			rows = append(rows, []string{
				t.Name,
				strconv.FormatInt(t.Count, 10),
				fmt.Sprintf("%.2f", t.Value),
			})
		}
		renderTable(w,
			[]string{"Charging", "Count", "Value"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight})
	}

	printIssues(w, out.Issues)
	return nil
}

// parseReturnFile is the shared parse-then-extract pipeline behind the parse
// and apply commands. resolver may be nil for a codec-only run.
func parseReturnFile(cmdCtx *commandContext, path string, resolver extract.Resolver) (*retorno.Result, *extract.Report, error) {
	registry, err := cmdCtx.dialects()
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read return file: %w", err)
	}
	result, err := retorno.NewParser(registry, cmdCtx.logger).Parse(data)
	if err != nil {
		return nil, nil, err
	}
	report := extract.New(resolver, cmdCtx.logger).Extract(result)
	return result, report, nil
}

func buildParseOutput(result *retorno.Result, report *extract.Report) parseOutput {
	out := parseOutput{
		Bank:       result.Bank,
		BankName:   result.Dialect.BankName,
		Layout:     result.Layout.String(),
		Registries: result.Registries(),
	}
	for _, t := range report.Titles {
		codes := make([]string, 0, len(t.Occurrences))
		for _, occ := range t.Occurrences {
			codes = append(codes, occ.Code)
		}
		out.Titles = append(out.Titles, titleRow{
			Line:        t.Line,
			OurNumber:   t.OurNumber,
			Movement:    t.Movement,
			Description: t.MovementDescription,
			Occurrences: strings.Join(codes, " "),
			ValuePaid:   t.ValuePaid,
		})
	}
	for _, t := range report.Totals {
		if t.Count == 0 && t.Value == 0 {
			continue
		}
		out.Totals = append(out.Totals, totalRow{Name: t.Name, Count: t.Count, Value: t.Value})
	}
	for _, issue := range append(result.Issues, report.Issues...) {
		out.Issues = append(out.Issues, issueRow{
			Severity: issue.Severity.String(),
			Line:     issue.Line,
			Message:  issue.Message,
		})
	}
	return out
}

func printIssues(w io.Writer, issues []issueRow) {
	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(w, "%s: line %d: %s\n", issue.Severity, issue.Line, issue.Message)
		} else {
			fmt.Fprintf(w, "%s: %s\n", issue.Severity, issue.Message)
		}
	}
}
