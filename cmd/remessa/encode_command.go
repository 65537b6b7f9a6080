package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"remessa/internal/cnab"
	"remessa/internal/shipping"
	"remessa/internal/store"
)

type encodeOutput struct {
	File       string  `json:"file"`
	Counter    int     `json:"counter"`
	Titles     int     `json:"titles"`
	Lots       int     `json:"lots"`
	TotalValue float64 `json:"total_value"`
}

func newEncodeCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		assignmentID int64
		movement     string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode the assignment's open titles into a shipping file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, cmdCtx, assignmentID, movement, jsonOutput)
		},
	}
	cmd.Flags().Int64Var(&assignmentID, "assignment", 0, "assignment to encode for")
	cmd.Flags().StringVar(&movement, "movement", shipping.MovementEntry, "movement code for every entry")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("assignment")
	return cmd
}

func runEncode(cmd *cobra.Command, cmdCtx *commandContext, assignmentID int64, movement string, jsonOutput bool) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	registry, err := cmdCtx.dialects()
	if err != nil {
		return err
	}
	s, err := cmdCtx.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	assignment, err := s.GetAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}
	assignor, err := s.GetAssignor(ctx, assignment.AssignorID)
	if err != nil {
		return err
	}
	d, err := registry.Lookup(assignment.BankCode, cnab.Layout(assignment.Layout))
	if err != nil {
		return err
	}

	open, err := s.OpenTitles(ctx, assignment.ID)
	if err != nil {
		return err
	}
	if len(open) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No open titles for assignment %d.\n", assignment.ID)
		return nil
	}

	counter, err := s.NextFileCounter(ctx, assignor.ID)
	if err != nil {
		return err
	}
	enc, err := shipping.NewEncoder(d, *assignor, *assignment, counter, time.Now(), cmdCtx.logger)
	if err != nil {
		return err
	}

	titleIDs := make([]int64, 0, len(open))
	for _, title := range open {
		added, err := enc.AddEntry(movement, title)
		if err != nil {
			return fmt.Errorf("title %d: %w", title.OurNumber, err)
		}
		if added {
			titleIDs = append(titleIDs, title.ID)
		}
	}

	content, err := enc.Output()
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.Paths.OutputDir, enc.FileName())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write shipping file: %w", err)
	}

	batch := &store.Batch{
		AssignmentID: assignment.ID,
		FileName:     enc.FileName(),
		Counter:      counter,
		TotalValue:   enc.Value(),
	}
	if err := s.RecordBatch(ctx, batch, titleIDs); err != nil {
		return err
	}

	out := encodeOutput{
		File:       path,
		Counter:    counter,
		Titles:     enc.Titles(),
		Lots:       enc.Lots(),
		TotalValue: enc.Value(),
	}
	if jsonOutput {
		return writeJSON(cmd, out)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d titles, total %.2f\n", out.File, out.Titles, out.TotalValue)
	return nil
}
