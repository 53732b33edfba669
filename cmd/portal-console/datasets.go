package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelverse/contributor-portal/portal-console/internal/models"
	"labelverse/contributor-portal/portal-console/internal/view"
)

func datasetsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Browse datasets open for contribution",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			datasets, err := a.gateway.ListDatasets(cmd.Context())
			if err != nil {
				return err
			}
			for i := range datasets {
				printDatasetLine(&datasets[i])
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <dataset-id>",
		Short: "Show one dataset in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := a.gateway.GetDataset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printDataset(dataset)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func printDatasetLine(d *models.Dataset) {
	badge := view.DatasetBadge(d.Status)
	display := view.ForDataType(d.DataType)
	fmt.Printf("%s  %s %-30s %s%s%s  %d/%d samples  %.2f tokens/sample\n",
		d.ID, display.Icon, d.Name,
		badge.Color, badge.Label, view.Reset,
		d.CurrentSampleCount, d.SampleCountGoal, d.BaseRewardPerSample)
}

func printDataset(d *models.Dataset) {
	badge := view.DatasetBadge(d.Status)
	display := view.ForDataType(d.DataType)
	fmt.Printf("%s %s\n", display.Icon, d.Name)
	fmt.Printf("  ID:           %s\n", d.ID)
	fmt.Printf("  Status:       %s%s%s\n", badge.Color, badge.Label, view.Reset)
	fmt.Printf("  Data type:    %s\n", display.Label)
	fmt.Printf("  Description:  %s\n", d.Description)
	fmt.Printf("  Requirements: %s\n", d.FormatRequirements)
	fmt.Printf("  Progress:     %d/%d samples\n", d.CurrentSampleCount, d.SampleCountGoal)
	fmt.Printf("  Reward:       %.2f tokens/sample\n", d.BaseRewardPerSample)
	fmt.Printf("  Created:      %s\n", d.CreatedAt.Format("2006-01-02"))
	if display.Accept != "" {
		fmt.Printf("  Accepted:     %s\n", display.Accept)
	}
}
