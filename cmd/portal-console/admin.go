package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelverse/contributor-portal/portal-console/internal/models"
	"labelverse/contributor-portal/portal-console/internal/review"
	"labelverse/contributor-portal/portal-console/internal/view"
)

func adminCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage datasets and resolve contribution verification",
	}
	cmd.AddCommand(adminDatasetsCommand(a), adminContributionsCommand(a))
	return cmd
}

func adminDatasetsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Create, edit and toggle datasets",
	}

	var draft models.DatasetDraft
	var dataType string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.DataType = models.DataType(dataType)
			flow := review.NewFlow(a.gateway, a.newNotifier(), a.logger)
			created, err := flow.SubmitDatasetForm(cmd.Context(), review.CreateMode{Draft: draft})
			if err != nil {
				return err
			}
			printDataset(created)
			return nil
		},
	}
	addDraftFlags(createCmd, &draft, &dataType)

	var editDataType string
	editDraft := models.DatasetDraft{}
	editCmd := &cobra.Command{
		Use:   "edit <dataset-id>",
		Short: "Edit an existing dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flow := review.NewFlow(a.gateway, a.newNotifier(), a.logger)

			target, err := a.gateway.GetDataset(ctx, args[0])
			if err != nil {
				return err
			}
			applyDraftOverrides(target, cmd, &editDraft, editDataType)

			updated, err := flow.SubmitDatasetForm(ctx, review.EditMode{Target: *target})
			if err != nil {
				return err
			}
			printDataset(updated)
			return nil
		},
	}
	addDraftFlags(editCmd, &editDraft, &editDataType)

	toggleCmd := &cobra.Command{
		Use:   "toggle <dataset-id>",
		Short: "Toggle a dataset between ACTIVE and CLOSED",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flow := review.NewFlow(a.gateway, a.newNotifier(), a.logger)

			target, err := a.gateway.GetDataset(ctx, args[0])
			if err != nil {
				return err
			}
			if _, offered := view.ToggleActionLabel(target.Status); !offered {
				return fmt.Errorf("dataset %s is %s: %w", target.ID, target.Status, review.ErrToggleNotOffered)
			}

			updated, err := flow.ToggleDatasetStatus(ctx, *target)
			if err != nil {
				return err
			}
			printDataset(updated)
			return nil
		},
	}

	cmd.AddCommand(createCmd, editCmd, toggleCmd)
	return cmd
}

func adminContributionsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contributions",
		Short: "Review submitted contributions",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all contributions",
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := review.NewFlow(a.gateway, a.newNotifier(), a.logger)
			contributions, err := flow.LoadContributions(cmd.Context())
			if err != nil {
				return err
			}
			for i := range contributions {
				printContributionLine(&contributions[i])
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <contribution-id>",
		Short: "Show one contribution in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contribution, err := a.gateway.GetContribution(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printContribution(contribution)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd,
		resolveCommand(a, "verify", models.VerificationVerified),
		resolveCommand(a, "reject", models.VerificationRejected))
	return cmd
}

func resolveCommand(a *app, use string, status models.VerificationStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <contribution-id>",
		Short: fmt.Sprintf("Mark a contribution %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flow := review.NewFlow(a.gateway, a.newNotifier(), a.logger)

			contribution, err := a.gateway.GetContribution(ctx, args[0])
			if err != nil {
				return err
			}
			if contribution.Status == status {
				fmt.Printf("Contribution %s is already %s.\n", contribution.ID, status)
				return nil
			}

			resolved, err := flow.Resolve(ctx, *contribution, status)
			if err != nil {
				return err
			}
			printContribution(resolved)
			return nil
		},
	}
}

func addDraftFlags(cmd *cobra.Command, draft *models.DatasetDraft, dataType *string) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "dataset name")
	cmd.Flags().StringVar(&draft.Description, "description", "", "dataset description")
	cmd.Flags().StringVar(dataType, "data-type", string(models.DataTypeText), "TEXT, IMAGE, AUDIO or VIDEO")
	cmd.Flags().StringVar(&draft.FormatRequirements, "format-requirements", "", "free-text format requirements")
	cmd.Flags().IntVar(&draft.SampleCountGoal, "sample-goal", 1000, "sample count goal")
	cmd.Flags().Float64Var(&draft.BaseRewardPerSample, "reward", 0.5, "base reward per sample")
}

// applyDraftOverrides copies only the flags the operator actually set onto
// the fetched record, so an edit does not clobber untouched fields.
func applyDraftOverrides(target *models.Dataset, cmd *cobra.Command, draft *models.DatasetDraft, dataType string) {
	if cmd.Flags().Changed("name") {
		target.Name = draft.Name
	}
	if cmd.Flags().Changed("description") {
		target.Description = draft.Description
	}
	if cmd.Flags().Changed("data-type") {
		target.DataType = models.DataType(dataType)
	}
	if cmd.Flags().Changed("format-requirements") {
		target.FormatRequirements = draft.FormatRequirements
	}
	if cmd.Flags().Changed("sample-goal") {
		target.SampleCountGoal = draft.SampleCountGoal
	}
	if cmd.Flags().Changed("reward") {
		target.BaseRewardPerSample = draft.BaseRewardPerSample
	}
}

func printContributionLine(c *models.Contribution) {
	badge := view.VerificationBadge(c.Status)
	line := fmt.Sprintf("%s  user %s  dataset %s  %s%s%s", c.ID, c.UserID, c.DatasetID,
		badge.Color, badge.Label, view.Reset)
	if c.VerificationScore > 0 {
		line += fmt.Sprintf("  score %.1f/10", c.VerificationScore)
	}
	fmt.Println(line)
}

func printContribution(c *models.Contribution) {
	badge := view.VerificationBadge(c.Status)
	fmt.Printf("Contribution %s\n", c.ID)
	fmt.Printf("  User:     %s\n", c.UserID)
	fmt.Printf("  Dataset:  %s\n", c.DatasetID)
	fmt.Printf("  Status:   %s%s%s\n", badge.Color, badge.Label, view.Reset)
	fmt.Printf("  Uploaded: %s\n", c.UploadedAt.Format("2006-01-02 15:04:05"))
	if c.URL != "" {
		fmt.Printf("  File:     %s\n", c.URL)
	}
	if c.VerificationScore > 0 {
		fmt.Printf("  Score:    %.1f/10\n", c.VerificationScore)
	}
	if c.Description != "" {
		fmt.Printf("  Notes:    %s\n", c.Description)
	}
}
