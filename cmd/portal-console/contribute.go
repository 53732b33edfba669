package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"labelverse/contributor-portal/portal-console/internal/submission"
)

func contributeCommand(a *app) *cobra.Command {
	var (
		filePath    string
		text        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "contribute <dataset-id>",
		Short: "Submit a sample against a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Identity comes from the active wallet session.
			if _, err := a.session.Connect(ctx); err != nil {
				return fmt.Errorf("wallet connection required to contribute: %w", err)
			}

			flow := submission.NewFlow(a.gateway, a.session, a.newNotifier(), a.logger)
			if err := flow.Begin(ctx, args[0]); err != nil {
				if flow.Phase() == submission.PhaseNotFound {
					fmt.Println("Dataset Not Found")
					fmt.Println("The requested dataset could not be found.")
					fmt.Println("Run `portal-console datasets list` to browse available datasets.")
					return nil
				}
				return err
			}

			if text != "" {
				flow.SetText(text)
			}
			if filePath != "" {
				f, err := os.Open(filePath)
				if err != nil {
					return fmt.Errorf("open sample file: %w", err)
				}
				defer f.Close()
				flow.AttachFile(filepath.Base(filePath), f)
			}
			flow.SetDescription(description)

			contribution, err := flow.Submit(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Contribution %s submitted for verification.\n", contribution.ID)
			fmt.Println("Run `portal-console dashboard` to follow its status.")
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "sample file to upload (non-text datasets)")
	cmd.Flags().StringVar(&text, "text", "", "text content (text datasets)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	return cmd
}
