package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelverse/contributor-portal/portal-console/internal/view"
	"labelverse/contributor-portal/portal-console/internal/wallet"
)

func dashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your wallet and contribution activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			account, err := a.session.Connect(ctx)
			if err != nil {
				return fmt.Errorf("wallet connection required for the dashboard: %w", err)
			}
			fmt.Printf("Wallet:  %s (chain %d)\n", account.Address, account.ChainID)

			if balance, err := a.session.Balance(ctx); err == nil {
				fmt.Printf("Balance: %s ETH\n", wallet.FormatEther(balance))
			} else {
				fmt.Println("Balance: unavailable")
			}

			contributions, err := a.gateway.ListContributions(ctx)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println("Your contributions:")
			found := false
			for i := range contributions {
				c := &contributions[i]
				if c.UserID != account.Address {
					continue
				}
				found = true
				badge := view.VerificationBadge(c.Status)
				line := fmt.Sprintf("  %s  dataset %s  %s%s%s", c.ID, c.DatasetID,
					badge.Color, badge.Label, view.Reset)
				if c.VerificationScore > 0 {
					line += fmt.Sprintf("  score %.1f/10", c.VerificationScore)
				}
				fmt.Println(line)
			}
			if !found {
				fmt.Println("  none yet, run `portal-console datasets list` to get started")
			}
			return nil
		},
	}
}
