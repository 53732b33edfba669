package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelverse/contributor-portal/portal-console/internal/wallet"
)

func walletCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Inspect the wallet connection",
	}

	connectCmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect the configured wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := a.session.Connect(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Connected: %s (chain %d)\n", account.Address, account.ChainID)
			return nil
		},
	}

	disconnectCmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the active wallet session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Disconnect()
			fmt.Println("Wallet disconnected.")
			return nil
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the connected account's balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session.Connect(cmd.Context()); err != nil {
				return err
			}
			balance, err := a.session.Balance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s ETH\n", wallet.FormatEther(balance))
			return nil
		},
	}

	cmd.AddCommand(connectCmd, disconnectCmd, balanceCmd)
	return cmd
}
