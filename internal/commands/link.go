package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCommand(configPath *string, verbose *bool) *cobra.Command {
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Connect a bank account",
	}
	linkCmd.AddCommand(newLinkTokenCommand(configPath, verbose))
	linkCmd.AddCommand(newLinkCompleteCommand(configPath, verbose))
	return linkCmd
}

func newLinkTokenCommand(configPath *string, verbose *bool) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Create a link token to start the bank link flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*configPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			token, err := e.provider().CreateLinkToken(cmd.Context(), user)
			if err != nil {
				return fmt.Errorf("creating link token: %w", err)
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identifier (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newLinkCompleteCommand(configPath *string, verbose *bool) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "complete <public-token>",
		Short: "Exchange a public token and run the first sync",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*configPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.syncService().Link(cmd.Context(), user, args[0]); err != nil {
				return err
			}
			fmt.Printf("Linked bank account for %s\n", user)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identifier (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
