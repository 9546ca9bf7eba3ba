package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/sync"
)

func newSyncCommand(configPath *string, verbose *bool) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh cached accounts and transactions from the bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*configPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			err = e.syncService().Refresh(cmd.Context(), user)
			if errors.Is(err, sync.ErrNotLinked) {
				return fmt.Errorf("user %s has no linked bank account; run 'finchat link' first", user)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Synced %s\n", user)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identifier (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
