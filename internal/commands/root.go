package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "finchat",
		Short:   "Chat with your bank transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "finchat.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLinkCommand(&configPath, &verbose))
	rootCmd.AddCommand(newSyncCommand(&configPath, &verbose))
	rootCmd.AddCommand(newChatCommand(&configPath, &verbose))
	rootCmd.AddCommand(newAskCommand(&configPath, &verbose))
	rootCmd.AddCommand(newImportCommand(&configPath, &verbose))

	return rootCmd
}
