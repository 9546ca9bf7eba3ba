package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/config"
)

func newInitCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new finchat data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, backend)
		},
	}

	cmd.Flags().StringVar(&backend, "store", "file", "store backend (memory, file, or sqlite)")

	return cmd
}

func runInit(dir, backend string) error {
	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(filepath.Join(dataDir, "users"), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	cfg := config.Default(dataDir)
	cfg.Store.Backend = backend
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(filepath.Join(dir, "finchat.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := "data/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Initialized finchat at %s (store: %s)\n", dir, backend)
	fmt.Println("Set FINCHAT_PROVIDER_CLIENT_ID, FINCHAT_PROVIDER_SECRET, and GEMINI_API_KEY before linking.")
	return nil
}
