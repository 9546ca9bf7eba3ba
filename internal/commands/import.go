package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/importer"
	"github.com/finchat-dev/finchat/internal/model"
	"github.com/finchat-dev/finchat/internal/store"
)

func newImportCommand(configPath *string, verbose *bool) *cobra.Command {
	var user string
	var format string

	registry := importer.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a bank CSV export into the transaction cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (want one of: %s)",
					format, strings.Join(registry.Formats(), ", "))
			}

			e, err := loadEnv(*configPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			txns, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			added, err := mergeIntoCache(cmd.Context(), e.store, user, txns)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d transactions (%d new) for %s\n", len(txns), added, user)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identifier (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&format, "format", "generic", "CSV format: "+strings.Join(registry.Formats(), ", "))

	return cmd
}

// mergeIntoCache appends transactions the cache has not seen, keyed by ID,
// and reports how many were new.
func mergeIntoCache(ctx context.Context, s store.Store, user string, txns []model.Transaction) (int, error) {
	cache, err := s.GetTransactionCache(ctx, user)
	if errors.Is(err, store.ErrNotFound) {
		cache = model.TransactionCache{UserID: user}
	} else if err != nil {
		return 0, fmt.Errorf("loading cache for %s: %w", user, err)
	}

	seen := make(map[string]bool, len(cache.Transactions))
	for _, t := range cache.Transactions {
		seen[t.ID] = true
	}

	added := 0
	for _, t := range txns {
		if seen[t.ID] {
			continue
		}
		cache.Transactions = append(cache.Transactions, t)
		seen[t.ID] = true
		added++
	}
	cache.CachedAt = time.Now()

	if err := s.PutTransactionCache(ctx, cache); err != nil {
		return 0, fmt.Errorf("storing cache for %s: %w", user, err)
	}
	return added, nil
}
