// Package notify delivers sync notifications. The port is tiny on purpose:
// the core never cares how a "new transactions" signal leaves the process.
package notify

import (
	"context"
	"log/slog"
)

// Notifier receives a signal after a successful sync that produced
// previously unseen transactions.
type Notifier interface {
	TransactionsSynced(ctx context.Context, userID string, newCount int) error
}

// LogNotifier writes notifications to the structured log. It is the default
// when no broker is configured.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) TransactionsSynced(ctx context.Context, userID string, newCount int) error {
	log := n.Log
	if log == nil {
		log = slog.Default()
	}
	log.InfoContext(ctx, "sync produced new transactions", "user_id", userID, "new_count", newCount)
	return nil
}
