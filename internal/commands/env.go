package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/finchat-dev/finchat/internal/audit"
	"github.com/finchat-dev/finchat/internal/config"
	"github.com/finchat-dev/finchat/internal/notify"
	"github.com/finchat-dev/finchat/internal/provider"
	"github.com/finchat-dev/finchat/internal/snapshot"
	"github.com/finchat-dev/finchat/internal/store"
	"github.com/finchat-dev/finchat/internal/sync"
	"github.com/finchat-dev/finchat/internal/tools"
)

// env bundles the collaborators every command needs, built once from the
// config file.
type env struct {
	cfg     *config.Config
	store   store.Store
	log     *slog.Logger
	closers []io.Closer
}

// loadEnv reads the config, opens the store, and sets up logging.
func loadEnv(configPath string, verbose bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	storePath := cfg.DataDir
	if cfg.Store.Backend == store.BackendSQLite {
		storePath = cfg.Store.SQLitePath
		if storePath == "" {
			storePath = filepath.Join(cfg.DataDir, "finchat.db")
		}
	}
	s, err := store.Open(cfg.Store.Backend, storePath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	e := &env{cfg: cfg, store: s, log: log}
	if c, ok := s.(io.Closer); ok {
		e.closers = append(e.closers, c)
	}
	return e, nil
}

// close releases everything loadEnv opened.
func (e *env) close() {
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			e.log.Warn("close failed", "error", err)
		}
	}
}

func (e *env) runtime() *tools.Runtime {
	accessor := snapshot.NewAccessor(e.store, e.log)
	return tools.NewRuntime(accessor, e.log)
}

func (e *env) provider() *provider.HTTPClient {
	p := e.cfg.Provider
	return provider.NewHTTPClient(p.BaseURL, p.ClientID, p.Secret)
}

// notifier builds the AMQP notifier when configured, else falls back to the
// log-only notifier.
func (e *env) notifier() notify.Notifier {
	if e.cfg.Notify.AMQPURL == "" {
		return notify.LogNotifier{Log: e.log}
	}
	n, err := notify.NewAMQPNotifier(e.cfg.Notify.AMQPURL, e.cfg.Notify.Exchange, e.cfg.Notify.Queue)
	if err != nil {
		e.log.Warn("amqp unavailable, notifications will be logged only", "error", err)
		return notify.LogNotifier{Log: e.log}
	}
	e.closers = append(e.closers, n)
	return n
}

func (e *env) syncService() *sync.Service {
	return sync.NewService(e.provider(), e.store, e.notifier(), e.log)
}

// flushAudit appends the runtime's tool call trail to the data dir.
func (e *env) flushAudit(rt *tools.Runtime) {
	entries := rt.AuditLog()
	if len(entries) == 0 {
		return
	}
	if err := audit.Append(e.cfg.DataDir, entries); err != nil {
		e.log.Warn("writing audit trail failed", "error", err)
	}
}
