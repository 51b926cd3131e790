package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/scrummycpro/the-quarries/internal/attachments"
	"github.com/scrummycpro/the-quarries/internal/config"
	"github.com/scrummycpro/the-quarries/internal/core"
	"github.com/scrummycpro/the-quarries/internal/sefaria"
	"github.com/scrummycpro/the-quarries/internal/storage"
)

// app is the wired set of services a command works with
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *storage.Store
	records  *core.RecordService
	notes    *core.NoteService
	accounts *core.AccountService
}

// loadConfig reads the configuration and builds the logger. Logs always go
// to stderr so stdout stays clean for command output and the MCP protocol.
func (g *globals) loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Log.NewLogger(os.Stderr), nil
}

// openApp loads config, opens the database and builds the services.
func (g *globals) openApp(ctx context.Context) (*app, error) {
	cfg, logger, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, storage.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("database ready", "driver", cfg.Database.Driver, "path", cfg.Database.Path)

	files := attachments.NewManager(cfg.Uploads.StaticDir, logger)
	notes := core.NewNoteService(store, files,
		core.WithNoteLogger(logger),
		core.WithRemoveOnDelete(cfg.Uploads.RemoveOnDelete),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		records:  core.NewRecordService(store, logger),
		notes:    notes,
		accounts: core.NewAccountService(store, logger),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func newSefariaClient(cfg *config.Config) *sefaria.Client {
	return sefaria.NewClient(
		sefaria.WithBaseURL(cfg.Sefaria.BaseURL),
		sefaria.WithTimeout(cfg.Sefaria.Timeout),
	)
}
