package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scrummycpro/the-quarries/internal/web"
)

func serveCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Long: `Start the web interface.

Examples:
  ashlar serve
  ashlar serve --addr :8080
  ASHLAR_AUTH_REQUIRE_SESSION=true ashlar serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := g.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}

			cfg := a.cfg
			server := web.NewServer(web.Deps{
				Notes:    a.notes,
				Records:  a.records,
				Accounts: a.accounts,
				Feed:     newSefariaClient(cfg),
				Logger:   a.logger,
				Options: web.Options{
					Mode:               cfg.Server.Mode,
					StaticDir:          cfg.Uploads.StaticDir,
					RequireSession:     cfg.Auth.RequireSession,
					SessionTTL:         cfg.Auth.SessionTTL,
					Calendar:           cfg.Sefaria.Calendar,
					Timezone:           cfg.Sefaria.Timezone,
					MaxMultipartMemory: cfg.Uploads.MaxMemoryMB << 20,
				},
			})

			a.logger.Info("starting web server", "addr", cfg.Server.Addr, "version", g.version)
			if err := server.Run(ctx, cfg.Server.Addr); err != nil {
				return err
			}
			a.logger.Info("web server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5005", "listen address (overrides server.addr)")

	return cmd
}

func migrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Database ready: %s\n", a.cfg.Database.Path)
			return nil
		},
	}
}
