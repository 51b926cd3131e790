package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scrummycpro/the-quarries/internal/mcp"
)

func mcpCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve records and notes as MCP tools on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := g.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			a.logger.Info("mcp server starting", "version", g.version)
			server := mcp.NewServer(a.records, a.notes, a.logger, g.version)
			if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
