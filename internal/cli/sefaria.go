package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scrummycpro/the-quarries/internal/sefaria"
)

func sefariaCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sefaria",
		Short: "Query the Sefaria texts API",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "random",
		Short: "Show a random text by topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.loadConfig()
			if err != nil {
				return err
			}
			client := newSefariaClient(cfg)

			r, err := client.RandomByTopic(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), sefaria.FormatRandomText(client.BaseURL(), r, err))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "calendar",
		Short: "Show today's learning schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.loadConfig()
			if err != nil {
				return err
			}

			cal, err := newSefariaClient(cfg).Calendars(cmd.Context(), cfg.Sefaria.Calendar, cfg.Sefaria.Timezone)
			if err != nil {
				return fmt.Errorf("failed to fetch calendar: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, item := range cal.CalendarItems {
				fmt.Fprintf(out, "%s: %s\n", item.Title.En, item.DisplayValue.En)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "links [ref]",
		Short: "List cross references of a text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.loadConfig()
			if err != nil {
				return err
			}

			links, err := newSefariaClient(cfg).Links(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch links: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, l := range links {
				fmt.Fprintf(out, "%s\t%s\t%s\n", l.Category, l.Type, l.Ref)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "topic [slug]",
		Short: "Describe a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.loadConfig()
			if err != nil {
				return err
			}

			topic, err := newSefariaClient(cfg).Topic(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch topic: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), topic)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "next-read [parasha]",
		Short: "Show when a parasha is next read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.loadConfig()
			if err != nil {
				return err
			}

			next, err := newSefariaClient(cfg).NextRead(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch next read: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), next)
		},
	})

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
