package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func notesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Inspect notes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			notes, err := a.notes.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes.")
				return nil
			}
			for _, n := range notes {
				fmt.Fprintf(out, "[%d] %s (%d attachment(s))\n", n.ID, n.Title, len(n.Attachments))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [id]",
		Short: "Show a note and its attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			note, err := a.notes.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("note %d: %w", id, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n\n%s\n", note.Title, strings.Repeat("=", len(note.Title)), note.Content)
			if len(note.Attachments) > 0 {
				fmt.Fprintln(out, "\nAttachments:")
				for _, p := range note.Attachments {
					fmt.Fprintf(out, "  %s\n", p)
				}
			}
			return nil
		},
	})

	return cmd
}

func registerCmd(g *globals) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register [username]",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.accounts.Register(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("register %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
