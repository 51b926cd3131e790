package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scrummycpro/the-quarries/internal/attachments"
)

func searchCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search logged prompt/response records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			outcome, err := a.records.Search(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(outcome)
			}

			if !outcome.Performed {
				fmt.Fprintln(out, "No keyword given.")
				return nil
			}
			if len(outcome.Records) == 0 {
				fmt.Fprintf(out, "No results found for %q.\n", outcome.Keyword)
				return nil
			}
			for _, r := range outcome.Records {
				fmt.Fprintf(out, "[%d] %s  %s\n", r.ID, r.Timestamp, r.Prompt)
			}
			fmt.Fprintf(out, "\n%d result(s)\n", len(outcome.Records))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

func exportCmd(g *globals) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a logged record as a text document",
		Long: `Export a logged record. The document is printed to stdout unless
--output names a directory to write it into.`,
		Args: cobra.ExactArgs(1),
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

			export, err := a.records.Export(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("export %d: %w", id, err)
			}

			if outDir == "" {
				fmt.Fprint(cmd.OutOrStdout(), export.Body)
				return nil
			}

			// The download name is the raw prompt; on disk it has to be a
			// single safe path element.
			name := attachments.SecureFilename(export.Filename)
			if name == "" {
				name = fmt.Sprintf("record-%d.txt", id)
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			path := filepath.Join(outDir, name)
			if err := os.WriteFile(path, []byte(export.Body), 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported record %d to %s\n", id, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory to write the export into")

	return cmd
}

func logCmd(g *globals) *cobra.Command {
	var prompt, response string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a prompt/response exchange",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.records.Log(cmd.Context(), prompt, response)
			if err != nil {
				return fmt.Errorf("failed to log record: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged record %d at %s\n", rec.ID, rec.Timestamp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "prompt text")
	cmd.Flags().StringVarP(&response, "response", "r", "", "response text")
	_ = cmd.MarkFlagRequired("prompt")
	_ = cmd.MarkFlagRequired("response")

	return cmd
}
