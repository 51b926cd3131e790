package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// globals holds the persistent flags shared by every subcommand
type globals struct {
	configPath string
	verbose    bool
	version    string
}

// NewRootCmd builds the ashlar command tree
func NewRootCmd(version string) *cobra.Command {
	g := &globals{version: version}

	rootCmd := &cobra.Command{
		Use:   "ashlar",
		Short: "Ashlar - prompt log, notes and daily study texts",
		Long: `Ashlar keeps a searchable log of prompt/response exchanges, a set of notes
with file attachments, and shows daily readings from Sefaria.

Run "ashlar serve" to start the web interface.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default ./ashlar.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd(g))
	rootCmd.AddCommand(migrateCmd(g))
	rootCmd.AddCommand(searchCmd(g))
	rootCmd.AddCommand(exportCmd(g))
	rootCmd.AddCommand(logCmd(g))
	rootCmd.AddCommand(notesCmd(g))
	rootCmd.AddCommand(registerCmd(g))
	rootCmd.AddCommand(mcpCmd(g))
	rootCmd.AddCommand(sefariaCmd(g))
	rootCmd.AddCommand(configCmd(g))

	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
