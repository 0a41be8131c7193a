package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/theogravity/config-ready/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a settings document snapshot",
	Long: `Import validates a settings document and stores it as a new
snapshot under --document. Pending schema migrations run first.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("document", "default", "document name to store under")
}

func runImport(cmd *cobra.Command, args []string) error {
	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}

	body, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read settings document: %w", err)
	}

	st, err := store.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.MigrateUp(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	name, _ := cmd.Flags().GetString("document")
	id, err := st.SaveDocument(cmd.Context(), name, body)
	if err != nil {
		return err
	}

	slog.Info("document imported", "document", name, "snapshot_id", string(id))
	fmt.Println(id)
	return nil
}
