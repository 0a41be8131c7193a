package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/theogravity/config-ready/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a settings document",
	Long: `Check parses and compile-validates a settings document without
evaluating anything, reporting the first malformed entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	entries, err := config.LoadDocument(args[0])
	if err != nil {
		return err
	}

	slog.Info("document valid", "file", args[0], "settings", len(entries))
	fmt.Printf("ok: %d settings\n", len(entries))
	return nil
}
