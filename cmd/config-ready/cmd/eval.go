package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/theogravity/config-ready/internal/config"
	"github.com/theogravity/config-ready/internal/settings"
	"github.com/theogravity/config-ready/internal/store"
	"github.com/theogravity/config-ready/internal/types"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate settings against a request context",
	Long: `Evaluate resolves effective setting values for a request context.
The document comes from --file or, with --db-url, from the latest stored
snapshot under --document. Context attributes are given as repeated
--attr key=value flags; values parse as booleans or numbers when they
look like one, strings otherwise.`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().String("file", "", "settings document path")
	evalCmd.Flags().String("document", "default", "stored document name (with --db-url)")
	evalCmd.Flags().String("setting", "", "evaluate a single setting instead of the whole document")
	evalCmd.Flags().StringArray("attr", nil, "context attribute key=value (repeatable)")
	evalCmd.Flags().String("seed", "", "percentageSeed value (generated when omitted)")
	evalCmd.Flags().StringArray("override", nil, "forced setting key=value (repeatable)")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}

	entries, err := loadEntries(cmd.Context(), cfg, cmd)
	if err != nil {
		return err
	}

	attrs, _ := cmd.Flags().GetStringArray("attr")
	ctx, err := parseContext(attrs)
	if err != nil {
		return err
	}

	if _, ok := ctx[types.PercentageSeedKey]; !ok {
		seed, _ := cmd.Flags().GetString("seed")
		if seed == "" {
			// Ad-hoc runs still need stable bucketing within the run
			seed = uuid.NewString()
			slog.Debug("generated percentage seed", "seed", seed)
		}
		ctx[types.PercentageSeedKey] = seed
	}

	overrideFlags, _ := cmd.Flags().GetStringArray("override")
	overrides, err := parseOverrides(overrideFlags)
	if err != nil {
		return err
	}

	env := settings.Env{Context: ctx, Overrides: overrides}
	answers, err := settings.ResolveAll(entries, env)
	if err != nil {
		return err
	}

	if name, _ := cmd.Flags().GetString("setting"); name != "" {
		answer, ok := answers[name]
		if !ok {
			return fmt.Errorf("setting %q is not defined in the document", name)
		}
		return printJSON(answer)
	}

	ordered := make([]types.Answer, 0, len(answers))
	for _, a := range answers {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Key < ordered[j].Key })
	return printJSON(ordered)
}

// loadCLIConfig loads app config and overlays changed persistent flags.
func loadCLIConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("file") {
		cfg.SettingsFile, _ = cmd.Flags().GetString("file")
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	return cfg, nil
}

// loadEntries picks the document origin: file when configured, otherwise
// the latest stored snapshot.
func loadEntries(ctx context.Context, cfg *config.Config, cmd *cobra.Command) ([]types.Entry, error) {
	if cfg.SettingsFile != "" {
		return config.LoadDocument(cfg.SettingsFile)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("either --file or --db-url is required")
	}

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	name, _ := cmd.Flags().GetString("document")
	return st.LoadEntries(ctx, name)
}

// parseContext builds a typed context from key=value flags.
func parseContext(attrs []string) (types.Context, error) {
	ctx := make(types.Context, len(attrs)+1)
	for _, attr := range attrs {
		key, raw, ok := strings.Cut(attr, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --attr %q (expected key=value)", attr)
		}
		ctx[key] = parseScalar(raw)
	}
	return ctx, nil
}

// parseOverrides builds the forced-value map from key=value flags.
func parseOverrides(flags []string) (types.Overrides, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	overrides := make(types.Overrides, len(flags))
	for _, f := range flags {
		key, raw, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --override %q (expected key=value)", f)
		}
		overrides[key] = parseScalar(raw)
	}
	return overrides, nil
}

// parseScalar types a flag value the way JSON would: booleans and numbers
// when they parse as one, string otherwise.
func parseScalar(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

// printJSON writes the result to stdout, keeping logs on stderr.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
