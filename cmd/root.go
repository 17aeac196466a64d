// Package cmd implements the dirnum command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/theirongolddev/dirnum/internal/cli"
	"github.com/theirongolddev/dirnum/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var (
	flagDatabase    string
	flagTable       string
	flagRoot        string
	flagConfig      string
	flagCreateTable bool
	flagPrompt      string
	flagColor       string
	flagLogLevel    string
	flagShowConfig  bool
	flagSaveConfig  bool
)

var rootCmd = &cobra.Command{
	Use:   "dirnum",
	Short: "Create sequentially numbered directories",
	Long: `Create sequentially numbered directories under a root directory.

The last number used for each root is kept in a database table, so numbering
continues across runs. Enter one name per line; "exit" ends the session and
saves the counter.

Environment:
  ` + config.EnvDatabaseURL + `   database URL (sqlite:PATH, duckdb:PATH)
  ` + config.EnvTableName + `     table name
  ` + config.EnvRoot + `    root directory (default ".")`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err))
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagDatabase, "database", "d", "", "Database URL (env "+config.EnvDatabaseURL+")")
	f.StringVarP(&flagTable, "table", "t", "", "Counter table name (env "+config.EnvTableName+")")
	f.StringVarP(&flagRoot, "root", "r", "", "Root directory (env "+config.EnvRoot+`, default ".")`)
	f.StringVarP(&flagConfig, "config", "c", "", "Config file, .toml or .yaml (env "+config.EnvConfigPath+")")
	f.BoolVar(&flagCreateTable, "create-table", false, "Create the counter table if it does not exist")
	f.StringVar(&flagPrompt, "prompt", "", "Prompt style: line or form")
	f.StringVar(&flagColor, "color", "", "Color output: auto, always or never")
	f.StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	f.BoolVar(&flagShowConfig, "show-config", false, "Print the effective configuration and exit")
	f.BoolVar(&flagSaveConfig, "save-config", false, "Write the effective configuration to the config file and exit")
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	applyColor(cfg.Appearance.Color)

	if flagShowConfig {
		printConfig(cmd, cfg)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if flagSaveConfig {
		path := configPath()
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Saved to %s\n", path)
		return nil
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	s := &Session{
		Config:      cfg,
		CreateTable: flagCreateTable,
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Err:         cmd.ErrOrStderr(),
		Log:         logger,
	}
	return s.Run(cmd.Context())
}

// loadConfig layers flags over environment over config file over defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadFile(configPath())
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("database") {
		cfg.Database.URL = flagDatabase
	}
	if flags.Changed("table") {
		cfg.Database.Table = flagTable
	}
	if flags.Changed("root") {
		cfg.General.Root = flagRoot
	}
	if flags.Changed("prompt") {
		cfg.Appearance.Prompt = flagPrompt
	}
	if flags.Changed("color") {
		cfg.Appearance.Color = flagColor
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

func applyColor(mode string) {
	switch mode {
	case config.ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	default:
		if os.Getenv("NO_COLOR") != "" {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

func printConfig(cmd *cobra.Command, cfg config.Config) {
	source := "using defaults (no config file)"
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		source = "loaded"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle("DIRNUM CONFIG"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Config file: %s (%s)\n\n", path, source)
	fmt.Fprint(out, cli.RenderKeyValues([][2]string{
		{"Database", orUnset(cfg.Database.URL)},
		{"Table", orUnset(cfg.Database.Table)},
		{"Root", cfg.General.Root},
		{"Prompt", cfg.Appearance.Prompt},
		{"Color", cfg.Appearance.Color},
		{"Log level", cfg.Log.Level},
	}))
}

func orUnset(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
