// Package main provides the CLI entrypoint for typer.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/krishnakanthb13/typer-tui/internal/assets"
	"github.com/krishnakanthb13/typer-tui/internal/config"
	"github.com/krishnakanthb13/typer-tui/internal/generator"
	"github.com/krishnakanthb13/typer-tui/internal/history"
	"github.com/krishnakanthb13/typer-tui/internal/logging"
	"github.com/krishnakanthb13/typer-tui/internal/model"
	"github.com/krishnakanthb13/typer-tui/internal/tui"
)

const (
	defaultBackend  = history.BackendJSON
	defaultLogLevel = "info"
)

var (
	practiceMode     string
	practiceDuration int
	practiceBackend  string
	practiceAssets   string
)

// settings is the merged result of flags, config file and defaults.
type settings struct {
	mode        string
	duration    int
	backend     string
	historyPath string
	assetsDir   string
	logLevel    string
	logPath     string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typer",
		Short:         "Terminal typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", model.DefaultModeID, "practice mode (see: typer modes)")
	rootCmd.Flags().IntVar(&practiceDuration, "duration", model.DefaultDuration, "test length in seconds ("+durationList()+")")
	rootCmd.Flags().StringVar(&practiceBackend, "backend", defaultBackend, "history backend (json|sqlite)")
	rootCmd.Flags().StringVar(&practiceAssets, "assets", "", "directory with pool overrides")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newModesCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s := resolveSettings(cmd, fileCfg, practiceMode, practiceDuration, practiceBackend, practiceAssets)
	cfg, err := validateSettings(s)
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("typer needs an interactive terminal")
	}

	logger, logFile, err := logging.Open(s.logPath, s.logLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closeQuietly("log", logFile)

	backend, err := history.Open(s.backend, s.historyPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer closeQuietly("history", backend)

	logger.Info("starting", "mode", cfg.Mode.ID, "duration", cfg.Duration, "backend", s.backend, "history", s.historyPath)
	app := tui.NewApp(tui.Deps{
		Config:    cfg,
		Library:   assets.NewLibrary(cfg.AssetsDir, logger),
		Generator: generator.New(),
		Results:   backend,
		Logger:    logger,
	})
	defer app.Close()
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveSettings layers config file values under explicitly set flags.
func resolveSettings(cmd *cobra.Command, fileCfg config.FileConfig, mode string, duration int, backend, assetsDir string) settings {
	applyStringConfig(cmd, "mode", &mode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "duration", &duration, fileCfg.Practice.Duration)
	applyStringConfig(cmd, "backend", &backend, fileCfg.History.Backend)
	applyStringConfig(cmd, "assets", &assetsDir, fileCfg.Assets.Dir)

	s := settings{
		mode:      mode,
		duration:  duration,
		backend:   strings.ToLower(strings.TrimSpace(backend)),
		assetsDir: assetsDir,
		logLevel:  defaultLogLevel,
		logPath:   config.DefaultLogPath(),
	}
	if s.backend == "" {
		s.backend = defaultBackend
	}
	if s.assetsDir == "" {
		s.assetsDir = config.DefaultAssetsDir()
	}
	s.historyPath = config.DefaultHistoryPath(s.backend)
	if p := fileCfg.History.Path; p != nil && *p != "" {
		s.historyPath = *p
	}
	if lvl := fileCfg.Log.Level; lvl != nil && *lvl != "" {
		s.logLevel = *lvl
	}
	if p := fileCfg.Log.Path; p != nil && *p != "" {
		s.logPath = *p
	}
	return s
}

func validateSettings(s settings) (model.Config, error) {
	mode, ok := model.ModeByID(s.mode)
	if !ok {
		return model.Config{}, unknownModeError(s.mode)
	}
	if !model.ValidDuration(s.duration) {
		return model.Config{}, fmt.Errorf("--duration must be one of %s", durationList())
	}
	if !history.ValidBackend(s.backend) {
		return model.Config{}, fmt.Errorf("--backend must be %s or %s", history.BackendJSON, history.BackendSQLite)
	}
	if _, err := logging.ParseLevel(s.logLevel); err != nil {
		return model.Config{}, fmt.Errorf("invalid [log] level: %w", err)
	}
	return model.Config{Mode: mode, Duration: s.duration, AssetsDir: s.assetsDir}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func unknownModeError(input string) error {
	if suggestion, ok := model.SuggestMode(input); ok {
		return fmt.Errorf("--mode must be one of %s (did you mean %q?)", modeList(), suggestion)
	}
	return fmt.Errorf("--mode must be one of %s", modeList())
}

func modeList() string {
	ids := make([]string, 0, len(model.Modes))
	for _, m := range model.Modes {
		ids = append(ids, m.ID)
	}
	return strings.Join(ids, ", ")
}

func durationList() string {
	parts := make([]string, 0, len(model.Durations))
	for _, d := range model.Durations {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ", ")
}

func closeQuietly(what string, c io.Closer) {
	if err := c.Close(); err != nil {
		logErrf("failed to close %s: %v\n", what, err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
