package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/krishnakanthb13/typer-tui/internal/assets"
	"github.com/krishnakanthb13/typer-tui/internal/config"
	"github.com/krishnakanthb13/typer-tui/internal/history"
	"github.com/krishnakanthb13/typer-tui/internal/logging"
	"github.com/krishnakanthb13/typer-tui/internal/model"
	"github.com/krishnakanthb13/typer-tui/internal/stats"
	"github.com/krishnakanthb13/typer-tui/internal/statsui"
)

const defaultTableWidth = 80

var (
	historyMode    string
	historySince   string
	historyLast    int
	historyWindow  int
	historyBackend string
	historyTUI     bool
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typer configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q           # One of: %s
# duration = %d           # Seconds, one of: %s

[history]
# backend = %q          # json or sqlite
# path = ""               # Default: %s

[assets]
# dir = ""                # Pool overrides, default: %s

[log]
# level = %q            # debug, info, warn or error
# path = ""               # Default: %s
`,
		model.DefaultModeID,
		modeList(),
		model.DefaultDuration,
		durationList(),
		defaultBackend,
		config.DefaultHistoryPath(defaultBackend),
		config.DefaultAssetsDir(),
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List practice modes and their text pools",
		Args:  cobra.NoArgs,
		RunE:  runModesCmd,
	}
}

func runModesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dir := config.DefaultAssetsDir()
	if fileCfg.Assets.Dir != nil && *fileCfg.Assets.Dir != "" {
		dir = *fileCfg.Assets.Dir
	}
	lib := assets.NewLibrary(dir, logging.Discard())

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), modesTable(lib)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func modesTable(lib *assets.Library) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Kind", "Entries", "Source")
	for _, m := range model.Modes {
		kind := "words"
		if m.LineBased {
			kind = "lines"
		}
		t.Row(m.ID, m.Name, kind, strconv.Itoa(lib.PoolSize(m)), lib.Origin(m.Source))
	}
	return t.Render()
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyMode, "mode", "", "mode filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N results")
	cmd.Flags().IntVar(&historyWindow, "window", statsui.DefaultTrendWindow, "moving average window for the WPM trend")
	cmd.Flags().StringVar(&historyBackend, "backend", defaultBackend, "history backend (json|sqlite)")
	cmd.Flags().BoolVar(&historyTUI, "tui", false, "browse history interactively")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, err := historyFilter(historyMode, historySince, historyLast)
	if err != nil {
		return err
	}
	if historyWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	backendName := historyBackend
	applyStringConfig(cmd, "backend", &backendName, fileCfg.History.Backend)
	backendName = strings.ToLower(strings.TrimSpace(backendName))
	if !history.ValidBackend(backendName) {
		return fmt.Errorf("--backend must be %s or %s", history.BackendJSON, history.BackendSQLite)
	}
	path := config.DefaultHistoryPath(backendName)
	if p := fileCfg.History.Path; p != nil && *p != "" {
		path = *p
	}

	backend, err := history.Open(backendName, path, logging.Discard())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer closeQuietly("history", backend)

	if historyTUI {
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return fmt.Errorf("--tui needs an interactive terminal")
		}
		browser := statsui.New(backend, statsui.Options{Filter: filter, Window: historyWindow, Standalone: true})
		if _, err := tea.NewProgram(browser, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("failed to run history TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(context.Background(), backend, filter, historyWindow)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTrend(out, report.Results, historyWindow, outputWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistoryTable(out, report.Results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// historyFilter validates the history flags. Modes may be given by id or
// name; results store the display name.
func historyFilter(mode, since string, last int) (model.ResultFilter, error) {
	var filter model.ResultFilter
	if mode != "" {
		m, ok := model.ModeByID(mode)
		if !ok {
			return filter, unknownModeError(mode)
		}
		filter.Mode = m.Name
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	if last < 0 {
		return filter, fmt.Errorf("--last must be >= 0")
	}
	filter.Last = last
	return filter, nil
}

// outputWidth is the terminal width, or a fixed width when piped.
func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTableWidth
	}
	return width
}
