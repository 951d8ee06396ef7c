package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/krishnakanthb13/typer-tui/internal/config"
	"github.com/krishnakanthb13/typer-tui/internal/history"
	"github.com/krishnakanthb13/typer-tui/internal/model"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func TestValidateSettings(t *testing.T) {
	base := settings{mode: "medium", duration: 30, backend: "json", logLevel: "info"}
	cfg, err := validateSettings(base)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Mode.Name != "Medium" || cfg.Duration != 30 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	tests := []struct {
		name   string
		mutate func(*settings)
		want   string
	}{
		{"mode", func(s *settings) { s.mode = "klingon" }, "--mode"},
		{"duration", func(s *settings) { s.duration = 45 }, "--duration"},
		{"backend", func(s *settings) { s.backend = "redis" }, "--backend"},
		{"log level", func(s *settings) { s.logLevel = "loud" }, "[log] level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			_, err := validateSettings(s)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestResolveSettingsFlagsOverrideConfig(t *testing.T) {
	isolateXDG(t)
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--duration", "60"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	mode := "zen"
	duration := 120
	backend := "sqlite"
	histPath := "/tmp/custom.db"
	fileCfg := config.FileConfig{
		Practice: config.PracticeConfig{Mode: &mode, Duration: &duration},
		History:  config.HistoryConfig{Backend: &backend, Path: &histPath},
	}
	s := resolveSettings(cmd, fileCfg, practiceMode, practiceDuration, practiceBackend, practiceAssets)
	if s.mode != "zen" {
		t.Fatalf("expected config mode, got %q", s.mode)
	}
	if s.duration != 60 {
		t.Fatalf("expected flag duration 60, got %d", s.duration)
	}
	if s.backend != "sqlite" || s.historyPath != histPath {
		t.Fatalf("unexpected history settings: %s %s", s.backend, s.historyPath)
	}
	if s.assetsDir != config.DefaultAssetsDir() {
		t.Fatalf("expected default assets dir, got %q", s.assetsDir)
	}
}

func TestResolveSettingsDefaultHistoryPathFollowsBackend(t *testing.T) {
	isolateXDG(t)
	cmd := newRootCmd()
	s := resolveSettings(cmd, config.FileConfig{}, "medium", 30, "SQLite", "")
	if s.backend != "sqlite" || filepath.Base(s.historyPath) != "typer.db" {
		t.Fatalf("unexpected history settings: %s %s", s.backend, s.historyPath)
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	dir := isolateXDG(t)
	path := filepath.Join(dir, "config", "typer", "config.toml")
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template should parse: %v", err)
	}
	if err := os.WriteFile(path, []byte("[practice]\nmode = \"hard\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil || cfg.Practice.Mode == nil || *cfg.Practice.Mode != "hard" {
		t.Fatalf("existing config should be kept, got %+v (%v)", cfg, err)
	}
}

func TestModesCommand(t *testing.T) {
	isolateXDG(t)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"modes"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("modes: %v", err)
	}
	for _, want := range []string{"medium", "Terminal", "lines", "embedded"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("modes output missing %q:\n%s", want, out.String())
		}
	}
}

func TestHistoryCommand(t *testing.T) {
	isolateXDG(t)
	backend, err := history.Open(history.BackendJSON, config.DefaultHistoryPath(history.BackendJSON), nil)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local)
	for i, mode := range []string{"Medium", "Hard"} {
		res := model.Result{RecordedAt: base.Add(time.Duration(i) * time.Hour), Mode: mode, DurationSeconds: 30, WPM: 50, Accuracy: 98, RawWPM: 52}
		if err := backend.Record(ctx, res); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"history", "--mode", "hard"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("history: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Tests: 1") || !strings.Contains(got, "Hard") || strings.Contains(got, "Medium") {
		t.Fatalf("unexpected history output:\n%s", got)
	}
}

func TestHistoryFilterErrors(t *testing.T) {
	if _, err := historyFilter("nope", "", 0); err == nil {
		t.Fatalf("expected unknown mode error")
	}
	if _, err := historyFilter("", "yesterday", 0); err == nil {
		t.Fatalf("expected since error")
	}
	if _, err := historyFilter("", "", -2); err == nil {
		t.Fatalf("expected last error")
	}
}
