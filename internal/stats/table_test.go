package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/krishnakanthb13/typer-tui/internal/model"
)

func TestTextTableAlignsColumns(t *testing.T) {
	table := newTextTable("Mode", "WPM", "Acc %").alignRight(1, 2)
	table.add([]string{"Easy", "72.50", "98.00"})
	table.add([]string{"Twisters", "8.00", "61.25"})

	lines := table.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Mode       WPM Acc %" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Easy     72.50 98.00" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Twisters  8.00 61.25" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTextTableUsesDisplayWidth(t *testing.T) {
	table := newTextTable("Mode", "WPM").alignRight(1)
	table.add([]string{"日本", "1"})
	table.add([]string{"abc"})

	lines := table.lines()
	if lines[1] != "日本   1" {
		t.Fatalf("wide runes should count double: %q", lines[1])
	}
	if lines[2] != "abc     " {
		t.Fatalf("missing cells should render blank: %q", lines[2])
	}
}

func TestRenderHistoryTableNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 2, 3, 4, 0, 0, time.Local)
	results := []model.Result{
		{RecordedAt: base, Mode: "Easy", DurationSeconds: 30, WPM: 40, Accuracy: 90, RawWPM: 45},
		{RecordedAt: base.Add(time.Hour), Mode: "Hard", DurationSeconds: 120, WPM: 55.5, Accuracy: 97.25, RawWPM: 57},
	}
	var buf bytes.Buffer
	if err := RenderHistoryTable(&buf, results); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "Date") || !strings.Contains(lines[1], "Hard") || !strings.Contains(lines[2], "Easy") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
	if !strings.Contains(lines[1], "120s") || !strings.HasSuffix(lines[1], "57.00") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
