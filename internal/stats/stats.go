// Package stats contains typing metrics and history reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/krishnakanthb13/typer-tui/internal/model"
)

const sparkChars = " .:-=+*#%@"

// charsPerWord is the standard five-characters-per-word convention.
const charsPerWord = 5.0

// Metrics holds speed and accuracy for a test.
type Metrics struct {
	WPM      float64
	RawWPM   float64
	Accuracy float64
}

// Rounded returns m with every field rounded to two decimals.
func (m Metrics) Rounded() Metrics {
	return Metrics{
		WPM:      Round2(m.WPM),
		RawWPM:   Round2(m.RawWPM),
		Accuracy: Round2(m.Accuracy),
	}
}

// Compute converts elapsed time and character counts into WPM, raw WPM and
// accuracy. A zero startedAt means the test has not started.
func Compute(startedAt time.Time, elapsedSeconds float64, totalTyped, correct int) Metrics {
	if startedAt.IsZero() || elapsedSeconds <= 0 {
		return Metrics{}
	}
	minutes := elapsedSeconds / 60.0
	m := Metrics{
		RawWPM:   (float64(totalTyped) / charsPerWord) / minutes,
		WPM:      (float64(correct) / charsPerWord) / minutes,
		Accuracy: 100,
	}
	if totalTyped > 0 {
		m.Accuracy = float64(correct) / float64(totalTyped) * 100
	}
	return m
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Summary aggregates a set of results.
type Summary struct {
	Count       int
	AvgWPM      float64
	BestWPM     float64
	AvgRawWPM   float64
	AvgAccuracy float64
}

// Summarize aggregates results. An empty slice yields a zero Summary.
func Summarize(results []model.Result) Summary {
	if len(results) == 0 {
		return Summary{}
	}
	var s Summary
	var totalWPM, totalRaw, totalAcc float64
	for _, r := range results {
		totalWPM += r.WPM
		totalRaw += r.RawWPM
		totalAcc += r.Accuracy
		if r.WPM > s.BestWPM {
			s.BestWPM = r.WPM
		}
	}
	count := float64(len(results))
	s.Count = len(results)
	s.AvgWPM = totalWPM / count
	s.AvgRawWPM = totalRaw / count
	s.AvgAccuracy = totalAcc / count
	return s
}

// WPMTrend returns the moving average of WPM over results in order.
func WPMTrend(results []model.Result, window int) []float64 {
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.WPM
	}
	return MovingAverage(values, window)
}

// RenderSummary prints aggregate figures for results.
func RenderSummary(w io.Writer, results []model.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	s := Summarize(results)
	lines := []string{
		"Summary",
		fmt.Sprintf("Tests: %d", s.Count),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		fmt.Sprintf("Avg Raw WPM: %.2f", s.AvgRawWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints a WPM sparkline no wider than width.
func RenderTrend(w io.Writer, results []model.Result, window, width int) error {
	if len(results) < 2 {
		return nil
	}
	trend := WPMTrend(results, window)
	if width > 0 && len(trend) > width {
		trend = trend[len(trend)-width:]
	}
	_, err := fmt.Fprintf(w, "WPM trend: %s\n\n", Sparkline(trend))
	return err
}

// RenderHistoryTable prints results newest first.
func RenderHistoryTable(w io.Writer, results []model.Result) error {
	if len(results) == 0 {
		return nil
	}
	table := newTextTable("Date", "Mode", "Duration", "WPM", "Acc %", "Raw WPM").alignRight(2, 3, 4, 5)
	for i := len(results) - 1; i >= 0; i-- {
		table.add(HistoryRow(results[i]))
	}
	for _, line := range table.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryRow formats a result as display cells.
func HistoryRow(r model.Result) []string {
	return []string{
		r.RecordedAt.Local().Format("2006-01-02 15:04"),
		r.Mode,
		fmt.Sprintf("%ds", r.DurationSeconds),
		fmt.Sprintf("%.2f", r.WPM),
		fmt.Sprintf("%.2f", r.Accuracy),
		fmt.Sprintf("%.2f", r.RawWPM),
	}
}
