// Package stats contains typing metrics and history reporting.
package stats

import (
	"context"

	"github.com/krishnakanthb13/typer-tui/internal/model"
)

// ResultLister is implemented by the history backends.
type ResultLister interface {
	ListResults(ctx context.Context, filter model.ResultFilter) ([]model.Result, error)
}

// Report contains precomputed data for history rendering.
type Report struct {
	Results []model.Result
	Summary Summary
	Trend   []float64
}

// BuildReport loads results oldest first and prepares data for rendering.
func BuildReport(ctx context.Context, src ResultLister, filter model.ResultFilter, window int) (Report, error) {
	results, err := src.ListResults(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	if filter.Last > 0 && len(results) > filter.Last {
		results = results[len(results)-filter.Last:]
	}
	return Report{
		Results: results,
		Summary: Summarize(results),
		Trend:   WPMTrend(results, window),
	}, nil
}
