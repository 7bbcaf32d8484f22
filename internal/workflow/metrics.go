package workflow

import (
	"context"
	"fmt"

	"github.com/ALT-F4-LLC/sonarexport/internal/export"
	"github.com/ALT-F4-LLC/sonarexport/internal/model"
	"github.com/ALT-F4-LLC/sonarexport/internal/report"
)

// MetricsResult is the outcome of a metrics export.
type MetricsResult struct {
	Project string               `json:"project"`
	Metrics []model.MetricRecord `json:"metrics"`
	Files   []export.File        `json:"files"`
}

// RunMetrics exports the fixed metric set of the configured project.
func (r *Runner) RunMetrics(ctx context.Context) (*MetricsResult, error) {
	if err := r.waitReady(ctx); err != nil {
		return nil, err
	}

	key := r.Config.ProjectKey
	r.Reporter.Info("Fetching %d metrics for %s", len(model.MetricKeys), key)
	component, err := r.Client.Measures(ctx, key, model.MetricKeys)
	if err != nil {
		return nil, fetchErr("metrics", err)
	}
	if len(component.Measures) == 0 {
		return nil, fmt.Errorf("%w: no metrics found for project %q", ErrNothingToExport, key)
	}

	at := r.Now()
	records := report.MetricRecords(component.Measures)
	doc := model.MetricsExport{
		ProjectInfo: r.projectInfo(at),
		Metrics:     records,
	}

	files, err := r.write(export.MetricsBundle(doc), at)
	if err != nil {
		return nil, err
	}
	return &MetricsResult{Project: key, Metrics: records, Files: files}, nil
}
