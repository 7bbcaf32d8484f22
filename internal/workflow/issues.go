package workflow

import (
	"context"
	"fmt"

	"github.com/ALT-F4-LLC/sonarexport/internal/export"
	"github.com/ALT-F4-LLC/sonarexport/internal/model"
	"github.com/ALT-F4-LLC/sonarexport/internal/report"
)

// IssuesResult is the outcome of an issues export.
type IssuesResult struct {
	Project string             `json:"project"`
	Summary model.IssueSummary `json:"summary"`
	Files   []export.File      `json:"files"`
}

// RunIssues exports every issue of the configured project.
func (r *Runner) RunIssues(ctx context.Context) (*IssuesResult, error) {
	if err := r.waitReady(ctx); err != nil {
		return nil, err
	}

	key := r.Config.ProjectKey
	r.Reporter.Info("Fetching issues for %s", key)
	res, err := r.Client.SearchIssues(ctx, key)
	if err != nil {
		return nil, fetchErr("issues", err)
	}
	if len(res.Issues) == 0 {
		return nil, fmt.Errorf("%w: no issues found for project %q", ErrNothingToExport, key)
	}
	r.Reporter.Info("Fetched %d issues in %d pages", len(res.Issues), res.Pages)

	at := r.Now()
	summary := report.Summarize(res.Issues)
	info := r.projectInfo(at)
	info.TotalIssues = summary.TotalIssues
	doc := model.IssuesExport{
		ProjectInfo: info,
		Summary:     summary,
		Issues:      report.IssueRecords(res.Issues),
		Facets:      report.Facets(res.Facets),
	}

	files, err := r.write(export.IssuesBundle(doc), at)
	if err != nil {
		return nil, err
	}
	return &IssuesResult{Project: key, Summary: summary, Files: files}, nil
}
