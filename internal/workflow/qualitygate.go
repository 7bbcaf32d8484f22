package workflow

import (
	"context"

	"github.com/ALT-F4-LLC/sonarexport/internal/export"
	"github.com/ALT-F4-LLC/sonarexport/internal/model"
	"github.com/ALT-F4-LLC/sonarexport/internal/report"
	"github.com/ALT-F4-LLC/sonarexport/internal/sonar"
)

// QualityGateResult is the outcome of a quality gate export.
type QualityGateResult struct {
	Project    string                  `json:"project"`
	Status     model.GateStatus        `json:"status"`
	Conditions []model.ConditionRecord `json:"conditions"`
	Files      []export.File           `json:"files"`

	// Document is the exported quality gate document.
	Document model.QualityGateExport `json:"-"`
}

// RunQualityGate exports the live gate status of the configured project,
// together with the gate definition and the analysis history when those
// are available.
func (r *Runner) RunQualityGate(ctx context.Context) (*QualityGateResult, error) {
	if err := r.waitReady(ctx); err != nil {
		return nil, err
	}

	key := r.Config.ProjectKey
	r.Reporter.Info("Fetching quality gate status for %s", key)
	status, err := r.Client.ProjectStatus(ctx, key)
	if err != nil {
		return nil, fetchErr("quality gate status", err)
	}

	def := r.gateDefinition(ctx, key)

	analyses, err := r.Client.Analyses(ctx, key, sonar.HistorySize)
	if err != nil {
		r.Reporter.Warn("analysis history unavailable: %v", err)
		analyses = nil
	}

	at := r.Now()
	gr := report.BuildGateReport(key, status, def, analyses)
	info := r.projectInfo(at)
	info.QualityGateStatus = gr.Status.Status
	doc := model.QualityGateExport{
		ProjectInfo:     info,
		CurrentStatus:   gr.Status,
		Conditions:      gr.Conditions,
		QualityGateInfo: gr.Info,
		History:         gr.History,
	}

	files, err := r.write(export.QualityGateBundle(doc), at)
	if err != nil {
		return nil, err
	}
	return &QualityGateResult{
		Project:    key,
		Status:     gr.Status.Status,
		Conditions: gr.Conditions,
		Files:      files,
		Document:   doc,
	}, nil
}

// gateDefinition looks up the gate applied to the project. Any failure is
// reported as a warning and yields nil.
func (r *Runner) gateDefinition(ctx context.Context, key string) *sonar.GateDefinition {
	ref, err := r.Client.GateForProject(ctx, key)
	if err != nil {
		r.Reporter.Warn("quality gate lookup failed: %v", err)
		return nil
	}
	if ref == nil {
		r.Reporter.Warn("no quality gate associated with project %q", key)
		return nil
	}

	def, err := r.Client.ShowGate(ctx, ref.ID)
	if err != nil {
		r.Reporter.Warn("quality gate definition unavailable: %v", err)
		return nil
	}
	return def
}
