package export

import (
	"github.com/ALT-F4-LLC/sonarexport/internal/model"
)

var (
	issueHeader     = []string{"Key", "Type", "Severity", "Status", "Rule", "Message", "Component", "Line", "Effort", "Author", "Created", "Updated", "Tags", "Assignee", "Debt", "Flows"}
	metricHeader    = []string{"Metric", "Value", "Raw Value"}
	statusHeader    = []string{"Status", "Project", "Analysis Date", "Ignored Conditions"}
	conditionHeader = []string{"Metric", "Comparator", "Threshold", "Actual Value", "Status", "Error Message"}
	gateInfoHeader  = []string{"ID", "Name", "Default", "Total Conditions"}
	historyHeader   = []string{"Date", "Version", "Revision", "Events"}
)

// ConditionsPrefix names the conditions-only CSV of a quality gate export.
const ConditionsPrefix = "quality_gate_conditions"

// IssuesBundle lays out an issues export: issue list, one sheet per summary,
// and project info. The CSV mirrors the issue list.
func IssuesBundle(doc model.IssuesExport) Bundle {
	issues := issueTable(doc.Issues)
	return Bundle{
		Kind:     model.KindIssues,
		Project:  doc.ProjectInfo.Project,
		Document: doc,
		Sheets: []Table{
			issues,
			countsTable("By Type", "Type", doc.Summary.ByType),
			countsTable("By Severity", "Severity", doc.Summary.BySeverity),
			countsTable("By Status", "Status", doc.Summary.ByStatus),
			countsTable("Top Rules", "Rule", doc.Summary.ByRule),
			projectInfoTable(doc.ProjectInfo),
		},
		CSV: []CSVFile{{Table: issues}},
	}
}

// MetricsBundle lays out a metrics export.
func MetricsBundle(doc model.MetricsExport) Bundle {
	metrics := Table{Name: "Metrics", Header: metricHeader}
	for _, m := range doc.Metrics {
		metrics.Rows = append(metrics.Rows, []any{m.Metric, m.Value, m.RawValue})
	}
	return Bundle{
		Kind:     model.KindMetrics,
		Project:  doc.ProjectInfo.Project,
		Document: doc,
		Sheets:   []Table{metrics, projectInfoTable(doc.ProjectInfo)},
		CSV:      []CSVFile{{Table: metrics}},
	}
}

// QualityGateBundle lays out a quality gate export. The current status is
// the primary CSV; conditions get a CSV of their own when there are any.
func QualityGateBundle(doc model.QualityGateExport) Bundle {
	s := doc.CurrentStatus
	status := Table{
		Name:   "Current Status",
		Header: statusHeader,
		Rows:   [][]any{{string(s.Status), s.Project, s.AnalysisDate, s.IgnoredConditions}},
	}

	conditions := Table{Name: "Conditions", Header: conditionHeader}
	for _, c := range doc.Conditions {
		conditions.Rows = append(conditions.Rows, []any{c.Metric, c.Comparator, c.Threshold, c.ActualValue, c.Status, c.ErrorMessage})
	}

	gi := doc.QualityGateInfo
	info := Table{
		Name:   "Quality Gate",
		Header: gateInfoHeader,
		Rows:   [][]any{{gi.ID, gi.Name, gi.IsDefault, gi.TotalConditions}},
	}

	history := Table{Name: "Analysis History", Header: historyHeader}
	for _, a := range doc.History {
		history.Rows = append(history.Rows, []any{a.Date, a.Version, a.Revision, a.Events})
	}

	csvFiles := []CSVFile{{Table: status}}
	if len(conditions.Rows) > 0 {
		csvFiles = append(csvFiles, CSVFile{Prefix: ConditionsPrefix, Table: conditions})
	}

	return Bundle{
		Kind:     model.KindQualityGate,
		Project:  doc.ProjectInfo.Project,
		Document: doc,
		Sheets:   []Table{status, conditions, info, history, projectInfoTable(doc.ProjectInfo)},
		CSV:      csvFiles,
	}
}

func issueTable(records []model.IssueRecord) Table {
	t := Table{Name: "Issues", Header: issueHeader}
	for _, r := range records {
		var line any = ""
		if r.Line != nil {
			line = *r.Line
		}
		t.Rows = append(t.Rows, []any{
			r.Key, r.Type, r.Severity, r.Status, r.Rule, r.Message, r.Component, line,
			r.Effort, r.Author, r.CreationDate, r.UpdateDate, r.Tags, r.Assignee, r.Debt,
			string(r.Flows),
		})
	}
	return t
}

func countsTable(name, label string, counts model.Counts) Table {
	t := Table{Name: name, Header: []string{label, "Count"}}
	for _, c := range counts {
		t.Rows = append(t.Rows, []any{c.Name, c.Count})
	}
	return t
}

func projectInfoTable(info model.ProjectInfo) Table {
	header := []string{"Project", "Exported At", "Server URL"}
	row := []any{info.Project, info.ExportedAt, info.ServerURL}
	if info.TotalIssues > 0 {
		header = append(header, "Total Issues")
		row = append(row, info.TotalIssues)
	}
	if info.QualityGateStatus != "" {
		header = append(header, "Quality Gate Status")
		row = append(row, string(info.QualityGateStatus))
	}
	return Table{Name: "Project Info", Header: header, Rows: [][]any{row}}
}
