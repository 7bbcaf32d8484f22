package model

import (
	"bytes"
	"encoding/json"
)

// ExportKind names a workflow's output and prefixes its file names.
type ExportKind string

const (
	KindIssues      ExportKind = "issues"
	KindMetrics     ExportKind = "metrics"
	KindQualityGate ExportKind = "quality_gate"
)

// ProjectInfo is the metadata block written with every export.
type ProjectInfo struct {
	Project           string     `json:"project"`
	ExportedAt        string     `json:"exported_at"`
	ServerURL         string     `json:"server_url"`
	TotalIssues       int        `json:"total_issues,omitempty"`
	QualityGateStatus GateStatus `json:"quality_gate_status,omitempty"`
}

// Count is a single named tally.
type Count struct {
	Name  string
	Count int
}

// Counts is an ordered list of tallies. It marshals to a JSON object whose
// keys keep the slice order.
type Counts []Count

// Get returns the tally for name, or 0.
func (c Counts) Get(name string) int {
	for _, e := range c {
		if e.Name == name {
			return e.Count
		}
	}
	return 0
}

// MarshalJSON implements ordered JSON object serialization for Counts.
func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IssuesExport is the top-level structure of an issues export.
type IssuesExport struct {
	ProjectInfo ProjectInfo   `json:"project_info"`
	Summary     IssueSummary  `json:"summary"`
	Issues      []IssueRecord `json:"issues"`
	Facets      []Facet       `json:"facets"`
}

// MetricsExport is the top-level structure of a metrics export.
type MetricsExport struct {
	ProjectInfo ProjectInfo    `json:"project_info"`
	Metrics     []MetricRecord `json:"metrics"`
}

// QualityGateExport is the top-level structure of a quality gate export.
type QualityGateExport struct {
	ProjectInfo     ProjectInfo       `json:"project_info"`
	CurrentStatus   GateStatusRecord  `json:"current_status"`
	Conditions      []ConditionRecord `json:"conditions"`
	QualityGateInfo GateInfo          `json:"quality_gate_info"`
	History         []AnalysisRecord  `json:"analysis_history"`
}
