package model

import "encoding/json"

// UnknownCategory is used in summaries when an issue lacks a type, severity,
// status, or rule.
const UnknownCategory = "Unknown"

// Severity represents the server-assigned severity of an issue.
type Severity string

const (
	SeverityBlocker  Severity = "BLOCKER"
	SeverityCritical Severity = "CRITICAL"
	SeverityMajor    Severity = "MAJOR"
	SeverityMinor    Severity = "MINOR"
	SeverityInfo     Severity = "INFO"
)

// Color returns a color name string suitable for terminal rendering.
func (s Severity) Color() string {
	switch s {
	case SeverityBlocker, SeverityCritical:
		return "red"
	case SeverityMajor:
		return "yellow"
	case SeverityMinor:
		return "blue"
	case SeverityInfo:
		return "gray"
	default:
		return "white"
	}
}

// IssueType represents the category of an issue.
type IssueType string

const (
	IssueTypeBug             IssueType = "BUG"
	IssueTypeVulnerability   IssueType = "VULNERABILITY"
	IssueTypeCodeSmell       IssueType = "CODE_SMELL"
	IssueTypeSecurityHotspot IssueType = "SECURITY_HOTSPOT"
)

// Color returns a color name string suitable for terminal rendering.
func (t IssueType) Color() string {
	switch t {
	case IssueTypeBug:
		return "red"
	case IssueTypeVulnerability, IssueTypeSecurityHotspot:
		return "magenta"
	case IssueTypeCodeSmell:
		return "yellow"
	default:
		return "white"
	}
}

// IssueRecord is the flat, export-ready form of a single issue.
type IssueRecord struct {
	Key          string          `json:"key"`
	Type         string          `json:"type"`
	Severity     string          `json:"severity"`
	Status       string          `json:"status"`
	Rule         string          `json:"rule"`
	Message      string          `json:"message"`
	Component    string          `json:"component"`
	Line         *int            `json:"line"`
	Effort       string          `json:"effort"`
	Author       string          `json:"author"`
	CreationDate string          `json:"creation_date"`
	UpdateDate   string          `json:"update_date"`
	Tags         string          `json:"tags"`
	Assignee     string          `json:"assignee"`
	Debt         string          `json:"debt"`
	Flows        json.RawMessage `json:"flows"`
}

// IssueSummary holds the aggregate counts computed over an issue set.
type IssueSummary struct {
	TotalIssues int    `json:"total_issues"`
	ByType      Counts `json:"by_type"`
	BySeverity  Counts `json:"by_severity"`
	ByStatus    Counts `json:"by_status"`
	ByRule      Counts `json:"by_rule"`
}

// Facet is a server-computed aggregate returned with an issue search page.
type Facet struct {
	Property string       `json:"property"`
	Values   []FacetValue `json:"values"`
}

// FacetValue is one bucket of a Facet.
type FacetValue struct {
	Val   string `json:"val"`
	Count int    `json:"count"`
}
