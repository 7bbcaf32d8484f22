package sonar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Paging is the paging block of paginated responses.
type Paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

// Issue is a single issue as returned by /api/issues/search.
// Only Key is guaranteed; every other field may be absent.
type Issue struct {
	Key          string          `json:"key"`
	Rule         string          `json:"rule"`
	Severity     string          `json:"severity"`
	Component    string          `json:"component"`
	Project      string          `json:"project"`
	Line         *int            `json:"line,omitempty"`
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Effort       string          `json:"effort,omitempty"`
	Debt         string          `json:"debt,omitempty"`
	Author       string          `json:"author,omitempty"`
	Assignee     string          `json:"assignee,omitempty"`
	Tags         []string        `json:"tags"`
	Flows        json.RawMessage `json:"flows,omitempty"`
	CreationDate string          `json:"creationDate"`
	UpdateDate   string          `json:"updateDate"`
	Type         string          `json:"type"`
}

// FacetValue is one bucket of a search facet.
type FacetValue struct {
	Val   string `json:"val"`
	Count int    `json:"count"`
}

// Facet is an aggregate returned alongside a search page.
type Facet struct {
	Property string       `json:"property"`
	Values   []FacetValue `json:"values"`
}

// IssuesPage is one page of /api/issues/search.
type IssuesPage struct {
	Total  int     `json:"total"`
	P      int     `json:"p"`
	PS     int     `json:"ps"`
	Paging Paging  `json:"paging"`
	Issues []Issue `json:"issues"`
	Facets []Facet `json:"facets"`
}

// reportedTotal prefers the paging block and falls back to the legacy
// top-level total.
func (p IssuesPage) reportedTotal() int {
	if p.Paging.Total > 0 {
		return p.Paging.Total
	}
	return p.Total
}

// Measure is a single metric value of a component.
type Measure struct {
	Metric    string  `json:"metric"`
	Value     *string `json:"value,omitempty"`
	BestValue bool    `json:"bestValue,omitempty"`
}

// Component is the project component wrapper of /api/measures/component.
type Component struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Qualifier string    `json:"qualifier"`
	Measures  []Measure `json:"measures"`
}

type measuresResponse struct {
	Component *Component `json:"component"`
}

// Condition is one evaluated condition of a project status.
type Condition struct {
	Status         string `json:"status"`
	MetricKey      string `json:"metricKey"`
	Comparator     string `json:"comparator"`
	ErrorThreshold string `json:"errorThreshold,omitempty"`
	ActualValue    string `json:"actualValue,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// ProjectStatus is the live quality gate evaluation of a project.
type ProjectStatus struct {
	Status            string      `json:"status"`
	AnalysisDate      string      `json:"analysisDate,omitempty"`
	IgnoredConditions bool        `json:"ignoredConditions"`
	Conditions        []Condition `json:"conditions"`
}

type projectStatusResponse struct {
	ProjectStatus *ProjectStatus `json:"projectStatus"`
}

// GateID identifies a quality gate. Older servers send a number, newer ones
// a string; both decode into the same value.
type GateID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *GateID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = GateID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("gate id: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("gate id %q: %w", n, err)
	}
	*id = GateID(n.String())
	return nil
}

// GateRef is the gate reference returned by /api/qualitygates/get_by_project.
type GateRef struct {
	ID      GateID `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

type gateForProjectResponse struct {
	QualityGate *GateRef `json:"qualityGate"`
}

// GateCondition is a condition of a quality gate definition.
type GateCondition struct {
	ID     GateID `json:"id"`
	Metric string `json:"metric"`
	Op     string `json:"op"`
	Error  string `json:"error"`
}

// GateDefinition is the response of /api/qualitygates/show.
type GateDefinition struct {
	ID         GateID          `json:"id"`
	Name       string          `json:"name"`
	IsDefault  bool            `json:"isDefault"`
	IsBuiltIn  bool            `json:"isBuiltIn,omitempty"`
	Conditions []GateCondition `json:"conditions"`
}

// Event is a named event attached to an analysis.
type Event struct {
	Key      string `json:"key"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// Analysis is one entry of /api/project_analyses/search.
type Analysis struct {
	Key            string  `json:"key"`
	Date           string  `json:"date"`
	ProjectVersion string  `json:"projectVersion,omitempty"`
	Revision       string  `json:"revision,omitempty"`
	Events         []Event `json:"events"`
}

type analysesResponse struct {
	Paging   Paging     `json:"paging"`
	Analyses []Analysis `json:"analyses"`
}

// errorResponse is the error body the server returns on failures.
type errorResponse struct {
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}
