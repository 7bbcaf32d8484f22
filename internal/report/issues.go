// Package report turns API records into flat, export-ready records and the
// aggregates written alongside them.
package report

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/ALT-F4-LLC/sonarexport/internal/model"
	"github.com/ALT-F4-LLC/sonarexport/internal/sonar"
)

// TopRules is how many rules the issue summary keeps.
const TopRules = 10

var emptyFlows = json.RawMessage("[]")

// IssueRecords maps each issue to its flat record, in input order.
func IssueRecords(issues []sonar.Issue) []model.IssueRecord {
	records := make([]model.IssueRecord, 0, len(issues))
	for _, is := range issues {
		flows := is.Flows
		if len(flows) == 0 {
			flows = emptyFlows
		}
		records = append(records, model.IssueRecord{
			Key:          is.Key,
			Type:         is.Type,
			Severity:     is.Severity,
			Status:       is.Status,
			Rule:         is.Rule,
			Message:      is.Message,
			Component:    is.Component,
			Line:         is.Line,
			Effort:       is.Effort,
			Author:       is.Author,
			CreationDate: is.CreationDate,
			UpdateDate:   is.UpdateDate,
			Tags:         strings.Join(is.Tags, ","),
			Assignee:     is.Assignee,
			Debt:         is.Debt,
			Flows:        flows,
		})
	}
	return records
}

// Summarize counts issues by type, severity, and status in first-seen order,
// and keeps the TopRules most frequent rules by descending count. Rules with
// equal counts keep their first-seen order.
func Summarize(issues []sonar.Issue) model.IssueSummary {
	byType := newCounter()
	bySeverity := newCounter()
	byStatus := newCounter()
	byRule := newCounter()

	for _, is := range issues {
		byType.add(is.Type)
		bySeverity.add(is.Severity)
		byStatus.add(is.Status)
		byRule.add(is.Rule)
	}

	rules := byRule.counts()
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Count > rules[j].Count
	})
	if len(rules) > TopRules {
		rules = rules[:TopRules]
	}

	return model.IssueSummary{
		TotalIssues: len(issues),
		ByType:      byType.counts(),
		BySeverity:  bySeverity.counts(),
		ByStatus:    byStatus.counts(),
		ByRule:      rules,
	}
}

// Facets converts the search facets into their export form.
func Facets(facets []sonar.Facet) []model.Facet {
	out := make([]model.Facet, 0, len(facets))
	for _, f := range facets {
		values := make([]model.FacetValue, 0, len(f.Values))
		for _, v := range f.Values {
			values = append(values, model.FacetValue{Val: v.Val, Count: v.Count})
		}
		out = append(out, model.Facet{Property: f.Property, Values: values})
	}
	return out
}

// counter tallies names while remembering the order they first appeared in.
type counter struct {
	index map[string]int
	list  model.Counts
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(name string) {
	if name == "" {
		name = model.UnknownCategory
	}
	if i, ok := c.index[name]; ok {
		c.list[i].Count++
		return
	}
	c.index[name] = len(c.list)
	c.list = append(c.list, model.Count{Name: name, Count: 1})
}

func (c *counter) counts() model.Counts {
	out := make(model.Counts, len(c.list))
	copy(out, c.list)
	return out
}
