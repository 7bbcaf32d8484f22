package report

import (
	"strings"

	"github.com/ALT-F4-LLC/sonarexport/internal/model"
	"github.com/ALT-F4-LLC/sonarexport/internal/sonar"
)

// GateReport holds the record sets derived for a quality gate export.
type GateReport struct {
	Status     model.GateStatusRecord
	Conditions []model.ConditionRecord
	Info       model.GateInfo
	History    []model.AnalysisRecord
}

// BuildGateReport derives the quality gate record sets. def may be nil, in
// which case Info is its zero value.
func BuildGateReport(projectKey string, status *sonar.ProjectStatus, def *sonar.GateDefinition, analyses []sonar.Analysis) GateReport {
	return GateReport{
		Status:     GateStatus(projectKey, status),
		Conditions: ConditionRecords(status.Conditions),
		Info:       GateInfo(def),
		History:    AnalysisRecords(analyses),
	}
}

// GateStatus maps the live evaluation to its status record.
func GateStatus(projectKey string, status *sonar.ProjectStatus) model.GateStatusRecord {
	return model.GateStatusRecord{
		Status:            model.ServerGateStatus(status.Status),
		Project:           projectKey,
		AnalysisDate:      status.AnalysisDate,
		IgnoredConditions: status.IgnoredConditions,
	}
}

// ConditionRecords maps evaluated conditions, in server order.
func ConditionRecords(conditions []sonar.Condition) []model.ConditionRecord {
	records := make([]model.ConditionRecord, 0, len(conditions))
	for _, c := range conditions {
		records = append(records, model.ConditionRecord{
			Metric:       c.MetricKey,
			Comparator:   c.Comparator,
			Threshold:    c.ErrorThreshold,
			ActualValue:  c.ActualValue,
			Status:       c.Status,
			ErrorMessage: c.ErrorMessage,
		})
	}
	return records
}

// GateInfo summarizes a gate definition.
func GateInfo(def *sonar.GateDefinition) model.GateInfo {
	if def == nil {
		return model.GateInfo{}
	}
	return model.GateInfo{
		ID:              string(def.ID),
		Name:            def.Name,
		IsDefault:       def.IsDefault,
		TotalConditions: len(def.Conditions),
	}
}

// AnalysisRecords maps analysis history entries; event names are joined
// with commas.
func AnalysisRecords(analyses []sonar.Analysis) []model.AnalysisRecord {
	records := make([]model.AnalysisRecord, 0, len(analyses))
	for _, a := range analyses {
		names := make([]string, 0, len(a.Events))
		for _, e := range a.Events {
			names = append(names, e.Name)
		}
		records = append(records, model.AnalysisRecord{
			Date:     a.Date,
			Version:  a.ProjectVersion,
			Revision: a.Revision,
			Events:   strings.Join(names, ","),
		})
	}
	return records
}
