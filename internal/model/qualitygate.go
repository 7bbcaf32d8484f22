package model

// GateStatus is the evaluation result of a quality gate or one of its
// conditions.
type GateStatus string

const (
	GateStatusOK      GateStatus = "OK"
	GateStatusWarn    GateStatus = "WARN"
	GateStatusError   GateStatus = "ERROR"
	GateStatusNone    GateStatus = "NONE"
	GateStatusUnknown GateStatus = "UNKNOWN"
)

// ServerGateStatus keeps the value reported by the server as is. Only a
// missing value becomes GateStatusUnknown.
func ServerGateStatus(raw string) GateStatus {
	if raw == "" {
		return GateStatusUnknown
	}
	return GateStatus(raw)
}

// ParseGateStatus maps a raw server value onto one of the known statuses.
// Empty or unrecognized values become GateStatusUnknown. Use it for display
// only; exported records carry ServerGateStatus.
func ParseGateStatus(raw string) GateStatus {
	switch s := GateStatus(raw); s {
	case GateStatusOK, GateStatusWarn, GateStatusError, GateStatusNone:
		return s
	default:
		return GateStatusUnknown
	}
}

// Color returns a color name string suitable for terminal rendering.
func (s GateStatus) Color() string {
	switch s {
	case GateStatusOK:
		return "green"
	case GateStatusError:
		return "red"
	case GateStatusWarn:
		return "yellow"
	default:
		return "gray"
	}
}

// Icon returns a single-character glyph for the status.
func (s GateStatus) Icon() string {
	switch s {
	case GateStatusOK:
		return "✔"
	case GateStatusError:
		return "✘"
	default:
		return "⚠"
	}
}

// GateStatusRecord is the current quality gate evaluation for the project.
type GateStatusRecord struct {
	Status            GateStatus `json:"status"`
	Project           string     `json:"project"`
	AnalysisDate      string     `json:"analysis_date"`
	IgnoredConditions bool       `json:"ignored_conditions"`
}

// ConditionRecord is the flat form of one evaluated gate condition.
type ConditionRecord struct {
	Metric       string `json:"metric"`
	Comparator   string `json:"comparator"`
	Threshold    string `json:"threshold"`
	ActualValue  string `json:"actual_value"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// GateInfo describes the quality gate definition applied to the project.
// The zero value stands for "no definition available".
type GateInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsDefault       bool   `json:"is_default"`
	TotalConditions int    `json:"total_conditions"`
}

// AnalysisRecord is one entry of the project's analysis history.
type AnalysisRecord struct {
	Date     string `json:"date"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
	Events   string `json:"events"`
}
