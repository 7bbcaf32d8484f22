package render

import (
	"fmt"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/ALT-F4-LLC/sonarexport/internal/model"
)

// serverTimeLayout is the timestamp layout the server uses for dates.
const serverTimeLayout = "2006-01-02T15:04:05-0700"

// GateMarkdown builds the Markdown summary of a quality gate export. now
// anchors the relative analysis date.
func GateMarkdown(doc model.QualityGateExport, now time.Time) string {
	st := doc.CurrentStatus
	var b strings.Builder

	fmt.Fprintf(&b, "## %s Quality Gate: %s\n\n", model.ParseGateStatus(string(st.Status)).Icon(), st.Status)
	fmt.Fprintf(&b, "- **Project:** %s\n", st.Project)
	if st.AnalysisDate != "" {
		fmt.Fprintf(&b, "- **Analysis date:** %s\n", analysisDate(st.AnalysisDate, now))
	}
	if doc.QualityGateInfo.Name != "" {
		name := doc.QualityGateInfo.Name
		if doc.QualityGateInfo.IsDefault {
			name += " (default)"
		}
		fmt.Fprintf(&b, "- **Quality gate:** %s\n", name)
	}
	if st.IgnoredConditions {
		b.WriteString("- Some conditions were ignored\n")
	}

	if len(doc.Conditions) > 0 {
		b.WriteString("\n### Conditions\n\n")
		for i, c := range doc.Conditions {
			fmt.Fprintf(&b, "%d. %s `%s`: %s %s %s\n",
				i+1,
				model.ParseGateStatus(c.Status).Icon(),
				c.Metric,
				orNA(c.ActualValue),
				c.Comparator,
				c.Threshold,
			)
		}
	}

	return b.String()
}

// RenderGateSummary renders the quality gate summary for the terminal.
func RenderGateSummary(doc model.QualityGateExport, now time.Time) string {
	md := GateMarkdown(doc, now)
	out, err := renderMarkdown(md)
	if err != nil {
		return md
	}
	return out
}

func analysisDate(raw string, now time.Time) string {
	t, err := time.Parse(serverTimeLayout, raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%s (%s)", raw, humanize.RelTime(t, now, "ago", "from now"))
}

func orNA(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}
