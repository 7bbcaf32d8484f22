package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ALT-F4-LLC/sonarexport/internal/export"
	"github.com/ALT-F4-LLC/sonarexport/internal/model"
)

const maxNameWidth = 50

// StyledText applies a lipgloss style to text when colors are enabled.
// When colors are disabled, it returns the plain text unchanged.
func StyledText(text string, style lipgloss.Style) string {
	if ColorsEnabled() {
		return style.Render(text)
	}
	return text
}

// ColorFromName maps model color name strings to lipgloss colors.
func ColorFromName(name string) lipgloss.Color {
	switch name {
	case "red":
		return lipgloss.Color("9")
	case "yellow":
		return lipgloss.Color("11")
	case "blue":
		return lipgloss.Color("12")
	case "green":
		return lipgloss.Color("10")
	case "magenta":
		return lipgloss.Color("13")
	case "gray":
		return lipgloss.Color("8")
	case "white":
		return lipgloss.Color("15")
	default:
		return lipgloss.Color("15")
	}
}

// truncate shortens a string to maxLen runes, appending an ellipsis if truncated.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// EmptyState renders a styled empty-state message with an optional contextual hint.
// When colors are enabled the message is rendered in dim gray and the hint is italic.
// When quiet is true the hint is suppressed.
func EmptyState(message, hint string, quiet bool) string {
	if !ColorsEnabled() {
		if quiet || hint == "" {
			return message
		}
		return message + "\n" + hint
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	result := dimStyle.Render(message)
	if !quiet && hint != "" {
		result += "\n" + hintStyle.Render(hint)
	}
	return result
}

// Banner renders the one-line header printed when a workflow starts.
func Banner(title, projectKey, serverURL string) string {
	if !ColorsEnabled() {
		return fmt.Sprintf("%s: %s (%s)", title, projectKey, serverURL)
	}
	titleStyle := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	urlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return fmt.Sprintf("%s: %s %s",
		titleStyle.Render(title),
		keyStyle.Render(projectKey),
		urlStyle.Render("("+serverURL+")"),
	)
}

// countSection is one titled block of an issue summary.
type countSection struct {
	title  string
	label  string
	counts model.Counts
	color  func(name string) string
}

// RenderIssueSummary renders the issue totals followed by one table per
// category and the top rules.
func RenderIssueSummary(s model.IssueSummary) string {
	if s.TotalIssues == 0 {
		return EmptyState("No issues found.", "", false)
	}

	sections := []countSection{
		{"By Type", "Type", s.ByType, func(n string) string { return model.IssueType(n).Color() }},
		{"By Severity", "Severity", s.BySeverity, func(n string) string { return model.Severity(n).Color() }},
		{"By Status", "Status", s.ByStatus, nil},
		{"Top Rules", "Rule", s.ByRule, nil},
	}

	total := "Total issues: " + humanize.Comma(int64(s.TotalIssues))
	if !ColorsEnabled() {
		var b strings.Builder
		b.WriteString(total + "\n")
		for _, sec := range sections {
			fmt.Fprintf(&b, "\n%s\n", sec.title)
			for _, c := range sec.counts {
				fmt.Fprintf(&b, "  %-*s %s\n", maxNameWidth, truncate(c.Name, maxNameWidth), humanize.Comma(int64(c.Count)))
			}
		}
		return b.String()
	}

	parts := []string{lipgloss.NewStyle().Bold(true).Render(total)}
	for _, sec := range sections {
		parts = append(parts, renderCountTable(sec))
	}
	return strings.Join(parts, "\n\n")
}

func renderCountTable(sec countSection) string {
	rows := make([][]string, 0, len(sec.counts))
	for _, c := range sec.counts {
		rows = append(rows, []string{truncate(c.Name, maxNameWidth), humanize.Comma(int64(c.Count))})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(sec.label, "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}
			if row < 0 || row >= len(sec.counts) {
				return s
			}
			if col == 0 && sec.color != nil {
				return s.Foreground(ColorFromName(sec.color(sec.counts[row].Name)))
			}
			if col == 1 {
				return s.Align(lipgloss.Right)
			}
			return s
		})

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render(sec.title)
	return title + "\n" + t.Render()
}

// RenderMetrics renders metric records as a two-column table. Rating
// values are colored by letter grade.
func RenderMetrics(records []model.MetricRecord) string {
	if len(records) == 0 {
		return EmptyState("No metrics found.", "", false)
	}

	if !ColorsEnabled() {
		var b strings.Builder
		fmt.Fprintf(&b, "%-26s %s\n", "Metric", "Value")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 40))
		for _, r := range records {
			fmt.Fprintf(&b, "%-26s %s\n", r.Metric, r.Value)
		}
		return b.String()
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Metric, r.Value})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}
			if row < 0 || row >= len(records) || col != 1 {
				return s
			}
			r := records[row]
			if model.IsRatingMetric(r.Metric) {
				if letter, ok := model.RatingLetter(r.RawValue); ok {
					return s.Bold(true).Foreground(ColorFromName(model.RatingColor(letter)))
				}
			}
			if r.Value == model.NotAvailable {
				return s.Foreground(lipgloss.Color("8"))
			}
			return s
		})

	return t.Render()
}

// RenderFiles lists written export files with their sizes.
func RenderFiles(files []export.File) string {
	if len(files) == 0 {
		return EmptyState("No files written.", "", false)
	}

	var b strings.Builder
	pathStyle := lipgloss.NewStyle().Bold(true)
	sizeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	for _, f := range files {
		fmt.Fprintf(&b, "  %-5s %s %s\n",
			strings.ToUpper(string(f.Format)),
			StyledText(f.Path, pathStyle),
			StyledText("("+humanize.Bytes(uint64(f.Size))+")", sizeStyle),
		)
	}
	return b.String()
}
