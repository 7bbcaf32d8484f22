package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Word wrap bounds for rendered summaries. wrapMargin covers the document
// margin and list indent the glamour styles add around each line.
const (
	minWrap    = 60
	maxWrap    = 120
	wrapMargin = 6
)

// ColorsEnabled reports whether styled output should be written. Setting
// NO_COLOR (any value) or TERM=dumb turns it off.
func ColorsEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// wrapWidth sizes the word wrap to the longest line of md, so a condition
// line stays on one row unless it is wider than maxWrap.
func wrapWidth(md string) int {
	width := minWrap
	for _, line := range strings.Split(md, "\n") {
		width = max(width, lipgloss.Width(line)+wrapMargin)
	}
	return min(width, maxWrap)
}

// renderMarkdown renders a summary with the environment's glamour style.
// With colors disabled the Markdown is returned as is.
func renderMarkdown(md string) (string, error) {
	if md == "" || !ColorsEnabled() {
		return md, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(wrapWidth(md)),
	)
	if err != nil {
		return md, err
	}
	out, err := r.Render(md)
	if err != nil {
		return md, err
	}
	return strings.TrimSpace(out), nil
}
