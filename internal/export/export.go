// Package export writes export bundles to JSON, XLSX, and CSV files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ALT-F4-LLC/sonarexport/internal/model"
)

// StampLayout is the timestamp layout used in export file names.
const StampLayout = "20060102_150405"

// DateLayout is the layout of the human-readable export date.
const DateLayout = "2006-01-02 15:04:05"

// DefaultDir is the output directory used when none is configured.
const DefaultDir = "exports"

// Format identifies the serialization of a written file.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Table is a named record set in tabular form.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// CSVFile is a table written as its own delimited-text file. Prefix replaces
// the bundle kind at the start of the file name.
type CSVFile struct {
	Prefix string
	Table  Table
}

// Bundle is everything one workflow exports.
type Bundle struct {
	Kind     model.ExportKind
	Project  string
	Document any
	Sheets   []Table
	CSV      []CSVFile
}

// File describes one written output file. Truncated counts workbook cells
// cut down to the spreadsheet cell limit; the JSON and CSV files keep those
// values whole.
type File struct {
	Path      string `json:"path"`
	Format    Format `json:"format"`
	Size      int64  `json:"size"`
	Truncated int    `json:"truncated_cells,omitempty"`
}

// Exporter writes bundles under Dir.
type Exporter struct {
	Dir string
}

// New returns an Exporter writing under dir, or DefaultDir if dir is empty.
func New(dir string) *Exporter {
	if dir == "" {
		dir = DefaultDir
	}
	return &Exporter{Dir: dir}
}

// Stem returns the shared file name stem "<kind>_<project>_<timestamp>".
func Stem(prefix, project string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s", prefix, safeName(project), at.Format(StampLayout))
}

// Write creates Dir if needed, then writes the JSON document, the workbook,
// and each CSV file, in that order. It stops at the first failing format;
// files already written stay in place.
func (e *Exporter) Write(b Bundle, at time.Time) ([]File, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stem := Stem(string(b.Kind), b.Project, at)
	var files []File

	jsonPath := filepath.Join(e.Dir, stem+".json")
	if err := writeJSONFile(jsonPath, b.Document); err != nil {
		return files, fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	files = append(files, stat(jsonPath, FormatJSON))

	xlsxPath := filepath.Join(e.Dir, stem+".xlsx")
	truncated, err := writeWorkbook(xlsxPath, b.Sheets)
	if err != nil {
		return files, fmt.Errorf("writing %s: %w", xlsxPath, err)
	}
	xlsx := stat(xlsxPath, FormatXLSX)
	xlsx.Truncated = truncated
	files = append(files, xlsx)

	for _, c := range b.CSV {
		prefix := c.Prefix
		if prefix == "" {
			prefix = string(b.Kind)
		}
		csvPath := filepath.Join(e.Dir, Stem(prefix, b.Project, at)+".csv")
		if err := writeCSVFile(csvPath, c.Table); err != nil {
			return files, fmt.Errorf("writing %s: %w", csvPath, err)
		}
		files = append(files, stat(csvPath, FormatCSV))
	}

	return files, nil
}

func stat(path string, format Format) File {
	f := File{Path: path, Format: format}
	if info, err := os.Stat(path); err == nil {
		f.Size = info.Size()
	}
	return f
}

// safeName keeps a project key usable as part of a file name.
func safeName(s string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(s)
}
