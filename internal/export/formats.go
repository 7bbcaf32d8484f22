package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet every new workbook starts with.
const defaultSheet = "Sheet1"

// writeJSONFile writes v as indented JSON without HTML escaping.
func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// writeWorkbook writes one sheet per non-empty table. It returns the number
// of cells cut down to the workbook cell limit.
func writeWorkbook(path string, tables []Table) (int, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	written, truncated := 0, 0
	for _, t := range tables {
		if len(t.Rows) == 0 {
			continue
		}
		if written == 0 {
			if err := wb.SetSheetName(defaultSheet, t.Name); err != nil {
				return truncated, fmt.Errorf("naming sheet %q: %w", t.Name, err)
			}
		} else if _, err := wb.NewSheet(t.Name); err != nil {
			return truncated, fmt.Errorf("creating sheet %q: %w", t.Name, err)
		}
		n, err := writeSheet(wb, t)
		truncated += n
		if err != nil {
			return truncated, err
		}
		written++
	}

	wb.SetActiveSheet(0)
	return truncated, wb.SaveAs(path)
}

func writeSheet(wb *excelize.File, t Table) (int, error) {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := wb.SetSheetRow(t.Name, "A1", &header); err != nil {
		return 0, fmt.Errorf("writing header of sheet %q: %w", t.Name, err)
	}

	truncated := 0
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return truncated, err
		}
		fitted, n := fitRow(row)
		truncated += n
		if err := wb.SetSheetRow(t.Name, cell, &fitted); err != nil {
			return truncated, fmt.Errorf("writing row %d of sheet %q: %w", i+1, t.Name, err)
		}
	}
	return truncated, nil
}

// fitRow returns a copy of row with every string cut to
// excelize.TotalCellChars characters, and how many were cut. The table
// itself is left intact for the CSV writer.
func fitRow(row []any) ([]any, int) {
	out := make([]any, len(row))
	n := 0
	for i, v := range row {
		out[i] = v
		s, ok := v.(string)
		if !ok || utf8.RuneCountInString(s) <= excelize.TotalCellChars {
			continue
		}
		out[i] = string([]rune(s)[:excelize.TotalCellChars])
		n++
	}
	return out, n
}

// writeCSVFile writes a header row and one row per record.
func writeCSVFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = cellString(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return f.Close()
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
