// Package export renders canonical domain tables for download, either as
// CSV or as a single-sheet XLSX workbook.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/clinforge/sdtm/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Format identifies a supported download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query-string value onto a Format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// MimeType returns the content type for the format.
func (f Format) MimeType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Write renders the table in the given format.
func Write(w io.Writer, table domain.Table, format Format) error {
	if format == FormatXLSX {
		return WriteXLSX(w, table)
	}
	return WriteCSV(w, table)
}

// WriteCSV streams the table as CSV in canonical column order.
func WriteCSV(w io.Writer, table domain.Table) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(table.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(table.Columns))
	for _, rec := range table.Records {
		for i, column := range table.Columns {
			row[i] = formatValue(rec.Get(column))
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("write record row: %w", err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	return nil
}

// WriteXLSX renders the table as a workbook with one sheet named after the
// domain.
func WriteXLSX(w io.Writer, table domain.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := string(table.Domain)
	if sheet == "" {
		sheet = "Sheet1"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	header := make([]any, len(table.Columns))
	for i, column := range table.Columns {
		header[i] = column
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for rowIdx, rec := range table.Records {
		row := make([]any, len(table.Columns))
		for i, column := range table.Columns {
			value := rec.Get(column)
			if value == nil {
				row[i] = ""
				continue
			}
			row[i] = value
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return fmt.Errorf("compute cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write record row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatValue(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float32, float64, int, int32, int64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", toFloat(v)), "0"), ".")
	case []byte:
		return string(v)
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float32:
		return float64(t)
	case float64:
		return t
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}
