// Package ingestion turns uploaded EDC extracts into raw tables ready for
// mapping discovery and transformation. It understands CSV and XLSX
// uploads, detects the header row, and can preview the discovered column
// mappings before a pipeline run commits anything.
package ingestion

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/mapping"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned when an uploaded file is not supported.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

// Service parses uploads into raw tables.
type Service struct {
	discoverer *mapping.Discoverer
}

// NewService creates an ingestion service. A nil discoverer gets the stock
// discovery strategies with no external suggester.
func NewService(discoverer *mapping.Discoverer) *Service {
	if discoverer == nil {
		discoverer = mapping.NewDiscoverer(nil)
	}
	return &Service{discoverer: discoverer}
}

// Request describes one uploaded source table.
type Request struct {
	TableName      string
	FileName       string
	HeaderRowIndex *int
	Data           io.Reader
}

// PreviewRequest describes a preview of mapping discovery prior to a run.
type PreviewRequest struct {
	Request
	Domain domain.Code
	Limit  int
}

// PreviewHeader summarizes one source column and the target it would map to.
type PreviewHeader struct {
	Name           string  `json:"name"`
	OriginalLabel  string  `json:"originalLabel"`
	TargetVariable string  `json:"targetVariable,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	Strategy       string  `json:"strategy,omitempty"`
}

// HeaderCandidate represents a potential header row option.
type HeaderCandidate struct {
	Index   int      `json:"index"`
	Values  []string `json:"values"`
	Current bool     `json:"current"`
}

// PreviewResult returns preview metadata back to clients.
type PreviewResult struct {
	TotalRows         int                 `json:"totalRows"`
	Headers           []PreviewHeader     `json:"headers"`
	Rows              []map[string]string `json:"rows"`
	UnmappedVariables []string            `json:"unmappedVariables"`
	HeaderCandidates  []HeaderCandidate   `json:"headerCandidates"`
}

type tableData struct {
	headers        []string
	rawHeaders     []string
	rows           [][]string
	headerRowIndex int
}

// Parse reads an uploaded file into a raw table. Column names keep their
// original spelling; the raw table indexes them case-insensitively.
func (s *Service) Parse(req Request) (domain.RawTable, error) {
	if req.Data == nil {
		return domain.RawTable{}, errors.New("data reader is required")
	}
	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return domain.RawTable{}, errors.New("file is empty")
	}

	table, _, err := parseTable(req.FileName, payload, req.HeaderRowIndex)
	if err != nil {
		return domain.RawTable{}, err
	}
	if len(table.headers) == 0 {
		return domain.RawTable{}, errors.New("no header row detected")
	}

	name := req.TableName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(req.FileName), filepath.Ext(req.FileName))
	}
	return domain.NewRawTable(name, table.headers, table.rows), nil
}

// Preview parses the upload and runs mapping discovery against the target
// domain without transforming anything, so a user can inspect and correct
// the mapping before the run.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (PreviewResult, error) {
	result := PreviewResult{
		Headers:           []PreviewHeader{},
		Rows:              []map[string]string{},
		UnmappedVariables: []string{},
		HeaderCandidates:  []HeaderCandidate{},
	}

	if req.Data == nil {
		return result, errors.New("data reader is required")
	}
	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return result, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return result, errors.New("file is empty")
	}

	table, records, err := parseTable(req.FileName, payload, req.HeaderRowIndex)
	if err != nil {
		return result, err
	}
	result.HeaderCandidates = buildHeaderCandidates(records, 10, table.headerRowIndex)
	if len(table.headers) == 0 {
		return result, errors.New("no header row detected")
	}

	cat, ok := domain.CatalogueFor(req.Domain)
	if !ok {
		return result, fmt.Errorf("unknown target domain %q", req.Domain)
	}

	raw := domain.NewRawTable(req.TableName, table.headers, table.rows)
	spec := s.discoverer.Discover(ctx, raw, cat).Sorted()

	byColumn := make(map[string]domain.ColumnMapping, len(spec.Mappings))
	for _, m := range spec.Mappings {
		byColumn[strings.ToUpper(strings.TrimSpace(m.SourceColumn))] = m
	}

	for idx, header := range table.headers {
		ph := PreviewHeader{Name: header}
		if idx < len(table.rawHeaders) {
			ph.OriginalLabel = table.rawHeaders[idx]
		}
		if m, ok := byColumn[strings.ToUpper(strings.TrimSpace(header))]; ok {
			ph.TargetVariable = m.TargetVariable
			ph.Confidence = m.Confidence
			ph.Strategy = string(m.Strategy)
		}
		result.Headers = append(result.Headers, ph)
	}

	result.TotalRows = len(table.rows)
	result.UnmappedVariables = spec.UnmappedVariables

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	for rowIdx, row := range table.rows {
		if rowIdx >= limit {
			break
		}
		values := make(map[string]string, len(table.headers))
		for colIdx, header := range table.headers {
			if colIdx < len(row) {
				values[header] = strings.TrimSpace(row[colIdx])
			} else {
				values[header] = ""
			}
		}
		result.Rows = append(result.Rows, values)
	}

	return result, nil
}

func parseTable(fileName string, payload []byte, headerRowIndex *int) (tableData, [][]string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return parseCSV(payload, headerRowIndex)
	case ".xlsx":
		return parseExcel(payload, headerRowIndex)
	default:
		return tableData{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(payload []byte, headerRowIndex *int) (tableData, [][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return tableData{}, nil, fmt.Errorf("failed to read csv: %w", err)
	}

	table, err := normalizeTable(records, headerRowIndex)
	if err != nil {
		return tableData{}, nil, err
	}
	return table, records, nil
}

func parseExcel(payload []byte, headerRowIndex *int) (tableData, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return tableData{}, nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return tableData{}, nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return tableData{}, nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	table, err := normalizeTable(rows, headerRowIndex)
	if err != nil {
		return tableData{}, nil, err
	}
	return table, rows, nil
}

func normalizeTable(records [][]string, headerRowIndex *int) (tableData, error) {
	if len(records) == 0 {
		return tableData{}, errors.New("no rows found in file")
	}

	var headerRow []string
	var dataRows [][]string
	headerIndex := -1

	if headerRowIndex != nil {
		if *headerRowIndex < 0 || *headerRowIndex >= len(records) {
			return tableData{}, fmt.Errorf("header row index %d out of range", *headerRowIndex)
		}
		selected := cleanRow(records[*headerRowIndex])
		if len(selected) == 0 {
			return tableData{}, fmt.Errorf("selected header row %d is empty", *headerRowIndex+1)
		}
		headerRow = records[*headerRowIndex]
		headerIndex = *headerRowIndex
		for idx := *headerRowIndex + 1; idx < len(records); idx++ {
			row := records[idx]
			if len(cleanRow(row)) == 0 {
				continue
			}
			dataRows = append(dataRows, row)
		}
	} else {
		for idx, row := range records {
			if len(cleanRow(row)) == 0 {
				continue
			}
			if headerRow == nil {
				headerRow = row
				headerIndex = idx
				continue
			}
			dataRows = append(dataRows, row)
		}
	}

	if headerRow == nil {
		return tableData{}, errors.New("header row could not be detected")
	}

	headers := sanitizeHeaders(headerRow)
	rawHeaders := make([]string, len(headerRow))
	for i, value := range headerRow {
		rawHeaders[i] = strings.TrimSpace(value)
	}

	for i := range dataRows {
		dataRows[i] = padRow(dataRows[i], len(headers))
	}

	dataRows = filterEmptyRows(dataRows)

	return tableData{
		headers:        headers,
		rawHeaders:     rawHeaders,
		rows:           dataRows,
		headerRowIndex: headerIndex,
	}, nil
}

func buildHeaderCandidates(records [][]string, limit int, currentIndex int) []HeaderCandidate {
	if limit <= 0 {
		limit = 10
	}

	candidates := make([]HeaderCandidate, 0, limit)
	for idx, row := range records {
		if len(cleanRow(row)) == 0 {
			continue
		}

		values := make([]string, len(row))
		for i, cell := range row {
			values[i] = strings.TrimSpace(cell)
		}

		candidates = append(candidates, HeaderCandidate{
			Index:   idx,
			Values:  values,
			Current: idx == currentIndex,
		})

		if len(candidates) >= limit {
			break
		}
	}

	return candidates
}

func cleanRow(row []string) []string {
	var cleaned []string
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			cleaned = append(cleaned, cell)
		}
	}
	return cleaned
}

// sanitizeHeaders trims and de-collides column names. Original spelling is
// kept aside for display; the mapping strategies work on these cleaned
// names.
func sanitizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int)

	for idx, value := range raw {
		name := strings.TrimSpace(value)
		name = strings.ReplaceAll(name, " ", "_")
		name = strings.ReplaceAll(name, ".", "_")
		name = strings.Trim(name, "_")
		if name == "" {
			name = fmt.Sprintf("column_%d", idx+1)
		}

		base := name
		count := seen[strings.ToUpper(base)]
		if count > 0 {
			name = fmt.Sprintf("%s_%d", base, count+1)
		}
		seen[strings.ToUpper(base)] = count + 1

		headers[idx] = name
	}

	return headers
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	for i := len(row); i < length; i++ {
		padded[i] = ""
	}
	return padded
}

func filterEmptyRows(rows [][]string) [][]string {
	var filtered [][]string
	for _, row := range rows {
		keep := false
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				keep = true
				break
			}
		}
		if keep {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
