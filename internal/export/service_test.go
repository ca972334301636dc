package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/clinforge/sdtm/internal/domain"

	"github.com/xuri/excelize/v2"
)

func sampleTable() domain.Table {
	return domain.Table{
		Domain:  domain.DomainDM,
		Columns: []string{"STUDYID", "USUBJID", "SEX", "AGE"},
		Records: []domain.Record{
			{Values: map[string]any{"STUDYID": "ST01", "USUBJID": "ST01-001", "SEX": "M", "AGE": float64(44)}},
			{Values: map[string]any{"STUDYID": "ST01", "USUBJID": "ST01-002", "SEX": "F", "AGE": nil}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		raw  string
		want Format
		ok   bool
	}{
		{"", FormatCSV, true},
		{"csv", FormatCSV, true},
		{"CSV", FormatCSV, true},
		{"xlsx", FormatXLSX, true},
		{"sas", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.raw)
		if tc.ok != (err == nil) || got != tc.want {
			t.Errorf("ParseFormat(%q) = (%q, %v)", tc.raw, got, err)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTable()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-reading output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus two records", len(rows))
	}
	if rows[0][0] != "STUDYID" || rows[0][3] != "AGE" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][3] != "44" {
		t.Errorf("numeric value rendered as %q", rows[1][3])
	}
	if rows[2][3] != "" {
		t.Errorf("null value rendered as %q", rows[2][3])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleTable()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("re-opening workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("DM")
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][1] != "USUBJID" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][1] != "ST01-001" {
		t.Errorf("first record = %v", rows[1])
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{float64(42), "42"},
		{float64(1.5), "1.5"},
		{true, "true"},
		{[]byte("raw"), "raw"},
	}
	for _, tc := range cases {
		if got := formatValue(tc.in); got != tc.want {
			t.Errorf("formatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
