package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tabpulse/internal/errors"
	"tabpulse/pkg/contracts/domain"
)

// ParseFile reads a tabular file into a Dataset, dispatching on extension.
// Excel workbooks (.xlsx, .xlsm) are read from their first sheet; .tsv uses
// a tab delimiter; everything else is treated as comma-separated text.
func ParseFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open input file %s", path), err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ParseExcel(f)
	case ".tsv":
		return ParseDelimited(f, '\t')
	default:
		return ParseCSV(f)
	}
}

// ParseCSV reads comma-separated text with a header row into a Dataset.
func ParseCSV(r io.Reader) (*domain.Dataset, error) {
	return ParseDelimited(r, ',')
}

// ParseDelimited reads delimited text into a Dataset. The first record is
// the header row; fully empty lines are skipped; each cell goes through the
// opportunistic type conversion in convertCell. A malformed record (for
// example broken quoting) aborts the parse with the csv error preserved.
func ParseDelimited(r io.Reader, comma rune) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	headerRecord, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("input has no header row", err)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read header row", err)
	}

	headers := make([]string, len(headerRecord))
	for i, h := range headerRecord {
		headers[i] = strings.TrimSpace(h)
	}

	ds := &domain.Dataset{Headers: headers}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("malformed record", err)
		}
		if isEmptyRecord(record) {
			continue
		}
		ds.Rows = append(ds.Rows, buildRow(headers, record))
	}

	return ds, nil
}

// ParseExcel reads the first sheet of an Excel workbook into a Dataset.
// The first non-empty row is the header row.
func ParseExcel(r io.Reader) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}

	var headers []string
	var start int
	for i, row := range rows {
		if !isEmptyRecord(row) {
			headers = make([]string, len(row))
			for j, h := range row {
				headers[j] = strings.TrimSpace(h)
			}
			start = i + 1
			break
		}
	}
	if headers == nil {
		return nil, errors.NewParsingError("sheet has no header row", nil)
	}

	ds := &domain.Dataset{Headers: headers}
	for _, row := range rows[start:] {
		if isEmptyRecord(row) {
			continue
		}
		ds.Rows = append(ds.Rows, buildRow(headers, row))
	}

	return ds, nil
}

// buildRow converts one raw record into a Row. Records shorter than the
// header are padded with missing cells; extra trailing fields are dropped.
func buildRow(headers []string, record []string) domain.Row {
	row := make(domain.Row, len(headers))
	for i, header := range headers {
		var cell string
		if i < len(record) {
			cell = record[i]
		}
		row[header] = convertCell(cell)
	}
	return row
}

// convertCell applies the parser's opportunistic typing: empty or
// whitespace-only cells are missing, unambiguous booleans and numbers are
// converted, and everything else stays a string. Strings with a leading
// zero followed by more digits are kept as strings so identifiers such as
// postal codes survive the round trip.
func convertCell(raw string) domain.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.MissingValue()
	}

	switch s {
	case "true", "TRUE":
		return domain.BoolValue(true)
	case "false", "FALSE":
		return domain.BoolValue(false)
	}

	if n, ok := parseNumber(s); ok {
		return domain.NumberValue(n)
	}

	return domain.StringValue(s)
}

// parseNumber reports whether s is an unambiguous numeric literal.
func parseNumber(s string) (float64, bool) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	// ParseFloat accepts forms like "nan" and "0x1p2" that no spreadsheet
	// means as numbers; require the literal to start with a digit, sign,
	// or decimal point and contain no hex marker.
	if strings.ContainsAny(s, "xXpP") {
		return 0, false
	}
	c := s[0]
	if c != '-' && c != '+' && c != '.' && (c < '0' || c > '9') {
		return 0, false
	}
	return n, true
}

// isEmptyRecord reports whether every field is blank.
func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
