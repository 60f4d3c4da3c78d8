package tableparse

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"folharh/internal/domain"
)

// UTF-8 BOM bytes, common in Excel-exported CSVs.
var bom = []byte{0xEF, 0xBB, 0xBF}

// Parse turns an uploaded spreadsheet into a RawTable: the first row becomes
// the header, every following row is cell-aligned data. Only the header+rows
// contract matters to the import pipeline; formatting is discarded.
func Parse(data []byte, fileType domain.FileType) (domain.RawTable, error) {
	switch fileType {
	case domain.FileTypeCSV:
		return parseCSV(data)
	case domain.FileTypeXLSX:
		return parseXLSX(data)
	default:
		return domain.RawTable{}, domain.ErrUnsupportedFileType
	}
}

func parseCSV(data []byte) (domain.RawTable, error) {
	data = bytes.TrimPrefix(data, bom)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1 // ragged rows are aligned later by header position

	records, err := r.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %v", domain.ErrTableParse, err)
	}
	if len(records) == 0 || emptyRow(records[0]) {
		return domain.RawTable{}, domain.ErrEmptyTable
	}

	table := domain.RawTable{Headers: trimCells(records[0])}
	for _, rec := range records[1:] {
		if emptyRow(rec) {
			continue
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

func parseXLSX(data []byte) (domain.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %v", domain.ErrTableParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.RawTable{}, domain.ErrEmptyTable
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %v", domain.ErrTableParse, err)
	}
	if len(rows) == 0 || emptyRow(rows[0]) {
		return domain.RawTable{}, domain.ErrEmptyTable
	}

	table := domain.RawTable{Headers: trimCells(rows[0])}
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// detectDelimiter picks ';' when the first line carries more semicolons than
// commas. Brazilian Excel exports use ';' because ',' is the decimal mark.
func detectDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
