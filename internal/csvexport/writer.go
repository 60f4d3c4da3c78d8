package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"folharh/internal/importer"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// fixedColumns precede the original source columns in the error report.
var fixedColumns = []string{"Linha", "Nome", "CPF", "Erros"}

// Writer exports the failed rows of an import run as a flat CSV table: one
// row per failed input row, with the original row number, the concatenated
// issue messages, and the original cell values under their source headers.
type Writer struct {
	csv     *csv.Writer
	headers []string
}

// NewWriter creates a Writer that emits the fixed columns followed by the
// given source headers.
func NewWriter(w io.Writer, sourceHeaders []string) *Writer {
	return &Writer{csv: csv.NewWriter(w), headers: sourceHeaders}
}

// WriteHeader writes the report header row.
func (w *Writer) WriteHeader() error {
	row := make([]string, 0, len(fixedColumns)+len(w.headers))
	row = append(row, fixedColumns...)
	row = append(row, w.headers...)
	return w.csv.Write(row)
}

// WriteOutcomes converts failed row outcomes to CSV rows and writes them.
func (w *Writer) WriteOutcomes(outcomes []importer.RowOutcome) error {
	for i := range outcomes {
		if err := w.csv.Write(w.outcomeToRow(&outcomes[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func (w *Writer) outcomeToRow(out *importer.RowOutcome) []string {
	row := make([]string, 0, len(fixedColumns)+len(w.headers))
	row = append(row,
		strconv.Itoa(out.Row),
		out.Name,
		out.CPF,
		strings.Join(out.Messages, "; "),
	)
	for _, h := range w.headers {
		row = append(row, out.Raw[h])
	}
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an upload name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the error report download.
// Format: erros_{sanitized_upload_name}_{YYYY-MM-DD}.csv
func BuildFilename(uploadName string) string {
	sanitized := SanitizeFilename(strings.TrimSuffix(uploadName, ".csv"))
	sanitized = SanitizeFilename(strings.TrimSuffix(sanitized, "_xlsx"))
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("erros_%s_%s.csv", sanitized, date)
}
