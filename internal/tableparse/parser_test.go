package tableparse_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"folharh/internal/domain"
	"folharh/internal/tableparse"
)

func TestParse_CSV(t *testing.T) {
	data := []byte("Nome,CPF,Cargo\nAna,123,Dev\nBia,456,QA\n")

	table, err := tableparse.Parse(data, domain.FileTypeCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"Nome", "CPF", "Cargo"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Ana", "123", "Dev"}, table.Rows[0])
}

func TestParse_CSVWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nome,CPF\nAna,123\n")...)

	table, err := tableparse.Parse(data, domain.FileTypeCSV)
	require.NoError(t, err)
	assert.Equal(t, "Nome", table.Headers[0], "BOM must not leak into the first header")
}

func TestParse_CSVSemicolonDelimiter(t *testing.T) {
	data := []byte("Nome;CPF;Salário\nAna;123;3.500,00\n")

	table, err := tableparse.Parse(data, domain.FileTypeCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nome", "CPF", "Salário"}, table.Headers)
	assert.Equal(t, "3.500,00", table.Rows[0][2])
}

func TestParse_CSVSkipsBlankLines(t *testing.T) {
	data := []byte("Nome,CPF\nAna,123\n,\n\nBia,456\n")

	table, err := tableparse.Parse(data, domain.FileTypeCSV)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestParse_EmptyCSV(t *testing.T) {
	_, err := tableparse.Parse([]byte(""), domain.FileTypeCSV)
	assert.ErrorIs(t, err, domain.ErrEmptyTable)
}

func TestParse_MalformedCSV(t *testing.T) {
	_, err := tableparse.Parse([]byte("a,\"unterminated\nb,c"), domain.FileTypeCSV)
	assert.ErrorIs(t, err, domain.ErrTableParse)
}

func TestParse_UnsupportedType(t *testing.T) {
	_, err := tableparse.Parse([]byte("x"), domain.FileType("pdf"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestParse_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Nome", "CPF"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Ana", "12345678909"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := tableparse.Parse(buf.Bytes(), domain.FileTypeXLSX)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nome", "CPF"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Ana", table.Rows[0][0])
}

func TestParse_MalformedXLSX(t *testing.T) {
	_, err := tableparse.Parse([]byte("not a zip archive"), domain.FileTypeXLSX)
	assert.ErrorIs(t, err, domain.ErrTableParse)
}
