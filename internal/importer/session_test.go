package importer_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folharh/internal/domain"
	"folharh/internal/importer"
)

func completeMapping() importer.ColumnMapping {
	return importer.ColumnMapping{
		"Nome":       importer.FieldName,
		"CPF":        importer.FieldCPF,
		"Nascimento": importer.FieldBirthDate,
		"Cargo":      importer.FieldJobTitle,
		"Salário":    importer.FieldSalary,
	}
}

func sessionAtPreview(t *testing.T) *importer.Session {
	t.Helper()
	s := importer.NewSession(uuid.New(), uuid.New())
	require.NoError(t, s.AttachTable(domain.RawTable{
		Headers: []string{"Nome", "CPF", "Nascimento", "Cargo", "Salário"},
		Rows:    [][]string{{"Ana", "529.982.247-25", "15/03/1990", "Dev", "1.000,00"}},
	}, uuid.New()))
	require.NoError(t, s.SetMapping(completeMapping()))
	return s
}

func TestSession_HappyPath(t *testing.T) {
	s := importer.NewSession(uuid.New(), uuid.New())
	assert.Equal(t, importer.StageUpload, s.Stage)

	require.NoError(t, s.AttachTable(domain.RawTable{
		Headers: []string{"Nome", "CPF"},
		Rows:    [][]string{{"Ana", "123"}},
	}, uuid.New()))
	assert.Equal(t, importer.StageMapping, s.Stage)
	assert.NotEmpty(t, s.Mapping, "suggested mapping is computed on attach")

	require.NoError(t, s.SetMapping(completeMapping()))
	assert.Equal(t, importer.StagePreview, s.Stage)

	require.NoError(t, s.BeginProcessing(importer.ImportOptions{}))
	assert.Equal(t, importer.StageProcessing, s.Stage)

	results := &importer.ImportResults{TotalRows: 1}
	require.NoError(t, s.CompleteProcessing(results))
	assert.Equal(t, importer.StageResults, s.Stage)
	assert.Same(t, results, s.Results)
}

func TestSession_EmptyTableStaysInUpload(t *testing.T) {
	s := importer.NewSession(uuid.New(), uuid.New())
	err := s.AttachTable(domain.RawTable{}, uuid.New())
	assert.ErrorIs(t, err, domain.ErrEmptyTable)
	assert.Equal(t, importer.StageUpload, s.Stage)
}

func TestSession_IncompleteMappingRefused(t *testing.T) {
	s := importer.NewSession(uuid.New(), uuid.New())
	require.NoError(t, s.AttachTable(domain.RawTable{Headers: []string{"Nome"}}, uuid.New()))

	err := s.SetMapping(importer.ColumnMapping{"Nome": importer.FieldName})
	assert.ErrorIs(t, err, domain.ErrMappingIncomplete)
	assert.Equal(t, importer.StageMapping, s.Stage)
}

func TestSession_RemappingFromPreview(t *testing.T) {
	s := sessionAtPreview(t)
	require.NoError(t, s.SetMapping(completeMapping()))
	assert.Equal(t, importer.StagePreview, s.Stage)
}

func TestSession_ErrorRowsBlockProcessing(t *testing.T) {
	s := sessionAtPreview(t)
	s.Preview = []importer.ValidationResult{{Row: 2, Status: importer.RowError}}

	err := s.BeginProcessing(importer.ImportOptions{})
	assert.ErrorIs(t, err, domain.ErrBlockingErrors)
	assert.Equal(t, importer.StagePreview, s.Stage)

	require.NoError(t, s.BeginProcessing(importer.ImportOptions{IgnoreErrors: true}))
	assert.Equal(t, importer.StageProcessing, s.Stage)
}

func TestSession_DuplicatesNeverBlock(t *testing.T) {
	s := sessionAtPreview(t)
	s.Preview = []importer.ValidationResult{
		{Row: 2, Status: importer.RowValid, IsDuplicate: true},
		{Row: 3, Status: importer.RowWarning, IsDuplicate: true},
	}
	require.NoError(t, s.BeginProcessing(importer.ImportOptions{
		DuplicateHandling: domain.DuplicateCreateAnyway,
	}))
}

func TestSession_FailureReturnsToPreview(t *testing.T) {
	s := sessionAtPreview(t)
	require.NoError(t, s.BeginProcessing(importer.ImportOptions{}))
	require.NoError(t, s.FailProcessing())
	assert.Equal(t, importer.StagePreview, s.Stage)
	assert.NotEmpty(t, s.Table.Headers, "parsed table survives a processing failure")
}

func TestSession_ResetOnlyBeforeProcessing(t *testing.T) {
	s := sessionAtPreview(t)
	require.NoError(t, s.Reset())
	assert.Equal(t, importer.StageUpload, s.Stage)
	assert.Empty(t, s.Table.Headers)
	assert.Nil(t, s.Mapping)

	s2 := sessionAtPreview(t)
	require.NoError(t, s2.BeginProcessing(importer.ImportOptions{}))
	assert.ErrorIs(t, s2.Reset(), domain.ErrIllegalTransition)
}

func TestSession_IllegalTransitions(t *testing.T) {
	s := importer.NewSession(uuid.New(), uuid.New())

	assert.ErrorIs(t, s.SetMapping(completeMapping()), domain.ErrIllegalTransition)
	assert.ErrorIs(t, s.BeginProcessing(importer.ImportOptions{}), domain.ErrIllegalTransition)
	assert.ErrorIs(t, s.CompleteProcessing(nil), domain.ErrIllegalTransition)
	assert.ErrorIs(t, s.FailProcessing(), domain.ErrIllegalTransition)

	require.NoError(t, s.AttachTable(domain.RawTable{Headers: []string{"Nome"}}, uuid.New()))
	assert.ErrorIs(t, s.AttachTable(domain.RawTable{Headers: []string{"Nome"}}, uuid.New()),
		domain.ErrIllegalTransition)
}
