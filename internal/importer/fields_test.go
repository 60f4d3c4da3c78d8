package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"folharh/internal/importer"
)

func TestAutoSuggest(t *testing.T) {
	headers := []string{
		"Nome Completo",
		"CPF do Funcionário",
		"Data de Nascimento",
		"Cargo",
		"Salário Base",
		"E-mail",
		"Estado Civil",
		"Telefone",
		"Data de Admissão",
		"Observações",
	}
	mapping := importer.AutoSuggest(headers)

	assert.Equal(t, importer.FieldName, mapping["Nome Completo"])
	assert.Equal(t, importer.FieldCPF, mapping["CPF do Funcionário"])
	assert.Equal(t, importer.FieldBirthDate, mapping["Data de Nascimento"])
	assert.Equal(t, importer.FieldJobTitle, mapping["Cargo"])
	assert.Equal(t, importer.FieldSalary, mapping["Salário Base"])
	assert.Equal(t, importer.FieldEmail, mapping["E-mail"])
	assert.Equal(t, importer.FieldMaritalStatus, mapping["Estado Civil"])
	assert.Equal(t, importer.FieldPhone, mapping["Telefone"])
	assert.Equal(t, importer.FieldAdmissionDate, mapping["Data de Admissão"])
	assert.Equal(t, importer.FieldIgnore, mapping["Observações"])
}

func TestAutoSuggest_CaseInsensitive(t *testing.T) {
	mapping := importer.AutoSuggest([]string{"NOME", "cpf", "NASCIMENTO"})
	assert.Equal(t, importer.FieldName, mapping["NOME"])
	assert.Equal(t, importer.FieldCPF, mapping["cpf"])
	assert.Equal(t, importer.FieldBirthDate, mapping["NASCIMENTO"])
}

func TestAutoSuggest_Deterministic(t *testing.T) {
	headers := []string{"Nome", "CPF", "Salario"}
	first := importer.AutoSuggest(headers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, importer.AutoSuggest(headers))
	}
}

func TestIsComplete(t *testing.T) {
	complete := importer.ColumnMapping{
		"a": importer.FieldName,
		"b": importer.FieldCPF,
		"c": importer.FieldBirthDate,
		"d": importer.FieldJobTitle,
		"e": importer.FieldSalary,
	}
	assert.True(t, importer.IsComplete(complete))

	incomplete := importer.ColumnMapping{
		"a": importer.FieldName,
		"b": importer.FieldCPF,
	}
	assert.False(t, importer.IsComplete(incomplete))
	assert.ElementsMatch(t,
		[]importer.SystemField{importer.FieldBirthDate, importer.FieldJobTitle, importer.FieldSalary},
		importer.MissingRequired(incomplete))
}

func TestIsComplete_OptionalNotRequired(t *testing.T) {
	// optional fields unmapped must not block completeness
	m := importer.ColumnMapping{
		"a": importer.FieldName,
		"b": importer.FieldCPF,
		"c": importer.FieldBirthDate,
		"d": importer.FieldJobTitle,
		"e": importer.FieldSalary,
		"f": importer.FieldIgnore,
	}
	assert.True(t, importer.IsComplete(m))
}
