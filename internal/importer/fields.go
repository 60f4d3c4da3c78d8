package importer

import "strings"

// SystemField is one of the fixed roster fields a spreadsheet column can map to.
type SystemField string

const (
	FieldName          SystemField = "name"
	FieldCPF           SystemField = "cpf"
	FieldBirthDate     SystemField = "birth_date"
	FieldJobTitle      SystemField = "job_title"
	FieldSalary        SystemField = "salary"
	FieldEmail         SystemField = "email"
	FieldMaritalStatus SystemField = "marital_status"
	FieldPhone         SystemField = "phone"
	FieldAdmissionDate SystemField = "admission_date"

	// FieldIgnore marks a source column that is carried through unmapped.
	FieldIgnore SystemField = "ignore"
)

// RequiredFields must all be mapped before the session can leave the mapping stage.
var RequiredFields = []SystemField{
	FieldName, FieldCPF, FieldBirthDate, FieldJobTitle, FieldSalary,
}

// OptionalFields are mapped when present and validated leniently.
var OptionalFields = []SystemField{
	FieldEmail, FieldMaritalStatus, FieldPhone, FieldAdmissionDate,
}

// ColumnMapping maps a source header to a system field (or FieldIgnore).
type ColumnMapping map[string]SystemField

// headerKeywords drives AutoSuggest. Checked in order; the first keyword
// contained in the lower-cased header wins. Accented and plain spellings are
// both listed because exports disagree on encoding.
var headerKeywords = []struct {
	keyword string
	field   SystemField
}{
	{"cpf", FieldCPF},
	{"nascimento", FieldBirthDate},
	{"admiss", FieldAdmissionDate},
	{"cargo", FieldJobTitle},
	{"função", FieldJobTitle},
	{"funcao", FieldJobTitle},
	{"salário", FieldSalary},
	{"salario", FieldSalary},
	{"remunera", FieldSalary},
	{"mail", FieldEmail},
	{"civil", FieldMaritalStatus},
	{"telefone", FieldPhone},
	{"celular", FieldPhone},
	{"fone", FieldPhone},
	{"nome", FieldName},
}

// AutoSuggest proposes a mapping for the given headers by case-insensitive
// substring match against the keyword table. Unmatched headers map to
// FieldIgnore. Pure and deterministic; the operator can override any entry.
func AutoSuggest(headers []string) ColumnMapping {
	mapping := make(ColumnMapping, len(headers))
	for _, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		mapping[h] = FieldIgnore
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw.keyword) {
				mapping[h] = kw.field
				break
			}
		}
	}
	return mapping
}

// IsKnownField reports whether f is a mappable system field or FieldIgnore.
func IsKnownField(f SystemField) bool {
	if f == FieldIgnore {
		return true
	}
	for _, known := range RequiredFields {
		if f == known {
			return true
		}
	}
	for _, known := range OptionalFields {
		if f == known {
			return true
		}
	}
	return false
}

// IsComplete reports whether every required system field appears among the
// mapping's targets.
func IsComplete(mapping ColumnMapping) bool {
	return len(MissingRequired(mapping)) == 0
}

// MissingRequired returns the required fields absent from the mapping's
// targets, in RequiredFields order.
func MissingRequired(mapping ColumnMapping) []SystemField {
	mapped := make(map[SystemField]bool, len(mapping))
	for _, f := range mapping {
		mapped[f] = true
	}
	var missing []SystemField
	for _, f := range RequiredFields {
		if !mapped[f] {
			missing = append(missing, f)
		}
	}
	return missing
}
