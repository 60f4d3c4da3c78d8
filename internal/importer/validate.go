package importer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"folharh/internal/domain"
	"folharh/internal/normalize"
)

// ApplyMapping projects a parsed table through a column mapping into row
// inputs. Row numbers are 1-based file positions; the header occupies row 1.
func ApplyMapping(table domain.RawTable, mapping ColumnMapping) []RowInput {
	inputs := make([]RowInput, 0, len(table.Rows))
	for i, cells := range table.Rows {
		in := RowInput{
			Row:    i + 2,
			Values: make(map[SystemField]string),
			Raw:    make(map[string]string, len(table.Headers)),
		}
		for j, header := range table.Headers {
			cell := ""
			if j < len(cells) {
				cell = cells[j]
			}
			in.Raw[header] = cell
			if field, ok := mapping[header]; ok && field != FieldIgnore {
				// last-wins when two headers map to the same field
				in.Values[field] = cell
			}
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// requiredLabels names required fields in operator-facing messages.
var requiredLabels = map[SystemField]string{
	FieldName:      "nome",
	FieldCPF:       "CPF",
	FieldBirthDate: "data de nascimento",
	FieldJobTitle:  "cargo",
	FieldSalary:    "salário",
}

// ValidateRow applies the per-field rules to one mapped row and classifies it.
// Duplicate fields are left unset; the resolver fills them in later. The rules
// run in a fixed order and every failure appends an Issue, so one row can
// carry several.
func ValidateRow(in RowInput, strict bool) ValidationResult {
	result := ValidationResult{Row: in.Row, Input: in}

	for _, f := range RequiredFields {
		if strings.TrimSpace(in.Values[f]) == "" {
			result.Issues = append(result.Issues, Issue{
				Field:    string(f),
				Severity: SeverityError,
				Message:  fmt.Sprintf("campo obrigatório ausente: %s", requiredLabels[f]),
			})
		}
	}

	result.Data.Name = strings.TrimSpace(in.Values[FieldName])
	result.Data.JobTitle = strings.TrimSpace(in.Values[FieldJobTitle])
	result.Data.Email = strings.TrimSpace(in.Values[FieldEmail])
	result.Data.Phone = strings.TrimSpace(in.Values[FieldPhone])

	if raw := strings.TrimSpace(in.Values[FieldCPF]); raw != "" {
		result.Data.CPF = normalize.NormalizeCPF(raw)
		if !normalize.ValidateCPF(raw) {
			result.Issues = append(result.Issues, Issue{
				Field:    string(FieldCPF),
				Severity: SeverityError,
				Message:  "CPF inválido",
			})
		}
	}

	if raw := strings.TrimSpace(in.Values[FieldBirthDate]); raw != "" {
		birth, err := normalize.ParseDate(raw)
		if err != nil {
			result.Issues = append(result.Issues, Issue{
				Field:    string(FieldBirthDate),
				Severity: SeverityError,
				Message:  "data de nascimento inválida (use DD/MM/AAAA)",
			})
		} else {
			result.Data.BirthDate = birth
			result.Data.Age = normalize.Age(birth, time.Now().UTC())
		}
	}

	if raw := strings.TrimSpace(in.Values[FieldSalary]); raw != "" {
		salary := normalize.ParseNumber(raw)
		if math.IsNaN(salary) || salary <= 0 {
			result.Issues = append(result.Issues, Issue{
				Field:    string(FieldSalary),
				Severity: SeverityError,
				Message:  "salário inválido ou não positivo",
			})
		} else {
			result.Data.Salary = salary
		}
	}

	if raw := strings.TrimSpace(in.Values[FieldMaritalStatus]); raw != "" {
		status := domain.MaritalStatus(strings.ToLower(raw))
		if domain.ValidMaritalStatuses[status] {
			result.Data.MaritalStatus = status
		} else {
			// invalid optional enum downgrades to warning; the value is dropped
			result.Issues = append(result.Issues, Issue{
				Field:    string(FieldMaritalStatus),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("estado civil desconhecido: %q (valor descartado)", raw),
			})
		}
	}

	if raw := strings.TrimSpace(in.Values[FieldAdmissionDate]); raw != "" {
		if adm, err := normalize.ParseDate(raw); err == nil {
			result.Data.AdmissionDate = &adm
		} else {
			result.Issues = append(result.Issues, Issue{
				Field:    string(FieldAdmissionDate),
				Severity: SeverityWarning,
				Message:  "data de admissão inválida (valor descartado)",
			})
		}
	}

	if strict {
		for _, f := range OptionalFields {
			if strings.TrimSpace(in.Values[f]) == "" {
				result.Issues = append(result.Issues, Issue{
					Field:    string(f),
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("campo opcional ausente: %s", f),
				})
			}
		}
	}

	result.Status = deriveStatus(result.Issues)
	return result
}

func deriveStatus(issues []Issue) RowStatus {
	status := RowValid
	for _, is := range issues {
		if is.Severity == SeverityError {
			return RowError
		}
		status = RowWarning
	}
	return status
}
