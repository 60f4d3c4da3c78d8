package importer

import (
	"folharh/internal/domain"
)

// ResolveDuplicates annotates every result whose CPF matches an
// already-persisted employee of the target unit, keyed by normalized CPF.
// Rows are annotated regardless of validation status so even error rows show
// their collision in the preview. Results are modified in place and returned.
func ResolveDuplicates(results []ValidationResult, existing map[string]domain.Employee) []ValidationResult {
	for i := range results {
		cpf := results[i].Data.CPF
		if cpf == "" {
			continue
		}
		if emp, ok := existing[cpf]; ok {
			results[i].IsDuplicate = true
			results[i].DuplicateInfo = &DuplicateInfo{
				ExistingEmployeeID: emp.ID,
				DuplicateType:      DuplicateTypeExisting,
			}
		}
	}
	return results
}

// FlagInFileDuplicates marks rows whose CPF repeats an earlier row of the
// same upload. Database collisions take precedence: a row already annotated
// by ResolveDuplicates keeps its annotation. Off by default; enabled through
// ImportOptions.FlagInFileDuplicates.
func FlagInFileDuplicates(results []ValidationResult) []ValidationResult {
	seen := make(map[string]bool, len(results))
	for i := range results {
		cpf := results[i].Data.CPF
		if cpf == "" {
			continue
		}
		if seen[cpf] && !results[i].IsDuplicate {
			results[i].IsDuplicate = true
			results[i].DuplicateInfo = &DuplicateInfo{DuplicateType: DuplicateTypeInFile}
		}
		seen[cpf] = true
	}
	return results
}
