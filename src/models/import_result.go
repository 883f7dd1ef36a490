package models

// SkippedTransaction records one input row that did not become a persisted
// record, with the raw row text and the reason it was excluded.
type SkippedTransaction struct {
	Data   string `json:"data"`
	Reason string `json:"reason"`
}

// ImportDetails breaks the outcome down per category. Every input row is
// accounted for exactly once: imported, duplicate, invalid or intentionally
// skipped.
type ImportDetails struct {
	TotalTransactions     int                  `json:"total_transactions"`
	DuplicateTransactions int                  `json:"duplicate_transactions"`
	InvalidTransactions   int                  `json:"invalid_transactions"`
	SkippedTransactions   []SkippedTransaction `json:"skipped_transactions"`
}

// ImportResult is the aggregate outcome of one import operation and the
// only thing callers see.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []string      `json:"errors"`
	Details  ImportDetails `json:"details"`
}

// NewImportResult returns an empty result with non-nil slices so the JSON
// encoding never emits null.
func NewImportResult() *ImportResult {
	return &ImportResult{
		Errors: []string{},
		Details: ImportDetails{
			SkippedTransactions: []SkippedTransaction{},
		},
	}
}

// RecordImported counts one persisted row.
func (r *ImportResult) RecordImported() {
	r.Imported++
	r.Details.TotalTransactions++
}

// RecordDuplicate counts one row skipped by the duplicate policy.
func (r *ImportResult) RecordDuplicate(raw, reason string) {
	r.Skipped++
	r.Details.TotalTransactions++
	r.Details.DuplicateTransactions++
	r.Details.SkippedTransactions = append(r.Details.SkippedTransactions,
		SkippedTransaction{Data: raw, Reason: reason})
}

// RecordSkipped counts one row an adapter intentionally excluded.
func (r *ImportResult) RecordSkipped(raw, reason string) {
	r.Skipped++
	r.Details.TotalTransactions++
	r.Details.SkippedTransactions = append(r.Details.SkippedTransactions,
		SkippedTransaction{Data: raw, Reason: reason})
}

// RecordInvalid counts one row excluded by a parse, validation or
// persistence error.
func (r *ImportResult) RecordInvalid(raw, reason string) {
	r.Details.TotalTransactions++
	r.Details.InvalidTransactions++
	r.Errors = append(r.Errors, reason)
	r.Details.SkippedTransactions = append(r.Details.SkippedTransactions,
		SkippedTransaction{Data: raw, Reason: reason})
}
