package parsers

import (
	"github.com/wilqq-the/btc-tracker/src/models"
)

// Adapter is the capability one exchange format implements: recognize its
// own header shape, score how well a header set matches, and transform one
// raw row into the canonical schema.
//
// Headers passed to CanAttempt and Confidence are already lower-cased and
// trimmed. ParseRow receives the raw fields and a normalized-header ->
// column-index map.
type Adapter interface {
	Name() string

	// CanAttempt is the hard gate: may this adapter try the file at all.
	CanAttempt(headers []string) bool

	// Confidence scores the header match from 0 to 100. Only consulted
	// when CanAttempt passed.
	Confidence(headers []string) int

	// ParseRow transforms one data row into a record, an intentional
	// skip, or a row-level error.
	ParseRow(fields []string, headerIdx map[string]int) models.RowOutcome
}
