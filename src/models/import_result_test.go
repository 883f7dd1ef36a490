package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportResultAccountsForEveryRow(t *testing.T) {
	r := NewImportResult()
	r.RecordImported()
	r.RecordImported()
	r.RecordDuplicate("row a", "duplicate (standard mode)")
	r.RecordSkipped("row b", "canceled order")
	r.RecordInvalid("row c", "bad volume")

	assert.Equal(t, 2, r.Imported)
	assert.Equal(t, 2, r.Skipped)
	assert.Len(t, r.Errors, 1)
	assert.Equal(t, 5, r.Details.TotalTransactions)
	assert.Equal(t, 1, r.Details.DuplicateTransactions)
	assert.Equal(t, 1, r.Details.InvalidTransactions)
	assert.Len(t, r.Details.SkippedTransactions, 3)

	// Every row lands in exactly one bucket.
	assert.Equal(t, r.Details.TotalTransactions,
		r.Imported+r.Skipped+r.Details.InvalidTransactions)
}

func TestEmptyResultEncodesWithoutNulls(t *testing.T) {
	raw, err := json.Marshal(NewImportResult())
	require.NoError(t, err)

	body := string(raw)
	assert.NotContains(t, body, "null")
	assert.Contains(t, body, `"errors":[]`)
	assert.Contains(t, body, `"skipped_transactions":[]`)
}
