package legacy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

var exportHeaders = []string{
	"id", "type", "btc_amount", "price_per_btc", "total_amount",
	"fees", "currency", "transaction_date", "notes",
}

func parseRow(t *testing.T, fields []string) models.RowOutcome {
	t.Helper()
	return NewAdapter().ParseRow(fields, utils.BuildHeaderIndex(exportHeaders))
}

func TestExportRoundTrips(t *testing.T) {
	out := parseRow(t, []string{
		"381", "BUY", "0.01794592", "55720.04", "1000.00",
		"4.50", "usd", "2024-07-15", "bought the dip",
	})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)

	tx := out.Tx
	assert.Equal(t, models.KindBuy, tx.Type)
	assert.True(t, tx.BTCAmount.Equal(decimal.RequireFromString("0.01794592")))
	assert.True(t, tx.PricePerBTC.Equal(decimal.RequireFromString("55720.04")))
	assert.Equal(t, "USD", tx.Currency)
	assert.True(t, tx.TotalAmount.Equal(decimal.RequireFromString("1000.00")))
	assert.Equal(t, "2024-07-15", tx.TransactionDate)
	assert.Equal(t, "bought the dip", tx.Notes)
}

func TestMissingTotalIsDerived(t *testing.T) {
	out := parseRow(t, []string{
		"382", "SELL", "0.5", "40000", "",
		"0", "EUR", "2024-07-16", "",
	})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)
	assert.True(t, out.Tx.TotalAmount.Equal(decimal.RequireFromString("20000")))
	assert.Equal(t, "Imported from legacy export", out.Tx.Notes)
}

func TestUnrecognizedTypeIsSkippedNotErrored(t *testing.T) {
	out := parseRow(t, []string{
		"383", "airdrop", "0.001", "0", "0",
		"0", "USD", "2024-07-17", "",
	})
	assert.Nil(t, out.Tx)
	assert.NoError(t, out.Err)
	assert.Contains(t, out.SkipReason, "airdrop")
}

func TestDetectionSignature(t *testing.T) {
	a := NewAdapter()
	assert.True(t, a.CanAttempt(exportHeaders))
	assert.Equal(t, 100, a.Confidence(exportHeaders))
	assert.False(t, a.CanAttempt([]string{"type", "btc_amount", "fees"}))
}
