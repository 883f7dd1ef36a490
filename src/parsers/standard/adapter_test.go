package standard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

func parseRow(t *testing.T, headers, fields []string) models.RowOutcome {
	t.Helper()
	return NewAdapter().ParseRow(fields, utils.BuildHeaderIndex(headers))
}

func TestGateAlwaysPasses(t *testing.T) {
	a := NewAdapter()
	assert.True(t, a.CanAttempt(nil))
	assert.True(t, a.CanAttempt([]string{"anything", "at", "all"}))
}

func TestConfidenceIsCapped(t *testing.T) {
	a := NewAdapter()
	full := []string{"date", "type", "amount", "price", "total", "fee", "currency"}
	assert.Equal(t, maxConfidence, a.Confidence(full))
	assert.Equal(t, 0, a.Confidence([]string{"foo", "bar"}))

	// Recognizing more header families never lowers the score.
	partial := []string{"date", "amount"}
	assert.GreaterOrEqual(t,
		a.Confidence(append(partial, "price")),
		a.Confidence(partial))
}

func TestParseRowWithSynonymHeaders(t *testing.T) {
	out := parseRow(t,
		[]string{"timestamp", "side", "qty", "rate", "value", "commission", "fiat"},
		[]string{"2024-08-01 10:00:00", "sell", "0.25", "58000", "14500", "7.25", "gbp"})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)

	tx := out.Tx
	assert.Equal(t, models.KindSell, tx.Type)
	assert.True(t, tx.BTCAmount.Equal(decimal.RequireFromString("0.25")))
	assert.Equal(t, "GBP", tx.Currency)
	assert.True(t, tx.Fees.Equal(decimal.RequireFromString("7.25")))
	assert.Equal(t, "2024-08-01", tx.TransactionDate)
}

func TestParseRowDerivesMissingValues(t *testing.T) {
	// Missing total is amount * price.
	out := parseRow(t,
		[]string{"date", "amount", "price"},
		[]string{"2024-08-02", "0.1", "50000"})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)
	assert.True(t, out.Tx.TotalAmount.Equal(decimal.RequireFromString("5000")))

	// Missing price is total / amount.
	out = parseRow(t,
		[]string{"date", "amount", "total"},
		[]string{"2024-08-02", "0.1", "5000"})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)
	assert.True(t, out.Tx.PricePerBTC.Equal(decimal.RequireFromString("50000")))
}

func TestParseRowDefaultsTypeAndCurrency(t *testing.T) {
	out := parseRow(t,
		[]string{"date", "amount", "price"},
		[]string{"2024-08-03", "0.01", "60000"})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)
	assert.Equal(t, models.KindBuy, out.Tx.Type)
	assert.Equal(t, "USD", out.Tx.Currency)
}

func TestParseRowSkipsUnresolvableTrade(t *testing.T) {
	out := parseRow(t,
		[]string{"date", "amount", "price"},
		[]string{"2024-08-04", "0.1", ""})
	assert.Nil(t, out.Tx)
	assert.NoError(t, out.Err)
	assert.NotEmpty(t, out.SkipReason)
}
