package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeNumeric(t *testing.T) {
	assert.Equal(t, "1234.56", SanitizeNumeric("$1,234.56"))
	assert.Equal(t, "0.5", SanitizeNumeric(" 0.5 BTC "))
	assert.Equal(t, "-45.2", SanitizeNumeric("-45.2 EUR"))
	assert.Equal(t, "", SanitizeNumeric("n/a"))
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("1,116.22401")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1116.22401")))

	d, err = ParseDecimal("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = ParseDecimal("  -  ")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDecimal("1.2.3")
	assert.Error(t, err)
}

func TestSplitAmountCurrency(t *testing.T) {
	amount, currency := SplitAmountCurrency("1116.22401PLN")
	assert.Equal(t, "1116.22401", amount)
	assert.Equal(t, "PLN", currency)

	amount, currency = SplitAmountCurrency("0.005btc")
	assert.Equal(t, "0.005", amount)
	assert.Equal(t, "BTC", currency)

	amount, currency = SplitAmountCurrency("400")
	assert.Equal(t, "400", amount)
	assert.Equal(t, "", currency)

	amount, currency = SplitAmountCurrency("")
	assert.Equal(t, "", amount)
	assert.Equal(t, "", currency)
}
