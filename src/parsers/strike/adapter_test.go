package strike

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

var statementHeaders = []string{
	"Transaction ID", "Completed (UTC)", "Transaction Type", "Status",
	"Amount USD", "Fee USD", "Amount BTC", "BTC Price",
	"Destination", "Description",
}

func parseRow(t *testing.T, fields []string) models.RowOutcome {
	t.Helper()
	return NewAdapter().ParseRow(fields, utils.BuildHeaderIndex(statementHeaders))
}

func row(id, date, txType, status, fiat, fee, btc, price, dest, desc string) []string {
	return []string{id, date, txType, status, fiat, fee, btc, price, dest, desc}
}

func TestDepositNeverProducesARecord(t *testing.T) {
	out := parseRow(t, row("S1", "2024-04-01 12:00:00", "Deposit", "Completed",
		"500.00", "0", "0", "", "", ""))
	assert.Nil(t, out.Tx)
	assert.NoError(t, out.Err)
	assert.Equal(t, "deposit", out.SkipReason)
}

func TestMangledDepositStillSkipsAsDeposit(t *testing.T) {
	// Classification happens before field parsing, so a deposit row with a
	// broken date and unparseable amounts keeps its truthful skip reason.
	out := parseRow(t, row("S1b", "not a date", "Deposit", "Completed",
		"1.2.3", "0", "garbage", "", "", ""))
	assert.Nil(t, out.Tx)
	assert.NoError(t, out.Err)
	assert.Equal(t, "deposit", out.SkipReason)
}

func TestOnChainSendBecomesTransfer(t *testing.T) {
	out := parseRow(t, row("S2", "2024-04-02 18:30:00", "Onchain Send", "Completed",
		"0", "1.50", "-0.015", "65000", "bc1qexampleaddr", "Withdrawal to cold storage"))
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)

	tx := out.Tx
	assert.Equal(t, models.KindTransfer, tx.Type)
	assert.True(t, tx.BTCAmount.Equal(decimal.RequireFromString("0.015")))
	assert.True(t, tx.TotalAmount.IsZero(), "a transfer moves no fiat")
	assert.Equal(t, "send", tx.TransferType)
	assert.Equal(t, "bc1qexampleaddr", tx.DestinationAddress)
	assert.Equal(t, "USD", tx.Currency)
	assert.Equal(t, "2024-04-02", tx.TransactionDate)
}

func TestPurchaseWithBothLegs(t *testing.T) {
	out := parseRow(t, row("S3", "2024-04-03 09:00:00", "Exchange", "Completed",
		"-1000.00", "2.00", "0.016", "62500", "", ""))
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)

	tx := out.Tx
	assert.Equal(t, models.KindBuy, tx.Type)
	assert.True(t, tx.BTCAmount.Equal(decimal.RequireFromString("0.016")))
	assert.True(t, tx.PricePerBTC.Equal(decimal.RequireFromString("62500")))
	assert.True(t, tx.TotalAmount.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, tx.Fees.Equal(decimal.RequireFromString("2.00")))
}

func TestPurchaseDerivesPriceWhenQuoteMissing(t *testing.T) {
	out := parseRow(t, row("S4", "2024-04-03 09:05:00", "Exchange", "Completed",
		"-1000.00", "0", "0.02", "", "", ""))
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)
	assert.True(t, out.Tx.PricePerBTC.Equal(decimal.RequireFromString("50000")))
}

func TestTargetOrderLifecycle(t *testing.T) {
	// Initiation reserves fiat with no BTC movement.
	out := parseRow(t, row("S5", "2024-04-04 10:00:00", "Target Order", "Pending",
		"-250.00", "0", "0", "", "", "Target order placed"))
	assert.Nil(t, out.Tx)
	assert.Equal(t, "pending target order leg", out.SkipReason)

	// Cancellation returns the reserved fiat.
	out = parseRow(t, row("S6", "2024-04-05 10:00:00", "Target Order", "Canceled",
		"250.00", "0", "0", "", "", "Target order canceled"))
	assert.Nil(t, out.Tx)
	assert.Equal(t, "target order refund", out.SkipReason)

	// Execution delivers BTC priced at the quoted rate.
	out = parseRow(t, row("S7", "2024-04-06 10:00:00", "Trade", "Completed",
		"0", "0", "0.004", "64000", "", ""))
	require.NoError(t, out.Err)
	require.NotNil(t, out.Tx)
	assert.Equal(t, models.KindBuy, out.Tx.Type)
	assert.True(t, out.Tx.TotalAmount.Equal(decimal.RequireFromString("256")))
}

func TestReversedRowsAreExcluded(t *testing.T) {
	out := parseRow(t, row("S8", "2024-04-07 10:00:00", "Exchange", "Reversed",
		"-100.00", "0", "0.002", "50000", "", ""))
	assert.Nil(t, out.Tx)
	assert.Equal(t, "reversed transaction", out.SkipReason)
}

func TestFiatColumnDiscovery(t *testing.T) {
	idx := utils.BuildHeaderIndex([]string{"Transaction Type", "Amount EUR", "Amount BTC", "Fee EUR"})
	code, col := fiatColumn(idx)
	assert.Equal(t, "EUR", code)
	assert.Equal(t, "amount eur", col)

	// The BTC leg is never mistaken for the fiat column.
	idx = utils.BuildHeaderIndex([]string{"Amount BTC"})
	_, col = fiatColumn(idx)
	assert.Empty(t, col)
}

func TestDetectionAcceptsBothGenerations(t *testing.T) {
	a := NewAdapter()
	assert.True(t, a.CanAttempt(utils.NormalizeHeaders(statementHeaders)))

	newer := utils.NormalizeHeaders([]string{
		"Reference", "Date & Time (UTC)", "Transaction Type",
		"Amount USD", "Fee USD", "Amount BTC", "BTC Price", "Destination",
	})
	assert.True(t, a.CanAttempt(newer))
	assert.GreaterOrEqual(t, a.Confidence(newer), 60)

	assert.False(t, a.CanAttempt([]string{"transaction type", "amount btc"}))
}
