// Package strike parses Strike account-statement CSV exports.
//
// Strike's fiat currency is not fixed: the statement carries it in the
// header itself ("Amount USD", "Amount EUR", ...), so the adapter learns
// the fiat code by scanning headers for the "amount <CODE>" pattern. Two
// statement generations exist, told apart by "transaction id"/"status"
// (older) versus "reference"/"btc price" (newer).
//
// An earlier generation of this importer inferred BUY/SELL from the
// bought/sold currency columns alone. That policy is superseded by the
// shape classifier below, which also understands transfers and the
// multi-row lifecycle of target orders; the old behavior survives only as
// the general buy case (6).
package strike

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

var (
	sharedHeaders = []string{"transaction type", "amount btc"}
	olderHeaders  = []string{"transaction id", "status"}
	newerHeaders  = []string{"reference", "btc price"}

	amountFiatRe = regexp.MustCompile(`^amount ([a-z]{2,4})$`)
)

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "strike" }

func (a *Adapter) CanAttempt(headers []string) bool {
	idx := utils.BuildHeaderIndex(headers)
	if utils.CountPresent(idx, sharedHeaders) < len(sharedHeaders) {
		return false
	}
	return utils.CountPresent(idx, olderHeaders) >= 1 || utils.CountPresent(idx, newerHeaders) >= 1
}

func (a *Adapter) Confidence(headers []string) int {
	idx := utils.BuildHeaderIndex(headers)

	sharedMatched := utils.CountPresent(idx, sharedHeaders)
	if _, col := fiatColumn(idx); col != "" {
		sharedMatched++
	}
	score := sharedMatched * 60 / (len(sharedHeaders) + 1)

	older := utils.CountPresent(idx, olderHeaders) * 40 / len(olderHeaders)
	newer := utils.CountPresent(idx, newerHeaders) * 40 / len(newerHeaders)
	if newer > older {
		return score + newer
	}
	return score + older
}

// fiatColumn scans the header index for the dynamic "amount <CODE>" fiat
// column. "amount btc" is the BTC leg, never the fiat one.
func fiatColumn(idx map[string]int) (code, column string) {
	for h := range idx {
		m := amountFiatRe.FindStringSubmatch(h)
		if m == nil || m[1] == "btc" {
			continue
		}
		// Deterministic pick if an export ever carried two fiat
		// columns: the lexicographically first wins.
		if column == "" || h < column {
			code, column = strings.ToUpper(m[1]), h
		}
	}
	return code, column
}

func (a *Adapter) ParseRow(fields []string, idx map[string]int) models.RowOutcome {
	// Older statements flag reverted card/order activity; those rows are
	// accounting noise and are excluded before any classification.
	if strings.EqualFold(utils.Field(fields, idx, "status"), "reversed") {
		return models.RowSkip("reversed transaction")
	}

	txType := strings.ToLower(utils.Field(fields, idx, "transaction type"))

	// (1) Fiat deposits never touch the BTC ledger. Classified before any
	// field parsing so a mangled deposit row still reads as a deposit.
	if strings.Contains(txType, "deposit") {
		return models.RowSkip("deposit")
	}

	fiatCode, fiatCol := fiatColumn(idx)
	if fiatCol == "" {
		return models.RowError(fmt.Errorf("strike: no fiat amount column found"))
	}

	fiat, err := utils.ParseDecimal(utils.Field(fields, idx, fiatCol))
	if err != nil {
		return models.RowError(fmt.Errorf("strike: bad fiat amount: %w", err))
	}
	btc, err := utils.ParseDecimal(utils.Field(fields, idx, "amount btc"))
	if err != nil {
		return models.RowError(fmt.Errorf("strike: bad btc amount: %w", err))
	}
	btcPrice, err := utils.ParseDecimal(utils.Field(fields, idx, "btc price"))
	if err != nil {
		return models.RowError(fmt.Errorf("strike: bad btc price: %w", err))
	}
	fee, err := utils.ParseDecimal(utils.FieldAny(fields, idx, "fee "+strings.ToLower(fiatCode), "fee"))
	if err != nil {
		return models.RowError(fmt.Errorf("strike: bad fee: %w", err))
	}

	date, err := utils.NormalizeDate(utils.FieldAny(fields, idx,
		"date & time (utc)", "time (utc)", "date (utc)", "completed (utc)", "date"))
	if err != nil {
		return models.RowError(fmt.Errorf("strike: %w", err))
	}

	description := strings.ToLower(utils.Field(fields, idx, "description"))
	reference := utils.FieldAny(fields, idx, "reference", "transaction id")

	switch {
	// (2) On-chain send: BTC leaves the account.
	case btc.IsNegative() && (strings.Contains(txType, "send") || strings.Contains(txType, "withdrawal")):
		tx := &models.CanonicalTransaction{
			Type:               models.KindTransfer,
			BTCAmount:          btc.Abs(),
			PricePerBTC:        btcPrice,
			Currency:           fiatCode,
			TotalAmount:        decimal.Zero,
			Fees:               fee.Abs(),
			TransactionDate:    date,
			Notes:              fmt.Sprintf("Imported from Strike (%s)", reference),
			TransferType:       "send",
			DestinationAddress: utils.FieldAny(fields, idx, "destination", "destination address"),
		}
		return finish(tx)

	// (3) Target order initiation: fiat is reserved, no BTC yet. The BTC
	// leg arrives on a later row.
	case fiat.IsNegative() && btc.IsZero():
		return models.RowSkip("pending target order leg")

	// (4) Cancelled or expired target order: the reserved fiat comes back.
	case fiat.IsPositive() && btc.IsZero():
		if strings.Contains(description, "target order") || strings.Contains(txType, "order") {
			return models.RowSkip("target order refund")
		}
		return models.RowSkip("fiat credit without btc movement")

	// (5) Target order execution: BTC arrives, fiat already left at
	// initiation, priced at the quote recorded on the order.
	case btc.IsPositive() && fiat.IsZero():
		tx := &models.CanonicalTransaction{
			Type:            models.KindBuy,
			BTCAmount:       btc,
			PricePerBTC:     btcPrice,
			Currency:        fiatCode,
			TotalAmount:     btc.Mul(btcPrice),
			Fees:            fee.Abs(),
			TransactionDate: date,
			Notes:           fmt.Sprintf("Imported from Strike (%s)", reference),
		}
		return finish(tx)

	// (6) The general purchase: fiat out, BTC in.
	case fiat.IsNegative() && btc.IsPositive():
		price := btcPrice
		if price.IsZero() {
			price = fiat.Abs().Div(btc)
		}
		tx := &models.CanonicalTransaction{
			Type:            models.KindBuy,
			BTCAmount:       btc,
			PricePerBTC:     price,
			Currency:        fiatCode,
			TotalAmount:     fiat.Abs(),
			Fees:            fee.Abs(),
			TransactionDate: date,
			Notes:           fmt.Sprintf("Imported from Strike (%s)", reference),
		}
		return finish(tx)
	}

	return models.RowSkip(fmt.Sprintf("unrecognized strike row shape (type %q)", txType))
}

func finish(tx *models.CanonicalTransaction) models.RowOutcome {
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return models.RowError(fmt.Errorf("strike: %w", err))
	}
	return models.RowRecord(tx)
}
