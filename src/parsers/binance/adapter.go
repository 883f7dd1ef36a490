// Package binance parses both generations of Binance trade-history CSV
// exports: the legacy order-history layout (order number, side, totals with
// the currency appended as a suffix) and the current trade layout with
// explicit base/quote asset columns.
package binance

import (
	"fmt"
	"strings"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

// Headers shared by both export generations weigh 60% of the confidence
// score; generation-specific headers make up the remaining 40%.
var (
	sharedHeaders  = []string{"date(utc)", "pair", "type"}
	legacyHeaders  = []string{"order no", "orderno", "avgtrading price", "filled", "status"}
	currentHeaders = []string{"base asset", "quote asset", "price", "amount", "fee coin"}
)

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "binance" }

func (a *Adapter) CanAttempt(headers []string) bool {
	idx := utils.BuildHeaderIndex(headers)
	if utils.CountPresent(idx, sharedHeaders) < 2 {
		return false
	}
	return utils.CountPresent(idx, legacyHeaders) >= 2 || utils.CountPresent(idx, currentHeaders) >= 2
}

func (a *Adapter) Confidence(headers []string) int {
	idx := utils.BuildHeaderIndex(headers)
	shared := utils.CountPresent(idx, sharedHeaders) * 60 / len(sharedHeaders)

	legacyScore := utils.CountPresent(idx, legacyHeaders) * 40 / len(legacyHeaders)
	currentScore := utils.CountPresent(idx, currentHeaders) * 40 / len(currentHeaders)
	if currentScore > legacyScore {
		return shared + currentScore
	}
	return shared + legacyScore
}

func (a *Adapter) ParseRow(fields []string, idx map[string]int) models.RowOutcome {
	if isCurrentLayout(idx) {
		return a.parseCurrentRow(fields, idx)
	}
	return a.parseLegacyRow(fields, idx)
}

// isCurrentLayout reports whether the explicit base/quote asset columns of
// the current export generation are present.
func isCurrentLayout(idx map[string]int) bool {
	_, base := idx["base asset"]
	_, quote := idx["quote asset"]
	return base && quote
}

// parseLegacyRow handles the order-history layout. Amount columns embed the
// currency as a suffix ("1116.22401PLN") and only FILLED orders represent
// completed trades.
func (a *Adapter) parseLegacyRow(fields []string, idx map[string]int) models.RowOutcome {
	status := utils.FieldAny(fields, idx, "status")
	if status != "" && !strings.EqualFold(status, "filled") {
		return models.RowSkip(fmt.Sprintf("order status %q", status))
	}

	kind, ok := models.ParseKind(utils.Field(fields, idx, "type"))
	if !ok {
		return models.RowSkip(fmt.Sprintf("unsupported binance row type %q", utils.Field(fields, idx, "type")))
	}

	totalRaw := utils.FieldAny(fields, idx, "total", "trading total")
	totalStr, currency := utils.SplitAmountCurrency(totalRaw)
	total, err := utils.ParseDecimal(totalStr)
	if err != nil {
		return models.RowError(fmt.Errorf("binance: bad total: %w", err))
	}

	filledStr, _ := utils.SplitAmountCurrency(utils.Field(fields, idx, "filled"))
	amount, err := utils.ParseDecimal(filledStr)
	if err != nil {
		return models.RowError(fmt.Errorf("binance: bad filled amount: %w", err))
	}

	priceStr, _ := utils.SplitAmountCurrency(utils.FieldAny(fields, idx, "avgtrading price", "order price"))
	price, err := utils.ParseDecimal(priceStr)
	if err != nil {
		return models.RowError(fmt.Errorf("binance: bad price: %w", err))
	}
	if price.IsZero() && amount.IsPositive() {
		price = total.Div(amount)
	}

	if currency == "" {
		currency = quoteFromPair(utils.Field(fields, idx, "pair"))
	}

	feeStr, feeCurrency := utils.SplitAmountCurrency(utils.Field(fields, idx, "fee"))
	fee, err := utils.ParseDecimal(feeStr)
	if err != nil {
		return models.RowError(fmt.Errorf("binance: bad fee: %w", err))
	}

	date, err := utils.NormalizeDate(utils.Field(fields, idx, "date(utc)"))
	if err != nil {
		return models.RowError(fmt.Errorf("binance: %w", err))
	}

	tx := &models.CanonicalTransaction{
		Type:            kind,
		BTCAmount:       amount,
		PricePerBTC:     price,
		Currency:        currency,
		TotalAmount:     total.Abs(),
		Fees:            fee.Abs(),
		FeesCurrency:    feeCurrency,
		TransactionDate: date,
		Notes:           fmt.Sprintf("Imported from Binance (order %s)", utils.FieldAny(fields, idx, "order no", "orderno")),
	}
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return models.RowError(fmt.Errorf("binance: %w", err))
	}
	return models.RowRecord(tx)
}

// parseCurrentRow handles the layout with explicit base/quote asset and
// independent price/amount/total/fee columns. Fees may be charged in the
// base asset; convert them to the quote currency so one currency covers
// the whole record.
func (a *Adapter) parseCurrentRow(fields []string, idx map[string]int) models.RowOutcome {
	kind, ok := models.ParseKind(utils.Field(fields, idx, "type"))
	if !ok {
		return models.RowSkip(fmt.Sprintf("unsupported binance row type %q", utils.Field(fields, idx, "type")))
	}

	baseAsset := strings.ToUpper(utils.Field(fields, idx, "base asset"))
	quoteAsset := strings.ToUpper(utils.Field(fields, idx, "quote asset"))

	amount, err := utils.ParseDecimal(utils.Field(fields, idx, "amount"))
	if err != nil {
		return models.RowError(fmt.Errorf("binance: bad amount: %w", err))
	}
	price, err := utils.ParseDecimal(utils.Field(fields, idx, "price"))
	if err != nil {
		return models.RowError(fmt.Errorf("binance: bad price: %w", err))
	}
	total, err := utils.ParseDecimal(utils.Field(fields, idx, "total"))
	if err != nil {
		return models.RowError(fmt.Errorf("binance: bad total: %w", err))
	}
	if price.IsZero() && amount.IsPositive() {
		price = total.Div(amount)
	}

	fee, err := utils.ParseDecimal(utils.Field(fields, idx, "fee"))
	if err != nil {
		return models.RowError(fmt.Errorf("binance: bad fee: %w", err))
	}
	feeCoin := strings.ToUpper(utils.Field(fields, idx, "fee coin"))
	if feeCoin == baseAsset && feeCoin != quoteAsset {
		// Fee charged in BTC: restate it in the quote currency at the
		// trade price.
		fee = fee.Mul(price)
		feeCoin = quoteAsset
	}

	date, err := utils.NormalizeDate(utils.Field(fields, idx, "date(utc)"))
	if err != nil {
		return models.RowError(fmt.Errorf("binance: %w", err))
	}

	tx := &models.CanonicalTransaction{
		Type:            kind,
		BTCAmount:       amount,
		PricePerBTC:     price,
		Currency:        quoteAsset,
		TotalAmount:     total.Abs(),
		Fees:            fee.Abs(),
		FeesCurrency:    feeCoin,
		TransactionDate: date,
		Notes:           fmt.Sprintf("Imported from Binance (%s/%s)", baseAsset, quoteAsset),
	}
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return models.RowError(fmt.Errorf("binance: %w", err))
	}
	return models.RowRecord(tx)
}

func quoteFromPair(pair string) string {
	p := strings.ToUpper(strings.TrimSpace(pair))
	for _, base := range []string{"BTC", "XBT"} {
		if strings.HasPrefix(p, base) {
			return p[len(base):]
		}
	}
	return p
}
