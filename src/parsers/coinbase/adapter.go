// Package coinbase parses Coinbase Pro fills CSV exports.
package coinbase

import (
	"fmt"
	"strings"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

var signatureHeaders = []string{"trade id", "product", "side", "created at", "size", "price", "fee", "total"}

const minSignature = 5

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "coinbase" }

func (a *Adapter) CanAttempt(headers []string) bool {
	idx := utils.BuildHeaderIndex(headers)
	return utils.CountPresent(idx, signatureHeaders) >= minSignature
}

func (a *Adapter) Confidence(headers []string) int {
	idx := utils.BuildHeaderIndex(headers)
	return utils.CountPresent(idx, signatureHeaders) * 100 / len(signatureHeaders)
}

func (a *Adapter) ParseRow(fields []string, idx map[string]int) models.RowOutcome {
	kind, ok := models.ParseKind(utils.Field(fields, idx, "side"))
	if !ok {
		return models.RowSkip(fmt.Sprintf("unsupported coinbase row side %q", utils.Field(fields, idx, "side")))
	}

	size, err := utils.ParseDecimal(utils.Field(fields, idx, "size"))
	if err != nil {
		return models.RowError(fmt.Errorf("coinbase: bad size: %w", err))
	}
	price, err := utils.ParseDecimal(utils.Field(fields, idx, "price"))
	if err != nil {
		return models.RowError(fmt.Errorf("coinbase: bad price: %w", err))
	}
	// Sells are exported with a negative total; the canonical record
	// keeps magnitudes and carries direction in the kind.
	total, err := utils.ParseDecimal(utils.Field(fields, idx, "total"))
	if err != nil {
		return models.RowError(fmt.Errorf("coinbase: bad total: %w", err))
	}
	total = total.Abs()

	if price.IsZero() && size.IsPositive() {
		price = total.Div(size)
	}

	fee, err := utils.ParseDecimal(utils.Field(fields, idx, "fee"))
	if err != nil {
		return models.RowError(fmt.Errorf("coinbase: bad fee: %w", err))
	}

	date, err := utils.NormalizeDate(utils.FieldAny(fields, idx, "created at", "timestamp"))
	if err != nil {
		return models.RowError(fmt.Errorf("coinbase: %w", err))
	}

	tx := &models.CanonicalTransaction{
		Type:            kind,
		BTCAmount:       size,
		PricePerBTC:     price,
		Currency:        quoteFromProduct(utils.Field(fields, idx, "product")),
		TotalAmount:     total,
		Fees:            fee.Abs(),
		TransactionDate: date,
		Notes:           fmt.Sprintf("Imported from Coinbase (trade %s)", utils.Field(fields, idx, "trade id")),
	}
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return models.RowError(fmt.Errorf("coinbase: %w", err))
	}
	return models.RowRecord(tx)
}

// quoteFromProduct derives the fiat currency from a hyphenated product
// code, e.g. BTC-USD -> USD.
func quoteFromProduct(product string) string {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(product)), "-")
	if len(parts) == 2 {
		return parts[1]
	}
	return strings.TrimSpace(product)
}
