// Package legacy re-imports the tracker's own historical CSV export, so a
// ledger dumped by an earlier installation round-trips losslessly.
package legacy

import (
	"fmt"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

// signatureHeaders is the column set the tracker itself has written over
// time; older dumps abbreviated some of them, hence the synonym lookups in
// ParseRow.
var signatureHeaders = []string{
	"type", "btc_amount", "price_per_btc", "total_amount",
	"fees", "transaction_date", "currency",
}

const minSignature = 4

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "legacy" }

func (a *Adapter) CanAttempt(headers []string) bool {
	idx := utils.BuildHeaderIndex(headers)
	return utils.CountPresent(idx, signatureHeaders) >= minSignature
}

func (a *Adapter) Confidence(headers []string) int {
	idx := utils.BuildHeaderIndex(headers)
	return utils.CountPresent(idx, signatureHeaders) * 100 / len(signatureHeaders)
}

func (a *Adapter) ParseRow(fields []string, idx map[string]int) models.RowOutcome {
	kind, ok := models.ParseKind(utils.FieldAny(fields, idx, "type", "transaction_type", "transaction type"))
	if !ok {
		return models.RowSkip(fmt.Sprintf("unsupported legacy row type %q", utils.Field(fields, idx, "type")))
	}

	amount, err := utils.ParseDecimal(utils.FieldAny(fields, idx, "btc_amount", "btc amount", "amount_btc", "amount btc"))
	if err != nil {
		return models.RowError(fmt.Errorf("legacy: bad btc amount: %w", err))
	}
	price, err := utils.ParseDecimal(utils.FieldAny(fields, idx, "price_per_btc", "price per btc", "price"))
	if err != nil {
		return models.RowError(fmt.Errorf("legacy: bad price: %w", err))
	}
	total, err := utils.ParseDecimal(utils.FieldAny(fields, idx, "total_amount", "total amount", "total"))
	if err != nil {
		return models.RowError(fmt.Errorf("legacy: bad total: %w", err))
	}
	if total.IsZero() {
		total = amount.Mul(price)
	}
	fees, err := utils.ParseDecimal(utils.FieldAny(fields, idx, "fees", "fee"))
	if err != nil {
		return models.RowError(fmt.Errorf("legacy: bad fees: %w", err))
	}

	date, err := utils.NormalizeDate(utils.FieldAny(fields, idx, "transaction_date", "transaction date", "date"))
	if err != nil {
		return models.RowError(fmt.Errorf("legacy: %w", err))
	}

	tx := &models.CanonicalTransaction{
		Type:               kind,
		BTCAmount:          amount.Abs(),
		PricePerBTC:        price,
		Currency:           utils.FieldAny(fields, idx, "currency", "fiat_currency", "fiat currency"),
		TotalAmount:        total.Abs(),
		Fees:               fees.Abs(),
		FeesCurrency:       utils.FieldAny(fields, idx, "fees_currency", "fees currency", "fee currency"),
		TransactionDate:    date,
		Notes:              utils.FieldAny(fields, idx, "notes", "note", "description"),
		TransferType:       utils.FieldAny(fields, idx, "transfer_type", "transfer type"),
		DestinationAddress: utils.FieldAny(fields, idx, "destination_address", "destination address", "address"),
	}
	if tx.Notes == "" {
		tx.Notes = "Imported from legacy export"
	}
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return models.RowError(fmt.Errorf("legacy: %w", err))
	}
	return models.RowRecord(tx)
}
