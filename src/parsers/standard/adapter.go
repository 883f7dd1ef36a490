// Package standard is the detection fallback: a loose adapter that
// recognizes a broad set of header synonyms and otherwise tolerates
// anything. Its gate always passes and its score is capped so every
// purpose-built adapter outranks it whenever one applies.
package standard

import (
	"fmt"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

// maxConfidence keeps the fallback under every purpose-built adapter that
// scores a solid match.
const maxConfidence = 50

// synonymGroups are the loosely-matched header families scored during
// detection and used for field lookup, covering snake_case, spaced and
// abbreviated spellings.
var synonymGroups = [][]string{
	{"date", "transaction_date", "transaction date", "time", "timestamp", "created at", "datetime", "date(utc)"},
	{"type", "side", "transaction_type", "transaction type", "order type"},
	{"amount", "btc_amount", "btc amount", "amount btc", "volume", "vol", "size", "qty", "quantity"},
	{"price", "price_per_btc", "price per btc", "rate", "btc price"},
	{"total", "total_amount", "total amount", "cost", "value"},
	{"fee", "fees", "commission"},
	{"currency", "fiat", "fiat currency", "quote currency"},
}

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "standard" }

// CanAttempt refuses nothing; this adapter is the floor every file lands on.
func (a *Adapter) CanAttempt(headers []string) bool { return true }

func (a *Adapter) Confidence(headers []string) int {
	idx := utils.BuildHeaderIndex(headers)
	matched := 0
	for _, group := range synonymGroups {
		if utils.CountPresent(idx, group) > 0 {
			matched++
		}
	}
	return matched * maxConfidence / len(synonymGroups)
}

func (a *Adapter) ParseRow(fields []string, idx map[string]int) models.RowOutcome {
	amount, err := utils.ParseDecimal(utils.FieldAny(fields, idx, synonymGroups[2]...))
	if err != nil {
		return models.RowError(fmt.Errorf("standard: bad amount: %w", err))
	}
	price, err := utils.ParseDecimal(utils.FieldAny(fields, idx, synonymGroups[3]...))
	if err != nil {
		return models.RowError(fmt.Errorf("standard: bad price: %w", err))
	}
	total, err := utils.ParseDecimal(utils.FieldAny(fields, idx, synonymGroups[4]...))
	if err != nil {
		return models.RowError(fmt.Errorf("standard: bad total: %w", err))
	}
	amount = amount.Abs()
	total = total.Abs()

	if total.IsZero() && amount.IsPositive() {
		total = amount.Mul(price)
	}
	if price.IsZero() && amount.IsPositive() {
		price = total.Div(amount)
	}
	// Without all three resolvable to something non-zero there is no
	// trade to record; the row is dropped, not errored.
	if amount.IsZero() || price.IsZero() || total.IsZero() {
		return models.RowSkip("amount, price or total could not be resolved")
	}

	fee, err := utils.ParseDecimal(utils.FieldAny(fields, idx, synonymGroups[5]...))
	if err != nil {
		return models.RowError(fmt.Errorf("standard: bad fee: %w", err))
	}

	date, err := utils.NormalizeDate(utils.FieldAny(fields, idx, synonymGroups[0]...))
	if err != nil {
		return models.RowError(fmt.Errorf("standard: %w", err))
	}

	// No better signal exists here, so an unrecognized or missing type
	// defaults to BUY. Purpose-built adapters skip instead.
	kind, ok := models.ParseKind(utils.FieldAny(fields, idx, synonymGroups[1]...))
	if !ok {
		kind = models.KindBuy
	}

	currency := utils.FieldAny(fields, idx, synonymGroups[6]...)
	if currency == "" {
		currency = "USD"
	}

	tx := &models.CanonicalTransaction{
		Type:            kind,
		BTCAmount:       amount,
		PricePerBTC:     price,
		Currency:        currency,
		TotalAmount:     total,
		Fees:            fee.Abs(),
		TransactionDate: date,
		Notes:           "Imported via standard format",
	}
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return models.RowError(fmt.Errorf("standard: %w", err))
	}
	return models.RowRecord(tx)
}
