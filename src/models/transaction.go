package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a canonical transaction.
type TransactionKind string

const (
	KindBuy      TransactionKind = "BUY"
	KindSell     TransactionKind = "SELL"
	KindTransfer TransactionKind = "TRANSFER"
)

// ParseKind maps an exchange's type vocabulary onto a TransactionKind.
// Matching is case-insensitive. The second return value reports whether the
// value was recognized at all; callers decide between skip and default.
func ParseKind(s string) (TransactionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "bought", "purchase", "market buy", "limit buy":
		return KindBuy, true
	case "sell", "sold", "sale", "market sell", "limit sell":
		return KindSell, true
	case "transfer", "send", "withdrawal", "withdraw":
		return KindTransfer, true
	}
	return "", false
}

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CanonicalTransaction is the single normalized record every adapter must
// produce. A value is created once, validated once and never mutated after
// it leaves the parser; it either becomes a ledger row or is discarded with
// a recorded reason.
type CanonicalTransaction struct {
	ID                 int64           `json:"id,omitempty"`
	Type               TransactionKind `json:"type"`
	BTCAmount          decimal.Decimal `json:"btc_amount"`
	PricePerBTC        decimal.Decimal `json:"price_per_btc"`
	Currency           string          `json:"currency"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Fees               decimal.Decimal `json:"fees"`
	FeesCurrency       string          `json:"fees_currency"`
	TransactionDate    string          `json:"transaction_date"` // YYYY-MM-DD
	Notes              string          `json:"notes"`
	TransferType       string          `json:"transfer_type,omitempty"`
	DestinationAddress string          `json:"destination_address,omitempty"`
}

// Validate checks every invariant a canonical transaction must satisfy
// before persistence. The returned error names the failing rule so the
// import result can surface it per row.
func (t *CanonicalTransaction) Validate() error {
	switch t.Type {
	case KindBuy, KindSell, KindTransfer:
	default:
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if !t.BTCAmount.IsPositive() {
		return fmt.Errorf("btc_amount must be greater than zero, got %s", t.BTCAmount)
	}
	if t.PricePerBTC.IsNegative() {
		return fmt.Errorf("price_per_btc must not be negative, got %s", t.PricePerBTC)
	}
	if len(t.Currency) < 2 {
		return fmt.Errorf("currency %q is too short", t.Currency)
	}
	if t.TotalAmount.IsNegative() {
		return fmt.Errorf("total_amount must not be negative, got %s", t.TotalAmount)
	}
	if !dateOnlyRe.MatchString(t.TransactionDate) {
		return fmt.Errorf("transaction_date %q is not in YYYY-MM-DD form", t.TransactionDate)
	}
	return nil
}

// Normalize fills derivable defaults before validation: currencies are
// upper-cased and the fee currency defaults to the transaction currency.
func (t *CanonicalTransaction) Normalize() {
	t.Currency = strings.ToUpper(strings.TrimSpace(t.Currency))
	t.FeesCurrency = strings.ToUpper(strings.TrimSpace(t.FeesCurrency))
	if t.FeesCurrency == "" {
		t.FeesCurrency = t.Currency
	}
}

// RowOutcome is the three-valued result of transforming one raw row:
// a record, an intentional skip (not an error) or a row-level error.
// Exactly one of the three is set.
type RowOutcome struct {
	Tx         *CanonicalTransaction
	SkipReason string
	Err        error
}

// RowRecord wraps a parsed transaction. The adapter must have normalized
// and validated it already.
func RowRecord(tx *CanonicalTransaction) RowOutcome {
	return RowOutcome{Tx: tx}
}

// RowSkip marks a row the adapter understood and intentionally excluded,
// e.g. a cancelled order.
func RowSkip(reason string) RowOutcome {
	return RowOutcome{SkipReason: reason}
}

// RowError marks a malformed row.
func RowError(err error) RowOutcome {
	return RowOutcome{Err: err}
}
