// Package kraken parses Kraken trade-history CSV exports.
package kraken

import (
	"fmt"
	"strings"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

// signatureHeaders are the columns unique enough to Kraken's trades export
// to identify it. At least minSignature of them must be present.
var signatureHeaders = []string{"txid", "ordertxid", "pair", "vol", "cost", "margin", "ledgers"}

const minSignature = 4

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "kraken" }

func (a *Adapter) CanAttempt(headers []string) bool {
	idx := utils.BuildHeaderIndex(headers)
	return utils.CountPresent(idx, signatureHeaders) >= minSignature
}

func (a *Adapter) Confidence(headers []string) int {
	idx := utils.BuildHeaderIndex(headers)
	return utils.CountPresent(idx, signatureHeaders) * 100 / len(signatureHeaders)
}

func (a *Adapter) ParseRow(fields []string, idx map[string]int) models.RowOutcome {
	// Order exports carry a status column; trades exports do not.
	if strings.EqualFold(utils.Field(fields, idx, "status"), "canceled") {
		return models.RowSkip("canceled order")
	}

	kind, ok := models.ParseKind(utils.Field(fields, idx, "type"))
	if !ok {
		// Ledger rows (deposits, staking, margin settlements) are not
		// trades; exclude them deliberately rather than erroring.
		return models.RowSkip(fmt.Sprintf("unsupported kraken row type %q", utils.Field(fields, idx, "type")))
	}

	vol, err := utils.ParseDecimal(utils.Field(fields, idx, "vol"))
	if err != nil {
		return models.RowError(fmt.Errorf("kraken: bad volume: %w", err))
	}
	price, err := utils.ParseDecimal(utils.Field(fields, idx, "price"))
	if err != nil {
		return models.RowError(fmt.Errorf("kraken: bad price: %w", err))
	}
	cost, err := utils.ParseDecimal(utils.Field(fields, idx, "cost"))
	if err != nil {
		return models.RowError(fmt.Errorf("kraken: bad cost: %w", err))
	}
	fee, err := utils.ParseDecimal(utils.Field(fields, idx, "fee"))
	if err != nil {
		return models.RowError(fmt.Errorf("kraken: bad fee: %w", err))
	}

	// Older exports leave the price column empty or zero on filled
	// margin orders; reconstruct it from cost/volume.
	if price.IsZero() && vol.IsPositive() {
		price = cost.Div(vol)
	}

	date, err := utils.NormalizeDate(utils.Field(fields, idx, "time"))
	if err != nil {
		return models.RowError(fmt.Errorf("kraken: %w", err))
	}

	tx := &models.CanonicalTransaction{
		Type:            kind,
		BTCAmount:       vol,
		PricePerBTC:     price,
		Currency:        QuoteCurrency(utils.Field(fields, idx, "pair")),
		TotalAmount:     cost.Abs(),
		Fees:            fee.Abs(),
		TransactionDate: date,
		Notes:           fmt.Sprintf("Imported from Kraken (txid %s)", utils.Field(fields, idx, "txid")),
	}
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return models.RowError(fmt.Errorf("kraken: %w", err))
	}
	return models.RowRecord(tx)
}

// QuoteCurrency extracts the quote currency from a Kraken pair string.
// Kraken prefixes ISO fiat with Z and crypto with X in its classic pair
// notation, so XXBTZUSD quotes in USD and XBTEUR in EUR.
func QuoteCurrency(pair string) string {
	p := strings.ToUpper(strings.TrimSpace(pair))
	for _, base := range []string{"XXBT", "XBT", "BTC"} {
		if strings.HasPrefix(p, base) {
			p = p[len(base):]
			break
		}
	}
	if len(p) == 4 && (p[0] == 'Z' || p[0] == 'X') {
		p = p[1:]
	}
	return p
}
