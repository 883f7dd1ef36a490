package processors

import (
	"github.com/shopspring/decimal"
	"github.com/wilqq-the/btc-tracker/src/models"
)

// PortfolioSummary is the recomputed downstream view of a user's ledger.
type PortfolioSummary struct {
	TotalBTCBought   decimal.Decimal            `json:"total_btc_bought"`
	TotalBTCSold     decimal.Decimal            `json:"total_btc_sold"`
	TotalBTCSent     decimal.Decimal            `json:"total_btc_sent"`
	NetBTC           decimal.Decimal            `json:"net_btc"`
	InvestedByFiat   map[string]decimal.Decimal `json:"invested_by_fiat"`
	ProceedsByFiat   map[string]decimal.Decimal `json:"proceeds_by_fiat"`
	FeesByCurrency   map[string]decimal.Decimal `json:"fees_by_currency"`
	AverageBuyPrice  map[string]decimal.Decimal `json:"average_buy_price"`
	TransactionCount int                        `json:"transaction_count"`
}

// SummaryProcessor recomputes a portfolio summary from stored records in
// one pass. It is pure: the same records always produce the same summary.
type SummaryProcessor struct{}

func NewSummaryProcessor() *SummaryProcessor {
	return &SummaryProcessor{}
}

func (p *SummaryProcessor) Process(transactions []models.CanonicalTransaction) PortfolioSummary {
	s := PortfolioSummary{
		InvestedByFiat:  map[string]decimal.Decimal{},
		ProceedsByFiat:  map[string]decimal.Decimal{},
		FeesByCurrency:  map[string]decimal.Decimal{},
		AverageBuyPrice: map[string]decimal.Decimal{},
	}
	boughtByFiat := map[string]decimal.Decimal{}

	for _, tx := range transactions {
		s.TransactionCount++
		switch tx.Type {
		case models.KindBuy:
			s.TotalBTCBought = s.TotalBTCBought.Add(tx.BTCAmount)
			s.InvestedByFiat[tx.Currency] = s.InvestedByFiat[tx.Currency].Add(tx.TotalAmount)
			boughtByFiat[tx.Currency] = boughtByFiat[tx.Currency].Add(tx.BTCAmount)
		case models.KindSell:
			s.TotalBTCSold = s.TotalBTCSold.Add(tx.BTCAmount)
			s.ProceedsByFiat[tx.Currency] = s.ProceedsByFiat[tx.Currency].Add(tx.TotalAmount)
		case models.KindTransfer:
			s.TotalBTCSent = s.TotalBTCSent.Add(tx.BTCAmount)
		}
		if tx.Fees.IsPositive() {
			s.FeesByCurrency[tx.FeesCurrency] = s.FeesByCurrency[tx.FeesCurrency].Add(tx.Fees)
		}
	}

	// Transfers move custody, they do not change the position.
	s.NetBTC = s.TotalBTCBought.Sub(s.TotalBTCSold)

	for fiat, invested := range s.InvestedByFiat {
		if bought := boughtByFiat[fiat]; bought.IsPositive() {
			s.AverageBuyPrice[fiat] = invested.Div(bought).Round(2)
		}
	}
	return s
}
