package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilqq-the/btc-tracker/src/models"
)

type stubAdapter struct {
	name  string
	gate  bool
	score int
}

func (s *stubAdapter) Name() string                   { return s.name }
func (s *stubAdapter) CanAttempt(_ []string) bool     { return s.gate }
func (s *stubAdapter) Confidence(_ []string) int      { return s.score }
func (s *stubAdapter) ParseRow(_ []string, _ map[string]int) models.RowOutcome {
	return models.RowSkip("stub")
}

func TestDetectKnownFormats(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		headers []string
		adapter string
	}{
		{
			name:    "kraken export",
			headers: []string{"txid", "ordertxid", "pair", "time", "type", "ordertype", "price", "cost", "fee", "vol", "margin", "misc", "ledgers"},
			adapter: "kraken",
		},
		{
			name:    "binance current export",
			headers: []string{"Date(UTC)", "Pair", "Base Asset", "Quote Asset", "Type", "Price", "Amount", "Total", "Fee", "Fee Coin"},
			adapter: "binance",
		},
		{
			name:    "coinbase fills export",
			headers: []string{"trade id", "product", "side", "created at", "size", "size unit", "price", "fee", "total", "price/fee/total unit"},
			adapter: "coinbase",
		},
		{
			name:    "strike account statement",
			headers: []string{"Transaction ID", "Initiated Date (UTC)", "Initiated Time (UTC)", "Completed (UTC)", "Transaction Type", "State", "Amount USD", "Fee USD", "Amount BTC", "BTC Price", "Destination", "Description"},
			adapter: "strike",
		},
		{
			name:    "own export round trip",
			headers: []string{"id", "type", "btc_amount", "price_per_btc", "total_amount", "fees", "currency", "transaction_date", "notes"},
			adapter: "legacy",
		},
		{
			name:    "unrecognized headers fall back to standard",
			headers: []string{"foo", "bar", "baz"},
			adapter: "standard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Detect(tt.headers)
			require.NotNil(t, got)
			assert.Equal(t, tt.adapter, got.Name())
		})
	}
}

func TestDetectTieGoesToEarlierAdapter(t *testing.T) {
	first := &stubAdapter{name: "first", gate: true, score: 60}
	second := &stubAdapter{name: "second", gate: true, score: 60}
	fallback := &stubAdapter{name: "fallback", gate: true, score: 0}

	r := &Registry{adapters: []Adapter{first, second, fallback}, fallback: fallback}
	assert.Equal(t, "first", r.Detect([]string{"a"}).Name())
}

func TestDetectBelowFloorUsesFallback(t *testing.T) {
	weak := &stubAdapter{name: "weak", gate: true, score: confidenceFloor - 1}
	fallback := &stubAdapter{name: "fallback", gate: true, score: 0}

	r := &Registry{adapters: []Adapter{weak, fallback}, fallback: fallback}
	assert.Equal(t, "fallback", r.Detect([]string{"a"}).Name())
}

func TestDetectNoGatePassesUsesFallback(t *testing.T) {
	closed := &stubAdapter{name: "closed", gate: false, score: 100}
	fallback := &stubAdapter{name: "fallback", gate: false, score: 0}

	r := &Registry{adapters: []Adapter{closed, fallback}, fallback: fallback}
	assert.Equal(t, "fallback", r.Detect([]string{"a"}).Name())
}

func TestRegistryOrderIsStable(t *testing.T) {
	var names []string
	for _, a := range NewRegistry().Adapters() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"kraken", "binance", "coinbase", "strike", "legacy", "standard"}, names)
}
