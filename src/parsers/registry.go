package parsers

import (
	"github.com/wilqq-the/btc-tracker/src/logger"
	"github.com/wilqq-the/btc-tracker/src/parsers/binance"
	"github.com/wilqq-the/btc-tracker/src/parsers/coinbase"
	"github.com/wilqq-the/btc-tracker/src/parsers/kraken"
	"github.com/wilqq-the/btc-tracker/src/parsers/legacy"
	"github.com/wilqq-the/btc-tracker/src/parsers/standard"
	"github.com/wilqq-the/btc-tracker/src/parsers/strike"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

// confidenceFloor is the minimum winning score; below it the detection
// falls back to the Standard adapter even if a purpose-built adapter's
// gate passed.
const confidenceFloor = 30

// Registry holds the ordered, immutable adapter list. Order matters:
// adapters are registered from most-specific to least-specific and an
// earlier adapter wins a score tie.
type Registry struct {
	adapters []Adapter
	fallback Adapter
}

// NewRegistry constructs the process-wide registry. It is built once at
// startup and never mutated.
func NewRegistry() *Registry {
	fallback := standard.NewAdapter()
	return &Registry{
		adapters: []Adapter{
			kraken.NewAdapter(),
			binance.NewAdapter(),
			coinbase.NewAdapter(),
			strike.NewAdapter(),
			legacy.NewAdapter(),
			fallback,
		},
		fallback: fallback,
	}
}

// Adapters exposes the registration order, mostly for tests and the
// detect-only endpoint's documentation of supported formats.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// Detect picks the adapter for a header row. Each adapter whose gate
// passes is scored; the strictly highest score wins and ties resolve to
// the earlier-registered adapter. No gate passing, or a winning score
// under the floor, selects the Standard fallback.
func (r *Registry) Detect(headerRow []string) Adapter {
	headers := utils.NormalizeHeaders(headerRow)

	var winner Adapter
	best := -1
	for _, a := range r.adapters {
		if !a.CanAttempt(headers) {
			continue
		}
		score := a.Confidence(headers)
		if score > best {
			best = score
			winner = a
		}
	}

	if winner == nil || best < confidenceFloor {
		if logger.L != nil {
			logger.L.Debug("Format detection fell back to standard adapter", "bestScore", best)
		}
		return r.fallback
	}
	if logger.L != nil {
		logger.L.Debug("Format detected", "adapter", winner.Name(), "score", best)
	}
	return winner
}
