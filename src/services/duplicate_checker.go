package services

import (
	"fmt"
	"strings"

	"github.com/wilqq-the/btc-tracker/src/models"
)

// DuplicateCheckMode selects how strictly an incoming record is matched
// against previously stored records sharing the same owner and date.
type DuplicateCheckMode string

const (
	// DuplicateCheckOff imports every valid record unconditionally.
	DuplicateCheckOff DuplicateCheckMode = "off"
	// DuplicateCheckLoose matches on date and BTC amount.
	DuplicateCheckLoose DuplicateCheckMode = "loose"
	// DuplicateCheckStandard additionally matches kind and price.
	DuplicateCheckStandard DuplicateCheckMode = "standard"
	// DuplicateCheckStrict matches the full fingerprint including
	// currency, total, fees and notes.
	DuplicateCheckStrict DuplicateCheckMode = "strict"
)

// ParseDuplicateCheckMode parses the caller-supplied mode, defaulting to
// standard when absent. Unknown values are rejected rather than silently
// downgraded.
func ParseDuplicateCheckMode(s string) (DuplicateCheckMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DuplicateCheckStandard, nil
	case string(DuplicateCheckOff):
		return DuplicateCheckOff, nil
	case string(DuplicateCheckLoose):
		return DuplicateCheckLoose, nil
	case string(DuplicateCheckStandard):
		return DuplicateCheckStandard, nil
	case string(DuplicateCheckStrict):
		return DuplicateCheckStrict, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDuplicateMode, s)
}

// isDuplicate reports whether candidate matches any of existing under the
// given mode. Callers pass records already filtered to the candidate's
// owner and date.
func isDuplicate(candidate *models.CanonicalTransaction, existing []models.CanonicalTransaction, mode DuplicateCheckMode) bool {
	if mode == DuplicateCheckOff {
		return false
	}
	for i := range existing {
		if matchesFingerprint(candidate, &existing[i], mode) {
			return true
		}
	}
	return false
}

func matchesFingerprint(a, b *models.CanonicalTransaction, mode DuplicateCheckMode) bool {
	if a.TransactionDate != b.TransactionDate || !a.BTCAmount.Equal(b.BTCAmount) {
		return false
	}
	if mode == DuplicateCheckLoose {
		return true
	}
	if a.Type != b.Type || !a.PricePerBTC.Equal(b.PricePerBTC) {
		return false
	}
	if mode == DuplicateCheckStandard {
		return true
	}
	return a.Currency == b.Currency &&
		a.TotalAmount.Equal(b.TotalAmount) &&
		a.Fees.Equal(b.Fees) &&
		a.FeesCurrency == b.FeesCurrency &&
		a.Notes == b.Notes
}
