package services

import (
	"errors"

	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/processors"
)

var (
	// ErrUnsupportedFileType aborts an import whose declared extension is
	// neither csv nor json.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrParsingFailed aborts an import whose content could not be read
	// at all (empty file, malformed JSON).
	ErrParsingFailed = errors.New("failed to parse import file")

	// ErrInvalidDuplicateMode rejects an unknown duplicateCheckMode value.
	ErrInvalidDuplicateMode = errors.New("invalid duplicate check mode")
)

// ImportRequest is one inbound import operation.
type ImportRequest struct {
	Content    []byte
	Extension  string // "csv" or "json", from the uploaded filename
	UserID     int64
	Mode       DuplicateCheckMode
	DetectOnly bool
}

// ImportService runs the import pipeline: tokenize, detect, transform,
// validate, resolve duplicates, persist, account.
type ImportService interface {
	// ProcessImport runs a full import and returns the per-row outcome.
	ProcessImport(req ImportRequest) (*models.ImportResult, error)

	// DetectFormat runs only format detection and returns the winning
	// adapter's name.
	DetectFormat(content []byte) (string, error)

	// GetTransactions returns the owner's stored records in insertion
	// order.
	GetTransactions(userID int64) ([]models.CanonicalTransaction, error)

	// DeleteAllTransactions wipes the owner's ledger.
	DeleteAllTransactions(userID int64) error
}

// PortfolioService serves the cached downstream summary and is refreshed
// after imports.
type PortfolioService interface {
	GetSummary(userID int64) (processors.PortfolioSummary, error)
	Refresh(userID int64) error
	Invalidate(userID int64)
}
