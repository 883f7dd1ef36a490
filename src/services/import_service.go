package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wilqq-the/btc-tracker/src/logger"
	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/parsers"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

type importServiceImpl struct {
	registry         *parsers.Registry
	portfolioService PortfolioService
}

// NewImportService wires the orchestrator with the adapter registry and
// the downstream portfolio recomputation.
func NewImportService(registry *parsers.Registry, portfolioService PortfolioService) ImportService {
	return &importServiceImpl{
		registry:         registry,
		portfolioService: portfolioService,
	}
}

func (s *importServiceImpl) ProcessImport(req ImportRequest) (*models.ImportResult, error) {
	start := time.Now()
	logger.L.Info("ProcessImport START", "userID", req.UserID, "extension", req.Extension, "mode", req.Mode)

	var result *models.ImportResult
	var err error
	switch strings.ToLower(req.Extension) {
	case "csv":
		result, err = s.processCSV(req)
	case "json":
		result, err = s.processJSON(req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, req.Extension)
	}
	if err != nil {
		return nil, err
	}

	if result.Imported > 0 {
		// The downstream recomputation must never fail the import.
		if refreshErr := s.portfolioService.Refresh(req.UserID); refreshErr != nil {
			logger.L.Error("Portfolio refresh failed after import", "userID", req.UserID, "error", refreshErr)
		}
	}

	logger.L.Info("ProcessImport END", "userID", req.UserID,
		"imported", result.Imported, "skipped", result.Skipped,
		"invalid", result.Details.InvalidTransactions, "duration", time.Since(start))
	return result, nil
}

func (s *importServiceImpl) DetectFormat(content []byte) (string, error) {
	rows := parsers.SplitRows(string(content))
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrParsingFailed)
	}
	adapter := s.registry.Detect(parsers.TokenizeLine(rows[0]))
	return adapter.Name(), nil
}

func (s *importServiceImpl) processCSV(req ImportRequest) (*models.ImportResult, error) {
	rows := parsers.SplitRows(string(req.Content))
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrParsingFailed)
	}

	headerFields := parsers.TokenizeLine(rows[0])
	adapter := s.registry.Detect(headerFields)
	headerIdx := utils.BuildHeaderIndex(headerFields)
	logger.L.Info("Import format detected", "userID", req.UserID, "adapter", adapter.Name())

	result := models.NewImportResult()
	for _, raw := range rows[1:] {
		fields := parsers.TokenizeLine(raw)
		outcome := adapter.ParseRow(fields, headerIdx)
		switch {
		case outcome.Err != nil:
			result.RecordInvalid(raw, outcome.Err.Error())
		case outcome.Tx == nil:
			result.RecordSkipped(raw, outcome.SkipReason)
		default:
			s.resolveAndPersist(req, outcome.Tx, raw, result)
		}
	}
	return result, nil
}

// processJSON imports already-canonical-shaped records, bypassing the
// adapter pipeline entirely; validation is the same one adapter output
// goes through.
func (s *importServiceImpl) processJSON(req ImportRequest) (*models.ImportResult, error) {
	transactions, err := decodeJSONTransactions(req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	result := models.NewImportResult()
	for i := range transactions {
		tx := &transactions[i]
		raw := jsonRowDescription(tx, i)

		tx.ID = 0
		tx.Normalize()
		if tx.Notes == "" {
			tx.Notes = "Imported from JSON"
		}
		if err := tx.Validate(); err != nil {
			result.RecordInvalid(raw, err.Error())
			continue
		}
		s.resolveAndPersist(req, tx, raw, result)
	}
	return result, nil
}

// resolveAndPersist applies the duplicate policy and writes one record.
// Rows are resolved strictly in source order, so a record imported earlier
// in the same file is visible to later duplicate checks.
func (s *importServiceImpl) resolveAndPersist(req ImportRequest, tx *models.CanonicalTransaction, raw string, result *models.ImportResult) {
	if req.Mode != DuplicateCheckOff {
		existing, err := fetchTransactionsByDate(req.UserID, tx.TransactionDate)
		if err != nil {
			result.RecordInvalid(raw, fmt.Sprintf("duplicate check failed: %v", err))
			return
		}
		if isDuplicate(tx, existing, req.Mode) {
			result.RecordDuplicate(raw, fmt.Sprintf("duplicate (%s mode)", req.Mode))
			return
		}
	}

	if err := insertTransaction(req.UserID, tx); err != nil {
		logger.L.Warn("Persistence failed for row, continuing", "userID", req.UserID, "error", err)
		result.RecordInvalid(raw, fmt.Sprintf("persistence failed: %v", err))
		return
	}
	result.RecordImported()
}

func (s *importServiceImpl) GetTransactions(userID int64) ([]models.CanonicalTransaction, error) {
	return fetchUserTransactions(userID)
}

func (s *importServiceImpl) DeleteAllTransactions(userID int64) error {
	if err := deleteUserTransactions(userID); err != nil {
		return err
	}
	s.portfolioService.Invalidate(userID)
	return nil
}

// decodeJSONTransactions accepts either a bare array of canonical-shaped
// objects or an object wrapping it in a "transactions" field.
func decodeJSONTransactions(content []byte) ([]models.CanonicalTransaction, error) {
	var direct []models.CanonicalTransaction
	if err := json.Unmarshal(content, &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Transactions []models.CanonicalTransaction `json:"transactions"`
	}
	if err := json.Unmarshal(content, &wrapped); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if wrapped.Transactions == nil {
		return nil, fmt.Errorf("malformed JSON: expected an array or a transactions field")
	}
	return wrapped.Transactions, nil
}

func jsonRowDescription(tx *models.CanonicalTransaction, i int) string {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Sprintf("transaction #%d", i+1)
	}
	return string(b)
}
