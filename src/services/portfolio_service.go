package services

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/wilqq-the/btc-tracker/src/logger"
	"github.com/wilqq-the/btc-tracker/src/processors"
)

const (
	ckPortfolioSummary = "portfolio_summary_user_%d"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type portfolioServiceImpl struct {
	summaryProcessor *processors.SummaryProcessor
	reportCache      *cache.Cache
}

// NewPortfolioService builds the cached downstream view over the ledger.
func NewPortfolioService(summaryProcessor *processors.SummaryProcessor, reportCache *cache.Cache) PortfolioService {
	return &portfolioServiceImpl{
		summaryProcessor: summaryProcessor,
		reportCache:      reportCache,
	}
}

func (s *portfolioServiceImpl) GetSummary(userID int64) (processors.PortfolioSummary, error) {
	cacheKey := fmt.Sprintf(ckPortfolioSummary, userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for portfolio summary", "userID", userID)
		return cached.(processors.PortfolioSummary), nil
	}

	logger.L.Info("Cache miss for portfolio summary, recalculating from DB", "userID", userID)
	return s.recompute(userID)
}

// Refresh recomputes the summary eagerly after an import so the next read
// is warm.
func (s *portfolioServiceImpl) Refresh(userID int64) error {
	s.Invalidate(userID)
	_, err := s.recompute(userID)
	return err
}

func (s *portfolioServiceImpl) Invalidate(userID int64) {
	s.reportCache.Delete(fmt.Sprintf(ckPortfolioSummary, userID))
	logger.L.Debug("Invalidated portfolio cache for user", "userID", userID)
}

func (s *portfolioServiceImpl) recompute(userID int64) (processors.PortfolioSummary, error) {
	transactions, err := fetchUserTransactions(userID)
	if err != nil {
		return processors.PortfolioSummary{}, err
	}
	summary := s.summaryProcessor.Process(transactions)
	s.reportCache.Set(fmt.Sprintf(ckPortfolioSummary, userID), summary, DefaultCacheExpiration)
	return summary, nil
}
