package services

import (
	"context"
	"fmt"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/shopspring/decimal"
)

// AggregationService is the single read path for financial totals. Every
// report, dashboard figure and export goes through it; nothing else sums
// transaction, expense, sale or petty-cash rows.
type AggregationService struct {
	txRepo        repository.TransactionRepository
	expenseRepo   repository.ExpenseRepository
	saleRepo      repository.SaleRepository
	pettyCashRepo repository.PettyCashRepository
	unitRepo      repository.UnitRepository
	periodRepo    repository.PeriodRepository
}

// NewAggregationService creates a new aggregation service
func NewAggregationService(
	txRepo repository.TransactionRepository,
	expenseRepo repository.ExpenseRepository,
	saleRepo repository.SaleRepository,
	pettyCashRepo repository.PettyCashRepository,
	unitRepo repository.UnitRepository,
	periodRepo repository.PeriodRepository,
) *AggregationService {
	return &AggregationService{
		txRepo:        txRepo,
		expenseRepo:   expenseRepo,
		saleRepo:      saleRepo,
		pettyCashRepo: pettyCashRepo,
		unitRepo:      unitRepo,
		periodRepo:    periodRepo,
	}
}

// TransactionProjectTotals returns the four transaction buckets over the
// whole project.
func (s *AggregationService) TransactionProjectTotals(ctx context.Context, projectID uint) (models.TransactionTotals, error) {
	if projectID == 0 {
		return models.TransactionTotals{}, ErrProjectRequired
	}
	return s.txRepo.ProjectTotals(ctx, projectID)
}

// TransactionPeriodTotals returns the transaction buckets for one period.
func (s *AggregationService) TransactionPeriodTotals(ctx context.Context, projectID, periodID uint) (models.TransactionTotals, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return models.TransactionTotals{}, fmt.Errorf("failed to load period: %w", err)
	}
	return s.txRepo.PeriodTotals(ctx, projectID, period)
}

// TransactionCumulativeUntil returns the transaction buckets accumulated
// through the end of the given period.
func (s *AggregationService) TransactionCumulativeUntil(ctx context.Context, projectID, periodID uint) (models.TransactionTotals, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return models.TransactionTotals{}, fmt.Errorf("failed to load period: %w", err)
	}
	return s.txRepo.CumulativeUntil(ctx, projectID, period)
}

// TransactionTotals applies an ad-hoc filter set, additionally exposing
// the per-type deposit buckets and a row count.
func (s *AggregationService) TransactionTotals(ctx context.Context, projectID uint, filters models.TransactionFilters) (models.TransactionBreakdown, error) {
	if projectID == 0 {
		return models.TransactionBreakdown{}, ErrProjectRequired
	}
	return s.txRepo.Totals(ctx, projectID, filters)
}

// ExpenseProjectTotal sums all expenses of a project.
func (s *AggregationService) ExpenseProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	if projectID == 0 {
		return decimal.Zero, ErrProjectRequired
	}
	return s.expenseRepo.ProjectTotal(ctx, projectID)
}

// ExpensePeriodTotal sums the expenses assigned to one period.
func (s *AggregationService) ExpensePeriodTotal(ctx context.Context, projectID, periodID uint) (decimal.Decimal, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load period: %w", err)
	}
	return s.expenseRepo.PeriodTotal(ctx, projectID, period)
}

// ExpenseCumulativeUntil sums expenses through the end of the given period.
func (s *AggregationService) ExpenseCumulativeUntil(ctx context.Context, projectID, periodID uint) (decimal.Decimal, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load period: %w", err)
	}
	return s.expenseRepo.CumulativeUntil(ctx, projectID, period)
}

// ExpenseTotal applies an ad-hoc expense filter set.
func (s *AggregationService) ExpenseTotal(ctx context.Context, projectID uint, filters models.ExpenseFilters) (decimal.Decimal, error) {
	if projectID == 0 {
		return decimal.Zero, ErrProjectRequired
	}
	return s.expenseRepo.Total(ctx, projectID, filters)
}

// SaleProjectTotal sums all sales of a project.
func (s *AggregationService) SaleProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	if projectID == 0 {
		return decimal.Zero, ErrProjectRequired
	}
	return s.saleRepo.ProjectTotal(ctx, projectID)
}

// SalePeriodTotal sums the sales of one period.
func (s *AggregationService) SalePeriodTotal(ctx context.Context, projectID, periodID uint) (decimal.Decimal, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load period: %w", err)
	}
	return s.saleRepo.PeriodTotal(ctx, projectID, period)
}

// SaleCumulativeUntil sums sales through the end of the given period.
func (s *AggregationService) SaleCumulativeUntil(ctx context.Context, projectID, periodID uint) (decimal.Decimal, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load period: %w", err)
	}
	return s.saleRepo.CumulativeUntil(ctx, projectID, period)
}

// PettyCashProjectTotal sums the absolute petty-cash volume of a project.
func (s *AggregationService) PettyCashProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	if projectID == 0 {
		return decimal.Zero, ErrProjectRequired
	}
	return s.pettyCashRepo.ProjectTotal(ctx, projectID)
}

// UnitProjectStats aggregates a project's units.
func (s *AggregationService) UnitProjectStats(ctx context.Context, projectID uint) (models.UnitStats, error) {
	if projectID == 0 {
		return models.UnitStats{}, ErrProjectRequired
	}
	return s.unitRepo.ProjectStats(ctx, projectID)
}
