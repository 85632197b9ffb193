package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PettyCashService reconciles cash advanced to execution agents against
// the agents' recorded expenses and any cash returned. Petty-cash rows and
// expense rows live in separate tables joined only by the shared
// expense_type value; an expense may be funded from petty cash or not.
type PettyCashService struct {
	pettyCashRepo repository.PettyCashRepository
	expenseRepo   repository.ExpenseRepository
	periodRepo    repository.PeriodRepository
}

// NewPettyCashService creates a new petty cash service
func NewPettyCashService(pettyCashRepo repository.PettyCashRepository, expenseRepo repository.ExpenseRepository, periodRepo repository.PeriodRepository) *PettyCashService {
	return &PettyCashService{
		pettyCashRepo: pettyCashRepo,
		expenseRepo:   expenseRepo,
		periodRepo:    periodRepo,
	}
}

// Create persists a petty-cash transaction. The amount is stored
// non-negative regardless of what the caller supplied.
func (s *PettyCashService) Create(ctx context.Context, tx *models.PettyCashTransaction) error {
	if tx.ProjectID == 0 {
		return ErrProjectRequired
	}
	return s.pettyCashRepo.Create(ctx, tx)
}

// Update persists changes to a petty-cash transaction.
func (s *PettyCashService) Update(ctx context.Context, tx *models.PettyCashTransaction) error {
	if tx.ProjectID == 0 {
		return ErrProjectRequired
	}
	return s.pettyCashRepo.Update(ctx, tx)
}

// Delete removes a petty-cash transaction.
func (s *PettyCashService) Delete(ctx context.Context, id uint) error {
	return s.pettyCashRepo.Delete(ctx, id)
}

// GetByID loads one petty-cash transaction.
func (s *PettyCashService) GetByID(ctx context.Context, id uint) (*models.PettyCashTransaction, error) {
	tx, err := s.pettyCashRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

// ListByProject lists a project's petty-cash transactions in date order.
func (s *PettyCashService) ListByProject(ctx context.Context, projectID uint) ([]models.PettyCashTransaction, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.pettyCashRepo.FindByProject(ctx, projectID)
}

// GetBalance returns the agent's overall balance, unscoped by time:
// receipts - expenses - returns. Positive means the agent owes the fund.
func (s *PettyCashService) GetBalance(ctx context.Context, projectID uint, expenseType string) (models.PettyCashBalance, error) {
	if projectID == 0 {
		return models.PettyCashBalance{}, ErrProjectRequired
	}
	return s.balanceUntil(ctx, projectID, expenseType, nil, nil)
}

// GetBalanceByPeriod returns the agent's balance as of the end of the
// given period. Receipts and returns are bounded by date_gregorian;
// expenses follow the dual path (period-assigned by (year, month),
// unassigned by created_at).
func (s *PettyCashService) GetBalanceByPeriod(ctx context.Context, projectID uint, expenseType string, periodID uint) (models.PettyCashBalance, error) {
	if projectID == 0 {
		return models.PettyCashBalance{}, ErrProjectRequired
	}
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return models.PettyCashBalance{}, fmt.Errorf("failed to load period: %w", err)
	}
	until := period.EndDateGregorian
	return s.balanceUntil(ctx, projectID, expenseType, period, &until)
}

// balanceUntil computes one agent's snapshot. A nil period means the whole
// project; otherwise receipts/returns are bounded by until and expenses by
// the period's (year, month) ordering plus the created_at fallback.
func (s *PettyCashService) balanceUntil(ctx context.Context, projectID uint, expenseType string, period *models.Period, until *time.Time) (models.PettyCashBalance, error) {
	receipts, err := s.pettyCashRepo.SumByType(ctx, projectID, expenseType, models.PettyCashTypeReceipt, nil, until)
	if err != nil {
		return models.PettyCashBalance{}, fmt.Errorf("failed to sum receipts: %w", err)
	}
	returns, err := s.pettyCashRepo.SumByType(ctx, projectID, expenseType, models.PettyCashTypeReturn, nil, until)
	if err != nil {
		return models.PettyCashBalance{}, fmt.Errorf("failed to sum returns: %w", err)
	}

	var expenses decimal.Decimal
	if period == nil {
		expenses, err = s.expenseRepo.SumByType(ctx, projectID, expenseType)
	} else {
		expenses, err = s.expenseRepo.SumByTypeThroughPeriod(ctx, projectID, expenseType, period)
	}
	if err != nil {
		return models.PettyCashBalance{}, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return models.PettyCashBalance{
		ExpenseType:   expenseType,
		Label:         models.ExpenseTypeLabel(expenseType),
		TotalReceipts: receipts,
		TotalExpenses: expenses,
		TotalReturns:  returns,
		Balance:       receipts.Sub(expenses).Sub(returns),
	}, nil
}

// GetAllBalances returns one snapshot per execution agent. Contractor and
// "other" rows are never petty-cash funded, so they are excluded.
func (s *PettyCashService) GetAllBalances(ctx context.Context, projectID uint) ([]models.PettyCashBalance, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}

	balances := make([]models.PettyCashBalance, 0, len(models.PettyCashAgentTypes))
	for _, agent := range models.PettyCashAgentTypes {
		balance, err := s.GetBalance(ctx, projectID, agent)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

// GetPeriodBalanceTrend returns one record per period in (year, month)
// ascending order, optionally bounded. Each record carries the
// period-local movement and the cumulative balance through the period's
// end; consumers need both.
func (s *PettyCashService) GetPeriodBalanceTrend(ctx context.Context, projectID uint, expenseType string, startPeriodID, endPeriodID *uint) ([]models.PeriodBalancePoint, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}

	periods, err := s.periodRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load periods: %w", err)
	}

	var start, end *models.Period
	if startPeriodID != nil {
		if start, err = s.periodRepo.FindByID(ctx, *startPeriodID); err != nil {
			return nil, fmt.Errorf("failed to load start period: %w", err)
		}
	}
	if endPeriodID != nil {
		if end, err = s.periodRepo.FindByID(ctx, *endPeriodID); err != nil {
			return nil, fmt.Errorf("failed to load end period: %w", err)
		}
	}

	trend := make([]models.PeriodBalancePoint, 0, len(periods))
	for i := range periods {
		period := &periods[i]
		if start != nil && period.Before(start) {
			continue
		}
		if end != nil && end.Before(period) {
			continue
		}

		from := period.StartDateGregorian
		until := period.EndDateGregorian
		receipts, err := s.pettyCashRepo.SumByType(ctx, projectID, expenseType, models.PettyCashTypeReceipt, &from, &until)
		if err != nil {
			return nil, fmt.Errorf("failed to sum period receipts: %w", err)
		}
		returns, err := s.pettyCashRepo.SumByType(ctx, projectID, expenseType, models.PettyCashTypeReturn, &from, &until)
		if err != nil {
			return nil, fmt.Errorf("failed to sum period returns: %w", err)
		}
		expenses, err := s.expenseRepo.SumByTypeWithinPeriod(ctx, projectID, expenseType, period.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum period expenses: %w", err)
		}

		cumulative, err := s.GetBalanceByPeriod(ctx, projectID, expenseType, period.ID)
		if err != nil {
			return nil, err
		}

		trend = append(trend, models.PeriodBalancePoint{
			PeriodID:          period.ID,
			Label:             period.Label,
			Year:              period.Year,
			MonthNumber:       period.MonthNumber,
			Receipts:          receipts,
			Returns:           returns,
			Expenses:          expenses,
			PeriodBalance:     receipts.Sub(expenses).Sub(returns),
			CumulativeBalance: cumulative.Balance,
		})
	}
	return trend, nil
}
