package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AuditService cross-checks every repository-computed total against an
// independently computed raw aggregate over the same base table and
// filter. The repository layer is deliberately bypassed on the raw side;
// the two paths agreeing is the engine's core acceptance property.
type AuditService struct {
	aggregation *AggregationService
	periodRepo  repository.PeriodRepository
	db          *gorm.DB
	log         *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(aggregation *AggregationService, periodRepo repository.PeriodRepository, db *gorm.DB, log *slog.Logger) *AuditService {
	return &AuditService{
		aggregation: aggregation,
		periodRepo:  periodRepo,
		db:          db,
		log:         log,
	}
}

func (s *AuditService) rawSum(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := s.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error
	return row.Total, err
}

func compare(mismatches []models.Mismatch, check, scope string, expected, actual decimal.Decimal) []models.Mismatch {
	if expected.Equal(actual) {
		return mismatches
	}
	return append(mismatches, models.Mismatch{
		Check:    check,
		Scope:    scope,
		Expected: expected.String(),
		Actual:   actual.String(),
	})
}

// Verify runs the full cross-check for one project: project-level totals
// for every entity type, plus period and cumulative totals for up to
// periodLimit periods (0 = all). An empty result is a pass.
func (s *AuditService) Verify(ctx context.Context, projectID uint, periodLimit int) ([]models.Mismatch, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}

	var mismatches []models.Mismatch

	mismatches, err := s.verifyProjectTotals(ctx, projectID, mismatches)
	if err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load periods: %w", err)
	}
	if periodLimit > 0 && len(periods) > periodLimit {
		periods = periods[:periodLimit]
	}

	for i := range periods {
		mismatches, err = s.verifyPeriod(ctx, projectID, &periods[i], mismatches)
		if err != nil {
			return nil, err
		}
	}

	if len(mismatches) > 0 {
		s.log.Warn("ssot verification failed", "project_id", projectID, "mismatches", len(mismatches))
	}
	return mismatches, nil
}

func (s *AuditService) verifyProjectTotals(ctx context.Context, projectID uint, mismatches []models.Mismatch) ([]models.Mismatch, error) {
	scope := fmt.Sprintf("project %d", projectID)

	totals, err := s.aggregation.TransactionProjectTotals(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rawDeposits, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM transactions WHERE project_id = ? AND transaction_type IN (?, ?)`,
		projectID, models.TransactionTypePrincipalDeposit, models.TransactionTypeLoanDeposit)
	if err != nil {
		return nil, err
	}
	rawWithdrawals, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM transactions WHERE project_id = ? AND transaction_type = ?`,
		projectID, models.TransactionTypePrincipalWithdrawal)
	if err != nil {
		return nil, err
	}
	rawProfits, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM transactions WHERE project_id = ? AND transaction_type = ?`,
		projectID, models.TransactionTypeProfitAccrual)
	if err != nil {
		return nil, err
	}

	mismatches = compare(mismatches, "transaction.deposits", scope, rawDeposits, totals.Deposits)
	mismatches = compare(mismatches, "transaction.withdrawals", scope, rawWithdrawals, totals.Withdrawals)
	mismatches = compare(mismatches, "transaction.profits", scope, rawProfits, totals.Profits)
	mismatches = compare(mismatches, "transaction.net_capital", scope, rawDeposits.Add(rawWithdrawals), totals.NetCapital)

	expenseTotal, err := s.aggregation.ExpenseProjectTotal(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rawExpenses, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM expenses WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, err
	}
	mismatches = compare(mismatches, "expense.total", scope, rawExpenses, expenseTotal)

	saleTotal, err := s.aggregation.SaleProjectTotal(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rawSales, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM sales WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, err
	}
	mismatches = compare(mismatches, "sale.total", scope, rawSales, saleTotal)

	pettyCashTotal, err := s.aggregation.PettyCashProjectTotal(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rawPettyCash, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM petty_cash_transactions WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, err
	}
	mismatches = compare(mismatches, "petty_cash.total", scope, rawPettyCash, pettyCashTotal)

	unitStats, err := s.aggregation.UnitProjectStats(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rawArea, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(area), 0) AS total FROM units WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, err
	}
	mismatches = compare(mismatches, "unit.total_area", scope, rawArea, unitStats.TotalArea)

	return mismatches, nil
}

func (s *AuditService) verifyPeriod(ctx context.Context, projectID uint, period *models.Period, mismatches []models.Mismatch) ([]models.Mismatch, error) {
	scope := fmt.Sprintf("project %d period %d/%d", projectID, period.Year, period.MonthNumber)

	periodTotals, err := s.aggregation.TransactionPeriodTotals(ctx, projectID, period.ID)
	if err != nil {
		return nil, err
	}
	rawPeriodDeposits, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM transactions WHERE project_id = ? AND period_id = ? AND transaction_type IN (?, ?)`,
		projectID, period.ID, models.TransactionTypePrincipalDeposit, models.TransactionTypeLoanDeposit)
	if err != nil {
		return nil, err
	}
	mismatches = compare(mismatches, "transaction.period_deposits", scope, rawPeriodDeposits, periodTotals.Deposits)

	cumulative, err := s.aggregation.ExpenseCumulativeUntil(ctx, projectID, period.ID)
	if err != nil {
		return nil, err
	}
	rawCumulative, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(expenses.amount), 0) AS total
		 FROM expenses JOIN periods ON periods.id = expenses.period_id
		 WHERE expenses.project_id = ? AND (periods.year < ? OR (periods.year = ? AND periods.month_number <= ?))`,
		projectID, period.Year, period.Year, period.MonthNumber)
	if err != nil {
		return nil, err
	}
	mismatches = compare(mismatches, "expense.cumulative_until", scope, rawCumulative, cumulative)

	saleCumulative, err := s.aggregation.SaleCumulativeUntil(ctx, projectID, period.ID)
	if err != nil {
		return nil, err
	}
	rawSaleCumulative, err := s.rawSum(ctx,
		`SELECT COALESCE(SUM(sales.amount), 0) AS total
		 FROM sales JOIN periods ON periods.id = sales.period_id
		 WHERE sales.project_id = ? AND (periods.year < ? OR (periods.year = ? AND periods.month_number <= ?))`,
		projectID, period.Year, period.Year, period.MonthNumber)
	if err != nil {
		return nil, err
	}
	mismatches = compare(mismatches, "sale.cumulative_until", scope, rawSaleCumulative, saleCumulative)

	return mismatches, nil
}
