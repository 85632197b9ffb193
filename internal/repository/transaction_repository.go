package repository

import (
	"context"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	CreateBatch(ctx context.Context, txs []models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Transaction, error)
	FindCapitalWithDaysRemaining(ctx context.Context, projectID uint) ([]models.Transaction, error)
	DeleteProfitAccruals(ctx context.Context, projectID uint) (int64, error)
	CountProfitAccruals(ctx context.Context, projectID uint) (int64, error)

	// Aggregation. Empty filter sets yield zero-valued totals, never errors.
	ProjectTotals(ctx context.Context, projectID uint) (models.TransactionTotals, error)
	PeriodTotals(ctx context.Context, projectID uint, period *models.Period) (models.TransactionTotals, error)
	CumulativeUntil(ctx context.Context, projectID uint, period *models.Period) (models.TransactionTotals, error)
	Totals(ctx context.Context, projectID uint, filters models.TransactionFilters) (models.TransactionBreakdown, error)
	DistinctInvestorIDs(ctx context.Context, projectID uint) ([]uint, error)
	ActiveDays(ctx context.Context, projectID uint) (int64, error)

	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) TransactionRepository
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{db: tx}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) CreateBatch(ctx context.Context, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&txs).Error
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).Preload("Investor").First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("date_gregorian ASC, id ASC").
		Find(&txs).Error
	return txs, err
}

// FindCapitalWithDaysRemaining retrieves the transactions profit accrues on:
// capital types with a positive day-remaining window.
func (r *transactionRepository) FindCapitalWithDaysRemaining(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Where("transaction_type IN ?", models.CapitalTransactionTypes).
		Where("day_remaining > 0").
		Order("date_gregorian ASC, id ASC").
		Find(&txs).Error
	return txs, err
}

// DeleteProfitAccruals removes every profit_accrual row of the project,
// system-generated or not. Stale manual overrides must not survive a recompute.
func (r *transactionRepository) DeleteProfitAccruals(ctx context.Context, projectID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND transaction_type = ?", projectID, models.TransactionTypeProfitAccrual).
		Delete(&models.Transaction{})
	return result.RowsAffected, result.Error
}

func (r *transactionRepository) CountProfitAccruals(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("project_id = ? AND transaction_type = ?", projectID, models.TransactionTypeProfitAccrual).
		Count(&count).Error
	return count, err
}

// totalsRow mirrors the bucket select below.
type totalsRow struct {
	Deposits         decimal.Decimal
	Withdrawals      decimal.Decimal
	Profits          decimal.Decimal
	PrincipalDeposit decimal.Decimal
	LoanDeposit      decimal.Decimal
	Count            int64
}

const totalsSelect = `
COALESCE(SUM(CASE WHEN transactions.transaction_type IN ('principal_deposit', 'loan_deposit') THEN transactions.amount ELSE 0 END), 0) AS deposits,
COALESCE(SUM(CASE WHEN transactions.transaction_type = 'principal_withdrawal' THEN transactions.amount ELSE 0 END), 0) AS withdrawals,
COALESCE(SUM(CASE WHEN transactions.transaction_type = 'profit_accrual' THEN transactions.amount ELSE 0 END), 0) AS profits,
COALESCE(SUM(CASE WHEN transactions.transaction_type = 'principal_deposit' THEN transactions.amount ELSE 0 END), 0) AS principal_deposit,
COALESCE(SUM(CASE WHEN transactions.transaction_type = 'loan_deposit' THEN transactions.amount ELSE 0 END), 0) AS loan_deposit,
COUNT(transactions.id) AS count`

func (r *transactionRepository) scanTotals(query *gorm.DB) (totalsRow, error) {
	var row totalsRow
	err := query.Select(totalsSelect).Scan(&row).Error
	return row, err
}

func (row totalsRow) toTotals() models.TransactionTotals {
	return models.TransactionTotals{
		Deposits:    row.Deposits,
		Withdrawals: row.Withdrawals,
		Profits:     row.Profits,
		NetCapital:  row.Deposits.Add(row.Withdrawals),
	}
}

func (r *transactionRepository) ProjectTotals(ctx context.Context, projectID uint) (models.TransactionTotals, error) {
	row, err := r.scanTotals(r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("transactions.project_id = ?", projectID))
	return row.toTotals(), err
}

func (r *transactionRepository) PeriodTotals(ctx context.Context, projectID uint, period *models.Period) (models.TransactionTotals, error) {
	row, err := r.scanTotals(r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("transactions.project_id = ? AND transactions.period_id = ?", projectID, period.ID))
	return row.toTotals(), err
}

// CumulativeUntil sums through the given period, ordering periods
// lexicographically on (year, month_number).
func (r *transactionRepository) CumulativeUntil(ctx context.Context, projectID uint, period *models.Period) (models.TransactionTotals, error) {
	row, err := r.scanTotals(r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Joins("JOIN periods ON periods.id = transactions.period_id").
		Where("transactions.project_id = ?", projectID).
		Where("periods.year < ? OR (periods.year = ? AND periods.month_number <= ?)",
			period.Year, period.Year, period.MonthNumber))
	return row.toTotals(), err
}

// Totals is the open-filter variant; it additionally exposes the per-type
// deposit buckets the narrower operations do not.
func (r *transactionRepository) Totals(ctx context.Context, projectID uint, filters models.TransactionFilters) (models.TransactionBreakdown, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("transactions.project_id = ?", projectID)

	if filters.InvestorID != nil {
		query = query.Where("transactions.investor_id = ?", *filters.InvestorID)
	}
	if filters.PeriodID != nil {
		query = query.Where("transactions.period_id = ?", *filters.PeriodID)
	}
	if filters.TransactionType != nil {
		query = query.Where("transactions.transaction_type = ?", *filters.TransactionType)
	}
	if filters.DateFrom != nil {
		query = query.Where("transactions.date_gregorian >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("transactions.date_gregorian <= ?", *filters.DateTo)
	}

	row, err := r.scanTotals(query)
	return models.TransactionBreakdown{
		TransactionTotals: row.toTotals(),
		PrincipalDeposit:  row.PrincipalDeposit,
		LoanDeposit:       row.LoanDeposit,
		Count:             row.Count,
	}, err
}

func (r *transactionRepository) DistinctInvestorIDs(ctx context.Context, projectID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("project_id = ?", projectID).
		Distinct("investor_id").
		Pluck("investor_id", &ids).Error
	return ids, err
}

// ActiveDays counts the distinct dates on which the project had transactions.
func (r *transactionRepository) ActiveDays(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("project_id = ?", projectID).
		Distinct("date_gregorian").
		Count(&count).Error
	return count, err
}
