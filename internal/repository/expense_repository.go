package repository

import (
	"context"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Expense, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Expense, error)

	ProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error)
	PeriodTotal(ctx context.Context, projectID uint, period *models.Period) (decimal.Decimal, error)
	CumulativeUntil(ctx context.Context, projectID uint, period *models.Period) (decimal.Decimal, error)
	Total(ctx context.Context, projectID uint, filters models.ExpenseFilters) (decimal.Decimal, error)

	// ContractorBaseSum sums the period's expenses that feed the derived
	// construction-contractor amount (excludes contractor and "other" rows).
	ContractorBaseSum(ctx context.Context, projectID, periodID uint) (decimal.Decimal, error)
	FindContractorForPeriod(ctx context.Context, projectID, periodID uint) (*models.Expense, error)
	DeleteContractorForPeriod(ctx context.Context, projectID, periodID uint) error

	// Petty-cash support: sums by agent type, period-bounded. Expenses with
	// a period use (year, month) ordering; expenses without one fall back to
	// their created_at date.
	SumByTypeThroughPeriod(ctx context.Context, projectID uint, expenseType string, period *models.Period) (decimal.Decimal, error)
	SumByTypeWithinPeriod(ctx context.Context, projectID uint, expenseType string, periodID uint) (decimal.Decimal, error)
	SumByType(ctx context.Context, projectID uint, expenseType string) (decimal.Decimal, error)

	// WeightedPeriodSums returns sum(amount*period.weight) and sum(amount)
	// over period-assigned expenses, for the average-construction-period metric.
	WeightedPeriodSums(ctx context.Context, projectID uint) (weighted, total decimal.Decimal, err error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Expense{}, id).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).Preload("Period").First(&expense, id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

func sumAmount(query *gorm.DB) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := query.Select("COALESCE(SUM(expenses.amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (r *expenseRepository) ProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	return sumAmount(r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("expenses.project_id = ?", projectID))
}

func (r *expenseRepository) PeriodTotal(ctx context.Context, projectID uint, period *models.Period) (decimal.Decimal, error) {
	return sumAmount(r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("expenses.project_id = ? AND expenses.period_id = ?", projectID, period.ID))
}

func (r *expenseRepository) CumulativeUntil(ctx context.Context, projectID uint, period *models.Period) (decimal.Decimal, error) {
	return sumAmount(r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Joins("JOIN periods ON periods.id = expenses.period_id").
		Where("expenses.project_id = ?", projectID).
		Where("periods.year < ? OR (periods.year = ? AND periods.month_number <= ?)",
			period.Year, period.Year, period.MonthNumber))
}

func (r *expenseRepository) Total(ctx context.Context, projectID uint, filters models.ExpenseFilters) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("expenses.project_id = ?", projectID)

	if filters.PeriodID != nil {
		query = query.Where("expenses.period_id = ?", *filters.PeriodID)
	}
	if filters.ExpenseType != nil {
		query = query.Where("expenses.expense_type = ?", *filters.ExpenseType)
	}
	if filters.DateFrom != nil {
		query = query.Where("expenses.created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("expenses.created_at <= ?", *filters.DateTo)
	}

	return sumAmount(query)
}

func (r *expenseRepository) ContractorBaseSum(ctx context.Context, projectID, periodID uint) (decimal.Decimal, error) {
	return sumAmount(r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("expenses.project_id = ? AND expenses.period_id = ?", projectID, periodID).
		Where("expenses.expense_type NOT IN ?", []string{
			models.ExpenseTypeConstructionContractor,
			models.ExpenseTypeOther,
		}))
}

func (r *expenseRepository) FindContractorForPeriod(ctx context.Context, projectID, periodID uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND period_id = ? AND expense_type = ?",
			projectID, periodID, models.ExpenseTypeConstructionContractor).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) DeleteContractorForPeriod(ctx context.Context, projectID, periodID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND period_id = ? AND expense_type = ?",
			projectID, periodID, models.ExpenseTypeConstructionContractor).
		Delete(&models.Expense{}).Error
}

// SumByTypeThroughPeriod sums an agent's expenses through the end of the
// given period. Period-assigned expenses are bounded by (year, month);
// unassigned ones by created_at against the period's Gregorian end date.
func (r *expenseRepository) SumByTypeThroughPeriod(ctx context.Context, projectID uint, expenseType string, period *models.Period) (decimal.Decimal, error) {
	withPeriod, err := sumAmount(r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Joins("JOIN periods ON periods.id = expenses.period_id").
		Where("expenses.project_id = ? AND expenses.expense_type = ?", projectID, expenseType).
		Where("periods.year < ? OR (periods.year = ? AND periods.month_number <= ?)",
			period.Year, period.Year, period.MonthNumber))
	if err != nil {
		return decimal.Zero, err
	}

	endOfDay := period.EndDateGregorian.Add(24*time.Hour - time.Nanosecond)
	withoutPeriod, err := sumAmount(r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("expenses.project_id = ? AND expenses.expense_type = ?", projectID, expenseType).
		Where("expenses.period_id IS NULL").
		Where("expenses.created_at <= ?", endOfDay))
	if err != nil {
		return decimal.Zero, err
	}

	return withPeriod.Add(withoutPeriod), nil
}

func (r *expenseRepository) SumByTypeWithinPeriod(ctx context.Context, projectID uint, expenseType string, periodID uint) (decimal.Decimal, error) {
	return sumAmount(r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("expenses.project_id = ? AND expenses.expense_type = ? AND expenses.period_id = ?",
			projectID, expenseType, periodID))
}

func (r *expenseRepository) SumByType(ctx context.Context, projectID uint, expenseType string) (decimal.Decimal, error) {
	return sumAmount(r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("expenses.project_id = ? AND expenses.expense_type = ?", projectID, expenseType))
}

func (r *expenseRepository) WeightedPeriodSums(ctx context.Context, projectID uint) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Weighted decimal.Decimal
		Total    decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Joins("JOIN periods ON periods.id = expenses.period_id").
		Where("expenses.project_id = ?", projectID).
		Select("COALESCE(SUM(expenses.amount * periods.weight), 0) AS weighted, COALESCE(SUM(expenses.amount), 0) AS total").
		Scan(&row).Error
	return row.Weighted, row.Total, err
}
