package repository

import (
	"context"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PettyCashRepository defines the interface for petty cash data access
type PettyCashRepository interface {
	Create(ctx context.Context, tx *models.PettyCashTransaction) error
	Update(ctx context.Context, tx *models.PettyCashTransaction) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.PettyCashTransaction, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.PettyCashTransaction, error)

	// SumByType sums amounts for one agent and transaction type, optionally
	// bounded by date_gregorian (inclusive on both ends, nil = unbounded).
	SumByType(ctx context.Context, projectID uint, expenseType, transactionType string, from, until *time.Time) (decimal.Decimal, error)
	ProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error)
}

type pettyCashRepository struct {
	db *gorm.DB
}

// NewPettyCashRepository creates a new petty cash repository
func NewPettyCashRepository(db *gorm.DB) PettyCashRepository {
	return &pettyCashRepository{db: db}
}

func (r *pettyCashRepository) Create(ctx context.Context, tx *models.PettyCashTransaction) error {
	tx.Normalize()
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *pettyCashRepository) Update(ctx context.Context, tx *models.PettyCashTransaction) error {
	tx.Normalize()
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *pettyCashRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PettyCashTransaction{}, id).Error
}

func (r *pettyCashRepository) FindByID(ctx context.Context, id uint) (*models.PettyCashTransaction, error) {
	var tx models.PettyCashTransaction
	err := r.db.WithContext(ctx).First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *pettyCashRepository) FindByProject(ctx context.Context, projectID uint) ([]models.PettyCashTransaction, error) {
	var txs []models.PettyCashTransaction
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("date_gregorian ASC, id ASC").
		Find(&txs).Error
	return txs, err
}

func (r *pettyCashRepository) SumByType(ctx context.Context, projectID uint, expenseType, transactionType string, from, until *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PettyCashTransaction{}).
		Where("project_id = ? AND expense_type = ? AND transaction_type = ?",
			projectID, expenseType, transactionType)
	if from != nil {
		query = query.Where("date_gregorian >= ?", *from)
	}
	if until != nil {
		query = query.Where("date_gregorian <= ?", *until)
	}

	var row struct {
		Total decimal.Decimal
	}
	err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (r *pettyCashRepository) ProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.PettyCashTransaction{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&row).Error
	return row.Total, err
}
