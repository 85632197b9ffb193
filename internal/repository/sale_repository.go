package repository

import (
	"context"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	Update(ctx context.Context, sale *models.Sale) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Sale, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Sale, error)

	ProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error)
	PeriodTotal(ctx context.Context, projectID uint, period *models.Period) (decimal.Decimal, error)
	CumulativeUntil(ctx context.Context, projectID uint, period *models.Period) (decimal.Decimal, error)
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Sale{}, id).Error
}

func (r *saleRepository) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) sum(query *gorm.DB) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := query.Select("COALESCE(SUM(sales.amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (r *saleRepository) ProjectTotal(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("sales.project_id = ?", projectID))
}

func (r *saleRepository) PeriodTotal(ctx context.Context, projectID uint, period *models.Period) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("sales.project_id = ? AND sales.period_id = ?", projectID, period.ID))
}

func (r *saleRepository) CumulativeUntil(ctx context.Context, projectID uint, period *models.Period) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Joins("JOIN periods ON periods.id = sales.period_id").
		Where("sales.project_id = ?", projectID).
		Where("periods.year < ? OR (periods.year = ? AND periods.month_number <= ?)",
			period.Year, period.Year, period.MonthNumber))
}
