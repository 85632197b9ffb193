package repository

import (
	"context"

	"github.com/sazehapp/sazeh-api/internal/models"
	"gorm.io/gorm"
)

// PeriodRepository defines the interface for period data access
type PeriodRepository interface {
	Create(ctx context.Context, period *models.Period) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Period, error)
	// FindByProject returns the project's periods in (year, month_number) order.
	FindByProject(ctx context.Context, projectID uint) ([]models.Period, error)
}

type periodRepository struct {
	db *gorm.DB
}

// NewPeriodRepository creates a new period repository
func NewPeriodRepository(db *gorm.DB) PeriodRepository {
	return &periodRepository{db: db}
}

func (r *periodRepository) Create(ctx context.Context, period *models.Period) error {
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *periodRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Period{}, id).Error
}

func (r *periodRepository) FindByID(ctx context.Context, id uint) (*models.Period, error) {
	var period models.Period
	err := r.db.WithContext(ctx).First(&period, id).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Period, error) {
	var periods []models.Period
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("year ASC, month_number ASC").
		Find(&periods).Error
	return periods, err
}
