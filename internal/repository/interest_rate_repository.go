package repository

import (
	"context"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"gorm.io/gorm"
)

// InterestRateRepository defines the interface for interest rate data access
type InterestRateRepository interface {
	// Save persists the rate. When rate.IsActive is true every other rate
	// of the same project is deactivated in the same transaction.
	Save(ctx context.Context, rate *models.InterestRate) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.InterestRate, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.InterestRate, error)
	ActiveForProject(ctx context.Context, projectID uint) (*models.InterestRate, error)
	// RateForDate returns the rate whose effective date is the latest one
	// not after the given date.
	RateForDate(ctx context.Context, projectID uint, date time.Time) (*models.InterestRate, error)
}

type interestRateRepository struct {
	db *gorm.DB
}

// NewInterestRateRepository creates a new interest rate repository
func NewInterestRateRepository(db *gorm.DB) InterestRateRepository {
	return &interestRateRepository{db: db}
}

func (r *interestRateRepository) Save(ctx context.Context, rate *models.InterestRate) error {
	if !rate.IsActive {
		return r.db.WithContext(ctx).Save(rate).Error
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InterestRate{}).
			Where("project_id = ? AND id <> ?", rate.ProjectID, rate.ID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Save(rate).Error
	})
}

func (r *interestRateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.InterestRate{}, id).Error
}

func (r *interestRateRepository) FindByID(ctx context.Context, id uint) (*models.InterestRate, error) {
	var rate models.InterestRate
	err := r.db.WithContext(ctx).First(&rate, id).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *interestRateRepository) FindByProject(ctx context.Context, projectID uint) ([]models.InterestRate, error) {
	var rates []models.InterestRate
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("effective_date DESC").
		Find(&rates).Error
	return rates, err
}

func (r *interestRateRepository) ActiveForProject(ctx context.Context, projectID uint) (*models.InterestRate, error) {
	var rate models.InterestRate
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("effective_date DESC").
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *interestRateRepository) RateForDate(ctx context.Context, projectID uint, date time.Time) (*models.InterestRate, error) {
	var rate models.InterestRate
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND effective_date <= ?", projectID, date).
		Order("effective_date DESC").
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
