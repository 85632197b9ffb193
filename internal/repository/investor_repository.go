package repository

import (
	"context"

	"github.com/sazehapp/sazeh-api/internal/models"
	"gorm.io/gorm"
)

// InvestorRepository defines the interface for investor data access
type InvestorRepository interface {
	Create(ctx context.Context, investor *models.Investor) error
	Update(ctx context.Context, investor *models.Investor) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Investor, error)
	FindByIDWithUnits(ctx context.Context, id uint) (*models.Investor, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Investor, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Investor, error)
}

type investorRepository struct {
	db *gorm.DB
}

// NewInvestorRepository creates a new investor repository
func NewInvestorRepository(db *gorm.DB) InvestorRepository {
	return &investorRepository{db: db}
}

func (r *investorRepository) Create(ctx context.Context, investor *models.Investor) error {
	return r.db.WithContext(ctx).Create(investor).Error
}

func (r *investorRepository) Update(ctx context.Context, investor *models.Investor) error {
	return r.db.WithContext(ctx).Save(investor).Error
}

func (r *investorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Investor{}, id).Error
}

func (r *investorRepository) FindByID(ctx context.Context, id uint) (*models.Investor, error) {
	var investor models.Investor
	err := r.db.WithContext(ctx).First(&investor, id).Error
	if err != nil {
		return nil, err
	}
	return &investor, nil
}

func (r *investorRepository) FindByIDWithUnits(ctx context.Context, id uint) (*models.Investor, error) {
	var investor models.Investor
	err := r.db.WithContext(ctx).Preload("Units").First(&investor, id).Error
	if err != nil {
		return nil, err
	}
	return &investor, nil
}

func (r *investorRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Investor, error) {
	var investors []models.Investor
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("last_name ASC, first_name ASC").
		Find(&investors).Error
	return investors, err
}

func (r *investorRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Investor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var investors []models.Investor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&investors).Error
	return investors, err
}
