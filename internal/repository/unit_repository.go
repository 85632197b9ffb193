package repository

import (
	"context"

	"github.com/sazehapp/sazeh-api/internal/models"
	"gorm.io/gorm"
)

// UnitRepository defines the interface for unit data access
type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Unit, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Unit, error)
	ProjectStats(ctx context.Context, projectID uint) (models.UnitStats, error)
}

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(ctx context.Context, unit *models.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepository) Update(ctx context.Context, unit *models.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *unitRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Unit{}, id).Error
}

func (r *unitRepository) FindByID(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.WithContext(ctx).First(&unit, id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Unit, error) {
	var units []models.Unit
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&units).Error
	return units, err
}

func (r *unitRepository) ProjectStats(ctx context.Context, projectID uint) (models.UnitStats, error) {
	var stats models.UnitStats
	err := r.db.WithContext(ctx).
		Model(&models.Unit{}).
		Where("project_id = ?", projectID).
		Select("COUNT(id) AS total_units, COALESCE(SUM(area), 0) AS total_area, COALESCE(SUM(total_price), 0) AS total_price").
		Scan(&stats).Error
	return stats, err
}
