package services

import (
	"context"
	"errors"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"gorm.io/gorm"
)

// UnitService manages a project's residential units.
type UnitService struct {
	unitRepo repository.UnitRepository
}

// NewUnitService creates a new unit service
func NewUnitService(unitRepo repository.UnitRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo}
}

// Create persists a unit, deriving the total price when absent.
func (s *UnitService) Create(ctx context.Context, unit *models.Unit) error {
	if unit.ProjectID == 0 {
		return ErrProjectRequired
	}
	if unit.TotalPrice.IsZero() {
		unit.TotalPrice = unit.Area.Mul(unit.PricePerMeter).Round(2)
	}
	return s.unitRepo.Create(ctx, unit)
}

// Update persists changes to a unit.
func (s *UnitService) Update(ctx context.Context, unit *models.Unit) error {
	if unit.TotalPrice.IsZero() {
		unit.TotalPrice = unit.Area.Mul(unit.PricePerMeter).Round(2)
	}
	return s.unitRepo.Update(ctx, unit)
}

// Delete removes a unit.
func (s *UnitService) Delete(ctx context.Context, id uint) error {
	return s.unitRepo.Delete(ctx, id)
}

// GetByID loads one unit.
func (s *UnitService) GetByID(ctx context.Context, id uint) (*models.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return unit, nil
}

// ListByProject lists a project's units.
func (s *UnitService) ListByProject(ctx context.Context, projectID uint) ([]models.Unit, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.unitRepo.FindByProject(ctx, projectID)
}
