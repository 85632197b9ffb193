package services

import (
	"context"
	"errors"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"gorm.io/gorm"
)

// SaleService manages sales and returns of project material.
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// Create persists a sale.
func (s *SaleService) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ProjectID == 0 {
		return ErrProjectRequired
	}
	if sale.PeriodID == 0 {
		return ErrPeriodRequired
	}
	return s.saleRepo.Create(ctx, sale)
}

// Update persists changes to a sale.
func (s *SaleService) Update(ctx context.Context, sale *models.Sale) error {
	return s.saleRepo.Update(ctx, sale)
}

// Delete removes a sale.
func (s *SaleService) Delete(ctx context.Context, id uint) error {
	return s.saleRepo.Delete(ctx, id)
}

// GetByID loads one sale.
func (s *SaleService) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sale, nil
}

// ListByProject lists a project's sales in creation order.
func (s *SaleService) ListByProject(ctx context.Context, projectID uint) ([]models.Sale, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.saleRepo.FindByProject(ctx, projectID)
}
