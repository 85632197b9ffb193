package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/sazehapp/sazeh-api/pkg/calendar"
	"gorm.io/gorm"
)

// InterestRateService manages a project's interest rates and drives the
// profit recompute when a new active rate is applied.
type InterestRateService struct {
	rateRepo  repository.InterestRateRepository
	profitSvc *ProfitService
}

// NewInterestRateService creates a new interest rate service
func NewInterestRateService(rateRepo repository.InterestRateRepository, profitSvc *ProfitService) *InterestRateService {
	return &InterestRateService{
		rateRepo:  rateRepo,
		profitSvc: profitSvc,
	}
}

// Save persists a rate. An active rate deactivates the project's other
// rates inside one database transaction.
func (s *InterestRateService) Save(ctx context.Context, rate *models.InterestRate) error {
	if rate.ProjectID == 0 {
		return ErrProjectRequired
	}
	if rate.Rate.Sign() < 0 {
		return ErrInvalidAmount
	}

	if rate.EffectiveDateShamsi != "" {
		date, err := calendar.ToGregorian(rate.EffectiveDateShamsi)
		if err != nil {
			return fmt.Errorf("invalid effective date: %w", err)
		}
		rate.EffectiveDate = date
	} else if !rate.EffectiveDate.IsZero() {
		rate.EffectiveDateShamsi = calendar.ToShamsi(rate.EffectiveDate)
	}

	return s.rateRepo.Save(ctx, rate)
}

// SaveAndRecalculate persists the rate and, when it is active, rebuilds
// every profit row of the project against it.
func (s *InterestRateService) SaveAndRecalculate(ctx context.Context, rate *models.InterestRate) (models.RecalculationResult, error) {
	if err := s.Save(ctx, rate); err != nil {
		return models.RecalculationResult{}, err
	}
	if !rate.IsActive {
		return models.RecalculationResult{}, nil
	}
	return s.profitSvc.RecalculateAllProfitsWithNewRate(ctx, rate.ProjectID, rate)
}

// Delete removes a rate.
func (s *InterestRateService) Delete(ctx context.Context, id uint) error {
	return s.rateRepo.Delete(ctx, id)
}

// GetByID loads one rate.
func (s *InterestRateService) GetByID(ctx context.Context, id uint) (*models.InterestRate, error) {
	rate, err := s.rateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rate, nil
}

// ListByProject lists a project's rates, newest effective date first.
func (s *InterestRateService) ListByProject(ctx context.Context, projectID uint) ([]models.InterestRate, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.rateRepo.FindByProject(ctx, projectID)
}

// Active returns the project's active rate, or nil when none is set.
func (s *InterestRateService) Active(ctx context.Context, projectID uint) (*models.InterestRate, error) {
	rate, err := s.rateRepo.ActiveForProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rate, nil
}

// RateForDate returns the rate in effect on the given date, or nil when
// none applies yet.
func (s *InterestRateService) RateForDate(ctx context.Context, projectID uint, date time.Time) (*models.InterestRate, error) {
	rate, err := s.rateRepo.RateForDate(ctx, projectID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rate, nil
}
