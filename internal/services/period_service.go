package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/sazehapp/sazeh-api/pkg/calendar"
	"gorm.io/gorm"
)

// PeriodService manages a project's financial months. Periods are
// immutable once created; no operation mutates one in place.
type PeriodService struct {
	periodRepo repository.PeriodRepository
}

// NewPeriodService creates a new period service
func NewPeriodService(periodRepo repository.PeriodRepository) *PeriodService {
	return &PeriodService{periodRepo: periodRepo}
}

// Create persists a period, deriving Gregorian bounds and the month name
// from the Shamsi dates.
func (s *PeriodService) Create(ctx context.Context, period *models.Period) error {
	if period.ProjectID == 0 {
		return ErrProjectRequired
	}
	if period.MonthNumber < 1 || period.MonthNumber > 12 {
		return errors.New("month number must be between 1 and 12")
	}

	if period.StartDateShamsi != "" {
		start, err := calendar.ToGregorian(period.StartDateShamsi)
		if err != nil {
			return fmt.Errorf("invalid period start date: %w", err)
		}
		period.StartDateGregorian = start
	}
	if period.EndDateShamsi != "" {
		end, err := calendar.ToGregorian(period.EndDateShamsi)
		if err != nil {
			return fmt.Errorf("invalid period end date: %w", err)
		}
		period.EndDateGregorian = end
	}

	if period.MonthName == "" {
		period.MonthName = calendar.MonthName(period.MonthNumber)
	}
	if period.Label == "" {
		period.Label = fmt.Sprintf("%s %d", period.MonthName, period.Year)
	}
	if period.Weight == 0 {
		period.Weight = 1
	}

	return s.periodRepo.Create(ctx, period)
}

// Delete removes a period.
func (s *PeriodService) Delete(ctx context.Context, id uint) error {
	return s.periodRepo.Delete(ctx, id)
}

// GetByID loads one period.
func (s *PeriodService) GetByID(ctx context.Context, id uint) (*models.Period, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return period, nil
}

// ListByProject lists a project's periods in (year, month) order.
func (s *PeriodService) ListByProject(ctx context.Context, projectID uint) ([]models.Period, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.periodRepo.FindByProject(ctx, projectID)
}
