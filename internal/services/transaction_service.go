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

// TransactionService handles capital transaction CRUD. Day windows are
// recomputed from the project's date bounds on every save; values supplied
// by the caller are discarded.
type TransactionService struct {
	txRepo      repository.TransactionRepository
	projectRepo repository.ProjectRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txRepo repository.TransactionRepository, projectRepo repository.ProjectRepository) *TransactionService {
	return &TransactionService{
		txRepo:      txRepo,
		projectRepo: projectRepo,
	}
}

// prepare derives the Gregorian date and the day windows before a save.
func (s *TransactionService) prepare(ctx context.Context, tx *models.Transaction) error {
	if tx.ProjectID == 0 {
		return ErrProjectRequired
	}

	project, err := s.projectRepo.FindByID(ctx, tx.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	if tx.DateShamsi != "" {
		date, err := calendar.ToGregorian(tx.DateShamsi)
		if err != nil {
			return fmt.Errorf("invalid transaction date: %w", err)
		}
		tx.DateGregorian = date
	} else {
		tx.DateShamsi = calendar.ToShamsi(tx.DateGregorian)
	}

	tx.ComputeDayWindows(project)
	return nil
}

// Create persists a transaction.
func (s *TransactionService) Create(ctx context.Context, tx *models.Transaction) error {
	if err := s.prepare(ctx, tx); err != nil {
		return err
	}
	return s.txRepo.Create(ctx, tx)
}

// Update persists changes to a transaction. Editing a system-generated
// profit row makes it stale; the next recompute replaces it.
func (s *TransactionService) Update(ctx context.Context, tx *models.Transaction) error {
	if err := s.prepare(ctx, tx); err != nil {
		return err
	}
	return s.txRepo.Update(ctx, tx)
}

// Delete removes a transaction.
func (s *TransactionService) Delete(ctx context.Context, id uint) error {
	return s.txRepo.Delete(ctx, id)
}

// GetByID loads one transaction.
func (s *TransactionService) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

// ListByProject lists a project's transactions in date order.
func (s *TransactionService) ListByProject(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.txRepo.FindByProject(ctx, projectID)
}
