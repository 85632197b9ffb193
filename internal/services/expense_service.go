package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// ExpenseService owns the expense write path. Every create, update or
// delete of a non-contractor expense re-derives the period's single
// construction_contractor row before the call returns; callers must treat
// that side effect as part of the write contract.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	projectRepo repository.ProjectRepository
	periodRepo  repository.PeriodRepository
	log         *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, projectRepo repository.ProjectRepository, periodRepo repository.PeriodRepository, log *slog.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
		periodRepo:  periodRepo,
		log:         log,
	}
}

// Create persists an expense and re-derives the contractor row for its
// period.
func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense) error {
	if expense.ProjectID == 0 {
		return ErrProjectRequired
	}
	if !expenseTypeKnown(expense.ExpenseType) {
		return ErrInvalidExpenseType
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return s.triggerContractorRule(ctx, expense)
}

// Update persists changes to an expense. If the expense moved to another
// period, the old period's contractor row is re-derived too.
func (s *ExpenseService) Update(ctx context.Context, expense *models.Expense) error {
	if expense.ProjectID == 0 {
		return ErrProjectRequired
	}
	if !expenseTypeKnown(expense.ExpenseType) {
		return ErrInvalidExpenseType
	}

	previous, err := s.expenseRepo.FindByID(ctx, expense.ID)
	if err != nil {
		return fmt.Errorf("failed to load expense: %w", err)
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	if err := s.triggerContractorRule(ctx, expense); err != nil {
		return err
	}
	if movedPeriod(previous, expense) && previous.ExpenseType != models.ExpenseTypeConstructionContractor && previous.PeriodID != nil {
		return s.UpdateContractorForPeriod(ctx, previous.ProjectID, *previous.PeriodID)
	}
	return nil
}

// Delete removes an expense and re-derives the contractor row for the
// period it belonged to.
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load expense: %w", err)
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return s.triggerContractorRule(ctx, expense)
}

// GetByID loads one expense.
func (s *ExpenseService) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return expense, nil
}

// ListByProject lists a project's expenses in creation order.
func (s *ExpenseService) ListByProject(ctx context.Context, projectID uint) ([]models.Expense, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.expenseRepo.FindByProject(ctx, projectID)
}

// triggerContractorRule runs the contractor derivation for the mutated
// expense's period. Contractor-typed writes never recurse, and an expense
// without a period has nothing to derive against.
func (s *ExpenseService) triggerContractorRule(ctx context.Context, expense *models.Expense) error {
	if expense.ExpenseType == models.ExpenseTypeConstructionContractor {
		return nil
	}
	if expense.PeriodID == nil {
		return nil
	}
	return s.UpdateContractorForPeriod(ctx, expense.ProjectID, *expense.PeriodID)
}

// UpdateContractorForPeriod re-derives the period's construction_contractor
// expense: delete the existing row unconditionally, recompute
// percentage * sum(base types), insert a fresh row only when the result is
// strictly positive. Absence means zero.
func (s *ExpenseService) UpdateContractorForPeriod(ctx context.Context, projectID, periodID uint) error {
	if projectID == 0 {
		return ErrProjectRequired
	}
	if periodID == 0 {
		return ErrPeriodRequired
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	if err := s.expenseRepo.DeleteContractorForPeriod(ctx, projectID, periodID); err != nil {
		return fmt.Errorf("failed to delete contractor expense: %w", err)
	}

	base, err := s.expenseRepo.ContractorBaseSum(ctx, projectID, periodID)
	if err != nil {
		return fmt.Errorf("failed to sum base expenses: %w", err)
	}

	amount := project.ConstructionContractorPercentage.Mul(base).Round(2)
	if amount.Sign() <= 0 {
		return nil
	}

	pid := periodID
	contractor := &models.Expense{
		ProjectID:   projectID,
		PeriodID:    &pid,
		ExpenseType: models.ExpenseTypeConstructionContractor,
		Amount:      amount,
		Description: fmt.Sprintf("Contractor fee: %s%% of period base expenses", project.ConstructionContractorPercentage.Mul(hundred).String()),
	}
	if err := s.expenseRepo.Create(ctx, contractor); err != nil {
		return fmt.Errorf("failed to create contractor expense: %w", err)
	}
	return nil
}

// RecalculateAllContractorExpenses re-derives the contractor row for every
// period of the project. Repair path, not part of the reactive write path.
func (s *ExpenseService) RecalculateAllContractorExpenses(ctx context.Context, projectID uint) error {
	if projectID == 0 {
		return ErrProjectRequired
	}

	periods, err := s.periodRepo.FindByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load periods: %w", err)
	}

	for i := range periods {
		if err := s.UpdateContractorForPeriod(ctx, projectID, periods[i].ID); err != nil {
			return err
		}
	}
	s.log.Info("contractor expenses recalculated", "project_id", projectID, "periods", len(periods))
	return nil
}

func expenseTypeKnown(expenseType string) bool {
	for _, t := range models.ExpenseTypes {
		if t == expenseType {
			return true
		}
	}
	return false
}

func movedPeriod(before, after *models.Expense) bool {
	switch {
	case before.PeriodID == nil && after.PeriodID == nil:
		return false
	case before.PeriodID == nil || after.PeriodID == nil:
		return true
	default:
		return *before.PeriodID != *after.PeriodID
	}
}
