package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/sazehapp/sazeh-api/internal/statemachine"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProfitService computes day-windowed interest profit on capital
// transactions and materializes the results as linked profit_accrual rows.
// Recomputation is delete-then-insert inside one database transaction; the
// per-project state machine keeps two rebuilds from overlapping.
type ProfitService struct {
	txRepo   repository.TransactionRepository
	rateRepo repository.InterestRateRepository
	db       *gorm.DB
	log      *slog.Logger

	mu       sync.Mutex
	machines map[uint]*statemachine.RecalcFSM
}

// NewProfitService creates a new profit service
func NewProfitService(txRepo repository.TransactionRepository, rateRepo repository.InterestRateRepository, db *gorm.DB, log *slog.Logger) *ProfitService {
	return &ProfitService{
		txRepo:   txRepo,
		rateRepo: rateRepo,
		db:       db,
		log:      log,
		machines: make(map[uint]*statemachine.RecalcFSM),
	}
}

func (s *ProfitService) machineFor(projectID uint) *statemachine.RecalcFSM {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.machines[projectID]
	if !ok {
		m = statemachine.NewRecalcFSM(projectID)
		s.machines[projectID] = m
	}
	return m
}

// CalculateProfit computes the profit for one transaction:
// round(amount * day_remaining * rate, 2), half-up. Non-capital types and
// exhausted day windows yield zero. A nil rate falls back to the project's
// active rate; a project with no rate yields zero, never an error.
func (s *ProfitService) CalculateProfit(ctx context.Context, tx *models.Transaction, rate *models.InterestRate) (decimal.Decimal, error) {
	if !tx.IsCapital() {
		return decimal.Zero, nil
	}
	if tx.DayRemaining <= 0 {
		return decimal.Zero, nil
	}

	if rate == nil {
		active, err := s.rateRepo.ActiveForProject(ctx, tx.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.Zero, nil
			}
			return decimal.Zero, fmt.Errorf("failed to load active rate: %w", err)
		}
		rate = active
	}

	days := decimal.NewFromInt(int64(tx.DayRemaining))
	return tx.Amount.Mul(days).Mul(rate.Rate).Round(2), nil
}

// CalculateAllProfits scans every capital transaction of the project with a
// positive day window and builds (without persisting) one profit_accrual row
// per non-zero result, linked to its source transaction.
func (s *ProfitService) CalculateAllProfits(ctx context.Context, projectID uint, rate *models.InterestRate) ([]models.Transaction, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.calculateAllProfitsWith(ctx, s.txRepo, projectID, rate)
}

// DeleteAllProfitTransactions removes every profit_accrual row of the
// project and returns how many were deleted.
func (s *ProfitService) DeleteAllProfitTransactions(ctx context.Context, projectID uint) (int64, error) {
	if projectID == 0 {
		return 0, ErrProjectRequired
	}
	return s.txRepo.DeleteProfitAccruals(ctx, projectID)
}

// RecalculateAllProfitsWithNewRate is the only safe way to change a
// project's effective rate retroactively: delete every existing profit row,
// recompute against the given rate, persist the fresh set. The three steps
// run in one database transaction, so readers never observe the
// intermediate state.
func (s *ProfitService) RecalculateAllProfitsWithNewRate(ctx context.Context, projectID uint, rate *models.InterestRate) (models.RecalculationResult, error) {
	var result models.RecalculationResult
	if projectID == 0 {
		return result, ErrProjectRequired
	}

	machine := s.machineFor(projectID)
	if err := machine.Start(ctx); err != nil {
		return result, ErrRecalcInProgress
	}

	err := s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		repo := s.txRepo.WithTx(dbtx)

		deleted, err := repo.DeleteProfitAccruals(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to delete profit rows: %w", err)
		}
		result.Deleted = deleted

		accruals, err := s.calculateAllProfitsWith(ctx, repo, projectID, rate)
		if err != nil {
			return err
		}

		if err := repo.CreateBatch(ctx, accruals); err != nil {
			return fmt.Errorf("failed to persist profit rows: %w", err)
		}
		result.Created = len(accruals)
		result.TotalAffected = deleted + int64(len(accruals))
		return nil
	})
	if err != nil {
		_ = machine.Fail(ctx)
		return models.RecalculationResult{}, err
	}
	if err := machine.Finish(ctx); err != nil {
		return result, err
	}

	s.log.Info("profit recalculation complete",
		"project_id", projectID,
		"deleted", result.Deleted,
		"created", result.Created,
	)
	return result, nil
}

// calculateAllProfitsWith is CalculateAllProfits against an explicit
// repository handle, so the recompute reads inside its own transaction.
func (s *ProfitService) calculateAllProfitsWith(ctx context.Context, repo repository.TransactionRepository, projectID uint, rate *models.InterestRate) ([]models.Transaction, error) {
	if rate == nil {
		active, err := s.rateRepo.ActiveForProject(ctx, projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to load active rate: %w", err)
		}
		rate = active
	}

	capital, err := repo.FindCapitalWithDaysRemaining(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load capital transactions: %w", err)
	}

	accruals := make([]models.Transaction, 0, len(capital))
	for i := range capital {
		src := &capital[i]
		profit, err := s.CalculateProfit(ctx, src, rate)
		if err != nil {
			return nil, err
		}
		if profit.IsZero() {
			// Zero profit leaves no row, not a zero-amount row.
			continue
		}

		parentID := src.ID
		rateID := rate.ID
		accruals = append(accruals, models.Transaction{
			ProjectID:           src.ProjectID,
			InvestorID:          src.InvestorID,
			PeriodID:            src.PeriodID,
			DateShamsi:          src.DateShamsi,
			DateGregorian:       src.DateGregorian,
			Amount:              profit,
			TransactionType:     models.TransactionTypeProfitAccrual,
			Description:         fmt.Sprintf("Profit on transaction #%d (%d days at %s)", src.ID, src.DayRemaining, rate.Rate.String()),
			DayRemaining:        src.DayRemaining,
			DayFromStart:        src.DayFromStart,
			InterestRateID:      &rateID,
			IsSystemGenerated:   true,
			ParentTransactionID: &parentID,
		})
	}
	return accruals, nil
}
