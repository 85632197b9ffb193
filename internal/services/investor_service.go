package services

import (
	"context"
	"errors"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestorService handles investor CRUD plus the per-investor capital,
// ratio and unit-ownership figures.
type InvestorService struct {
	investorRepo repository.InvestorRepository
	txRepo       repository.TransactionRepository
	aggregation  *AggregationService
}

// NewInvestorService creates a new investor service
func NewInvestorService(investorRepo repository.InvestorRepository, txRepo repository.TransactionRepository, aggregation *AggregationService) *InvestorService {
	return &InvestorService{
		investorRepo: investorRepo,
		txRepo:       txRepo,
		aggregation:  aggregation,
	}
}

// Create persists an investor.
func (s *InvestorService) Create(ctx context.Context, investor *models.Investor) error {
	if investor.ProjectID == 0 {
		return ErrProjectRequired
	}
	return s.investorRepo.Create(ctx, investor)
}

// Update persists changes to an investor.
func (s *InvestorService) Update(ctx context.Context, investor *models.Investor) error {
	return s.investorRepo.Update(ctx, investor)
}

// Delete removes an investor.
func (s *InvestorService) Delete(ctx context.Context, id uint) error {
	return s.investorRepo.Delete(ctx, id)
}

// GetByID loads one investor.
func (s *InvestorService) GetByID(ctx context.Context, id uint) (*models.Investor, error) {
	investor, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return investor, nil
}

// ListByProject lists a project's investors.
func (s *InvestorService) ListByProject(ctx context.Context, projectID uint) ([]models.Investor, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}
	return s.investorRepo.FindByProject(ctx, projectID)
}

// investorTotals returns one investor's transaction buckets within a
// project.
func (s *InvestorService) investorTotals(ctx context.Context, projectID, investorID uint) (models.TransactionBreakdown, error) {
	id := investorID
	return s.aggregation.TransactionTotals(ctx, projectID, models.TransactionFilters{InvestorID: &id})
}

// Summary builds one line of the all-investors report for a single
// investor, with the ratio columns computed against the whole project.
func (s *InvestorService) Summary(ctx context.Context, projectID, investorID uint) (models.InvestorSummary, error) {
	investor, err := s.GetByID(ctx, investorID)
	if err != nil {
		return models.InvestorSummary{}, err
	}

	totals, err := s.investorTotals(ctx, projectID, investorID)
	if err != nil {
		return models.InvestorSummary{}, err
	}
	projectTotals, err := s.aggregation.TransactionProjectTotals(ctx, projectID)
	if err != nil {
		return models.InvestorSummary{}, err
	}

	summary := models.InvestorSummary{
		InvestorID:        investor.ID,
		Name:              investor.FullName(),
		ParticipationType: investor.ParticipationType,
		TotalDeposits:     totals.Deposits,
		TotalWithdrawals:  totals.Withdrawals.Abs(),
		NetPrincipal:      totals.NetCapital,
		TotalProfit:       totals.Profits,
		GrandTotal:        totals.NetCapital.Add(totals.Profits),
	}

	if projectTotals.NetCapital.Sign() > 0 {
		summary.CapitalRatio = totals.NetCapital.Div(projectTotals.NetCapital).Mul(hundred).Round(2)
	}
	if projectTotals.Profits.Sign() > 0 {
		summary.ProfitRatio = totals.Profits.Div(projectTotals.Profits).Mul(hundred).Round(2)
	}
	if projectTotals.NetCapital.Sign() > 0 && projectTotals.Profits.Sign() > 0 && totals.NetCapital.Sign() > 0 {
		capitalShare := totals.NetCapital.Div(projectTotals.NetCapital)
		profitShare := totals.Profits.Div(projectTotals.Profits)
		if capitalShare.Sign() > 0 {
			summary.ProfitIndex = profitShare.Div(capitalShare).Round(2)
		}
	}
	return summary, nil
}

// AllSummaries builds the report for every investor that has transactions
// in the project.
func (s *InvestorService) AllSummaries(ctx context.Context, projectID uint) ([]models.InvestorSummary, error) {
	if projectID == 0 {
		return nil, ErrProjectRequired
	}

	ids, err := s.txRepo.DistinctInvestorIDs(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.InvestorSummary, 0, len(ids))
	for _, id := range ids {
		summary, err := s.Summary(ctx, projectID, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Ownership converts the investor's balance into square meters against the
// weighted average price per meter of their owned units.
func (s *InvestorService) Ownership(ctx context.Context, projectID, investorID uint) (models.InvestorOwnership, error) {
	investor, err := s.investorRepo.FindByIDWithUnits(ctx, investorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InvestorOwnership{}, ErrNotFound
		}
		return models.InvestorOwnership{}, err
	}

	totals, err := s.investorTotals(ctx, projectID, investorID)
	if err != nil {
		return models.InvestorOwnership{}, err
	}

	ownership := models.InvestorOwnership{
		NetPrincipal: totals.NetCapital,
		TotalProfit:  totals.Profits,
		TotalAmount:  totals.NetCapital.Add(totals.Profits),
		UnitsCount:   len(investor.Units),
	}
	if len(investor.Units) == 0 {
		return ownership, nil
	}

	totalArea := decimal.Zero
	totalValue := decimal.Zero
	for i := range investor.Units {
		unit := &investor.Units[i]
		totalArea = totalArea.Add(unit.Area)
		totalValue = totalValue.Add(unit.Area.Mul(unit.PricePerMeter))
	}
	ownership.TotalUnitsArea = totalArea

	if totalArea.Sign() > 0 {
		avgPrice := totalValue.Div(totalArea)
		ownership.AveragePricePerMeter = avgPrice.Round(2)
		if avgPrice.Sign() > 0 {
			ownership.OwnershipArea = ownership.TotalAmount.Div(avgPrice).Round(2)
			ownership.OwnershipPercentage = ownership.OwnershipArea.Div(totalArea).Mul(hundred).Round(2)
		}
	}
	return ownership, nil
}
