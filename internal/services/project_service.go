package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/sazehapp/sazeh-api/pkg/calendar"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectService handles project CRUD and the project-level dashboard
// figures. All totals come from the aggregation service; nothing here
// sums rows directly.
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	txRepo       repository.TransactionRepository
	investorRepo repository.InvestorRepository
	expenseRepo  repository.ExpenseRepository
	aggregation  *AggregationService
	log          *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repository.ProjectRepository,
	txRepo repository.TransactionRepository,
	investorRepo repository.InvestorRepository,
	expenseRepo repository.ExpenseRepository,
	aggregation *AggregationService,
	log *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		txRepo:       txRepo,
		investorRepo: investorRepo,
		expenseRepo:  expenseRepo,
		aggregation:  aggregation,
		log:          log,
	}
}

// Create persists a project. The Gregorian dates are derived from the
// Shamsi ones; a missing GUID is generated.
func (s *ProjectService) Create(ctx context.Context, project *models.Project) error {
	if project.GUID == "" {
		project.GUID = uuid.NewString()
	}

	start, err := calendar.ToGregorian(project.StartDateShamsi)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := calendar.ToGregorian(project.EndDateShamsi)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	if !start.Before(end) {
		return errors.New("project start date must precede end date")
	}
	project.StartDateGregorian = start
	project.EndDateGregorian = end

	if project.CorrectionFactor.IsZero() {
		project.CorrectionFactor = decimal.NewFromInt(1)
	}

	return s.projectRepo.Create(ctx, project)
}

// Update persists changes to a project, re-deriving the Gregorian dates.
func (s *ProjectService) Update(ctx context.Context, project *models.Project) error {
	start, err := calendar.ToGregorian(project.StartDateShamsi)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := calendar.ToGregorian(project.EndDateShamsi)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	if !start.Before(end) {
		return errors.New("project start date must precede end date")
	}
	project.StartDateGregorian = start
	project.EndDateGregorian = end

	return s.projectRepo.Update(ctx, project)
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return s.projectRepo.Delete(ctx, id)
}

// GetByID loads one project.
func (s *ProjectService) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.FindAll(ctx)
}

// GetActive returns the single active project, or ErrNotFound.
func (s *ProjectService) GetActive(ctx context.Context) (*models.Project, error) {
	project, err := s.projectRepo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// SetActive marks one project active and deactivates the rest.
func (s *ProjectService) SetActive(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.projectRepo.SetActive(ctx, id)
}

// Statistics assembles the project dashboard payload.
func (s *ProjectService) Statistics(ctx context.Context, projectID uint) (models.ProjectStatistics, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return models.ProjectStatistics{}, err
	}

	units, err := s.aggregation.UnitProjectStats(ctx, projectID)
	if err != nil {
		return models.ProjectStatistics{}, err
	}
	totals, err := s.aggregation.TransactionProjectTotals(ctx, projectID)
	if err != nil {
		return models.ProjectStatistics{}, err
	}
	expenses, err := s.aggregation.ExpenseProjectTotal(ctx, projectID)
	if err != nil {
		return models.ProjectStatistics{}, err
	}
	sales, err := s.aggregation.SaleProjectTotal(ctx, projectID)
	if err != nil {
		return models.ProjectStatistics{}, err
	}

	investorIDs, err := s.txRepo.DistinctInvestorIDs(ctx, projectID)
	if err != nil {
		return models.ProjectStatistics{}, err
	}
	activeDays, err := s.txRepo.ActiveDays(ctx, projectID)
	if err != nil {
		return models.ProjectStatistics{}, err
	}

	return models.ProjectStatistics{
		ProjectID:           project.ID,
		ProjectName:         project.Name,
		Units:               units,
		Transactions:        totals,
		GrandTotal:          totals.NetCapital.Add(totals.Profits),
		TotalExpenses:       expenses,
		TotalSales:          sales,
		FinalCost:           expenses.Sub(sales),
		InvestorCount:       int64(len(investorIDs)),
		ProjectDurationDays: project.DurationDays(),
		ActiveDays:          activeDays,
	}, nil
}

// CostMetrics computes the per-meter, profitability and fund-balance
// figures for a project.
func (s *ProjectService) CostMetrics(ctx context.Context, projectID uint) (models.CostMetrics, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return models.CostMetrics{}, err
	}

	expenses, err := s.aggregation.ExpenseProjectTotal(ctx, projectID)
	if err != nil {
		return models.CostMetrics{}, err
	}
	sales, err := s.aggregation.SaleProjectTotal(ctx, projectID)
	if err != nil {
		return models.CostMetrics{}, err
	}
	units, err := s.aggregation.UnitProjectStats(ctx, projectID)
	if err != nil {
		return models.CostMetrics{}, err
	}
	totals, err := s.aggregation.TransactionProjectTotals(ctx, projectID)
	if err != nil {
		return models.CostMetrics{}, err
	}

	finalCost := expenses.Sub(sales)
	finalProfit := units.TotalPrice.Sub(finalCost)

	metrics := models.CostMetrics{
		FinalCost:           finalCost,
		FinalProfitAmount:   finalProfit,
		TotalExpenses:       expenses,
		TotalSales:          sales,
		TotalValue:          units.TotalPrice,
		TotalArea:           units.TotalArea,
		TotalInfrastructure: project.TotalInfrastructure,
		TotalCapital:        totals.NetCapital,
		BuildingFundBalance: totals.NetCapital.Sub(finalCost),
	}
	if finalCost.Sign() > 0 {
		metrics.TotalProfitPercentage = finalProfit.Div(finalCost).Mul(hundred).Round(2)
	}
	if units.TotalArea.Sign() > 0 {
		metrics.NetCostPerMeter = finalCost.Div(units.TotalArea).Round(2)
		metrics.ValuePerMeter = units.TotalPrice.Div(units.TotalArea).Round(2)
	}
	if project.TotalInfrastructure.Sign() > 0 {
		metrics.GrossCostPerMeter = finalCost.Div(project.TotalInfrastructure).Round(2)
	}
	return metrics, nil
}

// AverageConstructionPeriod is the expense-weighted period figure:
// sum(amount * period.weight) / sum(amount) over period-assigned expenses.
func (s *ProjectService) AverageConstructionPeriod(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	if projectID == 0 {
		return decimal.Zero, ErrProjectRequired
	}
	weighted, total, err := s.expenseRepo.WeightedPeriodSums(ctx, projectID)
	if err != nil {
		return decimal.Zero, err
	}
	if total.Sign() <= 0 {
		return decimal.Zero, nil
	}
	return weighted.Div(total).Round(2), nil
}

// ProfitPercentages derives the annual, monthly and daily profitability
// rates from the cost metrics and the average construction period. The
// daily rate carries the project correction factor and is kept at 8
// decimal places.
func (s *ProjectService) ProfitPercentages(ctx context.Context, projectID uint) (models.ProfitPercentages, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return models.ProfitPercentages{}, err
	}

	metrics, err := s.CostMetrics(ctx, projectID)
	if err != nil {
		return models.ProfitPercentages{}, err
	}
	averagePeriod, err := s.AverageConstructionPeriod(ctx, projectID)
	if err != nil {
		return models.ProfitPercentages{}, err
	}

	result := models.ProfitPercentages{
		TotalProfitPercentage:     metrics.TotalProfitPercentage,
		AverageConstructionPeriod: averagePeriod,
		CorrectionFactor:          project.CorrectionFactor,
	}
	if averagePeriod.Sign() > 0 {
		annual := metrics.TotalProfitPercentage.Div(averagePeriod).Mul(twelve)
		result.AnnualProfitPercentage = annual.Round(2)
		result.MonthlyProfitPercentage = annual.Div(twelve).Round(2)
		result.DailyProfitPercentage = annual.Div(decimal.NewFromInt(365)).Mul(project.CorrectionFactor).Round(8)
	}
	return result, nil
}

var twelve = decimal.NewFromInt(12)
