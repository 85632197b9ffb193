package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProjectService(t *testing.T, db *gorm.DB) *ProjectService {
	t.Helper()
	return NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewInvestorRepository(db),
		repository.NewExpenseRepository(db),
		newAggregationService(t, db),
		slog.Default(),
	)
}

// seedDashboardProject builds a ledger with round numbers so every derived
// figure is exact: final cost 1,000,000 against a total value of 2,000,000.
func seedDashboardProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()

	project := &models.Project{
		GUID:                "dash",
		Name:                "Dashboard Tower",
		StartDateGregorian:  time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		EndDateGregorian:    time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		TotalInfrastructure: dec("1000"),
		CorrectionFactor:    dec("1"),
	}
	require.NoError(t, db.Create(project).Error)

	period := &models.Period{ProjectID: project.ID, Label: "Ordibehesht 1403", Year: 1403, MonthNumber: 2, Weight: 2}
	require.NoError(t, db.Create(period).Error)

	date1 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	date2 := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		{ProjectID: project.ID, InvestorID: 1, PeriodID: period.ID, DateGregorian: date1, Amount: dec("1500000"), TransactionType: models.TransactionTypePrincipalDeposit, DayRemaining: 700},
		{ProjectID: project.ID, InvestorID: 2, PeriodID: period.ID, DateGregorian: date2, Amount: dec("-100000"), TransactionType: models.TransactionTypePrincipalWithdrawal, DayRemaining: 699},
		{ProjectID: project.ID, InvestorID: 1, PeriodID: period.ID, DateGregorian: date2, Amount: dec("50000"), TransactionType: models.TransactionTypeProfitAccrual, DayRemaining: 699, IsSystemGenerated: true},
	}
	require.NoError(t, db.Create(&transactions).Error)

	require.NoError(t, db.Create(&models.Expense{
		ProjectID: project.ID, PeriodID: &period.ID,
		ExpenseType: models.ExpenseTypeProjectManager, Amount: dec("1200000"),
	}).Error)
	require.NoError(t, db.Create(&models.Sale{
		ProjectID: project.ID, PeriodID: period.ID, Amount: dec("200000"),
	}).Error)

	units := []models.Unit{
		{ProjectID: project.ID, Name: "101", Area: dec("100"), PricePerMeter: dec("10000"), TotalPrice: dec("1000000")},
		{ProjectID: project.ID, Name: "102", Area: dec("100"), PricePerMeter: dec("10000"), TotalPrice: dec("1000000")},
	}
	require.NoError(t, db.Create(&units).Error)

	return project
}

func TestProjectService_Statistics(t *testing.T) {
	db := newTestDB(t)
	service := newProjectService(t, db)
	project := seedDashboardProject(t, db)

	stats, err := service.Statistics(context.Background(), project.ID)
	require.NoError(t, err)

	assert.Equal(t, project.ID, stats.ProjectID)
	assert.True(t, dec("1400000").Equal(stats.Transactions.NetCapital))
	// grand_total = net_capital + profits
	assert.True(t, dec("1450000").Equal(stats.GrandTotal), "got %s", stats.GrandTotal)
	assert.True(t, dec("1000000").Equal(stats.FinalCost))
	assert.Equal(t, int64(2), stats.InvestorCount)
	assert.Equal(t, int64(2), stats.ActiveDays)
	assert.Equal(t, 730, stats.ProjectDurationDays)
}

func TestProjectService_CostMetrics(t *testing.T) {
	db := newTestDB(t)
	service := newProjectService(t, db)
	project := seedDashboardProject(t, db)

	metrics, err := service.CostMetrics(context.Background(), project.ID)
	require.NoError(t, err)

	assert.True(t, dec("1000000").Equal(metrics.FinalCost))
	assert.True(t, dec("1000000").Equal(metrics.FinalProfitAmount))
	assert.True(t, dec("100").Equal(metrics.TotalProfitPercentage), "got %s", metrics.TotalProfitPercentage)
	assert.True(t, dec("5000").Equal(metrics.NetCostPerMeter))
	assert.True(t, dec("10000").Equal(metrics.ValuePerMeter))
	assert.True(t, dec("1000").Equal(metrics.GrossCostPerMeter))
	// building_fund_balance = net_capital - final_cost
	assert.True(t, dec("400000").Equal(metrics.BuildingFundBalance), "got %s", metrics.BuildingFundBalance)
}

func TestProjectService_CostMetrics_EmptyProjectHasNoDivisions(t *testing.T) {
	db := newTestDB(t)
	service := newProjectService(t, db)

	project := &models.Project{
		GUID: "empty", Name: "Empty",
		StartDateGregorian: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		EndDateGregorian:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(project).Error)

	metrics, err := service.CostMetrics(context.Background(), project.ID)
	require.NoError(t, err)
	assert.True(t, metrics.TotalProfitPercentage.IsZero())
	assert.True(t, metrics.NetCostPerMeter.IsZero())
	assert.True(t, metrics.GrossCostPerMeter.IsZero())
}

func TestProjectService_ProfitPercentages(t *testing.T) {
	db := newTestDB(t)
	service := newProjectService(t, db)
	project := seedDashboardProject(t, db)

	percentages, err := service.ProfitPercentages(context.Background(), project.ID)
	require.NoError(t, err)

	// Single expense in a weight-2 period: average construction period 2.00.
	assert.True(t, dec("2").Equal(percentages.AverageConstructionPeriod), "got %s", percentages.AverageConstructionPeriod)
	// annual = 100 / 2 * 12
	assert.True(t, dec("600").Equal(percentages.AnnualProfitPercentage), "got %s", percentages.AnnualProfitPercentage)
	assert.True(t, dec("50").Equal(percentages.MonthlyProfitPercentage))
	// daily = 600 / 365, correction factor 1, 8 decimal places
	assert.True(t, dec("1.64383562").Equal(percentages.DailyProfitPercentage), "got %s", percentages.DailyProfitPercentage)
}

func TestProjectService_CreateValidatesDates(t *testing.T) {
	db := newTestDB(t)
	service := newProjectService(t, db)
	ctx := context.Background()

	err := service.Create(ctx, &models.Project{
		Name:            "Backwards",
		StartDateShamsi: "1404-01-01",
		EndDateShamsi:   "1403-01-01",
	})
	assert.Error(t, err)

	project := &models.Project{
		Name:            "Forwards",
		StartDateShamsi: "1403-01-01",
		EndDateShamsi:   "1405-01-01",
	}
	require.NoError(t, service.Create(ctx, project))
	assert.NotEmpty(t, project.GUID)
	assert.True(t, project.StartDateGregorian.Before(project.EndDateGregorian))
	assert.True(t, dec("1").Equal(project.CorrectionFactor))
}

func TestProjectService_SetActive(t *testing.T) {
	db := newTestDB(t)
	service := newProjectService(t, db)
	ctx := context.Background()

	projects := []models.Project{
		{GUID: "a", Name: "A", StartDateGregorian: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), EndDateGregorian: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true},
		{GUID: "b", Name: "B", StartDateGregorian: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), EndDateGregorian: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, db.Create(&projects).Error)

	require.NoError(t, service.SetActive(ctx, projects[1].ID))

	active, err := service.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, projects[1].ID, active.ID)

	var activeCount int64
	require.NoError(t, db.Model(&models.Project{}).Where("is_active = ?", true).Count(&activeCount).Error)
	assert.Equal(t, int64(1), activeCount)

	assert.ErrorIs(t, service.SetActive(ctx, 999), ErrNotFound)
}
