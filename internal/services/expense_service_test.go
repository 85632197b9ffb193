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

func newExpenseService(t *testing.T, db *gorm.DB) (*ExpenseService, repository.ExpenseRepository) {
	t.Helper()
	expenseRepo := repository.NewExpenseRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	return NewExpenseService(expenseRepo, projectRepo, periodRepo, slog.Default()), expenseRepo
}

func seedContractorProject(t *testing.T, db *gorm.DB) (*models.Project, *models.Period) {
	t.Helper()
	project := &models.Project{
		GUID:                             "test-project",
		Name:                             "Test Tower",
		StartDateGregorian:               time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		EndDateGregorian:                 time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		ConstructionContractorPercentage: dec("0.100"),
	}
	require.NoError(t, db.Create(project).Error)

	period := &models.Period{
		ProjectID:   project.ID,
		Label:       "Farvardin 1403",
		Year:        1403,
		MonthNumber: 1,
		Weight:      1,
	}
	require.NoError(t, db.Create(period).Error)
	return project, period
}

func TestExpenseService_ContractorRoundTrip(t *testing.T) {
	db := newTestDB(t)
	service, expenseRepo := newExpenseService(t, db)
	project, period := seedContractorProject(t, db)
	ctx := context.Background()

	pm := &models.Expense{ProjectID: project.ID, PeriodID: &period.ID, ExpenseType: models.ExpenseTypeProjectManager, Amount: dec("1000000")}
	fm := &models.Expense{ProjectID: project.ID, PeriodID: &period.ID, ExpenseType: models.ExpenseTypeFacilitiesManager, Amount: dec("800000")}
	proc := &models.Expense{ProjectID: project.ID, PeriodID: &period.ID, ExpenseType: models.ExpenseTypeProcurement, Amount: dec("600000")}
	require.NoError(t, service.Create(ctx, pm))
	require.NoError(t, service.Create(ctx, fm))
	require.NoError(t, service.Create(ctx, proc))

	// 10% of 2,400,000
	contractor, err := expenseRepo.FindContractorForPeriod(ctx, project.ID, period.ID)
	require.NoError(t, err)
	assert.True(t, dec("240000").Equal(contractor.Amount), "got %s", contractor.Amount)

	// Deleting a base row re-derives: 10% of 1,600,000.
	require.NoError(t, service.Delete(ctx, fm.ID))
	contractor, err = expenseRepo.FindContractorForPeriod(ctx, project.ID, period.ID)
	require.NoError(t, err)
	assert.True(t, dec("160000").Equal(contractor.Amount), "got %s", contractor.Amount)

	// With every base row gone there is no contractor row at all.
	require.NoError(t, service.Delete(ctx, pm.ID))
	require.NoError(t, service.Delete(ctx, proc.ID))
	_, err = expenseRepo.FindContractorForPeriod(ctx, project.ID, period.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestExpenseService_OtherTypeExcludedFromBase(t *testing.T) {
	db := newTestDB(t)
	service, expenseRepo := newExpenseService(t, db)
	project, period := seedContractorProject(t, db)
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, &models.Expense{
		ProjectID: project.ID, PeriodID: &period.ID,
		ExpenseType: models.ExpenseTypeWarehouse, Amount: dec("500000"),
	}))
	require.NoError(t, service.Create(ctx, &models.Expense{
		ProjectID: project.ID, PeriodID: &period.ID,
		ExpenseType: models.ExpenseTypeOther, Amount: dec("9000000"),
	}))

	contractor, err := expenseRepo.FindContractorForPeriod(ctx, project.ID, period.ID)
	require.NoError(t, err)
	assert.True(t, dec("50000").Equal(contractor.Amount), "got %s", contractor.Amount)
}

func TestExpenseService_ContractorWriteDoesNotRecurse(t *testing.T) {
	db := newTestDB(t)
	service, expenseRepo := newExpenseService(t, db)
	project, period := seedContractorProject(t, db)
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, &models.Expense{
		ProjectID: project.ID, PeriodID: &period.ID,
		ExpenseType: models.ExpenseTypeConstructionContractor, Amount: dec("123"),
	}))

	// No base expenses, so the manually created contractor row survives
	// untouched: contractor-typed writes never trigger the derivation.
	contractor, err := expenseRepo.FindContractorForPeriod(ctx, project.ID, period.ID)
	require.NoError(t, err)
	assert.True(t, dec("123").Equal(contractor.Amount))
}

func TestExpenseService_PeriodMoveRetriggersOldPeriod(t *testing.T) {
	db := newTestDB(t)
	service, expenseRepo := newExpenseService(t, db)
	project, period1 := seedContractorProject(t, db)
	ctx := context.Background()

	period2 := &models.Period{ProjectID: project.ID, Label: "Ordibehesht 1403", Year: 1403, MonthNumber: 2, Weight: 1}
	require.NoError(t, db.Create(period2).Error)

	expense := &models.Expense{ProjectID: project.ID, PeriodID: &period1.ID, ExpenseType: models.ExpenseTypeProjectManager, Amount: dec("1000000")}
	require.NoError(t, service.Create(ctx, expense))

	expense.PeriodID = &period2.ID
	require.NoError(t, service.Update(ctx, expense))

	// Old period lost its only base expense; new period gained it.
	_, err := expenseRepo.FindContractorForPeriod(ctx, project.ID, period1.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	contractor, err := expenseRepo.FindContractorForPeriod(ctx, project.ID, period2.ID)
	require.NoError(t, err)
	assert.True(t, dec("100000").Equal(contractor.Amount))
}

func TestExpenseService_InvalidType(t *testing.T) {
	db := newTestDB(t)
	service, _ := newExpenseService(t, db)
	project, period := seedContractorProject(t, db)

	err := service.Create(context.Background(), &models.Expense{
		ProjectID: project.ID, PeriodID: &period.ID,
		ExpenseType: "landscaping", Amount: dec("100"),
	})
	assert.ErrorIs(t, err, ErrInvalidExpenseType)
}

func TestExpenseService_RecalculateAllContractorExpenses(t *testing.T) {
	db := newTestDB(t)
	service, expenseRepo := newExpenseService(t, db)
	project, period1 := seedContractorProject(t, db)
	ctx := context.Background()

	period2 := &models.Period{ProjectID: project.ID, Label: "Ordibehesht 1403", Year: 1403, MonthNumber: 2, Weight: 1}
	require.NoError(t, db.Create(period2).Error)

	// Seed base rows directly, bypassing the reactive write path.
	seed := []models.Expense{
		{ProjectID: project.ID, PeriodID: &period1.ID, ExpenseType: models.ExpenseTypeProjectManager, Amount: dec("2000000")},
		{ProjectID: project.ID, PeriodID: &period2.ID, ExpenseType: models.ExpenseTypeProcurement, Amount: dec("3000000")},
	}
	require.NoError(t, db.Create(&seed).Error)

	require.NoError(t, service.RecalculateAllContractorExpenses(ctx, project.ID))

	c1, err := expenseRepo.FindContractorForPeriod(ctx, project.ID, period1.ID)
	require.NoError(t, err)
	assert.True(t, dec("200000").Equal(c1.Amount))

	c2, err := expenseRepo.FindContractorForPeriod(ctx, project.ID, period2.ID)
	require.NoError(t, err)
	assert.True(t, dec("300000").Equal(c2.Amount))
}
