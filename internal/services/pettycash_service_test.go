package services

import (
	"context"
	"testing"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPettyCashService(t *testing.T, db *gorm.DB) *PettyCashService {
	t.Helper()
	return NewPettyCashService(
		repository.NewPettyCashRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewPeriodRepository(db),
	)
}

func TestPettyCashService_BalanceSignConvention(t *testing.T) {
	db := newTestDB(t)
	service := newPettyCashService(t, db)
	ctx := context.Background()
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	receipts := []models.PettyCashTransaction{
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProjectManager, TransactionType: models.PettyCashTypeReceipt, Amount: dec("300000"), DateGregorian: date},
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProjectManager, TransactionType: models.PettyCashTypeReceipt, Amount: dec("200000"), DateGregorian: date},
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProjectManager, TransactionType: models.PettyCashTypeReturn, Amount: dec("50000"), DateGregorian: date},
	}
	require.NoError(t, db.Create(&receipts).Error)
	require.NoError(t, db.Create(&models.Expense{
		ProjectID: 1, ExpenseType: models.ExpenseTypeProjectManager, Amount: dec("300000"),
	}).Error)

	balance, err := service.GetBalance(ctx, 1, models.ExpenseTypeProjectManager)
	require.NoError(t, err)
	assert.True(t, dec("500000").Equal(balance.TotalReceipts))
	assert.True(t, dec("300000").Equal(balance.TotalExpenses))
	assert.True(t, dec("50000").Equal(balance.TotalReturns))
	// Positive: the agent owes the fund.
	assert.True(t, dec("150000").Equal(balance.Balance), "got %s", balance.Balance)
}

func TestPettyCashService_AmountStoredNonNegative(t *testing.T) {
	db := newTestDB(t)
	service := newPettyCashService(t, db)
	ctx := context.Background()

	tx := &models.PettyCashTransaction{
		ProjectID:       1,
		ExpenseType:     models.ExpenseTypeWarehouse,
		TransactionType: models.PettyCashTypeReturn,
		Amount:          dec("-7500"),
		DateGregorian:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, service.Create(ctx, tx))

	stored, err := service.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, dec("7500").Equal(stored.Amount))
	assert.True(t, dec("-7500").Equal(stored.SignedAmount()))
}

func TestPettyCashService_GetAllBalances_ExcludesNonAgents(t *testing.T) {
	db := newTestDB(t)
	service := newPettyCashService(t, db)
	ctx := context.Background()

	// Contractor and "other" expenses exist but are never petty-cash funded.
	seed := []models.Expense{
		{ProjectID: 1, ExpenseType: models.ExpenseTypeConstructionContractor, Amount: dec("400000")},
		{ProjectID: 1, ExpenseType: models.ExpenseTypeOther, Amount: dec("100000")},
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProcurement, Amount: dec("20000")},
	}
	require.NoError(t, db.Create(&seed).Error)

	balances, err := service.GetAllBalances(ctx, 1)
	require.NoError(t, err)
	require.Len(t, balances, len(models.PettyCashAgentTypes))

	types := make(map[string]models.PettyCashBalance, len(balances))
	for _, b := range balances {
		types[b.ExpenseType] = b
	}
	assert.NotContains(t, types, models.ExpenseTypeConstructionContractor)
	assert.NotContains(t, types, models.ExpenseTypeOther)
	assert.True(t, dec("-20000").Equal(types[models.ExpenseTypeProcurement].Balance))
}

func TestPettyCashService_PeriodBalance_DualPath(t *testing.T) {
	db := newTestDB(t)
	service := newPettyCashService(t, db)
	ctx := context.Background()

	period1 := &models.Period{
		ProjectID: 1, Label: "Farvardin 1403", Year: 1403, MonthNumber: 1, Weight: 1,
		StartDateGregorian: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		EndDateGregorian:   time.Date(2024, 4, 19, 0, 0, 0, 0, time.UTC),
	}
	period2 := &models.Period{
		ProjectID: 1, Label: "Ordibehesht 1403", Year: 1403, MonthNumber: 2, Weight: 1,
		StartDateGregorian: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
		EndDateGregorian:   time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(period1).Error)
	require.NoError(t, db.Create(period2).Error)

	require.NoError(t, db.Create(&models.PettyCashTransaction{
		ProjectID: 1, ExpenseType: models.ExpenseTypeWarehouse,
		TransactionType: models.PettyCashTypeReceipt, Amount: dec("1000000"),
		DateGregorian: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
	}).Error)

	expenses := []models.Expense{
		// Period-assigned to period 1: counted by (year, month).
		{ProjectID: 1, PeriodID: &period1.ID, ExpenseType: models.ExpenseTypeWarehouse, Amount: dec("100000")},
		// Period-assigned to period 2: outside the cutoff.
		{ProjectID: 1, PeriodID: &period2.ID, ExpenseType: models.ExpenseTypeWarehouse, Amount: dec("70000")},
		// Unassigned, created within period 1: counted by created_at.
		{ProjectID: 1, ExpenseType: models.ExpenseTypeWarehouse, Amount: dec("30000"), CreatedAt: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
		// Unassigned, created after period 1 ends: excluded.
		{ProjectID: 1, ExpenseType: models.ExpenseTypeWarehouse, Amount: dec("999999"), CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, db.Create(&expenses).Error)

	balance, err := service.GetBalanceByPeriod(ctx, 1, models.ExpenseTypeWarehouse, period1.ID)
	require.NoError(t, err)
	assert.True(t, dec("130000").Equal(balance.TotalExpenses), "got %s", balance.TotalExpenses)
	assert.True(t, dec("870000").Equal(balance.Balance), "got %s", balance.Balance)
}

func TestPettyCashService_PeriodBalanceTrend(t *testing.T) {
	db := newTestDB(t)
	service := newPettyCashService(t, db)
	ctx := context.Background()

	period1 := &models.Period{
		ProjectID: 1, Label: "Farvardin 1403", Year: 1403, MonthNumber: 1, Weight: 1,
		StartDateGregorian: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		EndDateGregorian:   time.Date(2024, 4, 19, 0, 0, 0, 0, time.UTC),
	}
	period2 := &models.Period{
		ProjectID: 1, Label: "Ordibehesht 1403", Year: 1403, MonthNumber: 2, Weight: 1,
		StartDateGregorian: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
		EndDateGregorian:   time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(period1).Error)
	require.NoError(t, db.Create(period2).Error)

	cash := []models.PettyCashTransaction{
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProcurement, TransactionType: models.PettyCashTypeReceipt, Amount: dec("500000"), DateGregorian: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)},
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProcurement, TransactionType: models.PettyCashTypeReceipt, Amount: dec("200000"), DateGregorian: time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC)},
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProcurement, TransactionType: models.PettyCashTypeReturn, Amount: dec("50000"), DateGregorian: time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, db.Create(&cash).Error)

	expenses := []models.Expense{
		{ProjectID: 1, PeriodID: &period1.ID, ExpenseType: models.ExpenseTypeProcurement, Amount: dec("300000")},
		{ProjectID: 1, PeriodID: &period2.ID, ExpenseType: models.ExpenseTypeProcurement, Amount: dec("100000")},
	}
	require.NoError(t, db.Create(&expenses).Error)

	trend, err := service.GetPeriodBalanceTrend(ctx, 1, models.ExpenseTypeProcurement, nil, nil)
	require.NoError(t, err)
	require.Len(t, trend, 2)

	assert.True(t, dec("200000").Equal(trend[0].PeriodBalance), "got %s", trend[0].PeriodBalance)
	assert.True(t, dec("200000").Equal(trend[0].CumulativeBalance))

	assert.True(t, dec("50000").Equal(trend[1].PeriodBalance), "got %s", trend[1].PeriodBalance)
	assert.True(t, dec("250000").Equal(trend[1].CumulativeBalance), "got %s", trend[1].CumulativeBalance)

	// Bounding to the second period drops the first point but keeps the
	// cumulative column anchored at the project start.
	bounded, err := service.GetPeriodBalanceTrend(ctx, 1, models.ExpenseTypeProcurement, &period2.ID, nil)
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, period2.ID, bounded[0].PeriodID)
	assert.True(t, dec("250000").Equal(bounded[0].CumulativeBalance))
}
