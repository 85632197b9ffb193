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

func newAggregationService(t *testing.T, db *gorm.DB) *AggregationService {
	t.Helper()
	return NewAggregationService(
		repository.NewTransactionRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewSaleRepository(db),
		repository.NewPettyCashRepository(db),
		repository.NewUnitRepository(db),
		repository.NewPeriodRepository(db),
	)
}

// seedLedger populates one project with data in every table across two
// periods and returns the periods in (year, month) order.
func seedLedger(t *testing.T, db *gorm.DB) []models.Period {
	t.Helper()

	periods := []models.Period{
		{ProjectID: 1, Label: "Farvardin 1403", Year: 1403, MonthNumber: 1, Weight: 1,
			StartDateGregorian: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			EndDateGregorian:   time.Date(2024, 4, 19, 0, 0, 0, 0, time.UTC)},
		{ProjectID: 1, Label: "Ordibehesht 1403", Year: 1403, MonthNumber: 2, Weight: 2,
			StartDateGregorian: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
			EndDateGregorian:   time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, db.Create(&periods).Error)

	date1 := periods[0].StartDateGregorian.AddDate(0, 0, 3)
	date2 := periods[1].StartDateGregorian.AddDate(0, 0, 3)
	transactions := []models.Transaction{
		{ProjectID: 1, InvestorID: 1, PeriodID: periods[0].ID, DateGregorian: date1, Amount: dec("1000000"), TransactionType: models.TransactionTypePrincipalDeposit, DayRemaining: 700},
		{ProjectID: 1, InvestorID: 2, PeriodID: periods[0].ID, DateGregorian: date1, Amount: dec("400000"), TransactionType: models.TransactionTypeLoanDeposit, DayRemaining: 700},
		{ProjectID: 1, InvestorID: 1, PeriodID: periods[1].ID, DateGregorian: date2, Amount: dec("-250000"), TransactionType: models.TransactionTypePrincipalWithdrawal, DayRemaining: 670},
		{ProjectID: 1, InvestorID: 1, PeriodID: periods[1].ID, DateGregorian: date2, Amount: dec("70000"), TransactionType: models.TransactionTypeProfitAccrual, DayRemaining: 670, IsSystemGenerated: true},
	}
	require.NoError(t, db.Create(&transactions).Error)

	expenses := []models.Expense{
		{ProjectID: 1, PeriodID: &periods[0].ID, ExpenseType: models.ExpenseTypeProjectManager, Amount: dec("120000")},
		{ProjectID: 1, PeriodID: &periods[1].ID, ExpenseType: models.ExpenseTypeProcurement, Amount: dec("80000")},
	}
	require.NoError(t, db.Create(&expenses).Error)

	sales := []models.Sale{
		{ProjectID: 1, PeriodID: periods[0].ID, Amount: dec("50000")},
		{ProjectID: 1, PeriodID: periods[1].ID, Amount: dec("90000")},
	}
	require.NoError(t, db.Create(&sales).Error)

	units := []models.Unit{
		{ProjectID: 1, Name: "Unit 101", Area: dec("85.5"), PricePerMeter: dec("1000"), TotalPrice: dec("85500")},
		{ProjectID: 1, Name: "Unit 102", Area: dec("114.5"), PricePerMeter: dec("1200"), TotalPrice: dec("137400")},
	}
	require.NoError(t, db.Create(&units).Error)

	cash := []models.PettyCashTransaction{
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProjectManager, TransactionType: models.PettyCashTypeReceipt, Amount: dec("200000"), DateGregorian: date1},
		{ProjectID: 1, ExpenseType: models.ExpenseTypeProjectManager, TransactionType: models.PettyCashTypeReturn, Amount: dec("30000"), DateGregorian: date2},
	}
	require.NoError(t, db.Create(&cash).Error)

	return periods
}

func TestAggregationService_TransactionBuckets(t *testing.T) {
	db := newTestDB(t)
	service := newAggregationService(t, db)
	seedLedger(t, db)
	ctx := context.Background()

	totals, err := service.TransactionProjectTotals(ctx, 1)
	require.NoError(t, err)
	assert.True(t, dec("1400000").Equal(totals.Deposits), "got %s", totals.Deposits)
	assert.True(t, dec("-250000").Equal(totals.Withdrawals), "got %s", totals.Withdrawals)
	assert.True(t, dec("70000").Equal(totals.Profits))
	assert.True(t, dec("1150000").Equal(totals.NetCapital), "got %s", totals.NetCapital)

	investorID := uint(1)
	breakdown, err := service.TransactionTotals(ctx, 1, models.TransactionFilters{InvestorID: &investorID})
	require.NoError(t, err)
	assert.True(t, dec("1000000").Equal(breakdown.PrincipalDeposit))
	assert.True(t, dec("0").Equal(breakdown.LoanDeposit))
	assert.Equal(t, int64(3), breakdown.Count)
}

func TestAggregationService_CumulativeMonotonicity(t *testing.T) {
	db := newTestDB(t)
	service := newAggregationService(t, db)
	periods := seedLedger(t, db)
	ctx := context.Background()

	prevExpenses, err := service.ExpenseCumulativeUntil(ctx, 1, periods[0].ID)
	require.NoError(t, err)
	periodExpenses, err := service.ExpensePeriodTotal(ctx, 1, periods[1].ID)
	require.NoError(t, err)
	cumExpenses, err := service.ExpenseCumulativeUntil(ctx, 1, periods[1].ID)
	require.NoError(t, err)
	assert.True(t, prevExpenses.Add(periodExpenses).Equal(cumExpenses))

	prevSales, err := service.SaleCumulativeUntil(ctx, 1, periods[0].ID)
	require.NoError(t, err)
	periodSales, err := service.SalePeriodTotal(ctx, 1, periods[1].ID)
	require.NoError(t, err)
	cumSales, err := service.SaleCumulativeUntil(ctx, 1, periods[1].ID)
	require.NoError(t, err)
	assert.True(t, prevSales.Add(periodSales).Equal(cumSales))
}

func TestAggregationService_UnitStats(t *testing.T) {
	db := newTestDB(t)
	service := newAggregationService(t, db)
	seedLedger(t, db)

	stats, err := service.UnitProjectStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUnits)
	assert.True(t, dec("200").Equal(stats.TotalArea), "got %s", stats.TotalArea)
	assert.True(t, dec("222900").Equal(stats.TotalPrice), "got %s", stats.TotalPrice)
}

func TestAggregationService_ProjectRequired(t *testing.T) {
	db := newTestDB(t)
	service := newAggregationService(t, db)

	_, err := service.TransactionProjectTotals(context.Background(), 0)
	assert.ErrorIs(t, err, ErrProjectRequired)
}

func TestAuditService_VerifyCleanLedger(t *testing.T) {
	db := newTestDB(t)
	aggregation := newAggregationService(t, db)
	audit := NewAuditService(aggregation, repository.NewPeriodRepository(db), db, slog.Default())
	seedLedger(t, db)

	mismatches, err := audit.Verify(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestAuditService_PeriodLimit(t *testing.T) {
	db := newTestDB(t)
	aggregation := newAggregationService(t, db)
	audit := NewAuditService(aggregation, repository.NewPeriodRepository(db), db, slog.Default())
	seedLedger(t, db)

	mismatches, err := audit.Verify(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	_, err = audit.Verify(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrProjectRequired)
}
