package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock TransactionRepository
type mockTransactionRepo struct {
	repository.TransactionRepository
	mockFindCapital func(ctx context.Context, projectID uint) ([]models.Transaction, error)
}

func (m *mockTransactionRepo) FindCapitalWithDaysRemaining(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	return m.mockFindCapital(ctx, projectID)
}

// Mock InterestRateRepository
type mockRateRepo struct {
	repository.InterestRateRepository
	mockActiveForProject func(ctx context.Context, projectID uint) (*models.InterestRate, error)
}

func (m *mockRateRepo) ActiveForProject(ctx context.Context, projectID uint) (*models.InterestRate, error) {
	return m.mockActiveForProject(ctx, projectID)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProfitService_CalculateProfit(t *testing.T) {
	service := NewProfitService(nil, nil, nil, slog.Default())
	rate := &models.InterestRate{ID: 1, ProjectID: 1, Rate: dec("0.001")}

	tests := []struct {
		name     string
		txType   string
		amount   string
		days     int
		expected string
	}{
		{"deposit accrues positive profit", models.TransactionTypePrincipalDeposit, "1000000", 100, "100000"},
		{"loan deposit accrues too", models.TransactionTypeLoanDeposit, "500000", 10, "5000"},
		{"withdrawal accrues negative profit", models.TransactionTypePrincipalWithdrawal, "-500000", 100, "-50000"},
		{"half-up rounding", models.TransactionTypePrincipalDeposit, "1005", 1, "1.01"},
		{"half-up rounding away from zero", models.TransactionTypePrincipalWithdrawal, "-1005", 1, "-1.01"},
		{"zero day window", models.TransactionTypePrincipalDeposit, "1000000", 0, "0"},
		{"negative day window", models.TransactionTypePrincipalDeposit, "1000000", -5, "0"},
		{"profit accrual never compounds", models.TransactionTypeProfitAccrual, "1000000", 100, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &models.Transaction{
				ProjectID:       1,
				Amount:          dec(tt.amount),
				TransactionType: tt.txType,
				DayRemaining:    tt.days,
			}
			profit, err := service.CalculateProfit(context.Background(), tx, rate)
			require.NoError(t, err)
			assert.True(t, dec(tt.expected).Equal(profit), "expected %s, got %s", tt.expected, profit)
		})
	}
}

func TestProfitService_CalculateProfit_NoActiveRate(t *testing.T) {
	rateRepo := &mockRateRepo{
		mockActiveForProject: func(ctx context.Context, projectID uint) (*models.InterestRate, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewProfitService(nil, rateRepo, nil, slog.Default())

	tx := &models.Transaction{
		ProjectID:       1,
		Amount:          dec("1000000"),
		TransactionType: models.TransactionTypePrincipalDeposit,
		DayRemaining:    100,
	}
	profit, err := service.CalculateProfit(context.Background(), tx, nil)
	require.NoError(t, err)
	assert.True(t, profit.IsZero())
}

func TestProfitService_CalculateAllProfits(t *testing.T) {
	txRepo := &mockTransactionRepo{
		mockFindCapital: func(ctx context.Context, projectID uint) ([]models.Transaction, error) {
			return []models.Transaction{
				{
					ID:              10,
					ProjectID:       projectID,
					InvestorID:      3,
					PeriodID:        7,
					Amount:          dec("1000000"),
					TransactionType: models.TransactionTypePrincipalDeposit,
					DayRemaining:    100,
					DayFromStart:    20,
				},
				{
					// Rounds to 0.00 and must leave no row.
					ID:              11,
					ProjectID:       projectID,
					InvestorID:      3,
					PeriodID:        7,
					Amount:          dec("0.001"),
					TransactionType: models.TransactionTypePrincipalDeposit,
					DayRemaining:    1,
					DayFromStart:    20,
				},
			}, nil
		},
	}
	service := NewProfitService(txRepo, nil, nil, slog.Default())
	rate := &models.InterestRate{ID: 2, ProjectID: 1, Rate: dec("0.001")}

	accruals, err := service.CalculateAllProfits(context.Background(), 1, rate)
	require.NoError(t, err)
	require.Len(t, accruals, 1)

	accrual := accruals[0]
	assert.Equal(t, models.TransactionTypeProfitAccrual, accrual.TransactionType)
	assert.True(t, dec("100000").Equal(accrual.Amount))
	assert.True(t, accrual.IsSystemGenerated)
	require.NotNil(t, accrual.ParentTransactionID)
	assert.Equal(t, uint(10), *accrual.ParentTransactionID)
	require.NotNil(t, accrual.InterestRateID)
	assert.Equal(t, uint(2), *accrual.InterestRateID)
	assert.Equal(t, uint(3), accrual.InvestorID)
	assert.Equal(t, uint(7), accrual.PeriodID)
}

func TestProfitService_CalculateAllProfits_ProjectRequired(t *testing.T) {
	service := NewProfitService(nil, nil, nil, slog.Default())
	_, err := service.CalculateAllProfits(context.Background(), 0, nil)
	assert.ErrorIs(t, err, ErrProjectRequired)
}

func TestProfitService_RecalculateAllProfits_Idempotent(t *testing.T) {
	db := newTestDB(t)
	txRepo := repository.NewTransactionRepository(db)
	rateRepo := repository.NewInterestRateRepository(db)
	service := NewProfitService(txRepo, rateRepo, db, slog.Default())
	ctx := context.Background()

	date := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
	seed := []models.Transaction{
		{ProjectID: 1, InvestorID: 1, PeriodID: 1, DateGregorian: date, Amount: dec("1000000"), TransactionType: models.TransactionTypePrincipalDeposit, DayRemaining: 100},
		{ProjectID: 1, InvestorID: 2, PeriodID: 1, DateGregorian: date, Amount: dec("-200000"), TransactionType: models.TransactionTypePrincipalWithdrawal, DayRemaining: 50},
		// Stale manual profit row that must not survive a recompute.
		{ProjectID: 1, InvestorID: 1, PeriodID: 1, DateGregorian: date, Amount: dec("999"), TransactionType: models.TransactionTypeProfitAccrual, DayRemaining: 100},
	}
	require.NoError(t, db.Create(&seed).Error)

	rate := &models.InterestRate{ID: 1, ProjectID: 1, Rate: dec("0.001"), EffectiveDate: date, IsActive: true}
	require.NoError(t, rateRepo.Save(ctx, rate))

	first, err := service.RecalculateAllProfitsWithNewRate(ctx, 1, rate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Deleted)
	assert.Equal(t, 2, first.Created)

	count, err := txRepo.CountProfitAccruals(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	totalsAfterFirst, err := txRepo.ProjectTotals(ctx, 1)
	require.NoError(t, err)
	// 1,000,000*100*0.001 + (-200,000)*50*0.001
	assert.True(t, dec("90000").Equal(totalsAfterFirst.Profits), "got %s", totalsAfterFirst.Profits)

	second, err := service.RecalculateAllProfitsWithNewRate(ctx, 1, rate)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Deleted)
	assert.Equal(t, 2, second.Created)

	totalsAfterSecond, err := txRepo.ProjectTotals(ctx, 1)
	require.NoError(t, err)
	assert.True(t, totalsAfterFirst.Profits.Equal(totalsAfterSecond.Profits))

	count, err = txRepo.CountProfitAccruals(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestProfitService_Recalculate_NoRate_DeletesOnly(t *testing.T) {
	db := newTestDB(t)
	txRepo := repository.NewTransactionRepository(db)
	rateRepo := repository.NewInterestRateRepository(db)
	service := NewProfitService(txRepo, rateRepo, db, slog.Default())
	ctx := context.Background()

	date := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
	seed := []models.Transaction{
		{ProjectID: 1, InvestorID: 1, PeriodID: 1, DateGregorian: date, Amount: dec("1000000"), TransactionType: models.TransactionTypePrincipalDeposit, DayRemaining: 100},
		{ProjectID: 1, InvestorID: 1, PeriodID: 1, DateGregorian: date, Amount: dec("500"), TransactionType: models.TransactionTypeProfitAccrual, DayRemaining: 100},
	}
	require.NoError(t, db.Create(&seed).Error)

	result, err := service.RecalculateAllProfitsWithNewRate(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Deleted)
	assert.Equal(t, 0, result.Created)

	count, err := txRepo.CountProfitAccruals(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
