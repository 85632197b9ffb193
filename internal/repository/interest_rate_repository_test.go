package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Project{}, &models.InterestRate{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInterestRateRepository_SingleActiveRate(t *testing.T) {
	db := newTestDB(t)
	repo := NewInterestRateRepository(db)
	ctx := context.Background()

	first := &models.InterestRate{ProjectID: 1, Rate: decimal.RequireFromString("0.001"), EffectiveDate: date(2024, 3, 20), IsActive: true}
	require.NoError(t, repo.Save(ctx, first))

	second := &models.InterestRate{ProjectID: 1, Rate: decimal.RequireFromString("0.0012"), EffectiveDate: date(2024, 6, 1), IsActive: true}
	require.NoError(t, repo.Save(ctx, second))

	// Rates of other projects are untouched.
	other := &models.InterestRate{ProjectID: 2, Rate: decimal.RequireFromString("0.002"), EffectiveDate: date(2024, 3, 20), IsActive: true}
	require.NoError(t, repo.Save(ctx, other))

	var activeCount int64
	require.NoError(t, db.Model(&models.InterestRate{}).
		Where("project_id = ? AND is_active = ?", 1, true).
		Count(&activeCount).Error)
	assert.Equal(t, int64(1), activeCount)

	active, err := repo.ActiveForProject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	otherActive, err := repo.ActiveForProject(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, other.ID, otherActive.ID)
}

func TestInterestRateRepository_ActiveForProject_NoRate(t *testing.T) {
	db := newTestDB(t)
	repo := NewInterestRateRepository(db)

	_, err := repo.ActiveForProject(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInterestRateRepository_RateForDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewInterestRateRepository(db)
	ctx := context.Background()

	march := &models.InterestRate{ProjectID: 1, Rate: decimal.RequireFromString("0.001"), EffectiveDate: date(2024, 3, 20), IsActive: false}
	require.NoError(t, repo.Save(ctx, march))
	june := &models.InterestRate{ProjectID: 1, Rate: decimal.RequireFromString("0.0015"), EffectiveDate: date(2024, 6, 1), IsActive: true}
	require.NoError(t, repo.Save(ctx, june))

	got, err := repo.RateForDate(ctx, 1, date(2024, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, march.ID, got.ID)

	got, err = repo.RateForDate(ctx, 1, date(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, june.ID, got.ID)

	_, err = repo.RateForDate(ctx, 1, date(2024, 1, 1))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
