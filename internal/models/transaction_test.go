package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_ComputeDayWindows(t *testing.T) {
	project := &Project{
		StartDateGregorian: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		EndDateGregorian:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}

	tx := &Transaction{DateGregorian: time.Date(2024, 4, 19, 0, 0, 0, 0, time.UTC)}
	tx.ComputeDayWindows(project)
	assert.Equal(t, 30, tx.DayFromStart)
	assert.Equal(t, 700, tx.DayRemaining)

	// A transaction dated after the project end has an exhausted window.
	late := &Transaction{DateGregorian: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}
	late.ComputeDayWindows(project)
	assert.Less(t, late.DayRemaining, 0)
}

func TestTransaction_IsCapital(t *testing.T) {
	assert.True(t, (&Transaction{TransactionType: TransactionTypePrincipalDeposit}).IsCapital())
	assert.True(t, (&Transaction{TransactionType: TransactionTypeLoanDeposit}).IsCapital())
	assert.True(t, (&Transaction{TransactionType: TransactionTypePrincipalWithdrawal}).IsCapital())
	assert.False(t, (&Transaction{TransactionType: TransactionTypeProfitAccrual}).IsCapital())
}

func TestPeriod_Before(t *testing.T) {
	a := &Period{Year: 1402, MonthNumber: 12}
	b := &Period{Year: 1403, MonthNumber: 1}
	c := &Period{Year: 1403, MonthNumber: 2}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, c.Before(b))
	assert.False(t, b.Before(b))
}
