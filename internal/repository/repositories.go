package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Project      ProjectRepository
	Period       PeriodRepository
	Unit         UnitRepository
	Investor     InvestorRepository
	InterestRate InterestRateRepository
	Transaction  TransactionRepository
	Expense      ExpenseRepository
	Sale         SaleRepository
	PettyCash    PettyCashRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Project:      NewProjectRepository(db),
		Period:       NewPeriodRepository(db),
		Unit:         NewUnitRepository(db),
		Investor:     NewInvestorRepository(db),
		InterestRate: NewInterestRateRepository(db),
		Transaction:  NewTransactionRepository(db),
		Expense:      NewExpenseRepository(db),
		Sale:         NewSaleRepository(db),
		PettyCash:    NewPettyCashRepository(db),
	}
}
