package services

import (
	"log/slog"

	"github.com/sazehapp/sazeh-api/internal/config"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	Project      *ProjectService
	Period       *PeriodService
	Unit         *UnitService
	Investor     *InvestorService
	Transaction  *TransactionService
	InterestRate *InterestRateService
	Profit       *ProfitService
	Expense      *ExpenseService
	Sale         *SaleService
	PettyCash    *PettyCashService
	Aggregation  *AggregationService
	Audit        *AuditService
	Export       *ExportService
	Report       *ReportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, cfg *config.Config, db *gorm.DB, log *slog.Logger) *Services {
	aggregationSvc := NewAggregationService(repos.Transaction, repos.Expense, repos.Sale, repos.PettyCash, repos.Unit, repos.Period)
	profitSvc := NewProfitService(repos.Transaction, repos.InterestRate, db, log)
	projectSvc := NewProjectService(repos.Project, repos.Transaction, repos.Investor, repos.Expense, aggregationSvc, log)
	investorSvc := NewInvestorService(repos.Investor, repos.Transaction, aggregationSvc)

	return &Services{
		Auth:         NewAuthService(repos.User, cfg),
		Project:      projectSvc,
		Period:       NewPeriodService(repos.Period),
		Unit:         NewUnitService(repos.Unit),
		Investor:     investorSvc,
		Transaction:  NewTransactionService(repos.Transaction, repos.Project),
		InterestRate: NewInterestRateService(repos.InterestRate, profitSvc),
		Profit:       profitSvc,
		Expense:      NewExpenseService(repos.Expense, repos.Project, repos.Period, log),
		Sale:         NewSaleService(repos.Sale),
		PettyCash:    NewPettyCashService(repos.PettyCash, repos.Expense, repos.Period),
		Aggregation:  aggregationSvc,
		Audit:        NewAuditService(aggregationSvc, repos.Period, db, log),
		Export:       NewExportService(projectSvc, repos.Transaction, repos.Expense, repos.Sale, repos.PettyCash),
		Report:       NewReportService(investorSvc, repos.Project, repos.Transaction),
	}
}
