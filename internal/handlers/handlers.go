package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sazehapp/sazeh-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Project      *ProjectHandler
	Period       *PeriodHandler
	Unit         *UnitHandler
	Investor     *InvestorHandler
	Transaction  *TransactionHandler
	InterestRate *InterestRateHandler
	Expense      *ExpenseHandler
	Sale         *SaleHandler
	PettyCash    *PettyCashHandler
	Report       *ReportHandler
	Audit        *AuditHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth),
		Project:      NewProjectHandler(svcs.Project),
		Period:       NewPeriodHandler(svcs.Period),
		Unit:         NewUnitHandler(svcs.Unit),
		Investor:     NewInvestorHandler(svcs.Investor),
		Transaction:  NewTransactionHandler(svcs.Transaction),
		InterestRate: NewInterestRateHandler(svcs.InterestRate),
		Expense:      NewExpenseHandler(svcs.Expense),
		Sale:         NewSaleHandler(svcs.Sale),
		PettyCash:    NewPettyCashHandler(svcs.PettyCash),
		Report:       NewReportHandler(svcs.Export, svcs.Report),
		Audit:        NewAuditHandler(svcs.Audit),
	}
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrProjectRequired),
		errors.Is(err, services.ErrPeriodRequired),
		errors.Is(err, services.ErrInvalidExpenseType),
		errors.Is(err, services.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrInactiveUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRecalcInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
