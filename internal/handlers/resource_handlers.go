package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/services"
)

// --- Periods ---

type PeriodHandler struct {
	periodService *services.PeriodService
}

func NewPeriodHandler(periodService *services.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

// @Summary List Periods
// @Description Get all periods of a project in chronological order
// @Tags Periods
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/periods [get]
func (h *PeriodHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	periods, err := h.periodService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": periods})
}

func (h *PeriodHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	period, err := h.periodService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period})
}

// @Summary Create Period
// @Description Create a new accounting period for a project
// @Tags Periods
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.Period true "Period Data"
// @Success 201 {object} models.Period
// @Security BearerAuth
// @Router /projects/{project_id}/periods [post]
func (h *PeriodHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var period models.Period
	if err := c.ShouldBindJSON(&period); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	period.ProjectID = uint(projectID)

	if err := h.periodService.Create(c.Request.Context(), &period); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"period": period})
}

func (h *PeriodHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.periodService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Period deleted"})
}

// --- Units ---

type UnitHandler struct {
	unitService *services.UnitService
}

func NewUnitHandler(unitService *services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

func (h *UnitHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	units, err := h.unitService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

func (h *UnitHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	unit, err := h.unitService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit})
}

// @Summary Create Unit
// @Description Create a unit; total price is derived from area and price per meter when omitted
// @Tags Units
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.Unit true "Unit Data"
// @Success 201 {object} models.Unit
// @Security BearerAuth
// @Router /projects/{project_id}/units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	unit.ProjectID = uint(projectID)

	if err := h.unitService.Create(c.Request.Context(), &unit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"unit": unit})
}

func (h *UnitHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	unit.ID = uint(id)

	if err := h.unitService.Update(c.Request.Context(), &unit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit})
}

func (h *UnitHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.unitService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted"})
}

// --- Investors ---

type InvestorHandler struct {
	investorService *services.InvestorService
}

func NewInvestorHandler(investorService *services.InvestorService) *InvestorHandler {
	return &InvestorHandler{investorService: investorService}
}

func (h *InvestorHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	investors, err := h.investorService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investors": investors})
}

func (h *InvestorHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	investor, err := h.investorService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

func (h *InvestorHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var investor models.Investor
	if err := c.ShouldBindJSON(&investor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	investor.ProjectID = uint(projectID)

	if err := h.investorService.Create(c.Request.Context(), &investor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"investor": investor})
}

func (h *InvestorHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var investor models.Investor
	if err := c.ShouldBindJSON(&investor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	investor.ID = uint(id)

	if err := h.investorService.Update(c.Request.Context(), &investor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

func (h *InvestorHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.investorService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Investor deleted"})
}

// @Summary Investor Summary
// @Description Capital, profit and ratio summary for one investor
// @Tags Investors
// @Produce json
// @Param project_id path int true "Project ID"
// @Param id path int true "Investor ID"
// @Success 200 {object} models.InvestorSummary
// @Security BearerAuth
// @Router /projects/{project_id}/investors/{id}/summary [get]
func (h *InvestorHandler) Summary(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	summary, err := h.investorService.Summary(c.Request.Context(), uint(projectID), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// @Summary All Investor Summaries
// @Description Summaries for every investor with transactions in the project
// @Tags Investors
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/investors/summaries [get]
func (h *InvestorHandler) AllSummaries(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	summaries, err := h.investorService.AllSummaries(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}

// @Summary Investor Ownership
// @Description Ownership area and percentage implied by an investor's balance
// @Tags Investors
// @Produce json
// @Param project_id path int true "Project ID"
// @Param id path int true "Investor ID"
// @Success 200 {object} models.InvestorOwnership
// @Security BearerAuth
// @Router /projects/{project_id}/investors/{id}/ownership [get]
func (h *InvestorHandler) Ownership(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	ownership, err := h.investorService.Ownership(c.Request.Context(), uint(projectID), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ownership": ownership})
}

// --- Transactions ---

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	transactions, err := h.transactionService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (h *TransactionHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	tx, err := h.transactionService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// @Summary Create Transaction
// @Description Record a capital movement; day windows are computed from the transaction date
// @Tags Transactions
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.Transaction true "Transaction Data"
// @Success 201 {object} models.Transaction
// @Security BearerAuth
// @Router /projects/{project_id}/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx.ProjectID = uint(projectID)

	if err := h.transactionService.Create(c.Request.Context(), &tx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx.ID = uint(id)

	if err := h.transactionService.Update(c.Request.Context(), &tx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.transactionService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// --- Interest Rates ---

type InterestRateHandler struct {
	rateService *services.InterestRateService
}

func NewInterestRateHandler(rateService *services.InterestRateService) *InterestRateHandler {
	return &InterestRateHandler{rateService: rateService}
}

func (h *InterestRateHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	rates, err := h.rateService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interest_rates": rates})
}

// @Summary Active Interest Rate
// @Description Get the active daily profit rate for a project
// @Tags InterestRates
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.InterestRate
// @Security BearerAuth
// @Router /projects/{project_id}/interest-rates/active [get]
func (h *InterestRateHandler) Active(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	rate, err := h.rateService.Active(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interest_rate": rate})
}

// @Summary Save Interest Rate and Recalculate
// @Description Save a rate; when it becomes active, all profit accruals of the project are rebuilt
// @Tags InterestRates
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.InterestRate true "Rate Data"
// @Success 200 {object} models.RecalculationResult
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/interest-rates [post]
func (h *InterestRateHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var rate models.InterestRate
	if err := c.ShouldBindJSON(&rate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rate.ProjectID = uint(projectID)

	result, err := h.rateService.SaveAndRecalculate(c.Request.Context(), &rate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interest_rate": rate, "recalculation": result})
}

func (h *InterestRateHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.rateService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interest rate deleted"})
}

// --- Expenses ---

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	expenses, err := h.expenseService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *ExpenseHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	expense, err := h.expenseService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// @Summary Create Expense
// @Description Record an expense; the contractor fee of its period is refreshed automatically
// @Tags Expenses
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.Expense true "Expense Data"
// @Success 201 {object} models.Expense
// @Security BearerAuth
// @Router /projects/{project_id}/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense.ProjectID = uint(projectID)

	if err := h.expenseService.Create(c.Request.Context(), &expense); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense.ID = uint(id)

	if err := h.expenseService.Update(c.Request.Context(), &expense); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.expenseService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// @Summary Recalculate Contractor Expenses
// @Description Rebuild the derived contractor fee row for every period of the project
// @Tags Expenses
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/expenses/recalculate-contractor [post]
func (h *ExpenseHandler) RecalculateContractor(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	if err := h.expenseService.RecalculateAllContractorExpenses(c.Request.Context(), uint(projectID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contractor expenses recalculated"})
}

// --- Sales ---

type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	sales, err := h.saleService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

func (h *SaleHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	sale, err := h.saleService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale})
}

func (h *SaleHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var sale models.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sale.ProjectID = uint(projectID)

	if err := h.saleService.Create(c.Request.Context(), &sale); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sale": sale})
}

func (h *SaleHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var sale models.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sale.ID = uint(id)

	if err := h.saleService.Update(c.Request.Context(), &sale); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale})
}

func (h *SaleHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.saleService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}

// --- Petty Cash ---

type PettyCashHandler struct {
	pettyCashService *services.PettyCashService
}

func NewPettyCashHandler(pettyCashService *services.PettyCashService) *PettyCashHandler {
	return &PettyCashHandler{pettyCashService: pettyCashService}
}

func (h *PettyCashHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	transactions, err := h.pettyCashService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"petty_cash_transactions": transactions})
}

func (h *PettyCashHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var tx models.PettyCashTransaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx.ProjectID = uint(projectID)

	if err := h.pettyCashService.Create(c.Request.Context(), &tx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"petty_cash_transaction": tx})
}

func (h *PettyCashHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var tx models.PettyCashTransaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx.ID = uint(id)

	if err := h.pettyCashService.Update(c.Request.Context(), &tx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"petty_cash_transaction": tx})
}

func (h *PettyCashHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.pettyCashService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Petty cash transaction deleted"})
}

// @Summary Petty Cash Balance
// @Description Balance held by one agent type, optionally up to and including a period
// @Tags PettyCash
// @Produce json
// @Param project_id path int true "Project ID"
// @Param expense_type query string true "Agent expense type"
// @Param period_id query int false "Limit to transactions up to this period"
// @Success 200 {object} models.PettyCashBalance
// @Security BearerAuth
// @Router /projects/{project_id}/petty-cash/balance [get]
func (h *PettyCashHandler) Balance(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	expenseType := c.Query("expense_type")

	var balance models.PettyCashBalance
	var err error
	if periodParam := c.Query("period_id"); periodParam != "" {
		periodID, _ := strconv.ParseUint(periodParam, 10, 32)
		balance, err = h.pettyCashService.GetBalanceByPeriod(c.Request.Context(), uint(projectID), expenseType, uint(periodID))
	} else {
		balance, err = h.pettyCashService.GetBalance(c.Request.Context(), uint(projectID), expenseType)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// @Summary All Petty Cash Balances
// @Description Current balance of every agent type in the project
// @Tags PettyCash
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/petty-cash/balances [get]
func (h *PettyCashHandler) AllBalances(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	balances, err := h.pettyCashService.GetAllBalances(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

// @Summary Petty Cash Balance Trend
// @Description Per-period and cumulative balance series for one agent type
// @Tags PettyCash
// @Produce json
// @Param project_id path int true "Project ID"
// @Param expense_type query string true "Agent expense type"
// @Param start_period_id query int false "First period of the window"
// @Param end_period_id query int false "Last period of the window"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/petty-cash/trend [get]
func (h *PettyCashHandler) Trend(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	expenseType := c.Query("expense_type")

	var startID, endID *uint
	if v := c.Query("start_period_id"); v != "" {
		parsed, _ := strconv.ParseUint(v, 10, 32)
		id := uint(parsed)
		startID = &id
	}
	if v := c.Query("end_period_id"); v != "" {
		parsed, _ := strconv.ParseUint(v, 10, 32)
		id := uint(parsed)
		endID = &id
	}

	trend, err := h.pettyCashService.GetPeriodBalanceTrend(c.Request.Context(), uint(projectID), expenseType, startID, endID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
