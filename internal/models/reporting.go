package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionTotals is the canonical decomposition of transaction sums.
// Every report builds on these four buckets; withdrawals are stored
// negative, so NetCapital = Deposits + Withdrawals.
type TransactionTotals struct {
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Profits     decimal.Decimal `json:"profits"`
	NetCapital  decimal.Decimal `json:"net_capital"`
}

// TransactionBreakdown extends TransactionTotals with the per-type deposit
// buckets and a row count. Only the open-filter Totals query returns it.
type TransactionBreakdown struct {
	TransactionTotals
	PrincipalDeposit decimal.Decimal `json:"principal_deposit"`
	LoanDeposit      decimal.Decimal `json:"loan_deposit"`
	Count            int64           `json:"count"`
}

// TransactionFilters is the open filter set for ad-hoc transaction totals.
// Nil fields are not applied.
type TransactionFilters struct {
	InvestorID      *uint
	PeriodID        *uint
	TransactionType *string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// ExpenseFilters is the open filter set for ad-hoc expense totals.
type ExpenseFilters struct {
	PeriodID    *uint
	ExpenseType *string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// UnitStats aggregates a project's units.
type UnitStats struct {
	TotalUnits int64           `json:"total_units"`
	TotalArea  decimal.Decimal `json:"total_area"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PettyCashBalance is one agent's reconciliation snapshot.
// Positive balance: the agent owes the fund. Negative: the fund owes the agent.
type PettyCashBalance struct {
	ExpenseType   string          `json:"expense_type"`
	Label         string          `json:"label"`
	TotalReceipts decimal.Decimal `json:"total_receipts"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalReturns  decimal.Decimal `json:"total_returns"`
	Balance       decimal.Decimal `json:"balance"`
}

// PeriodBalancePoint is one period of a petty-cash trend: the period-local
// movement plus the cumulative balance through the period's end.
type PeriodBalancePoint struct {
	PeriodID          uint            `json:"period_id"`
	Label             string          `json:"label"`
	Year              int             `json:"year"`
	MonthNumber       int             `json:"month_number"`
	Receipts          decimal.Decimal `json:"receipts"`
	Returns           decimal.Decimal `json:"returns"`
	Expenses          decimal.Decimal `json:"expenses"`
	PeriodBalance     decimal.Decimal `json:"period_balance"`
	CumulativeBalance decimal.Decimal `json:"cumulative_balance"`
}

// Mismatch is one failed SSOT cross-check: a manager-computed total that
// disagrees with the raw aggregate over the same filter.
type Mismatch struct {
	Check    string `json:"check"`
	Scope    string `json:"scope"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// ProjectStatistics is the project dashboard payload.
type ProjectStatistics struct {
	ProjectID           uint              `json:"project_id"`
	ProjectName         string            `json:"project_name"`
	Units               UnitStats         `json:"units"`
	Transactions        TransactionTotals `json:"transactions"`
	GrandTotal          decimal.Decimal   `json:"grand_total"`
	TotalExpenses       decimal.Decimal   `json:"total_expenses"`
	TotalSales          decimal.Decimal   `json:"total_sales"`
	FinalCost           decimal.Decimal   `json:"final_cost"`
	InvestorCount       int64             `json:"investor_count"`
	ProjectDurationDays int               `json:"project_duration_days"`
	ActiveDays          int64             `json:"active_days"`
}

// CostMetrics are the per-meter and fund-balance figures.
type CostMetrics struct {
	FinalCost             decimal.Decimal `json:"final_cost"`
	FinalProfitAmount     decimal.Decimal `json:"final_profit_amount"`
	TotalProfitPercentage decimal.Decimal `json:"total_profit_percentage"`
	NetCostPerMeter       decimal.Decimal `json:"net_cost_per_meter"`
	GrossCostPerMeter     decimal.Decimal `json:"gross_cost_per_meter"`
	ValuePerMeter         decimal.Decimal `json:"value_per_meter"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	TotalSales            decimal.Decimal `json:"total_sales"`
	TotalValue            decimal.Decimal `json:"total_value"`
	TotalArea             decimal.Decimal `json:"total_area"`
	TotalInfrastructure   decimal.Decimal `json:"total_infrastructure"`
	TotalCapital          decimal.Decimal `json:"total_capital"`
	BuildingFundBalance   decimal.Decimal `json:"building_fund_balance"`
}

// ProfitPercentages are derived profitability rates.
type ProfitPercentages struct {
	TotalProfitPercentage     decimal.Decimal `json:"total_profit_percentage"`
	AnnualProfitPercentage    decimal.Decimal `json:"annual_profit_percentage"`
	MonthlyProfitPercentage   decimal.Decimal `json:"monthly_profit_percentage"`
	DailyProfitPercentage     decimal.Decimal `json:"daily_profit_percentage"`
	AverageConstructionPeriod decimal.Decimal `json:"average_construction_period"`
	CorrectionFactor          decimal.Decimal `json:"correction_factor"`
}

// InvestorSummary is one line of the all-investors report.
type InvestorSummary struct {
	InvestorID        uint            `json:"investor_id"`
	Name              string          `json:"name"`
	ParticipationType string          `json:"participation_type"`
	TotalDeposits     decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals  decimal.Decimal `json:"total_withdrawals"`
	NetPrincipal      decimal.Decimal `json:"net_principal"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	CapitalRatio      decimal.Decimal `json:"capital_ratio"`
	ProfitRatio       decimal.Decimal `json:"profit_ratio"`
	ProfitIndex       decimal.Decimal `json:"profit_index"`
}

// InvestorOwnership is the unit-ownership calculation for one investor.
type InvestorOwnership struct {
	OwnershipArea        decimal.Decimal `json:"ownership_area"`
	OwnershipPercentage  decimal.Decimal `json:"ownership_percentage"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	NetPrincipal         decimal.Decimal `json:"net_principal"`
	TotalProfit          decimal.Decimal `json:"total_profit"`
	AveragePricePerMeter decimal.Decimal `json:"average_price_per_meter"`
	UnitsCount           int             `json:"units_count"`
	TotalUnitsArea       decimal.Decimal `json:"total_units_area"`
}

// RecalculationResult reports a full profit recompute.
type RecalculationResult struct {
	Deleted       int64 `json:"deleted"`
	Created       int   `json:"created"`
	TotalAffected int64 `json:"total_affected"`
}
