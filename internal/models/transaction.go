package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type constants
const (
	TransactionTypePrincipalDeposit    = "principal_deposit"
	TransactionTypeLoanDeposit         = "loan_deposit"
	TransactionTypePrincipalWithdrawal = "principal_withdrawal"
	TransactionTypeProfitAccrual       = "profit_accrual"
)

// CapitalTransactionTypes are the types profit accrues on. Withdrawal
// amounts are stored negative, so their profit comes out negative too.
var CapitalTransactionTypes = []string{
	TransactionTypePrincipalDeposit,
	TransactionTypeLoanDeposit,
	TransactionTypePrincipalWithdrawal,
}

// DepositTransactionTypes feed the combined "deposits" bucket.
var DepositTransactionTypes = []string{
	TransactionTypePrincipalDeposit,
	TransactionTypeLoanDeposit,
}

// Transaction is a capital movement or a system-generated profit accrual.
// DayRemaining and DayFromStart are recomputed on every save from the
// project's date bounds; values supplied by callers are never trusted.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ProjectID       uint            `gorm:"not null;index" json:"project_id"`
	InvestorID      uint            `gorm:"not null;index" json:"investor_id"`
	PeriodID        uint            `gorm:"not null;index" json:"period_id"`
	DateShamsi      string          `gorm:"type:varchar(10);not null" json:"date_shamsi"`
	DateGregorian   time.Time       `gorm:"type:date;not null;index" json:"date_gregorian"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	TransactionType string          `gorm:"type:varchar(30);not null;index" json:"transaction_type"`
	Description     string          `gorm:"type:text" json:"description"`
	DayRemaining    int             `gorm:"not null" json:"day_remaining"`
	DayFromStart    int             `gorm:"not null" json:"day_from_start"`
	// Rate used when this row's profit was computed (profit_accrual only).
	InterestRateID    *uint     `gorm:"index" json:"interest_rate_id"`
	IsSystemGenerated bool      `gorm:"default:false;index" json:"is_system_generated"`
	// For a profit_accrual row, the capital transaction it was derived from.
	// Never traversed more than one level up.
	ParentTransactionID *uint     `gorm:"index" json:"parent_transaction_id"`
	CreatedAt           time.Time `gorm:"index" json:"created_at"`

	// Associations
	Project           Project       `gorm:"foreignKey:ProjectID" json:"-"`
	Investor          Investor      `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
	Period            Period        `gorm:"foreignKey:PeriodID" json:"-"`
	InterestRate      *InterestRate `gorm:"foreignKey:InterestRateID" json:"-"`
	ParentTransaction *Transaction  `gorm:"foreignKey:ParentTransactionID" json:"-"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// IsCapital reports whether profit accrues on this transaction.
func (t *Transaction) IsCapital() bool {
	switch t.TransactionType {
	case TransactionTypePrincipalDeposit, TransactionTypeLoanDeposit, TransactionTypePrincipalWithdrawal:
		return true
	}
	return false
}

// ComputeDayWindows derives day_remaining and day_from_start from the
// project's date bounds and this transaction's own date.
func (t *Transaction) ComputeDayWindows(project *Project) {
	t.DayRemaining = daysBetween(t.DateGregorian, project.EndDateGregorian)
	t.DayFromStart = daysBetween(project.StartDateGregorian, t.DateGregorian)
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	u := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(u.Sub(f).Hours() / 24)
}
