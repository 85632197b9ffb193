package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Petty cash transaction type constants
const (
	PettyCashTypeReceipt = "receipt"
	PettyCashTypeReturn  = "return"
)

// PettyCashTransaction is cash advanced to (receipt) or returned by
// (return) an execution agent. Amount is always stored non-negative;
// the sign is derived in SignedAmount, never persisted.
type PettyCashTransaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ProjectID       uint            `gorm:"not null;index" json:"project_id"`
	ExpenseType     string          `gorm:"type:varchar(30);not null;index" json:"expense_type"`
	TransactionType string          `gorm:"type:varchar(10);not null;index" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	ReceiptNumber   string          `json:"receipt_number"`
	Description     string          `gorm:"type:text" json:"description"`
	DateShamsi      string          `gorm:"type:varchar(10)" json:"date_shamsi"`
	DateGregorian   time.Time       `gorm:"type:date;not null;index" json:"date_gregorian"`
	CreatedAt       time.Time       `json:"created_at"`

	// Associations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// TableName specifies the table name for PettyCashTransaction
func (PettyCashTransaction) TableName() string {
	return "petty_cash_transactions"
}

// Normalize forces the stored amount non-negative. Called on every save.
func (p *PettyCashTransaction) Normalize() {
	p.Amount = p.Amount.Abs()
}

// SignedAmount returns +amount for receipts and -amount for returns.
func (p *PettyCashTransaction) SignedAmount() decimal.Decimal {
	if p.TransactionType == PettyCashTypeReturn {
		return p.Amount.Neg()
	}
	return p.Amount
}

// PettyCashAgentTypes are the expense types that act as petty-cash
// execution agents. Contractor and "other" are never petty-cash funded.
var PettyCashAgentTypes = []string{
	ExpenseTypeProjectManager,
	ExpenseTypeFacilitiesManager,
	ExpenseTypeProcurement,
	ExpenseTypeWarehouse,
}
