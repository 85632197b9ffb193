package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense type constants. The same enum identifies petty-cash execution
// agents; the two tables are joined only by this value, never by FK.
const (
	ExpenseTypeProjectManager         = "project_manager"
	ExpenseTypeFacilitiesManager      = "facilities_manager"
	ExpenseTypeProcurement            = "procurement"
	ExpenseTypeWarehouse              = "warehouse"
	ExpenseTypeConstructionContractor = "construction_contractor"
	ExpenseTypeOther                  = "other"
)

var expenseTypeLabels = map[string]string{
	ExpenseTypeProjectManager:         "Project Manager",
	ExpenseTypeFacilitiesManager:      "Facilities Manager",
	ExpenseTypeProcurement:            "Procurement Officer",
	ExpenseTypeWarehouse:              "Warehouse Keeper",
	ExpenseTypeConstructionContractor: "Construction Contractor",
	ExpenseTypeOther:                  "Other",
}

// ExpenseTypeLabel returns the display label for an expense type.
func ExpenseTypeLabel(expenseType string) string {
	if label, ok := expenseTypeLabels[expenseType]; ok {
		return label
	}
	return expenseType
}

// ExpenseTypes lists all known expense types.
var ExpenseTypes = []string{
	ExpenseTypeProjectManager,
	ExpenseTypeFacilitiesManager,
	ExpenseTypeProcurement,
	ExpenseTypeWarehouse,
	ExpenseTypeConstructionContractor,
	ExpenseTypeOther,
}

// Expense is a periodic project cost. PeriodID is nullable: some expenses
// are dated only by created_at (the petty-cash period balance handles both).
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProjectID   uint            `gorm:"not null;index" json:"project_id"`
	PeriodID    *uint           `gorm:"index" json:"period_id"`
	ExpenseType string          `gorm:"type:varchar(30);not null;index" json:"expense_type"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`

	// Associations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Period  *Period `gorm:"foreignKey:PeriodID" json:"-"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// IsContractorBase reports whether this expense feeds the derived
// construction-contractor amount (contractor and "other" rows do not).
func (e *Expense) IsContractorBase() bool {
	return e.ExpenseType != ExpenseTypeConstructionContractor && e.ExpenseType != ExpenseTypeOther
}
