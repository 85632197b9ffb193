package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a sale or return of project material, reducing the net cost.
type Sale struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProjectID   uint            `gorm:"not null;index" json:"project_id"`
	PeriodID    uint            `gorm:"not null;index" json:"period_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`

	// Associations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Period  Period  `gorm:"foreignKey:PeriodID" json:"-"`
}

// TableName specifies the table name for Sale
func (Sale) TableName() string {
	return "sales"
}
