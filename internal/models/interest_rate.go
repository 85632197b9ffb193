package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestRate is a daily fractional rate for a project. At most one rate per
// project is active at any time; saving an active rate deactivates the rest
// (enforced in the repository, inside one transaction).
type InterestRate struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	ProjectID          uint            `gorm:"not null;index" json:"project_id"`
	Rate               decimal.Decimal `gorm:"type:decimal(12,10);not null" json:"rate"`
	EffectiveDateShamsi string         `gorm:"type:varchar(10)" json:"effective_date_shamsi"`
	EffectiveDate      time.Time       `gorm:"type:date;not null;index" json:"effective_date"`
	IsActive           bool            `gorm:"default:true;index" json:"is_active"`
	Description        string          `json:"description"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// Associations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// TableName specifies the table name for InterestRate
func (InterestRate) TableName() string {
	return "interest_rates"
}
