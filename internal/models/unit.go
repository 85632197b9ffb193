package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is a residential unit inside a project.
type Unit struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProjectID     uint            `gorm:"not null;index" json:"project_id"`
	Name          string          `gorm:"not null" json:"name"`
	Area          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"area"`
	PricePerMeter decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price_per_meter"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_price"`
	CreatedAt     time.Time       `json:"created_at"`

	// Associations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// TableName specifies the table name for Unit
func (Unit) TableName() string {
	return "units"
}
