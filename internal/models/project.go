package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project represents a construction project. It is the root aggregate:
// periods, units, investors, transactions, expenses, sales and petty cash
// entries all belong to exactly one project.
type Project struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	GUID                string          `gorm:"uniqueIndex;not null" json:"guid"`
	Name                string          `gorm:"not null" json:"name"`
	StartDateShamsi     string          `gorm:"type:varchar(10);not null" json:"start_date_shamsi"`
	EndDateShamsi       string          `gorm:"type:varchar(10);not null" json:"end_date_shamsi"`
	StartDateGregorian  time.Time       `gorm:"type:date;not null" json:"start_date_gregorian"`
	EndDateGregorian    time.Time       `gorm:"type:date;not null" json:"end_date_gregorian"`
	IsActive            bool            `gorm:"default:false;index" json:"is_active"`
	TotalInfrastructure decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_infrastructure"`
	CorrectionFactor    decimal.Decimal `gorm:"type:decimal(10,4);default:1" json:"correction_factor"`
	// Fraction, e.g. 0.100 = 10% of base expenses per period.
	ConstructionContractorPercentage decimal.Decimal `gorm:"type:decimal(6,3);default:0.1" json:"construction_contractor_percentage"`
	CreatedAt                        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt                        time.Time       `json:"updated_at"`

	// Associations
	Periods []Period `gorm:"foreignKey:ProjectID" json:"periods,omitempty"`
	Units   []Unit   `gorm:"foreignKey:ProjectID" json:"units,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// DurationDays returns the total project span in days.
func (p *Project) DurationDays() int {
	return int(p.EndDateGregorian.Sub(p.StartDateGregorian).Hours() / 24)
}
