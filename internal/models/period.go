package models

import "time"

// Period is one financial month of a project. (project, year, month_number)
// is unique; cumulative queries order periods lexicographically on
// (year, month_number), never on a date column.
type Period struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProjectID          uint      `gorm:"not null;index;uniqueIndex:idx_periods_project_year_month" json:"project_id"`
	Label              string    `gorm:"not null" json:"label"`
	Year               int       `gorm:"not null;uniqueIndex:idx_periods_project_year_month" json:"year"`
	MonthNumber        int       `gorm:"not null;uniqueIndex:idx_periods_project_year_month" json:"month_number"`
	MonthName          string    `json:"month_name"`
	Weight             int       `gorm:"default:1" json:"weight"`
	StartDateShamsi    string    `gorm:"type:varchar(10)" json:"start_date_shamsi"`
	EndDateShamsi      string    `gorm:"type:varchar(10)" json:"end_date_shamsi"`
	StartDateGregorian time.Time `gorm:"type:date" json:"start_date_gregorian"`
	EndDateGregorian   time.Time `gorm:"type:date" json:"end_date_gregorian"`

	// Associations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// TableName specifies the table name for Period
func (Period) TableName() string {
	return "periods"
}

// Before reports whether p is strictly earlier than other in
// (year, month_number) order.
func (p *Period) Before(other *Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.MonthNumber < other.MonthNumber
}
