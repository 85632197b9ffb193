package models

import "time"

// Participation type constants
const (
	ParticipationTypeOwner    = "owner"
	ParticipationTypeInvestor = "investor"
)

// Investor is a person holding capital in a project. Owned units drive the
// ownership-area calculation; capital movements live in transactions.
type Investor struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProjectID         uint      `gorm:"not null;index" json:"project_id"`
	FirstName         string    `gorm:"not null" json:"first_name"`
	LastName          string    `gorm:"not null" json:"last_name"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	ParticipationType string    `gorm:"default:investor;index" json:"participation_type"`
	CreatedAt         time.Time `json:"created_at"`

	// Associations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Units   []Unit  `gorm:"many2many:investor_units" json:"units,omitempty"`
}

// TableName specifies the table name for Investor
func (Investor) TableName() string {
	return "investors"
}

// FullName returns the investor's display name.
func (i *Investor) FullName() string {
	return i.FirstName + " " + i.LastName
}
