package models

import "time"

// Agent is an authenticated CRM user. Every CRM row is owned by exactly
// one agent and is only visible to that agent.
type Agent struct {
	ID           string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string `gorm:"type:varchar(100)" json:"first_name,omitempty"`
	LastName     string `gorm:"type:varchar(100)" json:"last_name,omitempty"`
	Phone        string `gorm:"type:varchar(50)" json:"phone,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

func (Agent) TableName() string {
	return "agents"
}

// FullName joins first and last name for display
func (a *Agent) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}
