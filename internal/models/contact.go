package models

import "time"

type Contact struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone     string `gorm:"type:varchar(50)" json:"phone,omitempty"`

	ContactType ContactType   `gorm:"type:varchar(20);not null;index" json:"contact_type"`
	Status      ContactStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`

	BudgetMin  *float64 `gorm:"type:decimal(14,2)" json:"budget_min,omitempty"`
	BudgetMax  *float64 `gorm:"type:decimal(14,2)" json:"budget_max,omitempty"`
	LeadSource string   `gorm:"type:varchar(100)" json:"lead_source,omitempty"`
	LeadScore  *int     `gorm:"type:int" json:"lead_score,omitempty"`
	Notes      string   `gorm:"type:text" json:"notes,omitempty"`

	AssignedAgentID string `gorm:"type:varchar(36);not null;index" json:"assigned_agent_id"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_contacts_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// ContactType classifies the relationship to the agent
type ContactType string

const (
	ContactTypeBuyer      ContactType = "buyer"
	ContactTypeSeller     ContactType = "seller"
	ContactTypeInvestor   ContactType = "investor"
	ContactTypePastClient ContactType = "past_client"
	ContactTypeLead       ContactType = "lead"
)

// ContactStatus is the pipeline stage toward conversion
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusQualified ContactStatus = "qualified"
	ContactStatusNurturing ContactStatus = "nurturing"
	ContactStatusLost      ContactStatus = "lost"
	ContactStatusConverted ContactStatus = "converted"
)

func (Contact) TableName() string {
	return "contacts"
}

// ValidContactType reports whether t is one of the known contact types
func ValidContactType(t ContactType) bool {
	switch t {
	case ContactTypeBuyer, ContactTypeSeller, ContactTypeInvestor, ContactTypePastClient, ContactTypeLead:
		return true
	}
	return false
}

// ValidContactStatus reports whether s is one of the known pipeline stages
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactStatusNew, ContactStatusQualified, ContactStatusNurturing, ContactStatusLost, ContactStatusConverted:
		return true
	}
	return false
}

// FullName joins first and last name for display
func (c *Contact) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
