package models

import "time"

// Communication is one logged interaction with a contact. Rows are
// append-only; there is no update path.
type Communication struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ContactID string `gorm:"type:varchar(36);not null;index" json:"contact_id"`

	CommType  string        `gorm:"type:varchar(50);not null" json:"comm_type"`
	Direction CommDirection `gorm:"type:varchar(10);not null" json:"direction"`
	Subject   string        `gorm:"type:varchar(255)" json:"subject,omitempty"`
	Content   string        `gorm:"type:text" json:"content,omitempty"`

	OccurredAt time.Time `gorm:"type:datetime;not null;index" json:"occurred_at"`

	AgentID string `gorm:"type:varchar(36);not null;index" json:"agent_id"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
}

type CommDirection string

const (
	CommDirectionInbound  CommDirection = "inbound"
	CommDirectionOutbound CommDirection = "outbound"
)

func (Communication) TableName() string {
	return "communications"
}

// ValidCommDirection reports whether d is a known direction
func ValidCommDirection(d CommDirection) bool {
	return d == CommDirectionInbound || d == CommDirectionOutbound
}
