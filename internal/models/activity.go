package models

import "time"

// Activity is an append-only audit entry on a contact's timeline,
// recorded automatically when CRM entities change.
type Activity struct {
	ID        string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	ContactID *string `gorm:"type:varchar(36);index" json:"contact_id,omitempty"`

	ActivityType string `gorm:"type:varchar(50);not null;index" json:"activity_type"`
	Description  string `gorm:"type:text;not null" json:"description"`
	Metadata     string `gorm:"type:text" json:"metadata,omitempty"`

	AgentID string `gorm:"type:varchar(36);not null;index" json:"agent_id"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_activities_created_at,sort:desc" json:"created_at"`
}

// Activity types recorded by the services layer
const (
	ActivityContactCreated     = "contact_created"
	ActivityContactStatusMoved = "contact_status_changed"
	ActivityDealCreated        = "deal_created"
	ActivityDealStatusMoved    = "deal_status_changed"
	ActivityTaskCompleted      = "task_completed"
	ActivityAppointmentBooked  = "appointment_booked"
	ActivityCalendarImport     = "calendar_import"
	ActivityPropertyLinked     = "property_linked"
)

func (Activity) TableName() string {
	return "activities"
}
