package models

import "time"

type Appointment struct {
	ID    string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title string `gorm:"type:varchar(255);not null" json:"title"`

	StartTime time.Time `gorm:"type:datetime;not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"type:datetime;not null" json:"end_time"`

	AppointmentType string            `gorm:"type:varchar(50)" json:"appointment_type,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Location        string            `gorm:"type:varchar(255)" json:"location,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`

	// Optional recurrence (RRULE-style rule plus an end bound)
	RecurrenceRule  string     `gorm:"type:varchar(255)" json:"recurrence_rule,omitempty"`
	RecurrenceUntil *time.Time `gorm:"type:datetime" json:"recurrence_until,omitempty"`

	ContactID             *string `gorm:"type:varchar(36);index" json:"contact_id,omitempty"`
	GoogleCalendarEventID string  `gorm:"type:varchar(255);index" json:"google_calendar_event_id,omitempty"`

	AgentID string `gorm:"type:varchar(36);not null;index" json:"agent_id"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

func (Appointment) TableName() string {
	return "appointments"
}

// ValidAppointmentStatus reports whether s is a known status
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsRecurring reports whether the appointment has a recurrence rule
func (a *Appointment) IsRecurring() bool {
	return a.RecurrenceRule != ""
}
