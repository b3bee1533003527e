package models

import "time"

// AgentSettings holds per-agent preferences and the Google Calendar
// credential payload. One row per agent.
type AgentSettings struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	AgentID string `gorm:"type:varchar(36);not null;uniqueIndex" json:"agent_id"`

	// Google Calendar connection state
	GoogleAccessToken       string     `gorm:"type:text" json:"-"`
	GoogleRefreshToken      string     `gorm:"type:text" json:"-"`
	GoogleTokenExpiry       *time.Time `gorm:"type:datetime" json:"-"`
	GoogleCalendarConnected bool       `gorm:"not null;default:false" json:"google_calendar_connected"`
	LastCalendarSyncAt      *time.Time `gorm:"type:datetime" json:"last_calendar_sync_at,omitempty"`

	// UI preferences (previously browser local storage)
	OnboardingCompleted bool   `gorm:"not null;default:false" json:"onboarding_completed"`
	Preferences         string `gorm:"type:text" json:"preferences,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

func (AgentSettings) TableName() string {
	return "agent_settings"
}

// TokenExpired reports whether the stored Google access token is past its
// expiry. A missing expiry is treated as expired so the next sync refreshes.
func (s *AgentSettings) TokenExpired(now time.Time) bool {
	if s.GoogleTokenExpiry == nil {
		return true
	}
	return !now.Before(*s.GoogleTokenExpiry)
}
