package services

import (
	"time"

	"real-estate-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgentService manages agent accounts and their settings rows
type AgentService struct {
	db *gorm.DB
}

func NewAgentService(db *gorm.DB) *AgentService {
	return &AgentService{db: db}
}

// Create registers a new agent with an already-hashed password
func (s *AgentService) Create(a *models.Agent) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Email == "" {
		return invalidf("email is required")
	}
	if a.PasswordHash == "" {
		return invalidf("password hash is required")
	}
	return s.db.Create(a).Error
}

func (s *AgentService) GetByID(id string) (*models.Agent, error) {
	var agent models.Agent
	err := s.db.Where("id = ?", id).First(&agent).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &agent, nil
}

func (s *AgentService) GetByEmail(email string) (*models.Agent, error) {
	var agent models.Agent
	err := s.db.Where("email = ?", email).First(&agent).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &agent, nil
}

// GetOrCreateSettings returns the agent's settings row, creating an empty
// one on first access.
func (s *AgentService) GetOrCreateSettings(agentID string) (*models.AgentSettings, error) {
	var settings models.AgentSettings
	err := s.db.Where("agent_id = ?", agentID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = models.AgentSettings{
		ID:      uuid.NewString(),
		AgentID: agentID,
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveGoogleToken upserts the full token payload and marks the calendar
// connected.
func (s *AgentService) SaveGoogleToken(agentID, accessToken, refreshToken string, expiry time.Time) error {
	settings, err := s.GetOrCreateSettings(agentID)
	if err != nil {
		return err
	}

	settings.GoogleAccessToken = accessToken
	// A refresh exchange may omit the refresh token; keep the stored one
	if refreshToken != "" {
		settings.GoogleRefreshToken = refreshToken
	}
	settings.GoogleTokenExpiry = &expiry
	settings.GoogleCalendarConnected = true
	return s.db.Save(settings).Error
}

// ClearGoogleToken disconnects the calendar. The provider-side grant is
// not revoked.
func (s *AgentService) ClearGoogleToken(agentID string) error {
	settings, err := s.GetOrCreateSettings(agentID)
	if err != nil {
		return err
	}

	settings.GoogleAccessToken = ""
	settings.GoogleRefreshToken = ""
	settings.GoogleTokenExpiry = nil
	settings.GoogleCalendarConnected = false
	return s.db.Save(settings).Error
}

// TouchCalendarSync records the time of the last successful sync
func (s *AgentService) TouchCalendarSync(agentID string, at time.Time) error {
	settings, err := s.GetOrCreateSettings(agentID)
	if err != nil {
		return err
	}
	settings.LastCalendarSyncAt = &at
	return s.db.Save(settings).Error
}

// SetOnboardingCompleted persists the onboarding flag (previously a
// browser local-storage key)
func (s *AgentService) SetOnboardingCompleted(agentID string, done bool) error {
	settings, err := s.GetOrCreateSettings(agentID)
	if err != nil {
		return err
	}
	settings.OnboardingCompleted = done
	return s.db.Save(settings).Error
}

// ConnectedAgents lists ids of agents with a connected Google Calendar,
// used by the auto-sync scheduler.
func (s *AgentService) ConnectedAgents() ([]string, error) {
	var ids []string
	err := s.db.Model(&models.AgentSettings{}).
		Where("google_calendar_connected = ?", true).
		Pluck("agent_id", &ids).Error
	return ids, err
}
