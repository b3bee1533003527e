package services

import (
	"time"

	"real-estate-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunicationService appends and reads the per-contact interaction log.
// The log is append-only: there is no update or delete path.
type CommunicationService struct {
	db *gorm.DB
}

func NewCommunicationService(db *gorm.DB) *CommunicationService {
	return &CommunicationService{db: db}
}

// Log appends one interaction to a contact's log
func (s *CommunicationService) Log(c *models.Communication) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.ContactID == "" {
		return invalidf("contact_id is required")
	}
	if c.CommType == "" {
		return invalidf("comm_type is required")
	}
	if !models.ValidCommDirection(c.Direction) {
		return invalidf("invalid direction %q", c.Direction)
	}
	if c.AgentID == "" {
		return invalidf("agent_id is required")
	}
	if c.OccurredAt.IsZero() {
		c.OccurredAt = time.Now()
	}

	// The contact must belong to the same agent
	var n int64
	if err := s.db.Model(&models.Contact{}).
		Where("id = ? AND assigned_agent_id = ?", c.ContactID, c.AgentID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return s.db.Create(c).Error
}

// ListByContact returns a contact's interactions, newest first
func (s *CommunicationService) ListByContact(contactID, agentID string, limit int) ([]models.Communication, error) {
	if limit <= 0 {
		limit = 50
	}
	var comms []models.Communication
	err := s.db.Where("contact_id = ? AND agent_id = ?", contactID, agentID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&comms).Error
	return comms, err
}
